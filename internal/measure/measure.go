// Package measure converts two screen points into a physical distance by
// ray casting both against the reconstructed environment.
//
// The distance is a proxy for edge length only insofar as the physical edge
// lies along, or very near, the line joining the two surface hits. That
// assumption is not verified here; it is an accepted approximation of the
// sampling design.
package measure

import (
	"github.com/mfal/edgegauge/internal/geom"
	"github.com/mfal/edgegauge/internal/scene"
)

// DefaultOffset is the horizontal sampling baseline in pixels. Larger
// offsets are more robust to surface noise but sample context farther from
// the edge; smaller ones stay local but amplify ray-cast jitter.
const DefaultOffset = 50.0

// Measurement is the transient result of one measurement attempt. Found
// implies both points are present and Meters >= 0; a failed attempt carries
// zero values so no stale geometry can leak into overlays.
type Measurement struct {
	Found  bool
	P1, P2 geom.World
	Meters float64
}

// Measurer samples the environment at a primary screen point and a fixed
// horizontal offset from it.
type Measurer struct {
	Offset float64 // pixels; DefaultOffset when zero
	Caster scene.Raycaster
}

// Measure ray casts at center and at center shifted right by Offset pixels,
// against estimated planes of any alignment. Both casts must intersect a
// surface; the nearest hit of each is used. If either cast misses, the
// returned Measurement has Found=false and no distance is computed; a
// silent no-measurement, not an error.
func (m Measurer) Measure(center geom.Screen) Measurement {
	offset := m.Offset
	if offset == 0 {
		offset = DefaultOffset
	}

	first := m.Caster.Raycast(center, scene.AlignmentAny)
	if len(first) == 0 {
		return Measurement{}
	}
	second := m.Caster.Raycast(geom.Screen{X: center.X + offset, Y: center.Y}, scene.AlignmentAny)
	if len(second) == 0 {
		return Measurement{}
	}

	p1 := first[0].Point()
	p2 := second[0].Point()
	return Measurement{
		Found:  true,
		P1:     p1,
		P2:     p2,
		Meters: geom.WorldDist(p1, p2),
	}
}

// Package overlay carries the presentation geometry produced by the
// measurement pipeline and renders it for replay inspection. Overlay output
// is a presentation concern: sinks may discard it without affecting the
// measurement core.
package overlay

import "github.com/mfal/edgegauge/internal/geom"

// Geometry is one frame's worth of overlay drawing instructions: the
// measurement line between the two re-projected sample points, plus the
// outline of the detected primitive. Visible=false hides everything; a
// cleared overlay must never show a stale line.
type Geometry struct {
	Visible bool
	Line    [2]geom.Screen
	Outline []geom.Screen
}

// Hidden is the geometry published when no measurement is held.
func Hidden() Geometry {
	return Geometry{}
}

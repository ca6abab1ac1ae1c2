package geom

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// Norm is a point in normalized image coordinates. Both components lie in
// [0, 1], with the origin at the top-left corner of the frame: X increases
// rightward, Y increases downward.
type Norm struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Screen is a point in pixel coordinates, same origin convention as Norm.
type Screen struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// World is a 3D point or vector in the tracking session's world frame.
type World = r3.Vec

// Screen converts a normalized point to pixel coordinates for a frame of the
// given dimensions.
func (n Norm) Screen(width, height int) Screen {
	return Screen{X: n.X * float64(width), Y: n.Y * float64(height)}
}

// Dist returns the Euclidean distance to another normalized point.
func (n Norm) Dist(o Norm) float64 {
	return math.Hypot(n.X-o.X, n.Y-o.Y)
}

// WorldDist returns the Euclidean distance between two world points.
func WorldDist(a, b World) float64 {
	return r3.Norm(r3.Sub(a, b))
}

// SegmentDist returns the shortest distance from p to the segment ab, in the
// same normalized units as the inputs. Degenerate segments (a == b) reduce to
// point distance.
func SegmentDist(p, a, b Norm) float64 {
	dx := b.X - a.X
	dy := b.Y - a.Y
	lenSq := dx*dx + dy*dy
	if lenSq == 0 {
		return p.Dist(a)
	}

	// Project p onto the line through a and b, clamped to the segment.
	t := ((p.X-a.X)*dx + (p.Y-a.Y)*dy) / lenSq
	if t < 0 {
		t = 0
	} else if t > 1 {
		t = 1
	}
	return p.Dist(Norm{X: a.X + t*dx, Y: a.Y + t*dy})
}

package scene

import (
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/mfal/edgegauge/internal/geom"
)

// Camera is a pinhole model: intrinsics in pixels plus a camera-to-world
// pose. Camera coordinates are x right, y down, z forward.
type Camera struct {
	Fx, Fy float64 // focal lengths, pixels
	Cx, Cy float64 // principal point, pixels
	Width  int     // viewport width, pixels
	Height int     // viewport height, pixels
	Pose   geom.Pose
}

// Ray returns the world-space origin and unit direction of the ray through
// the given screen point.
func (c Camera) Ray(pt geom.Screen) (origin, dir geom.World) {
	local := geom.World{
		X: (pt.X - c.Cx) / c.Fx,
		Y: (pt.Y - c.Cy) / c.Fy,
		Z: 1,
	}
	origin = c.Pose.Translation()
	dir = r3.Unit(c.Pose.ApplyDir(local))
	return origin, dir
}

// Project maps a world point to screen pixels. ok is false for points behind
// the camera or outside the viewport.
func (c Camera) Project(w geom.World) (geom.Screen, bool) {
	local := c.Pose.Inverse().Apply(w)
	if local.Z <= 1e-9 {
		return geom.Screen{}, false
	}

	pt := geom.Screen{
		X: c.Cx + c.Fx*local.X/local.Z,
		Y: c.Cy + c.Fy*local.Y/local.Z,
	}
	if pt.X < 0 || pt.Y < 0 || pt.X >= float64(c.Width) || pt.Y >= float64(c.Height) {
		return geom.Screen{}, false
	}
	return pt, true
}

// Center returns the viewport center in pixels.
func (c Camera) Center() geom.Screen {
	return geom.Screen{X: float64(c.Width) / 2, Y: float64(c.Height) / 2}
}

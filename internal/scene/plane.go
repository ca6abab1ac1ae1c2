package scene

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/mfal/edgegauge/internal/geom"
)

// Plane is an estimated flat surface in the environment model. Extent bounds
// the plane to a square of half-size Extent meters around Origin; zero means
// unbounded.
type Plane struct {
	Origin    geom.World
	Normal    geom.World
	Extent    float64
	Alignment Alignment
}

// intersect returns the distance t along origin+t*dir at which the ray meets
// the plane, or ok=false when the ray is parallel, hits behind the origin,
// or lands outside the extent.
func (p Plane) intersect(origin, dir geom.World) (t float64, ok bool) {
	n := r3.Unit(p.Normal)
	denom := r3.Dot(n, dir)
	if math.Abs(denom) < 1e-9 {
		return 0, false
	}

	t = r3.Dot(n, r3.Sub(p.Origin, origin)) / denom
	if t <= 1e-9 {
		return 0, false
	}

	if p.Extent > 0 {
		hit := r3.Add(origin, r3.Scale(t, dir))
		off := r3.Sub(hit, p.Origin)
		// Distance within the plane, measured off the normal.
		inPlane := r3.Sub(off, r3.Scale(r3.Dot(off, n), n))
		if math.Abs(inPlane.X) > p.Extent || math.Abs(inPlane.Y) > p.Extent || math.Abs(inPlane.Z) > p.Extent {
			return 0, false
		}
	}

	return t, true
}

// matches reports whether the plane passes the alignment filter.
func (p Plane) matches(align Alignment) bool {
	return align == AlignmentAny || p.Alignment == align
}

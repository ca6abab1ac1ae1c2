package geom

import (
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/spatial/r3"
)

// Pose is a 4x4 homogeneous transform. Surface hits returned by a ray cast
// carry one; the measurement core only ever reads its translation column.
type Pose struct {
	m *mat.Dense
}

// IdentityPose returns the identity transform.
func IdentityPose() Pose {
	m := mat.NewDense(4, 4, nil)
	for i := 0; i < 4; i++ {
		m.Set(i, i, 1)
	}
	return Pose{m: m}
}

// NewPose builds a pose from 16 row-major elements.
func NewPose(elements []float64) Pose {
	return Pose{m: mat.NewDense(4, 4, elements)}
}

// TranslationPose returns a pure translation to t.
func TranslationPose(t World) Pose {
	p := IdentityPose()
	p.m.Set(0, 3, t.X)
	p.m.Set(1, 3, t.Y)
	p.m.Set(2, 3, t.Z)
	return p
}

// Translation extracts the translation component: the first three rows of
// the last column.
func (p Pose) Translation() World {
	if p.m == nil {
		return World{}
	}
	return World{X: p.m.At(0, 3), Y: p.m.At(1, 3), Z: p.m.At(2, 3)}
}

// Apply transforms a world point by the pose.
func (p Pose) Apply(v World) World {
	if p.m == nil {
		return v
	}
	in := mat.NewVecDense(4, []float64{v.X, v.Y, v.Z, 1})
	var out mat.VecDense
	out.MulVec(p.m, in)
	return World{X: out.AtVec(0), Y: out.AtVec(1), Z: out.AtVec(2)}
}

// ApplyDir transforms a direction vector, ignoring translation.
func (p Pose) ApplyDir(v World) World {
	if p.m == nil {
		return v
	}
	in := mat.NewVecDense(4, []float64{v.X, v.Y, v.Z, 0})
	var out mat.VecDense
	out.MulVec(p.m, in)
	return World{X: out.AtVec(0), Y: out.AtVec(1), Z: out.AtVec(2)}
}

// Inverse returns the inverse transform. Poses built from rigid camera
// placements are always invertible; a singular pose returns identity.
func (p Pose) Inverse() Pose {
	if p.m == nil {
		return IdentityPose()
	}
	var inv mat.Dense
	if err := inv.Inverse(p.m); err != nil {
		return IdentityPose()
	}
	return Pose{m: &inv}
}

// LookAtPose places a camera at eye looking toward target, with the given up
// hint. The resulting pose maps camera coordinates (x right, y down, z
// forward) into world coordinates.
func LookAtPose(eye, target, up World) Pose {
	forward := r3.Unit(r3.Sub(target, eye))
	right := r3.Unit(r3.Cross(forward, up))
	down := r3.Cross(forward, right)

	p := IdentityPose()
	p.m.Set(0, 0, right.X)
	p.m.Set(1, 0, right.Y)
	p.m.Set(2, 0, right.Z)
	p.m.Set(0, 1, down.X)
	p.m.Set(1, 1, down.Y)
	p.m.Set(2, 1, down.Z)
	p.m.Set(0, 2, forward.X)
	p.m.Set(1, 2, forward.Y)
	p.m.Set(2, 2, forward.Z)
	p.m.Set(0, 3, eye.X)
	p.m.Set(1, 3, eye.Y)
	p.m.Set(2, 3, eye.Z)
	return p
}

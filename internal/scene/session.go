package scene

import (
	"sort"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/mfal/edgegauge/internal/geom"
)

// Session is an explicitly constructed, lifetime-scoped environment model:
// a pinhole camera over a set of estimated planes. It stands in for a live
// AR tracking stack in replay runs and tests, and is injected wherever a
// Raycaster or Projector is needed. There is no shared global session.
//
// Session methods must be called from the owning goroutine; the type does no
// internal locking, matching the single-domain ownership of a live tracking
// session.
type Session struct {
	cam    Camera
	planes []Plane
}

// NewSession builds a session from a camera and its surface model.
func NewSession(cam Camera, planes []Plane) *Session {
	return &Session{cam: cam, planes: planes}
}

// Camera returns the current camera model.
func (s *Session) Camera() Camera {
	return s.cam
}

// SetPose updates the camera pose, simulating device motion between frames.
func (s *Session) SetPose(p geom.Pose) {
	s.cam.Pose = p
}

// Raycast implements Raycaster: intersections of the ray through pt with
// every plane passing the alignment filter, nearest first. Each hit's pose
// is the translation to the intersection point.
func (s *Session) Raycast(pt geom.Screen, align Alignment) []Hit {
	origin, dir := s.cam.Ray(pt)

	type scored struct {
		t   float64
		hit Hit
	}
	var hits []scored
	for _, pl := range s.planes {
		if !pl.matches(align) {
			continue
		}
		t, ok := pl.intersect(origin, dir)
		if !ok {
			continue
		}
		point := r3.Add(origin, r3.Scale(t, dir))
		hits = append(hits, scored{t: t, hit: Hit{Pose: geom.TranslationPose(point)}})
	}

	sort.Slice(hits, func(i, j int) bool { return hits[i].t < hits[j].t })

	out := make([]Hit, len(hits))
	for i, h := range hits {
		out[i] = h.hit
	}
	return out
}

// Project implements Projector.
func (s *Session) Project(w geom.World) (geom.Screen, bool) {
	return s.cam.Project(w)
}

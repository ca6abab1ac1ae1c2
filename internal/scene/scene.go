package scene

import (
	"image"

	"github.com/mfal/edgegauge/internal/geom"
)

// Alignment filters which estimated surfaces a ray cast may hit.
type Alignment int

const (
	AlignmentAny Alignment = iota
	AlignmentHorizontal
	AlignmentVertical
)

// Hit is a single surface intersection. The measurement core reads only the
// translation component of the pose.
type Hit struct {
	Pose geom.Pose
}

// Point returns the intersection's world position.
func (h Hit) Point() geom.World {
	return h.Pose.Translation()
}

// FrameSource supplies the latest camera frame. A nil frame means no frame
// is available yet (session still initializing) and the detection cycle is
// skipped entirely.
type FrameSource interface {
	CurrentFrame() image.Image
}

// Raycaster queries the reconstructed environment for surface intersections
// along the ray through a screen point, ordered nearest first. An empty
// result is a normal miss, not an error.
type Raycaster interface {
	Raycast(pt geom.Screen, align Alignment) []Hit
}

// Projector maps a world point back onto the current screen. ok is false
// when the point is behind the camera or outside the viewport.
type Projector interface {
	Project(w geom.World) (pt geom.Screen, ok bool)
}

package detect

import (
	"errors"
	"fmt"
	"image"

	"github.com/mfal/edgegauge/internal/geom"
)

// Strategy selects the primitive kind a Detector looks for.
type Strategy string

const (
	StrategyContour Strategy = "contour"
	StrategySegment Strategy = "segment"
	StrategyRect    Strategy = "rect"
)

// ErrBadFrame reports an unusable input frame. Callers treat a detection
// error as a not-found cycle after logging it.
var ErrBadFrame = errors.New("detect: unusable frame")

// Config tunes a Detector. Zero values take the defaults below.
type Config struct {
	// Strategy selects the detection variant. Default StrategySegment.
	Strategy Strategy

	// Tolerance is the half-width of the center box, in normalized units.
	// The rect strategy uses it as the maximum center-to-edge distance
	// instead. Default 0.05.
	Tolerance float64

	// WorkingWidth is the pixel width frames are downscaled to before
	// detection. Zero disables downscaling. Default 320.
	WorkingWidth int

	// MinLineLength is the minimum Hough segment length in pixels at
	// working resolution. Default 20.
	MinLineLength int

	// MinRectArea is the minimum rectangle area in square pixels at
	// working resolution. Default 100.
	MinRectArea int

	// Rectangularity is the minimum rectangularity score for the rect
	// strategy, in (0, 1]. Default 0.8.
	Rectangularity float64
}

func (c Config) withDefaults() Config {
	if c.Strategy == "" {
		c.Strategy = StrategySegment
	}
	if c.Tolerance == 0 {
		c.Tolerance = 0.05
	}
	if c.WorkingWidth == 0 {
		c.WorkingWidth = 320
	}
	if c.MinLineLength == 0 {
		c.MinLineLength = 20
	}
	if c.MinRectArea == 0 {
		c.MinRectArea = 100
	}
	if c.Rectangularity == 0 {
		c.Rectangularity = 0.8
	}
	return c
}

// Result is the outcome of one detection pass. Found=false is a normal
// outcome, not an error; Candidate is meaningful only when Found is true.
type Result struct {
	Found     bool
	Candidate Candidate
}

// Detector runs one detection strategy over camera frames. A Detector is
// stateless and safe for sequential reuse across frames.
type Detector struct {
	cfg Config
}

// New builds a Detector. Unknown strategies are rejected.
func New(cfg Config) (*Detector, error) {
	cfg = cfg.withDefaults()
	switch cfg.Strategy {
	case StrategyContour, StrategySegment, StrategyRect:
	default:
		return nil, fmt.Errorf("detect: unknown strategy %q", cfg.Strategy)
	}
	if cfg.Tolerance < 0 || cfg.Tolerance > 0.5 {
		return nil, fmt.Errorf("detect: tolerance %v outside (0, 0.5]", cfg.Tolerance)
	}
	return &Detector{cfg: cfg}, nil
}

// Detect runs one pass over a frame and reports whether a primitive passes
// the center test. The first qualifying candidate in the strategy's native
// order is returned; no best-match search is performed.
func (d *Detector) Detect(img image.Image) (Result, error) {
	if img == nil {
		return Result{}, fmt.Errorf("%w: nil image", ErrBadFrame)
	}
	if img.Bounds().Dx() < 3 || img.Bounds().Dy() < 3 {
		return Result{}, fmt.Errorf("%w: %dx%d", ErrBadFrame, img.Bounds().Dx(), img.Bounds().Dy())
	}

	prepared := prepare(img, d.cfg.WorkingWidth)
	edges, w, h := edgeMap(prepared)

	switch d.cfg.Strategy {
	case StrategySegment:
		return d.detectSegments(edges, w, h), nil
	case StrategyRect:
		return d.detectQuads(edges, w, h), nil
	default:
		return d.detectContours(edges, w, h), nil
	}
}

// center is the normalized image center all strategies test against.
var center = geom.Norm{X: 0.5, Y: 0.5}

// inCenterBox reports whether p lies inside the axis-aligned tolerance box
// around the image center. This is a square region, not a radius: both axes
// must be within tol independently.
func inCenterBox(p geom.Norm, tol float64) bool {
	dx := p.X - center.X
	if dx < 0 {
		dx = -dx
	}
	dy := p.Y - center.Y
	if dy < 0 {
		dy = -dy
	}
	return dx < tol && dy < tol
}

func (d *Detector) detectContours(edges [][]bool, w, h int) Result {
	for _, contour := range findContours(edges, w, h) {
		pts := normalize(contour, w, h)
		for _, p := range pts {
			if inCenterBox(p, d.cfg.Tolerance) {
				return Result{Found: true, Candidate: Contour(pts)}
			}
		}
	}
	return Result{}
}

func (d *Detector) detectSegments(edges [][]bool, w, h int) Result {
	for _, seg := range houghSegments(edges, w, h, d.cfg.MinLineLength) {
		a := normalizePoint(seg.start, w, h)
		b := normalizePoint(seg.end, w, h)
		if segmentMeetsBox(a, b, d.cfg.Tolerance) {
			return Result{Found: true, Candidate: Segment(a, b)}
		}
	}
	return Result{}
}

// segmentMeetsBox reports whether any point of the segment a-b lies inside
// the tolerance box around the center. Liang-Barsky clipping against the
// box edges.
func segmentMeetsBox(a, b geom.Norm, tol float64) bool {
	minX, maxX := center.X-tol, center.X+tol
	minY, maxY := center.Y-tol, center.Y+tol
	dx, dy := b.X-a.X, b.Y-a.Y

	t0, t1 := 0.0, 1.0
	clip := func(p, q float64) bool {
		if p == 0 {
			return q >= 0
		}
		r := q / p
		if p < 0 {
			if r > t1 {
				return false
			}
			if r > t0 {
				t0 = r
			}
			return true
		}
		if r < t0 {
			return false
		}
		if r < t1 {
			t1 = r
		}
		return true
	}
	return clip(-dx, a.X-minX) && clip(dx, maxX-a.X) &&
		clip(-dy, a.Y-minY) && clip(dy, maxY-a.Y)
}

func (d *Detector) detectQuads(edges [][]bool, w, h int) Result {
	contours := findContours(edges, w, h)
	for _, q := range findQuads(contours, d.cfg.MinRectArea, d.cfg.Rectangularity) {
		tl := normalizePoint(q.min, w, h)
		br := normalizePoint(q.max, w, h)
		tr := geom.Norm{X: br.X, Y: tl.Y}
		bl := geom.Norm{X: tl.X, Y: br.Y}

		cand := Quad(tl, tr, bl, br)
		if cand.EdgeDist(center) < d.cfg.Tolerance {
			return Result{Found: true, Candidate: cand}
		}
	}
	return Result{}
}

func normalizePoint(p image.Point, w, h int) geom.Norm {
	return geom.Norm{X: float64(p.X) / float64(w), Y: float64(p.Y) / float64(h)}
}

func normalize(pts []image.Point, w, h int) []geom.Norm {
	out := make([]geom.Norm, len(pts))
	for i, p := range pts {
		out[i] = normalizePoint(p, w, h)
	}
	return out
}

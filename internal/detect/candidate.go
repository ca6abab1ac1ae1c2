package detect

import (
	"math"

	"github.com/mfal/edgegauge/internal/geom"
)

// Kind identifies the primitive variant a Candidate carries.
type Kind int

const (
	KindContour Kind = iota
	KindSegment
	KindQuad
)

// String returns the lowercase variant name.
func (k Kind) String() string {
	switch k {
	case KindContour:
		return "contour"
	case KindSegment:
		return "segment"
	case KindQuad:
		return "quad"
	default:
		return "unknown"
	}
}

// Candidate is a detected 2D primitive in normalized image coordinates.
//
// The point layout depends on Kind: a contour is an ordered point sequence
// with at least one point, a segment is exactly two endpoints, and a quad is
// four corners in top-left, top-right, bottom-left, bottom-right order.
type Candidate struct {
	Kind Kind
	Pts  []geom.Norm
}

// Contour builds a contour candidate from an ordered point sequence.
func Contour(pts []geom.Norm) Candidate {
	return Candidate{Kind: KindContour, Pts: pts}
}

// Segment builds a line-segment candidate.
func Segment(a, b geom.Norm) Candidate {
	return Candidate{Kind: KindSegment, Pts: []geom.Norm{a, b}}
}

// Quad builds a rectangle candidate from its four corners.
func Quad(tl, tr, bl, br geom.Norm) Candidate {
	return Candidate{Kind: KindQuad, Pts: []geom.Norm{tl, tr, bl, br}}
}

// Points returns the candidate's boundary points.
func (c Candidate) Points() []geom.Norm {
	return c.Pts
}

// boundarySegments lists the candidate's boundary as endpoint pairs.
func (c Candidate) boundarySegments() [][2]geom.Norm {
	switch c.Kind {
	case KindSegment:
		if len(c.Pts) != 2 {
			return nil
		}
		return [][2]geom.Norm{{c.Pts[0], c.Pts[1]}}
	case KindQuad:
		if len(c.Pts) != 4 {
			return nil
		}
		tl, tr, bl, br := c.Pts[0], c.Pts[1], c.Pts[2], c.Pts[3]
		return [][2]geom.Norm{{tl, tr}, {tr, br}, {br, bl}, {bl, tl}}
	case KindContour:
		if len(c.Pts) < 2 {
			return nil
		}
		segs := make([][2]geom.Norm, 0, len(c.Pts)-1)
		for i := 1; i < len(c.Pts); i++ {
			segs = append(segs, [2]geom.Norm{c.Pts[i-1], c.Pts[i]})
		}
		return segs
	default:
		return nil
	}
}

// EdgeDist returns the shortest distance from p to the candidate's boundary.
// Single-point contours reduce to point distance.
func (c Candidate) EdgeDist(p geom.Norm) float64 {
	segs := c.boundarySegments()
	if len(segs) == 0 {
		if len(c.Pts) == 1 {
			return p.Dist(c.Pts[0])
		}
		return math.Inf(1)
	}
	best := math.Inf(1)
	for _, s := range segs {
		if d := geom.SegmentDist(p, s[0], s[1]); d < best {
			best = d
		}
	}
	return best
}

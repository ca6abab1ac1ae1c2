package detect

import (
	"image"
	"math"
	"sort"
)

// borderTol is how close (pixels) a contour pixel must sit to its bounding
// box border to count toward the rectangularity score. Gradient extraction
// widens a physical edge into a band a few pixels wide; the tolerance keeps
// the whole band on-border.
const borderTol = 3

// quad is an axis-aligned rectangle outline in working-resolution pixels.
type quad struct {
	min, max image.Point
}

func (q quad) area() int {
	return (q.max.X - q.min.X) * (q.max.Y - q.min.Y)
}

// findQuads filters contours down to rectangle outlines. The rectangularity
// score of a contour is the fraction of its pixels lying within borderTol of
// the contour's own bounding box border: a rectangle outline scores near 1
// regardless of edge-band thickness, while diagonals and circles leave most
// pixels in the interior. Quads below minArea or scoring under
// rectangularity are dropped. Output is sorted by area, largest first (the
// strategy's native order).
func findQuads(contours [][]image.Point, minArea int, rectangularity float64) []quad {
	var quads []quad

	for _, contour := range contours {
		if len(contour) < 4 {
			continue
		}

		minX, minY := math.MaxInt32, math.MaxInt32
		maxX, maxY := 0, 0
		for _, p := range contour {
			if p.X < minX {
				minX = p.X
			}
			if p.X > maxX {
				maxX = p.X
			}
			if p.Y < minY {
				minY = p.Y
			}
			if p.Y > maxY {
				maxY = p.Y
			}
		}

		q := quad{min: image.Point{X: minX, Y: minY}, max: image.Point{X: maxX, Y: maxY}}
		if q.area() < minArea {
			continue
		}

		onBorder := 0
		for _, p := range contour {
			d := p.X - minX
			if v := maxX - p.X; v < d {
				d = v
			}
			if v := p.Y - minY; v < d {
				d = v
			}
			if v := maxY - p.Y; v < d {
				d = v
			}
			if d <= borderTol {
				onBorder++
			}
		}

		if float64(onBorder)/float64(len(contour)) < rectangularity {
			continue
		}

		quads = append(quads, q)
	}

	sort.Slice(quads, func(i, j int) bool {
		return quads[i].area() > quads[j].area()
	})

	return quads
}

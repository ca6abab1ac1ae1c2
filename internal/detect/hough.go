package detect

import (
	"image"
	"math"
	"sort"
)

// maxSegments caps Hough output per frame.
const maxSegments = 25

// lineSeg is a detected line segment in working-resolution pixels.
type lineSeg struct {
	start, end image.Point
}

// houghSegments finds line segments in a binary edge map via the Hough
// transform. Peaks in (rho, theta) space are converted back to segments by
// collecting the edge pixels within 2px of each peak line and taking their
// extremes along the line. Segments shorter than minLength pixels are
// dropped. Output is ordered by vote count (the strategy's native order).
func houghSegments(edges [][]bool, width, height, minLength int) []lineSeg {
	maxDist := int(math.Sqrt(float64(width*width + height*height)))
	const numAngles = 180

	accumulator := make([][]int, maxDist*2)
	for i := range accumulator {
		accumulator[i] = make([]int, numAngles)
	}

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			if !edges[y][x] {
				continue
			}
			for theta := 0; theta < numAngles; theta++ {
				angle := float64(theta) * math.Pi / 180.0
				rho := float64(x)*math.Cos(angle) + float64(y)*math.Sin(angle)
				rhoIdx := int(rho) + maxDist
				if rhoIdx >= 0 && rhoIdx < maxDist*2 {
					accumulator[rhoIdx][theta]++
				}
			}
		}
	}

	type peak struct {
		rho   int
		theta int
		votes int
	}
	var peaks []peak
	threshold := minLength / 2
	if threshold < 2 {
		threshold = 2
	}

	for rhoIdx := 0; rhoIdx < maxDist*2; rhoIdx++ {
		for theta := 0; theta < numAngles; theta++ {
			if accumulator[rhoIdx][theta] < threshold {
				continue
			}
			// Keep only local maxima in a 5x5 neighborhood.
			isMax := true
			for dr := -2; dr <= 2 && isMax; dr++ {
				for dt := -2; dt <= 2 && isMax; dt++ {
					if dr == 0 && dt == 0 {
						continue
					}
					nr := rhoIdx + dr
					nt := (theta + dt + numAngles) % numAngles
					if nr >= 0 && nr < maxDist*2 && accumulator[nr][nt] > accumulator[rhoIdx][theta] {
						isMax = false
					}
				}
			}
			if isMax {
				peaks = append(peaks, peak{rho: rhoIdx - maxDist, theta: theta, votes: accumulator[rhoIdx][theta]})
			}
		}
	}

	sort.Slice(peaks, func(i, j int) bool {
		return peaks[i].votes > peaks[j].votes
	})

	var segs []lineSeg
	for _, pk := range peaks {
		if len(segs) >= maxSegments {
			break
		}

		angle := float64(pk.theta) * math.Pi / 180.0
		rho := float64(pk.rho)
		cosA := math.Cos(angle)
		sinA := math.Sin(angle)

		// Collect edge pixels lying on the peak line.
		var linePoints []image.Point
		for y := 0; y < height; y++ {
			for x := 0; x < width; x++ {
				if !edges[y][x] {
					continue
				}
				if math.Abs(float64(x)*cosA+float64(y)*sinA-rho) < 2.0 {
					linePoints = append(linePoints, image.Point{X: x, Y: y})
				}
			}
		}
		if len(linePoints) < minLength {
			continue
		}

		// Segment endpoints are the extreme projections along the line.
		var start, end image.Point
		minProj := math.MaxFloat64
		maxProj := -math.MaxFloat64
		for _, p := range linePoints {
			// Projection onto the line's direction (-sinA, cosA).
			d := -float64(p.X)*sinA + float64(p.Y)*cosA
			if d < minProj {
				minProj = d
				start = p
			}
			if d > maxProj {
				maxProj = d
				end = p
			}
		}

		dx := float64(end.X - start.X)
		dy := float64(end.Y - start.Y)
		if math.Sqrt(dx*dx+dy*dy) < float64(minLength) {
			continue
		}

		segs = append(segs, lineSeg{start: start, end: end})
	}

	return segs
}

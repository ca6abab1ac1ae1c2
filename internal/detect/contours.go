package detect

import "image"

// minContourSize discards tiny connected components as noise.
const minContourSize = 10

// findContours groups connected edge pixels into contours using flood-fill
// with 8-connectivity. Contours smaller than minContourSize pixels are
// dropped. Output order is scan order of each contour's first pixel; this is
// the strategy's native candidate order.
func findContours(edges [][]bool, width, height int) [][]image.Point {
	visited := make([][]bool, height)
	for y := 0; y < height; y++ {
		visited[y] = make([]bool, width)
	}

	var contours [][]image.Point
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			if edges[y][x] && !visited[y][x] {
				contour := floodFill(edges, visited, x, y, width, height)
				if len(contour) >= minContourSize {
					contours = append(contours, contour)
				}
			}
		}
	}

	return contours
}

// floodFill collects the connected component containing (startX, startY).
// Iterative stack traversal; recursion would overflow on large components.
func floodFill(edges, visited [][]bool, startX, startY, width, height int) []image.Point {
	var contour []image.Point
	stack := []image.Point{{X: startX, Y: startY}}

	for len(stack) > 0 {
		p := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if p.X < 0 || p.X >= width || p.Y < 0 || p.Y >= height {
			continue
		}
		if visited[p.Y][p.X] || !edges[p.Y][p.X] {
			continue
		}

		visited[p.Y][p.X] = true
		contour = append(contour, p)

		for dy := -1; dy <= 1; dy++ {
			for dx := -1; dx <= 1; dx++ {
				if dx == 0 && dy == 0 {
					continue
				}
				stack = append(stack, image.Point{X: p.X + dx, Y: p.Y + dy})
			}
		}
	}

	return contour
}

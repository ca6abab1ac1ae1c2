package detect

import (
	"image"
	"math"

	"github.com/anthonynsimon/bild/blur"
	"github.com/disintegration/imaging"
)

// gradientThreshold is the minimum grayscale step between neighboring pixels
// for a pixel to count as an edge.
const gradientThreshold = 30.0

// blurRadius for pre-detection smoothing, roughly a 5x5 Gaussian.
const blurRadius = 1.4

// prepare downscales a frame to the working width (preserving aspect ratio),
// converts it to grayscale, and smooths it. Frames already at or below the
// working width are not resampled.
func prepare(img image.Image, workingWidth int) image.Image {
	if workingWidth > 0 && img.Bounds().Dx() > workingWidth {
		img = imaging.Resize(img, workingWidth, 0, imaging.Lanczos)
	}
	return blur.Gaussian(imaging.Grayscale(img), blurRadius)
}

// edgeMap marks pixels whose horizontal or vertical gradient exceeds the
// threshold. Border pixels are never edges.
func edgeMap(img image.Image) ([][]bool, int, int) {
	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()

	edges := make([][]bool, height)
	for y := 0; y < height; y++ {
		edges[y] = make([]bool, width)
		for x := 0; x < width; x++ {
			if x == 0 || y == 0 || x == width-1 || y == height-1 {
				continue
			}

			c := grayValue(img, x+bounds.Min.X, y+bounds.Min.Y)
			cx := grayValue(img, x+1+bounds.Min.X, y+bounds.Min.Y)
			cy := grayValue(img, x+bounds.Min.X, y+1+bounds.Min.Y)

			dx := math.Abs(float64(c) - float64(cx))
			dy := math.Abs(float64(c) - float64(cy))

			if dx > gradientThreshold || dy > gradientThreshold {
				edges[y][x] = true
			}
		}
	}

	return edges, width, height
}

// grayValue converts a pixel to grayscale using ITU-R BT.601 luminance
// weights: Y = 0.299*R + 0.587*G + 0.114*B.
func grayValue(img image.Image, x, y int) uint8 {
	r, g, b, _ := img.At(x, y).RGBA()
	return uint8(float64(r>>8)*0.299 + float64(g>>8)*0.587 + float64(b>>8)*0.114)
}

package overlay

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"os"
	"path/filepath"

	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/mfal/edgegauge/internal/geom"
)

// Renderer writes PNG snapshots of a frame with its overlay geometry drawn
// on top. Snapshots land in Dir as overlay-NNNN.png.
type Renderer struct {
	Dir string
}

// Snapshot composites geometry onto a copy of frame and writes it. Hidden
// geometry produces a bare frame copy, so snapshot sequences make clear when
// the overlay went invisible.
func (r Renderer) Snapshot(frame image.Image, g Geometry, seq int) error {
	bounds := frame.Bounds()
	out := image.NewRGBA(bounds)
	draw.Draw(out, bounds, frame, bounds.Min, draw.Src)

	if g.Visible {
		mid := geom.Screen{
			X: (g.Line[0].X + g.Line[1].X) / 2,
			Y: (g.Line[0].Y + g.Line[1].Y) / 2,
		}
		c := lineColor(frame, mid)

		drawSegment(out, g.Line[0], g.Line[1], c)
		for i := 1; i < len(g.Outline); i++ {
			drawSegment(out, g.Outline[i-1], g.Outline[i], c)
		}
	}

	path := filepath.Join(r.Dir, fmt.Sprintf("overlay-%04d.png", seq))
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create snapshot: %w", err)
	}
	defer f.Close()

	if err := png.Encode(f, out); err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}
	return nil
}

// lineColor picks an overlay color that stands out against the frame content
// under the measurement line: the sampled color's hue rotated half way
// around, at full saturation, flipped to the opposite lightness band.
func lineColor(frame image.Image, at geom.Screen) color.Color {
	x, y := int(at.X), int(at.Y)
	b := frame.Bounds()
	if x < b.Min.X || x >= b.Max.X || y < b.Min.Y || y >= b.Max.Y {
		return color.RGBA{R: 255, A: 255}
	}

	sampled, ok := colorful.MakeColor(frame.At(x, y))
	if !ok {
		return color.RGBA{R: 255, A: 255}
	}

	h, _, l := sampled.Hsl()
	opposite := 0.25
	if l < 0.5 {
		opposite = 0.75
	}
	return colorful.Hsl(h+180, 1, opposite).Clamped()
}

// drawSegment rasterizes a 1px line using integer DDA stepping.
func drawSegment(img *image.RGBA, a, b geom.Screen, c color.Color) {
	dx := b.X - a.X
	dy := b.Y - a.Y

	steps := dx
	if steps < 0 {
		steps = -steps
	}
	if v := dy; v < 0 {
		v = -v
		if v > steps {
			steps = v
		}
	} else if v > steps {
		steps = v
	}
	n := int(steps)
	if n == 0 {
		n = 1
	}

	bounds := img.Bounds()
	for i := 0; i <= n; i++ {
		t := float64(i) / float64(n)
		x := int(a.X + dx*t)
		y := int(a.Y + dy*t)
		if x >= bounds.Min.X && x < bounds.Max.X && y >= bounds.Min.Y && y < bounds.Max.Y {
			img.Set(x, y, c)
		}
	}
}

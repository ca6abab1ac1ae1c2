package overlay

import (
	"image"
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/mfal/edgegauge/internal/geom"
)

func whiteFrame(w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.White)
		}
	}
	return img
}

func TestSnapshot_DrawsLine(t *testing.T) {
	dir := t.TempDir()
	r := Renderer{Dir: dir}

	g := Geometry{
		Visible: true,
		Line:    [2]geom.Screen{{X: 10, Y: 20}, {X: 40, Y: 20}},
	}
	if err := r.Snapshot(whiteFrame(64, 64), g, 1); err != nil {
		t.Fatalf("Snapshot: %v", err)
	}

	path := filepath.Join(dir, "overlay-0001.png")
	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("snapshot not written: %v", err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		t.Fatalf("decode snapshot: %v", err)
	}

	// Midpoint of the line must differ from the white background.
	cr, cg, cb, _ := img.At(25, 20).RGBA()
	if cr>>8 == 255 && cg>>8 == 255 && cb>>8 == 255 {
		t.Error("line midpoint still background-colored")
	}
	// Away from the line nothing is drawn.
	cr, cg, cb, _ = img.At(25, 50).RGBA()
	if cr>>8 != 255 || cg>>8 != 255 || cb>>8 != 255 {
		t.Error("pixel away from overlay was modified")
	}
}

func TestSnapshot_HiddenGeometryDrawsNothing(t *testing.T) {
	dir := t.TempDir()
	r := Renderer{Dir: dir}

	if err := r.Snapshot(whiteFrame(32, 32), Hidden(), 2); err != nil {
		t.Fatalf("Snapshot: %v", err)
	}

	f, err := os.Open(filepath.Join(dir, "overlay-0002.png"))
	if err != nil {
		t.Fatalf("snapshot not written: %v", err)
	}
	defer f.Close()
	img, _, err := image.Decode(f)
	if err != nil {
		t.Fatalf("decode snapshot: %v", err)
	}

	for y := 0; y < 32; y += 8 {
		for x := 0; x < 32; x += 8 {
			cr, cg, cb, _ := img.At(x, y).RGBA()
			if cr>>8 != 255 || cg>>8 != 255 || cb>>8 != 255 {
				t.Fatalf("hidden overlay modified pixel (%d,%d)", x, y)
			}
		}
	}
}

func TestSnapshot_OutlinePolyline(t *testing.T) {
	dir := t.TempDir()
	r := Renderer{Dir: dir}

	g := Geometry{
		Visible: true,
		Line:    [2]geom.Screen{{X: 5, Y: 5}, {X: 6, Y: 5}},
		Outline: []geom.Screen{{X: 10, Y: 40}, {X: 50, Y: 40}, {X: 50, Y: 55}},
	}
	if err := r.Snapshot(whiteFrame(64, 64), g, 3); err != nil {
		t.Fatalf("Snapshot: %v", err)
	}

	f, err := os.Open(filepath.Join(dir, "overlay-0003.png"))
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	img, _, err := image.Decode(f)
	if err != nil {
		t.Fatal(err)
	}

	cr, cg, cb, _ := img.At(30, 40).RGBA()
	if cr>>8 == 255 && cg>>8 == 255 && cb>>8 == 255 {
		t.Error("outline segment not drawn")
	}
	cr, cg, cb, _ = img.At(50, 48).RGBA()
	if cr>>8 == 255 && cg>>8 == 255 && cb>>8 == 255 {
		t.Error("second outline segment not drawn")
	}
}

package frames

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

func writeTestPNG(t *testing.T, path string, c color.Color) {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 8, 8))
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			img.Set(x, y, c)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create %s: %v", path, err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatalf("encode %s: %v", path, err)
	}
}

func TestCache_LoadAndEvict(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "frame.png")
	writeTestPNG(t, path, color.White)

	cache := NewCache()
	img, err := cache.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if img.Bounds().Dx() != 8 {
		t.Errorf("width: got %d, want 8", img.Bounds().Dx())
	}
	if cache.Len() != 1 {
		t.Errorf("Len: got %d, want 1", cache.Len())
	}

	// Cached: deleting the file must not matter.
	if err := os.Remove(path); err != nil {
		t.Fatal(err)
	}
	if _, err := cache.Load(path); err != nil {
		t.Errorf("cached Load after delete: %v", err)
	}

	cache.Evict(path)
	if _, err := cache.Load(path); err == nil {
		t.Error("Load after eviction of a deleted file must fail")
	}
}

func TestCache_LoadErrors(t *testing.T) {
	cache := NewCache()
	if _, err := cache.Load("/nonexistent/frame.png"); err == nil {
		t.Error("missing file must error")
	}

	dir := t.TempDir()
	bad := filepath.Join(dir, "bad.png")
	if err := os.WriteFile(bad, []byte("not a png"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := cache.Load(bad); err == nil {
		t.Error("undecodable file must error")
	}
}

func TestDirSource_ReplayOrder(t *testing.T) {
	dir := t.TempDir()
	writeTestPNG(t, filepath.Join(dir, "b.png"), color.Black)
	writeTestPNG(t, filepath.Join(dir, "a.png"), color.White)

	src, err := NewDirSource(dir, nil)
	if err != nil {
		t.Fatalf("NewDirSource: %v", err)
	}
	if src.Len() != 2 {
		t.Fatalf("Len: got %d, want 2", src.Len())
	}

	// Lexical order: a.png (white) first.
	first := src.CurrentFrame()
	if first == nil {
		t.Fatal("first frame missing")
	}
	r, _, _, _ := first.At(0, 0).RGBA()
	if r>>8 != 255 {
		t.Errorf("first frame should be white, got r=%d", r>>8)
	}

	if src.CurrentFrame() == nil {
		t.Fatal("second frame missing")
	}
	if got := src.CurrentFrame(); got != nil {
		t.Error("exhausted source must return nil")
	}
	if src.Remaining() != 0 {
		t.Errorf("Remaining: got %d, want 0", src.Remaining())
	}
}

func TestDirSource_EmptyDir(t *testing.T) {
	if _, err := NewDirSource(t.TempDir(), nil); err == nil {
		t.Error("empty directory must be rejected")
	}
}

func TestDirSource_SkipsUndecodable(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "a.png"), []byte("junk"), 0o644); err != nil {
		t.Fatal(err)
	}
	writeTestPNG(t, filepath.Join(dir, "b.png"), color.White)

	src, err := NewDirSource(dir, nil)
	if err != nil {
		t.Fatalf("NewDirSource: %v", err)
	}
	if src.CurrentFrame() == nil {
		t.Error("source must skip the undecodable frame and serve the next")
	}
}

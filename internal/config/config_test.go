package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/mfal/edgegauge/internal/detect"
	"github.com/mfal/edgegauge/internal/scene"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "edgegauge.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestDefaultValidates(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Fatalf("defaults must validate: %v", err)
	}
}

func TestLoad_OverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
detect:
  strategy: rect
  tolerance: 0.03
measure:
  offset_px: 10
pipeline:
  tick: 500ms
planes:
  - origin: [0, -1.2, 0]
    normal: [0, 1, 0]
    alignment: horizontal
  - origin: [0, 0, -2]
    normal: [0, 0, 1]
    alignment: vertical
    extent: 1.5
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Detect.Strategy != "rect" || cfg.Detect.Tolerance != 0.03 {
		t.Errorf("detect section not applied: %+v", cfg.Detect)
	}
	if cfg.Measure.OffsetPx != 10 {
		t.Errorf("offset: got %v, want 10", cfg.Measure.OffsetPx)
	}
	if cfg.Pipeline.Tick.Duration != 500*time.Millisecond {
		t.Errorf("tick: got %v, want 500ms", cfg.Pipeline.Tick.Duration)
	}
	// Untouched fields keep defaults.
	if cfg.Camera.Fx != 525 || cfg.Pipeline.FrameInterval.Duration != 33*time.Millisecond {
		t.Errorf("defaults lost: %+v %+v", cfg.Camera, cfg.Pipeline)
	}

	planes := cfg.ScenePlanes()
	if len(planes) != 2 {
		t.Fatalf("planes: got %d, want 2", len(planes))
	}
	if planes[0].Alignment != scene.AlignmentHorizontal {
		t.Errorf("plane 0 alignment: got %v", planes[0].Alignment)
	}
	if planes[1].Extent != 1.5 {
		t.Errorf("plane 1 extent: got %v", planes[1].Extent)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("EDGEGAUGE_STRATEGY", "contour")
	t.Setenv("EDGEGAUGE_FRAMES_DIR", "/tmp/replay-frames")

	cfg, err := Load(writeConfig(t, `
detect:
  strategy: rect
`))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Detect.Strategy != "contour" {
		t.Errorf("strategy = %q, want env override %q", cfg.Detect.Strategy, "contour")
	}
	if cfg.Replay.FramesDir != "/tmp/replay-frames" {
		t.Errorf("frames_dir = %q, want env override", cfg.Replay.FramesDir)
	}
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"bad strategy", "detect:\n  strategy: hexagon\n"},
		{"bad tolerance", "detect:\n  tolerance: 0.9\n"},
		{"bad offset", "measure:\n  offset_px: -5\n"},
		{"bad duration", "pipeline:\n  tick: soon\n"},
		{"zero normal", "planes:\n  - origin: [0, 0, -1]\n    normal: [0, 0, 0]\n"},
		{"bad alignment", "planes:\n  - normal: [0, 0, 1]\n    alignment: diagonal\n"},
		{"not yaml", "{{{{"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Load(writeConfig(t, tt.body)); err == nil {
				t.Error("expected an error")
			}
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Error("missing file must error")
	}
}

func TestDetectorConfigRoundTrip(t *testing.T) {
	cfg := Default()
	dc := cfg.DetectorConfig()
	if dc.Strategy != detect.StrategySegment || dc.Tolerance != 0.05 {
		t.Errorf("DetectorConfig: %+v", dc)
	}
	if _, err := detect.New(dc); err != nil {
		t.Errorf("default detector config must construct: %v", err)
	}
}

func TestSceneCamera(t *testing.T) {
	cam := Default().SceneCamera()
	if cam.Width != 640 || cam.Height != 480 {
		t.Errorf("camera viewport: %+v", cam)
	}
	// Default camera looks down -Z from the origin: the center ray must
	// project the point (0,0,-1) back to the principal point.
	pt, ok := cam.Project(vec([3]float64{0, 0, -1}))
	if !ok || pt.X != cam.Cx || pt.Y != cam.Cy {
		t.Errorf("center projection: got %+v ok=%v", pt, ok)
	}
}

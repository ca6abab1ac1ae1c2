// Package config loads edgegauge settings from a YAML file with defaults
// for every field, including the replay scene definition. A few settings
// can also be overridden from the environment.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/mfal/edgegauge/internal/detect"
	"github.com/mfal/edgegauge/internal/geom"
	"github.com/mfal/edgegauge/internal/scene"
)

// Duration wraps time.Duration for YAML fields written as "1s" or "33ms".
type Duration struct {
	time.Duration
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", s, err)
	}
	d.Duration = parsed
	return nil
}

// Detect tunes the feature detector.
type Detect struct {
	Strategy       string  `yaml:"strategy"`
	Tolerance      float64 `yaml:"tolerance"`
	WorkingWidth   int     `yaml:"working_width"`
	MinLineLength  int     `yaml:"min_line_length"`
	MinRectArea    int     `yaml:"min_rect_area"`
	Rectangularity float64 `yaml:"rectangularity"`
}

// Measure tunes the spatial measurer.
type Measure struct {
	OffsetPx float64 `yaml:"offset_px"`
}

// Pipeline tunes the sampling cadences.
type Pipeline struct {
	Tick          Duration `yaml:"tick"`           // detection cadence
	FrameInterval Duration `yaml:"frame_interval"` // re-projection cadence
}

// Camera describes the replay scene's pinhole camera.
type Camera struct {
	Fx     float64    `yaml:"fx"`
	Fy     float64    `yaml:"fy"`
	Cx     float64    `yaml:"cx"`
	Cy     float64    `yaml:"cy"`
	Width  int        `yaml:"width"`
	Height int        `yaml:"height"`
	Eye    [3]float64 `yaml:"eye"`
	LookAt [3]float64 `yaml:"look_at"`
}

// Plane describes one estimated surface in the replay scene.
type Plane struct {
	Origin    [3]float64 `yaml:"origin"`
	Normal    [3]float64 `yaml:"normal"`
	Extent    float64    `yaml:"extent"`
	Alignment string     `yaml:"alignment"` // any | horizontal | vertical
}

// Replay locates frame input and snapshot output.
type Replay struct {
	FramesDir   string `yaml:"frames_dir"`
	SnapshotDir string `yaml:"snapshot_dir"`
}

// Config is the root document.
type Config struct {
	Detect   Detect   `yaml:"detect"`
	Measure  Measure  `yaml:"measure"`
	Pipeline Pipeline `yaml:"pipeline"`
	Camera   Camera   `yaml:"camera"`
	Planes   []Plane  `yaml:"planes"`
	Replay   Replay   `yaml:"replay"`
}

// Default returns the built-in configuration: segment strategy, 0.05 center
// tolerance, 50px sampling offset, 1s detection tick, and a single vertical
// plane one meter in front of a VGA camera.
func Default() Config {
	return Config{
		Detect: Detect{
			Strategy:       string(detect.StrategySegment),
			Tolerance:      0.05,
			WorkingWidth:   320,
			MinLineLength:  20,
			MinRectArea:    100,
			Rectangularity: 0.8,
		},
		Measure:  Measure{OffsetPx: 50},
		Pipeline: Pipeline{Tick: Duration{time.Second}, FrameInterval: Duration{33 * time.Millisecond}},
		Camera: Camera{
			Fx: 525, Fy: 525, Cx: 320, Cy: 240,
			Width: 640, Height: 480,
			Eye:    [3]float64{0, 0, 0},
			LookAt: [3]float64{0, 0, -1},
		},
		Planes: []Plane{{
			Origin:    [3]float64{0, 0, -1},
			Normal:    [3]float64{0, 0, 1},
			Alignment: "vertical",
		}},
	}
}

// Load reads a YAML file over the defaults. Fields absent from the file keep
// their default values.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	cfg.applyEnv()
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// applyEnv overlays the environment variables that are useful to flip
// without editing the file.
func (c *Config) applyEnv() {
	if v := os.Getenv("EDGEGAUGE_STRATEGY"); v != "" {
		c.Detect.Strategy = v
	}
	if v := os.Getenv("EDGEGAUGE_FRAMES_DIR"); v != "" {
		c.Replay.FramesDir = v
	}
	if v := os.Getenv("EDGEGAUGE_SNAPSHOT_DIR"); v != "" {
		c.Replay.SnapshotDir = v
	}
}

// Validate rejects settings the pipeline cannot run with.
func (c Config) Validate() error {
	switch detect.Strategy(c.Detect.Strategy) {
	case detect.StrategyContour, detect.StrategySegment, detect.StrategyRect:
	default:
		return fmt.Errorf("config: unknown detect strategy %q", c.Detect.Strategy)
	}
	if c.Detect.Tolerance <= 0 || c.Detect.Tolerance > 0.5 {
		return fmt.Errorf("config: tolerance %v outside (0, 0.5]", c.Detect.Tolerance)
	}
	if c.Measure.OffsetPx <= 0 {
		return fmt.Errorf("config: offset_px must be positive, got %v", c.Measure.OffsetPx)
	}
	if c.Pipeline.Tick.Duration <= 0 || c.Pipeline.FrameInterval.Duration <= 0 {
		return fmt.Errorf("config: tick and frame_interval must be positive")
	}
	if c.Camera.Fx <= 0 || c.Camera.Fy <= 0 || c.Camera.Width <= 0 || c.Camera.Height <= 0 {
		return fmt.Errorf("config: camera intrinsics incomplete")
	}
	for i, p := range c.Planes {
		if p.Normal == ([3]float64{}) {
			return fmt.Errorf("config: plane %d has zero normal", i)
		}
		if _, err := parseAlignment(p.Alignment); err != nil {
			return fmt.Errorf("config: plane %d: %w", i, err)
		}
	}
	return nil
}

// DetectorConfig converts the detect section.
func (c Config) DetectorConfig() detect.Config {
	return detect.Config{
		Strategy:       detect.Strategy(c.Detect.Strategy),
		Tolerance:      c.Detect.Tolerance,
		WorkingWidth:   c.Detect.WorkingWidth,
		MinLineLength:  c.Detect.MinLineLength,
		MinRectArea:    c.Detect.MinRectArea,
		Rectangularity: c.Detect.Rectangularity,
	}
}

// SceneCamera builds the replay camera.
func (c Config) SceneCamera() scene.Camera {
	eye := vec(c.Camera.Eye)
	return scene.Camera{
		Fx: c.Camera.Fx, Fy: c.Camera.Fy,
		Cx: c.Camera.Cx, Cy: c.Camera.Cy,
		Width: c.Camera.Width, Height: c.Camera.Height,
		Pose: geom.LookAtPose(eye, vec(c.Camera.LookAt), geom.World{Y: 1}),
	}
}

// ScenePlanes builds the replay surface model.
func (c Config) ScenePlanes() []scene.Plane {
	planes := make([]scene.Plane, len(c.Planes))
	for i, p := range c.Planes {
		align, _ := parseAlignment(p.Alignment)
		planes[i] = scene.Plane{
			Origin:    vec(p.Origin),
			Normal:    vec(p.Normal),
			Extent:    p.Extent,
			Alignment: align,
		}
	}
	return planes
}

func parseAlignment(s string) (scene.Alignment, error) {
	switch s {
	case "", "any":
		return scene.AlignmentAny, nil
	case "horizontal":
		return scene.AlignmentHorizontal, nil
	case "vertical":
		return scene.AlignmentVertical, nil
	default:
		return 0, fmt.Errorf("unknown alignment %q", s)
	}
}

func vec(v [3]float64) geom.World {
	return geom.World{X: v[0], Y: v[1], Z: v[2]}
}

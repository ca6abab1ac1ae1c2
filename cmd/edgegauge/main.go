package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"image"
	"io"
	"log"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/mfal/edgegauge/internal/config"
	"github.com/mfal/edgegauge/internal/detect"
	"github.com/mfal/edgegauge/internal/frames"
	"github.com/mfal/edgegauge/internal/measure"
	"github.com/mfal/edgegauge/internal/overlay"
	"github.com/mfal/edgegauge/internal/pipeline"
	"github.com/mfal/edgegauge/internal/scene"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "--version", "-v", "version":
			fmt.Printf("edgegauge %s\n", Version)
			fmt.Printf("  Build time: %s\n", BuildTime)
			fmt.Printf("  Git commit: %s\n", GitCommit)
			return
		case "--help", "-h", "help":
			fmt.Println("edgegauge - headless edge-length measurement over replayed AR frames")
			fmt.Println()
			fmt.Println("Usage: edgegauge [options]")
			fmt.Println()
			fmt.Println("Options:")
			fmt.Println("  -config path     YAML configuration file")
			fmt.Println("  -frames dir      directory of replay frames (overrides config)")
			fmt.Println("  -snapshots dir   write overlay snapshots here (overrides config)")
			fmt.Println("  --version, -v    Print version information")
			fmt.Println("  --help, -h       Print this help message")
			fmt.Println()
			fmt.Println("Environment variables:")
			fmt.Println("  EDGEGAUGE_LOG_LEVEL=debug    Enable debug logging")
			fmt.Println()
			fmt.Println("Measurements are emitted as JSON lines on stdout.")
			return
		}
	}

	// Logging goes to stderr; stdout carries the measurement stream.
	log.SetOutput(os.Stderr)
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)

	debug := os.Getenv("EDGEGAUGE_LOG_LEVEL") == "debug"
	if debug {
		log.Printf("edgegauge v%s (built %s, commit %s)", Version, BuildTime, GitCommit)
	}

	configPath := flag.String("config", "", "YAML configuration file")
	framesDir := flag.String("frames", "", "directory of replay frames")
	snapshotDir := flag.String("snapshots", "", "directory for overlay snapshots")
	flag.Parse()

	cfg := config.Default()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			log.Fatalf("config: %v", err)
		}
		cfg = loaded
	}
	if *framesDir != "" {
		cfg.Replay.FramesDir = *framesDir
	}
	if *snapshotDir != "" {
		cfg.Replay.SnapshotDir = *snapshotDir
	}

	if err := run(cfg, debug); err != nil {
		log.Fatalf("edgegauge: %v", err)
	}
}

func run(cfg config.Config, debug bool) error {
	if cfg.Replay.FramesDir == "" {
		return errors.New("a frames directory is required (-frames or replay.frames_dir)")
	}

	src, err := frames.NewDirSource(cfg.Replay.FramesDir, frames.NewCache())
	if err != nil {
		return err
	}

	detector, err := detect.New(cfg.DetectorConfig())
	if err != nil {
		return err
	}

	session := scene.NewSession(cfg.SceneCamera(), cfg.ScenePlanes())
	measurer := measure.Measurer{Offset: cfg.Measure.OffsetPx, Caster: session}
	emitter := newEmitter(os.Stdout)

	opts := pipeline.Options{
		Source:        src,
		Detector:      detector,
		Measurer:      measurer,
		Projector:     session,
		Lengths:       emitter,
		Statuses:      emitter,
		Tick:          cfg.Pipeline.Tick.Duration,
		FrameInterval: cfg.Pipeline.FrameInterval.Duration,
		Viewport:      image.Point{X: cfg.Camera.Width, Y: cfg.Camera.Height},
		Debug:         debug,
	}

	if cfg.Replay.SnapshotDir != "" {
		if err := os.MkdirAll(cfg.Replay.SnapshotDir, 0o755); err != nil {
			return fmt.Errorf("snapshot dir: %w", err)
		}
		opts.Overlays = &snapshotSink{
			renderer: overlay.Renderer{Dir: cfg.Replay.SnapshotDir},
			canvas:   blankCanvas(cfg.Camera.Width, cfg.Camera.Height),
		}
	}

	p, err := pipeline.New(opts)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// The replay serves one frame per tick; give it room to finish, then
	// stop instead of spinning on an exhausted source.
	budget := time.Duration(src.Len()+2) * cfg.Pipeline.Tick.Duration
	ctx, cancel := context.WithTimeout(ctx, budget)
	defer cancel()

	log.Printf("replaying %d frames from %s (strategy=%s, offset=%.0fpx)",
		src.Len(), cfg.Replay.FramesDir, cfg.Detect.Strategy, cfg.Measure.OffsetPx)
	return p.Run(ctx)
}

// event is one stdout JSON line.
type event struct {
	Time   string  `json:"time"`
	Kind   string  `json:"kind"`
	Found  bool    `json:"found"`
	Meters float64 `json:"meters,omitempty"`
	Reason string  `json:"reason,omitempty"`
}

// emitter streams pipeline output as JSON lines.
type emitter struct {
	mu  sync.Mutex
	enc *json.Encoder
}

func newEmitter(w io.Writer) *emitter {
	return &emitter{enc: json.NewEncoder(w)}
}

func (e *emitter) PublishLength(meters float64) {
	e.emit(event{Kind: "length", Found: true, Meters: meters})
}

func (e *emitter) PublishStatus(s pipeline.Status) {
	e.emit(event{Kind: "status", Found: s.Found, Meters: s.Meters, Reason: s.Reason.String()})
}

func (e *emitter) emit(ev event) {
	ev.Time = time.Now().UTC().Format(time.RFC3339Nano)
	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.enc.Encode(ev); err != nil {
		log.Printf("emit: %v", err)
	}
}

// snapshotSink renders overlay geometry onto a blank viewport canvas,
// writing a snapshot only when the geometry actually changes.
type snapshotSink struct {
	renderer overlay.Renderer
	canvas   image.Image

	last    overlay.Geometry
	written bool
	seq     int
}

func (s *snapshotSink) UpdateOverlay(g overlay.Geometry) {
	if s.written && sameGeometry(s.last, g) {
		return
	}
	s.seq++
	if err := s.renderer.Snapshot(s.canvas, g, s.seq); err != nil {
		log.Printf("snapshot: %v", err)
		return
	}
	s.last = g
	s.written = true
}

func sameGeometry(a, b overlay.Geometry) bool {
	if a.Visible != b.Visible || a.Line != b.Line || len(a.Outline) != len(b.Outline) {
		return false
	}
	for i := range a.Outline {
		if a.Outline[i] != b.Outline[i] {
			return false
		}
	}
	return true
}

func blankCanvas(w, h int) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for i := range img.Pix {
		img.Pix[i] = 0xff
	}
	return img
}

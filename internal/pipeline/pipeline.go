package pipeline

import (
	"context"
	"errors"
	"image"
	"log"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/mfal/edgegauge/internal/detect"
	"github.com/mfal/edgegauge/internal/geom"
	"github.com/mfal/edgegauge/internal/measure"
	"github.com/mfal/edgegauge/internal/overlay"
	"github.com/mfal/edgegauge/internal/scene"
)

// Reason classifies the outcome of a detection cycle or a re-projection
// pass. None of these are errors: every reason is a normal, recoverable
// state of the measurement loop.
type Reason int

const (
	ReasonMeasured Reason = iota
	ReasonNoFrame
	ReasonNoDetection
	ReasonBackendFailure
	ReasonRaycastMiss
	ReasonProjectionMiss
)

func (r Reason) String() string {
	switch r {
	case ReasonMeasured:
		return "measured"
	case ReasonNoFrame:
		return "no-frame"
	case ReasonNoDetection:
		return "no-detection"
	case ReasonBackendFailure:
		return "backend-failure"
	case ReasonRaycastMiss:
		return "raycast-miss"
	case ReasonProjectionMiss:
		return "projection-miss"
	default:
		return "unknown"
	}
}

// Status is published once per completed detection cycle.
type Status struct {
	Found  bool
	Reason Reason
	Meters float64
}

// LengthSink receives one scalar per successful measurement.
type LengthSink interface {
	PublishLength(meters float64)
}

// OverlaySink receives drawing geometry at re-projection cadence.
type OverlaySink interface {
	UpdateOverlay(g overlay.Geometry)
}

// StatusSink receives per-cycle outcomes, including failures by reason.
type StatusSink interface {
	PublishStatus(s Status)
}

// FeatureDetector is the detection dependency; detect.Detector satisfies it.
type FeatureDetector interface {
	Detect(img image.Image) (detect.Result, error)
}

// DistanceMeasurer is the measurement dependency; measure.Measurer
// satisfies it.
type DistanceMeasurer interface {
	Measure(center geom.Screen) measure.Measurement
}

// Options wires a Pipeline. Source, Detector, Measurer, and Projector are
// required; sinks are optional and default to no-ops.
type Options struct {
	Source    scene.FrameSource
	Detector  FeatureDetector
	Measurer  DistanceMeasurer
	Projector scene.Projector

	Lengths  LengthSink
	Overlays OverlaySink
	Statuses StatusSink

	// Tick is the detection sampling cadence. Default 1s.
	Tick time.Duration

	// FrameInterval drives re-projection from an internal ticker. Zero
	// disables the ticker; callers then drive re-projection via OnFrame.
	FrameInterval time.Duration

	// Viewport is the screen-space size in pixels. Detection results in
	// normalized coordinates are mapped into it, and its center is the
	// primary measurement point.
	Viewport image.Point

	// Debug enables per-cycle logging.
	Debug bool
}

// Pipeline runs the measurement loop across its two concurrency domains:
// a dedicated background goroutine that runs feature detection, and the
// session goroutine that owns ray casting, retained state, and every sink
// call. At most one detection pass is in flight at a time; sampling ticks
// that arrive while detection is busy are dropped, never queued.
type Pipeline struct {
	opts        Options
	frameEvents chan struct{}

	// Retained measurement state. Written and read only by the session
	// goroutine.
	held    bool
	p1, p2  geom.World
	outline []geom.Screen
}

// outcome crosses from the detection domain to the session domain exactly
// once per cycle, as an immutable value.
type outcome struct {
	res detect.Result
	err error
}

// New validates the wiring and returns a ready Pipeline.
func New(opts Options) (*Pipeline, error) {
	if opts.Source == nil || opts.Detector == nil || opts.Measurer == nil || opts.Projector == nil {
		return nil, errors.New("pipeline: source, detector, measurer, and projector are required")
	}
	if opts.Viewport.X <= 0 || opts.Viewport.Y <= 0 {
		return nil, errors.New("pipeline: viewport size is required")
	}
	if opts.Tick <= 0 {
		opts.Tick = time.Second
	}
	return &Pipeline{
		opts:        opts,
		frameEvents: make(chan struct{}, 1),
	}, nil
}

// OnFrame signals a rendered frame, triggering one re-projection pass on the
// session goroutine. Safe to call from any goroutine at any rate; signals
// arriving faster than the session loop drains them coalesce.
func (p *Pipeline) OnFrame() {
	select {
	case p.frameEvents <- struct{}{}:
	default:
	}
}

// Run operates the loop until ctx is cancelled. Cancellation is the normal
// shutdown path and returns nil.
func (p *Pipeline) Run(ctx context.Context) error {
	// Unbuffered on purpose: a send succeeds only while the detection
	// goroutine is idle, which serializes ticks against detection latency.
	jobs := make(chan image.Image)
	results := make(chan outcome)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error { return p.detectLoop(ctx, jobs, results) })
	g.Go(func() error { return p.sessionLoop(ctx, jobs, results) })
	return g.Wait()
}

// detectLoop is concurrency domain one: feature detection only, one frame at
// a time, no session access and no sink access.
func (p *Pipeline) detectLoop(ctx context.Context, jobs <-chan image.Image, results chan<- outcome) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		case frame := <-jobs:
			res, err := p.opts.Detector.Detect(frame)
			select {
			case results <- outcome{res: res, err: err}:
			case <-ctx.Done():
				// Session already torn down; drop the stale result.
				return nil
			}
		}
	}
}

// sessionLoop is concurrency domain two: it owns the sampling ticker, all
// ray casts, the retained state, and every sink call.
func (p *Pipeline) sessionLoop(ctx context.Context, jobs chan<- image.Image, results <-chan outcome) error {
	tick := time.NewTicker(p.opts.Tick)
	defer tick.Stop()

	var frameC <-chan time.Time
	if p.opts.FrameInterval > 0 {
		frameTick := time.NewTicker(p.opts.FrameInterval)
		defer frameTick.Stop()
		frameC = frameTick.C
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-tick.C:
			frame := p.opts.Source.CurrentFrame()
			if frame == nil {
				// No frame yet: skip the cycle entirely.
				p.debugf("tick skipped: %s", ReasonNoFrame)
				continue
			}
			select {
			case jobs <- frame:
			default:
				p.debugf("tick dropped: detection in flight")
			}
		case out := <-results:
			p.finishCycle(out)
		case <-frameC:
			p.reproject()
		case <-p.frameEvents:
			p.reproject()
		}
	}
}

// finishCycle applies one detection outcome: measure on success, clear on
// no-detection or backend failure, keep retained geometry on a ray-cast
// miss.
func (p *Pipeline) finishCycle(out outcome) {
	if out.err != nil {
		// Backend failure is recoverable: log it and treat the cycle as
		// not-found.
		log.Printf("pipeline: detection failed: %v", out.err)
		p.clear(ReasonBackendFailure)
		return
	}
	if !out.res.Found {
		p.clear(ReasonNoDetection)
		return
	}

	center := geom.Screen{
		X: float64(p.opts.Viewport.X) / 2,
		Y: float64(p.opts.Viewport.Y) / 2,
	}
	m := p.opts.Measurer.Measure(center)
	if !m.Found {
		// This cycle produced nothing, but the previous measurement stays
		// valid for overlay continuity.
		p.debugf("cycle: %s", ReasonRaycastMiss)
		p.publishStatus(Status{Reason: ReasonRaycastMiss})
		return
	}

	p.held = true
	p.p1, p.p2 = m.P1, m.P2
	p.outline = p.screenOutline(out.res.Candidate)

	p.debugf("cycle: measured %.4fm (%s candidate)", m.Meters, out.res.Candidate.Kind)
	if p.opts.Lengths != nil {
		p.opts.Lengths.PublishLength(m.Meters)
	}
	p.publishStatus(Status{Found: true, Reason: ReasonMeasured, Meters: m.Meters})
	p.reproject()
}

// clear drops every piece of retained state and hides the overlay. A failed
// cycle must never leave stale 3D points behind.
func (p *Pipeline) clear(reason Reason) {
	p.held = false
	p.p1, p.p2 = geom.World{}, geom.World{}
	p.outline = nil

	p.debugf("cycle: %s, state cleared", reason)
	p.publishOverlay(overlay.Hidden())
	p.publishStatus(Status{Reason: reason})
}

// reproject maps the retained world points into current screen space and
// republishes the overlay. A projection miss hides the overlay for this
// frame only; the retained points survive for the next pass.
func (p *Pipeline) reproject() {
	if !p.held {
		return
	}

	s1, ok1 := p.opts.Projector.Project(p.p1)
	s2, ok2 := p.opts.Projector.Project(p.p2)
	if !ok1 || !ok2 {
		p.debugf("reproject: %s", ReasonProjectionMiss)
		p.publishOverlay(overlay.Hidden())
		return
	}

	p.publishOverlay(overlay.Geometry{
		Visible: true,
		Line:    [2]geom.Screen{s1, s2},
		Outline: p.outline,
	})
}

// screenOutline converts the candidate's normalized points to viewport
// pixels for primitive visualization.
func (p *Pipeline) screenOutline(c detect.Candidate) []geom.Screen {
	pts := c.Points()
	out := make([]geom.Screen, len(pts))
	for i, pt := range pts {
		out[i] = pt.Screen(p.opts.Viewport.X, p.opts.Viewport.Y)
	}
	return out
}

func (p *Pipeline) publishOverlay(g overlay.Geometry) {
	if p.opts.Overlays != nil {
		p.opts.Overlays.UpdateOverlay(g)
	}
}

func (p *Pipeline) publishStatus(s Status) {
	if p.opts.Statuses != nil {
		p.opts.Statuses.PublishStatus(s)
	}
}

func (p *Pipeline) debugf(format string, args ...interface{}) {
	if p.opts.Debug {
		log.Printf("pipeline: "+format, args...)
	}
}

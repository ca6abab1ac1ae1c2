// Package pipeline runs the detection cycle: pull the latest camera frame,
// run the feature detector on a dedicated background goroutine, and, when a
// qualifying candidate is found, ray cast and measure on the session
// goroutine, publishing the scalar length and overlay geometry to sinks.
//
// # Concurrency Model
//
// Two domains, crossed exactly once per cycle:
//
//   - The detection goroutine runs feature extraction off the interactive
//     thread. At most one pass is in flight; a sampling tick arriving while
//     detection is busy is dropped, never queued.
//   - The session goroutine owns the ticker, every ray cast, the retained
//     measurement state, and every sink call. No state is shared outside it.
//
// The hand-off between them carries an immutable outcome value. There is no
// cancellation of an in-flight detection pass: a pass finishing after
// shutdown finds the session loop gone and its result is dropped.
//
// Re-projection runs at frame cadence, far above the detection tick: the
// retained world points are projected into current screen space so the
// overlay tracks camera motion between detections. A projection miss skips
// drawing for that frame without touching the retained points.
package pipeline

// Package detect classifies camera frames: does the frame contain, near its
// visual center, a 2D primitive that plausibly represents a straight physical
// edge?
//
// # Strategies
//
// Three mutually exclusive detection strategies are provided, selected at
// construction time:
//
//   - Contour: flood-fill grouping of connected edge pixels
//   - Segment: Hough transform line segments
//   - Rect: contour bounding boxes filtered by rectangularity
//
// All strategies share the same pipeline: downscale the frame to a working
// width, convert to grayscale, blur, extract a gradient edge map, then run
// the strategy-specific extraction. Candidates are reported in normalized
// [0,1] image coordinates with the origin at the top-left corner.
//
// # Center Test
//
// A candidate qualifies when it passes close to the image center. For the
// contour and segment strategies "close" means some point of the primitive
// falls inside an axis-aligned tolerance box around (0.5, 0.5), a square
// region rather than a radius. The first qualifying candidate in the strategy's
// native output order wins and iteration stops. The rect strategy instead
// measures the perpendicular distance from the center to each of the
// rectangle's four boundary segments and accepts if any is below the same
// tolerance; a rectangle can qualify even when no corner is near the center.
//
// # Failure Modes
//
// "No qualifying candidate" is a normal outcome, reported as Found=false
// with a nil error. Only frame preprocessing can fail, and that error is
// recoverable: callers treat it as a not-found cycle.
//
// Detection iterates over every pixel of the working-resolution frame and is
// deliberately run off the interactive thread by the pipeline.
package detect

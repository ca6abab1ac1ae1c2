// Package scene defines what the measurement core consumes from its
// environment: a frame source, a ray-casting surface query, and a
// world-to-screen projector.
//
// It also provides Session, a headless plane-model implementation of those
// queries built on a pinhole camera. Session plays the role of the AR
// tracking stack during replay runs and in tests: estimated planes with an
// alignment attribute, nearest-first ray casting, and projection with
// behind-camera and off-viewport rejection.
package scene

// Package geom provides the coordinate types shared across the measurement
// core: normalized and pixel image coordinates, world-space vectors, and 4x4
// homogeneous pose transforms.
//
// # Coordinate Systems
//
// Image space uses the standard convention: origin at the top-left corner,
// X increasing rightward, Y increasing downward. Norm holds image positions
// scaled to [0,1] independent of pixel resolution; Screen holds the same
// positions in pixels.
//
// World space is the tracking session's persistent 3D frame of reference.
// Distances in world space are in meters.
package geom

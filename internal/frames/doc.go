// Package frames supplies camera frames to the measurement pipeline during
// replay runs: a decoded-image cache and a directory-backed frame source.
package frames

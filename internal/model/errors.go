// Package model holds the value types shared by every stage of the
// rendering pipeline: owners, solar systems, the seed set built up during
// influence propagation, and the sentinel errors the rest of the module
// wraps at the point of detection.
package model

import "errors"

// Sentinel error kinds, matched with errors.Is against the wrapped error
// returned by pipeline operations.
var (
	// ErrOutOfBounds marks a pixel coordinate outside an image's bounds.
	ErrOutOfBounds = errors.New("pixel out of bounds")
	// ErrIOFailure marks a file open/read/write failure.
	ErrIOFailure = errors.New("io failure")
	// ErrDataCorrupt marks input bytes that are truncated or reference
	// an unknown id.
	ErrDataCorrupt = errors.New("data corrupt")
	// ErrDimensionMismatch marks a loaded owner-index whose width/height
	// does not match the configured map dimensions.
	ErrDimensionMismatch = errors.New("dimension mismatch")
	// ErrInvalidState marks an operation invoked before its prerequisites
	// (e.g. rendering before data has been loaded).
	ErrInvalidState = errors.New("invalid state")
)

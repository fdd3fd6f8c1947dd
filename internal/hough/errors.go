package hough

import "errors"

// Errors returned by the pipeline. They are wrapped with context, so match
// them with errors.Is.
var (
	// ErrInvalidDimensions reports a zero or negative width, height or bin count.
	ErrInvalidDimensions = errors.New("invalid dimensions")

	// ErrDistanceRange reports a distance axis too small to hold every vote.
	ErrDistanceRange = errors.New("distance bins do not cover the image")

	// ErrDimensionMismatch reports a stage called with dimensions other than
	// the ones the accumulator was built with.
	ErrDimensionMismatch = errors.New("dimension mismatch")

	// ErrInvalidKernel reports a non-positive suppression kernel size.
	ErrInvalidKernel = errors.New("kernel size must be positive")

	// ErrInvalidThreshold reports a peak threshold outside [0, 1].
	ErrInvalidThreshold = errors.New("peak threshold must be within [0, 1]")
)

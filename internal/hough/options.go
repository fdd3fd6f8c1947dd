package hough

import (
	"fmt"
	"runtime"
	"strings"
)

// Defaults match the reference view: a 360x500 accumulator and a 21 cell
// suppression window.
const (
	DefaultAngleBins     = 360
	DefaultDistanceBins  = 500
	DefaultKernelSize    = 21
	DefaultPeakThreshold = 0.6
)

// RangePolicy selects how Build treats votes whose distance index would fall
// outside the accumulator.
type RangePolicy int

const (
	// RangeStrict rejects accumulators whose distance axis cannot hold every
	// possible vote for the image. Checked once, before voting starts.
	RangeStrict RangePolicy = iota

	// RangeDiscard accepts any distance axis and drops out-of-range votes.
	RangeDiscard
)

func (p RangePolicy) String() string {
	switch p {
	case RangeStrict:
		return "strict"
	case RangeDiscard:
		return "discard"
	default:
		return fmt.Sprintf("RangePolicy(%d)", int(p))
	}
}

// ParseRangePolicy parses "strict" or "discard" (case-insensitive). An empty
// string selects RangeStrict.
func ParseRangePolicy(s string) (RangePolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "strict":
		return RangeStrict, nil
	case "discard":
		return RangeDiscard, nil
	default:
		return RangeStrict, fmt.Errorf("unknown range policy %q (want strict or discard)", s)
	}
}

// Options configures a pipeline run.
type Options struct {
	// AngleBins is the accumulator width; bin i covers phi = π·i/AngleBins.
	AngleBins int

	// DistanceBins is the accumulator height; bin j covers r = j - DistanceBins/2.
	DistanceBins int

	// KernelSize is the side of the suppression window.
	KernelSize int

	// PeakThreshold is the fraction of 255 a normalized cell must exceed to
	// be a peak candidate.
	PeakThreshold float64

	// Workers bounds the goroutines used for voting. Values <= 0 use NumCPU.
	Workers int

	RangePolicy RangePolicy
}

// DefaultOptions returns the reference configuration.
func DefaultOptions() Options {
	return Options{
		AngleBins:     DefaultAngleBins,
		DistanceBins:  DefaultDistanceBins,
		KernelSize:    DefaultKernelSize,
		PeakThreshold: DefaultPeakThreshold,
		Workers:       runtime.NumCPU(),
		RangePolicy:   RangeStrict,
	}
}

// WithBins returns a copy with the given accumulator size.
func (o Options) WithBins(angleBins, distanceBins int) Options {
	o.AngleBins = angleBins
	o.DistanceBins = distanceBins
	return o
}

// WithKernelSize returns a copy with the given suppression window.
func (o Options) WithKernelSize(kernelSize int) Options {
	o.KernelSize = kernelSize
	return o
}

// WithPeakThreshold returns a copy with the given peak threshold fraction.
func (o Options) WithPeakThreshold(fraction float64) Options {
	o.PeakThreshold = fraction
	return o
}

// WithWorkers returns a copy voting with at most n goroutines.
func (o Options) WithWorkers(n int) Options {
	o.Workers = n
	return o
}

// WithRangePolicy returns a copy using policy p.
func (o Options) WithRangePolicy(p RangePolicy) Options {
	o.RangePolicy = p
	return o
}

// Validate checks the options before a run.
func (o Options) Validate() error {
	if o.AngleBins <= 0 || o.DistanceBins <= 0 {
		return fmt.Errorf("accumulator %dx%d (angle x distance): %w",
			o.AngleBins, o.DistanceBins, ErrInvalidDimensions)
	}
	if o.KernelSize <= 0 {
		return fmt.Errorf("kernel size %d: %w", o.KernelSize, ErrInvalidKernel)
	}
	if o.PeakThreshold < 0 || o.PeakThreshold > 1 {
		return fmt.Errorf("peak threshold %g: %w", o.PeakThreshold, ErrInvalidThreshold)
	}
	if o.RangePolicy != RangeStrict && o.RangePolicy != RangeDiscard {
		return fmt.Errorf("unknown range policy %v", o.RangePolicy)
	}
	return nil
}

func (o Options) workers() int {
	n := o.Workers
	if n <= 0 {
		n = runtime.NumCPU()
	}
	if n > o.AngleBins {
		n = o.AngleBins
	}
	return n
}

package detection

import (
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/ironsheep/hough-lines/internal/config"
	"github.com/ironsheep/hough-lines/internal/hough"
	"github.com/ironsheep/hough-lines/internal/logger"
)

// Pipeline runs the Hough stages with a fixed, validated configuration.
// A Pipeline holds no per-image state and is safe for concurrent use.
type Pipeline struct {
	cfg  config.Config
	opts hough.Options
}

// NewPipeline validates cfg and returns a pipeline that uses it.
func NewPipeline(cfg config.Config) (*Pipeline, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	opts, err := cfg.Options()
	if err != nil {
		return nil, err
	}
	return &Pipeline{cfg: cfg, opts: opts}, nil
}

// Config returns the configuration the pipeline was built with.
func (p *Pipeline) Config() config.Config {
	return p.cfg
}

// AccumulatorResult is the outcome of the voting and normalization stages.
type AccumulatorResult struct {
	Accumulator *hough.Accumulator `json:"-"`
	Grid        *hough.Grid        `json:"-"`

	AngleBins    int              `json:"angle_bins"`
	DistanceBins int              `json:"distance_bins"`
	Stats        AccumulatorStats `json:"stats"`
}

// PeaksResult is the outcome of peak extraction. Peaks are in row-major
// order of the accumulator.
type PeaksResult struct {
	AccumulatorResult
	PeakSet *hough.PeakSet `json:"-"`

	Peaks []hough.Peak `json:"peaks"`
	Count int          `json:"count"`
}

// Accumulate builds and normalizes the accumulator for edges.
func (p *Pipeline) Accumulate(edges *hough.EdgeImage) (*AccumulatorResult, error) {
	start := time.Now()
	acc, err := hough.BuildWithOptions(edges, p.opts)
	if err != nil {
		return nil, fmt.Errorf("failed to build accumulator: %w", err)
	}
	stageDone("accumulate", start, logrus.Fields{
		"edge_pixels": edges.EdgeCount(),
		"dropped":     acc.Dropped,
	})

	start = time.Now()
	grid := hough.Normalize(acc)
	stageDone("normalize", start, logrus.Fields{"max_votes": acc.Max()})

	return &AccumulatorResult{
		Accumulator:  acc,
		Grid:         grid,
		AngleBins:    acc.AngleBins,
		DistanceBins: acc.DistanceBins,
		Stats:        computeStats(acc),
	}, nil
}

// Peaks runs Accumulate followed by thresholding and non-maximum suppression.
func (p *Pipeline) Peaks(edges *hough.EdgeImage) (*PeaksResult, error) {
	acc, err := p.Accumulate(edges)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	ps, err := hough.ExtractPeaksWithThreshold(acc.Grid, p.opts.KernelSize, p.opts.PeakThreshold)
	if err != nil {
		return nil, fmt.Errorf("failed to extract peaks: %w", err)
	}
	stageDone("peaks", start, logrus.Fields{
		"kernel_size": p.opts.KernelSize,
		"threshold":   p.opts.PeakThreshold,
		"peaks":       ps.Len(),
	})

	return &PeaksResult{
		AccumulatorResult: *acc,
		PeakSet:           ps,
		Peaks:             ps.Peaks,
		Count:             ps.Len(),
	}, nil
}

// DetectLines runs the whole pipeline and projects every peak to a segment
// clipped to the image borders.
//
// Lines are ordered by peak intensity, strongest first, with ties kept in
// accumulator order. When the configuration sets MaxLines, the result is
// capped and Truncated reports whether anything was cut.
func (p *Pipeline) DetectLines(edges *hough.EdgeImage) (*LinesResult, error) {
	peaks, err := p.Peaks(edges)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	seq, err := hough.Project(peaks.PeakSet, edges.Width, edges.Height)
	if err != nil {
		return nil, fmt.Errorf("failed to project lines: %w", err)
	}
	result := collectLines(seq, p.cfg.MaxLines)
	result.Stats = peaks.Stats
	stageDone("project", start, logrus.Fields{
		"lines":     result.Count,
		"truncated": result.Truncated,
	})

	return result, nil
}

func stageDone(stage string, start time.Time, fields logrus.Fields) {
	fields["stage"] = stage
	fields["elapsed"] = time.Since(start).String()
	logger.WithFields(fields).Debug("stage complete")
}

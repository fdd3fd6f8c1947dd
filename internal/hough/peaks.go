package hough

import "fmt"

// Peak is a surviving accumulator cell.
type Peak struct {
	DistanceIndex int   `json:"distance_index"`
	AngleIndex    int   `json:"angle_index"`
	Value         uint8 `json:"value"`
}

// PeakSet is the result of peak extraction. Grid keeps the surviving cells
// at their normalized intensity and every other cell at zero. Peaks lists
// the same cells in row-major order.
type PeakSet struct {
	Grid  *Grid
	Peaks []Peak
}

// Len returns the number of peaks.
func (ps *PeakSet) Len() int {
	return len(ps.Peaks)
}

// Threshold keeps the cells strictly greater than fraction·255 and zeroes
// the rest.
func Threshold(g *Grid, fraction float64) *Grid {
	out := g.blank()
	limit := fraction * 255
	for i, v := range g.Pix {
		if float64(v) > limit {
			out.Pix[i] = v
		}
	}
	return out
}

// Suppress clears every non-zero cell that has a strictly greater neighbor
// inside its window. The window spans [d-k/2, d+k/2] x [a-k/2, a+k/2] with
// k/2 rounded down; neighbors outside the grid are skipped. Neighbors are
// always read from g, so the result does not depend on scan order.
func Suppress(g *Grid, kernelSize int) (*Grid, error) {
	if err := g.validate(); err != nil {
		return nil, err
	}
	if kernelSize <= 0 {
		return nil, fmt.Errorf("kernel size %d: %w", kernelSize, ErrInvalidKernel)
	}

	delta := -kernelSize / 2
	out := g.blank()
	for d := 0; d < g.DistanceBins; d++ {
		for a := 0; a < g.AngleBins; a++ {
			v := g.At(d, a)
			if v == 0 || g.hasGreaterNeighbor(d, a, v, delta) {
				continue
			}
			out.Pix[d*g.AngleBins+a] = v
		}
	}
	return out, nil
}

// hasGreaterNeighbor scans the window around (d, a) and stops at the first
// value strictly greater than v.
func (g *Grid) hasGreaterNeighbor(d, a int, v uint8, delta int) bool {
	top, bottom := max(d+delta, 0), min(d-delta, g.DistanceBins-1)
	left, right := max(a+delta, 0), min(a-delta, g.AngleBins-1)
	for y := top; y <= bottom; y++ {
		row := g.Pix[y*g.AngleBins : (y+1)*g.AngleBins]
		for x := left; x <= right; x++ {
			if row[x] > v {
				return true
			}
		}
	}
	return false
}

// ExtractPeaks thresholds a normalized grid at DefaultPeakThreshold and
// suppresses non-maxima with the given window.
func ExtractPeaks(g *Grid, kernelSize int) (*PeakSet, error) {
	return ExtractPeaksWithThreshold(g, kernelSize, DefaultPeakThreshold)
}

// ExtractPeaksWithThreshold is ExtractPeaks with an explicit threshold
// fraction in [0, 1].
func ExtractPeaksWithThreshold(g *Grid, kernelSize int, fraction float64) (*PeakSet, error) {
	if err := g.validate(); err != nil {
		return nil, err
	}
	if fraction < 0 || fraction > 1 {
		return nil, fmt.Errorf("peak threshold %g: %w", fraction, ErrInvalidThreshold)
	}

	suppressed, err := Suppress(Threshold(g, fraction), kernelSize)
	if err != nil {
		return nil, err
	}

	peaks := make([]Peak, 0)
	for d := 0; d < suppressed.DistanceBins; d++ {
		for a := 0; a < suppressed.AngleBins; a++ {
			if v := suppressed.At(d, a); v > 0 {
				peaks = append(peaks, Peak{DistanceIndex: d, AngleIndex: a, Value: v})
			}
		}
	}
	return &PeakSet{Grid: suppressed, Peaks: peaks}, nil
}

package hough

import (
	"fmt"
	"math"

	"golang.org/x/sync/errgroup"
)

// Accumulator holds raw vote counts in row-major order: row = distance index,
// column = angle index.
type Accumulator struct {
	AngleBins    int
	DistanceBins int

	// ImageWidth and ImageHeight are the dimensions of the voting image.
	ImageWidth  int
	ImageHeight int

	Votes []uint32

	// Dropped counts votes discarded under RangeDiscard.
	Dropped int
}

// At returns the vote count at (distanceIndex, angleIndex).
func (a *Accumulator) At(distanceIndex, angleIndex int) uint32 {
	return a.Votes[distanceIndex*a.AngleBins+angleIndex]
}

// Max returns the largest vote count.
func (a *Accumulator) Max() uint32 {
	var m uint32
	for _, v := range a.Votes {
		if v > m {
			m = v
		}
	}
	return m
}

// Total returns the sum of all votes.
func (a *Accumulator) Total() uint64 {
	var sum uint64
	for _, v := range a.Votes {
		sum += uint64(v)
	}
	return sum
}

// AngleOf maps an angle bin to its angle in radians, in [0, π).
func AngleOf(angleIndex, angleBins int) float64 {
	return math.Pi * float64(angleIndex) / float64(angleBins)
}

// DistanceOffset is the distance index of r = 0.
func DistanceOffset(distanceBins int) int {
	return distanceBins / 2
}

// MinDistanceBins returns the smallest distance axis that RangeStrict
// accepts for a width x height image. Every |r| is bounded by the distance
// from the center (W/2, H/2) to the farthest corner.
func MinDistanceBins(width, height int) int {
	reach := math.Hypot(float64(width/2), float64(height/2))
	return 2*int(math.Ceil(reach)) + 2
}

// Build votes every edge pixel of edges into a fresh angleBins x
// distanceBins accumulator, using DefaultOptions otherwise.
func Build(edges *EdgeImage, angleBins, distanceBins int) (*Accumulator, error) {
	return BuildWithOptions(edges, DefaultOptions().WithBins(angleBins, distanceBins))
}

// BuildWithOptions votes every edge pixel into a fresh accumulator sized by
// opts. For each angle bin i and each edge pixel (x, y):
//
//	r = (x - W/2)·cos(phi) + (y - H/2)·sin(phi)
//	cell (floor(r) + distanceBins/2, i) += 1
func BuildWithOptions(edges *EdgeImage, opts Options) (*Accumulator, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	if err := edges.validate(); err != nil {
		return nil, err
	}
	if opts.RangePolicy == RangeStrict {
		if need := MinDistanceBins(edges.Width, edges.Height); opts.DistanceBins < need {
			return nil, fmt.Errorf("%dx%d image needs at least %d distance bins, got %d: %w",
				edges.Width, edges.Height, need, opts.DistanceBins, ErrDistanceRange)
		}
	}

	acc := &Accumulator{
		AngleBins:    opts.AngleBins,
		DistanceBins: opts.DistanceBins,
		ImageWidth:   edges.Width,
		ImageHeight:  edges.Height,
		Votes:        make([]uint32, opts.AngleBins*opts.DistanceBins),
	}

	points := edges.centeredEdges()
	if len(points) == 0 {
		return acc, nil
	}

	workers := opts.workers()
	band := (opts.AngleBins + workers - 1) / workers
	dropped := make([]int, workers)

	var g errgroup.Group
	g.SetLimit(workers)
	for w := 0; w < workers; w++ {
		lo := w * band
		hi := min(lo+band, opts.AngleBins)
		if lo >= hi {
			break
		}
		g.Go(func() error {
			dropped[w] = acc.voteBand(points, lo, hi)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	for _, n := range dropped {
		acc.Dropped += n
	}
	return acc, nil
}

// voteBand votes all points for angle bins [lo, hi). Only the columns of
// that band are written. It returns the number of out-of-range votes.
func (a *Accumulator) voteBand(points []centeredPoint, lo, hi int) int {
	offset := DistanceOffset(a.DistanceBins)
	dropped := 0
	for i := lo; i < hi; i++ {
		sinPhi, cosPhi := math.Sincos(AngleOf(i, a.AngleBins))
		for _, p := range points {
			r := p.x*cosPhi + p.y*sinPhi
			d := int(math.Floor(r)) + offset
			if d < 0 || d >= a.DistanceBins {
				dropped++
				continue
			}
			a.Votes[d*a.AngleBins+i]++
		}
	}
	return dropped
}

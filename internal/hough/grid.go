package hough

import (
	"fmt"
	"math"
)

// Grid is an 8-bit view of an accumulator, laid out like Accumulator.Votes.
// It is used for the normalized accumulator, the thresholded accumulator and
// the peak map. Stages never modify a Grid they are given.
type Grid struct {
	AngleBins    int
	DistanceBins int
	ImageWidth   int
	ImageHeight  int
	Pix          []uint8
}

// At returns the value at (distanceIndex, angleIndex).
func (g *Grid) At(distanceIndex, angleIndex int) uint8 {
	return g.Pix[distanceIndex*g.AngleBins+angleIndex]
}

// NonZero returns the number of non-zero cells.
func (g *Grid) NonZero() int {
	n := 0
	for _, v := range g.Pix {
		if v > 0 {
			n++
		}
	}
	return n
}

// blank returns an all-zero grid with the same geometry.
func (g *Grid) blank() *Grid {
	return &Grid{
		AngleBins:    g.AngleBins,
		DistanceBins: g.DistanceBins,
		ImageWidth:   g.ImageWidth,
		ImageHeight:  g.ImageHeight,
		Pix:          make([]uint8, len(g.Pix)),
	}
}

func (g *Grid) validate() error {
	if g == nil {
		return fmt.Errorf("nil grid: %w", ErrInvalidDimensions)
	}
	if g.AngleBins <= 0 || g.DistanceBins <= 0 || len(g.Pix) != g.AngleBins*g.DistanceBins {
		return fmt.Errorf("grid %dx%d with %d cells: %w",
			g.AngleBins, g.DistanceBins, len(g.Pix), ErrInvalidDimensions)
	}
	return nil
}

// Normalize rescales vote counts to [0, 255]: v -> round(v / max · 255).
// An accumulator without votes maps to an all-zero grid.
func Normalize(acc *Accumulator) *Grid {
	g := &Grid{
		AngleBins:    acc.AngleBins,
		DistanceBins: acc.DistanceBins,
		ImageWidth:   acc.ImageWidth,
		ImageHeight:  acc.ImageHeight,
		Pix:          make([]uint8, len(acc.Votes)),
	}
	top := acc.Max()
	if top == 0 {
		return g
	}
	for i, v := range acc.Votes {
		n := math.Round(float64(v) / float64(top) * 255)
		if n > 255 {
			n = 255
		}
		g.Pix[i] = uint8(n)
	}
	return g
}

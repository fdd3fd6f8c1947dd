package hough

import (
	"fmt"
	"iter"
	"math"
	"slices"
)

// LineSegment is a detected line clipped to the image border lines, in
// top-left-origin image coordinates. (NormX, NormY) is the foot of the
// perpendicular from the image center to the line.
type LineSegment struct {
	X1, Y1 float64
	X2, Y2 float64

	NormX, NormY float64

	// R is the signed distance from the image center, Phi the normal angle
	// in radians.
	R   float64
	Phi float64

	Peak Peak
}

// Length returns the distance between the two endpoints.
func (s LineSegment) Length() float64 {
	return math.Hypot(s.X2-s.X1, s.Y2-s.Y1)
}

// AngleDegrees returns the direction from the first to the second endpoint,
// in degrees in (-180, 180], with y pointing down.
func (s LineSegment) AngleDegrees() float64 {
	return math.Atan2(s.Y2-s.Y1, s.X2-s.X1) * 180 / math.Pi
}

// Project turns every peak back into a LineSegment. The image dimensions
// must be the ones the accumulator was built from. The returned sequence is
// lazy and can be iterated any number of times; segments follow the order
// of ps.Peaks.
func Project(ps *PeakSet, imageWidth, imageHeight int) (iter.Seq[LineSegment], error) {
	if ps == nil {
		return nil, fmt.Errorf("nil peak set: %w", ErrInvalidDimensions)
	}
	if err := ps.Grid.validate(); err != nil {
		return nil, err
	}
	if imageWidth <= 0 || imageHeight <= 0 {
		return nil, fmt.Errorf("image %dx%d: %w", imageWidth, imageHeight, ErrInvalidDimensions)
	}
	if imageWidth != ps.Grid.ImageWidth || imageHeight != ps.Grid.ImageHeight {
		return nil, fmt.Errorf("projecting onto %dx%d, accumulator built from %dx%d: %w",
			imageWidth, imageHeight, ps.Grid.ImageWidth, ps.Grid.ImageHeight, ErrDimensionMismatch)
	}

	g := ps.Grid
	peaks := ps.Peaks
	return func(yield func(LineSegment) bool) {
		for _, p := range peaks {
			if !yield(projectPeak(g, p)) {
				return
			}
		}
	}, nil
}

// Lines is Project collected into a slice.
func Lines(ps *PeakSet, imageWidth, imageHeight int) ([]LineSegment, error) {
	seq, err := Project(ps, imageWidth, imageHeight)
	if err != nil {
		return nil, err
	}
	return slices.Collect(seq), nil
}

// projectPeak intersects the line r = x·cos(phi) + y·sin(phi) with the
// left/right borders when sin dominates, the top/bottom borders otherwise.
func projectPeak(g *Grid, p Peak) LineSegment {
	halfW := float64(g.ImageWidth / 2)
	halfH := float64(g.ImageHeight / 2)

	r := float64(p.DistanceIndex - DistanceOffset(g.DistanceBins))
	phi := AngleOf(p.AngleIndex, g.AngleBins)
	sinPhi, cosPhi := math.Sincos(phi)

	var x1, y1, x2, y2 float64
	if math.Abs(sinPhi) > math.Abs(cosPhi) {
		x1, x2 = -halfW, halfW
		y1 = (r - x1*cosPhi) / sinPhi
		y2 = (r - x2*cosPhi) / sinPhi
	} else {
		y1, y2 = -halfH, halfH
		x1 = (r - y1*sinPhi) / cosPhi
		x2 = (r - y2*sinPhi) / cosPhi
	}

	return LineSegment{
		X1:    x1 + halfW,
		Y1:    y1 + halfH,
		X2:    x2 + halfW,
		Y2:    y2 + halfH,
		NormX: r*cosPhi + halfW,
		NormY: r*sinPhi + halfH,
		R:     r,
		Phi:   phi,
		Peak:  p,
	}
}

// Params recovers (r, phi) from the endpoints of a segment drawn on a
// width x height image. phi is folded into [0, π), flipping the sign of r
// when needed.
func Params(s LineSegment, width, height int) (r, phi float64) {
	halfW := float64(width / 2)
	halfH := float64(height / 2)
	dx, dy := s.X2-s.X1, s.Y2-s.Y1

	// The normal (cos phi, sin phi) is perpendicular to the direction (dx, dy).
	phi = math.Atan2(-dx, dy)
	if phi < 0 {
		phi += math.Pi
	}
	if phi >= math.Pi {
		phi -= math.Pi
	}
	sinPhi, cosPhi := math.Sincos(phi)
	r = (s.X1-halfW)*cosPhi + (s.Y1-halfH)*sinPhi
	return r, phi
}

// Bin maps (r, phi) to the nearest (distanceIndex, angleIndex) of an
// angleBins x distanceBins accumulator.
func Bin(r, phi float64, angleBins, distanceBins int) (distanceIndex, angleIndex int) {
	angleIndex = int(math.Round(phi*float64(angleBins)/math.Pi)) % angleBins
	distanceIndex = int(math.Round(r)) + DistanceOffset(distanceBins)
	return distanceIndex, angleIndex
}

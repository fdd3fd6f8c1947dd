package detection

import (
	"cmp"
	"iter"
	"math"
	"slices"

	"github.com/ironsheep/hough-lines/internal/hough"
)

// Point is a position in image pixel space, origin at the top-left corner.
type Point struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
}

// Line is a detected straight line clipped to the image borders.
type Line struct {
	// Start and End are where the line enters and leaves the image.
	Start Point `json:"start" yaml:"start"`
	End   Point `json:"end" yaml:"end"`

	// Normal is the point of the line closest to the image center.
	Normal Point `json:"normal" yaml:"normal"`

	// R is the signed distance of the line from the image center and
	// PhiRadians the angle of its normal, in [0, pi).
	R          float64 `json:"r" yaml:"r"`
	PhiRadians float64 `json:"phi_radians" yaml:"phi_radians"`

	// AngleDegrees is the direction of the segment, in (-180, 180].
	AngleDegrees float64 `json:"angle_degrees" yaml:"angle_degrees"`
	Length       float64 `json:"length" yaml:"length"`

	// Votes is the normalized accumulator intensity of the peak (0-255).
	Votes         uint8 `json:"votes" yaml:"votes"`
	DistanceIndex int   `json:"distance_index" yaml:"distance_index"`
	AngleIndex    int   `json:"angle_index" yaml:"angle_index"`
}

// LinesResult contains detected lines, strongest first.
type LinesResult struct {
	Lines     []Line           `json:"lines" yaml:"lines"`
	Count     int              `json:"count" yaml:"count"`
	Truncated bool             `json:"truncated" yaml:"truncated"`
	Stats     AccumulatorStats `json:"stats" yaml:"stats"`

	// Segments holds the projected segments backing Lines, in the same order.
	Segments []hough.LineSegment `json:"-" yaml:"-"`
}

// collectLines drains seq, orders the segments by intensity and caps them at
// maxLines (0 = unlimited).
func collectLines(seq iter.Seq[hough.LineSegment], maxLines int) *LinesResult {
	segments := slices.Collect(seq)
	// Project yields in row-major order, so a stable sort keeps ties ordered
	// by (distance, angle) index.
	slices.SortStableFunc(segments, func(a, b hough.LineSegment) int {
		return cmp.Compare(b.Peak.Value, a.Peak.Value)
	})

	truncated := false
	if maxLines > 0 && len(segments) > maxLines {
		segments = segments[:maxLines]
		truncated = true
	}

	lines := make([]Line, 0, len(segments))
	for _, s := range segments {
		lines = append(lines, lineFromSegment(s))
	}

	return &LinesResult{
		Lines:     lines,
		Count:     len(lines),
		Truncated: truncated,
		Segments:  segments,
	}
}

func lineFromSegment(s hough.LineSegment) Line {
	return Line{
		Start:         Point{X: round2(s.X1), Y: round2(s.Y1)},
		End:           Point{X: round2(s.X2), Y: round2(s.Y2)},
		Normal:        Point{X: round2(s.NormX), Y: round2(s.NormY)},
		R:             s.R,
		PhiRadians:    s.Phi,
		AngleDegrees:  math.Round(s.AngleDegrees()*10) / 10,
		Length:        math.Round(s.Length()*10) / 10,
		Votes:         s.Peak.Value,
		DistanceIndex: s.Peak.DistanceIndex,
		AngleIndex:    s.Peak.AngleIndex,
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

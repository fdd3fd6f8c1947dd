package hough

import (
	"errors"
	"math"
	"slices"
	"testing"
)

// orientationDiff returns the difference between two line orientations in
// degrees, modulo 180.
func orientationDiff(a, b float64) float64 {
	d := math.Mod(math.Abs(a-b), 180)
	return math.Min(d, 180-d)
}

func TestProject_HorizontalLine(t *testing.T) {
	g := lineGrid(t)
	ps, err := ExtractPeaks(g, DefaultKernelSize)
	if err != nil {
		t.Fatalf("ExtractPeaks failed: %v", err)
	}

	segments, err := Lines(ps, 100, 100)
	if err != nil {
		t.Fatalf("Lines failed: %v", err)
	}
	if len(segments) != 1 {
		t.Fatalf("got %d segments, want 1", len(segments))
	}

	s := segments[0]
	for _, p := range [][2]float64{{s.X1, s.Y1}, {s.X2, s.Y2}} {
		if p[0] < 0 || p[0] > 100 || p[1] < 0 || p[1] > 100 {
			t.Errorf("endpoint (%.2f, %.2f) outside the image", p[0], p[1])
		}
	}

	resolution := 180.0 / 180
	if diff := orientationDiff(s.AngleDegrees(), 0); diff > resolution+1e-9 {
		t.Errorf("orientation %.3f°, want horizontal within %.1f°", s.AngleDegrees(), resolution)
	}
	if math.Abs(s.Y1-50) > 1 || math.Abs(s.Y2-50) > 1 {
		t.Errorf("segment (%.2f,%.2f)-(%.2f,%.2f) should stay near y = 50", s.X1, s.Y1, s.X2, s.Y2)
	}
}

func TestProject_VerticalLine(t *testing.T) {
	e := newEdges(t, 100, 100, verticalLine(30, 0, 100)...)
	g := Normalize(mustBuild(t, e, 180))
	ps, err := ExtractPeaks(g, DefaultKernelSize)
	if err != nil {
		t.Fatalf("ExtractPeaks failed: %v", err)
	}

	segments, err := Lines(ps, 100, 100)
	if err != nil {
		t.Fatalf("Lines failed: %v", err)
	}
	if len(segments) != 1 {
		t.Fatalf("got %d segments, want 1", len(segments))
	}

	s := segments[0]
	// phi = 0, r = -20: the line x = 30 from the top border to the bottom border
	if s.X1 != 30 || s.X2 != 30 || s.Y1 != 0 || s.Y2 != 100 {
		t.Errorf("got (%.2f,%.2f)-(%.2f,%.2f), want (30,0)-(30,100)", s.X1, s.Y1, s.X2, s.Y2)
	}
	if s.NormX != 30 || s.NormY != 50 {
		t.Errorf("normal endpoint: got (%.2f, %.2f), want (30, 50)", s.NormX, s.NormY)
	}
	if s.R != -20 || s.Phi != 0 {
		t.Errorf("params: got r=%.2f phi=%.4f, want r=-20 phi=0", s.R, s.Phi)
	}
}

func TestProject_NormalIsPerpendicular(t *testing.T) {
	g := &Grid{AngleBins: 36, DistanceBins: 100, ImageWidth: 80, ImageHeight: 60, Pix: make([]uint8, 3600)}
	ps := &PeakSet{Grid: g, Peaks: []Peak{
		{DistanceIndex: 62, AngleIndex: 5, Value: 255},
		{DistanceIndex: 40, AngleIndex: 20, Value: 255},
		{DistanceIndex: 50, AngleIndex: 30, Value: 255},
	}}

	segments, err := Lines(ps, 80, 60)
	if err != nil {
		t.Fatalf("Lines failed: %v", err)
	}

	for _, s := range segments {
		// The normal foot lies on the line and the normal is orthogonal to it
		dx, dy := s.X2-s.X1, s.Y2-s.Y1
		nx, ny := s.NormX-40, s.NormY-30
		if dot := dx*nx + dy*ny; math.Abs(dot) > 1e-6*s.Length() {
			t.Errorf("peak %+v: normal not perpendicular (dot %.6f)", s.Peak, dot)
		}
		if length := math.Hypot(nx, ny); math.Abs(length-math.Abs(s.R)) > 1e-9 {
			t.Errorf("peak %+v: normal length %.4f, want |r| = %.4f", s.Peak, length, math.Abs(s.R))
		}
		cross := (s.NormX-s.X1)*dy - (s.NormY-s.Y1)*dx
		if math.Abs(cross) > 1e-6*s.Length() {
			t.Errorf("peak %+v: normal foot not on the line", s.Peak)
		}
	}
}

func TestProject_RoundTrip(t *testing.T) {
	const angleBins, distanceBins = 180, 200
	width, height := 120, 90
	g := &Grid{
		AngleBins:    angleBins,
		DistanceBins: distanceBins,
		ImageWidth:   width,
		ImageHeight:  height,
		Pix:          make([]uint8, angleBins*distanceBins),
	}

	var peaks []Peak
	for _, a := range []int{1, 20, 44, 45, 46, 89, 90, 91, 120, 135, 170} {
		for _, d := range []int{70, 100, 131} {
			peaks = append(peaks, Peak{DistanceIndex: d, AngleIndex: a, Value: 200})
		}
	}
	seq, err := Project(&PeakSet{Grid: g, Peaks: peaks}, width, height)
	if err != nil {
		t.Fatalf("Project failed: %v", err)
	}

	for s := range seq {
		r, phi := Params(s, width, height)
		d, a := Bin(r, phi, angleBins, distanceBins)
		if abs(d-s.Peak.DistanceIndex) > 1 || abs(a-s.Peak.AngleIndex) > 1 {
			t.Errorf("peak (%d, %d) came back as (%d, %d)",
				s.Peak.DistanceIndex, s.Peak.AngleIndex, d, a)
		}
	}
}

func TestProject_SequenceIsRestartable(t *testing.T) {
	g := lineGrid(t)
	ps, err := ExtractPeaks(g, 1)
	if err != nil {
		t.Fatalf("ExtractPeaks failed: %v", err)
	}

	seq, err := Project(ps, 100, 100)
	if err != nil {
		t.Fatalf("Project failed: %v", err)
	}

	first := slices.Collect(seq)
	second := slices.Collect(seq)
	if len(first) != ps.Len() || !slices.Equal(first, second) {
		t.Errorf("iterations differ: %d vs %d segments", len(first), len(second))
	}

	// Early exit stops the sequence
	n := 0
	for range seq {
		n++
		break
	}
	if n != 1 {
		t.Errorf("break after first segment, got %d", n)
	}
}

func TestProject_DimensionMismatch(t *testing.T) {
	g := lineGrid(t)
	ps, err := ExtractPeaks(g, DefaultKernelSize)
	if err != nil {
		t.Fatalf("ExtractPeaks failed: %v", err)
	}

	if _, err := Project(ps, 200, 100); !errors.Is(err, ErrDimensionMismatch) {
		t.Errorf("got %v, want ErrDimensionMismatch", err)
	}
	if _, err := Project(ps, 0, 100); !errors.Is(err, ErrInvalidDimensions) {
		t.Errorf("got %v, want ErrInvalidDimensions", err)
	}
	if _, err := Project(nil, 100, 100); !errors.Is(err, ErrInvalidDimensions) {
		t.Errorf("nil peak set: got %v, want ErrInvalidDimensions", err)
	}
}

func TestLineSegment_Geometry(t *testing.T) {
	s := LineSegment{X1: 0, Y1: 0, X2: 3, Y2: 4}

	if s.Length() != 5 {
		t.Errorf("Length: got %f, want 5", s.Length())
	}
	want := math.Atan2(4, 3) * 180 / math.Pi
	if s.AngleDegrees() != want {
		t.Errorf("AngleDegrees: got %f, want %f", s.AngleDegrees(), want)
	}
}

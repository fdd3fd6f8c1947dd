package hough

import "testing"

// newEdges builds a width x height edge image with the given pixels set.
func newEdges(t *testing.T, width, height int, points ...[2]int) *EdgeImage {
	t.Helper()
	e, err := NewEdgeImage(width, height)
	if err != nil {
		t.Fatalf("NewEdgeImage(%d, %d) failed: %v", width, height, err)
	}
	for _, p := range points {
		e.Set(p[0], p[1], 255)
	}
	return e
}

// horizontalLine returns the pixels (x, y) for x in [x1, x2).
func horizontalLine(x1, x2, y int) [][2]int {
	points := make([][2]int, 0, x2-x1)
	for x := x1; x < x2; x++ {
		points = append(points, [2]int{x, y})
	}
	return points
}

// verticalLine returns the pixels (x, y) for y in [y1, y2).
func verticalLine(x, y1, y2 int) [][2]int {
	points := make([][2]int, 0, y2-y1)
	for y := y1; y < y2; y++ {
		points = append(points, [2]int{x, y})
	}
	return points
}

// gridFrom builds a grid from rows of values (row = distance index).
func gridFrom(rows [][]uint8) *Grid {
	g := &Grid{
		AngleBins:    len(rows[0]),
		DistanceBins: len(rows),
		ImageWidth:   10,
		ImageHeight:  10,
	}
	for _, row := range rows {
		g.Pix = append(g.Pix, row...)
	}
	return g
}

// mustBuild builds a strict accumulator sized to cover the image.
func mustBuild(t *testing.T, e *EdgeImage, angleBins int) *Accumulator {
	t.Helper()
	acc, err := Build(e, angleBins, MinDistanceBins(e.Width, e.Height))
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	return acc
}

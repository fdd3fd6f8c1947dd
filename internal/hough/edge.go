package hough

import "fmt"

// EdgeImage is a row-major grid of edge intensities. A pixel with intensity
// greater than zero is an edge pixel; the exact value is not used for voting.
type EdgeImage struct {
	Width  int
	Height int
	Pix    []uint8
}

// NewEdgeImage allocates an empty (edge-free) image.
func NewEdgeImage(width, height int) (*EdgeImage, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("edge image %dx%d: %w", width, height, ErrInvalidDimensions)
	}
	return &EdgeImage{
		Width:  width,
		Height: height,
		Pix:    make([]uint8, width*height),
	}, nil
}

// At returns the intensity at (x, y). Coordinates outside the image read as 0.
func (e *EdgeImage) At(x, y int) uint8 {
	if x < 0 || y < 0 || x >= e.Width || y >= e.Height {
		return 0
	}
	return e.Pix[y*e.Width+x]
}

// Set stores an intensity at (x, y). Coordinates outside the image are ignored.
func (e *EdgeImage) Set(x, y int, v uint8) {
	if x < 0 || y < 0 || x >= e.Width || y >= e.Height {
		return
	}
	e.Pix[y*e.Width+x] = v
}

// IsEdge reports whether (x, y) holds an edge pixel.
func (e *EdgeImage) IsEdge(x, y int) bool {
	return e.At(x, y) > 0
}

// EdgeCount returns the number of edge pixels.
func (e *EdgeImage) EdgeCount() int {
	n := 0
	for _, v := range e.Pix {
		if v > 0 {
			n++
		}
	}
	return n
}

func (e *EdgeImage) validate() error {
	if e == nil {
		return fmt.Errorf("nil edge image: %w", ErrInvalidDimensions)
	}
	if e.Width <= 0 || e.Height <= 0 {
		return fmt.Errorf("edge image %dx%d: %w", e.Width, e.Height, ErrInvalidDimensions)
	}
	if len(e.Pix) != e.Width*e.Height {
		return fmt.Errorf("edge image %dx%d has %d pixels: %w",
			e.Width, e.Height, len(e.Pix), ErrInvalidDimensions)
	}
	return nil
}

// centeredPoint is an edge pixel position relative to the image center.
type centeredPoint struct {
	x, y float64
}

// centeredEdges lists every edge pixel shifted so that (W/2, H/2) is the
// origin. W/2 and H/2 use integer division.
func (e *EdgeImage) centeredEdges() []centeredPoint {
	halfW, halfH := e.Width/2, e.Height/2
	points := make([]centeredPoint, 0, e.Width+e.Height)
	for y := 0; y < e.Height; y++ {
		row := e.Pix[y*e.Width : (y+1)*e.Width]
		for x, v := range row {
			if v == 0 {
				continue
			}
			points = append(points, centeredPoint{
				x: float64(x - halfW),
				y: float64(y - halfH),
			})
		}
	}
	return points
}

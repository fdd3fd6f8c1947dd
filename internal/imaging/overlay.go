package imaging

import (
	"fmt"
	"image"
	"math"

	"github.com/disintegration/imaging"
	"github.com/gogpu/gg"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/ironsheep/hough-lines/internal/hough"
)

// OverlayStyle controls how detected lines are drawn.
type OverlayStyle struct {
	// LineColor is the hex color of the line segments, e.g. "#FF0000".
	LineColor string `json:"line_color"`

	// NormalColor is the hex color of the normal drawn from the image center
	// to the closest point of each line. Empty disables normals.
	NormalColor string `json:"normal_color"`

	// LineWidth is the stroke width in pixels.
	LineWidth float64 `json:"line_width"`
}

// DefaultOverlayStyle draws red lines with green normals, one pixel wide.
func DefaultOverlayStyle() OverlayStyle {
	return OverlayStyle{
		LineColor:   "#FF0000",
		NormalColor: "#00FF00",
		LineWidth:   1,
	}
}

// Overlay draws each segment onto a copy of src and returns the copy. src is
// never modified.
//
// Lines are stroked from (X1, Y1) to (X2, Y2). When NormalColor is set, the
// normal of each line is stroked from the image center to (NormX, NormY).
// Lines passing exactly through the center have no visible normal and only
// the line is drawn.
func Overlay(src image.Image, segments []hough.LineSegment, style OverlayStyle) (image.Image, error) {
	if style.LineWidth <= 0 {
		return nil, fmt.Errorf("line width must be positive, got %g", style.LineWidth)
	}
	lineColor, err := colorful.Hex(style.LineColor)
	if err != nil {
		return nil, fmt.Errorf("invalid line color %q: %w", style.LineColor, err)
	}
	var normalColor colorful.Color
	drawNormals := style.NormalColor != ""
	if drawNormals {
		normalColor, err = colorful.Hex(style.NormalColor)
		if err != nil {
			return nil, fmt.Errorf("invalid normal color %q: %w", style.NormalColor, err)
		}
	}

	canvas := imaging.Clone(src)
	bounds := canvas.Bounds()
	cx, cy := float64(bounds.Dx()/2), float64(bounds.Dy()/2)

	dc := gg.NewContextForImage(canvas)
	defer dc.Close()
	dc.SetLineWidth(style.LineWidth)

	for _, s := range segments {
		dc.SetColor(lineColor.Clamped())
		dc.DrawLine(s.X1, s.Y1, s.X2, s.Y2)
		if err := dc.Stroke(); err != nil {
			return nil, fmt.Errorf("failed to draw line: %w", err)
		}

		if !drawNormals || math.Hypot(s.NormX-cx, s.NormY-cy) < 0.5 {
			continue
		}
		dc.SetColor(normalColor.Clamped())
		dc.DrawLine(cx, cy, s.NormX, s.NormY)
		if err := dc.Stroke(); err != nil {
			return nil, fmt.Errorf("failed to draw normal: %w", err)
		}
	}

	return dc.Image(), nil
}

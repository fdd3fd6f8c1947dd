package imaging

import (
	"image"
	"image/color"
	"testing"

	"github.com/ironsheep/hough-lines/internal/hough"
)

func blackImage(width, height int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for i := 3; i < len(img.Pix); i += 4 {
		img.Pix[i] = 255
	}
	return img
}

func rgbAt(img image.Image, x, y int) (r, g, b uint32) {
	r, g, b, _ = img.At(x, y).RGBA()
	return r >> 8, g >> 8, b >> 8
}

func TestOverlay(t *testing.T) {
	src := blackImage(100, 100)
	// Vertical line at x = 30, normal from the center (50, 50) to (30, 50).
	seg := hough.LineSegment{
		X1: 30, Y1: 0, X2: 30, Y2: 100,
		NormX: 30, NormY: 50,
		R: -20, Phi: 0,
	}
	style := DefaultOverlayStyle()
	style.LineWidth = 5

	out, err := Overlay(src, []hough.LineSegment{seg}, style)
	if err != nil {
		t.Fatalf("Overlay failed: %v", err)
	}
	if b := out.Bounds(); b.Dx() != 100 || b.Dy() != 100 {
		t.Fatalf("bounds: got %v, want 100x100", b)
	}

	if r, g, _ := rgbAt(out, 30, 20); r < 200 || g > 60 {
		t.Errorf("line pixel: got r=%d g=%d, want red", r, g)
	}
	if r, g, _ := rgbAt(out, 40, 50); g < 200 || r > 60 {
		t.Errorf("normal pixel: got r=%d g=%d, want green", r, g)
	}
	if r, g, b := rgbAt(out, 80, 80); r != 0 || g != 0 || b != 0 {
		t.Errorf("background pixel: got (%d,%d,%d), want black", r, g, b)
	}

	if r, g, b := rgbAt(src, 30, 20); r != 0 || g != 0 || b != 0 {
		t.Error("Overlay modified the source image")
	}
}

func TestOverlay_NoNormals(t *testing.T) {
	src := blackImage(60, 60)
	seg := hough.LineSegment{X1: 10, Y1: 0, X2: 10, Y2: 60, NormX: 10, NormY: 30}
	style := OverlayStyle{LineColor: "#0000FF", LineWidth: 5}

	out, err := Overlay(src, []hough.LineSegment{seg}, style)
	if err != nil {
		t.Fatalf("Overlay failed: %v", err)
	}
	if r, g, _ := rgbAt(out, 20, 30); r != 0 || g != 0 {
		t.Error("normal should not be drawn without a normal color")
	}
	if _, _, b := rgbAt(out, 10, 30); b < 200 {
		t.Errorf("line pixel: got b=%d, want blue", b)
	}
}

func TestOverlay_NoSegments(t *testing.T) {
	src := blackImage(20, 10)
	src.Set(4, 4, color.RGBA{9, 8, 7, 255})

	out, err := Overlay(src, nil, DefaultOverlayStyle())
	if err != nil {
		t.Fatalf("Overlay failed: %v", err)
	}
	if r, g, b := rgbAt(out, 4, 4); r != 9 || g != 8 || b != 7 {
		t.Errorf("pixel: got (%d,%d,%d), want (9,8,7)", r, g, b)
	}
}

func TestOverlay_InvalidStyle(t *testing.T) {
	src := blackImage(10, 10)

	tests := []struct {
		name  string
		style OverlayStyle
	}{
		{"bad line color", OverlayStyle{LineColor: "red", NormalColor: "#00FF00", LineWidth: 1}},
		{"bad normal color", OverlayStyle{LineColor: "#FF0000", NormalColor: "#12", LineWidth: 1}},
		{"zero width", OverlayStyle{LineColor: "#FF0000", LineWidth: 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Overlay(src, nil, tt.style); err == nil {
				t.Error("Overlay should reject the style")
			}
		})
	}
}

package imaging

import (
	"bytes"
	"encoding/base64"
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/ironsheep/hough-lines/internal/hough"
)

func TestGridToGray(t *testing.T) {
	g := &hough.Grid{
		AngleBins:    3,
		DistanceBins: 2,
		ImageWidth:   4,
		ImageHeight:  4,
		Pix:          []uint8{0, 10, 20, 30, 40, 255},
	}

	img := GridToGray(g)
	if b := img.Bounds(); b.Dx() != 3 || b.Dy() != 2 {
		t.Fatalf("bounds: got %v, want 3x2", b)
	}
	for d := 0; d < 2; d++ {
		for a := 0; a < 3; a++ {
			if got, want := img.GrayAt(a, d).Y, g.At(d, a); got != want {
				t.Errorf("cell (d=%d, a=%d): got %d, want %d", d, a, got, want)
			}
		}
	}
}

func TestEmpty(t *testing.T) {
	img, err := Empty(7, 3)
	if err != nil {
		t.Fatalf("Empty failed: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 7 || b.Dy() != 3 {
		t.Errorf("bounds: got %v, want 7x3", b)
	}
	for _, v := range img.Pix {
		if v != 0 {
			t.Fatal("Empty image should be black")
		}
	}

	_, err = Empty(0, 3)
	if !errors.Is(err, hough.ErrInvalidDimensions) {
		t.Errorf("Empty(0, 3): got %v, want ErrInvalidDimensions", err)
	}
}

func TestScaleGray(t *testing.T) {
	src := image.NewGray(image.Rect(0, 0, 2, 2))
	src.SetGray(1, 0, color.Gray{Y: 200})

	tests := []struct {
		name          string
		width, height int
		wantW, wantH  int
	}{
		{"unchanged", 0, 0, 2, 2},
		{"double", 4, 4, 4, 4},
		{"keep aspect", 6, 0, 6, 6},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := ScaleGray(src, tt.width, tt.height)
			b := out.Bounds()
			if b.Dx() != tt.wantW || b.Dy() != tt.wantH {
				t.Errorf("bounds: got %dx%d, want %dx%d", b.Dx(), b.Dy(), tt.wantW, tt.wantH)
			}
		})
	}

	// Nearest neighbor keeps cells crisp.
	out := ScaleGray(src, 4, 4)
	if g := color.GrayModel.Convert(out.At(3, 1)).(color.Gray).Y; g != 200 {
		t.Errorf("scaled cell: got %d, want 200", g)
	}
	if g := color.GrayModel.Convert(out.At(0, 0)).(color.Gray).Y; g != 0 {
		t.Errorf("scaled background: got %d, want 0", g)
	}
}

func TestEncodePNGBase64(t *testing.T) {
	src := image.NewGray(image.Rect(0, 0, 5, 4))
	src.SetGray(2, 1, color.Gray{Y: 255})

	result, err := EncodePNGBase64(src)
	if err != nil {
		t.Fatalf("EncodePNGBase64 failed: %v", err)
	}
	if result.Width != 5 || result.Height != 4 {
		t.Errorf("dimensions: got %dx%d, want 5x4", result.Width, result.Height)
	}
	if result.MimeType != "image/png" {
		t.Errorf("MimeType: got %s, want image/png", result.MimeType)
	}

	decoded, err := base64.StdEncoding.DecodeString(result.ImageBase64)
	if err != nil {
		t.Fatalf("failed to decode base64: %v", err)
	}
	img, err := png.Decode(bytes.NewReader(decoded))
	if err != nil {
		t.Fatalf("failed to decode PNG: %v", err)
	}
	if g := color.GrayModel.Convert(img.At(2, 1)).(color.Gray).Y; g != 255 {
		t.Errorf("round-tripped pixel: got %d, want 255", g)
	}
}

func TestSavePNG(t *testing.T) {
	src := image.NewGray(image.Rect(0, 0, 6, 6))
	src.SetGray(3, 3, color.Gray{Y: 255})
	path := filepath.Join(t.TempDir(), "out.png")

	if err := SavePNG(src, path); err != nil {
		t.Fatalf("SavePNG failed: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("failed to open saved file: %v", err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatalf("saved file is not a PNG: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 6 || b.Dy() != 6 {
		t.Errorf("bounds: got %v, want 6x6", b)
	}

	if err := SavePNG(src, filepath.Join(t.TempDir(), "missing", "out.png")); err == nil {
		t.Error("SavePNG should fail for a missing directory")
	}
}

package imaging

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"

	"github.com/anthonynsimon/bild/imgio"
	"github.com/disintegration/imaging"

	"github.com/ironsheep/hough-lines/internal/hough"
)

// EncodedImage is a PNG image encoded as base64, ready to be returned from a
// tool call.
type EncodedImage struct {
	// Width of the encoded image in pixels.
	Width int `json:"width"`

	// Height of the encoded image in pixels.
	Height int `json:"height"`

	// ImageBase64 is the image encoded as base64 PNG.
	ImageBase64 string `json:"image_base64"`

	// MimeType is always "image/png".
	MimeType string `json:"mime_type"`
}

// GridToGray renders a normalized grid as a grayscale picture. The x axis is
// the angle index and the y axis is the distance index, so the picture is
// AngleBins wide and DistanceBins tall.
func GridToGray(g *hough.Grid) *image.Gray {
	img := image.NewGray(image.Rect(0, 0, g.AngleBins, g.DistanceBins))
	copy(img.Pix, g.Pix)
	return img
}

// Empty returns an all-black picture of the given size.
func Empty(width, height int) (*image.Gray, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("image %dx%d: %w", width, height, hough.ErrInvalidDimensions)
	}
	return image.NewGray(image.Rect(0, 0, width, height)), nil
}

// ScaleGray resizes img with nearest-neighbor sampling so that individual
// accumulator cells stay crisp. A zero width or height preserves the aspect
// ratio.
func ScaleGray(img image.Image, width, height int) image.Image {
	if width == 0 && height == 0 {
		return img
	}
	return imaging.Resize(img, width, height, imaging.NearestNeighbor)
}

// EncodePNGBase64 encodes img as a base64 PNG.
func EncodePNGBase64(img image.Image) (*EncodedImage, error) {
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.PNG); err != nil {
		return nil, fmt.Errorf("failed to encode PNG: %w", err)
	}

	bounds := img.Bounds()
	return &EncodedImage{
		Width:       bounds.Dx(),
		Height:      bounds.Dy(),
		ImageBase64: base64.StdEncoding.EncodeToString(buf.Bytes()),
		MimeType:    "image/png",
	}, nil
}

// SavePNG writes img to path as a PNG file.
func SavePNG(img image.Image, path string) error {
	if err := imgio.Save(path, img, imgio.PNGEncoder()); err != nil {
		return fmt.Errorf("failed to save %s: %w", path, err)
	}
	return nil
}

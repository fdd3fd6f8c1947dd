package imaging

import (
	"fmt"
	"image"
	"image/color"

	"github.com/anthonynsimon/bild/blur"
	"github.com/anthonynsimon/bild/effect"
	"github.com/anthonynsimon/bild/segment"

	"github.com/ironsheep/hough-lines/internal/hough"
)

// DefaultEdgeLevel marks every pixel with non-zero luminance as an edge,
// which is the right choice for images that already are edge maps.
const DefaultEdgeLevel = 1

// ToEdgeImage binarizes img into an EdgeImage.
//
// Each pixel is converted to luminance and marked as an edge (255) when the
// luminance is at least level, otherwise it is cleared (0). level must be in
// 1..255.
//
// The input is expected to already be an edge map (white strokes on black).
// For ordinary photographs use DetectEdges, which runs a gradient filter first.
func ToEdgeImage(img image.Image, level int) (*hough.EdgeImage, error) {
	if level < 1 || level > 255 {
		return nil, fmt.Errorf("edge level must be in 1..255, got %d", level)
	}

	bounds := img.Bounds()
	edges, err := hough.NewEdgeImage(bounds.Dx(), bounds.Dy())
	if err != nil {
		return nil, err
	}

	var binary image.Image = segment.Threshold(img, uint8(level))
	bb := binary.Bounds()
	for y := 0; y < edges.Height; y++ {
		for x := 0; x < edges.Width; x++ {
			g := color.GrayModel.Convert(binary.At(bb.Min.X+x, bb.Min.Y+y)).(color.Gray)
			edges.Set(x, y, g.Y)
		}
	}
	return edges, nil
}

// DetectEdges produces an edge image from an ordinary picture.
//
// The image is optionally smoothed with a Gaussian blur (blurRadius > 0),
// converted to grayscale, run through a Sobel gradient filter, and finally
// binarized at level with ToEdgeImage.
func DetectEdges(img image.Image, level int, blurRadius float64) (*hough.EdgeImage, error) {
	if blurRadius < 0 {
		return nil, fmt.Errorf("blur radius must not be negative, got %g", blurRadius)
	}

	var src image.Image = img
	if blurRadius > 0 {
		src = blur.Gaussian(src, blurRadius)
	}
	var gray image.Image = effect.Grayscale(src)
	var gradient image.Image = effect.Sobel(gray)

	return ToEdgeImage(gradient, level)
}

// EdgeImageToGray renders an edge image as an 8-bit grayscale picture.
func EdgeImageToGray(e *hough.EdgeImage) *image.Gray {
	img := image.NewGray(image.Rect(0, 0, e.Width, e.Height))
	copy(img.Pix, e.Pix)
	return img
}

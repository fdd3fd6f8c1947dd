package imaging

import (
	"fmt"
	"image"
	_ "image/gif"  // Register GIF format decoder
	_ "image/jpeg" // Register JPEG format decoder
	_ "image/png"  // Register PNG format decoder
	"os"
	"strings"
	"sync"

	"github.com/disintegration/imaging"

	"github.com/ironsheep/hough-lines/internal/hough"
)

// ImageCache provides thread-safe caching of decoded source images and the
// edge images derived from them.
//
// Source images are keyed by file path. Edge images are keyed by path and
// edge level, so repeated pipeline runs against the same file with the same
// binarization level skip both disk I/O and conversion.
//
// ImageCache is safe for concurrent use by multiple goroutines.
//
// # Memory Management
//
// Cached entries remain in memory until explicitly removed via Evict() or
// Clear(). Evicting a path drops its edge images as well.
//
// # Example Usage
//
//	cache := imaging.NewImageCache()
//	edges, err := cache.LoadEdges("/path/to/image.png", 1)
//	if err != nil {
//	    return err
//	}
//	acc, err := hough.Build(edges, 360, 500)
type ImageCache struct {
	mu     sync.RWMutex
	images map[string]image.Image
	edges  map[edgeKey]*hough.EdgeImage
}

type edgeKey struct {
	path  string
	level int
}

// NewImageCache creates and initializes a new empty image cache.
func NewImageCache() *ImageCache {
	return &ImageCache{
		images: make(map[string]image.Image),
		edges:  make(map[edgeKey]*hough.EdgeImage),
	}
}

// Load retrieves an image from the cache or loads it from disk if not cached.
//
// Files are decoded with EXIF auto-orientation so that photographs come out
// the way they were taken. Supported formats are PNG, JPEG, and GIF.
//
// The image is cached using the exact path string provided. Different paths to
// the same file (e.g., relative vs absolute) result in separate cache entries.
func (c *ImageCache) Load(path string) (image.Image, error) {
	c.mu.RLock()
	if img, ok := c.images[path]; ok {
		c.mu.RUnlock()
		return img, nil
	}
	c.mu.RUnlock()

	img, err := imaging.Open(path, imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("failed to load image: %w", err)
	}

	c.mu.Lock()
	c.images[path] = img
	c.mu.Unlock()

	return img, nil
}

// LoadEdges returns the edge image of path binarized at level, converting
// and caching it on first use. See ToEdgeImage for the level semantics.
func (c *ImageCache) LoadEdges(path string, level int) (*hough.EdgeImage, error) {
	key := edgeKey{path: path, level: level}

	c.mu.RLock()
	if e, ok := c.edges[key]; ok {
		c.mu.RUnlock()
		return e, nil
	}
	c.mu.RUnlock()

	img, err := c.Load(path)
	if err != nil {
		return nil, err
	}
	e, err := ToEdgeImage(img, level)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.edges[key] = e
	c.mu.Unlock()

	return e, nil
}

// Clear removes all images and edge images from the cache.
func (c *ImageCache) Clear() {
	c.mu.Lock()
	c.images = make(map[string]image.Image)
	c.edges = make(map[edgeKey]*hough.EdgeImage)
	c.mu.Unlock()
}

// Evict removes a specific image, and every edge image derived from it, from
// the cache. Unknown paths are ignored.
func (c *ImageCache) Evict(path string) {
	c.mu.Lock()
	delete(c.images, path)
	for k := range c.edges {
		if k.path == path {
			delete(c.edges, k)
		}
	}
	c.mu.Unlock()
}

// ImageInfo contains metadata about a loaded image file, including the
// smallest distance-bin count that keeps every vote in range.
type ImageInfo struct {
	// Width is the image width in pixels.
	Width int `json:"width"`

	// Height is the image height in pixels.
	Height int `json:"height"`

	// Format is the image format named by the file extension, lowercased
	// ("png", "jpeg", "gif", "tiff", "bmp"), or "unknown".
	Format string `json:"format"`

	// HasAlpha indicates whether the image has an alpha (transparency) channel.
	HasAlpha bool `json:"has_alpha"`

	// FileSizeBytes is the size of the image file on disk in bytes.
	FileSizeBytes int64 `json:"file_size_bytes"`

	// EdgePixels counts the pixels that are edges at DefaultEdgeLevel.
	EdgePixels int `json:"edge_pixels"`

	// MinDistanceBins is the lower bound on distance bins accepted by the
	// strict range policy for an image of this size.
	MinDistanceBins int `json:"min_distance_bins"`
}

// LoadImageInfo loads an image and its default edge image into the cache
// and returns its metadata.
func LoadImageInfo(cache *ImageCache, path string) (*ImageInfo, error) {
	img, err := cache.Load(path)
	if err != nil {
		return nil, err
	}
	edges, err := cache.LoadEdges(path, DefaultEdgeLevel)
	if err != nil {
		return nil, err
	}

	stat, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to stat file: %w", err)
	}

	format := "unknown"
	if f, err := imaging.FormatFromFilename(path); err == nil {
		format = strings.ToLower(f.String())
	}

	hasAlpha := false
	switch img.(type) {
	case *image.RGBA, *image.NRGBA, *image.RGBA64, *image.NRGBA64:
		hasAlpha = true
	}

	bounds := img.Bounds()
	return &ImageInfo{
		Width:           bounds.Dx(),
		Height:          bounds.Dy(),
		Format:          format,
		HasAlpha:        hasAlpha,
		FileSizeBytes:   stat.Size(),
		EdgePixels:      edges.EdgeCount(),
		MinDistanceBins: hough.MinDistanceBins(bounds.Dx(), bounds.Dy()),
	}, nil
}

// DimensionsResult contains the width and height of an image.
type DimensionsResult struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// GetDimensions returns the dimensions of an image without additional metadata.
func GetDimensions(cache *ImageCache, path string) (*DimensionsResult, error) {
	img, err := cache.Load(path)
	if err != nil {
		return nil, err
	}

	bounds := img.Bounds()
	return &DimensionsResult{
		Width:  bounds.Dx(),
		Height: bounds.Dy(),
	}, nil
}

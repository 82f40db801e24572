package imaging

import (
	"fmt"
	"image"
	_ "image/gif"  // Register GIF format decoder
	_ "image/jpeg" // Register JPEG format decoder
	_ "image/png"  // Register PNG format decoder
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"

	_ "golang.org/x/image/bmp" // Register BMP format decoder

	"github.com/ironsheep/mandelbrot-bmp/internal/bitmap"
)

// ImageCache provides thread-safe caching of decoded images keyed by file path.
//
// Band files are usually read more than once (inspected, sampled, then stitched),
// so the decoded image is kept until Evict or Clear is called.
//
// ImageCache is safe for concurrent use by multiple goroutines.
type ImageCache struct {
	mu     sync.RWMutex
	images map[string]image.Image
}

// NewImageCache creates an empty image cache.
func NewImageCache() *ImageCache {
	return &ImageCache{
		images: make(map[string]image.Image),
	}
}

// Load retrieves an image from the cache or decodes it from disk.
//
// Supported formats are BMP, PNG, JPEG and GIF. The image is cached under the
// exact path string provided.
func (c *ImageCache) Load(path string) (image.Image, error) {
	c.mu.RLock()
	if img, ok := c.images[path]; ok {
		c.mu.RUnlock()
		return img, nil
	}
	c.mu.RUnlock()

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open image: %w", err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	c.mu.Lock()
	c.images[path] = img
	c.mu.Unlock()

	return img, nil
}

// Clear removes all images from the cache.
func (c *ImageCache) Clear() {
	c.mu.Lock()
	c.images = make(map[string]image.Image)
	c.mu.Unlock()
}

// Evict removes a single path from the cache. Unknown paths are ignored.
func (c *ImageCache) Evict(path string) {
	c.mu.Lock()
	delete(c.images, path)
	c.mu.Unlock()
}

// Len returns the number of cached images.
func (c *ImageCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.images)
}

// BandInfo describes one band bitmap on disk.
type BandInfo struct {
	Path string `json:"path"`

	// Width and Height are the bitmap dimensions in pixels.
	Width  int `json:"width"`
	Height int `json:"height"`

	// BitsPerPixel is 8 for indexed greyscale bands and 24 for true color.
	BitsPerPixel int `json:"bits_per_pixel"`

	// StartRow is the first row of the full image held by this band, taken
	// from the file name. EndRow is StartRow+Height.
	StartRow int `json:"start_row"`
	EndRow   int `json:"end_row"`

	FileSizeBytes int64 `json:"file_size_bytes"`
}

// ParseStartRow extracts the start row from a band file name of the form
// <prefix>_<row>.bmp.
func ParseStartRow(path string) (int, error) {
	base := filepath.Base(path)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	i := strings.LastIndexByte(base, '_')
	if i < 0 {
		return 0, fmt.Errorf("band file name %q has no _<row> suffix", filepath.Base(path))
	}
	row, err := strconv.Atoi(base[i+1:])
	if err != nil || row < 0 {
		return 0, fmt.Errorf("band file name %q has no valid start row", filepath.Base(path))
	}
	return row, nil
}

// LoadBandInfo reads the header of a band bitmap and derives its row range
// from the file name. The pixel data is decoded into cache.
func LoadBandInfo(cache *ImageCache, path string) (*BandInfo, error) {
	start, err := ParseStartRow(path)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open band: %w", err)
	}
	defer f.Close()

	_, ih, err := bitmap.ReadHeader(f)
	if err != nil {
		return nil, err
	}
	stat, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("failed to stat file: %w", err)
	}

	img, err := cache.Load(path)
	if err != nil {
		return nil, err
	}
	bounds := img.Bounds()

	return &BandInfo{
		Path:          path,
		Width:         bounds.Dx(),
		Height:        bounds.Dy(),
		BitsPerPixel:  int(ih.BitCount),
		StartRow:      start,
		EndRow:        start + bounds.Dy(),
		FileSizeBytes: stat.Size(),
	}, nil
}

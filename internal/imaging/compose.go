package imaging

import (
	"fmt"
	"image"
	"image/color"
	"sort"

	"github.com/disintegration/imaging"

	"github.com/ironsheep/mandelbrot-bmp/internal/bitmap"
)

// Band is a decoded band image together with the first full-image row it holds.
type Band struct {
	StartRow int
	Image    image.Image
}

// EndRow returns one past the last full-image row held by the band.
func (b Band) EndRow() int {
	return b.StartRow + b.Image.Bounds().Dy()
}

// LoadBands decodes band files through cache, taking start rows from the file names.
func LoadBands(cache *ImageCache, paths []string) ([]Band, error) {
	bands := make([]Band, 0, len(paths))
	for _, p := range paths {
		start, err := ParseStartRow(p)
		if err != nil {
			return nil, err
		}
		img, err := cache.Load(p)
		if err != nil {
			return nil, fmt.Errorf("failed to load band %s: %w", p, err)
		}
		bands = append(bands, Band{StartRow: start, Image: img})
	}
	return bands, nil
}

// Stitch composes bands into one image of fullHeight rows. A fullHeight of 0
// means the end of the last band.
//
// Full-image row 0 is the bottom of the picture, so a band holding rows
// [s, e) lands at image rows [fullHeight-e, fullHeight-s). Rows no band covers
// stay black. All bands must have the same width and must not overlap.
func Stitch(bands []Band, fullHeight int) (*image.NRGBA, error) {
	if len(bands) == 0 {
		return nil, fmt.Errorf("no bands to stitch")
	}

	sorted := make([]Band, len(bands))
	copy(sorted, bands)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].StartRow < sorted[j].StartRow })

	width := sorted[0].Image.Bounds().Dx()
	for i, b := range sorted {
		if w := b.Image.Bounds().Dx(); w != width {
			return nil, fmt.Errorf("band at row %d is %d pixels wide, want %d", b.StartRow, w, width)
		}
		if b.StartRow < 0 {
			return nil, fmt.Errorf("band start row %d is negative", b.StartRow)
		}
		if i > 0 && b.StartRow < sorted[i-1].EndRow() {
			return nil, fmt.Errorf("band at row %d overlaps band [%d, %d)",
				b.StartRow, sorted[i-1].StartRow, sorted[i-1].EndRow())
		}
	}

	last := sorted[len(sorted)-1].EndRow()
	if fullHeight == 0 {
		fullHeight = last
	}
	if last > fullHeight {
		return nil, fmt.Errorf("band ends at row %d beyond image height %d", last, fullHeight)
	}

	canvas := imaging.New(width, fullHeight, color.Black)
	for _, b := range sorted {
		canvas = imaging.Paste(canvas, b.Image, image.Pt(0, fullHeight-b.EndRow()))
	}
	return canvas, nil
}

// MissingRows returns the full-image row ranges no band covers.
func MissingRows(bands []Band, fullHeight int) [][2]int {
	sorted := make([]Band, len(bands))
	copy(sorted, bands)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].StartRow < sorted[j].StartRow })

	var gaps [][2]int
	next := 0
	for _, b := range sorted {
		if b.StartRow > next {
			gaps = append(gaps, [2]int{next, b.StartRow})
		}
		next = max(next, b.EndRow())
	}
	if next < fullHeight {
		gaps = append(gaps, [2]int{next, fullHeight})
	}
	return gaps
}

// StitchResult describes a stitched bitmap written to disk.
type StitchResult struct {
	Path    string   `json:"path"`
	Width   int      `json:"width"`
	Height  int      `json:"height"`
	Bands   int      `json:"bands"`
	Missing [][2]int `json:"missing_rows,omitempty"`
}

// StitchFiles loads band files, stitches them and writes the result as a
// bitmap of the given depth.
func StitchFiles(cache *ImageCache, paths []string, fullHeight int, out string, depth int) (*StitchResult, error) {
	bands, err := LoadBands(cache, paths)
	if err != nil {
		return nil, err
	}
	img, err := Stitch(bands, fullHeight)
	if err != nil {
		return nil, err
	}
	if err := bitmap.Save(out, img, depth); err != nil {
		return nil, fmt.Errorf("failed to write stitched image: %w", err)
	}

	b := img.Bounds()
	return &StitchResult{
		Path:    out,
		Width:   b.Dx(),
		Height:  b.Dy(),
		Bands:   len(bands),
		Missing: MissingRows(bands, b.Dy()),
	}, nil
}

package imaging

import (
	"fmt"
	"image"
	"math"
	"sort"

	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/ironsheep/mandelbrot-bmp/internal/palette"
)

// HSLColor represents a color in HSL space.
type HSLColor struct {
	H int `json:"h"` // Hue: 0-360 degrees
	S int `json:"s"` // Saturation: 0-100 percent
	L int `json:"l"` // Lightness: 0-100 percent
}

// ColorResult contains a sampled color in several representations.
type ColorResult struct {
	Hex string        `json:"hex"` // "#RRGGBB"
	RGB palette.Color `json:"rgb"`
	HSL HSLColor      `json:"hsl"`

	// Index is the grey level, which is the palette index in an 8-bit band.
	Index uint8 `json:"index"`

	// Interior reports whether the pixel has the interior color.
	Interior bool `json:"interior"`
}

// SampleColor returns the color at pixel (x, y), with (0,0) at the top-left.
func SampleColor(img image.Image, x, y int) (*ColorResult, error) {
	bounds := img.Bounds()
	if x < bounds.Min.X || x >= bounds.Max.X || y < bounds.Min.Y || y >= bounds.Max.Y {
		return nil, fmt.Errorf("coordinates (%d,%d) outside image bounds", x, y)
	}

	r, g, b, _ := img.At(x, y).RGBA()
	c := palette.Color{R: uint8(r >> 8), G: uint8(g >> 8), B: uint8(b >> 8)}

	return &ColorResult{
		Hex:      c.Hex(),
		RGB:      c,
		HSL:      toHSL(c),
		Index:    c.Index(),
		Interior: c == palette.Black,
	}, nil
}

// LabeledPoint is a pixel coordinate with an optional label.
type LabeledPoint struct {
	X     int
	Y     int
	Label string
}

// LabeledColorResult combines a color sample with its location and label.
type LabeledColorResult struct {
	Label string      `json:"label,omitempty"`
	X     int         `json:"x"`
	Y     int         `json:"y"`
	Color ColorResult `json:"color"`
}

// MultiColorResult contains color samples in input order.
type MultiColorResult struct {
	Samples []LabeledColorResult `json:"samples"`
}

// SampleColorsMulti samples several points. Any out-of-bounds point fails the
// whole call.
func SampleColorsMulti(img image.Image, points []LabeledPoint) (*MultiColorResult, error) {
	results := make([]LabeledColorResult, 0, len(points))

	for _, p := range points {
		color, err := SampleColor(img, p.X, p.Y)
		if err != nil {
			return nil, fmt.Errorf("failed to sample point (%d,%d): %w", p.X, p.Y, err)
		}
		results = append(results, LabeledColorResult{
			Label: p.Label,
			X:     p.X,
			Y:     p.Y,
			Color: *color,
		})
	}

	return &MultiColorResult{Samples: results}, nil
}

// ColorFrequency is one distinct color and its share of the pixels.
type ColorFrequency struct {
	Hex        string  `json:"hex"`
	Percentage float64 `json:"percentage"`
	Pixels     int     `json:"pixels"`
}

// ColorUsageResult summarizes the colors of a rendered image.
type ColorUsageResult struct {
	Distinct int `json:"distinct"`
	// Interior is the percentage of pixels with the interior color.
	Interior float64          `json:"interior_percentage"`
	Colors   []ColorFrequency `json:"colors"` // most frequent first
}

// ColorUsage counts the exact colors of img and returns the count most
// frequent ones. Ties are ordered by hex value.
func ColorUsage(img image.Image, count int) *ColorUsageResult {
	bounds := img.Bounds()
	counts := make(map[palette.Color]int)
	total := 0
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			r, g, b, _ := img.At(x, y).RGBA()
			counts[palette.Color{R: uint8(r >> 8), G: uint8(g >> 8), B: uint8(b >> 8)}]++
			total++
		}
	}

	colors := make([]ColorFrequency, 0, len(counts))
	for c, n := range counts {
		colors = append(colors, ColorFrequency{
			Hex:        c.Hex(),
			Percentage: float64(n) / float64(total) * 100,
			Pixels:     n,
		})
	}
	sort.Slice(colors, func(i, j int) bool {
		if colors[i].Pixels != colors[j].Pixels {
			return colors[i].Pixels > colors[j].Pixels
		}
		return colors[i].Hex < colors[j].Hex
	})

	res := &ColorUsageResult{Distinct: len(colors)}
	if total > 0 {
		res.Interior = float64(counts[palette.Black]) / float64(total) * 100
	}
	if count >= 0 && len(colors) > count {
		colors = colors[:count]
	}
	res.Colors = colors
	return res
}

func toHSL(c palette.Color) HSLColor {
	h, s, l := colorful.Color{
		R: float64(c.R) / 255,
		G: float64(c.G) / 255,
		B: float64(c.B) / 255,
	}.Hsl()
	if math.IsNaN(h) {
		h = 0
	}
	return HSLColor{H: int(h), S: int(s * 100), L: int(l * 100)}
}

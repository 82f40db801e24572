package imaging

import (
	"image"
	"image/color"
	"strconv"

	"github.com/disintegration/imaging"

	"github.com/ironsheep/mandelbrot-bmp/internal/palette"
)

// DefaultOverlayColor marks band seams when no color is given.
const DefaultOverlayColor = "#FF0000"

// BandOverlay returns a copy of a stitched image with a line on every band
// seam and the start row of each band printed above it. Band starts are
// full-image rows counted from the bottom; starts of 0 or beyond the image
// are ignored. An empty or invalid lineHex falls back to DefaultOverlayColor.
func BandOverlay(img image.Image, starts []int, lineHex string) *image.NRGBA {
	line, err := palette.ParseHex(lineHex)
	if err != nil {
		line, _ = palette.ParseHex(DefaultOverlayColor)
	}

	result := imaging.Clone(img)
	width, height := result.Bounds().Dx(), result.Bounds().Dy()

	fg := color.NRGBA{255, 255, 255, 255}
	bg := color.NRGBA{0, 0, 0, 180}
	for _, s := range starts {
		if s <= 0 || s >= height {
			continue
		}
		y := height - s
		for x := 0; x < width; x++ {
			result.Set(x, y, line)
		}
		drawLabel(result, 2, max(1, y-8), strconv.Itoa(s), fg, bg)
	}
	return result
}

// drawLabel draws digits in a 3x5 pixel font at (x, y).
func drawLabel(img *image.NRGBA, x, y int, text string, fg, bg color.NRGBA) {
	glyphs := map[rune][]string{
		'0': {"111", "101", "101", "101", "111"},
		'1': {"010", "110", "010", "010", "111"},
		'2': {"111", "001", "111", "100", "111"},
		'3': {"111", "001", "111", "001", "111"},
		'4': {"101", "101", "111", "001", "001"},
		'5': {"111", "100", "111", "001", "111"},
		'6': {"111", "100", "111", "101", "111"},
		'7': {"111", "001", "001", "001", "001"},
		'8': {"111", "101", "111", "101", "111"},
		'9': {"111", "101", "111", "001", "111"},
	}

	bounds := img.Bounds()
	set := func(px, py int, c color.NRGBA) {
		if image.Pt(px, py).In(bounds) {
			img.SetNRGBA(px, py, c)
		}
	}

	const charWidth, labelHeight = 4, 7
	for dy := -1; dy < labelHeight; dy++ {
		for dx := -1; dx < len(text)*charWidth; dx++ {
			set(x+dx, y+dy, bg)
		}
	}

	cx := x
	for _, ch := range text {
		for row, glyphLine := range glyphs[ch] {
			for col, pixel := range glyphLine {
				if pixel == '1' {
					set(cx+col, y+row, fg)
				}
			}
		}
		cx += charWidth
	}
}

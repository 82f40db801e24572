package imaging

import (
	"fmt"
	"image"
	"math"
)

// CompareResult describes how two images of the same size differ.
type CompareResult struct {
	Identical        bool    `json:"identical"`
	PixelsDifferent  int     `json:"pixels_different"`
	TotalPixels      int     `json:"total_pixels"`
	SimilarityScore  float64 `json:"similarity_score"`
	AverageColorDiff float64 `json:"average_color_diff"`

	// FirstDiff is the first differing pixel in raster order, top-left origin.
	FirstDiff *image.Point `json:"first_diff,omitempty"`
}

// Compare checks two images pixel by pixel on their 8-bit RGB values. Images
// of different sizes are an error.
func Compare(a, b image.Image) (*CompareResult, error) {
	ab, bb := a.Bounds(), b.Bounds()
	if ab.Dx() != bb.Dx() || ab.Dy() != bb.Dy() {
		return nil, fmt.Errorf("image sizes differ: %dx%d vs %dx%d", ab.Dx(), ab.Dy(), bb.Dx(), bb.Dy())
	}

	res := &CompareResult{TotalPixels: ab.Dx() * ab.Dy()}
	var totalColorDiff float64

	for dy := 0; dy < ab.Dy(); dy++ {
		for dx := 0; dx < ab.Dx(); dx++ {
			r1, g1, b1, _ := a.At(ab.Min.X+dx, ab.Min.Y+dy).RGBA()
			r2, g2, b2, _ := b.At(bb.Min.X+dx, bb.Min.Y+dy).RGBA()

			diff := absDiff(uint8(r1>>8), uint8(r2>>8)) +
				absDiff(uint8(g1>>8), uint8(g2>>8)) +
				absDiff(uint8(b1>>8), uint8(b2>>8))
			if diff == 0 {
				continue
			}
			totalColorDiff += float64(diff) / 3
			res.PixelsDifferent++
			if res.FirstDiff == nil {
				res.FirstDiff = &image.Point{X: dx, Y: dy}
			}
		}
	}

	res.Identical = res.PixelsDifferent == 0
	if res.TotalPixels > 0 {
		similarity := 1 - float64(res.PixelsDifferent)/float64(res.TotalPixels)
		res.SimilarityScore = math.Round(similarity*1000) / 1000
		res.AverageColorDiff = math.Round(totalColorDiff/float64(res.TotalPixels)*100) / 100
	}
	return res, nil
}

func absDiff(a, b uint8) int {
	if a > b {
		return int(a - b)
	}
	return int(b - a)
}

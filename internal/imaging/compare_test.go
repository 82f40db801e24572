package imaging

import (
	"image"
	"image/color"
	"testing"
)

func TestCompare_Identical(t *testing.T) {
	a := createPatternImage(20, 20)
	b := createPatternImage(20, 20)

	res, err := Compare(a, b)
	if err != nil {
		t.Fatalf("Compare failed: %v", err)
	}
	if !res.Identical || res.PixelsDifferent != 0 || res.SimilarityScore != 1 || res.FirstDiff != nil {
		t.Errorf("got %+v, want identical", res)
	}
	if res.TotalPixels != 400 {
		t.Errorf("total pixels: got %d, want 400", res.TotalPixels)
	}
}

func TestCompare_Differences(t *testing.T) {
	a := fillImage(10, 10, color.RGBA{100, 100, 100, 255})
	b := fillImage(10, 10, color.RGBA{100, 100, 100, 255})
	b.Set(3, 2, color.RGBA{103, 100, 100, 255})
	b.Set(7, 8, color.RGBA{100, 130, 100, 255})

	res, err := Compare(a, b)
	if err != nil {
		t.Fatalf("Compare failed: %v", err)
	}
	if res.Identical || res.PixelsDifferent != 2 {
		t.Errorf("got %+v, want 2 differing pixels", res)
	}
	if res.FirstDiff == nil || *res.FirstDiff != image.Pt(3, 2) {
		t.Errorf("first difference: got %v, want (3,2)", res.FirstDiff)
	}
	if res.SimilarityScore != 0.98 {
		t.Errorf("similarity: got %g, want 0.98", res.SimilarityScore)
	}
	// (3/3 + 30/3) / 100 pixels
	if res.AverageColorDiff != 0.11 {
		t.Errorf("average diff: got %g, want 0.11", res.AverageColorDiff)
	}
}

func TestCompare_OffsetBounds(t *testing.T) {
	a := fillImage(4, 4, red)
	b := image.NewRGBA(image.Rect(10, 10, 14, 14))
	for y := 10; y < 14; y++ {
		for x := 10; x < 14; x++ {
			b.Set(x, y, red)
		}
	}
	res, err := Compare(a, b)
	if err != nil {
		t.Fatalf("Compare failed: %v", err)
	}
	if !res.Identical {
		t.Errorf("images with shifted bounds should compare equal: %+v", res)
	}
}

func TestCompare_SizeMismatch(t *testing.T) {
	if _, err := Compare(fillImage(4, 4, red), fillImage(4, 5, red)); err == nil {
		t.Error("Compare should fail for different sizes")
	}
}

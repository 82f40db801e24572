package render

import (
	"errors"
	"fmt"
	"image/color"

	"github.com/ironsheep/mandelbrot-bmp/internal/bitmap"
	"github.com/ironsheep/mandelbrot-bmp/internal/escape"
	"github.com/ironsheep/mandelbrot-bmp/internal/palette"
)

// PixelWriter receives pixels in raster order. *bitmap.Encoder implements it.
type PixelWriter interface {
	WritePixel(c color.Color) error
}

// Options describes one band render.
type Options struct {
	// Width and Height are the dimensions of the full image in pixels.
	Width  int
	Height int

	// Center is the plane coordinate at the middle of the full image.
	Center complex128

	// Precision is the plane distance covered by one pixel.
	Precision float64

	MaxIterations int

	// EscapeRadius bounds |z|, normally escape.DefaultEscapeRadius. Zero is a
	// legal radius: every point except the origin escapes at once.
	EscapeRadius float64

	// Shortcut enables the main cardioid / period-2 bulb test.
	Shortcut bool

	// StartRow and EndRow select rows [StartRow, EndRow) of the full image.
	// EndRow is clamped to Height.
	StartRow int
	EndRow   int

	// Mapper colors each iteration count.
	Mapper palette.Mapper

	// Progress, if set, is called after each completed row.
	Progress func(row int)
}

// Rows returns the clamped row range [start, end).
func (o Options) Rows() (start, end int) {
	end = o.EndRow
	if end > o.Height {
		end = o.Height
	}
	return o.StartRow, end
}

// Band returns the geometry of the bitmap that holds the rendered rows.
func (o Options) Band(depth int) bitmap.Geometry {
	start, end := o.Rows()
	return bitmap.Geometry{Width: o.Width, Height: end - start, Depth: depth}
}

// Plane returns the pixel-to-plane transform of the full image.
func (o Options) Plane() Plane {
	return NewPlane(o.Center, o.Precision, o.Width, o.Height)
}

// Validate reports option combinations that cannot be rendered.
func (o Options) Validate() error {
	if o.Width <= 0 || o.Height <= 0 {
		return fmt.Errorf("image size %dx%d: width and height must be positive", o.Width, o.Height)
	}
	if o.MaxIterations < 0 {
		return fmt.Errorf("max iterations %d must not be negative", o.MaxIterations)
	}
	if o.EscapeRadius < 0 {
		return fmt.Errorf("escape radius %g must not be negative", o.EscapeRadius)
	}
	start, end := o.Rows()
	if start < 0 || start >= o.Height {
		return fmt.Errorf("start row %d outside image of height %d", start, o.Height)
	}
	if end <= start {
		return fmt.Errorf("empty row range [%d, %d)", start, end)
	}
	if o.Mapper == nil {
		return errors.New("no palette selected")
	}
	return nil
}

// Stats summarizes a finished render.
type Stats struct {
	Rows     int `json:"rows"`
	Pixels   int `json:"pixels"`
	Interior int `json:"interior"` // pixels that reached MaxIterations
	MinCount int `json:"min_count"`
	MaxCount int `json:"max_count"`
}

// Render evaluates every pixel of the selected rows and streams its color to w.
// Rows are produced in increasing y, i.e. bottom row first. If rec is not nil
// the raw iteration counts are recorded as well.
func Render(w PixelWriter, opts Options, rec *Recorder) (Stats, error) {
	var st Stats
	if err := opts.Validate(); err != nil {
		return st, err
	}

	plane := opts.Plane()
	ev := escape.Evaluator{
		MaxIterations: opts.MaxIterations,
		Radius:        opts.EscapeRadius,
		Shortcut:      opts.Shortcut,
	}
	st.MinCount = opts.MaxIterations

	start, end := opts.Rows()
	for y := start; y < end; y++ {
		if rec != nil {
			rec.StartRow(y)
		}
		for x := 0; x < opts.Width; x++ {
			n := ev.Count(plane.Point(x, y))
			if rec != nil {
				rec.Add(n)
			}
			if err := w.WritePixel(opts.Mapper.Map(n, opts.MaxIterations)); err != nil {
				return st, fmt.Errorf("failed to write pixel (%d,%d): %w", x, y, err)
			}

			st.Pixels++
			if n >= opts.MaxIterations {
				st.Interior++
			}
			if n < st.MinCount {
				st.MinCount = n
			}
			if n > st.MaxCount {
				st.MaxCount = n
			}
		}
		st.Rows++
		if opts.Progress != nil {
			opts.Progress(y)
		}
	}
	return st, nil
}

// RenderFile renders the band into a new bitmap at path. The file is closed on
// every return path; after a failure it is left on disk, truncated.
func RenderFile(path string, depth int, opts Options, rec *Recorder) (st Stats, err error) {
	if err := opts.Validate(); err != nil {
		return st, err
	}
	enc, err := bitmap.Create(path, opts.Band(depth))
	if err != nil {
		return st, err
	}
	defer func() {
		if cerr := enc.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()
	st, err = Render(enc, opts, rec)
	if err == nil && !enc.Complete() {
		g := enc.Geometry()
		err = fmt.Errorf("bitmap holds %d of %d pixels", enc.Pixels(), g.Width*g.Height)
	}
	return st, err
}

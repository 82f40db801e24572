package bitmap

import (
	"bufio"
	"errors"
	"fmt"
	"image"
	"image/color"
	"io"
	"os"
)

var (
	// ErrClosed is returned by writes to an encoder that has been closed.
	ErrClosed = errors.New("bitmap: encoder closed")

	// ErrOverflow is returned when more than width*height pixels are written.
	ErrOverflow = errors.New("bitmap: more pixels than the image holds")
)

// Encoder streams pixels into a bitmap.
//
// The life cycle is: created (headers written) -> pixels written -> closed.
// Encoder is not safe for concurrent use.
type Encoder struct {
	w      *bufio.Writer
	closer io.Closer // nil when the caller owns the writer

	geom    Geometry
	pad     []byte // zero padding appended to every row
	px      [3]byte
	col     int // pixels written in the current row
	written int // pixels written in total
	err     error
	closed  bool
}

// NewEncoder validates g, writes the headers (and palette) to w and returns an
// encoder ready for the first pixel. Close flushes but does not close w.
func NewEncoder(w io.Writer, g Geometry) (*Encoder, error) {
	if err := g.Validate(); err != nil {
		return nil, err
	}
	bw := bufio.NewWriterSize(w, 64*1024)
	if err := writeHeader(bw, g); err != nil {
		return nil, err
	}
	return &Encoder{
		w:    bw,
		geom: g,
		pad:  make([]byte, g.RowStride()-g.Width*g.Depth),
	}, nil
}

// Create creates (or truncates) the file at path and writes the headers for g.
// The returned encoder owns the file; Close releases it.
func Create(path string, g Geometry) (*Encoder, error) {
	if err := g.Validate(); err != nil {
		return nil, err
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("failed to create bitmap: %w", err)
	}
	enc, err := NewEncoder(f, g)
	if err != nil {
		f.Close()
		return nil, err
	}
	enc.closer = f
	return enc, nil
}

// Geometry returns the geometry the encoder was created with.
func (e *Encoder) Geometry() Geometry {
	return e.geom
}

// Pixels returns the number of pixels written so far.
func (e *Encoder) Pixels() int {
	return e.written
}

// Complete reports whether every pixel of the image has been written.
func (e *Encoder) Complete() bool {
	return e.written == e.geom.Width*e.geom.Height
}

// WritePixel appends one pixel. True-color images store c as blue, green, red;
// indexed images store the grey level of c.
func (e *Encoder) WritePixel(c color.Color) error {
	if e.geom.Depth == DepthIndexed {
		return e.WriteIndex(color.GrayModel.Convert(c).(color.Gray).Y)
	}
	r, g, b, _ := c.RGBA()
	return e.WriteRGB(uint8(r>>8), uint8(g>>8), uint8(b>>8))
}

// WriteRGB appends one true-color pixel. In an indexed image the pixel is
// stored as its grey level.
func (e *Encoder) WriteRGB(r, g, b uint8) error {
	if e.geom.Depth == DepthIndexed {
		return e.WritePixel(color.RGBA{R: r, G: g, B: b, A: 0xff})
	}
	e.px = [3]byte{b, g, r}
	return e.put(e.px[:])
}

// WriteIndex appends one palette index. In a true-color image the index is
// stored as the grey color (v, v, v).
func (e *Encoder) WriteIndex(v uint8) error {
	if e.geom.Depth == DepthTrueColor {
		return e.WriteRGB(v, v, v)
	}
	e.px[0] = v
	return e.put(e.px[:1])
}

// put writes the bytes of one pixel and pads the row once it is full.
func (e *Encoder) put(p []byte) error {
	if e.closed {
		return ErrClosed
	}
	if e.err != nil {
		return e.err
	}
	if e.written >= e.geom.Width*e.geom.Height {
		return ErrOverflow
	}
	if _, err := e.w.Write(p); err != nil {
		e.err = fmt.Errorf("failed to write pixel: %w", err)
		return e.err
	}
	e.written++
	e.col++
	if e.col == e.geom.Width {
		if len(e.pad) > 0 {
			if _, err := e.w.Write(e.pad); err != nil {
				e.err = fmt.Errorf("failed to write row padding: %w", err)
				return e.err
			}
		}
		e.col = 0
	}
	return nil
}

// Close flushes buffered data and releases the file if the encoder owns one.
// The file is released even when flushing fails. Closing twice is a no-op.
func (e *Encoder) Close() error {
	if e.closed {
		return nil
	}
	e.closed = true

	err := e.err
	if ferr := e.w.Flush(); ferr != nil && err == nil {
		err = fmt.Errorf("failed to flush bitmap: %w", ferr)
	}
	if e.closer != nil {
		if cerr := e.closer.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("failed to close bitmap: %w", cerr)
		}
	}
	return err
}

// Encode writes img as a complete bitmap of the given depth. Rows are streamed
// bottom-up so the stored picture has the same orientation as img.
func Encode(w io.Writer, img image.Image, depth int) error {
	b := img.Bounds()
	enc, err := NewEncoder(w, Geometry{Width: b.Dx(), Height: b.Dy(), Depth: depth})
	if err != nil {
		return err
	}
	for y := b.Max.Y - 1; y >= b.Min.Y; y-- {
		for x := b.Min.X; x < b.Max.X; x++ {
			if err := enc.WritePixel(img.At(x, y)); err != nil {
				return err
			}
		}
	}
	return enc.Close()
}

// Save encodes img into a new file at path.
func Save(path string, img image.Image, depth int) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create bitmap: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("failed to close bitmap: %w", cerr)
		}
	}()
	return Encode(f, img, depth)
}

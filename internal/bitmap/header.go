package bitmap

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"
)

// Supported pixel depths in bytes per pixel.
const (
	DepthIndexed   = 1
	DepthTrueColor = 3
)

// Sizes of the fixed parts of a bitmap file.
const (
	FileHeaderSize = 14
	InfoHeaderSize = 40
	HeaderSize     = FileHeaderSize + InfoHeaderSize
	PaletteEntries = 256
	PaletteSize    = PaletteEntries * 4
)

// Geometry describes the dimensions and pixel depth of a bitmap.
type Geometry struct {
	Width  int `json:"width"`
	Height int `json:"height"`
	Depth  int `json:"depth"` // bytes per pixel: DepthIndexed or DepthTrueColor
}

// Validate checks that g can be encoded.
func (g Geometry) Validate() error {
	if g.Width <= 0 || g.Height <= 0 {
		return fmt.Errorf("invalid bitmap size %dx%d: width and height must be positive", g.Width, g.Height)
	}
	if g.Width > math.MaxInt32 || g.Height > math.MaxInt32 {
		return fmt.Errorf("invalid bitmap size %dx%d: dimensions must fit in 32 bits", g.Width, g.Height)
	}
	if g.Depth != DepthIndexed && g.Depth != DepthTrueColor {
		return fmt.Errorf("invalid bitmap depth %d: must be %d or %d", g.Depth, DepthIndexed, DepthTrueColor)
	}
	if int64(g.RowStride())*int64(g.Height)+HeaderSize+PaletteSize > 1<<32-1 {
		return fmt.Errorf("bitmap %dx%d is too large for a 32-bit file size", g.Width, g.Height)
	}
	return nil
}

// RowStride is the padded length of one row in bytes: ceil(width*depth/4)*4.
func (g Geometry) RowStride() int {
	return (g.Width*g.Depth + 3) / 4 * 4
}

// PaletteBytes is the size of the color table that follows the headers.
func (g Geometry) PaletteBytes() int {
	if g.Depth == DepthIndexed {
		return PaletteSize
	}
	return 0
}

// PixelOffset is the file offset of the first pixel row.
func (g Geometry) PixelOffset() int {
	return HeaderSize + g.PaletteBytes()
}

// ImageSize is the size of the pixel payload in bytes.
func (g Geometry) ImageSize() int {
	return g.RowStride() * g.Height
}

// FileSize is the total size of the encoded file in bytes.
func (g Geometry) FileSize() int {
	return g.PixelOffset() + g.ImageSize()
}

// FileHeader is the 14-byte BITMAPFILEHEADER.
type FileHeader struct {
	Type      [2]byte // "BM"
	Size      uint32  // total file size
	Reserved1 uint16
	Reserved2 uint16
	OffBits   uint32 // offset of the pixel array
}

// InfoHeader is the 40-byte BITMAPINFOHEADER.
type InfoHeader struct {
	Size            uint32
	Width           int32
	Height          int32 // positive: rows are stored bottom-up
	Planes          uint16
	BitCount        uint16
	Compression     uint32
	SizeImage       uint32
	XPixelsPerM     int32
	YPixelsPerM     int32
	ColorsUsed      uint32
	ColorsImportant uint32
}

// Headers returns the file and info headers for g.
func (g Geometry) Headers() (FileHeader, InfoHeader) {
	var colors uint32
	if g.Depth == DepthIndexed {
		colors = PaletteEntries
	}
	fh := FileHeader{
		Type:    [2]byte{'B', 'M'},
		Size:    uint32(g.FileSize()),
		OffBits: uint32(g.PixelOffset()),
	}
	ih := InfoHeader{
		Size:            InfoHeaderSize,
		Width:           int32(g.Width),
		Height:          int32(g.Height),
		Planes:          1,
		BitCount:        uint16(g.Depth * 8),
		SizeImage:       uint32(g.ImageSize()),
		ColorsUsed:      colors,
		ColorsImportant: colors,
	}
	return fh, ih
}

// writeHeader writes both headers and, for indexed images, the greyscale palette.
func writeHeader(w io.Writer, g Geometry) error {
	fh, ih := g.Headers()
	if err := binary.Write(w, binary.LittleEndian, fh); err != nil {
		return fmt.Errorf("failed to write file header: %w", err)
	}
	if err := binary.Write(w, binary.LittleEndian, ih); err != nil {
		return fmt.Errorf("failed to write info header: %w", err)
	}
	if g.Depth != DepthIndexed {
		return nil
	}
	pal := make([]byte, PaletteSize)
	for i := 0; i < PaletteEntries; i++ {
		pal[i*4] = byte(i)
		pal[i*4+1] = byte(i)
		pal[i*4+2] = byte(i)
	}
	if _, err := w.Write(pal); err != nil {
		return fmt.Errorf("failed to write palette: %w", err)
	}
	return nil
}

// ReadHeader reads and checks the headers of a bitmap written by this package.
func ReadHeader(r io.Reader) (FileHeader, InfoHeader, error) {
	var fh FileHeader
	var ih InfoHeader
	if err := binary.Read(r, binary.LittleEndian, &fh); err != nil {
		return fh, ih, fmt.Errorf("failed to read file header: %w", err)
	}
	if fh.Type != [2]byte{'B', 'M'} {
		return fh, ih, fmt.Errorf("not a bitmap: magic %q", fh.Type[:])
	}
	if err := binary.Read(r, binary.LittleEndian, &ih); err != nil {
		return fh, ih, fmt.Errorf("failed to read info header: %w", err)
	}
	if ih.Size != InfoHeaderSize {
		return fh, ih, fmt.Errorf("unsupported info header size %d", ih.Size)
	}
	return fh, ih, nil
}

// Geometry returns the geometry described by an info header.
func (ih InfoHeader) Geometry() Geometry {
	h := int(ih.Height)
	if h < 0 {
		h = -h
	}
	return Geometry{Width: int(ih.Width), Height: h, Depth: int(ih.BitCount) / 8}
}

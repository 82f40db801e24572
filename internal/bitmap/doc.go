// Package bitmap writes uncompressed Windows bitmap (BMP) files one pixel at a time.
//
// # File Layout
//
// All multi-byte fields are little-endian:
//
//	offset  size  field
//	0       14    file header: "BM", file size, 2 reserved words, pixel offset
//	14      40    info header: size, width, height, planes=1, bits per pixel,
//	              compression=0, image size, x/y resolution=0, colors used/important
//	54      1024  greyscale palette, indexed images only: entry i = (i, i, i, 0)
//	...           pixel rows, bottom row first
//
// Every row is padded with zero bytes to RowStride, a multiple of 4. True-color
// pixels are stored blue, green, red; indexed pixels are a single palette byte.
//
// # Streaming
//
// An Encoder writes the headers when it is created and then accepts pixels in
// raster order. It never buffers the image and never reorders rows: the first
// row written is stored as the bottom row of the picture. Callers that hold a
// whole image.Image can use Encode, which walks the image bottom-up.
//
// # Errors
//
// Write failures are fatal. The first error is remembered and returned by every
// later call; the encoder does not retry and leaves whatever was written on disk.
package bitmap

// Package imaging inspects and composes rendered band bitmaps.
//
// A band file named <prefix>_<row>.bmp holds rows [row, row+height) of a larger
// image. This package decodes bands (BMP through golang.org/x/image/bmp, plus
// PNG, JPEG and GIF), stitches them into a single picture, builds scaled
// previews, samples pixel colors and compares renders.
//
// # Coordinate System
//
// Decoded images use the usual top-left origin: X grows rightward and Y grows
// downward. Full-image rows, as used in band file names and by Stitch, count
// from the bottom of the picture, which is the order a bitmap stores them. A
// band holding rows [s, e) of an image of height H therefore occupies image
// rows [H-e, H-s).
//
// # Thread Safety
//
// ImageCache is safe for concurrent use. The other functions are stateless and
// never modify their input images.
//
// # Error Handling
//
// Functions return errors for coordinates outside the image, band files
// whose names carry no start row, bands of different widths or overlapping
// row ranges, and file I/O failures.
package imaging

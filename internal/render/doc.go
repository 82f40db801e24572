// Package render drives the escape-time evaluator, a palette and a bitmap
// encoder to produce one band of a Mandelbrot image.
//
// # Coordinates
//
// Pixel (x, y) maps linearly onto the complex plane:
//
//	real = StartReal + IncReal*x
//	imag = StartImag + IncImag*y
//
// where the start values are the lower-left corner of the full image,
// center - size*precision/2, and the increments are (end-start)/size.
// Because y grows with the imaginary part, row 0 is the bottom row of the
// picture.
//
// # Bands
//
// A render covers rows [StartRow, EndRow) of a conceptually larger image.
// Rows are streamed in increasing y, which is exactly the bottom-up order a
// bitmap stores, so a band file needs no reordering. Independent processes can
// render disjoint bands into separate files; the imaging package can stitch
// them back together.
//
// # Diagnostics
//
// A Recorder keeps the raw iteration counts of every rendered row and writes
// them as text once the band is complete, one line per row:
//
//	<row> <count_0> <count_1> ... <count_width-1>
package render

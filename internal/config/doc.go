// Package config parses the options of a render invocation.
//
// Every option has a long name and, where the classic renderer had one, a
// single-letter short name bound to the same variable:
//
//	-W, --width           image width in pixels (300)
//	-H, --height          image height in pixels (300)
//	-X, --cx              real part of the center (-0.5)
//	-Y, --cy              imaginary part of the center (0)
//	-P, --precision       plane distance per pixel (0.01)
//	-M, --max_iterations  iteration limit (100)
//	-L, --start_line      band index, first row is start_line*band_height
//	-N, --n_lines         rows to render, 0 means through the last row
//	-F, --color_factor    palette factor (0.02)
//	-S, --color_phase     palette phase (1)
//	-D, --color_delta     palette channel offset (1)
//	-B, --bw              8-bit greyscale output
//
// Output files are named after the first rendered row, <prefix>_<row>.bmp and
// <prefix>_<row>.txt. Configuration errors wrap ErrInvalid and are reported
// before any file is created.
package config

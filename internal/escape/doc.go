// Package escape implements the escape-time evaluator for the Mandelbrot set.
//
// For a point c of the complex plane the evaluator iterates z = z*z + c starting
// from z = 0 and counts how many iterations the orbit survives before its
// magnitude exceeds the escape radius. The count is the raw material for every
// color strategy in the palette package.
//
// # Counting Convention
//
// The counter is not incremented on the iteration that escapes:
//   - A point whose first iterate already escapes returns 0
//   - A point that never escapes returns maxIterations
//
// maxIterations therefore doubles as the "interior" sentinel.
//
// # Magnitude Test
//
// The magnitude is compared in squared form (re² + im² > r²) so no square root
// is taken per iteration.
//
// # Interior Shortcut
//
// InMainBody tests membership in the main cardioid and the period-2 bulb. Points
// inside either region never escape, so an Evaluator with Shortcut set can skip
// iterating them. The shortcut only saves time; it never changes a count.
package escape

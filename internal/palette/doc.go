// Package palette maps escape-time iteration counts to colors.
//
// Every strategy implements Mapper, a single-method interface selected once at
// configuration time with New. The strategies are:
//   - linear: per-channel interpolation between a min and a max color
//   - slider: red/green ramp up while blue ramps down
//   - sine: three phase-shifted sine waves, one per channel
//   - grey: single-channel sine wave for indexed (8-bit) images
//   - hash: pseudo-random colors derived from an MD5 digest of the count
//   - hue: HSV hue cycle
//
// All strategies return Black for count == maxIterations, the "did not escape"
// sentinel produced by the escape package.
//
// # Memoization
//
// Every strategy except hash owns a Cache. The first Map call for a count
// computes the color and stores it; later calls return the stored color. The
// cache key is the count alone because all other parameters are fixed for the
// lifetime of a Mapper. Entries are never evicted.
//
// A Mapper and its Cache are owned by one render. Nothing in this package is
// process-global, so two Mappers with different parameters never share entries.
package palette

package palette

import (
	"crypto/md5"
	"fmt"
	"math"
	"strconv"

	"github.com/lucasb-eyer/go-colorful"
)

// Mapper turns an iteration count into a color.
type Mapper interface {
	Map(count, maxIterations int) Color
}

// Memoizer is implemented by mappers that own a Cache. Cache returns nil for
// a strategy built without its constructor.
type Memoizer interface {
	Cache() *Cache
}

// interior reports whether count is the "did not escape" sentinel.
func interior(count, maxIterations int) bool {
	return count >= maxIterations
}

// Default endpoints of the linear gradient: yellow for fast escapes, blue for slow ones.
var (
	DefaultLinearMin = Color{R: 255, G: 255, B: 0}
	DefaultLinearMax = Color{R: 0, G: 0, B: 255}
)

// Linear interpolates each channel between Min (count 0) and Max (count maxIterations).
type Linear struct {
	Min, Max Color
	cache    *Cache
}

// NewLinear returns a memoizing linear gradient.
func NewLinear(lo, hi Color) *Linear {
	return &Linear{Min: lo, Max: hi, cache: NewCache()}
}

// Map implements Mapper.
func (l *Linear) Map(count, maxIterations int) Color {
	if interior(count, maxIterations) {
		return Black
	}
	return l.cache.memoize(count, func() Color {
		n := float64(count)
		rest := float64(maxIterations - count)
		m := float64(maxIterations)
		lerp := func(lo, hi uint8) uint8 {
			return uint8((float64(hi)*n + float64(lo)*rest) / m)
		}
		return Color{
			R: lerp(l.Min.R, l.Max.R),
			G: lerp(l.Min.G, l.Max.G),
			B: lerp(l.Min.B, l.Max.B),
		}
	})
}

// Cache implements Memoizer.
func (l *Linear) Cache() *Cache { return l.cache }

// Slider ramps red and green up and blue down as the count grows.
type Slider struct {
	cache *Cache
}

// NewSlider returns a memoizing slider palette.
func NewSlider() *Slider {
	return &Slider{cache: NewCache()}
}

// Map implements Mapper.
func (s *Slider) Map(count, maxIterations int) Color {
	if interior(count, maxIterations) {
		return Black
	}
	return s.cache.memoize(count, func() Color {
		step := 255.0 / float64(maxIterations) * float64(count)
		return Color{R: uint8(step), G: uint8(step), B: uint8(255.0 - step)}
	})
}

// Cache implements Memoizer.
func (s *Slider) Cache() *Cache { return s.cache }

// Sine computes each channel as 127*(sin(count*Factor + Phase + k*Delta) + 1)
// with k = 0, 1, 2 for red, green and blue.
type Sine struct {
	Factor, Phase, Delta float64
	cache                *Cache
}

// NewSine returns a memoizing sinusoidal palette.
func NewSine(factor, phase, delta float64) *Sine {
	return &Sine{Factor: factor, Phase: phase, Delta: delta, cache: NewCache()}
}

// Map implements Mapper.
func (s *Sine) Map(count, maxIterations int) Color {
	if interior(count, maxIterations) {
		return Black
	}
	return s.cache.memoize(count, func() Color {
		arg := float64(count)*s.Factor + s.Phase
		return Color{
			R: wave(arg),
			G: wave(arg + s.Delta),
			B: wave(arg + 2*s.Delta),
		}
	})
}

// Cache implements Memoizer.
func (s *Sine) Cache() *Cache { return s.cache }

// wave maps sin(x) from [-1, 1] onto [0, 254].
func wave(x float64) uint8 {
	return uint8(127 * (math.Sin(x) + 1))
}

// Grey is the single-channel analogue of Sine for indexed images.
type Grey struct {
	Factor, Phase float64
	cache         *Cache
}

// NewGrey returns a memoizing greyscale palette.
func NewGrey(factor, phase float64) *Grey {
	return &Grey{Factor: factor, Phase: phase, cache: NewCache()}
}

// Map implements Mapper. The result is always a grey color.
func (g *Grey) Map(count, maxIterations int) Color {
	if interior(count, maxIterations) {
		return Black
	}
	return g.cache.memoize(count, func() Color {
		return Gray(g.Level(count))
	})
}

// Level returns the grey level for an escaping count without consulting the cache.
func (g *Grey) Level(count int) uint8 {
	return wave(float64(count)*g.Factor + g.Phase)
}

// Cache implements Memoizer.
func (g *Grey) Cache() *Cache { return g.cache }

// DefaultHashSalt is appended to the decimal count before hashing.
const DefaultHashSalt = "randomname"

// Hash derives a color from the first three bytes of md5(decimal(count) + Salt).
// Hash is stateless and does not memoize.
type Hash struct {
	Salt string
}

// Map implements Mapper.
func (h Hash) Map(count, maxIterations int) Color {
	if interior(count, maxIterations) {
		return Black
	}
	sum := md5.Sum([]byte(strconv.Itoa(count) + h.Salt))
	return Color{R: sum[0], G: sum[1], B: sum[2]}
}

// Hue walks around the HSV color wheel at full saturation and value.
// Factor is the number of turns per iteration and Phase the starting offset in turns.
type Hue struct {
	Factor, Phase float64
	cache         *Cache
}

// NewHue returns a memoizing hue-cycle palette.
func NewHue(factor, phase float64) *Hue {
	return &Hue{Factor: factor, Phase: phase, cache: NewCache()}
}

// Map implements Mapper.
func (h *Hue) Map(count, maxIterations int) Color {
	if interior(count, maxIterations) {
		return Black
	}
	return h.cache.memoize(count, func() Color {
		deg := math.Mod((float64(count)*h.Factor+h.Phase)*360, 360)
		if deg < 0 {
			deg += 360
		}
		r, g, b := colorful.Hsv(deg, 1, 1).Clamped().RGB255()
		return Color{R: r, G: g, B: b}
	})
}

// Cache implements Memoizer.
func (h *Hue) Cache() *Cache { return h.cache }

// Kind names a color strategy.
type Kind string

// Supported strategies.
const (
	KindLinear Kind = "linear"
	KindSlider Kind = "slider"
	KindSine   Kind = "sine"
	KindGrey   Kind = "grey"
	KindHash   Kind = "hash"
	KindHue    Kind = "hue"
)

// Kinds lists every supported strategy name.
func Kinds() []Kind {
	return []Kind{KindLinear, KindSlider, KindSine, KindGrey, KindHash, KindHue}
}

// Params carries the tunables of every strategy. Fields a strategy does not use are ignored.
type Params struct {
	Factor float64
	Phase  float64
	Delta  float64

	// LinearMin and LinearMax are "#RRGGBB" strings; empty means the default endpoint.
	LinearMin string
	LinearMax string

	// Salt for the hash strategy; empty means DefaultHashSalt.
	Salt string
}

// DefaultParams returns the tunables the renderer uses when none are given.
func DefaultParams() Params {
	return Params{Factor: 0.02, Phase: 1.0, Delta: 1.0}
}

// New builds the strategy named by kind.
func New(kind Kind, p Params) (Mapper, error) {
	switch kind {
	case KindLinear:
		lo, hi := DefaultLinearMin, DefaultLinearMax
		var err error
		if p.LinearMin != "" {
			if lo, err = ParseHex(p.LinearMin); err != nil {
				return nil, err
			}
		}
		if p.LinearMax != "" {
			if hi, err = ParseHex(p.LinearMax); err != nil {
				return nil, err
			}
		}
		return NewLinear(lo, hi), nil
	case KindSlider:
		return NewSlider(), nil
	case KindSine:
		return NewSine(p.Factor, p.Phase, p.Delta), nil
	case KindGrey:
		return NewGrey(p.Factor, p.Phase), nil
	case KindHash:
		salt := p.Salt
		if salt == "" {
			salt = DefaultHashSalt
		}
		return Hash{Salt: salt}, nil
	case KindHue:
		return NewHue(p.Factor, p.Phase), nil
	default:
		return nil, fmt.Errorf("unknown palette %q", kind)
	}
}

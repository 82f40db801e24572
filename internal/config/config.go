package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/ironsheep/mandelbrot-bmp/internal/bitmap"
	"github.com/ironsheep/mandelbrot-bmp/internal/escape"
	"github.com/ironsheep/mandelbrot-bmp/internal/palette"
	"github.com/ironsheep/mandelbrot-bmp/internal/render"
)

// ErrInvalid is wrapped by every configuration error.
var ErrInvalid = errors.New("invalid configuration")

// DefaultBandHeight is the number of rows one band index stands for.
const DefaultBandHeight = 200

// Config holds every option of one render invocation.
type Config struct {
	Width  int `json:"width"`
	Height int `json:"height"`

	CenterReal float64 `json:"cx"`
	CenterImag float64 `json:"cy"`
	Precision  float64 `json:"precision"`

	MaxIterations int     `json:"max_iterations"`
	EscapeRadius  float64 `json:"escape_radius"`
	Shortcut      bool    `json:"shortcut"`

	ColorFactor float64 `json:"color_factor"`
	ColorPhase  float64 `json:"color_phase"`
	ColorDelta  float64 `json:"color_delta"`
	BlackWhite  bool    `json:"bw"`
	Palette     string  `json:"palette"`
	LinearMin   string  `json:"linear_min"`
	LinearMax   string  `json:"linear_max"`
	Salt        string  `json:"salt"`

	// Band selects the first row as Band*BandHeight. Lines limits the number of
	// rows rendered; zero renders through the last row.
	Band       int `json:"start_line"`
	BandHeight int `json:"band_height"`
	Lines      int `json:"n_lines"`

	OutDir string `json:"out_dir"`
	Prefix string `json:"prefix"`
	// Output overrides the bitmap path built from OutDir and Prefix.
	Output string `json:"output"`
	Dump   bool   `json:"dump"`
}

// Default returns the documented defaults.
func Default() Config {
	return Config{
		Width:         300,
		Height:        300,
		CenterReal:    -0.5,
		CenterImag:    0,
		Precision:     0.01,
		MaxIterations: 100,
		EscapeRadius:  escape.DefaultEscapeRadius,
		ColorFactor:   0.02,
		ColorPhase:    1,
		ColorDelta:    1,
		Palette:       string(palette.KindSine),
		BandHeight:    DefaultBandHeight,
		OutDir:        ".",
		Prefix:        "data",
		Dump:          true,
	}
}

// NewFlagSet binds the options of c to a flag set. Short and long names share
// the same variable.
func NewFlagSet(name string, c *Config, output io.Writer) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(output)

	intVar := func(p *int, short, long string, usage string) {
		fs.IntVar(p, long, *p, usage)
		if short != "" {
			fs.IntVar(p, short, *p, "shorthand for --"+long)
		}
	}
	floatVar := func(p *float64, short, long string, usage string) {
		fs.Float64Var(p, long, *p, usage)
		if short != "" {
			fs.Float64Var(p, short, *p, "shorthand for --"+long)
		}
	}

	intVar(&c.Width, "W", "width", "image width in pixels")
	intVar(&c.Height, "H", "height", "image height in pixels")
	floatVar(&c.CenterReal, "X", "cx", "real part of the C parameter at the image center")
	floatVar(&c.CenterImag, "Y", "cy", "imaginary part of the C parameter at the image center")
	floatVar(&c.Precision, "P", "precision", "C parameter increment per pixel")
	intVar(&c.MaxIterations, "M", "max_iterations", "maximum number of iterations")
	floatVar(&c.EscapeRadius, "", "escape_radius", "escape radius")
	intVar(&c.Band, "L", "start_line", "band index; the first row is start_line*band_height")
	intVar(&c.BandHeight, "", "band_height", "rows per band index")
	intVar(&c.Lines, "N", "n_lines", "number of rows to render, 0 renders through the last row")
	floatVar(&c.ColorFactor, "F", "color_factor", "how quickly the colors change, 0<x<1")
	floatVar(&c.ColorPhase, "S", "color_phase", "color palette phase")
	floatVar(&c.ColorDelta, "D", "color_delta", "color palette channel offset")

	fs.BoolVar(&c.BlackWhite, "bw", c.BlackWhite, "write an 8-bit greyscale image")
	fs.BoolVar(&c.BlackWhite, "B", c.BlackWhite, "shorthand for --bw")
	fs.BoolVar(&c.Shortcut, "shortcut", c.Shortcut, "skip iterating points inside the main cardioid and period-2 bulb")
	fs.BoolVar(&c.Dump, "dump", c.Dump, "write the per-row iteration counts next to the bitmap")
	fs.StringVar(&c.Palette, "palette", c.Palette, "color strategy: "+strings.Join(PaletteNames(), ", "))
	fs.StringVar(&c.LinearMin, "linear_min", c.LinearMin, "linear palette color at count 0 (#RRGGBB)")
	fs.StringVar(&c.LinearMax, "linear_max", c.LinearMax, "linear palette color approaching the maximum (#RRGGBB)")
	fs.StringVar(&c.Salt, "salt", c.Salt, "hash palette salt")
	fs.StringVar(&c.OutDir, "out_dir", c.OutDir, "output directory")
	fs.StringVar(&c.Prefix, "prefix", c.Prefix, "output file name prefix")
	return fs
}

// Parse parses command line arguments on top of the defaults. An optional
// positional argument names the output bitmap. -h returns flag.ErrHelp.
func Parse(args []string, output io.Writer) (Config, error) {
	c := Default()
	fs := NewFlagSet("mandelbrot", &c, output)
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return c, err
		}
		return c, fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	switch fs.NArg() {
	case 0:
	case 1:
		c.Output = fs.Arg(0)
	default:
		return c, fmt.Errorf("%w: unexpected arguments %v", ErrInvalid, fs.Args()[1:])
	}
	if err := c.Validate(); err != nil {
		return c, err
	}
	return c, nil
}

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalid, fmt.Sprintf(format, args...))
}

// Validate reports out-of-range values.
func (c Config) Validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return invalid("image size %dx%d must be positive", c.Width, c.Height)
	}
	if c.Precision <= 0 {
		return invalid("precision %g must be positive", c.Precision)
	}
	if c.MaxIterations < 0 {
		return invalid("max iterations %d must not be negative", c.MaxIterations)
	}
	if c.EscapeRadius < 0 {
		return invalid("escape radius %g must not be negative", c.EscapeRadius)
	}
	if c.BandHeight <= 0 {
		return invalid("band height %d must be positive", c.BandHeight)
	}
	if c.Band < 0 || c.StartRow() >= c.Height {
		return invalid("start line %d (row %d) outside image of height %d", c.Band, c.StartRow(), c.Height)
	}
	if c.Lines < 0 {
		return invalid("line count %d must not be negative", c.Lines)
	}
	if c.Prefix == "" && c.Output == "" {
		return invalid("empty output prefix")
	}
	if _, err := c.Mapper(); err != nil {
		return invalid("%v", err)
	}
	return nil
}

// StartRow returns the first rendered row.
func (c Config) StartRow() int {
	return c.Band * c.BandHeight
}

// EndRow returns one past the last rendered row, clamped to the image height.
func (c Config) EndRow() int {
	if c.Lines == 0 {
		return c.Height
	}
	return min(c.StartRow()+c.Lines, c.Height)
}

// Depth returns the bitmap depth: indexed greyscale in black and white mode.
func (c Config) Depth() int {
	if c.BlackWhite {
		return bitmap.DepthIndexed
	}
	return bitmap.DepthTrueColor
}

// PaletteNames lists the accepted palette values.
func PaletteNames() []string {
	kinds := palette.Kinds()
	names := make([]string, len(kinds))
	for i, k := range kinds {
		names[i] = string(k)
	}
	return names
}

// PaletteKind returns the effective color strategy.
func (c Config) PaletteKind() palette.Kind {
	if c.BlackWhite {
		return palette.KindGrey
	}
	return palette.Kind(c.Palette)
}

// Mapper builds the configured color strategy.
func (c Config) Mapper() (palette.Mapper, error) {
	return palette.New(c.PaletteKind(), palette.Params{
		Factor:    c.ColorFactor,
		Phase:     c.ColorPhase,
		Delta:     c.ColorDelta,
		LinearMin: c.LinearMin,
		LinearMax: c.LinearMax,
		Salt:      c.Salt,
	})
}

func (c Config) baseName() string {
	return c.Prefix + "_" + strconv.Itoa(c.StartRow())
}

// BitmapPath returns <dir>/<prefix>_<start>.bmp unless Output is set.
func (c Config) BitmapPath() string {
	if c.Output != "" {
		return c.Output
	}
	return filepath.Join(c.OutDir, c.baseName()+".bmp")
}

// DumpPath returns the diagnostics path next to the bitmap, <prefix>_<start>.txt.
func (c Config) DumpPath() string {
	if c.Output != "" {
		ext := filepath.Ext(c.Output)
		return c.Output[:len(c.Output)-len(ext)] + ".txt"
	}
	return filepath.Join(c.OutDir, c.baseName()+".txt")
}

// RenderOptions converts the configuration into render options.
func (c Config) RenderOptions() (render.Options, error) {
	if err := c.Validate(); err != nil {
		return render.Options{}, err
	}
	m, err := c.Mapper()
	if err != nil {
		return render.Options{}, err
	}
	return render.Options{
		Width:         c.Width,
		Height:        c.Height,
		Center:        complex(c.CenterReal, c.CenterImag),
		Precision:     c.Precision,
		MaxIterations: c.MaxIterations,
		EscapeRadius:  c.EscapeRadius,
		Shortcut:      c.Shortcut,
		StartRow:      c.StartRow(),
		EndRow:        c.EndRow(),
		Mapper:        m,
	}, nil
}

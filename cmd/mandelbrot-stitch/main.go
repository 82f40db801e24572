package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/ironsheep/mandelbrot-bmp/internal/bitmap"
	"github.com/ironsheep/mandelbrot-bmp/internal/imaging"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

type options struct {
	output  string
	height  int
	bw      bool
	preview string
	scale   float64
	overlay bool
	verify  string
}

func parseFlags(args []string) (options, []string, error) {
	o := options{output: "full.bmp", scale: 1.0}

	fs := flag.NewFlagSet("mandelbrot-stitch", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	fs.Usage = func() {
		fmt.Fprintln(fs.Output(), "Usage: mandelbrot-stitch [options] <prefix>_<row>.bmp ...")
		fmt.Fprintln(fs.Output())
		fs.PrintDefaults()
	}
	fs.StringVar(&o.output, "o", o.output, "stitched bitmap path")
	fs.IntVar(&o.height, "height", 0, "full image height, 0 uses the end of the last band")
	fs.BoolVar(&o.bw, "bw", false, "write an 8-bit greyscale bitmap")
	fs.StringVar(&o.preview, "preview", "", "also write a PNG preview to this path")
	fs.Float64Var(&o.scale, "scale", o.scale, "preview scale factor")
	fs.BoolVar(&o.overlay, "overlay", false, "mark band seams on the preview")
	fs.StringVar(&o.verify, "verify", "", "compare the result with a full render at this path")

	if err := fs.Parse(args); err != nil {
		return o, nil, err
	}
	if fs.NArg() == 0 {
		fs.Usage()
		return o, nil, fmt.Errorf("no band files given")
	}
	return o, fs.Args(), nil
}

func main() {
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "--version", "-v", "version":
			fmt.Printf("mandelbrot-stitch %s\n", Version)
			fmt.Printf("  Build time: %s\n", BuildTime)
			fmt.Printf("  Git commit: %s\n", GitCommit)
			return
		}
	}

	log.SetOutput(os.Stderr)
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)
	debug := os.Getenv("MANDELBROT_LOG_LEVEL") == "debug"

	o, paths, err := parseFlags(os.Args[1:])
	if errors.Is(err, flag.ErrHelp) {
		return
	}
	if err != nil {
		log.Fatalf("Invalid arguments: %v", err)
	}

	depth := bitmap.DepthTrueColor
	if o.bw {
		depth = bitmap.DepthIndexed
	}

	cache := imaging.NewImageCache()
	res, err := imaging.StitchFiles(cache, paths, o.height, o.output, depth)
	if err != nil {
		log.Fatalf("Stitch failed: %v", err)
	}
	log.Printf("Stitched %d bands into %s (%dx%d)", res.Bands, res.Path, res.Width, res.Height)
	for _, gap := range res.Missing {
		log.Printf("Rows [%d,%d) not covered by any band", gap[0], gap[1])
	}

	if o.preview != "" {
		if err := writePreview(cache, paths, o); err != nil {
			log.Fatalf("Preview failed: %v", err)
		}
		log.Printf("Wrote preview %s", o.preview)
	}

	if o.verify != "" {
		cmp, err := compareFiles(cache, o.output, o.verify)
		if err != nil {
			log.Fatalf("Verify failed: %v", err)
		}
		if !cmp.Identical {
			log.Fatalf("Stitched image differs from %s: %d of %d pixels, first at %v",
				o.verify, cmp.PixelsDifferent, cmp.TotalPixels, cmp.FirstDiff)
		}
		if debug {
			log.Printf("Stitched image matches %s", o.verify)
		}
	}
}

func writePreview(cache *imaging.ImageCache, paths []string, o options) error {
	bands, err := imaging.LoadBands(cache, paths)
	if err != nil {
		return err
	}
	img, err := cache.Load(o.output)
	if err != nil {
		return err
	}
	if o.overlay {
		starts := make([]int, len(bands))
		for i, b := range bands {
			starts[i] = b.StartRow
		}
		img = imaging.BandOverlay(img, starts, imaging.DefaultOverlayColor)
	}
	scaled, err := imaging.Preview(img, o.scale)
	if err != nil {
		return err
	}
	return imaging.SavePreview(o.preview, scaled)
}

func compareFiles(cache *imaging.ImageCache, a, b string) (*imaging.CompareResult, error) {
	imgA, err := cache.Load(a)
	if err != nil {
		return nil, err
	}
	imgB, err := cache.Load(b)
	if err != nil {
		return nil, err
	}
	return imaging.Compare(imgA, imgB)
}

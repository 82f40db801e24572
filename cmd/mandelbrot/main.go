package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/ironsheep/mandelbrot-bmp/internal/config"
	"github.com/ironsheep/mandelbrot-bmp/internal/palette"
	"github.com/ironsheep/mandelbrot-bmp/internal/render"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "--version", "-v", "version":
			fmt.Printf("mandelbrot %s\n", Version)
			fmt.Printf("  Build time: %s\n", BuildTime)
			fmt.Printf("  Git commit: %s\n", GitCommit)
			return
		}
	}

	log.SetOutput(os.Stderr)
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)
	debug := os.Getenv("MANDELBROT_LOG_LEVEL") == "debug"

	c, err := config.Parse(os.Args[1:], os.Stderr)
	if errors.Is(err, flag.ErrHelp) {
		return
	}
	if err != nil {
		log.Fatalf("Configuration error: %v", err)
	}

	opts, err := c.RenderOptions()
	if err != nil {
		log.Fatalf("Configuration error: %v", err)
	}
	if debug {
		first, end := opts.Rows()
		opts.Progress = func(row int) {
			log.Printf("Row %d done (%d of %d)", row, row+1-first, end-first)
		}
	}

	var rec *render.Recorder
	if c.Dump {
		rec = render.NewRecorder()
	}

	log.Printf("Rendering rows [%d,%d) of %dx%d centered at (%g,%g) into %s",
		c.StartRow(), c.EndRow(), c.Width, c.Height, c.CenterReal, c.CenterImag, c.BitmapPath())

	start := time.Now()
	st, err := render.RenderFile(c.BitmapPath(), c.Depth(), opts, rec)
	if err != nil {
		log.Fatalf("Render failed: %v", err)
	}
	log.Printf("Rendered %d pixels in %v (%d interior, counts %d..%d)",
		st.Pixels, time.Since(start).Round(time.Millisecond), st.Interior, st.MinCount, st.MaxCount)

	if mem, ok := opts.Mapper.(palette.Memoizer); ok && debug && mem.Cache() != nil {
		cache := mem.Cache()
		log.Printf("Palette cache: %d colors, %d hits, %d misses", cache.Len(), cache.Hits(), cache.Misses())
	}

	if rec != nil {
		if err := rec.Save(c.DumpPath()); err != nil {
			log.Fatalf("Failed to write iteration dump: %v", err)
		}
		if debug {
			log.Printf("Wrote iteration dump %s", c.DumpPath())
		}
	}
}

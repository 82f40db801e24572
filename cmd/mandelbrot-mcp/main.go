package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/ironsheep/mandelbrot-bmp/internal/server"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	fs := flag.NewFlagSet("mandelbrot-mcp", flag.ContinueOnError)
	showVersion := fs.Bool("version", false, "print version information and exit")
	debug := fs.Bool("debug", false, "log every request (same as MANDELBROT_LOG_LEVEL=debug)")
	fs.Usage = func() {
		fmt.Fprintln(fs.Output(), "Usage: mandelbrot-mcp [-debug]")
		fmt.Fprintln(fs.Output())
		fmt.Fprintln(fs.Output(), "Serves the mandelbrot_* and image_* tools as MCP over stdin/stdout.")
		fs.PrintDefaults()
	}
	if err := fs.Parse(os.Args[1:]); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		os.Exit(2)
	}
	if *showVersion {
		fmt.Printf("mandelbrot-mcp %s (built %s, commit %s)\n", Version, BuildTime, GitCommit)
		return
	}

	// stdout carries the protocol
	log.SetOutput(os.Stderr)
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)

	srv := server.New()
	srv.Version = Version
	srv.Debug = srv.Debug || *debug
	if srv.Debug {
		log.Printf("mandelbrot-mcp %s starting", Version)
	}
	if err := srv.Run(); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}

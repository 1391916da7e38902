// Command explorer is an interactive Julia and Mandelbrot set viewer.
//
//	Space, =, Up      zoom in at the pointer
//	-, Down           zoom out
//	wheel             zoom, five steps when scrolling fast
//	C, left click     toggle the Julia parameter following the pointer
//	middle/right drag pan
//	R, F5             reset zoom
//	M, J              Mandelbrot or Julia set
//	S                 save a PNG
//	H                 toggle the HUD
//	Esc               quit
package main

import (
	"errors"
	"flag"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
)

type config struct {
	width, height int
	mode          string
	palette       string
	iter          int
	smooth        bool
	scale         int
	gpu           bool
	verbose       bool
}

func defaultConfig() config {
	return config{
		width:   960,
		height:  720,
		mode:    "julia",
		palette: "gray",
		scale:   2,
	}
}

func (c *config) registerFlags(fs *flag.FlagSet) {
	fs.IntVar(&c.width, "width", c.width, "initial window width")
	fs.IntVar(&c.height, "height", c.height, "initial window height")
	fs.StringVar(&c.mode, "mode", c.mode, "julia or mandelbrot")
	fs.StringVar(&c.palette, "palette", c.palette, "gray, gradient, hsv or orbit (CPU only)")
	fs.IntVar(&c.iter, "iter", c.iter, "iteration limit, 0 for the default")
	fs.BoolVar(&c.smooth, "smooth", c.smooth, "smooth escape counts (CPU only)")
	fs.IntVar(&c.scale, "scale", c.scale, "CPU frame is rendered at 1/scale of the window")
	fs.BoolVar(&c.gpu, "gpu", c.gpu, "evaluate on the GPU with a shader")
	fs.BoolVar(&c.verbose, "v", c.verbose, "log applied commands")
}

func main() {
	cfg := defaultConfig()
	cfg.registerFlags(flag.CommandLine)
	flag.Parse()

	if err := run(cfg); err != nil {
		log.Fatalf("run: %+v", err)
	}
}

func run(cfg config) error {
	s, err := newSession(cfg)
	if err != nil {
		return err
	}

	ebiten.SetWindowTitle("fractal explorer")
	ebiten.SetWindowSize(cfg.width, cfg.height)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	if err := ebiten.RunGame(s); err != nil && !errors.Is(err, ebiten.Termination) {
		return err
	}
	return nil
}

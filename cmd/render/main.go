// Command render draws one fractal frame on the CPU and writes it as PNG or
// as raw RGB triples.
package main

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"image"
	"image/png"
	"log"
	"os"
	"strings"
	"time"

	"golang.org/x/image/draw"

	fractal "github.com/marben/fractal_explorer"
	"github.com/marben/fractal_explorer/viewport"
)

func main() {
	cfg := defaultConfig()
	cfg.registerFlags(flag.CommandLine)
	flag.Parse()

	if err := run(cfg); err != nil {
		log.Fatalf("run: %+v", err)
	}
}

type config struct {
	mode          string
	cre, cim      float64
	width, height int
	region        string
	iter          int
	radiusSq      float64
	palette       string
	smooth        bool
	supersample   int
	raw           bool
	out           string
}

func defaultConfig() config {
	return config{
		mode:        "julia",
		cre:         float64(fractal.DefaultC[0]),
		cim:         float64(fractal.DefaultC[1]),
		width:       800,
		height:      600,
		iter:        fractal.DefaultLimit,
		radiusSq:    fractal.DefaultRadiusSq,
		palette:     "gray",
		supersample: 1,
		out:         "fractal.png",
	}
}

func (c *config) registerFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.mode, "mode", c.mode, "julia or mandelbrot")
	fs.Float64Var(&c.cre, "cre", c.cre, "real part of the julia parameter")
	fs.Float64Var(&c.cim, "cim", c.cim, "imaginary part of the julia parameter")
	fs.IntVar(&c.width, "width", c.width, "image width in pixels")
	fs.IntVar(&c.height, "height", c.height, "image height in pixels")
	fs.StringVar(&c.region, "region", c.region, "landmark to frame instead of the default view ("+strings.Join(fractal.LandmarkNames(), ", ")+")")
	fs.IntVar(&c.iter, "iter", c.iter, "iteration limit")
	fs.Float64Var(&c.radiusSq, "radius2", c.radiusSq, "squared escape radius")
	fs.StringVar(&c.palette, "palette", c.palette, "gray, gradient, hsv or orbit")
	fs.BoolVar(&c.smooth, "smooth", c.smooth, "smooth escape counts")
	fs.IntVar(&c.supersample, "supersample", c.supersample, "render at N times the size and downscale")
	fs.BoolVar(&c.raw, "raw", c.raw, "write headerless RGB triples instead of PNG")
	fs.StringVar(&c.out, "o", c.out, "output path, - for stdout")
}

func (c config) validate() error {
	if c.width <= 0 || c.height <= 0 {
		return fmt.Errorf("invalid image size %dx%d", c.width, c.height)
	}
	if c.iter <= 0 || c.radiusSq <= 0 {
		return fmt.Errorf("invalid escape settings: iter %d, radius2 %g", c.iter, c.radiusSq)
	}
	if c.supersample < 1 {
		return fmt.Errorf("invalid supersample factor %d", c.supersample)
	}
	if _, err := fractal.ParseMode(c.mode); err != nil {
		return err
	}
	if _, err := fractal.PaletteByName(c.palette); err != nil {
		return err
	}
	if c.region != "" {
		if _, err := fractal.Landmark(c.region); err != nil {
			return err
		}
	}
	return nil
}

func (c config) params() (fractal.Params, error) {
	mode, err := fractal.ParseMode(c.mode)
	if err != nil {
		return fractal.Params{}, err
	}
	julia := fractal.Complex{Real: c.cre, Imag: c.cim}
	if c.region != "" {
		r, err := fractal.Landmark(c.region)
		if err != nil {
			return fractal.Params{}, err
		}
		return fractal.ParamsFromRegion(r, mode, julia), nil
	}
	return viewport.Frame(c.width, c.height, mode, julia), nil
}

// frame renders the configured image, downscaling a larger render when
// supersampling.
func frame(cfg config) (*image.RGBA, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	p, err := cfg.params()
	if err != nil {
		return nil, err
	}
	palette, err := fractal.PaletteByName(cfg.palette)
	if err != nil {
		return nil, err
	}

	n := cfg.supersample
	eval := p.Evaluator(fractal.EscapeConfig{Limit: cfg.iter, RadiusSq: cfg.radiusSq}, cfg.smooth)
	img := fractal.Synthesize(cfg.width*n, cfg.height*n, p.PlaneRange(), fractal.Complex{}, eval, palette)
	if n == 1 {
		return img, nil
	}

	dst := image.NewRGBA(image.Rect(0, 0, cfg.width, cfg.height))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, img.Bounds(), draw.Src, nil)
	return dst, nil
}

func run(cfg config) error {
	start := time.Now()
	img, err := frame(cfg)
	if err != nil {
		return err
	}
	log.Printf("rendered %dx%d in %s", cfg.width, cfg.height, time.Since(start))

	if cfg.out == "-" {
		w := bufio.NewWriter(os.Stdout)
		if err := write(w, img, cfg.raw); err != nil {
			return err
		}
		return w.Flush()
	}

	f, err := os.Create(cfg.out)
	if err != nil {
		return fmt.Errorf("create output: %w", err)
	}
	w := bufio.NewWriter(f)
	err = write(w, img, cfg.raw)
	if err == nil {
		err = w.Flush()
	}
	if err := errors.Join(err, f.Close()); err != nil {
		return err
	}
	log.Printf("saved to %q", cfg.out)
	return nil
}

func write(w *bufio.Writer, img *image.RGBA, raw bool) error {
	if raw {
		if _, err := w.Write(fractal.RawRGB(img)); err != nil {
			return fmt.Errorf("write raw: %w", err)
		}
		return nil
	}
	if err := png.Encode(w, img); err != nil {
		return fmt.Errorf("png.Encode: %w", err)
	}
	return nil
}

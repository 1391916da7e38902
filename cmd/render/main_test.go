package main

import (
	"bufio"
	"bytes"
	"errors"
	"image/png"
	"testing"

	fractal "github.com/marben/fractal_explorer"
)

func smallConfig() config {
	cfg := defaultConfig()
	cfg.width, cfg.height = 40, 30
	return cfg
}

func TestFrameMatchesSynthesize(t *testing.T) {
	cfg := smallConfig()
	img, err := frame(cfg)
	if err != nil {
		t.Fatalf("frame() error = %v", err)
	}

	p, _ := cfg.params()
	want := fractal.Synthesize(40, 30, p.PlaneRange(), fractal.Complex{}, p.Evaluator(fractal.DefaultEscape, false), fractal.Grayscale{})
	if !bytes.Equal(img.Pix, want.Pix) {
		t.Fatalf("frame() differs from Synthesize()")
	}
}

func TestFrameSupersample(t *testing.T) {
	cfg := smallConfig()
	cfg.supersample = 3
	cfg.palette = "gradient"
	img, err := frame(cfg)
	if err != nil {
		t.Fatalf("frame() error = %v", err)
	}
	if b := img.Bounds(); b.Dx() != 40 || b.Dy() != 30 {
		t.Fatalf("frame() bounds = %v, want 40x30", b)
	}
}

func TestFrameRegion(t *testing.T) {
	cfg := smallConfig()
	cfg.mode = "mandelbrot"
	cfg.region = "elephant"
	p, err := cfg.params()
	if err != nil {
		t.Fatalf("params() error = %v", err)
	}
	if got := p.Region(); got.Xmin != float64(float32(fractal.ElephantValley.Xmin)) {
		t.Fatalf("params().Region() = %+v, want elephant valley", got)
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name string
		edit func(*config)
		want error
	}{
		{"mode", func(c *config) { c.mode = "newton" }, fractal.ErrUnknownMode},
		{"palette", func(c *config) { c.palette = "sepia" }, fractal.ErrUnknownPalette},
		{"region", func(c *config) { c.region = "atlantis" }, fractal.ErrUnknownRegion},
	}
	for _, tt := range tests {
		cfg := smallConfig()
		tt.edit(&cfg)
		if err := cfg.validate(); !errors.Is(err, tt.want) {
			t.Fatalf("validate() with bad %s error = %v, want %v", tt.name, err, tt.want)
		}
	}

	for _, edit := range []func(*config){
		func(c *config) { c.width = 0 },
		func(c *config) { c.iter = 0 },
		func(c *config) { c.supersample = 0 },
	} {
		cfg := smallConfig()
		edit(&cfg)
		if err := cfg.validate(); err == nil {
			t.Fatalf("validate(%+v) error = nil", cfg)
		}
	}
}

func TestWrite(t *testing.T) {
	img, err := frame(smallConfig())
	if err != nil {
		t.Fatalf("frame() error = %v", err)
	}

	var raw bytes.Buffer
	w := bufio.NewWriter(&raw)
	if err := write(w, img, true); err != nil {
		t.Fatalf("write(raw) error = %v", err)
	}
	w.Flush()
	if raw.Len() != 40*30*3 {
		t.Fatalf("raw output is %d bytes, want %d", raw.Len(), 40*30*3)
	}

	var encoded bytes.Buffer
	w = bufio.NewWriter(&encoded)
	if err := write(w, img, false); err != nil {
		t.Fatalf("write(png) error = %v", err)
	}
	w.Flush()
	if _, err := png.Decode(&encoded); err != nil {
		t.Fatalf("png.Decode: %v", err)
	}
}

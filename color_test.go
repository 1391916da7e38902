package fractal

import (
	"errors"
	"image/color"
	"testing"
)

func TestGrayscale(t *testing.T) {
	tests := []struct {
		in   float64
		want uint8
	}{
		{0, 0},
		{0.5, 127},
		{0.999, 254},
		{1, 0},
		{-1, 0},
		{2, 0},
	}
	for _, tt := range tests {
		got := Grayscale{}.Map(tt.in)
		want := color.RGBA{tt.want, tt.want, tt.want, 255}
		if got != want {
			t.Fatalf("Grayscale.Map(%v) = %v, want %v", tt.in, got, want)
		}
	}
}

func TestGradientEndpointsAndMidpoint(t *testing.T) {
	g := Gradient{Stops: []color.RGBA{
		{0, 0, 0, 255},
		{200, 100, 50, 255},
	}}
	if got := g.Map(0); got != g.Stops[0] {
		t.Fatalf("Map(0) = %v, want %v", got, g.Stops[0])
	}
	if got := g.Map(1); got != g.Stops[1] {
		t.Fatalf("Map(1) = %v, want %v", got, g.Stops[1])
	}
	want := color.RGBA{100, 50, 25, 255}
	if got := g.Map(0.5); got != want {
		t.Fatalf("Map(0.5) = %v, want %v", got, want)
	}
}

func TestDefaultGradientInteriorIsBlack(t *testing.T) {
	if got := DefaultGradient.Map(1); got != (color.RGBA{0, 0, 0, 255}) {
		t.Fatalf("DefaultGradient.Map(1) = %v, want black", got)
	}
}

func TestHSV(t *testing.T) {
	if got := (HSV{}).Map(1); got != (color.RGBA{A: 255}) {
		t.Fatalf("HSV.Map(1) = %v, want black", got)
	}
	if got := (HSV{}).Map(0); got != (color.RGBA{255, 0, 0, 255}) {
		t.Fatalf("HSV.Map(0) = %v, want red", got)
	}
	if got := hsv(-0.25, 1, 1); got != hsv(0.75, 1, 1) {
		t.Fatalf("hsv() does not wrap negative hues: %v != %v", got, hsv(0.75, 1, 1))
	}
}

func TestPaletteByName(t *testing.T) {
	for _, name := range []string{"", "gray", "gradient", "hsv", "orbit"} {
		if _, err := PaletteByName(name); err != nil {
			t.Fatalf("PaletteByName(%q) error = %v", name, err)
		}
	}
	if _, err := PaletteByName("plaid"); !errors.Is(err, ErrUnknownPalette) {
		t.Fatalf("PaletteByName(plaid) error = %v, want %v", err, ErrUnknownPalette)
	}
}

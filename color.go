package fractal

import (
	"errors"
	"fmt"
	"image/color"
	"math"
)

var ErrUnknownPalette = errors.New("unknown palette")

// ColorMapper turns an escape intensity into a pixel colour.
type ColorMapper interface {
	Map(intensity float64) color.RGBA
}

// Grayscale replicates intensity*255 across the channels. Interior points
// (intensity 1) are black.
type Grayscale struct{}

func (Grayscale) Map(intensity float64) color.RGBA {
	if intensity >= 1 {
		return color.RGBA{A: 255}
	}
	v := uint8(clamp01(intensity) * 255)
	return color.RGBA{R: v, G: v, B: v, A: 255}
}

// Gradient interpolates linearly between evenly spaced colour stops.
type Gradient struct {
	Stops []color.RGBA
}

// DefaultGradient runs from deep blue through white and orange into black, so
// the interior of the set is black.
var DefaultGradient = Gradient{Stops: []color.RGBA{
	{R: 0, G: 7, B: 100, A: 255},
	{R: 32, G: 107, B: 203, A: 255},
	{R: 237, G: 255, B: 255, A: 255},
	{R: 255, G: 170, B: 0, A: 255},
	{R: 0, G: 2, B: 0, A: 255},
	{R: 0, G: 0, B: 0, A: 255},
}}

func (g Gradient) Map(intensity float64) color.RGBA {
	switch len(g.Stops) {
	case 0:
		return Grayscale{}.Map(intensity)
	case 1:
		return g.Stops[0]
	}

	pos := clamp01(intensity) * float64(len(g.Stops)-1)
	i := int(pos)
	if i >= len(g.Stops)-1 {
		return g.Stops[len(g.Stops)-1]
	}
	t := pos - float64(i)
	a, b := g.Stops[i], g.Stops[i+1]
	return color.RGBA{
		R: lerp8(a.R, b.R, t),
		G: lerp8(a.G, b.G, t),
		B: lerp8(a.B, b.B, t),
		A: lerp8(a.A, b.A, t),
	}
}

// HSV walks the hue circle with intensity. Interior points are black.
type HSV struct {
	Shift float64
	Scale float64
}

func (h HSV) Map(intensity float64) color.RGBA {
	if intensity >= 1 {
		return color.RGBA{A: 255}
	}
	scale := h.Scale
	if scale == 0 {
		scale = 1
	}
	return hsv(intensity*scale+h.Shift, 1, 1)
}

// PaletteByName resolves the palette names accepted on command lines.
func PaletteByName(name string) (ColorMapper, error) {
	switch name {
	case "", "gray", "grey":
		return Grayscale{}, nil
	case "gradient":
		return DefaultGradient, nil
	case "hsv":
		return HSV{Scale: 4}, nil
	case "orbit":
		return OrbitTrap{}, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownPalette, name)
}

// hsv converts a colour with all components in [0, 1]; h wraps around.
func hsv(h, s, v float64) color.RGBA {
	h = math.Mod(h, 1)
	if h < 0 {
		h++
	}
	i := int(h * 6)
	f := h*6 - float64(i)
	p := v * (1 - s)
	q := v * (1 - f*s)
	t := v * (1 - (1-f)*s)

	var r, g, b float64
	switch i % 6 {
	case 0:
		r, g, b = v, t, p
	case 1:
		r, g, b = q, v, p
	case 2:
		r, g, b = p, v, t
	case 3:
		r, g, b = p, q, v
	case 4:
		r, g, b = t, p, v
	case 5:
		r, g, b = v, p, q
	}
	return color.RGBA{uint8(r * 255), uint8(g * 255), uint8(b * 255), 255}
}

func lerp8(a, b uint8, t float64) uint8 {
	return uint8(math.Round(float64(a) + (float64(b)-float64(a))*t))
}

func clamp01(x float64) float64 {
	if x < 0 || math.IsNaN(x) {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}

package fractal

import (
	"image"
	"image/color"
)

// Range is a half-open interval [Min, Max) of one plane axis. Min may be
// greater than Max, which flips the axis.
type Range struct {
	Min, Max float64
}

// Step is the plane distance covered by one of n pixels.
func (r Range) Step(n int) float64 {
	if n <= 0 {
		return 0
	}
	return (r.Max - r.Min) / float64(n)
}

// PlaneRange is the plane region covered by a raster.
type PlaneRange struct {
	X, Y Range
}

// Point maps pixel (px, py) of a w×h raster into the plane, offset by center.
func (r PlaneRange) Point(px, py, w, h int, center Complex) Complex {
	return Complex{
		Real: r.X.Min + float64(px)*r.X.Step(w) - center.Real,
		Imag: r.Y.Min + float64(py)*r.Y.Step(h) - center.Imag,
	}
}

// Synthesize renders a w×h image of the plane region r. cm may be nil, in
// which case Grayscale is used.
func Synthesize(w, h int, r PlaneRange, center Complex, eval PointEvaluator, cm ColorMapper) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, max(w, 0), max(h, 0)))
	SynthesizeTile(img, img.Rect, w, h, r, center, eval, cm)
	return img
}

// SynthesizeTile renders the pixels of tile, expressed in the coordinates of
// the full w×h raster, into dst. Pixels outside dst are skipped.
func SynthesizeTile(dst *image.RGBA, tile image.Rectangle, w, h int, r PlaneRange, center Complex, eval PointEvaluator, cm ColorMapper) {
	shade := shader(eval, cm)
	tile = tile.Intersect(dst.Rect).Intersect(image.Rect(0, 0, w, h))

	stepX, stepY := r.X.Step(w), r.Y.Step(h)
	for py := tile.Min.Y; py < tile.Max.Y; py++ {
		y := r.Y.Min + float64(py)*stepY - center.Imag
		row := dst.PixOffset(tile.Min.X, py)
		for px := tile.Min.X; px < tile.Max.X; px++ {
			x := r.X.Min + float64(px)*stepX - center.Real

			c := shade(Complex{Real: x, Imag: y})
			p := dst.Pix[row : row+4 : row+4]
			p[0], p[1], p[2], p[3] = c.R, c.G, c.B, c.A
			row += 4
		}
	}
}

func shader(eval PointEvaluator, cm ColorMapper) func(Complex) color.RGBA {
	if cm == nil {
		cm = Grayscale{}
	}
	if om, ok := cm.(OrbitMapper); ok {
		if oe, ok := eval.(OrbitEvaluator); ok {
			radius := om.TrapRadius()
			return func(p Complex) color.RGBA { return om.MapOrbit(oe.EvaluateOrbit(p, radius)) }
		}
	}
	return func(p Complex) color.RGBA { return cm.Map(eval.Evaluate(p)) }
}

// RawRGB returns the image as row-major RGB triples without any header.
func RawRGB(img *image.RGBA) []byte {
	b := img.Bounds()
	out := make([]byte, 0, b.Dx()*b.Dy()*3)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		i := img.PixOffset(b.Min.X, y)
		for x := b.Min.X; x < b.Max.X; x++ {
			out = append(out, img.Pix[i], img.Pix[i+1], img.Pix[i+2])
			i += 4
		}
	}
	return out
}

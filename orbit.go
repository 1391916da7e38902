package fractal

import (
	"image/color"
	"math"
)

// OrbitSample summarises the orbit of one point.
type OrbitSample struct {
	Mu      float64 // smooth escape count, the iteration limit for interior points
	Trap    float64 // closest approach of the orbit to the trap
	Escaped bool
}

// OrbitEvaluator is implemented by evaluators that report the whole orbit
// instead of a single intensity. trapRadius 0 traps on the imaginary axis,
// otherwise on the circle |z| = trapRadius.
type OrbitEvaluator interface {
	EvaluateOrbit(p Complex, trapRadius float64) OrbitSample
}

// OrbitMapper colours orbit samples. SynthesizeTile prefers MapOrbit over
// Map whenever the evaluator is an OrbitEvaluator.
type OrbitMapper interface {
	ColorMapper
	TrapRadius() float64
	MapOrbit(s OrbitSample) color.RGBA
}

func (j Julia) EvaluateOrbit(p Complex, trapRadius float64) OrbitSample {
	return trapOrbit(p, j.C, j.Escape, trapRadius)
}

func (m Mandelbrot) EvaluateOrbit(p Complex, trapRadius float64) OrbitSample {
	return trapOrbit(Complex{}, p, m.Escape, trapRadius)
}

// OrbitTrap colours escaped points by their smooth escape count, shifted
// along the hue circle by how close the orbit came to the trap. Interior
// points are black.
type OrbitTrap struct {
	Radius float64
}

func (o OrbitTrap) TrapRadius() float64 { return o.Radius }

func (OrbitTrap) MapOrbit(s OrbitSample) color.RGBA {
	if !s.Escaped {
		return color.RGBA{A: 255}
	}
	closeness := math.Exp(-5 * s.Trap)
	return hsv(s.Mu*0.02+closeness*0.3, 1, 1)
}

// Map colours a bare intensity as an orbit that never came near the trap.
func (o OrbitTrap) Map(intensity float64) color.RGBA {
	if intensity >= 1 {
		return color.RGBA{A: 255}
	}
	return o.MapOrbit(OrbitSample{
		Mu:      clamp01(intensity) * DefaultLimit,
		Trap:    math.Inf(1),
		Escaped: true,
	})
}

func trapOrbit(z0, c Complex, cfg EscapeConfig, trapRadius float64) OrbitSample {
	cfg = cfg.Normalize()
	z := z0
	trap := trapDistance(z, trapRadius)
	if z.Mag2() >= cfg.RadiusSq {
		return OrbitSample{Trap: trap, Escaped: true}
	}
	for n := 1; n <= cfg.Limit; n++ {
		z = square(z).Add(c)
		trap = math.Min(trap, trapDistance(z, trapRadius))
		if z.Mag2() >= cfg.RadiusSq {
			return OrbitSample{Mu: smoothCount(n, z), Trap: trap, Escaped: true}
		}
	}
	return OrbitSample{Mu: float64(cfg.Limit), Trap: trap}
}

func trapDistance(z Complex, radius float64) float64 {
	if radius > 0 {
		return math.Abs(z.Mag() - radius)
	}
	return math.Abs(z.Real)
}

func smoothCount(n int, z Complex) float64 {
	mag := z.Mag()
	if mag <= 1 {
		return float64(n)
	}
	return math.Max(float64(n)+1-math.Log2(math.Log(mag)), 0)
}

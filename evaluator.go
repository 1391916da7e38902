package fractal

// PointEvaluator maps a point of the plane to an escape intensity in [0, 1].
type PointEvaluator interface {
	Evaluate(p Complex) float64
}

// Julia iterates every plane point with the fixed parameter C.
type Julia struct {
	C      Complex
	Escape EscapeConfig
	Smooth bool
}

func (j Julia) Evaluate(p Complex) float64 {
	return intensity(p, j.C, j.Escape, j.Smooth)
}

// Mandelbrot uses the plane point as the parameter and starts the orbit at 0.
type Mandelbrot struct {
	Escape EscapeConfig
	Smooth bool
}

func (m Mandelbrot) Evaluate(p Complex) float64 {
	return intensity(Complex{}, p, m.Escape, m.Smooth)
}

// EvaluatorFor returns the evaluator of the given mode. c is ignored in
// Mandelbrot mode.
func EvaluatorFor(mode Mode, c Complex, cfg EscapeConfig, smooth bool) PointEvaluator {
	if mode == ModeMandelbrot {
		return Mandelbrot{Escape: cfg, Smooth: smooth}
	}
	return Julia{C: c, Escape: cfg, Smooth: smooth}
}

func intensity(z0, c Complex, cfg EscapeConfig, smooth bool) float64 {
	cfg = cfg.Normalize()
	if smooth {
		return SmoothIntensity(z0, c, cfg.Limit, cfg.RadiusSq)
	}
	return Intensity(z0, c, cfg.Limit, cfg.RadiusSq)
}

package fractal

import "math"

const (
	DefaultLimit    = 255
	DefaultRadiusSq = 100.0
)

// EscapeConfig bounds the escape-time iteration.
type EscapeConfig struct {
	Limit    int     // maximum number of iterations
	RadiusSq float64 // squared magnitude at which a point counts as escaped
}

var DefaultEscape = EscapeConfig{Limit: DefaultLimit, RadiusSq: DefaultRadiusSq}

// Normalize replaces zero or negative fields with the defaults.
func (c EscapeConfig) Normalize() EscapeConfig {
	if c.Limit <= 0 {
		c.Limit = DefaultLimit
	}
	if c.RadiusSq <= 0 {
		c.RadiusSq = DefaultRadiusSq
	}
	return c
}

// Escape iterates z = z*z + c starting at z0 and returns the number of steps
// taken before |z|^2 reached radiusSq, or limit if it never did.
func Escape(z0, c Complex, limit int, radiusSq float64) int {
	n, _ := orbit(z0, c, limit, radiusSq)
	return n
}

// Intensity is Escape normalised to [0, 1]. 1 means the point never escaped.
func Intensity(z0, c Complex, limit int, radiusSq float64) float64 {
	if limit <= 0 {
		return 1
	}
	return float64(Escape(z0, c, limit, radiusSq)) / float64(limit)
}

// SmoothIntensity is a continuous variant of Intensity based on the
// normalised iteration count n + 1 - log2(log|z|).
func SmoothIntensity(z0, c Complex, limit int, radiusSq float64) float64 {
	if limit <= 0 {
		return 1
	}
	n, z := orbit(z0, c, limit, radiusSq)
	if n >= limit {
		return 1
	}
	mag := z.Mag()
	if mag <= 1 {
		// escaped without leaving the unit disc; the log term is undefined
		return float64(n) / float64(limit)
	}
	mu := float64(n) + 1 - math.Log2(math.Log(mag))
	return math.Min(math.Max(mu/float64(limit), 0), 1)
}

func orbit(z0, c Complex, limit int, radiusSq float64) (int, Complex) {
	z := z0
	n := 0
	for z.Mag2() < radiusSq && n < limit {
		n++
		z = square(z).Add(c)
	}
	return n, z
}

func square(z Complex) Complex {
	return Complex{
		Real: z.Real*z.Real - z.Imag*z.Imag,
		Imag: 2 * z.Real * z.Imag,
	}
}

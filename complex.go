package fractal

import (
	"fmt"
	"math"
	"strconv"
)

// Complex is a point of the complex plane.
type Complex struct {
	Real, Imag float64
}

func (a Complex) Add(b Complex) Complex {
	return Complex{Real: a.Real + b.Real, Imag: a.Imag + b.Imag}
}

// Mul is the complex product (ac-bd, ad+bc).
func (a Complex) Mul(b Complex) Complex {
	return Complex{
		Real: a.Real*b.Real - a.Imag*b.Imag,
		Imag: a.Real*b.Imag + a.Imag*b.Real,
	}
}

// MulComponents multiplies real and imaginary parts independently: (ac, bd).
// It is not the complex product and is never used by the escape iteration.
func (a Complex) MulComponents(b Complex) Complex {
	return Complex{Real: a.Real * b.Real, Imag: a.Imag * b.Imag}
}

// Mag2 is the squared magnitude.
func (a Complex) Mag2() float64 {
	return a.Real*a.Real + a.Imag*a.Imag
}

func (a Complex) Mag() float64 {
	return math.Sqrt(a.Mag2())
}

// String renders the number as "1.5 - i2.25".
func (a Complex) String() string {
	sign := '+'
	if a.Imag < 0 {
		sign = '-'
	}
	return fmt.Sprintf("%s %c i%s",
		strconv.FormatFloat(a.Real, 'f', -1, 64),
		sign,
		strconv.FormatFloat(math.Abs(a.Imag), 'f', -1, 64),
	)
}

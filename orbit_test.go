package fractal

import (
	"image/color"
	"math"
	"testing"
)

func TestEvaluateOrbitInterior(t *testing.T) {
	got := Mandelbrot{}.EvaluateOrbit(Complex{}, 0)
	want := OrbitSample{Mu: DefaultLimit, Trap: 0}
	if got != want {
		t.Fatalf("EvaluateOrbit(0) = %+v, want %+v", got, want)
	}
}

func TestEvaluateOrbitAxisTrap(t *testing.T) {
	// the orbit of c = 2 runs 2, 6, 38 and escapes on the third step
	got := Mandelbrot{}.EvaluateOrbit(Complex{2, 0}, 0)
	if !got.Escaped {
		t.Fatalf("EvaluateOrbit(2) did not escape")
	}
	if got.Trap != 0 {
		// z0 = 0 lies on the imaginary axis
		t.Fatalf("Trap = %v, want 0", got.Trap)
	}
	wantMu := 4 - math.Log2(math.Log(38))
	if math.Abs(got.Mu-wantMu) > 1e-12 {
		t.Fatalf("Mu = %v, want %v", got.Mu, wantMu)
	}
}

func TestEvaluateOrbitCircleTrap(t *testing.T) {
	// |0-5|, |2-5|, |6-5|, |38-5|
	got := Mandelbrot{}.EvaluateOrbit(Complex{2, 0}, 5)
	if got.Trap != 1 {
		t.Fatalf("Trap = %v, want 1", got.Trap)
	}
}

func TestEvaluateOrbitJuliaStartsOutside(t *testing.T) {
	got := Julia{}.EvaluateOrbit(Complex{20, 0}, 0)
	want := OrbitSample{Trap: 20, Escaped: true}
	if got != want {
		t.Fatalf("EvaluateOrbit(20) = %+v, want %+v", got, want)
	}
}

func TestOrbitTrapMapOrbit(t *testing.T) {
	tests := []struct {
		s    OrbitSample
		want color.RGBA
	}{
		{OrbitSample{Mu: DefaultLimit}, color.RGBA{A: 255}},
		{OrbitSample{Mu: 10, Trap: math.Inf(1), Escaped: true}, hsv(0.2, 1, 1)},
		{OrbitSample{Mu: 10, Trap: 0, Escaped: true}, hsv(0.5, 1, 1)},
	}
	for _, tt := range tests {
		if got := (OrbitTrap{}).MapOrbit(tt.s); got != tt.want {
			t.Fatalf("MapOrbit(%+v) = %v, want %v", tt.s, got, tt.want)
		}
	}
}

func TestOrbitTrapMap(t *testing.T) {
	if got := (OrbitTrap{}).Map(1); got != (color.RGBA{A: 255}) {
		t.Fatalf("Map(1) = %v, want black", got)
	}
	mu := 0.5 * DefaultLimit
	want := hsv(mu*0.02, 1, 1)
	if got := (OrbitTrap{}).Map(0.5); got != want {
		t.Fatalf("Map(0.5) = %v, want %v", got, want)
	}
}

func TestPaletteByNameOrbit(t *testing.T) {
	cm, err := PaletteByName("orbit")
	if err != nil {
		t.Fatalf("PaletteByName(orbit) error = %v", err)
	}
	if _, ok := cm.(OrbitMapper); !ok {
		t.Fatalf("PaletteByName(orbit) = %T, want an OrbitMapper", cm)
	}
}

func TestSynthesizeOrbitTrap(t *testing.T) {
	// a single pixel at c = 2
	r := PlaneRange{X: Range{2, 3}, Y: Range{0, 1}}
	cm := OrbitTrap{Radius: 5}

	img := Synthesize(1, 1, r, Complex{}, Mandelbrot{}, cm)
	want := cm.MapOrbit(Mandelbrot{}.EvaluateOrbit(Complex{2, 0}, 5))
	if got := img.RGBAAt(0, 0); got != want {
		t.Fatalf("orbit pixel = %v, want %v", got, want)
	}

	// evaluators without orbits fall back to Map
	img = Synthesize(1, 1, r, Complex{}, constEval(0.5), cm)
	if got := img.RGBAAt(0, 0); got != cm.Map(0.5) {
		t.Fatalf("fallback pixel = %v, want %v", got, cm.Map(0.5))
	}
}

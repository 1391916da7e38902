package fractal

import (
	"errors"
	"fmt"
	"sort"
)

var ErrUnknownRegion = errors.New("unknown region")

// Region within the complex plane
type Region struct {
	Xmin, Xmax float64
	Ymin, Ymax float64
}

func (r Region) Width() float64  { return r.Xmax - r.Xmin }
func (r Region) Height() float64 { return r.Ymax - r.Ymin }

func (r Region) Center() Complex {
	return Complex{Real: (r.Xmin + r.Xmax) / 2, Imag: (r.Ymin + r.Ymax) / 2}
}

// Classic regions / landmarks in the Mandelbrot set
var (
	// Whole set, as framed by the explorer's Mandelbrot mode
	FullSet = Region{
		Xmin: -2.15,
		Xmax: 0.95,
		Ymin: -1.55,
		Ymax: 1.55,
	}

	// Seahorse Valley – dense filaments and repeating “seahorse” curls
	SeahorseValley = Region{
		Xmin: -0.8,
		Xmax: -0.7,
		Ymin: 0.05,
		Ymax: 0.15,
	}

	// Elephant Valley – large bulb with trunk-like tendrils
	ElephantValley = Region{
		Xmin: -1.85,
		Xmax: -1.75,
		Ymin: -0.10,
		Ymax: -0.02,
	}

	// Spiral Minibrot – small Mandelbrot copy with tight spiral arms
	SpiralMinibrot = Region{
		Xmin: -0.7435,
		Xmax: -0.7420,
		Ymin: 0.1310,
		Ymax: 0.1325,
	}

	// Triple Spiral – threefold symmetric spiral structure
	TripleSpiral = Region{
		Xmin: -0.7480,
		Xmax: -0.7450,
		Ymin: 0.0950,
		Ymax: 0.0980,
	}

	// Valley of the Dragon – deep, highly detailed spiral filaments
	ValleyOfTheDragon = Region{
		Xmin: -0.7400,
		Xmax: -0.7350,
		Ymin: 0.1800,
		Ymax: 0.1850,
	}

	// Minibrot in a Mini-Spiral – self-similar Mandelbrot copy inside a spiral arm
	MinibrotInMiniSpiral = Region{
		Xmin: -1.7390,
		Xmax: -1.7375,
		Ymin: -0.0235,
		Ymax: -0.0220,
	}
)

var landmarks = map[string]Region{
	"full":       FullSet,
	"seahorse":   SeahorseValley,
	"elephant":   ElephantValley,
	"minibrot":   SpiralMinibrot,
	"triple":     TripleSpiral,
	"dragon":     ValleyOfTheDragon,
	"minispiral": MinibrotInMiniSpiral,
}

// Landmark looks a region up by its short name.
func Landmark(name string) (Region, error) {
	r, ok := landmarks[name]
	if !ok {
		return Region{}, fmt.Errorf("%w: %q", ErrUnknownRegion, name)
	}
	return r, nil
}

// LandmarkNames lists the names accepted by Landmark.
func LandmarkNames() []string {
	names := make([]string, 0, len(landmarks))
	for n := range landmarks {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

package viewport

import fractal "github.com/marben/fractal_explorer"

// Input is one frame of user input, already reduced to the actions the
// viewport understands. The window layer fills it from its event source.
type Input struct {
	ZoomIn, ZoomOut   bool // keyboard zoom, which also stops parameter following
	ToggleFollow      bool
	ResetZoom         bool
	Mandelbrot, Julia bool
	DragStart         bool
	DragEnd           bool

	// Wheel is the vertical wheel delta; positive zooms in. Fast scrolling,
	// more than one notch, zooms five steps at once.
	Wheel float64

	// Pointer is the normalised pointer position, origin top left. It is
	// ignored unless HasPointer is set.
	Pointer    [2]float32
	HasPointer bool

	// Width and Height report a new window size; zero means unchanged.
	Width, Height int
}

const fastWheelSteps = 5

// Commands translates in into viewport commands. The window size and the
// pointer are applied first so zooming in the same frame is anchored at the
// current pointer.
func (in Input) Commands() Batch {
	var b Batch
	if in.Width > 0 && in.Height > 0 {
		b = append(b, Resize{Width: in.Width, Height: in.Height})
	}
	if in.HasPointer {
		b = append(b, PointerMove{X: in.Pointer[0], Y: in.Pointer[1]})
	}

	switch {
	case in.Mandelbrot:
		b = append(b, SetMode{Mode: fractal.ModeMandelbrot})
	case in.Julia:
		b = append(b, SetMode{Mode: fractal.ModeJulia})
	}
	if in.ResetZoom {
		b = append(b, ResetZoom{})
	}
	if in.ToggleFollow {
		b = append(b, ToggleFollow{})
	}

	if in.ZoomIn {
		b = append(b, SetFollow{On: false}, ZoomIn{})
	}
	if in.ZoomOut {
		b = append(b, SetFollow{On: false}, ZoomOut{})
	}
	if in.Wheel != 0 {
		steps := 1
		if in.Wheel > 1 || in.Wheel < -1 {
			steps = fastWheelSteps
		}
		if in.Wheel > 0 {
			b = append(b, ZoomIn{Steps: steps})
		} else {
			b = append(b, ZoomOut{Steps: steps})
		}
	}

	if in.DragStart {
		b = append(b, BeginDrag{})
	}
	if in.DragEnd {
		b = append(b, EndDrag{})
	}
	return b
}

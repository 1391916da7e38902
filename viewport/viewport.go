// Package viewport holds the interactive view onto the complex plane: the
// visible domain, the Julia parameter, the active mode and the pointer state
// that zooming, panning and parameter selection are anchored to.
//
// A Viewport has a single writer. The event loop owning it mutates it through
// Apply and reads a Params snapshot once per frame.
package viewport

import (
	"time"

	"github.com/go-gl/mathgl/mgl32"

	fractal "github.com/marben/fractal_explorer"
)

const (
	// ZoomFactor is the fraction of the domain removed by one zoom-in step.
	ZoomFactor = 0.025

	// MinExtent is the precision floor: zooming in stops once the smaller
	// axis is this narrow.
	MinExtent = 1e-5

	// MaxExtent stops zooming out once the larger axis is this wide.
	MaxExtent = 20.0

	// MandelbrotShift moves the default domain left so the Mandelbrot set is
	// framed.
	MandelbrotShift = 0.6

	// resetMinHeight is the smallest vertical extent ResetZoom leaves, as a
	// fraction of the default one.
	resetMinHeight = 0.75
)

type Viewport struct {
	p fractal.Params

	width, height int

	follow     bool
	dragging   bool
	dragOrigin mgl32.Vec2
}

func New() *Viewport {
	return &Viewport{p: fractal.DefaultParams()}
}

func (v *Viewport) Domain() [2]mgl32.Vec2     { return v.p.Domain }
func (v *Viewport) DomainSize() mgl32.Vec2    { return v.p.DomainSize() }
func (v *Viewport) Mouse() mgl32.Vec2         { return v.p.Mouse }
func (v *Viewport) C() mgl32.Vec2             { return v.p.C }
func (v *Viewport) Mode() fractal.Mode        { return v.p.Mode }
func (v *Viewport) Time() float32             { return v.p.Time }
func (v *Viewport) FollowsPointer() bool      { return v.follow }
func (v *Viewport) Dragging() bool            { return v.dragging }
func (v *Viewport) Size() (width, height int) { return v.width, v.height }

// Params returns a snapshot of the parameter block.
func (v *Viewport) Params() fractal.Params { return v.p }

func (v *Viewport) ZoomIn() bool  { return v.zoom(true) }
func (v *Viewport) ZoomOut() bool { return v.zoom(false) }

// zoom scales the domain around the pointer so the plane point under it
// stays put. Zooming out uses the reciprocal factor, so one step in followed
// by one step out restores the domain.
func (v *Viewport) zoom(in bool) bool {
	size := v.p.DomainSize()
	if in && min(size[0], size[1]) <= MinExtent {
		return false
	}
	if !in && max(size[0], size[1]) >= MaxExtent {
		return false
	}

	r := float32(1 - ZoomFactor)
	if !in {
		r = 1 / r
	}
	k := 1 - r
	m := v.p.Mouse
	d := v.p.Domain

	v.p.Domain = [2]mgl32.Vec2{
		{d[0][0] + k*size[0]*m[0], d[0][1] - k*size[0]*(1-m[0])},
		{d[1][0] + k*size[1]*(1-m[1]), d[1][1] - k*size[1]*m[1]},
	}
	return v.p.Domain != d
}

// Pan shifts the domain by vector, in units of the domain size. The vertical
// component follows screen coordinates, which grow downwards.
func (v *Viewport) Pan(vector mgl32.Vec2) bool {
	size := v.p.DomainSize()
	d := v.p.Domain
	dx := size[0] * vector[0]
	dy := size[1] * vector[1]
	v.p.Domain = [2]mgl32.Vec2{
		{d[0][0] - dx, d[0][1] - dx},
		{d[1][0] + dy, d[1][1] + dy},
	}
	return v.p.Domain != d
}

// Resize matches the vertical extent to the aspect ratio of a width×height
// window, keeping the vertical centre. Zero sizes are ignored.
func (v *Viewport) Resize(width, height int) bool {
	if width <= 0 || height <= 0 {
		return false
	}
	before := *v
	v.width, v.height = width, height

	size := v.p.DomainSize()
	ratio := float32(width) / float32(height)
	delta := size[1] - size[0]/ratio

	v.p.Domain[1] = mgl32.Vec2{
		v.p.Domain[1][0] + delta/2,
		v.p.Domain[1][1] - delta/2,
	}
	return *v != before
}

// ResetZoom restores the default domain, corrected for the window aspect.
// Very wide windows get their horizontal extent grown instead of losing too
// much height.
func (v *Viewport) ResetZoom() bool {
	before := *v

	v.p.Domain = fractal.DefaultDomain
	v.Resize(v.width, v.height)

	minHeight := (fractal.DefaultDomain[1][1] - fractal.DefaultDomain[1][0]) * resetMinHeight
	height := v.p.Domain[1][1] - v.p.Domain[1][0]
	if height < minHeight {
		ratio := minHeight / height
		v.p.Domain[1] = mgl32.Vec2{-minHeight / 2, minHeight / 2}
		v.p.Domain[0] = v.p.Domain[0].Mul(ratio)
	}
	return *v != before
}

// SetMode switches between the Julia and Mandelbrot sets and reframes the
// view for the new set.
func (v *Viewport) SetMode(mode fractal.Mode) bool {
	before := *v
	switch mode {
	case fractal.ModeMandelbrot:
		v.p.Mode = fractal.ModeMandelbrot
		v.follow = false
		v.p.C = mgl32.Vec2{}
		v.ResetZoom()
		v.p.Domain[0] = v.p.Domain[0].Sub(mgl32.Vec2{MandelbrotShift, MandelbrotShift})
	case fractal.ModeJulia:
		v.p.Mode = fractal.ModeJulia
		v.follow = false
		v.ResetZoom()
		v.p.C = fractal.DefaultC
	default:
		return false
	}
	return *v != before
}

// ToggleFollowPointer flips parameter-follows-pointer. It is only available
// in Julia mode. Enabling it while zoomed in resets the zoom so the effect
// of moving c is visible.
func (v *Viewport) ToggleFollowPointer() bool {
	return v.SetFollowPointer(!v.follow)
}

func (v *Viewport) SetFollowPointer(on bool) bool {
	before := *v
	if v.p.Mode == fractal.ModeMandelbrot {
		v.follow = false
		return *v != before
	}

	v.follow = on
	if on && !before.follow {
		defaultWidth := fractal.DefaultDomain[0][1] - fractal.DefaultDomain[0][0]
		if v.p.DomainSize()[0] < defaultWidth {
			v.ResetZoom()
		}
	}
	return *v != before
}

// SetPointer records the normalised pointer position, origin top left. When
// the parameter follows the pointer, c is taken from it directly:
// ((x-0.5)*2, (y-0.5)*2), independent of the current zoom.
func (v *Viewport) SetPointer(x, y float32) bool {
	before := *v
	v.p.Mouse = mgl32.Vec2{x, y}
	if v.follow && !v.dragging {
		v.p.C = mgl32.Vec2{(x - 0.5) * 2, (y - 0.5) * 2}
	}
	return *v != before
}

func (v *Viewport) BeginDrag() bool {
	before := *v
	v.dragging = true
	v.dragOrigin = v.p.Mouse
	return *v != before
}

func (v *Viewport) EndDrag() bool {
	before := *v
	v.dragging = false
	v.dragOrigin = v.p.Mouse
	return *v != before
}

// Update advances the frame clock to elapsed and, while dragging, pans by the
// pointer movement since the previous update. It reports whether the domain
// moved; the clock alone does not count as a change.
func (v *Viewport) Update(elapsed time.Duration) bool {
	v.p.Time = float32(elapsed.Seconds())
	if !v.dragging {
		return false
	}
	changed := v.Pan(v.p.Mouse.Sub(v.dragOrigin))
	v.dragOrigin = v.p.Mouse
	return changed
}

// Frame returns the default view of mode for a width×height image. c is
// the Julia parameter and is ignored for the Mandelbrot set.
func Frame(width, height int, mode fractal.Mode, c fractal.Complex) fractal.Params {
	v := New()
	v.Resize(width, height)
	v.SetMode(mode)
	if mode == fractal.ModeJulia {
		v.p.C = mgl32.Vec2{float32(c.Real), float32(c.Imag)}
	}
	return v.Params()
}

package viewport

import (
	"fmt"
	"strings"

	"github.com/go-gl/mathgl/mgl32"

	fractal "github.com/marben/fractal_explorer"
)

// Command is one discrete change requested by the input layer.
type Command interface {
	fmt.Stringer
	apply(v *Viewport) bool
}

// Apply runs cmd against v and reports whether the viewport changed, so the
// caller can decide whether a redraw is needed.
func Apply(cmd Command, v *Viewport) bool {
	if cmd == nil {
		return false
	}
	return cmd.apply(v)
}

// ZoomIn zooms towards the pointer. Steps below one count as one.
type ZoomIn struct{ Steps int }

// ZoomOut zooms away from the pointer. Steps below one count as one.
type ZoomOut struct{ Steps int }

// Pan shifts the domain by Vector, in units of the domain size.
type Pan struct{ Vector mgl32.Vec2 }

type ResetZoom struct{}

// Resize reports a new window size in pixels.
type Resize struct{ Width, Height int }

type SetMode struct{ Mode fractal.Mode }

type ToggleFollow struct{}

type SetFollow struct{ On bool }

// PointerMove reports the pointer position normalised to [0, 1], origin top
// left.
type PointerMove struct{ X, Y float32 }

type BeginDrag struct{}

type EndDrag struct{}

// Batch applies its commands in order.
type Batch []Command

func (c ZoomIn) apply(v *Viewport) bool  { return repeat(c.Steps, v.ZoomIn) }
func (c ZoomOut) apply(v *Viewport) bool { return repeat(c.Steps, v.ZoomOut) }
func (c Pan) apply(v *Viewport) bool     { return v.Pan(c.Vector) }
func (ResetZoom) apply(v *Viewport) bool { return v.ResetZoom() }
func (c Resize) apply(v *Viewport) bool  { return v.Resize(c.Width, c.Height) }
func (c SetMode) apply(v *Viewport) bool { return v.SetMode(c.Mode) }

func (ToggleFollow) apply(v *Viewport) bool  { return v.ToggleFollowPointer() }
func (c SetFollow) apply(v *Viewport) bool   { return v.SetFollowPointer(c.On) }
func (c PointerMove) apply(v *Viewport) bool { return v.SetPointer(c.X, c.Y) }
func (BeginDrag) apply(v *Viewport) bool     { return v.BeginDrag() }
func (EndDrag) apply(v *Viewport) bool       { return v.EndDrag() }

func (b Batch) apply(v *Viewport) bool {
	changed := false
	for _, c := range b {
		if Apply(c, v) {
			changed = true
		}
	}
	return changed
}

func repeat(steps int, f func() bool) bool {
	changed := false
	for i := 0; i < max(steps, 1); i++ {
		if !f() {
			break
		}
		changed = true
	}
	return changed
}

func (c ZoomIn) String() string      { return fmt.Sprintf("zoom-in(%d)", max(c.Steps, 1)) }
func (c ZoomOut) String() string     { return fmt.Sprintf("zoom-out(%d)", max(c.Steps, 1)) }
func (c Pan) String() string         { return fmt.Sprintf("pan(%g, %g)", c.Vector[0], c.Vector[1]) }
func (ResetZoom) String() string     { return "reset-zoom" }
func (c Resize) String() string      { return fmt.Sprintf("resize(%dx%d)", c.Width, c.Height) }
func (c SetMode) String() string     { return "mode(" + c.Mode.String() + ")" }
func (ToggleFollow) String() string  { return "toggle-follow" }
func (c SetFollow) String() string   { return fmt.Sprintf("follow(%t)", c.On) }
func (c PointerMove) String() string { return fmt.Sprintf("pointer(%.3f, %.3f)", c.X, c.Y) }
func (BeginDrag) String() string     { return "begin-drag" }
func (EndDrag) String() string       { return "end-drag" }

func (b Batch) String() string {
	parts := make([]string, len(b))
	for i, c := range b {
		parts[i] = c.String()
	}
	return "[" + strings.Join(parts, " ") + "]"
}

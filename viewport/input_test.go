package viewport

import (
	"testing"

	fractal "github.com/marben/fractal_explorer"
)

func TestInputCommands(t *testing.T) {
	tests := []struct {
		name string
		in   Input
		want string
	}{
		{"idle", Input{}, "[]"},
		{"keyboard zoom", Input{ZoomIn: true}, "[follow(false) zoom-in(1)]"},
		{"keyboard zoom out", Input{ZoomOut: true}, "[follow(false) zoom-out(1)]"},
		{"wheel notch", Input{Wheel: 1}, "[zoom-in(1)]"},
		{"fast wheel", Input{Wheel: -3}, "[zoom-out(5)]"},
		{"mode", Input{Mandelbrot: true}, "[mode(mandelbrot)]"},
		{"drag", Input{DragStart: true}, "[begin-drag]"},
		{
			"pointer before zoom",
			Input{Wheel: 0.5, Pointer: [2]float32{0.25, 0.75}, HasPointer: true},
			"[pointer(0.250, 0.750) zoom-in(1)]",
		},
		{"resize first", Input{Width: 4, Height: 3, ResetZoom: true}, "[resize(4x3) reset-zoom]"},
	}
	for _, tt := range tests {
		if got := tt.in.Commands().String(); got != tt.want {
			t.Fatalf("%s: Commands() = %s, want %s", tt.name, got, tt.want)
		}
	}
}

func TestInputZoomStopsFollowing(t *testing.T) {
	v := New()
	Apply(ToggleFollow{}, v)

	if !Apply(Input{ZoomIn: true}.Commands(), v) {
		t.Fatalf("Apply(keyboard zoom) = false, want true")
	}
	if v.FollowsPointer() {
		t.Fatalf("FollowsPointer() = true after keyboard zoom")
	}

	Apply(Input{Julia: true}.Commands(), v)
	if v.Mode() != fractal.ModeJulia || v.Domain() != fractal.DefaultDomain {
		t.Fatalf("after J: mode %v domain %v, want julia at the default domain", v.Mode(), v.Domain())
	}
}

package main

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/marben/fractal_explorer/viewport"
)

var (
	zoomInKeys  = []ebiten.Key{ebiten.KeySpace, ebiten.KeyEqual, ebiten.KeyNumpadAdd, ebiten.KeyUp}
	zoomOutKeys = []ebiten.Key{ebiten.KeyMinus, ebiten.KeyNumpadSubtract, ebiten.KeyDown}
	resetKeys   = []ebiten.Key{ebiten.KeyR, ebiten.KeyF5}
)

// repeating reports a key that was just pressed or has been held long
// enough to auto-repeat.
func repeating(keys []ebiten.Key) bool {
	for _, k := range keys {
		d := inpututil.KeyPressDuration(k)
		if d == 1 || (d > 15 && d%3 == 0) {
			return true
		}
	}
	return false
}

func justPressed(keys ...ebiten.Key) bool {
	for _, k := range keys {
		if inpututil.IsKeyJustPressed(k) {
			return true
		}
	}
	return false
}

func dragButton(f func(ebiten.MouseButton) bool) bool {
	return f(ebiten.MouseButtonMiddle) || f(ebiten.MouseButtonRight)
}

// readInput collects this frame's input for a w×h window.
func readInput(w, h int) viewport.Input {
	in := viewport.Input{
		ZoomIn:       repeating(zoomInKeys),
		ZoomOut:      repeating(zoomOutKeys),
		ToggleFollow: justPressed(ebiten.KeyC) || inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft),
		ResetZoom:    justPressed(resetKeys...),
		Mandelbrot:   justPressed(ebiten.KeyM),
		Julia:        justPressed(ebiten.KeyJ),
		DragStart:    dragButton(inpututil.IsMouseButtonJustPressed),
		DragEnd:      dragButton(inpututil.IsMouseButtonJustReleased),
	}
	_, in.Wheel = ebiten.Wheel()

	if w > 0 && h > 0 {
		x, y := ebiten.CursorPosition()
		in.Pointer = [2]float32{float32(x) / float32(w), float32(y) / float32(h)}
		in.HasPointer = true
	}
	return in
}

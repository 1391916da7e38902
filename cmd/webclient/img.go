//go:build js && wasm

package main

import (
	"image"
	"syscall/js"
)

func canvasContext() js.Value {
	canvas := js.Global().Get("document").Call("getElementById", "myCanvas")
	return canvas.Call("getContext", "2d")
}

// initCanvas resizes the canvas to the frame and fills it with color.
func initCanvas(width, height int, color string) {
	canvas := js.Global().Get("document").Call("getElementById", "myCanvas")
	canvas.Set("width", width)
	canvas.Set("height", height)

	ctx := canvas.Call("getContext", "2d")
	ctx.Set("fillStyle", color)
	ctx.Call("fillRect", 0, 0, width, height)
}

// drawTileToCanvas paints tile at its position in the frame.
func drawTileToCanvas(tile *image.RGBA) {
	width, height := tile.Rect.Dx(), tile.Rect.Dy()

	// ImageData wants tightly packed rows
	pix := tile.Pix
	if tile.Stride != 4*width {
		pix = make([]byte, 0, 4*width*height)
		for y := tile.Rect.Min.Y; y < tile.Rect.Max.Y; y++ {
			i := tile.PixOffset(tile.Rect.Min.X, y)
			pix = append(pix, tile.Pix[i:i+4*width]...)
		}
	}

	jsData := js.Global().Get("Uint8ClampedArray").New(len(pix))
	js.CopyBytesToJS(jsData, pix)
	imageData := js.Global().Get("ImageData").New(jsData, width, height)
	canvasContext().Call("putImageData", imageData, tile.Rect.Min.X, tile.Rect.Min.Y)
}

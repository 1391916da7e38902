// Package render renders tiles of a fractal frame on the local CPU. The
// renderer is served to a coordinator through fractal.NewRendererIrpcService.
package render

import (
	"errors"
	"fmt"
	"image"

	fractal "github.com/marben/fractal_explorer"
)

// ErrEmptyTile is returned for tiles that do not overlap the frame.
var ErrEmptyTile = errors.New("render: tile outside frame")

// RendererImpl renders tiles on the local CPU.
type RendererImpl struct {
	Escape  fractal.EscapeConfig
	Palette fractal.ColorMapper
	Smooth  bool

	// OnTileRender, if set, is called before each tile is rendered.
	OnTileRender func(tile image.Rectangle)
}

func (imp RendererImpl) RenderTile(p fractal.Params, tile image.Rectangle, imgW, imgH int) (image.RGBA, error) {
	tile = tile.Intersect(image.Rect(0, 0, imgW, imgH))
	if tile.Empty() {
		return image.RGBA{}, fmt.Errorf("%w: %v in %dx%d", ErrEmptyTile, tile, imgW, imgH)
	}
	if imp.OnTileRender != nil {
		imp.OnTileRender(tile)
	}

	// the tile keeps global frame coordinates
	img := image.NewRGBA(tile)
	fractal.SynthesizeTile(img, tile, imgW, imgH, p.PlaneRange(), fractal.Complex{}, p.Evaluator(imp.Escape, imp.Smooth), imp.Palette)
	return *img, nil
}

var _ fractal.Renderer = RendererImpl{}

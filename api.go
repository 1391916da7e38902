package fractal

import (
	"image"
)

//go:generate go run github.com/marben/irpc/cmd/irpc api.go

// ImgProvider hands out the complete frame once every tile is rendered.
type ImgProvider interface {
	GetImage() (image.RGBA, error)
}

// Renderer renders one tile of an imgW×imgH frame described by p. The
// returned image is in global frame coordinates.
type Renderer interface {
	RenderTile(p Params, tile image.Rectangle, imgW, imgH int) (image.RGBA, error)
}

// Progress reports how far a distributed frame has got.
type Progress struct {
	Workers        int  `json:"workers"`
	FinishedPixels int  `json:"finished_pixels"`
	TotalPixels    int  `json:"total_pixels"`
	Done           bool `json:"done"`
}

// Fraction is the finished share of the frame in [0, 1].
func (p Progress) Fraction() float64 {
	if p.TotalPixels <= 0 {
		return 0
	}
	return float64(p.FinishedPixels) / float64(p.TotalPixels)
}

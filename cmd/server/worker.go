package main

import (
	"context"
	"fmt"
	"image"
	"image/draw"
	"log"
	"sync"

	fractal "github.com/marben/fractal_explorer"
)

// tileScheduler hands out the tiles of one frame to any number of
// renderers and assembles the results.
type tileScheduler struct {
	workers int
	params  fractal.Params
	img     *image.RGBA

	ctx       context.Context
	ctxCancel context.CancelFunc

	totalPixels    int
	finishedPixels int

	unstarted map[image.Rectangle]struct{}
	inProcess map[image.Rectangle]struct{}
	m         sync.Mutex
}

func newTileScheduler(w, h, tileSize int, p fractal.Params) *tileScheduler {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	tiles := splitRectNoClip(img.Bounds(), tileSize, tileSize)
	unstarted := make(map[image.Rectangle]struct{}, len(tiles))
	for _, t := range tiles {
		unstarted[t] = struct{}{}
	}
	ctx, cancel := context.WithCancel(context.Background())
	if len(unstarted) == 0 {
		cancel()
	}
	return &tileScheduler{
		params:      p,
		img:         img,
		unstarted:   unstarted,
		inProcess:   make(map[image.Rectangle]struct{}),
		totalPixels: w * h,
		ctx:         ctx,
		ctxCancel:   cancel,
	}
}

// popTile returns an unstarted tile, or when none are left, a tile another
// worker is still busy with so a slow or dead worker cannot stall the frame.
func (s *tileScheduler) popTile() (tile image.Rectangle, found bool) {
	s.m.Lock()
	defer s.m.Unlock()

	for tile = range s.unstarted {
		delete(s.unstarted, tile)
		s.inProcess[tile] = struct{}{}
		return tile, true
	}
	for tile = range s.inProcess {
		return tile, true
	}
	return image.Rectangle{}, false
}

// GetImage implements fractal.ImgProvider. It blocks until the frame is
// complete.
func (s *tileScheduler) GetImage() (image.RGBA, error) {
	<-s.ctx.Done()
	return *s.img, nil
}

// wait blocks until the frame is complete or ctx is done.
func (s *tileScheduler) wait(ctx context.Context) error {
	select {
	case <-s.ctx.Done():
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *tileScheduler) progress() fractal.Progress {
	s.m.Lock()
	defer s.m.Unlock()
	return fractal.Progress{
		Workers:        s.workers,
		FinishedPixels: s.finishedPixels,
		TotalPixels:    s.totalPixels,
		Done:           s.ctx.Err() != nil,
	}
}

func (s *tileScheduler) tileFinished(tileImg *image.RGBA) {
	rect := tileImg.Bounds()

	s.m.Lock()
	defer s.m.Unlock()

	// a re-issued tile is only taken from whichever worker finishes first
	if _, found := s.inProcess[rect]; !found {
		return
	}
	draw.Draw(s.img, rect, tileImg, rect.Min, draw.Src)
	s.finishedPixels += rect.Dx() * rect.Dy()
	delete(s.inProcess, rect)

	if len(s.unstarted) == 0 && len(s.inProcess) == 0 {
		s.ctxCancel()
	}
}

func (s *tileScheduler) incActiveWorkers() {
	s.m.Lock()
	s.workers++
	w := s.workers
	s.m.Unlock()

	log.Printf("workers: %d", w)
}

func (s *tileScheduler) decActiveWorkers() {
	s.m.Lock()
	s.workers--
	w := s.workers
	s.m.Unlock()

	log.Printf("workers: %d", w)
}

// render renders unfinished tiles on r until the frame is complete.
// It is safe to call from many goroutines, one per renderer. A renderer
// error drops the renderer; its tile stays in process for the others.
func (s *tileScheduler) render(r fractal.Renderer) error {
	s.incActiveWorkers()
	defer s.decActiveWorkers()

	w, h := s.img.Rect.Dx(), s.img.Rect.Dy()
	for {
		tile, found := s.popTile()
		if !found {
			return nil
		}
		tileImg, err := r.RenderTile(s.params, tile, w, h)
		if err != nil {
			return err
		}
		if tileImg.Rect != tile {
			return fmt.Errorf("renderer returned %v for tile %v", tileImg.Rect, tile)
		}
		s.tileFinished(&tileImg)

		p := s.progress()
		log.Printf("finished: %.3f", p.Fraction())
	}
}

// splitRectNoClip splits r into tiles of size tileW × tileH.
// Tiles at the right and bottom edges are smaller if r is not divisible.
func splitRectNoClip(r image.Rectangle, tileW, tileH int) []image.Rectangle {
	if tileW <= 0 || tileH <= 0 {
		panic("tile dimensions must be positive")
	}

	var tiles []image.Rectangle
	for y := r.Min.Y; y < r.Max.Y; y += tileH {
		for x := r.Min.X; x < r.Max.X; x += tileW {
			tiles = append(tiles, image.Rect(x, y, min(x+tileW, r.Max.X), min(y+tileH, r.Max.Y)))
		}
	}
	return tiles
}

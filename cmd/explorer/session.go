package main

import (
	"errors"
	"fmt"
	"image"
	"image/png"
	"log"
	"os"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"golang.org/x/image/draw"

	fractal "github.com/marben/fractal_explorer"
	"github.com/marben/fractal_explorer/viewport"
)

// session is one explorer window. It owns the viewport; ebiten calls Update
// and Draw from the same goroutine, so nothing here is locked.
type session struct {
	cfg     config
	view    *viewport.Viewport
	start   time.Time
	escape  fractal.EscapeConfig
	palette fractal.ColorMapper
	shader  *ebiten.Shader

	w, h     int // window size reported by Layout
	appliedW int
	appliedH int
	dirty    bool
	frame    *image.RGBA
	frameImg *ebiten.Image
	hideHUD  bool
}

func newSession(cfg config) (*session, error) {
	mode, err := fractal.ParseMode(cfg.mode)
	if err != nil {
		return nil, err
	}
	palette, err := fractal.PaletteByName(cfg.palette)
	if err != nil {
		return nil, err
	}

	s := &session{
		cfg:     cfg,
		view:    viewport.New(),
		start:   time.Now(),
		escape:  fractal.EscapeConfig{Limit: cfg.iter}.Normalize(),
		palette: palette,
		dirty:   true,
	}
	viewport.Apply(viewport.SetMode{Mode: mode}, s.view)

	if cfg.gpu {
		if s.shader, err = newShader(); err != nil {
			return nil, err
		}
	}
	return s, nil
}

func (s *session) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}

	in := readInput(s.w, s.h)
	if s.w != s.appliedW || s.h != s.appliedH {
		in.Width, in.Height = s.w, s.h
		s.appliedW, s.appliedH = s.w, s.h
	}
	cmds := in.Commands()
	if viewport.Apply(cmds, s.view) {
		s.dirty = true
		if s.cfg.verbose {
			log.Printf("%v", cmds)
		}
	}
	if s.view.Update(time.Since(s.start)) {
		s.dirty = true
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyH) {
		s.hideHUD = !s.hideHUD
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyS) {
		if err := s.save(); err != nil {
			log.Printf("save: %v", err)
		}
	}

	if s.shader == nil && s.dirty {
		s.redraw()
	}
	return nil
}

// frameSize is the size of the CPU frame, a 1/scale fraction of the window.
func (s *session) frameSize() (int, int) {
	scale := max(s.cfg.scale, 1)
	return max(s.w/scale, 1), max(s.h/scale, 1)
}

// redraw synthesises the CPU frame from the current parameter block.
func (s *session) redraw() {
	if s.w <= 0 || s.h <= 0 {
		return
	}
	fw, fh := s.frameSize()
	p := s.view.Params()
	s.frame = fractal.Synthesize(fw, fh, p.PlaneRange(), fractal.Complex{}, p.Evaluator(s.escape, s.cfg.smooth), s.palette)

	if s.frameImg == nil || s.frameImg.Bounds().Size() != s.frame.Rect.Size() {
		if s.frameImg != nil {
			s.frameImg.Deallocate()
		}
		s.frameImg = ebiten.NewImage(fw, fh)
	}
	s.frameImg.WritePixels(s.frame.Pix)
	s.dirty = false
}

func (s *session) Draw(screen *ebiten.Image) {
	if s.shader != nil {
		w, h := screen.Bounds().Dx(), screen.Bounds().Dy()
		screen.DrawRectShader(w, h, s.shader, &ebiten.DrawRectShaderOptions{
			Uniforms: shaderUniforms(s.view.Params(), w, h, s.escape),
		})
	} else if s.frameImg != nil {
		op := &ebiten.DrawImageOptions{}
		op.GeoM.Scale(
			float64(screen.Bounds().Dx())/float64(s.frameImg.Bounds().Dx()),
			float64(screen.Bounds().Dy())/float64(s.frameImg.Bounds().Dy()),
		)
		op.Filter = ebiten.FilterLinear
		screen.DrawImage(s.frameImg, op)
	}

	if !s.hideHUD {
		ebitenutil.DebugPrint(screen, s.hud())
	}
}

func (s *session) hud() string {
	d := s.view.Domain()
	c := s.view.Params().Complex()
	follow := ""
	if s.view.FollowsPointer() {
		follow = " (follows pointer)"
	}
	return fmt.Sprintf("%s  c = %s%s\nx [%.6g, %.6g]  y [%.6g, %.6g]\nFPS %.0f  TPS %.0f",
		s.view.Mode(), c, follow,
		d[0][0], d[0][1], d[1][0], d[1][1],
		ebiten.ActualFPS(), ebiten.ActualTPS())
}

func (s *session) Layout(outsideWidth, outsideHeight int) (int, int) {
	s.w, s.h = outsideWidth, outsideHeight
	return outsideWidth, outsideHeight
}

// save writes the current view as PNG at window size. The CPU frame is
// upscaled; on the GPU path a frame is synthesised for the occasion.
func (s *session) save() (err error) {
	if s.w <= 0 || s.h <= 0 {
		return errors.New("window has no size yet")
	}
	src := s.frame
	if src == nil || s.shader != nil {
		p := s.view.Params()
		src = fractal.Synthesize(s.w, s.h, p.PlaneRange(), fractal.Complex{}, p.Evaluator(s.escape, s.cfg.smooth), s.palette)
	}
	out := image.NewRGBA(image.Rect(0, 0, s.w, s.h))
	draw.CatmullRom.Scale(out, out.Bounds(), src, src.Bounds(), draw.Src, nil)

	name := fmt.Sprintf("fractal-%s.png", time.Now().Format("20060102-150405"))
	f, err := os.Create(name)
	if err != nil {
		return err
	}
	defer func() {
		err = errors.Join(err, f.Close())
	}()
	if err := png.Encode(f, out); err != nil {
		return fmt.Errorf("png.Encode: %w", err)
	}
	log.Printf("saved %q", name)
	return nil
}

var _ ebiten.Game = (*session)(nil)

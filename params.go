package fractal

import (
	"encoding/binary"
	"errors"
	"fmt"
	"strings"

	"github.com/go-gl/mathgl/mgl32"
)

// Mode selects which set is drawn.
type Mode int32

const (
	ModeJulia Mode = iota
	ModeMandelbrot
)

var (
	ErrUnknownMode = errors.New("unknown mode")
	ErrParamsSize  = errors.New("params: short buffer")
)

func (m Mode) String() string {
	switch m {
	case ModeJulia:
		return "julia"
	case ModeMandelbrot:
		return "mandelbrot"
	}
	return fmt.Sprintf("Mode(%d)", int32(m))
}

func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(s) {
	case "julia", "j":
		return ModeJulia, nil
	case "mandelbrot", "mandel", "m":
		return ModeMandelbrot, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownMode, s)
}

var (
	DefaultDomain = [2]mgl32.Vec2{{-1.55, 1.55}, {-1.55, 1.55}}
	DefaultC      = mgl32.Vec2{-0.75, 0}
)

// Params is the per-frame parameter block shared by the CPU renderer, the
// shader and remote workers.
//
// Binary layout, little endian, 48 bytes:
//
//	 0  domain  [2][2]f32  {{xmin, xmax}, {ymin, ymax}}
//	16  mouse   [2]f32     normalised pointer, origin top left
//	24  c       [2]f32     Julia parameter
//	32  time    f32        seconds since start
//	36  mode    i32        0 julia, 1 mandelbrot
//	40  padding [2]i32
type Params struct {
	Domain [2]mgl32.Vec2
	Mouse  mgl32.Vec2
	C      mgl32.Vec2
	Time   float32
	Mode   Mode
}

// ParamsSize is the length of an encoded Params block.
const ParamsSize = 48

type paramsBlock struct {
	Domain [2][2]float32
	Mouse  [2]float32
	C      [2]float32
	Time   float32
	Mode   int32
	_      [2]int32
}

func DefaultParams() Params {
	return Params{Domain: DefaultDomain, C: DefaultC, Mode: ModeJulia}
}

// ParamsFromRegion frames r with the given mode and Julia parameter.
func ParamsFromRegion(r Region, mode Mode, c Complex) Params {
	return Params{
		Domain: [2]mgl32.Vec2{
			{float32(r.Xmin), float32(r.Xmax)},
			{float32(r.Ymin), float32(r.Ymax)},
		},
		C:    mgl32.Vec2{float32(c.Real), float32(c.Imag)},
		Mode: mode,
	}
}

func (p Params) Region() Region {
	return Region{
		Xmin: float64(p.Domain[0][0]),
		Xmax: float64(p.Domain[0][1]),
		Ymin: float64(p.Domain[1][0]),
		Ymax: float64(p.Domain[1][1]),
	}
}

// DomainSize is the extent of the domain on each axis.
func (p Params) DomainSize() mgl32.Vec2 {
	return mgl32.Vec2{
		p.Domain[0][1] - p.Domain[0][0],
		p.Domain[1][1] - p.Domain[1][0],
	}
}

func (p Params) Complex() Complex {
	return Complex{Real: float64(p.C[0]), Imag: float64(p.C[1])}
}

// PlaneRange maps the domain onto a raster whose first row is the top edge
// of the domain.
func (p Params) PlaneRange() PlaneRange {
	return PlaneRange{
		X: Range{Min: float64(p.Domain[0][0]), Max: float64(p.Domain[0][1])},
		Y: Range{Min: float64(p.Domain[1][1]), Max: float64(p.Domain[1][0])},
	}
}

func (p Params) Evaluator(cfg EscapeConfig, smooth bool) PointEvaluator {
	return EvaluatorFor(p.Mode, p.Complex(), cfg, smooth)
}

// Uniforms returns the block keyed by shader uniform name.
func (p Params) Uniforms() map[string]any {
	return map[string]any{
		"Domain": []float32{p.Domain[0][0], p.Domain[0][1], p.Domain[1][0], p.Domain[1][1]},
		"Mouse":  []float32{p.Mouse[0], p.Mouse[1]},
		"C":      []float32{p.C[0], p.C[1]},
		"Time":   p.Time,
		"Mode":   float32(p.Mode),
	}
}

func (p Params) MarshalBinary() ([]byte, error) {
	blk := paramsBlock{
		Domain: [2][2]float32{p.Domain[0], p.Domain[1]},
		Mouse:  p.Mouse,
		C:      p.C,
		Time:   p.Time,
		Mode:   int32(p.Mode),
	}
	buf := make([]byte, ParamsSize)
	if _, err := binary.Encode(buf, binary.LittleEndian, &blk); err != nil {
		return nil, fmt.Errorf("params: encode: %w", err)
	}
	return buf, nil
}

func (p *Params) UnmarshalBinary(data []byte) error {
	if len(data) < ParamsSize {
		return fmt.Errorf("%w: got %d bytes, want %d", ErrParamsSize, len(data), ParamsSize)
	}
	var blk paramsBlock
	if _, err := binary.Decode(data[:ParamsSize], binary.LittleEndian, &blk); err != nil {
		return fmt.Errorf("params: decode: %w", err)
	}
	*p = Params{
		Domain: [2]mgl32.Vec2{blk.Domain[0], blk.Domain[1]},
		Mouse:  blk.Mouse,
		C:      blk.C,
		Time:   blk.Time,
		Mode:   Mode(blk.Mode),
	}
	return nil
}

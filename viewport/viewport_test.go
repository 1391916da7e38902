package viewport

import (
	"math"
	"testing"
	"time"

	"github.com/go-gl/mathgl/mgl32"

	fractal "github.com/marben/fractal_explorer"
)

func approx(a, b, tol float32) bool {
	return math.Abs(float64(a-b)) <= float64(tol)
}

func domainApprox(a, b [2]mgl32.Vec2, tol float32) bool {
	for i := range a {
		for j := range a[i] {
			if !approx(a[i][j], b[i][j], tol) {
				return false
			}
		}
	}
	return true
}

func TestNewDefaults(t *testing.T) {
	v := New()
	if v.Domain() != fractal.DefaultDomain {
		t.Fatalf("Domain() = %v, want %v", v.Domain(), fractal.DefaultDomain)
	}
	if v.C() != (mgl32.Vec2{-0.75, 0}) {
		t.Fatalf("C() = %v, want (-0.75, 0)", v.C())
	}
	if v.Mode() != fractal.ModeJulia {
		t.Fatalf("Mode() = %v, want julia", v.Mode())
	}
	if v.FollowsPointer() || v.Dragging() {
		t.Fatalf("FollowsPointer() = %t, Dragging() = %t, want false, false", v.FollowsPointer(), v.Dragging())
	}
}

func TestZoomInShrinksByFactor(t *testing.T) {
	v := New()
	v.SetPointer(0.5, 0.5)
	if !v.ZoomIn() {
		t.Fatalf("ZoomIn() = false, want true")
	}
	want := float32(3.1 * (1 - ZoomFactor))
	size := v.DomainSize()
	if !approx(size[0], want, 1e-5) || !approx(size[1], want, 1e-5) {
		t.Fatalf("DomainSize() = %v, want (%v, %v)", size, want, want)
	}
}

func TestZoomKeepsPointFixedUnderPointer(t *testing.T) {
	v := New()
	v.SetPointer(0.2, 0.9)

	anchor := func() mgl32.Vec2 {
		d, s, m := v.Domain(), v.DomainSize(), v.Mouse()
		return mgl32.Vec2{d[0][0] + m[0]*s[0], d[1][1] - m[1]*s[1]}
	}
	before := anchor()
	for i := 0; i < 10; i++ {
		v.ZoomIn()
	}
	if got := anchor(); !got.ApproxEqualThreshold(before, 1e-5) {
		t.Fatalf("anchor after zoom-in = %v, want %v", got, before)
	}
	for i := 0; i < 4; i++ {
		v.ZoomOut()
	}
	if got := anchor(); !got.ApproxEqualThreshold(before, 1e-5) {
		t.Fatalf("anchor after zoom-out = %v, want %v", got, before)
	}
}

func TestZoomInThenOutRestoresDomain(t *testing.T) {
	v := New()
	v.SetPointer(0.3, 0.7)
	orig := v.Domain()

	v.ZoomIn()
	v.ZoomOut()
	if !domainApprox(v.Domain(), orig, 1e-5) {
		t.Fatalf("Domain() = %v, want %v", v.Domain(), orig)
	}
}

func TestZoomInPrecisionFloor(t *testing.T) {
	v := New()
	v.SetPointer(0.5, 0.5)

	steps := 0
	for v.ZoomIn() {
		steps++
		if steps > 5000 {
			t.Fatalf("zoom-in never reached the precision floor")
		}
	}
	size := v.DomainSize()
	if min(size[0], size[1]) > MinExtent {
		t.Fatalf("DomainSize() = %v, want an axis at or below %v", size, MinExtent)
	}

	at := v.Domain()
	for i := 0; i < 3; i++ {
		if v.ZoomIn() {
			t.Fatalf("ZoomIn() at the floor = true, want false")
		}
		if v.Domain() != at {
			t.Fatalf("Domain() = %v, want unchanged %v", v.Domain(), at)
		}
	}
	if !v.ZoomOut() {
		t.Fatalf("ZoomOut() at the floor = false, want true")
	}
}

func TestZoomOutUpperBound(t *testing.T) {
	v := New()
	v.SetPointer(0.5, 0.5)

	steps := 0
	for v.ZoomOut() {
		steps++
		if steps > 5000 {
			t.Fatalf("zoom-out never reached the upper bound")
		}
	}
	size := v.DomainSize()
	if max(size[0], size[1]) < MaxExtent {
		t.Fatalf("DomainSize() = %v, want an axis at or above %v", size, MaxExtent)
	}
	at := v.Domain()
	if v.ZoomOut() || v.Domain() != at {
		t.Fatalf("ZoomOut() past the bound changed the domain")
	}
}

func TestPan(t *testing.T) {
	v := New()
	if !v.Pan(mgl32.Vec2{0.1, 0.2}) {
		t.Fatalf("Pan() = false, want true")
	}
	want := [2]mgl32.Vec2{
		{-1.55 - 0.31, 1.55 - 0.31},
		{-1.55 + 0.62, 1.55 + 0.62},
	}
	if !domainApprox(v.Domain(), want, 1e-5) {
		t.Fatalf("Domain() = %v, want %v", v.Domain(), want)
	}
	if v.Pan(mgl32.Vec2{}) {
		t.Fatalf("Pan(0, 0) = true, want false")
	}
}

func TestResize(t *testing.T) {
	v := New()
	if !v.Resize(800, 400) {
		t.Fatalf("Resize(800, 400) = false, want true")
	}
	want := [2]mgl32.Vec2{{-1.55, 1.55}, {-0.775, 0.775}}
	if !domainApprox(v.Domain(), want, 1e-5) {
		t.Fatalf("Domain() = %v, want %v", v.Domain(), want)
	}
	if w, h := v.Size(); w != 800 || h != 400 {
		t.Fatalf("Size() = %dx%d, want 800x400", w, h)
	}

	at := v.Domain()
	for _, sz := range [][2]int{{0, 100}, {100, 0}, {0, 0}, {-1, 10}} {
		if v.Resize(sz[0], sz[1]) {
			t.Fatalf("Resize(%d, %d) = true, want false", sz[0], sz[1])
		}
	}
	if v.Domain() != at {
		t.Fatalf("degenerate Resize changed the domain to %v", v.Domain())
	}
}

func TestResizeKeepsVerticalCenter(t *testing.T) {
	v := New()
	v.Pan(mgl32.Vec2{0, 0.25})
	d := v.Domain()
	center := (d[1][0] + d[1][1]) / 2

	v.Resize(1000, 250)
	d = v.Domain()
	if got := (d[1][0] + d[1][1]) / 2; !approx(got, center, 1e-5) {
		t.Fatalf("vertical center = %v, want %v", got, center)
	}
	if got := d[1][1] - d[1][0]; !approx(got, 3.1/4, 1e-5) {
		t.Fatalf("vertical extent = %v, want %v", got, 3.1/4)
	}
}

func TestResetZoomRestoresDefault(t *testing.T) {
	v := New()
	v.SetPointer(0.1, 0.8)
	for i := 0; i < 40; i++ {
		v.ZoomIn()
	}
	v.Pan(mgl32.Vec2{0.3, -0.2})

	v.ResetZoom()
	if v.Domain() != fractal.DefaultDomain {
		t.Fatalf("Domain() = %v, want %v", v.Domain(), fractal.DefaultDomain)
	}

	v.Resize(600, 600)
	v.ZoomOut()
	v.ResetZoom()
	if v.Domain() != fractal.DefaultDomain {
		t.Fatalf("Domain() in square window = %v, want %v", v.Domain(), fractal.DefaultDomain)
	}
}

func TestResetZoomWideWindow(t *testing.T) {
	v := New()
	v.Resize(1600, 600)
	v.ResetZoom()

	size := v.DomainSize()
	if !approx(size[1], 3.1*resetMinHeight, 1e-4) {
		t.Fatalf("vertical extent = %v, want %v", size[1], 3.1*resetMinHeight)
	}
	if !approx(size[0], 6.2, 1e-4) {
		t.Fatalf("horizontal extent = %v, want 6.2", size[0])
	}
	d := v.Domain()
	if !approx(d[0][0]+d[0][1], 0, 1e-5) || !approx(d[1][0]+d[1][1], 0, 1e-5) {
		t.Fatalf("Domain() = %v, want centred on the origin", d)
	}
}

func TestSetMode(t *testing.T) {
	v := New()
	v.SetFollowPointer(true)
	v.SetPointer(0.9, 0.9)

	if !v.SetMode(fractal.ModeMandelbrot) {
		t.Fatalf("SetMode(mandelbrot) = false, want true")
	}
	if v.C() != (mgl32.Vec2{}) {
		t.Fatalf("C() = %v, want (0, 0)", v.C())
	}
	if v.FollowsPointer() {
		t.Fatalf("FollowsPointer() = true after mode switch")
	}
	want := [2]mgl32.Vec2{{-2.15, 0.95}, {-1.55, 1.55}}
	if !domainApprox(v.Domain(), want, 1e-5) {
		t.Fatalf("Domain() = %v, want %v", v.Domain(), want)
	}

	if !v.SetMode(fractal.ModeJulia) {
		t.Fatalf("SetMode(julia) = false, want true")
	}
	if v.C() != fractal.DefaultC {
		t.Fatalf("C() = %v, want %v", v.C(), fractal.DefaultC)
	}
	if v.Domain() != fractal.DefaultDomain {
		t.Fatalf("Domain() = %v, want %v", v.Domain(), fractal.DefaultDomain)
	}

	if v.SetMode(fractal.Mode(7)) {
		t.Fatalf("SetMode(7) = true, want false")
	}
}

func TestSetModeJuliaRestoresParameterAfterPointerFollow(t *testing.T) {
	v := New()
	v.ToggleFollowPointer()
	v.SetPointer(0.1, 0.2)
	if v.C() == fractal.DefaultC {
		t.Fatalf("C() did not follow the pointer")
	}
	v.SetMode(fractal.ModeJulia)
	if v.C() != fractal.DefaultC {
		t.Fatalf("C() = %v, want %v", v.C(), fractal.DefaultC)
	}
}

func TestToggleFollowPointer(t *testing.T) {
	v := New()
	v.SetPointer(0.5, 0.5)
	for i := 0; i < 10; i++ {
		v.ZoomIn()
	}

	if !v.ToggleFollowPointer() || !v.FollowsPointer() {
		t.Fatalf("ToggleFollowPointer() did not enable following")
	}
	if v.Domain() != fractal.DefaultDomain {
		t.Fatalf("enabling while zoomed in left Domain() = %v, want %v", v.Domain(), fractal.DefaultDomain)
	}

	if !v.ToggleFollowPointer() || v.FollowsPointer() {
		t.Fatalf("ToggleFollowPointer() did not disable following")
	}

	v.SetMode(fractal.ModeMandelbrot)
	if v.ToggleFollowPointer() {
		t.Fatalf("ToggleFollowPointer() in mandelbrot mode = true, want false")
	}
	if v.FollowsPointer() {
		t.Fatalf("FollowsPointer() = true in mandelbrot mode")
	}
}

func TestToggleFollowKeepsZoomedOutDomain(t *testing.T) {
	v := New()
	v.SetPointer(0.5, 0.5)
	v.ZoomOut()
	at := v.Domain()
	v.ToggleFollowPointer()
	if v.Domain() != at {
		t.Fatalf("Domain() = %v, want unchanged %v", v.Domain(), at)
	}
}

func TestSetPointerFollowsParameter(t *testing.T) {
	v := New()
	v.SetPointer(0.75, 0.25)
	if v.C() != fractal.DefaultC {
		t.Fatalf("C() = %v without following, want %v", v.C(), fractal.DefaultC)
	}

	v.SetFollowPointer(true)
	v.SetPointer(0.75, 0.25)
	if want := (mgl32.Vec2{0.5, -0.5}); v.C() != want {
		t.Fatalf("C() = %v, want %v", v.C(), want)
	}

	v.BeginDrag()
	v.SetPointer(0, 1)
	if want := (mgl32.Vec2{0.5, -0.5}); v.C() != want {
		t.Fatalf("C() = %v while dragging, want %v", v.C(), want)
	}
}

func TestDragPansWithPointer(t *testing.T) {
	v := New()
	v.SetPointer(0.5, 0.5)
	v.BeginDrag()
	v.SetPointer(0.6, 0.5)

	if !v.Update(time.Second) {
		t.Fatalf("Update() while dragging = false, want true")
	}
	if v.Time() != 1 {
		t.Fatalf("Time() = %v, want 1", v.Time())
	}
	want := [2]mgl32.Vec2{{-1.55 - 0.31, 1.55 - 0.31}, {-1.55, 1.55}}
	if !domainApprox(v.Domain(), want, 1e-5) {
		t.Fatalf("Domain() = %v, want %v", v.Domain(), want)
	}
	if v.Update(2 * time.Second) {
		t.Fatalf("Update() without pointer movement = true, want false")
	}

	v.EndDrag()
	v.SetPointer(0.9, 0.9)
	if v.Update(3 * time.Second) {
		t.Fatalf("Update() after EndDrag = true, want false")
	}
}

func TestParamsSnapshot(t *testing.T) {
	v := New()
	v.SetMode(fractal.ModeMandelbrot)
	v.SetPointer(0.25, 0.5)
	v.Update(1500 * time.Millisecond)

	p := v.Params()
	if p.Mode != fractal.ModeMandelbrot || p.Mouse != (mgl32.Vec2{0.25, 0.5}) || p.Time != 1.5 {
		t.Fatalf("Params() = %+v", p)
	}
	if p.Domain != v.Domain() {
		t.Fatalf("Params().Domain = %v, want %v", p.Domain, v.Domain())
	}
}

func TestFrame(t *testing.T) {
	p := Frame(800, 400, fractal.ModeMandelbrot, fractal.Complex{Real: 1, Imag: 1})
	if p.Mode != fractal.ModeMandelbrot || p.C != (mgl32.Vec2{}) {
		t.Fatalf("Frame(mandelbrot) = %+v, want c = 0", p)
	}
	if p.Domain[0][0] >= fractal.DefaultDomain[0][0] {
		t.Fatalf("Frame(mandelbrot) domain %v is not shifted left", p.Domain)
	}
	if got := p.DomainSize(); !approx(got[0]/got[1], 2, 1e-4) {
		t.Fatalf("Frame(800, 400) aspect = %v, want 2", got[0]/got[1])
	}

	p = Frame(300, 300, fractal.ModeJulia, fractal.Complex{Real: 0.285, Imag: 0.01})
	if p.C != (mgl32.Vec2{0.285, 0.01}) {
		t.Fatalf("Frame(julia).C = %v, want (0.285, 0.01)", p.C)
	}
	if p.Domain != fractal.DefaultDomain {
		t.Fatalf("Frame(julia).Domain = %v, want %v", p.Domain, fractal.DefaultDomain)
	}
}

package view

import (
	"math"
	"math/rand"
	"testing"

	"dasa.cc/hyperbolic/geom"
	"github.com/go-gl/mathgl/mgl64"
)

func equal(a, b geom.Isometry, tol float64) bool {
	for i := range a {
		if math.Abs(a[i]-b[i]) > tol {
			return false
		}
	}
	return true
}

func TestStates(t *testing.T) {
	c := New()
	if c.State() != Idle {
		t.Fatalf("new controller is %v", c.State())
	}
	if c.UpdateDelta(10, 10) {
		t.Fatal("idle controller moved")
	}
	if c.Transform() != geom.Identity() {
		t.Fatal("idle controller changed transform")
	}

	c.DragStart(0, 0)
	if c.State() != Dragging {
		t.Fatalf("after DragStart controller is %v", c.State())
	}
	if !c.UpdateDelta(30, 0) {
		t.Fatal("drag did not move view")
	}
	if c.UpdateDelta(30, 0) {
		t.Fatal("repeated position moved view")
	}
	moved := c.Transform()

	c.ResetDelta()
	if c.State() != Idle || c.Transform() != moved {
		t.Fatal("ResetDelta dropped the view")
	}
	if c.UpdateDelta(90, 90) || c.Transform() != moved {
		t.Fatal("moves after ResetDelta changed the view")
	}

	// a new drag starts from its own origin, no jump
	c.DragStart(500, 500)
	if c.Transform() != moved {
		t.Fatal("DragStart moved the view")
	}

	c.Reset()
	if c.State() != Idle || c.Transform() != geom.Identity() {
		t.Fatal("Reset did not restore identity")
	}
}

func TestDragDirection(t *testing.T) {
	c := New()
	c.DragStart(100, 100)
	c.UpdateDelta(140, 100)
	p := geom.Apply(c.Transform(), geom.Origin)
	if !(p[0] > 0) || math.Abs(p[1]) > 1e-12 {
		t.Errorf("drag right moved origin to %v", p)
	}

	c.Reset()
	c.DragStart(100, 100)
	c.UpdateDelta(100, 60)
	p = geom.Apply(c.Transform(), geom.Origin)
	if !(p[1] > 0) || math.Abs(p[0]) > 1e-12 {
		t.Errorf("drag up moved origin to %v", p)
	}

	// near the center the origin follows the pointer in the Poincaré disk
	c.Reset()
	c.DragStart(320, 240)
	c.UpdateDelta(321, 240)
	x, _ := geom.Apply(c.Transform(), geom.Origin).Disk()
	if want := 2.0 / 480; math.Abs(x-want) > 1e-6 {
		t.Errorf("one pixel drag moved origin to %v, want %v", x, want)
	}
}

func TestDragSequence(t *testing.T) {
	const dx, dy = 5.0, 3.0

	c := New()
	c.SetViewport(800, 600)
	c.DragStart(100, 100)
	for i := 1; i <= 10; i++ {
		c.UpdateDelta(100+dx*float64(i), 100+dy*float64(i))
	}
	c.ResetDelta()
	c.DragStart(100, 100)

	d := math.Hypot(dx, dy) * 2 / 600 * DefaultSensitivity
	want := geom.Identity()
	for i := 0; i < 10; i++ {
		want = geom.Compose(want, geom.Translation(dx, -dy, d))
	}
	if !equal(c.Transform(), want, 1e-12) {
		t.Errorf("have %v, want %v", c.Transform(), want)
	}

	// one coarse event covers the same motion
	b := New()
	b.SetViewport(800, 600)
	b.DragStart(100, 100)
	b.UpdateDelta(100+10*dx, 100+10*dy)
	if !equal(b.Transform(), c.Transform(), 1e-12) {
		t.Errorf("batched drag %v, fine drag %v", b.Transform(), c.Transform())
	}
}

func TestLongDrag(t *testing.T) {
	r := rand.New(rand.NewSource(1))
	c := New()
	c.DragStart(0, 0)
	x, y := 0.0, 0.0
	for i := 0; i < 10000; i++ {
		x += r.NormFloat64() * 4
		y += r.NormFloat64() * 4
		c.UpdateDelta(x, y)
	}
	t.Logf("drift after 10000 moves %.3g", geom.Drift(c.Transform()))
	if err := geom.Check(c.Transform()); err != nil {
		t.Fatal(err)
	}
	p := geom.Apply(c.Transform(), geom.Origin)
	if d := p.Drift() / (p[2] * p[2]); d > 1e-9 {
		t.Fatalf("origin drifted off sheet by %v", d)
	}
}

func TestUniform(t *testing.T) {
	c := New()
	c.SetViewport(800, 600)
	c.SetViewport(0, 10)
	if w, h := c.Viewport(); w != 800 || h != 600 {
		t.Fatalf("viewport %vx%v", w, h)
	}
	u := c.Uniform()
	if v := u.Viewport.At(0, 0); math.Abs(float64(v)-0.75) > 1e-6 {
		t.Errorf("viewport x scale %v, want 0.75", v)
	}
	if v := u.Viewport.At(1, 1); v != 1 {
		t.Errorf("viewport y scale %v, want 1", v)
	}

	c.DragStart(0, 0)
	c.UpdateDelta(60, 20)
	u = c.Uniform()
	m := c.Transform().Mat3()
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			if math.Abs(float64(u.Model.At(i, j))-m.At(i, j)) > 1e-6 {
				t.Fatalf("model %v,%v = %v, want %v", i, j, u.Model.At(i, j), m.At(i, j))
			}
		}
	}
	if u.Model.At(3, 3) != 1 {
		t.Errorf("model w = %v", u.Model.At(3, 3))
	}
}

func TestToScreen(t *testing.T) {
	c := New()
	if x, y := c.ToScreen(mgl64.Vec2{0, 0}); x != 320 || y != 240 {
		t.Errorf("center at %v, %v", x, y)
	}
	if x, y := c.ToScreen(mgl64.Vec2{1, 1}); x != 560 || y != 0 {
		t.Errorf("(1, 1) at %v, %v", x, y)
	}
}

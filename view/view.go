// Package view tracks the observer's position in the hyperbolic plane and
// moves it with pointer drags.
package view

import (
	"math"

	"dasa.cc/hyperbolic"
	"dasa.cc/hyperbolic/geom"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/go-gl/mathgl/mgl64"
	"go.uber.org/zap"
)

const (
	// DefaultSensitivity is hyperbolic distance per normalized screen unit;
	// near the view center of the Poincaré disk a drag then keeps pace with
	// the pointer.
	DefaultSensitivity = 2

	// RenormalizeEvery is the number of compositions between
	// re-orthonormalizations of the view.
	RenormalizeEvery = 16

	// drift beyond this before renormalizing is logged
	driftWarn = 1e-6
)

// State is the drag state of a Controller.
type State uint8

const (
	Idle State = iota
	Dragging
)

func (s State) String() string {
	if s == Dragging {
		return "dragging"
	}
	return "idle"
}

// Controller owns the view isometry. Its zero value is not usable; use New.
type Controller struct {
	// Sensitivity scales drag length to translation distance.
	Sensitivity float64

	transform geom.Isometry
	state     State
	last      mgl64.Vec2
	moves     int

	width, height int
}

// New returns an idle controller at the origin with a 640x480 viewport.
func New() *Controller {
	return &Controller{
		Sensitivity: DefaultSensitivity,
		transform:   geom.Identity(),
		width:       640,
		height:      480,
	}
}

// SetViewport sets the drawing surface size in pixels. Non-positive sizes
// are ignored.
func (c *Controller) SetViewport(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	c.width, c.height = width, height
}

// Viewport returns the drawing surface size in pixels.
func (c *Controller) Viewport() (width, height int) { return c.width, c.height }

// Transform returns the current view isometry.
func (c *Controller) Transform() geom.Isometry { return c.transform }

// State returns the drag state.
func (c *Controller) State() State { return c.state }

// DragStart begins a drag at screen position x, y.
func (c *Controller) DragStart(x, y float64) {
	c.state = Dragging
	c.last = mgl64.Vec2{x, y}
}

// UpdateDelta moves the view by the pointer motion since the previous
// position and reports whether the view changed. It does nothing while idle.
func (c *Controller) UpdateDelta(x, y float64) bool {
	if c.state != Dragging {
		return false
	}
	dx, dy := x-c.last[0], y-c.last[1]
	c.last = mgl64.Vec2{x, y}
	return c.Pan(dx, dy)
}

// ResetDelta ends a drag, keeping the view where it is.
func (c *Controller) ResetDelta() { c.state = Idle }

// Reset returns the view to the origin and ends any drag.
func (c *Controller) Reset() {
	c.transform = geom.Identity()
	c.state = Idle
	c.moves = 0
}

// Pan moves the view by a screen motion of dx, dy pixels regardless of
// drag state and reports whether the view changed. Screen y grows down.
func (c *Controller) Pan(dx, dy float64) bool {
	d := math.Hypot(dx, dy) * 2 / float64(c.height) * c.Sensitivity
	if d == 0 {
		return false
	}
	c.transform = geom.Compose(c.transform, geom.Translation(dx, -dy, d))

	c.moves++
	if c.moves%RenormalizeEvery == 0 {
		if drift := geom.Drift(c.transform); drift > driftWarn {
			hyperbolic.Logger().Warn("view drift", zap.Float64("drift", drift), zap.Int("moves", c.moves))
		}
		c.transform = geom.Normalize(c.transform)
	}
	return true
}

// Uniform is the per-frame matrix pair handed to a renderer.
type Uniform struct {
	// Viewport maps normalized coordinates to the drawing surface, keeping
	// pixels square.
	Viewport mgl32.Mat4

	// Model is the view isometry in the upper-left 3x3 block.
	Model mgl32.Mat4
}

// Uniform returns the matrices for the current frame.
func (c *Controller) Uniform() Uniform {
	aspect := float32(c.width) / float32(c.height)
	var m mgl32.Mat3
	for i, v := range c.transform {
		m[i] = float32(v)
	}
	return Uniform{
		Viewport: mgl32.Ortho(-aspect, aspect, -1, 1, -1, 1),
		Model:    m.Mat4(),
	}
}

// ToScreen maps normalized coordinates to pixel coordinates of the viewport.
func (c *Controller) ToScreen(v mgl64.Vec2) (x, y float64) {
	s := float64(c.height) / 2
	return float64(c.width)/2 + v[0]*s, float64(c.height)/2 - v[1]*s
}

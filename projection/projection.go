// Package projection maps points of the hyperboloid to a flat drawing surface.
//
// Projections are pure functions evaluated per frame; switching models never
// requires regenerating a tiling.
package projection

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"dasa.cc/hyperbolic/geom"
	"github.com/go-gl/mathgl/mgl64"
)

var ErrUnknownModel = errors.New("projection: unknown model")

// Model is a projection formula.
type Model uint8

const (
	// Poincare is the conformal disk model, (x, y)/(1 + z).
	Poincare Model = iota

	// Klein is the projective disk model, (x, y)/z; geodesics are straight.
	Klein

	// HalfPlane is the upper half-plane model, the Cayley transform of the
	// Poincaré disk shifted so the view center lands on (0, 0).
	HalfPlane

	// Hyperboloid looks straight down on the sheet, (x, y)/2.
	Hyperboloid

	modelCount
)

// Limit bounds the coordinates of unbounded models.
const Limit = 1e4

var modelNames = [...]string{"poincare", "klein", "halfplane", "hyperboloid"}

// Models returns all models in order.
func Models() []Model { return []Model{Poincare, Klein, HalfPlane, Hyperboloid} }

func (m Model) String() string {
	if m < modelCount {
		return modelNames[m]
	}
	return fmt.Sprintf("Model(%d)", uint8(m))
}

// ParseModel returns the model named s.
func ParseModel(s string) (Model, error) {
	for i, name := range modelNames {
		if strings.EqualFold(s, name) {
			return Model(i), nil
		}
	}
	return 0, fmt.Errorf("%q: %w", s, ErrUnknownModel)
}

func (m Model) MarshalText() ([]byte, error) {
	if !m.Valid() {
		return nil, fmt.Errorf("%v: %w", m, ErrUnknownModel)
	}
	return []byte(m.String()), nil
}

func (m *Model) UnmarshalText(b []byte) (err error) {
	*m, err = ParseModel(string(b))
	return err
}

// Valid reports whether m is one of Models.
func (m Model) Valid() bool { return m < modelCount }

// Bounded reports whether m maps the whole plane into the unit disk.
func (m Model) Bounded() bool { return m == Poincare || m == Klein }

// Project returns the drawing-surface coordinates of p seen through view.
func Project(m Model, p geom.Point, view geom.Isometry) mgl64.Vec2 {
	return m.Project(geom.Apply(view, p))
}

// Project returns the drawing-surface coordinates of p, already in the
// observer's frame.
func (m Model) Project(p geom.Point) mgl64.Vec2 {
	x, y, z := p[0], p[1], p[2]
	switch m {
	case Klein:
		return mgl64.Vec2{x / z, y / z}
	case HalfPlane:
		u, v := x/(1+z), y/(1+z)
		// i(1+w)/(1-w)
		d := (1-u)*(1-u) + v*v
		if d == 0 {
			return mgl64.Vec2{0, Limit}
		}
		re := -2 * v / d
		im := (1 - u*u - v*v) / d
		return mgl64.Vec2{clamp(re), clamp(im - 1)}
	case Hyperboloid:
		return mgl64.Vec2{clamp(x / 2), clamp(y / 2)}
	default:
		return mgl64.Vec2{x / (1 + z), y / (1 + z)}
	}
}

func clamp(v float64) float64 { return math.Max(-Limit, math.Min(Limit, v)) }

package geom

import (
	"errors"
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Tolerance is the largest Drift an isometry may carry after Normalize.
const Tolerance = 1e-9

// ErrNumericDrift is reported by Check for a matrix that no longer preserves
// the Lorentz form.
var ErrNumericDrift = errors.New("geom: numeric drift")

// Isometry is a 3x3 matrix preserving the Lorentz form, Mᵀ J M = J with
// J = diag(1, 1, -1).
type Isometry mgl64.Mat3

// Identity returns the identity isometry.
func Identity() Isometry { return Isometry(mgl64.Ident3()) }

// Mat3 returns a as a plain matrix.
func (a Isometry) Mat3() mgl64.Mat3 { return mgl64.Mat3(a) }

// Compose returns a followed by b, the matrix product b·a.
func Compose(a, b Isometry) Isometry {
	return Isometry(mgl64.Mat3(b).Mul3(mgl64.Mat3(a)))
}

// Invert returns the inverse of a, J aᵀ J.
func Invert(a Isometry) Isometry {
	m := mgl64.Mat3(a).Transpose()
	for i := 0; i < 2; i++ {
		m.Set(i, 2, -m.At(i, 2))
		m.Set(2, i, -m.At(2, i))
	}
	return Isometry(m)
}

// Apply returns p transformed by a.
func Apply(a Isometry, p Point) Point {
	return Point(mgl64.Mat3(a).Mul3x1(mgl64.Vec3(p)))
}

// Translation returns the translation along the geodesic through Origin in
// direction (dx, dy) by hyperbolic distance d. A zero direction returns the
// identity.
func Translation(dx, dy, d float64) Isometry {
	l := math.Hypot(dx, dy)
	if l == 0 || d == 0 {
		return Identity()
	}
	ux, uy := dx/l, dy/l
	c, s := math.Cosh(d), math.Sinh(d)
	return Isometry{
		1 + (c-1)*ux*ux, (c - 1) * ux * uy, s * ux,
		(c - 1) * ux * uy, 1 + (c-1)*uy*uy, s * uy,
		s * ux, s * uy, c,
	}
}

// TranslationTo returns the translation taking Origin to p.
func TranslationTo(p Point) Isometry {
	x, y, z := p[0], p[1], p[2]
	k := 1 / (1 + z)
	return Isometry{
		1 + x*x*k, x * y * k, x,
		x * y * k, 1 + y*y*k, y,
		x, y, z,
	}
}

// Rotation returns the rotation about Origin by angle radians.
func Rotation(angle float64) Isometry { return Isometry(mgl64.Rotate3DZ(angle)) }

// Reflection returns the reflection in the geodesic orthogonal to the
// space-like normal n. The normal need not be unit length; a normal that is
// not space-like returns the identity.
func Reflection(n Point) Isometry {
	nn := Lorentz(n, n)
	if !(nn > 0) {
		return Identity()
	}
	s := 1 / math.Sqrt(nn)
	n = Point{n[0] * s, n[1] * s, n[2] * s}
	jn := [3]float64{n[0], n[1], -n[2]}

	var m mgl64.Mat3
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			v := -2 * n[i] * jn[j]
			if i == j {
				v++
			}
			m.Set(i, j, v)
		}
	}
	return Isometry(m)
}

// Normalize projects a back onto the isometries with a Lorentz Gram-Schmidt
// over its columns, time-like column first.
func Normalize(a Isometry) Isometry {
	m := mgl64.Mat3(a)
	c0, c1, c2 := Point(m.Col(0)), Point(m.Col(1)), Point(m.Col(2))

	c2 = c2.Normalize()
	c0 = unit(add(c0, c2, Lorentz(c0, c2)))
	c1 = add(c1, c2, Lorentz(c1, c2))
	c1 = unit(add(c1, c0, -Lorentz(c1, c0)))

	return Isometry(mgl64.Mat3FromCols(mgl64.Vec3(c0), mgl64.Vec3(c1), mgl64.Vec3(c2)))
}

// add returns a + s*b.
func add(a, b Point, s float64) Point {
	return Point{a[0] + s*b[0], a[1] + s*b[1], a[2] + s*b[2]}
}

// unit scales the space-like vector a to Lorentz length one.
func unit(a Point) Point {
	n := Lorentz(a, a)
	if !(n > 0) {
		return a
	}
	s := 1 / math.Sqrt(n)
	return Point{a[0] * s, a[1] * s, a[2] * s}
}

// Drift returns the largest deviation of aᵀ J a from J, relative to the
// squared magnitude of the largest entry of a.
func Drift(a Isometry) float64 {
	m := mgl64.Mat3(a)
	var d, k float64
	for _, v := range m {
		k = math.Max(k, math.Abs(v))
	}
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			v := Lorentz(Point(m.Col(i)), Point(m.Col(j)))
			switch {
			case i == j && i == 2:
				v++
			case i == j:
				v--
			}
			d = math.Max(d, math.Abs(v))
		}
	}
	return d / math.Max(1, k*k)
}

// Check returns an error wrapping ErrNumericDrift if a drifts beyond Tolerance.
func Check(a Isometry) error {
	if d := Drift(a); !(d <= Tolerance) {
		return fmt.Errorf("drift %.3g exceeds %.3g: %w", d, Tolerance, ErrNumericDrift)
	}
	return nil
}

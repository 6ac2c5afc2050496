/* reminders

hyperboloid sheet:  x² + y² - z² = -1, z > 0
lorentz product:    <a,b> = a.x b.x + a.y b.y - a.z b.z
distance:           cosh d(a,b) = -<a,b>
polar:              (sinh d cos θ, sinh d sin θ, cosh d)
poincare disk:      (x, y)/(1+z)
klein disk:         (x, y)/z
geodesic:           g(t) = (sinh((1-t)L) a + sinh(tL) b) / sinh L, L = d(a,b)
*/

// Package geom provides points and isometries of the hyperbolic plane on the
// hyperboloid model.
//
// Coordinates are ordered (x, y, z) with z the time-like axis. The Lorentz
// form is therefore diag(1, 1, -1), equivalently diag(-1, 1, 1) over (z, x, y).
package geom

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Point is a point on the upper sheet of the hyperboloid.
type Point mgl64.Vec3

// Origin is the point at the bottom of the sheet.
var Origin = Point{0, 0, 1}

func (p Point) X() float64 { return p[0] }
func (p Point) Y() float64 { return p[1] }
func (p Point) Z() float64 { return p[2] }

// Vec3 returns p as a plain vector.
func (p Point) Vec3() mgl64.Vec3 { return mgl64.Vec3(p) }

// Lorentz returns the Lorentz inner product of a and b.
func Lorentz(a, b Point) float64 { return a[0]*b[0] + a[1]*b[1] - a[2]*b[2] }

// Drift reports how far p is off the sheet.
func (p Point) Drift() float64 { return math.Abs(Lorentz(p, p) + 1) }

// Normalize rescales p back onto the upper sheet. Points with a non time-like
// direction are returned as Origin.
func (p Point) Normalize() Point {
	n := -Lorentz(p, p)
	if !(n > 0) {
		return Origin
	}
	s := 1 / math.Sqrt(n)
	if p[2] < 0 {
		s = -s
	}
	return Point{p[0] * s, p[1] * s, p[2] * s}
}

// PointFromPolar returns the point at hyperbolic distance d from Origin in
// direction angle.
func PointFromPolar(angle, d float64) Point {
	s, c := math.Sinh(d), math.Cosh(d)
	return Point{s * math.Cos(angle), s * math.Sin(angle), c}
}

// PointFromKlein lifts a point of the open unit disk in the Klein model.
func PointFromKlein(x, y float64) Point {
	w := 1 / math.Sqrt(1-x*x-y*y)
	return Point{x * w, y * w, w}
}

// PointFromDisk lifts a point of the open unit disk in the Poincaré model.
func PointFromDisk(x, y float64) Point {
	r2 := x*x + y*y
	d := 1 - r2
	return Point{2 * x / d, 2 * y / d, (1 + r2) / d}
}

// Disk returns the Poincaré disk coordinates of p.
func (p Point) Disk() (x, y float64) { return p[0] / (1 + p[2]), p[1] / (1 + p[2]) }

// Klein returns the Klein disk coordinates of p.
func (p Point) Klein() (x, y float64) { return p[0] / p[2], p[1] / p[2] }

// Geodesic returns the point a fraction t of the way from a to b along the
// geodesic joining them.
func Geodesic(a, b Point, t float64) Point {
	l := math.Acosh(math.Max(1, -Lorentz(a, b)))
	if l < 1e-7 {
		return a
	}
	sl := math.Sinh(l)
	u, v := math.Sinh((1-t)*l)/sl, math.Sinh(t*l)/sl
	return Point{u*a[0] + v*b[0], u*a[1] + v*b[1], u*a[2] + v*b[2]}
}

// Centroid returns the Lorentz barycenter of pts on the sheet.
func Centroid(pts ...Point) Point {
	var c Point
	for _, p := range pts {
		c[0] += p[0]
		c[1] += p[1]
		c[2] += p[2]
	}
	return c.Normalize()
}

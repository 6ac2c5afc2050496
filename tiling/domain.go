package tiling

import (
	"math"

	"dasa.cc/hyperbolic/geom"
)

// Domain is the (2,p,q) Schwarz triangle with its right angle at the
// midpoint of a tile edge, angle π/p at the tile center placed on the origin,
// and angle π/q at a tile vertex.
type Domain struct {
	P, Q int

	// Inradius is the distance from tile center to edge midpoint,
	// Circumradius from tile center to vertex and HalfEdge from edge
	// midpoint to vertex.
	Inradius, Circumradius, HalfEdge float64

	// Mirrors reflect in the triangle sides: along the x axis through the
	// center, through the center at angle π/p, and through the edge
	// midpoint perpendicular to the x axis.
	Mirrors [3]geom.Isometry
}

// NewDomain returns the fundamental triangle of {p,q}.
func NewDomain(p, q int) (*Domain, error) {
	if err := (Params{P: p, Q: q}).Validate(); err != nil {
		return nil, err
	}
	a, b := math.Pi/float64(p), math.Pi/float64(q)
	r := math.Acosh(math.Cos(b) / math.Sin(a))
	R := math.Acosh(1 / math.Tan(a) / math.Tan(b))
	return &Domain{
		P:            p,
		Q:            q,
		Inradius:     r,
		Circumradius: R,
		HalfEdge:     math.Acosh(math.Cosh(R) / math.Cosh(r)),
		Mirrors: [3]geom.Isometry{
			geom.Reflection(geom.Point{0, 1, 0}),
			geom.Reflection(geom.Point{-math.Sin(a), math.Cos(a), 0}),
			geom.Reflection(geom.Point{math.Cosh(r), 0, math.Sinh(r)}),
		},
	}, nil
}

// Rotation turns the central tile onto itself by one step of 2π/p.
func (d *Domain) Rotation() geom.Isometry { return geom.Compose(d.Mirrors[0], d.Mirrors[1]) }

// VertexRotation turns about the first tile vertex by 2π/q.
func (d *Domain) VertexRotation() geom.Isometry { return geom.Compose(d.Mirrors[1], d.Mirrors[2]) }

// Steps returns the p half-turns about the edge midpoints of the central
// tile; each carries the central tile onto one of its edge neighbors.
func (d *Domain) Steps() []geom.Isometry {
	half := geom.Compose(d.Mirrors[0], d.Mirrors[2])
	rot := d.Rotation()
	steps := make([]geom.Isometry, d.P)
	k := geom.Identity()
	for i := range steps {
		steps[i] = geom.Normalize(geom.Compose(geom.Compose(geom.Invert(k), half), k))
		k = geom.Compose(k, rot)
	}
	return steps
}

// Corners returns the vertices of the central tile, counter-clockwise
// starting at angle π/p.
func (d *Domain) Corners() []geom.Point {
	a := math.Pi / float64(d.P)
	pts := make([]geom.Point, d.P)
	for i := range pts {
		pts[i] = geom.PointFromPolar(a+2*a*float64(i), d.Circumradius)
	}
	return pts
}

// Truncation returns the distance along each edge at which a corner is cut
// so the truncated tile and the vertex figure have equal sides.
func (d *Domain) Truncation() float64 {
	l := 2 * d.HalfEdge
	c := math.Cos(2 * math.Pi / float64(d.Q))
	f := func(t float64) float64 {
		ch, sh := math.Cosh(t), math.Sinh(t)
		return math.Cosh(l-2*t) - (ch*ch - sh*sh*c)
	}
	lo, hi := 0.0, d.HalfEdge
	for i := 0; i < 64; i++ {
		mid := (lo + hi) / 2
		if f(mid) > 0 {
			lo = mid
		} else {
			hi = mid
		}
	}
	return (lo + hi) / 2
}

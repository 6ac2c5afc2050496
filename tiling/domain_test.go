package tiling

import (
	"math"
	"testing"

	"dasa.cc/hyperbolic/geom"
)

func fixes(a geom.Isometry, p geom.Point) bool { return same(geom.Apply(a, p), p) }

func same(p, q geom.Point) bool {
	for i := range p {
		if math.Abs(p[i]-q[i]) > 1e-9*math.Max(1, math.Abs(p[i])) {
			return false
		}
	}
	return true
}

func power(a geom.Isometry, n int) geom.Isometry {
	x := geom.Identity()
	for i := 0; i < n; i++ {
		x = geom.Compose(x, a)
	}
	return x
}

func TestDomain(t *testing.T) {
	for _, pq := range [][2]int{{7, 3}, {3, 7}, {5, 4}, {4, 6}, {12, 12}} {
		d, err := NewDomain(pq[0], pq[1])
		if err != nil {
			t.Fatal(err)
		}
		t.Logf("{%v,%v} inradius %.6f circumradius %.6f half edge %.6f", d.P, d.Q, d.Inradius, d.Circumradius, d.HalfEdge)

		sample := geom.PointFromPolar(0.3, 0.4)
		for i, m := range d.Mirrors {
			if err := geom.Check(m); err != nil {
				t.Errorf("mirror %v: %v", i, err)
			}
			if !fixes(geom.Compose(m, m), sample) {
				t.Errorf("mirror %v is not an involution", i)
			}
		}

		corners := d.Corners()
		if !fixes(d.Rotation(), geom.Origin) || !fixes(power(d.Rotation(), d.P), sample) {
			t.Errorf("{%v,%v} tile rotation order is not %v", d.P, d.Q, d.P)
		}
		if !fixes(d.VertexRotation(), corners[0]) || !fixes(power(d.VertexRotation(), d.Q), sample) {
			t.Errorf("{%v,%v} vertex rotation order is not %v", d.P, d.Q, d.Q)
		}

		for i, s := range d.Steps() {
			c := geom.Apply(s, geom.Origin)
			if dist := math.Acosh(-geom.Lorentz(c, geom.Origin)); math.Abs(dist-2*d.Inradius) > 1e-9 {
				t.Errorf("step %v moves center by %v, want %v", i, dist, 2*d.Inradius)
			}
			if !fixes(geom.Compose(s, s), sample) {
				t.Errorf("step %v is not a half-turn", i)
			}
			// the half-turn swaps the corners of the shared edge
			a, b := corners[i], corners[(i+len(corners)-1)%len(corners)]
			if !same(geom.Apply(s, a), b) || !same(geom.Apply(s, b), a) {
				t.Errorf("step %v does not cross edge %v", i, i)
			}
		}
	}
}

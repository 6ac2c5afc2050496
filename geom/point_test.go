package geom

import (
	"math"
	"testing"
)

func TestModels(t *testing.T) {
	tests := []struct{ x, y float64 }{
		{0, 0},
		{0.5, 0},
		{-0.3, 0.4},
		{0.1, -0.95},
	}
	for _, tt := range tests {
		p := PointFromDisk(tt.x, tt.y)
		if d := p.Drift(); d > 1e-9 {
			t.Errorf("PointFromDisk(%v, %v) drift %v", tt.x, tt.y, d)
		}
		if x, y := p.Disk(); math.Abs(x-tt.x) > 1e-9 || math.Abs(y-tt.y) > 1e-9 {
			t.Errorf("Disk round trip (%v, %v) -> (%v, %v)", tt.x, tt.y, x, y)
		}

		q := PointFromKlein(tt.x, tt.y)
		if d := q.Drift(); d > 1e-9 {
			t.Errorf("PointFromKlein(%v, %v) drift %v", tt.x, tt.y, d)
		}
		if x, y := q.Klein(); math.Abs(x-tt.x) > 1e-9 || math.Abs(y-tt.y) > 1e-9 {
			t.Errorf("Klein round trip (%v, %v) -> (%v, %v)", tt.x, tt.y, x, y)
		}
	}
}

func TestGeodesic(t *testing.T) {
	a, b := PointFromPolar(0, 1), PointFromPolar(2, 1.5)
	d := math.Acosh(-Lorentz(a, b))
	prev := a
	for i := 1; i <= 8; i++ {
		p := Geodesic(a, b, float64(i)/8)
		if dr := p.Drift(); dr > 1e-9 {
			t.Fatalf("point %v off sheet by %v", i, dr)
		}
		step := math.Acosh(math.Max(1, -Lorentz(prev, p)))
		if math.Abs(step-d/8) > 1e-7 {
			t.Fatalf("step %v has length %v, want %v", i, step, d/8)
		}
		prev = p
	}
	if !near(prev, b, 1e-9) {
		t.Errorf("Geodesic(a, b, 1) = %v, want %v", prev, b)
	}
	if p := Geodesic(a, a, 0.5); p != a {
		t.Errorf("degenerate geodesic gave %v", p)
	}
}

func TestCentroid(t *testing.T) {
	var pts []Point
	for i := 0; i < 7; i++ {
		pts = append(pts, PointFromPolar(float64(i)*2*math.Pi/7, 0.8))
	}
	if c := Centroid(pts...); !near(c, Origin, 1e-12) {
		t.Errorf("centroid of regular heptagon = %v", c)
	}

	a := Apply(Translation(1, 1, 2), Centroid(pts...))
	for i := range pts {
		pts[i] = Apply(Translation(1, 1, 2), pts[i])
	}
	if c := Centroid(pts...); !near(c, a, 1e-9) {
		t.Errorf("centroid does not commute with isometries: %v != %v", c, a)
	}
}

func TestNormalizePoint(t *testing.T) {
	p := PointFromPolar(1, 2)
	q := Point{p[0] * 3, p[1] * 3, p[2] * 3}.Normalize()
	if !near(p, q, 1e-12) {
		t.Errorf("have %v, want %v", q, p)
	}
	if q := (Point{1, 0, 0}).Normalize(); q != Origin {
		t.Errorf("space-like vector normalized to %v", q)
	}
}

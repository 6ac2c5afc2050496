package projection

import (
	"errors"
	"math"
	"testing"

	"dasa.cc/hyperbolic/geom"
	"dasa.cc/hyperbolic/tiling"
)

func TestParseModel(t *testing.T) {
	for _, m := range Models() {
		have, err := ParseModel(m.String())
		if err != nil || have != m {
			t.Errorf("ParseModel(%q) = %v, %v", m, have, err)
		}
	}
	if _, err := ParseModel("gans"); !errors.Is(err, ErrUnknownModel) {
		t.Errorf("have %v, want %v", err, ErrUnknownModel)
	}
	var m Model
	if err := m.UnmarshalText([]byte("Klein")); err != nil || m != Klein {
		t.Errorf("UnmarshalText(Klein) = %v, %v", m, err)
	}
	if _, err := Model(9).MarshalText(); !errors.Is(err, ErrUnknownModel) {
		t.Errorf("have %v, want %v", err, ErrUnknownModel)
	}
}

func TestDiskBound(t *testing.T) {
	for _, pq := range [][2]int{{7, 3}, {3, 7}, {5, 4}, {4, 5}, {8, 8}} {
		m, err := tiling.Generate(tiling.Params{P: pq[0], Q: pq[1], Depth: 3})
		if err != nil {
			t.Fatal(err)
		}
		for _, model := range []Model{Poincare, Klein} {
			for i, v := range m.Vertices {
				if n := Project(model, v.Pos, geom.Identity()).Len(); !(n < 1) {
					t.Fatalf("{%v,%v} %v: vertex %v projects to norm %v", pq[0], pq[1], model, i, n)
				}
			}
		}
	}
}

func TestKleinPoincare(t *testing.T) {
	for _, d := range []float64{0, 0.5, 1, 3, 6} {
		p := geom.PointFromPolar(1.1, d)
		w, k := Poincare.Project(p), Klein.Project(p)
		want := w.Mul(2 / (1 + w.Dot(w)))
		if !k.ApproxEqualThreshold(want, 1e-12) {
			t.Errorf("distance %v: klein %v, want %v", d, k, want)
		}
	}
}

func TestHalfPlane(t *testing.T) {
	if c := HalfPlane.Project(geom.Origin); !c.ApproxEqual(c.Mul(0)) {
		t.Errorf("origin projects to %v", c)
	}
	for _, d := range []float64{0.5, 1, 2, 4} {
		for _, a := range []float64{0, 1, 2, 3, 4, 5, 6} {
			v := HalfPlane.Project(geom.PointFromPolar(a, d))
			if v[1] < -1 {
				t.Errorf("(%v, %v) projects below the boundary: %v", a, d, v)
			}
		}
		// the geodesic along the x axis is a vertical line
		if v := HalfPlane.Project(geom.PointFromPolar(0, d)); math.Abs(v[0]) > 1e-12 {
			t.Errorf("x axis point at %v projects to %v", d, v)
		}
	}
	if v := HalfPlane.Project(geom.PointFromPolar(0, 40)); v[1] > Limit {
		t.Errorf("unclamped %v", v)
	}
}

func TestViewCenter(t *testing.T) {
	p := geom.PointFromPolar(2, 1.5)
	view := geom.Invert(geom.TranslationTo(p))
	for _, m := range Models() {
		if v := Project(m, p, view); v.Len() > 1e-9 {
			t.Errorf("%v: view center projects to %v", m, v)
		}
	}
}

func TestHyperboloid(t *testing.T) {
	p := geom.PointFromPolar(0.25, 1)
	v := Hyperboloid.Project(p)
	if math.Abs(v[0]-p[0]/2) > 1e-15 || math.Abs(v[1]-p[1]/2) > 1e-15 {
		t.Errorf("have %v for %v", v, p)
	}
	if Hyperboloid.Bounded() || HalfPlane.Bounded() || !Poincare.Bounded() {
		t.Error("Bounded disagrees with models")
	}
}

func BenchmarkProject(b *testing.B) {
	p := geom.PointFromPolar(1, 2)
	view := geom.Translation(1, 1, 0.5)
	for n := 0; n < b.N; n++ {
		_ = Project(Model(n%int(modelCount)), p, view)
	}
}

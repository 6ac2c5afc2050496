package glw

import (
	"testing"

	"dasa.cc/hyperbolic/tiling"
)

func TestPack(t *testing.T) {
	m, err := tiling.Generate(tiling.Params{P: 5, Q: 4, Kind: tiling.KindRectified, Depth: 1})
	if err != nil {
		t.Fatal(err)
	}
	pk := Pack(m)
	if len(pk.Vertices) != Stride*len(m.Vertices) {
		t.Fatalf("have %v floats for %v vertices", len(pk.Vertices), len(m.Vertices))
	}
	for i, v := range m.Vertices {
		rec := pk.Vertices[i*Stride : (i+1)*Stride]
		if rec[2] != float32(v.Pos[2]) || rec[3] != v.Color[0] || rec[5] != v.Color[2] {
			t.Fatalf("vertex %v packed as %v", i, rec)
		}
	}
	if len(pk.Triangles) != len(m.Indices) {
		t.Fatalf("have %v indices, want %v", len(pk.Triangles), len(m.Indices))
	}

	var boundary int
	for _, f := range m.Faces {
		boundary += f.Boundary
	}
	if len(pk.Lines) != 2*boundary {
		t.Fatalf("have %v line indices, want %v", len(pk.Lines), 2*boundary)
	}
	for _, i := range pk.Lines {
		if int(i) >= len(m.Vertices) {
			t.Fatalf("line index %v out of range", i)
		}
	}

	// each outline closes on its own first vertex, never a centroid
	f := m.Faces[0]
	n := 2 * f.Boundary
	if pk.Lines[n-1] != uint32(f.First+1) {
		t.Fatalf("outline of face 0 ends at %v, want %v", pk.Lines[n-1], f.First+1)
	}
	centroids := make(map[uint32]bool)
	for _, f := range m.Faces {
		centroids[uint32(f.First)] = true
	}
	for _, i := range pk.Lines {
		if centroids[i] {
			t.Fatalf("line through centroid %v", i)
		}
	}
}

func BenchmarkPack(b *testing.B) {
	m, err := tiling.Generate(tiling.Params{P: 7, Q: 3, Depth: 5})
	if err != nil {
		b.Fatal(err)
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		Pack(m)
	}
}

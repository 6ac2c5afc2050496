package glw

import "dasa.cc/hyperbolic/tiling"

// Stride is the number of floats per packed vertex: position then color.
const Stride = 6

// Packed is a mesh laid out for upload. Lines holds index pairs tracing
// every face outline.
type Packed struct {
	Vertices  []float32
	Triangles []uint32
	Lines     []uint32
}

// Pack interleaves the vertices of m and collects its outline segments.
func Pack(m *tiling.Mesh) Packed {
	pk := Packed{
		Vertices:  make([]float32, 0, len(m.Vertices)*Stride),
		Triangles: m.Indices,
	}
	for _, v := range m.Vertices {
		pk.Vertices = append(pk.Vertices,
			float32(v.Pos[0]), float32(v.Pos[1]), float32(v.Pos[2]),
			v.Color[0], v.Color[1], v.Color[2])
	}
	for _, f := range m.Faces {
		first, n := uint32(f.First+1), uint32(f.Boundary)
		for i := uint32(0); i < n; i++ {
			pk.Lines = append(pk.Lines, first+i, first+(i+1)%n)
		}
	}
	return pk
}

package tiling

import (
	"dasa.cc/hyperbolic/geom"
)

// Shape tells tiles apart from the vertex figures some kinds emit.
type Shape uint8

const (
	ShapeTile Shape = iota
	ShapeVertex
)

func (s Shape) String() string {
	if s == ShapeVertex {
		return "vertex"
	}
	return "tile"
}

// Vertex is a mesh vertex on the hyperboloid with an RGB color.
type Vertex struct {
	Pos   geom.Point
	Color [3]float32
}

// Face is one emitted polygon. Its vertices are Vertices[First] for the
// centroid followed by Boundary vertices running around the outline; its
// triangles are Indices[Offset:Offset+3*Boundary].
type Face struct {
	Shape  Shape
	Sides  int
	Ring   int
	Center geom.Point

	First, Boundary int
	Offset          int
}

// Mesh is a triangulated tiling patch.
type Mesh struct {
	Params       Params
	Subdivisions int

	Vertices []Vertex
	Indices  []uint32
	Faces    []Face
}

// Outline returns the boundary positions of face i.
func (m *Mesh) Outline(i int) []geom.Point {
	f := m.Faces[i]
	pts := make([]geom.Point, f.Boundary)
	for j := range pts {
		pts[j] = m.Vertices[f.First+1+j].Pos
	}
	return pts
}

// Triangles returns the number of triangles in m.
func (m *Mesh) Triangles() int { return len(m.Indices) / 3 }

// polygon is a face prototype in the frame of the central tile.
type polygon struct {
	shape   Shape
	sides   int
	center  geom.Point
	outline []geom.Point
}

// newPolygon subdivides each edge of corners into n geodesic segments.
func newPolygon(shape Shape, corners []geom.Point, n int) polygon {
	pg := polygon{
		shape:   shape,
		sides:   len(corners),
		center:  geom.Centroid(corners...),
		outline: make([]geom.Point, 0, len(corners)*n),
	}
	for i, a := range corners {
		b := corners[(i+1)%len(corners)]
		for j := 0; j < n; j++ {
			pg.outline = append(pg.outline, geom.Geodesic(a, b, float64(j)/float64(n)).Normalize())
		}
	}
	return pg
}

// add places pg by x and appends it as a centroid fan.
func (m *Mesh) add(pg polygon, x geom.Isometry, ring int) {
	base, tint := palette(pg.shape, ring)
	f := Face{
		Shape:    pg.shape,
		Sides:    pg.sides,
		Ring:     ring,
		Center:   geom.Apply(x, pg.center),
		First:    len(m.Vertices),
		Boundary: len(pg.outline),
		Offset:   len(m.Indices),
	}
	m.Vertices = append(m.Vertices, Vertex{Pos: f.Center, Color: tint})
	for _, p := range pg.outline {
		m.Vertices = append(m.Vertices, Vertex{Pos: geom.Apply(x, p), Color: base})
	}
	c := uint32(f.First)
	n := uint32(f.Boundary)
	for i := uint32(0); i < n; i++ {
		m.Indices = append(m.Indices, c, c+1+i, c+1+(i+1)%n)
	}
	m.Faces = append(m.Faces, f)
}

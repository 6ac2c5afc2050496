package tiling

import (
	"fmt"
	"math"
	"time"

	"dasa.cc/hyperbolic"
	"dasa.cc/hyperbolic/geom"
	"dasa.cc/hyperbolic/quadtree"
	"go.uber.org/zap"
)

const (
	DefaultMaxDepth     = 8
	DefaultMaxFaces     = 200000
	DefaultMaxSides     = 1024
	DefaultMaxVertices  = 8 << 20
	DefaultSubdivisions = 8

	// coincidence is the relative coordinate difference under which two
	// placed points are taken to be the same.
	coincidence = 1e-7

	// indexLevel buckets the Poincaré disk into cells of 2⁻¹⁹.
	indexLevel = 20
)

// Generator builds meshes within resource bounds. The zero value uses the
// package defaults.
type Generator struct {
	// MaxDepth rejects deeper requests before any work is done.
	MaxDepth int

	// MaxFaces aborts generation once a patch grows past this many faces.
	MaxFaces int

	// MaxSides rejects p or q above it before any work is done.
	MaxSides int

	// MaxVertices rejects params whose central tile alone needs more
	// vertices, and aborts generation once a patch grows past it.
	MaxVertices int

	// Subdivisions splits each polygon edge into this many geodesic
	// segments so edges curve once projected.
	Subdivisions int
}

func (g Generator) withDefaults() Generator {
	if g.MaxDepth <= 0 {
		g.MaxDepth = DefaultMaxDepth
	}
	if g.MaxFaces <= 0 {
		g.MaxFaces = DefaultMaxFaces
	}
	if g.MaxSides <= 0 {
		g.MaxSides = DefaultMaxSides
	}
	if g.MaxVertices <= 0 {
		g.MaxVertices = DefaultMaxVertices
	}
	if g.Subdivisions <= 0 {
		g.Subdivisions = DefaultSubdivisions
	}
	return g
}

// Check validates params against g's bounds without generating anything.
func (g Generator) Check(params Params) error {
	g = g.withDefaults()
	if params.P > g.MaxSides || params.Q > g.MaxSides {
		return fmt.Errorf("{%d,%d} exceeds %d sides: %w", params.P, params.Q, g.MaxSides, ErrInvalidSchlafli)
	}
	if err := params.Validate(); err != nil {
		return err
	}
	if params.Depth > g.MaxDepth {
		return fmt.Errorf("depth %d exceeds %d: %w", params.Depth, g.MaxDepth, ErrDepthTooLarge)
	}
	if n := centralVertices(params, g.Subdivisions); n > float64(g.MaxVertices) {
		return fmt.Errorf("%v needs %.0f vertices at depth 0, limit %d: %w", params, n, g.MaxVertices, ErrDepthTooLarge)
	}
	return nil
}

// centralVertices counts the vertices emitted for the central tile alone.
// Floats keep the product of large sides and subdivisions from overflowing.
func centralVertices(params Params, n int) float64 {
	p, q, k := float64(params.P), float64(params.Q), float64(n)
	switch params.Kind {
	case KindRegular:
		return p*k + 1
	case KindTruncated:
		return 2*p*k + 1 + p*(q*k+1)
	default:
		return p*k + 1 + p*(q*k+1)
	}
}

// Generate returns the patch of params.Depth rings around the central tile.
func Generate(params Params) (*Mesh, error) { return Generator{}.Generate(params) }

// Generate returns the patch of params.Depth rings around the central tile.
// Invalid params or a patch beyond g's bounds return an error and no mesh.
func (g Generator) Generate(params Params) (*Mesh, error) {
	g = g.withDefaults()
	if err := g.Check(params); err != nil {
		return nil, err
	}
	start := time.Now()

	dom, err := NewDomain(params.P, params.Q)
	if err != nil {
		return nil, err
	}
	protos := dom.polygons(params.Kind, g.Subdivisions)

	m := &Mesh{Params: params, Subdivisions: g.Subdivisions}
	tiles, faces := newPlacements(), newPlacements()
	emit := func(x geom.Isometry, ring int) error {
		for _, pg := range protos {
			if !faces.add(geom.Apply(x, pg.center)) {
				continue
			}
			if len(m.Faces) >= g.MaxFaces {
				return fmt.Errorf("%v exceeds %d faces: %w", params, g.MaxFaces, ErrDepthTooLarge)
			}
			if len(m.Vertices)+len(pg.outline)+1 > g.MaxVertices {
				return fmt.Errorf("%v exceeds %d vertices: %w", params, g.MaxVertices, ErrDepthTooLarge)
			}
			m.add(pg, x, ring)
		}
		return nil
	}

	tiles.add(geom.Origin)
	if err := emit(geom.Identity(), 0); err != nil {
		return nil, err
	}

	steps := dom.Steps()
	frontier := []geom.Isometry{geom.Identity()}
	for ring := 1; ring <= params.Depth; ring++ {
		var next []geom.Isometry
		for _, e := range frontier {
			for _, s := range steps {
				x := geom.Normalize(geom.Compose(s, e))
				if !tiles.add(geom.Apply(x, geom.Origin)) {
					continue
				}
				next = append(next, x)
				if err := emit(x, ring); err != nil {
					return nil, err
				}
			}
		}
		frontier = next
	}

	hyperbolic.Logger().Debug("tiling generated",
		zap.Stringer("params", params),
		zap.Int("tiles", tiles.idx.Len()),
		zap.Int("faces", len(m.Faces)),
		zap.Int("vertices", len(m.Vertices)),
		zap.Duration("elapsed", time.Since(start)))
	return m, nil
}

// polygons returns the face prototypes kind emits for the central tile.
func (d *Domain) polygons(kind Kind, n int) []polygon {
	corners := d.Corners()
	if kind == KindRegular {
		return []polygon{newPolygon(ShapeTile, corners, n)}
	}

	edge := 2 * d.HalfEdge
	cut := d.HalfEdge
	if kind == KindTruncated {
		cut = d.Truncation()
	}

	var tile []geom.Point
	for i, a := range corners {
		b := corners[(i+1)%len(corners)]
		tile = append(tile, geom.Geodesic(a, b, cut/edge))
		if kind == KindTruncated {
			tile = append(tile, geom.Geodesic(a, b, 1-cut/edge))
		}
	}
	pgs := []polygon{newPolygon(ShapeTile, tile, n)}

	// every vertex-figure point is a fixed number of products from the
	// first corner's frame; nothing accumulates over q or p
	to := geom.TranslationTo(corners[0])
	local := geom.Apply(geom.Invert(to), geom.Geodesic(corners[0], corners[1], cut/edge))
	fig := make([]geom.Point, d.Q)
	for k := range fig {
		turn := geom.Rotation(2 * math.Pi * float64(k) / float64(d.Q))
		fig[k] = geom.Apply(to, geom.Apply(turn, local)).Normalize()
	}
	placed := make([]geom.Point, d.Q)
	for i := 0; i < d.P; i++ {
		turn := geom.Rotation(2 * math.Pi * float64(i) / float64(d.P))
		for k, p := range fig {
			placed[k] = geom.Apply(turn, p).Normalize()
		}
		pgs = append(pgs, newPolygon(ShapeVertex, placed, n))
	}
	return pgs
}

// placements is the set of points already placed, bucketed over the
// Poincaré disk.
type placements struct {
	idx *quadtree.Index[geom.Point]
}

func newPlacements() placements {
	return placements{idx: quadtree.NewIndex[geom.Point](indexLevel)}
}

// add inserts p and reports whether no coincident point was present.
func (s placements) add(p geom.Point) bool {
	x, y := p.Disk()
	nx, ny := (x+1)/2, (y+1)/2
	if _, ok := s.idx.Find(nx, ny, func(q geom.Point) bool { return coincident(p, q) }); ok {
		return false
	}
	s.idx.Insert(nx, ny, p)
	return true
}

// coincident compares coordinates relative to the height of a on the sheet,
// which bounds the magnitude of every coordinate.
func coincident(a, b geom.Point) bool {
	k := coincidence * math.Max(1, math.Abs(a[2]))
	return math.Abs(a[0]-b[0]) <= k && math.Abs(a[1]-b[1]) <= k && math.Abs(a[2]-b[2]) <= k
}

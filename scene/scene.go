// Package scene holds what is on screen: tiling parameters and their mesh,
// the projection model and the view.
package scene

import (
	"fmt"
	"time"

	"dasa.cc/hyperbolic"
	"dasa.cc/hyperbolic/projection"
	"dasa.cc/hyperbolic/tiling"
	"dasa.cc/hyperbolic/view"
	"go.uber.org/zap"
)

var now = time.Now

// Scene is owned by a single goroutine; it is not safe for concurrent use.
type Scene struct {
	// Debounce delays mesh rebuilds until tiling parameters have been
	// stable this long. Zero rebuilds on every change.
	Debounce time.Duration

	gen   tiling.Generator
	model projection.Model
	view  *view.Controller

	params  tiling.Params
	mesh    *tiling.Mesh
	version uint64

	pending   *tiling.Params
	requested time.Time
}

// New returns a scene showing params through model.
func New(gen tiling.Generator, params tiling.Params, model projection.Model) (*Scene, error) {
	if !model.Valid() {
		return nil, fmt.Errorf("%v: %w", model, projection.ErrUnknownModel)
	}
	mesh, err := gen.Generate(params)
	if err != nil {
		return nil, err
	}
	return &Scene{
		gen:     gen,
		model:   model,
		view:    view.New(),
		params:  params,
		mesh:    mesh,
		version: 1,
	}, nil
}

func (s *Scene) Params() tiling.Params        { return s.params }
func (s *Scene) Mesh() *tiling.Mesh           { return s.mesh }
func (s *Scene) Projection() projection.Model { return s.model }
func (s *Scene) View() *view.Controller       { return s.view }
func (s *Scene) Generator() tiling.Generator  { return s.gen }

// Version changes whenever the mesh is replaced.
func (s *Scene) Version() uint64 { return s.version }

// Pending reports whether a tiling change awaits Flush.
func (s *Scene) Pending() bool { return s.pending != nil }

// Requested returns the pending tiling if any, else the current one.
func (s *Scene) Requested() tiling.Params {
	if s.pending != nil {
		return *s.pending
	}
	return s.params
}

// SetTiling validates params and rebuilds the mesh, or schedules the
// rebuild if Debounce is set. On error the scene is left unchanged.
func (s *Scene) SetTiling(params tiling.Params) error {
	if err := s.gen.Check(params); err != nil {
		return err
	}
	if params == s.params {
		s.pending = nil
		return nil
	}
	if s.Debounce > 0 {
		s.pending = &params
		s.requested = now()
		return nil
	}
	return s.rebuild(params)
}

// Flush rebuilds a scheduled tiling change once it has been stable for
// Debounce and reports whether the mesh changed.
func (s *Scene) Flush() (bool, error) {
	if s.pending == nil || now().Sub(s.requested) < s.Debounce {
		return false, nil
	}
	params := *s.pending
	s.pending = nil
	if err := s.rebuild(params); err != nil {
		return false, err
	}
	return true, nil
}

func (s *Scene) rebuild(params tiling.Params) error {
	mesh, err := s.gen.Generate(params)
	if err != nil {
		hyperbolic.Logger().Warn("tiling rejected", zap.Stringer("params", params), zap.Error(err))
		return err
	}
	s.params, s.mesh = params, mesh
	s.version++
	hyperbolic.Logger().Info("tiling", zap.Stringer("params", params), zap.Int("faces", len(mesh.Faces)))
	return nil
}

// SetProjection switches the projection model; the mesh is kept.
func (s *Scene) SetProjection(model projection.Model) error {
	if !model.Valid() {
		return fmt.Errorf("%v: %w", model, projection.ErrUnknownModel)
	}
	s.model = model
	return nil
}

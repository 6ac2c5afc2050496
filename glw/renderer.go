// Package glw draws tiling meshes with OpenGL 4.1 core.
//
// All functions must be called on the thread owning the current context.
package glw

import (
	"dasa.cc/hyperbolic/projection"
	"dasa.cc/hyperbolic/tiling"
	"dasa.cc/hyperbolic/view"

	"github.com/go-gl/gl/v4.1-core/gl"
)

// Renderer holds the program and buffers for one mesh at a time.
type Renderer struct {
	// Outline draws face edges over the fill.
	Outline bool

	prg Program
	loc struct {
		Position, Color Attrib
		Viewport, Model U16fv
		Projection      U1i
		Outline         U1i
	}

	vao     uint32
	vbo     FloatBuffer
	ebo     UintBuffer
	tris    int
	lines   int
	version uint64
}

// NewRenderer builds the shader program and buffers. gl.Init must have
// been called for the current context.
func NewRenderer() (*Renderer, error) {
	r := &Renderer{Outline: true}
	if err := r.prg.Build(vertexShader, fragmentShader); err != nil {
		return nil, err
	}
	r.prg.Unmarshal(&r.loc)

	gl.GenVertexArrays(1, &r.vao)
	gl.BindVertexArray(r.vao)
	r.vbo.Create(gl.STATIC_DRAW, nil)
	r.ebo.Create(gl.STATIC_DRAW, nil)
	gl.BindVertexArray(0)
	return r, nil
}

// Sync uploads mesh if version differs from the last upload and reports
// whether it did.
func (r *Renderer) Sync(version uint64, mesh *tiling.Mesh) bool {
	if version == r.version || mesh == nil {
		return false
	}
	r.Upload(mesh)
	r.version = version
	return true
}

// Upload replaces the buffered mesh.
func (r *Renderer) Upload(mesh *tiling.Mesh) {
	pk := Pack(mesh)
	idx := make([]uint32, 0, len(pk.Triangles)+len(pk.Lines))
	idx = append(append(idx, pk.Triangles...), pk.Lines...)
	r.tris, r.lines = len(pk.Triangles), len(pk.Lines)

	gl.BindVertexArray(r.vao)
	r.vbo.Bind()
	r.vbo.Update(pk.Vertices)
	r.ebo.Bind()
	r.ebo.Update(idx)
	r.loc.Position.Pointer(3, Stride, 0)
	r.loc.Color.Pointer(3, Stride, 3)
	gl.BindVertexArray(0)
}

// Draw clears the viewport and draws the buffered mesh.
func (r *Renderer) Draw(u view.Uniform, model projection.Model) {
	gl.ClearColor(0.149, 0.196, 0.22, 1)
	gl.Clear(gl.COLOR_BUFFER_BIT)
	if r.tris == 0 {
		return
	}

	r.prg.Use()
	r.loc.Viewport.Set(u.Viewport)
	r.loc.Model.Set(u.Model)
	r.loc.Projection.Set(int(model))

	gl.BindVertexArray(r.vao)
	r.loc.Outline.Set(0)
	r.ebo.Draw(gl.TRIANGLES, 0, r.tris)
	if r.Outline {
		r.loc.Outline.Set(1)
		r.ebo.Draw(gl.LINES, r.tris, r.lines)
	}
	gl.BindVertexArray(0)
}

// Delete frees the program and buffers.
func (r *Renderer) Delete() {
	r.vbo.Delete()
	r.ebo.Delete()
	gl.DeleteVertexArrays(1, &r.vao)
	r.prg.Delete()
}

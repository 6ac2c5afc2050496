package glw

import "github.com/go-gl/gl/v4.1-core/gl"

// Attrib is a vertex attribute location.
type Attrib int32

func (a Attrib) Enable()  { gl.EnableVertexAttribArray(uint32(a)) }
func (a Attrib) Disable() { gl.DisableVertexAttribArray(uint32(a)) }

// Pointer enables a and points it at size floats, offset floats into each
// stride-float record of the bound array buffer.
func (a Attrib) Pointer(size, stride, offset int) {
	if a < 0 {
		return
	}
	a.Enable()
	gl.VertexAttribPointerWithOffset(uint32(a), int32(size), gl.FLOAT, false, int32(stride*4), uintptr(offset*4))
}

type U1i int32

func (u U1i) Set(v int) { gl.Uniform1i(int32(u), int32(v)) }

type U16fv int32

func (u U16fv) Set(m [16]float32) { gl.UniformMatrix4fv(int32(u), 1, false, &m[0]) }

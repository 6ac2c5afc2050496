package glw

import "github.com/go-gl/gl/v4.1-core/gl"

// FloatBuffer is an array buffer of float32. Updates that fit the current
// storage reuse it.
type FloatBuffer struct {
	Buffer uint32
	cap    int
	count  int
	usage  uint32
}

func (buf *FloatBuffer) Create(usage uint32, data []float32) {
	buf.usage = usage
	gl.GenBuffers(1, &buf.Buffer)
	buf.Bind()
	buf.Update(data)
}

func (buf *FloatBuffer) Delete()   { gl.DeleteBuffers(1, &buf.Buffer) }
func (buf *FloatBuffer) Bind()     { gl.BindBuffer(gl.ARRAY_BUFFER, buf.Buffer) }
func (buf FloatBuffer) Unbind()    { gl.BindBuffer(gl.ARRAY_BUFFER, 0) }
func (buf FloatBuffer) Count() int { return buf.count }

func (buf *FloatBuffer) Update(data []float32) {
	buf.count = len(data)
	if len(data) == 0 {
		return
	}
	if len(data) <= buf.cap {
		gl.BufferSubData(gl.ARRAY_BUFFER, 0, len(data)*4, gl.Ptr(data))
		return
	}
	buf.cap = len(data)
	gl.BufferData(gl.ARRAY_BUFFER, len(data)*4, gl.Ptr(data), buf.usage)
}

// UintBuffer is an element array buffer of uint32 indices.
type UintBuffer struct {
	Buffer uint32
	cap    int
	count  int
	usage  uint32
}

func (buf *UintBuffer) Create(usage uint32, data []uint32) {
	buf.usage = usage
	gl.GenBuffers(1, &buf.Buffer)
	buf.Bind()
	buf.Update(data)
}

func (buf *UintBuffer) Delete()   { gl.DeleteBuffers(1, &buf.Buffer) }
func (buf *UintBuffer) Bind()     { gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, buf.Buffer) }
func (buf UintBuffer) Unbind()    { gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, 0) }
func (buf UintBuffer) Count() int { return buf.count }

// Draw draws count indices starting at index first.
func (buf UintBuffer) Draw(mode uint32, first, count int) {
	gl.DrawElementsWithOffset(mode, int32(count), gl.UNSIGNED_INT, uintptr(first*4))
}

func (buf *UintBuffer) Update(data []uint32) {
	buf.count = len(data)
	if len(data) == 0 {
		return
	}
	if len(data) <= buf.cap {
		gl.BufferSubData(gl.ELEMENT_ARRAY_BUFFER, 0, len(data)*4, gl.Ptr(data))
		return
	}
	buf.cap = len(data)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(data)*4, gl.Ptr(data), buf.usage)
}

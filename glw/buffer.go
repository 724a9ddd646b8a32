package glw

import "github.com/go-gl/gl/v4.1-core/gl"

type FloatBuffer struct {
	Buffer uint32
	size   int
	usage  uint32
}

func (buf *FloatBuffer) Create(usage uint32, data []float32) {
	buf.usage = usage
	gl.GenBuffers(1, &buf.Buffer)
	buf.Bind()
	buf.Update(data)
}

func (buf *FloatBuffer) Delete() { gl.DeleteBuffers(1, &buf.Buffer) }
func (buf FloatBuffer) Bind()    { gl.BindBuffer(gl.ARRAY_BUFFER, buf.Buffer) }

// Update uploads data, reusing the buffer store if it is large enough.
func (buf *FloatBuffer) Update(data []float32) {
	if len(data) == 0 {
		return
	}
	if n := len(data) * 4; n <= buf.size {
		gl.BufferSubData(gl.ARRAY_BUFFER, 0, n, gl.Ptr(data))
	} else {
		gl.BufferData(gl.ARRAY_BUFFER, n, gl.Ptr(data), buf.usage)
		buf.size = n
	}
}

type UintBuffer struct {
	Buffer uint32
	count  int
	size   int
	usage  uint32
}

func (buf *UintBuffer) Create(usage uint32, data []uint32) {
	buf.usage = usage
	gl.GenBuffers(1, &buf.Buffer)
	buf.Bind()
	buf.Update(data)
}

func (buf *UintBuffer) Delete() { gl.DeleteBuffers(1, &buf.Buffer) }
func (buf UintBuffer) Bind()    { gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, buf.Buffer) }
func (buf UintBuffer) Draw(mode uint32) {
	gl.DrawElementsWithOffset(mode, int32(buf.count), gl.UNSIGNED_INT, 0)
}

func (buf *UintBuffer) Update(data []uint32) {
	buf.count = len(data)
	if len(data) == 0 {
		return
	}
	if n := len(data) * 4; n <= buf.size {
		gl.BufferSubData(gl.ELEMENT_ARRAY_BUFFER, 0, n, gl.Ptr(data))
	} else {
		gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, n, gl.Ptr(data), buf.usage)
		buf.size = n
	}
}

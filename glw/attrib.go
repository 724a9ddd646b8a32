package glw

import "github.com/go-gl/gl/v4.1-core/gl"

type A3fv uint32

func (a A3fv) Enable() { gl.EnableVertexAttribArray(uint32(a)) }
func (a A3fv) Pointer() {
	a.Enable()
	gl.VertexAttribPointerWithOffset(uint32(a), 3, gl.FLOAT, false, 0, 0)
}

package glw

import (
	"github.com/go-gl/gl/v4.1-core/gl"
	"golang.org/x/image/math/f32"
)

type U4fv int32

func (u U4fv) Set(v f32.Vec4) { gl.Uniform4fv(int32(u), 1, &v[0]) }

// U16fv is a column-major mat4 uniform.
type U16fv int32

func (u U16fv) Set(m f32.Mat4) { gl.UniformMatrix4fv(int32(u), 1, false, &m[0]) }

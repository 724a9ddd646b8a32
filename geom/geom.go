// Package geom provides the pose and projection math for rendering a
// stereo view.
//
// Matrices are column-major as uploaded to OpenGL with transpose false;
// element 12, 13 and 14 hold the translation.
//
//	+0 +4 +8 12
//	+1 +5 +9 13
//	+2 +6 10 14
//	+3 +7 11 15
package geom

import (
	"fmt"
	"math"

	"golang.org/x/image/math/f32"
)

// Quat is a rotation quaternion ordered x, y, z, w.
type Quat f32.Vec4

// QuatIdent is the identity rotation.
var QuatIdent = Quat{0, 0, 0, 1}

// AxisAngle returns unit quaternion rotating angle radians about axis;
// axis must be unit length.
func AxisAngle(axis f32.Vec3, angle float32) Quat {
	s, c := math.Sincos(float64(angle / 2))
	return Quat{axis[0] * float32(s), axis[1] * float32(s), axis[2] * float32(s), float32(c)}
}

// Pose is a rigid transform of orientation followed by position.
type Pose struct {
	Orientation Quat
	Position    f32.Vec3
}

// PoseIdent is the identity pose.
var PoseIdent = Pose{Orientation: QuatIdent}

// Fov holds the four half-angles in radians of an asymmetric view frustum.
// Left and Down are typically negative.
type Fov struct {
	AngleLeft, AngleRight, AngleUp, AngleDown float32
}

// Ident returns the identity matrix.
func Ident() f32.Mat4 {
	return f32.Mat4{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}
}

// PoseMat returns the homogeneous transform of p. The orientation is
// assumed to be unit length and is not normalized.
func PoseMat(p Pose) f32.Mat4 {
	x, y, z, w := p.Orientation[0], p.Orientation[1], p.Orientation[2], p.Orientation[3]

	x2, y2, z2 := x+x, y+y, z+z
	xx2, yy2, zz2 := x*x2, y*y2, z*z2
	xy2, xz2, yz2 := x*y2, x*z2, y*z2
	wx2, wy2, wz2 := w*x2, w*y2, w*z2

	return f32.Mat4{
		1 - yy2 - zz2, xy2 + wz2, xz2 - wy2, 0,
		xy2 - wz2, 1 - xx2 - zz2, yz2 + wx2, 0,
		xz2 + wy2, yz2 - wx2, 1 - xx2 - yy2, 0,
		p.Position[0], p.Position[1], p.Position[2], 1,
	}
}

// InvRigid inverts a rotation plus translation by transposing the rotation
// block and rotating the negated translation. Scale or shear in m gives
// wrong results.
func InvRigid(m f32.Mat4) f32.Mat4 {
	return f32.Mat4{
		m[0], m[4], m[+8], 0,
		m[1], m[5], m[+9], 0,
		m[2], m[6], m[10], 0,
		-(m[0]*m[12] + m[1]*m[13] + m[+2]*m[14]),
		-(m[4]*m[12] + m[5]*m[13] + m[+6]*m[14]),
		-(m[8]*m[12] + m[9]*m[13] + m[10]*m[14]),
		1,
	}
}

// Frustum returns an off-axis perspective projection for fov with
// positive Y up and depth mapped to [-1, 1]. If far <= near, the far
// plane is placed at infinity.
func Frustum(fov Fov, near, far float32) f32.Mat4 {
	l, r := tan(fov.AngleLeft), tan(fov.AngleRight)
	u, d := tan(fov.AngleUp), tan(fov.AngleDown)
	w, h := r-l, u-d

	m := f32.Mat4{
		2 / w, 0, 0, 0,
		0, 2 / h, 0, 0,
		(r + l) / w, (u + d) / h, 0, -1,
		0, 0, 0, 0,
	}
	if far <= near {
		m[10] = -1
		m[14] = -(near + near)
	} else {
		m[10] = -(far + near) / (far - near)
		m[14] = -(far * (near + near)) / (far - near)
	}
	return m
}

// ViewProj returns the projection of fov composed after the view of an
// eye at pose.
func ViewProj(fov Fov, pose Pose, near, far float32) f32.Mat4 {
	return Mul(Frustum(fov, near, far), InvRigid(PoseMat(pose)))
}

// Translate returns a translation matrix.
func Translate(v f32.Vec3) f32.Mat4 {
	m := Ident()
	m[12], m[13], m[14] = v[0], v[1], v[2]
	return m
}

// Scale returns a scale matrix.
func Scale(v f32.Vec3) f32.Mat4 {
	return f32.Mat4{
		v[0], 0, 0, 0,
		0, v[1], 0, 0,
		0, 0, v[2], 0,
		0, 0, 0, 1,
	}
}

// Mul returns the column-major product a*b, so b is applied first.
func Mul(a, b f32.Mat4) f32.Mat4 {
	var m f32.Mat4
	for c := 0; c < 4; c++ {
		for r := 0; r < 4; r++ {
			m[c*4+r] = a[r]*b[c*4] + a[4+r]*b[c*4+1] + a[8+r]*b[c*4+2] + a[12+r]*b[c*4+3]
		}
	}
	return m
}

// Apply transforms point v by m with w = 1.
func Apply(m f32.Mat4, v f32.Vec3) f32.Vec3 {
	return f32.Vec3{
		m[0]*v[0] + m[4]*v[1] + m[+8]*v[2] + m[12],
		m[1]*v[0] + m[5]*v[1] + m[+9]*v[2] + m[13],
		m[2]*v[0] + m[6]*v[1] + m[10]*v[2] + m[14],
	}
}

// String formats m in rows as it would be written on paper.
func String(m f32.Mat4) string {
	return fmt.Sprintf("%+.2f %+.2f %+.2f %+.2f\n%+.2f %+.2f %+.2f %+.2f\n%+.2f %+.2f %+.2f %+.2f\n%+.2f %+.2f %+.2f %+.2f",
		m[0], m[4], m[8], m[12], m[1], m[5], m[9], m[13], m[2], m[6], m[10], m[14], m[3], m[7], m[11], m[15])
}

// Epsilon is the tolerance used by Equals.
const Epsilon = 0.0001

// Equals reports whether a and b are elementwise within eps.
func Equals(a, b f32.Mat4, eps float32) bool {
	for i := range a {
		if d := a[i] - b[i]; d > eps || -d > eps {
			return false
		}
	}
	return true
}

func tan(a float32) float32 { return float32(math.Tan(float64(a))) }

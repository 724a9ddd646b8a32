package frame

import (
	"golang.org/x/image/math/f32"

	"dasa.cc/minxr/geom"
)

// Scene holds model matrices of unit cubes drawn into every view.
type Scene struct {
	Static []f32.Mat4

	// Hands holds tracked hand poses; nil entries are not drawn.
	Hands [2]*geom.Pose
}

// NewScene returns a scene with a grid of n by n small cubes resting on
// the stage floor, spaced one meter apart and centered on the origin.
func NewScene(n int) *Scene {
	s := &Scene{}
	size := float32(0.1)
	off := float32(n-1) / 2
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			pos := f32.Vec3{float32(i) - off, size / 2, float32(j) - off}
			s.Static = append(s.Static, geom.Mul(geom.Translate(pos), geom.Scale(f32.Vec3{size, size, size})))
		}
	}
	return s
}

var handScale = geom.Scale(f32.Vec3{0.05, 0.05, 0.05})

// Models returns the model matrix of every cube to draw.
func (s *Scene) Models() []f32.Mat4 {
	ms := make([]f32.Mat4, len(s.Static), len(s.Static)+len(s.Hands))
	copy(ms, s.Static)
	for _, p := range s.Hands {
		if p != nil {
			ms = append(ms, geom.Mul(geom.PoseMat(*p), handScale))
		}
	}
	return ms
}

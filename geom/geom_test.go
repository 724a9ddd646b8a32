package geom

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/math/f32"
	"gonum.org/v1/gonum/mat"
)

// dense returns column-major m as a row-major gonum matrix.
func dense(m f32.Mat4) *mat.Dense {
	d := mat.NewDense(4, 4, nil)
	for c := 0; c < 4; c++ {
		for r := 0; r < 4; r++ {
			d.Set(r, c, float64(m[c*4+r]))
		}
	}
	return d
}

func randPose(rng *rand.Rand) Pose {
	axis := f32.Vec3{rng.Float32()*2 - 1, rng.Float32()*2 - 1, rng.Float32()*2 - 1}
	n := float32(math.Sqrt(float64(axis[0]*axis[0] + axis[1]*axis[1] + axis[2]*axis[2])))
	if n == 0 {
		axis, n = f32.Vec3{0, 1, 0}, 1
	}
	axis = f32.Vec3{axis[0] / n, axis[1] / n, axis[2] / n}
	return Pose{
		Orientation: AxisAngle(axis, rng.Float32()*2*math.Pi),
		Position:    f32.Vec3{rng.Float32()*4 - 2, rng.Float32() * 2, rng.Float32()*4 - 2},
	}
}

func TestPoseMatIdent(t *testing.T) {
	assert.Equal(t, Ident(), PoseMat(PoseIdent))
}

func TestPoseMatRotation(t *testing.T) {
	// quarter turn about y maps +x to -z
	p := Pose{Orientation: AxisAngle(f32.Vec3{0, 1, 0}, math.Pi/2), Position: f32.Vec3{1, 2, 3}}
	v := Apply(PoseMat(p), f32.Vec3{1, 0, 0})
	assert.InDelta(t, 1, v[0], Epsilon)
	assert.InDelta(t, 2, v[1], Epsilon)
	assert.InDelta(t, 2, v[2], Epsilon)
}

func TestInvRigid(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 100; i++ {
		p := randPose(rng)
		m := PoseMat(p)
		inv := InvRigid(m)

		if have := Mul(inv, m); !Equals(have, Ident(), Epsilon) {
			t.Fatalf("InvRigid(m)*m not identity for %+v\n%s", p, String(have))
		}
		if have := Mul(m, inv); !Equals(have, Ident(), Epsilon) {
			t.Fatalf("m*InvRigid(m) not identity for %+v\n%s", p, String(have))
		}

		var want mat.Dense
		require.NoError(t, want.Inverse(dense(m)))
		assert.True(t, mat.EqualApprox(dense(inv), &want, 1e-4), "pose %+v", p)
	}
}

func TestFrustum(t *testing.T) {
	fov := Fov{AngleLeft: -0.6, AngleRight: 0.6, AngleUp: 0.55, AngleDown: -0.55}
	tl, tr := math.Tan(-0.6), math.Tan(0.6)
	tu, td := math.Tan(0.55), math.Tan(-0.55)

	m := Frustum(fov, 0.05, 100)
	assert.InDelta(t, 2/(tr-tl), m[0], Epsilon)
	assert.InDelta(t, 2/(tu-td), m[5], Epsilon)
	assert.InDelta(t, 0, m[8], Epsilon, "symmetric fov has no x offset")
	assert.InDelta(t, 0, m[9], Epsilon, "symmetric fov has no y offset")
	assert.Equal(t, float32(-1), m[11])
	assert.Equal(t, float32(0), m[15])
}

func TestFrustumOffAxis(t *testing.T) {
	fov := Fov{AngleLeft: -0.8, AngleRight: 0.6, AngleUp: 0.7, AngleDown: -0.5}
	m := Frustum(fov, 0.05, 100)
	tl, tr := math.Tan(-0.8), math.Tan(0.6)
	tu, td := math.Tan(0.7), math.Tan(-0.5)
	assert.InDelta(t, (tr+tl)/(tr-tl), m[8], Epsilon)
	assert.InDelta(t, (tu+td)/(tu-td), m[9], Epsilon)
}

func TestFrustumDepth(t *testing.T) {
	fov := Fov{AngleLeft: -0.6, AngleRight: 0.6, AngleUp: 0.55, AngleDown: -0.55}
	const near = 0.05

	tests := []struct {
		name     string
		far      float32
		infinite bool
	}{
		{"far above near", 100, false},
		{"far equals near", near, true},
		{"far below near", 0.01, true},
		{"far zero", 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := Frustum(fov, near, tt.far)
			finite10 := -(tt.far + near) / (tt.far - near)
			finite14 := -(tt.far * 2 * near) / (tt.far - near)
			if tt.infinite {
				assert.Equal(t, float32(-1), m[10])
				assert.InDelta(t, -2*near, m[14], Epsilon)
			} else {
				assert.InDelta(t, finite10, m[10], Epsilon)
				assert.InDelta(t, finite14, m[14], Epsilon)
				assert.NotEqual(t, float32(-1), m[10])
			}
		})
	}
}

func TestFrustumClip(t *testing.T) {
	// points on the near and far planes land on -1 and +1 in ndc
	fov := Fov{AngleLeft: -0.6, AngleRight: 0.6, AngleUp: 0.55, AngleDown: -0.55}
	m := Frustum(fov, 0.05, 100)
	for _, tc := range []struct{ z, ndc float32 }{{-0.05, -1}, {-100, 1}} {
		clipz := m[10]*tc.z + m[14]
		clipw := m[11] * tc.z
		assert.InDelta(t, tc.ndc, clipz/clipw, 1e-3)
	}
}

func TestViewProj(t *testing.T) {
	fov := Fov{AngleLeft: -0.6, AngleRight: 0.6, AngleUp: 0.55, AngleDown: -0.55}
	pose := Pose{Orientation: QuatIdent, Position: f32.Vec3{0, 1.6, 0}}
	m := ViewProj(fov, pose, 0.05, 100)

	// a point straight ahead of the eye projects to the center
	p := f32.Vec3{0, 1.6, -2}
	x := m[0]*p[0] + m[4]*p[1] + m[8]*p[2] + m[12]
	y := m[1]*p[0] + m[5]*p[1] + m[9]*p[2] + m[13]
	w := m[3]*p[0] + m[7]*p[1] + m[11]*p[2] + m[15]
	assert.InDelta(t, 0, x/w, Epsilon)
	assert.InDelta(t, 0, y/w, Epsilon)
	assert.InDelta(t, 2, w, Epsilon)
}

func TestMulOrder(t *testing.T) {
	tr := Translate(f32.Vec3{1, 0, 0})
	sc := Scale(f32.Vec3{2, 2, 2})

	// scale first, then translate
	v := Apply(Mul(tr, sc), f32.Vec3{1, 1, 1})
	assert.Equal(t, f32.Vec3{3, 2, 2}, v)

	// translate first, then scale
	v = Apply(Mul(sc, tr), f32.Vec3{1, 1, 1})
	assert.Equal(t, f32.Vec3{4, 2, 2}, v)
}

func BenchmarkViewProj(b *testing.B) {
	fov := Fov{AngleLeft: -0.6, AngleRight: 0.6, AngleUp: 0.55, AngleDown: -0.55}
	pose := randPose(rand.New(rand.NewSource(1)))
	b.ReportAllocs()
	for n := 0; n < b.N; n++ {
		ViewProj(fov, pose, 0.05, 100)
	}
}

package glw

import (
	"testing"
	"unsafe"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dasa.cc/minxr/xr"
)

func TestParseVersion(t *testing.T) {
	tests := []struct {
		in   string
		want xr.Version
	}{
		{"4.6.0 NVIDIA 535.54.03", xr.MakeVersion(4, 6, 0)},
		{"4.1 Metal - 83.1", xr.MakeVersion(4, 1, 0)},
		{"4.5 (Core Profile) Mesa 23.0.4", xr.MakeVersion(4, 5, 0)},
		{"OpenGL ES 3.2 Mesa 23.0.4", xr.MakeVersion(3, 2, 0)},
		{"3.3.14", xr.MakeVersion(3, 3, 14)},
	}
	for _, tt := range tests {
		v, err := ParseVersion(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, v, tt.in)
	}

	for _, bad := range []string{"", "4", "four.one", "4.x"} {
		_, err := ParseVersion(bad)
		assert.Error(t, err, bad)
	}
}

func TestInitMissing(t *testing.T) {
	var asked []string
	procs, err := Init(func(name string) unsafe.Pointer {
		asked = append(asked, name)
		if name == "glBindFramebuffer" {
			return nil
		}
		x := 1
		return unsafe.Pointer(&x)
	})
	require.Error(t, err)
	assert.Nil(t, procs)
	assert.Contains(t, err.Error(), "glBindFramebuffer")
	assert.NotContains(t, err.Error(), "glGenFramebuffers")
	assert.Equal(t, required, asked)
}

func TestCube(t *testing.T) {
	vertices, indices := Cube()
	require.Len(t, vertices, 8*3)
	require.Len(t, indices, 12*3)

	at := func(i uint32) [3]float32 { return [3]float32{vertices[i*3], vertices[i*3+1], vertices[i*3+2]} }
	sub := func(a, b [3]float32) [3]float32 { return [3]float32{a[0] - b[0], a[1] - b[1], a[2] - b[2]} }
	cross := func(a, b [3]float32) [3]float32 {
		return [3]float32{a[1]*b[2] - a[2]*b[1], a[2]*b[0] - a[0]*b[2], a[0]*b[1] - a[1]*b[0]}
	}

	for i := 0; i < len(indices); i += 3 {
		a, b, c := at(indices[i]), at(indices[i+1]), at(indices[i+2])
		n := cross(sub(b, a), sub(c, a))
		center := [3]float32{(a[0] + b[0] + c[0]) / 3, (a[1] + b[1] + c[1]) / 3, (a[2] + b[2] + c[2]) / 3}
		dot := n[0]*center[0] + n[1]*center[1] + n[2]*center[2]
		assert.Greater(t, dot, float32(0), "triangle %d faces inward", i/3)
	}
}

func TestLowerFirst(t *testing.T) {
	assert.Equal(t, "mvp", lowerFirst("Mvp"))
	assert.Equal(t, "position", lowerFirst("Position"))
}

func TestRendererVersion(t *testing.T) {
	r := NewRenderer(&Procs{Version: "4.6.0 NVIDIA 535.54.03"}, nil)
	assert.Equal(t, xr.MakeVersion(4, 6, 0), r.Version())

	r = NewRenderer(&Procs{Version: "unknown"}, nil)
	assert.Equal(t, xr.Version(0), r.Version())
}

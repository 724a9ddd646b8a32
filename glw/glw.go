// Package glw wraps the OpenGL calls used to render XR views.
//
// Entry points are resolved once with Init from the window's proc-address
// function. go-gl holds the resolved pointers; the Procs returned by Init
// records the context they belong to. Every other call in the package
// assumes Init succeeded and the context is current on the calling thread.
package glw

import (
	"fmt"
	"strconv"
	"strings"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"

	"dasa.cc/minxr/xr"
)

// required lists entry points without which views cannot be rendered into
// swapchain textures.
var required = []string{
	"glGenFramebuffers",
	"glBindFramebuffer",
	"glFramebufferTexture2D",
	"glCheckFramebufferStatus",
	"glDeleteFramebuffers",
	"glGenVertexArrays",
}

// Procs describes the GL context whose entry points Init resolved.
type Procs struct {
	Vendor          string
	Renderer        string
	Version         string
	ShadingLanguage string
}

// Init resolves GL entry points with getProcAddress. It fails without
// touching GL if any required entry point is missing.
func Init(getProcAddress func(name string) unsafe.Pointer) (*Procs, error) {
	var missing []string
	for _, name := range required {
		if getProcAddress(name) == nil {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("glw: missing entry points: %s", strings.Join(missing, ", "))
	}
	if err := gl.InitWithProcAddrFunc(getProcAddress); err != nil {
		return nil, fmt.Errorf("glw: %w", err)
	}
	return &Procs{
		Vendor:          gl.GoStr(gl.GetString(gl.VENDOR)),
		Renderer:        gl.GoStr(gl.GetString(gl.RENDERER)),
		Version:         gl.GoStr(gl.GetString(gl.VERSION)),
		ShadingLanguage: gl.GoStr(gl.GetString(gl.SHADING_LANGUAGE_VERSION)),
	}, nil
}

// ParseVersion reads the leading major.minor[.patch] of a GL_VERSION
// string such as "4.6.0 NVIDIA 535.54" or "OpenGL ES 3.2 Mesa 23.0".
func ParseVersion(s string) (xr.Version, error) {
	s = strings.TrimPrefix(s, "OpenGL ES ")
	if i := strings.IndexByte(s, ' '); i >= 0 {
		s = s[:i]
	}
	parts := strings.Split(s, ".")
	if len(parts) < 2 {
		return 0, fmt.Errorf("glw: malformed version %q", s)
	}
	var n [3]uint64
	for i := 0; i < len(parts) && i < 3; i++ {
		v, err := strconv.ParseUint(parts[i], 10, 16)
		if err != nil {
			return 0, fmt.Errorf("glw: malformed version %q: %w", s, err)
		}
		n[i] = v
	}
	return xr.MakeVersion(uint32(n[0]), uint32(n[1]), uint32(n[2])), nil
}

// Error returns the pending GL error, if any, naming call.
func Error(call string) error {
	if e := gl.GetError(); e != gl.NO_ERROR {
		return fmt.Errorf("glw: %s: error %#x", call, e)
	}
	return nil
}

package glw

import (
	"errors"
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"
	"golang.org/x/image/math/f32"

	"dasa.cc/minxr/frame"
	"dasa.cc/minxr/geom"
	"dasa.cc/minxr/xr"
)

var (
	vsrc = VertSrc(`#version 410
uniform mat4 mvp;
in vec3 position;
out vec3 vpos;
void main() {
	gl_Position = mvp * vec4(position, 1.0);
	vpos = position;
}`)

	fsrc = FragSrc(`#version 410
uniform vec4 color;
in vec3 vpos;
out vec4 fragColor;
void main() {
	fragColor = vec4((vpos + 0.5) * color.rgb, color.a);
}`)
)

// ClearColor is the background of every rendered view.
var ClearColor = f32.Vec4{0, 0.1, 0, 1}

// CubeColor tints cube faces by local position.
var CubeColor = f32.Vec4{0, 1, 0, 1}

// ErrIncomplete is returned when the framebuffer cannot be drawn to.
var ErrIncomplete = errors.New("glw: framebuffer incomplete")

// Renderer draws cubes into swapchain textures and the window mirror.
type Renderer struct {
	procs *Procs
	log   *zap.Logger

	fbo uint32
	vao uint32
	prg Program
	vbo FloatBuffer
	ibo UintBuffer

	Mvp      U16fv
	Color    U4fv
	Position A3fv
}

// NewRenderer returns a renderer for the context procs was resolved in.
// Setup must be called before drawing.
func NewRenderer(procs *Procs, log *zap.Logger) *Renderer {
	if log == nil {
		log = zap.NewNop()
	}
	return &Renderer{procs: procs, log: log}
}

// Version parses the GL version string of the current context. It returns
// zero if the string is malformed.
func (r *Renderer) Version() xr.Version {
	v, err := ParseVersion(r.procs.Version)
	if err != nil {
		r.log.Warn("gl version", zap.Error(err))
		return 0
	}
	return v
}

func (r *Renderer) Setup() error {
	gl.GenFramebuffers(1, &r.fbo)

	if err := r.prg.Build(vsrc, fsrc); err != nil {
		return err
	}
	r.prg.Unmarshal(r)

	vertices, indices := Cube()
	gl.GenVertexArrays(1, &r.vao)
	gl.BindVertexArray(r.vao)
	r.vbo.Create(gl.STATIC_DRAW, vertices)
	r.Position.Pointer()
	r.ibo.Create(gl.STATIC_DRAW, indices)
	gl.BindVertexArray(0)

	r.log.Debug("gl setup",
		zap.String("vendor", r.procs.Vendor),
		zap.String("renderer", r.procs.Renderer),
		zap.String("glsl", r.procs.ShadingLanguage),
		zap.Uint32("framebuffer", r.fbo),
	)
	return Error("setup")
}

// DepthTexture creates a 16-bit depth texture with the dimensions of
// color.
func (r *Renderer) DepthTexture(color uint32) (uint32, error) {
	var w, h int32
	gl.BindTexture(gl.TEXTURE_2D, color)
	gl.GetTexLevelParameteriv(gl.TEXTURE_2D, 0, gl.TEXTURE_WIDTH, &w)
	gl.GetTexLevelParameteriv(gl.TEXTURE_2D, 0, gl.TEXTURE_HEIGHT, &h)
	if w == 0 || h == 0 {
		return 0, fmt.Errorf("glw: color texture %d has no storage", color)
	}

	var tex uint32
	gl.GenTextures(1, &tex)
	gl.BindTexture(gl.TEXTURE_2D, tex)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.DEPTH_COMPONENT16, w, h, 0, gl.DEPTH_COMPONENT, gl.FLOAT, nil)
	gl.BindTexture(gl.TEXTURE_2D, 0)

	r.log.Debug("depth texture", zap.Uint32("color", color), zap.Uint32("depth", tex), zap.Int32("width", w), zap.Int32("height", h))
	return tex, Error("depth texture")
}

// ColorTexture allocates an sRGB color texture, standing in for runtime
// owned swapchain images.
func (r *Renderer) ColorTexture(w, h uint32) uint32 {
	var tex uint32
	gl.GenTextures(1, &tex)
	gl.BindTexture(gl.TEXTURE_2D, tex)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.SRGB8_ALPHA8, int32(w), int32(h), 0, gl.RGBA, gl.UNSIGNED_BYTE, nil)
	gl.BindTexture(gl.TEXTURE_2D, 0)
	return tex
}

func (r *Renderer) RenderView(t frame.Target, models []f32.Mat4) error {
	gl.BindFramebuffer(gl.FRAMEBUFFER, r.fbo)
	gl.FramebufferTexture2D(gl.FRAMEBUFFER, gl.COLOR_ATTACHMENT0, gl.TEXTURE_2D, t.Color, 0)
	gl.FramebufferTexture2D(gl.FRAMEBUFFER, gl.DEPTH_ATTACHMENT, gl.TEXTURE_2D, t.Depth, 0)
	if status := gl.CheckFramebufferStatus(gl.FRAMEBUFFER); status != gl.FRAMEBUFFER_COMPLETE {
		return fmt.Errorf("%w: status %#x", ErrIncomplete, status)
	}

	gl.Viewport(int32(t.Viewport.Min.X), int32(t.Viewport.Min.Y), int32(t.Viewport.Dx()), int32(t.Viewport.Dy()))
	r.draw(t.ViewProj, models)
	return Error("render view")
}

func (r *Renderer) draw(viewProj f32.Mat4, models []f32.Mat4) {
	gl.ClearColor(ClearColor[0], ClearColor[1], ClearColor[2], ClearColor[3])
	gl.ClearDepth(1)
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT | gl.STENCIL_BUFFER_BIT)

	gl.Enable(gl.DEPTH_TEST)
	gl.Enable(gl.CULL_FACE)
	gl.Enable(gl.FRAMEBUFFER_SRGB)

	r.prg.Use()
	r.Color.Set(CubeColor)
	gl.BindVertexArray(r.vao)
	for _, m := range models {
		r.Mvp.Set(geom.Mul(viewProj, m))
		r.ibo.Draw(gl.TRIANGLES)
	}
	gl.BindVertexArray(0)
}

func (r *Renderer) Unbind() { gl.BindFramebuffer(gl.FRAMEBUFFER, 0) }

// Mirror draws models into the default framebuffer of the current window.
func (r *Renderer) Mirror(viewProj f32.Mat4, models []f32.Mat4, width, height int32) {
	gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
	gl.Viewport(0, 0, width, height)
	r.draw(viewProj, models)
}

func (r *Renderer) Delete(textures []uint32) {
	if len(textures) > 0 {
		gl.DeleteTextures(int32(len(textures)), &textures[0])
	}
	if r.vao != 0 {
		r.vbo.Delete()
		r.ibo.Delete()
		gl.DeleteVertexArrays(1, &r.vao)
		r.prg.Delete()
		r.vao = 0
	}
	if r.fbo != 0 {
		gl.DeleteFramebuffers(1, &r.fbo)
		r.fbo = 0
	}
}

package glw

import (
	"fmt"
	"reflect"
	"runtime"
	"strings"
	"unicode"

	"github.com/go-gl/gl/v4.1-core/gl"
)

// caller returns first file and line number outside of this package for calling
// goroutine's stack, prefixed with defaultName which may be overridden based on
// stack frames.
func caller(defaultName string) string {
	pc := make([]uintptr, 10)
	n := runtime.Callers(3, pc)
	frames := runtime.CallersFrames(pc[:n])

	var (
		frame runtime.Frame
		more  bool
		name  = defaultName
		inpkg = func(s string) bool { return strings.HasPrefix(s, "dasa.cc/minxr/glw") }
	)

	for frame, more = frames.Next(); more && inpkg(frame.Function); frame, more = frames.Next() {
		switch frame.Function {
		case "dasa.cc/minxr/glw.VertSrc.Compile":
			name = "VertexShader"
		case "dasa.cc/minxr/glw.FragSrc.Compile":
			name = "FragmentShader"
		}
	}

	return fmt.Sprintf("%s %s:%v", name, frame.File, frame.Line)
}

func compile(typ uint32, src string) (uint32, error) {
	shd := gl.CreateShader(typ)
	csrc, free := gl.Strs(src + "\x00")
	gl.ShaderSource(shd, 1, csrc, nil)
	free()
	gl.CompileShader(shd)

	var status int32
	gl.GetShaderiv(shd, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var n int32
		gl.GetShaderiv(shd, gl.INFO_LOG_LENGTH, &n)
		msg := strings.Repeat("\x00", int(n+1))
		gl.GetShaderInfoLog(shd, n, nil, gl.Str(msg))
		return shd, fmt.Errorf("%s\n%s", caller("CompileShader"), strings.TrimRight(msg, "\x00"))
	}
	return shd, nil
}

// VertSrc is vertex shader source code.
type VertSrc string

// Compile returns the compiled shader of src and error if any.
func (src VertSrc) Compile() (uint32, error) { return compile(gl.VERTEX_SHADER, string(src)) }

// FragSrc is fragment shader source code.
type FragSrc string

// Compile returns the compiled shader of src and error if any.
func (src FragSrc) Compile() (uint32, error) { return compile(gl.FRAGMENT_SHADER, string(src)) }

// Program identifies a compiled shader program.
type Program struct{ Program uint32 }

// Use installs program as part of current rendering state.
func (prg Program) Use() { gl.UseProgram(prg.Program) }

// Uniform returns uniform location by name in program.
func (prg Program) Uniform(name string) int32 {
	return gl.GetUniformLocation(prg.Program, gl.Str(name+"\x00"))
}

// Attrib returns attribute location by name in program.
func (prg Program) Attrib(name string) uint32 {
	return uint32(gl.GetAttribLocation(prg.Program, gl.Str(name+"\x00")))
}

// Delete frees the memory and invalidates the name associated with the program.
func (prg Program) Delete() { gl.DeleteProgram(prg.Program) }

// Build compiles shaders and links program.
func (prg *Program) Build(vsrc VertSrc, fsrc FragSrc) error {
	prg.Program = gl.CreateProgram()

	vshd, err := vsrc.Compile()
	if err != nil {
		return err
	}
	gl.AttachShader(prg.Program, vshd)
	defer gl.DeleteShader(vshd)

	fshd, err := fsrc.Compile()
	if err != nil {
		return err
	}
	gl.AttachShader(prg.Program, fshd)
	defer gl.DeleteShader(fshd)

	gl.LinkProgram(prg.Program)

	var status int32
	gl.GetProgramiv(prg.Program, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var n int32
		gl.GetProgramiv(prg.Program, gl.INFO_LOG_LENGTH, &n)

		msg := strings.Repeat("\x00", int(n+1))
		gl.GetProgramInfoLog(prg.Program, n, nil, gl.Str(msg))
		return fmt.Errorf("%s\n%s", caller("LinkProgram"), strings.TrimRight(msg, "\x00"))
	}

	return nil
}

// Unmarshal sets the location fields of dst, a pointer to struct, by the
// field name with its first letter lowered.
func (prg Program) Unmarshal(dst interface{}) {
	val := reflect.ValueOf(dst).Elem()
	typ := val.Type()
	for i := 0; i < val.NumField(); i++ {
		if f := val.Field(i); f.CanSet() {
			name := lowerFirst(typ.Field(i).Name)
			switch f.Interface().(type) {
			case A3fv:
				f.Set(reflect.ValueOf(A3fv(prg.Attrib(name))))
			case U4fv:
				f.Set(reflect.ValueOf(U4fv(prg.Uniform(name))))
			case U16fv:
				f.Set(reflect.ValueOf(U16fv(prg.Uniform(name))))
			}
		}
	}
}

func lowerFirst(s string) string {
	p := []rune(s)
	p[0] = unicode.ToLower(p[0])
	return string(p)
}

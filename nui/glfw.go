// Package nui opens the desktop window that owns the GL context.
package nui

import (
	"fmt"
	"unsafe"

	"github.com/go-gl/glfw/v3.3/glfw"
)

var pollEvents = glfw.PollEvents

// Window is a glfw window with a current OpenGL 4.1 core context.
type Window struct {
	*glfw.Window
}

// Open initializes glfw and creates a window of the given size. The
// calling goroutine must be locked to the main thread.
func Open(title string, width, height int) (*Window, error) {
	if err := glfw.Init(); err != nil {
		return nil, fmt.Errorf("nui: %w", err)
	}

	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	glfw.WindowHint(glfw.Resizable, glfw.True)

	win, err := glfw.CreateWindow(width, height, title, nil, nil)
	if err != nil {
		glfw.Terminate()
		return nil, fmt.Errorf("nui: %w", err)
	}
	win.MakeContextCurrent()
	// the runtime paces frames; vsync on the mirror would halve the rate
	glfw.SwapInterval(0)

	win.SetKeyCallback(func(w *glfw.Window, key glfw.Key, _ int, action glfw.Action, _ glfw.ModifierKey) {
		if key == glfw.KeyEscape && action == glfw.Press {
			w.SetShouldClose(true)
		}
	})

	return &Window{win}, nil
}

// HandleInput processes pending events and reports whether the window is
// still open.
func (w *Window) HandleInput() bool {
	pollEvents()
	return !w.ShouldClose()
}

// Size returns the framebuffer size in pixels.
func (w *Window) Size() (width, height int) { return w.GetFramebufferSize() }

func (w *Window) Present() { w.SwapBuffers() }

// ProcAddr resolves a GL entry point in the current context.
func (w *Window) ProcAddr(name string) unsafe.Pointer {
	return glfw.GetProcAddress(name)
}

// Close destroys the window and terminates glfw.
func (w *Window) Close() {
	w.Destroy()
	glfw.Terminate()
}

// Package session drives an XR session from capability discovery through
// the frame loop to teardown.
package session

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/multierr"
	"go.uber.org/zap"
	"golang.org/x/image/math/f32"

	"dasa.cc/minxr/frame"
	"dasa.cc/minxr/xr"
)

// Graphics is the GL side of a session.
type Graphics interface {
	frame.Renderer

	// Version returns the version of the current GL context.
	Version() xr.Version

	// Setup creates the framebuffer, shader program and cube mesh.
	Setup() error

	// Mirror draws models into the window framebuffer.
	Mirror(viewProj f32.Mat4, models []f32.Mat4, width, height int32)

	// Delete frees textures and everything Setup created.
	Delete(textures []uint32)
}

// Window is the desktop window owning the GL context.
type Window interface {
	// HandleInput processes pending window events and reports whether the
	// window is still open.
	HandleInput() bool
	Size() (width, height int)
	Present()
}

// Session owns every runtime resource created by Build.
type Session struct {
	cfg Config
	rt  xr.Runtime
	gfx Graphics
	log *zap.Logger

	Instance xr.Instance
	System   xr.SystemID
	Handle   xr.Session
	Views    []xr.ViewConfig
	Stage    xr.Space

	Input   *Input
	Frames  *frame.Synchronizer
	Machine *Machine

	// Sleep waits out an idle iteration; defaults to time.Sleep.
	Sleep func(time.Duration)

	scs   []frame.Swapchain
	setup bool
}

// Run loops until the session exits or fails. Each iteration handles
// window input, polls at most one runtime event and, once the session is
// ready, syncs input and runs one frame. When ctx is done or w closes, the
// session is asked to exit and the loop continues until the runtime
// confirms. w may be nil.
func (s *Session) Run(ctx context.Context, w Window) error {
	sleep := s.Sleep
	if sleep == nil {
		sleep = time.Sleep
	}

	for !s.Machine.Done() {
		closed := ctx.Err() != nil
		if w != nil && !w.HandleInput() {
			closed = true
		}
		if closed {
			if !s.Machine.Running() {
				return nil
			}
			if err := s.requestExit(); err != nil {
				return fmt.Errorf("request exit: %w", err)
			}
		}

		if err := s.poll(); err != nil {
			return err
		}

		if !s.Machine.Ready() {
			sleep(s.cfg.Idle)
			continue
		}
		if err := s.Input.Sync(); err != nil {
			return fmt.Errorf("sync input: %w", err)
		}
		if err := s.Frames.Frame(); err != nil {
			return fmt.Errorf("frame %d: %w", s.Frames.Frames(), err)
		}
		if w != nil {
			s.present(w)
		}
	}
	return nil
}

func (s *Session) poll() error {
	ev, ok, err := s.rt.PollEvent(s.Instance)
	if err != nil {
		return fmt.Errorf("poll event: %w", err)
	}
	if !ok {
		return nil
	}
	return s.Machine.Handle(ev)
}

func (s *Session) requestExit() error {
	if s.Input.quitting {
		return nil
	}
	s.Input.quitting = true
	s.log.Info("exit requested")
	return s.rt.RequestExitSession(s.Handle)
}

func (s *Session) present(w Window) {
	if vp, ok := s.Frames.Mirror(); ok {
		width, height := w.Size()
		s.gfx.Mirror(vp, s.Frames.Scene.Models(), int32(width), int32(height))
	}
	w.Present()
}

// Close releases resources in reverse order of creation. Failures are
// logged and returned together; nothing is retried. Close is safe to call
// on a partially built session.
func (s *Session) Close() (err error) {
	fail := func(what string, e error) {
		if e != nil {
			s.log.Error("teardown", zap.String("step", what), zap.Error(e))
			err = multierr.Append(err, fmt.Errorf("%s: %w", what, e))
		}
	}

	for i, sc := range s.scs {
		fail(fmt.Sprintf("destroy swapchain %d", i), s.rt.DestroySwapchain(sc.Handle))
	}
	s.scs = nil

	if s.setup {
		var depths []uint32
		if s.Frames != nil {
			depths = s.Frames.DepthTextures()
		}
		s.gfx.Delete(depths)
		s.setup = false
	}

	if s.Stage != 0 {
		fail("destroy stage space", s.rt.DestroySpace(s.Stage))
		s.Stage = 0
	}
	if s.Input != nil {
		fail("destroy hand spaces", s.Input.Close())
	}

	if s.Machine != nil && s.Machine.Running() {
		s.Machine.ended = true
		fail("end session", s.rt.EndSession(s.Handle))
	}
	if s.Handle != 0 {
		fail("destroy session", s.rt.DestroySession(s.Handle))
		s.Handle = 0
	}
	if s.Instance != 0 {
		fail("destroy instance", s.rt.DestroyInstance(s.Instance))
		s.Instance = 0
	}
	return err
}

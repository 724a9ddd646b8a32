// Package frame runs one XR frame: wait, begin, render every view into its
// swapchain and submit a single projection layer.
package frame

import (
	"fmt"
	"image"

	"go.uber.org/multierr"
	"go.uber.org/zap"
	"golang.org/x/image/math/f32"

	"dasa.cc/minxr/geom"
	"dasa.cc/minxr/xr"
)

// Swapchain is the image ring a single view renders into.
type Swapchain struct {
	Handle        xr.Swapchain
	Width, Height int32

	// Images holds the GL texture name of each ring entry.
	Images []uint32
}

// Target describes one view's render pass.
type Target struct {
	Color, Depth uint32
	Viewport     image.Rectangle
	ViewProj     f32.Mat4
}

// Renderer draws views into swapchain textures.
type Renderer interface {
	// DepthTexture creates a depth texture sized to the color texture.
	DepthTexture(color uint32) (uint32, error)

	// RenderView binds the framebuffer to target, clears it and draws a
	// cube for each model matrix.
	RenderView(target Target, models []f32.Mat4) error

	// Unbind restores the default framebuffer.
	Unbind()
}

// Synchronizer issues the calls of a frame in the order the runtime
// requires. It is not safe for concurrent use.
type Synchronizer struct {
	Runtime    xr.Runtime
	Session    xr.Session
	Space      xr.Space
	Swapchains []Swapchain
	Renderer   Renderer
	Scene      *Scene
	Near, Far  float32

	// Track, if not nil, is called with the predicted display time of a
	// frame that will be rendered, before views are located.
	Track func(t xr.Time) error

	Logger *zap.Logger

	depth  DepthCache
	frames uint64
	mirror f32.Mat4
	shown  bool
}

// Frame waits for, renders and submits one frame. Any error leaves the
// frame unfinished and should be treated as fatal.
func (s *Synchronizer) Frame() error {
	fs, err := s.Runtime.WaitFrame(s.Session)
	if err != nil {
		return err
	}
	if err := s.Runtime.BeginFrame(s.Session); err != nil {
		return err
	}
	s.frames++

	var layers []xr.CompositionLayerProjection
	if fs.ShouldRender {
		layer, err := s.renderLayer(fs.PredictedDisplayTime)
		if err != nil {
			return err
		}
		layers = append(layers, layer)
	} else if ce := s.log().Check(zap.DebugLevel, "frame not rendered"); ce != nil {
		ce.Write(zap.Uint64("frame", s.frames))
	}

	return s.Runtime.EndFrame(s.Session, xr.FrameEndInfo{
		DisplayTime: fs.PredictedDisplayTime,
		BlendMode:   xr.BlendOpaque,
		Layers:      layers,
	})
}

// Frames returns the number of frames begun.
func (s *Synchronizer) Frames() uint64 { return s.frames }

// Mirror returns the view-projection of the first view of the last
// rendered frame, and false if no frame was rendered yet.
func (s *Synchronizer) Mirror() (f32.Mat4, bool) { return s.mirror, s.shown }

// DepthTextures returns every depth texture created so far.
func (s *Synchronizer) DepthTextures() []uint32 { return s.depth.Depths() }

func (s *Synchronizer) renderLayer(t xr.Time) (xr.CompositionLayerProjection, error) {
	layer := xr.CompositionLayerProjection{Space: s.Space}
	if s.Track != nil {
		if err := s.Track(t); err != nil {
			return layer, err
		}
	}

	views, err := s.Runtime.LocateViews(s.Session, xr.ViewConfigurationPrimaryStereo, t, s.Space)
	if err != nil {
		return layer, err
	}
	if len(views) > len(s.Swapchains) {
		return layer, fmt.Errorf("frame: located %d views for %d swapchains", len(views), len(s.Swapchains))
	}

	var models []f32.Mat4
	if s.Scene != nil {
		models = s.Scene.Models()
	}

	layer.Views = make([]xr.CompositionLayerProjectionView, len(views))
	for i, v := range views {
		sc := s.Swapchains[i]
		pv := xr.CompositionLayerProjectionView{
			Pose:      v.Pose,
			Fov:       v.Fov,
			Swapchain: sc.Handle,
			ImageRect: image.Rect(0, 0, int(sc.Width), int(sc.Height)),
		}
		if err := s.renderView(sc, pv, models); err != nil {
			return layer, fmt.Errorf("view %d: %w", i, err)
		}
		layer.Views[i] = pv
	}
	s.Renderer.Unbind()
	if len(views) > 0 {
		s.mirror = geom.ViewProj(views[0].Fov, views[0].Pose, s.Near, s.Far)
		s.shown = true
	}
	return layer, nil
}

// renderView releases the acquired image even when drawing fails.
func (s *Synchronizer) renderView(sc Swapchain, pv xr.CompositionLayerProjectionView, models []f32.Mat4) error {
	i, err := s.Runtime.AcquireSwapchainImage(sc.Handle)
	if err != nil {
		return err
	}
	if err := s.Runtime.WaitSwapchainImage(sc.Handle, xr.InfiniteDuration); err != nil {
		return err
	}
	if int(i) >= len(sc.Images) {
		err = fmt.Errorf("frame: image index %d out of range [0,%d)", i, len(sc.Images))
	} else {
		err = s.draw(sc.Images[i], pv, models)
	}
	return multierr.Append(err, s.Runtime.ReleaseSwapchainImage(sc.Handle))
}

func (s *Synchronizer) draw(color uint32, pv xr.CompositionLayerProjectionView, models []f32.Mat4) error {
	depth, err := s.depth.Lookup(color, s.Renderer.DepthTexture)
	if err != nil {
		return err
	}
	return s.Renderer.RenderView(Target{
		Color:    color,
		Depth:    depth,
		Viewport: pv.ImageRect,
		ViewProj: geom.ViewProj(pv.Fov, pv.Pose, s.Near, s.Far),
	}, models)
}

func (s *Synchronizer) log() *zap.Logger {
	if s.Logger == nil {
		return zap.NewNop()
	}
	return s.Logger
}

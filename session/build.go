package session

import (
	"fmt"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	"dasa.cc/minxr/frame"
	"dasa.cc/minxr/geom"
	"dasa.cc/minxr/set"
	"dasa.cc/minxr/xr"
)

// Extensions returns the names of the extensions the runtime supports.
func Extensions(rt xr.Runtime) (set.Slice[string], error) {
	props, err := rt.EnumerateInstanceExtensionProperties()
	if err != nil {
		return nil, err
	}
	var names set.Slice[string]
	for _, p := range props {
		names.Insert(p.Name)
	}
	return names, nil
}

// Build discovers the runtime's capabilities and creates every resource
// the frame loop needs, in order, bound to the GL context current on the
// calling thread. Nothing is retried. On error, resources created so far
// are released and the error returned.
func Build(rt xr.Runtime, gfx Graphics, cfg Config, log *zap.Logger) (*Session, error) {
	if log == nil {
		log = zap.NewNop()
	}
	s := &Session{cfg: cfg, rt: rt, gfx: gfx, log: log}
	if err := s.build(); err != nil {
		return nil, multierr.Append(err, s.Close())
	}
	return s, nil
}

func (s *Session) build() error {
	log, rt := s.log, s.rt

	exts, err := Extensions(rt)
	if err != nil {
		return fmt.Errorf("enumerate extensions: %w", err)
	}
	for _, name := range exts {
		log.Debug("extension", zap.String("name", name))
	}
	if !exts.Has(xr.OpenGLExtension) {
		return fmt.Errorf("%w: %s", xr.ErrExtensionMissing, xr.OpenGLExtension)
	}

	s.Instance, err = rt.CreateInstance(xr.InstanceCreateInfo{
		ApplicationName:    s.cfg.ApplicationName,
		ApplicationVersion: 1,
		Extensions:         []string{xr.OpenGLExtension},
	})
	if err != nil {
		return fmt.Errorf("create instance: %w", err)
	}
	props, err := rt.GetInstanceProperties(s.Instance)
	if err != nil {
		return fmt.Errorf("instance properties: %w", err)
	}
	log.Info("runtime", zap.String("name", props.RuntimeName), zap.Stringer("version", props.RuntimeVersion))

	s.System, err = rt.GetSystem(s.Instance, xr.FormFactorHeadMountedDisplay)
	if err != nil {
		return fmt.Errorf("get system: %w", err)
	}
	sys, err := rt.GetSystemProperties(s.Instance, s.System)
	if err != nil {
		return fmt.Errorf("system properties: %w", err)
	}
	log.Info("system",
		zap.String("name", sys.SystemName),
		zap.Uint32("vendor", sys.VendorID),
		zap.Uint32("max_layers", sys.MaxLayerCount),
		zap.Uint32("max_width", sys.MaxSwapchainImageWidth),
		zap.Uint32("max_height", sys.MaxSwapchainImageHeight),
		zap.Bool("orientation_tracking", sys.OrientationTracking),
		zap.Bool("position_tracking", sys.PositionTracking))

	s.Views, err = rt.EnumerateViewConfigurationViews(s.Instance, s.System, xr.ViewConfigurationPrimaryStereo)
	if err != nil {
		return fmt.Errorf("enumerate view configurations: %w", err)
	}
	if len(s.Views) == 0 {
		return xr.ErrNoViews
	}
	for i, v := range s.Views {
		log.Info("view configuration",
			zap.Int("view", i),
			zap.Uint32("width", v.RecommendedImageRectWidth),
			zap.Uint32("height", v.RecommendedImageRectHeight),
			zap.Uint32("samples", v.RecommendedSwapchainSampleCount),
			zap.Uint32("max_width", v.MaxImageRectWidth),
			zap.Uint32("max_height", v.MaxImageRectHeight),
			zap.Uint32("max_samples", v.MaxSwapchainSampleCount))
	}

	reqs, err := rt.GetOpenGLGraphicsRequirements(s.Instance, s.System)
	if err != nil {
		return fmt.Errorf("graphics requirements: %w", err)
	}
	have := s.gfx.Version()
	log.Info("opengl",
		zap.Stringer("context", have),
		zap.Stringer("min", reqs.MinAPIVersionSupported),
		zap.Stringer("max", reqs.MaxAPIVersionSupported))
	if have < reqs.MinAPIVersionSupported {
		return fmt.Errorf("%w: have %s, need %s", xr.ErrGraphicsVersion, have, reqs.MinAPIVersionSupported)
	}

	s.Handle, err = rt.CreateSession(s.Instance, s.System)
	if err != nil {
		return fmt.Errorf("create session: %w", err)
	}

	s.Input, err = newInput(rt, s.Instance, s.Handle, s.cfg.Profile, log.Named("input"))
	if err != nil {
		return fmt.Errorf("create actions: %w", err)
	}
	s.Input.Threshold = s.cfg.GrabThreshold

	spaces, err := rt.EnumerateReferenceSpaces(s.Handle)
	if err != nil {
		return fmt.Errorf("enumerate reference spaces: %w", err)
	}
	for _, sp := range spaces {
		log.Debug("reference space", zap.Stringer("type", sp))
	}
	s.Stage, err = rt.CreateReferenceSpace(s.Handle, xr.ReferenceSpaceStage, geom.PoseIdent)
	if err != nil {
		return fmt.Errorf("create stage space: %w", err)
	}

	if err := s.gfx.Setup(); err != nil {
		return fmt.Errorf("graphics setup: %w", err)
	}
	s.setup = true

	scs, err := s.swapchains()
	if err != nil {
		return err
	}

	scene := frame.NewScene(s.cfg.Grid)
	s.Input.scene = scene
	s.Frames = &frame.Synchronizer{
		Runtime:    rt,
		Session:    s.Handle,
		Space:      s.Stage,
		Swapchains: scs,
		Renderer:   s.gfx,
		Scene:      scene,
		Near:       s.cfg.Near,
		Far:        s.cfg.Far,
		Track:      func(t xr.Time) error { return s.Input.Track(t, s.Stage) },
		Logger:     log.Named("frame"),
	}
	s.Machine = &Machine{
		Begin:  func() error { return rt.BeginSession(s.Handle, xr.ViewConfigurationPrimaryStereo) },
		End:    func() error { return rt.EndSession(s.Handle) },
		Logger: log.Named("state"),
	}
	return nil
}

// swapchains creates one swapchain per view at its recommended size, in
// the runtime's preferred format.
func (s *Session) swapchains() ([]frame.Swapchain, error) {
	formats, err := s.rt.EnumerateSwapchainFormats(s.Handle)
	if err != nil {
		return nil, fmt.Errorf("enumerate swapchain formats: %w", err)
	}
	if len(formats) == 0 {
		return nil, fmt.Errorf("enumerate swapchain formats: %w", xr.Check("EnumerateSwapchainFormats", xr.ErrorSwapchainFormatUnsupported))
	}
	format := formats[0]
	s.log.Debug("swapchain format", zap.String("format", fmt.Sprintf("%#x", format)), zap.Int("available", len(formats)))

	for i, v := range s.Views {
		h, err := s.rt.CreateSwapchain(s.Handle, xr.SwapchainCreateInfo{
			Format:      format,
			SampleCount: 1,
			Width:       v.RecommendedImageRectWidth,
			Height:      v.RecommendedImageRectHeight,
		})
		if err != nil {
			return s.scs, fmt.Errorf("create swapchain %d: %w", i, err)
		}
		sc := frame.Swapchain{
			Handle: h,
			Width:  int32(v.RecommendedImageRectWidth),
			Height: int32(v.RecommendedImageRectHeight),
		}
		s.scs = append(s.scs, sc)
		if sc.Images, err = s.rt.EnumerateSwapchainImages(h); err != nil {
			return s.scs, fmt.Errorf("enumerate swapchain %d images: %w", i, err)
		}
		s.scs[len(s.scs)-1] = sc
		s.log.Info("swapchain", zap.Int("view", i), zap.Int32("width", sc.Width), zap.Int32("height", sc.Height), zap.Int("images", len(sc.Images)))
	}
	return s.scs, nil
}

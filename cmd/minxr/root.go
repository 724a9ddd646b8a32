package main

import (
	"context"
	"fmt"

	"github.com/kelseyhightower/envconfig"
	"github.com/spf13/cobra"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"dasa.cc/minxr/glw"
	"dasa.cc/minxr/logging"
	"dasa.cc/minxr/nui"
	"dasa.cc/minxr/session"
	"dasa.cc/minxr/xr"
	"dasa.cc/minxr/xr/sim"
)

const (
	envPrefix   = "MINXR"
	windowTitle = "Example App"
)

type windowConfig struct {
	Width  int `envconfig:"WIDTH" default:"1024"`
	Height int `envconfig:"HEIGHT" default:"768"`
}

type options struct {
	session session.Config
	log     logging.Config
	window  windowConfig
	sim     bool
}

func defaultOptions() *options {
	return &options{
		session: session.DefaultConfig(),
		log:     logging.DefaultConfig(),
		window:  windowConfig{Width: 1024, Height: 768},
	}
}

func (o *options) loadEnv() error {
	if err := envconfig.Process(envPrefix, &o.session); err != nil {
		return fmt.Errorf("session config: %w", err)
	}
	if err := envconfig.Process(envPrefix, &o.log); err != nil {
		return fmt.Errorf("log config: %w", err)
	}
	if err := envconfig.Process(envPrefix, &o.window); err != nil {
		return fmt.Errorf("window config: %w", err)
	}
	return nil
}

func newRootCmd() *cobra.Command {
	o := defaultOptions()
	envErr := o.loadEnv()

	root := &cobra.Command{
		Use:           "minxr",
		Short:         "Render a cube grid to an XR headset",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return envErr
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), o)
		},
	}

	pf := root.PersistentFlags()
	pf.BoolVar(&o.sim, "sim", o.sim, "use the in-process simulated runtime instead of the OpenXR loader")
	pf.StringVar(&o.log.Level, "log-level", o.log.Level, "log level: debug, info, warn or error")
	pf.BoolVar(&o.log.Development, "dev", o.log.Development, "human readable console logs")

	f := root.Flags()
	f.IntVar(&o.window.Width, "width", o.window.Width, "mirror window width")
	f.IntVar(&o.window.Height, "height", o.window.Height, "mirror window height")
	f.Float32Var(&o.session.Near, "near", o.session.Near, "near clip plane in meters")
	f.Float32Var(&o.session.Far, "far", o.session.Far, "far clip plane in meters")
	f.IntVar(&o.session.Grid, "grid", o.session.Grid, "cubes per side of the floor grid")

	root.AddCommand(newExtensionsCmd(o))
	return root
}

// newRuntime returns the OpenXR loader, or the simulator if useSim. alloc
// creates the simulator's swapchain textures and may be nil when no GL
// context exists.
func newRuntime(useSim bool, alloc func(width, height uint32) uint32) (xr.Runtime, error) {
	if !useSim {
		return openRuntime()
	}
	opts := []sim.Option{sim.MinGLVersion(xr.MakeVersion(4, 1, 0))}
	if alloc != nil {
		opts = append(opts, sim.ImageAllocator(alloc))
	}
	return sim.New(opts...), nil
}

func run(ctx context.Context, o *options) (err error) {
	log, err := logging.New(o.log)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	win, err := nui.Open(windowTitle, o.window.Width, o.window.Height)
	if err != nil {
		return err
	}
	defer win.Close()

	procs, err := glw.Init(win.ProcAddr)
	if err != nil {
		return err
	}
	log.Info("gl context",
		zap.String("version", procs.Version),
		zap.String("renderer", procs.Renderer),
		zap.String("vendor", procs.Vendor),
	)

	gfx := glw.NewRenderer(procs, log.Named("gl"))
	rt, err := newRuntime(o.sim, gfx.ColorTexture)
	if err != nil {
		return err
	}

	s, err := session.Build(rt, gfx, o.session, log.Named("session"))
	if err != nil {
		return err
	}
	defer func() { err = multierr.Append(err, s.Close()) }()

	log.Info("session running",
		zap.Int("views", len(s.Views)),
		zap.Uint32("width", s.Views[0].RecommendedImageRectWidth),
		zap.Uint32("height", s.Views[0].RecommendedImageRectHeight),
	)
	if err := s.Run(ctx, win); err != nil {
		return err
	}
	log.Info("session exited", zap.Uint64("frames", s.Frames.Frames()))
	return nil
}

// Command minxr renders a grid of cubes to an XR headset through OpenXR
// and mirrors the first eye into a desktop window.
//
// Configuration is read from MINXR_ prefixed environment variables and
// may be overridden by flags.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"dasa.cc/minxr/xr"
)

func init() {
	// glfw and the GL context must stay on the main thread.
	runtime.LockOSThread()
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := newRootCmd().ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintln(os.Stderr, "minxr:", err)
	}
	os.Exit(exitCode(err))
}

// exitCode is 1 when the runtime cannot share an OpenGL context and -1 for
// any other failure.
func exitCode(err error) int {
	switch {
	case err == nil:
		return 0
	case errors.Is(err, xr.ErrExtensionMissing):
		return 1
	default:
		return -1
	}
}

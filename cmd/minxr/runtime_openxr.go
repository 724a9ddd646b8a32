//go:build linux && cgo && (amd64 || arm64)

package main

import (
	"dasa.cc/minxr/xr"
	"dasa.cc/minxr/xr/openxr"
)

func openRuntime() (xr.Runtime, error) { return openxr.New(), nil }

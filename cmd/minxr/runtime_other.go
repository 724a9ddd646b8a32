//go:build !(linux && cgo && (amd64 || arm64))

package main

import (
	"errors"

	"dasa.cc/minxr/xr"
)

func openRuntime() (xr.Runtime, error) {
	return nil, errors.New("openxr: loader binding requires linux with cgo; run with --sim")
}

// Package openxr binds xr.Runtime to the system OpenXR loader.
//
// The binding links against libopenxr_loader through pkg-config and shares
// the GLX context current on the calling thread with the runtime, so it is
// only built on linux with cgo.
package openxr

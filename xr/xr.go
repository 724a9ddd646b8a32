// Package xr describes the calls a client makes against an XR runtime.
//
// The Runtime interface is the boundary between the frame loop and the
// device stack; package openxr binds it to the OpenXR loader and package
// sim provides an in-process runtime.
package xr

import (
	"fmt"
	"image"

	"dasa.cc/minxr/geom"
)

// OpenGLExtension names the runtime extension enabling OpenGL interop.
const OpenGLExtension = "XR_KHR_opengl_enable"

// Opaque runtime handles. Zero is the null handle.
type (
	Instance  uint64
	Session   uint64
	ActionSet uint64
	Action    uint64
	Space     uint64
	Swapchain uint64
)

// SystemID identifies a device form factor within an instance.
type SystemID uint64

// Path is an interned semantic path such as "/user/hand/left".
type Path uint64

// Time is a runtime timestamp in nanoseconds.
type Time int64

// Duration is a runtime duration in nanoseconds.
type Duration int64

// InfiniteDuration never times out.
const InfiniteDuration Duration = 0x7fffffffffffffff

// Version packs major, minor and patch as 16.16.32 bits.
type Version uint64

func MakeVersion(major, minor, patch uint32) Version {
	return Version(uint64(major&0xffff)<<48 | uint64(minor&0xffff)<<32 | uint64(patch))
}

func (v Version) Major() uint32 { return uint32(v >> 48) }
func (v Version) Minor() uint32 { return uint32(v>>32) & 0xffff }
func (v Version) Patch() uint32 { return uint32(v) }

func (v Version) String() string { return fmt.Sprintf("%d.%d.%d", v.Major(), v.Minor(), v.Patch()) }

type SessionState int32

const (
	StateUnknown SessionState = iota
	StateIdle
	StateReady
	StateSynchronized
	StateVisible
	StateFocused
	StateStopping
	StateLossPending
	StateExiting
)

var stateNames = [...]string{"UNKNOWN", "IDLE", "READY", "SYNCHRONIZED", "VISIBLE", "FOCUSED", "STOPPING", "LOSS_PENDING", "EXITING"}

func (s SessionState) String() string {
	if s >= 0 && int(s) < len(stateNames) {
		return stateNames[s]
	}
	return fmt.Sprintf("SESSION_STATE_%d", int32(s))
}

type FormFactor int32

const (
	FormFactorHeadMountedDisplay FormFactor = 1
	FormFactorHandheldDisplay    FormFactor = 2
)

type ViewConfigurationType int32

const (
	ViewConfigurationPrimaryMono   ViewConfigurationType = 1
	ViewConfigurationPrimaryStereo ViewConfigurationType = 2
)

type ReferenceSpaceType int32

const (
	ReferenceSpaceView  ReferenceSpaceType = 1
	ReferenceSpaceLocal ReferenceSpaceType = 2
	ReferenceSpaceStage ReferenceSpaceType = 3
)

func (t ReferenceSpaceType) String() string {
	switch t {
	case ReferenceSpaceView:
		return "VIEW"
	case ReferenceSpaceLocal:
		return "LOCAL"
	case ReferenceSpaceStage:
		return "STAGE"
	default:
		return fmt.Sprintf("REFERENCE_SPACE_TYPE_%d", int32(t))
	}
}

type ActionType int32

const (
	ActionBooleanInput    ActionType = 1
	ActionFloatInput      ActionType = 2
	ActionVector2fInput   ActionType = 3
	ActionPoseInput       ActionType = 4
	ActionVibrationOutput ActionType = 100
)

type EnvironmentBlendMode int32

const (
	BlendOpaque     EnvironmentBlendMode = 1
	BlendAdditive   EnvironmentBlendMode = 2
	BlendAlphaBlend EnvironmentBlendMode = 3
)

// ExtensionProperties describes one instance extension.
type ExtensionProperties struct {
	Name    string
	Version uint32
}

type InstanceCreateInfo struct {
	ApplicationName    string
	ApplicationVersion uint32
	Extensions         []string
}

type InstanceProperties struct {
	RuntimeName    string
	RuntimeVersion Version
}

type SystemProperties struct {
	SystemName              string
	VendorID                uint32
	MaxLayerCount           uint32
	MaxSwapchainImageWidth  uint32
	MaxSwapchainImageHeight uint32
	OrientationTracking     bool
	PositionTracking        bool
}

// ViewConfig is the runtime's recommendation for rendering one view.
type ViewConfig struct {
	RecommendedImageRectWidth       uint32
	MaxImageRectWidth               uint32
	RecommendedImageRectHeight      uint32
	MaxImageRectHeight              uint32
	RecommendedSwapchainSampleCount uint32
	MaxSwapchainSampleCount         uint32
}

// GraphicsRequirements bounds the graphics API versions a runtime accepts.
type GraphicsRequirements struct {
	MinAPIVersionSupported Version
	MaxAPIVersionSupported Version
}

type ActionSetCreateInfo struct {
	Name, LocalizedName string
	Priority            uint32
}

type ActionCreateInfo struct {
	Type                ActionType
	Name, LocalizedName string
	SubactionPaths      []Path
}

// SuggestedBinding pairs an action with an input or output path.
type SuggestedBinding struct {
	Action  Action
	Binding Path
}

type SwapchainCreateInfo struct {
	Format      int64
	SampleCount uint32
	Width       uint32
	Height      uint32
}

// FrameState is the result of waiting on a frame.
type FrameState struct {
	PredictedDisplayTime   Time
	PredictedDisplayPeriod Duration
	ShouldRender           bool
}

// View is the located pose and field of view of one eye.
type View struct {
	Pose geom.Pose
	Fov  geom.Fov
}

// SpaceLocation is a located space; Pose is meaningful only where the
// corresponding valid flag is set.
type SpaceLocation struct {
	Pose             geom.Pose
	OrientationValid bool
	PositionValid    bool
}

type ActionStateBoolean struct {
	Current, Changed, Active bool
}

type ActionStateFloat struct {
	Current         float32
	Changed, Active bool
}

// HapticVibration is a haptic pulse; zero Duration requests the runtime minimum.
type HapticVibration struct {
	Duration  Duration
	Frequency float32
	Amplitude float32
}

// CompositionLayerProjectionView submits one eye of a projection layer.
type CompositionLayerProjectionView struct {
	Pose      geom.Pose
	Fov       geom.Fov
	Swapchain Swapchain
	ImageRect image.Rectangle
}

// CompositionLayerProjection is a stereo projection layer in Space.
type CompositionLayerProjection struct {
	Space Space
	Views []CompositionLayerProjectionView
}

type FrameEndInfo struct {
	DisplayTime Time
	BlendMode   EnvironmentBlendMode
	Layers      []CompositionLayerProjection
}

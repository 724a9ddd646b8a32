package xr

import "dasa.cc/minxr/geom"

// Runtime is the call surface of an XR runtime. Calls are made from a
// single goroutine; implementations need not be safe for concurrent use.
//
// Enumeration calls return slices sized exactly to the runtime's count.
type Runtime interface {
	EnumerateInstanceExtensionProperties() ([]ExtensionProperties, error)
	CreateInstance(info InstanceCreateInfo) (Instance, error)
	DestroyInstance(instance Instance) error
	GetInstanceProperties(instance Instance) (InstanceProperties, error)

	GetSystem(instance Instance, formFactor FormFactor) (SystemID, error)
	GetSystemProperties(instance Instance, system SystemID) (SystemProperties, error)
	EnumerateViewConfigurationViews(instance Instance, system SystemID, typ ViewConfigurationType) ([]ViewConfig, error)
	GetOpenGLGraphicsRequirements(instance Instance, system SystemID) (GraphicsRequirements, error)

	// CreateSession binds a new session to the graphics context current on
	// the calling thread.
	CreateSession(instance Instance, system SystemID) (Session, error)
	DestroySession(session Session) error
	BeginSession(session Session, typ ViewConfigurationType) error
	EndSession(session Session) error
	RequestExitSession(session Session) error

	// PollEvent returns the next queued event and true, or false if the
	// queue is empty. A non-nil error is a failed call.
	PollEvent(instance Instance) (Event, bool, error)

	StringToPath(instance Instance, path string) (Path, error)
	CreateActionSet(instance Instance, info ActionSetCreateInfo) (ActionSet, error)
	CreateAction(set ActionSet, info ActionCreateInfo) (Action, error)
	SuggestInteractionProfileBindings(instance Instance, profile Path, bindings []SuggestedBinding) error
	AttachSessionActionSets(session Session, sets ...ActionSet) error
	SyncActions(session Session, set ActionSet) error
	GetActionStateBoolean(session Session, action Action, subaction Path) (ActionStateBoolean, error)
	GetActionStateFloat(session Session, action Action, subaction Path) (ActionStateFloat, error)
	GetActionStatePose(session Session, action Action, subaction Path) (active bool, err error)
	ApplyHapticFeedback(session Session, action Action, subaction Path, vibration HapticVibration) error
	StopHapticFeedback(session Session, action Action, subaction Path) error

	EnumerateReferenceSpaces(session Session) ([]ReferenceSpaceType, error)
	CreateReferenceSpace(session Session, typ ReferenceSpaceType, pose geom.Pose) (Space, error)
	CreateActionSpace(session Session, action Action, subaction Path, pose geom.Pose) (Space, error)
	LocateSpace(space, base Space, t Time) (SpaceLocation, error)
	DestroySpace(space Space) error

	EnumerateSwapchainFormats(session Session) ([]int64, error)
	CreateSwapchain(session Session, info SwapchainCreateInfo) (Swapchain, error)
	DestroySwapchain(swapchain Swapchain) error

	// EnumerateSwapchainImages returns the OpenGL texture names of the
	// swapchain ring.
	EnumerateSwapchainImages(swapchain Swapchain) ([]uint32, error)
	AcquireSwapchainImage(swapchain Swapchain) (index uint32, err error)
	WaitSwapchainImage(swapchain Swapchain, timeout Duration) error
	ReleaseSwapchainImage(swapchain Swapchain) error

	WaitFrame(session Session) (FrameState, error)
	BeginFrame(session Session) error
	LocateViews(session Session, typ ViewConfigurationType, t Time, space Space) ([]View, error)
	EndFrame(session Session, info FrameEndInfo) error
}

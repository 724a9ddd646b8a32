//go:build linux && cgo && (amd64 || arm64)

package openxr

/*
#cgo pkg-config: openxr gl x11
#cgo CFLAGS: -DXR_USE_PLATFORM_XLIB -DXR_USE_GRAPHICS_API_OPENGL
#include <stdint.h>
#include <stdlib.h>
#include <X11/Xlib.h>
#include <GL/glx.h>
#include <openxr/openxr.h>
#include <openxr/openxr_platform.h>

#define HANDLE(T, name) \
	static inline T as##name(uint64_t h) { return (T)(uintptr_t)h; } \
	static inline uint64_t from##name(T h) { return (uint64_t)(uintptr_t)h; }

HANDLE(XrInstance, Instance)
HANDLE(XrSession, Session)
HANDLE(XrActionSet, ActionSet)
HANDLE(XrAction, Action)
HANDLE(XrSpace, Space)
HANDLE(XrSwapchain, Swapchain)

static XrVersion apiVersion() { return XR_MAKE_VERSION(1, 0, 0); }

static XrResult getGLRequirements(XrInstance inst, XrSystemId sys, XrGraphicsRequirementsOpenGLKHR *req) {
	PFN_xrGetOpenGLGraphicsRequirementsKHR fn = NULL;
	XrResult r = xrGetInstanceProcAddr(inst, "xrGetOpenGLGraphicsRequirementsKHR", (PFN_xrVoidFunction *)&fn);
	if (XR_FAILED(r)) return r;
	req->type = XR_TYPE_GRAPHICS_REQUIREMENTS_OPENGL_KHR;
	req->next = NULL;
	return fn(inst, sys, req);
}

// createSession binds the GLX context current on this thread.
static XrResult createSession(XrInstance inst, XrSystemId sys, XrSession *out) {
	Display *dpy = glXGetCurrentDisplay();
	GLXContext ctx = glXGetCurrentContext();
	if (!dpy || !ctx) return XR_ERROR_GRAPHICS_DEVICE_INVALID;

	int id = 0;
	glXQueryContext(dpy, ctx, GLX_FBCONFIG_ID, &id);
	int attribs[] = {GLX_FBCONFIG_ID, id, None};
	int n = 0;
	GLXFBConfig *configs = glXChooseFBConfig(dpy, DefaultScreen(dpy), attribs, &n);
	if (!configs || n == 0) return XR_ERROR_GRAPHICS_DEVICE_INVALID;
	XVisualInfo *vi = glXGetVisualFromFBConfig(dpy, configs[0]);

	XrGraphicsBindingOpenGLXlibKHR binding = {XR_TYPE_GRAPHICS_BINDING_OPENGL_XLIB_KHR};
	binding.xDisplay = dpy;
	binding.visualid = vi ? (uint32_t)vi->visualid : 0;
	binding.glxFBConfig = configs[0];
	binding.glxDrawable = glXGetCurrentDrawable();
	binding.glxContext = ctx;

	XrSessionCreateInfo info = {XR_TYPE_SESSION_CREATE_INFO};
	info.next = &binding;
	info.systemId = sys;
	XrResult r = xrCreateSession(inst, &info, out);

	if (vi) XFree(vi);
	XFree(configs);
	return r;
}
*/
import "C"

import (
	"unsafe"

	"dasa.cc/minxr/geom"
	"dasa.cc/minxr/xr"
)

const (
	orientationValid = 0x1
	positionValid    = 0x2

	usageColorAttachment = 0x1
	usageSampled         = 0x20

	minHapticDuration = -1
)

var _ xr.Runtime = (*Runtime)(nil)

// Runtime calls the OpenXR loader. All state lives behind the handles the
// loader returns.
type Runtime struct{}

func New() *Runtime { return &Runtime{} }

func check(call string, r C.XrResult) error { return xr.Check(call, xr.Result(r)) }

// calloc returns n zeroed T in C memory so pointers to it may be embedded
// in structs passed to the loader.
func calloc[T any](n int) []T {
	if n == 0 {
		return nil
	}
	var zero T
	p := C.calloc(C.size_t(n), C.size_t(unsafe.Sizeof(zero)))
	return unsafe.Slice((*T)(p), n)
}

func free[T any](s []T) {
	if len(s) > 0 {
		C.free(unsafe.Pointer(&s[0]))
	}
}

func first[T any](s []T) *T {
	if len(s) == 0 {
		return nil
	}
	return &s[0]
}

// setString copies s into the fixed size buffer dst, truncating to leave a
// terminating zero.
func setString(dst []C.char, s string) {
	n := copy(unsafe.Slice((*byte)(unsafe.Pointer(&dst[0])), len(dst)-1), s)
	dst[n] = 0
}

func goString(src []C.char) string { return C.GoString(&src[0]) }

func cpose(p geom.Pose) C.XrPosef {
	var c C.XrPosef
	c.orientation.x = C.float(p.Orientation[0])
	c.orientation.y = C.float(p.Orientation[1])
	c.orientation.z = C.float(p.Orientation[2])
	c.orientation.w = C.float(p.Orientation[3])
	c.position.x = C.float(p.Position[0])
	c.position.y = C.float(p.Position[1])
	c.position.z = C.float(p.Position[2])
	return c
}

func gopose(c C.XrPosef) geom.Pose {
	var p geom.Pose
	p.Orientation = geom.Quat{float32(c.orientation.x), float32(c.orientation.y), float32(c.orientation.z), float32(c.orientation.w)}
	p.Position[0] = float32(c.position.x)
	p.Position[1] = float32(c.position.y)
	p.Position[2] = float32(c.position.z)
	return p
}

func cfov(f geom.Fov) C.XrFovf {
	return C.XrFovf{
		angleLeft:  C.float(f.AngleLeft),
		angleRight: C.float(f.AngleRight),
		angleUp:    C.float(f.AngleUp),
		angleDown:  C.float(f.AngleDown),
	}
}

func gofov(c C.XrFovf) geom.Fov {
	return geom.Fov{
		AngleLeft:  float32(c.angleLeft),
		AngleRight: float32(c.angleRight),
		AngleUp:    float32(c.angleUp),
		AngleDown:  float32(c.angleDown),
	}
}

func (rt *Runtime) EnumerateInstanceExtensionProperties() ([]xr.ExtensionProperties, error) {
	const call = "xrEnumerateInstanceExtensionProperties"
	var n C.uint32_t
	if err := check(call, C.xrEnumerateInstanceExtensionProperties(nil, 0, &n, nil)); err != nil {
		return nil, err
	}
	props := make([]C.XrExtensionProperties, n)
	for i := range props {
		props[i]._type = C.XR_TYPE_EXTENSION_PROPERTIES
	}
	if err := check(call, C.xrEnumerateInstanceExtensionProperties(nil, n, &n, first(props))); err != nil {
		return nil, err
	}
	exts := make([]xr.ExtensionProperties, n)
	for i, p := range props[:n] {
		exts[i] = xr.ExtensionProperties{Name: goString(p.extensionName[:]), Version: uint32(p.extensionVersion)}
	}
	return exts, nil
}

func (rt *Runtime) CreateInstance(info xr.InstanceCreateInfo) (xr.Instance, error) {
	names := calloc[*C.char](len(info.Extensions))
	for i, s := range info.Extensions {
		names[i] = C.CString(s)
	}
	defer func() {
		for _, p := range names {
			C.free(unsafe.Pointer(p))
		}
		free(names)
	}()

	ci := C.XrInstanceCreateInfo{_type: C.XR_TYPE_INSTANCE_CREATE_INFO}
	setString(ci.applicationInfo.applicationName[:], info.ApplicationName)
	ci.applicationInfo.applicationVersion = C.uint32_t(info.ApplicationVersion)
	ci.applicationInfo.apiVersion = C.apiVersion()
	ci.enabledExtensionCount = C.uint32_t(len(names))
	ci.enabledExtensionNames = first(names)

	var h C.XrInstance
	if err := check("xrCreateInstance", C.xrCreateInstance(&ci, &h)); err != nil {
		return 0, err
	}
	return xr.Instance(C.fromInstance(h)), nil
}

func (rt *Runtime) DestroyInstance(instance xr.Instance) error {
	return check("xrDestroyInstance", C.xrDestroyInstance(C.asInstance(C.uint64_t(instance))))
}

func (rt *Runtime) GetInstanceProperties(instance xr.Instance) (xr.InstanceProperties, error) {
	props := C.XrInstanceProperties{_type: C.XR_TYPE_INSTANCE_PROPERTIES}
	if err := check("xrGetInstanceProperties", C.xrGetInstanceProperties(C.asInstance(C.uint64_t(instance)), &props)); err != nil {
		return xr.InstanceProperties{}, err
	}
	return xr.InstanceProperties{
		RuntimeName:    goString(props.runtimeName[:]),
		RuntimeVersion: xr.Version(props.runtimeVersion),
	}, nil
}

func (rt *Runtime) GetSystem(instance xr.Instance, formFactor xr.FormFactor) (xr.SystemID, error) {
	info := C.XrSystemGetInfo{_type: C.XR_TYPE_SYSTEM_GET_INFO, formFactor: C.XrFormFactor(formFactor)}
	var id C.XrSystemId
	if err := check("xrGetSystem", C.xrGetSystem(C.asInstance(C.uint64_t(instance)), &info, &id)); err != nil {
		return 0, err
	}
	return xr.SystemID(id), nil
}

func (rt *Runtime) GetSystemProperties(instance xr.Instance, system xr.SystemID) (xr.SystemProperties, error) {
	props := C.XrSystemProperties{_type: C.XR_TYPE_SYSTEM_PROPERTIES}
	if err := check("xrGetSystemProperties", C.xrGetSystemProperties(C.asInstance(C.uint64_t(instance)), C.XrSystemId(system), &props)); err != nil {
		return xr.SystemProperties{}, err
	}
	return xr.SystemProperties{
		SystemName:              goString(props.systemName[:]),
		VendorID:                uint32(props.vendorId),
		MaxLayerCount:           uint32(props.graphicsProperties.maxLayerCount),
		MaxSwapchainImageWidth:  uint32(props.graphicsProperties.maxSwapchainImageWidth),
		MaxSwapchainImageHeight: uint32(props.graphicsProperties.maxSwapchainImageHeight),
		OrientationTracking:     props.trackingProperties.orientationTracking != 0,
		PositionTracking:        props.trackingProperties.positionTracking != 0,
	}, nil
}

func (rt *Runtime) EnumerateViewConfigurationViews(instance xr.Instance, system xr.SystemID, typ xr.ViewConfigurationType) ([]xr.ViewConfig, error) {
	const call = "xrEnumerateViewConfigurationViews"
	inst := C.asInstance(C.uint64_t(instance))
	var n C.uint32_t
	if err := check(call, C.xrEnumerateViewConfigurationViews(inst, C.XrSystemId(system), C.XrViewConfigurationType(typ), 0, &n, nil)); err != nil {
		return nil, err
	}
	views := make([]C.XrViewConfigurationView, n)
	for i := range views {
		views[i]._type = C.XR_TYPE_VIEW_CONFIGURATION_VIEW
	}
	if err := check(call, C.xrEnumerateViewConfigurationViews(inst, C.XrSystemId(system), C.XrViewConfigurationType(typ), n, &n, first(views))); err != nil {
		return nil, err
	}
	configs := make([]xr.ViewConfig, n)
	for i, v := range views[:n] {
		configs[i] = xr.ViewConfig{
			RecommendedImageRectWidth:       uint32(v.recommendedImageRectWidth),
			MaxImageRectWidth:               uint32(v.maxImageRectWidth),
			RecommendedImageRectHeight:      uint32(v.recommendedImageRectHeight),
			MaxImageRectHeight:              uint32(v.maxImageRectHeight),
			RecommendedSwapchainSampleCount: uint32(v.recommendedSwapchainSampleCount),
			MaxSwapchainSampleCount:         uint32(v.maxSwapchainSampleCount),
		}
	}
	return configs, nil
}

func (rt *Runtime) GetOpenGLGraphicsRequirements(instance xr.Instance, system xr.SystemID) (xr.GraphicsRequirements, error) {
	var req C.XrGraphicsRequirementsOpenGLKHR
	if err := check("xrGetOpenGLGraphicsRequirementsKHR", C.getGLRequirements(C.asInstance(C.uint64_t(instance)), C.XrSystemId(system), &req)); err != nil {
		return xr.GraphicsRequirements{}, err
	}
	return xr.GraphicsRequirements{
		MinAPIVersionSupported: xr.Version(req.minApiVersionSupported),
		MaxAPIVersionSupported: xr.Version(req.maxApiVersionSupported),
	}, nil
}

func (rt *Runtime) CreateSession(instance xr.Instance, system xr.SystemID) (xr.Session, error) {
	var h C.XrSession
	if err := check("xrCreateSession", C.createSession(C.asInstance(C.uint64_t(instance)), C.XrSystemId(system), &h)); err != nil {
		return 0, err
	}
	return xr.Session(C.fromSession(h)), nil
}

func session(s xr.Session) C.XrSession { return C.asSession(C.uint64_t(s)) }

func (rt *Runtime) DestroySession(s xr.Session) error {
	return check("xrDestroySession", C.xrDestroySession(session(s)))
}

func (rt *Runtime) BeginSession(s xr.Session, typ xr.ViewConfigurationType) error {
	info := C.XrSessionBeginInfo{_type: C.XR_TYPE_SESSION_BEGIN_INFO, primaryViewConfigurationType: C.XrViewConfigurationType(typ)}
	return check("xrBeginSession", C.xrBeginSession(session(s), &info))
}

func (rt *Runtime) EndSession(s xr.Session) error {
	return check("xrEndSession", C.xrEndSession(session(s)))
}

func (rt *Runtime) RequestExitSession(s xr.Session) error {
	return check("xrRequestExitSession", C.xrRequestExitSession(session(s)))
}

func (rt *Runtime) PollEvent(instance xr.Instance) (xr.Event, bool, error) {
	buf := C.XrEventDataBuffer{_type: C.XR_TYPE_EVENT_DATA_BUFFER}
	r := C.xrPollEvent(C.asInstance(C.uint64_t(instance)), &buf)
	if xr.Result(r) == xr.EventUnavailable {
		return nil, false, nil
	}
	if err := check("xrPollEvent", r); err != nil {
		return nil, false, err
	}

	p := unsafe.Pointer(&buf)
	switch buf._type {
	case C.XR_TYPE_EVENT_DATA_SESSION_STATE_CHANGED:
		e := (*C.XrEventDataSessionStateChanged)(p)
		return xr.SessionStateChanged{
			Session: xr.Session(C.fromSession(e.session)),
			State:   xr.SessionState(e.state),
			Time:    xr.Time(e.time),
		}, true, nil
	case C.XR_TYPE_EVENT_DATA_INSTANCE_LOSS_PENDING:
		e := (*C.XrEventDataInstanceLossPending)(p)
		return xr.InstanceLossPending{LossTime: xr.Time(e.lossTime)}, true, nil
	case C.XR_TYPE_EVENT_DATA_EVENTS_LOST:
		e := (*C.XrEventDataEventsLost)(p)
		return xr.EventsLost{Lost: uint32(e.lostEventCount)}, true, nil
	case C.XR_TYPE_EVENT_DATA_REFERENCE_SPACE_CHANGE_PENDING:
		e := (*C.XrEventDataReferenceSpaceChangePending)(p)
		return xr.ReferenceSpaceChangePending{
			Session:   xr.Session(C.fromSession(e.session)),
			SpaceType: xr.ReferenceSpaceType(e.referenceSpaceType),
		}, true, nil
	case C.XR_TYPE_EVENT_DATA_INTERACTION_PROFILE_CHANGED:
		e := (*C.XrEventDataInteractionProfileChanged)(p)
		return xr.InteractionProfileChanged{Session: xr.Session(C.fromSession(e.session))}, true, nil
	default:
		return xr.UnknownEvent{Type: int32(buf._type)}, true, nil
	}
}

func (rt *Runtime) StringToPath(instance xr.Instance, path string) (xr.Path, error) {
	cs := C.CString(path)
	defer C.free(unsafe.Pointer(cs))
	var p C.XrPath
	if err := check("xrStringToPath", C.xrStringToPath(C.asInstance(C.uint64_t(instance)), cs, &p)); err != nil {
		return 0, err
	}
	return xr.Path(p), nil
}

func (rt *Runtime) CreateActionSet(instance xr.Instance, info xr.ActionSetCreateInfo) (xr.ActionSet, error) {
	ci := C.XrActionSetCreateInfo{_type: C.XR_TYPE_ACTION_SET_CREATE_INFO, priority: C.uint32_t(info.Priority)}
	setString(ci.actionSetName[:], info.Name)
	setString(ci.localizedActionSetName[:], info.LocalizedName)
	var h C.XrActionSet
	if err := check("xrCreateActionSet", C.xrCreateActionSet(C.asInstance(C.uint64_t(instance)), &ci, &h)); err != nil {
		return 0, err
	}
	return xr.ActionSet(C.fromActionSet(h)), nil
}

func (rt *Runtime) CreateAction(set xr.ActionSet, info xr.ActionCreateInfo) (xr.Action, error) {
	paths := calloc[C.XrPath](len(info.SubactionPaths))
	defer free(paths)
	for i, p := range info.SubactionPaths {
		paths[i] = C.XrPath(p)
	}

	ci := C.XrActionCreateInfo{
		_type:               C.XR_TYPE_ACTION_CREATE_INFO,
		actionType:          C.XrActionType(info.Type),
		countSubactionPaths: C.uint32_t(len(paths)),
		subactionPaths:      first(paths),
	}
	setString(ci.actionName[:], info.Name)
	setString(ci.localizedActionName[:], info.LocalizedName)

	var h C.XrAction
	if err := check("xrCreateAction", C.xrCreateAction(C.asActionSet(C.uint64_t(set)), &ci, &h)); err != nil {
		return 0, err
	}
	return xr.Action(C.fromAction(h)), nil
}

func (rt *Runtime) SuggestInteractionProfileBindings(instance xr.Instance, profile xr.Path, bindings []xr.SuggestedBinding) error {
	cb := calloc[C.XrActionSuggestedBinding](len(bindings))
	defer free(cb)
	for i, b := range bindings {
		cb[i].action = C.asAction(C.uint64_t(b.Action))
		cb[i].binding = C.XrPath(b.Binding)
	}
	info := C.XrInteractionProfileSuggestedBinding{
		_type:                  C.XR_TYPE_INTERACTION_PROFILE_SUGGESTED_BINDING,
		interactionProfile:     C.XrPath(profile),
		countSuggestedBindings: C.uint32_t(len(cb)),
		suggestedBindings:      first(cb),
	}
	return check("xrSuggestInteractionProfileBindings", C.xrSuggestInteractionProfileBindings(C.asInstance(C.uint64_t(instance)), &info))
}

func (rt *Runtime) AttachSessionActionSets(s xr.Session, sets ...xr.ActionSet) error {
	cs := calloc[C.XrActionSet](len(sets))
	defer free(cs)
	for i, set := range sets {
		cs[i] = C.asActionSet(C.uint64_t(set))
	}
	info := C.XrSessionActionSetsAttachInfo{
		_type:           C.XR_TYPE_SESSION_ACTION_SETS_ATTACH_INFO,
		countActionSets: C.uint32_t(len(cs)),
		actionSets:      first(cs),
	}
	return check("xrAttachSessionActionSets", C.xrAttachSessionActionSets(session(s), &info))
}

func (rt *Runtime) SyncActions(s xr.Session, set xr.ActionSet) error {
	active := calloc[C.XrActiveActionSet](1)
	defer free(active)
	active[0].actionSet = C.asActionSet(C.uint64_t(set))
	info := C.XrActionsSyncInfo{
		_type:                 C.XR_TYPE_ACTIONS_SYNC_INFO,
		countActiveActionSets: 1,
		activeActionSets:      first(active),
	}
	return check("xrSyncActions", C.xrSyncActions(session(s), &info))
}

func stateInfo(action xr.Action, subaction xr.Path) C.XrActionStateGetInfo {
	return C.XrActionStateGetInfo{
		_type:         C.XR_TYPE_ACTION_STATE_GET_INFO,
		action:        C.asAction(C.uint64_t(action)),
		subactionPath: C.XrPath(subaction),
	}
}

func (rt *Runtime) GetActionStateBoolean(s xr.Session, action xr.Action, subaction xr.Path) (xr.ActionStateBoolean, error) {
	info := stateInfo(action, subaction)
	state := C.XrActionStateBoolean{_type: C.XR_TYPE_ACTION_STATE_BOOLEAN}
	if err := check("xrGetActionStateBoolean", C.xrGetActionStateBoolean(session(s), &info, &state)); err != nil {
		return xr.ActionStateBoolean{}, err
	}
	return xr.ActionStateBoolean{
		Current: state.currentState != 0,
		Changed: state.changedSinceLastSync != 0,
		Active:  state.isActive != 0,
	}, nil
}

func (rt *Runtime) GetActionStateFloat(s xr.Session, action xr.Action, subaction xr.Path) (xr.ActionStateFloat, error) {
	info := stateInfo(action, subaction)
	state := C.XrActionStateFloat{_type: C.XR_TYPE_ACTION_STATE_FLOAT}
	if err := check("xrGetActionStateFloat", C.xrGetActionStateFloat(session(s), &info, &state)); err != nil {
		return xr.ActionStateFloat{}, err
	}
	return xr.ActionStateFloat{
		Current: float32(state.currentState),
		Changed: state.changedSinceLastSync != 0,
		Active:  state.isActive != 0,
	}, nil
}

func (rt *Runtime) GetActionStatePose(s xr.Session, action xr.Action, subaction xr.Path) (bool, error) {
	info := stateInfo(action, subaction)
	state := C.XrActionStatePose{_type: C.XR_TYPE_ACTION_STATE_POSE}
	if err := check("xrGetActionStatePose", C.xrGetActionStatePose(session(s), &info, &state)); err != nil {
		return false, err
	}
	return state.isActive != 0, nil
}

func hapticInfo(action xr.Action, subaction xr.Path) C.XrHapticActionInfo {
	return C.XrHapticActionInfo{
		_type:         C.XR_TYPE_HAPTIC_ACTION_INFO,
		action:        C.asAction(C.uint64_t(action)),
		subactionPath: C.XrPath(subaction),
	}
}

func (rt *Runtime) ApplyHapticFeedback(s xr.Session, action xr.Action, subaction xr.Path, v xr.HapticVibration) error {
	info := hapticInfo(action, subaction)
	vib := C.XrHapticVibration{
		_type:     C.XR_TYPE_HAPTIC_VIBRATION,
		duration:  C.XrDuration(v.Duration),
		frequency: C.float(v.Frequency),
		amplitude: C.float(v.Amplitude),
	}
	if v.Duration == 0 {
		vib.duration = minHapticDuration
	}
	return check("xrApplyHapticFeedback", C.xrApplyHapticFeedback(session(s), &info, (*C.XrHapticBaseHeader)(unsafe.Pointer(&vib))))
}

func (rt *Runtime) StopHapticFeedback(s xr.Session, action xr.Action, subaction xr.Path) error {
	info := hapticInfo(action, subaction)
	return check("xrStopHapticFeedback", C.xrStopHapticFeedback(session(s), &info))
}

func (rt *Runtime) EnumerateReferenceSpaces(s xr.Session) ([]xr.ReferenceSpaceType, error) {
	const call = "xrEnumerateReferenceSpaces"
	var n C.uint32_t
	if err := check(call, C.xrEnumerateReferenceSpaces(session(s), 0, &n, nil)); err != nil {
		return nil, err
	}
	types := make([]C.XrReferenceSpaceType, n)
	if err := check(call, C.xrEnumerateReferenceSpaces(session(s), n, &n, first(types))); err != nil {
		return nil, err
	}
	spaces := make([]xr.ReferenceSpaceType, n)
	for i, t := range types[:n] {
		spaces[i] = xr.ReferenceSpaceType(t)
	}
	return spaces, nil
}

func (rt *Runtime) CreateReferenceSpace(s xr.Session, typ xr.ReferenceSpaceType, pose geom.Pose) (xr.Space, error) {
	info := C.XrReferenceSpaceCreateInfo{
		_type:                C.XR_TYPE_REFERENCE_SPACE_CREATE_INFO,
		referenceSpaceType:   C.XrReferenceSpaceType(typ),
		poseInReferenceSpace: cpose(pose),
	}
	var h C.XrSpace
	if err := check("xrCreateReferenceSpace", C.xrCreateReferenceSpace(session(s), &info, &h)); err != nil {
		return 0, err
	}
	return xr.Space(C.fromSpace(h)), nil
}

func (rt *Runtime) CreateActionSpace(s xr.Session, action xr.Action, subaction xr.Path, pose geom.Pose) (xr.Space, error) {
	info := C.XrActionSpaceCreateInfo{
		_type:             C.XR_TYPE_ACTION_SPACE_CREATE_INFO,
		action:            C.asAction(C.uint64_t(action)),
		subactionPath:     C.XrPath(subaction),
		poseInActionSpace: cpose(pose),
	}
	var h C.XrSpace
	if err := check("xrCreateActionSpace", C.xrCreateActionSpace(session(s), &info, &h)); err != nil {
		return 0, err
	}
	return xr.Space(C.fromSpace(h)), nil
}

func (rt *Runtime) LocateSpace(space, base xr.Space, t xr.Time) (xr.SpaceLocation, error) {
	loc := C.XrSpaceLocation{_type: C.XR_TYPE_SPACE_LOCATION}
	if err := check("xrLocateSpace", C.xrLocateSpace(C.asSpace(C.uint64_t(space)), C.asSpace(C.uint64_t(base)), C.XrTime(t), &loc)); err != nil {
		return xr.SpaceLocation{}, err
	}
	return xr.SpaceLocation{
		Pose:             gopose(loc.pose),
		OrientationValid: loc.locationFlags&orientationValid != 0,
		PositionValid:    loc.locationFlags&positionValid != 0,
	}, nil
}

func (rt *Runtime) DestroySpace(space xr.Space) error {
	return check("xrDestroySpace", C.xrDestroySpace(C.asSpace(C.uint64_t(space))))
}

func (rt *Runtime) EnumerateSwapchainFormats(s xr.Session) ([]int64, error) {
	const call = "xrEnumerateSwapchainFormats"
	var n C.uint32_t
	if err := check(call, C.xrEnumerateSwapchainFormats(session(s), 0, &n, nil)); err != nil {
		return nil, err
	}
	formats := make([]C.int64_t, n)
	if err := check(call, C.xrEnumerateSwapchainFormats(session(s), n, &n, first(formats))); err != nil {
		return nil, err
	}
	out := make([]int64, n)
	for i, f := range formats[:n] {
		out[i] = int64(f)
	}
	return out, nil
}

func (rt *Runtime) CreateSwapchain(s xr.Session, info xr.SwapchainCreateInfo) (xr.Swapchain, error) {
	ci := C.XrSwapchainCreateInfo{
		_type:       C.XR_TYPE_SWAPCHAIN_CREATE_INFO,
		usageFlags:  usageSampled | usageColorAttachment,
		format:      C.int64_t(info.Format),
		sampleCount: C.uint32_t(info.SampleCount),
		width:       C.uint32_t(info.Width),
		height:      C.uint32_t(info.Height),
		faceCount:   1,
		arraySize:   1,
		mipCount:    1,
	}
	var h C.XrSwapchain
	if err := check("xrCreateSwapchain", C.xrCreateSwapchain(session(s), &ci, &h)); err != nil {
		return 0, err
	}
	return xr.Swapchain(C.fromSwapchain(h)), nil
}

func swapchain(sc xr.Swapchain) C.XrSwapchain { return C.asSwapchain(C.uint64_t(sc)) }

func (rt *Runtime) DestroySwapchain(sc xr.Swapchain) error {
	return check("xrDestroySwapchain", C.xrDestroySwapchain(swapchain(sc)))
}

func (rt *Runtime) EnumerateSwapchainImages(sc xr.Swapchain) ([]uint32, error) {
	const call = "xrEnumerateSwapchainImages"
	var n C.uint32_t
	if err := check(call, C.xrEnumerateSwapchainImages(swapchain(sc), 0, &n, nil)); err != nil {
		return nil, err
	}
	images := make([]C.XrSwapchainImageOpenGLKHR, n)
	for i := range images {
		images[i]._type = C.XR_TYPE_SWAPCHAIN_IMAGE_OPENGL_KHR
	}
	var base *C.XrSwapchainImageBaseHeader
	if n > 0 {
		base = (*C.XrSwapchainImageBaseHeader)(unsafe.Pointer(&images[0]))
	}
	if err := check(call, C.xrEnumerateSwapchainImages(swapchain(sc), n, &n, base)); err != nil {
		return nil, err
	}
	textures := make([]uint32, n)
	for i, img := range images[:n] {
		textures[i] = uint32(img.image)
	}
	return textures, nil
}

func (rt *Runtime) AcquireSwapchainImage(sc xr.Swapchain) (uint32, error) {
	info := C.XrSwapchainImageAcquireInfo{_type: C.XR_TYPE_SWAPCHAIN_IMAGE_ACQUIRE_INFO}
	var index C.uint32_t
	if err := check("xrAcquireSwapchainImage", C.xrAcquireSwapchainImage(swapchain(sc), &info, &index)); err != nil {
		return 0, err
	}
	return uint32(index), nil
}

func (rt *Runtime) WaitSwapchainImage(sc xr.Swapchain, timeout xr.Duration) error {
	info := C.XrSwapchainImageWaitInfo{_type: C.XR_TYPE_SWAPCHAIN_IMAGE_WAIT_INFO, timeout: C.XrDuration(timeout)}
	return check("xrWaitSwapchainImage", C.xrWaitSwapchainImage(swapchain(sc), &info))
}

func (rt *Runtime) ReleaseSwapchainImage(sc xr.Swapchain) error {
	info := C.XrSwapchainImageReleaseInfo{_type: C.XR_TYPE_SWAPCHAIN_IMAGE_RELEASE_INFO}
	return check("xrReleaseSwapchainImage", C.xrReleaseSwapchainImage(swapchain(sc), &info))
}

func (rt *Runtime) WaitFrame(s xr.Session) (xr.FrameState, error) {
	info := C.XrFrameWaitInfo{_type: C.XR_TYPE_FRAME_WAIT_INFO}
	state := C.XrFrameState{_type: C.XR_TYPE_FRAME_STATE}
	if err := check("xrWaitFrame", C.xrWaitFrame(session(s), &info, &state)); err != nil {
		return xr.FrameState{}, err
	}
	return xr.FrameState{
		PredictedDisplayTime:   xr.Time(state.predictedDisplayTime),
		PredictedDisplayPeriod: xr.Duration(state.predictedDisplayPeriod),
		ShouldRender:           state.shouldRender != 0,
	}, nil
}

func (rt *Runtime) BeginFrame(s xr.Session) error {
	info := C.XrFrameBeginInfo{_type: C.XR_TYPE_FRAME_BEGIN_INFO}
	return check("xrBeginFrame", C.xrBeginFrame(session(s), &info))
}

func (rt *Runtime) LocateViews(s xr.Session, typ xr.ViewConfigurationType, t xr.Time, space xr.Space) ([]xr.View, error) {
	const call = "xrLocateViews"
	info := C.XrViewLocateInfo{
		_type:                 C.XR_TYPE_VIEW_LOCATE_INFO,
		viewConfigurationType: C.XrViewConfigurationType(typ),
		displayTime:           C.XrTime(t),
		space:                 C.asSpace(C.uint64_t(space)),
	}
	state := C.XrViewState{_type: C.XR_TYPE_VIEW_STATE}
	var n C.uint32_t
	if err := check(call, C.xrLocateViews(session(s), &info, &state, 0, &n, nil)); err != nil {
		return nil, err
	}
	views := make([]C.XrView, n)
	for i := range views {
		views[i]._type = C.XR_TYPE_VIEW
	}
	if err := check(call, C.xrLocateViews(session(s), &info, &state, n, &n, first(views))); err != nil {
		return nil, err
	}
	out := make([]xr.View, n)
	for i, v := range views[:n] {
		out[i] = xr.View{Pose: gopose(v.pose), Fov: gofov(v.fov)}
	}
	return out, nil
}

func (rt *Runtime) EndFrame(s xr.Session, info xr.FrameEndInfo) error {
	layers := calloc[C.XrCompositionLayerProjection](len(info.Layers))
	defer free(layers)
	headers := calloc[*C.XrCompositionLayerBaseHeader](len(info.Layers))
	defer free(headers)

	for i, l := range info.Layers {
		views := calloc[C.XrCompositionLayerProjectionView](len(l.Views))
		defer free(views)
		for j, v := range l.Views {
			views[j] = C.XrCompositionLayerProjectionView{
				_type: C.XR_TYPE_COMPOSITION_LAYER_PROJECTION_VIEW,
				pose:  cpose(v.Pose),
				fov:   cfov(v.Fov),
			}
			views[j].subImage.swapchain = swapchain(v.Swapchain)
			views[j].subImage.imageRect.offset.x = C.int32_t(v.ImageRect.Min.X)
			views[j].subImage.imageRect.offset.y = C.int32_t(v.ImageRect.Min.Y)
			views[j].subImage.imageRect.extent.width = C.int32_t(v.ImageRect.Dx())
			views[j].subImage.imageRect.extent.height = C.int32_t(v.ImageRect.Dy())
		}
		layers[i] = C.XrCompositionLayerProjection{
			_type:     C.XR_TYPE_COMPOSITION_LAYER_PROJECTION,
			space:     C.asSpace(C.uint64_t(l.Space)),
			viewCount: C.uint32_t(len(views)),
			views:     first(views),
		}
		headers[i] = (*C.XrCompositionLayerBaseHeader)(unsafe.Pointer(&layers[i]))
	}

	end := C.XrFrameEndInfo{
		_type:                C.XR_TYPE_FRAME_END_INFO,
		displayTime:          C.XrTime(info.DisplayTime),
		environmentBlendMode: C.XrEnvironmentBlendMode(info.BlendMode),
		layerCount:           C.uint32_t(len(headers)),
		layers:               first(headers),
	}
	return check("xrEndFrame", C.xrEndFrame(session(s), &end))
}

// Package sim implements xr.Runtime in process.
//
// The simulated runtime walks a session through its full lifecycle, paces
// frames, hands out swapchain images from a ring and rejects calls made out
// of order with the same results a conformant runtime returns. Every call
// is recorded so the call sequence of a client can be inspected.
package sim

import (
	"fmt"
	"math"
	"time"

	"golang.org/x/image/math/f32"

	"dasa.cc/minxr/cycle"
	"dasa.cc/minxr/geom"
	"dasa.cc/minxr/xr"
)

// GL internal formats offered for swapchains.
const (
	FormatSRGB8Alpha8 int64 = 0x8C43
	FormatRGBA8       int64 = 0x8058
)

var _ xr.Runtime = (*Runtime)(nil)

// Option configures a Runtime.
type Option func(*options)

type options struct {
	name         string
	extensions   []string
	views        []xr.ViewConfig
	formats      []int64
	images       int
	minGL        xr.Version
	fov          geom.Fov
	period       time.Duration
	shouldRender func(frame int) bool
	alloc        func(width, height uint32) uint32
	autoStart    bool
	fail         map[string]xr.Result
}

// Extensions sets the extensions the runtime reports.
func Extensions(names ...string) Option {
	return func(o *options) { o.extensions = names }
}

// Views sets n identical view configurations of width by height.
func Views(n int, width, height uint32) Option {
	return func(o *options) {
		o.views = make([]xr.ViewConfig, n)
		for i := range o.views {
			o.views[i] = xr.ViewConfig{
				RecommendedImageRectWidth:       width,
				MaxImageRectWidth:               2 * width,
				RecommendedImageRectHeight:      height,
				MaxImageRectHeight:              2 * height,
				RecommendedSwapchainSampleCount: 1,
				MaxSwapchainSampleCount:         4,
			}
		}
	}
}

// Formats sets the swapchain formats in order of runtime preference.
func Formats(formats ...int64) Option {
	return func(o *options) { o.formats = formats }
}

// Images sets the number of images in each swapchain ring.
func Images(n int) Option {
	return func(o *options) { o.images = n }
}

// MinGLVersion sets the oldest OpenGL version the runtime accepts.
func MinGLVersion(v xr.Version) Option {
	return func(o *options) { o.minGL = v }
}

// FieldOfView sets the fov of every located view.
func FieldOfView(fov geom.Fov) Option {
	return func(o *options) { o.fov = fov }
}

// FramePeriod sets how long WaitFrame blocks; zero never blocks.
func FramePeriod(d time.Duration) Option {
	return func(o *options) { o.period = d }
}

// ShouldRender decides the should-render flag of each waited frame,
// counting from zero.
func ShouldRender(f func(frame int) bool) Option {
	return func(o *options) { o.shouldRender = f }
}

// ImageAllocator creates the texture name of each swapchain image.
func ImageAllocator(f func(width, height uint32) uint32) Option {
	return func(o *options) { o.alloc = f }
}

// Manual disables the lifecycle events queued on session create and begin;
// use Push to deliver events instead.
func Manual(o *options) { o.autoStart = false }

// Fail makes every call named call return r.
func Fail(call string, r xr.Result) Option {
	return func(o *options) { o.fail[call] = r }
}

type swapchain struct {
	info   xr.SwapchainCreateInfo
	images []uint32
	ring   *cycle.R
}

type action struct {
	info  xr.ActionCreateInfo
	bools map[xr.Path]bool
	float map[xr.Path]float32
}

// Runtime is a simulated XR runtime. The zero value is not usable; see New.
type Runtime struct {
	opts options

	calls  []string
	events []xr.Event
	handle uint64

	instance xr.Instance
	session  xr.Session
	state    xr.SessionState
	running  bool

	paths      map[string]xr.Path
	actions    map[xr.Action]*action
	attached   bool
	spaces     map[xr.Space]geom.Pose
	swapchains map[xr.Swapchain]*swapchain

	frames  int
	waited  bool
	begun   bool
	epoch   time.Time
	display xr.Time

	// Submitted holds every FrameEndInfo passed to EndFrame.
	Submitted []xr.FrameEndInfo

	// Haptics counts ApplyHapticFeedback calls by subaction path.
	Haptics map[string]int
}

// New returns a runtime reporting the OpenGL extension, two 960x1080
// views and three image swapchains unless overridden by options.
func New(opts ...Option) *Runtime {
	rt := &Runtime{
		opts: options{
			name:       "minxr simulator",
			extensions: []string{"XR_EXT_debug_utils", xr.OpenGLExtension},
			formats:    []int64{FormatSRGB8Alpha8, FormatRGBA8},
			images:     3,
			minGL:      xr.MakeVersion(4, 3, 0),
			fov:        geom.Fov{AngleLeft: -0.6, AngleRight: 0.6, AngleUp: 0.55, AngleDown: -0.55},
			autoStart:  true,
			fail:       make(map[string]xr.Result),
		},
		paths:      make(map[string]xr.Path),
		actions:    make(map[xr.Action]*action),
		spaces:     make(map[xr.Space]geom.Pose),
		swapchains: make(map[xr.Swapchain]*swapchain),
		Haptics:    make(map[string]int),
		epoch:      time.Now(),
	}
	Views(2, 960, 1080)(&rt.opts)
	for _, opt := range opts {
		opt(&rt.opts)
	}
	return rt
}

// Calls returns the names of calls made so far in order.
func (rt *Runtime) Calls() []string { return append([]string(nil), rt.calls...) }

// Count returns how many times call was made.
func (rt *Runtime) Count(call string) (n int) {
	for _, c := range rt.calls {
		if c == call {
			n++
		}
	}
	return n
}

// Reset forgets recorded calls and submitted frames.
func (rt *Runtime) Reset() {
	rt.calls = rt.calls[:0]
	rt.Submitted = rt.Submitted[:0]
}

// Push queues ev for PollEvent. A session state change also moves the
// runtime's own view of the session state.
func (rt *Runtime) Push(ev xr.Event) {
	if sc, ok := ev.(xr.SessionStateChanged); ok {
		if sc.Session == 0 {
			sc.Session = rt.session
		}
		rt.state = sc.State
		ev = sc
	}
	rt.events = append(rt.events, ev)
}

// State returns the runtime's session state.
func (rt *Runtime) State() xr.SessionState { return rt.state }

// Running reports whether the session is between begin and end.
func (rt *Runtime) Running() bool { return rt.running }

// Images returns the texture names of swapchain sc.
func (rt *Runtime) Images(sc xr.Swapchain) []uint32 {
	if s, ok := rt.swapchains[sc]; ok {
		return s.images
	}
	return nil
}

// SetBoolean sets the boolean input of the named action for subaction path.
func (rt *Runtime) SetBoolean(name, subaction string, v bool) {
	if a := rt.named(name); a != nil {
		a.bools[rt.paths[subaction]] = v
	}
}

// SetFloat sets the float input of the named action for subaction path.
func (rt *Runtime) SetFloat(name, subaction string, v float32) {
	if a := rt.named(name); a != nil {
		a.float[rt.paths[subaction]] = v
	}
}

func (rt *Runtime) named(name string) *action {
	for _, a := range rt.actions {
		if a.info.Name == name {
			return a
		}
	}
	return nil
}

func (rt *Runtime) call(name string) error {
	rt.calls = append(rt.calls, name)
	if r, ok := rt.opts.fail[name]; ok {
		return xr.Check(name, r)
	}
	return nil
}

func (rt *Runtime) newHandle() uint64 {
	rt.handle++
	return rt.handle
}

func (rt *Runtime) now() xr.Time { return xr.Time(time.Since(rt.epoch)) }

func (rt *Runtime) checkInstance(call string, instance xr.Instance) error {
	if instance == 0 || instance != rt.instance {
		return xr.Check(call, xr.ErrorHandleInvalid)
	}
	return nil
}

func (rt *Runtime) checkSession(call string, session xr.Session) error {
	if session == 0 || session != rt.session {
		return xr.Check(call, xr.ErrorHandleInvalid)
	}
	return nil
}

func (rt *Runtime) EnumerateInstanceExtensionProperties() ([]xr.ExtensionProperties, error) {
	if err := rt.call("EnumerateInstanceExtensionProperties"); err != nil {
		return nil, err
	}
	props := make([]xr.ExtensionProperties, len(rt.opts.extensions))
	for i, name := range rt.opts.extensions {
		props[i] = xr.ExtensionProperties{Name: name, Version: 1}
	}
	return props, nil
}

func (rt *Runtime) CreateInstance(info xr.InstanceCreateInfo) (xr.Instance, error) {
	if err := rt.call("CreateInstance"); err != nil {
		return 0, err
	}
	for _, ext := range info.Extensions {
		found := false
		for _, have := range rt.opts.extensions {
			found = found || have == ext
		}
		if !found {
			return 0, xr.Check("CreateInstance", xr.ErrorExtensionNotPresent)
		}
	}
	rt.instance = xr.Instance(rt.newHandle())
	return rt.instance, nil
}

func (rt *Runtime) DestroyInstance(instance xr.Instance) error {
	if err := rt.call("DestroyInstance"); err != nil {
		return err
	}
	if err := rt.checkInstance("DestroyInstance", instance); err != nil {
		return err
	}
	rt.instance = 0
	return nil
}

func (rt *Runtime) GetInstanceProperties(instance xr.Instance) (xr.InstanceProperties, error) {
	if err := rt.call("GetInstanceProperties"); err != nil {
		return xr.InstanceProperties{}, err
	}
	return xr.InstanceProperties{RuntimeName: rt.opts.name, RuntimeVersion: xr.MakeVersion(1, 0, 0)},
		rt.checkInstance("GetInstanceProperties", instance)
}

func (rt *Runtime) GetSystem(instance xr.Instance, formFactor xr.FormFactor) (xr.SystemID, error) {
	if err := rt.call("GetSystem"); err != nil {
		return 0, err
	}
	if err := rt.checkInstance("GetSystem", instance); err != nil {
		return 0, err
	}
	if formFactor != xr.FormFactorHeadMountedDisplay {
		return 0, xr.Check("GetSystem", xr.ErrorFormFactorUnavailable)
	}
	return 1, nil
}

func (rt *Runtime) GetSystemProperties(instance xr.Instance, system xr.SystemID) (xr.SystemProperties, error) {
	if err := rt.call("GetSystemProperties"); err != nil {
		return xr.SystemProperties{}, err
	}
	return xr.SystemProperties{
		SystemName:              rt.opts.name,
		MaxLayerCount:           16,
		MaxSwapchainImageWidth:  4096,
		MaxSwapchainImageHeight: 4096,
		OrientationTracking:     true,
		PositionTracking:        true,
	}, rt.checkInstance("GetSystemProperties", instance)
}

func (rt *Runtime) EnumerateViewConfigurationViews(instance xr.Instance, system xr.SystemID, typ xr.ViewConfigurationType) ([]xr.ViewConfig, error) {
	if err := rt.call("EnumerateViewConfigurationViews"); err != nil {
		return nil, err
	}
	if err := rt.checkInstance("EnumerateViewConfigurationViews", instance); err != nil {
		return nil, err
	}
	if typ != xr.ViewConfigurationPrimaryStereo {
		return nil, xr.Check("EnumerateViewConfigurationViews", xr.ErrorViewConfigurationUnsupported)
	}
	return append([]xr.ViewConfig(nil), rt.opts.views...), nil
}

func (rt *Runtime) GetOpenGLGraphicsRequirements(instance xr.Instance, system xr.SystemID) (xr.GraphicsRequirements, error) {
	if err := rt.call("GetOpenGLGraphicsRequirements"); err != nil {
		return xr.GraphicsRequirements{}, err
	}
	return xr.GraphicsRequirements{
		MinAPIVersionSupported: rt.opts.minGL,
		MaxAPIVersionSupported: xr.MakeVersion(4, 6, 0),
	}, rt.checkInstance("GetOpenGLGraphicsRequirements", instance)
}

func (rt *Runtime) CreateSession(instance xr.Instance, system xr.SystemID) (xr.Session, error) {
	if err := rt.call("CreateSession"); err != nil {
		return 0, err
	}
	if err := rt.checkInstance("CreateSession", instance); err != nil {
		return 0, err
	}
	rt.session = xr.Session(rt.newHandle())
	if rt.opts.autoStart {
		rt.Push(xr.SessionStateChanged{State: xr.StateIdle, Time: rt.now()})
		rt.Push(xr.SessionStateChanged{State: xr.StateReady, Time: rt.now()})
	}
	return rt.session, nil
}

func (rt *Runtime) DestroySession(session xr.Session) error {
	if err := rt.call("DestroySession"); err != nil {
		return err
	}
	if err := rt.checkSession("DestroySession", session); err != nil {
		return err
	}
	rt.session, rt.running = 0, false
	return nil
}

func (rt *Runtime) BeginSession(session xr.Session, typ xr.ViewConfigurationType) error {
	if err := rt.call("BeginSession"); err != nil {
		return err
	}
	if err := rt.checkSession("BeginSession", session); err != nil {
		return err
	}
	switch {
	case rt.running:
		return xr.Check("BeginSession", xr.ErrorSessionRunning)
	case rt.state != xr.StateReady:
		return xr.Check("BeginSession", xr.ErrorSessionNotReady)
	case typ != xr.ViewConfigurationPrimaryStereo:
		return xr.Check("BeginSession", xr.ErrorViewConfigurationUnsupported)
	}
	rt.running = true
	if rt.opts.autoStart {
		rt.Push(xr.SessionStateChanged{State: xr.StateSynchronized, Time: rt.now()})
		rt.Push(xr.SessionStateChanged{State: xr.StateVisible, Time: rt.now()})
		rt.Push(xr.SessionStateChanged{State: xr.StateFocused, Time: rt.now()})
	}
	return nil
}

func (rt *Runtime) EndSession(session xr.Session) error {
	if err := rt.call("EndSession"); err != nil {
		return err
	}
	if err := rt.checkSession("EndSession", session); err != nil {
		return err
	}
	switch {
	case !rt.running:
		return xr.Check("EndSession", xr.ErrorSessionNotRunning)
	case rt.state != xr.StateStopping:
		return xr.Check("EndSession", xr.ErrorSessionNotStopping)
	}
	rt.running = false
	rt.Push(xr.SessionStateChanged{State: xr.StateIdle, Time: rt.now()})
	rt.Push(xr.SessionStateChanged{State: xr.StateExiting, Time: rt.now()})
	return nil
}

func (rt *Runtime) RequestExitSession(session xr.Session) error {
	if err := rt.call("RequestExitSession"); err != nil {
		return err
	}
	if err := rt.checkSession("RequestExitSession", session); err != nil {
		return err
	}
	if !rt.running {
		return xr.Check("RequestExitSession", xr.ErrorSessionNotRunning)
	}
	rt.Push(xr.SessionStateChanged{State: xr.StateStopping, Time: rt.now()})
	return nil
}

func (rt *Runtime) PollEvent(instance xr.Instance) (xr.Event, bool, error) {
	if err := rt.call("PollEvent"); err != nil {
		return nil, false, err
	}
	if err := rt.checkInstance("PollEvent", instance); err != nil {
		return nil, false, err
	}
	if len(rt.events) == 0 {
		return nil, false, nil
	}
	ev := rt.events[0]
	rt.events = rt.events[1:]
	return ev, true, nil
}

func (rt *Runtime) StringToPath(instance xr.Instance, path string) (xr.Path, error) {
	if err := rt.call("StringToPath"); err != nil {
		return 0, err
	}
	if len(path) == 0 || path[0] != '/' {
		return 0, xr.Check("StringToPath", xr.ErrorPathInvalid)
	}
	if p, ok := rt.paths[path]; ok {
		return p, nil
	}
	p := xr.Path(rt.newHandle())
	rt.paths[path] = p
	return p, nil
}

func (rt *Runtime) CreateActionSet(instance xr.Instance, info xr.ActionSetCreateInfo) (xr.ActionSet, error) {
	if err := rt.call("CreateActionSet"); err != nil {
		return 0, err
	}
	if err := rt.checkInstance("CreateActionSet", instance); err != nil {
		return 0, err
	}
	return xr.ActionSet(rt.newHandle()), nil
}

func (rt *Runtime) CreateAction(set xr.ActionSet, info xr.ActionCreateInfo) (xr.Action, error) {
	if err := rt.call("CreateAction"); err != nil {
		return 0, err
	}
	if set == 0 {
		return 0, xr.Check("CreateAction", xr.ErrorHandleInvalid)
	}
	a := xr.Action(rt.newHandle())
	rt.actions[a] = &action{info: info, bools: make(map[xr.Path]bool), float: make(map[xr.Path]float32)}
	return a, nil
}

func (rt *Runtime) SuggestInteractionProfileBindings(instance xr.Instance, profile xr.Path, bindings []xr.SuggestedBinding) error {
	if err := rt.call("SuggestInteractionProfileBindings"); err != nil {
		return err
	}
	for _, b := range bindings {
		if _, ok := rt.actions[b.Action]; !ok || b.Binding == 0 {
			return xr.Check("SuggestInteractionProfileBindings", xr.ErrorPathInvalid)
		}
	}
	return nil
}

func (rt *Runtime) AttachSessionActionSets(session xr.Session, sets ...xr.ActionSet) error {
	if err := rt.call("AttachSessionActionSets"); err != nil {
		return err
	}
	if err := rt.checkSession("AttachSessionActionSets", session); err != nil {
		return err
	}
	if rt.attached {
		return xr.Check("AttachSessionActionSets", xr.ErrorActionSetsAlreadyAttached)
	}
	rt.attached = true
	return nil
}

func (rt *Runtime) SyncActions(session xr.Session, set xr.ActionSet) error {
	if err := rt.call("SyncActions"); err != nil {
		return err
	}
	if err := rt.checkSession("SyncActions", session); err != nil {
		return err
	}
	if !rt.attached {
		return xr.Check("SyncActions", xr.ErrorActionSetNotAttached)
	}
	if rt.state != xr.StateFocused {
		return xr.Check("SyncActions", xr.SessionNotFocused)
	}
	return nil
}

func (rt *Runtime) GetActionStateBoolean(session xr.Session, a xr.Action, subaction xr.Path) (xr.ActionStateBoolean, error) {
	if err := rt.call("GetActionStateBoolean"); err != nil {
		return xr.ActionStateBoolean{}, err
	}
	act, ok := rt.actions[a]
	if !ok {
		return xr.ActionStateBoolean{}, xr.Check("GetActionStateBoolean", xr.ErrorHandleInvalid)
	}
	return xr.ActionStateBoolean{Current: act.bools[subaction], Active: rt.state == xr.StateFocused}, nil
}

func (rt *Runtime) GetActionStateFloat(session xr.Session, a xr.Action, subaction xr.Path) (xr.ActionStateFloat, error) {
	if err := rt.call("GetActionStateFloat"); err != nil {
		return xr.ActionStateFloat{}, err
	}
	act, ok := rt.actions[a]
	if !ok {
		return xr.ActionStateFloat{}, xr.Check("GetActionStateFloat", xr.ErrorHandleInvalid)
	}
	return xr.ActionStateFloat{Current: act.float[subaction], Active: rt.state == xr.StateFocused}, nil
}

func (rt *Runtime) GetActionStatePose(session xr.Session, a xr.Action, subaction xr.Path) (bool, error) {
	if err := rt.call("GetActionStatePose"); err != nil {
		return false, err
	}
	if _, ok := rt.actions[a]; !ok {
		return false, xr.Check("GetActionStatePose", xr.ErrorHandleInvalid)
	}
	return rt.state == xr.StateFocused, nil
}

func (rt *Runtime) ApplyHapticFeedback(session xr.Session, a xr.Action, subaction xr.Path, vibration xr.HapticVibration) error {
	if err := rt.call("ApplyHapticFeedback"); err != nil {
		return err
	}
	for name, p := range rt.paths {
		if p == subaction {
			rt.Haptics[name]++
		}
	}
	return nil
}

func (rt *Runtime) StopHapticFeedback(session xr.Session, a xr.Action, subaction xr.Path) error {
	return rt.call("StopHapticFeedback")
}

func (rt *Runtime) EnumerateReferenceSpaces(session xr.Session) ([]xr.ReferenceSpaceType, error) {
	if err := rt.call("EnumerateReferenceSpaces"); err != nil {
		return nil, err
	}
	return []xr.ReferenceSpaceType{xr.ReferenceSpaceView, xr.ReferenceSpaceLocal, xr.ReferenceSpaceStage},
		rt.checkSession("EnumerateReferenceSpaces", session)
}

func (rt *Runtime) CreateReferenceSpace(session xr.Session, typ xr.ReferenceSpaceType, pose geom.Pose) (xr.Space, error) {
	if err := rt.call("CreateReferenceSpace"); err != nil {
		return 0, err
	}
	if err := rt.checkSession("CreateReferenceSpace", session); err != nil {
		return 0, err
	}
	s := xr.Space(rt.newHandle())
	rt.spaces[s] = pose
	return s, nil
}

// hand poses relative to stage, left then right
var hands = [2]f32.Vec3{{-0.2, 1.2, -0.4}, {0.2, 1.2, -0.4}}

func (rt *Runtime) CreateActionSpace(session xr.Session, a xr.Action, subaction xr.Path, pose geom.Pose) (xr.Space, error) {
	if err := rt.call("CreateActionSpace"); err != nil {
		return 0, err
	}
	if err := rt.checkSession("CreateActionSpace", session); err != nil {
		return 0, err
	}
	if _, ok := rt.actions[a]; !ok {
		return 0, xr.Check("CreateActionSpace", xr.ErrorHandleInvalid)
	}
	s := xr.Space(rt.newHandle())
	hand := hands[1]
	if subaction == rt.paths["/user/hand/left"] {
		hand = hands[0]
	}
	rt.spaces[s] = geom.Pose{Orientation: pose.Orientation, Position: hand}
	return s, nil
}

func (rt *Runtime) LocateSpace(space, base xr.Space, t xr.Time) (xr.SpaceLocation, error) {
	if err := rt.call("LocateSpace"); err != nil {
		return xr.SpaceLocation{}, err
	}
	pose, ok := rt.spaces[space]
	if _, bok := rt.spaces[base]; !ok || !bok {
		return xr.SpaceLocation{}, xr.Check("LocateSpace", xr.ErrorHandleInvalid)
	}
	bob := float32(0.05 * math.Sin(float64(t)/1e9))
	pose.Position[1] += bob
	return xr.SpaceLocation{Pose: pose, OrientationValid: true, PositionValid: true}, nil
}

func (rt *Runtime) DestroySpace(space xr.Space) error {
	if err := rt.call("DestroySpace"); err != nil {
		return err
	}
	if _, ok := rt.spaces[space]; !ok {
		return xr.Check("DestroySpace", xr.ErrorHandleInvalid)
	}
	delete(rt.spaces, space)
	return nil
}

func (rt *Runtime) EnumerateSwapchainFormats(session xr.Session) ([]int64, error) {
	if err := rt.call("EnumerateSwapchainFormats"); err != nil {
		return nil, err
	}
	return append([]int64(nil), rt.opts.formats...), rt.checkSession("EnumerateSwapchainFormats", session)
}

func (rt *Runtime) CreateSwapchain(session xr.Session, info xr.SwapchainCreateInfo) (xr.Swapchain, error) {
	if err := rt.call("CreateSwapchain"); err != nil {
		return 0, err
	}
	if err := rt.checkSession("CreateSwapchain", session); err != nil {
		return 0, err
	}
	supported := false
	for _, f := range rt.opts.formats {
		supported = supported || f == info.Format
	}
	if !supported {
		return 0, xr.Check("CreateSwapchain", xr.ErrorSwapchainFormatUnsupported)
	}
	ring, err := cycle.New(rt.opts.images)
	if err != nil {
		return 0, xr.Check("CreateSwapchain", xr.ErrorRuntimeFailure)
	}
	sc := &swapchain{info: info, images: make([]uint32, rt.opts.images), ring: ring}
	for i := range sc.images {
		if rt.opts.alloc != nil {
			sc.images[i] = rt.opts.alloc(info.Width, info.Height)
		} else {
			sc.images[i] = uint32(rt.newHandle())
		}
	}
	h := xr.Swapchain(rt.newHandle())
	rt.swapchains[h] = sc
	return h, nil
}

func (rt *Runtime) DestroySwapchain(h xr.Swapchain) error {
	if err := rt.call("DestroySwapchain"); err != nil {
		return err
	}
	if _, ok := rt.swapchains[h]; !ok {
		return xr.Check("DestroySwapchain", xr.ErrorHandleInvalid)
	}
	delete(rt.swapchains, h)
	return nil
}

func (rt *Runtime) EnumerateSwapchainImages(h xr.Swapchain) ([]uint32, error) {
	if err := rt.call("EnumerateSwapchainImages"); err != nil {
		return nil, err
	}
	sc, ok := rt.swapchains[h]
	if !ok {
		return nil, xr.Check("EnumerateSwapchainImages", xr.ErrorHandleInvalid)
	}
	return append([]uint32(nil), sc.images...), nil
}

func (rt *Runtime) AcquireSwapchainImage(h xr.Swapchain) (uint32, error) {
	if err := rt.call("AcquireSwapchainImage"); err != nil {
		return 0, err
	}
	sc, ok := rt.swapchains[h]
	if !ok {
		return 0, xr.Check("AcquireSwapchainImage", xr.ErrorHandleInvalid)
	}
	i, err := sc.ring.Take()
	if err != nil {
		return 0, xr.Check("AcquireSwapchainImage", xr.ErrorCallOrderInvalid)
	}
	return uint32(i), nil
}

func (rt *Runtime) WaitSwapchainImage(h xr.Swapchain, timeout xr.Duration) error {
	if err := rt.call("WaitSwapchainImage"); err != nil {
		return err
	}
	sc, ok := rt.swapchains[h]
	if !ok {
		return xr.Check("WaitSwapchainImage", xr.ErrorHandleInvalid)
	}
	if _, err := sc.ring.Wait(); err != nil {
		return xr.Check("WaitSwapchainImage", xr.ErrorCallOrderInvalid)
	}
	return nil
}

func (rt *Runtime) ReleaseSwapchainImage(h xr.Swapchain) error {
	if err := rt.call("ReleaseSwapchainImage"); err != nil {
		return err
	}
	sc, ok := rt.swapchains[h]
	if !ok {
		return xr.Check("ReleaseSwapchainImage", xr.ErrorHandleInvalid)
	}
	if _, err := sc.ring.Return(); err != nil {
		return xr.Check("ReleaseSwapchainImage", xr.ErrorCallOrderInvalid)
	}
	return nil
}

func (rt *Runtime) WaitFrame(session xr.Session) (xr.FrameState, error) {
	if err := rt.call("WaitFrame"); err != nil {
		return xr.FrameState{}, err
	}
	if err := rt.checkSession("WaitFrame", session); err != nil {
		return xr.FrameState{}, err
	}
	switch {
	case !rt.running:
		return xr.FrameState{}, xr.Check("WaitFrame", xr.ErrorSessionNotRunning)
	case rt.waited:
		return xr.FrameState{}, xr.Check("WaitFrame", xr.ErrorCallOrderInvalid)
	}
	if rt.opts.period > 0 {
		time.Sleep(rt.opts.period)
	}
	should := rt.state == xr.StateVisible || rt.state == xr.StateFocused
	if rt.opts.shouldRender != nil {
		should = rt.opts.shouldRender(rt.frames)
	}
	rt.frames++
	rt.waited = true
	rt.display = rt.now() + xr.Time(2*rt.opts.period)
	return xr.FrameState{
		PredictedDisplayTime:   rt.display,
		PredictedDisplayPeriod: xr.Duration(rt.opts.period),
		ShouldRender:           should,
	}, nil
}

func (rt *Runtime) BeginFrame(session xr.Session) error {
	if err := rt.call("BeginFrame"); err != nil {
		return err
	}
	if err := rt.checkSession("BeginFrame", session); err != nil {
		return err
	}
	if !rt.waited {
		return xr.Check("BeginFrame", xr.ErrorCallOrderInvalid)
	}
	rt.waited, rt.begun = false, true
	return nil
}

// ipd is the simulated distance between the eyes in meters.
const ipd = 0.064

func (rt *Runtime) LocateViews(session xr.Session, typ xr.ViewConfigurationType, t xr.Time, space xr.Space) ([]xr.View, error) {
	if err := rt.call("LocateViews"); err != nil {
		return nil, err
	}
	if err := rt.checkSession("LocateViews", session); err != nil {
		return nil, err
	}
	if _, ok := rt.spaces[space]; !ok {
		return nil, xr.Check("LocateViews", xr.ErrorHandleInvalid)
	}
	yaw := float32(0.3 * math.Sin(float64(t)/2e9))
	head := geom.Pose{Orientation: geom.AxisAngle(f32.Vec3{0, 1, 0}, yaw), Position: f32.Vec3{0, 1.6, 0}}
	views := make([]xr.View, len(rt.opts.views))
	for i := range views {
		offset := float32(i)*ipd - ipd/2
		eye := geom.Apply(geom.PoseMat(head), f32.Vec3{offset, 0, 0})
		views[i] = xr.View{Pose: geom.Pose{Orientation: head.Orientation, Position: eye}, Fov: rt.opts.fov}
	}
	return views, nil
}

func (rt *Runtime) EndFrame(session xr.Session, info xr.FrameEndInfo) error {
	if err := rt.call("EndFrame"); err != nil {
		return err
	}
	if err := rt.checkSession("EndFrame", session); err != nil {
		return err
	}
	if !rt.begun {
		return xr.Check("EndFrame", xr.ErrorCallOrderInvalid)
	}
	rt.begun = false
	for h, sc := range rt.swapchains {
		if sc.ring.Held() > 0 {
			return xr.Check(fmt.Sprintf("EndFrame swapchain %d still acquired", h), xr.ErrorCallOrderInvalid)
		}
	}
	if info.DisplayTime != rt.display {
		return xr.Check("EndFrame", xr.ErrorTimeInvalid)
	}
	if info.BlendMode != xr.BlendOpaque {
		return xr.Check("EndFrame", xr.ErrorBlendModeUnsupported)
	}
	for _, layer := range info.Layers {
		if _, ok := rt.spaces[layer.Space]; !ok {
			return xr.Check("EndFrame", xr.ErrorHandleInvalid)
		}
		if len(layer.Views) != len(rt.opts.views) {
			return xr.Check("EndFrame", xr.ErrorValidationFailure)
		}
		for _, v := range layer.Views {
			if _, ok := rt.swapchains[v.Swapchain]; !ok {
				return xr.Check("EndFrame", xr.ErrorHandleInvalid)
			}
		}
	}
	rt.Submitted = append(rt.Submitted, info)
	return nil
}

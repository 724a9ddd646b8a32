package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/math/f32"

	"dasa.cc/minxr/geom"
	"dasa.cc/minxr/xr"
)

func open(t *testing.T, rt *Runtime) (xr.Instance, xr.Session) {
	t.Helper()
	inst, err := rt.CreateInstance(xr.InstanceCreateInfo{Extensions: []string{xr.OpenGLExtension}})
	require.NoError(t, err)
	sys, err := rt.GetSystem(inst, xr.FormFactorHeadMountedDisplay)
	require.NoError(t, err)
	sess, err := rt.CreateSession(inst, sys)
	require.NoError(t, err)
	return inst, sess
}

func drain(t *testing.T, rt *Runtime, inst xr.Instance) (states []xr.SessionState) {
	t.Helper()
	for {
		ev, ok, err := rt.PollEvent(inst)
		require.NoError(t, err)
		if !ok {
			return states
		}
		if sc, ok := ev.(xr.SessionStateChanged); ok {
			states = append(states, sc.State)
		}
	}
}

func TestLifecycle(t *testing.T) {
	rt := New()
	inst, sess := open(t, rt)
	assert.Equal(t, []xr.SessionState{xr.StateIdle, xr.StateReady}, drain(t, rt, inst))

	require.NoError(t, rt.BeginSession(sess, xr.ViewConfigurationPrimaryStereo))
	assert.Equal(t, []xr.SessionState{xr.StateSynchronized, xr.StateVisible, xr.StateFocused}, drain(t, rt, inst))

	require.NoError(t, rt.RequestExitSession(sess))
	assert.Equal(t, []xr.SessionState{xr.StateStopping}, drain(t, rt, inst))

	require.NoError(t, rt.EndSession(sess))
	assert.Equal(t, []xr.SessionState{xr.StateIdle, xr.StateExiting}, drain(t, rt, inst))
	assert.False(t, rt.Running())
}

func TestBeginBeforeReady(t *testing.T) {
	rt := New(Manual)
	_, sess := open(t, rt)
	err := rt.BeginSession(sess, xr.ViewConfigurationPrimaryStereo)
	r, ok := xr.ResultOf(err)
	require.True(t, ok)
	assert.Equal(t, xr.ErrorSessionNotReady, r)
}

func TestBeginTwice(t *testing.T) {
	rt := New()
	_, sess := open(t, rt)
	require.NoError(t, rt.BeginSession(sess, xr.ViewConfigurationPrimaryStereo))
	r, _ := xr.ResultOf(rt.BeginSession(sess, xr.ViewConfigurationPrimaryStereo))
	assert.Equal(t, xr.ErrorSessionRunning, r)
}

func TestEndNotStopping(t *testing.T) {
	rt := New()
	_, sess := open(t, rt)
	require.NoError(t, rt.BeginSession(sess, xr.ViewConfigurationPrimaryStereo))
	r, _ := xr.ResultOf(rt.EndSession(sess))
	assert.Equal(t, xr.ErrorSessionNotStopping, r)
}

func TestFrameOrder(t *testing.T) {
	rt := New()
	_, sess := open(t, rt)
	require.NoError(t, rt.BeginSession(sess, xr.ViewConfigurationPrimaryStereo))

	r, _ := xr.ResultOf(rt.BeginFrame(sess))
	assert.Equal(t, xr.ErrorCallOrderInvalid, r, "begin without wait")

	fs, err := rt.WaitFrame(sess)
	require.NoError(t, err)
	assert.True(t, fs.ShouldRender)

	r, _ = xr.ResultOf(rt.EndFrame(sess, xr.FrameEndInfo{DisplayTime: fs.PredictedDisplayTime, BlendMode: xr.BlendOpaque}))
	assert.Equal(t, xr.ErrorCallOrderInvalid, r, "end without begin")

	require.NoError(t, rt.BeginFrame(sess))
	require.NoError(t, rt.EndFrame(sess, xr.FrameEndInfo{DisplayTime: fs.PredictedDisplayTime, BlendMode: xr.BlendOpaque}))
	assert.Len(t, rt.Submitted, 1)
}

func TestSwapchainOrder(t *testing.T) {
	rt := New(Images(2))
	_, sess := open(t, rt)
	sc, err := rt.CreateSwapchain(sess, xr.SwapchainCreateInfo{Format: FormatSRGB8Alpha8, Width: 960, Height: 1080, SampleCount: 1})
	require.NoError(t, err)
	images, err := rt.EnumerateSwapchainImages(sc)
	require.NoError(t, err)
	require.Len(t, images, 2)

	r, _ := xr.ResultOf(rt.ReleaseSwapchainImage(sc))
	assert.Equal(t, xr.ErrorCallOrderInvalid, r, "release before acquire")

	for want := uint32(0); want < 4; want++ {
		i, err := rt.AcquireSwapchainImage(sc)
		require.NoError(t, err)
		assert.Equal(t, want%2, i, "ring index")
		r, _ := xr.ResultOf(rt.ReleaseSwapchainImage(sc))
		assert.Equal(t, xr.ErrorCallOrderInvalid, r, "release before wait")
		require.NoError(t, rt.WaitSwapchainImage(sc, xr.InfiniteDuration))
		require.NoError(t, rt.ReleaseSwapchainImage(sc))
	}
}

func TestSwapchainRingFull(t *testing.T) {
	rt := New(Images(2))
	_, sess := open(t, rt)
	sc, err := rt.CreateSwapchain(sess, xr.SwapchainCreateInfo{Format: FormatSRGB8Alpha8, Width: 960, Height: 1080, SampleCount: 1})
	require.NoError(t, err)

	_, err = rt.AcquireSwapchainImage(sc)
	require.NoError(t, err)
	i, err := rt.AcquireSwapchainImage(sc)
	require.NoError(t, err)
	assert.Equal(t, uint32(1), i)

	_, err = rt.AcquireSwapchainImage(sc)
	r, _ := xr.ResultOf(err)
	assert.Equal(t, xr.ErrorCallOrderInvalid, r, "acquire with every image held")

	require.NoError(t, rt.WaitSwapchainImage(sc, xr.InfiniteDuration))
	r, _ = xr.ResultOf(rt.WaitSwapchainImage(sc, xr.InfiniteDuration))
	assert.Equal(t, xr.ErrorCallOrderInvalid, r, "second wait before release")
	require.NoError(t, rt.ReleaseSwapchainImage(sc))

	i, err = rt.AcquireSwapchainImage(sc)
	require.NoError(t, err)
	assert.Equal(t, uint32(0), i, "released image comes around again")
}

func TestUnsupportedFormat(t *testing.T) {
	rt := New(Formats(FormatRGBA8))
	_, sess := open(t, rt)
	_, err := rt.CreateSwapchain(sess, xr.SwapchainCreateInfo{Format: FormatSRGB8Alpha8})
	r, _ := xr.ResultOf(err)
	assert.Equal(t, xr.ErrorSwapchainFormatUnsupported, r)
}

func TestMissingExtension(t *testing.T) {
	rt := New(Extensions("XR_EXT_debug_utils"))
	_, err := rt.CreateInstance(xr.InstanceCreateInfo{Extensions: []string{xr.OpenGLExtension}})
	r, _ := xr.ResultOf(err)
	assert.Equal(t, xr.ErrorExtensionNotPresent, r)
}

func TestFail(t *testing.T) {
	rt := New(Fail("WaitFrame", xr.ErrorRuntimeFailure))
	_, sess := open(t, rt)
	require.NoError(t, rt.BeginSession(sess, xr.ViewConfigurationPrimaryStereo))
	_, err := rt.WaitFrame(sess)
	assert.EqualError(t, err, "WaitFrame failed [XR_ERROR_RUNTIME_FAILURE]")
	assert.Equal(t, 1, rt.Count("WaitFrame"))
}

func TestLocateViews(t *testing.T) {
	rt := New()
	_, sess := open(t, rt)
	stage, err := rt.CreateReferenceSpace(sess, xr.ReferenceSpaceStage, geom.PoseIdent)
	require.NoError(t, err)
	views, err := rt.LocateViews(sess, xr.ViewConfigurationPrimaryStereo, 0, stage)
	require.NoError(t, err)
	require.Len(t, views, 2)
	d := views[1].Pose.Position[0] - views[0].Pose.Position[0]
	assert.InDelta(t, ipd, d, 1e-5)
	assert.Equal(t, float32(1.6), views[0].Pose.Position[1])
}

func TestSpaces(t *testing.T) {
	rt := New()
	_, sess := open(t, rt)
	offset := geom.Pose{Orientation: geom.QuatIdent, Position: f32.Vec3{1, 0, -2}}
	stage, err := rt.CreateReferenceSpace(sess, xr.ReferenceSpaceStage, offset)
	require.NoError(t, err)
	view, err := rt.CreateReferenceSpace(sess, xr.ReferenceSpaceView, geom.PoseIdent)
	require.NoError(t, err)

	loc, err := rt.LocateSpace(stage, view, 0)
	require.NoError(t, err)
	assert.True(t, loc.PositionValid)
	assert.Equal(t, offset, loc.Pose)

	require.NoError(t, rt.DestroySpace(stage))
	_, err = rt.LocateSpace(stage, view, 0)
	r, ok := xr.ResultOf(err)
	require.True(t, ok)
	assert.Equal(t, xr.ErrorHandleInvalid, r)
	assert.Error(t, rt.DestroySpace(stage))
}

func TestCalls(t *testing.T) {
	rt := New()
	open(t, rt)
	assert.Equal(t, []string{"CreateInstance", "GetSystem", "CreateSession"}, rt.Calls())
	rt.Reset()
	assert.Empty(t, rt.Calls())
}

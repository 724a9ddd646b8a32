package session

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"dasa.cc/minxr/xr"
)

func changed(s xr.SessionState) xr.Event { return xr.SessionStateChanged{State: s} }

func TestMachineBeginOnce(t *testing.T) {
	var begins, ends int
	m := &Machine{
		Begin: func() error { begins++; return nil },
		End:   func() error { ends++; return nil },
	}
	assert.False(t, m.Ready())

	for _, s := range []xr.SessionState{xr.StateIdle, xr.StateReady, xr.StateSynchronized, xr.StateReady, xr.StateFocused} {
		require.NoError(t, m.Handle(changed(s)))
	}
	assert.Equal(t, 1, begins)
	assert.True(t, m.Ready())
	assert.True(t, m.Running())
	assert.Equal(t, xr.StateFocused, m.State)

	require.NoError(t, m.Handle(changed(xr.StateStopping)))
	require.NoError(t, m.Handle(changed(xr.StateStopping)))
	assert.Equal(t, 1, ends)
	assert.False(t, m.Ready())
	assert.False(t, m.Running())
	assert.False(t, m.Done())

	require.NoError(t, m.Handle(changed(xr.StateExiting)))
	assert.True(t, m.Done())
}

func TestMachineNotReady(t *testing.T) {
	m := &Machine{Begin: func() error { t.Fatal("begin before ready"); return nil }}
	for _, s := range []xr.SessionState{xr.StateUnknown, xr.StateIdle, xr.StateSynchronized, xr.StateVisible} {
		require.NoError(t, m.Handle(changed(s)))
		assert.False(t, m.Ready(), s.String())
	}
}

func TestMachineBeginFailure(t *testing.T) {
	fail := errors.New("no display")
	m := &Machine{Begin: func() error { return fail }}
	err := m.Handle(changed(xr.StateReady))
	assert.ErrorIs(t, err, fail)
	assert.False(t, m.Ready())
}

func TestMachineStoppingUnbegun(t *testing.T) {
	m := &Machine{End: func() error { t.Fatal("end without begin"); return nil }}
	require.NoError(t, m.Handle(changed(xr.StateStopping)))
}

func TestMachineLoss(t *testing.T) {
	for _, ev := range []xr.Event{changed(xr.StateLossPending), xr.InstanceLossPending{LossTime: 5}} {
		m := &Machine{}
		require.NoError(t, m.Handle(changed(xr.StateReady)))
		require.NoError(t, m.Handle(ev))
		assert.True(t, m.Done(), ev.String())
		assert.False(t, m.Ready(), ev.String())
	}
}

func TestMachineLogsEvents(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	m := &Machine{Logger: zap.New(core)}

	require.NoError(t, m.Handle(xr.UnknownEvent{Type: 1000}))
	require.NoError(t, m.Handle(xr.EventsLost{Lost: 3}))
	require.NoError(t, m.Handle(xr.ReferenceSpaceChangePending{SpaceType: xr.ReferenceSpaceStage}))
	assert.False(t, m.Done())
	assert.Equal(t, xr.StateUnknown, m.State)

	warn := logs.FilterMessage("unhandled event").AllUntimed()
	require.Len(t, warn, 1)
	assert.Equal(t, zapcore.WarnLevel, warn[0].Level)
	assert.Equal(t, int32(1000), warn[0].ContextMap()["type"])

	assert.Equal(t, 2, logs.FilterMessage("event").Len())
}

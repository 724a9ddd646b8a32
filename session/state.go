package session

import (
	"fmt"

	"go.uber.org/zap"

	"dasa.cc/minxr/xr"
)

// Machine tracks the session lifecycle from polled events and gates the
// frame loop. Begin runs once on the first Ready and End runs once on the
// first Stopping after a successful begin.
type Machine struct {
	State xr.SessionState

	Begin func() error
	End   func() error

	Logger *zap.Logger

	begun, ended bool
	ready, done  bool
}

// Handle consumes one event. A non-nil error is fatal.
func (m *Machine) Handle(ev xr.Event) error {
	log := m.Logger
	if log == nil {
		log = zap.NewNop()
	}

	switch e := ev.(type) {
	case xr.SessionStateChanged:
		log.Info("session state changed", zap.Stringer("from", m.State), zap.Stringer("to", e.State))
		m.State = e.State
		switch e.State {
		case xr.StateReady:
			if m.begun {
				break
			}
			if m.Begin != nil {
				if err := m.Begin(); err != nil {
					return fmt.Errorf("begin session: %w", err)
				}
			}
			m.begun, m.ready = true, true
		case xr.StateStopping:
			m.ready = false
			if !m.begun || m.ended {
				break
			}
			m.ended = true
			if m.End != nil {
				if err := m.End(); err != nil {
					return fmt.Errorf("end session: %w", err)
				}
			}
		case xr.StateLossPending, xr.StateExiting:
			m.ready, m.done = false, true
		}
	case xr.InstanceLossPending:
		log.Warn("instance loss pending", zap.Int64("loss_time", int64(e.LossTime)))
		m.ready, m.done = false, true
	case xr.UnknownEvent:
		log.Warn("unhandled event", zap.Int32("type", e.Type))
	default:
		log.Info("event", zap.Stringer("event", ev))
	}
	return nil
}

// Ready reports whether frames may run.
func (m *Machine) Ready() bool { return m.ready }

// Done reports whether the session has ended for good.
func (m *Machine) Done() bool { return m.done }

// Running reports whether the session was begun and not yet ended.
func (m *Machine) Running() bool { return m.begun && !m.ended }

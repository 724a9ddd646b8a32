package xr

import "fmt"

// Event is a runtime event returned by Runtime.PollEvent. The concrete
// types are the variants below.
type Event interface {
	String() string
	event()
}

// SessionStateChanged reports a session lifecycle transition.
type SessionStateChanged struct {
	Session Session
	State   SessionState
	Time    Time
}

// InstanceLossPending reports the instance will be lost at LossTime.
type InstanceLossPending struct{ LossTime Time }

// EventsLost reports Lost events dropped by an overflowing queue.
type EventsLost struct{ Lost uint32 }

// ReferenceSpaceChangePending reports a reference space origin change.
type ReferenceSpaceChangePending struct {
	Session   Session
	SpaceType ReferenceSpaceType
}

// InteractionProfileChanged reports the active input profile changed.
type InteractionProfileChanged struct{ Session Session }

// UnknownEvent is any event type the client does not recognize.
type UnknownEvent struct{ Type int32 }

func (SessionStateChanged) event()         {}
func (InstanceLossPending) event()         {}
func (EventsLost) event()                  {}
func (ReferenceSpaceChangePending) event() {}
func (InteractionProfileChanged) event()   {}
func (UnknownEvent) event()                {}

func (e SessionStateChanged) String() string { return "SESSION_STATE_CHANGED " + e.State.String() }
func (e InstanceLossPending) String() string { return "INSTANCE_LOSS_PENDING" }
func (e EventsLost) String() string          { return fmt.Sprintf("EVENTS_LOST %d", e.Lost) }

func (e ReferenceSpaceChangePending) String() string {
	return "REFERENCE_SPACE_CHANGE_PENDING " + e.SpaceType.String()
}

func (e InteractionProfileChanged) String() string { return "INTERACTION_PROFILE_CHANGED" }
func (e UnknownEvent) String() string              { return fmt.Sprintf("EVENT_TYPE_%d", e.Type) }

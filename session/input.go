package session

import (
	"fmt"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	"dasa.cc/minxr/frame"
	"dasa.cc/minxr/geom"
	"dasa.cc/minxr/xr"
)

// Hands are the subaction paths every action is created for.
var Hands = [2]string{"/user/hand/left", "/user/hand/right"}

// Action names.
const (
	ActionGrab    = "grab_object"
	ActionPose    = "hand_pose"
	ActionVibrate = "vibrate_hand"
	ActionQuit    = "quit_session"
)

// bindings per hand, relative to the hand path
var bindings = []struct {
	action string
	path   string
}{
	{ActionGrab, "/input/select/click"},
	{ActionPose, "/input/grip/pose"},
	{ActionQuit, "/input/menu/click"},
	{ActionVibrate, "/output/haptic"},
}

// Input owns the gameplay action set and the hand spaces.
type Input struct {
	rt      xr.Runtime
	session xr.Session
	log     *zap.Logger

	Set     xr.ActionSet
	Actions map[string]xr.Action
	Paths   [2]xr.Path
	Spaces  [2]xr.Space

	// Threshold is the grab value above which a hand vibrates.
	Threshold float32

	scene    *frame.Scene
	poses    [2]geom.Pose
	quitting bool
}

func newInput(rt xr.Runtime, instance xr.Instance, session xr.Session, profile string, log *zap.Logger) (*Input, error) {
	in := &Input{rt: rt, session: session, log: log, Actions: make(map[string]xr.Action)}

	var err error
	in.Set, err = rt.CreateActionSet(instance, xr.ActionSetCreateInfo{Name: "gameplay", LocalizedName: "Gameplay"})
	if err != nil {
		return in, err
	}
	for i, hand := range Hands {
		if in.Paths[i], err = rt.StringToPath(instance, hand); err != nil {
			return in, err
		}
	}

	for _, a := range []struct {
		typ             xr.ActionType
		name, localized string
	}{
		{xr.ActionFloatInput, ActionGrab, "Grab Object"},
		{xr.ActionPoseInput, ActionPose, "Hand Pose"},
		{xr.ActionVibrationOutput, ActionVibrate, "Vibrate Hand"},
		{xr.ActionBooleanInput, ActionQuit, "Quit Session"},
	} {
		in.Actions[a.name], err = rt.CreateAction(in.Set, xr.ActionCreateInfo{
			Type:           a.typ,
			Name:           a.name,
			LocalizedName:  a.localized,
			SubactionPaths: in.Paths[:],
		})
		if err != nil {
			return in, err
		}
	}

	prof, err := rt.StringToPath(instance, profile)
	if err != nil {
		return in, err
	}
	var suggested []xr.SuggestedBinding
	for _, b := range bindings {
		for _, hand := range Hands {
			p, err := rt.StringToPath(instance, hand+b.path)
			if err != nil {
				return in, err
			}
			suggested = append(suggested, xr.SuggestedBinding{Action: in.Actions[b.action], Binding: p})
		}
	}
	if err := rt.SuggestInteractionProfileBindings(instance, prof, suggested); err != nil {
		return in, err
	}

	for i := range in.Spaces {
		in.Spaces[i], err = rt.CreateActionSpace(session, in.Actions[ActionPose], in.Paths[i], geom.PoseIdent)
		if err != nil {
			return in, err
		}
	}
	return in, rt.AttachSessionActionSets(session, in.Set)
}

// Sync reads the action set. A hand vibrates while grab exceeds the
// threshold; quit requests the session exit once.
func (in *Input) Sync() error {
	if err := in.rt.SyncActions(in.session, in.Set); err != nil {
		return err
	}
	for i, hand := range in.Paths {
		grab, err := in.rt.GetActionStateFloat(in.session, in.Actions[ActionGrab], hand)
		if err != nil {
			return err
		}
		if grab.Active && grab.Current > in.Threshold {
			vib := xr.HapticVibration{Amplitude: 0.5, Frequency: 0}
			if err := in.rt.ApplyHapticFeedback(in.session, in.Actions[ActionVibrate], hand, vib); err != nil {
				return err
			}
		}

		quit, err := in.rt.GetActionStateBoolean(in.session, in.Actions[ActionQuit], hand)
		if err != nil {
			return err
		}
		if quit.Active && quit.Current && !in.quitting {
			in.log.Info("quit requested", zap.String("hand", Hands[i]))
			if err := in.rt.RequestExitSession(in.session); err != nil {
				return err
			}
			in.quitting = true
		}
	}
	return nil
}

// Track locates both hands in base at t and places them in the scene.
// Hands whose pose action is inactive or whose location is invalid are
// removed from the scene.
func (in *Input) Track(t xr.Time, base xr.Space) error {
	for i, hand := range in.Paths {
		active, err := in.rt.GetActionStatePose(in.session, in.Actions[ActionPose], hand)
		if err != nil {
			return err
		}
		if !active {
			in.place(i, nil)
			continue
		}
		loc, err := in.rt.LocateSpace(in.Spaces[i], base, t)
		if err != nil {
			return err
		}
		if !loc.OrientationValid || !loc.PositionValid {
			in.place(i, nil)
			continue
		}
		in.poses[i] = loc.Pose
		in.place(i, &in.poses[i])
	}
	return nil
}

func (in *Input) place(i int, p *geom.Pose) {
	if in.scene != nil {
		in.scene.Hands[i] = p
	}
}

// Close destroys the hand spaces.
func (in *Input) Close() (err error) {
	for i, sp := range in.Spaces {
		if sp != 0 {
			if derr := in.rt.DestroySpace(sp); derr != nil {
				err = multierr.Append(err, fmt.Errorf("destroy %s space: %w", Hands[i], derr))
			}
			in.Spaces[i] = 0
		}
	}
	return err
}

package system

import (
	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"

	"github.com/milk9111/spacesurvival/action"
	"github.com/milk9111/spacesurvival/ecs"
	"github.com/milk9111/spacesurvival/ecs/component"
)

// ActionGateSystem turns raw input samples into motor and camera commands
// and into action events on the bus. Any system may switch a capability off
// to suppress the matching category of actions.
type ActionGateSystem struct {
	bus      *action.Bus
	log      *zap.Logger
	caps     action.Capabilities
	uiInputs bool
}

func NewActionGateSystem(bus *action.Bus, log *zap.Logger) *ActionGateSystem {
	if log == nil {
		log = zap.NewNop()
	}
	return &ActionGateSystem{
		bus:  bus,
		log:  log.Named("gate"),
		caps: action.AllCapabilities(),
	}
}

// RunWhilePaused keeps the gate routing Pause and UI inputs while the
// simulation is stopped.
func (s *ActionGateSystem) RunWhilePaused() bool { return true }

func (s *ActionGateSystem) SetCapability(kind action.Capability, enabled bool) {
	if s.caps.Enabled(kind) == enabled {
		return
	}
	s.caps = s.caps.Set(kind, enabled)
	s.log.Debug("capability changed", zap.Stringer("capability", kind), zap.Bool("enabled", enabled))
}

func (s *ActionGateSystem) Capability(kind action.Capability) bool {
	return s.caps.Enabled(kind)
}

func (s *ActionGateSystem) Capabilities() action.Capabilities {
	return s.caps
}

// SetInterfaceInputs enables or disables the UI input subset as a whole.
func (s *ActionGateSystem) SetInterfaceInputs(enabled bool) {
	s.uiInputs = enabled
}

func (s *ActionGateSystem) InterfaceInputs() bool {
	return s.uiInputs
}

// PollContinuous maps one frame's axes to a world-space move direction, a
// vertical axis and a look delta using the current flags. orientation is the
// motor's facing.
func (s *ActionGateSystem) PollContinuous(sample component.InputSample, orientation mgl32.Quat) (mgl32.Vec3, float32, mgl32.Vec2) {
	return pollContinuous(s.caps, sample, orientation)
}

func pollContinuous(caps action.Capabilities, sample component.InputSample, orientation mgl32.Quat) (mgl32.Vec3, float32, mgl32.Vec2) {
	var (
		dir      mgl32.Vec3
		vertical float32
		look     mgl32.Vec2
	)
	if caps.CanMove() {
		if orientation == (mgl32.Quat{}) {
			orientation = mgl32.QuatIdent()
		}
		forward := orientation.Rotate(component.Forward)
		right := orientation.Rotate(component.Right)
		dir = forward.Mul(sample.Move.Y()).Add(right.Mul(sample.Move.X()))
		vertical = sample.VerticalMove
	}
	if caps.CanRotate() {
		look = sample.Look
	}
	return dir, vertical, look
}

// LookInput returns the sample's look delta, or zero while rotation is
// disabled.
func (s *ActionGateSystem) LookInput(sample component.InputSample) mgl32.Vec2 {
	if !s.caps.CanRotate() {
		return mgl32.Vec2{}
	}
	return sample.Look
}

// HandleTransition routes one discrete input change. It reports whether an
// event was published. The attack and switch flags are read at the moment
// of each transition, so a Started and its Canceled are gated
// independently.
func (s *ActionGateSystem) HandleTransition(binding action.Binding, phase action.Phase) bool {
	if binding.IsUI() && !s.uiInputs {
		return false
	}
	evt, ok := translate(binding, phase)
	if !ok {
		return false
	}
	return s.publish(evt)
}

// HandleScroll publishes Scroll(sign(axis)) for a non-zero reading.
func (s *ActionGateSystem) HandleScroll(axis float32) bool {
	evt, ok := action.Scroll(axis)
	if !ok {
		return false
	}
	return s.publish(evt)
}

func (s *ActionGateSystem) publish(evt action.Event) bool {
	if kind, gated := gateFor(evt.Kind); gated && !s.caps.Enabled(kind) {
		s.log.Debug("action dropped", zap.Stringer("event", evt), zap.Stringer("capability", kind))
		return false
	}
	s.bus.Publish(evt)
	return true
}

// AddFloatingSpeedMultiplier adjusts the vertical speed scale of every
// input-driven motor.
func (s *ActionGateSystem) AddFloatingSpeedMultiplier(w *ecs.World, delta float32) {
	ecs.ForEach2(w, component.InputComponent.Kind(), component.MotorComponent.Kind(), func(_ ecs.Entity, _ *component.InputSample, m *component.Motor) {
		m.FloatingSpeedMultiplier += delta
	})
}

func (s *ActionGateSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	// One read of the flags serves every continuous poll this frame.
	caps := s.caps

	ecs.ForEach(w, component.InputComponent.Kind(), func(e ecs.Entity, in *component.InputSample) {
		orientation := mgl32.QuatIdent()
		motor, hasMotor := ecs.Get(w, e, component.MotorComponent.Kind())
		if hasMotor {
			orientation = motor.Orientation
		}

		dir, vertical, look := pollContinuous(caps, *in, orientation)
		if hasMotor {
			motor.Direction = dir
			motor.Vertical = vertical
		}
		if rig, ok := ecs.Get(w, e, component.CameraRigComponent.Kind()); ok {
			rig.RotationDir = look
		}

		for _, t := range in.Transitions {
			s.HandleTransition(t.Binding, t.Phase)
		}
		s.HandleScroll(in.Scroll)

		in.Transitions = in.Transitions[:0]
		in.Scroll = 0
	})
}

// gateFor names the capability guarding an event kind.
func gateFor(kind action.Kind) (action.Capability, bool) {
	switch kind {
	case action.KindPrimaryAttackStart, action.KindPrimaryAttackStop,
		action.KindSecondaryAttackStart, action.KindSecondaryAttackStop:
		return action.CapabilityAttack, true
	case action.KindSwitchTo, action.KindScroll:
		return action.CapabilitySwitch, true
	}
	return 0, false
}

func translate(binding action.Binding, phase action.Phase) (action.Event, bool) {
	on := func(want action.Phase, kind action.Kind) (action.Event, bool) {
		if phase != want {
			return action.Event{}, false
		}
		return action.Event{Kind: kind}, true
	}

	switch binding {
	case action.BindingSpeedUp:
		if phase == action.PhaseCanceled {
			return action.Event{Kind: action.KindSpeedUpCancel}, true
		}
		return on(action.PhaseStarted, action.KindSpeedUpStart)
	case action.BindingToggleInventory:
		return on(action.PhasePerformed, action.KindInventoryToggle)
	case action.BindingInteraction:
		return on(action.PhasePerformed, action.KindInteract)
	case action.BindingFire:
		if phase == action.PhaseCanceled {
			return action.Event{Kind: action.KindPrimaryAttackStop}, true
		}
		return on(action.PhaseStarted, action.KindPrimaryAttackStart)
	case action.BindingSecondaryFire:
		if phase == action.PhaseCanceled {
			return action.Event{Kind: action.KindSecondaryAttackStop}, true
		}
		return on(action.PhaseStarted, action.KindSecondaryAttackStart)
	case action.BindingReload:
		return on(action.PhasePerformed, action.KindReload)
	case action.BindingSkip:
		return on(action.PhasePerformed, action.KindSkip)
	case action.BindingPause:
		return on(action.PhasePerformed, action.KindPause)
	case action.BindingUIRightClick:
		return on(action.PhaseStarted, action.KindUIRightClick)
	case action.BindingUIClick:
		if phase == action.PhaseCanceled {
			return action.Event{Kind: action.KindUIClickCancel}, true
		}
		return on(action.PhaseStarted, action.KindUIClickStart)
	case action.BindingUIFastDrop:
		return on(action.PhasePerformed, action.KindQuickDrop)
	case action.BindingUIExitUI:
		return on(action.PhasePerformed, action.KindExitUI)
	}

	if slot, ok := binding.HotbarSlot(); ok && phase == action.PhasePerformed {
		return action.SwitchTo(slot), true
	}
	return action.Event{}, false
}

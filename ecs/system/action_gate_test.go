package system

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/milk9111/spacesurvival/action"
	"github.com/milk9111/spacesurvival/ecs"
	"github.com/milk9111/spacesurvival/ecs/component"
)

type eventLog struct {
	events []action.Event
}

func (l *eventLog) handle(e action.Event) { l.events = append(l.events, e) }

func (l *eventLog) kinds() []action.Kind {
	out := make([]action.Kind, 0, len(l.events))
	for _, e := range l.events {
		out = append(out, e.Kind)
	}
	return out
}

func newGate(t *testing.T) (*ActionGateSystem, *eventLog) {
	t.Helper()
	bus := action.NewBus()
	log := &eventLog{}
	bus.Subscribe(log.handle)
	return NewActionGateSystem(bus, nil), log
}

func TestPollContinuousMoveGate(t *testing.T) {
	samples := []component.InputSample{
		{Move: mgl32.Vec2{1, 1}, VerticalMove: 1, Look: mgl32.Vec2{3, 4}},
		{Move: mgl32.Vec2{-0.5, 0.2}, VerticalMove: -1},
		{Move: mgl32.Vec2{0, 1}, VerticalMove: 0.3, Look: mgl32.Vec2{-1, 0}},
	}
	orientations := []mgl32.Quat{
		mgl32.QuatIdent(),
		mgl32.QuatRotate(mgl32.DegToRad(90), component.Up),
		{},
	}

	gate, _ := newGate(t)
	gate.SetCapability(action.CapabilityMove, false)
	for _, s := range samples {
		for _, o := range orientations {
			dir, vertical, _ := gate.PollContinuous(s, o)
			if dir != (mgl32.Vec3{}) || vertical != 0 {
				t.Fatalf("move disabled: got dir=%v vertical=%v for %+v", dir, vertical, s)
			}
		}
	}
}

func TestPollContinuousMapsThroughOrientation(t *testing.T) {
	gate, _ := newGate(t)
	cases := []struct {
		name        string
		orientation mgl32.Quat
		move        mgl32.Vec2
		want        mgl32.Vec3
	}{
		{"forward_identity", mgl32.QuatIdent(), mgl32.Vec2{0, 1}, mgl32.Vec3{0, 0, 1}},
		{"strafe_identity", mgl32.QuatIdent(), mgl32.Vec2{1, 0}, mgl32.Vec3{1, 0, 0}},
		{"forward_turned_right", mgl32.QuatRotate(mgl32.DegToRad(90), component.Up), mgl32.Vec2{0, 1}, mgl32.Vec3{1, 0, 0}},
		{"zero_quat_is_identity", mgl32.Quat{}, mgl32.Vec2{0, 1}, mgl32.Vec3{0, 0, 1}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			dir, vertical, _ := gate.PollContinuous(component.InputSample{Move: c.move, VerticalMove: 0.5}, c.orientation)
			if dir.Sub(c.want).Len() > 1e-5 {
				t.Fatalf("dir = %v, want %v", dir, c.want)
			}
			if vertical != 0.5 {
				t.Fatalf("vertical = %v, want 0.5", vertical)
			}
		})
	}
}

func TestRotateGate(t *testing.T) {
	gate, _ := newGate(t)
	sample := component.InputSample{Look: mgl32.Vec2{2, -3}}

	if _, _, look := gate.PollContinuous(sample, mgl32.QuatIdent()); look != sample.Look {
		t.Fatalf("look = %v, want %v", look, sample.Look)
	}
	gate.SetCapability(action.CapabilityRotate, false)
	if _, _, look := gate.PollContinuous(sample, mgl32.QuatIdent()); look != (mgl32.Vec2{}) {
		t.Fatalf("rotation disabled: look = %v", look)
	}
	if got := gate.LookInput(sample); got != (mgl32.Vec2{}) {
		t.Fatalf("LookInput with rotation disabled = %v", got)
	}
}

func TestTransitionTable(t *testing.T) {
	cases := []struct {
		binding action.Binding
		phase   action.Phase
		want    action.Event
		emitted bool
	}{
		{action.BindingSpeedUp, action.PhaseStarted, action.Event{Kind: action.KindSpeedUpStart}, true},
		{action.BindingSpeedUp, action.PhaseCanceled, action.Event{Kind: action.KindSpeedUpCancel}, true},
		{action.BindingSpeedUp, action.PhasePerformed, action.Event{}, false},
		{action.BindingToggleInventory, action.PhasePerformed, action.Event{Kind: action.KindInventoryToggle}, true},
		{action.BindingToggleInventory, action.PhaseStarted, action.Event{}, false},
		{action.BindingInteraction, action.PhasePerformed, action.Event{Kind: action.KindInteract}, true},
		{action.BindingFire, action.PhaseStarted, action.Event{Kind: action.KindPrimaryAttackStart}, true},
		{action.BindingFire, action.PhaseCanceled, action.Event{Kind: action.KindPrimaryAttackStop}, true},
		{action.BindingFire, action.PhasePerformed, action.Event{}, false},
		{action.BindingSecondaryFire, action.PhaseStarted, action.Event{Kind: action.KindSecondaryAttackStart}, true},
		{action.BindingSecondaryFire, action.PhaseCanceled, action.Event{Kind: action.KindSecondaryAttackStop}, true},
		{action.BindingReload, action.PhasePerformed, action.Event{Kind: action.KindReload}, true},
		{action.BindingSwitchTo1, action.PhasePerformed, action.SwitchTo(0), true},
		{action.BindingSwitchTo1, action.PhaseStarted, action.Event{}, false},
		{action.BindingSkip, action.PhasePerformed, action.Event{Kind: action.KindSkip}, true},
		{action.BindingPause, action.PhasePerformed, action.Event{Kind: action.KindPause}, true},
		{action.BindingUIRightClick, action.PhaseStarted, action.Event{Kind: action.KindUIRightClick}, true},
		{action.BindingUIClick, action.PhaseStarted, action.Event{Kind: action.KindUIClickStart}, true},
		{action.BindingUIClick, action.PhaseCanceled, action.Event{Kind: action.KindUIClickCancel}, true},
		{action.BindingUIFastDrop, action.PhasePerformed, action.Event{Kind: action.KindQuickDrop}, true},
		{action.BindingUIExitUI, action.PhasePerformed, action.Event{Kind: action.KindExitUI}, true},
	}
	for _, c := range cases {
		t.Run(c.binding.String()+"_"+c.phase.String(), func(t *testing.T) {
			gate, log := newGate(t)
			gate.SetInterfaceInputs(true)

			got := gate.HandleTransition(c.binding, c.phase)
			if got != c.emitted {
				t.Fatalf("HandleTransition = %v, want %v", got, c.emitted)
			}
			if !c.emitted {
				if len(log.events) != 0 {
					t.Fatalf("unexpected events %v", log.events)
				}
				return
			}
			if len(log.events) != 1 || log.events[0] != c.want {
				t.Fatalf("events = %v, want [%v]", log.events, c.want)
			}
		})
	}
}

func TestAttackGateIndependence(t *testing.T) {
	gate, log := newGate(t)
	gate.SetInterfaceInputs(true)
	gate.SetCapability(action.CapabilityAttack, false)

	inputs := []action.Transition{
		{Binding: action.BindingFire, Phase: action.PhaseStarted},
		{Binding: action.BindingFire, Phase: action.PhaseCanceled},
		{Binding: action.BindingSecondaryFire, Phase: action.PhaseStarted},
		{Binding: action.BindingSecondaryFire, Phase: action.PhaseCanceled},
		{Binding: action.BindingToggleInventory, Phase: action.PhasePerformed},
		{Binding: action.BindingInteraction, Phase: action.PhasePerformed},
		{Binding: action.BindingReload, Phase: action.PhasePerformed},
		{Binding: action.BindingPause, Phase: action.PhasePerformed},
		{Binding: action.BindingSkip, Phase: action.PhasePerformed},
		{Binding: action.BindingUIClick, Phase: action.PhaseStarted},
		{Binding: action.BindingUIExitUI, Phase: action.PhasePerformed},
	}
	for _, in := range inputs {
		gate.HandleTransition(in.Binding, in.Phase)
	}

	want := []action.Kind{
		action.KindInventoryToggle,
		action.KindInteract,
		action.KindReload,
		action.KindPause,
		action.KindSkip,
		action.KindUIClickStart,
		action.KindExitUI,
	}
	got := log.kinds()
	if len(got) != len(want) {
		t.Fatalf("events = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("events = %v, want %v", got, want)
		}
	}
}

func TestAttackCancelGatedIndependently(t *testing.T) {
	t.Run("closed_at_start_open_at_cancel", func(t *testing.T) {
		gate, log := newGate(t)
		gate.SetCapability(action.CapabilityAttack, false)
		gate.HandleTransition(action.BindingFire, action.PhaseStarted)
		gate.SetCapability(action.CapabilityAttack, true)
		gate.HandleTransition(action.BindingFire, action.PhaseCanceled)

		got := log.kinds()
		if len(got) != 1 || got[0] != action.KindPrimaryAttackStop {
			t.Fatalf("events = %v, want only primary_attack_stop", got)
		}
	})

	t.Run("open_at_start_closed_at_cancel", func(t *testing.T) {
		gate, log := newGate(t)
		gate.HandleTransition(action.BindingFire, action.PhaseStarted)
		gate.SetCapability(action.CapabilityAttack, false)
		gate.HandleTransition(action.BindingFire, action.PhaseCanceled)

		got := log.kinds()
		if len(got) != 1 || got[0] != action.KindPrimaryAttackStart {
			t.Fatalf("events = %v, want only primary_attack_start", got)
		}
	})
}

func TestSwitchMapping(t *testing.T) {
	cases := []struct {
		binding action.Binding
		slot    int
	}{
		{action.BindingSwitchTo1, 0},
		{action.BindingSwitchTo3, 2},
		{action.BindingSwitchTo6, 5},
	}
	for _, c := range cases {
		t.Run(c.binding.String(), func(t *testing.T) {
			gate, log := newGate(t)
			gate.HandleTransition(c.binding, action.PhasePerformed)
			if len(log.events) != 1 || log.events[0] != action.SwitchTo(c.slot) {
				t.Fatalf("events = %v, want switch_to(%d)", log.events, c.slot)
			}
		})
	}

	gate, log := newGate(t)
	gate.SetCapability(action.CapabilitySwitch, false)
	gate.HandleTransition(action.BindingSwitchTo3, action.PhasePerformed)
	gate.HandleScroll(1)
	if len(log.events) != 0 {
		t.Fatalf("switch disabled: events = %v", log.events)
	}
}

func TestHandleScroll(t *testing.T) {
	cases := []struct {
		axis  float32
		want  int
		fires bool
	}{
		{-1, -1, true},
		{1, 1, true},
		{0, 0, false},
	}
	for _, c := range cases {
		gate, log := newGate(t)
		if got := gate.HandleScroll(c.axis); got != c.fires {
			t.Fatalf("HandleScroll(%v) = %v, want %v", c.axis, got, c.fires)
		}
		if !c.fires {
			if len(log.events) != 0 {
				t.Fatalf("HandleScroll(0) published %v", log.events)
			}
			continue
		}
		if len(log.events) != 1 || log.events[0] != (action.Event{Kind: action.KindScroll, Value: c.want}) {
			t.Fatalf("HandleScroll(%v) events = %v", c.axis, log.events)
		}
	}
}

func TestInterfaceInputsDefaultDisabled(t *testing.T) {
	gate, log := newGate(t)
	if gate.InterfaceInputs() {
		t.Fatal("UI inputs should start disabled")
	}
	gate.HandleTransition(action.BindingUIExitUI, action.PhasePerformed)
	gate.HandleTransition(action.BindingPause, action.PhasePerformed)
	got := log.kinds()
	if len(got) != 1 || got[0] != action.KindPause {
		t.Fatalf("events = %v, want only pause", got)
	}
}

func TestGateUpdateWritesMotorAndCamera(t *testing.T) {
	w := ecs.NewWorld()
	e := ecs.CreateEntity(w)
	_ = ecs.Add(w, e, component.InputComponent.Kind(), &component.InputSample{
		Move:        mgl32.Vec2{0, 1},
		Look:        mgl32.Vec2{1, 2},
		Scroll:      -0.5,
		Transitions: []action.Transition{{Binding: action.BindingFire, Phase: action.PhaseStarted}},
	})
	_ = ecs.Add(w, e, component.MotorComponent.Kind(), &component.Motor{Orientation: mgl32.QuatIdent()})
	_ = ecs.Add(w, e, component.CameraRigComponent.Kind(), &component.CameraRig{})

	gate, log := newGate(t)
	gate.Update(w)

	motor, _ := ecs.Get(w, e, component.MotorComponent.Kind())
	if motor.Direction.Sub(mgl32.Vec3{0, 0, 1}).Len() > 1e-5 {
		t.Fatalf("motor direction = %v", motor.Direction)
	}
	rig, _ := ecs.Get(w, e, component.CameraRigComponent.Kind())
	if rig.RotationDir != (mgl32.Vec2{1, 2}) {
		t.Fatalf("rig rotation dir = %v", rig.RotationDir)
	}
	got := log.events
	if len(got) != 2 || got[0].Kind != action.KindPrimaryAttackStart || got[1] != (action.Event{Kind: action.KindScroll, Value: -1}) {
		t.Fatalf("events = %v", got)
	}
	in, _ := ecs.Get(w, e, component.InputComponent.Kind())
	if len(in.Transitions) != 0 || in.Scroll != 0 {
		t.Fatal("consumed transitions and scroll should be cleared")
	}
}

func TestGateUpdateReadsFlagsOncePerFrame(t *testing.T) {
	w := ecs.NewWorld()
	for i := 0; i < 2; i++ {
		e := ecs.CreateEntity(w)
		_ = ecs.Add(w, e, component.InputComponent.Kind(), &component.InputSample{
			Move:        mgl32.Vec2{0, 1},
			Transitions: []action.Transition{{Binding: action.BindingPause, Phase: action.PhasePerformed}},
		})
		_ = ecs.Add(w, e, component.MotorComponent.Kind(), &component.Motor{})
	}

	bus := action.NewBus()
	gate := NewActionGateSystem(bus, nil)
	bus.SubscribeKind(action.KindPause, func(action.Event) {
		gate.SetCapability(action.CapabilityMove, false)
	})

	gate.Update(w)
	ecs.ForEach(w, component.MotorComponent.Kind(), func(e ecs.Entity, m *component.Motor) {
		if m.Direction == (mgl32.Vec3{}) {
			t.Fatalf("%v: a flag flipped mid-frame must not affect this frame's poll", e)
		}
	})

	gate.Update(w)
	ecs.ForEach(w, component.MotorComponent.Kind(), func(e ecs.Entity, m *component.Motor) {
		if m.Direction != (mgl32.Vec3{}) {
			t.Fatalf("%v: the flip should apply from the next frame", e)
		}
	})
}

func TestAddFloatingSpeedMultiplier(t *testing.T) {
	w := ecs.NewWorld()
	e := ecs.CreateEntity(w)
	_ = ecs.Add(w, e, component.InputComponent.Kind(), &component.InputSample{})
	_ = ecs.Add(w, e, component.MotorComponent.Kind(), &component.Motor{FloatingSpeedMultiplier: 1})

	gate, _ := newGate(t)
	gate.AddFloatingSpeedMultiplier(w, 0.5)
	gate.AddFloatingSpeedMultiplier(w, -0.25)

	m, _ := ecs.Get(w, e, component.MotorComponent.Kind())
	if m.FloatingSpeedMultiplier != 1.25 {
		t.Fatalf("multiplier = %v, want 1.25", m.FloatingSpeedMultiplier)
	}
}

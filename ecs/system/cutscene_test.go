package system

import (
	"testing"

	"github.com/milk9111/spacesurvival/action"
	"github.com/milk9111/spacesurvival/ecs"
	"github.com/milk9111/spacesurvival/ecs/component"
)

const lockScript = `
update := func(engine, state) {
	if engine.frame == 0 {
		engine.set_capability("move", false)
		engine.set_capability("attack", false)
	}
	if engine.skipped || engine.frame >= 2 {
		engine.set_capability("move", true)
		engine.set_capability("attack", true)
		engine.finish()
	}
}
`

func addCutscene(t *testing.T, w *ecs.World, src string) ecs.Entity {
	t.Helper()
	e := ecs.CreateEntity(w)
	if err := ecs.Add(w, e, component.CutsceneComponent.Kind(), &component.Cutscene{Name: t.Name(), Source: []byte(src)}); err != nil {
		t.Fatalf("add cutscene: %v", err)
	}
	return e
}

func TestCutsceneDrivesCapabilities(t *testing.T) {
	w := ecs.NewWorld()
	bus := action.NewBus()
	gate := NewActionGateSystem(bus, nil)
	cs := NewCutsceneSystem(bus, gate, nil)
	e := addCutscene(t, w, lockScript)

	cs.Update(w)
	if gate.Capability(action.CapabilityMove) || gate.Capability(action.CapabilityAttack) {
		t.Fatal("script should lock move and attack on its first frame")
	}
	if !gate.Capability(action.CapabilityRotate) {
		t.Fatal("rotate was not touched")
	}

	cs.Update(w)
	cs.Update(w)
	if !gate.Capability(action.CapabilityMove) || !gate.Capability(action.CapabilityAttack) {
		t.Fatal("script should release the player when it finishes")
	}
	if ecs.IsAlive(w, e) || cs.Active(w) {
		t.Fatal("finished cutscene should be removed")
	}
}

func TestCutsceneSkip(t *testing.T) {
	w := ecs.NewWorld()
	bus := action.NewBus()
	gate := NewActionGateSystem(bus, nil)
	cs := NewCutsceneSystem(bus, gate, nil)
	e := addCutscene(t, w, lockScript)

	cs.Update(w)
	gate.HandleTransition(action.BindingSkip, action.PhasePerformed)
	cs.Update(w)

	if ecs.IsAlive(w, e) {
		t.Fatal("skip should end the cutscene on the next frame")
	}
	if !gate.Capability(action.CapabilityMove) {
		t.Fatal("skipped script should still restore movement")
	}
}

func TestCutsceneScriptState(t *testing.T) {
	const src = `
update := func(engine, state) {
	if is_undefined(state.count) {
		state.count = 0
	}
	state.count += 1
	if state.count == 3 {
		engine.set_ui_inputs(true)
		engine.finish()
	}
}
`
	w := ecs.NewWorld()
	bus := action.NewBus()
	gate := NewActionGateSystem(bus, nil)
	cs := NewCutsceneSystem(bus, gate, nil)
	addCutscene(t, w, src)

	for i := 0; i < 2; i++ {
		cs.Update(w)
	}
	if gate.InterfaceInputs() {
		t.Fatal("state should persist across frames; finished too early")
	}
	cs.Update(w)
	if !gate.InterfaceInputs() || cs.Active(w) {
		t.Fatal("script should finish on its third frame")
	}
}

func TestCutsceneBadScriptIsDropped(t *testing.T) {
	cases := []struct {
		name string
		src  string
	}{
		{"empty", ""},
		{"syntax", "update := func(engine, state {"},
		{"unknown_capability", `update := func(engine, state) { engine.set_capability("fly", false) }`},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			w := ecs.NewWorld()
			bus := action.NewBus()
			gate := NewActionGateSystem(bus, nil)
			cs := NewCutsceneSystem(bus, gate, nil)
			e := addCutscene(t, w, c.src)

			cs.Update(w)
			if ecs.IsAlive(w, e) {
				t.Fatal("broken cutscene should be removed")
			}
			if gate.Capabilities() != action.AllCapabilities() {
				t.Fatalf("capabilities changed: %v", gate.Capabilities())
			}
		})
	}
}

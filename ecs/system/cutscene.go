package system

import (
	"fmt"
	"strings"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
	"go.uber.org/zap"

	"github.com/milk9111/spacesurvival/action"
	"github.com/milk9111/spacesurvival/ecs"
	"github.com/milk9111/spacesurvival/ecs/component"
)

const cutsceneDispatchScript = `
update(__engine, __state)
`

type cutsceneRuntime struct {
	compiled *tengo.Compiled
	state    *tengo.Map
	finish   bool
}

// CutsceneSystem runs scripted sequences. A cutscene script defines
// update(engine, state) and drives the action gate through engine
// functions until it calls engine.finish().
type CutsceneSystem struct {
	log     *zap.Logger
	bus     *action.Bus
	gate    *ActionGateSystem
	subs    []action.SubscriptionID
	cache   map[ecs.Entity]*cutsceneRuntime
	skipped bool
}

func NewCutsceneSystem(bus *action.Bus, gate *ActionGateSystem, log *zap.Logger) *CutsceneSystem {
	if log == nil {
		log = zap.NewNop()
	}
	s := &CutsceneSystem{
		log:   log.Named("cutscene"),
		bus:   bus,
		gate:  gate,
		cache: map[ecs.Entity]*cutsceneRuntime{},
	}
	s.subs = append(s.subs, bus.SubscribeKind(action.KindSkip, func(action.Event) { s.skipped = true }))
	return s
}

func (s *CutsceneSystem) Close() {
	for _, id := range s.subs {
		s.bus.Unsubscribe(id)
	}
	s.subs = nil
}

// Active reports whether any cutscene is running.
func (s *CutsceneSystem) Active(w *ecs.World) bool {
	_, ok := ecs.First(w, component.CutsceneComponent.Kind())
	return ok
}

func (s *CutsceneSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	skipped := s.skipped
	s.skipped = false

	ecs.ForEach(w, component.CutsceneComponent.Kind(), func(e ecs.Entity, cs *component.Cutscene) {
		if !cs.Finished {
			if err := s.step(e, cs, skipped); err != nil {
				s.log.Error("cutscene aborted", zap.String("name", cs.Name), zap.Error(err))
				cs.Finished = true
			}
		}
		if cs.Finished {
			delete(s.cache, e)
			ecs.DestroyEntity(w, e)
			s.log.Debug("cutscene finished", zap.String("name", cs.Name), zap.Int("frames", cs.Frame))
		}
	})
}

func (s *CutsceneSystem) step(e ecs.Entity, cs *component.Cutscene, skipped bool) error {
	rt, err := s.runtime(e, cs)
	if err != nil {
		return err
	}

	engine := s.buildEngine(cs, rt, skipped)
	if err := rt.compiled.Set("__engine", engine); err != nil {
		return err
	}
	if err := rt.compiled.Set("__state", rt.state); err != nil {
		return err
	}
	if err := rt.compiled.Run(); err != nil {
		return fmt.Errorf("run %s: %w", cs.Name, err)
	}

	cs.Frame++
	if rt.finish {
		cs.Finished = true
	}
	return nil
}

func (s *CutsceneSystem) runtime(e ecs.Entity, cs *component.Cutscene) (*cutsceneRuntime, error) {
	if rt, ok := s.cache[e]; ok {
		return rt, nil
	}
	if len(strings.TrimSpace(string(cs.Source))) == 0 {
		return nil, fmt.Errorf("cutscene %q has no script", cs.Name)
	}

	src := string(cs.Source) + "\n" + cutsceneDispatchScript
	script := tengo.NewScript([]byte(src))
	_ = script.Add("__engine", map[string]any{})
	_ = script.Add("__state", map[string]any{})
	script.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))

	compiled, err := script.Compile()
	if err != nil {
		return nil, fmt.Errorf("compile %s: %w", cs.Name, err)
	}
	rt := &cutsceneRuntime{
		compiled: compiled,
		state:    &tengo.Map{Value: map[string]tengo.Object{}},
	}
	s.cache[e] = rt
	return rt, nil
}

func (s *CutsceneSystem) buildEngine(cs *component.Cutscene, rt *cutsceneRuntime, skipped bool) *tengo.ImmutableMap {
	values := map[string]tengo.Object{
		"frame":   &tengo.Int{Value: int64(cs.Frame)},
		"skipped": tengo.FalseValue,
	}
	if skipped {
		values["skipped"] = tengo.TrueValue
	}

	values["set_capability"] = &tengo.UserFunction{Name: "set_capability", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if len(args) < 2 {
			return tengo.FalseValue, nil
		}
		kind, err := action.ParseCapability(objectAsString(args[0]))
		if err != nil {
			return nil, err
		}
		s.gate.SetCapability(kind, !args[1].IsFalsy())
		return tengo.TrueValue, nil
	}}

	values["set_ui_inputs"] = &tengo.UserFunction{Name: "set_ui_inputs", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if len(args) < 1 {
			return tengo.FalseValue, nil
		}
		s.gate.SetInterfaceInputs(!args[0].IsFalsy())
		return tengo.TrueValue, nil
	}}

	values["finish"] = &tengo.UserFunction{Name: "finish", Value: func(args ...tengo.Object) (tengo.Object, error) {
		rt.finish = true
		return tengo.TrueValue, nil
	}}

	values["log"] = &tengo.UserFunction{Name: "log", Value: func(args ...tengo.Object) (tengo.Object, error) {
		parts := make([]string, 0, len(args))
		for _, a := range args {
			parts = append(parts, objectAsString(a))
		}
		s.log.Info(strings.Join(parts, " "), zap.String("cutscene", cs.Name), zap.Int("frame", cs.Frame))
		return tengo.UndefinedValue, nil
	}}

	return &tengo.ImmutableMap{Value: values}
}

func objectAsString(obj tengo.Object) string {
	if obj == nil {
		return ""
	}
	switch v := obj.(type) {
	case *tengo.String:
		return v.Value
	default:
		return strings.Trim(v.String(), "\"")
	}
}

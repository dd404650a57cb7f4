package system

import (
	"go.uber.org/zap"

	"github.com/milk9111/spacesurvival/action"
	"github.com/milk9111/spacesurvival/ecs"
	"github.com/milk9111/spacesurvival/ecs/component"
)

// ToolbeltSystem applies hotbar selections published on the bus. Events
// are queued by the handlers and applied on the next Update.
type ToolbeltSystem struct {
	log     *zap.Logger
	bus     *action.Bus
	subs    []action.SubscriptionID
	pending []action.Event
}

func NewToolbeltSystem(bus *action.Bus, log *zap.Logger) *ToolbeltSystem {
	if log == nil {
		log = zap.NewNop()
	}
	s := &ToolbeltSystem{bus: bus, log: log.Named("toolbelt")}
	queue := func(evt action.Event) { s.pending = append(s.pending, evt) }
	s.subs = append(s.subs,
		bus.SubscribeKind(action.KindSwitchTo, queue),
		bus.SubscribeKind(action.KindScroll, queue),
	)
	return s
}

func (s *ToolbeltSystem) Close() {
	for _, id := range s.subs {
		s.bus.Unsubscribe(id)
	}
	s.subs = nil
}

func (s *ToolbeltSystem) Update(w *ecs.World) {
	if w == nil || len(s.pending) == 0 {
		return
	}
	events := s.pending
	s.pending = nil

	ecs.ForEach(w, component.ToolbeltComponent.Kind(), func(e ecs.Entity, belt *component.Toolbelt) {
		changed := false
		for _, evt := range events {
			switch evt.Kind {
			case action.KindSwitchTo:
				changed = belt.Select(evt.Value) || changed
			case action.KindScroll:
				changed = belt.Cycle(evt.Value) || changed
			}
		}
		if !changed {
			return
		}
		if err := equip(w, e, belt); err != nil {
			s.log.Error("equip tool", zap.Error(err))
			return
		}
		s.log.Debug("tool equipped", zap.Int("slot", belt.Active))
	})
}

// EquipSlot selects slot on e's toolbelt directly, bypassing the bus. Menus
// use it while the switch capability is locked.
func EquipSlot(w *ecs.World, e ecs.Entity, slot int) bool {
	belt, ok := ecs.Get(w, e, component.ToolbeltComponent.Kind())
	if !ok || !belt.Select(slot) {
		return false
	}
	return equip(w, e, belt) == nil
}

func equip(w *ecs.World, e ecs.Entity, belt *component.Toolbelt) error {
	tool, ok := belt.Current()
	if !ok {
		return nil
	}
	// Copy so later hot reloads of the belt don't alias the equipped tool.
	equipped := tool
	return ecs.Add(w, e, component.HarvestToolComponent.Kind(), &equipped)
}

// ReplaceTool swaps every belt entry named name for tool, re-equipping it
// when it is the active slot. It returns the number of belts touched.
func ReplaceTool(w *ecs.World, tool component.HarvestTool) int {
	touched := 0
	ecs.ForEach(w, component.ToolbeltComponent.Kind(), func(e ecs.Entity, belt *component.Toolbelt) {
		hit := false
		for i := range belt.Tools {
			if belt.Tools[i].Name != tool.Name {
				continue
			}
			belt.Tools[i] = tool
			hit = true
			if i == belt.Active {
				_ = equip(w, e, belt)
			}
		}
		if hit {
			touched++
		}
	})
	return touched
}

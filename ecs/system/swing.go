package system

import (
	"go.uber.org/zap"

	"github.com/milk9111/spacesurvival/action"
	"github.com/milk9111/spacesurvival/ecs"
	"github.com/milk9111/spacesurvival/ecs/component"
	"github.com/milk9111/spacesurvival/harvest"
)

// SwingSystem drives melee harvesting. While the primary attack is held,
// each ready tool probes forward from its owner's eye, snapshots the hit
// and schedules a deferred resolve on a task entity. Pending tasks count
// down each frame and resolve against the world when they fire.
type SwingSystem struct {
	log  *zap.Logger
	bus  *action.Bus
	caps CapabilityReader
	subs []action.SubscriptionID
	held bool

	last   harvest.Result
	swings int
}

// CapabilityReader reports whether a category of actions is enabled.
// *ActionGateSystem implements it.
type CapabilityReader interface {
	Capability(kind action.Capability) bool
}

// NewSwingSystem listens for primary attack events on bus. A nil caps
// leaves attacking always enabled.
func NewSwingSystem(bus *action.Bus, caps CapabilityReader, log *zap.Logger) *SwingSystem {
	if log == nil {
		log = zap.NewNop()
	}
	s := &SwingSystem{bus: bus, caps: caps, log: log.Named("swing")}
	s.subs = append(s.subs,
		bus.SubscribeKind(action.KindPrimaryAttackStart, func(action.Event) { s.held = true }),
		bus.SubscribeKind(action.KindPrimaryAttackStop, func(action.Event) { s.held = false }),
	)
	return s
}

func (s *SwingSystem) Close() {
	for _, id := range s.subs {
		s.bus.Unsubscribe(id)
	}
	s.subs = nil
}

// Held reports whether the primary attack is currently held.
func (s *SwingSystem) Held() bool { return s.held }

// Last returns the most recent resolve and the number of swings started.
func (s *SwingSystem) Last() (harvest.Result, int) { return s.last, s.swings }

func (s *SwingSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	s.resolvePending(w)
	// The release is dropped while attack is disabled, so a held swing
	// ends here instead and needs a fresh press once attack returns.
	if s.caps != nil && !s.caps.Capability(action.CapabilityAttack) {
		s.held = false
		return
	}
	if s.held {
		s.startSwings(w)
	}
}

func (s *SwingSystem) resolvePending(w *ecs.World) {
	resolver := harvest.NewResolver(NewHarvestWorld(w), s.log)

	ecs.ForEach(w, component.PendingHarvestComponent.Kind(), func(task ecs.Entity, p *component.PendingHarvest) {
		p.Frames--
		if p.Frames > 0 {
			return
		}
		swing := p.Swing
		owner := ecs.Entity(p.Owner)
		ecs.DestroyEntity(w, task)

		if !ecs.IsAlive(w, owner) {
			s.log.Debug("swing owner gone before resolve", zap.Stringer("owner", owner))
			return
		}
		s.last = resolver.Resolve(swing)
	})
}

func (s *SwingSystem) startSwings(w *ecs.World) {
	ecs.ForEach3(w,
		component.HarvestToolComponent.Kind(),
		component.CameraRigComponent.Kind(),
		component.TransformComponent.Kind(),
		func(e ecs.Entity, tool *component.HarvestTool, rig *component.CameraRig, t *component.Transform) {
			if ecs.Has(w, e, component.CooldownComponent.Kind()) {
				return
			}

			eye := t.Position.Add(component.Up.Mul(rig.EyeHeight))
			swing := harvest.SwingHit{Tool: tool.Tool}
			if hit, ok := Raycast(w, eye, rig.Forward(), tool.Tool.Range, tool.Tool.Mask, e); ok {
				swing.Hit = &harvest.Hit{
					Target: harvest.TargetID(hit.Entity),
					Point:  hit.Point,
					Normal: hit.Normal,
				}
			}

			task := ecs.CreateEntity(w)
			if err := ecs.Add(w, task, component.PendingHarvestComponent.Kind(), &component.PendingHarvest{
				Owner:  uint64(e),
				Frames: max(1, tool.SwingDelayFrames),
				Swing:  swing,
			}); err != nil {
				s.log.Error("schedule harvest", zap.Error(err))
				ecs.DestroyEntity(w, task)
				return
			}
			if tool.CooldownFrames > 0 {
				_ = ecs.Add(w, e, component.CooldownComponent.Kind(), &component.Cooldown{Frames: tool.CooldownFrames})
			}
			s.swings++
			s.log.Debug("swing started",
				zap.String("tool", tool.Name),
				zap.Bool("hit", swing.Hit != nil),
			)
		})
}

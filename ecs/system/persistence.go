package system

import (
	"context"
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"

	"github.com/milk9111/spacesurvival/ecs"
	"github.com/milk9111/spacesurvival/ecs/component"
	"github.com/milk9111/spacesurvival/save"
)

// PlayerState returns the player's world position and facing rotation.
// The rotation includes camera pitch when the player has a rig.
func PlayerState(w *ecs.World) (mgl32.Vec3, mgl32.Quat, bool) {
	e, ok := ecs.First(w, component.PlayerTagComponent.Kind())
	if !ok {
		return mgl32.Vec3{}, mgl32.QuatIdent(), false
	}
	t, ok := ecs.Get(w, e, component.TransformComponent.Kind())
	if !ok {
		return mgl32.Vec3{}, mgl32.QuatIdent(), false
	}
	rot := t.Rotation
	if rig, ok := ecs.Get(w, e, component.CameraRigComponent.Kind()); ok {
		rot = rig.Rotation()
	}
	return t.Position, rot, true
}

// ApplyPlayerState moves the player and points its camera along rot. It
// reports false when there is no player.
func ApplyPlayerState(w *ecs.World, pos mgl32.Vec3, rot mgl32.Quat) bool {
	e, ok := ecs.First(w, component.PlayerTagComponent.Kind())
	if !ok {
		return false
	}
	t, ok := ecs.Get(w, e, component.TransformComponent.Kind())
	if !ok {
		return false
	}
	t.Position = pos
	t.Rotation = rot
	if rig, ok := ecs.Get(w, e, component.CameraRigComponent.Kind()); ok {
		rig.SetRotation(rot)
		t.Rotation = rig.YawRotation()
		if m, ok := ecs.Get(w, e, component.MotorComponent.Kind()); ok {
			m.Orientation = t.Rotation
		}
	}
	return true
}

// SlotStore persists player state by slot name. *save.Store implements it.
type SlotStore interface {
	Save(ctx context.Context, slot string, data save.Data) error
	Load(ctx context.Context, slot string) (save.Data, bool, error)
}

// PersistenceSystem writes the player state to a slot every Interval
// frames and on demand.
type PersistenceSystem struct {
	log      *zap.Logger
	store    SlotStore
	slot     string
	interval int
	frame    int
}

func NewPersistenceSystem(store SlotStore, slot string, interval int, log *zap.Logger) *PersistenceSystem {
	if log == nil {
		log = zap.NewNop()
	}
	return &PersistenceSystem{log: log.Named("persistence"), store: store, slot: slot, interval: interval}
}

func (p *PersistenceSystem) Update(w *ecs.World) {
	if p == nil || w == nil || p.store == nil || p.interval <= 0 {
		return
	}
	p.frame++
	if p.frame%p.interval != 0 {
		return
	}
	if err := p.Save(context.Background(), w); err != nil {
		p.log.Error("autosave failed", zap.String("slot", p.slot), zap.Error(err))
	}
}

func (p *PersistenceSystem) Save(ctx context.Context, w *ecs.World) error {
	pos, rot, ok := PlayerState(w)
	if !ok {
		return nil
	}
	if err := p.store.Save(ctx, p.slot, save.Data{Position: pos, Rotation: rot}); err != nil {
		return fmt.Errorf("persistence: save %s: %w", p.slot, err)
	}
	p.log.Debug("saved", zap.String("slot", p.slot))
	return nil
}

// Restore applies the slot to the player. It reports false when the slot
// is empty.
func (p *PersistenceSystem) Restore(ctx context.Context, w *ecs.World) (bool, error) {
	data, ok, err := p.store.Load(ctx, p.slot)
	if err != nil {
		return false, fmt.Errorf("persistence: load %s: %w", p.slot, err)
	}
	if !ok {
		return false, nil
	}
	return ApplyPlayerState(w, data.Position, data.Rotation), nil
}

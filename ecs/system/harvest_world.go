package system

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/milk9111/spacesurvival/ecs"
	"github.com/milk9111/spacesurvival/ecs/component"
	"github.com/milk9111/spacesurvival/harvest"
)

// HarvestWorld exposes an ECS world to the harvest resolver. Target ids
// are entity handles, so an id for a destroyed entity resolves to nothing.
type HarvestWorld struct {
	w *ecs.World
}

func NewHarvestWorld(w *ecs.World) *HarvestWorld {
	return &HarvestWorld{w: w}
}

func (h *HarvestWorld) Capabilities(id harvest.TargetID) (harvest.Capabilities, bool) {
	e := ecs.Entity(id)
	if !ecs.IsAlive(h.w, e) {
		return harvest.Capabilities{}, false
	}

	var caps harvest.Capabilities
	if ecs.Has(h.w, e, component.ResourceComponent.Kind()) {
		caps.Harvestable = resourceHandle{w: h.w, e: e}
	}
	if terrain, ok := ecs.Get(h.w, e, component.VoxelTerrainComponent.Kind()); ok && terrain.Chunk != nil {
		caps.Voxel = terrain.Chunk
	}
	return caps, true
}

func (h *HarvestWorld) OverlapSphere(center mgl32.Vec3, radius float32, mask uint32) []harvest.TargetID {
	entities := OverlapSphere(h.w, center, radius, mask)
	out := make([]harvest.TargetID, 0, len(entities))
	for _, e := range entities {
		out = append(out, harvest.TargetID(e))
	}
	return out
}

// resourceHandle damages a Resource component. It re-reads the component on
// each call so a node removed in between is ignored.
type resourceHandle struct {
	w *ecs.World
	e ecs.Entity
}

func (r resourceHandle) TakeDamage(amount float32, kind harvest.Type, tier int) {
	if res, ok := ecs.Get(r.w, r.e, component.ResourceComponent.Kind()); ok {
		res.Apply(amount, kind, tier)
	}
}

package system

import (
	"go.uber.org/zap"

	"github.com/milk9111/spacesurvival/ecs"
	"github.com/milk9111/spacesurvival/ecs/component"
)

// ResourceSystem removes depleted resource nodes and tallies what was
// gathered.
type ResourceSystem struct {
	log       *zap.Logger
	harvested map[string]int
}

func NewResourceSystem(log *zap.Logger) *ResourceSystem {
	if log == nil {
		log = zap.NewNop()
	}
	return &ResourceSystem{log: log.Named("resource"), harvested: make(map[string]int)}
}

func (s *ResourceSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	ecs.ForEach(w, component.ResourceComponent.Kind(), func(e ecs.Entity, res *component.Resource) {
		if !res.Depleted() {
			return
		}
		s.harvested[res.Name]++
		s.log.Debug("resource depleted", zap.String("name", res.Name), zap.Stringer("entity", e))
		ecs.DestroyEntity(w, e)
	})
}

// Harvested returns how many nodes of each name have been depleted.
func (s *ResourceSystem) Harvested() map[string]int {
	out := make(map[string]int, len(s.harvested))
	for k, v := range s.harvested {
		out[k] = v
	}
	return out
}

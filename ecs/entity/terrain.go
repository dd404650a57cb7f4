package entity

import (
	"fmt"

	"github.com/milk9111/spacesurvival/ecs"
	"github.com/milk9111/spacesurvival/ecs/component"
	"github.com/milk9111/spacesurvival/prefabs"
)

func NewTerrain(w *ecs.World, spec prefabs.ChunkSpec) (ecs.Entity, error) {
	chunk, err := spec.Build()
	if err != nil {
		return 0, fmt.Errorf("terrain: %w", err)
	}
	e := ecs.CreateEntity(w)
	if err := ecs.Add(w, e, component.VoxelTerrainComponent.Kind(), &component.VoxelTerrain{Chunk: chunk}); err != nil {
		ecs.DestroyEntity(w, e)
		return 0, fmt.Errorf("terrain: %w", err)
	}
	return e, nil
}

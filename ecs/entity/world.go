package entity

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/milk9111/spacesurvival/ecs"
	"github.com/milk9111/spacesurvival/prefabs"
)

// Level is what LoadLevel placed.
type Level struct {
	Spawn     mgl32.Vec3
	Terrain   []ecs.Entity
	Resources []ecs.Entity
	Cutscene  ecs.Entity
}

// LoadLevel builds every chunk, resource and the opening cutscene of spec.
// The first failure aborts the load; entities created before it remain.
func LoadLevel(w *ecs.World, spec prefabs.WorldSpec) (Level, error) {
	lvl := Level{Spawn: spec.SpawnPoint()}
	for _, c := range spec.Chunks {
		e, err := NewTerrain(w, c)
		if err != nil {
			return lvl, err
		}
		lvl.Terrain = append(lvl.Terrain, e)
	}
	for _, r := range spec.Resources {
		e, err := NewResource(w, r.Prefab, r.Vec3())
		if err != nil {
			return lvl, err
		}
		lvl.Resources = append(lvl.Resources, e)
	}
	if spec.Cutscene != "" {
		e, err := NewCutscene(w, spec.Cutscene)
		if err != nil {
			return lvl, err
		}
		lvl.Cutscene = e
	}
	return lvl, nil
}

package entity

import (
	"fmt"

	"github.com/milk9111/spacesurvival/ecs"
	"github.com/milk9111/spacesurvival/ecs/component"
	"github.com/milk9111/spacesurvival/prefabs"
)

func NewCutscene(w *ecs.World, name string) (ecs.Entity, error) {
	src, err := prefabs.LoadScript(name)
	if err != nil {
		return 0, fmt.Errorf("cutscene %s: %w", name, err)
	}
	e := ecs.CreateEntity(w)
	if err := ecs.Add(w, e, component.CutsceneComponent.Kind(), &component.Cutscene{Name: name, Source: src}); err != nil {
		ecs.DestroyEntity(w, e)
		return 0, fmt.Errorf("cutscene %s: %w", name, err)
	}
	return e, nil
}

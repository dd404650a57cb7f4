package entity

import (
	"errors"
	"fmt"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/milk9111/spacesurvival/ecs"
	"github.com/milk9111/spacesurvival/ecs/component"
	"github.com/milk9111/spacesurvival/prefabs"
)

// NewResource places a harvestable node built from a resource prefab.
func NewResource(w *ecs.World, prefab string, pos mgl32.Vec3) (ecs.Entity, error) {
	spec, err := prefabs.LoadSpec[prefabs.ResourceSpec](prefab)
	if err != nil {
		return 0, err
	}
	res, err := spec.Resource()
	if err != nil {
		return 0, err
	}
	boxes := spec.Boxes()
	if len(boxes) == 0 {
		return 0, fmt.Errorf("resource %s: no collider boxes", spec.Name)
	}

	e := ecs.CreateEntity(w)
	err = errors.Join(
		ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{
			Position: pos,
			Rotation: mgl32.QuatIdent(),
		}),
		ecs.Add(w, e, component.ResourceComponent.Kind(), &res),
		ecs.Add(w, e, component.ColliderComponent.Kind(), &component.Collider{
			Boxes: boxes,
			Layer: component.LayerResource,
		}),
	)
	if err != nil {
		ecs.DestroyEntity(w, e)
		return 0, fmt.Errorf("resource %s: %w", spec.Name, err)
	}
	return e, nil
}

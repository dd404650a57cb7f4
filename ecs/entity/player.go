package entity

import (
	"errors"
	"fmt"

	"github.com/ethaniccc/float32-cube/cube"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/milk9111/spacesurvival/ecs"
	"github.com/milk9111/spacesurvival/ecs/component"
	"github.com/milk9111/spacesurvival/prefabs"
)

var ErrNoTools = errors.New("entity: player needs at least one tool")

// PlayerOptions configures the player entity. Tools name tool prefabs in
// hotbar order; the first is equipped.
type PlayerOptions struct {
	Spawn            mgl32.Vec3
	MoveSpeed        float32
	SprintMultiplier float32
	Sensitivity      float32
	EyeHeight        float32
	Tools            []string
}

// playerBox is the player's capsule approximated by a box around the feet.
var playerBox = cube.Box(-0.3, 0, -0.3, 0.3, 1.8, 0.3)

func NewPlayer(w *ecs.World, opts PlayerOptions) (ecs.Entity, error) {
	if len(opts.Tools) == 0 {
		return 0, ErrNoTools
	}
	belt := component.Toolbelt{}
	for _, name := range opts.Tools {
		tool, err := prefabs.LoadToolSpec(name)
		if err != nil {
			return 0, fmt.Errorf("player: %w", err)
		}
		belt.Tools = append(belt.Tools, tool)
	}
	equipped := belt.Tools[0]

	e := ecs.CreateEntity(w)
	err := errors.Join(
		ecs.Add(w, e, component.PlayerTagComponent.Kind(), &component.PlayerTag{}),
		ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{
			Position: opts.Spawn,
			Rotation: mgl32.QuatIdent(),
		}),
		ecs.Add(w, e, component.InputComponent.Kind(), &component.InputSample{}),
		ecs.Add(w, e, component.MotorComponent.Kind(), &component.Motor{
			Orientation:             mgl32.QuatIdent(),
			MoveSpeed:               opts.MoveSpeed,
			SprintMultiplier:        opts.SprintMultiplier,
			FloatingSpeedMultiplier: 1,
		}),
		ecs.Add(w, e, component.CameraRigComponent.Kind(), &component.CameraRig{
			Sensitivity: opts.Sensitivity,
			EyeHeight:   opts.EyeHeight,
		}),
		ecs.Add(w, e, component.ColliderComponent.Kind(), &component.Collider{
			Boxes: []cube.BBox{playerBox},
			Layer: component.LayerPlayer,
		}),
		ecs.Add(w, e, component.ToolbeltComponent.Kind(), &belt),
		ecs.Add(w, e, component.HarvestToolComponent.Kind(), &equipped),
	)
	if err != nil {
		ecs.DestroyEntity(w, e)
		return 0, fmt.Errorf("player: %w", err)
	}
	return e, nil
}

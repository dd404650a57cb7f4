package system

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"

	"github.com/milk9111/spacesurvival/action"
	"github.com/milk9111/spacesurvival/ecs"
	"github.com/milk9111/spacesurvival/ecs/component"
)

// frameDelta is the fixed simulation step; ebiten ticks at 60 TPS.
const frameDelta float32 = 1.0 / 60.0

// MotorSystem integrates motor commands into positions. It follows the
// SpeedUp events on the bus to toggle sprinting for input-driven motors.
type MotorSystem struct {
	log       *zap.Logger
	bus       *action.Bus
	subs      []action.SubscriptionID
	sprinting bool
}

func NewMotorSystem(bus *action.Bus, log *zap.Logger) *MotorSystem {
	if log == nil {
		log = zap.NewNop()
	}
	m := &MotorSystem{bus: bus, log: log.Named("motor")}
	m.subs = append(m.subs,
		bus.SubscribeKind(action.KindSpeedUpStart, func(action.Event) { m.sprinting = true }),
		bus.SubscribeKind(action.KindSpeedUpCancel, func(action.Event) { m.sprinting = false }),
	)
	return m
}

// Close detaches the system from the bus.
func (m *MotorSystem) Close() {
	for _, id := range m.subs {
		m.bus.Unsubscribe(id)
	}
	m.subs = nil
}

func (m *MotorSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	ecs.ForEach2(w, component.MotorComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, motor *component.Motor, t *component.Transform) {
		if ecs.Has(w, e, component.InputComponent.Kind()) {
			motor.Sprinting = m.sprinting
		}

		speed := motor.MoveSpeed
		if motor.Sprinting && motor.SprintMultiplier > 0 {
			speed *= motor.SprintMultiplier
		}
		velocity := motor.Direction.Mul(speed)
		velocity = velocity.Add(component.Up.Mul(motor.Vertical * motor.MoveSpeed * motor.FloatingSpeedMultiplier))
		if velocity.LenSqr() == 0 {
			return
		}

		next := t.Position.Add(velocity.Mul(frameDelta))
		next[1] = math32.Max(next[1], groundHeight(w, next))
		t.Position = next
	})
}

// groundHeight is the terrain surface under p, or -MaxFloat32 off terrain.
func groundHeight(w *ecs.World, p mgl32.Vec3) float32 {
	ground := float32(-math32.MaxFloat32)
	ecs.ForEach(w, component.VoxelTerrainComponent.Kind(), func(_ ecs.Entity, terrain *component.VoxelTerrain) {
		if terrain.Chunk == nil {
			return
		}
		b := terrain.Chunk.Bounds()
		if p.X() < b.Min().X() || p.X() >= b.Max().X() || p.Z() < b.Min().Z() || p.Z() >= b.Max().Z() {
			return
		}
		ground = math32.Max(ground, terrain.Chunk.SurfaceHeight(p.X(), p.Z()))
	})
	return ground
}

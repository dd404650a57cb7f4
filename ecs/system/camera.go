package system

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/milk9111/spacesurvival/ecs"
	"github.com/milk9111/spacesurvival/ecs/component"
)

// CameraSystem applies each rig's pending look delta and keeps the body
// and motor facing in sync with the camera's yaw.
type CameraSystem struct{}

func NewCameraSystem() *CameraSystem {
	return &CameraSystem{}
}

func (cs *CameraSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	ecs.ForEach(w, component.CameraRigComponent.Kind(), func(e ecs.Entity, rig *component.CameraRig) {
		sens := rig.Sensitivity
		if sens == 0 {
			sens = 1
		}
		rig.Pitch = mgl32.Clamp(rig.Pitch+rig.RotationDir.X()*sens, -component.MaxPitch, component.MaxPitch)
		rig.Yaw = wrapDegrees(rig.Yaw + rig.RotationDir.Y()*sens)
		rig.RotationDir = mgl32.Vec2{}

		facing := rig.YawRotation()
		if t, ok := ecs.Get(w, e, component.TransformComponent.Kind()); ok {
			t.Rotation = facing
		}
		if m, ok := ecs.Get(w, e, component.MotorComponent.Kind()); ok {
			m.Orientation = facing
		}
	})
}

// wrapDegrees maps an angle into (-180, 180].
func wrapDegrees(a float32) float32 {
	for a > 180 {
		a -= 360
	}
	for a <= -180 {
		a += 360
	}
	return a
}

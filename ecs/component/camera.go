package component

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// MaxPitch keeps the camera short of looking straight up or down.
const MaxPitch float32 = 89

var (
	Forward = mgl32.Vec3{0, 0, 1}
	Right   = mgl32.Vec3{1, 0, 0}
	Up      = mgl32.Vec3{0, 1, 0}
)

// CameraRig is a first-person camera mounted on its entity. Yaw and Pitch
// are in degrees; positive pitch looks down and positive yaw turns right.
type CameraRig struct {
	Yaw   float32
	Pitch float32
	// RotationDir is the pending look delta (pitch, yaw) for this frame.
	RotationDir mgl32.Vec2
	Sensitivity float32
	EyeHeight   float32
}

func (c *CameraRig) YawRotation() mgl32.Quat {
	return mgl32.QuatRotate(mgl32.DegToRad(c.Yaw), Up)
}

func (c *CameraRig) Rotation() mgl32.Quat {
	pitch := mgl32.QuatRotate(mgl32.DegToRad(c.Pitch), Right)
	return c.YawRotation().Mul(pitch)
}

func (c *CameraRig) Forward() mgl32.Vec3 {
	return c.Rotation().Rotate(Forward)
}

// SetRotation points the rig along q's forward vector.
func (c *CameraRig) SetRotation(q mgl32.Quat) {
	f := q.Rotate(Forward)
	c.Yaw = mgl32.RadToDeg(math32.Atan2(f.X(), f.Z()))
	c.Pitch = mgl32.Clamp(mgl32.RadToDeg(-math32.Asin(mgl32.Clamp(f.Y(), -1, 1))), -MaxPitch, MaxPitch)
}

var CameraRigComponent = NewComponent[CameraRig]("camera_rig")

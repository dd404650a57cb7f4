package component

import "github.com/go-gl/mathgl/mgl32"

// Motor moves a character. Direction and Vertical are commands written by
// the action gate each frame; Orientation is the yaw-only facing the gate
// uses to turn stick input into a world direction.
type Motor struct {
	Direction   mgl32.Vec3
	Vertical    float32
	Orientation mgl32.Quat

	MoveSpeed        float32
	SprintMultiplier float32
	Sprinting        bool
	// FloatingSpeedMultiplier scales vertical movement. External effects
	// adjust it additively.
	FloatingSpeedMultiplier float32
}

var MotorComponent = NewComponent[Motor]("motor")

package component

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/milk9111/spacesurvival/action"
)

// InputSample stores the raw readings for one frame. The device sampler
// overwrites it and the action gate consumes Transitions.
type InputSample struct {
	Move         mgl32.Vec2
	VerticalMove float32
	// Look is (pitch, yaw) in degrees before sensitivity.
	Look        mgl32.Vec2
	Scroll      float32
	Transitions []action.Transition
}

var InputComponent = NewComponent[InputSample]("input")

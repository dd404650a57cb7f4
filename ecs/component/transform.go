package component

import "github.com/go-gl/mathgl/mgl32"

// Transform places an entity in world space. Position is the entity's feet
// for characters and the box origin for static props.
type Transform struct {
	Position mgl32.Vec3
	Rotation mgl32.Quat
}

var TransformComponent = NewComponent[Transform]("transform")

package component

import "github.com/ethaniccc/float32-cube/cube"

// Collision layers used by probes and overlap queries.
const (
	LayerDefault uint32 = 1 << iota
	LayerPlayer
	LayerResource
	LayerTerrain
)

// LayerAll matches every layer.
const LayerAll uint32 = ^uint32(0)

// Collider is a set of boxes relative to the entity's Transform position.
type Collider struct {
	Boxes []cube.BBox
	// Layer is this collider's category. Zero is treated as LayerDefault.
	Layer uint32
}

func (c *Collider) Category() uint32 {
	if c.Layer == 0 {
		return LayerDefault
	}
	return c.Layer
}

var ColliderComponent = NewComponent[Collider]("collider")

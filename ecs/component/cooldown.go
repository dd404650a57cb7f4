package component

// Cooldown is a frame-based countdown. The owning system decrements Frames
// and removes the component when it reaches zero.
type Cooldown struct {
	Frames int
}

var CooldownComponent = NewComponent[Cooldown]("cooldown")

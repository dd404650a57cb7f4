package component

import "github.com/milk9111/spacesurvival/harvest"

// HarvestTool is the melee tool an entity swings.
type HarvestTool struct {
	Name string
	Tool harvest.Tool
	// SwingDelayFrames is the wind-up between the probe and the resolve.
	SwingDelayFrames int
	CooldownFrames   int
}

var HarvestToolComponent = NewComponent[HarvestTool]("harvest_tool")

// PendingHarvest is a deferred swing resolution. It lives on its own task
// entity and carries the swing snapshot taken when the probe ran.
type PendingHarvest struct {
	// Owner is the swinging entity's handle. The task is dropped when the
	// owner is gone by the time it fires.
	Owner  uint64
	Frames int
	Swing  harvest.SwingHit
}

var PendingHarvestComponent = NewComponent[PendingHarvest]("pending_harvest")

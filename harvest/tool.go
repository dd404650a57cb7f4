// Package harvest resolves a completed melee swing into damage against
// harvestable world entities and excavation of voxel terrain.
package harvest

import (
	"errors"
	"fmt"
	"strings"
)

// Type tags what kind of resource a tool is made to gather.
type Type uint8

const (
	TypeNone Type = iota
	TypeWood
	TypeStone
	TypeOre
	TypeFiber
	TypeIce
)

var typeNames = map[Type]string{
	TypeNone:  "none",
	TypeWood:  "wood",
	TypeStone: "stone",
	TypeOre:   "ore",
	TypeFiber: "fiber",
	TypeIce:   "ice",
}

func (t Type) String() string {
	if name, ok := typeNames[t]; ok {
		return name
	}
	return fmt.Sprintf("type(%d)", uint8(t))
}

// ParseType maps a lowercase name to its Type. The empty string is TypeNone.
func ParseType(name string) (Type, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return TypeNone, nil
	}
	for t, n := range typeNames {
		if n == name {
			return t, nil
		}
	}
	return TypeNone, fmt.Errorf("harvest: unknown type %q", name)
}

var (
	ErrNegativeTier   = errors.New("harvest: tier must not be negative")
	ErrNegativeRadius = errors.New("harvest: hit radius must not be negative")
	ErrNegativeDamage = errors.New("harvest: damage must not be negative")
	ErrNegativeRange  = errors.New("harvest: range must not be negative")
)

// Tool is the harvesting configuration of a melee weapon.
type Tool struct {
	Damage float32
	// HitRadius > 0 selects area mode; 0 damages only the struck entity.
	HitRadius float32
	// Range is the length of the forward probe.
	Range float32
	// Mask restricts probe and overlap queries to collider layers.
	Mask         uint32
	Tier         int
	Type         Type
	HarvestVoxel bool
}

// Validate rejects configurations that must never reach Resolve.
func (t Tool) Validate() error {
	if t.Tier < 0 {
		return fmt.Errorf("%w: %d", ErrNegativeTier, t.Tier)
	}
	if t.HitRadius < 0 {
		return fmt.Errorf("%w: %v", ErrNegativeRadius, t.HitRadius)
	}
	if t.Damage < 0 {
		return fmt.Errorf("%w: %v", ErrNegativeDamage, t.Damage)
	}
	if t.Range < 0 {
		return fmt.Errorf("%w: %v", ErrNegativeRange, t.Range)
	}
	return nil
}

// AreaMode reports whether a swing with this tool damages everything within
// HitRadius of the hit point.
func (t Tool) AreaMode() bool {
	return t.HitRadius > 0
}

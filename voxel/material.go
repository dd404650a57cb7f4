// Package voxel implements destructible block terrain: a fixed-size chunk of
// material cells that can be excavated by harvesting tools and traced by
// rays.
package voxel

import (
	"fmt"
	"strings"

	"github.com/milk9111/spacesurvival/harvest"
)

// Material is the content of one cell.
type Material uint8

const (
	Air Material = iota
	Dirt
	Stone
	IronOre
	Ice
	Bedrock

	materialCount
)

// MaterialInfo describes how a material reacts to harvesting.
type MaterialInfo struct {
	Name string
	// Type is the tool type required to dig the material. TypeNone accepts
	// any tool.
	Type harvest.Type
	// Tier is the minimum tool tier.
	Tier        int
	Solid       bool
	Unbreakable bool
}

var materials = [materialCount]MaterialInfo{
	Air:     {Name: "air"},
	Dirt:    {Name: "dirt", Type: harvest.TypeNone, Tier: 0, Solid: true},
	Stone:   {Name: "stone", Type: harvest.TypeStone, Tier: 1, Solid: true},
	IronOre: {Name: "iron_ore", Type: harvest.TypeStone, Tier: 2, Solid: true},
	Ice:     {Name: "ice", Type: harvest.TypeNone, Tier: 1, Solid: true},
	Bedrock: {Name: "bedrock", Solid: true, Unbreakable: true},
}

func (m Material) Info() MaterialInfo {
	if m >= materialCount {
		return MaterialInfo{Name: fmt.Sprintf("material(%d)", uint8(m))}
	}
	return materials[m]
}

func (m Material) String() string {
	return m.Info().Name
}

func (m Material) Solid() bool {
	return m.Info().Solid
}

// Harvestable reports whether a tool of the given type and tier can remove
// a cell of m.
func (m Material) Harvestable(kind harvest.Type, tier int) bool {
	info := m.Info()
	if !info.Solid || info.Unbreakable {
		return false
	}
	if info.Type != harvest.TypeNone && info.Type != kind {
		return false
	}
	return tier >= info.Tier
}

// ParseMaterial maps a material name to its Material.
func ParseMaterial(name string) (Material, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for i, info := range materials {
		if info.Name == name {
			return Material(i), nil
		}
	}
	return Air, fmt.Errorf("voxel: unknown material %q", name)
}

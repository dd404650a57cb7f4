package component

import "github.com/milk9111/spacesurvival/harvest"

// Resource is a harvestable prop such as a tree or a rock.
type Resource struct {
	Name      string
	Health    float32
	MaxHealth float32
	// Type is the tool type required. TypeNone accepts any tool.
	Type    harvest.Type
	MinTier int
}

// Apply deals damage when the tool matches. It reports whether health
// changed.
func (r *Resource) Apply(amount float32, kind harvest.Type, tier int) bool {
	if r.Depleted() || amount <= 0 {
		return false
	}
	if r.Type != harvest.TypeNone && kind != r.Type {
		return false
	}
	if tier < r.MinTier {
		return false
	}
	r.Health -= amount
	if r.Health < 0 {
		r.Health = 0
	}
	return true
}

func (r *Resource) Depleted() bool {
	return r.Health <= 0
}

var ResourceComponent = NewComponent[Resource]("resource")

package component

// Toolbelt holds the hotbar. The active tool is mirrored into the entity's
// HarvestTool component.
type Toolbelt struct {
	Tools  []HarvestTool
	Active int
}

// Select makes slot active. Out-of-range slots are ignored.
func (t *Toolbelt) Select(slot int) bool {
	if slot < 0 || slot >= len(t.Tools) || slot == t.Active {
		return false
	}
	t.Active = slot
	return true
}

// Cycle steps the active slot by delta, wrapping at both ends.
func (t *Toolbelt) Cycle(delta int) bool {
	n := len(t.Tools)
	if n < 2 || delta == 0 {
		return false
	}
	t.Active = ((t.Active+delta)%n + n) % n
	return true
}

func (t *Toolbelt) Current() (HarvestTool, bool) {
	if t.Active < 0 || t.Active >= len(t.Tools) {
		return HarvestTool{}, false
	}
	return t.Tools[t.Active], true
}

var ToolbeltComponent = NewComponent[Toolbelt]("toolbelt")

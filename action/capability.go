package action

import (
	"fmt"
	"strings"
)

// Capability is a category of player action that gameplay systems can
// suppress.
type Capability int

const (
	CapabilityMove Capability = iota
	CapabilityRotate
	CapabilityAttack
	CapabilitySwitch

	capabilityCount
)

var capabilityNames = [capabilityCount]string{"move", "rotate", "attack", "switch"}

func (c Capability) String() string {
	if c < 0 || c >= capabilityCount {
		return fmt.Sprintf("capability(%d)", int(c))
	}
	return capabilityNames[c]
}

// ParseCapability maps a lowercase name ("move", "rotate", "attack",
// "switch") to its Capability.
func ParseCapability(name string) (Capability, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for i, n := range capabilityNames {
		if n == name {
			return Capability(i), nil
		}
	}
	return 0, fmt.Errorf("action: unknown capability %q", name)
}

// Capabilities is a value set of the four capability flags. The zero value
// has every capability disabled; use AllCapabilities for the default.
type Capabilities struct {
	enabled [capabilityCount]bool
}

// AllCapabilities returns a set with every capability enabled.
func AllCapabilities() Capabilities {
	var c Capabilities
	for i := range c.enabled {
		c.enabled[i] = true
	}
	return c
}

// Set returns a copy of c with one flag changed. Unknown capabilities are
// ignored.
func (c Capabilities) Set(kind Capability, enabled bool) Capabilities {
	if kind >= 0 && kind < capabilityCount {
		c.enabled[kind] = enabled
	}
	return c
}

func (c Capabilities) Enabled(kind Capability) bool {
	if kind < 0 || kind >= capabilityCount {
		return false
	}
	return c.enabled[kind]
}

func (c Capabilities) CanMove() bool   { return c.enabled[CapabilityMove] }
func (c Capabilities) CanRotate() bool { return c.enabled[CapabilityRotate] }
func (c Capabilities) CanAttack() bool { return c.enabled[CapabilityAttack] }
func (c Capabilities) CanSwitch() bool { return c.enabled[CapabilitySwitch] }

func (c Capabilities) String() string {
	parts := make([]string, 0, capabilityCount)
	for i, on := range c.enabled {
		mark := "-"
		if on {
			mark = "+"
		}
		parts = append(parts, mark+capabilityNames[i])
	}
	return strings.Join(parts, " ")
}

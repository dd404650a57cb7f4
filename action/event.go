// Package action holds the semantic player actions raised by the action
// gate, the bus they are broadcast on, and the input vocabulary the gate
// consumes.
package action

import "strconv"

// Kind names one broadcastable player action.
type Kind int

const (
	KindInventoryToggle Kind = iota + 1
	KindInteract
	KindPrimaryAttackStart
	KindPrimaryAttackStop
	KindSecondaryAttackStart
	KindSecondaryAttackStop
	KindReload
	KindUIRightClick
	KindUIClickStart
	KindUIClickCancel
	KindQuickDrop
	KindSpeedUpStart
	KindSpeedUpCancel
	KindPause
	KindSkip
	KindExitUI
	KindScroll
	KindSwitchTo
)

var kindNames = map[Kind]string{
	KindInventoryToggle:      "inventory_toggle",
	KindInteract:             "interact",
	KindPrimaryAttackStart:   "primary_attack_start",
	KindPrimaryAttackStop:    "primary_attack_stop",
	KindSecondaryAttackStart: "secondary_attack_start",
	KindSecondaryAttackStop:  "secondary_attack_stop",
	KindReload:               "reload",
	KindUIRightClick:         "ui_right_click",
	KindUIClickStart:         "ui_click_start",
	KindUIClickCancel:        "ui_click_cancel",
	KindQuickDrop:            "quick_drop",
	KindSpeedUpStart:         "speed_up_start",
	KindSpeedUpCancel:        "speed_up_cancel",
	KindPause:                "pause",
	KindSkip:                 "skip",
	KindExitUI:               "exit_ui",
	KindScroll:               "scroll",
	KindSwitchTo:             "switch_to",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "kind(" + strconv.Itoa(int(k)) + ")"
}

// Event is one action notification. Value carries the scroll delta (-1 or
// 1) for KindScroll and the zero-based hotbar slot for KindSwitchTo; it is
// zero for every other kind.
type Event struct {
	Kind  Kind
	Value int
}

func (e Event) String() string {
	switch e.Kind {
	case KindScroll, KindSwitchTo:
		return e.Kind.String() + "(" + strconv.Itoa(e.Value) + ")"
	default:
		return e.Kind.String()
	}
}

// HotbarSlots is the number of directly addressable hotbar slots.
const HotbarSlots = 6

// Scroll builds a scroll event from a raw axis reading. It reports false for
// a zero reading.
func Scroll(axis float32) (Event, bool) {
	switch {
	case axis > 0:
		return Event{Kind: KindScroll, Value: 1}, true
	case axis < 0:
		return Event{Kind: KindScroll, Value: -1}, true
	default:
		return Event{}, false
	}
}

// SwitchTo builds a hotbar selection for a zero-based slot.
func SwitchTo(slot int) Event {
	return Event{Kind: KindSwitchTo, Value: slot}
}

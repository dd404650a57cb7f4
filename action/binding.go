package action

import "strconv"

// Binding names a discrete input produced by the input-binding layer.
type Binding int

const (
	BindingSpeedUp Binding = iota + 1
	BindingToggleInventory
	BindingInteraction
	BindingFire
	BindingSecondaryFire
	BindingReload
	BindingSwitchTo1
	BindingSwitchTo2
	BindingSwitchTo3
	BindingSwitchTo4
	BindingSwitchTo5
	BindingSwitchTo6
	BindingSkip
	BindingPause
	BindingUIRightClick
	BindingUIClick
	BindingUIFastDrop
	BindingUIExitUI
)

var bindingNames = map[Binding]string{
	BindingSpeedUp:         "speed_up",
	BindingToggleInventory: "toggle_inventory",
	BindingInteraction:     "interaction",
	BindingFire:            "fire",
	BindingSecondaryFire:   "secondary_fire",
	BindingReload:          "reload",
	BindingSwitchTo1:       "switch_to_1",
	BindingSwitchTo2:       "switch_to_2",
	BindingSwitchTo3:       "switch_to_3",
	BindingSwitchTo4:       "switch_to_4",
	BindingSwitchTo5:       "switch_to_5",
	BindingSwitchTo6:       "switch_to_6",
	BindingSkip:            "skip",
	BindingPause:           "pause",
	BindingUIRightClick:    "ui_right_click",
	BindingUIClick:         "ui_click",
	BindingUIFastDrop:      "ui_fast_drop",
	BindingUIExitUI:        "ui_exit_ui",
}

func (b Binding) String() string {
	if name, ok := bindingNames[b]; ok {
		return name
	}
	return "binding(" + strconv.Itoa(int(b)) + ")"
}

// IsUI reports whether b belongs to the UI input subset that is enabled and
// disabled as a whole.
func (b Binding) IsUI() bool {
	return b >= BindingUIRightClick && b <= BindingUIExitUI
}

// HotbarSlot returns the zero-based slot for SwitchTo1..SwitchTo6.
func (b Binding) HotbarSlot() (int, bool) {
	if b < BindingSwitchTo1 || b > BindingSwitchTo6 {
		return 0, false
	}
	return int(b - BindingSwitchTo1), true
}

// Phase is the stage of a discrete input transition.
type Phase int

const (
	PhaseStarted Phase = iota + 1
	PhasePerformed
	PhaseCanceled
)

func (p Phase) String() string {
	switch p {
	case PhaseStarted:
		return "started"
	case PhasePerformed:
		return "performed"
	case PhaseCanceled:
		return "canceled"
	default:
		return "phase(" + strconv.Itoa(int(p)) + ")"
	}
}

// Transition is one discrete input change delivered to the gate.
type Transition struct {
	Binding Binding
	Phase   Phase
}

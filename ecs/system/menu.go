package system

import (
	"go.uber.org/zap"

	"github.com/milk9111/spacesurvival/action"
)

// Pauser stops and resumes the simulation. *ecs.Scheduler implements it.
type Pauser interface {
	SetPaused(paused bool)
}

var (
	pauseLocks     = []action.Capability{action.CapabilityMove, action.CapabilityRotate, action.CapabilityAttack, action.CapabilitySwitch}
	inventoryLocks = []action.Capability{action.CapabilityRotate, action.CapabilityAttack, action.CapabilitySwitch}
)

// MenuController reacts to Pause, InventoryToggle and ExitUI. While a menu
// is open it pauses or restricts the player through the gate and enables
// the UI input subset; closing restores the flags held before opening.
type MenuController struct {
	log    *zap.Logger
	bus    *action.Bus
	gate   *ActionGateSystem
	pauser Pauser
	subs   []action.SubscriptionID

	paused    bool
	inventory bool
	saved     action.Capabilities
	locked    bool
}

func NewMenuController(bus *action.Bus, gate *ActionGateSystem, pauser Pauser, log *zap.Logger) *MenuController {
	if log == nil {
		log = zap.NewNop()
	}
	m := &MenuController{log: log.Named("menu"), bus: bus, gate: gate, pauser: pauser}
	m.subs = append(m.subs,
		bus.SubscribeKind(action.KindPause, func(action.Event) { m.SetPaused(!m.paused) }),
		bus.SubscribeKind(action.KindInventoryToggle, func(action.Event) { m.SetInventory(!m.inventory) }),
		bus.SubscribeKind(action.KindExitUI, func(action.Event) { m.CloseAll() }),
	)
	return m
}

func (m *MenuController) Close() {
	for _, id := range m.subs {
		m.bus.Unsubscribe(id)
	}
	m.subs = nil
}

func (m *MenuController) Paused() bool        { return m.paused }
func (m *MenuController) InventoryOpen() bool { return m.inventory }

func (m *MenuController) SetPaused(paused bool) {
	if m.paused == paused {
		return
	}
	m.paused = paused
	if m.pauser != nil {
		m.pauser.SetPaused(paused)
	}
	m.log.Debug("pause toggled", zap.Bool("paused", paused))
	m.apply()
}

// SetInventory opens or closes the inventory. It is ignored while paused.
func (m *MenuController) SetInventory(open bool) {
	if m.inventory == open || (open && m.paused) {
		return
	}
	m.inventory = open
	m.log.Debug("inventory toggled", zap.Bool("open", open))
	m.apply()
}

// CloseAll dismisses every open menu.
func (m *MenuController) CloseAll() {
	m.SetInventory(false)
	m.SetPaused(false)
}

func (m *MenuController) apply() {
	open := m.paused || m.inventory
	switch {
	case open && !m.locked:
		m.saved = m.gate.Capabilities()
		m.locked = true
	case !open && m.locked:
		for _, c := range pauseLocks {
			m.gate.SetCapability(c, m.saved.Enabled(c))
		}
		m.locked = false
		m.gate.SetInterfaceInputs(false)
		return
	case !open:
		return
	}

	locks := inventoryLocks
	if m.paused {
		locks = pauseLocks
	}
	for _, c := range pauseLocks {
		m.gate.SetCapability(c, m.saved.Enabled(c))
	}
	for _, c := range locks {
		m.gate.SetCapability(c, false)
	}
	m.gate.SetInterfaceInputs(true)
}

// Package input samples keyboard, mouse and gamepad state from ebiten into
// the per-frame InputSample consumed by the action gate.
package input

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/milk9111/spacesurvival/action"
	"github.com/milk9111/spacesurvival/ecs"
	"github.com/milk9111/spacesurvival/ecs/component"
)

const (
	stickDeadzone = 0.2
	// stickLookRate converts a full right-stick deflection into degrees of
	// look per frame, before sensitivity.
	stickLookRate = 20
)

type binding struct {
	action  action.Binding
	keys    []ebiten.Key
	buttons []ebiten.MouseButton
	pad     []ebiten.StandardGamepadButton
}

var bindings = []binding{
	{action: action.BindingSpeedUp, keys: []ebiten.Key{ebiten.KeyShiftLeft}, pad: []ebiten.StandardGamepadButton{ebiten.StandardGamepadButtonLeftStick}},
	{action: action.BindingToggleInventory, keys: []ebiten.Key{ebiten.KeyTab, ebiten.KeyI}, pad: []ebiten.StandardGamepadButton{ebiten.StandardGamepadButtonCenterLeft}},
	{action: action.BindingInteraction, keys: []ebiten.Key{ebiten.KeyE}, pad: []ebiten.StandardGamepadButton{ebiten.StandardGamepadButtonRightLeft}},
	{action: action.BindingFire, buttons: []ebiten.MouseButton{ebiten.MouseButtonLeft}, pad: []ebiten.StandardGamepadButton{ebiten.StandardGamepadButtonFrontBottomRight}},
	{action: action.BindingSecondaryFire, buttons: []ebiten.MouseButton{ebiten.MouseButtonRight}, pad: []ebiten.StandardGamepadButton{ebiten.StandardGamepadButtonFrontBottomLeft}},
	{action: action.BindingReload, keys: []ebiten.Key{ebiten.KeyR}, pad: []ebiten.StandardGamepadButton{ebiten.StandardGamepadButtonRightTop}},
	{action: action.BindingSwitchTo1, keys: []ebiten.Key{ebiten.KeyDigit1}},
	{action: action.BindingSwitchTo2, keys: []ebiten.Key{ebiten.KeyDigit2}},
	{action: action.BindingSwitchTo3, keys: []ebiten.Key{ebiten.KeyDigit3}},
	{action: action.BindingSwitchTo4, keys: []ebiten.Key{ebiten.KeyDigit4}},
	{action: action.BindingSwitchTo5, keys: []ebiten.Key{ebiten.KeyDigit5}},
	{action: action.BindingSwitchTo6, keys: []ebiten.Key{ebiten.KeyDigit6}},
	{action: action.BindingSkip, keys: []ebiten.Key{ebiten.KeyEnter}, pad: []ebiten.StandardGamepadButton{ebiten.StandardGamepadButtonRightBottom}},
	{action: action.BindingPause, keys: []ebiten.Key{ebiten.KeyEscape}, pad: []ebiten.StandardGamepadButton{ebiten.StandardGamepadButtonCenterRight}},
	{action: action.BindingUIRightClick, buttons: []ebiten.MouseButton{ebiten.MouseButtonRight}},
	{action: action.BindingUIClick, buttons: []ebiten.MouseButton{ebiten.MouseButtonLeft}},
	{action: action.BindingUIFastDrop, keys: []ebiten.Key{ebiten.KeyQ}},
	{action: action.BindingUIExitUI, keys: []ebiten.Key{ebiten.KeyBackspace}, pad: []ebiten.StandardGamepadButton{ebiten.StandardGamepadButtonRightRight}},
}

// padAxis maps a held or tapped pad button onto a step along an axis. The
// buttons here must not appear in bindings.
type padAxis struct {
	button ebiten.StandardGamepadButton
	step   float32
}

var (
	padVertical = []padAxis{
		{button: ebiten.StandardGamepadButtonLeftTop, step: 1},
		{button: ebiten.StandardGamepadButtonLeftBottom, step: -1},
	}
	padScroll = []padAxis{
		{button: ebiten.StandardGamepadButtonLeftLeft, step: -1},
		{button: ebiten.StandardGamepadButtonLeftRight, step: 1},
	}
)

// Sampler writes the current device state into every InputSample entity.
// A press yields Started then Performed; a release yields Canceled.
type Sampler struct {
	cursorX, cursorY int
	primed           bool
}

func NewSampler() *Sampler {
	return &Sampler{}
}

// RunWhilePaused keeps Pause and UI transitions flowing while the
// simulation is stopped.
func (s *Sampler) RunWhilePaused() bool { return true }

func (s *Sampler) Update(w *ecs.World) {
	if w == nil {
		return
	}

	var move mgl32.Vec2
	if ebiten.IsKeyPressed(ebiten.KeyW) || ebiten.IsKeyPressed(ebiten.KeyArrowUp) {
		move[1]++
	}
	if ebiten.IsKeyPressed(ebiten.KeyS) || ebiten.IsKeyPressed(ebiten.KeyArrowDown) {
		move[1]--
	}
	if ebiten.IsKeyPressed(ebiten.KeyD) || ebiten.IsKeyPressed(ebiten.KeyArrowRight) {
		move[0]++
	}
	if ebiten.IsKeyPressed(ebiten.KeyA) || ebiten.IsKeyPressed(ebiten.KeyArrowLeft) {
		move[0]--
	}

	var vertical float32
	if ebiten.IsKeyPressed(ebiten.KeySpace) {
		vertical++
	}
	if ebiten.IsKeyPressed(ebiten.KeyControlLeft) || ebiten.IsKeyPressed(ebiten.KeyC) {
		vertical--
	}

	look := s.mouseDelta()

	_, wheelY := ebiten.Wheel()
	scroll := float32(wheelY)

	if gamepads := ebiten.AppendGamepadIDs(nil); len(gamepads) > 0 {
		id := gamepads[0]
		lx := float32(ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisLeftStickHorizontal))
		ly := float32(ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisLeftStickVertical))
		if math32.Hypot(lx, ly) > stickDeadzone {
			// Stick up reads negative.
			move = mgl32.Vec2{lx, -ly}
		}
		rx := float32(ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisRightStickHorizontal))
		ry := float32(ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisRightStickVertical))
		if math32.Hypot(rx, ry) > stickDeadzone {
			look = look.Add(mgl32.Vec2{ry * stickLookRate, rx * stickLookRate})
		}
		for _, a := range padVertical {
			if ebiten.IsStandardGamepadButtonPressed(id, a.button) {
				vertical += a.step
			}
		}
		for _, a := range padScroll {
			if inpututil.IsStandardGamepadButtonJustPressed(id, a.button) {
				scroll += a.step
			}
		}
	}

	vertical = mgl32.Clamp(vertical, -1, 1)
	if l := move.Len(); l > 1 {
		move = move.Mul(1 / l)
	}

	transitions := sampleTransitions(nil)

	ecs.ForEach(w, component.InputComponent.Kind(), func(_ ecs.Entity, in *component.InputSample) {
		in.Move = move
		in.VerticalMove = vertical
		in.Look = look
		in.Scroll += scroll
		in.Transitions = append(in.Transitions, transitions...)
	})
}

// mouseDelta returns the cursor movement since the previous frame as
// (pitch, yaw). Moving the mouse down looks down.
func (s *Sampler) mouseDelta() mgl32.Vec2 {
	x, y := ebiten.CursorPosition()
	if !s.primed {
		s.cursorX, s.cursorY, s.primed = x, y, true
		return mgl32.Vec2{}
	}
	dx, dy := x-s.cursorX, y-s.cursorY
	s.cursorX, s.cursorY = x, y
	if ebiten.CursorMode() != ebiten.CursorModeCaptured {
		return mgl32.Vec2{}
	}
	return mgl32.Vec2{float32(dy), float32(dx)}
}

func sampleTransitions(out []action.Transition) []action.Transition {
	pad := -1
	if gamepads := ebiten.AppendGamepadIDs(nil); len(gamepads) > 0 {
		pad = int(gamepads[0])
	}
	for _, b := range bindings {
		pressed, released := edges(b, pad)
		if pressed {
			out = append(out,
				action.Transition{Binding: b.action, Phase: action.PhaseStarted},
				action.Transition{Binding: b.action, Phase: action.PhasePerformed},
			)
		}
		if released {
			out = append(out, action.Transition{Binding: b.action, Phase: action.PhaseCanceled})
		}
	}
	return out
}

func edges(b binding, pad int) (pressed, released bool) {
	for _, k := range b.keys {
		pressed = pressed || inpututil.IsKeyJustPressed(k)
		released = released || inpututil.IsKeyJustReleased(k)
	}
	for _, m := range b.buttons {
		pressed = pressed || inpututil.IsMouseButtonJustPressed(m)
		released = released || inpututil.IsMouseButtonJustReleased(m)
	}
	if pad >= 0 {
		id := ebiten.GamepadID(pad)
		for _, p := range b.pad {
			pressed = pressed || inpututil.IsStandardGamepadButtonJustPressed(id, p)
			released = released || inpututil.IsStandardGamepadButtonJustReleased(id, p)
		}
	}
	return pressed, released
}

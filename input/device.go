package input

import (
	"fmt"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// Action is a logical input the game reads, independent of device.
type Action int

const (
	ActionMoveForward Action = iota
	ActionMoveBack
	ActionMoveLeft
	ActionMoveRight
	ActionCast
	ActionNextSpell
	ActionPrevSpell
	ActionPause
	actionCount
)

var actionNames = map[string]Action{
	"move_forward": ActionMoveForward,
	"move_back":    ActionMoveBack,
	"move_left":    ActionMoveLeft,
	"move_right":   ActionMoveRight,
	"cast":         ActionCast,
	"next_spell":   ActionNextSpell,
	"prev_spell":   ActionPrevSpell,
	"pause":        ActionPause,
}

// ParseAction maps a binding name from game.yaml to an Action.
func ParseAction(name string) (Action, error) {
	a, ok := actionNames[name]
	if !ok {
		return 0, fmt.Errorf("input: unknown action %q", name)
	}
	return a, nil
}

// Device reports raw state for logical actions.
type Device interface {
	Held(a Action) bool
	JustPressed(a Action) bool
	// Stick is the analog movement axis in [-1, 1], x right and y forward.
	Stick() (x, y float64)
}

// EbitenDevice reads the keyboard, mouse and the first standard gamepad.
type EbitenDevice struct {
	keys [actionCount][]ebiten.Key
}

// NewEbitenDevice builds a device from action name -> key names, e.g.
// "move_forward": ["W", "ArrowUp"].
func NewEbitenDevice(bindings map[string][]string) (*EbitenDevice, error) {
	d := &EbitenDevice{}
	for name, keys := range bindings {
		a, err := ParseAction(name)
		if err != nil {
			return nil, err
		}
		for _, k := range keys {
			var key ebiten.Key
			if err := key.UnmarshalText([]byte(k)); err != nil {
				return nil, fmt.Errorf("input: bind %s: %w", name, err)
			}
			d.keys[a] = append(d.keys[a], key)
		}
	}
	return d, nil
}

func (d *EbitenDevice) Held(a Action) bool {
	if a < 0 || a >= actionCount {
		return false
	}
	for _, k := range d.keys[a] {
		if ebiten.IsKeyPressed(k) {
			return true
		}
	}
	switch a {
	case ActionCast:
		if ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft) {
			return true
		}
	}
	if id, ok := firstGamepad(); ok {
		if btn, ok := gamepadButtons[a]; ok && ebiten.IsStandardGamepadButtonPressed(id, btn) {
			return true
		}
	}
	return false
}

func (d *EbitenDevice) JustPressed(a Action) bool {
	if a < 0 || a >= actionCount {
		return false
	}
	for _, k := range d.keys[a] {
		if inpututil.IsKeyJustPressed(k) {
			return true
		}
	}
	_, wheelY := ebiten.Wheel()
	switch {
	case a == ActionNextSpell && wheelY > 0:
		return true
	case a == ActionPrevSpell && wheelY < 0:
		return true
	}
	if id, ok := firstGamepad(); ok {
		if btn, ok := gamepadButtons[a]; ok && inpututil.IsStandardGamepadButtonJustPressed(id, btn) {
			return true
		}
	}
	return false
}

func (d *EbitenDevice) Stick() (x, y float64) {
	id, ok := firstGamepad()
	if !ok {
		return 0, 0
	}
	x = ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisLeftStickHorizontal)
	// gamepad y grows downward, forward is up on the stick
	y = -ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisLeftStickVertical)
	if math.Hypot(x, y) < stickDeadzone {
		return 0, 0
	}
	return x, y
}

var gamepadButtons = map[Action]ebiten.StandardGamepadButton{
	ActionCast:      ebiten.StandardGamepadButtonRightBottom,
	ActionNextSpell: ebiten.StandardGamepadButtonFrontTopRight,
	ActionPrevSpell: ebiten.StandardGamepadButtonFrontTopLeft,
	ActionPause:     ebiten.StandardGamepadButtonCenterRight,
}

func firstGamepad() (ebiten.GamepadID, bool) {
	ids := ebiten.AppendGamepadIDs(nil)
	if len(ids) == 0 {
		return 0, false
	}
	if !ebiten.IsStandardGamepadLayoutAvailable(ids[0]) {
		return 0, false
	}
	return ids[0], true
}

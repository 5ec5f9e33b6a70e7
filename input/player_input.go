package input

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/milk9111/magedefence/common"
	"github.com/milk9111/magedefence/reactive"
)

const stickDeadzone = 0.2

// PlayerInput turns a Device into the values the player controller reads.
// Values only change inside HandleInput.
type PlayerInput struct {
	device Device

	moveDirection *reactive.Property[mgl32.Vec3]
	spellActive   *reactive.Property[bool]
	spellChange   *reactive.Subject[int]
	pause         *reactive.Subject[struct{}]
}

func NewPlayerInput(device Device) *PlayerInput {
	return &PlayerInput{
		device:        device,
		moveDirection: reactive.NewProperty(mgl32.Vec3{}),
		spellActive:   reactive.NewProperty(false),
		spellChange:   reactive.NewSubject[int](),
		pause:         reactive.NewSubject[struct{}](),
	}
}

func (p *PlayerInput) MoveDirection() mgl32.Vec3 {
	return p.moveDirection.Value()
}

func (p *PlayerInput) SpellActive() bool {
	return p.spellActive.Value()
}

// SpellChange emits +1 for the next spell and -1 for the previous one.
func (p *PlayerInput) SpellChange() reactive.Stream[int] {
	return p.spellChange
}

// MoveDirectionChanged notifies when the sampled direction changes.
func (p *PlayerInput) MoveDirectionChanged() reactive.Stream[mgl32.Vec3] {
	return p.moveDirection
}

func (p *PlayerInput) Pause() reactive.Stream[struct{}] {
	return p.pause
}

// HandleInput samples the device once for this frame.
func (p *PlayerInput) HandleInput() {
	if p == nil || p.device == nil {
		return
	}
	d := p.device

	var dir mgl32.Vec3
	if d.Held(ActionMoveForward) {
		dir[2]++
	}
	if d.Held(ActionMoveBack) {
		dir[2]--
	}
	if d.Held(ActionMoveRight) {
		dir[0]++
	}
	if d.Held(ActionMoveLeft) {
		dir[0]--
	}
	if x, y := d.Stick(); x != 0 || y != 0 {
		dir = mgl32.Vec3{float32(x), 0, float32(y)}
	}
	p.moveDirection.Set(common.ClampLength(dir, 1))
	p.spellActive.Set(d.Held(ActionCast))

	if d.JustPressed(ActionNextSpell) {
		p.spellChange.Emit(1)
	}
	if d.JustPressed(ActionPrevSpell) {
		p.spellChange.Emit(-1)
	}
	if d.JustPressed(ActionPause) {
		p.pause.Emit(struct{}{})
	}
}

// Package player drives the player character: movement and facing on the
// fixed tick, input polling and spell casting on the frame tick.
package player

import (
	"errors"
	"log/slog"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/milk9111/magedefence/common"
	"github.com/milk9111/magedefence/ecs/component"
	"github.com/milk9111/magedefence/logger"
	"github.com/milk9111/magedefence/reactive"
)

var ErrMissingInput = errors.New("player: input source is nil")

// Input is the source of player intent.
type Input interface {
	// MoveDirection is the requested movement; the zero vector means none.
	MoveDirection() mgl32.Vec3
	SpellActive() bool
	SpellChange() reactive.Stream[int]
	// HandleInput samples devices for the current frame.
	HandleInput()
}

// TargetRegistry lets other systems find the player while it is active.
type TargetRegistry interface {
	RegisterTarget(t *component.Transform)
	UnregisterTarget(t *component.Transform)
}

type Stats interface {
	MoveSpeed() float32
	RotationSpeed() float32
}

type SpellCaster interface {
	CastSpell()
	ChangeSpell(direction int)
}

// Mover applies a collision-aware displacement.
type Mover interface {
	SimpleMove(motion mgl32.Vec3)
}

// Ticker is the host scheduler the controller subscribes to while active.
type Ticker interface {
	OnFixedTick(fn func(dt float32)) reactive.Subscription
	OnFrameTick(fn func(dt float32)) reactive.Subscription
}

type State int

const (
	StateUninitialized State = iota
	StateActive
	StateInactive
	StateDestroyed
)

func (s State) String() string {
	switch s {
	case StateUninitialized:
		return "uninitialized"
	case StateActive:
		return "active"
	case StateInactive:
		return "inactive"
	case StateDestroyed:
		return "destroyed"
	default:
		return "unknown"
	}
}

// Deps wires a Controller. Input is required; Caster and Targets are optional.
type Deps struct {
	Input     Input
	Targets   TargetRegistry
	Stats     Stats
	Caster    SpellCaster
	Mover     Mover
	Transform *component.Transform
	Ticker    Ticker
	Logger    *slog.Logger
}

type Controller struct {
	input     Input
	targets   TargetRegistry
	stats     Stats
	caster    SpellCaster
	mover     Mover
	transform *component.Transform
	ticker    Ticker
	log       *slog.Logger

	state State
	inert bool
	scope reactive.Scope
}

// NewController wires the controller. Without an input source it logs once
// and stays inert for its whole lifetime: activation still registers the
// transform but no tick or signal callbacks are ever subscribed.
func NewController(d Deps) *Controller {
	c := &Controller{
		input:     d.Input,
		targets:   d.Targets,
		stats:     d.Stats,
		caster:    d.Caster,
		mover:     d.Mover,
		transform: d.Transform,
		ticker:    d.Ticker,
		log:       d.Logger,
	}
	if c.log == nil {
		c.log = logger.L()
	}
	if c.input == nil {
		c.inert = true
		c.log.Error("player controller disabled, wire an input source in the composition root", "error", ErrMissingInput)
	}
	return c
}

func (c *Controller) State() State {
	return c.state
}

// Inert reports whether the controller was built without an input source.
func (c *Controller) Inert() bool {
	return c.inert
}

func (c *Controller) Transform() *component.Transform {
	return c.transform
}

// SetCaster attaches or detaches (nil) the spell caster.
func (c *Controller) SetCaster(caster SpellCaster) {
	c.caster = caster
}

// Activate registers the transform and subscribes the tick callbacks.
// Calling it while already active or after Destroy does nothing.
func (c *Controller) Activate() {
	if c.state == StateActive || c.state == StateDestroyed {
		return
	}
	c.state = StateActive

	if c.targets != nil {
		c.targets.RegisterTarget(c.transform)
	}
	if c.inert || c.ticker == nil {
		return
	}
	c.scope.Add(c.ticker.OnFixedTick(c.FixedTick))
	c.scope.Add(c.ticker.OnFrameTick(c.FrameTick))
	if changes := c.input.SpellChange(); changes != nil {
		c.scope.Add(changes.Subscribe(c.ChangeSpell))
	}
}

// Deactivate releases every callback and unregisters the transform.
func (c *Controller) Deactivate() {
	if c.state != StateActive {
		return
	}
	c.scope.Close()
	if c.targets != nil {
		c.targets.UnregisterTarget(c.transform)
	}
	c.state = StateInactive
}

// Destroy deactivates the controller for good.
func (c *Controller) Destroy() {
	c.Deactivate()
	c.state = StateDestroyed
}

// FixedTick samples the movement direction once and applies it.
func (c *Controller) FixedTick(dt float32) {
	if c.inert {
		return
	}
	dir := c.input.MoveDirection()
	c.Move(dir, dt)
	c.Rotate(dir, dt)
}

// FrameTick polls input, then forwards a cast for every frame the spell input
// is held. Rate limiting belongs to the caster.
func (c *Controller) FrameTick(float32) {
	if c.inert {
		return
	}
	c.input.HandleInput()
	c.CastSpell(c.input.SpellActive())
}

func (c *Controller) Move(dir mgl32.Vec3, dt float32) {
	if common.IsZero(dir) || c.mover == nil {
		return
	}
	c.mover.SimpleMove(dir.Mul(c.moveSpeed() * dt))
}

// Rotate turns toward dir by RotationSpeed*dt of the remaining arc.
func (c *Controller) Rotate(dir mgl32.Vec3, dt float32) {
	if common.IsZero(dir) || c.transform == nil {
		return
	}
	target := common.LookRotation(dir, common.Up)
	c.transform.Rotation = common.Slerp(c.transform.Rotation, target, c.rotationSpeed()*dt)
}

func (c *Controller) CastSpell(active bool) {
	if !active || c.caster == nil {
		return
	}
	c.caster.CastSpell()
}

func (c *Controller) ChangeSpell(direction int) {
	if c.caster == nil {
		return
	}
	c.caster.ChangeSpell(direction)
}

func (c *Controller) moveSpeed() float32 {
	if c.stats == nil {
		return 0
	}
	return c.stats.MoveSpeed()
}

func (c *Controller) rotationSpeed() float32 {
	if c.stats == nil {
		return 0
	}
	return c.stats.RotationSpeed()
}

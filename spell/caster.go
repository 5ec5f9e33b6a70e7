// Package spell implements the player's spellbook: selecting a spell and
// casting it as a projectile, with per-spell cooldowns.
package spell

import (
	"errors"
	"image/color"
	"log/slog"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/google/uuid"
	"github.com/milk9111/magedefence/ecs/component"
	"github.com/milk9111/magedefence/logger"
)

var ErrEmptySpellbook = errors.New("spell: spellbook is empty")

// Spell is one castable entry of the spellbook.
type Spell struct {
	Name     string
	Cooldown float64
	Speed    float32
	Radius   float32
	Damage   int
	Lifetime float32
	Color    color.Color
}

// Cast is a spawn request for one projectile.
type Cast struct {
	ID        uuid.UUID
	Spell     Spell
	Origin    mgl32.Vec3
	Direction mgl32.Vec3
}

// Spawner turns a cast into a projectile in the world.
type Spawner interface {
	SpawnProjectile(c Cast) error
}

// Clock returns the current game time in seconds.
type Clock func() float64

// Caster owns the spellbook and the cooldown of each spell. Every CastSpell
// call while a spell is ready spawns one projectile.
type Caster struct {
	spells    []Spell
	current   int
	readyAt   []float64
	origin    *component.Transform
	spawner   Spawner
	now       Clock
	log       *slog.Logger
	castCount int
}

// NewCaster creates a caster that fires from origin along its facing.
func NewCaster(spells []Spell, origin *component.Transform, spawner Spawner, now Clock, log *slog.Logger) (*Caster, error) {
	if len(spells) == 0 {
		return nil, ErrEmptySpellbook
	}
	if now == nil {
		return nil, errors.New("spell: clock is nil")
	}
	if log == nil {
		log = logger.L()
	}
	return &Caster{
		spells:  append([]Spell(nil), spells...),
		readyAt: make([]float64, len(spells)),
		origin:  origin,
		spawner: spawner,
		now:     now,
		log:     log,
	}, nil
}

// CastSpell fires the current spell if its cooldown has elapsed.
func (c *Caster) CastSpell() {
	if c == nil {
		return
	}
	now := c.now()
	if now < c.readyAt[c.current] {
		return
	}
	spell := c.spells[c.current]
	c.readyAt[c.current] = now + spell.Cooldown

	cast := Cast{
		ID:        uuid.New(),
		Spell:     spell,
		Origin:    c.originPosition(),
		Direction: c.facing(),
	}
	c.castCount++
	if c.spawner == nil {
		return
	}
	if err := c.spawner.SpawnProjectile(cast); err != nil {
		c.log.Warn("spell cast failed", "spell", spell.Name, "cast_id", cast.ID.String(), "error", err)
		return
	}
	c.log.Debug("spell cast", "spell", spell.Name, "cast_id", cast.ID.String())
}

// ChangeSpell moves the selection by direction, wrapping at both ends.
func (c *Caster) ChangeSpell(direction int) {
	if c == nil || direction == 0 {
		return
	}
	n := len(c.spells)
	c.current = ((c.current+direction)%n + n) % n
	c.log.Debug("spell selected", "spell", c.spells[c.current].Name)
}

func (c *Caster) Current() Spell {
	if c == nil {
		return Spell{}
	}
	return c.spells[c.current]
}

// Casts returns how many casts passed the cooldown check.
func (c *Caster) Casts() int {
	if c == nil {
		return 0
	}
	return c.castCount
}

// Cooldown returns the seconds until the current spell is ready.
func (c *Caster) Cooldown() float64 {
	if c == nil {
		return 0
	}
	left := c.readyAt[c.current] - c.now()
	if left < 0 {
		return 0
	}
	return left
}

func (c *Caster) originPosition() mgl32.Vec3 {
	if c.origin == nil {
		return mgl32.Vec3{}
	}
	return c.origin.Position
}

func (c *Caster) facing() mgl32.Vec3 {
	f := c.origin.Forward()
	f = mgl32.Vec3{f.X(), 0, f.Z()}
	if f.Len() < 1e-6 {
		return mgl32.Vec3{0, 0, 1}
	}
	return f.Normalize()
}

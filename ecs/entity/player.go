package entity

import (
	"errors"
	"fmt"
	"image/color"
	"log/slog"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/milk9111/magedefence/common"
	"github.com/milk9111/magedefence/ecs"
	"github.com/milk9111/magedefence/ecs/component"
	"github.com/milk9111/magedefence/logger"
	"github.com/milk9111/magedefence/player"
	"github.com/milk9111/magedefence/prefabs"
	"github.com/milk9111/magedefence/spell"
	"github.com/milk9111/magedefence/targeting"
)

var playerColor = color.NRGBA{R: 0x6f, G: 0x8c, B: 0xff, A: 0xff}

// PlayerOptions are the collaborators of the player that live outside the
// world. Input may be nil, in which case the controller is built inert.
type PlayerOptions struct {
	Input       player.Input
	Locators    *targeting.Locators
	Projectiles spell.Spawner
	Logger      *slog.Logger
}

// Player is the handle returned by NewPlayer.
type Player struct {
	Entity     ecs.Entity
	Transform  *component.Transform
	Stats      *component.PlayerStats
	Caster     *spell.Caster
	Controller *player.Controller
}

// NewPlayer builds the player entity from spec and activates its controller on
// the scheduler's ticks.
func NewPlayer(w *ecs.World, sched *ecs.Scheduler, spec *prefabs.PlayerSpec, opts PlayerOptions) (*Player, error) {
	if w == nil || sched == nil {
		return nil, errors.New("player: world and scheduler are required")
	}
	if spec == nil {
		return nil, errors.New("player: spec is nil")
	}
	log := opts.Logger
	if log == nil {
		log = logger.L()
	}

	e := ecs.CreateEntity(w)
	transform := transformFromSpec(spec.Transform)
	stats := component.NewPlayerStats(float32(spec.MoveSpeed), float32(spec.RotationSpeed))
	character := component.Character{
		Radius: spec.Character.Radius,
		Height: spec.Character.Height,
		Layer:  component.LayerPlayer,
		Mask:   component.LayerWall | component.LayerEnemy,
	}
	if err := addAll(w, e,
		func() error { return ecs.Add(w, e, component.TransformComponent.Kind(), transform) },
		func() error { return ecs.Add(w, e, component.PlayerTagComponent.Kind(), &component.PlayerTag{}) },
		func() error { return ecs.Add(w, e, component.PlayerStatsComponent.Kind(), stats) },
		func() error {
			return ecs.Add(w, e, component.ExperienceComponent.Kind(), &component.Experience{KillsPerLevel: spec.Upgrades.KillsPerLevel})
		},
		func() error { return ecs.Add(w, e, component.CharacterComponent.Kind(), &character) },
		func() error {
			return ecs.Add(w, e, component.AppearanceComponent.Kind(), &component.Appearance{
				Color:  spec.Color.RGBA8(playerColor),
				Radius: float32(character.Radius),
				Facing: true,
			})
		},
	); err != nil {
		return nil, fmt.Errorf("player: %w", err)
	}

	mover := w.PhysicsWorld().AddCharacter(e, transform, character)

	projectiles := opts.Projectiles
	if projectiles == nil {
		projectiles = NewProjectileSpawner(w, log)
	}
	caster, err := spell.NewCaster(spellsFromSpec(spec.Spells), transform, projectiles, w.Time, log)
	if err != nil {
		destroyEntity(w, e)
		return nil, fmt.Errorf("player: %w", err)
	}

	var targets player.TargetRegistry
	if opts.Locators != nil {
		targets = opts.Locators.Get(targeting.PlayerLocator)
	}

	ctrl := player.NewController(player.Deps{
		Input:     opts.Input,
		Targets:   targets,
		Stats:     stats,
		Caster:    caster,
		Mover:     mover,
		Transform: transform,
		Ticker:    sched,
		Logger:    log.With("entity", e.String()),
	})
	ctrl.Activate()

	return &Player{
		Entity:     e,
		Transform:  transform,
		Stats:      stats,
		Caster:     caster,
		Controller: ctrl,
	}, nil
}

// Destroy releases the controller and removes the player from the world.
func (p *Player) Destroy(w *ecs.World) {
	if p == nil {
		return
	}
	p.Controller.Destroy()
	destroyEntity(w, p.Entity)
}

func transformFromSpec(s prefabs.TransformSpec) *component.Transform {
	t := component.NewTransform(mgl32.Vec3{float32(s.X), float32(s.Y), float32(s.Z)})
	if s.Yaw != 0 {
		t.Rotation = mgl32.QuatRotate(mgl32.DegToRad(float32(s.Yaw)), common.Up)
	}
	return t
}

func spellsFromSpec(specs []prefabs.SpellSpec) []spell.Spell {
	out := make([]spell.Spell, 0, len(specs))
	for _, s := range specs {
		out = append(out, spell.Spell{
			Name:     s.Name,
			Cooldown: s.Cooldown,
			Speed:    float32(s.Speed),
			Radius:   float32(s.Radius),
			Damage:   s.Damage,
			Lifetime: float32(s.Lifetime),
			Color:    s.Color.RGBA8(color.White),
		})
	}
	return out
}

// addAll runs each add in order and destroys e on the first failure.
func addAll(w *ecs.World, e ecs.Entity, adds ...func() error) error {
	for _, add := range adds {
		if err := add(); err != nil {
			destroyEntity(w, e)
			return err
		}
	}
	return nil
}

func destroyEntity(w *ecs.World, e ecs.Entity) {
	w.PhysicsWorld().RemoveCharacter(e)
	ecs.DestroyEntity(w, e)
}

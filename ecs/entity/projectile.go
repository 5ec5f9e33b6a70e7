package entity

import (
	"log/slog"

	"github.com/milk9111/magedefence/ecs"
	"github.com/milk9111/magedefence/ecs/component"
	"github.com/milk9111/magedefence/logger"
	"github.com/milk9111/magedefence/spell"
)

// ProjectileSpawner turns spell casts into projectile entities.
type ProjectileSpawner struct {
	w   *ecs.World
	log *slog.Logger
}

func NewProjectileSpawner(w *ecs.World, log *slog.Logger) *ProjectileSpawner {
	if log == nil {
		log = logger.L()
	}
	return &ProjectileSpawner{w: w, log: log}
}

func (s *ProjectileSpawner) SpawnProjectile(c spell.Cast) error {
	w := s.w
	e := ecs.CreateEntity(w)
	return addAll(w, e,
		func() error { return ecs.Add(w, e, component.TransformComponent.Kind(), component.NewTransform(c.Origin)) },
		func() error { return ecs.Add(w, e, component.ProjectileTagComponent.Kind(), &component.ProjectileTag{}) },
		func() error {
			return ecs.Add(w, e, component.ProjectileComponent.Kind(), &component.Projectile{
				Spell:     c.Spell.Name,
				CastID:    c.ID.String(),
				Direction: c.Direction,
				Speed:     c.Spell.Speed,
				Radius:    c.Spell.Radius,
				Damage:    c.Spell.Damage,
			})
		},
		func() error { return ecs.Add(w, e, component.TTLComponent.Kind(), &component.TTL{Remaining: c.Spell.Lifetime}) },
		func() error {
			return ecs.Add(w, e, component.AppearanceComponent.Kind(), &component.Appearance{Color: c.Spell.Color, Radius: c.Spell.Radius})
		},
	)
}

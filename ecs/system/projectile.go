package system

import (
	"log/slog"

	"github.com/milk9111/magedefence/ecs"
	"github.com/milk9111/magedefence/ecs/component"
	"github.com/milk9111/magedefence/logger"
)

const projectileMask = component.LayerWall | component.LayerEnemy

// ProjectileSystem advances projectiles with a swept query so fast spells
// never pass through a thin wall or enemy between two steps. A projectile is
// destroyed on its first hit; enemies lose health and die at zero.
type ProjectileSystem struct {
	log *slog.Logger
}

func NewProjectileSystem(log *slog.Logger) *ProjectileSystem {
	if log == nil {
		log = logger.L()
	}
	return &ProjectileSystem{log: log}
}

func (s *ProjectileSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	dt := w.DeltaTime()
	pw := w.PhysicsWorld()

	ecs.ForEach2(w, component.ProjectileComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, p *component.Projectile, t *component.Transform) {
		to := t.Position.Add(p.Direction.Mul(p.Speed * dt))
		hit, ok := pw.Sweep(t.Position, to, float64(p.Radius), projectileMask)
		if !ok {
			t.Position = to
			return
		}

		t.Position = hit.Point
		if hit.Entity.Valid() && ecs.Has(w, hit.Entity, component.EnemyTagComponent.Kind()) {
			s.damage(w, hit.Entity, p)
		}
		ecs.DestroyEntity(w, e)
	})
}

func (s *ProjectileSystem) damage(w *ecs.World, enemy ecs.Entity, p *component.Projectile) {
	health, ok := ecs.Get(w, enemy, component.HealthComponent.Kind())
	if !ok {
		return
	}
	health.Current -= p.Damage
	if health.Current > 0 {
		return
	}

	destroy(w, enemy)
	w.Events().Push(ecs.Event{
		Type: ecs.EventEnemyKilled,
		Data: ecs.EnemyKilledEvent{Enemy: enemy, CastID: p.CastID},
	})
	s.log.Debug("enemy killed", "entity", enemy.String(), "spell", p.Spell, "cast_id", p.CastID)
}

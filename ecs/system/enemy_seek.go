package system

import (
	"github.com/milk9111/magedefence/common"
	"github.com/milk9111/magedefence/ecs"
	"github.com/milk9111/magedefence/ecs/component"
	"github.com/milk9111/magedefence/targeting"
)

// EnemySeekSystem steers every enemy toward the nearest registered target,
// turning at TurnSpeed and stopping StopDistance short of it.
type EnemySeekSystem struct {
	targets *targeting.Registry
}

func NewEnemySeekSystem(targets *targeting.Registry) *EnemySeekSystem {
	return &EnemySeekSystem{targets: targets}
}

func (s *EnemySeekSystem) Update(w *ecs.World) {
	if w == nil || s.targets.Len() == 0 {
		return
	}
	dt := w.DeltaTime()
	pw := w.PhysicsWorld()

	ecs.ForEach2(w, component.EnemyComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, enemy *component.Enemy, t *component.Transform) {
		target, ok := s.targets.Nearest(t.Position)
		if !ok {
			return
		}
		toTarget := common.Planar(target.Position.Sub(t.Position))
		dist := toTarget.Len()
		if dist < 1e-4 {
			return
		}

		t.Rotation = common.Slerp(t.Rotation, common.LookRotation(toTarget, common.Up), enemy.TurnSpeed*dt)

		step := min(enemy.Speed*dt, dist-enemy.StopDistance)
		if step <= 0 {
			return
		}
		motion := toTarget.Mul(step / dist)
		if cc, ok := pw.Character(e); ok {
			cc.SimpleMove(motion)
			return
		}
		t.Position = t.Position.Add(motion)
	})
}

package system

import (
	"github.com/milk9111/magedefence/ecs"
	"github.com/milk9111/magedefence/ecs/component"
)

// TTLSystem counts TTL components down by the phase delta and destroys the
// entity once its time is up.
type TTLSystem struct{}

func NewTTLSystem() *TTLSystem {
	return &TTLSystem{}
}

func (s *TTLSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	dt := w.DeltaTime()

	ecs.ForEach(w, component.TTLComponent.Kind(), func(e ecs.Entity, ttl *component.TTL) {
		ttl.Remaining -= dt
		if ttl.Remaining > 0 {
			return
		}
		destroy(w, e)
	})
}

// destroy removes e and its physics capsule, if it has one.
func destroy(w *ecs.World, e ecs.Entity) {
	w.PhysicsWorld().RemoveCharacter(e)
	ecs.DestroyEntity(w, e)
}

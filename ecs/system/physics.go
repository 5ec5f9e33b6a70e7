package system

import "github.com/milk9111/magedefence/ecs"

// PhysicsSystem steps the world's physics space once per fixed tick. It runs
// after everything that moves characters and before anything that sweeps
// against them.
type PhysicsSystem struct{}

func NewPhysicsSystem() *PhysicsSystem {
	return &PhysicsSystem{}
}

func (s *PhysicsSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	w.PhysicsWorld().Step(float64(w.DeltaTime()))
}

package system

import (
	"log/slog"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/milk9111/magedefence/ecs"
	"github.com/milk9111/magedefence/ecs/component"
	"github.com/milk9111/magedefence/logger"
)

// EnemyFactory creates one enemy at pos.
type EnemyFactory func(w *ecs.World, pos mgl32.Vec3) (ecs.Entity, error)

// EnemySpawnSystem spawns an enemy every interval seconds, cycling through
// the spawn points, while fewer than max enemies are alive.
type EnemySpawnSystem struct {
	points   []mgl32.Vec3
	interval float32
	max      int
	spawn    EnemyFactory
	log      *slog.Logger

	timer float32
	next  int
}

func NewEnemySpawnSystem(points []mgl32.Vec3, interval float32, max int, spawn EnemyFactory, log *slog.Logger) *EnemySpawnSystem {
	if log == nil {
		log = logger.L()
	}
	return &EnemySpawnSystem{
		points:   append([]mgl32.Vec3(nil), points...),
		interval: interval,
		max:      max,
		spawn:    spawn,
		log:      log,
	}
}

func (s *EnemySpawnSystem) Update(w *ecs.World) {
	if w == nil || s.spawn == nil || len(s.points) == 0 || s.interval <= 0 {
		return
	}
	s.timer += w.DeltaTime()
	if s.timer < s.interval {
		return
	}
	s.timer -= s.interval

	alive := len(w.Query(component.EnemyTagComponent.Kind()))
	if s.max > 0 && alive >= s.max {
		return
	}

	pos := s.points[s.next]
	s.next = (s.next + 1) % len(s.points)
	e, err := s.spawn(w, pos)
	if err != nil {
		s.log.Warn("enemy spawn failed", "error", err)
		return
	}
	s.log.Debug("enemy spawned", "entity", e.String(), "alive", alive+1)
}

package system

import (
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/milk9111/magedefence/ecs"
	"github.com/milk9111/magedefence/ecs/component"
	"github.com/milk9111/magedefence/logger"
	"github.com/milk9111/magedefence/prefabs"
)

// ChangeSource reports prefab files changed since the last call and any
// errors hit while watching them.
type ChangeSource interface {
	Drain() []string
	DrainErrors() []error
}

// StatsReloadSystem applies edits to player.yaml and the upgrade script while
// the game runs. Multipliers earned from upgrades are kept; only the base
// speeds are replaced.
type StatsReloadSystem struct {
	changes    ChangeSource
	loadPlayer func() (*prefabs.PlayerSpec, error)
	upgrades   *UpgradeSystem
	log        *slog.Logger
}

func NewStatsReloadSystem(changes ChangeSource, upgrades *UpgradeSystem, log *slog.Logger) *StatsReloadSystem {
	if log == nil {
		log = logger.L()
	}
	return &StatsReloadSystem{
		changes:    changes,
		loadPlayer: prefabs.LoadPlayerSpec,
		upgrades:   upgrades,
		log:        log,
	}
}

func (s *StatsReloadSystem) Update(w *ecs.World) {
	if w == nil || s.changes == nil {
		return
	}
	for _, err := range s.changes.DrainErrors() {
		s.log.Warn("prefab watcher error", "error", err)
	}
	for _, name := range s.changes.Drain() {
		switch {
		case name == prefabs.PlayerFile:
			s.reloadPlayer(w)
		case strings.EqualFold(filepath.Ext(name), ".tengo"):
			if s.upgrades != nil {
				s.upgrades.Invalidate()
				s.log.Info("upgrade script reloaded", "file", name)
			}
		}
	}
}

func (s *StatsReloadSystem) reloadPlayer(w *ecs.World) {
	spec, err := s.loadPlayer()
	if err != nil {
		s.log.Warn("player reload failed, keeping stats", "error", err)
		return
	}
	ecs.ForEach(w, component.PlayerStatsComponent.Kind(), func(_ ecs.Entity, stats *component.PlayerStats) {
		stats.BaseMoveSpeed = float32(spec.MoveSpeed)
		stats.BaseRotationSpeed = float32(spec.RotationSpeed)
	})
	ecs.ForEach(w, component.ExperienceComponent.Kind(), func(_ ecs.Entity, exp *component.Experience) {
		exp.KillsPerLevel = spec.Upgrades.KillsPerLevel
	})
	s.log.Info("player stats reloaded", "move_speed", spec.MoveSpeed, "rotation_speed", spec.RotationSpeed)
}

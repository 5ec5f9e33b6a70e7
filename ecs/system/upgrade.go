package system

import (
	"errors"
	"fmt"
	"log/slog"
	"math"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
	"github.com/milk9111/magedefence/ecs"
	"github.com/milk9111/magedefence/ecs/component"
	"github.com/milk9111/magedefence/logger"
)

// ScriptSource loads upgrade script source by name.
type ScriptSource func(name string) ([]byte, error)

var errBadMultiplier = errors.New("upgrade: script returned a non-positive multiplier")

// UpgradeSystem counts kills from EnemyKilled events. Every KillsPerLevel
// kills the player levels up and a tengo script computes new stat
// multipliers from the level.
type UpgradeSystem struct {
	scriptName string
	load       ScriptSource
	log        *slog.Logger

	compiled *tengo.Compiled
}

func NewUpgradeSystem(scriptName string, load ScriptSource, log *slog.Logger) *UpgradeSystem {
	if log == nil {
		log = logger.L()
	}
	return &UpgradeSystem{scriptName: scriptName, load: load, log: log}
}

// Invalidate drops the compiled script so the next level-up reloads it.
func (s *UpgradeSystem) Invalidate() {
	s.compiled = nil
}

func (s *UpgradeSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	kills := w.Events().Take(ecs.EventEnemyKilled)
	if len(kills) == 0 {
		return
	}

	player, ok := ecs.First(w, component.PlayerTagComponent.Kind())
	if !ok {
		return
	}
	exp, ok := ecs.Get(w, player, component.ExperienceComponent.Kind())
	if !ok {
		return
	}
	stats, _ := ecs.Get(w, player, component.PlayerStatsComponent.Kind())

	for range kills {
		exp.Kills++
		if exp.KillsPerLevel <= 0 || exp.Kills%exp.KillsPerLevel != 0 {
			continue
		}
		exp.Level++
		if stats == nil {
			continue
		}
		if err := s.apply(exp, stats); err != nil {
			s.log.Warn("upgrade script failed, keeping stats", "level", exp.Level, "error", err)
			continue
		}
		s.log.Info("level up", "level", exp.Level, "move_multiplier", stats.MoveMultiplier, "rotation_multiplier", stats.RotationMultiplier)
	}
}

func (s *UpgradeSystem) apply(exp *component.Experience, stats *component.PlayerStats) error {
	compiled, err := s.script()
	if err != nil {
		return err
	}

	inputs := map[string]any{
		"level":               exp.Level,
		"kills":               exp.Kills,
		"move_multiplier":     float64(stats.MoveMultiplier),
		"rotation_multiplier": float64(stats.RotationMultiplier),
	}
	for name, v := range inputs {
		if err := compiled.Set(name, v); err != nil {
			return err
		}
	}
	if err := compiled.Run(); err != nil {
		return err
	}

	move := compiled.Get("move_multiplier").Float()
	rot := compiled.Get("rotation_multiplier").Float()
	if !validMultiplier(move) || !validMultiplier(rot) {
		return fmt.Errorf("%w: move=%v rotation=%v", errBadMultiplier, move, rot)
	}
	stats.MoveMultiplier = float32(move)
	stats.RotationMultiplier = float32(rot)
	return nil
}

func (s *UpgradeSystem) script() (*tengo.Compiled, error) {
	if s.compiled != nil {
		return s.compiled, nil
	}
	if s.load == nil {
		return nil, fmt.Errorf("upgrade: no script source")
	}
	src, err := s.load(s.scriptName)
	if err != nil {
		return nil, fmt.Errorf("upgrade: load %s: %w", s.scriptName, err)
	}

	script := tengo.NewScript(src)
	script.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))
	_ = script.Add("level", 0)
	_ = script.Add("kills", 0)
	_ = script.Add("move_multiplier", 1.0)
	_ = script.Add("rotation_multiplier", 1.0)

	compiled, err := script.Compile()
	if err != nil {
		return nil, fmt.Errorf("upgrade: compile %s: %w", s.scriptName, err)
	}
	s.compiled = compiled
	return compiled, nil
}

func validMultiplier(v float64) bool {
	return v > 0 && !math.IsInf(v, 0) && !math.IsNaN(v)
}

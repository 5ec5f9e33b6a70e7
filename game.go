package main

import (
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/ebitenui/ebitenui"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/milk9111/magedefence/common"
	"github.com/milk9111/magedefence/ecs"
	"github.com/milk9111/magedefence/ecs/component"
	"github.com/milk9111/magedefence/ecs/entity"
	"github.com/milk9111/magedefence/ecs/system"
	"github.com/milk9111/magedefence/input"
	"github.com/milk9111/magedefence/levels"
	"github.com/milk9111/magedefence/logger"
	"github.com/milk9111/magedefence/prefabs"
	"github.com/milk9111/magedefence/reactive"
	"github.com/milk9111/magedefence/targeting"
)

// maxFrameDelta bounds the time fed to the loop after a stall, e.g. a window
// drag.
const maxFrameDelta = 0.25

type GameConfig struct {
	Spec      *prefabs.GameSpec
	Debug     bool
	Watch     bool
	ConfigDir string
	Logger    *slog.Logger
}

type Game struct {
	world  *ecs.World
	sched  *ecs.Scheduler
	loop   *ecs.Loop
	input  *input.PlayerInput
	player *entity.Player
	render *system.RenderSystem

	watcher *prefabs.Watcher
	pauseUI *ebitenui.UI
	subs    reactive.Scope

	width, height float64
	paused        bool
	quit          bool
	debug         bool
	last          time.Time
	log           *slog.Logger
}

func NewGame(cfg GameConfig) (*Game, error) {
	if cfg.Spec == nil {
		return nil, errors.New("game: spec is nil")
	}
	log := cfg.Logger
	if log == nil {
		log = logger.L()
	}
	spec := cfg.Spec

	arena, err := levels.LoadArenaFromFS(spec.Arena)
	if err != nil {
		return nil, fmt.Errorf("game: %w", err)
	}
	playerSpec, err := prefabs.LoadPlayerSpec()
	if err != nil {
		return nil, fmt.Errorf("game: %w", err)
	}
	device, err := input.NewEbitenDevice(spec.Input.Bindings)
	if err != nil {
		return nil, fmt.Errorf("game: %w", err)
	}

	g := &Game{
		world:  ecs.NewWorld(),
		sched:  ecs.NewScheduler(),
		input:  input.NewPlayerInput(device),
		debug:  cfg.Debug,
		width:  float64(spec.Window.Width),
		height: float64(spec.Window.Height),
		log:    log,
	}
	if g.width <= 0 || g.height <= 0 {
		g.width, g.height = common.BaseWidth, common.BaseHeight
	}
	g.loop = ecs.NewLoop(g.sched, float32(spec.Loop.FixedDelta), spec.Loop.MaxFixedSteps)

	pw := ecs.NewPhysicsWorld()
	g.world.SetPhysicsWorld(pw)
	walls := make([]system.Wall, 0, len(arena.Walls()))
	for _, seg := range arena.Walls() {
		wall := system.Wall{From: seg.From.Vec3(), To: seg.To.Vec3(), Thickness: arena.WallThickness}
		pw.AddWall(wall.From, wall.To, wall.Thickness)
		walls = append(walls, wall)
	}

	locators := targeting.NewLocators()
	g.player, err = entity.NewPlayer(g.world, g.sched, playerSpec, entity.PlayerOptions{
		Input:    g.input,
		Locators: locators,
		Logger:   log.With("component", "player"),
	})
	if err != nil {
		return nil, fmt.Errorf("game: %w", err)
	}

	spawnPoints := make([]mgl32.Vec3, 0, len(arena.Spawns.Points))
	for _, p := range arena.Spawns.Points {
		spawnPoints = append(spawnPoints, p.Vec3())
	}
	upgrades := system.NewUpgradeSystem(playerSpec.Upgrades.Script, prefabs.LoadScript, log.With("system", "upgrade"))

	g.sched.Add(ecs.PhaseFixed, system.NewEnemySpawnSystem(spawnPoints, float32(arena.Spawns.Interval), arena.Spawns.MaxEnemies, entity.EnemyFactory(arena.Enemy), log.With("system", "spawn")))
	g.sched.Add(ecs.PhaseFixed, system.NewEnemySeekSystem(locators.Get(targeting.PlayerLocator)))
	g.sched.Add(ecs.PhaseFixed, system.NewPhysicsSystem())
	g.sched.Add(ecs.PhaseFixed, system.NewProjectileSystem(log.With("system", "projectile")))
	g.sched.Add(ecs.PhaseFixed, system.NewTTLSystem())
	g.sched.Add(ecs.PhaseFixed, upgrades)

	if cfg.Watch {
		g.watcher, err = prefabs.NewWatcher(cfg.ConfigDir, filepath.Join(cfg.ConfigDir, "scripts"))
		if err != nil {
			log.Warn("prefab watcher disabled", "dir", cfg.ConfigDir, "error", err)
		} else {
			g.sched.Add(ecs.PhaseFrame, system.NewStatsReloadSystem(g.watcher, upgrades, log.With("system", "reload")))
		}
	}

	g.render = system.NewRenderSystem(
		system.NewCamera(spec.Window.PixelsPerUnit, g.width, g.height),
		walls,
		arena.FloorColor.RGBA8(nil),
		arena.WallColor.RGBA8(nil),
	)
	g.pauseUI = NewPauseUI(g)
	g.subs.Add(g.input.Pause().Subscribe(func(struct{}) { g.setPaused(!g.paused) }))

	log.Info("game ready", "arena", arena.Name, "spells", len(playerSpec.Spells), "fixed_delta", g.loop.FixedDelta())
	return g, nil
}

func (g *Game) Update() error {
	if g.quit {
		return ebiten.Termination
	}
	now := time.Now()
	dt := 0.0
	if !g.last.IsZero() {
		dt = min(now.Sub(g.last).Seconds(), maxFrameDelta)
	}
	g.last = now

	if g.paused {
		// the controller polls input only while the loop runs
		g.input.HandleInput()
		g.pauseUI.Update()
		return nil
	}

	g.loop.Frame(g.world, float32(dt))
	return nil
}

// setPaused freezes the player: the controller drops its tick and spell change
// subscriptions until play resumes.
func (g *Game) setPaused(paused bool) {
	if g.paused == paused {
		return
	}
	g.paused = paused
	if g.player == nil {
		return
	}
	if paused {
		g.player.Controller.Deactivate()
	} else {
		g.player.Controller.Activate()
	}
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.render.Draw(g.world, screen)
	if g.debug {
		system.DrawPhysicsDebug(g.world.PhysicsWorld().Space(), g.render.Camera(), screen)
	}
	ebitenutil.DebugPrint(screen, g.hud())

	if g.paused {
		g.pauseUI.Draw(screen)
	}
}

func (g *Game) hud() string {
	current := g.player.Caster.Current()
	line := fmt.Sprintf("Spell: %s (%.1fs)    FPS: %.0f", current.Name, g.player.Caster.Cooldown(), ebiten.ActualFPS())
	if exp, ok := ecs.Get(g.world, g.player.Entity, component.ExperienceComponent.Kind()); ok {
		line += fmt.Sprintf("\nLevel: %d    Kills: %d", exp.Level, exp.Kills)
	}
	if g.debug {
		enemies := len(g.world.Query(component.EnemyTagComponent.Kind()))
		line += fmt.Sprintf("\nEnemies: %d    Speed: %.2f    Turn: %.2f", enemies, g.player.Stats.MoveSpeed(), g.player.Stats.RotationSpeed())
	}
	return line
}

func (g *Game) LayoutF(outsideWidth, outsideHeight float64) (float64, float64) {
	return g.width, g.height
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	panic("shouldn't use Layout")
}

// Close releases subscriptions, the player and the watcher.
func (g *Game) Close() {
	g.subs.Close()
	g.player.Destroy(g.world)
	if g.watcher != nil {
		_ = g.watcher.Close()
	}
}

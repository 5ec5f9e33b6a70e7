package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/magedefence/logger"
	"github.com/milk9111/magedefence/prefabs"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		logger.L().Error("game exited", "error", err)
		os.Exit(1)
	}
}

// run owns every resource it creates, so they are released before main
// decides the exit code.
func run(args []string) error {
	fs := flag.NewFlagSet("magedefence", flag.ContinueOnError)
	configDir := fs.String("config", "prefabs", "directory checked for prefab overrides before the embedded copies")
	debug := fs.Bool("debug", false, "draw physics shapes and extra HUD lines")
	watch := fs.Bool("watch", false, "reload player stats and upgrade scripts when prefab files change")
	logLevel := fs.String("log-level", "", "override logging.level from game.yaml")
	if err := fs.Parse(args); err != nil {
		return err
	}

	prefabs.SetDir(*configDir)

	spec, err := prefabs.LoadGameSpec()
	if err != nil {
		return err
	}
	level := spec.Logging.Level
	if *logLevel != "" {
		level = *logLevel
	}
	lg := logger.Init(logger.Config{Level: level, Format: spec.Logging.Format})

	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSize(spec.Window.Width, spec.Window.Height)
	ebiten.SetWindowTitle(spec.Window.Title)
	// Update runs once per rendered frame; the loop inside Game does fixed steps.
	ebiten.SetTPS(ebiten.SyncWithFPS)

	game, err := NewGame(GameConfig{
		Spec:      spec,
		Debug:     *debug,
		Watch:     *watch,
		ConfigDir: *configDir,
		Logger:    lg,
	})
	if err != nil {
		return fmt.Errorf("game setup: %w", err)
	}
	defer game.Close()

	if err := ebiten.RunGame(game); err != nil {
		return fmt.Errorf("run game: %w", err)
	}
	return nil
}

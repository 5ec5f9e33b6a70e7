package levels

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/milk9111/magedefence/prefabs"
	"gopkg.in/yaml.v3"
)

//go:embed *.yaml
var LevelsFS embed.FS

var ErrInvalidArena = errors.New("levels: invalid arena")

// Arena is a rectangular floor centred on the origin, bounded by walls, with
// optional interior obstacles and enemy spawn points.
type Arena struct {
	Name          string             `yaml:"name"`
	HalfWidth     float64            `yaml:"half_width"`
	HalfDepth     float64            `yaml:"half_depth"`
	WallThickness float64            `yaml:"wall_thickness"`
	FloorColor    *prefabs.YAMLColor `yaml:"floor_color"`
	WallColor     *prefabs.YAMLColor `yaml:"wall_color"`
	Obstacles     []Segment          `yaml:"obstacles"`
	Spawns        Spawns             `yaml:"spawns"`
	Enemy         prefabs.EnemySpec  `yaml:"enemy"`
}

type Point struct {
	X float64 `yaml:"x"`
	Z float64 `yaml:"z"`
}

func (p Point) Vec3() mgl32.Vec3 {
	return mgl32.Vec3{float32(p.X), 0, float32(p.Z)}
}

type Segment struct {
	From Point `yaml:"from"`
	To   Point `yaml:"to"`
}

type Spawns struct {
	Interval   float64 `yaml:"interval"`
	MaxEnemies int     `yaml:"max_enemies"`
	Points     []Point `yaml:"points"`
}

// Walls returns the arena boundary followed by the obstacles.
func (a *Arena) Walls() []Segment {
	w, d := a.HalfWidth, a.HalfDepth
	bounds := []Segment{
		{From: Point{-w, d}, To: Point{w, d}},
		{From: Point{w, d}, To: Point{w, -d}},
		{From: Point{w, -d}, To: Point{-w, -d}},
		{From: Point{-w, -d}, To: Point{-w, d}},
	}
	return append(bounds, a.Obstacles...)
}

func (a *Arena) validate(name string) error {
	if a.HalfWidth <= 0 || a.HalfDepth <= 0 {
		return fmt.Errorf("%w: %s: half_width and half_depth must be positive", ErrInvalidArena, name)
	}
	if len(a.Spawns.Points) == 0 {
		return fmt.Errorf("%w: %s: no spawn points", ErrInvalidArena, name)
	}
	if a.Spawns.Interval <= 0 {
		return fmt.Errorf("%w: %s: spawns.interval must be positive", ErrInvalidArena, name)
	}
	if a.Enemy.Character.Radius <= 0 {
		return fmt.Errorf("%w: %s: enemy.character.radius must be positive", ErrInvalidArena, name)
	}
	return nil
}

func LoadArenaFromFS(name string) (*Arena, error) {
	data, err := fs.ReadFile(LevelsFS, name)
	if err != nil {
		return nil, fmt.Errorf("read arena: %w", err)
	}
	return ParseArena(name, data)
}

func ParseArena(name string, data []byte) (*Arena, error) {
	var a Arena
	if err := yaml.Unmarshal(data, &a); err != nil {
		return nil, fmt.Errorf("unmarshal arena %s: %w", name, err)
	}
	if a.WallThickness <= 0 {
		a.WallThickness = 0.5
	}
	if err := a.validate(name); err != nil {
		return nil, err
	}
	return &a, nil
}

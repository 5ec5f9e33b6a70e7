package prefabs

import (
	"errors"
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	GameFile   = "game.yaml"
	PlayerFile = "player.yaml"
)

var ErrInvalidSpec = errors.New("prefabs: invalid spec")

func LoadSpec[T any](filename string) (T, error) {
	var zero T
	data, err := Load(filename)
	if err != nil {
		return zero, fmt.Errorf("prefabs: load %s: %w", filename, err)
	}

	var spec T
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return zero, fmt.Errorf("prefabs: unmarshal %s: %w", filename, err)
	}

	return spec, nil
}

type GameSpec struct {
	Window  WindowSpec  `yaml:"window"`
	Loop    LoopSpec    `yaml:"loop"`
	Logging LoggingSpec `yaml:"logging"`
	Input   InputSpec   `yaml:"input"`
	Arena   string      `yaml:"arena"`
}

type WindowSpec struct {
	Title  string `yaml:"title"`
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
	// PixelsPerUnit maps world units on the arena floor to screen pixels.
	PixelsPerUnit float64 `yaml:"pixels_per_unit"`
}

type LoopSpec struct {
	FixedDelta    float64 `yaml:"fixed_delta"`
	MaxFixedSteps int     `yaml:"max_fixed_steps"`
}

type LoggingSpec struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// InputSpec maps action names to key names understood by ebiten.Key.
type InputSpec struct {
	Bindings map[string][]string `yaml:"bindings"`
}

func LoadGameSpec() (*GameSpec, error) {
	spec, err := LoadSpec[GameSpec](GameFile)
	if err != nil {
		return nil, err
	}
	if spec.Loop.FixedDelta <= 0 {
		return nil, fmt.Errorf("%w: %s: loop.fixed_delta must be positive", ErrInvalidSpec, GameFile)
	}
	return &spec, nil
}

type PlayerSpec struct {
	Name          string        `yaml:"name"`
	MoveSpeed     float64       `yaml:"move_speed"`
	RotationSpeed float64       `yaml:"rotation_speed"`
	Transform     TransformSpec `yaml:"transform"`
	Character     CharacterSpec `yaml:"character"`
	Color         *YAMLColor    `yaml:"color"`
	Spells        []SpellSpec   `yaml:"spells"`
	Upgrades      UpgradeSpec   `yaml:"upgrades"`
}

type SpellSpec struct {
	Name     string     `yaml:"name"`
	Cooldown float64    `yaml:"cooldown"`
	Speed    float64    `yaml:"speed"`
	Radius   float64    `yaml:"radius"`
	Damage   int        `yaml:"damage"`
	Lifetime float64    `yaml:"lifetime"`
	Color    *YAMLColor `yaml:"color"`
}

type UpgradeSpec struct {
	Script        string `yaml:"script"`
	KillsPerLevel int    `yaml:"kills_per_level"`
}

func LoadPlayerSpec() (*PlayerSpec, error) {
	spec, err := LoadSpec[PlayerSpec](PlayerFile)
	if err != nil {
		return nil, err
	}
	if err := spec.Validate(); err != nil {
		return nil, err
	}
	return &spec, nil
}

func (s *PlayerSpec) Validate() error {
	if s.MoveSpeed < 0 || s.RotationSpeed < 0 {
		return fmt.Errorf("%w: %s: speeds must not be negative", ErrInvalidSpec, PlayerFile)
	}
	if s.Character.Radius <= 0 {
		return fmt.Errorf("%w: %s: character.radius must be positive", ErrInvalidSpec, PlayerFile)
	}
	if len(s.Spells) == 0 {
		return fmt.Errorf("%w: %s: at least one spell is required", ErrInvalidSpec, PlayerFile)
	}
	for i, sp := range s.Spells {
		if sp.Name == "" {
			return fmt.Errorf("%w: %s: spells[%d] has no name", ErrInvalidSpec, PlayerFile, i)
		}
		if sp.Speed <= 0 || sp.Lifetime <= 0 {
			return fmt.Errorf("%w: %s: spell %s needs positive speed and lifetime", ErrInvalidSpec, PlayerFile, sp.Name)
		}
	}
	return nil
}

// EnemySpec lives inside an arena file.
type EnemySpec struct {
	Name         string        `yaml:"name"`
	Speed        float64       `yaml:"speed"`
	TurnSpeed    float64       `yaml:"turn_speed"`
	StopDistance float64       `yaml:"stop_distance"`
	Health       int           `yaml:"health"`
	Character    CharacterSpec `yaml:"character"`
	Color        *YAMLColor    `yaml:"color"`
}

// TransformSpec is a position on the arena plus a yaw in degrees.
type TransformSpec struct {
	X   float64 `yaml:"x"`
	Y   float64 `yaml:"y"`
	Z   float64 `yaml:"z"`
	Yaw float64 `yaml:"yaw"`
}

type CharacterSpec struct {
	Radius float64 `yaml:"radius"`
	Height float64 `yaml:"height"`
}

type YAMLColor struct {
	color.Color
}

// RGBA8 returns the parsed color or fallback when the color was not set.
func (c *YAMLColor) RGBA8(fallback color.Color) color.Color {
	if c == nil || c.Color == nil {
		return fallback
	}
	return c.Color
}

func (c *YAMLColor) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("color must be a string")
	}

	s := strings.TrimPrefix(value.Value, "#")
	if len(s) != 6 && len(s) != 8 {
		return fmt.Errorf("invalid color format: %s", value.Value)
	}

	var ch [4]uint8
	ch[3] = 255
	for i := 0; i*2 < len(s); i++ {
		v, err := strconv.ParseUint(s[i*2:i*2+2], 16, 8)
		if err != nil {
			return fmt.Errorf("invalid color %s: %w", value.Value, err)
		}
		ch[i] = uint8(v)
	}

	c.Color = color.NRGBA{R: ch[0], G: ch[1], B: ch[2], A: ch[3]}
	return nil
}

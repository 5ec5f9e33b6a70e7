package entity

import (
	"fmt"
	"image/color"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/milk9111/magedefence/common"
	"github.com/milk9111/magedefence/ecs"
	"github.com/milk9111/magedefence/ecs/component"
	"github.com/milk9111/magedefence/ecs/system"
	"github.com/milk9111/magedefence/prefabs"
)

var enemyColor = color.NRGBA{R: 0xe0, G: 0x4f, B: 0x5f, A: 0xff}

// NewEnemy builds one enemy at pos, facing the arena centre.
func NewEnemy(w *ecs.World, spec prefabs.EnemySpec, pos mgl32.Vec3) (ecs.Entity, error) {
	if spec.Health <= 0 {
		return 0, fmt.Errorf("enemy %s: health must be positive", spec.Name)
	}

	e := ecs.CreateEntity(w)
	transform := component.NewTransform(pos)
	transform.Rotation = common.LookRotation(common.Planar(pos.Mul(-1)), common.Up)
	character := component.Character{
		Radius: spec.Character.Radius,
		Height: spec.Character.Height,
		Layer:  component.LayerEnemy,
		Mask:   component.LayerWall | component.LayerPlayer | component.LayerEnemy,
	}

	if err := addAll(w, e,
		func() error { return ecs.Add(w, e, component.TransformComponent.Kind(), transform) },
		func() error { return ecs.Add(w, e, component.EnemyTagComponent.Kind(), &component.EnemyTag{}) },
		func() error {
			return ecs.Add(w, e, component.EnemyComponent.Kind(), &component.Enemy{
				Speed:        float32(spec.Speed),
				TurnSpeed:    float32(spec.TurnSpeed),
				StopDistance: float32(spec.StopDistance),
			})
		},
		func() error {
			return ecs.Add(w, e, component.HealthComponent.Kind(), &component.Health{Current: spec.Health, Max: spec.Health})
		},
		func() error { return ecs.Add(w, e, component.CharacterComponent.Kind(), &character) },
		func() error {
			return ecs.Add(w, e, component.AppearanceComponent.Kind(), &component.Appearance{
				Color:  spec.Color.RGBA8(enemyColor),
				Radius: float32(character.Radius),
				Facing: true,
			})
		},
	); err != nil {
		return 0, fmt.Errorf("enemy %s: %w", spec.Name, err)
	}

	w.PhysicsWorld().AddCharacter(e, transform, character)
	return e, nil
}

// EnemyFactory adapts NewEnemy for the spawn system.
func EnemyFactory(spec prefabs.EnemySpec) system.EnemyFactory {
	return func(w *ecs.World, pos mgl32.Vec3) (ecs.Entity, error) {
		return NewEnemy(w, spec, pos)
	}
}

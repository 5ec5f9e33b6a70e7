package system

import (
	"image/color"
	"sort"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/milk9111/magedefence/ecs"
	"github.com/milk9111/magedefence/ecs/component"
	"golang.org/x/image/colornames"
)

// Wall is a floor segment drawn by the renderer.
type Wall struct {
	From, To  mgl32.Vec3
	Thickness float64
}

// RenderSystem draws the arena top-down: floor, walls, then every entity
// with an Appearance, projectiles last.
type RenderSystem struct {
	camera    Camera
	walls     []Wall
	floor     color.Color
	wallColor color.Color
}

func NewRenderSystem(camera Camera, walls []Wall, floor, wall color.Color) *RenderSystem {
	if floor == nil {
		floor = colornames.Black
	}
	if wall == nil {
		wall = colornames.Slategray
	}
	return &RenderSystem{camera: camera, walls: walls, floor: floor, wallColor: wall}
}

func (r *RenderSystem) Camera() Camera {
	return r.camera
}

func (r *RenderSystem) Draw(w *ecs.World, screen *ebiten.Image) {
	if r == nil || w == nil || screen == nil {
		return
	}
	screen.Fill(r.floor)

	for _, wall := range r.walls {
		x0, y0 := r.camera.Vec(wall.From)
		x1, y1 := r.camera.Vec(wall.To)
		vector.StrokeLine(screen, x0, y0, x1, y1, r.camera.Scale(wall.Thickness*2), r.wallColor, true)
	}

	entities := w.Query(component.TransformComponent.Kind(), component.AppearanceComponent.Kind())
	sort.SliceStable(entities, func(i, j int) bool {
		pi, pj := r.layer(w, entities[i]), r.layer(w, entities[j])
		if pi != pj {
			return pi < pj
		}
		return uint64(entities[i]) < uint64(entities[j])
	})

	for _, e := range entities {
		t, _ := ecs.Get(w, e, component.TransformComponent.Kind())
		a, _ := ecs.Get(w, e, component.AppearanceComponent.Kind())
		r.drawDisc(screen, t, a)
	}
}

func (r *RenderSystem) layer(w *ecs.World, e ecs.Entity) int {
	switch {
	case ecs.Has(w, e, component.ProjectileTagComponent.Kind()):
		return 2
	case ecs.Has(w, e, component.PlayerTagComponent.Kind()):
		return 1
	default:
		return 0
	}
}

func (r *RenderSystem) drawDisc(screen *ebiten.Image, t *component.Transform, a *component.Appearance) {
	clr := a.Color
	if clr == nil {
		clr = colornames.White
	}
	cx, cy := r.camera.Vec(t.Position)
	radius := r.camera.Scale(float64(a.Radius))
	vector.DrawFilledCircle(screen, cx, cy, radius, clr, true)

	if !a.Facing {
		return
	}
	tip := t.Position.Add(t.Forward().Mul(a.Radius * 1.6))
	tx, ty := r.camera.Vec(tip)
	vector.StrokeLine(screen, cx, cy, tx, ty, 2, colornames.White, true)
}

package ecs

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/magedefence/ecs/component"
)

const (
	defaultCharacterRadius     = 0.5
	defaultSkinWidth           = 0.01
	maxSlideIterations         = 3
	maxDepenetrationIterations = 4
	minMoveDistance            = 1e-5
)

// CollisionFlags reports what a move touched.
type CollisionFlags uint8

const (
	CollidedNone  CollisionFlags = 0
	CollidedSides CollisionFlags = 1
)

// CharacterController moves a capsule through the physics space without
// tunneling: every displacement is swept against walls and other characters.
type CharacterController struct {
	space     *cp.Space
	body      *cp.Body
	shape     *cp.Shape
	transform *component.Transform
	radius    float64
	skinWidth float64
	filter    cp.ShapeFilter

	flags CollisionFlags
}

// SimpleMove displaces the capsule by motion on the floor plane. The vertical
// component is ignored. On contact the capsule stops a skin width short of
// the obstacle and slides along it with the remaining motion; a slide that
// runs into a crease stops there. The capsule is then pushed out of anything
// it still overlaps. Flags reports what the move touched.
func (cc *CharacterController) SimpleMove(motion mgl32.Vec3) {
	if cc == nil || cc.transform == nil {
		return
	}

	pos := toPlane(cc.transform.Position)
	remaining := toPlane(motion)
	flags := CollidedNone
	var slide cp.Vector

	for i := 0; i < maxSlideIterations && remaining.Length() > minMoveDistance; i++ {
		target := pos.Add(remaining)
		hit := cc.space.SegmentQueryFirst(pos, target, cc.radius, cc.filter)
		if hit.Shape == nil {
			pos = target
			break
		}
		flags |= CollidedSides

		dir := remaining.Normalize()
		travel := remaining.Length()*hit.Alpha - cc.skinWidth
		if travel > 0 {
			pos = pos.Add(dir.Mult(travel))
		}

		n := hit.Normal
		if i > 0 && n.Dot(slide) < 0 {
			break
		}
		leftover := remaining.Mult(1 - hit.Alpha)
		remaining = leftover.Sub(n.Mult(leftover.Dot(n)))
		if i == 0 {
			slide = remaining
		}
	}

	pos, pushed := cc.depenetrate(pos)
	if pushed {
		flags |= CollidedSides
	}

	cc.transform.Position = fromPlane(pos, cc.transform.Position.Y())
	cc.body.SetPosition(pos)
	cc.flags = flags
}

// depenetrate pushes pos out of the nearest overlapping shapes along their
// surface gradient until it clears them by the skin width.
func (cc *CharacterController) depenetrate(pos cp.Vector) (cp.Vector, bool) {
	pushed := false
	for i := 0; i < maxDepenetrationIterations; i++ {
		info := cc.space.PointQueryNearest(pos, cc.radius, cc.filter)
		if info == nil || info.Shape == nil || info.Distance >= cc.radius {
			break
		}
		g := info.Gradient
		if !(g.Length() > 0.5) {
			break
		}
		pos = pos.Add(g.Mult(cc.radius + cc.skinWidth - info.Distance))
		pushed = true
	}
	return pos, pushed
}

// Flags returns the collision flags of the last SimpleMove.
func (cc *CharacterController) Flags() CollisionFlags {
	if cc == nil {
		return CollidedNone
	}
	return cc.flags
}

func (cc *CharacterController) Radius() float64 {
	if cc == nil {
		return 0
	}
	return cc.radius
}

func (cc *CharacterController) Transform() *component.Transform {
	if cc == nil {
		return nil
	}
	return cc.transform
}

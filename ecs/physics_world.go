package ecs

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/magedefence/ecs/component"
)

// PhysicsWorld owns the Chipmunk space. The 3D arena maps onto the space as
// its XZ plane: world X is space X, world Z is space Y.
type PhysicsWorld struct {
	space *cp.Space

	characters    map[Entity]*CharacterController
	shapeToEntity map[*cp.Shape]Entity
	walls         []*cp.Shape
	nextGroup     uint
}

// SweepHit describes the first shape touched by a swept query. Entity is zero
// for walls.
type SweepHit struct {
	Entity Entity
	Point  mgl32.Vec3
	Normal mgl32.Vec3
	Alpha  float64
}

// NewPhysicsWorld creates an empty space with no gravity.
func NewPhysicsWorld() *PhysicsWorld {
	space := cp.NewSpace()
	space.Iterations = 10
	return &PhysicsWorld{
		space:         space,
		characters:    make(map[Entity]*CharacterController),
		shapeToEntity: make(map[*cp.Shape]Entity),
	}
}

// Space returns the underlying Chipmunk space.
func (pw *PhysicsWorld) Space() *cp.Space {
	if pw == nil {
		return nil
	}
	return pw.space
}

// AddWall adds a static wall segment between two floor points.
func (pw *PhysicsWorld) AddWall(from, to mgl32.Vec3, thickness float64) {
	if pw == nil || pw.space == nil {
		return
	}
	shape := cp.NewSegment(pw.space.StaticBody, toPlane(from), toPlane(to), thickness)
	shape.SetFilter(cp.ShapeFilter{Group: cp.NO_GROUP, Categories: uint(component.LayerWall), Mask: cp.ALL_CATEGORIES})
	shape.SetFriction(0)
	pw.space.AddShape(shape)
	pw.walls = append(pw.walls, shape)
}

// Walls returns the number of wall segments.
func (pw *PhysicsWorld) Walls() int {
	if pw == nil {
		return 0
	}
	return len(pw.walls)
}

// AddCharacter creates a kinematic capsule for e that moves t. Adding a
// character twice replaces the previous one.
func (pw *PhysicsWorld) AddCharacter(e Entity, t *component.Transform, c component.Character) *CharacterController {
	if pw == nil || pw.space == nil || t == nil {
		return nil
	}
	pw.RemoveCharacter(e)

	if c.Radius <= 0 {
		c.Radius = defaultCharacterRadius
	}
	if c.Mask == 0 {
		c.Mask = component.LayerWall
	}
	pw.nextGroup++

	body := cp.NewKinematicBody()
	body.SetPosition(toPlane(t.Position))
	shape := cp.NewCircle(body, c.Radius, cp.Vector{})
	filter := cp.ShapeFilter{Group: pw.nextGroup, Categories: uint(c.Layer), Mask: cp.ALL_CATEGORIES}
	shape.SetFilter(filter)
	pw.space.AddBody(body)
	pw.space.AddShape(shape)

	cc := &CharacterController{
		space:     pw.space,
		body:      body,
		shape:     shape,
		transform: t,
		radius:    c.Radius,
		skinWidth: defaultSkinWidth,
		filter:    cp.ShapeFilter{Group: pw.nextGroup, Categories: uint(c.Layer), Mask: uint(c.Mask)},
	}
	pw.characters[e] = cc
	pw.shapeToEntity[shape] = e
	return cc
}

// RemoveCharacter removes e's capsule from the space, if any.
func (pw *PhysicsWorld) RemoveCharacter(e Entity) {
	if pw == nil {
		return
	}
	cc, ok := pw.characters[e]
	if !ok {
		return
	}
	delete(pw.characters, e)
	delete(pw.shapeToEntity, cc.shape)
	pw.space.RemoveShape(cc.shape)
	pw.space.RemoveBody(cc.body)
}

// Character returns e's controller.
func (pw *PhysicsWorld) Character(e Entity) (*CharacterController, bool) {
	if pw == nil {
		return nil, false
	}
	cc, ok := pw.characters[e]
	return cc, ok
}

// Step advances the space so moved characters are reindexed at their new
// positions. Characters are kinematic and carry no velocity, so stepping does
// not move them.
func (pw *PhysicsWorld) Step(dt float64) {
	if pw == nil || pw.space == nil || dt <= 0 {
		return
	}
	pw.space.Step(dt)
}

// Sweep casts a circle of radius from one point to another and reports the
// first wall or character in mask it touches.
func (pw *PhysicsWorld) Sweep(from, to mgl32.Vec3, radius float64, mask component.CollisionLayer) (SweepHit, bool) {
	if pw == nil || pw.space == nil {
		return SweepHit{}, false
	}
	start, end := toPlane(from), toPlane(to)
	if start == end {
		return SweepHit{}, false
	}
	filter := cp.ShapeFilter{Group: cp.NO_GROUP, Categories: cp.ALL_CATEGORIES, Mask: uint(mask)}
	info := pw.space.SegmentQueryFirst(start, end, radius, filter)
	if info.Shape == nil {
		return SweepHit{}, false
	}
	return SweepHit{
		Entity: pw.shapeToEntity[info.Shape],
		Point:  fromPlane(info.Point, from.Y()),
		Normal: fromPlane(info.Normal, 0),
		Alpha:  info.Alpha,
	}, true
}

func toPlane(v mgl32.Vec3) cp.Vector {
	return cp.Vector{X: float64(v.X()), Y: float64(v.Z())}
}

func fromPlane(v cp.Vector, y float32) mgl32.Vec3 {
	return mgl32.Vec3{float32(v.X), y, float32(v.Y)}
}

package component

import "github.com/go-gl/mathgl/mgl32"

// Transform is an entity's position and orientation. Pointers to a Transform
// are used as identity handles, e.g. by the target registry.
type Transform struct {
	Position mgl32.Vec3
	Rotation mgl32.Quat
}

func NewTransform(pos mgl32.Vec3) *Transform {
	return &Transform{Position: pos, Rotation: mgl32.QuatIdent()}
}

// Forward is the entity's local +Z axis in world space.
func (t *Transform) Forward() mgl32.Vec3 {
	if t == nil {
		return mgl32.Vec3{0, 0, 1}
	}
	return t.Rotation.Rotate(mgl32.Vec3{0, 0, 1})
}

var TransformComponent = NewComponent[Transform]()

package component

import "github.com/go-gl/mathgl/mgl32"

type Projectile struct {
	Spell     string
	CastID    string
	Direction mgl32.Vec3
	Speed     float32
	Radius    float32
	Damage    int
}

var ProjectileComponent = NewComponent[Projectile]()

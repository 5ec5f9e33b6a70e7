package component

// CollisionLayer is a bitmask category used by the physics world.
type CollisionLayer uint

const (
	LayerWall CollisionLayer = 1 << iota
	LayerPlayer
	LayerEnemy
)

// Character describes the capsule an entity moves with. The physics world
// keeps the runtime controller; this component is its configuration.
type Character struct {
	Radius float64
	Height float64
	Layer  CollisionLayer
	// Mask is what the capsule is blocked by.
	Mask CollisionLayer
}

var CharacterComponent = NewComponent[Character]()

package component

import "image/color"

// Appearance is how the debug renderer draws an entity: a filled disc of
// Radius world units with a facing tick.
type Appearance struct {
	Color  color.Color
	Radius float32
	Facing bool
}

var AppearanceComponent = NewComponent[Appearance]()

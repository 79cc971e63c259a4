package scene

import (
	"github.com/df07/go-light-simulator/pkg/core"
	"github.com/df07/go-light-simulator/pkg/geometry"
)

// LightInteraction describes what an object does with light: it either emits
// it or collides with it. The two variants are Emitter and Collider.
type LightInteraction interface {
	lightInteraction()
}

// Emitter marks an object as a light source of the given color
type Emitter struct {
	Color core.Color
}

func (Emitter) lightInteraction() {}

// Collider marks an object as reflecting/refracting light per its material
type Collider struct {
	Material Material
}

func (Collider) lightInteraction() {}

// Object is one entry in a scene: a shape plus its light behavior
type Object struct {
	ID          uint64
	Shape       geometry.Shape
	Interaction LightInteraction
}

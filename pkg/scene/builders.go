package scene

import (
	"github.com/df07/go-light-simulator/pkg/core"
	"github.com/df07/go-light-simulator/pkg/geometry"
)

// NewDefaultScene creates a demo scene: a warm emitter between a mirrored
// wall, a diffuse block, and a glass circle, all enclosed in a dim box.
func NewDefaultScene() *Scene {
	s := NewScene()

	mustAdd(s, Object{
		ID:          1,
		Shape:       mustShape(geometry.NewCircle(core.NewVec2(-20, 0), 4)),
		Interaction: Emitter{Color: core.NewColor(255, 200, 120)},
	})
	mustAdd(s, Object{
		ID:          2,
		Shape:       mustShape(geometry.NewBox(core.NewVec2(20, -30), core.NewVec2(24, 30))),
		Interaction: Collider{Material: NewMirror(core.NewColor(230, 230, 230))},
	})
	mustAdd(s, Object{
		ID:    3,
		Shape: mustShape(geometry.NewBox(core.NewVec2(-10, -25), core.NewVec2(10, -18))),
		Interaction: Collider{Material: Material{
			Reflects:          core.NewColor(180, 60, 60),
			Diffusion:         0.8,
			Opacity:           1,
			IndexOfRefraction: 1,
		}},
	})
	mustAdd(s, Object{
		ID:          4,
		Shape:       mustShape(geometry.NewCircle(core.NewVec2(0, 18), 8)),
		Interaction: Collider{Material: NewGlass(1.5)},
	})
	mustAdd(s, Object{
		ID:    5,
		Shape: mustShape(geometry.NewBox(core.NewVec2(-45, -45), core.NewVec2(45, 45))),
		Interaction: Collider{Material: Material{
			Reflects:          core.NewColor(60, 60, 70),
			Diffusion:         1,
			Opacity:           1,
			IndexOfRefraction: 1,
		}},
	})

	return s
}

// NewPrismScene creates a demo scene: a white emitter shining through a
// glass triangle onto mirrored walls.
func NewPrismScene() *Scene {
	s := NewScene()

	mustAdd(s, Object{
		ID:          1,
		Shape:       mustShape(geometry.NewCircle(core.NewVec2(-30, 0), 3)),
		Interaction: Emitter{Color: core.NewColor(255, 255, 255)},
	})
	mustAdd(s, Object{
		ID: 2,
		Shape: mustShape(geometry.NewClosedPolygon([]core.Vec2{
			{X: -5, Y: -12}, {X: 15, Y: -12}, {X: 5, Y: 14},
		})),
		Interaction: Collider{Material: NewGlass(1.5)},
	})
	mustAdd(s, Object{
		ID:          3,
		Shape:       mustShape(geometry.NewBox(core.NewVec2(-45, -45), core.NewVec2(45, 45))),
		Interaction: Collider{Material: NewMirror(core.NewColor(140, 140, 160))},
	})

	return s
}

func mustShape(shape geometry.Shape, err error) geometry.Shape {
	if err != nil {
		panic(err)
	}
	return shape
}

func mustAdd(s *Scene, obj Object) {
	if err := s.Add(obj); err != nil {
		panic(err)
	}
}

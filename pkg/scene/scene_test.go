package scene

import (
	"testing"

	"github.com/df07/go-light-simulator/pkg/core"
	"github.com/df07/go-light-simulator/pkg/geometry"
)

func mustCircle(t *testing.T, x, y, r float64) *geometry.Circle {
	t.Helper()
	circle, err := geometry.NewCircle(core.NewVec2(x, y), r)
	if err != nil {
		t.Fatalf("Failed to create circle: %v", err)
	}
	return circle
}

func TestSceneAdd(t *testing.T) {
	s := NewScene()

	err := s.Add(Object{
		ID:          1,
		Shape:       mustCircle(t, 0, 0, 1),
		Interaction: Emitter{Color: core.NewColor(255, 0, 0)},
	})
	if err != nil {
		t.Fatalf("Expected valid emitter to be added, got error: %v", err)
	}
	if s.Len() != 1 {
		t.Errorf("Expected 1 object, got %d", s.Len())
	}

	if _, ok := s.Object(1); !ok {
		t.Error("Expected object 1 to be present")
	}
	if _, ok := s.Object(2); ok {
		t.Error("Expected object 2 to be absent")
	}
}

func TestSceneAddRejectsDuplicateID(t *testing.T) {
	s := NewScene()
	obj := Object{
		ID:          7,
		Shape:       mustCircle(t, 0, 0, 1),
		Interaction: Emitter{Color: core.NewColor(255, 255, 255)},
	}

	if err := s.Add(obj); err != nil {
		t.Fatalf("First add failed: %v", err)
	}
	if err := s.Add(obj); err == nil {
		t.Error("Expected duplicate id to be rejected")
	}
}

func TestSceneAddRejectsInvalidObjects(t *testing.T) {
	tests := []struct {
		name string
		obj  Object
	}{
		{"nil shape", Object{ID: 1, Interaction: Emitter{}}},
		{"nil interaction", Object{ID: 1, Shape: &geometry.Circle{Center: core.Vec2{}, Radius: 1}}},
		{"opacity out of range", Object{
			ID:    1,
			Shape: &geometry.Circle{Center: core.Vec2{}, Radius: 1},
			Interaction: Collider{Material: Material{
				Reflects:          core.NewColor(255, 255, 255),
				Opacity:           1.5,
				IndexOfRefraction: 1,
			}},
		}},
		{"diffusion out of range", Object{
			ID:    1,
			Shape: &geometry.Circle{Center: core.Vec2{}, Radius: 1},
			Interaction: Collider{Material: Material{
				Reflects:          core.NewColor(255, 255, 255),
				Diffusion:         -0.1,
				Opacity:           1,
				IndexOfRefraction: 1,
			}},
		}},
		{"refraction below vacuum", Object{
			ID:    1,
			Shape: &geometry.Circle{Center: core.Vec2{}, Radius: 1},
			Interaction: Collider{Material: Material{
				Reflects:          core.NewColor(255, 255, 255),
				Opacity:           1,
				IndexOfRefraction: 0.5,
			}},
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewScene()
			if err := s.Add(tt.obj); err == nil {
				t.Errorf("Expected %s to be rejected", tt.name)
			}
		})
	}
}

func TestSceneEmittersAndColliders(t *testing.T) {
	s := NewScene()

	// Insert out of id order to exercise the sorted accessors
	objects := []Object{
		{ID: 3, Shape: mustCircle(t, 0, 0, 1), Interaction: Emitter{Color: core.NewColor(255, 0, 0)}},
		{ID: 1, Shape: mustCircle(t, 5, 0, 1), Interaction: Collider{Material: NewMirror(core.NewColor(200, 200, 200))}},
		{ID: 2, Shape: mustCircle(t, 9, 0, 1), Interaction: Emitter{Color: core.NewColor(0, 255, 0)}},
	}
	for _, obj := range objects {
		if err := s.Add(obj); err != nil {
			t.Fatalf("Add failed: %v", err)
		}
	}

	emitters := s.Emitters()
	if len(emitters) != 2 {
		t.Fatalf("Expected 2 emitters, got %d", len(emitters))
	}
	if emitters[0].ID != 2 || emitters[1].ID != 3 {
		t.Errorf("Expected emitters sorted by id (2,3), got (%d,%d)", emitters[0].ID, emitters[1].ID)
	}

	colliders := s.Colliders()
	if len(colliders) != 1 || colliders[0].ID != 1 {
		t.Errorf("Expected single collider with id 1, got %v", colliders)
	}
}

func TestMaterialConstructors(t *testing.T) {
	if err := NewMirror(core.NewColor(255, 255, 255)).Validate(); err != nil {
		t.Errorf("Expected mirror material to validate, got %v", err)
	}
	glass := NewGlass(1.5)
	if err := glass.Validate(); err != nil {
		t.Errorf("Expected glass material to validate, got %v", err)
	}
	if glass.Opacity != 0 {
		t.Errorf("Expected glass to be fully transparent, got opacity %v", glass.Opacity)
	}
}

package scene

import (
	"fmt"
	"sort"
)

// Scene is a snapshot mapping of object id to object. A scene is mutable
// while it is being authored; once handed to the simulator it is a frozen
// snapshot shared read-only across tracer threads, so callers must not
// modify it after that point.
type Scene struct {
	objects map[uint64]Object
}

// NewScene creates an empty scene
func NewScene() *Scene {
	return &Scene{objects: make(map[uint64]Object)}
}

// Add validates an object and inserts it into the scene. Invalid shapes and
// materials are rejected here so they never reach the tracing core.
func (s *Scene) Add(obj Object) error {
	if obj.Shape == nil {
		return fmt.Errorf("object %d has no shape", obj.ID)
	}
	if _, exists := s.objects[obj.ID]; exists {
		return fmt.Errorf("duplicate object id %d", obj.ID)
	}

	switch interaction := obj.Interaction.(type) {
	case Emitter:
		// Any color is a valid emission
	case Collider:
		if err := interaction.Material.Validate(); err != nil {
			return fmt.Errorf("object %d: %w", obj.ID, err)
		}
	default:
		return fmt.Errorf("object %d has no light interaction", obj.ID)
	}

	s.objects[obj.ID] = obj
	return nil
}

// Object looks up an object by id
func (s *Scene) Object(id uint64) (Object, bool) {
	obj, ok := s.objects[id]
	return obj, ok
}

// Len returns the number of objects in the scene
func (s *Scene) Len() int {
	return len(s.objects)
}

// Objects returns every object in the scene. Iteration order is unspecified.
func (s *Scene) Objects() []Object {
	objects := make([]Object, 0, len(s.objects))
	for _, obj := range s.objects {
		objects = append(objects, obj)
	}
	return objects
}

// Emitters returns the objects that emit light, sorted by id so that callers
// drawing rays from them behave deterministically for a seeded sampler.
func (s *Scene) Emitters() []Object {
	emitters := make([]Object, 0)
	for _, obj := range s.objects {
		if _, ok := obj.Interaction.(Emitter); ok {
			emitters = append(emitters, obj)
		}
	}
	sortByID(emitters)
	return emitters
}

// Colliders returns the objects that light can bounce off or pass through,
// sorted by id.
func (s *Scene) Colliders() []Object {
	colliders := make([]Object, 0)
	for _, obj := range s.objects {
		if _, ok := obj.Interaction.(Collider); ok {
			colliders = append(colliders, obj)
		}
	}
	sortByID(colliders)
	return colliders
}

func sortByID(objects []Object) {
	sort.Slice(objects, func(i, j int) bool { return objects[i].ID < objects[j].ID })
}

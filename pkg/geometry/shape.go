package geometry

import (
	"github.com/df07/go-light-simulator/pkg/core"
)

// Epsilon below which an intersection distance is treated as the ray
// re-hitting the surface it just left.
const Epsilon = 1e-9

// Hit contains information about a ray-shape intersection
type Hit struct {
	Point     core.Vec2 // Point of intersection
	Normal    core.Vec2 // Unit surface normal at the intersection
	T         float64   // Parameter t along the ray
	FrontFace bool      // Whether the ray hit the shape from outside
}

// SetFaceNormal orients the normal against the ray and records which side was hit
func (h *Hit) SetFaceNormal(ray core.Ray, outwardNormal core.Vec2) {
	h.FrontFace = ray.Direction.Dot(outwardNormal) < 0
	if h.FrontFace {
		h.Normal = outwardNormal
	} else {
		h.Normal = outwardNormal.Multiply(-1)
	}
}

// Shape is a 2D geometric form that rays can intersect
type Shape interface {
	// Intersect returns the nearest intersection with t in (tMin, tMax),
	// or false if the ray misses the shape.
	Intersect(ray core.Ray, tMin, tMax float64) (Hit, bool)

	// SampleBoundary maps a uniform sample in [0,1)² to a point on the
	// shape's boundary and the outward unit normal there. Used to start
	// light paths on emitters.
	SampleBoundary(sample core.Vec2) (point, normal core.Vec2)
}

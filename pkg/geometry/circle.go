package geometry

import (
	"fmt"
	"math"

	"github.com/df07/go-light-simulator/pkg/core"
)

// Circle represents a circular shape
type Circle struct {
	Center core.Vec2
	Radius float64
}

// NewCircle creates a new circle
func NewCircle(center core.Vec2, radius float64) (*Circle, error) {
	if radius <= 0 {
		return nil, fmt.Errorf("circle radius must be positive, got %g", radius)
	}
	return &Circle{Center: center, Radius: radius}, nil
}

// Intersect tests if a ray intersects with the circle
func (c *Circle) Intersect(ray core.Ray, tMin, tMax float64) (Hit, bool) {
	// Vector from ray origin to circle center
	oc := ray.Origin.Subtract(c.Center)

	// Quadratic equation coefficients: at² + bt + c = 0
	a := ray.Direction.Dot(ray.Direction)
	if a == 0 {
		return Hit{}, false
	}
	halfB := oc.Dot(ray.Direction)
	cc := oc.Dot(oc) - c.Radius*c.Radius

	discriminant := halfB*halfB - a*cc
	if discriminant < 0 {
		return Hit{}, false
	}

	// Find the nearest intersection point within the valid range
	sqrtD := math.Sqrt(discriminant)
	root := (-halfB - sqrtD) / a
	if root < tMin || root > tMax {
		root = (-halfB + sqrtD) / a
		if root < tMin || root > tMax {
			return Hit{}, false
		}
	}

	hit := Hit{
		T:     root,
		Point: ray.At(root),
	}

	// Outward normal points from the center through the hit point
	outwardNormal := hit.Point.Subtract(c.Center).Multiply(1.0 / c.Radius)
	hit.SetFaceNormal(ray, outwardNormal)

	return hit, true
}

// SampleBoundary returns a uniform point on the circumference and its
// outward normal
func (c *Circle) SampleBoundary(sample core.Vec2) (core.Vec2, core.Vec2) {
	normal := core.UnitFromAngle(2 * math.Pi * sample.X)
	return c.Center.Add(normal.Multiply(c.Radius)), normal
}

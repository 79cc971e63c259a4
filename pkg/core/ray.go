package core

// Ray represents a 2D ray with origin and direction
type Ray struct {
	Origin    Vec2
	Direction Vec2
}

// NewRay creates a new ray with a normalized direction
func NewRay(origin, direction Vec2) Ray {
	return Ray{Origin: origin, Direction: direction.Normalize()}
}

// At returns the point at parameter t along the ray
func (r Ray) At(t float64) Vec2 {
	return r.Origin.Add(r.Direction.Multiply(t))
}

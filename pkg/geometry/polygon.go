package geometry

import (
	"fmt"
	"math"

	"github.com/df07/go-light-simulator/pkg/core"
)

// ClosedPolygon represents a closed polygonal shape defined by its vertices
// in order. The last vertex connects back to the first.
type ClosedPolygon struct {
	Vertices []core.Vec2
}

// NewClosedPolygon creates a new closed polygon
func NewClosedPolygon(vertices []core.Vec2) (*ClosedPolygon, error) {
	if len(vertices) < 3 {
		return nil, fmt.Errorf("polygon needs at least 3 vertices, got %d", len(vertices))
	}
	verts := make([]core.Vec2, len(vertices))
	copy(verts, vertices)
	return &ClosedPolygon{Vertices: verts}, nil
}

// NewBox creates an axis-aligned rectangular polygon from two opposite corners
func NewBox(min, max core.Vec2) (*ClosedPolygon, error) {
	if min.X >= max.X || min.Y >= max.Y {
		return nil, fmt.Errorf("box corners must satisfy min < max, got %v and %v", min, max)
	}
	return NewClosedPolygon([]core.Vec2{
		{X: min.X, Y: min.Y},
		{X: max.X, Y: min.Y},
		{X: max.X, Y: max.Y},
		{X: min.X, Y: max.Y},
	})
}

// Intersect tests the ray against every edge of the polygon and returns the
// nearest edge intersection.
func (p *ClosedPolygon) Intersect(ray core.Ray, tMin, tMax float64) (Hit, bool) {
	closest := tMax
	var best Hit
	found := false

	for i := range p.Vertices {
		v0 := p.Vertices[i]
		v1 := p.Vertices[(i+1)%len(p.Vertices)]

		hit, ok := intersectEdge(ray, v0, v1, tMin, closest)
		if ok {
			closest = hit.T
			best = hit
			found = true
		}
	}

	return best, found
}

// SampleBoundary returns a point on one of the polygon's edges and that
// edge's unit normal. The edge is chosen by sample.X and the position along
// it by sample.Y.
func (p *ClosedPolygon) SampleBoundary(sample core.Vec2) (core.Vec2, core.Vec2) {
	idx := int(sample.X * float64(len(p.Vertices)))
	if idx >= len(p.Vertices) {
		idx = len(p.Vertices) - 1
	}
	v0 := p.Vertices[idx]
	v1 := p.Vertices[(idx+1)%len(p.Vertices)]

	edge := v1.Subtract(v0)
	point := v0.Add(edge.Multiply(sample.Y))

	// The perpendicular's side depends on the winding; orient it away from
	// the interior so emitters radiate outward.
	normal := edge.Perpendicular().Normalize()
	mid := v0.Add(v1).Multiply(0.5)
	if normal.Dot(mid.Subtract(p.centroid())) < 0 {
		normal = normal.Multiply(-1)
	}
	return point, normal
}

// centroid returns the vertex average, which sits inside any convex polygon
func (p *ClosedPolygon) centroid() core.Vec2 {
	var sum core.Vec2
	for _, v := range p.Vertices {
		sum = sum.Add(v)
	}
	return sum.Multiply(1 / float64(len(p.Vertices)))
}

// intersectEdge solves ray.Origin + t*ray.Direction = v0 + u*(v1-v0) for
// t in (tMin, tMax) and u in [0, 1].
func intersectEdge(ray core.Ray, v0, v1 core.Vec2, tMin, tMax float64) (Hit, bool) {
	edge := v1.Subtract(v0)
	denom := ray.Direction.Cross(edge)

	// Parallel rays never hit the edge
	if math.Abs(denom) < Epsilon {
		return Hit{}, false
	}

	toStart := v0.Subtract(ray.Origin)
	t := toStart.Cross(edge) / denom
	if t < tMin || t > tMax {
		return Hit{}, false
	}

	u := toStart.Cross(ray.Direction) / denom
	if u < 0 || u > 1 {
		return Hit{}, false
	}

	hit := Hit{
		T:     t,
		Point: ray.At(t),
	}
	hit.SetFaceNormal(ray, edge.Perpendicular().Normalize())

	return hit, true
}

package geometry

import (
	"math"
	"testing"

	"github.com/df07/go-light-simulator/pkg/core"
)

func TestNewClosedPolygonValidation(t *testing.T) {
	if _, err := NewClosedPolygon([]core.Vec2{{X: 0, Y: 0}, {X: 1, Y: 0}}); err == nil {
		t.Error("Expected error for polygon with fewer than 3 vertices")
	}
	if _, err := NewClosedPolygon([]core.Vec2{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 0, Y: 1}}); err != nil {
		t.Errorf("Expected valid triangle, got error: %v", err)
	}
}

func TestNewBoxValidation(t *testing.T) {
	if _, err := NewBox(core.NewVec2(1, 1), core.NewVec2(0, 0)); err == nil {
		t.Error("Expected error for inverted box corners")
	}
	box, err := NewBox(core.NewVec2(0, 0), core.NewVec2(2, 3))
	if err != nil {
		t.Fatalf("Expected valid box, got error: %v", err)
	}
	if len(box.Vertices) != 4 {
		t.Errorf("Expected 4 vertices, got %d", len(box.Vertices))
	}
}

func TestPolygonIntersectNearestEdge(t *testing.T) {
	// A unit box straddling the X axis, hit from the left
	box, _ := NewBox(core.NewVec2(5, -1), core.NewVec2(7, 1))
	ray := core.NewRay(core.NewVec2(0, 0), core.NewVec2(1, 0))

	hit, ok := box.Intersect(ray, 0.001, math.Inf(1))
	if !ok {
		t.Fatal("Expected ray to hit box")
	}
	if math.Abs(hit.T-5) > 1e-9 {
		t.Errorf("Expected nearest edge at t=5, got t=%v", hit.T)
	}
	// Normal should oppose the ray direction
	if hit.Normal.Dot(ray.Direction) >= 0 {
		t.Errorf("Expected normal opposing ray direction, got %v", hit.Normal)
	}
}

func TestPolygonIntersectMiss(t *testing.T) {
	box, _ := NewBox(core.NewVec2(5, 5), core.NewVec2(7, 7))
	ray := core.NewRay(core.NewVec2(0, 0), core.NewVec2(1, 0))

	if _, ok := box.Intersect(ray, 0.001, math.Inf(1)); ok {
		t.Error("Expected ray to miss box")
	}
}

func TestPolygonIntersectParallelEdge(t *testing.T) {
	// Ray running parallel to and offset from a triangle's bottom edge
	tri, _ := NewClosedPolygon([]core.Vec2{{X: 2, Y: 1}, {X: 4, Y: 1}, {X: 3, Y: 3}})
	ray := core.NewRay(core.NewVec2(0, 0), core.NewVec2(1, 0))

	if _, ok := tri.Intersect(ray, 0.001, math.Inf(1)); ok {
		t.Error("Expected no hit for parallel offset ray")
	}
}

func TestPolygonIntersectVertexRange(t *testing.T) {
	// Ray aimed past the end of an edge should miss (u outside [0,1])
	tri, _ := NewClosedPolygon([]core.Vec2{{X: 5, Y: 1}, {X: 5, Y: 2}, {X: 6, Y: 1.5}})
	ray := core.NewRay(core.NewVec2(0, 0), core.NewVec2(1, 0))

	if _, ok := tri.Intersect(ray, 0.001, math.Inf(1)); ok {
		t.Error("Expected ray below the triangle to miss")
	}
}

func TestPolygonSampleBoundaryOutwardNormal(t *testing.T) {
	box, _ := NewBox(core.NewVec2(-1, -1), core.NewVec2(1, 1))

	// One sample per edge, each at the edge midpoint
	for i := 0; i < 4; i++ {
		sampleX := (float64(i) + 0.5) / 4
		point, normal := box.SampleBoundary(core.NewVec2(sampleX, 0.5))

		if math.Abs(normal.Length()-1) > 1e-9 {
			t.Errorf("Edge %d: expected unit normal, got %v", i, normal)
		}
		// An outward normal points away from the box center
		if normal.Dot(point) <= 0 {
			t.Errorf("Edge %d: normal %v at point %v points inward", i, normal, point)
		}
	}
}

func TestPolygonSampleBoundaryClockwiseWinding(t *testing.T) {
	// Same box as NewBox emits, wound the other way
	box, _ := NewClosedPolygon([]core.Vec2{
		{X: -1, Y: -1},
		{X: -1, Y: 1},
		{X: 1, Y: 1},
		{X: 1, Y: -1},
	})

	for i := 0; i < 4; i++ {
		sampleX := (float64(i) + 0.5) / 4
		point, normal := box.SampleBoundary(core.NewVec2(sampleX, 0.5))
		if normal.Dot(point) <= 0 {
			t.Errorf("Edge %d: normal %v at point %v points inward", i, normal, point)
		}
	}
}

func TestPolygonSampleBoundaryPointOnEdge(t *testing.T) {
	tri, _ := NewClosedPolygon([]core.Vec2{{X: 0, Y: 0}, {X: 4, Y: 0}, {X: 2, Y: 3}})

	// sample.X in the first third selects the bottom edge, sample.Y the
	// position along it
	point, normal := tri.SampleBoundary(core.NewVec2(0.1, 0.25))
	if math.Abs(point.X-1) > 1e-9 || math.Abs(point.Y) > 1e-9 {
		t.Errorf("Expected point (1, 0) on bottom edge, got %v", point)
	}
	if math.Abs(normal.X) > 1e-9 || normal.Y >= 0 {
		t.Errorf("Expected downward normal for bottom edge, got %v", normal)
	}
}

func TestNewClosedPolygonCopiesVertices(t *testing.T) {
	verts := []core.Vec2{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 0, Y: 1}}
	poly, _ := NewClosedPolygon(verts)

	verts[0] = core.NewVec2(99, 99)
	if poly.Vertices[0].X == 99 {
		t.Error("Expected polygon to own a copy of its vertices")
	}
}

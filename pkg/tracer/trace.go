package tracer

import (
	"math"

	"github.com/df07/go-light-simulator/pkg/core"
	"github.com/df07/go-light-simulator/pkg/geometry"
	"github.com/df07/go-light-simulator/pkg/scene"
)

const (
	// Rays that escape every collider are drawn out to this distance
	maxRayDistance = 1e4

	// Bounce cap per light path; most paths die earlier by absorption
	maxBounces = 8

	// Offset hits slightly along the ray so a bounced ray cannot re-hit
	// the surface it just left.
	hitEpsilon = 1e-6
)

// Trace produces at most segmentsToProduce light segments from a scene
// snapshot. Rays start on the boundaries of emitters and bounce through the
// colliders per their materials: attenuated by Reflects, stopped (reflected
// with diffusion jitter) with probability Opacity, otherwise refracted
// through per Snell's law. Pure with respect to the scene; deterministic
// for a seeded sampler.
func Trace(s *scene.Scene, segmentsToProduce int, sampler core.Sampler) []core.LightSegment {
	if s == nil || segmentsToProduce <= 0 {
		return nil
	}
	emitters := s.Emitters()
	if len(emitters) == 0 {
		return nil
	}
	colliders := s.Colliders()

	segments := make([]core.LightSegment, 0, segmentsToProduce)
	misfires := 0
	for len(segments) < segmentsToProduce {
		before := len(segments)
		ray, color := emitRay(pickEmitter(emitters, sampler), sampler)
		segments = tracePath(ray, color, colliders, segments, segmentsToProduce, sampler)

		// A degenerate path (every segment skipped) counts as a misfire so
		// a malformed scene cannot spin this loop forever.
		if len(segments) == before {
			misfires++
			if misfires > 64 {
				break
			}
		} else {
			misfires = 0
		}
	}
	return segments
}

// tracePath follows one light path, appending one segment per bounce until
// the path is absorbed, escapes, or the budget runs out.
func tracePath(ray core.Ray, color core.Color, colliders []scene.Object, segments []core.LightSegment, budget int, sampler core.Sampler) []core.LightSegment {
	for bounce := 0; bounce < maxBounces && len(segments) < budget; bounce++ {
		hit, obj, ok := nearestHit(colliders, ray)
		if !ok {
			segments = append(segments, core.NewLightSegment(ray.Origin, ray.At(maxRayDistance), color))
			return segments
		}

		segment := core.NewLightSegment(ray.Origin, hit.Point, color)
		if segment.Length() > hitEpsilon {
			segments = append(segments, segment)
		}

		material := obj.Interaction.(scene.Collider).Material
		color = color.Attenuate(material.Reflects)
		if color.IsBlack() {
			return segments
		}

		if sampler.Get1D() < material.Opacity {
			ray = core.Ray{Origin: hit.Point, Direction: reflectDirection(ray.Direction, hit.Normal, material.Diffusion, sampler)}
		} else {
			ray = core.Ray{Origin: hit.Point, Direction: refractDirection(ray.Direction, hit, material.IndexOfRefraction, sampler)}
		}
	}
	return segments
}

// pickEmitter selects an emitter uniformly at random
func pickEmitter(emitters []scene.Object, sampler core.Sampler) scene.Object {
	idx := int(sampler.Get1D() * float64(len(emitters)))
	if idx >= len(emitters) {
		idx = len(emitters) - 1
	}
	return emitters[idx]
}

// emitRay starts a light path on the emitter's boundary, headed outward
// somewhere in the hemisphere around the boundary normal.
func emitRay(emitter scene.Object, sampler core.Sampler) (core.Ray, core.Color) {
	point, normal := emitter.Shape.SampleBoundary(sampler.Get2D())
	direction := normal.Rotate((sampler.Get1D() - 0.5) * math.Pi)
	color := emitter.Interaction.(scene.Emitter).Color
	return core.Ray{Origin: point, Direction: direction}, color
}

// nearestHit finds the closest collider intersection along the ray
func nearestHit(colliders []scene.Object, ray core.Ray) (geometry.Hit, scene.Object, bool) {
	var best geometry.Hit
	var bestObj scene.Object
	closest := math.Inf(1)
	found := false

	for _, obj := range colliders {
		hit, ok := obj.Shape.Intersect(ray, hitEpsilon, closest)
		if ok {
			closest = hit.T
			best = hit
			bestObj = obj
			found = true
		}
	}
	return best, bestObj, found
}

// reflectDirection mirrors the incoming direction about the normal and
// jitters it by the material's diffusion. A jittered direction that would
// dive back into the surface falls back to the mirror direction.
func reflectDirection(incoming, normal core.Vec2, diffusion float64, sampler core.Sampler) core.Vec2 {
	mirrored := incoming.Normalize().Reflect(normal)
	if diffusion <= 0 {
		return mirrored
	}
	jittered := mirrored.Rotate((sampler.Get1D() - 0.5) * math.Pi * diffusion)
	if jittered.Dot(normal) <= 0 {
		return mirrored
	}
	return jittered
}

// refractDirection bends the ray through the boundary per Snell's law,
// falling back to reflection on total internal reflection or a Fresnel
// (Schlick) coin flip.
func refractDirection(incoming core.Vec2, hit geometry.Hit, indexOfRefraction float64, sampler core.Sampler) core.Vec2 {
	refractionRatio := indexOfRefraction
	if hit.FrontFace {
		refractionRatio = 1.0 / indexOfRefraction
	}

	unit := incoming.Normalize()
	cosTheta := math.Min(-unit.Dot(hit.Normal), 1.0)
	sinTheta := math.Sqrt(1.0 - cosTheta*cosTheta)

	cannotRefract := refractionRatio*sinTheta > 1.0
	if cannotRefract || reflectance(cosTheta, refractionRatio) > sampler.Get1D() {
		return unit.Reflect(hit.Normal)
	}

	rOutPerp := unit.Add(hit.Normal.Multiply(cosTheta)).Multiply(refractionRatio)
	rOutParallel := hit.Normal.Multiply(-math.Sqrt(math.Abs(1.0 - rOutPerp.LengthSquared())))
	return rOutPerp.Add(rOutParallel)
}

// reflectance calculates the Fresnel reflectance using Schlick's approximation
func reflectance(cosTheta, refractionRatio float64) float64 {
	r0 := (1 - refractionRatio) / (1 + refractionRatio)
	r0 = r0 * r0
	return r0 + (1-r0)*math.Pow(1-cosTheta, 5)
}

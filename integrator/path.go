// Package integrator implements the unidirectional path tracer: next
// event estimation against sphere lights plus BRDF-sampled bounces,
// terminated by a fixed bounce budget.
package integrator

import (
	"github.com/daoo/pathtracer-sub000/geometry"
	"github.com/daoo/pathtracer-sub000/kdtree"
	"github.com/daoo/pathtracer-sub000/light"
	"github.com/daoo/pathtracer-sub000/material"
	"github.com/daoo/pathtracer-sub000/math"
	"github.com/daoo/pathtracer-sub000/sampler"
)

const (
	maxBounces = 16
	epsilon    = 0.00001
	maxT       = 1e30
)

// Environment is the constant ambient radiance returned when a ray
// escapes the scene without hitting anything.
var Environment = math.Vec3{X: 0.8, Y: 0.8, Z: 0.8}

// Scene is the minimal read-only view the integrator needs: a traversal
// structure and the lights to sample for next event estimation.
type Scene struct {
	Tree   *kdtree.Tree
	Lights []light.Sphere
}

// Trace computes the incoming radiance along ray, recursing up to
// maxBounces times via Russian-roulette-free fixed termination.
func Trace(scene Scene, ray geometry.Ray, rng *sampler.RNG) math.Vec3 {
	return incomingLight(scene, ray, rng, math.Vec3{}, math.Vec3One, 0)
}

// incomingLight carries the radiance gathered so far and the running
// transport product (BRDF times cosine over pdf along the path prefix)
// through the recursion, so every termination returns the full estimate.
func incomingLight(scene Scene, ray geometry.Ray, rng *sampler.RNG, radiance, transport math.Vec3, bounce int) math.Vec3 {
	if bounce >= maxBounces {
		return radiance
	}

	hit, ok := scene.Tree.Intersect(ray, 0, maxT)
	if !ok {
		return radiance.Add(transport.MulVec(Environment))
	}

	mat, ok := hit.Triangle.Tag.(material.Material)
	if !ok {
		return radiance
	}

	point := hit.Position()
	n := hit.Normal()
	wi := ray.Direction.Negate()

	offset := n.Mul(epsilon)
	offsetUp := point.Add(offset)
	offsetDown := point.Sub(offset)

	var sumLights math.Vec3
	for _, l := range scene.Lights {
		sumLights = sumLights.Add(lightContribution(scene, mat, point, offsetUp, wi, n, l, rng))
	}
	radiance = radiance.Add(transport.MulVec(sumLights))

	sample := mat.SampleBrdf(wi, n, rng)
	if sample.Pdf < epsilon {
		return radiance
	}

	cosineTerm := absf(sample.Wo.Dot(n))
	transport = transport.MulVec(sample.Brdf.Mul(cosineTerm / sample.Pdf))
	if transport.LengthSqr() < epsilon*epsilon {
		return radiance
	}

	origin := offsetDown
	if sample.Wo.Dot(n) >= 0 {
		origin = offsetUp
	}
	nextRay := geometry.Ray{Origin: origin, Direction: sample.Wo}

	return incomingLight(scene, nextRay, rng, radiance, transport, bounce+1)
}

// lightContribution casts one shadow ray from offset toward a sampled
// point on l, parameterized so that t=1 is the light itself; an occluder
// anywhere in (0, 1) kills the contribution.
func lightContribution(scene Scene, mat material.Material, target, offset, wi, n math.Vec3, l light.Sphere, rng *sampler.RNG) math.Vec3 {
	source := l.Sample(rng)
	direction := source.Sub(target)

	shadowRay := geometry.Ray{Origin: offset, Direction: direction}
	if scene.Tree.AnyIntersect(shadowRay, 0, 1) {
		return math.Vec3{}
	}

	wr := direction.Normalize()
	emitted := l.Emitted(target)
	return mat.Brdf(wi, wr, n).MulVec(emitted).Mul(absf(wr.Dot(n)))
}

func absf(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
}

// Package material implements the layered BRDF model: diffuse and perfect
// specular reflection/refraction leaves, combined by Fresnel and linear
// blend nodes.
package material

import (
	stdmath "math"

	"github.com/daoo/pathtracer-sub000/math"
	"github.com/daoo/pathtracer-sub000/sampler"
)

// Sample is the result of importance-sampling a BRDF: an outgoing
// direction, the BRDF value there, and the pdf that direction was drawn
// with.
type Sample struct {
	Wo   math.Vec3
	Brdf math.Vec3
	Pdf  float32
}

// Material is a BRDF: an evaluator and an importance sampler. wi points
// toward the viewer, wo toward the light, both away from the surface; n
// is the outward normal. All are unit-length.
type Material interface {
	Brdf(wi, wo, n math.Vec3) math.Vec3
	SampleBrdf(wi, n math.Vec3, rng *sampler.RNG) Sample
}

func sameSign(a, b float32) bool {
	return (a < 0 && b < 0) || (a >= 0 && b >= 0)
}

func sameHemisphere(wi, wo, n math.Vec3) bool {
	return sameSign(wi.Dot(n), wo.Dot(n))
}

// perpendicular returns an arbitrary vector orthogonal to v, used to seed
// a local tangent frame around a normal.
func perpendicular(v math.Vec3) math.Vec3 {
	if abs32(v.X) < abs32(v.Y) {
		return math.Vec3{X: 0, Y: -v.Z, Z: v.Y}
	}
	return math.Vec3{X: -v.Z, Y: 0, Z: v.X}
}

func abs32(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
}

// schlick is the Schlick approximation to the Fresnel reflectance at
// normal incidence r0, evaluated at the angle between wo and n.
func schlick(r0 float32, wo, n math.Vec3) float32 {
	return r0 + (1-r0)*pow5(1-abs32(wo.Dot(n)))
}

func pow5(x float32) float32 {
	return float32(stdmath.Pow(float64(x), 5))
}

func sqrt32(x float32) float32 {
	return float32(stdmath.Sqrt(float64(x)))
}

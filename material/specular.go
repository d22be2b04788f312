package material

import (
	"github.com/daoo/pathtracer-sub000/math"
	"github.com/daoo/pathtracer-sub000/sampler"
)

// SpecularReflection is a perfect mirror: it samples exactly one
// direction, so its brdf contributes nothing to direct-light sampling
// (pdf for that strategy is 0).
type SpecularReflection struct {
	Reflectance math.Vec3
}

func (s SpecularReflection) Brdf(wi, wo, n math.Vec3) math.Vec3 {
	return math.Vec3{}
}

func (s SpecularReflection) SampleBrdf(wi, n math.Vec3, rng *sampler.RNG) Sample {
	wo := n.Mul(2 * abs32(wi.Dot(n))).Sub(wi).Normalize()
	pdf := float32(0)
	if sameHemisphere(wi, wo, n) {
		pdf = abs32(wo.Dot(n))
	}
	return Sample{Wo: wo, Brdf: s.Reflectance, Pdf: pdf}
}

// SpecularRefraction is a perfect dielectric transmitter/reflector: it
// refracts according to Snell's law for the given index of refraction,
// falling back to SpecularReflection on total internal reflection.
type SpecularRefraction struct {
	IndexOfRefraction float32
}

func (s SpecularRefraction) Brdf(wi, wo, n math.Vec3) math.Vec3 {
	return math.Vec3{}
}

func (s SpecularRefraction) SampleBrdf(wi, n math.Vec3, rng *sampler.RNG) Sample {
	a := wi.Negate().Dot(n)
	eta := s.IndexOfRefraction
	normal := n.Negate()
	if a < 0 {
		eta = 1 / s.IndexOfRefraction
		normal = n
	}

	w := wi.Dot(normal) * eta
	k := 1 + (w-eta)*(w+eta)
	if k < 0 {
		return SpecularReflection{Reflectance: math.Vec3{X: 1, Y: 1, Z: 1}}.SampleBrdf(wi, normal, rng)
	}

	sqrtK := sqrt32(k)
	wo := wi.Mul(-eta).Add(normal.Mul(w - sqrtK)).Normalize()
	return Sample{Wo: wo, Brdf: math.Vec3{X: 1, Y: 1, Z: 1}, Pdf: 1}
}

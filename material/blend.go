package material

import (
	"github.com/daoo/pathtracer-sub000/math"
	"github.com/daoo/pathtracer-sub000/sampler"
)

// FresnelBlend mixes two children by the Schlick approximation to the
// Fresnel term at normal-incidence reflectance R0: Reflection weighted by
// R(wo), Refraction by 1-R(wo).
type FresnelBlend struct {
	Reflection, Refraction Material
	R0                     float32
}

func (f FresnelBlend) Brdf(wi, wo, n math.Vec3) math.Vec3 {
	r := schlick(f.R0, wo, n)
	return lerp(f.Refraction.Brdf(wi, wo, n), f.Reflection.Brdf(wi, wo, n), r)
}

func (f FresnelBlend) SampleBrdf(wi, n math.Vec3, rng *sampler.RNG) Sample {
	if rng.Float32() < schlick(f.R0, wi, n) {
		return f.Reflection.SampleBrdf(wi, n, rng)
	}
	return f.Refraction.SampleBrdf(wi, n, rng)
}

// Blend linearly combines two children by a fixed weight in [0,1]:
// w*First + (1-w)*Second.
type Blend struct {
	First, Second Material
	Weight        float32
}

func (b Blend) Brdf(wi, wo, n math.Vec3) math.Vec3 {
	return lerp(b.Second.Brdf(wi, wo, n), b.First.Brdf(wi, wo, n), b.Weight)
}

func (b Blend) SampleBrdf(wi, n math.Vec3, rng *sampler.RNG) Sample {
	if rng.Float32() < b.Weight {
		return b.First.SampleBrdf(wi, n, rng)
	}
	return b.Second.SampleBrdf(wi, n, rng)
}

func lerp(a, b math.Vec3, t float32) math.Vec3 {
	return a.Add(b.Sub(a).Mul(t))
}

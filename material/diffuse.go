package material

import (
	stdmath "math"

	"github.com/daoo/pathtracer-sub000/math"
	"github.com/daoo/pathtracer-sub000/sampler"
)

// Diffuse is a Lambertian reflector: brdf = reflectance/pi, importance
// sampled on a cosine-weighted hemisphere around n.
type Diffuse struct {
	Reflectance math.Vec3
}

func (d Diffuse) Brdf(wi, wo, n math.Vec3) math.Vec3 {
	return d.Reflectance.Mul(1 / float32(stdmath.Pi))
}

func (d Diffuse) SampleBrdf(wi, n math.Vec3, rng *sampler.RNG) Sample {
	tangent := perpendicular(n).Normalize()
	bitangent := n.Cross(tangent)
	s := sampler.CosineHemisphere(rng)

	wo := tangent.Mul(s.X).Add(bitangent.Mul(s.Y)).Add(n.Mul(s.Z)).Normalize()
	pdf := s.Z / float32(stdmath.Pi)
	return Sample{Wo: wo, Brdf: d.Brdf(wi, wo, n), Pdf: pdf}
}

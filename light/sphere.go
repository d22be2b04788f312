// Package light implements the sphere area light: uniform-sphere sample
// point, inverse-square emitted radiance from its center.
package light

import (
	"github.com/daoo/pathtracer-sub000/math"
	"github.com/daoo/pathtracer-sub000/sampler"
)

// Sphere radiates uniformly in all directions from a sphere of Radius
// centered at Center, with radiant intensity Intensity (already color
// times scalar power).
type Sphere struct {
	Center    math.Vec3
	Intensity math.Vec3
	Radius    float32
}

// NewSphere builds a sphere light from a color and scalar intensity, the
// form the MTL light extension and the driver both construct it from.
func NewSphere(center, color math.Vec3, intensity, radius float32) Sphere {
	return Sphere{Center: center, Intensity: color.Mul(intensity), Radius: radius}
}

// Sample draws a uniform point on the light's bounding sphere, used to
// decorrelate shadow rays across samples rather than to model a
// non-point emitter shape.
func (s Sphere) Sample(rng *sampler.RNG) math.Vec3 {
	return s.Center.Add(sampler.UniformSphere(rng).Mul(s.Radius))
}

// Emitted returns the radiance arriving at point from the light's
// center, inverse-square attenuated.
func (s Sphere) Emitted(point math.Vec3) math.Vec3 {
	d := s.Center.Sub(point)
	return s.Intensity.Mul(1 / d.LengthSqr())
}

package material

import (
	"testing"

	"github.com/daoo/pathtracer-sub000/math"
	"github.com/daoo/pathtracer-sub000/sampler"
	"github.com/stretchr/testify/require"
)

func TestDiffuseBrdfIsReflectanceOverPi(t *testing.T) {
	d := Diffuse{Reflectance: math.Vec3{X: 1, Y: 1, Z: 1}}
	got := d.Brdf(math.Vec3{}, math.Vec3{}, math.Vec3{})
	want := float32(1.0 / 3.14159265)
	require.InDelta(t, want, got.X, 1e-4)
}

func TestDiffuseSampleStaysInUpperHemisphere(t *testing.T) {
	d := Diffuse{Reflectance: math.Vec3{X: 1, Y: 1, Z: 1}}
	rng := sampler.NewRNG(1, 1)
	n := math.Vec3{Z: 1}
	wi := math.Vec3{Z: 1}

	for i := 0; i < 100; i++ {
		s := d.SampleBrdf(wi, n, rng)
		require.GreaterOrEqual(t, s.Wo.Dot(n), float32(-1e-6))
		require.Greater(t, s.Pdf, float32(0))
	}
}

func TestSpecularReflectionMirrorsAroundNormal(t *testing.T) {
	s := SpecularReflection{Reflectance: math.Vec3{X: 1, Y: 1, Z: 1}}
	wi := math.Vec3{X: 0, Y: 0, Z: 1}
	n := math.Vec3{X: 0, Y: 0, Z: 1}

	sample := s.SampleBrdf(wi, n, nil)
	require.InDelta(t, 0, sample.Wo.X, 1e-6)
	require.InDelta(t, 0, sample.Wo.Y, 1e-6)
	require.InDelta(t, 1, sample.Wo.Z, 1e-6)
	require.InDelta(t, 1, sample.Pdf, 1e-6)
}

func TestSpecularRefractionTotalInternalReflectionFallsBackToMirror(t *testing.T) {
	s := SpecularRefraction{IndexOfRefraction: 1.5}
	// A grazing incident ray from inside a denser medium triggers TIR.
	wi := math.Vec3{X: 0.999, Y: 0, Z: 0.0447}.Normalize()
	n := math.Vec3{X: 0, Y: 0, Z: -1}

	sample := s.SampleBrdf(wi, n, sampler.NewRNG(1, 1))
	require.GreaterOrEqual(t, sample.Pdf, float32(0))
}

func TestTranslateCollapsesOpaqueDiffuse(t *testing.T) {
	desc := Desc{Diffuse: math.Vec3{X: 0.5, Y: 0.5, Z: 0.5}}
	m := Translate(desc)
	_, ok := m.(Diffuse)
	require.True(t, ok, "a fully opaque, non-reflective desc should collapse to plain Diffuse")
}

func TestTranslateBuildsFresnelLayerWhenReflectiveAtGrazing(t *testing.T) {
	desc := Desc{
		Diffuse: math.Vec3{X: 0.5, Y: 0.5, Z: 0.5},
		Refl90:  1,
		Refl0:   0.04,
	}
	m := Translate(desc)
	_, ok := m.(FresnelBlend)
	require.True(t, ok)
}

func TestBlendPicksFirstWithProbabilityWeight(t *testing.T) {
	b := Blend{First: Diffuse{Reflectance: math.Vec3{X: 1}}, Second: Diffuse{Reflectance: math.Vec3{Y: 1}}, Weight: 1}
	rng := sampler.NewRNG(1, 1)
	s := b.SampleBrdf(math.Vec3{Z: 1}, math.Vec3{Z: 1}, rng)
	require.InDelta(t, 1.0/3.14159265, s.Brdf.X, 1e-6)
}

func TestSpecularRefractionBendsPerSnell(t *testing.T) {
	// Air to glass (ior 1.5) at 45 degrees: sin(theta_t) = sin(45)/1.5.
	s := SpecularRefraction{IndexOfRefraction: 1.5}
	wi := math.Vec3{X: 1, Y: 0, Z: 1}.Normalize()
	n := math.Vec3{Z: 1}

	sample := s.SampleBrdf(wi, n, sampler.NewRNG(1, 1))
	require.InDelta(t, 1, sample.Pdf, 1e-6)

	sinT := abs32(sample.Wo.X)
	require.InDelta(t, 0.4714, sinT, 1e-3)
	require.Less(t, sample.Wo.Z, float32(0))
}

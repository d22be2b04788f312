package integrator

import (
	"testing"

	"github.com/daoo/pathtracer-sub000/geometry"
	"github.com/daoo/pathtracer-sub000/kdtree"
	"github.com/daoo/pathtracer-sub000/light"
	"github.com/daoo/pathtracer-sub000/material"
	"github.com/daoo/pathtracer-sub000/math"
	"github.com/daoo/pathtracer-sub000/sampler"
	"github.com/stretchr/testify/require"
)

func floorTriangle() *geometry.Triangle {
	n := math.Vec3{Y: 1}
	tri := &geometry.Triangle{
		V0: math.Vec3{X: -10, Z: -10},
		V1: math.Vec3{X: 10, Z: -10},
		V2: math.Vec3{X: 0, Z: 10},
		N0: n, N1: n, N2: n,
	}
	tri.Tag = material.Translate(material.Desc{Diffuse: math.Vec3{X: 0.5, Y: 0.5, Z: 0.5}})
	return tri
}

func TestTraceMissReturnsEnvironment(t *testing.T) {
	tree := kdtree.Build(nil)
	scene := Scene{Tree: tree}
	ray := geometry.Ray{Origin: math.Vec3{Y: 5}, Direction: math.Vec3{Y: 1}}
	rng := sampler.NewRNG(1, 1)

	result := Trace(scene, ray, rng)
	require.Equal(t, Environment, result)
}

func TestTraceHitWithLightReturnsPositiveRadiance(t *testing.T) {
	tri := floorTriangle()
	tree := kdtree.Build([]*geometry.Triangle{tri})
	l := light.NewSphere(math.Vec3{Y: 5}, math.Vec3{X: 1, Y: 1, Z: 1}, 20, 0.1)
	scene := Scene{Tree: tree, Lights: []light.Sphere{l}}

	ray := geometry.Ray{Origin: math.Vec3{Y: 5}, Direction: math.Vec3{Y: -1}}
	rng := sampler.NewRNG(2, 2)

	result := Trace(scene, ray, rng)
	require.Greater(t, result.X, float32(0))
}

func TestTraceTerminatesWithinBounceBudget(t *testing.T) {
	tri := floorTriangle()
	tree := kdtree.Build([]*geometry.Triangle{tri})
	scene := Scene{Tree: tree}

	ray := geometry.Ray{Origin: math.Vec3{Y: 5}, Direction: math.Vec3{Y: -1}}
	rng := sampler.NewRNG(3, 3)

	require.NotPanics(t, func() { Trace(scene, ray, rng) })
}

func TestDirectLightEstimateMatchesAnalyticValue(t *testing.T) {
	// Diffuse white surface at the origin with n=(0,0,1), point light at
	// z=+1 with intensity (pi,pi,pi): cosine term 1, inverse square 1,
	// brdf 1/pi, so the estimate is exactly (1,1,1).
	tree := kdtree.Build(nil)
	scene := Scene{Tree: tree}
	mat := material.Diffuse{Reflectance: math.Vec3{X: 1, Y: 1, Z: 1}}
	l := light.Sphere{
		Center:    math.Vec3{Z: 1},
		Intensity: math.Vec3{X: 3.14159265, Y: 3.14159265, Z: 3.14159265},
	}
	rng := sampler.NewRNG(1, 1)

	target := math.Vec3{}
	n := math.Vec3{Z: 1}
	wi := math.Vec3{Z: 1}
	got := lightContribution(scene, mat, target, target.Add(n.Mul(1e-5)), wi, n, l, rng)

	require.InDelta(t, 1.0, got.X, 1e-4)
	require.InDelta(t, 1.0, got.Y, 1e-4)
	require.InDelta(t, 1.0, got.Z, 1e-4)
}

func TestShadowRayKillsOccludedLight(t *testing.T) {
	occluder := floorTriangle()
	tree := kdtree.Build([]*geometry.Triangle{occluder})
	scene := Scene{Tree: tree}
	mat := material.Diffuse{Reflectance: math.Vec3{X: 1, Y: 1, Z: 1}}
	l := light.Sphere{Center: math.Vec3{Y: 5}, Intensity: math.Vec3{X: 1, Y: 1, Z: 1}}
	rng := sampler.NewRNG(1, 1)

	// The floor at y=0 sits between the shade point and the light.
	target := math.Vec3{Y: -1}
	n := math.Vec3{Y: 1}
	got := lightContribution(scene, mat, target, target.Add(n.Mul(1e-5)), n, n, l, rng)
	require.Equal(t, math.Vec3{}, got)
}

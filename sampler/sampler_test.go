package sampler

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestIdenticallySeededGeneratorsAgree(t *testing.T) {
	a := NewRNG(17, 29)
	b := NewRNG(17, 29)

	for i := 0; i < 1000; i++ {
		require.Equal(t, a.Float32(), b.Float32())
	}
}

func TestUniformSquareStaysInUnitSquare(t *testing.T) {
	rng := NewRNG(1, 1)
	for i := 0; i < 1000; i++ {
		x, y := UniformSquare(rng)
		require.GreaterOrEqual(t, x, float32(0))
		require.Less(t, x, float32(1))
		require.GreaterOrEqual(t, y, float32(0))
		require.Less(t, y, float32(1))
	}
}

func TestUniformSphereIsUnitLength(t *testing.T) {
	rng := NewRNG(2, 2)
	for i := 0; i < 1000; i++ {
		v := UniformSphere(rng)
		require.InDelta(t, 1.0, v.Length(), 1e-4)
	}
}

func TestConcentricDiskStaysInUnitDisk(t *testing.T) {
	rng := NewRNG(3, 3)
	for i := 0; i < 1000; i++ {
		x, y := ConcentricDisk(rng)
		require.LessOrEqual(t, x*x+y*y, float32(1)+1e-6)
	}
}

func TestCosineHemisphereLiesAboveDisk(t *testing.T) {
	rng := NewRNG(4, 4)
	for i := 0; i < 1000; i++ {
		v := CosineHemisphere(rng)
		require.GreaterOrEqual(t, v.Z, float32(0))
		require.InDelta(t, 1.0, v.Length(), 1e-4)
	}
}

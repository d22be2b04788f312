package light

import (
	"testing"

	"github.com/daoo/pathtracer-sub000/math"
	"github.com/daoo/pathtracer-sub000/sampler"
	"github.com/stretchr/testify/require"
)

func TestEmittedFallsOffWithSquaredDistance(t *testing.T) {
	l := NewSphere(math.Vec3{}, math.Vec3{X: 1, Y: 1, Z: 1}, 4, 0.1)

	near := l.Emitted(math.Vec3{Z: 1})
	far := l.Emitted(math.Vec3{Z: 2})

	require.InDelta(t, 4.0, near.X, 1e-6)
	require.InDelta(t, 1.0, far.X, 1e-6)
}

func TestSampleStaysOnSphereSurface(t *testing.T) {
	l := NewSphere(math.Vec3{X: 1, Y: 2, Z: 3}, math.Vec3{X: 1, Y: 1, Z: 1}, 1, 2)
	rng := sampler.NewRNG(7, 7)

	for i := 0; i < 20; i++ {
		p := l.Sample(rng)
		d := p.Sub(l.Center).Length()
		require.InDelta(t, 2.0, d, 1e-4)
	}
}

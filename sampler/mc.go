package sampler

import (
	stdmath "math"

	"github.com/daoo/pathtracer-sub000/math"
)

// UniformSquare draws a point uniformly on [0,1)^2.
func UniformSquare(rng *RNG) (float32, float32) {
	return rng.Float32(), rng.Float32()
}

// UniformSphere draws a direction uniformly on the unit sphere via the
// (z, phi) method.
func UniformSphere(rng *RNG) math.Vec3 {
	z := rng.Float32()*2 - 1
	phi := rng.Float32() * (2 * stdmath.Pi)
	r := sqrt32(1 - z*z)
	return math.Vec3{X: r * cos32(phi), Y: r * sin32(phi), Z: z}
}

// ConcentricDisk maps a square sample to the unit disk with low
// distortion (Shirley's concentric mapping), the basis the
// cosine-weighted hemisphere sampler builds on.
func ConcentricDisk(rng *RNG) (float32, float32) {
	x := rng.Float32()*2 - 1
	y := rng.Float32()*2 - 1
	if x == 0 && y == 0 {
		return 0, 0
	}

	var r, theta float32
	switch {
	case x >= -y && x > y:
		r, theta = x, y/x
	case x >= -y:
		r, theta = y, 2-x/y
	case x <= y:
		r, theta = -x, 4+y/x
	default:
		r, theta = -y, 6-x/y
	}

	theta *= stdmath.Pi / 4
	return r * cos32(theta), r * sin32(theta)
}

// CosineHemisphere draws a direction in the local +Z hemisphere with
// density proportional to cos(theta); the returned vector's Z component
// is that cosine.
func CosineHemisphere(rng *RNG) math.Vec3 {
	x, y := ConcentricDisk(rng)
	z := sqrt32(fmax32(0, 1-x*x-y*y))
	return math.Vec3{X: x, Y: y, Z: z}
}

func sqrt32(x float32) float32 { return float32(stdmath.Sqrt(float64(x))) }
func cos32(x float32) float32  { return float32(stdmath.Cos(float64(x))) }
func sin32(x float32) float32  { return float32(stdmath.Sin(float64(x))) }
func fmax32(a, b float32) float32 {
	if a > b {
		return a
	}
	return b
}

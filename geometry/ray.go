package geometry

import "github.com/daoo/pathtracer-sub000/math"

// Ray is a half-line Origin + t*Direction, t >= 0.
type Ray struct {
	Origin, Direction math.Vec3
}

// Param evaluates the ray at parameter t.
func (r Ray) Param(t float32) math.Vec3 {
	return r.Origin.Add(r.Direction.Mul(t))
}

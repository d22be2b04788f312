package geometry

import "github.com/daoo/pathtracer-sub000/math"

// Aabb is an axis-aligned bounding box stored as center and half-extent,
// matching the representation the kd-tree builder scores splits against.
type Aabb struct {
	Center math.Vec3
	Half   math.Vec3
}

func NewAabb(center, half math.Vec3) Aabb {
	return Aabb{Center: center, Half: half}
}

func (a Aabb) Min() math.Vec3 {
	return a.Center.Sub(a.Half)
}

func (a Aabb) Max() math.Vec3 {
	return a.Center.Add(a.Half)
}

func (a Aabb) SurfaceArea() float32 {
	return 8.0 * (a.Half.X*a.Half.Y + a.Half.X*a.Half.Z + a.Half.Y*a.Half.Z)
}

// Bound returns the smallest Aabb enclosing every point in points.
func Bound(points []math.Vec3) Aabb {
	if len(points) == 0 {
		return Aabb{}
	}
	min, max := points[0], points[0]
	for _, p := range points[1:] {
		min = componentMin(min, p)
		max = componentMax(max, p)
	}
	return Aabb{Center: min.Add(max).Mul(0.5), Half: max.Sub(min).Mul(0.5)}
}

func componentMin(a, b math.Vec3) math.Vec3 {
	return math.Vec3{X: fmin(a.X, b.X), Y: fmin(a.Y, b.Y), Z: fmin(a.Z, b.Z)}
}

func componentMax(a, b math.Vec3) math.Vec3 {
	return math.Vec3{X: fmax(a.X, b.X), Y: fmax(a.Y, b.Y), Z: fmax(a.Z, b.Z)}
}

func fmin(a, b float32) float32 {
	if a < b {
		return a
	}
	return b
}

func fmax(a, b float32) float32 {
	if a > b {
		return a
	}
	return b
}

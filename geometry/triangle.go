package geometry

import "github.com/daoo/pathtracer-sub000/math"

// Triangle is a fully shaded triangle: positions, per-vertex normals and
// texture coordinates (carried through from the loader, unused by the
// integrator), plus an opaque Tag the owner attaches (the core stores a
// material.Material there without this package depending on the material
// package).
type Triangle struct {
	V0, V1, V2    math.Vec3
	N0, N1, N2    math.Vec3
	UV0, UV1, UV2 math.Vec2
	Tag           any
}

// Min returns the component-wise minimum of the triangle's three vertices.
func (t Triangle) Min() math.Vec3 {
	return componentMin(componentMin(t.V0, t.V1), t.V2)
}

// Max returns the component-wise maximum of the triangle's three vertices.
func (t Triangle) Max() math.Vec3 {
	return componentMax(componentMax(t.V0, t.V1), t.V2)
}

// Bounds returns the Aabb exactly enclosing the triangle's three vertices.
func (t Triangle) Bounds() Aabb {
	min, max := t.Min(), t.Max()
	return Aabb{Center: min.Add(max).Mul(0.5), Half: max.Sub(min).Mul(0.5)}
}

package geometry

import "github.com/daoo/pathtracer-sub000/math"

// TriBoxOverlap is the Akenine-Moller separating-axis test for a triangle
// against an axis-aligned box: the box's own three axes, the triangle's
// face normal, and the nine cross products of triangle edges with box
// axes.
func TriBoxOverlap(box Aabb, v0, v1, v2 math.Vec3) bool {
	half := box.Half

	p0 := v0.Sub(box.Center)
	p1 := v1.Sub(box.Center)
	p2 := v2.Sub(box.Center)

	e0 := p1.Sub(p0)
	e1 := p2.Sub(p1)
	e2 := p0.Sub(p2)

	// Edge e0 (v0 -> v1).
	if !axisTestX(e0.Z, e0.Y, abs32(e0.Z), abs32(e0.Y), p0, p2, half) {
		return false
	}
	if !axisTestY(e0.Z, e0.X, abs32(e0.Z), abs32(e0.X), p0, p2, half) {
		return false
	}
	if !axisTestZ(e0.Y, e0.X, abs32(e0.Y), abs32(e0.X), p1, p2, half) {
		return false
	}

	// Edge e1 (v1 -> v2).
	if !axisTestX(e1.Z, e1.Y, abs32(e1.Z), abs32(e1.Y), p0, p2, half) {
		return false
	}
	if !axisTestY(e1.Z, e1.X, abs32(e1.Z), abs32(e1.X), p0, p2, half) {
		return false
	}
	if !axisTestZ(e1.Y, e1.X, abs32(e1.Y), abs32(e1.X), p0, p1, half) {
		return false
	}

	// Edge e2 (v2 -> v0).
	if !axisTestX(e2.Z, e2.Y, abs32(e2.Z), abs32(e2.Y), p0, p1, half) {
		return false
	}
	if !axisTestY(e2.Z, e2.X, abs32(e2.Z), abs32(e2.X), p0, p1, half) {
		return false
	}
	if !axisTestZ(e2.Y, e2.X, abs32(e2.Y), abs32(e2.X), p1, p2, half) {
		return false
	}

	if min, max := findMinMax(p0.X, p1.X, p2.X); min > half.X || max < -half.X {
		return false
	}
	if min, max := findMinMax(p0.Y, p1.Y, p2.Y); min > half.Y || max < -half.Y {
		return false
	}
	if min, max := findMinMax(p0.Z, p1.Z, p2.Z); min > half.Z || max < -half.Z {
		return false
	}

	normal := e0.Cross(e1)
	return planeBoxOverlap(normal, p0, half)
}

func findMinMax(x0, x1, x2 float32) (float32, float32) {
	return fmin(x0, fmin(x1, x2)), fmax(x0, fmax(x1, x2))
}

func abs32(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
}

func planeBoxOverlap(normal, vert, maxbox math.Vec3) bool {
	testAxis := func(n, v, m float32) (float32, float32) {
		if n > 0 {
			return -m - v, m - v
		}
		return m - v, -m - v
	}
	vminX, vmaxX := testAxis(normal.X, vert.X, maxbox.X)
	vminY, vmaxY := testAxis(normal.Y, vert.Y, maxbox.Y)
	vminZ, vmaxZ := testAxis(normal.Z, vert.Z, maxbox.Z)
	vmin := math.Vec3{X: vminX, Y: vminY, Z: vminZ}
	vmax := math.Vec3{X: vmaxX, Y: vmaxY, Z: vmaxZ}
	return normal.Dot(vmin) <= 0 && normal.Dot(vmax) >= 0
}

// axisTestX tests the cross(edge, X-axis) separating axis using the pair
// of vertices (va, vb) not already covered by the edge itself.
func axisTestX(a, b, fa, fb float32, va, vb math.Vec3, half math.Vec3) bool {
	p0 := a*va.Y - b*va.Z
	p1 := a*vb.Y - b*vb.Z
	min, max := p0, p1
	if p0 > p1 {
		min, max = p1, p0
	}
	rad := fa*half.Y + fb*half.Z
	return !(min > rad || max < -rad)
}

func axisTestY(a, b, fa, fb float32, va, vb math.Vec3, half math.Vec3) bool {
	p0 := -a*va.X + b*va.Z
	p1 := -a*vb.X + b*vb.Z
	min, max := p0, p1
	if p0 > p1 {
		min, max = p1, p0
	}
	rad := fa*half.X + fb*half.Z
	return !(min > rad || max < -rad)
}

func axisTestZ(a, b, fa, fb float32, va, vb math.Vec3, half math.Vec3) bool {
	p0 := a*va.X - b*va.Y
	p1 := a*vb.X - b*vb.Y
	min, max := p0, p1
	if p0 > p1 {
		min, max = p1, p0
	}
	rad := fa*half.X + fb*half.Y
	return !(min > rad || max < -rad)
}

package geometry

import "github.com/daoo/pathtracer-sub000/math"

const rayEpsilon = 0.00001

// TriRayIntersection is the result of a hit: barycentric coordinates u, v
// and ray parameter T, from which position and shading normal are derived
// lazily so a miss never pays for them.
type TriRayIntersection struct {
	Triangle *Triangle
	Ray      Ray
	T, U, V  float32
}

func (h TriRayIntersection) Position() math.Vec3 {
	return h.Ray.Param(h.T)
}

func (h TriRayIntersection) Normal() math.Vec3 {
	n := h.Triangle.N0.Mul(1 - (h.U + h.V)).Add(h.Triangle.N1.Mul(h.U)).Add(h.Triangle.N2.Mul(h.V))
	return n.Normalize()
}

// Intersect implements the Moller-Trumbore ray-triangle intersection test.
// It reports a hit at any t, including t <= 0; callers are responsible for
// range-checking against [tmin, tmax].
func Intersect(tri *Triangle, ray Ray) (TriRayIntersection, bool) {
	e1 := tri.V1.Sub(tri.V0)
	e2 := tri.V2.Sub(tri.V0)
	q := ray.Direction.Cross(e2)

	a := e1.Dot(q)
	if a > -rayEpsilon && a < rayEpsilon {
		return TriRayIntersection{}, false
	}

	s := ray.Origin.Sub(tri.V0)
	f := 1.0 / a
	u := f * s.Dot(q)
	if u < 0 || u > 1 {
		return TriRayIntersection{}, false
	}

	r := s.Cross(e1)
	v := f * ray.Direction.Dot(r)
	if v < 0 || u+v > 1 {
		return TriRayIntersection{}, false
	}

	t := f * e2.Dot(r)
	return TriRayIntersection{Triangle: tri, Ray: ray, T: t, U: u, V: v}, true
}

// FindClosest scans triangles and returns the hit with minimum T inside
// the closed range [tmin, tmax], if any. The upper bound is inclusive so
// a hit exactly on a kd-node's far boundary is claimed by the near child
// that owns the triangle rather than lost between restarts.
func FindClosest(triangles []*Triangle, ray Ray, tmin, tmax float32) (TriRayIntersection, bool) {
	var best TriRayIntersection
	found := false
	for _, tri := range triangles {
		hit, ok := Intersect(tri, ray)
		if ok && hit.T >= tmin && hit.T <= tmax {
			best = hit
			tmax = hit.T
			found = true
		}
	}
	return best, found
}

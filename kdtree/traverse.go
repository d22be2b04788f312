package kdtree

import "github.com/daoo/pathtracer-sub000/geometry"

// Intersect finds the closest triangle hit along ray within [tmin, tmax]
// using a stackless restart traversal: descend toward the ray using the
// recomputed axis at each inner node, and on a leaf miss, restart from
// the root with tmin advanced past the exhausted interval rather than
// popping a stack frame.
func (t *Tree) Intersect(ray geometry.Ray, tminInit, tmaxInit float32) (geometry.TriRayIntersection, bool) {
	index := 0
	tmin, tmax := tminInit, tmaxInit
	axis := geometry.X

	for {
		node := t.nodes[index]

		if node.IsLeaf() {
			hit, ok := geometry.FindClosest(t.leaves[node.Index()], ray, tmin, tmax)
			if ok {
				return hit, true
			}
			if tmax == tmaxInit {
				return geometry.TriRayIntersection{}, false
			}
			tmin = tmax
			tmax = tmaxInit
			index = 0
			axis = geometry.X
			continue
		}

		plane := node.Split()
		origin := geometry.Component(ray.Origin, axis)
		direction := geometry.Component(ray.Direction, axis)
		tplane := (plane - origin) / direction

		first, second := leftChild(index), rightChild(index)
		if direction < 0 {
			first, second = second, first
		}
		axis = geometry.NextAxis(axis)

		switch {
		case tplane >= tmax:
			index = first
		case tplane <= tmin:
			index = second
		default:
			index = first
			tmax = tplane
		}
	}
}

// AnyIntersect reports whether any triangle lies within [tmin, tmax]
// along ray, without resolving which one — the shadow-ray query.
func (t *Tree) AnyIntersect(ray geometry.Ray, tmin, tmax float32) bool {
	_, ok := t.Intersect(ray, tmin, tmax)
	return ok
}

// Package kdtree builds and traverses a surface-area-heuristic kd-tree
// over triangles, using a stackless restart traversal over a compact,
// implicit-heap node array.
package kdtree

import "github.com/daoo/pathtracer-sub000/geometry"

// Box is a set of triangles together with the boundary the builder scores
// candidate splits against. It need not be the triangles' tight bounds —
// the root box is the scene bounds, and the builder shrinks it exactly as
// the triangle set is partitioned.
type Box struct {
	Boundary  geometry.Aabb
	Triangles []*geometry.Triangle
}

package kdtree

import (
	"github.com/daoo/pathtracer-sub000/geometry"
	"github.com/daoo/pathtracer-sub000/math"
)

// linkedNode is the intermediate, pointer-based tree the builder
// recurses over before it is flattened into a Tree's compact array.
type linkedNode struct {
	Plane       geometry.Aap
	Left, Right *linkedNode
	Triangles   []*geometry.Triangle // non-nil only for leaves
}

func (n *linkedNode) isLeaf() bool {
	return n.Left == nil && n.Right == nil
}

// partitionEpsilon enlarges both child boxes on all three axes before
// classifying triangles against them, so that a triangle touching a child
// box face only to floating-point precision is not classified into
// neither side.
const partitionEpsilon = 1e-5

func enlarge(box geometry.Aabb, axis geometry.Axis, eps float32) geometry.Aabb {
	half := geometry.WithComponent(box.Half, axis, geometry.Component(box.Half, axis)+eps)
	return geometry.Aabb{Center: box.Center, Half: half}
}

// partition splits parent's triangle set across plane, classifying each
// triangle against the (slightly enlarged) child boxes. A triangle may
// land in both children; per the partition invariant it may never land
// in neither. Triangles lying entirely in the plane go to planarSide
// only, the side the cost model already counted them on.
func partition(parent Box, plane geometry.Aap, planarSide Side) (Box, Box) {
	split := geometry.Split(parent.Boundary, plane)
	leftProbe, rightProbe := split.Left, split.Right
	for _, axis := range [3]geometry.Axis{geometry.X, geometry.Y, geometry.Z} {
		leftProbe = enlarge(leftProbe, axis, partitionEpsilon)
		rightProbe = enlarge(rightProbe, axis, partitionEpsilon)
	}

	var leftTris, rightTris []*geometry.Triangle
	for _, tri := range parent.Triangles {
		if planar(tri, plane) {
			if planarSide == Left {
				leftTris = append(leftTris, tri)
			} else {
				rightTris = append(rightTris, tri)
			}
			continue
		}

		inLeft := geometry.TriBoxOverlap(leftProbe, tri.V0, tri.V1, tri.V2)
		inRight := geometry.TriBoxOverlap(rightProbe, tri.V0, tri.V1, tri.V2)
		if !inLeft && !inRight {
			panic("kdtree: partition dropped a triangle")
		}
		if inLeft {
			leftTris = append(leftTris, tri)
		}
		if inRight {
			rightTris = append(rightTris, tri)
		}
	}
	return Box{Boundary: split.Left, Triangles: leftTris}, Box{Boundary: split.Right, Triangles: rightTris}
}

// planar reports whether all three vertices lie in the plane.
func planar(tri *geometry.Triangle, plane geometry.Aap) bool {
	return geometry.Component(tri.Min(), plane.Axis) == plane.Distance &&
		geometry.Component(tri.Max(), plane.Axis) == plane.Distance
}

func buildLinked(params Params, depth int, box Box) *linkedNode {
	if depth >= params.MaxDepth || len(box.Triangles) == 0 {
		return &linkedNode{Triangles: box.Triangles}
	}

	// The compact tree stores no axis, so only planes on the axis that
	// traversal derives from depth (X at the root, then Y, Z, X, ...) are
	// candidates.
	axis := geometry.X
	for i := 0; i < depth; i++ {
		axis = geometry.NextAxis(axis)
	}
	var events []event
	for _, e := range listPerfectSplits(box) {
		if e.Plane.Axis == axis {
			events = append(events, e)
		}
	}
	if len(events) == 0 {
		return &linkedNode{Triangles: box.Triangles}
	}

	split, ok := findBestSplit(params, box, events)
	if !ok || split.Cost.Value > params.leafCost(len(box.Triangles)) {
		return &linkedNode{Triangles: box.Triangles}
	}

	left, right := partition(box, split.Plane, split.Cost.Side)
	return &linkedNode{
		Plane: split.Plane,
		Left:  buildLinked(params, depth+1, left),
		Right: buildLinked(params, depth+1, right),
	}
}

func boundTriangles(triangles []*geometry.Triangle) geometry.Aabb {
	points := make([]math.Vec3, 0, len(triangles)*3)
	for _, tri := range triangles {
		points = append(points, tri.V0, tri.V1, tri.V2)
	}
	return geometry.Bound(points)
}

// Build constructs a compact kd-tree over triangles using the default SAH
// cost parameters.
func Build(triangles []*geometry.Triangle) *Tree {
	return BuildWithParams(DefaultParams(), triangles)
}

// BuildWithParams constructs a compact kd-tree with explicit cost-model
// tuning.
func BuildWithParams(params Params, triangles []*geometry.Triangle) *Tree {
	root := buildLinked(params, 0, Box{Boundary: boundTriangles(triangles), Triangles: triangles})
	return compact(root)
}

package kdtree

import "github.com/daoo/pathtracer-sub000/geometry"

// Side names which child a plane's coincident (planar) triangles are
// folded into when that gives the lower cost.
type Side int

const (
	Left Side = iota
	Right
)

// Cost is the SAH cost of a candidate split and the side its planar
// triangles were assigned to score it.
type Cost struct {
	Value float32
	Side  Side
}

// Params are the SAH cost-model constants. The source material this tree
// is grounded on carries three different schedules for these three
// numbers; DESIGN.md records the chosen default and why.
type Params struct {
	Traverse   float32
	Intersect  float32
	EmptyBonus float32
	MaxDepth   int
}

func DefaultParams() Params {
	return Params{Traverse: 1.0, Intersect: 1.5, EmptyBonus: 0.8, MaxDepth: 20}
}

func (p Params) leafCost(n int) float32 {
	return p.Intersect * float32(n)
}

func (p Params) calculateCost(parentArea, leftArea, rightArea float32, leftCount, rightCount int) float32 {
	phi := float32(1.0)
	if leftCount == 0 || rightCount == 0 {
		phi = p.EmptyBonus
	}
	intersect := (leftArea*float32(leftCount) + rightArea*float32(rightCount)) / parentArea
	return phi*p.Traverse + p.Intersect*intersect
}

// costForPlane scores a candidate plane against parent, assigning its
// planarCount coincident triangles to whichever side yields the lower
// cost; ties favor Left.
func (p Params) costForPlane(parent geometry.Aabb, plane geometry.Aap, leftCount, rightCount, planarCount int) Cost {
	split := geometry.Split(parent, plane)
	parentArea := parent.SurfaceArea()
	leftArea := split.Left.SurfaceArea()
	rightArea := split.Right.SurfaceArea()

	costLeft := p.calculateCost(parentArea, leftArea, rightArea, leftCount+planarCount, rightCount)
	costRight := p.calculateCost(parentArea, leftArea, rightArea, leftCount, rightCount+planarCount)

	if costLeft <= costRight {
		return Cost{Value: costLeft, Side: Left}
	}
	return Cost{Value: costRight, Side: Right}
}

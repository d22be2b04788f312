package geometry

// Aap is an axis-aligned plane: the set of points whose coordinate on Axis
// equals Distance. Splits and SAH events are expressed in terms of it.
type Aap struct {
	Axis     Axis
	Distance float32
}

// Less orders planes by axis first, then by distance, matching the order
// the builder's event set is swept in.
func (p Aap) Less(other Aap) bool {
	return p.Axis < other.Axis || (p.Axis == other.Axis && p.Distance < other.Distance)
}

// AabbSplit holds the two boxes produced by slicing a parent box with a
// plane.
type AabbSplit struct {
	Left, Right Aabb
}

// Split cuts aabb along plane, producing a left box on [min, distance] and
// a right box on [distance, max], both inheriting the other two extents.
func Split(aabb Aabb, plane Aap) AabbSplit {
	leftHalf := (plane.Distance - Component(aabb.Min(), plane.Axis)) / 2
	rightHalf := (Component(aabb.Max(), plane.Axis) - plane.Distance) / 2

	leftCenter := WithComponent(aabb.Center, plane.Axis, plane.Distance-leftHalf)
	leftHalfVec := WithComponent(aabb.Half, plane.Axis, leftHalf)

	rightCenter := WithComponent(aabb.Center, plane.Axis, plane.Distance+rightHalf)
	rightHalfVec := WithComponent(aabb.Half, plane.Axis, rightHalf)

	return AabbSplit{
		Left:  Aabb{Center: leftCenter, Half: leftHalfVec},
		Right: Aabb{Center: rightCenter, Half: rightHalfVec},
	}
}

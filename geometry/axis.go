// Package geometry implements the triangle, box and ray primitives shared
// by the kd-tree builder and traverser.
package geometry

import "github.com/daoo/pathtracer-sub000/math"

// Axis names one of the three coordinate axes. The zero value is X.
type Axis int

const (
	X Axis = iota
	Y
	Z
)

// NextAxis cycles X -> Y -> Z -> X, the order kd-tree builds and traversals
// agree on for recovering an inner node's axis from its depth.
func NextAxis(axis Axis) Axis {
	switch axis {
	case X:
		return Y
	case Y:
		return Z
	default:
		return X
	}
}

// Component returns the named coordinate of v.
func Component(v math.Vec3, axis Axis) float32 {
	switch axis {
	case X:
		return v.X
	case Y:
		return v.Y
	default:
		return v.Z
	}
}

// WithComponent returns v with its named coordinate replaced.
func WithComponent(v math.Vec3, axis Axis, value float32) math.Vec3 {
	switch axis {
	case X:
		v.X = value
	case Y:
		v.Y = value
	default:
		v.Z = value
	}
	return v
}

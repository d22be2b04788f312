package geometry

import (
	"testing"

	"github.com/daoo/pathtracer-sub000/math"
)

func TestAabbSurfaceArea(t *testing.T) {
	box := NewAabb(math.Vec3{}, math.Vec3{X: 1, Y: 1, Z: 1})
	got := box.SurfaceArea()
	want := float32(24) // 2x2x2 cube
	if got != want {
		t.Errorf("SurfaceArea: expected %v, got %v", want, got)
	}
}

func TestSplitPreservesExtent(t *testing.T) {
	box := NewAabb(math.Vec3{}, math.Vec3{X: 2, Y: 1, Z: 1})
	split := Split(box, Aap{Axis: X, Distance: 1})

	if split.Left.Max().X != 1 {
		t.Errorf("left max.X: expected 1, got %v", split.Left.Max().X)
	}
	if split.Right.Min().X != 1 {
		t.Errorf("right min.X: expected 1, got %v", split.Right.Min().X)
	}
	if split.Left.Min().X != box.Min().X || split.Right.Max().X != box.Max().X {
		t.Errorf("split does not cover original extent")
	}
}

func TestNextAxisCycle(t *testing.T) {
	if NextAxis(X) != Y || NextAxis(Y) != Z || NextAxis(Z) != X {
		t.Errorf("NextAxis does not cycle X->Y->Z->X")
	}
}

func TestIntersectHitsUnitTriangle(t *testing.T) {
	tri := &Triangle{
		V0: math.Vec3{X: 0, Y: 0, Z: 0},
		V1: math.Vec3{X: 1, Y: 0, Z: 0},
		V2: math.Vec3{X: 0, Y: 1, Z: 0},
		N0: math.Vec3{Z: 1}, N1: math.Vec3{Z: 1}, N2: math.Vec3{Z: 1},
	}
	ray := Ray{Origin: math.Vec3{X: 0.25, Y: 0.25, Z: -1}, Direction: math.Vec3{Z: 1}}

	hit, ok := Intersect(tri, ray)
	if !ok {
		t.Fatalf("expected a hit")
	}
	if hit.T != 1 {
		t.Errorf("T: expected 1, got %v", hit.T)
	}
	if hit.U != 0.25 || hit.V != 0.25 {
		t.Errorf("barycentrics: expected (0.25, 0.25), got (%v, %v)", hit.U, hit.V)
	}
	n := hit.Normal()
	if n.X != 0 || n.Y != 0 || n.Z != 1 {
		t.Errorf("Normal: expected (0,0,1), got %v", n)
	}
}

func TestIntersectMissesParallelRay(t *testing.T) {
	tri := &Triangle{
		V0: math.Vec3{X: 0, Y: 0, Z: 0},
		V1: math.Vec3{X: 1, Y: 0, Z: 0},
		V2: math.Vec3{X: 0, Y: 1, Z: 0},
	}
	ray := Ray{Origin: math.Vec3{Z: -1}, Direction: math.Vec3{X: 1}}
	if _, ok := Intersect(tri, ray); ok {
		t.Errorf("expected no hit for a ray parallel to the triangle's plane")
	}
}

func TestFindClosestPicksNearest(t *testing.T) {
	near := &Triangle{
		V0: math.Vec3{X: -1, Y: -1, Z: 1}, V1: math.Vec3{X: 1, Y: -1, Z: 1}, V2: math.Vec3{X: 0, Y: 1, Z: 1},
	}
	far := &Triangle{
		V0: math.Vec3{X: -1, Y: -1, Z: 2}, V1: math.Vec3{X: 1, Y: -1, Z: 2}, V2: math.Vec3{X: 0, Y: 1, Z: 2},
	}
	ray := Ray{Origin: math.Vec3{}, Direction: math.Vec3{Z: 1}}

	hit, ok := FindClosest([]*Triangle{far, near}, ray, 0, 100)
	if !ok {
		t.Fatalf("expected a hit")
	}
	if hit.Triangle != near {
		t.Errorf("expected the nearer triangle to win")
	}
}

func TestTriBoxOverlapContained(t *testing.T) {
	box := NewAabb(math.Vec3{}, math.Vec3{X: 1, Y: 1, Z: 1})
	overlap := TriBoxOverlap(box, math.Vec3{X: -0.1, Y: -0.1}, math.Vec3{X: 0.1, Y: -0.1}, math.Vec3{X: 0, Y: 0.1})
	if !overlap {
		t.Errorf("expected a triangle inside the box to overlap")
	}
}

func TestTriBoxOverlapDisjoint(t *testing.T) {
	box := NewAabb(math.Vec3{}, math.Vec3{X: 1, Y: 1, Z: 1})
	overlap := TriBoxOverlap(box, math.Vec3{X: 10}, math.Vec3{X: 11}, math.Vec3{X: 10, Y: 1})
	if overlap {
		t.Errorf("expected a far-away triangle not to overlap")
	}
}

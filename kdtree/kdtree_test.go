package kdtree

import (
	"math/rand/v2"
	"testing"

	"github.com/daoo/pathtracer-sub000/geometry"
	"github.com/daoo/pathtracer-sub000/math"
	"github.com/stretchr/testify/require"
)

func triangle(x, y, z float32) *geometry.Triangle {
	return &geometry.Triangle{
		V0: math.Vec3{X: x, Y: y, Z: z},
		V1: math.Vec3{X: x + 1, Y: y, Z: z},
		V2: math.Vec3{X: x, Y: y + 1, Z: z},
		N0: math.Vec3{Z: 1}, N1: math.Vec3{Z: 1}, N2: math.Vec3{Z: 1},
	}
}

func TestBuildEmptySceneHasNoLeafTriangles(t *testing.T) {
	tree := Build(nil)
	require.Equal(t, 1, tree.NodeCount())
	require.Equal(t, 1, tree.LeafCount())
	require.Empty(t, tree.leaves[0])
}

func TestBuildSingleTriangleIsHitByRay(t *testing.T) {
	tri := triangle(0, 0, 0)
	tree := Build([]*geometry.Triangle{tri})

	ray := geometry.Ray{Origin: math.Vec3{X: 0.25, Y: 0.25, Z: -1}, Direction: math.Vec3{Z: 1}}
	hit, ok := tree.Intersect(ray, 0, 1e30)
	require.True(t, ok)
	require.Equal(t, tri, hit.Triangle)
}

func TestBuildSpreadOutTrianglesAllReachable(t *testing.T) {
	var triangles []*geometry.Triangle
	for i := 0; i < 64; i++ {
		triangles = append(triangles, triangle(float32(i)*3, 0, 0))
	}
	tree := BuildWithParams(DefaultParams(), triangles)

	for i, tri := range triangles {
		center := tri.V0.Add(tri.V1).Add(tri.V2).Mul(1.0 / 3.0)
		ray := geometry.Ray{Origin: math.Vec3{X: center.X, Y: 0.1, Z: -10}, Direction: math.Vec3{Z: 1}}
		hit, ok := tree.Intersect(ray, 0, 1e30)
		require.True(t, ok, "triangle %d unreachable", i)
		require.Equal(t, tri, hit.Triangle)
	}
}

func TestAnyIntersectShadowQuery(t *testing.T) {
	tri := triangle(0, 0, 0)
	tree := Build([]*geometry.Triangle{tri})

	blocked := geometry.Ray{Origin: math.Vec3{X: 0.25, Y: 0.25, Z: -1}, Direction: math.Vec3{Z: 2}}
	require.True(t, tree.AnyIntersect(blocked, 0, 1))

	clear := geometry.Ray{Origin: math.Vec3{X: 100, Y: 100, Z: -1}, Direction: math.Vec3{Z: 2}}
	require.False(t, tree.AnyIntersect(clear, 0, 1))
}

func TestPartitionNeverDropsAStraddlingTriangle(t *testing.T) {
	box := Box{
		Boundary:  geometry.NewAabb(math.Vec3{}, math.Vec3{X: 2, Y: 2, Z: 2}),
		Triangles: []*geometry.Triangle{triangle(-0.5, -0.5, 0)},
	}
	left, right := partition(box, geometry.Aap{Axis: geometry.X, Distance: 0}, Left)
	require.GreaterOrEqual(t, len(left.Triangles)+len(right.Triangles), len(box.Triangles))
}

func TestPartitionAssignsPlanarTriangleToChosenSide(t *testing.T) {
	// The triangle lies entirely in the z=0 plane, so it must land on
	// exactly the side the cost model picked, never both.
	box := Box{
		Boundary:  geometry.NewAabb(math.Vec3{}, math.Vec3{X: 2, Y: 2, Z: 2}),
		Triangles: []*geometry.Triangle{triangle(-0.5, -0.5, 0)},
	}
	plane := geometry.Aap{Axis: geometry.Z, Distance: 0}

	left, right := partition(box, plane, Left)
	require.Len(t, left.Triangles, 1)
	require.Empty(t, right.Triangles)

	left, right = partition(box, plane, Right)
	require.Empty(t, left.Triangles)
	require.Len(t, right.Triangles, 1)
}

func TestCostForPlaneTiesFavorLeft(t *testing.T) {
	params := DefaultParams()
	parent := geometry.NewAabb(math.Vec3{}, math.Vec3{X: 1, Y: 1, Z: 1})
	plane := geometry.Aap{Axis: geometry.X, Distance: 0}
	cost := params.costForPlane(parent, plane, 1, 1, 0)
	require.Equal(t, Left, cost.Side)
}

func cubeTriangles() []*geometry.Triangle {
	quad := func(a, b, c, d, n math.Vec3) []*geometry.Triangle {
		return []*geometry.Triangle{
			{V0: a, V1: b, V2: c, N0: n, N1: n, N2: n},
			{V0: a, V1: c, V2: d, N0: n, N1: n, N2: n},
		}
	}
	h := float32(0.5)
	var tris []*geometry.Triangle
	// +z and -z faces.
	tris = append(tris, quad(math.Vec3{X: -h, Y: -h, Z: h}, math.Vec3{X: h, Y: -h, Z: h}, math.Vec3{X: h, Y: h, Z: h}, math.Vec3{X: -h, Y: h, Z: h}, math.Vec3{Z: 1})...)
	tris = append(tris, quad(math.Vec3{X: -h, Y: -h, Z: -h}, math.Vec3{X: -h, Y: h, Z: -h}, math.Vec3{X: h, Y: h, Z: -h}, math.Vec3{X: h, Y: -h, Z: -h}, math.Vec3{Z: -1})...)
	// +x and -x faces.
	tris = append(tris, quad(math.Vec3{X: h, Y: -h, Z: -h}, math.Vec3{X: h, Y: h, Z: -h}, math.Vec3{X: h, Y: h, Z: h}, math.Vec3{X: h, Y: -h, Z: h}, math.Vec3{X: 1})...)
	tris = append(tris, quad(math.Vec3{X: -h, Y: -h, Z: -h}, math.Vec3{X: -h, Y: -h, Z: h}, math.Vec3{X: -h, Y: h, Z: h}, math.Vec3{X: -h, Y: h, Z: -h}, math.Vec3{X: -1})...)
	// +y and -y faces.
	tris = append(tris, quad(math.Vec3{X: -h, Y: h, Z: -h}, math.Vec3{X: -h, Y: h, Z: h}, math.Vec3{X: h, Y: h, Z: h}, math.Vec3{X: h, Y: h, Z: -h}, math.Vec3{Y: 1})...)
	tris = append(tris, quad(math.Vec3{X: -h, Y: -h, Z: -h}, math.Vec3{X: h, Y: -h, Z: -h}, math.Vec3{X: h, Y: -h, Z: h}, math.Vec3{X: -h, Y: -h, Z: h}, math.Vec3{Y: -1})...)
	return tris
}

func TestUnitCubeFrontFaceHit(t *testing.T) {
	tree := Build(cubeTriangles())

	ray := geometry.Ray{Origin: math.Vec3{Z: 2}, Direction: math.Vec3{Z: -1}}
	hit, ok := tree.Intersect(ray, 0, 1e30)
	require.True(t, ok)
	require.InDelta(t, 1.5, hit.T, 1e-5)

	n := hit.Normal()
	require.InDelta(t, 0, n.X, 1e-6)
	require.InDelta(t, 0, n.Y, 1e-6)
	require.InDelta(t, 1, n.Z, 1e-6)
}

func TestBestSplitSeparatesGappedTriangles(t *testing.T) {
	// Two triangles separated along +x by a gap: the winning plane lies
	// in the gap and each child leaf holds exactly one triangle.
	a := triangle(0, 0, 0)
	b := triangle(3, 0, 0.5)
	tree := Build([]*geometry.Triangle{a, b})

	root := tree.nodes[0]
	require.False(t, root.IsLeaf())
	require.GreaterOrEqual(t, root.Split(), float32(1))
	require.LessOrEqual(t, root.Split(), float32(3))

	for _, leaf := range tree.leaves {
		require.LessOrEqual(t, len(leaf), 1)
	}
}

func TestTraversalAgreesWithBruteForce(t *testing.T) {
	rng := rand.New(rand.NewPCG(42, 42))
	next := func() float32 { return float32(rng.Float64())*10 - 5 }

	var triangles []*geometry.Triangle
	for i := 0; i < 128; i++ {
		v0 := math.Vec3{X: next(), Y: next(), Z: next()}
		v1 := v0.Add(math.Vec3{X: float32(rng.Float64()), Y: float32(rng.Float64())})
		v2 := v0.Add(math.Vec3{Y: float32(rng.Float64()), Z: float32(rng.Float64())})
		n := v1.Sub(v0).Cross(v2.Sub(v0)).Normalize()
		triangles = append(triangles, &geometry.Triangle{V0: v0, V1: v1, V2: v2, N0: n, N1: n, N2: n})
	}
	tree := Build(triangles)

	for i := 0; i < 256; i++ {
		ray := geometry.Ray{
			Origin:    math.Vec3{X: next(), Y: next(), Z: -20},
			Direction: math.Vec3{X: float32(rng.Float64()) - 0.5, Y: float32(rng.Float64()) - 0.5, Z: 1}.Normalize(),
		}

		want, wantOk := geometry.FindClosest(triangles, ray, 0, 1e30)
		got, gotOk := tree.Intersect(ray, 0, 1e30)
		require.Equal(t, wantOk, gotOk, "ray %d", i)
		if wantOk {
			require.Equal(t, want.Triangle, got.Triangle, "ray %d", i)
			require.Equal(t, want.T, got.T, "ray %d", i)
		}

		again, againOk := tree.Intersect(ray, 0, 1e30)
		require.Equal(t, gotOk, againOk)
		if gotOk {
			require.Equal(t, got.T, again.T)
		}
	}
}

func TestEveryTriangleReachesSomeLeaf(t *testing.T) {
	triangles := cubeTriangles()
	tree := Build(triangles)

	inLeaf := map[*geometry.Triangle]bool{}
	for _, leaf := range tree.leaves {
		for _, tri := range leaf {
			inLeaf[tri] = true
		}
	}
	for i, tri := range triangles {
		require.True(t, inLeaf[tri], "triangle %d missing from every leaf", i)
	}
}

package scene

import (
	"fmt"

	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"

	"github.com/daoo/pathtracer-sub000/geometry"
	"github.com/daoo/pathtracer-sub000/material"
	"github.com/daoo/pathtracer-sub000/math"
)

// LoadGLTF opens a .glb or .gltf file and flattens its node hierarchy into
// world-space triangles: each node's TRS transform composes down to its
// mesh primitives, base-colour factors recover a MaterialDesc per
// primitive, and every triangle's Tag is set from material.Translate. This
// is a second, independent way to produce the triangles the core
// consumes; the integrator cannot tell which loader produced its input.
func LoadGLTF(path string) (Data, error) {
	doc, err := gltf.Open(path)
	if err != nil {
		return Data{}, fmt.Errorf("gltf open %q: %w", path, err)
	}

	matTags := make([]material.Material, len(doc.Materials))
	for i, gm := range doc.Materials {
		desc := material.Desc{Name: gm.Name, Diffuse: math.Vec3{X: 0.8, Y: 0.8, Z: 0.8}}
		if pbr := gm.PBRMetallicRoughness; pbr != nil {
			cf := pbr.BaseColorFactorOrDefault()
			desc.Diffuse = math.Vec3{X: float32(cf[0]), Y: float32(cf[1]), Z: float32(cf[2])}
			metallic := float32(pbr.MetallicFactorOrDefault())
			desc.Specular = math.Vec3{X: metallic, Y: metallic, Z: metallic}
		}
		matTags[i] = material.Translate(desc)
	}
	defaultTag := material.Translate(material.Desc{Diffuse: math.Vec3{X: 0.8, Y: 0.8, Z: 0.8}})

	var triangles []*geometry.Triangle

	var visit func(nodeIdx int, parent math.Mat4)
	visit = func(nodeIdx int, parent math.Mat4) {
		gn := doc.Nodes[nodeIdx]
		world := nodeLocalMatrix(gn).Mul(parent)

		if gn.Mesh != nil {
			mesh := doc.Meshes[*gn.Mesh]
			for _, prim := range mesh.Primitives {
				tag := defaultTag
				if prim.Material != nil && *prim.Material < len(matTags) {
					tag = matTags[*prim.Material]
				}
				tris, err := loadGLTFPrimitive(doc, *prim, world, tag)
				if err != nil {
					continue
				}
				triangles = append(triangles, tris...)
			}
		}

		for _, childIdx := range gn.Children {
			visit(childIdx, world)
		}
	}

	roots := doc.Nodes
	hasParent := make([]bool, len(roots))
	for _, gn := range doc.Nodes {
		for _, c := range gn.Children {
			if c < len(hasParent) {
				hasParent[c] = true
			}
		}
	}
	for i := range roots {
		if !hasParent[i] {
			visit(i, math.Mat4Identity())
		}
	}

	if len(triangles) == 0 {
		return Data{}, fmt.Errorf("no geometry found in %q", path)
	}
	return Data{Triangles: triangles}, nil
}

func nodeLocalMatrix(gn *gltf.Node) math.Mat4 {
	t := gn.TranslationOrDefault()
	translation := math.Vec3{X: float32(t[0]), Y: float32(t[1]), Z: float32(t[2])}

	s := gn.ScaleOrDefault()
	scale := math.Vec3{X: float32(s[0]), Y: float32(s[1]), Z: float32(s[2])}

	r := gn.RotationOrDefault()
	rotation := math.Quaternion{X: float32(r[0]), Y: float32(r[1]), Z: float32(r[2]), W: float32(r[3])}

	return math.Mat4Scale(scale).Mul(rotation.ToMat4()).Mul(math.Mat4Translation(translation))
}

// loadGLTFPrimitive reads one mesh primitive's indexed triangle list and
// transforms every vertex and (renormalized) normal into world space.
func loadGLTFPrimitive(doc *gltf.Document, prim gltf.Primitive, world math.Mat4, tag material.Material) ([]*geometry.Triangle, error) {
	posIdx, ok := prim.Attributes["POSITION"]
	if !ok {
		return nil, fmt.Errorf("no POSITION attribute")
	}
	positions, err := modeler.ReadPosition(doc, doc.Accessors[posIdx], nil)
	if err != nil {
		return nil, fmt.Errorf("positions: %w", err)
	}

	var rawNormals [][3]float32
	if idx, ok := prim.Attributes["NORMAL"]; ok {
		rawNormals, _ = modeler.ReadNormal(doc, doc.Accessors[idx], nil)
	}

	var rawUVs [][2]float32
	if idx, ok := prim.Attributes["TEXCOORD_0"]; ok {
		rawUVs, _ = modeler.ReadTextureCoord(doc, doc.Accessors[idx], nil)
	}

	worldPos := make([]math.Vec3, len(positions))
	worldNormal := make([]math.Vec3, len(positions))
	for i, p := range positions {
		worldPos[i] = world.MulVec3(math.Vec3{X: p[0], Y: p[1], Z: p[2]})
		if i < len(rawNormals) {
			n := rawNormals[i]
			worldNormal[i] = world.MulVec3(math.Vec3{X: n[0], Y: n[1], Z: n[2]}).Sub(world.MulVec3(math.Vec3{})).Normalize()
		}
	}

	var indices []uint32
	if prim.Indices != nil {
		indices, err = modeler.ReadIndices(doc, doc.Accessors[*prim.Indices], nil)
		if err != nil {
			return nil, fmt.Errorf("indices: %w", err)
		}
	} else {
		indices = make([]uint32, len(worldPos))
		for i := range indices {
			indices[i] = uint32(i)
		}
	}

	hasNormals := len(rawNormals) > 0
	triangles := make([]*geometry.Triangle, 0, len(indices)/3)
	for i := 0; i+2 < len(indices); i += 3 {
		i0, i1, i2 := indices[i], indices[i+1], indices[i+2]
		v0, v1, v2 := worldPos[i0], worldPos[i1], worldPos[i2]

		var n0, n1, n2 math.Vec3
		if hasNormals {
			n0, n1, n2 = worldNormal[i0], worldNormal[i1], worldNormal[i2]
		} else {
			n := v1.Sub(v0).Cross(v2.Sub(v0)).Normalize()
			n0, n1, n2 = n, n, n
		}

		var uv0, uv1, uv2 math.Vec2
		if int(i0) < len(rawUVs) && int(i1) < len(rawUVs) && int(i2) < len(rawUVs) {
			uv0 = math.Vec2{X: rawUVs[i0][0], Y: rawUVs[i0][1]}
			uv1 = math.Vec2{X: rawUVs[i1][0], Y: rawUVs[i1][1]}
			uv2 = math.Vec2{X: rawUVs[i2][0], Y: rawUVs[i2][1]}
		}

		triangles = append(triangles, &geometry.Triangle{
			V0: v0, V1: v1, V2: v2,
			N0: n0, N1: n1, N2: n2,
			UV0: uv0, UV1: uv1, UV2: uv2,
			Tag: tag,
		})
	}
	return triangles, nil
}

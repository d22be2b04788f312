// Package scene assembles triangles, materials, lights and cameras from
// on-disk formats (Wavefront OBJ+MTL, glTF) into the flat data the core
// path tracer consumes, and persists camera/light placement as JSON.
package scene

import (
	"github.com/daoo/pathtracer-sub000/camera"
	"github.com/daoo/pathtracer-sub000/geometry"
	"github.com/daoo/pathtracer-sub000/light"
	"github.com/daoo/pathtracer-sub000/material"
	"github.com/daoo/pathtracer-sub000/math"
)

// MaterialDesc is the flat, textureless MTL-like description a loader
// produces and material.Translate consumes to build a layered
// material.Material. Defined as an alias of material.Desc so a loader in
// this package can construct and name the same type the rest of the
// module knows by its shorter name, without two types that mean the same
// thing.
type MaterialDesc = material.Desc

// Data is the (triangles, lights, cameras) tuple a loader produces. Every
// triangle's Tag already holds the material.Material built from its
// MaterialDesc; the core never inspects MaterialDesc itself.
type Data struct {
	Triangles []*geometry.Triangle
	Lights    []light.Sphere
	Cameras   []camera.Camera
}

// Bounds returns the axis-aligned box containing every triangle in the
// scene. The caller must ensure Triangles is non-empty.
func (d Data) Bounds() geometry.Aabb {
	box := d.Triangles[0].Bounds()
	for _, tri := range d.Triangles[1:] {
		box = unionAabb(box, tri.Bounds())
	}
	return box
}

func unionAabb(a, b geometry.Aabb) geometry.Aabb {
	return geometry.Bound([]math.Vec3{a.Min(), a.Max(), b.Min(), b.Max()})
}

// DefaultCamera returns the scene's first parsed camera if its .mtl
// scene extension defined one, else frames the whole bounding box from
// outside along its diagonal. Shared by both drivers so a scene with no
// "newcamera" block still renders something reasonable.
func DefaultCamera(d Data) camera.Camera {
	if len(d.Cameras) > 0 {
		return d.Cameras[0]
	}
	bounds := d.Bounds()
	center := bounds.Center
	radius := bounds.Half.Length()
	position := center.Add(math.Vec3{X: radius, Y: radius, Z: radius})
	return camera.NewCamera(position, center, math.Vec3{Y: 1}, 1.0472)
}

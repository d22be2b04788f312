// Package camera implements the pinhole camera model: a position,
// orthonormal basis and field of view, reduced to the affine NDC-to-ray
// basis the integrator evaluates per pixel.
package camera

import (
	stdmath "math"

	"github.com/daoo/pathtracer-sub000/geometry"
	"github.com/daoo/pathtracer-sub000/math"
)

// Camera is the user-facing description: where it is, what it looks at,
// which way is up, and its vertical field of view in radians.
type Camera struct {
	Position  math.Vec3
	Direction math.Vec3
	Up        math.Vec3
	Right     math.Vec3
	Fov       float32
}

// NewCamera derives an orthonormal basis from a look-at target.
func NewCamera(position, target, up math.Vec3, fov float32) Camera {
	direction := target.Sub(position).Normalize()
	upN := up.Normalize()
	return Camera{
		Position:  position,
		Direction: direction,
		Up:        upN,
		Right:     direction.Cross(upN).Normalize(),
		Fov:       fov,
	}
}

// Pinhole is the derived, per-aspect-ratio form of a Camera: a ray
// origin and the affine basis (mind, dx, dy) so that ray(sx, sy) is one
// vector add and two scales.
type Pinhole struct {
	Position math.Vec3
	MinDir   math.Vec3
	Dx, Dy   math.Vec3
}

// NewPinhole derives the screen-space ray basis for rendering at the
// given width/height aspect ratio.
func NewPinhole(cam Camera, aspectRatio float32) Pinhole {
	fovHalf := cam.Fov / 2
	sinHalf := float32(stdmath.Sin(float64(fovHalf)))
	cosHalf := float32(stdmath.Cos(float64(fovHalf)))

	x := cam.Up.Mul(sinHalf)
	y := cam.Right.Mul(sinHalf * aspectRatio)
	z := cam.Direction.Mul(cosHalf)

	minDir := z.Sub(y).Sub(x)

	return Pinhole{
		Position: cam.Position,
		MinDir:   minDir,
		Dx:       y.Mul(2),
		Dy:       x.Mul(2),
	}
}

// Ray casts a ray through normalized screen coordinates x, y in [0,1]^2.
func (p Pinhole) Ray(x, y float32) geometry.Ray {
	dir := p.MinDir.Add(p.Dx.Mul(x)).Add(p.Dy.Mul(y)).Normalize()
	return geometry.Ray{Origin: p.Position, Direction: dir}
}

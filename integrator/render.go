package integrator

import (
	"github.com/daoo/pathtracer-sub000/camera"
	"github.com/daoo/pathtracer-sub000/film"
	"github.com/daoo/pathtracer-sub000/sampler"
)

// RenderPass traces one jittered sample per pixel into buf and marks the
// pass complete. Callers loop this to accumulate progressively more
// samples, optionally across goroutines each owning an independent
// buffer later merged with film.Buffer.Append.
func RenderPass(scene Scene, pin camera.Pinhole, buf *film.Buffer, rng *sampler.RNG) {
	width, height := buf.Width(), buf.Height()
	fw, fh := float32(width), float32(height)

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			sx := (float32(x) + rng.Float32()) / fw
			sy := (float32(y) + rng.Float32()) / fh

			ray := pin.Ray(sx, sy)
			radiance := Trace(scene, ray, rng)

			buf.Add(x, y, radiance)
		}
	}

	buf.Inc()
}

// Package imageio writes a film.Buffer to disk: divide by sample count,
// apply display gamma, encode as PNG.
package imageio

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	stdmath "math"
	"os"
	"path/filepath"

	"github.com/daoo/pathtracer-sub000/film"
)

// Options controls how a Buffer is tone-mapped before encoding. The zero
// value is not valid; use DefaultOptions.
type Options struct {
	// Gamma is the display gamma applied as pow(1/Gamma) to each
	// tone-mapped linear channel before quantizing to 8 bits.
	Gamma float32
}

// DefaultOptions matches the gamma this pathtracer's sample buffer has
// always written images with.
func DefaultOptions() Options {
	return Options{Gamma: 2.2}
}

// WritePNG divides buf by its sample count, applies opts.Gamma, and
// writes an 8-bit RGB PNG to path, creating parent directories as
// needed.
func WritePNG(path string, buf *film.Buffer, opts Options) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create output directory for %q: %w", path, err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %q: %w", path, err)
	}
	defer f.Close()

	img := toImage(buf, opts)
	if err := png.Encode(f, img); err != nil {
		return fmt.Errorf("encode png %q: %w", path, err)
	}
	return nil
}

func toImage(buf *film.Buffer, opts Options) *image.RGBA {
	width, height := buf.Width(), buf.Height()
	img := image.NewRGBA(image.Rect(0, 0, width, height))

	samples := float32(buf.Samples())
	if samples <= 0 {
		samples = 1
	}
	invGamma := 1.0 / float64(opts.Gamma)

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			c := buf.Get(x, y).Mul(1 / samples)
			img.Set(x, y, color.RGBA{
				R: toneMap(c.X, invGamma),
				G: toneMap(c.Y, invGamma),
				B: toneMap(c.Z, invGamma),
				A: 255,
			})
		}
	}
	return img
}

func toneMap(v float32, invGamma float64) uint8 {
	if v < 0 {
		v = 0
	}
	if v > 1 {
		v = 1
	}
	mapped := stdmath.Pow(float64(v), invGamma)
	return uint8(mapped*255 + 0.5)
}

// Package film holds the progressive sample buffer workers accumulate
// into and the driver merges and tone-maps for output.
package film

import "github.com/daoo/pathtracer-sub000/math"

// Buffer is a row-major width x height grid of accumulated radiance plus
// a monotonically increasing sample count; the displayable pixel is
// cell/samples.
type Buffer struct {
	width, height int
	samples       int
	pixels        []math.Vec3
}

// NewBuffer allocates a black buffer of the given size. Width and height
// must both be greater than 0.
func NewBuffer(width, height int) *Buffer {
	if width <= 0 || height <= 0 {
		panic("film: buffer dimensions must be positive")
	}
	return &Buffer{width: width, height: height, pixels: make([]math.Vec3, width*height)}
}

func (b *Buffer) Width() int  { return b.width }
func (b *Buffer) Height() int { return b.height }

// Samples is the number of completed full-resolution passes.
func (b *Buffer) Samples() int { return b.samples }

// Inc marks one more full-resolution pass complete.
func (b *Buffer) Inc() { b.samples++ }

// Get returns the raw accumulated radiance at (x, y), before dividing by
// Samples.
func (b *Buffer) Get(x, y int) math.Vec3 {
	return b.pixels[y*b.width+x]
}

// Add accumulates v into the pixel at (x, y).
func (b *Buffer) Add(x, y int, v math.Vec3) {
	b.pixels[y*b.width+x] = b.pixels[y*b.width+x].Add(v)
}

// Append folds other into b: pixel-wise radiance sum plus sample counts.
// Both buffers must share the same dimensions. This is the sole merge
// point workers' independent buffers go through.
func (b *Buffer) Append(other *Buffer) {
	if b.width != other.width || b.height != other.height {
		panic("film: Append requires matching buffer dimensions")
	}
	for i := range b.pixels {
		b.pixels[i] = b.pixels[i].Add(other.pixels[i])
	}
	b.samples += other.samples
}

// Snapshot returns a read-only copy of the buffer's current pixel
// contents and sample count, safe to hand to a concurrent reader (the
// live preview driver) without synchronizing against in-progress Add
// calls on the original.
func (b *Buffer) Snapshot() *Buffer {
	copied := make([]math.Vec3, len(b.pixels))
	copy(copied, b.pixels)
	return &Buffer{width: b.width, height: b.height, samples: b.samples, pixels: copied}
}

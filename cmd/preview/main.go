// Command preview opens a window and renders an OBJ+MTL scene
// progressively, blitting the in-progress film.Buffer to screen once per
// completed sample pass. This is additive to the core path tracer: it
// touches the sample buffer only through film.Buffer.Snapshot, a
// read-only copy, and is not required for a correct render — pathtrace
// alone produces the final PNG.
package main

import (
	"fmt"
	"os"

	gl "github.com/go-gl/gl/v4.1-core/gl"

	"github.com/daoo/pathtracer-sub000/camera"
	"github.com/daoo/pathtracer-sub000/core"
	"github.com/daoo/pathtracer-sub000/film"
	"github.com/daoo/pathtracer-sub000/integrator"
	"github.com/daoo/pathtracer-sub000/internal/opengl"
	"github.com/daoo/pathtracer-sub000/kdtree"
	"github.com/daoo/pathtracer-sub000/sampler"
	"github.com/daoo/pathtracer-sub000/scene"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(args []string) error {
	if len(args) != 2 {
		return fmt.Errorf("usage: preview obj mtl")
	}

	data, err := scene.LoadOBJWithMTL(args[0], args[1])
	if err != nil {
		return fmt.Errorf("load scene: %w", err)
	}
	tree := kdtree.Build(data.Triangles)
	renderScene := integrator.Scene{Tree: tree, Lights: data.Lights}

	window, err := core.NewWindow(core.DefaultWindowConfig())
	if err != nil {
		return fmt.Errorf("open window: %w", err)
	}
	defer window.Destroy()

	if err := gl.Init(); err != nil {
		return fmt.Errorf("init gl: %w", err)
	}

	width, height := window.GetFramebufferSize()
	prev, err := opengl.NewPreview(width, height)
	if err != nil {
		return fmt.Errorf("init preview: %w", err)
	}

	cam := scene.DefaultCamera(data)
	pin := camera.NewPinhole(cam, float32(width)/float32(height))
	buf := film.NewBuffer(width, height)
	rng := sampler.NewRNG(1, 1)

	gl.Viewport(0, 0, int32(width), int32(height))
	for !window.ShouldClose() {
		integrator.RenderPass(renderScene, pin, buf, rng)

		prev.Upload(buf.Snapshot())
		gl.Clear(gl.COLOR_BUFFER_BIT)
		prev.Draw()

		window.SwapBuffers()
		window.PollEvents()
	}
	return nil
}

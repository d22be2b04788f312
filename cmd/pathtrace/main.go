// Command pathtrace renders an OBJ+MTL scene with the kd-tree path
// tracer and writes the result as a PNG.
//
// Usage: pathtrace obj mtl out width height samples threads
package main

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"sync"

	"github.com/daoo/pathtracer-sub000/camera"
	"github.com/daoo/pathtracer-sub000/film"
	"github.com/daoo/pathtracer-sub000/imageio"
	"github.com/daoo/pathtracer-sub000/integrator"
	"github.com/daoo/pathtracer-sub000/kdtree"
	"github.com/daoo/pathtracer-sub000/sampler"
	"github.com/daoo/pathtracer-sub000/scene"
)

// Config is the CLI's parsed positional arguments, passed by value to
// the render driver rather than kept as global mutable state.
type Config struct {
	ObjPath, MtlPath, OutPath string
	Width, Height             int
	Samples, Threads          int
}

// Verbose gates progress diagnostics.
var Verbose = true

const usage = "usage: pathtrace obj mtl out width height samples threads"

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	cfg, err := parseConfig(args)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		fmt.Fprintln(os.Stderr, usage)
		return 1
	}

	if _, err := os.Stat(cfg.ObjPath); err != nil {
		fmt.Fprintf(os.Stderr, "obj file %q: %v\n", cfg.ObjPath, err)
		return 2
	}
	if _, err := os.Stat(cfg.MtlPath); err != nil {
		fmt.Fprintf(os.Stderr, "mtl file %q: %v\n", cfg.MtlPath, err)
		return 2
	}

	if err := render(cfg); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 3
	}
	return 0
}

func parseConfig(args []string) (Config, error) {
	if len(args) != 7 {
		return Config{}, fmt.Errorf("expected 7 arguments, got %d", len(args))
	}

	width, err := strconv.Atoi(args[3])
	if err != nil || width <= 0 {
		return Config{}, fmt.Errorf("invalid width %q", args[3])
	}
	height, err := strconv.Atoi(args[4])
	if err != nil || height <= 0 {
		return Config{}, fmt.Errorf("invalid height %q", args[4])
	}
	samples, err := strconv.Atoi(args[5])
	if err != nil || samples <= 0 {
		return Config{}, fmt.Errorf("invalid samples %q", args[5])
	}
	threads, err := strconv.Atoi(args[6])
	if err != nil || threads <= 0 {
		return Config{}, fmt.Errorf("invalid threads %q", args[6])
	}

	return Config{
		ObjPath: args[0], MtlPath: args[1], OutPath: args[2],
		Width: width, Height: height, Samples: samples, Threads: threads,
	}, nil
}

func render(cfg Config) error {
	data, err := scene.LoadOBJWithMTL(cfg.ObjPath, cfg.MtlPath)
	if err != nil {
		return fmt.Errorf("load scene: %w", err)
	}
	if Verbose {
		log.Printf("loaded %d triangles, %d lights, %d cameras", len(data.Triangles), len(data.Lights), len(data.Cameras))
	}

	tree := kdtree.Build(data.Triangles)
	if Verbose {
		log.Printf("built kd-tree: %d nodes, %d leaves", tree.NodeCount(), tree.LeafCount())
	}

	cam := scene.DefaultCamera(data)
	pin := camera.NewPinhole(cam, float32(cfg.Width)/float32(cfg.Height))
	renderScene := integrator.Scene{Tree: tree, Lights: data.Lights}

	result := renderPasses(renderScene, pin, cfg)

	if err := imageio.WritePNG(cfg.OutPath, result, imageio.DefaultOptions()); err != nil {
		return fmt.Errorf("write image: %w", err)
	}
	if Verbose {
		log.Printf("wrote %s (%d samples/pixel)", cfg.OutPath, result.Samples())
	}
	return nil
}

// renderPasses spawns cfg.Threads goroutines, each owning an independent
// film.Buffer and sampler.RNG, splitting cfg.Samples passes roughly
// evenly across them, then folds every worker buffer into one result on
// the calling goroutine via film.Buffer.Append — the sole merge point.
func renderPasses(scn integrator.Scene, pin camera.Pinhole, cfg Config) *film.Buffer {
	result := film.NewBuffer(cfg.Width, cfg.Height)

	var wg sync.WaitGroup
	buffers := make([]*film.Buffer, cfg.Threads)

	for worker := 0; worker < cfg.Threads; worker++ {
		passes := cfg.Samples / cfg.Threads
		if worker < cfg.Samples%cfg.Threads {
			passes++
		}

		wg.Add(1)
		go func(worker, passes int) {
			defer wg.Done()
			buf := film.NewBuffer(cfg.Width, cfg.Height)
			rng := sampler.NewRNG(uint64(worker)+1, uint64(worker)*2+1)
			for i := 0; i < passes; i++ {
				integrator.RenderPass(scn, pin, buf, rng)
			}
			buffers[worker] = buf
		}(worker, passes)
	}
	wg.Wait()

	for _, buf := range buffers {
		result.Append(buf)
	}
	return result
}

// Package core holds the few types shared across the live preview: the
// GLFW window wrapper go-gl's OpenGL context attaches to.
package core

import (
	"fmt"
	"runtime"

	"github.com/go-gl/glfw/v3.3/glfw"
)

func init() {
	runtime.LockOSThread()
}

// Window wraps a GLFW window carrying an OpenGL 4.1 core-profile context,
// the surface the preview blits its quad into.
type Window struct {
	Handle *glfw.Window
	Width  int
	Height int
	Title  string
}

type WindowConfig struct {
	Width     int
	Height    int
	Title     string
	Resizable bool
	VSync     bool
}

func DefaultWindowConfig() WindowConfig {
	return WindowConfig{Width: 1280, Height: 720, Title: "pathtrace preview", VSync: true}
}

// NewWindow opens a GLFW window with an OpenGL 4.1 core-profile context
// current on the calling goroutine.
func NewWindow(config WindowConfig) (*Window, error) {
	if err := glfw.Init(); err != nil {
		return nil, fmt.Errorf("glfw init: %w", err)
	}

	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	glfw.WindowHint(glfw.Resizable, boolToInt(config.Resizable))

	handle, err := glfw.CreateWindow(config.Width, config.Height, config.Title, nil, nil)
	if err != nil {
		glfw.Terminate()
		return nil, fmt.Errorf("create window: %w", err)
	}
	handle.MakeContextCurrent()
	if config.VSync {
		glfw.SwapInterval(1)
	}

	window := &Window{Handle: handle, Width: config.Width, Height: config.Height, Title: config.Title}
	handle.SetSizeCallback(func(w *glfw.Window, width, height int) {
		window.Width = width
		window.Height = height
	})
	return window, nil
}

func (w *Window) ShouldClose() bool              { return w.Handle.ShouldClose() }
func (w *Window) PollEvents()                    { glfw.PollEvents() }
func (w *Window) SwapBuffers()                   { w.Handle.SwapBuffers() }
func (w *Window) GetFramebufferSize() (int, int) { return w.Handle.GetFramebufferSize() }
func (w *Window) Destroy() {
	w.Handle.Destroy()
	glfw.Terminate()
}

func (w *Window) IsKeyPressed(key glfw.Key) bool {
	return w.Handle.GetKey(key) == glfw.Press
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

// Package opengl drives the live preview window: a single full-screen
// textured quad, re-uploaded from a film.Buffer snapshot once per
// completed render pass. Trimmed from a full real-time PBR renderer down
// to the one draw call the preview needs.
package opengl

import (
	"fmt"
	stdmath "math"
	"strings"
	"unsafe"

	gl "github.com/go-gl/gl/v4.1-core/gl"

	"github.com/daoo/pathtracer-sub000/film"
)

const (
	vertexShaderSrc = `
#version 410
layout(location = 0) in vec2 pos;
out vec2 uv;
void main() {
	uv = (pos + 1.0) * 0.5;
	gl_Position = vec4(pos, 0.0, 1.0);
}
` + "\x00"

	fragmentShaderSrc = `
#version 410
in vec2 uv;
out vec4 outColor;
uniform sampler2D tex;
void main() {
	outColor = vec4(texture(tex, uv).rgb, 1.0);
}
` + "\x00"
)

// Preview owns the GPU-side state for blitting a film.Buffer to a window:
// one shader program, one quad VAO, one texture re-uploaded per frame.
type Preview struct {
	program       uint32
	vao           uint32
	texture       uint32
	width, height int
}

// NewPreview compiles the blit shader and allocates a width x height
// texture. The OpenGL context must be current on the calling goroutine.
func NewPreview(width, height int) (*Preview, error) {
	prog, err := newProgram(vertexShaderSrc, fragmentShaderSrc)
	if err != nil {
		return nil, fmt.Errorf("preview shader: %w", err)
	}

	quad := []float32{
		-1, -1, 1, -1, -1, 1,
		-1, 1, 1, -1, 1, 1,
	}
	var vao, vbo uint32
	gl.GenVertexArrays(1, &vao)
	gl.GenBuffers(1, &vbo)
	gl.BindVertexArray(vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(quad)*4, unsafe.Pointer(&quad[0]), gl.STATIC_DRAW)
	gl.VertexAttribPointer(0, 2, gl.FLOAT, false, 0, nil)
	gl.EnableVertexAttribArray(0)
	gl.BindVertexArray(0)

	var tex uint32
	gl.GenTextures(1, &tex)
	gl.BindTexture(gl.TEXTURE_2D, tex)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.BindTexture(gl.TEXTURE_2D, 0)

	return &Preview{program: prog, vao: vao, texture: tex, width: width, height: height}, nil
}

// Upload tone-maps a buffer snapshot (gamma 1/2.2, same as imageio.WritePNG)
// and re-uploads it as the quad's texture.
func (p *Preview) Upload(buf *film.Buffer) {
	pixels := make([]uint8, p.width*p.height*3)
	samples := float32(buf.Samples())
	if samples <= 0 {
		samples = 1
	}
	const invGamma = 1.0 / 2.2

	for y := 0; y < p.height; y++ {
		for x := 0; x < p.width; x++ {
			c := buf.Get(x, y).Mul(1 / samples)
			i := (y*p.width + x) * 3
			pixels[i+0] = toSRGB(c.X, invGamma)
			pixels[i+1] = toSRGB(c.Y, invGamma)
			pixels[i+2] = toSRGB(c.Z, invGamma)
		}
	}

	gl.BindTexture(gl.TEXTURE_2D, p.texture)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGB, int32(p.width), int32(p.height), 0, gl.RGB, gl.UNSIGNED_BYTE, unsafe.Pointer(&pixels[0]))
	gl.BindTexture(gl.TEXTURE_2D, 0)
}

// Draw issues the single full-screen-quad draw call for the current frame.
func (p *Preview) Draw() {
	gl.UseProgram(p.program)
	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_2D, p.texture)
	gl.Uniform1i(gl.GetUniformLocation(p.program, gl.Str("tex\x00")), 0)
	gl.BindVertexArray(p.vao)
	gl.DrawArrays(gl.TRIANGLES, 0, 6)
	gl.BindVertexArray(0)
}

func toSRGB(v, invGamma float32) uint8 {
	if v < 0 {
		v = 0
	}
	if v > 1 {
		v = 1
	}
	mapped := float32(stdmath.Pow(float64(v), float64(invGamma)))
	return uint8(mapped*255 + 0.5)
}

func newProgram(vertSrc, fragSrc string) (uint32, error) {
	vert, err := compileShader(vertSrc, gl.VERTEX_SHADER)
	if err != nil {
		return 0, fmt.Errorf("vertex: %w", err)
	}
	frag, err := compileShader(fragSrc, gl.FRAGMENT_SHADER)
	if err != nil {
		return 0, fmt.Errorf("fragment: %w", err)
	}

	prog := gl.CreateProgram()
	gl.AttachShader(prog, vert)
	gl.AttachShader(prog, frag)
	gl.LinkProgram(prog)

	var status int32
	gl.GetProgramiv(prog, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLen int32
		gl.GetProgramiv(prog, gl.INFO_LOG_LENGTH, &logLen)
		log := strings.Repeat("\x00", int(logLen+1))
		gl.GetProgramInfoLog(prog, logLen, nil, gl.Str(log))
		return 0, fmt.Errorf("link failed: %v", log)
	}

	gl.DeleteShader(vert)
	gl.DeleteShader(frag)
	return prog, nil
}

func compileShader(src string, shaderType uint32) (uint32, error) {
	shader := gl.CreateShader(shaderType)
	csrc, free := gl.Strs(src)
	gl.ShaderSource(shader, 1, csrc, nil)
	free()
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLen int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLen)
		log := strings.Repeat("\x00", int(logLen+1))
		gl.GetShaderInfoLog(shader, logLen, nil, gl.Str(log))
		return 0, fmt.Errorf("compile failed: %v", log)
	}
	return shader, nil
}

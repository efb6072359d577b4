package opengl

import (
	"fmt"
	"strings"

	gl "github.com/go-gl/gl/v3.3-core/gl"

	"glprimer/core"
	"glprimer/math"
)

// Context is the process-wide OpenGL state machine as seen by the renderer.
// Every call mutates or reads global GPU state (bound buffer, vertex array,
// program), so callers are responsible for ordering: bind before attribute
// setup, activate the program before uniform upload, bind the vertex array
// before drawing. Not safe for use from more than one goroutine.
type Context interface {
	GenVertexArray() uint32
	BindVertexArray(vao uint32)
	DeleteVertexArray(vao uint32)

	GenBuffer() uint32
	BindBuffer(target, buffer uint32)
	BufferFloats(target uint32, data []float32)
	BufferIndices(target uint32, data []uint32)
	DeleteBuffer(buffer uint32)
	VertexAttribPointer(slot uint32, components int32)
	EnableVertexAttribArray(slot uint32)

	LinkProgram(vertSrc, fragSrc string) (uint32, error)
	UseProgram(program uint32)
	DeleteProgram(program uint32)
	UniformLocation(program uint32, name string) int32
	UniformMatrix4(location int32, m math.Mat4)
	Uniform1f(location int32, v float32)

	Clear(color core.Color)
	Viewport(width, height int)
	Enable(capability uint32)
	Disable(capability uint32)
	PolygonMode(mode uint32)
	DrawElements(mode uint32, count int32)
}

// GL implements Context on top of the go-gl bindings. The zero value is
// ready once Init has succeeded with a current context.
type GL struct{}

// Init loads the OpenGL function pointers. Must be called after the GLFW
// window context is made current.
func (GL) Init() error {
	if err := gl.Init(); err != nil {
		return fmt.Errorf("failed to initialize OpenGL: %w", err)
	}
	return nil
}

// Info returns the vendor, renderer and version strings of the context.
func (GL) Info() (vendor, renderer, version string) {
	return gl.GoStr(gl.GetString(gl.VENDOR)),
		gl.GoStr(gl.GetString(gl.RENDERER)),
		gl.GoStr(gl.GetString(gl.VERSION))
}

func (GL) GenVertexArray() uint32 {
	var vao uint32
	gl.GenVertexArrays(1, &vao)
	return vao
}

func (GL) BindVertexArray(vao uint32) { gl.BindVertexArray(vao) }

func (GL) DeleteVertexArray(vao uint32) { gl.DeleteVertexArrays(1, &vao) }

func (GL) GenBuffer() uint32 {
	var buf uint32
	gl.GenBuffers(1, &buf)
	return buf
}

func (GL) BindBuffer(target, buffer uint32) { gl.BindBuffer(target, buffer) }

func (GL) BufferFloats(target uint32, data []float32) {
	if len(data) == 0 {
		gl.BufferData(target, 0, nil, gl.STATIC_DRAW)
		return
	}
	gl.BufferData(target, len(data)*4, gl.Ptr(data), gl.STATIC_DRAW)
}

func (GL) BufferIndices(target uint32, data []uint32) {
	if len(data) == 0 {
		gl.BufferData(target, 0, nil, gl.STATIC_DRAW)
		return
	}
	gl.BufferData(target, len(data)*4, gl.Ptr(data), gl.STATIC_DRAW)
}

func (GL) DeleteBuffer(buffer uint32) { gl.DeleteBuffers(1, &buffer) }

// VertexAttribPointer describes tightly packed float components in the
// currently bound array buffer.
func (GL) VertexAttribPointer(slot uint32, components int32) {
	gl.VertexAttribPointer(slot, components, gl.FLOAT, false, 0, gl.PtrOffset(0))
}

func (GL) EnableVertexAttribArray(slot uint32) { gl.EnableVertexAttribArray(slot) }

func (GL) LinkProgram(vertSrc, fragSrc string) (uint32, error) {
	return newProgram(vertSrc, fragSrc)
}

func (GL) UseProgram(program uint32) { gl.UseProgram(program) }

func (GL) DeleteProgram(program uint32) { gl.DeleteProgram(program) }

func (GL) UniformLocation(program uint32, name string) int32 {
	return gl.GetUniformLocation(program, gl.Str(name+"\x00"))
}

// UniformMatrix4 uploads m as-is; Mat4 is already column-major.
func (GL) UniformMatrix4(location int32, m math.Mat4) {
	gl.UniformMatrix4fv(location, 1, false, &m[0])
}

func (GL) Uniform1f(location int32, v float32) { gl.Uniform1f(location, v) }

func (GL) Clear(color core.Color) {
	gl.ClearColor(color.R, color.G, color.B, color.A)
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
}

func (GL) Viewport(width, height int) { gl.Viewport(0, 0, int32(width), int32(height)) }

func (GL) Enable(capability uint32) { gl.Enable(capability) }

func (GL) Disable(capability uint32) { gl.Disable(capability) }

func (GL) PolygonMode(mode uint32) { gl.PolygonMode(gl.FRONT_AND_BACK, mode) }

func (GL) DrawElements(mode uint32, count int32) {
	gl.DrawElements(mode, count, gl.UNSIGNED_INT, nil)
}

// ── Shader helpers ────────────────────────────────────────────────────────────

func newProgram(vertSrc, fragSrc string) (uint32, error) {
	vert, err := compileShader(vertSrc, gl.VERTEX_SHADER)
	if err != nil {
		return 0, fmt.Errorf("vertex: %w", err)
	}
	frag, err := compileShader(fragSrc, gl.FRAGMENT_SHADER)
	if err != nil {
		gl.DeleteShader(vert)
		return 0, fmt.Errorf("fragment: %w", err)
	}

	prog := gl.CreateProgram()
	gl.AttachShader(prog, vert)
	gl.AttachShader(prog, frag)
	gl.LinkProgram(prog)

	gl.DeleteShader(vert)
	gl.DeleteShader(frag)

	var status int32
	gl.GetProgramiv(prog, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLen int32
		gl.GetProgramiv(prog, gl.INFO_LOG_LENGTH, &logLen)
		log := strings.Repeat("\x00", int(logLen+1))
		gl.GetProgramInfoLog(prog, logLen, nil, gl.Str(log))
		gl.DeleteProgram(prog)
		return 0, fmt.Errorf("link failed: %v", strings.TrimRight(log, "\x00"))
	}
	return prog, nil
}

func compileShader(src string, shaderType uint32) (uint32, error) {
	shader := gl.CreateShader(shaderType)
	csrc, free := gl.Strs(src + "\x00")
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
		gl.DeleteShader(shader)
		return 0, fmt.Errorf("compile failed: %v", strings.TrimRight(log, "\x00"))
	}
	return shader, nil
}

package opengl

import (
	"errors"
	"log/slog"

	gl "github.com/go-gl/gl/v3.3-core/gl"

	"glprimer/core"
	"glprimer/scene"
)

// Uniform names the shader program is expected to declare.
const (
	UniformTime = "time"
	UniformR    = "R"
	UniformP    = "P"
	UniformMV   = "MV"
)

// Uniforms caches the resolved uniform locations for the program's lifetime.
type Uniforms struct {
	Time int32
	R    int32
	P    int32
	MV   int32
}

// Renderer is the OpenGL rendering backend: it owns the mesh buffers and the
// shader program, uploads the per-frame transforms and issues the draw.
type Renderer struct {
	ctx      Context
	program  *Program
	uniforms Uniforms
	mesh     *GPUMesh

	clearColor core.Color
	wireframe  bool
}

// NewRenderer takes ownership of program and resolves its uniforms once.
// Each uniform the program does not declare is reported here and skipped on
// every later upload.
func NewRenderer(ctx Context, program *Program) *Renderer {
	r := &Renderer{
		ctx:        ctx,
		program:    program,
		clearColor: core.ColorDarkGray,
	}

	resolve := func(name string) int32 {
		loc := program.UniformLocation(name)
		if loc == NotFound {
			slog.Warn("shader uniform not found", "name", name)
		}
		return loc
	}
	r.uniforms = Uniforms{
		Time: resolve(UniformTime),
		R:    resolve(UniformR),
		P:    resolve(UniformP),
		MV:   resolve(UniformMV),
	}

	ctx.Enable(gl.DEPTH_TEST)
	return r
}

// Uniforms returns the cached uniform locations.
func (r *Renderer) Uniforms() Uniforms {
	return r.uniforms
}

// Setup uploads the mesh into a fresh vertex array with one buffer per
// attribute and an index buffer. It may be called once.
func (r *Renderer) Setup(mesh *scene.Mesh) error {
	if r.mesh != nil {
		return errors.New("renderer buffers already set up")
	}
	r.mesh = uploadMesh(r.ctx, mesh)
	return nil
}

// IndexCount returns the number of indices the next Draw will cover.
func (r *Renderer) IndexCount() int32 {
	if r.mesh == nil {
		return 0
	}
	return r.mesh.IndexCount
}

func (r *Renderer) SetClearColor(c core.Color) {
	r.clearColor = c
}

// SetWireframe toggles wireframe rendering mode.
func (r *Renderer) SetWireframe(enabled bool) {
	r.wireframe = enabled
	if enabled {
		r.ctx.PolygonMode(gl.LINE)
	} else {
		r.ctx.PolygonMode(gl.FILL)
	}
}

// IsWireframe returns whether wireframe mode is active.
func (r *Renderer) IsWireframe() bool {
	return r.wireframe
}

// SetCulling toggles back-face culling.
func (r *Renderer) SetCulling(enabled bool) {
	if enabled {
		r.ctx.Enable(gl.CULL_FACE)
	} else {
		r.ctx.Disable(gl.CULL_FACE)
	}
}

// BeginFrame clears color and depth and fits the viewport to size.
func (r *Renderer) BeginFrame(size core.Size) {
	r.ctx.Clear(r.clearColor)
	r.ctx.Viewport(size.Width, size.Height)
}

// Upload activates the program and writes the frame's matrices and time.
func (r *Renderer) Upload(f scene.Frame) {
	r.program.Activate()

	if r.uniforms.R != NotFound {
		r.ctx.UniformMatrix4(r.uniforms.R, f.R)
	}
	if r.uniforms.MV != NotFound {
		r.ctx.UniformMatrix4(r.uniforms.MV, f.MV)
	}
	if r.uniforms.P != NotFound {
		r.ctx.UniformMatrix4(r.uniforms.P, f.P)
	}
	if r.uniforms.Time != NotFound {
		r.ctx.Uniform1f(r.uniforms.Time, f.Time)
	}
}

// Draw issues one indexed draw over the buffers created by Setup.
func (r *Renderer) Draw() {
	if r.mesh == nil {
		return
	}
	r.mesh.draw(r.ctx)
}

// Destroy releases the buffers in reverse allocation order, then the
// program. Calling it again is a no-op.
func (r *Renderer) Destroy() {
	if r.mesh != nil {
		r.mesh.release(r.ctx)
		r.mesh = nil
	}
	if r.program != nil {
		r.program.Delete()
		r.program = nil
	}
}

package opengl

import (
	gl "github.com/go-gl/gl/v3.3-core/gl"

	"glprimer/scene"
)

// Attribute slots; must match the layout(location=N) declarations in the
// vertex shader.
const (
	PositionSlot uint32 = 0
	ColorSlot    uint32 = 1
)

// GPUMesh holds the OpenGL objects for an uploaded mesh.
type GPUMesh struct {
	VAO        uint32
	VBOs       []uint32 // one per attribute, in slot order
	EBO        uint32
	IndexCount int32
}

// uploadMesh allocates a vertex array, one vertex buffer per attribute and
// an index buffer, in that order. The vertex array is unbound on return.
// Index ranges are not checked against the vertex count.
func uploadMesh(ctx Context, mesh *scene.Mesh) *GPUMesh {
	gpu := &GPUMesh{IndexCount: int32(len(mesh.Indices))}

	gpu.VAO = ctx.GenVertexArray()
	ctx.BindVertexArray(gpu.VAO)

	gpu.VBOs = append(gpu.VBOs, createVertexBuffer(ctx, PositionSlot, 3, mesh.Positions))
	gpu.VBOs = append(gpu.VBOs, createVertexBuffer(ctx, ColorSlot, 3, mesh.Colors))
	gpu.EBO = createIndexBuffer(ctx, mesh.Indices)

	// The index buffer binding is recorded in the vertex array, so unbind
	// the vertex array only.
	ctx.BindVertexArray(0)
	return gpu
}

func createVertexBuffer(ctx Context, slot uint32, components int32, data []float32) uint32 {
	buf := ctx.GenBuffer()
	ctx.BindBuffer(gl.ARRAY_BUFFER, buf)
	ctx.BufferFloats(gl.ARRAY_BUFFER, data)
	ctx.VertexAttribPointer(slot, components)
	ctx.EnableVertexAttribArray(slot)
	return buf
}

func createIndexBuffer(ctx Context, indices []uint32) uint32 {
	buf := ctx.GenBuffer()
	ctx.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, buf)
	ctx.BufferIndices(gl.ELEMENT_ARRAY_BUFFER, indices)
	return buf
}

// draw issues one indexed triangle draw over the whole index buffer.
func (g *GPUMesh) draw(ctx Context) {
	ctx.BindVertexArray(g.VAO)
	ctx.DrawElements(gl.TRIANGLES, g.IndexCount)
	ctx.BindVertexArray(0)
}

// release deletes the objects in reverse allocation order.
func (g *GPUMesh) release(ctx Context) {
	ctx.DeleteBuffer(g.EBO)
	for i := len(g.VBOs) - 1; i >= 0; i-- {
		ctx.DeleteBuffer(g.VBOs[i])
	}
	ctx.DeleteVertexArray(g.VAO)
	*g = GPUMesh{}
}

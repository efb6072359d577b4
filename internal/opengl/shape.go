package opengl

import "glprimer/scene"

// Shape is a mesh that carries its own GPU buffers and draws itself. It is
// the alternative to drawing the Renderer's buffers directly and expects the
// Renderer to have uploaded the frame's uniforms already.
type Shape struct {
	ctx  Context
	Mesh *scene.Mesh
	gpu  *GPUMesh
}

// NewShape uploads mesh immediately.
func NewShape(ctx Context, mesh *scene.Mesh) *Shape {
	return &Shape{ctx: ctx, Mesh: mesh, gpu: uploadMesh(ctx, mesh)}
}

func (s *Shape) Draw() {
	if s.gpu == nil {
		return
	}
	s.gpu.draw(s.ctx)
}

// Destroy frees the shape's buffers. Calling it again is a no-op.
func (s *Shape) Destroy() {
	if s.gpu == nil {
		return
	}
	s.gpu.release(s.ctx)
	s.gpu = nil
}

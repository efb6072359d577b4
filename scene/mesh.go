package scene

import "fmt"

// Mesh holds CPU-side vertex data as flat attribute arrays, three floats per
// vertex for both positions and colors, and three indices per triangle.
// GPU upload is managed by the renderer backend.
type Mesh struct {
	Name      string
	Positions []float32
	Colors    []float32
	Indices   []uint32
}

func NewMesh(name string) *Mesh {
	return &Mesh{
		Name:      name,
		Positions: make([]float32, 0),
		Colors:    make([]float32, 0),
		Indices:   make([]uint32, 0),
	}
}

// VertexCount returns the number of vertices described by Positions.
func (m *Mesh) VertexCount() int {
	return len(m.Positions) / 3
}

// TriangleCount returns the number of triangles described by Indices.
func (m *Mesh) TriangleCount() int {
	return len(m.Indices) / 3
}

// AddVertex appends one vertex with its color and returns its index.
func (m *Mesh) AddVertex(x, y, z, r, g, b float32) uint32 {
	idx := uint32(m.VertexCount())
	m.Positions = append(m.Positions, x, y, z)
	m.Colors = append(m.Colors, r, g, b)
	return idx
}

func (m *Mesh) AddTriangle(a, b, c uint32) {
	m.Indices = append(m.Indices, a, b, c)
}

// Validate checks that the attribute arrays describe a consistent mesh. The
// renderer does not call it; generators and loaders do.
func (m *Mesh) Validate() error {
	if len(m.Positions)%3 != 0 {
		return fmt.Errorf("mesh %q: %d position floats is not a multiple of 3", m.Name, len(m.Positions))
	}
	if len(m.Colors) != len(m.Positions) {
		return fmt.Errorf("mesh %q: %d color floats for %d position floats", m.Name, len(m.Colors), len(m.Positions))
	}
	if len(m.Indices)%3 != 0 {
		return fmt.Errorf("mesh %q: %d indices is not a multiple of 3", m.Name, len(m.Indices))
	}
	n := uint32(m.VertexCount())
	for i, idx := range m.Indices {
		if idx >= n {
			return fmt.Errorf("mesh %q: index %d at position %d out of range (%d vertices)", m.Name, idx, i, n)
		}
	}
	return nil
}

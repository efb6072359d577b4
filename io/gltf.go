package io

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"

	"glprimer/scene"
)

const attrColor = "COLOR_0"

// LoadGLTF reads the first primitive of the first mesh in a .gltf or .glb
// file. Vertices without COLOR_0 are white; a primitive without indices is
// drawn in vertex order.
func LoadGLTF(path string) (*scene.Mesh, error) {
	doc, err := gltf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("gltf open %q: %w", path, err)
	}
	if len(doc.Meshes) == 0 || len(doc.Meshes[0].Primitives) == 0 {
		return nil, fmt.Errorf("gltf %q: no mesh primitives", path)
	}

	gm := doc.Meshes[0]
	name := gm.Name
	if name == "" {
		name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	prim := gm.Primitives[0]
	if prim.Mode != gltf.PrimitiveTriangles {
		return nil, fmt.Errorf("gltf %q: primitive mode %v is not triangles", path, prim.Mode)
	}

	posIdx, ok := prim.Attributes[gltf.POSITION]
	if !ok {
		return nil, fmt.Errorf("gltf %q: no POSITION attribute", path)
	}
	positions, err := modeler.ReadPosition(doc, doc.Accessors[posIdx], nil)
	if err != nil {
		return nil, fmt.Errorf("positions: %w", err)
	}

	var colors [][4]uint8
	if idx, ok := prim.Attributes[attrColor]; ok {
		if colors, err = modeler.ReadColor(doc, doc.Accessors[idx], nil); err != nil {
			return nil, fmt.Errorf("colors: %w", err)
		}
	}

	mesh := scene.NewMesh(name)
	for i, p := range positions {
		r, g, b := float32(1), float32(1), float32(1)
		if i < len(colors) {
			r = float32(colors[i][0]) / 255
			g = float32(colors[i][1]) / 255
			b = float32(colors[i][2]) / 255
		}
		mesh.AddVertex(p[0], p[1], p[2], r, g, b)
	}

	if prim.Indices != nil {
		mesh.Indices, err = modeler.ReadIndices(doc, doc.Accessors[*prim.Indices], nil)
		if err != nil {
			return nil, fmt.Errorf("indices: %w", err)
		}
	} else {
		for i := range positions {
			mesh.Indices = append(mesh.Indices, uint32(i))
		}
	}

	if err := mesh.Validate(); err != nil {
		return nil, fmt.Errorf("gltf %q: %w", path, err)
	}
	return mesh, nil
}

// ExportGLTF writes mesh as a single-node glTF scene. A .glb path produces
// the binary container; anything else gets JSON with the buffer embedded.
func ExportGLTF(path string, mesh *scene.Mesh) error {
	if err := mesh.Validate(); err != nil {
		return err
	}

	doc := gltf.NewDocument()
	n := mesh.VertexCount()
	positions := make([][3]float32, n)
	colors := make([][3]float32, n)
	for i := 0; i < n; i++ {
		copy(positions[i][:], mesh.Positions[i*3:i*3+3])
		copy(colors[i][:], mesh.Colors[i*3:i*3+3])
	}

	attrs := map[string]int{
		gltf.POSITION: modeler.WritePosition(doc, positions),
		attrColor:     modeler.WriteColor(doc, colors),
	}
	indices := modeler.WriteIndices(doc, mesh.Indices)

	doc.Meshes = append(doc.Meshes, &gltf.Mesh{
		Name: mesh.Name,
		Primitives: []*gltf.Primitive{{
			Indices:    gltf.Index(indices),
			Attributes: attrs,
		}},
	})
	doc.Nodes = append(doc.Nodes, &gltf.Node{Name: mesh.Name, Mesh: gltf.Index(0)})
	doc.Scenes[0].Nodes = append(doc.Scenes[0].Nodes, 0)

	if strings.EqualFold(filepath.Ext(path), ".glb") {
		return gltf.SaveBinary(doc, path)
	}
	doc.Buffers[0].EmbeddedResource()
	return gltf.Save(doc, path)
}

// LoadMesh picks a loader by file extension.
func LoadMesh(path string) (*scene.Mesh, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".obj":
		return LoadOBJ(path)
	case ".gltf", ".glb":
		return LoadGLTF(path)
	default:
		return nil, fmt.Errorf("unsupported mesh format %q", filepath.Ext(path))
	}
}

// ExportMesh picks a writer by file extension.
func ExportMesh(path string, mesh *scene.Mesh) error {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".obj":
		return ExportOBJ(path, mesh)
	case ".gltf", ".glb":
		return ExportGLTF(path, mesh)
	default:
		return fmt.Errorf("unsupported mesh format %q", filepath.Ext(path))
	}
}

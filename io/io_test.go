package io

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"glprimer/scene"
)

func assertSameMesh(t *testing.T, want, got *scene.Mesh, colorTol float64) {
	t.Helper()
	assert.Equal(t, want.Positions, got.Positions)
	assert.Equal(t, want.Indices, got.Indices)
	require.Len(t, got.Colors, len(want.Colors))
	for i := range want.Colors {
		assert.InDelta(t, want.Colors[i], got.Colors[i], colorTol, "color component %d", i)
	}
}

func TestGLTFRoundTrip(t *testing.T) {
	for _, name := range []string{"cube.gltf", "cube.glb"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), name)
			cube := scene.CreateColorCube()

			require.NoError(t, ExportGLTF(path, cube))
			got, err := LoadGLTF(path)
			require.NoError(t, err)

			assert.Equal(t, cube.Name, got.Name)
			assertSameMesh(t, cube, got, 1.0/255)
		})
	}
}

func TestGLTFDocumentLayout(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sphere.gltf")
	sphere := scene.CreateSphere(0.5, 8)
	require.NoError(t, ExportGLTF(path, sphere))

	doc, err := gltf.Open(path)
	require.NoError(t, err)
	require.Len(t, doc.Meshes, 1)
	require.Len(t, doc.Nodes, 1)
	assert.Equal(t, []int{0}, doc.Scenes[0].Nodes)

	prim := doc.Meshes[0].Primitives[0]
	assert.Contains(t, prim.Attributes, attrColor)
	positions, err := modeler.ReadPosition(doc, doc.Accessors[prim.Attributes[gltf.POSITION]], nil)
	require.NoError(t, err)
	assert.Len(t, positions, sphere.VertexCount())
}

func TestOBJRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "box.obj")
	box := scene.CreateBox(0.2, 0.2, 1.0)

	require.NoError(t, ExportOBJ(path, box))
	got, err := LoadOBJ(path)
	require.NoError(t, err)

	assert.Equal(t, box.Name, got.Name)
	assert.Equal(t, box.TriangleCount(), got.TriangleCount())
	assert.InDeltaSlice(t, box.Positions, got.Positions, 1e-6)
	assert.InDeltaSlice(t, box.Colors, got.Colors, 1e-6)
}

func TestLoadOBJPolygons(t *testing.T) {
	path := filepath.Join(t.TempDir(), "quad.obj")
	src := `# quad
v -1 -1 0
v 1 -1 0 1 0 0
v 1 1 0
v -1 1 0
vn 0 0 1
f 1//1 2//1 -2//1 -1//1
`
	require.NoError(t, os.WriteFile(path, []byte(src), 0o644))

	mesh, err := LoadOBJ(path)
	require.NoError(t, err)
	assert.Equal(t, "quad", mesh.Name)
	assert.Equal(t, 4, mesh.VertexCount())
	assert.Equal(t, []uint32{0, 1, 2, 0, 2, 3}, mesh.Indices)
	assert.Equal(t, []float32{1, 1, 1, 1, 0, 0, 1, 1, 1, 1, 1, 1}, mesh.Colors)
}

func TestLoadOBJErrors(t *testing.T) {
	dir := t.TempDir()
	write := func(name, src string) string {
		p := filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(p, []byte(src), 0o644))
		return p
	}

	_, err := LoadOBJ(write("empty.obj", "v 0 0 0\n"))
	assert.ErrorContains(t, err, "no faces")

	_, err = LoadOBJ(write("range.obj", "v 0 0 0\nf 1 2 3\n"))
	assert.ErrorContains(t, err, "out of range")

	_, err = LoadOBJ(write("bad.obj", "v 0 zero 0\n"))
	assert.ErrorContains(t, err, "bad number")

	_, err = LoadOBJ(filepath.Join(dir, "missing.obj"))
	assert.Error(t, err)
}

func TestMeshDispatch(t *testing.T) {
	dir := t.TempDir()
	tri := scene.CreateTriangle()

	for _, name := range []string{"tri.obj", "tri.gltf", "tri.GLB"} {
		path := filepath.Join(dir, name)
		require.NoError(t, ExportMesh(path, tri), name)
		got, err := LoadMesh(path)
		require.NoError(t, err, name)
		assert.Equal(t, tri.Indices, got.Indices, name)
	}

	assert.ErrorContains(t, ExportMesh(filepath.Join(dir, "tri.stl"), tri), "unsupported")
	_, err := LoadMesh(filepath.Join(dir, "tri.stl"))
	assert.ErrorContains(t, err, "unsupported")
}

func TestExportRejectsInvalidMesh(t *testing.T) {
	bad := scene.NewMesh("bad")
	bad.AddVertex(0, 0, 0, 1, 1, 1)
	bad.AddTriangle(0, 1, 2)

	assert.Error(t, ExportGLTF(filepath.Join(t.TempDir(), "bad.gltf"), bad))
	assert.Error(t, ExportOBJ(filepath.Join(t.TempDir(), "bad.obj"), bad))
}

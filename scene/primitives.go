package scene

import (
	"github.com/chewxy/math32"

	"glprimer/core"
	"glprimer/math"
)

// FaceColors are the six face colors of the color cube and the box, in the
// order +Z, -Z, +X, -X, -Y, +Y.
var FaceColors = [6]core.Color{
	core.ColorRed,
	core.ColorGreen,
	core.ColorBlue,
	core.ColorYellow,
	core.ColorCyan,
	core.ColorWhite,
}

// CreateTriangle returns a single red/green/blue triangle in the XY plane.
func CreateTriangle() *Mesh {
	m := NewMesh("Triangle")
	a := m.AddVertex(-1, -1, 0, 1, 0, 0)
	b := m.AddVertex(1, -1, 0, 0, 1, 0)
	c := m.AddVertex(0, 1, 0, 0, 0, 1)
	m.AddTriangle(a, b, c)
	return m
}

// colorCubeFaces lists two triangles per face of the [-1,1] cube, one face
// per row, wound counter-clockwise seen from outside.
var colorCubeFaces = [6][18]float32{
	{-1, -1, 1, 1, -1, 1, -1, 1, 1, -1, 1, 1, 1, -1, 1, 1, 1, 1},
	{-1, -1, -1, -1, 1, -1, 1, -1, -1, 1, -1, -1, -1, 1, -1, 1, 1, -1},
	{1, -1, -1, 1, 1, -1, 1, -1, 1, 1, -1, 1, 1, 1, -1, 1, 1, 1},
	{-1, -1, -1, -1, -1, 1, -1, 1, -1, -1, 1, -1, -1, -1, 1, -1, 1, 1},
	{-1, -1, -1, 1, -1, -1, -1, -1, 1, -1, -1, 1, 1, -1, -1, 1, -1, 1},
	{-1, 1, -1, -1, 1, 1, 1, 1, -1, 1, 1, -1, -1, 1, 1, 1, 1, 1},
}

// CreateColorCube returns the unit cube spanning [-1,1] on every axis with
// one flat color per face and no shared vertices: 36 vertices, 12 triangles.
func CreateColorCube() *Mesh {
	m := NewMesh("ColorCube")
	for face, corners := range colorCubeFaces {
		col := FaceColors[face]
		for v := 0; v < 6; v++ {
			idx := m.AddVertex(corners[v*3], corners[v*3+1], corners[v*3+2], col.R, col.G, col.B)
			if v%3 == 2 {
				m.AddTriangle(idx-2, idx-1, idx)
			}
		}
	}
	return m
}

// boxFace describes one box face by its outward normal and the two in-plane
// axes, chosen so that u x v = normal.
type boxFace struct {
	normal, u, v math.Vec3
}

var boxFaces = [6]boxFace{
	{normal: math.Vec3{Z: 1}, u: math.Vec3{X: 1}, v: math.Vec3{Y: 1}},
	{normal: math.Vec3{Z: -1}, u: math.Vec3{Y: 1}, v: math.Vec3{X: 1}},
	{normal: math.Vec3{X: 1}, u: math.Vec3{Y: 1}, v: math.Vec3{Z: 1}},
	{normal: math.Vec3{X: -1}, u: math.Vec3{Z: 1}, v: math.Vec3{Y: 1}},
	{normal: math.Vec3{Y: -1}, u: math.Vec3{X: 1}, v: math.Vec3{Z: 1}},
	{normal: math.Vec3{Y: 1}, u: math.Vec3{Z: 1}, v: math.Vec3{X: 1}},
}

// CreateBox generates an axis-aligned box centred on the origin with the
// given full extents. Each face has its own four vertices so it can carry a
// flat color: 24 vertices, 12 triangles.
func CreateBox(xsize, ysize, zsize float32) *Mesh {
	m := NewMesh("Box")
	half := math.Vec3{X: xsize / 2, Y: ysize / 2, Z: zsize / 2}

	corner := func(dir math.Vec3) math.Vec3 {
		return math.Vec3{X: dir.X * half.X, Y: dir.Y * half.Y, Z: dir.Z * half.Z}
	}

	for i, f := range boxFaces {
		col := FaceColors[i]
		var idx [4]uint32
		for k, s := range [4][2]float32{{-1, -1}, {1, -1}, {1, 1}, {-1, 1}} {
			p := corner(f.normal.Add(f.u.Mul(s[0])).Add(f.v.Mul(s[1])))
			idx[k] = m.AddVertex(p.X, p.Y, p.Z, col.R, col.G, col.B)
		}
		m.AddTriangle(idx[0], idx[1], idx[2])
		m.AddTriangle(idx[2], idx[3], idx[0])
	}
	return m
}

// CreateSphere generates a UV-sphere with the given number of segments
// around the equator and half as many rings from pole to pole. Vertices are
// colored by the absolute value of their normal.
func CreateSphere(radius float32, segments int) *Mesh {
	if segments < 3 {
		segments = 3
	}
	rings := segments / 2
	if rings < 2 {
		rings = 2
	}

	m := NewMesh("Sphere")
	for ring := 0; ring <= rings; ring++ {
		phi := float32(ring) * math32.Pi / float32(rings)
		sinPhi, cosPhi := math32.Sin(phi), math32.Cos(phi)

		for seg := 0; seg <= segments; seg++ {
			theta := float32(seg) * 2 * math32.Pi / float32(segments)
			normal := math.Vec3{X: sinPhi * math32.Cos(theta), Y: cosPhi, Z: sinPhi * math32.Sin(theta)}
			p := normal.Mul(radius)
			col := normal.Abs()
			m.AddVertex(p.X, p.Y, p.Z, col.X, col.Y, col.Z)
		}
	}

	for ring := 0; ring < rings; ring++ {
		for seg := 0; seg < segments; seg++ {
			current := uint32(ring*(segments+1) + seg)
			next := current + uint32(segments+1)

			m.AddTriangle(current, current+1, next)
			m.AddTriangle(current+1, next+1, next)
		}
	}
	return m
}

package io

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"glprimer/core"
	"glprimer/scene"
)

// LoadOBJ parses a Wavefront .obj file into a single mesh. Vertex colors
// written as "v x y z r g b" are kept; vertices without one are white.
// Faces are fan-triangulated. Texture and normal references are ignored.
func LoadOBJ(path string) (*scene.Mesh, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open OBJ file: %w", err)
	}
	defer f.Close()

	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	mesh := scene.NewMesh(name)

	var positions [][3]float32
	var colors [][3]float32
	vertexMap := make(map[int]uint32) // position index -> mesh vertex

	scanner := bufio.NewScanner(f)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		parts := strings.Fields(line)
		switch parts[0] {
		case "v":
			if len(parts) < 4 {
				return nil, fmt.Errorf("%s:%d: vertex needs 3 coordinates", path, lineNo)
			}
			p, err := parseFloats(parts[1:4])
			if err != nil {
				return nil, fmt.Errorf("%s:%d: %w", path, lineNo, err)
			}
			c := [3]float32{core.ColorWhite.R, core.ColorWhite.G, core.ColorWhite.B}
			if len(parts) >= 7 {
				if c, err = parseFloats(parts[4:7]); err != nil {
					return nil, fmt.Errorf("%s:%d: %w", path, lineNo, err)
				}
			}
			positions = append(positions, p)
			colors = append(colors, c)

		case "f":
			face := make([]uint32, 0, len(parts)-1)
			for _, spec := range parts[1:] {
				idx, err := faceIndex(spec, len(positions))
				if err != nil {
					return nil, fmt.Errorf("%s:%d: %w", path, lineNo, err)
				}
				v, ok := vertexMap[idx]
				if !ok {
					p, c := positions[idx], colors[idx]
					v = mesh.AddVertex(p[0], p[1], p[2], c[0], c[1], c[2])
					vertexMap[idx] = v
				}
				face = append(face, v)
			}
			for i := 2; i < len(face); i++ {
				mesh.AddTriangle(face[0], face[i-1], face[i])
			}

		case "o":
			if len(parts) > 1 {
				mesh.Name = parts[1]
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	if mesh.TriangleCount() == 0 {
		return nil, fmt.Errorf("no faces found in OBJ file %s", path)
	}
	return mesh, nil
}

// ExportOBJ writes mesh to a .obj file with per-vertex colors.
func ExportOBJ(path string, mesh *scene.Mesh) error {
	if err := mesh.Validate(); err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create OBJ file: %w", err)
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	fmt.Fprintln(w, "# Exported by GLprimer")
	fmt.Fprintf(w, "o %s\n", mesh.Name)

	for i := 0; i < mesh.VertexCount(); i++ {
		p := mesh.Positions[i*3 : i*3+3]
		c := mesh.Colors[i*3 : i*3+3]
		fmt.Fprintf(w, "v %f %f %f %f %f %f\n", p[0], p[1], p[2], c[0], c[1], c[2])
	}

	// OBJ indices are 1-based.
	for i := 0; i < len(mesh.Indices); i += 3 {
		fmt.Fprintf(w, "f %d %d %d\n", mesh.Indices[i]+1, mesh.Indices[i+1]+1, mesh.Indices[i+2]+1)
	}

	if err := w.Flush(); err != nil {
		return err
	}
	return f.Close()
}

func parseFloats(fields []string) ([3]float32, error) {
	var out [3]float32
	for i, s := range fields {
		v, err := strconv.ParseFloat(s, 32)
		if err != nil {
			return out, fmt.Errorf("bad number %q", s)
		}
		out[i] = float32(v)
	}
	return out, nil
}

// faceIndex resolves the position part of a face vertex like "v/vt/vn" to a
// 0-based index. Negative indices count back from the last vertex.
func faceIndex(spec string, count int) (int, error) {
	pos, _, _ := strings.Cut(spec, "/")
	idx, err := strconv.Atoi(pos)
	if err != nil {
		return 0, fmt.Errorf("bad face vertex %q", spec)
	}
	if idx < 0 {
		idx = count + idx + 1
	}
	if idx < 1 || idx > count {
		return 0, fmt.Errorf("face vertex %q out of range", spec)
	}
	return idx - 1, nil
}

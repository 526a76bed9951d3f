// Package mesh reads Wavefront OBJ files into the interleaved vertex
// layout the renderer uploads: position (3), texture coordinate (2),
// normal (3).
package mesh

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

const (
	PositionSize = 3 // x,y,z
	TexCoordSize = 2 // u,v
	NormalSize   = 3 // nx,ny,nz

	// VertexSize is the number of float32 per interleaved vertex.
	VertexSize = PositionSize + TexCoordSize + NormalSize
)

// ErrEmpty is returned for files that contain no faces.
var ErrEmpty = errors.New("mesh has no faces")

// Mesh is a flat triangle list.
type Mesh struct {
	Vertices    []float32 // interleaved, VertexSize floats per vertex
	HasTexCoord bool
	HasNormal   bool
}

// VertexCount returns the number of vertices to draw.
func (m *Mesh) VertexCount() int {
	return len(m.Vertices) / VertexSize
}

// Load reads an OBJ file from disk.
func Load(path string) (*Mesh, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	m, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return m, nil
}

type vertexRef struct {
	pos, tex, norm int // 1-based after resolution, 0 = absent
}

// Parse reads OBJ statements from r. Only v, vt, vn and f are used;
// polygons are split into triangle fans and texture coordinates are
// flipped vertically to match OpenGL's bottom-left origin.
func Parse(r io.Reader) (*Mesh, error) {
	var (
		positions [][3]float32
		texCoords [][2]float32
		normals   [][3]float32
		mesh      = &Mesh{HasTexCoord: true, HasNormal: true}
		faces     int
	)

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if i := strings.IndexByte(line, '#'); i >= 0 {
			line = strings.TrimSpace(line[:i])
		}
		if line == "" {
			continue
		}

		fields := strings.Fields(line)
		switch fields[0] {
		case "v":
			v, err := parseFloats(fields[1:], 3)
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", lineNo, err)
			}
			positions = append(positions, [3]float32{v[0], v[1], v[2]})

		case "vt":
			v, err := parseFloats(fields[1:], 2)
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", lineNo, err)
			}
			texCoords = append(texCoords, [2]float32{v[0], 1 - v[1]})

		case "vn":
			v, err := parseFloats(fields[1:], 3)
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", lineNo, err)
			}
			normals = append(normals, [3]float32{v[0], v[1], v[2]})

		case "f":
			if len(fields) < 4 {
				return nil, fmt.Errorf("line %d: face needs at least 3 vertices", lineNo)
			}
			refs := make([]vertexRef, 0, len(fields)-1)
			for _, f := range fields[1:] {
				ref, err := parseRef(f, len(positions), len(texCoords), len(normals))
				if err != nil {
					return nil, fmt.Errorf("line %d: %w", lineNo, err)
				}
				if ref.tex == 0 {
					mesh.HasTexCoord = false
				}
				if ref.norm == 0 {
					mesh.HasNormal = false
				}
				refs = append(refs, ref)
			}

			// triangle fan: (0,1,2), (0,2,3), ...
			for i := 1; i+1 < len(refs); i++ {
				for _, ref := range []vertexRef{refs[0], refs[i], refs[i+1]} {
					mesh.Vertices = appendVertex(mesh.Vertices, ref, positions, texCoords, normals)
				}
			}
			faces++

		default:
			// o, g, s, usemtl, mtllib, ... carry nothing we draw
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if faces == 0 {
		return nil, ErrEmpty
	}
	return mesh, nil
}

func appendVertex(dst []float32, ref vertexRef, positions [][3]float32, texCoords [][2]float32, normals [][3]float32) []float32 {
	p := positions[ref.pos-1]
	dst = append(dst, p[0], p[1], p[2])

	if ref.tex > 0 {
		t := texCoords[ref.tex-1]
		dst = append(dst, t[0], t[1])
	} else {
		dst = append(dst, 0, 0)
	}

	if ref.norm > 0 {
		n := normals[ref.norm-1]
		dst = append(dst, n[0], n[1], n[2])
	} else {
		dst = append(dst, 0, 0, 0)
	}
	return dst
}

func parseFloats(fields []string, n int) ([]float32, error) {
	if len(fields) < n {
		return nil, fmt.Errorf("want %d values, got %d", n, len(fields))
	}
	out := make([]float32, n)
	for i := 0; i < n; i++ {
		f, err := strconv.ParseFloat(fields[i], 32)
		if err != nil {
			return nil, err
		}
		out[i] = float32(f)
	}
	return out, nil
}

// parseRef parses "v", "v/vt", "v//vn" or "v/vt/vn"; negative indices
// count back from the most recent element.
func parseRef(s string, npos, ntex, nnorm int) (vertexRef, error) {
	parts := strings.Split(s, "/")
	if len(parts) > 3 {
		return vertexRef{}, fmt.Errorf("bad face vertex %q", s)
	}

	var ref vertexRef
	var err error
	if ref.pos, err = resolveIndex(parts[0], npos, "position"); err != nil {
		return vertexRef{}, err
	}
	if ref.pos == 0 {
		return vertexRef{}, fmt.Errorf("face vertex %q has no position", s)
	}
	if len(parts) > 1 {
		if ref.tex, err = resolveIndex(parts[1], ntex, "texture coordinate"); err != nil {
			return vertexRef{}, err
		}
	}
	if len(parts) > 2 {
		if ref.norm, err = resolveIndex(parts[2], nnorm, "normal"); err != nil {
			return vertexRef{}, err
		}
	}
	return ref, nil
}

func resolveIndex(s string, n int, what string) (int, error) {
	if s == "" {
		return 0, nil
	}
	i, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("bad %s index %q", what, s)
	}
	if i < 0 {
		i = n + i + 1
	}
	if i < 1 || i > n {
		return 0, fmt.Errorf("%s index %s out of range (have %d)", what, s, n)
	}
	return i, nil
}

package loader

import (
	"Meadow3D/internal/logger"
	"Meadow3D/internal/renderer"
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"go.uber.org/zap"
)

type FaceVertex struct {
	VertexIdx   int32
	TexCoordIdx int32
	NormalIdx   int32
}

// LoadOBJ reads a Wavefront OBJ file. Materials come from the first mtllib
// and the last usemtl seen; the model is drawn with a single material.
func LoadOBJ(filename string, recalculateNormals bool) (*renderer.Model, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("open obj %s: %w", filename, err)
	}
	defer file.Close()

	model, err := ParseOBJ(file, filepath.Dir(filename), recalculateNormals)
	if err != nil {
		return nil, fmt.Errorf("parse obj %s: %w", filename, err)
	}
	model.SourcePath = filename
	model.Name = strings.TrimSuffix(filepath.Base(filename), filepath.Ext(filename))
	return model, nil
}

// ParseOBJ builds a model from OBJ text. Every distinct v/vt/vn triplet
// becomes one interleaved vertex. dir resolves mtllib references.
func ParseOBJ(r io.Reader, dir string, recalculateNormals bool) (*renderer.Model, error) {
	var (
		vertices      []float32
		textureCoords []float32
		normals       []float32
		faceVertices  []FaceVertex
		materials     map[string]*renderer.Material
		material      *renderer.Material
	)

	scanner := bufio.NewScanner(r)
	line := 0
	for scanner.Scan() {
		line++
		parts := strings.Fields(scanner.Text())
		if len(parts) == 0 {
			continue
		}
		switch parts[0] {
		case "v":
			vertex, err := parseVertex(parts[1:])
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", line, err)
			}
			vertices = append(vertices, vertex...)
		case "vn":
			normal, err := parseVertex(parts[1:])
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", line, err)
			}
			normals = append(normals, normal...)
		case "vt":
			texCoord, err := parseTextureCoordinate(parts[1:])
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", line, err)
			}
			textureCoords = append(textureCoords, texCoord...)
		case "f":
			face, err := parseFace(parts[1:])
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", line, err)
			}
			faceVertices = append(faceVertices, face...)
		case "mtllib":
			if len(parts) >= 2 && materials == nil {
				materials = LoadMaterials(filepath.Join(dir, parts[1]))
			}
		case "usemtl":
			if len(parts) >= 2 {
				if m, ok := materials[parts[1]]; ok {
					material = m
				} else {
					logger.Log.Debug("Material not found", zap.String("material", parts[1]))
				}
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if len(faceVertices) == 0 {
		return nil, fmt.Errorf("no faces")
	}

	type vertexKey struct{ v, vt, vn int32 }
	vertexMap := make(map[vertexKey]uint32)
	interleaved := make([]float32, 0, len(faceVertices)*renderer.VertexStride)
	indices := make([]uint32, 0, len(faceVertices))
	missingNormals := false

	for _, fv := range faceVertices {
		key := vertexKey{fv.VertexIdx, fv.TexCoordIdx, fv.NormalIdx}
		if idx, ok := vertexMap[key]; ok {
			indices = append(indices, idx)
			continue
		}
		if fv.VertexIdx < 0 || int(fv.VertexIdx)*3+2 >= len(vertices) {
			return nil, fmt.Errorf("vertex index %d out of range", fv.VertexIdx+1)
		}
		idx := uint32(len(interleaved) / renderer.VertexStride)
		vertexMap[key] = idx

		p := fv.VertexIdx * 3
		interleaved = append(interleaved, vertices[p], vertices[p+1], vertices[p+2])

		if t := int(fv.TexCoordIdx) * 2; fv.TexCoordIdx >= 0 && t+1 < len(textureCoords) {
			interleaved = append(interleaved, textureCoords[t], textureCoords[t+1])
		} else {
			interleaved = append(interleaved, 0, 0)
		}

		if n := int(fv.NormalIdx) * 3; fv.NormalIdx >= 0 && n+2 < len(normals) {
			interleaved = append(interleaved, normals[n], normals[n+1], normals[n+2])
		} else {
			missingNormals = true
			interleaved = append(interleaved, 0, 1, 0)
		}
		indices = append(indices, idx)
	}

	// Some exporters omit or break normals, so rebuild them from the faces.
	if recalculateNormals || missingNormals {
		RecalculateNormals(interleaved, indices)
	}

	model := renderer.CreateModel(interleaved, indices)
	if material != nil {
		m := *material
		model.Material = &m
	}
	logger.Log.Debug("OBJ parsed",
		zap.Int("positions", len(vertices)/3),
		zap.Int("vertices", len(interleaved)/renderer.VertexStride),
		zap.Int("indices", len(indices)))
	return model, nil
}

// LoadMaterials loads material properties from a .mtl file. A missing file
// yields only the default material.
func LoadMaterials(filename string) map[string]*renderer.Material {
	file, err := os.Open(filename)
	if err != nil {
		logger.Log.Error("Error opening material file", zap.String("path", filename), zap.Error(err))
		return map[string]*renderer.Material{"default": renderer.DefaultMaterial}
	}
	defer file.Close()

	var currentMaterial *renderer.Material
	materials := make(map[string]*renderer.Material)
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}
		if fields[0] == "newmtl" {
			if len(fields) < 2 {
				continue
			}
			currentMaterial = &renderer.Material{
				Name:         fields[1],
				DiffuseColor: [3]float32{1, 1, 1},
				UVRepeat:     [2]float32{1, 1},
				Alpha:        1.0,
			}
			materials[fields[1]] = currentMaterial
			continue
		}
		if currentMaterial == nil {
			continue
		}

		switch fields[0] {
		case "Kd":
			if len(fields) == 4 {
				currentMaterial.DiffuseColor = parseColor(fields[1:])
			}
		case "d":
			if len(fields) == 2 {
				currentMaterial.Alpha = parseFloat(fields[1])
			}
		case "map_Kd":
			if len(fields) >= 2 {
				// Options may precede the path.
				texturePath := fields[len(fields)-1]
				if !filepath.IsAbs(texturePath) {
					texturePath = filepath.Join(filepath.Dir(filename), texturePath)
				}
				currentMaterial.TexturePath = texturePath
			}
		}
	}
	if err := scanner.Err(); err != nil {
		logger.Log.Error("Error reading material file", zap.String("path", filename), zap.Error(err))
	}
	return materials
}

func parseColor(fields []string) [3]float32 {
	var color [3]float32
	for i := 0; i < 3 && i < len(fields); i++ {
		color[i] = parseFloat(fields[i])
	}
	return color
}

func parseFloat(s string) float32 {
	f, err := strconv.ParseFloat(s, 32)
	if err != nil {
		logger.Log.Warn("Error parsing material value", zap.String("value", s), zap.Error(err))
		return 0
	}
	return float32(f)
}

func parseVertex(parts []string) ([]float32, error) {
	if len(parts) < 3 {
		return nil, fmt.Errorf("vertex needs 3 components, got %d", len(parts))
	}
	vertex := make([]float32, 3)
	for i, part := range parts[:3] {
		val, err := strconv.ParseFloat(part, 32)
		if err != nil {
			return nil, fmt.Errorf("invalid vertex value %q: %w", part, err)
		}
		vertex[i] = float32(val)
	}
	return vertex, nil
}

// for 2D textures; a third w component is ignored
func parseTextureCoordinate(parts []string) ([]float32, error) {
	if len(parts) < 2 {
		return nil, fmt.Errorf("texture coordinate needs 2 components, got %d", len(parts))
	}
	texCoord := make([]float32, 2)
	for i, part := range parts[:2] {
		val, err := strconv.ParseFloat(part, 32)
		if err != nil {
			return nil, fmt.Errorf("invalid texture coordinate value %q: %w", part, err)
		}
		texCoord[i] = float32(val)
	}
	return texCoord, nil
}

func parseIndex(s string) (int32, error) {
	idx, err := strconv.ParseInt(s, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid index %q: %w", s, err)
	}
	return int32(idx - 1), nil // .obj indices start at 1, not 0
}

// parseFace reads v, v/vt, v//vn or v/vt/vn corners and fans polygons into
// triangles.
func parseFace(parts []string) ([]FaceVertex, error) {
	if len(parts) < 3 {
		return nil, fmt.Errorf("face needs at least 3 vertices, got %d", len(parts))
	}
	face := make([]FaceVertex, 0, len(parts))
	for _, part := range parts {
		vals := strings.Split(part, "/")
		fv := FaceVertex{TexCoordIdx: -1, NormalIdx: -1}

		var err error
		if fv.VertexIdx, err = parseIndex(vals[0]); err != nil {
			return nil, err
		}
		if len(vals) > 1 && vals[1] != "" {
			if fv.TexCoordIdx, err = parseIndex(vals[1]); err != nil {
				return nil, err
			}
		}
		if len(vals) > 2 && vals[2] != "" {
			if fv.NormalIdx, err = parseIndex(vals[2]); err != nil {
				return nil, err
			}
		}
		face = append(face, fv)
	}

	if len(face) == 3 {
		return face, nil
	}
	triangulated := make([]FaceVertex, 0, (len(face)-2)*3)
	for i := 1; i < len(face)-1; i++ {
		triangulated = append(triangulated, face[0], face[i], face[i+1])
	}
	return triangulated, nil
}

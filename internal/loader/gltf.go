package loader

import (
	"Meadow3D/internal/animation"
	"Meadow3D/internal/logger"
	"Meadow3D/internal/renderer"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/g3n/engine/core"
	"github.com/g3n/engine/geometry"
	"github.com/g3n/engine/gls"
	"github.com/g3n/engine/graphic"
	"github.com/g3n/engine/loader/gltf"
	"github.com/g3n/engine/material"
	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"
)

// LoadGLB reads a binary glTF file. All meshes of the default scene are
// baked into one model in their bind pose, with node transforms applied.
// Each mesh becomes a Part colored by its material's base color factor.
// Every animation in the file is returned as a clip, in file order.
func LoadGLB(path string) (*Asset, error) {
	doc, err := gltf.ParseBin(path)
	if err != nil {
		return nil, fmt.Errorf("parse glb %s: %w", path, err)
	}

	sceneIdx := 0
	if doc.Scene != nil {
		sceneIdx = *doc.Scene
	}
	root, err := doc.LoadScene(sceneIdx)
	if err != nil {
		return nil, fmt.Errorf("load scene %d of %s: %w", sceneIdx, path, err)
	}
	root.GetNode().UpdateMatrixWorld()

	// The loader caches materials, so these are the instances the meshes hold.
	colors := baseColors(doc)
	materialIndex := make(map[material.IMaterial]int, len(doc.Materials))
	for i := range doc.Materials {
		if mat, err := doc.LoadMaterial(i); err == nil {
			materialIndex[mat] = i
		}
	}

	var interleaved []float32
	var indices []uint32
	var parts []renderer.Part
	colored := false
	walkNodes(root, func(node core.INode) {
		g, ok := node.(graphic.IGraphic)
		if !ok {
			return
		}
		geom := g.GetGeometry()
		if geom == nil {
			return
		}
		world := mgl32.Mat4(node.GetNode().MatrixWorld())
		first := len(indices)
		interleaved, indices = appendGeometry(interleaved, indices, geom, world)
		if len(indices) == first {
			return
		}

		part := renderer.Part{
			Name:  node.GetNode().Name(),
			First: first,
			Count: len(indices) - first,
			Color: [3]float32{1, 1, 1},
		}
		if idx, found := materialIndex[g.GetGraphic().GetMaterial(0)]; found {
			part.Color = colors[idx]
			colored = true
		}
		parts = append(parts, part)
	})
	if len(indices) == 0 {
		return nil, fmt.Errorf("glb %s has no triangle meshes", path)
	}

	model := renderer.CreateModel(interleaved, indices)
	if colored {
		model.Parts = parts
	}
	model.SourcePath = path
	model.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))

	clips := make([]animation.Clip, 0, len(doc.Animations))
	for i := range doc.Animations {
		anim, err := doc.LoadAnimation(i)
		if err != nil {
			return nil, fmt.Errorf("load animation %d of %s: %w", i, path, err)
		}
		anim.SetLoop(true)
		clips = append(clips, anim)
	}

	logger.Log.Info("GLB loaded",
		zap.String("path", path),
		zap.Int("meshes", len(parts)),
		zap.Bool("colored", colored),
		zap.Int("vertices", model.VertexCount()),
		zap.Int("clips", len(clips)))
	return &Asset{Model: model, Clips: clips}, nil
}

// baseColors returns the RGB base color factor of every material, white
// where the file leaves it out.
func baseColors(doc *gltf.GLTF) [][3]float32 {
	colors := make([][3]float32, len(doc.Materials))
	for i, mat := range doc.Materials {
		colors[i] = [3]float32{1, 1, 1}
		if pbr := mat.PbrMetallicRoughness; pbr != nil && pbr.BaseColorFactor != nil {
			f := pbr.BaseColorFactor
			colors[i] = [3]float32{f[0], f[1], f[2]}
		}
	}
	return colors
}

func walkNodes(node core.INode, visit func(core.INode)) {
	visit(node)
	for _, child := range node.GetNode().Children() {
		walkNodes(child, visit)
	}
}

// appendGeometry converts one g3n geometry into interleaved vertices,
// transformed by world, and appends it with rebased indices.
func appendGeometry(interleaved []float32, indices []uint32, geom *geometry.Geometry, world mgl32.Mat4) ([]float32, []uint32) {
	positions := readAttrib(geom, gls.VertexPosition, 3)
	if len(positions) == 0 {
		return interleaved, indices
	}
	normals := readAttrib(geom, gls.VertexNormal, 3)
	uvs := readAttrib(geom, gls.VertexTexcoord, 2)
	normalMatrix := world.Mat3().Inv().Transpose()

	base := uint32(len(interleaved) / renderer.VertexStride)
	count := len(positions) / 3
	for i := 0; i < count; i++ {
		p := world.Mul4x1(mgl32.Vec4{positions[i*3], positions[i*3+1], positions[i*3+2], 1})
		interleaved = append(interleaved, p[0], p[1], p[2])

		if len(uvs) >= (i+1)*2 {
			interleaved = append(interleaved, uvs[i*2], uvs[i*2+1])
		} else {
			interleaved = append(interleaved, 0, 0)
		}

		n := mgl32.Vec3{0, 1, 0}
		if len(normals) >= (i+1)*3 {
			n = normalMatrix.Mul3x1(mgl32.Vec3{normals[i*3], normals[i*3+1], normals[i*3+2]})
			if n.Len() > 0 {
				n = n.Normalize()
			}
		}
		interleaved = append(interleaved, n[0], n[1], n[2])
	}

	if geom.Indexed() {
		for _, idx := range geom.Indices() {
			indices = append(indices, base+idx)
		}
	} else {
		for i := 0; i < count; i++ {
			indices = append(indices, base+uint32(i))
		}
	}
	return interleaved, indices
}

// readAttrib copies one vertex attribute out of the VBO holding it, which may
// be interleaved with other attributes.
func readAttrib(geom *geometry.Geometry, attrib gls.AttribType, size int) []float32 {
	vbo := geom.VBO(attrib)
	if vbo == nil {
		return nil
	}
	buffer := *vbo.Buffer()
	stride := vbo.StrideSize() / 4
	if stride == 0 {
		stride = size
	}
	offset := vbo.AttribOffset(attrib)

	out := make([]float32, 0, len(buffer)/stride*size)
	for start := offset; start+size <= len(buffer); start += stride {
		out = append(out, buffer[start:start+size]...)
	}
	return out
}

package loader

import (
	"Meadow3D/internal/animation"
	"Meadow3D/internal/logger"
	"Meadow3D/internal/renderer"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"
)

// Asset is a loaded model together with whatever animation clips the file
// carried. OBJ files never carry clips.
type Asset struct {
	Model *renderer.Model
	Clips []animation.Clip
}

// LoadAsset picks the loader from the file extension.
func LoadAsset(path string) (*Asset, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".obj":
		model, err := LoadOBJ(path, false)
		if err != nil {
			return nil, err
		}
		return &Asset{Model: model}, nil
	case ".glb":
		return LoadGLB(path)
	default:
		return nil, fmt.Errorf("unsupported model format %q", filepath.Ext(path))
	}
}

// LoadAssetInstanced loads a model prepared for instanced drawing with count
// identity instances; callers place them with SetInstanceTransform. A count
// of zero loads a plain model.
func LoadAssetInstanced(path string, count int) (*Asset, error) {
	asset, err := LoadAsset(path)
	if err != nil || count <= 0 {
		return asset, err
	}
	asset.Model.SetInstanceCount(count)
	logger.Log.Debug("Instanced asset loaded",
		zap.String("path", path),
		zap.Int("instances", count))
	return asset, nil
}

// RecalculateNormals rebuilds smooth per-vertex normals in place from the
// triangle list of interleaved vertex data.
func RecalculateNormals(interleaved []float32, faces []uint32) {
	stride := renderer.VertexStride
	vertexCount := len(interleaved) / stride
	sums := make([]mgl32.Vec3, vertexCount)

	position := func(i uint32) mgl32.Vec3 {
		o := int(i) * stride
		return mgl32.Vec3{interleaved[o], interleaved[o+1], interleaved[o+2]}
	}

	for i := 0; i+2 < len(faces); i += 3 {
		i0, i1, i2 := faces[i], faces[i+1], faces[i+2]
		if int(i0) >= vertexCount || int(i1) >= vertexCount || int(i2) >= vertexCount {
			logger.Log.Warn("Face index out of bounds while recalculating normals", zap.Int("face", i/3))
			continue
		}
		v0, v1, v2 := position(i0), position(i1), position(i2)
		normal := v1.Sub(v0).Cross(v2.Sub(v0))
		sums[i0] = sums[i0].Add(normal)
		sums[i1] = sums[i1].Add(normal)
		sums[i2] = sums[i2].Add(normal)
	}

	for i, n := range sums {
		if n.Len() == 0 {
			n = mgl32.Vec3{0, 1, 0}
		} else {
			n = n.Normalize()
		}
		o := i*stride + 5
		interleaved[o], interleaved[o+1], interleaved[o+2] = n[0], n[1], n[2]
	}
}

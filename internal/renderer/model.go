package renderer

import (
	"Meadow3D/internal/logger"

	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"
)

// Floats per interleaved vertex: position (3), texture coordinate (2), normal (3).
const VertexStride = 8

// DefaultMaterial provides a basic material to fall back on
var DefaultMaterial = &Material{
	Name:         "default",
	DiffuseColor: [3]float32{1.0, 1.0, 1.0},
	UVRepeat:     [2]float32{1, 1},
	Alpha:        1.0,
}

type Model struct {
	// HOT DATA - Accessed every frame in render loop (keep in first cache lines)
	ModelMatrix             mgl32.Mat4 // Transformation matrix - used every frame
	Position                mgl32.Vec3 // Position in world space
	Scale                   mgl32.Vec3 // Scale factors
	Rotation                mgl32.Quat // Rotation quaternion
	Material                *Material  // Material properties pointer
	VAO                     uint32     // Vertex Array Object
	VBO                     uint32     // Vertex Buffer Object
	EBO                     uint32     // Element Buffer Object
	InstanceVBO             uint32     // Per-model instance matrix buffer
	InstanceCount           int        // Number of instances
	IsDirty                 bool       // Needs recalculation flag
	IsInstanced             bool       // Instanced rendering flag
	InstanceMatricesUpdated bool       // Instance matrices need GPU upload
	Unlit                   bool       // Ignore scene lights, draw the material color as is
	Inside                  bool       // Draw back faces only, for domes seen from within

	// COLD DATA - Initialization only or rarely accessed
	Name                  string
	SourcePath            string       // Original file path
	InterleavedData       []float32    // Combined vertex data, VertexStride floats per vertex
	Faces                 []uint32     // Triangle indices
	InstanceModelMatrices []mgl32.Mat4 // Per-instance transforms, relative to ModelMatrix
	Parts                 []Part       // Per-primitive colors; empty draws Faces in one call
	uploaded              bool
}

// Part is a run of Faces drawn with its own base color, as files with one
// material per primitive need.
type Part struct {
	Name  string
	First int // offset into Faces
	Count int
	Color [3]float32
}

type Material struct {
	DiffuseColor [3]float32 // Base color, multiplied with the texture
	Alpha        float32
	TextureID    uint32     // OpenGL texture ID
	UVRepeat     [2]float32 // Texture coordinate scale, > 1 tiles the texture

	// COLD DATA - Rarely accessed
	Name          string
	TexturePath   string // Path to texture file (loaded lazily when OpenGL is ready)
	NearestFilter bool   // Pixelated magnification
}

// CreateModel builds an identity-transformed model from interleaved vertex data.
func CreateModel(interleaved []float32, indices []uint32) *Model {
	m := &Model{
		Position:        mgl32.Vec3{0, 0, 0},
		Rotation:        mgl32.QuatIdent(),
		Scale:           mgl32.Vec3{1.0, 1.0, 1.0},
		InterleavedData: interleaved,
		Faces:           indices,
	}
	m.updateModelMatrix()
	return m
}

func (m *Model) VertexCount() int {
	return len(m.InterleavedData) / VertexStride
}

// SetPosition sets the position of the model
func (m *Model) SetPosition(x, y, z float32) {
	m.SetPositionVec(mgl32.Vec3{x, y, z})
}

func (m *Model) SetPositionVec(position mgl32.Vec3) {
	m.Position = position
	m.IsDirty = true
}

func (m *Model) SetScale(x, y, z float32) {
	m.Scale = mgl32.Vec3{x, y, z}
	m.IsDirty = true
}

// SetYaw replaces the rotation with a turn of yaw radians about +Y.
func (m *Model) SetYaw(yaw float32) {
	m.Rotation = mgl32.QuatRotate(yaw, mgl32.Vec3{0, 1, 0})
	m.IsDirty = true
}

// UpdateMatrix recalculates ModelMatrix if the transform changed.
func (m *Model) UpdateMatrix() {
	if m.IsDirty {
		m.updateModelMatrix()
		m.IsDirty = false
	}
}

func (m *Model) updateModelMatrix() {
	// TRS: scale first, then rotate, then translate
	m.ModelMatrix = ComposeTRS(m.Position, m.Rotation, m.Scale)
}

func ComposeTRS(position mgl32.Vec3, rotation mgl32.Quat, scale mgl32.Vec3) mgl32.Mat4 {
	scaleMatrix := mgl32.Scale3D(scale[0], scale[1], scale[2])
	rotationMatrix := rotation.Mat4()
	translationMatrix := mgl32.Translate3D(position[0], position[1], position[2])
	return translationMatrix.Mul4(rotationMatrix).Mul4(scaleMatrix)
}

// ensureMaterial gives the model its own material so edits never leak into
// DefaultMaterial.
func (m *Model) ensureMaterial() {
	if m.Material == nil {
		m.Material = &Material{
			Name:         "default",
			DiffuseColor: [3]float32{1.0, 1.0, 1.0},
			UVRepeat:     [2]float32{1, 1},
			Alpha:        1.0,
		}
	} else if m.Material == DefaultMaterial {
		copied := *DefaultMaterial
		m.Material = &copied
	}
}

func (m *Model) SetDiffuseColor(r, g, b float32) {
	m.ensureMaterial()
	m.Material.DiffuseColor = [3]float32{r, g, b}
}

func (m *Model) SetDiffuseColorVec(c mgl32.Vec3) {
	m.SetDiffuseColor(c[0], c[1], c[2])
}

// SetTexture stores the texture path; the renderer loads it when the model is
// added, since there is no GL context before that.
func (m *Model) SetTexture(texturePath string, repeat float32, nearest bool) {
	m.ensureMaterial()
	m.Material.TexturePath = texturePath
	m.Material.UVRepeat = [2]float32{repeat, repeat}
	m.Material.NearestFilter = nearest
	logger.Log.Debug("Texture path set for model",
		zap.String("model", m.Name),
		zap.String("path", texturePath))
}

func (m *Model) SetInstanceCount(count int) {
	m.IsInstanced = count > 0
	m.InstanceCount = count
	m.InstanceModelMatrices = make([]mgl32.Mat4, count)
	for i := range m.InstanceModelMatrices {
		m.InstanceModelMatrices[i] = mgl32.Ident4()
	}
	m.InstanceMatricesUpdated = true
}

// SetInstanceTransform places instance index at position, turned yaw radians
// about +Y. Out of range indices are ignored.
func (m *Model) SetInstanceTransform(index int, position mgl32.Vec3, yaw float32) {
	if index < 0 || index >= len(m.InstanceModelMatrices) {
		return
	}
	rotation := mgl32.QuatRotate(yaw, mgl32.Vec3{0, 1, 0})
	m.InstanceModelMatrices[index] = ComposeTRS(position, rotation, mgl32.Vec3{1, 1, 1})
	m.InstanceMatricesUpdated = true
}

// PartColor is part i's color modulated by the model's diffuse color, so a
// model-wide tint still applies on top of per-primitive colors.
func (m *Model) PartColor(i int) mgl32.Vec3 {
	base := DefaultMaterial.DiffuseColor
	if m.Material != nil {
		base = m.Material.DiffuseColor
	}
	c := m.Parts[i].Color
	return mgl32.Vec3{base[0] * c[0], base[1] * c[1], base[2] * c[2]}
}

package renderer

import (
	"Meadow3D/internal/logger"
	"fmt"
	"image/color"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"
)

type OpenGLRenderer struct {
	defaultShader  Shader
	Models         []*Model
	Textures       *TextureManager
	defaultTexture uint32
	currentTexture uint32
}

func (rend *OpenGLRenderer) Init(width, height int32, _ *glfw.Window) {
	if err := gl.Init(); err != nil {
		logger.Log.Error("OpenGL initialization failed", zap.Error(err))
		return
	}

	if Debug {
		gl.PolygonMode(gl.FRONT_AND_BACK, gl.LINE)
	}
	rend.Textures = NewTextureManager()
	rend.defaultTexture = rend.Textures.CreateSolidTexture("default", color.RGBA{R: 255, G: 255, B: 255, A: 255})
	DefaultMaterial.TextureID = rend.defaultTexture

	gl.Viewport(0, 0, width, height)
	gl.ClearColor(0.0, 0.0, 0.0, 1.0)
	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)

	rend.defaultShader = InitShader()
	rend.defaultShader.Compile()
	logger.Log.Info("OpenGL render initialized",
		zap.String("version", gl.GoStr(gl.GetString(gl.VERSION))))
}

// AddModel uploads a model's buffers and texture. It must run on the thread
// that owns the GL context.
func (rend *OpenGLRenderer) AddModel(model *Model) {
	if model.uploaded {
		rend.Models = append(rend.Models, model)
		return
	}

	var vao uint32
	gl.GenVertexArrays(1, &vao)
	gl.BindVertexArray(vao)

	var vbo uint32
	gl.GenBuffers(1, &vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(model.InterleavedData)*4, gl.Ptr(model.InterleavedData), gl.STATIC_DRAW)

	var ebo uint32
	gl.GenBuffers(1, &ebo)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, ebo)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(model.Faces)*4, gl.Ptr(model.Faces), gl.STATIC_DRAW)

	stride := int32(VertexStride * 4)
	gl.VertexAttribPointer(0, 3, gl.FLOAT, false, stride, gl.PtrOffset(0))
	gl.EnableVertexAttribArray(0)

	gl.VertexAttribPointer(1, 2, gl.FLOAT, false, stride, gl.PtrOffset(3*4))
	gl.EnableVertexAttribArray(1)

	gl.VertexAttribPointer(2, 3, gl.FLOAT, false, stride, gl.PtrOffset(5*4))
	gl.EnableVertexAttribArray(2)

	if model.IsInstanced && len(model.InstanceModelMatrices) > 0 {
		gl.GenBuffers(1, &model.InstanceVBO)
		gl.BindBuffer(gl.ARRAY_BUFFER, model.InstanceVBO)
		matSize := int32(unsafe.Sizeof(mgl32.Mat4{}))
		gl.BufferData(gl.ARRAY_BUFFER, len(model.InstanceModelMatrices)*int(matSize), gl.Ptr(model.InstanceModelMatrices), gl.DYNAMIC_DRAW)

		for i := 0; i < 4; i++ {
			gl.EnableVertexAttribArray(3 + uint32(i))
			gl.VertexAttribPointer(3+uint32(i), 4, gl.FLOAT, false, matSize, gl.PtrOffset(i*16))
			gl.VertexAttribDivisor(3+uint32(i), 1)
		}
		model.InstanceMatricesUpdated = false
	}
	gl.BindVertexArray(0)

	model.VAO = vao
	model.VBO = vbo
	model.EBO = ebo
	model.uploaded = true

	rend.loadModelTexture(model)
	model.updateModelMatrix()
	model.IsDirty = false

	rend.Models = append(rend.Models, model)
}

func (rend *OpenGLRenderer) loadModelTexture(model *Model) {
	model.ensureMaterial()
	if model.Material.TexturePath == "" {
		if model.Material.TextureID == 0 {
			model.Material.TextureID = rend.defaultTexture
		}
		return
	}

	opts := TextureOptions{
		Repeat:     model.Material.UVRepeat != [2]float32{1, 1},
		NearestMag: model.Material.NearestFilter,
	}
	textureID, err := rend.Textures.LoadTexture(model.Material.TexturePath, opts)
	if err != nil {
		logger.Log.Error("Failed to load texture, using default",
			zap.String("model", model.Name),
			zap.String("path", model.Material.TexturePath),
			zap.Error(err))
		model.Material.TextureID = rend.defaultTexture
		return
	}
	model.Material.TextureID = textureID
}

func (rend *OpenGLRenderer) Render(camera Camera, lights []*Light) {
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)

	if DepthTestEnabled {
		gl.Enable(gl.DEPTH_TEST)
		gl.DepthMask(true)
	} else {
		gl.Disable(gl.DEPTH_TEST)
	}

	shader := &rend.defaultShader
	shader.Use()
	shader.SetMat4("viewProjection", camera.GetViewProjection())
	shader.SetInt("textureSampler", 0)
	rend.setLightUniforms(shader, lights)
	gl.ActiveTexture(gl.TEXTURE0)
	rend.currentTexture = 0

	for _, model := range rend.Models {
		model.UpdateMatrix()

		// Domes are seen from inside, everything else is double sided.
		if model.Inside {
			gl.Enable(gl.CULL_FACE)
			gl.CullFace(gl.BACK)
			gl.FrontFace(gl.CW)
		} else {
			gl.Disable(gl.CULL_FACE)
		}

		shader.SetMat4("model", model.ModelMatrix)
		shader.SetBool("unlit", model.Unlit)
		rend.setMaterialUniforms(shader, model)

		gl.BindVertexArray(model.VAO)
		instanced := model.IsInstanced && model.InstanceCount > 0
		if instanced && model.InstanceMatricesUpdated {
			rend.UpdateInstanceMatrices(model)
		}
		shader.SetBool("isInstanced", instanced)
		if len(model.Parts) == 0 {
			rend.drawRange(model, 0, len(model.Faces), instanced)
		} else {
			for i, part := range model.Parts {
				shader.SetVec3("diffuseColor", model.PartColor(i))
				rend.drawRange(model, part.First, part.Count, instanced)
			}
		}
		gl.BindVertexArray(0)
	}
	gl.FrontFace(gl.CCW)
	gl.Disable(gl.CULL_FACE)
}

// drawRange draws count indices of the bound model starting at first.
func (rend *OpenGLRenderer) drawRange(model *Model, first, count int, instanced bool) {
	offset := gl.PtrOffset(first * 4)
	if instanced {
		gl.DrawElementsInstanced(gl.TRIANGLES, int32(count), gl.UNSIGNED_INT, offset, int32(model.InstanceCount))
		return
	}
	gl.DrawElements(gl.TRIANGLES, int32(count), gl.UNSIGNED_INT, offset)
}

// setLightUniforms uploads the first hemisphere light and up to
// MaxDirectionalLights directional lights.
func (rend *OpenGLRenderer) setLightUniforms(shader *Shader, lights []*Light) {
	shader.SetFloat("hemi.intensity", 0)
	directional := 0
	for _, light := range lights {
		if light == nil {
			continue
		}
		switch light.Mode {
		case HemisphereLight:
			shader.SetVec3("hemi.sky", light.Color)
			shader.SetVec3("hemi.ground", light.GroundColor)
			shader.SetFloat("hemi.intensity", light.Intensity)
		case DirectionalLight:
			if directional >= MaxDirectionalLights {
				continue
			}
			prefix := fmt.Sprintf("dirLights[%d].", directional)
			shader.SetVec3(prefix+"direction", light.Direction())
			shader.SetVec3(prefix+"color", light.Color)
			shader.SetFloat(prefix+"intensity", light.Intensity)
			directional++
		}
	}
	shader.SetInt("dirLightCount", int32(directional))
}

func (rend *OpenGLRenderer) setMaterialUniforms(shader *Shader, model *Model) {
	material := model.Material
	if material == nil {
		material = DefaultMaterial
	}

	shader.SetVec3("diffuseColor", mgl32.Vec3(material.DiffuseColor))
	shader.SetFloat("alpha", material.Alpha)
	shader.SetVec2("uvRepeat", material.UVRepeat[0], material.UVRepeat[1])

	textureID := material.TextureID
	if textureID == 0 {
		textureID = rend.defaultTexture
	}
	if textureID != rend.currentTexture {
		gl.BindTexture(gl.TEXTURE_2D, textureID)
		rend.currentTexture = textureID
	}
}

func (rend *OpenGLRenderer) UpdateInstanceMatrices(model *Model) {
	if len(model.InstanceModelMatrices) == 0 {
		return
	}
	gl.BindBuffer(gl.ARRAY_BUFFER, model.InstanceVBO)
	gl.BufferData(gl.ARRAY_BUFFER, len(model.InstanceModelMatrices)*int(unsafe.Sizeof(mgl32.Mat4{})), gl.Ptr(model.InstanceModelMatrices), gl.DYNAMIC_DRAW)
	model.InstanceMatricesUpdated = false
}

func (rend *OpenGLRenderer) LoadTexture(path string, opts TextureOptions) (uint32, error) {
	return rend.Textures.LoadTexture(path, opts)
}

// UpdateViewport updates the OpenGL viewport to match the current window size
func (rend *OpenGLRenderer) UpdateViewport(width, height int32) {
	gl.Viewport(0, 0, width, height)
}

func (rend *OpenGLRenderer) Cleanup() {
	for _, model := range rend.Models {
		gl.DeleteVertexArrays(1, &model.VAO)
		gl.DeleteBuffers(1, &model.VBO)
		gl.DeleteBuffers(1, &model.EBO)
		if model.InstanceVBO != 0 {
			gl.DeleteBuffers(1, &model.InstanceVBO)
		}
	}
	if rend.Textures != nil {
		rend.Textures.LogStats()
		rend.Textures.Clear()
	}
}

package renderer

import (
	"Meadow3D/internal/logger"
	"strings"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"
)

// =============================================================
//
//	Shaders
//
// =============================================================
type Shader struct {
	vertexSource   string
	fragmentSource string
	program        uint32
	uniforms       *UniformCache
	isCompiled     bool
}

func (shader *Shader) Compile() {
	if !shader.IsValid() {
		logger.Log.Error("Shader has no source, skipping compile")
		return
	}
	vertexShader := GenShader(shader.vertexSource, gl.VERTEX_SHADER)
	fragmentShader := GenShader(shader.fragmentSource, gl.FRAGMENT_SHADER)
	shader.program = GenShaderProgram(vertexShader, fragmentShader)
	shader.uniforms = NewUniformCache(shader.program)
	shader.isCompiled = true
}

func (shader *Shader) IsValid() bool {
	return shader.vertexSource != "" && shader.fragmentSource != ""
}

func (shader *Shader) Use() {
	gl.UseProgram(shader.program)
}

func (shader *Shader) SetMat4(name string, value mgl32.Mat4) {
	shader.uniforms.SetMat4(name, value)
}

func (shader *Shader) SetVec3(name string, value mgl32.Vec3) {
	shader.uniforms.SetVec3(name, value.X(), value.Y(), value.Z())
}

func (shader *Shader) SetVec2(name string, x, y float32) {
	shader.uniforms.SetVec2(name, x, y)
}

func (shader *Shader) SetFloat(name string, value float32) {
	shader.uniforms.SetFloat(name, value)
}

func (shader *Shader) SetInt(name string, value int32) {
	shader.uniforms.SetInt(name, value)
}

func (shader *Shader) SetBool(name string, value bool) {
	var v int32
	if value {
		v = 1
	}
	shader.uniforms.SetInt(name, v)
}

var vertexShaderSource = `#version 330 core

layout(location = 0) in vec3 inPosition;
layout(location = 1) in vec2 inTexCoord;
layout(location = 2) in vec3 inNormal;
layout(location = 3) in mat4 instanceModel; // Per-instance transform, relative to model

uniform bool isInstanced;
uniform mat4 model;
uniform mat4 viewProjection;
uniform vec2 uvRepeat;

out vec2 fragTexCoord;
out vec3 Normal;
out vec3 FragPos;

void main() {
    mat4 modelMatrix = isInstanced ? model * instanceModel : model;

    FragPos = vec3(modelMatrix * vec4(inPosition, 1.0));
    Normal = mat3(transpose(inverse(modelMatrix))) * inNormal;
    fragTexCoord = inTexCoord * uvRepeat;

    gl_Position = viewProjection * vec4(FragPos, 1.0);
}
` + "\x00"

var fragmentShaderSource = `#version 330 core
#define MAX_DIR_LIGHTS 4
#define RECIPROCAL_PI 0.3183098861837907

in vec2 fragTexCoord;
in vec3 Normal;
in vec3 FragPos;

uniform sampler2D textureSampler;
uniform vec3 diffuseColor;
uniform float alpha;
uniform bool unlit;

uniform struct Hemisphere {
    vec3 sky;
    vec3 ground;
    float intensity;
} hemi;

uniform struct DirLight {
    vec3 direction;
    vec3 color;
    float intensity;
} dirLights[MAX_DIR_LIGHTS];
uniform int dirLightCount;

out vec4 FragColor;

void main() {
    vec4 texColor = texture(textureSampler, fragTexCoord);
    vec3 albedo = diffuseColor * texColor.rgb;

    if (unlit) {
        FragColor = vec4(albedo, alpha * texColor.a);
        return;
    }

    vec3 linearAlbedo = pow(albedo, vec3(2.2));
    vec3 norm = normalize(Normal);
    if (!gl_FrontFacing) {
        norm = -norm;
    }

    float hemiWeight = 0.5 * norm.y + 0.5;
    vec3 irradiance = mix(hemi.ground, hemi.sky, hemiWeight) * hemi.intensity;

    for (int i = 0; i < dirLightCount && i < MAX_DIR_LIGHTS; i++) {
        float diff = max(dot(norm, -dirLights[i].direction), 0.0);
        irradiance += diff * dirLights[i].color * dirLights[i].intensity;
    }

    vec3 result = linearAlbedo * irradiance * RECIPROCAL_PI;
    FragColor = vec4(pow(result, vec3(1.0 / 2.2)), alpha * texColor.a);
}
` + "\x00"

func InitShader() Shader {
	return Shader{
		vertexSource:   vertexShaderSource,
		fragmentSource: fragmentShaderSource,
	}
}

func GenShader(source string, shaderType uint32) uint32 {
	shader := gl.CreateShader(shaderType)
	cSources, free := gl.Strs(source)
	gl.ShaderSource(shader, 1, cSources, nil)
	free()
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLength)

		log := strings.Repeat("\x00", int(logLength+1))
		gl.GetShaderInfoLog(shader, logLength, nil, gl.Str(log))

		logger.Log.Error("Failed to compile shader", zap.Uint32("type", shaderType), zap.String("log", log))
	}

	return shader
}

func GenShaderProgram(vertexShader, fragmentShader uint32) uint32 {
	program := gl.CreateProgram()
	gl.AttachShader(program, vertexShader)
	gl.AttachShader(program, fragmentShader)
	gl.LinkProgram(program)

	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &logLength)

		log := strings.Repeat("\x00", int(logLength+1))
		gl.GetProgramInfoLog(program, logLength, nil, gl.Str(log))

		logger.Log.Error("Failed to link program", zap.String("log", log))
	} else {
		logger.Log.Debug("Shader program linked", zap.Uint32("program", program))
	}
	gl.DetachShader(program, vertexShader)
	gl.DeleteShader(vertexShader)
	gl.DetachShader(program, fragmentShader)
	gl.DeleteShader(fragmentShader)
	return program
}

package renderer

import (
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/go-gl/mathgl/mgl32"
)

type LightMode int

var Debug bool = false
var DepthTestEnabled bool = true

// Directional lights beyond this count are ignored by the default shader.
const MaxDirectionalLights = 4

const (
	DirectionalLight LightMode = iota
	HemisphereLight
)

type Light struct {
	Name string
	Mode LightMode
	// Directional lights shine from Position towards the world origin.
	Position mgl32.Vec3
	Color    mgl32.Vec3
	// GroundColor is the lower half of a hemisphere light.
	GroundColor mgl32.Vec3
	Intensity   float32
}

type Render interface {
	Init(width, height int32, window *glfw.Window)
	Render(camera Camera, lights []*Light)
	AddModel(model *Model)
	LoadTexture(path string, opts TextureOptions) (uint32, error)
	UpdateViewport(width, height int32)
	Cleanup()
}

func CreateDirectionalLight(name string, position, color mgl32.Vec3, intensity float32) *Light {
	return &Light{
		Name:      name,
		Mode:      DirectionalLight,
		Position:  position,
		Color:     color,
		Intensity: intensity,
	}
}

// CreateHemisphereLight creates an ambient light that fades from sky above to
// ground below.
func CreateHemisphereLight(name string, sky, ground mgl32.Vec3, intensity float32) *Light {
	return &Light{
		Name:        name,
		Mode:        HemisphereLight,
		Position:    mgl32.Vec3{0, 1, 0},
		Color:       sky,
		GroundColor: ground,
		Intensity:   intensity,
	}
}

// Direction points from the light towards the origin. A light sitting on the
// origin has no direction.
func (l *Light) Direction() mgl32.Vec3 {
	if l.Position.Len() == 0 {
		return mgl32.Vec3{}
	}
	return l.Position.Mul(-1).Normalize()
}

// ColorFromHex converts a 0xRRGGBB value to an RGB vector in [0, 1].
func ColorFromHex(hex uint32) mgl32.Vec3 {
	return mgl32.Vec3{
		float32((hex>>16)&0xff) / 255,
		float32((hex>>8)&0xff) / 255,
		float32(hex&0xff) / 255,
	}
}

package renderer

import (
	"github.com/go-gl/mathgl/mgl32"
)

// Segment counts used for the sky dome sphere.
const (
	SkyWidthSegments  = 50
	SkyHeightSegments = 50
)

// Skybox is a textured sphere seen from the inside. Its material color tints
// the texture, which is how the day/night cycle darkens the sky.
type Skybox struct {
	Model  *Model
	Radius float32
}

// CreateSkybox builds the dome; the texture is uploaded when the model is
// added to the renderer. An empty texturePath gives a plain colored sky.
func CreateSkybox(texturePath string, radius float32) (*Skybox, error) {
	sphere, err := NewSphere(radius, SkyWidthSegments, SkyHeightSegments)
	if err != nil {
		return nil, err
	}
	sphere.Name = "Sky"
	sphere.Unlit = true
	sphere.Inside = true
	if texturePath != "" {
		sphere.SetTexture(texturePath, 1, false)
	} else {
		sphere.SetDiffuseColor(1, 1, 1)
	}
	return &Skybox{Model: sphere, Radius: radius}, nil
}

// UpdateColor sets the tint applied to the sky texture.
func (s *Skybox) UpdateColor(c mgl32.Vec3) {
	if s == nil || s.Model == nil {
		return
	}
	s.Model.SetDiffuseColorVec(c)
}

func (s *Skybox) Color() mgl32.Vec3 {
	if s == nil || s.Model == nil || s.Model.Material == nil {
		return mgl32.Vec3{}
	}
	return mgl32.Vec3(s.Model.Material.DiffuseColor)
}

package scene

import (
	"Meadow3D/internal/config"
	"Meadow3D/internal/renderer"

	"github.com/aquilax/go-perlin"
)

const (
	reliefAlpha   = 2.0
	reliefBeta    = 2.0
	reliefOctaves = 3
)

// ReliefFunc returns a Perlin height field for the terrain, or nil when the
// configured relief is zero and the ground is flat.
func ReliefFunc(cfg config.TerrainConfig) renderer.HeightFunc {
	if cfg.Relief == 0 {
		return nil
	}
	noise := perlin.NewPerlin(reliefAlpha, reliefBeta, reliefOctaves, cfg.Seed)
	return func(x, z float32) float32 {
		return float32(noise.Noise2D(float64(x*cfg.ReliefScale), float64(z*cfg.ReliefScale))) * cfg.Relief
	}
}

// NewTerrain builds the textured ground plane.
func NewTerrain(cfg config.TerrainConfig) (*renderer.Model, error) {
	ground, err := renderer.NewPlane(cfg.Size, cfg.Resolution, ReliefFunc(cfg))
	if err != nil {
		return nil, err
	}
	ground.Name = "ground"
	ground.SetTexture(cfg.Texture, cfg.TextureRepeat, true)
	return ground, nil
}

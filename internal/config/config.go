package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Window   WindowConfig   `yaml:"window"`
	Logging  LoggingConfig  `yaml:"logging"`
	Camera   CameraConfig   `yaml:"camera"`
	Player   PlayerConfig   `yaml:"player"`
	Sky      SkyConfig      `yaml:"sky"`
	Terrain  TerrainConfig  `yaml:"terrain"`
	Lighting LightingConfig `yaml:"lighting"`
	Trees    TreesConfig    `yaml:"trees"`
}

type WindowConfig struct {
	Width  int32  `yaml:"width"`
	Height int32  `yaml:"height"`
	Title  string `yaml:"title"`
	X      int    `yaml:"x"`
	Y      int    `yaml:"y"`
}

type LoggingConfig struct {
	Level string `yaml:"level"`
}

type CameraConfig struct {
	Fov              float32    `yaml:"fov"`
	Near             float32    `yaml:"near"`
	Far              float32    `yaml:"far"`
	Position         [3]float32 `yaml:"position"`
	Target           [3]float32 `yaml:"target"`
	OrbitSensitivity float32    `yaml:"orbit_sensitivity"`
	ZoomSpeed        float32    `yaml:"zoom_speed"`
}

type PlayerConfig struct {
	Model         string     `yaml:"model"`
	Scale         float32    `yaml:"scale"`
	Speed         float32    `yaml:"speed"`
	IdleClip      int        `yaml:"idle_clip"`
	WalkClip      int        `yaml:"walk_clip"`
	WalkTimeScale float32    `yaml:"walk_time_scale"`
	FadeDuration  float32    `yaml:"fade_duration"`
	FollowOffset  [3]float32 `yaml:"follow_offset"`
	FollowLerp    float32    `yaml:"follow_lerp"`
	Tint          uint32     `yaml:"tint"` // only for models without their own colors
}

type SkyConfig struct {
	Texture            string  `yaml:"texture"`
	Radius             float32 `yaml:"radius"`
	DayColor           uint32  `yaml:"day_color"`
	NightColor         uint32  `yaml:"night_color"`
	TransitionExponent float32 `yaml:"transition_exponent"`
}

type TerrainConfig struct {
	Texture       string  `yaml:"texture"`
	TextureRepeat float32 `yaml:"texture_repeat"`
	Size          float32 `yaml:"size"`
	Resolution    int     `yaml:"resolution"`
	Relief        float32 `yaml:"relief"`
	ReliefScale   float32 `yaml:"relief_scale"`
	Seed          int64   `yaml:"seed"`
}

type LightingConfig struct {
	HemisphereSky       uint32  `yaml:"hemisphere_sky"`
	HemisphereGround    uint32  `yaml:"hemisphere_ground"`
	HemisphereIntensity float32 `yaml:"hemisphere_intensity"`
	DayColor            uint32  `yaml:"day_color"`
	NightColor          uint32  `yaml:"night_color"`
	SunBodyColor        uint32  `yaml:"sun_body_color"`
	MoonBodyColor       uint32  `yaml:"moon_body_color"`
	BodyRadius          float32 `yaml:"body_radius"`
	OrbitRadius         float32 `yaml:"orbit_radius"`
	AngularSpeed        float32 `yaml:"angular_speed"`
}

type TreesConfig struct {
	Seed     int64        `yaml:"seed"`
	PerGroup int          `yaml:"per_group"`
	Spread   float32      `yaml:"spread"`
	Models   []TreeModel  `yaml:"models"`
	Offsets  [][2]float32 `yaml:"offsets"`
}

type TreeModel struct {
	Path string `yaml:"path"`
	Tint uint32 `yaml:"tint"` // fallback when the file has no materials
}

// Default returns the meadow as it ships: a 100x100 grass field, ten trees of
// each kind per quadrant and a sheep walking at two units per second.
func Default() *Config {
	return &Config{
		Window:  WindowConfig{Width: 1280, Height: 720, Title: "Meadow3D", X: 100, Y: 100},
		Logging: LoggingConfig{Level: "info"},
		Camera: CameraConfig{
			Fov:              105,
			Near:             0.1,
			Far:              100,
			Position:         [3]float32{0, 4, 4},
			Target:           [3]float32{0, 2, 0},
			OrbitSensitivity: 0.005,
			ZoomSpeed:        0.5,
		},
		Player: PlayerConfig{
			Model:         "animals/Sheep.glb",
			Scale:         0.5,
			Speed:         2.0,
			IdleClip:      3,
			WalkClip:      5,
			WalkTimeScale: 0.5,
			FadeDuration:  0.5,
			FollowOffset:  [3]float32{0, 5, -10},
			FollowLerp:    0.1,
			Tint:          0xf2f2f2,
		},
		Sky: SkyConfig{
			Texture:            "textures/sky_seamless.png",
			Radius:             50,
			DayColor:           0xb1e1ff,
			NightColor:         0x000033,
			TransitionExponent: 0.2,
		},
		Terrain: TerrainConfig{
			Texture:       "textures/grass_seamless.png",
			TextureRepeat: 50,
			Size:          100,
			Resolution:    2,
			ReliefScale:   0.05,
			Seed:          7,
		},
		Lighting: LightingConfig{
			HemisphereSky:       0xb1e1ff,
			HemisphereGround:    0xb97a20,
			HemisphereIntensity: 2,
			DayColor:            0xffff00,
			NightColor:          0x8888ff,
			SunBodyColor:        0xffff00,
			MoonBodyColor:       0x888888,
			BodyRadius:          1,
			OrbitRadius:         50,
			AngularSpeed:        0.1,
		},
		Trees: TreesConfig{
			Seed:     42,
			PerGroup: 10,
			Spread:   50,
			Models: []TreeModel{
				{Path: "objects/Tree.glb", Tint: 0x4f8a3a},
				{Path: "objects/Tree2.glb", Tint: 0x3f7a34},
				{Path: "objects/Tree3.glb", Tint: 0x5b9442},
			},
			Offsets: [][2]float32{{15, 15}, {-15, -15}, {-15, 15}, {15, -15}},
		},
	}
}

// Load reads a YAML file on top of Default, so a file only needs the keys it
// changes.
func Load(path string) (*Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// ResolveAssets prefixes every relative asset path with root.
func (c *Config) ResolveAssets(root string) {
	resolve := func(path string) string {
		if path == "" || filepath.IsAbs(path) {
			return path
		}
		return filepath.Join(root, path)
	}
	c.Sky.Texture = resolve(c.Sky.Texture)
	c.Terrain.Texture = resolve(c.Terrain.Texture)
	c.Player.Model = resolve(c.Player.Model)
	for i := range c.Trees.Models {
		c.Trees.Models[i].Path = resolve(c.Trees.Models[i].Path)
	}
}

func (c *Config) Validate() error {
	var errs []error
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		errs = append(errs, errors.New("window size must be positive"))
	}
	if c.Camera.Near <= 0 || c.Camera.Far <= c.Camera.Near {
		errs = append(errs, errors.New("camera planes must satisfy 0 < near < far"))
	}
	if c.Camera.Fov <= 0 || c.Camera.Fov >= 180 {
		errs = append(errs, errors.New("camera fov must be in (0, 180)"))
	}
	if c.Player.Speed <= 0 {
		errs = append(errs, errors.New("player speed must be positive"))
	}
	if c.Player.Scale <= 0 {
		errs = append(errs, errors.New("player scale must be positive"))
	}
	if c.Player.FadeDuration < 0 {
		errs = append(errs, errors.New("fade duration must not be negative"))
	}
	if c.Player.FollowLerp <= 0 || c.Player.FollowLerp > 1 {
		errs = append(errs, errors.New("follow lerp must be in (0, 1]"))
	}
	if c.Terrain.Size <= 0 {
		errs = append(errs, errors.New("terrain size must be positive"))
	}
	if c.Terrain.TextureRepeat <= 0 {
		errs = append(errs, errors.New("terrain texture repeat must be positive"))
	}
	if c.Terrain.Resolution < 2 {
		errs = append(errs, errors.New("terrain resolution must be at least 2"))
	}
	if c.Sky.Radius <= 0 || c.Lighting.OrbitRadius <= 0 {
		errs = append(errs, errors.New("sky and orbit radius must be positive"))
	}
	if c.Sky.TransitionExponent <= 0 {
		errs = append(errs, errors.New("sky transition exponent must be positive"))
	}
	if c.Trees.PerGroup < 0 || c.Trees.Spread < 0 {
		errs = append(errs, errors.New("tree counts and spread must not be negative"))
	}
	return errors.Join(errs...)
}

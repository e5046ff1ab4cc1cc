package scene

import (
	"Meadow3D/internal/animation"
	"Meadow3D/internal/behaviour"
	"Meadow3D/internal/config"
	"Meadow3D/internal/loader"
	"Meadow3D/internal/logger"
	"Meadow3D/internal/renderer"
	"math/rand"

	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"
)

const (
	bodySegmentsWidth  = 32
	bodySegmentsHeight = 32
)

// Host receives the models the meadow builds. Models must be added from the
// render thread; the engine satisfies this.
type Host interface {
	AddModel(model *renderer.Model)
}

// AssetLoader loads one model file prepared for the given number of
// instances, zero for a single draw. It runs off the render thread.
type AssetLoader func(path string, instances int) (*loader.Asset, error)

type treeLoad struct {
	load       *loader.Pending[*loader.Asset]
	tint       uint32
	placements []Placement
}

// Meadow assembles the scene and runs it: ground, sky, sun and moon, trees
// and the sheep the player walks around.
type Meadow struct {
	cfg     *config.Config
	host    Host
	camera  *renderer.Camera
	updater *FrameUpdater
	input   InputState
	load    AssetLoader

	Lights     []*renderer.Light
	hemisphere *renderer.Light
	sunLight   *renderer.Light
	moonLight  *renderer.Light

	sky       *renderer.Skybox
	ground    *renderer.Model
	sunBody   *renderer.Model
	moonBody  *renderer.Model
	character *renderer.Model
	trees     []*renderer.Model

	pendingCharacter *loader.Pending[*loader.Asset]
	pendingTrees     []treeLoad
}

func NewMeadow(cfg *config.Config, host Host, camera *renderer.Camera) *Meadow {
	m := &Meadow{
		cfg:     cfg,
		host:    host,
		camera:  camera,
		updater: NewFrameUpdater(cfg, camera),
		load:    loader.LoadAssetInstanced,
	}

	light := cfg.Lighting
	m.hemisphere = renderer.CreateHemisphereLight("hemisphere",
		renderer.ColorFromHex(light.HemisphereSky),
		renderer.ColorFromHex(light.HemisphereGround),
		light.HemisphereIntensity)
	m.sunLight = renderer.CreateDirectionalLight("sun", mgl32.Vec3{light.OrbitRadius, 0, 0}, renderer.ColorFromHex(light.DayColor), 0)
	m.moonLight = renderer.CreateDirectionalLight("moon", mgl32.Vec3{-light.OrbitRadius, 0, 0}, renderer.ColorFromHex(light.NightColor), 0)
	m.Lights = []*renderer.Light{m.hemisphere, m.sunLight, m.moonLight}
	return m
}

// SetAssetLoader replaces the file loader, mostly for tests.
func (m *Meadow) SetAssetLoader(load AssetLoader) {
	m.load = load
}

// HandleKey is the engine's key callback.
func (m *Meadow) HandleKey(key glfw.Key, action glfw.Action) {
	m.input.HandleKey(key, action)
}

// Start builds the static scene and kicks off the model loads.
func (m *Meadow) Start() {
	if err := m.buildStatic(); err != nil {
		logger.Log.Error("Failed to build meadow", zap.Error(err))
	}

	rng := rand.New(rand.NewSource(m.cfg.Trees.Seed))
	for _, tree := range m.cfg.Trees.Models {
		var placements []Placement
		for _, offset := range m.cfg.Trees.Offsets {
			placements = append(placements, Scatter(rng, offset, m.cfg.Trees.Spread, m.cfg.Trees.PerGroup)...)
		}
		m.pendingTrees = append(m.pendingTrees, treeLoad{
			load:       m.startLoad(tree.Path, len(placements)),
			tint:       tree.Tint,
			placements: placements,
		})
	}
	m.pendingCharacter = m.startLoad(m.cfg.Player.Model, 0)

	logger.Log.Info("Meadow started",
		zap.Int("treeModels", len(m.pendingTrees)),
		zap.String("character", m.cfg.Player.Model))
}

func (m *Meadow) startLoad(path string, instances int) *loader.Pending[*loader.Asset] {
	load := m.load
	return loader.Go(path, func() (*loader.Asset, error) {
		return load(path, instances)
	})
}

func (m *Meadow) buildStatic() error {
	ground, err := NewTerrain(m.cfg.Terrain)
	if err != nil {
		return err
	}
	m.ground = ground
	m.host.AddModel(ground)

	sky, err := renderer.CreateSkybox(m.cfg.Sky.Texture, m.cfg.Sky.Radius)
	if err != nil {
		return err
	}
	m.sky = sky
	sky.UpdateColor(renderer.ColorFromHex(m.cfg.Sky.DayColor))
	m.host.AddModel(sky.Model)

	if m.sunBody, err = m.newBody("sun", m.cfg.Lighting.SunBodyColor); err != nil {
		return err
	}
	if m.moonBody, err = m.newBody("moon", m.cfg.Lighting.MoonBodyColor); err != nil {
		return err
	}
	return nil
}

func (m *Meadow) newBody(name string, color uint32) (*renderer.Model, error) {
	body, err := renderer.NewSphere(m.cfg.Lighting.BodyRadius, bodySegmentsWidth, bodySegmentsHeight)
	if err != nil {
		return nil, err
	}
	body.Name = name
	body.Unlit = true
	body.SetDiffuseColorVec(renderer.ColorFromHex(color))
	m.host.AddModel(body)
	return body, nil
}

// Update resolves finished loads, runs the frame and pushes the results
// into the models and lights.
func (m *Meadow) Update(tick behaviour.Tick) {
	m.resolveLoads()

	celestial := m.updater.Update(tick, m.input)
	m.applyCelestial(celestial)

	if p := m.updater.Player; p != nil && m.character != nil {
		m.character.SetPositionVec(p.Position)
		m.character.SetYaw(p.Yaw)
	}
}

func (m *Meadow) applyCelestial(c CelestialState) {
	m.sunLight.Position = c.SunPosition
	m.sunLight.Intensity = c.SunIntensity
	m.sunLight.Color = c.LightColor
	m.moonLight.Position = c.MoonPosition
	m.moonLight.Intensity = c.MoonIntensity

	if m.sunBody != nil {
		m.sunBody.SetPositionVec(c.SunPosition)
	}
	if m.moonBody != nil {
		m.moonBody.SetPositionVec(c.MoonPosition)
	}
	m.sky.UpdateColor(c.SkyColor)
}

func (m *Meadow) resolveLoads() {
	remaining := m.pendingTrees[:0]
	for _, pending := range m.pendingTrees {
		asset, ok, err := pending.load.Poll()
		if !ok {
			remaining = append(remaining, pending)
			continue
		}
		if err != nil {
			logger.Log.Error("Failed to load tree model", zap.String("path", pending.load.Source()), zap.Error(err))
			continue
		}
		m.placeTrees(asset.Model, pending)
	}
	m.pendingTrees = remaining

	if m.pendingCharacter == nil {
		return
	}
	asset, ok, err := m.pendingCharacter.Poll()
	if !ok {
		return
	}
	source := m.pendingCharacter.Source()
	m.pendingCharacter = nil
	if err != nil {
		logger.Log.Error("Failed to load character model", zap.String("path", source), zap.Error(err))
		return
	}
	m.placeCharacter(asset)
}

// placeTrees positions the instances the model was loaded with, one per
// placement.
func (m *Meadow) placeTrees(model *renderer.Model, pending treeLoad) {
	tintPlain(model, pending.tint)
	for i, p := range pending.placements {
		model.SetInstanceTransform(i, p.Position, p.Yaw)
	}
	m.trees = append(m.trees, model)
	m.host.AddModel(model)
	logger.Log.Info("Trees placed",
		zap.String("model", model.Name),
		zap.Int("instances", len(pending.placements)))
}

func (m *Meadow) placeCharacter(asset *loader.Asset) {
	cfg := m.cfg.Player
	model := asset.Model
	model.SetScale(cfg.Scale, cfg.Scale, cfg.Scale)
	tintPlain(model, cfg.Tint)
	m.character = model
	m.host.AddModel(model)

	var clips ClipController
	controller, err := animation.NewCharacterController(asset.Clips, animation.ClipSet{
		Idle:          cfg.IdleClip,
		Walk:          cfg.WalkClip,
		WalkTimeScale: cfg.WalkTimeScale,
		Fade:          cfg.FadeDuration,
	})
	if err != nil {
		logger.Log.Warn("Character animations unavailable", zap.String("model", model.Name), zap.Error(err))
	} else {
		clips = controller
	}

	m.updater.Attach(&PlayerState{Mode: Idle}, clips)
	logger.Log.Info("Character ready", zap.String("model", model.Name), zap.Int("clips", len(asset.Clips)))
}

// tintPlain colors models whose file carried no colors of its own.
func tintPlain(model *renderer.Model, tint uint32) {
	if len(model.Parts) > 0 || model.Material != nil {
		return
	}
	model.SetDiffuseColorVec(renderer.ColorFromHex(tint))
}

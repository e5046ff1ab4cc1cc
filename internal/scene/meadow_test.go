package scene

import (
	"errors"
	"math"
	"sync"
	"testing"

	"Meadow3D/internal/animation"
	"Meadow3D/internal/behaviour"
	"Meadow3D/internal/config"
	"Meadow3D/internal/loader"
	"Meadow3D/internal/renderer"

	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/go-gl/mathgl/mgl32"
)

type recordingHost struct {
	models []*renderer.Model
}

func (h *recordingHost) AddModel(model *renderer.Model) {
	h.models = append(h.models, model)
}

type stillClip struct{ updates int }

func (c *stillClip) Update(delta float32) { c.updates++ }
func (c *stillClip) Reset()               {}

func triangleAsset(clips, instances int) *loader.Asset {
	model := renderer.CreateModel([]float32{
		0, 0, 0, 0, 0, 0, 1, 0,
		1, 0, 0, 1, 0, 0, 1, 0,
		0, 0, 1, 0, 1, 0, 1, 0,
	}, []uint32{0, 2, 1})
	if instances > 0 {
		model.SetInstanceCount(instances)
	}
	asset := &loader.Asset{Model: model}
	for i := 0; i < clips; i++ {
		asset.Clips = append(asset.Clips, animation.Clip(&stillClip{}))
	}
	return asset
}

func startMeadow(t *testing.T, load AssetLoader) (*Meadow, *recordingHost) {
	t.Helper()
	cfg := config.Default()
	host := &recordingHost{}
	camera := renderer.NewPerspectiveCamera(cfg.Camera.Fov, 16.0/9.0, cfg.Camera.Near, cfg.Camera.Far)
	m := NewMeadow(cfg, host, camera)
	m.SetAssetLoader(load)
	m.Start()

	for _, pending := range m.pendingTrees {
		pending.load.Wait()
	}
	m.pendingCharacter.Wait()
	return m, host
}

func TestMeadowAssembly(t *testing.T) {
	m, host := startMeadow(t, func(path string, instances int) (*loader.Asset, error) {
		if path == "animals/Sheep.glb" {
			return triangleAsset(6, instances), nil
		}
		return triangleAsset(0, instances), nil
	})

	// Ground, sky, sun and moon exist before any load resolves.
	if len(host.models) != 4 {
		t.Fatalf("Expected 4 static models, got %d", len(host.models))
	}
	if len(m.Lights) != 3 || m.Lights[0].Mode != renderer.HemisphereLight {
		t.Fatalf("Expected hemisphere, sun and moon lights, got %d", len(m.Lights))
	}

	m.Update(behaviour.Tick{Elapsed: 0, Previous: 0})

	if len(host.models) != 8 {
		t.Fatalf("Expected 3 tree models and the sheep added, got %d models", len(host.models))
	}
	if len(m.trees) != 3 {
		t.Fatalf("Expected 3 tree models, got %d", len(m.trees))
	}
	for _, tree := range m.trees {
		if !tree.IsInstanced || tree.InstanceCount != 40 {
			t.Errorf("Expected 40 instanced trees per model, got instanced=%v count=%d", tree.IsInstanced, tree.InstanceCount)
		}
	}
	if m.character == nil || m.character.Scale != [3]float32{0.5, 0.5, 0.5} {
		t.Fatalf("Expected sheep at scale 0.5, got %+v", m.character)
	}
	if m.updater.Player == nil || m.updater.Clips == nil {
		t.Fatal("Expected player and clips attached")
	}
	if m.pendingCharacter != nil || len(m.pendingTrees) != 0 {
		t.Error("Resolved loads should be dropped")
	}

	m.HandleKey(glfw.KeyW, glfw.Press)
	m.Update(behaviour.Tick{Elapsed: 1, Previous: 0})

	if !m.character.Position.ApproxEqualThreshold(m.updater.Player.Position, 1e-6) {
		t.Errorf("Model position %v does not follow player %v", m.character.Position, m.updater.Player.Position)
	}
	if math.Abs(float64(m.updater.Player.Position.Z()+2)) > 1e-5 {
		t.Errorf("Expected sheep to walk to z=-2, got %v", m.updater.Player.Position)
	}
	if !m.updater.Clips.IsActive(Walk) {
		t.Error("Expected walk animation while W is held")
	}
}

func TestMeadowAppliesCelestialState(t *testing.T) {
	m, _ := startMeadow(t, func(path string, instances int) (*loader.Asset, error) {
		return triangleAsset(6, instances), nil
	})

	tick := behaviour.Tick{Elapsed: 12, Previous: 11}
	m.Update(tick)
	want := m.updater.Celestial.Compute(tick.Elapsed)

	if m.sunLight.Position != want.SunPosition || m.sunLight.Intensity != want.SunIntensity {
		t.Errorf("Sun light not updated: %+v", m.sunLight)
	}
	if m.sunLight.Color != want.LightColor {
		t.Errorf("Sun light color %v, want %v", m.sunLight.Color, want.LightColor)
	}
	if m.moonLight.Position != want.MoonPosition || m.moonLight.Intensity != want.MoonIntensity {
		t.Errorf("Moon light not updated: %+v", m.moonLight)
	}
	if m.sunBody.Position != want.SunPosition || m.moonBody.Position != want.MoonPosition {
		t.Error("Sun and moon bodies should follow their lights")
	}
	if m.sky.Color() != want.SkyColor {
		t.Errorf("Sky color %v, want %v", m.sky.Color(), want.SkyColor)
	}
}

func TestMeadowSurvivesFailedLoads(t *testing.T) {
	m, host := startMeadow(t, func(path string, instances int) (*loader.Asset, error) {
		if path == "objects/Tree2.glb" || path == "animals/Sheep.glb" {
			return nil, errors.New("file not found")
		}
		return triangleAsset(0, instances), nil
	})

	m.HandleKey(glfw.KeyD, glfw.Press)
	m.Update(behaviour.Tick{Elapsed: 1, Previous: 0})
	m.Update(behaviour.Tick{Elapsed: 2, Previous: 1})

	if len(m.trees) != 2 {
		t.Errorf("Expected the two good tree models, got %d", len(m.trees))
	}
	if len(host.models) != 6 {
		t.Errorf("Expected 6 models, got %d", len(host.models))
	}
	if m.updater.Player != nil {
		t.Error("Player should stay absent when the sheep fails to load")
	}
}

func TestMeadowWithoutClipsStillMoves(t *testing.T) {
	m, _ := startMeadow(t, func(path string, instances int) (*loader.Asset, error) {
		return triangleAsset(2, instances), nil
	})

	m.Update(behaviour.Tick{Elapsed: 0, Previous: 0})
	if m.updater.Player == nil {
		t.Fatal("Expected player attached")
	}
	if m.updater.Clips != nil {
		t.Error("Too few clips should leave the player unanimated")
	}

	m.HandleKey(glfw.KeyLeft, glfw.Press)
	m.Update(behaviour.Tick{Elapsed: 0.5, Previous: 0})
	if math.Abs(float64(m.updater.Player.Position.X()+1)) > 1e-5 {
		t.Errorf("Expected x=-1, got %v", m.updater.Player.Position)
	}
}

func TestMeadowRequestsInstancesPerPlacement(t *testing.T) {
	var mu sync.Mutex
	requested := make(map[string]int)
	m, _ := startMeadow(t, func(path string, instances int) (*loader.Asset, error) {
		mu.Lock()
		requested[path] = instances
		mu.Unlock()
		return triangleAsset(6, instances), nil
	})
	m.Update(behaviour.Tick{})

	mu.Lock()
	defer mu.Unlock()
	for _, tree := range m.cfg.Trees.Models {
		if requested[tree.Path] != 40 {
			t.Errorf("Expected %s loaded with 40 instances, got %d", tree.Path, requested[tree.Path])
		}
	}
	if requested[m.cfg.Player.Model] != 0 {
		t.Errorf("The sheep is drawn once, got %d instances", requested[m.cfg.Player.Model])
	}
}

func TestTintOnlyColorsPlainModels(t *testing.T) {
	m, _ := startMeadow(t, func(path string, instances int) (*loader.Asset, error) {
		asset := triangleAsset(6, instances)
		asset.Model.Name = path
		if path == "objects/Tree.glb" {
			asset.Model.Parts = []renderer.Part{
				{Name: "trunk", First: 0, Count: 3, Color: [3]float32{0.4, 0.25, 0.1}},
			}
		}
		return asset, nil
	})
	m.Update(behaviour.Tick{})

	if len(m.trees) != 3 {
		t.Fatalf("Expected 3 tree models, got %d", len(m.trees))
	}
	for _, tree := range m.trees {
		if tree.Name == "objects/Tree.glb" {
			if tree.Material != nil {
				t.Error("A model with its own part colors should not be tinted")
			}
			if got := tree.PartColor(0); !got.ApproxEqual(mgl32.Vec3{0.4, 0.25, 0.1}) {
				t.Errorf("Trunk should keep its brown, got %v", got)
			}
			continue
		}
		if tree.Material == nil {
			t.Errorf("Plain tree model %s should be tinted", tree.Name)
		}
	}
	want := renderer.ColorFromHex(m.cfg.Player.Tint)
	if got := mgl32.Vec3(m.character.Material.DiffuseColor); got != want {
		t.Errorf("Plain sheep should take the fallback tint %v, got %v", want, got)
	}
}

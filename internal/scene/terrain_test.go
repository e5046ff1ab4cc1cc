package scene

import (
	"testing"

	"Meadow3D/internal/config"
	"Meadow3D/internal/renderer"
)

func TestFlatTerrainByDefault(t *testing.T) {
	cfg := config.Default().Terrain
	if ReliefFunc(cfg) != nil {
		t.Fatal("Expected no relief with relief 0")
	}

	ground, err := NewTerrain(cfg)
	if err != nil {
		t.Fatalf("NewTerrain failed: %v", err)
	}
	for v := 0; v < ground.VertexCount(); v++ {
		if y := ground.InterleavedData[v*renderer.VertexStride+1]; y != 0 {
			t.Fatalf("vertex %d height %f, want flat", v, y)
		}
	}
	if ground.Material.TexturePath != "textures/grass_seamless.png" {
		t.Errorf("Unexpected ground texture %q", ground.Material.TexturePath)
	}
	if ground.Material.UVRepeat != [2]float32{50, 50} {
		t.Errorf("Expected texture repeated 50 times, got %v", ground.Material.UVRepeat)
	}
	if !ground.Material.NearestFilter {
		t.Error("Expected nearest magnification on the grass")
	}
}

func TestReliefIsDeterministic(t *testing.T) {
	cfg := config.Default().Terrain
	cfg.Relief = 3
	cfg.Resolution = 16

	a, b := ReliefFunc(cfg), ReliefFunc(cfg)
	if a == nil {
		t.Fatal("Expected a relief function")
	}

	varied := false
	first := a(1.3, 2.7)
	for _, p := range [][2]float32{{1.3, 2.7}, {-20.1, 14.2}, {33.3, -41.7}, {7.9, 7.9}} {
		h := a(p[0], p[1])
		if h != b(p[0], p[1]) {
			t.Errorf("height at %v differs between identical seeds", p)
		}
		if h < -2*cfg.Relief || h > 2*cfg.Relief {
			t.Errorf("height %f at %v far outside the relief %f", h, p, cfg.Relief)
		}
		if h != first {
			varied = true
		}
	}
	if !varied {
		t.Error("Expected the relief to vary across the field")
	}

	ground, err := NewTerrain(cfg)
	if err != nil {
		t.Fatalf("NewTerrain failed: %v", err)
	}
	if ground.VertexCount() != 16*16 {
		t.Errorf("Expected 256 vertices, got %d", ground.VertexCount())
	}
}

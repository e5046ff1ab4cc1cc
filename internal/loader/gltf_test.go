package loader

import (
	"testing"

	"github.com/g3n/engine/loader/gltf"
)

func TestBaseColors(t *testing.T) {
	doc := &gltf.GLTF{
		Materials: []gltf.Material{
			{Name: "bark", PbrMetallicRoughness: &gltf.PbrMetallicRoughness{BaseColorFactor: &[4]float32{0.4, 0.25, 0.1, 1}}},
			{Name: "leaves", PbrMetallicRoughness: &gltf.PbrMetallicRoughness{BaseColorFactor: &[4]float32{0.2, 0.6, 0.2, 1}}},
			{Name: "untextured", PbrMetallicRoughness: &gltf.PbrMetallicRoughness{}},
			{Name: "legacy"},
		},
	}

	colors := baseColors(doc)
	want := [][3]float32{
		{0.4, 0.25, 0.1},
		{0.2, 0.6, 0.2},
		{1, 1, 1},
		{1, 1, 1},
	}
	if len(colors) != len(want) {
		t.Fatalf("Expected %d colors, got %d", len(want), len(colors))
	}
	for i := range want {
		if colors[i] != want[i] {
			t.Errorf("Material %d: expected %v, got %v", i, want[i], colors[i])
		}
	}
}

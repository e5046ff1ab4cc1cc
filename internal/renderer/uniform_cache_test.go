package renderer

import (
	"testing"
)

func TestNewUniformCache(t *testing.T) {
	cache := NewUniformCache(7)

	if cache == nil {
		t.Fatal("NewUniformCache returned nil")
	}

	if cache.locations == nil {
		t.Error("locations map should be initialized")
	}

	if cache.Program() != 7 {
		t.Errorf("Expected program 7, got %d", cache.Program())
	}
}

func TestUniformCacheClear(t *testing.T) {
	cache := NewUniformCache(0)
	cache.locations["test"] = 5

	cache.Clear()

	if len(cache.locations) != 0 {
		t.Error("Clear should empty the cache")
	}
}

func TestUniformCacheReturnsCachedLocation(t *testing.T) {
	cache := NewUniformCache(0)
	cache.locations["light.color"] = 3
	cache.locations["optimisedAway"] = -1

	if loc := cache.GetLocation("light.color"); loc != 3 {
		t.Errorf("Expected cached location 3, got %d", loc)
	}
	if loc := cache.GetLocation("optimisedAway"); loc != -1 {
		t.Errorf("Expected cached -1, got %d", loc)
	}
}

package renderer

import (
	"Meadow3D/internal/logger"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"sync"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"
)

// TextureOptions control sampling of a loaded texture.
type TextureOptions struct {
	Repeat     bool // Wrap instead of clamping, for tiled textures
	NearestMag bool // Nearest-neighbour magnification
}

// TextureStats provides debugging and profiling information
type TextureStats struct {
	TotalTextures  int
	CacheHits      int
	CacheMisses    int
	ActiveTextures int
}

// TextureManager caches textures by path and frees them when the last model
// using one releases it.
type TextureManager struct {
	textureCache    map[string]uint32 // cache key -> OpenGL texture ID
	textureRefCount map[uint32]int    // texture ID -> reference count
	texturePaths    map[uint32]string // texture ID -> cache key
	mu              sync.RWMutex
	stats           TextureStats
}

func NewTextureManager() *TextureManager {
	return &TextureManager{
		textureCache:    make(map[string]uint32),
		textureRefCount: make(map[uint32]int),
		texturePaths:    make(map[uint32]string),
	}
}

func textureKey(path string, opts TextureOptions) string {
	return fmt.Sprintf("%s|repeat=%t|nearest=%t", path, opts.Repeat, opts.NearestMag)
}

// LoadTexture loads a texture from file or returns the cached texture ID,
// incrementing its reference count either way.
func (tm *TextureManager) LoadTexture(filePath string, opts TextureOptions) (uint32, error) {
	tm.mu.Lock()
	defer tm.mu.Unlock()

	key := textureKey(filePath, opts)
	if textureID, exists := tm.textureCache[key]; exists {
		tm.textureRefCount[textureID]++
		tm.stats.CacheHits++
		return textureID, nil
	}

	tm.stats.CacheMisses++

	rgba, err := DecodeRGBA(filePath)
	if err != nil {
		return 0, err
	}

	textureID := uploadTexture(rgba, opts)
	tm.track(key, textureID)

	logger.Log.Info("Texture loaded and cached",
		zap.String("path", filePath),
		zap.Uint32("textureID", textureID),
		zap.Int("width", rgba.Rect.Size().X),
		zap.Int("height", rgba.Rect.Size().Y))

	return textureID, nil
}

// CreateSolidTexture creates (or reuses) a 1x1 texture of a single color.
func (tm *TextureManager) CreateSolidTexture(name string, c color.RGBA) uint32 {
	tm.mu.Lock()
	defer tm.mu.Unlock()

	if textureID, exists := tm.textureCache[name]; exists {
		tm.textureRefCount[textureID]++
		tm.stats.CacheHits++
		return textureID
	}

	img := image.NewRGBA(image.Rect(0, 0, 1, 1))
	img.SetRGBA(0, 0, c)
	textureID := uploadTexture(img, TextureOptions{Repeat: true})
	tm.track(name, textureID)
	return textureID
}

func (tm *TextureManager) track(key string, textureID uint32) {
	tm.textureCache[key] = textureID
	tm.textureRefCount[textureID] = 1
	tm.texturePaths[textureID] = key
	tm.stats.TotalTextures++
	tm.stats.ActiveTextures++
}

// DecodeRGBA reads an image file into tightly packed RGBA pixels, bottom row
// first as OpenGL expects.
func DecodeRGBA(filePath string) (*image.RGBA, error) {
	imgFile, err := os.Open(filePath)
	if err != nil {
		return nil, err
	}
	defer imgFile.Close()

	img, _, err := image.Decode(imgFile)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", filePath, err)
	}

	b := img.Bounds()
	rgba := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	if rgba.Stride != rgba.Rect.Size().X*4 {
		return nil, fmt.Errorf("unsupported stride")
	}
	draw.Draw(rgba, rgba.Bounds(), img, b.Min, draw.Src)
	flipRows(rgba)
	return rgba, nil
}

func flipRows(rgba *image.RGBA) {
	row := make([]uint8, rgba.Stride)
	for top, bottom := 0, rgba.Rect.Dy()-1; top < bottom; top, bottom = top+1, bottom-1 {
		a := rgba.Pix[top*rgba.Stride : (top+1)*rgba.Stride]
		b := rgba.Pix[bottom*rgba.Stride : (bottom+1)*rgba.Stride]
		copy(row, a)
		copy(a, b)
		copy(b, row)
	}
}

func uploadTexture(rgba *image.RGBA, opts TextureOptions) uint32 {
	var textureID uint32
	gl.GenTextures(1, &textureID)
	gl.BindTexture(gl.TEXTURE_2D, textureID)
	gl.TexImage2D(
		gl.TEXTURE_2D, 0, gl.RGBA,
		int32(rgba.Rect.Size().X), int32(rgba.Rect.Size().Y),
		0, gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(rgba.Pix))

	wrap := int32(gl.CLAMP_TO_EDGE)
	if opts.Repeat {
		wrap = gl.REPEAT
	}
	magFilter := int32(gl.LINEAR)
	if opts.NearestMag {
		magFilter = gl.NEAREST
	}
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, wrap)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, wrap)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR_MIPMAP_LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, magFilter)
	gl.GenerateMipmap(gl.TEXTURE_2D)

	return textureID
}

// ReleaseTexture decrements reference count and frees texture if count reaches 0
func (tm *TextureManager) ReleaseTexture(textureID uint32) {
	if textureID == 0 {
		return
	}

	tm.mu.Lock()
	defer tm.mu.Unlock()

	refCount, exists := tm.textureRefCount[textureID]
	if !exists {
		logger.Log.Warn("Attempted to release unknown texture",
			zap.Uint32("textureID", textureID))
		return
	}

	refCount--
	tm.textureRefCount[textureID] = refCount

	if refCount <= 0 {
		gl.DeleteTextures(1, &textureID)

		key := tm.texturePaths[textureID]
		delete(tm.textureCache, key)
		delete(tm.textureRefCount, textureID)
		delete(tm.texturePaths, textureID)
		tm.stats.ActiveTextures--

		logger.Log.Debug("Texture freed",
			zap.Uint32("textureID", textureID),
			zap.String("key", key))
	}
}

// GetStats returns current texture manager statistics
func (tm *TextureManager) GetStats() TextureStats {
	tm.mu.RLock()
	defer tm.mu.RUnlock()

	stats := tm.stats
	stats.ActiveTextures = len(tm.textureRefCount)
	return stats
}

func (tm *TextureManager) LogStats() {
	stats := tm.GetStats()
	logger.Log.Info("Texture Manager Stats",
		zap.Int("totalTextures", stats.TotalTextures),
		zap.Int("activeTextures", stats.ActiveTextures),
		zap.Int("cacheHits", stats.CacheHits),
		zap.Int("cacheMisses", stats.CacheMisses))
}

// Clear releases all textures
func (tm *TextureManager) Clear() {
	tm.mu.Lock()
	defer tm.mu.Unlock()

	for textureID := range tm.textureRefCount {
		id := textureID
		gl.DeleteTextures(1, &id)
	}

	tm.textureCache = make(map[string]uint32)
	tm.textureRefCount = make(map[uint32]int)
	tm.texturePaths = make(map[uint32]string)
	tm.stats.ActiveTextures = 0
}

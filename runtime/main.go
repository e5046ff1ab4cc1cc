package main

import (
	"Meadow3D/internal/behaviour"
	"Meadow3D/internal/config"
	"Meadow3D/internal/engine"
	"Meadow3D/internal/logger"
	"Meadow3D/internal/renderer"
	"Meadow3D/internal/scene"
	"flag"
	"os"
	"path/filepath"
	"runtime"

	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"
)

func main() {
	runtime.LockOSThread()

	configPath := flag.String("config", "", "scene configuration file (YAML)")
	assetsDir := flag.String("assets", "", "directory holding textures/, objects/ and animals/")
	debug := flag.Bool("debug", false, "log at debug level and draw wireframes")
	flag.Parse()

	cfg := config.Default()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			logger.Init()
			logger.Log.Fatal("Invalid configuration", zap.Error(err))
		}
		cfg = loaded
	}
	logger.InitWithLevel(logLevel(cfg.Logging.Level, *debug))
	defer logger.Sync()

	root := *assetsDir
	if root == "" {
		root = findAssetRoot()
	}
	cfg.ResolveAssets(root)
	logger.Log.Info("Assets resolved", zap.String("root", root))

	camera := renderer.NewPerspectiveCamera(cfg.Camera.Fov,
		float32(cfg.Window.Width)/float32(cfg.Window.Height), cfg.Camera.Near, cfg.Camera.Far)
	camera.Position = mgl32.Vec3(cfg.Camera.Position)
	camera.OrbitSensitivity = cfg.Camera.OrbitSensitivity
	camera.ZoomSpeed = cfg.Camera.ZoomSpeed
	camera.SetTarget(mgl32.Vec3(cfg.Camera.Target))

	gopher := engine.NewGopher(cfg.Window.Width, cfg.Window.Height, cfg.Window.Title)
	gopher.Camera = camera
	gopher.SetDebugMode(*debug)

	meadow := scene.NewMeadow(cfg, gopher, camera)
	gopher.Lights = meadow.Lights
	gopher.SetKeyHandler(meadow.HandleKey)
	behaviour.GlobalBehaviourManager.Add(meadow)

	if err := gopher.Render(cfg.Window.X, cfg.Window.Y); err != nil {
		logger.Log.Fatal("Engine stopped", zap.Error(err))
	}
}

// logLevel is the configured level unless -debug asks for everything.
func logLevel(configured string, debug bool) string {
	if debug {
		return "debug"
	}
	return configured
}

// findAssetRoot looks for an assets directory next to the executable, then
// in the working directory.
func findAssetRoot() string {
	candidates := []string{"assets"}
	if exePath, err := os.Executable(); err == nil {
		candidates = append([]string{filepath.Join(filepath.Dir(exePath), "assets")}, candidates...)
	}
	for _, dir := range candidates {
		if info, err := os.Stat(dir); err == nil && info.IsDir() {
			return dir
		}
	}
	return "."
}

package engine

import (
	behaviour "Meadow3D/internal/behaviour"
	"Meadow3D/internal/logger"
	"Meadow3D/internal/renderer"
	"fmt"
	"runtime"

	"github.com/go-gl/glfw/v3.3/glfw"
	"go.uber.org/zap"
)

// KeyHandler receives every key event the window sees.
type KeyHandler func(key glfw.Key, action glfw.Action)

type Gopher struct {
	Width             int32
	Height            int32
	Title             string
	Lights            []*renderer.Light
	Camera            *renderer.Camera
	EnableCameraInput bool // right-drag orbit and scroll zoom
	Behaviours        *behaviour.BehaviourManager

	rendererAPI renderer.Render
	window      *glfw.Window
	keyHandler  KeyHandler
	lastX       float64
	lastY       float64
	firstMouse  bool
}

func NewGopher(width, height int32, title string) *Gopher {
	logger.Log.Info("Engine initializing",
		zap.Int32("width", width),
		zap.Int32("height", height))
	return &Gopher{
		Width:             width,
		Height:            height,
		Title:             title,
		EnableCameraInput: true,
		Behaviours:        behaviour.GlobalBehaviourManager,
		rendererAPI:       &renderer.OpenGLRenderer{},
		firstMouse:        true,
	}
}

func (gopher *Gopher) SetKeyHandler(handler KeyHandler) {
	gopher.keyHandler = handler
}

// Render opens the window at (x, y) and runs the render loop until the
// window is closed. It must be called from the main goroutine.
func (gopher *Gopher) Render(x, y int) error {
	runtime.LockOSThread()

	if gopher.Camera == nil {
		return fmt.Errorf("no camera set")
	}
	if err := glfw.Init(); err != nil {
		return fmt.Errorf("could not initialize glfw: %w", err)
	}
	defer glfw.Terminate()

	glfw.WindowHint(glfw.Decorated, glfw.True)
	glfw.WindowHint(glfw.Resizable, glfw.True)
	glfw.WindowHint(glfw.DepthBits, 24)
	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)

	window, err := glfw.CreateWindow(int(gopher.Width), int(gopher.Height), gopher.Title, nil, nil)
	if err != nil {
		return fmt.Errorf("could not create glfw window: %w", err)
	}
	gopher.window = window
	window.MakeContextCurrent()
	window.SetPos(x, y)
	glfw.SwapInterval(1)

	fbWidth, fbHeight := window.GetFramebufferSize()
	gopher.rendererAPI.Init(int32(fbWidth), int32(fbHeight), window)
	gopher.Camera.SetAspectRatio(float32(gopher.Width) / float32(gopher.Height))

	window.SetInputMode(glfw.CursorMode, glfw.CursorNormal)
	window.SetKeyCallback(gopher.keyCallback)
	window.SetCursorPosCallback(gopher.mouseCallback)
	window.SetScrollCallback(gopher.scrollCallback)
	window.SetFramebufferSizeCallback(gopher.framebufferSizeCallback)

	gopher.RenderLoop()
	return nil
}

// RenderLoop hands every behaviour the frame clock, then draws.
func (gopher *Gopher) RenderLoop() {
	start := glfw.GetTime()
	previous := 0.0
	logger.Log.Info("Render loop started", zap.Int("behaviours", gopher.Behaviours.Len()))

	for !gopher.window.ShouldClose() {
		elapsed := glfw.GetTime() - start
		gopher.Behaviours.UpdateAll(behaviour.Tick{Elapsed: elapsed, Previous: previous})
		previous = elapsed

		gopher.rendererAPI.Render(*gopher.Camera, gopher.Lights)
		gopher.window.SwapBuffers()
		glfw.PollEvents()
	}
	gopher.Behaviours.Clear()
	gopher.rendererAPI.Cleanup()
	logger.Log.Info("Render loop stopped")
}

func (gopher *Gopher) SetDebugMode(debug bool) {
	renderer.Debug = debug
}

func (gopher *Gopher) AddModel(model *renderer.Model) {
	gopher.rendererAPI.AddModel(model)
}

func (gopher *Gopher) keyCallback(w *glfw.Window, key glfw.Key, _ int, action glfw.Action, _ glfw.ModifierKey) {
	if key == glfw.KeyEscape && action == glfw.Press {
		w.SetShouldClose(true)
		return
	}
	if gopher.keyHandler != nil {
		gopher.keyHandler(key, action)
	}
}

// Mouse callback function. Dragging with the right button orbits the camera.
func (gopher *Gopher) mouseCallback(w *glfw.Window, xpos, ypos float64) {
	if !gopher.EnableCameraInput || w.GetAttrib(glfw.Focused) != glfw.True || w.GetMouseButton(glfw.MouseButtonRight) != glfw.Press {
		gopher.firstMouse = true
		return
	}
	if gopher.firstMouse {
		gopher.lastX, gopher.lastY = xpos, ypos
		gopher.firstMouse = false
		return
	}

	dx := xpos - gopher.lastX
	dy := ypos - gopher.lastY
	gopher.lastX, gopher.lastY = xpos, ypos
	gopher.Camera.Orbit(float32(dx), float32(dy))
}

func (gopher *Gopher) scrollCallback(_ *glfw.Window, _, yoff float64) {
	if !gopher.EnableCameraInput {
		return
	}
	gopher.Camera.Zoom(float32(yoff))
}

func (gopher *Gopher) framebufferSizeCallback(_ *glfw.Window, width, height int) {
	if width == 0 || height == 0 {
		// Minimized.
		return
	}
	gopher.Width, gopher.Height = int32(width), int32(height)
	gopher.rendererAPI.UpdateViewport(gopher.Width, gopher.Height)
	gopher.Camera.SetAspectRatio(float32(width) / float32(height))
	logger.Log.Debug("Viewport resized", zap.Int("width", width), zap.Int("height", height))
}

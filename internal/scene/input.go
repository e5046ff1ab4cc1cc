package scene

import "github.com/go-gl/glfw/v3.3/glfw"

// InputState holds the movement keys currently held down. Key callbacks
// write it; the frame update only ever sees a copy.
type InputState struct {
	Forward  bool
	Backward bool
	Left     bool
	Right    bool
}

func (s InputState) Any() bool {
	return s.Forward || s.Backward || s.Left || s.Right
}

// Direction is the unnormalized sum of the held keys: forward is -Z, right
// is +X. Opposing keys cancel.
func (s InputState) Direction() (x, z float32) {
	if s.Right {
		x++
	}
	if s.Left {
		x--
	}
	if s.Backward {
		z++
	}
	if s.Forward {
		z--
	}
	return x, z
}

type movementKey int

const (
	moveForward movementKey = iota
	moveBackward
	moveLeft
	moveRight
)

// KeyBindings maps both WASD and the arrow keys to movement.
var KeyBindings = map[glfw.Key]movementKey{
	glfw.KeyW:     moveForward,
	glfw.KeyUp:    moveForward,
	glfw.KeyS:     moveBackward,
	glfw.KeyDown:  moveBackward,
	glfw.KeyA:     moveLeft,
	glfw.KeyLeft:  moveLeft,
	glfw.KeyD:     moveRight,
	glfw.KeyRight: moveRight,
}

// HandleKey applies one key event and reports whether the key is bound.
// Repeats keep the key held.
func (s *InputState) HandleKey(key glfw.Key, action glfw.Action) bool {
	move, ok := KeyBindings[key]
	if !ok {
		return false
	}

	var held bool
	switch action {
	case glfw.Press, glfw.Repeat:
		held = true
	case glfw.Release:
		held = false
	default:
		return true
	}

	switch move {
	case moveForward:
		s.Forward = held
	case moveBackward:
		s.Backward = held
	case moveLeft:
		s.Left = held
	case moveRight:
		s.Right = held
	}
	return true
}

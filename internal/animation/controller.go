package animation

import (
	"Meadow3D/internal/logger"
	"fmt"

	"go.uber.org/zap"
)

// Mode is the movement state a character animates for.
type Mode int

const (
	Idle Mode = iota
	Walk
)

func (m Mode) String() string {
	switch m {
	case Idle:
		return "idle"
	case Walk:
		return "walk"
	default:
		return fmt.Sprintf("mode(%d)", int(m))
	}
}

// Controller switches a mixer between the actions bound to each Mode.
type Controller struct {
	mixer   *Mixer
	actions map[Mode]string
	fade    float32
}

func NewController(mixer *Mixer, fade float32) *Controller {
	return &Controller{mixer: mixer, actions: make(map[Mode]string), fade: fade}
}

// ClipSet describes which clips of a model play for each mode.
type ClipSet struct {
	Idle          int
	Walk          int
	WalkTimeScale float32
	Fade          float32
}

// NewCharacterController binds the idle and walk clips picked by set and
// starts in Idle.
func NewCharacterController(clips []Clip, set ClipSet) (*Controller, error) {
	for _, idx := range []int{set.Idle, set.Walk} {
		if idx < 0 || idx >= len(clips) {
			return nil, fmt.Errorf("clip index %d out of range, model has %d clips", idx, len(clips))
		}
	}

	mixer := NewMixer()
	mixer.Add(Idle.String(), clips[set.Idle], 1)
	mixer.Add(Walk.String(), clips[set.Walk], set.WalkTimeScale)

	c := NewController(mixer, set.Fade)
	c.Bind(Idle, Idle.String())
	c.Bind(Walk, Walk.String())
	if err := mixer.Play(Idle.String()); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Controller) Bind(mode Mode, action string) {
	c.actions[mode] = action
}

func (c *Controller) Mixer() *Mixer {
	return c.mixer
}

// IsActive reports whether mode's action is the one fading in or playing.
func (c *Controller) IsActive(mode Mode) bool {
	name, ok := c.actions[mode]
	return ok && c.mixer.Active() == name
}

// SetActive cross-fades to mode. It is a no-op when mode is already active.
func (c *Controller) SetActive(mode Mode) {
	if c.IsActive(mode) {
		return
	}
	name, ok := c.actions[mode]
	if !ok {
		logger.Log.Warn("No animation bound to mode", zap.Stringer("mode", mode))
		return
	}
	if err := c.mixer.CrossFade(name, c.fade); err != nil {
		logger.Log.Error("Animation switch failed", zap.Stringer("mode", mode), zap.Error(err))
	}
}

func (c *Controller) Update(delta float32) {
	c.mixer.Update(delta)
}

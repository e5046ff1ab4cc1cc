// Package animation blends model animation clips. Each clip plays as an
// action with its own weight; switching actions cross-fades the weights.
//
// Models are drawn in their bind pose, so nothing samples the weights yet.
// They are the blend factors a skinned draw path would consume.
package animation

import (
	"Meadow3D/internal/logger"
	"fmt"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
	"go.uber.org/zap"
)

// Clip is a playable animation track. g3n's *animation.Animation satisfies it.
type Clip interface {
	Update(delta float32)
	Reset()
}

// Action is a clip registered with a mixer.
type Action struct {
	Name      string
	Clip      Clip
	TimeScale float32

	weight float32
	fade   *gween.Tween
}

func (a *Action) Weight() float32 {
	return a.weight
}

// Running reports whether the action still contributes to the pose.
func (a *Action) Running() bool {
	return a.weight > 0 || a.fade != nil
}

func (a *Action) fadeTo(target, duration float32) {
	if duration <= 0 {
		a.weight = target
		a.fade = nil
		return
	}
	a.fade = gween.New(a.weight, target, duration, ease.Linear)
}

type Mixer struct {
	actions map[string]*Action
	active  string
}

func NewMixer() *Mixer {
	return &Mixer{actions: make(map[string]*Action)}
}

// Add registers clip under name. A non-positive timeScale means 1.
func (m *Mixer) Add(name string, clip Clip, timeScale float32) *Action {
	if timeScale <= 0 {
		timeScale = 1
	}
	action := &Action{Name: name, Clip: clip, TimeScale: timeScale}
	m.actions[name] = action
	return action
}

func (m *Mixer) Action(name string) *Action {
	return m.actions[name]
}

func (m *Mixer) Active() string {
	return m.active
}

// Play starts name at full weight immediately and stops every other action.
func (m *Mixer) Play(name string) error {
	target, ok := m.actions[name]
	if !ok {
		return fmt.Errorf("unknown action %q", name)
	}
	for _, action := range m.actions {
		action.weight = 0
		action.fade = nil
	}
	target.Clip.Reset()
	target.weight = 1
	m.active = name
	return nil
}

// CrossFade fades the active action out and name in over duration seconds.
// The incoming clip restarts from its first frame.
func (m *Mixer) CrossFade(name string, duration float32) error {
	target, ok := m.actions[name]
	if !ok {
		return fmt.Errorf("unknown action %q", name)
	}
	if name == m.active {
		return nil
	}

	if previous, ok := m.actions[m.active]; ok {
		previous.fadeTo(0, duration)
	}
	target.Clip.Reset()
	target.weight = 0
	target.fadeTo(1, duration)

	logger.Log.Debug("Animation cross-fade",
		zap.String("from", m.active),
		zap.String("to", name),
		zap.Float32("duration", duration))
	m.active = name
	return nil
}

// Update advances every running action by delta seconds.
func (m *Mixer) Update(delta float32) {
	if delta <= 0 {
		return
	}
	for _, action := range m.actions {
		if !action.Running() {
			continue
		}
		action.Clip.Update(delta * action.TimeScale)
		if action.fade != nil {
			weight, finished := action.fade.Update(delta)
			action.weight = weight
			if finished {
				action.fade = nil
			}
		}
	}
}

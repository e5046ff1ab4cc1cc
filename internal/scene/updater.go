package scene

import (
	"Meadow3D/internal/behaviour"
	"Meadow3D/internal/config"
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// ClipController switches the character's animation. Switching cross-fades
// over a fixed duration owned by the implementation.
type ClipController interface {
	SetActive(mode AnimationMode)
	IsActive(mode AnimationMode) bool
}

// clipAdvancer is implemented by controllers that need the frame delta to
// move their clips forward.
type clipAdvancer interface {
	Update(delta float32)
}

// FrameUpdater moves the player from the held keys, picks its animation,
// keeps the camera on it and derives the sun and moon for the frame.
// Player and Clips stay nil until the character has loaded; every step that
// needs them is skipped until then.
type FrameUpdater struct {
	Speed     float32 // units per second
	Celestial CelestialParams
	Follow    FollowRig

	Player *PlayerState
	Clips  ClipController
}

func NewFrameUpdater(cfg *config.Config, camera FollowCamera) *FrameUpdater {
	return &FrameUpdater{
		Speed:     cfg.Player.Speed,
		Celestial: NewCelestialParams(cfg),
		Follow: FollowRig{
			Camera: camera,
			Offset: mgl32.Vec3(cfg.Player.FollowOffset),
			Lerp:   cfg.Player.FollowLerp,
			Scale:  cfg.Player.Scale,
		},
	}
}

// Attach hands over the loaded character. Either argument may be nil.
func (u *FrameUpdater) Attach(player *PlayerState, clips ClipController) {
	u.Player = player
	u.Clips = clips
}

// Update runs one frame and returns the celestial state for it.
func (u *FrameUpdater) Update(tick behaviour.Tick, in InputState) CelestialState {
	celestial := u.Celestial.Compute(tick.Elapsed)

	p := u.Player
	if p == nil {
		return celestial
	}
	delta := float32(tick.Delta())

	x, z := in.Direction()
	step := u.Speed * delta
	p.Position = p.Position.Add(mgl32.Vec3{x * step, 0, z * step})
	if x != 0 || z != 0 {
		dir := mgl32.Vec3{x, 0, z}.Normalize()
		p.Yaw = float32(math.Atan2(float64(dir.X()), float64(dir.Z())))
	}

	mode := Idle
	if in.Any() {
		mode = Walk
		u.Follow.Walk(p)
	} else {
		u.Follow.Idle(p)
	}
	p.Mode = mode

	if u.Clips != nil {
		if !u.Clips.IsActive(mode) {
			u.Clips.SetActive(mode)
		}
		if advancer, ok := u.Clips.(clipAdvancer); ok {
			advancer.Update(delta)
		}
	}
	return celestial
}

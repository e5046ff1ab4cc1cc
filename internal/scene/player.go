package scene

import (
	"Meadow3D/internal/animation"

	"github.com/go-gl/mathgl/mgl32"
)

type AnimationMode = animation.Mode

const (
	Idle = animation.Idle
	Walk = animation.Walk
)

// PlayerState is the controllable character. It only exists once the
// character model has loaded.
type PlayerState struct {
	Position mgl32.Vec3
	Yaw      float32 // radians about +Y, 0 faces +Z
	Mode     AnimationMode
}

// WorldMatrix composes translation, yaw and a uniform scale.
func (p *PlayerState) WorldMatrix(scale float32) mgl32.Mat4 {
	return mgl32.Translate3D(p.Position[0], p.Position[1], p.Position[2]).
		Mul4(mgl32.HomogRotate3DY(p.Yaw)).
		Mul4(mgl32.Scale3D(scale, scale, scale))
}

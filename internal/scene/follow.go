package scene

import "github.com/go-gl/mathgl/mgl32"

// FollowCamera is the part of the camera the frame update drives.
// *renderer.Camera implements it.
type FollowCamera interface {
	SetTarget(target mgl32.Vec3)
	MoveTowards(goal mgl32.Vec3, factor float32)
	LookAt(target mgl32.Vec3)
}

// FollowRig keeps the camera on the player. Idle snaps the orbit target to
// the player; walking eases the camera to a point behind and above it.
type FollowRig struct {
	Camera FollowCamera
	Offset mgl32.Vec3 // player-local, before the player's scale
	Lerp   float32    // fraction of the remaining distance covered per frame
	Scale  float32
}

// Goal is Offset carried into world space by the player's transform.
func (r *FollowRig) Goal(p *PlayerState) mgl32.Vec3 {
	return p.WorldMatrix(r.Scale).Mul4x1(r.Offset.Vec4(1)).Vec3()
}

func (r *FollowRig) Idle(p *PlayerState) {
	if r.Camera == nil {
		return
	}
	r.Camera.SetTarget(p.Position)
}

func (r *FollowRig) Walk(p *PlayerState) {
	if r.Camera == nil {
		return
	}
	r.Camera.MoveTowards(r.Goal(p), r.Lerp)
	r.Camera.LookAt(p.Position)
}

// camera.go
package renderer

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

type Camera struct {
	// HOT DATA - Accessed every frame for view/projection calculations
	Position   mgl32.Vec3 // Camera position in world space
	Front      mgl32.Vec3 // Forward direction vector
	Up         mgl32.Vec3 // Up direction vector
	Right      mgl32.Vec3 // Right direction vector
	Projection mgl32.Mat4 // Projection matrix
	Pitch      float32    // Pitch angle in degrees
	Yaw        float32    // Yaw angle in degrees

	// Orbit helper state. Target is the point the camera orbits and zooms around.
	Target           mgl32.Vec3
	OrbitSensitivity float32 // Radians per pixel of mouse drag
	ZoomSpeed        float32
	MinDistance      float32
	MaxDistance      float32

	// COLD DATA - Configuration, accessed less frequently
	WorldUp     mgl32.Vec3 // World up vector (usually (0,1,0))
	Fov         float32    // Vertical field of view in degrees
	Near        float32    // Near clipping plane
	Far         float32    // Far clipping plane
	AspectRatio float32    // Screen aspect ratio

	Name string
}

// NewPerspectiveCamera places a camera at the origin looking down -Z.
func NewPerspectiveCamera(fov, aspect, near, far float32) *Camera {
	camera := Camera{
		Front:            mgl32.Vec3{0, 0, -1},
		Up:               mgl32.Vec3{0, 1, 0},
		WorldUp:          mgl32.Vec3{0, 1, 0},
		Pitch:            0.0,
		Yaw:              -90.0,
		Fov:              fov,
		Near:             near,
		Far:              far,
		AspectRatio:      aspect,
		OrbitSensitivity: 0.005,
		ZoomSpeed:        0.5,
		MinDistance:      1,
		MaxDistance:      45,
		Name:             "Main",
	}
	camera.updateCameraVectors()
	camera.UpdateProjection()
	return &camera
}

func (c *Camera) UpdateProjection() {
	c.Projection = mgl32.Perspective(mgl32.DegToRad(c.Fov), c.AspectRatio, c.Near, c.Far)
}

func (c *Camera) SetAspectRatio(aspectRatio float32) {
	if aspectRatio <= 0 {
		return
	}
	c.AspectRatio = aspectRatio
	c.UpdateProjection()
}

func (c *Camera) GetViewProjection() mgl32.Mat4 {
	return c.Projection.Mul4(c.GetViewMatrix())
}

func (c *Camera) GetViewMatrix() mgl32.Mat4 {
	return mgl32.LookAtV(c.Position, c.Position.Add(c.Front), c.Up)
}

// LookAt turns the camera to face target without moving it.
func (c *Camera) LookAt(target mgl32.Vec3) {
	direction := target.Sub(c.Position)
	if direction.Len() == 0 {
		return
	}
	direction = direction.Normalize()
	c.Yaw = mgl32.RadToDeg(float32(math.Atan2(float64(direction.Z()), float64(direction.X()))))
	c.Pitch = mgl32.RadToDeg(float32(math.Asin(float64(mgl32.Clamp(direction.Y(), -1, 1)))))
	c.Pitch = mgl32.Clamp(c.Pitch, -89.0, 89.0)
	c.updateCameraVectors()
}

// SetTarget moves the orbit target and re-aims the camera at it. The camera
// position is left alone.
func (c *Camera) SetTarget(target mgl32.Vec3) {
	c.Target = target
	c.LookAt(target)
}

// MoveTowards moves the camera a fraction of the way to goal. factor 1 jumps.
func (c *Camera) MoveTowards(goal mgl32.Vec3, factor float32) {
	c.Position = c.Position.Add(goal.Sub(c.Position).Mul(factor))
}

// Orbit rotates the camera around Target by a mouse drag of (dx, dy) pixels,
// keeping its distance.
func (c *Camera) Orbit(dx, dy float32) {
	offset := c.Position.Sub(c.Target)
	radius := offset.Len()
	if radius == 0 {
		return
	}

	theta := math.Atan2(float64(offset.X()), float64(offset.Z()))
	phi := math.Acos(float64(mgl32.Clamp(offset.Y()/radius, -1, 1)))

	theta -= float64(dx * c.OrbitSensitivity)
	phi -= float64(dy * c.OrbitSensitivity)
	phi = math.Max(0.01, math.Min(math.Pi-0.01, phi))

	c.Position = c.Target.Add(sphericalOffset(radius, theta, phi))
	c.LookAt(c.Target)
}

// Zoom dollies towards (positive amount) or away from Target.
func (c *Camera) Zoom(amount float32) {
	offset := c.Position.Sub(c.Target)
	radius := offset.Len()
	if radius == 0 {
		return
	}
	scaled := radius * float32(math.Pow(0.95, float64(amount*c.ZoomSpeed*10)))
	scaled = mgl32.Clamp(scaled, c.MinDistance, c.MaxDistance)
	c.Position = c.Target.Add(offset.Mul(scaled / radius))
	c.LookAt(c.Target)
}

func sphericalOffset(radius float32, theta, phi float64) mgl32.Vec3 {
	sinPhi := math.Sin(phi)
	return mgl32.Vec3{
		radius * float32(sinPhi*math.Sin(theta)),
		radius * float32(math.Cos(phi)),
		radius * float32(sinPhi*math.Cos(theta)),
	}
}

func (c *Camera) updateCameraVectors() {
	yawRad := mgl32.DegToRad(c.Yaw)
	pitchRad := mgl32.DegToRad(c.Pitch)

	front := mgl32.Vec3{
		float32(math.Cos(float64(yawRad)) * math.Cos(float64(pitchRad))),
		float32(math.Sin(float64(pitchRad))),
		float32(math.Sin(float64(yawRad)) * math.Cos(float64(pitchRad))),
	}

	c.Front = front.Normalize()
	c.Right = c.Front.Cross(c.WorldUp).Normalize()
	c.Up = c.Right.Cross(c.Front).Normalize()
}

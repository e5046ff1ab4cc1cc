package scene

import (
	"Meadow3D/internal/config"
	"Meadow3D/internal/renderer"
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// CelestialState is the sun and moon for one instant. It is derived from the
// clock every frame and never stored.
type CelestialState struct {
	SunPosition   mgl32.Vec3
	MoonPosition  mgl32.Vec3
	SunIntensity  float32
	MoonIntensity float32
	LightColor    mgl32.Vec3
	SkyColor      mgl32.Vec3
}

type CelestialParams struct {
	OrbitRadius  float32
	AngularSpeed float32 // radians per second
	DayLight     mgl32.Vec3
	NightLight   mgl32.Vec3
	DaySky       mgl32.Vec3
	NightSky     mgl32.Vec3
	SkyExponent  float32
}

func NewCelestialParams(cfg *config.Config) CelestialParams {
	return CelestialParams{
		OrbitRadius:  cfg.Lighting.OrbitRadius,
		AngularSpeed: cfg.Lighting.AngularSpeed,
		DayLight:     renderer.ColorFromHex(cfg.Lighting.DayColor),
		NightLight:   renderer.ColorFromHex(cfg.Lighting.NightColor),
		DaySky:       renderer.ColorFromHex(cfg.Sky.DayColor),
		NightSky:     renderer.ColorFromHex(cfg.Sky.NightColor),
		SkyExponent:  cfg.Sky.TransitionExponent,
	}
}

// Compute places the sun at angle speed*t on a circle in the XY plane with
// the moon opposite. The moon's intensity uses -sin, which is sin(a+pi)
// without the rounding that would leave it slightly positive at a = 0.
func (p CelestialParams) Compute(t float64) CelestialState {
	angle := t * float64(p.AngularSpeed)
	sin, cos := math.Sin(angle), math.Cos(angle)

	sun := mgl32.Vec3{float32(cos) * p.OrbitRadius, float32(sin) * p.OrbitRadius, 0}
	moonIntensity := float32(math.Max(0, -sin))

	return CelestialState{
		SunPosition:   sun,
		MoonPosition:  sun.Mul(-1),
		SunIntensity:  float32(math.Max(0, sin)),
		MoonIntensity: moonIntensity,
		LightColor:    Blend(p.DayLight, p.NightLight, moonIntensity),
		SkyColor:      Blend(p.DaySky, p.NightSky, float32(math.Pow(float64(moonIntensity), float64(p.SkyExponent)))),
	}
}

// Blend mixes two colors linearly. f = 0 returns day and f = 1 returns night
// exactly.
func Blend(day, night mgl32.Vec3, f float32) mgl32.Vec3 {
	return day.Mul(1 - f).Add(night.Mul(f))
}

package scene

import (
	"math"
	"testing"

	"Meadow3D/internal/config"
	"Meadow3D/internal/renderer"

	"github.com/go-gl/mathgl/mgl32"
)

func TestCelestialAtStart(t *testing.T) {
	c := NewCelestialParams(config.Default()).Compute(0)

	if c.SunPosition != (mgl32.Vec3{50, 0, 0}) {
		t.Errorf("Expected sun at (50,0,0), got %v", c.SunPosition)
	}
	if c.MoonPosition != (mgl32.Vec3{-50, 0, 0}) {
		t.Errorf("Expected moon at (-50,0,0), got %v", c.MoonPosition)
	}
	if c.SunIntensity != 0 || c.MoonIntensity != 0 {
		t.Errorf("Expected both intensities 0, got sun=%f moon=%f", c.SunIntensity, c.MoonIntensity)
	}
	if c.LightColor != renderer.ColorFromHex(0xffff00) {
		t.Errorf("Expected day light color, got %v", c.LightColor)
	}
	if c.SkyColor != renderer.ColorFromHex(0xb1e1ff) {
		t.Errorf("Expected day sky color, got %v", c.SkyColor)
	}
}

func TestMoonOpposesSun(t *testing.T) {
	params := NewCelestialParams(config.Default())
	for _, tm := range []float64{1, 7.5, 20, 33.3, 61, 100} {
		c := params.Compute(tm)
		if c.MoonPosition != c.SunPosition.Mul(-1) {
			t.Errorf("t=%v: moon %v is not opposite sun %v", tm, c.MoonPosition, c.SunPosition)
		}
		if r := c.SunPosition.Len(); math.Abs(float64(r-50)) > 1e-3 {
			t.Errorf("t=%v: sun orbit radius %f, want 50", tm, r)
		}
	}
}

func TestAtMostOneBodyLit(t *testing.T) {
	params := NewCelestialParams(config.Default())
	for i := 1; i < 1000; i++ {
		tm := float64(i) * 0.37
		c := params.Compute(tm)
		if c.SunIntensity > 0 && c.MoonIntensity > 0 {
			t.Fatalf("t=%v: both lit, sun=%f moon=%f", tm, c.SunIntensity, c.MoonIntensity)
		}
		if c.SunIntensity < 0 || c.MoonIntensity < 0 || c.SunIntensity > 1 || c.MoonIntensity > 1 {
			t.Fatalf("t=%v: intensity out of [0,1], sun=%f moon=%f", tm, c.SunIntensity, c.MoonIntensity)
		}
		if math.Sin(tm*0.1) != 0 && c.SunIntensity == 0 && c.MoonIntensity == 0 {
			t.Fatalf("t=%v: neither lit away from a crossover", tm)
		}
	}
}

func TestMidnightColors(t *testing.T) {
	// Quarter turn past the horizon on the night side.
	c := NewCelestialParams(config.Default()).Compute(15 * math.Pi)

	if math.Abs(float64(c.MoonIntensity-1)) > 1e-6 || c.SunIntensity != 0 {
		t.Fatalf("Expected full moon, got sun=%f moon=%f", c.SunIntensity, c.MoonIntensity)
	}
	if !c.LightColor.ApproxEqualThreshold(renderer.ColorFromHex(0x8888ff), 1e-5) {
		t.Errorf("Expected night light color, got %v", c.LightColor)
	}
	if !c.SkyColor.ApproxEqualThreshold(renderer.ColorFromHex(0x000033), 1e-5) {
		t.Errorf("Expected night sky color, got %v", c.SkyColor)
	}
}

func TestSkyDarkensFasterThanLight(t *testing.T) {
	params := NewCelestialParams(config.Default())
	// Just after sunset the moon is barely up.
	c := params.Compute(10*math.Pi + 1)

	lightShare := c.MoonIntensity
	skyShare := float32(math.Pow(float64(c.MoonIntensity), float64(params.SkyExponent)))
	if !(skyShare > lightShare) {
		t.Fatalf("Expected sky factor %f above light factor %f", skyShare, lightShare)
	}
	if c.SkyColor != Blend(params.DaySky, params.NightSky, skyShare) {
		t.Errorf("Sky color should use the sharpened factor")
	}
}

func TestBlendEndpoints(t *testing.T) {
	pairs := [][2]uint32{
		{0xffff00, 0x8888ff},
		{0xb1e1ff, 0x000033},
	}
	for _, pair := range pairs {
		day, night := renderer.ColorFromHex(pair[0]), renderer.ColorFromHex(pair[1])
		if got := Blend(day, night, 0); got != day {
			t.Errorf("Blend(%#x, %#x, 0) = %v, want %v", pair[0], pair[1], got, day)
		}
		if got := Blend(day, night, 1); got != night {
			t.Errorf("Blend(%#x, %#x, 1) = %v, want %v", pair[0], pair[1], got, night)
		}
	}

	mid := Blend(mgl32.Vec3{0, 0, 0}, mgl32.Vec3{1, 1, 1}, 0.5)
	if mid != (mgl32.Vec3{0.5, 0.5, 0.5}) {
		t.Errorf("Expected midpoint 0.5, got %v", mid)
	}
}

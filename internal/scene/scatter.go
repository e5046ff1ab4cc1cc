package scene

import (
	"math"
	"math/rand"

	"github.com/go-gl/mathgl/mgl32"
)

// Placement is where one tree instance stands.
type Placement struct {
	Position mgl32.Vec3
	Yaw      float32
}

// Scatter places count items uniformly in the square of side spread
// centred on center, each with a random heading.
func Scatter(rng *rand.Rand, center [2]float32, spread float32, count int) []Placement {
	placements := make([]Placement, count)
	for i := range placements {
		x := center[0] + (rng.Float32()-0.5)*spread
		z := center[1] + (rng.Float32()-0.5)*spread
		placements[i] = Placement{
			Position: mgl32.Vec3{x, 0, z},
			Yaw:      rng.Float32() * 2 * math.Pi,
		}
	}
	return placements
}

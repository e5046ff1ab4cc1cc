package renderer

import (
	"errors"
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// HeightFunc gives terrain height at a point on the XZ plane.
type HeightFunc func(x, z float32) float32

// NewPlane builds a size x size grid on the XZ plane, centred on the origin and
// facing +Y. resolution is the number of vertices along each side. height may
// be nil for a flat plane.
func NewPlane(size float32, resolution int, height HeightFunc) (*Model, error) {
	if resolution < 2 {
		return nil, errors.New("plane resolution must be at least 2")
	}
	if height == nil {
		height = func(x, z float32) float32 { return 0 }
	}

	spacing := size / float32(resolution-1)
	half := size / 2
	data := make([]float32, 0, resolution*resolution*VertexStride)
	indices := make([]uint32, 0, (resolution-1)*(resolution-1)*6)

	for i := 0; i < resolution; i++ {
		for j := 0; j < resolution; j++ {
			x := -half + float32(i)*spacing
			z := -half + float32(j)*spacing
			u := float32(i) / float32(resolution-1)
			v := float32(j) / float32(resolution-1)
			n := heightNormal(height, x, z, spacing)
			data = append(data, x, height(x, z), z, u, v, n[0], n[1], n[2])
		}
	}

	for i := 0; i < resolution-1; i++ {
		for j := 0; j < resolution-1; j++ {
			a := uint32(i*resolution + j)
			b := a + 1
			c := uint32((i+1)*resolution + j)
			d := c + 1
			indices = append(indices, a, b, c, c, b, d)
		}
	}

	model := CreateModel(data, indices)
	model.Name = "Plane"
	return model, nil
}

// heightNormal estimates the surface normal with central differences.
func heightNormal(height HeightFunc, x, z, step float32) mgl32.Vec3 {
	dx := height(x+step, z) - height(x-step, z)
	dz := height(x, z+step) - height(x, z-step)
	return mgl32.Vec3{-dx, 2 * step, -dz}.Normalize()
}

// NewSphere builds a UV sphere with outward normals.
func NewSphere(radius float32, widthSegments, heightSegments int) (*Model, error) {
	if widthSegments < 3 || heightSegments < 2 {
		return nil, errors.New("sphere needs at least 3x2 segments")
	}

	data := make([]float32, 0, (widthSegments+1)*(heightSegments+1)*VertexStride)
	grid := make([][]uint32, heightSegments+1)
	var index uint32

	for iy := 0; iy <= heightSegments; iy++ {
		v := float64(iy) / float64(heightSegments)
		grid[iy] = make([]uint32, widthSegments+1)
		for ix := 0; ix <= widthSegments; ix++ {
			u := float64(ix) / float64(widthSegments)
			nx := float32(-math.Cos(u*2*math.Pi) * math.Sin(v*math.Pi))
			ny := float32(math.Cos(v * math.Pi))
			nz := float32(math.Sin(u*2*math.Pi) * math.Sin(v*math.Pi))
			data = append(data, nx*radius, ny*radius, nz*radius, float32(u), float32(1-v), nx, ny, nz)
			grid[iy][ix] = index
			index++
		}
	}

	var indices []uint32
	for iy := 0; iy < heightSegments; iy++ {
		for ix := 0; ix < widthSegments; ix++ {
			a := grid[iy][ix+1]
			b := grid[iy][ix]
			c := grid[iy+1][ix]
			d := grid[iy+1][ix+1]
			if iy != 0 {
				indices = append(indices, a, b, d)
			}
			if iy != heightSegments-1 {
				indices = append(indices, b, c, d)
			}
		}
	}

	model := CreateModel(data, indices)
	model.Name = "Sphere"
	return model, nil
}

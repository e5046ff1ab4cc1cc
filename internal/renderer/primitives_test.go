package renderer

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func vertexAt(m *Model, i uint32) mgl32.Vec3 {
	o := int(i) * VertexStride
	return mgl32.Vec3{m.InterleavedData[o], m.InterleavedData[o+1], m.InterleavedData[o+2]}
}

func TestNewPlaneFlat(t *testing.T) {
	plane, err := NewPlane(100, 3, nil)
	if err != nil {
		t.Fatalf("NewPlane failed: %v", err)
	}

	if plane.VertexCount() != 9 {
		t.Errorf("Expected 9 vertices, got %d", plane.VertexCount())
	}
	if len(plane.Faces) != 2*2*6 {
		t.Errorf("Expected 24 indices, got %d", len(plane.Faces))
	}

	first := vertexAt(plane, 0)
	last := vertexAt(plane, uint32(plane.VertexCount()-1))
	if first != (mgl32.Vec3{-50, 0, -50}) || last != (mgl32.Vec3{50, 0, 50}) {
		t.Errorf("Plane should span -50..50, got %v .. %v", first, last)
	}
}

func TestNewPlaneFacesUp(t *testing.T) {
	plane, _ := NewPlane(10, 4, nil)

	for i := 0; i < len(plane.Faces); i += 3 {
		a := vertexAt(plane, plane.Faces[i])
		b := vertexAt(plane, plane.Faces[i+1])
		c := vertexAt(plane, plane.Faces[i+2])
		if n := b.Sub(a).Cross(c.Sub(a)); n.Y() <= 0 {
			t.Fatalf("Triangle %d winds away from +Y: %v", i/3, n)
		}
	}
}

func TestNewPlaneUsesHeight(t *testing.T) {
	plane, _ := NewPlane(2, 2, func(x, z float32) float32 { return x + 1 })

	if got := vertexAt(plane, 0).Y(); got != 0 {
		t.Errorf("Expected height 0 at x=-1, got %f", got)
	}
	if got := vertexAt(plane, 3).Y(); got != 2 {
		t.Errorf("Expected height 2 at x=1, got %f", got)
	}
}

func TestNewPlaneRejectsTinyGrid(t *testing.T) {
	if _, err := NewPlane(10, 1, nil); err == nil {
		t.Error("NewPlane should reject resolution 1")
	}
}

func TestNewSphereRadius(t *testing.T) {
	sphere, err := NewSphere(50, 16, 12)
	if err != nil {
		t.Fatalf("NewSphere failed: %v", err)
	}

	for i := 0; i < sphere.VertexCount(); i++ {
		if r := vertexAt(sphere, uint32(i)).Len(); math.Abs(float64(r-50)) > 1e-3 {
			t.Fatalf("Vertex %d at radius %f, expected 50", i, r)
		}
	}
	// Poles contribute one triangle per segment, other rows two.
	want := (16*12*2 - 2*16) * 3
	if len(sphere.Faces) != want {
		t.Errorf("Expected %d indices, got %d", want, len(sphere.Faces))
	}
}

func TestNewSphereFacesOutward(t *testing.T) {
	sphere, _ := NewSphere(1, 8, 6)

	for i := 0; i < len(sphere.Faces); i += 3 {
		a := vertexAt(sphere, sphere.Faces[i])
		b := vertexAt(sphere, sphere.Faces[i+1])
		c := vertexAt(sphere, sphere.Faces[i+2])
		n := b.Sub(a).Cross(c.Sub(a))
		centroid := a.Add(b).Add(c)
		if n.Dot(centroid) <= 0 {
			t.Fatalf("Triangle %d faces inward", i/3)
		}
	}
}

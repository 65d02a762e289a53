package mesh

import (
	"math"
	"testing"
)

func TestUVSphere_Counts(t *testing.T) {
	s, err := UVSphere(8, 8)
	if err != nil {
		t.Fatal(err)
	}
	if s.VertexCount() != 81 {
		t.Fatalf("vertices = %d", s.VertexCount())
	}
	if len(s.Indices) != 8*8*6 {
		t.Fatalf("indices = %d", len(s.Indices))
	}
	for _, i := range s.Indices {
		if int(i) >= s.VertexCount() {
			t.Fatalf("index %d out of range", i)
		}
	}
}

func TestUVSphere_UnitRadius(t *testing.T) {
	s, _ := UVSphere(5, 7)
	for i := 0; i < len(s.Positions); i += 3 {
		x, y, z := float64(s.Positions[i]), float64(s.Positions[i+1]), float64(s.Positions[i+2])
		if r := math.Sqrt(x*x + y*y + z*z); math.Abs(r-1) > 1e-6 {
			t.Fatalf("vertex %d at radius %g", i/3, r)
		}
	}
}

func TestUVSphere_Rejects(t *testing.T) {
	if _, err := UVSphere(1, 8); err == nil {
		t.Fatal("expected error for one ring")
	}
	if _, err := UVSphere(4, 2); err == nil {
		t.Fatal("expected error for two sectors")
	}
}

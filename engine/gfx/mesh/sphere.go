// Package mesh builds CPU-side geometry for the GPU backend.
package mesh

import (
	"fmt"
	"math"
)

// Sphere is an indexed triangle mesh with tightly packed xyz positions.
type Sphere struct {
	Positions []float32
	Indices   []uint32
}

// VertexCount is len(Positions)/3.
func (s Sphere) VertexCount() int { return len(s.Positions) / 3 }

// UVSphere builds a unit sphere with rings latitude bands and sectors
// longitude slices. Seam and pole vertices are duplicated.
func UVSphere(rings, sectors int) (Sphere, error) {
	if rings < 2 || sectors < 3 {
		return Sphere{}, fmt.Errorf("uv sphere needs rings >= 2 and sectors >= 3, got %d×%d", rings, sectors)
	}
	var s Sphere
	s.Positions = make([]float32, 0, (rings+1)*(sectors+1)*3)
	for r := 0; r <= rings; r++ {
		phi := math.Pi * float64(r) / float64(rings) // 0 at +Y pole
		y := math.Cos(phi)
		ring := math.Sin(phi)
		for k := 0; k <= sectors; k++ {
			theta := 2 * math.Pi * float64(k) / float64(sectors)
			s.Positions = append(s.Positions,
				float32(ring*math.Cos(theta)),
				float32(y),
				float32(ring*math.Sin(theta)),
			)
		}
	}
	stride := uint32(sectors + 1)
	s.Indices = make([]uint32, 0, rings*sectors*6)
	for r := uint32(0); r < uint32(rings); r++ {
		for k := uint32(0); k < uint32(sectors); k++ {
			a := r*stride + k
			b := a + stride
			s.Indices = append(s.Indices,
				a, b, a+1,
				a+1, b, b+1,
			)
		}
	}
	return s, nil
}

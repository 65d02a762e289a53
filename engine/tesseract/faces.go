package tesseract

import "fmt"

// Face is one square of a cubical cell, as indices into the vertex set.
// Outer selects the shading group: the w=+1 cell is outer, w=-1 inner.
type Face struct {
	Corners [4]int
	Outer   bool
}

// cellQuads are the six faces of a cube over vertex indices 0..7,
// each wound around its perimeter.
var cellQuads = [6][4]int{
	{0, 1, 3, 2},
	{0, 1, 5, 4},
	{0, 2, 6, 4},
	{1, 3, 7, 5},
	{2, 3, 7, 6},
	{4, 5, 7, 6},
}

var faces = buildFaces()

func buildFaces() [NumFaces]Face {
	var out [NumFaces]Face
	for i, q := range cellQuads {
		out[i] = Face{Corners: q, Outer: true}
		inner := q
		for k := range inner {
			inner[k] += NumVertices / 2
		}
		out[i+len(cellQuads)] = Face{Corners: inner, Outer: false}
	}
	return out
}

// Faces returns the face table in emission order: 6 outer faces, then 6 inner.
func Faces() [NumFaces]Face { return faces }

// ValidateFaces checks every index is in range and each face stays inside
// the half of the vertex set that belongs to its cell.
func ValidateFaces(fs []Face) error {
	const half = NumVertices / 2
	for i, f := range fs {
		lo, hi := half, NumVertices-1
		if f.Outer {
			lo, hi = 0, half-1
		}
		for _, c := range f.Corners {
			if c < 0 || c >= NumVertices {
				return fmt.Errorf("face %d: index %d out of range [0,%d]", i, c, NumVertices-1)
			}
			if c < lo || c > hi {
				return fmt.Errorf("face %d: index %d outside its cell [%d,%d]", i, c, lo, hi)
			}
		}
	}
	return nil
}

package math4d

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Rotation returns the 4×4 matrix rotating by theta radians in plane p.
// Outside rows/columns A and B it is the identity; inside them
//
//	R[a][a] =  cos θ   R[a][b] = sin θ
//	R[b][a] = -sin θ   R[b][b] = cos θ
//
// The caller is expected to pass a valid plane.
func Rotation(p Plane, theta float64) mgl64.Mat4 {
	c, s := math.Cos(theta), math.Sin(theta)
	m := mgl64.Ident4()
	m.Set(p.A, p.A, c)
	m.Set(p.A, p.B, s)
	m.Set(p.B, p.A, -s)
	m.Set(p.B, p.B, c)
	return m
}

// Apply returns m·v.
func Apply(m mgl64.Mat4, v mgl64.Vec4) mgl64.Vec4 {
	return m.Mul4x1(v)
}

// RotateAll replaces every vertex with its rotation by theta in plane p.
func RotateAll(vs []mgl64.Vec4, p Plane, theta float64) {
	m := Rotation(p, theta)
	for i := range vs {
		vs[i] = m.Mul4x1(vs[i])
	}
}

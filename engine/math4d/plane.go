package math4d

import (
	"errors"
	"fmt"
)

// ErrInvalidPlane is returned for planes whose axes coincide or fall outside [0,3].
var ErrInvalidPlane = errors.New("math4d: invalid rotation plane")

// Plane selects the pair of coordinate axes a rotation acts in.
// Axes are indexed 0..3 as x, y, z, w.
type Plane struct {
	A, B int
}

// The six coordinate planes of 4-space.
var (
	PlaneXY = Plane{0, 1}
	PlaneXZ = Plane{0, 2}
	PlaneXW = Plane{0, 3}
	PlaneYZ = Plane{1, 2}
	PlaneYW = Plane{1, 3}
	PlaneZW = Plane{2, 3}
)

func (p Plane) Validate() error {
	if p.A < 0 || p.A > 3 || p.B < 0 || p.B > 3 {
		return fmt.Errorf("%w: axes (%d,%d) out of range", ErrInvalidPlane, p.A, p.B)
	}
	if p.A == p.B {
		return fmt.Errorf("%w: axes (%d,%d) coincide", ErrInvalidPlane, p.A, p.B)
	}
	return nil
}

func (p Plane) String() string {
	const names = "xyzw"
	if p.Validate() != nil {
		return fmt.Sprintf("(%d,%d)", p.A, p.B)
	}
	return string([]byte{names[p.A], names[p.B]})
}

package math4d

import (
	"errors"
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

var (
	// ErrDegenerate marks a vertex that produced no usable projection.
	ErrDegenerate = errors.New("math4d: degenerate projection")
	// ErrClamped marks a projection whose scale hit Projector.MaxScale.
	ErrClamped = errors.New("math4d: projection scale clamped")
)

// Policy decides what happens to a vertex close in front of the singular
// depth. Vertices at or beyond it are always degenerate.
type Policy int

const (
	PolicyClamp Policy = iota // clamp the scale to MaxScale
	PolicyDrop                // drop the vertex for this frame
)

func (p Policy) String() string {
	switch p {
	case PolicyClamp:
		return "clamp"
	case PolicyDrop:
		return "drop"
	default:
		return fmt.Sprintf("Policy(%d)", int(p))
	}
}

// ParsePolicy maps "clamp"/"drop" to a Policy.
func ParsePolicy(s string) (Policy, error) {
	switch s {
	case "", "clamp":
		return PolicyClamp, nil
	case "drop":
		return PolicyDrop, nil
	}
	return 0, fmt.Errorf("unknown projection policy %q", s)
}

const (
	DefaultDistance = 3.0
	DefaultOffset   = 0.5
	DefaultMaxScale = 1000.0
)

// Projector maps 4D points to 3D with a perspective divide along w.
//
//	scale = (Distance - Offset) / (Distance - w)
type Projector struct {
	Distance float64 // viewer distance d along w
	Offset   float64 // projection plane offset c
	MaxScale float64 // largest admitted |scale|
	Policy   Policy
}

// NewProjector returns the projector with the default constants.
func NewProjector() Projector {
	return Projector{
		Distance: DefaultDistance,
		Offset:   DefaultOffset,
		MaxScale: DefaultMaxScale,
		Policy:   PolicyClamp,
	}
}

func (pr Projector) Validate() error {
	if !(pr.Distance > pr.Offset) {
		return fmt.Errorf("projector distance %.6g must exceed offset %.6g", pr.Distance, pr.Offset)
	}
	if !(pr.MaxScale > 0) || math.IsInf(pr.MaxScale, 0) {
		return fmt.Errorf("projector max scale must be finite and > 0, got %.6g", pr.MaxScale)
	}
	if pr.Policy != PolicyClamp && pr.Policy != PolicyDrop {
		return fmt.Errorf("projector: %v", pr.Policy)
	}
	return nil
}

// Scale returns the perspective factor for depth w. It is unguarded and
// diverges as w approaches Distance.
func (pr Projector) Scale(w float64) float64 {
	return (pr.Distance - pr.Offset) / (pr.Distance - w)
}

// Project maps v to 3D. A depth in front of Distance whose scale would
// exceed MaxScale is near-singular: PolicyClamp yields the point at MaxScale
// with ErrClamped, PolicyDrop yields ErrDegenerate. w >= Distance (the point
// is at or behind the viewer) and non-finite input are always ErrDegenerate.
func (pr Projector) Project(v mgl64.Vec4) (mgl64.Vec3, error) {
	for _, c := range v {
		if !isFinite(c) {
			return mgl64.Vec3{}, fmt.Errorf("%w: non-finite vertex %v", ErrDegenerate, v)
		}
	}
	num := pr.Distance - pr.Offset
	den := pr.Distance - v[3]
	if den <= 0 {
		return mgl64.Vec3{}, fmt.Errorf("%w: w=%.6g at or behind distance %.6g", ErrDegenerate, v[3], pr.Distance)
	}
	if den <= num/pr.MaxScale {
		if pr.Policy == PolicyDrop {
			return mgl64.Vec3{}, fmt.Errorf("%w: w=%.6g against distance %.6g", ErrDegenerate, v[3], pr.Distance)
		}
		return v.Vec3().Mul(pr.MaxScale), ErrClamped
	}
	return v.Vec3().Mul(num / den), nil
}

// ProjectStats counts per-frame projection outcomes.
type ProjectStats struct {
	Projected int
	Clamped   int
	Dropped   int
}

// ProjectAll projects src into the parallel array dst and records in ok
// whether each slot holds a usable point. All three slices share indices.
func (pr Projector) ProjectAll(dst []mgl64.Vec3, ok []bool, src []mgl64.Vec4) ProjectStats {
	var st ProjectStats
	for i, v := range src {
		p, err := pr.Project(v)
		switch {
		case err == nil:
			st.Projected++
		case errors.Is(err, ErrClamped):
			st.Projected++
			st.Clamped++
		default:
			st.Dropped++
			dst[i], ok[i] = mgl64.Vec3{}, false
			continue
		}
		dst[i], ok[i] = p, true
	}
	return st
}

func isFinite(x float64) bool { return !math.IsInf(x, 0) && !math.IsNaN(x) }

// Package tesseract holds the 4D hypercube: its vertices, face table,
// per-frame rotation and projection down to 3D.
package tesseract

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/hubastard/tesseract/engine/math4d"
)

const (
	NumVertices = 16
	NumFaces    = 12

	DefaultStep = 0.01 // radians per frame
)

// Options configure a Hypercube. A zero Plane or Projector takes the
// default; a zero Step is kept and freezes the 4D pose.
type Options struct {
	Plane     math4d.Plane
	Step      float64
	Projector math4d.Projector
}

// DefaultOptions rotate in the x-w plane by 0.01 rad per frame.
func DefaultOptions() Options {
	return Options{
		Plane:     math4d.PlaneXW,
		Step:      DefaultStep,
		Projector: math4d.NewProjector(),
	}
}

// Hypercube owns the vertex set and the projected set derived from it.
// Neither array is shared; Rotate mutates vertices in place and Project
// overwrites every projected slot.
type Hypercube struct {
	opts Options

	vertices  [NumVertices]mgl64.Vec4
	projected [NumVertices]mgl64.Vec3
	visible   [NumVertices]bool

	frames uint64
	last   math4d.ProjectStats
}

// Canonical returns the 16 corners of the hypercube: the first 8 have
// w=+1, the last 8 w=-1, and within each half x varies slowest, z fastest.
func Canonical() [NumVertices]mgl64.Vec4 {
	var vs [NumVertices]mgl64.Vec4
	for i := range vs {
		sign := func(bit int) float64 {
			if i&bit != 0 {
				return 1
			}
			return -1
		}
		w := 1.0
		if i >= NumVertices/2 {
			w = -1
		}
		vs[i] = mgl64.Vec4{sign(4), sign(2), sign(1), w}
	}
	return vs
}

// New builds a canonical hypercube.
func New(opts Options) (*Hypercube, error) {
	def := DefaultOptions()
	if opts.Plane == (math4d.Plane{}) {
		opts.Plane = def.Plane
	}
	if opts.Projector == (math4d.Projector{}) {
		opts.Projector = def.Projector
	}
	if err := opts.Plane.Validate(); err != nil {
		return nil, err
	}
	if err := opts.Projector.Validate(); err != nil {
		return nil, err
	}
	if math.IsNaN(opts.Step) || math.IsInf(opts.Step, 0) {
		return nil, fmt.Errorf("hypercube step must be finite, got %g", opts.Step)
	}
	h := &Hypercube{opts: opts, vertices: Canonical()}
	h.Project()
	Logger().Debug("hypercube created", "plane", opts.Plane.String(), "step", opts.Step,
		"distance", opts.Projector.Distance, "offset", opts.Projector.Offset, "policy", opts.Projector.Policy.String())
	return h, nil
}

func (h *Hypercube) Options() Options { return h.opts }

// Vertices returns a copy of the current 4D vertex set.
func (h *Hypercube) Vertices() [NumVertices]mgl64.Vec4 { return h.vertices }

// Projected returns a copy of the last projection and which slots are usable.
func (h *Hypercube) Projected() ([NumVertices]mgl64.Vec3, [NumVertices]bool) {
	return h.projected, h.visible
}

// Frames is the number of rotation steps applied so far.
func (h *Hypercube) Frames() uint64 { return h.frames }

// LastStats reports the outcome of the most recent Project.
func (h *Hypercube) LastStats() math4d.ProjectStats { return h.last }

// Reset restores the canonical vertex set.
func (h *Hypercube) Reset() {
	h.vertices = Canonical()
	h.frames = 0
	h.Project()
}

// Rotate advances the orientation by one step in the configured plane.
func (h *Hypercube) Rotate() {
	math4d.RotateAll(h.vertices[:], h.opts.Plane, h.opts.Step)
	h.frames++
}

// Project recomputes every projected vertex. Vertices the projector rejects
// are hidden for this frame; the loop carries on.
func (h *Hypercube) Project() math4d.ProjectStats {
	st := h.opts.Projector.ProjectAll(h.projected[:], h.visible[:], h.vertices[:])
	if st.Clamped > 0 || st.Dropped > 0 {
		Logger().Debug("degenerate projection", "frame", h.frames, "clamped", st.Clamped, "dropped", st.Dropped)
	}
	h.last = st
	return st
}

// Emit sends the 12 faces in table order, then one marker per vertex.
// Faces touching a hidden vertex are skipped.
func (h *Hypercube) Emit(s Surface) {
	p := &h.projected
	for _, f := range faces {
		c := f.Corners
		if !h.visible[c[0]] || !h.visible[c[1]] || !h.visible[c[2]] || !h.visible[c[3]] {
			continue
		}
		s.DrawQuad(p[c[0]], p[c[1]], p[c[2]], p[c[3]], f.Outer)
	}
	for i := range p {
		if h.visible[i] {
			s.DrawMarker(p[i])
		}
	}
}

// Frame runs one full step: rotate, project, emit.
func (h *Hypercube) Frame(s Surface) math4d.ProjectStats {
	h.Rotate()
	st := h.Project()
	h.Emit(s)
	return st
}

func (h *Hypercube) String() string {
	return fmt.Sprintf("Hypercube{plane=%v step=%g frames=%d}", h.opts.Plane, h.opts.Step, h.frames)
}

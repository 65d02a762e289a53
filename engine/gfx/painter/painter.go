// Package painter turns world-space draw calls into depth-sorted screen
// primitives for the CPU backends, which have no depth buffer.
package painter

import (
	"sort"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/hubastard/tesseract/engine/scene"
)

type Kind int

const (
	KindQuad Kind = iota
	KindMarker
)

// Pt is a screen position in pixels (or cells), origin top-left.
type Pt struct{ X, Y float64 }

// Item is one primitive ready to draw.
type Item struct {
	Kind   Kind
	Pts    [4]Pt   // quad corners; markers use Pts[0]
	Radius float64 // marker radius in screen units
	Outer  bool
	Depth  float32 // NDC z; larger is farther
	seq    int
}

// Batch collects one frame of items against a camera and viewport.
type Batch struct {
	VP           mgl32.Mat4
	Width        int
	Height       int
	Focal        float64 // see scene.FocalPixels
	MarkerRadius float64 // world units
	Culled       int     // primitives dropped for crossing behind the eye

	items []Item
}

// Reset empties the batch, keeping its capacity.
func (b *Batch) Reset() {
	b.items = b.items[:0]
	b.Culled = 0
}

func (b *Batch) Len() int { return len(b.items) }

// AddQuad projects the corners; the quad is culled when any corner is
// behind the eye.
func (b *Batch) AddQuad(c0, c1, c2, c3 mgl64.Vec3, outer bool) {
	it := Item{Kind: KindQuad, Outer: outer, seq: len(b.items)}
	var z float32
	for i, c := range [4]mgl64.Vec3{c0, c1, c2, c3} {
		ndc, ok := scene.Project(b.VP, c)
		if !ok {
			b.Culled++
			return
		}
		x, y := scene.ToPixels(ndc, b.Width, b.Height)
		it.Pts[i] = Pt{x, y}
		z += ndc.Z()
	}
	it.Depth = z / 4
	b.items = append(b.items, it)
}

// AddMarker projects p; its screen radius shrinks with distance.
func (b *Batch) AddMarker(p mgl64.Vec3) {
	ndc, w, ok := scene.ProjectClip(b.VP, p)
	if !ok {
		b.Culled++
		return
	}
	x, y := scene.ToPixels(ndc, b.Width, b.Height)
	b.items = append(b.items, Item{
		Kind:   KindMarker,
		Pts:    [4]Pt{{x, y}},
		Radius: b.MarkerRadius * b.Focal / float64(w),
		Depth:  ndc.Z(),
		seq:    len(b.items),
	})
}

// Sorted returns the items far to near. Ties keep submission order.
func (b *Batch) Sorted() []Item {
	out := make([]Item, len(b.items))
	copy(out, b.items)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Depth != out[j].Depth {
			return out[i].Depth > out[j].Depth
		}
		return out[i].seq < out[j].seq
	})
	return out
}

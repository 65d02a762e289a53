package term

import (
	"math"

	"github.com/gdamore/tcell/v2"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/hubastard/tesseract/engine/colors"
	"github.com/hubastard/tesseract/engine/core"
	"github.com/hubastard/tesseract/engine/gfx/painter"
	"github.com/hubastard/tesseract/engine/scene"
)

const (
	outerEdge = '#'
	innerEdge = '+'
	marker    = 'o'
)

// Renderer implements core.Renderer by plotting quad outlines and vertex
// markers into screen cells, far to near.
type Renderer struct {
	screen tcell.Screen
	fovY   float32
	batch  painter.Batch
	bg     tcell.Style
}

func NewRenderer(screen tcell.Screen, fovY float32) *Renderer {
	r := &Renderer{screen: screen, fovY: fovY, bg: tcell.StyleDefault}
	r.batch.VP = mgl32.Ident4()
	cols, rows := screen.Size()
	r.Resize(cols, rows*CellAspect)
	return r
}

// Resize takes half-cell units, as reported by Window.
func (r *Renderer) Resize(w, h int) {
	r.batch.Width, r.batch.Height = w, h
	r.batch.Focal = scene.FocalPixels(r.fovY, h)
}

func (r *Renderer) Clear(c colors.Color) {
	r.batch.Reset()
	r.bg = tcell.StyleDefault.Background(toColor(c))
}

func (r *Renderer) SetViewProj(vp mgl32.Mat4) { r.batch.VP = vp }
func (r *Renderer) SetTime(float32)           {}

func (r *Renderer) DrawQuad(c0, c1, c2, c3 mgl64.Vec3, outer bool) {
	r.batch.AddQuad(c0, c1, c2, c3, outer)
}

func (r *Renderer) DrawMarker(p mgl64.Vec3) { r.batch.AddMarker(p) }

func (r *Renderer) Flush() error {
	r.screen.Fill(' ', r.bg)
	for _, it := range r.batch.Sorted() {
		switch it.Kind {
		case painter.KindQuad:
			ch := innerEdge
			if it.Outer {
				ch = outerEdge
			}
			st := r.bg.Foreground(toColor(colors.Face(it.Outer).WithAlpha(1)))
			for i := range it.Pts {
				a, b := r.cell(it.Pts[i]), r.cell(it.Pts[(i+1)%4])
				if r.far(a) || r.far(b) {
					continue
				}
				line(a[0], a[1], b[0], b[1], func(x, y int) { r.put(x, y, ch, st) })
			}
		case painter.KindMarker:
			p := r.cell(it.Pts[0])
			r.put(p[0], p[1], marker, r.bg.Foreground(toColor(colors.Marker)).Bold(true))
		}
	}
	r.screen.Show()
	return nil
}

func (r *Renderer) Shutdown() {
	core.Logger().Debug("terminal renderer shutdown")
}

// cell maps a half-cell position to a column and row.
func (r *Renderer) cell(p painter.Pt) [2]int {
	return [2]int{int(math.Floor(p.X)), int(math.Floor(p.Y / CellAspect))}
}

// far reports cells well outside the screen; edges to them are skipped.
func (r *Renderer) far(c [2]int) bool {
	cols, rows := r.screen.Size()
	return abs(c[0]) > 4*cols+4 || abs(c[1]) > 4*rows+4
}

func (r *Renderer) put(x, y int, ch rune, st tcell.Style) {
	cols, rows := r.screen.Size()
	if x < 0 || y < 0 || x >= cols || y >= rows {
		return
	}
	r.screen.SetContent(x, y, ch, nil, st)
}

// line visits every cell of the Bresenham line from (x0,y0) to (x1,y1).
func line(x0, y0, x1, y1 int, plot func(x, y int)) {
	dx := abs(x1 - x0)
	dy := -abs(y1 - y0)
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}
	err := dx + dy
	for {
		plot(x0, y0)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func toColor(c colors.Color) tcell.Color {
	r, g, b, _ := c.RGBA8()
	return tcell.NewRGBColor(int32(r), int32(g), int32(b))
}

// Package raster renders frames on the CPU with gg and hands them to a Sink.
package raster

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/gogpu/gg"
	"github.com/hubastard/tesseract/engine/colors"
	"github.com/hubastard/tesseract/engine/core"
	"github.com/hubastard/tesseract/engine/gfx/painter"
	"github.com/hubastard/tesseract/engine/scene"
)

type Options struct {
	FovY         float32 // must match the camera; sizes the markers
	MarkerRadius float64
	EdgeWidth    float64
}

// Renderer implements core.Renderer on a gg.Context.
type Renderer struct {
	dc     *gg.Context
	sink   Sink
	opts   Options
	batch  painter.Batch
	bg     colors.Color
	frame  int
	closed bool
}

func NewRenderer(width, height int, sink Sink, opts Options) (*Renderer, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("raster size must be > 0, got %dx%d", width, height)
	}
	if opts.FovY <= 0 {
		opts.FovY = mgl32.DegToRad(45)
	}
	if opts.EdgeWidth == 0 {
		opts.EdgeWidth = 1
	}
	r := &Renderer{
		dc:   gg.NewContext(width, height),
		sink: sink,
		opts: opts,
		bg:   colors.DarkGray,
	}
	r.batch.VP = mgl32.Ident4()
	r.batch.MarkerRadius = opts.MarkerRadius
	r.Resize(width, height)
	return r, nil
}

// Resize is ignored once created: the output size is fixed per run.
func (r *Renderer) Resize(_, _ int) {
	r.batch.Width, r.batch.Height = r.dc.Width(), r.dc.Height()
	r.batch.Focal = scene.FocalPixels(r.opts.FovY, r.dc.Height())
}

func (r *Renderer) Clear(c colors.Color) {
	r.bg = c
	r.batch.Reset()
}

func (r *Renderer) SetViewProj(vp mgl32.Mat4) { r.batch.VP = vp }
func (r *Renderer) SetTime(float32)           {}

func (r *Renderer) DrawQuad(c0, c1, c2, c3 mgl64.Vec3, outer bool) {
	r.batch.AddQuad(c0, c1, c2, c3, outer)
}

func (r *Renderer) DrawMarker(p mgl64.Vec3) { r.batch.AddMarker(p) }

// Frames is the number of frames handed to the sink.
func (r *Renderer) Frames() int { return r.frame }

// Flush rasterizes the frame far to near and passes it to the sink.
func (r *Renderer) Flush() error {
	dc := r.dc
	dc.ClearWithColor(toRGBA(r.bg))
	for _, it := range r.batch.Sorted() {
		var err error
		switch it.Kind {
		case painter.KindQuad:
			err = r.fillQuad(it)
		case painter.KindMarker:
			setColor(dc, colors.Marker)
			dc.DrawCircle(it.Pts[0].X, it.Pts[0].Y, it.Radius)
			err = dc.Fill()
		}
		if err != nil {
			return fmt.Errorf("raster frame %d: %w", r.frame, err)
		}
	}
	if r.batch.Culled > 0 {
		core.Logger().Debug("raster culled primitives", "frame", r.frame, "count", r.batch.Culled)
	}
	if err := dc.FlushGPU(); err != nil {
		return fmt.Errorf("raster frame %d: %w", r.frame, err)
	}
	if err := r.sink.WriteFrame(dc.Image(), r.frame); err != nil {
		return fmt.Errorf("write frame %d: %w", r.frame, err)
	}
	r.frame++
	return nil
}

func (r *Renderer) fillQuad(it painter.Item) error {
	dc := r.dc
	dc.MoveTo(it.Pts[0].X, it.Pts[0].Y)
	for _, p := range it.Pts[1:] {
		dc.LineTo(p.X, p.Y)
	}
	dc.ClosePath()
	c := colors.Face(it.Outer)
	setColor(dc, c)
	if err := dc.FillPreserve(); err != nil {
		return err
	}
	setColor(dc, c.WithAlpha(1))
	dc.SetLineWidth(r.opts.EdgeWidth)
	return dc.Stroke()
}

// Shutdown closes the sink, which is when an animated GIF hits the disk.
func (r *Renderer) Shutdown() {
	if r.closed {
		return
	}
	r.closed = true
	if err := r.sink.Close(); err != nil {
		core.Logger().Error("close frame sink", "err", err)
	}
	if err := r.dc.Close(); err != nil {
		core.Logger().Warn("close raster context", "err", err)
	}
	core.Logger().Info("raster output done", "frames", r.frame)
}

func toRGBA(c colors.Color) gg.RGBA {
	return gg.RGBA{R: float64(c[0]), G: float64(c[1]), B: float64(c[2]), A: float64(c[3])}
}

func setColor(dc *gg.Context, c colors.Color) {
	dc.SetRGBA(float64(c[0]), float64(c[1]), float64(c[2]), float64(c[3]))
}

package main

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/hubastard/tesseract/engine/config"
	"github.com/hubastard/tesseract/engine/core"
	"github.com/hubastard/tesseract/engine/profiler"
	"github.com/hubastard/tesseract/engine/scene"
	"github.com/hubastard/tesseract/engine/tesseract"
)

// TesseractLayer rotates the hypercube once per frame and draws it from an
// orbiting camera.
type TesseractLayer struct {
	cube  *tesseract.Hypercube
	cam   *scene.OrbitCamera
	ctrl  *scene.OrbitController
	clock func(*core.Engine) float64
}

func NewTesseractLayer(cube *tesseract.Hypercube, c config.CameraCfg, clock func(*core.Engine) float64) *TesseractLayer {
	cam := scene.NewOrbitCamera(
		mgl32.DegToRad(float32(c.FovDeg)), 1,
		float32(c.Near), float32(c.Far),
		float32(c.Radius), float32(c.Height), float32(c.OrbitSpeed),
	)
	return &TesseractLayer{
		cube:  cube,
		cam:   cam,
		ctrl:  scene.NewOrbitController(cam),
		clock: clock,
	}
}

func (l *TesseractLayer) OnAttach(e *core.Engine) {
	w, h := e.Window.FramebufferSize()
	l.cam.SetViewportPixels(w, h)
	l.cam.Update(l.clock(e))
}

func (l *TesseractLayer) OnDetach(e *core.Engine) {}

func (l *TesseractLayer) OnUpdate(e *core.Engine, dt float64) {
	defer profiler.Start("tesseract.update")()
	l.cube.Rotate()
	l.ctrl.Update(e.Input, l.clock(e), float32(dt))
}

func (l *TesseractLayer) OnRender(e *core.Engine) {
	defer profiler.Start("tesseract.render")()
	e.Renderer.SetViewProj(l.cam.VP())
	l.cube.Project()
	l.cube.Emit(e.Renderer)
}

func (l *TesseractLayer) OnEvent(e *core.Engine, ev core.Event) bool {
	switch v := ev.(type) {
	case core.EventResize:
		l.cam.SetViewportPixels(v.W, v.H)
	case core.EventKey:
		if !v.Down {
			return false
		}
		switch v.Key {
		case core.KeyEscape:
			e.Window.RequestClose()
			return true
		case core.KeyR:
			l.cube.Reset()
			core.Logger().Info("hypercube reset")
			return true
		case core.KeySpace:
			return l.ctrl.HandleEvent(ev, l.clock(e))
		}
	}
	return false
}

package main

import (
	"github.com/hubastard/tesseract/engine/config"
	"github.com/hubastard/tesseract/engine/core"
	"github.com/hubastard/tesseract/engine/profiler"
	"github.com/hubastard/tesseract/engine/tesseract"
)

// offscreenFPS converts frame numbers to seconds when rendering to files.
const offscreenFPS = 60

type App struct {
	cfg       config.Config
	cube      *tesseract.Hypercube
	fixedStep bool

	layer *TesseractLayer
	stats *StatsLayer
}

func (a *App) OnStart(e *core.Engine) {
	profiler.Reset()
	profiler.Enable(a.cfg.StatsEvery > 0)

	a.layer = NewTesseractLayer(a.cube, a.cfg.Camera, a.clock)
	e.PushLayer(a.layer)

	if a.cfg.StatsEvery > 0 {
		a.stats = &StatsLayer{cube: a.cube, every: uint64(a.cfg.StatsEvery)}
		e.PushLayer(a.stats)
	}
	core.Logger().Info("layers attached", "count", e.Layers.Len())
}

func (a *App) OnUpdate(e *core.Engine, dt float64) {}
func (a *App) OnRender(e *core.Engine)             {}

// OnEvent sees what no layer handled.
func (a *App) OnEvent(e *core.Engine, ev core.Event) {
	if k, ok := ev.(core.EventKey); ok && k.Down && k.Key == core.KeyEscape {
		e.Window.RequestClose()
	}
}

func (a *App) OnShutdown(e *core.Engine) {
	core.Logger().Info("shutdown", "frames", e.Frames(), "rotations", a.cube.Frames())
}

// clock is the time driving the camera orbit: wall clock on screen,
// frame-stepped when writing files so output is reproducible.
func (a *App) clock(e *core.Engine) float64 {
	if a.fixedStep {
		return float64(e.Frames()) / offscreenFPS
	}
	return e.Uptime().Seconds()
}

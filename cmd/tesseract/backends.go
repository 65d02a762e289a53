package main

import (
	"fmt"
	"path/filepath"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/hubastard/tesseract/engine/config"
	"github.com/hubastard/tesseract/engine/core"
	glbackend "github.com/hubastard/tesseract/engine/gfx/gl"
	"github.com/hubastard/tesseract/engine/gfx/raster"
	"github.com/hubastard/tesseract/engine/gfx/term"
	"github.com/hubastard/tesseract/engine/platform"
)

type backend struct {
	newWindow   func(core.Config) (core.Window, error)
	newRenderer func(core.Window, core.Config) (core.Renderer, error)
	offscreen   bool // frame-stepped clock, fixed frame count
}

func selectBackend(cfg config.Config) (backend, error) {
	fovY := mgl32.DegToRad(float32(cfg.Camera.FovDeg))

	switch cfg.Backend {
	case config.BackendGL:
		return backend{
			newWindow: func(c core.Config) (core.Window, error) {
				return platform.NewGLFWWindow(c, nil)
			},
			newRenderer: func(win core.Window, c core.Config) (core.Renderer, error) {
				return glbackend.NewRendererGL(win, c, glbackend.Options{
					MarkerRadius:  float32(cfg.Marker.Radius),
					SphereRings:   cfg.Marker.Rings,
					SphereSectors: cfg.Marker.Sectors,
				})
			},
		}, nil

	case config.BackendTerm:
		return backend{
			newWindow: func(core.Config) (core.Window, error) {
				return term.NewWindow(nil, cfg.Window.FPS)
			},
			newRenderer: func(win core.Window, _ core.Config) (core.Renderer, error) {
				tw, ok := win.(*term.Window)
				if !ok {
					return nil, fmt.Errorf("terminal renderer needs a terminal window, got %T", win)
				}
				return term.NewRenderer(tw.Screen(), fovY), nil
			},
		}, nil

	case config.BackendPNG, config.BackendGIF:
		out := cfg.Output
		return backend{
			offscreen: true,
			newWindow: func(c core.Config) (core.Window, error) {
				return raster.NewWindow(c.Width, c.Height, out.Frames), nil
			},
			newRenderer: func(_ core.Window, c core.Config) (core.Renderer, error) {
				var sink raster.Sink
				var err error
				if cfg.Backend == config.BackendPNG {
					sink, err = raster.NewPNGSequence(out.Dir, out.Prefix)
				} else {
					sink, err = raster.NewAnimatedGIF(filepath.Join(out.Dir, out.Prefix+".gif"), out.GIFDelay)
				}
				if err != nil {
					return nil, err
				}
				return raster.NewRenderer(c.Width, c.Height, sink, raster.Options{
					FovY:         fovY,
					MarkerRadius: cfg.Marker.Radius,
				})
			},
		}, nil
	}
	return backend{}, fmt.Errorf("unknown backend %q", cfg.Backend)
}

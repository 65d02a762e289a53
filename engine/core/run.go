package core

import (
	"fmt"
	"runtime"
	"time"

	"github.com/hubastard/tesseract/engine/profiler"
)

// Run wires the platform window + renderer and executes the main loop.
// Every iteration is one rendered frame: poll, update once, clear, render,
// flush, present. The loop ends when the window reports ShouldClose.
func Run(app App, cfg Config, newWindow func(Config) (Window, error), newRenderer func(Window, Config) (Renderer, error)) error {
	// Graphics contexts require the main OS thread.
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	win, err := newWindow(cfg)
	if err != nil {
		return fmt.Errorf("create window: %w", err)
	}
	// window owns the context; renderer shuts down first
	defer win.Destroy()

	rend, err := newRenderer(win, cfg)
	if err != nil {
		return fmt.Errorf("create renderer: %w", err)
	}
	defer rend.Shutdown()

	w, h := win.FramebufferSize()
	rend.Resize(w, h)

	eng := &Engine{Window: win, Renderer: rend, Input: NewInput(), start: time.Now()}
	win.SetEventCallback(func(ev Event) {
		eng.Input.Handle(ev)
		switch v := ev.(type) {
		case EventCloseRequested:
			win.RequestClose()
		case EventResize:
			if v.W >= 1 && v.H >= 1 {
				rend.Resize(v.W, v.H)
			}
		}
		handled := false
		eng.Layers.ForEachReverse(func(l Layer) bool {
			handled = l.OnEvent(eng, ev)
			return handled
		})
		if !handled {
			app.OnEvent(eng, ev)
		}
	})

	app.OnStart(eng)
	defer func() {
		for {
			l, ok := eng.Layers.Pop()
			if !ok {
				break
			}
			l.OnDetach(eng)
		}
		app.OnShutdown(eng)
		Logger().Info("engine exit", "frames", eng.frames, "uptime", eng.Uptime().Round(time.Millisecond))
	}()

	prev := time.Now()
	for !win.ShouldClose() {
		end := profiler.Start("frame")

		now := time.Now()
		dt := now.Sub(prev).Seconds()
		prev = now

		// Poll OS events (platform emits via callbacks)
		win.PollEvents()

		app.OnUpdate(eng, dt)
		eng.Layers.ForEach(func(l Layer) { l.OnUpdate(eng, dt) })

		rend.SetTime(float32(eng.Uptime().Seconds()))
		rend.Clear(cfg.ClearColor)
		app.OnRender(eng)
		eng.Layers.ForEach(func(l Layer) { l.OnRender(eng) })
		if err := rend.Flush(); err != nil {
			end()
			return fmt.Errorf("frame %d: %w", eng.frames, err)
		}

		// Present
		win.SwapBuffers()
		eng.frames++
		end()
	}
	return nil
}

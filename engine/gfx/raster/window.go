package raster

import "github.com/hubastard/tesseract/engine/core"

// Window is a headless core.Window that closes after a fixed number of
// presented frames.
type Window struct {
	width, height int
	budget        int
	presented     int
	closing       bool
	onEv          func(core.Event)
}

func NewWindow(width, height, frames int) *Window {
	return &Window{width: width, height: height, budget: frames}
}

func (w *Window) PollEvents()                          {}
func (w *Window) SwapBuffers()                         { w.presented++ }
func (w *Window) ShouldClose() bool                    { return w.closing || w.presented >= w.budget }
func (w *Window) RequestClose()                        { w.closing = true }
func (w *Window) FramebufferSize() (int, int)          { return w.width, w.height }
func (w *Window) SetTitle(string)                      {}
func (w *Window) SetEventCallback(cb func(core.Event)) { w.onEv = cb }
func (w *Window) Destroy()                             {}

// Presented is the number of frames swapped so far.
func (w *Window) Presented() int { return w.presented }

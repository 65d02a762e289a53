// Package term draws the tesseract as coloured line art in a terminal.
package term

import (
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/hubastard/tesseract/engine/core"
)

// CellAspect is how much taller a cell is than wide. Sizes reported to the
// engine are in half-cells so the camera sees square units.
const CellAspect = 2

// DefaultFPS paces SwapBuffers when no rate is given.
const DefaultFPS = 60

// Window implements core.Window over a tcell.Screen. Terminals report no
// key releases, so a pressed key reads as held until the next poll.
type Window struct {
	screen  tcell.Screen
	events  chan tcell.Event
	quit    chan struct{}
	onEv    func(core.Event)
	held    []core.Key
	closing bool
	tick    *time.Ticker
}

// NewWindow takes ownership of screen, initializing it. A nil screen opens
// the controlling terminal. SwapBuffers blocks to hold fps frames per second;
// fps <= 0 means DefaultFPS.
func NewWindow(screen tcell.Screen, fps int) (*Window, error) {
	if fps <= 0 {
		fps = DefaultFPS
	}
	if screen == nil {
		s, err := tcell.NewScreen()
		if err != nil {
			return nil, err
		}
		screen = s
	}
	if err := screen.Init(); err != nil {
		return nil, err
	}
	screen.SetStyle(tcell.StyleDefault.Background(tcell.ColorReset).Foreground(tcell.ColorReset))
	screen.HideCursor()

	w := &Window{
		screen: screen,
		events: make(chan tcell.Event, 16),
		quit:   make(chan struct{}),
		tick:   time.NewTicker(time.Second / time.Duration(fps)),
	}
	go w.pump()
	return w, nil
}

// pump forwards screen events until the screen is finalized.
func (w *Window) pump() {
	for {
		ev := w.screen.PollEvent()
		if ev == nil {
			return
		}
		select {
		case w.events <- ev:
		case <-w.quit:
			return
		}
	}
}

func (w *Window) Screen() tcell.Screen { return w.screen }

func (w *Window) PollEvents() {
	for _, k := range w.held {
		w.emit(core.EventKey{Key: k, Down: false})
	}
	w.held = w.held[:0]
	for {
		select {
		case ev := <-w.events:
			w.handle(ev)
		default:
			return
		}
	}
}

func (w *Window) handle(ev tcell.Event) {
	switch e := ev.(type) {
	case *tcell.EventResize:
		cols, rows := e.Size()
		w.emit(core.EventResize{W: cols, H: rows * CellAspect})
	case *tcell.EventKey:
		if e.Key() == tcell.KeyCtrlC || (e.Modifiers()&tcell.ModCtrl != 0 && e.Key() == tcell.KeyRune && e.Rune() == 'c') {
			w.RequestClose()
			return
		}
		k := translateKey(e)
		if k == core.KeyQ {
			w.RequestClose()
		}
		if k == core.KeyUnknown {
			return
		}
		w.held = append(w.held, k)
		w.emit(core.EventKey{Key: k, Down: true, Mods: translateMods(e.Modifiers())})
	}
}

// SwapBuffers waits for the next frame tick. The screen itself is shown by
// the renderer's Flush.
func (w *Window) SwapBuffers() { <-w.tick.C }

func (w *Window) ShouldClose() bool                    { return w.closing }
func (w *Window) RequestClose()                        { w.closing = true }
func (w *Window) SetTitle(title string)                { w.screen.SetTitle(title) }
func (w *Window) SetEventCallback(cb func(core.Event)) { w.onEv = cb }

func (w *Window) FramebufferSize() (int, int) {
	cols, rows := w.screen.Size()
	return cols, rows * CellAspect
}

func (w *Window) Destroy() {
	w.tick.Stop()
	close(w.quit)
	w.screen.Fini()
}

func (w *Window) emit(ev core.Event) {
	if w.onEv != nil {
		w.onEv(ev)
	}
}

func translateKey(e *tcell.EventKey) core.Key {
	switch e.Key() {
	case tcell.KeyEscape:
		return core.KeyEscape
	case tcell.KeyRune:
	default:
		return core.KeyUnknown
	}
	switch e.Rune() {
	case ' ':
		return core.KeySpace
	case 'w', 'W':
		return core.KeyW
	case 'a', 'A':
		return core.KeyA
	case 's', 'S':
		return core.KeyS
	case 'd', 'D':
		return core.KeyD
	case 'q', 'Q':
		return core.KeyQ
	case 'r', 'R':
		return core.KeyR
	}
	return core.KeyUnknown
}

func translateMods(m tcell.ModMask) core.Mod {
	var out core.Mod
	if m&tcell.ModShift != 0 {
		out |= core.ModShift
	}
	if m&tcell.ModCtrl != 0 {
		out |= core.ModCtrl
	}
	if m&tcell.ModAlt != 0 {
		out |= core.ModAlt
	}
	if m&tcell.ModMeta != 0 {
		out |= core.ModSuper
	}
	return out
}

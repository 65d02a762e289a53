package core

import (
	"errors"
	"strings"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/hubastard/tesseract/engine/colors"
)

type fakeWindow struct {
	closeAfter int
	swaps      int
	closed     bool
	destroyed  bool
	cb         func(Event)
	pending    []Event
	log        *[]string
}

func (w *fakeWindow) PollEvents() {
	for _, ev := range w.pending {
		w.cb(ev)
	}
	w.pending = nil
}
func (w *fakeWindow) SwapBuffers() {
	w.swaps++
	*w.log = append(*w.log, "swap")
}
func (w *fakeWindow) ShouldClose() bool               { return w.closed || w.swaps >= w.closeAfter }
func (w *fakeWindow) RequestClose()                   { w.closed = true }
func (w *fakeWindow) FramebufferSize() (int, int)     { return 64, 32 }
func (w *fakeWindow) SetTitle(string)                 {}
func (w *fakeWindow) SetEventCallback(cb func(Event)) { w.cb = cb }
func (w *fakeWindow) Destroy()                        { w.destroyed = true }

type fakeRenderer struct {
	log      *[]string
	resized  [][2]int
	flushErr error
	shutdown bool
}

func (r *fakeRenderer) Resize(w, h int)                        { r.resized = append(r.resized, [2]int{w, h}) }
func (r *fakeRenderer) Clear(colors.Color)                     { *r.log = append(*r.log, "clear") }
func (r *fakeRenderer) SetViewProj(mgl32.Mat4)                 {}
func (r *fakeRenderer) SetTime(float32)                        {}
func (r *fakeRenderer) DrawQuad(_, _, _, _ mgl64.Vec3, _ bool) {}
func (r *fakeRenderer) DrawMarker(mgl64.Vec3)                  {}
func (r *fakeRenderer) Flush() error {
	*r.log = append(*r.log, "flush")
	return r.flushErr
}
func (r *fakeRenderer) Shutdown() { r.shutdown = true }

type fakeApp struct {
	log      *[]string
	layer    *fakeLayer
	events   []Event
	shutdown bool
}

func (a *fakeApp) OnStart(e *Engine) {
	if a.layer != nil {
		e.PushLayer(a.layer)
	}
}
func (a *fakeApp) OnUpdate(*Engine, float64) { *a.log = append(*a.log, "update") }
func (a *fakeApp) OnRender(*Engine)          { *a.log = append(*a.log, "render") }
func (a *fakeApp) OnEvent(_ *Engine, ev Event) {
	a.events = append(a.events, ev)
}
func (a *fakeApp) OnShutdown(*Engine) { a.shutdown = true }

type fakeLayer struct {
	attached, detached bool
	updates            int
	swallowKeys        bool
}

func (l *fakeLayer) OnAttach(*Engine)          { l.attached = true }
func (l *fakeLayer) OnDetach(*Engine)          { l.detached = true }
func (l *fakeLayer) OnUpdate(*Engine, float64) { l.updates++ }
func (l *fakeLayer) OnRender(*Engine)          {}
func (l *fakeLayer) OnEvent(_ *Engine, ev Event) bool {
	_, isKey := ev.(EventKey)
	return isKey && l.swallowKeys
}

func runFakes(t *testing.T, app *fakeApp, win *fakeWindow, rend *fakeRenderer) error {
	t.Helper()
	return Run(app, Config{ClearColor: colors.DarkGray},
		func(Config) (Window, error) { return win, nil },
		func(Window, Config) (Renderer, error) { return rend, nil })
}

func TestRun_OneUpdatePerFrame(t *testing.T) {
	var log []string
	win := &fakeWindow{closeAfter: 3, log: &log}
	rend := &fakeRenderer{log: &log}
	layer := &fakeLayer{}
	app := &fakeApp{log: &log, layer: layer}

	if err := runFakes(t, app, win, rend); err != nil {
		t.Fatal(err)
	}
	want := strings.Repeat("update clear render flush swap ", 3)
	if got := strings.Join(log, " ") + " "; got != want {
		t.Fatalf("call order:\n got %q\nwant %q", got, want)
	}
	if layer.updates != 3 || !layer.attached || !layer.detached {
		t.Fatalf("layer lifecycle wrong: %+v", layer)
	}
	if !app.shutdown || !rend.shutdown || !win.destroyed {
		t.Fatal("shutdown hooks not called")
	}
	if len(rend.resized) != 1 || rend.resized[0] != [2]int{64, 32} {
		t.Fatalf("initial resize %v", rend.resized)
	}
}

func TestRun_CloseRequestedStopsLoop(t *testing.T) {
	var log []string
	win := &fakeWindow{closeAfter: 100, log: &log, pending: []Event{EventCloseRequested{}}}
	app := &fakeApp{log: &log}
	if err := runFakes(t, app, win, &fakeRenderer{log: &log}); err != nil {
		t.Fatal(err)
	}
	if win.swaps != 1 {
		t.Fatalf("expected the loop to end after the current frame, got %d frames", win.swaps)
	}
}

func TestRun_EventRouting(t *testing.T) {
	var log []string
	win := &fakeWindow{closeAfter: 1, log: &log, pending: []Event{
		EventKey{Key: KeyEscape, Down: true},
		EventResize{W: 10, H: 20},
		EventResize{W: 0, H: 0},
	}}
	rend := &fakeRenderer{log: &log}
	app := &fakeApp{log: &log, layer: &fakeLayer{swallowKeys: true}}
	if err := runFakes(t, app, win, rend); err != nil {
		t.Fatal(err)
	}
	if len(app.events) != 2 {
		t.Fatalf("layer should have swallowed the key event, app saw %v", app.events)
	}
	if len(rend.resized) != 2 || rend.resized[1] != [2]int{10, 20} {
		t.Fatalf("resize not forwarded correctly: %v", rend.resized)
	}
}

func TestRun_FlushErrorAborts(t *testing.T) {
	var log []string
	boom := errors.New("boom")
	rend := &fakeRenderer{log: &log, flushErr: boom}
	app := &fakeApp{log: &log}
	err := runFakes(t, app, &fakeWindow{closeAfter: 5, log: &log}, rend)
	if !errors.Is(err, boom) {
		t.Fatalf("expected flush error, got %v", err)
	}
	if !rend.shutdown || !app.shutdown {
		t.Fatal("shutdown hooks must run on error")
	}
}

func TestRun_WindowError(t *testing.T) {
	boom := errors.New("no display")
	err := Run(&fakeApp{}, Config{},
		func(Config) (Window, error) { return nil, boom },
		func(Window, Config) (Renderer, error) { t.Fatal("renderer built without window"); return nil, nil })
	if !errors.Is(err, boom) {
		t.Fatalf("got %v", err)
	}
}

func TestInput(t *testing.T) {
	in := NewInput()
	in.Handle(EventKey{Key: KeyW, Down: true})
	in.Handle(EventMouseMove{X: 3, Y: 4})
	if !in.IsKeyDown(KeyW) || in.IsKeyDown(KeyA) {
		t.Fatal("key state wrong")
	}
	in.Handle(EventKey{Key: KeyW, Down: false})
	if in.IsKeyDown(KeyW) {
		t.Fatal("key release ignored")
	}
	if x, y := in.Mouse(); x != 3 || y != 4 {
		t.Fatalf("mouse %v,%v", x, y)
	}
}

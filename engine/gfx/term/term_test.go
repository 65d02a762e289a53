package term

import (
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/hubastard/tesseract/engine/colors"
	"github.com/hubastard/tesseract/engine/core"
	"github.com/hubastard/tesseract/engine/tesseract"
)

func newSimWindow(t *testing.T) (*Window, tcell.SimulationScreen) {
	t.Helper()
	sim := tcell.NewSimulationScreen("UTF-8")
	w, err := NewWindow(sim, 0)
	if err != nil {
		t.Fatal(err)
	}
	sim.SetSize(80, 40)
	t.Cleanup(w.Destroy)
	return w, sim
}

// pollUntil polls until cond holds; events arrive from the pump goroutine.
func pollUntil(t *testing.T, w *Window, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for !cond() {
		if time.Now().After(deadline) {
			t.Fatal("timed out waiting for events")
		}
		w.PollEvents()
		time.Sleep(time.Millisecond)
	}
}

func TestWindow_SizeInHalfCells(t *testing.T) {
	w, _ := newSimWindow(t)
	if fw, fh := w.FramebufferSize(); fw != 80 || fh != 80 {
		t.Fatalf("size %dx%d, want 80x80", fw, fh)
	}
}

func TestWindow_QuitKeysRequestClose(t *testing.T) {
	for _, ev := range []*tcell.EventKey{
		tcell.NewEventKey(tcell.KeyRune, 'q', tcell.ModNone),
		tcell.NewEventKey(tcell.KeyCtrlC, 0, tcell.ModCtrl),
	} {
		w, sim := newSimWindow(t)
		if err := sim.PostEvent(ev); err != nil {
			t.Fatal(err)
		}
		pollUntil(t, w, w.ShouldClose)
	}
}

func TestWindow_KeysAreHeldForOnePoll(t *testing.T) {
	w, sim := newSimWindow(t)
	in := core.NewInput()
	var got []core.EventKey
	w.SetEventCallback(func(ev core.Event) {
		in.Handle(ev)
		if k, ok := ev.(core.EventKey); ok {
			got = append(got, k)
		}
	})
	if err := sim.PostEvent(tcell.NewEventKey(tcell.KeyRune, 'w', tcell.ModNone)); err != nil {
		t.Fatal(err)
	}
	pollUntil(t, w, func() bool { return in.IsKeyDown(core.KeyW) })

	w.PollEvents()
	if in.IsKeyDown(core.KeyW) {
		t.Fatal("key still held after the next poll")
	}
	if len(got) < 2 || !got[0].Down || got[len(got)-1].Down {
		t.Fatalf("events %+v", got)
	}
	if w.ShouldClose() {
		t.Fatal("w must not close the window")
	}
}

func TestWindow_ResizeReportsHalfCells(t *testing.T) {
	w, sim := newSimWindow(t)
	var last core.EventResize
	w.SetEventCallback(func(ev core.Event) {
		if r, ok := ev.(core.EventResize); ok {
			last = r
		}
	})
	if err := sim.PostEvent(tcell.NewEventResize(30, 12)); err != nil {
		t.Fatal(err)
	}
	pollUntil(t, w, func() bool { return last.W == 30 })
	if last.H != 24 {
		t.Fatalf("resize %+v, want 30x24", last)
	}
}

// timedApp closes the window once the engine has run for d and records
// how many frames were presented.
type timedApp struct {
	d      time.Duration
	frames uint64
}

func (a *timedApp) OnStart(*core.Engine) {}
func (a *timedApp) OnUpdate(e *core.Engine, _ float64) {
	if e.Uptime() >= a.d {
		e.Window.RequestClose()
	}
}
func (a *timedApp) OnRender(*core.Engine)            {}
func (a *timedApp) OnEvent(*core.Engine, core.Event) {}
func (a *timedApp) OnShutdown(e *core.Engine)        { a.frames = e.Frames() }

func TestWindow_PacesFrames(t *testing.T) {
	app := &timedApp{d: 200 * time.Millisecond}
	err := core.Run(app, core.Config{},
		func(core.Config) (core.Window, error) {
			return NewWindow(tcell.NewSimulationScreen("UTF-8"), 60)
		},
		func(w core.Window, _ core.Config) (core.Renderer, error) {
			return NewRenderer(w.(*Window).Screen(), mgl32.DegToRad(45)), nil
		},
	)
	if err != nil {
		t.Fatal(err)
	}
	// 200ms at 60 Hz is 12 frames; leave room for scheduler slack
	if app.frames < 4 || app.frames > 16 {
		t.Fatalf("%d frames in 200ms at 60 fps", app.frames)
	}
}

func TestRenderer_DrawsEdgesAndMarkers(t *testing.T) {
	w, sim := newSimWindow(t)
	r := NewRenderer(w.Screen(), mgl32.DegToRad(45))

	h, err := tesseract.New(tesseract.DefaultOptions())
	if err != nil {
		t.Fatal(err)
	}
	proj := mgl32.Perspective(mgl32.DegToRad(45), 1, 0.1, 100)
	view := mgl32.LookAtV(mgl32.Vec3{3, 4, 8}, mgl32.Vec3{}, mgl32.Vec3{0, 1, 0})
	r.Clear(colors.DarkGray)
	r.SetViewProj(proj.Mul4(view))
	h.Emit(r)
	if err := r.Flush(); err != nil {
		t.Fatal(err)
	}

	counts := map[rune]int{}
	cells, cols, rows := sim.GetContents()
	if cols != 80 || rows != 40 {
		t.Fatalf("screen %dx%d", cols, rows)
	}
	for _, c := range cells {
		if len(c.Runes) > 0 {
			counts[c.Runes[0]]++
		}
	}
	if counts[marker] == 0 || counts[outerEdge] == 0 || counts[innerEdge] == 0 {
		t.Fatalf("missing glyphs: %v", counts)
	}
	if counts[marker] > tesseract.NumVertices {
		t.Fatalf("%d markers for %d vertices", counts[marker], tesseract.NumVertices)
	}
}

func TestRenderer_ClearWipesPreviousFrame(t *testing.T) {
	w, sim := newSimWindow(t)
	r := NewRenderer(w.Screen(), mgl32.DegToRad(45))
	r.SetViewProj(mgl32.Ident4())
	r.Clear(colors.DarkGray)
	r.DrawMarker([3]float64{0, 0, 0})
	_ = r.Flush()
	r.Clear(colors.DarkGray)
	_ = r.Flush()
	cells, _, _ := sim.GetContents()
	for _, c := range cells {
		if len(c.Runes) > 0 && c.Runes[0] == marker {
			t.Fatal("marker survived Clear")
		}
	}
}

func TestLine_Endpoints(t *testing.T) {
	var pts [][2]int
	line(0, 0, 3, -2, func(x, y int) { pts = append(pts, [2]int{x, y}) })
	if pts[0] != [2]int{0, 0} || pts[len(pts)-1] != [2]int{3, -2} {
		t.Fatalf("line %v", pts)
	}
	if len(pts) != 4 {
		t.Fatalf("line has %d cells, want 4", len(pts))
	}
}

var (
	_ core.Window       = (*Window)(nil)
	_ core.Renderer     = (*Renderer)(nil)
	_ tesseract.Surface = (*Renderer)(nil)
)

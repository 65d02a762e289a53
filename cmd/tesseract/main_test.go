package main

import (
	"bytes"
	"image/gif"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/hubastard/tesseract/engine/colors"
	"github.com/hubastard/tesseract/engine/config"
	"github.com/hubastard/tesseract/engine/core"
	"github.com/hubastard/tesseract/engine/gfx/raster"
	"github.com/hubastard/tesseract/engine/profiler"
	"github.com/hubastard/tesseract/engine/tesseract"
)

type countingRenderer struct {
	quads, markers, flushes int
	vp                      mgl32.Mat4
}

func (r *countingRenderer) Resize(int, int)                        {}
func (r *countingRenderer) Clear(colors.Color)                     {}
func (r *countingRenderer) SetViewProj(vp mgl32.Mat4)              { r.vp = vp }
func (r *countingRenderer) SetTime(float32)                        {}
func (r *countingRenderer) DrawQuad(_, _, _, _ mgl64.Vec3, _ bool) { r.quads++ }
func (r *countingRenderer) DrawMarker(mgl64.Vec3)                  { r.markers++ }
func (r *countingRenderer) Flush() error                           { r.flushes++; return nil }
func (r *countingRenderer) Shutdown()                              {}

func runApp(t *testing.T, cfg config.Config, frames int) (*App, *countingRenderer) {
	t.Helper()
	cube, err := tesseract.New(tesseract.DefaultOptions())
	if err != nil {
		t.Fatal(err)
	}
	app := &App{cfg: cfg, cube: cube, fixedStep: true}
	rend := &countingRenderer{}
	err = core.Run(app, core.Config{Width: 32, Height: 32},
		func(c core.Config) (core.Window, error) { return raster.NewWindow(c.Width, c.Height, frames), nil },
		func(core.Window, core.Config) (core.Renderer, error) { return rend, nil },
	)
	if err != nil {
		t.Fatal(err)
	}
	return app, rend
}

func TestApp_OneRotationPerFrame(t *testing.T) {
	app, rend := runApp(t, config.Default(), 5)
	if app.cube.Frames() != 5 {
		t.Fatalf("rotations %d, want 5", app.cube.Frames())
	}
	if rend.flushes != 5 {
		t.Fatalf("flushes %d, want 5", rend.flushes)
	}
	if rend.quads != 5*tesseract.NumFaces || rend.markers != 5*tesseract.NumVertices {
		t.Fatalf("quads=%d markers=%d", rend.quads, rend.markers)
	}
	if rend.vp == (mgl32.Mat4{}) {
		t.Fatal("view-projection never set")
	}
}

func TestTesseractLayer_Keys(t *testing.T) {
	cube, _ := tesseract.New(tesseract.DefaultOptions())
	win := raster.NewWindow(10, 10, 100)
	e := &core.Engine{Window: win, Renderer: &countingRenderer{}, Input: core.NewInput()}
	l := NewTesseractLayer(cube, config.Default().Camera, func(*core.Engine) float64 { return 1 })
	e.PushLayer(l)

	l.OnUpdate(e, 0.016)
	if cube.Frames() != 1 {
		t.Fatal("update did not rotate")
	}
	if !l.OnEvent(e, core.EventKey{Key: core.KeyR, Down: true}) || cube.Frames() != 0 {
		t.Fatal("R did not reset")
	}
	if cube.Vertices() != tesseract.Canonical() {
		t.Fatal("reset left rotated vertices")
	}
	if !l.OnEvent(e, core.EventKey{Key: core.KeySpace, Down: true}) || !l.ctrl.Paused() {
		t.Fatal("space did not pause the orbit")
	}
	if l.OnEvent(e, core.EventKey{Key: core.KeyEscape, Down: false}) {
		t.Fatal("key release handled")
	}
	if !l.OnEvent(e, core.EventKey{Key: core.KeyEscape, Down: true}) || !win.ShouldClose() {
		t.Fatal("escape did not close")
	}
}

func TestStatsLayer_ReportsEveryN(t *testing.T) {
	var buf bytes.Buffer
	core.SetLogger(slog.New(slog.NewTextHandler(&buf, nil)))
	t.Cleanup(func() { core.SetLogger(nil) })

	cube, _ := tesseract.New(tesseract.DefaultOptions())
	app := &App{cfg: config.Default(), cube: cube, fixedStep: true}
	app.cfg.StatsEvery = 2
	err := core.Run(app, core.Config{Width: 8, Height: 8},
		func(c core.Config) (core.Window, error) { return raster.NewWindow(c.Width, c.Height, 5), nil },
		func(core.Window, core.Config) (core.Renderer, error) { return &countingRenderer{}, nil },
	)
	if err != nil {
		t.Fatal(err)
	}
	// frames 2 and 4, then once on detach
	if n := strings.Count(buf.String(), "msg=stats"); n != 3 {
		t.Fatalf("stats lines = %d, want 3\n%s", n, buf.String())
	}
	if len(profiler.Snapshot()) == 0 {
		t.Fatal("profiler disabled while stats are on")
	}
}

func TestApp_NoStatsDisablesProfiler(t *testing.T) {
	t.Cleanup(func() { profiler.Enable(true) })
	cfg := config.Default()
	cfg.StatsEvery = 0
	app, _ := runApp(t, cfg, 3)
	if app.stats != nil {
		t.Fatal("stats layer attached with statsEvery=0")
	}
	if len(profiler.Snapshot()) != 0 {
		t.Fatalf("profiler collected %v", profiler.Snapshot())
	}
}

func TestRun_WritesGIF(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "tesseract.json")
	doc := `{
		"backend": "gif",
		"statsEvery": 0,
		"output": {"dir": "` + filepath.ToSlash(dir) + `", "prefix": "spin", "frames": 4, "gifDelay": 2, "width": 48, "height": 48}
	}`
	if err := os.WriteFile(cfgPath, []byte(doc), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("TESSERACT_BACKEND", "")
	t.Setenv("TESSERACT_FRAMES", "")
	t.Setenv("DEBUG", "")

	if err := run([]string{cfgPath}); err != nil {
		t.Fatal(err)
	}
	f, err := os.Open(filepath.Join(dir, "spin.gif"))
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	anim, err := gif.DecodeAll(f)
	if err != nil {
		t.Fatal(err)
	}
	if len(anim.Image) != 4 {
		t.Fatalf("gif frames %d, want 4", len(anim.Image))
	}
}

func TestRun_BadConfig(t *testing.T) {
	cfgPath := filepath.Join(t.TempDir(), "bad.json")
	if err := os.WriteFile(cfgPath, []byte(`{"backend": "vulkan"}`), 0o644); err != nil {
		t.Fatal(err)
	}
	err := run([]string{cfgPath})
	if err == nil || !strings.Contains(err.Error(), "vulkan") {
		t.Fatalf("got %v", err)
	}
}

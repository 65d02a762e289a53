package platform

import (
	"runtime"

	"github.com/go-gl/gl/v3.3-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/hubastard/tesseract/engine/core"
)

// MSAASamples is the multisample count requested for the default framebuffer.
const MSAASamples = 4

var keyMap = map[glfw.Key]core.Key{
	glfw.KeyEscape: core.KeyEscape,
	glfw.KeySpace:  core.KeySpace,
	glfw.KeyW:      core.KeyW,
	glfw.KeyA:      core.KeyA,
	glfw.KeyS:      core.KeyS,
	glfw.KeyD:      core.KeyD,
	glfw.KeyQ:      core.KeyQ,
	glfw.KeyR:      core.KeyR,
}

var modMap = [...]struct {
	from glfw.ModifierKey
	to   core.Mod
}{
	{glfw.ModShift, core.ModShift},
	{glfw.ModControl, core.ModCtrl},
	{glfw.ModAlt, core.ModAlt},
	{glfw.ModSuper, core.ModSuper},
}

// GLFWWindow implements core.Window over a GLFW window with a current
// GL 3.3 core context.
type GLFWWindow struct {
	w    *glfw.Window
	onEv func(core.Event)
	held map[core.Key]bool
}

// NewGLFWWindow must be called on the main thread before any GL call.
func NewGLFWWindow(cfg core.Config, onEvent func(core.Event)) (*GLFWWindow, error) {
	runtime.LockOSThread()
	if err := glfw.Init(); err != nil {
		return nil, err
	}
	win, err := createContextWindow(cfg)
	if err != nil {
		glfw.Terminate()
		return nil, err
	}
	gw := &GLFWWindow{w: win, onEv: onEvent, held: map[core.Key]bool{}}
	gw.bindCallbacks()
	return gw, nil
}

func createContextWindow(cfg core.Config) (*glfw.Window, error) {
	// forward-compatible is required on macOS
	glfw.WindowHint(glfw.ContextVersionMajor, 3)
	glfw.WindowHint(glfw.ContextVersionMinor, 3)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	glfw.WindowHint(glfw.Samples, MSAASamples)

	win, err := glfw.CreateWindow(cfg.Width, cfg.Height, cfg.Title, nil, nil)
	if err != nil {
		return nil, err
	}
	win.MakeContextCurrent()
	interval := 0
	if cfg.VSync {
		interval = 1
	}
	glfw.SwapInterval(interval)

	if err := gl.Init(); err != nil {
		win.Destroy()
		return nil, err
	}
	core.Logger().Info("GL context",
		"version", gl.GoStr(gl.GetString(gl.VERSION)),
		"renderer", gl.GoStr(gl.GetString(gl.RENDERER)),
		"vsync", cfg.VSync)
	return win, nil
}

func (g *GLFWWindow) bindCallbacks() {
	g.w.SetCloseCallback(func(*glfw.Window) { g.emit(core.EventCloseRequested{}) })
	g.w.SetFramebufferSizeCallback(func(_ *glfw.Window, w, h int) {
		g.emit(core.EventResize{W: w, H: h})
	})
	g.w.SetCursorPosCallback(func(_ *glfw.Window, x, y float64) {
		g.emit(core.EventMouseMove{X: x, Y: y})
	})
	g.w.SetKeyCallback(func(_ *glfw.Window, key glfw.Key, _ int, action glfw.Action, mods glfw.ModifierKey) {
		g.onKey(key, action, mods)
	})
	g.w.SetFocusCallback(func(_ *glfw.Window, focused bool) {
		if !focused {
			g.releaseAll()
		}
	})
}

// onKey forwards press and release of mapped keys. Auto-repeat is ignored
// so a held key stays a single press.
func (g *GLFWWindow) onKey(key glfw.Key, action glfw.Action, mods glfw.ModifierKey) {
	if action == glfw.Repeat {
		return
	}
	k, ok := keyMap[key]
	if !ok {
		return
	}
	down := action == glfw.Press
	if down {
		g.held[k] = true
	} else {
		delete(g.held, k)
	}
	g.emit(core.EventKey{Key: k, Down: down, Mods: translateMods(mods)})
}

// releaseAll emits a release for every held key. GLFW sends no release for
// keys let go while another window has focus.
func (g *GLFWWindow) releaseAll() {
	for k := range g.held {
		delete(g.held, k)
		g.emit(core.EventKey{Key: k, Down: false})
	}
}

func (g *GLFWWindow) emit(ev core.Event) {
	if g.onEv != nil {
		g.onEv(ev)
	}
}

func (g *GLFWWindow) PollEvents()                          { glfw.PollEvents() }
func (g *GLFWWindow) SwapBuffers()                         { g.w.SwapBuffers() }
func (g *GLFWWindow) ShouldClose() bool                    { return g.w.ShouldClose() }
func (g *GLFWWindow) RequestClose()                        { g.w.SetShouldClose(true) }
func (g *GLFWWindow) FramebufferSize() (int, int)          { return g.w.GetFramebufferSize() }
func (g *GLFWWindow) SetTitle(t string)                    { g.w.SetTitle(t) }
func (g *GLFWWindow) SetEventCallback(cb func(core.Event)) { g.onEv = cb }

// Destroy releases the window and shuts GLFW down.
func (g *GLFWWindow) Destroy() {
	g.w.Destroy()
	glfw.Terminate()
}

func translateMods(m glfw.ModifierKey) core.Mod {
	var out core.Mod
	for _, e := range modMap {
		if m&e.from != 0 {
			out |= e.to
		}
	}
	return out
}

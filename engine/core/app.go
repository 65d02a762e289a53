package core

import (
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/hubastard/tesseract/engine/colors"
)

// App defines the application hooks.
type App interface {
	OnStart(e *Engine)              // called once after window/renderer init
	OnUpdate(e *Engine, dt float64) // called exactly once per rendered frame
	OnRender(e *Engine)             // issue draw calls for this frame
	OnEvent(e *Engine, ev Event)    // input/window events
	OnShutdown(e *Engine)           // before exit
}

// Engine exposes core services to the App and its layers.
type Engine struct {
	Window   Window
	Renderer Renderer
	Input    *Input
	Layers   LayerStack

	start  time.Time
	frames uint64
}

func (e *Engine) Uptime() time.Duration { return time.Since(e.start) }

// Frames is the number of frames presented so far.
func (e *Engine) Frames() uint64 { return e.frames }

// PushLayer attaches l on top of the stack.
func (e *Engine) PushLayer(l Layer) {
	e.Layers.Push(l)
	l.OnAttach(e)
}

// Window abstraction. ShouldClose is the loop's only stop signal.
type Window interface {
	PollEvents()
	SwapBuffers()
	ShouldClose() bool
	RequestClose()
	FramebufferSize() (int, int)
	SetTitle(title string)
	SetEventCallback(cb func(Event))
	Destroy()
}

// Renderer abstraction. Points arrive in world space; SetViewProj carries
// the camera for the frame. DrawQuad/DrawMarker match tesseract.Surface.
type Renderer interface {
	Resize(w, h int)
	Clear(c colors.Color)
	SetViewProj(vp mgl32.Mat4)
	SetTime(seconds float32)
	DrawQuad(c0, c1, c2, c3 mgl64.Vec3, outer bool)
	DrawMarker(p mgl64.Vec3)
	Flush() error // end of the frame's draw calls
	Shutdown()
}

// Event model.
type Event interface{ isEvent() }

type EventCloseRequested struct{}

func (EventCloseRequested) isEvent() {}

type EventResize struct{ W, H int }

func (EventResize) isEvent() {}

type EventKey struct {
	Key  Key
	Down bool
	Mods Mod
}

func (EventKey) isEvent() {}

type EventMouseMove struct{ X, Y float64 }

func (EventMouseMove) isEvent() {}

// Key/mod enums (subset).
type Key int

const (
	KeyUnknown Key = iota
	KeyEscape
	KeySpace
	KeyW
	KeyA
	KeyS
	KeyD
	KeyQ
	KeyR
)

type Mod int

const (
	ModNone  Mod = 0
	ModShift Mod = 1 << 0
	ModCtrl  Mod = 1 << 1
	ModAlt   Mod = 1 << 2
	ModSuper Mod = 1 << 3
)

// Config for the engine run.
type Config struct {
	Title      string
	Width      int
	Height     int
	VSync      bool
	ClearColor colors.Color
}

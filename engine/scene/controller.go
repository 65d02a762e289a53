package scene

import "github.com/hubastard/tesseract/engine/core"

// OrbitController: W/S move the camera in/out, A/D swing it around,
// Space pauses the orbit. It never touches the 4D rotation.
type OrbitController struct {
	ZoomSpeed  float32 // units per second
	SwingSpeed float32 // radians per second
	MinRadius  float32
	Camera     *OrbitCamera

	paused    bool
	pausedAt  float64
	pauseTime float64
}

func NewOrbitController(cam *OrbitCamera) *OrbitController {
	return &OrbitController{
		ZoomSpeed:  4,
		SwingSpeed: 1.5,
		MinRadius:  2,
		Camera:     cam,
	}
}

func (cc *OrbitController) Paused() bool { return cc.paused }

// Update applies held keys and recomputes the camera for uptime t.
func (cc *OrbitController) Update(in *core.Input, t float64, dt float32) {
	c := cc.Camera
	if in.IsKeyDown(core.KeyW) {
		c.Radius -= cc.ZoomSpeed * dt
	}
	if in.IsKeyDown(core.KeyS) {
		c.Radius += cc.ZoomSpeed * dt
	}
	if c.Radius < cc.MinRadius {
		c.Radius = cc.MinRadius
	}
	if in.IsKeyDown(core.KeyA) {
		c.Offset -= cc.SwingSpeed * dt
	}
	if in.IsKeyDown(core.KeyD) {
		c.Offset += cc.SwingSpeed * dt
	}
	c.Update(cc.orbitTime(t))
}

// HandleEvent toggles the pause on Space press. t is the current uptime.
func (cc *OrbitController) HandleEvent(ev core.Event, t float64) bool {
	k, ok := ev.(core.EventKey)
	if !ok || !k.Down || k.Key != core.KeySpace {
		return false
	}
	if cc.paused {
		cc.pauseTime += t - cc.pausedAt
	} else {
		cc.pausedAt = t
	}
	cc.paused = !cc.paused
	return true
}

// orbitTime is uptime minus every paused interval.
func (cc *OrbitController) orbitTime(t float64) float64 {
	if cc.paused {
		return cc.pausedAt - cc.pauseTime
	}
	return t - cc.pauseTime
}

package scene

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/go-gl/mathgl/mgl64"
)

// OrbitCamera circles the origin at a fixed height, always looking at it.
//
//	eye = (sin(phase)·Radius, Height, cos(phase)·Radius), phase = t·Speed + Offset
type OrbitCamera struct {
	FovY       float32 // radians
	Aspect     float32
	Near, Far  float32
	Radius     float32
	Height     float32
	Speed      float32 // radians per second
	Offset     float32 // phase added on top of t·Speed
	eye        mgl32.Vec3
	view, proj mgl32.Mat4
	vp         mgl32.Mat4
}

func NewOrbitCamera(fovY, aspect, near, far, radius, height, speed float32) *OrbitCamera {
	c := &OrbitCamera{
		FovY: fovY, Aspect: aspect,
		Near: near, Far: far,
		Radius: radius, Height: height, Speed: speed,
	}
	c.Update(0)
	return c
}

// SetViewportPixels updates the aspect ratio.
func (c *OrbitCamera) SetViewportPixels(w, h int) {
	if w < 1 || h < 1 {
		return
	}
	c.Aspect = float32(w) / float32(h)
}

// Update recomputes the matrices for time t in seconds.
func (c *OrbitCamera) Update(t float64) {
	phase := float64(c.Speed)*t + float64(c.Offset)
	c.eye = mgl32.Vec3{
		float32(math.Sin(phase)) * c.Radius,
		c.Height,
		float32(math.Cos(phase)) * c.Radius,
	}
	c.view = mgl32.LookAtV(c.eye, mgl32.Vec3{0, 0, 0}, mgl32.Vec3{0, 1, 0})
	c.proj = mgl32.Perspective(c.FovY, c.Aspect, c.Near, c.Far)
	c.vp = c.proj.Mul4(c.view)
}

func (c *OrbitCamera) Eye() mgl32.Vec3  { return c.eye }
func (c *OrbitCamera) VP() mgl32.Mat4   { return c.vp }
func (c *OrbitCamera) View() mgl32.Mat4 { return c.view }

// Project maps a world point to normalized device coordinates. ok is false
// for points behind the camera.
func Project(vp mgl32.Mat4, p mgl64.Vec3) (ndc mgl32.Vec3, ok bool) {
	ndc, _, ok = ProjectClip(vp, p)
	return ndc, ok
}

// ProjectClip is Project that also returns the clip-space w, which is the
// view-space distance in front of the camera.
func ProjectClip(vp mgl32.Mat4, p mgl64.Vec3) (ndc mgl32.Vec3, w float32, ok bool) {
	clip := vp.Mul4x1(mgl32.Vec4{float32(p[0]), float32(p[1]), float32(p[2]), 1})
	w = clip.W()
	if w <= 1e-6 {
		return mgl32.Vec3{}, w, false
	}
	return clip.Vec3().Mul(1 / w), w, true
}

// FocalPixels is the distance in pixels from the eye to an image plane of
// height h under vertical field of view fovY.
func FocalPixels(fovY float32, h int) float64 {
	return float64(h) * 0.5 / math.Tan(float64(fovY)*0.5)
}

// ToPixels maps NDC x,y to a w×h raster with the origin top-left.
func ToPixels(ndc mgl32.Vec3, w, h int) (x, y float64) {
	x = (float64(ndc.X()) + 1) * 0.5 * float64(w)
	y = (1 - float64(ndc.Y())) * 0.5 * float64(h)
	return x, y
}

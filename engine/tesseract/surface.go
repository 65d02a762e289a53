package tesseract

import "github.com/go-gl/mathgl/mgl64"

// Surface receives the draw requests of one frame. Renderers implement it;
// the hypercube never sees anything beyond these two calls.
type Surface interface {
	DrawQuad(c0, c1, c2, c3 mgl64.Vec3, outer bool)
	DrawMarker(p mgl64.Vec3)
}

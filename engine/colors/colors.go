package colors

type Color [4]float32

var (
	White    = Color{1, 1, 1, 1}
	DarkGray = Color{0.06, 0.06, 0.06, 1}
)

// Tesseract palette. Outer cell faces are blue and half opaque, inner cell
// faces green and mostly transparent.
var (
	OuterFace = Color{0.4, 0.6, 0.8, 0.5}
	InnerFace = Color{0.4, 0.8, 0.6, 0.2}
	Marker    = White
)

// Face returns the palette entry for a face group.
func Face(outer bool) Color {
	if outer {
		return OuterFace
	}
	return InnerFace
}

func (c Color) WithAlpha(a float32) Color {
	c[3] = a
	return c
}

// RGBA8 converts to 8-bit channels, clamping to [0,1] first.
func (c Color) RGBA8() (r, g, b, a uint8) {
	to8 := func(v float32) uint8 {
		if v <= 0 {
			return 0
		}
		if v >= 1 {
			return 255
		}
		return uint8(v*255 + 0.5)
	}
	return to8(c[0]), to8(c[1]), to8(c[2]), to8(c[3])
}

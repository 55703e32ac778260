package math

// Color is a linear RGB color with components in [0, 1].
type Color struct {
	R, G, B float32
}

// Hex builds a color from a 0xRRGGBB literal.
func Hex(rgb uint32) Color {
	return Color{
		R: float32((rgb>>16)&0xff) / 255,
		G: float32((rgb>>8)&0xff) / 255,
		B: float32(rgb&0xff) / 255,
	}
}

// Mix blends c toward other by t, like GLSL mix.
func (c Color) Mix(other Color, t float32) Color {
	return Color{
		R: Lerp(c.R, other.R, t),
		G: Lerp(c.G, other.G, t),
		B: Lerp(c.B, other.B, t),
	}
}

// Scale multiplies every channel by s.
func (c Color) Scale(s float32) Color {
	return Color{c.R * s, c.G * s, c.B * s}
}

// Array returns the color as a fixed array for GPU upload.
func (c Color) Array() [3]float32 {
	return [3]float32{c.R, c.G, c.B}
}

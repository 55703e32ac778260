package math

import (
	gomath "math"

	"github.com/chewxy/math32"
)

// Clamp limits x to [lo, hi].
func Clamp(x, lo, hi float32) float32 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}

// Lerp interpolates linearly between a and b.
func Lerp(a, b, t float32) float32 {
	return a + (b-a)*t
}

// Smoothstep is the GLSL smoothstep: 0 below edge0, 1 above edge1 and a
// cubic Hermite ramp in between.
func Smoothstep(edge0, edge1, x float32) float32 {
	t := Clamp((x-edge0)/(edge1-edge0), 0, 1)
	return t * t * (3 - 2*t)
}

// Fract returns the fractional part of x in [0, 1), also for negative x.
func Fract(x float64) float64 {
	if gomath.IsNaN(x) || gomath.IsInf(x, 0) {
		return 0
	}
	f := x - gomath.Floor(x)
	if f >= 1 {
		return 0
	}
	return f
}

// Pow is a float32 power function.
func Pow(x, y float32) float32 {
	return math32.Pow(x, y)
}

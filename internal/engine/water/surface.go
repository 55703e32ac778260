package water

import (
	gomath "math"

	"github.com/chewxy/math32"

	"github.com/Faultbox/harbor-view/pkg/math"
)

// Octave is one term of the wave sum.
type Octave struct {
	Speed     float32
	Scale     float32
	Amplitude float32
}

// Octaves are ordered from the broad swell to the fine chop. Each one is
// faster, shorter and lower than the previous.
var Octaves = [3]Octave{
	{Speed: 0.18, Scale: 0.45, Amplitude: 0.7},
	{Speed: 0.26, Scale: 0.8, Amplitude: 0.35},
	{Speed: 0.4, Scale: 1.4, Amplitude: 0.18},
}

// MaxAmplitude returns the largest displacement the octaves can produce.
func MaxAmplitude() float32 {
	var sum float32
	for _, o := range Octaves {
		sum += o.Amplitude
	}
	return sum
}

// Displacement returns the vertical offset of the surface at (x, z) and
// time t in seconds. Phases are reduced modulo 2π in float64 so the waves
// stay smooth however long the clock has run.
func Displacement(x, z float32, t float64) float32 {
	var h float32
	for _, o := range Octaves {
		phase := float32(gomath.Mod(t*float64(o.Speed), 2*gomath.Pi))
		h += o.Amplitude * math32.Sin(x*o.Scale+phase) * math32.Cos(z*o.Scale+phase)
	}
	return h
}

// ShadeParams are the constants of the per-pixel color model. The water
// fragment program receives them as uniforms.
type ShadeParams struct {
	FresnelPower float32
	FresnelLift  float32
	FoamStart    float32
	FoamEnd      float32
	FoamStrength float32
}

// Shading is the color model used by Shade and the water program.
var Shading = ShadeParams{
	FresnelPower: 2.6,
	FresnelLift:  0.2,
	FoamStart:    0.45,
	FoamEnd:      0.9,
	FoamStrength: 0.35,
}

// Fresnel returns the view-angle term for surface coordinate v in [0, 1].
func Fresnel(v float32) float32 {
	return math.Pow(1-math.Clamp(v, 0, 1), Shading.FresnelPower)
}

// Uniforms is the shared water state. Time is the only field that changes
// after construction.
type Uniforms struct {
	Time float64
	Low  math.Color
	High math.Color
	Foam math.Color
}

// DefaultUniforms returns the harbor palette: deep teal to lighter blue
// with pale foam.
func DefaultUniforms() Uniforms {
	return Uniforms{
		Low:  math.Hex(0x0b3954),
		High: math.Hex(0x3f88c5),
		Foam: math.Hex(0xe0f2ff),
	}
}

// Advance accumulates dt seconds into the clock. Negative or non-finite
// deltas leave it unchanged, so Time never decreases.
func (u *Uniforms) Advance(dt float64) {
	if dt <= 0 || gomath.IsNaN(dt) || gomath.IsInf(dt, 0) {
		return
	}
	u.Time += dt
}

// Shade returns the color of the surface at coordinate v.
func Shade(u Uniforms, v float32) math.Color {
	v = math.Clamp(v, 0, 1)
	f := Fresnel(v)
	base := u.Low.Mix(u.High, math.Clamp(v+f*Shading.FresnelLift, 0, 1))
	foam := math.Smoothstep(Shading.FoamStart, Shading.FoamEnd, f) * Shading.FoamStrength
	return base.Mix(u.Foam, foam)
}

// Package lighting describes the light rig shared by the scene and the
// renderer, and flattens it for GPU upload.
package lighting

import "github.com/Faultbox/harbor-view/pkg/math"

// MaxPointLights is the maximum number of point lights supported in shaders.
const MaxPointLights = 8

// PointLight represents a point light source for GPU upload.
type PointLight struct {
	Position  [3]float32 // World position
	Color     [3]float32 // RGB color (0-1 range)
	Range     float32    // Light radius/falloff distance
	Intensity float32    // Light intensity multiplier
}

// NewPointLight builds a point light, clamping color to [0, 1] and falling
// back to a 10 unit range when none is given.
func NewPointLight(pos math.Vec3, color math.Color, rng, intensity float32) PointLight {
	light := PointLight{
		Position:  pos.Array(),
		Color:     color.Array(),
		Range:     rng,
		Intensity: intensity,
	}
	for i := 0; i < 3; i++ {
		light.Color[i] = math.Clamp(light.Color[i], 0, 1)
	}
	if light.Range <= 0 {
		light.Range = 10
	}
	return light
}

// PointLightBuffer holds lights for GPU upload.
type PointLightBuffer struct {
	Lights []PointLight
	Count  int
}

// NewPointLightBuffer creates an empty point light buffer.
func NewPointLightBuffer() *PointLightBuffer {
	return &PointLightBuffer{
		Lights: make([]PointLight, 0, MaxPointLights),
	}
}

// Clear removes all lights from the buffer.
func (b *PointLightBuffer) Clear() {
	b.Lights = b.Lights[:0]
	b.Count = 0
}

// AddLight adds a point light to the buffer.
// Returns false if buffer is full.
func (b *PointLightBuffer) AddLight(light PointLight) bool {
	if b.Count >= MaxPointLights {
		return false
	}
	b.Lights = append(b.Lights, light)
	b.Count++
	return true
}

// SetLights replaces all lights in the buffer.
// Truncates to MaxPointLights if necessary.
func (b *PointLightBuffer) SetLights(lights []PointLight) {
	b.Clear()
	count := min(len(lights), MaxPointLights)
	b.Lights = append(b.Lights, lights[:count]...)
	b.Count = count
}

// Positions returns positions as a flat float32 slice for GPU upload.
// Format: [x0, y0, z0, x1, y1, z1, ...]
func (b *PointLightBuffer) Positions() []float32 {
	result := make([]float32, MaxPointLights*3)
	for i, light := range b.Lights {
		copy(result[i*3:], light.Position[:])
	}
	return result
}

// Colors returns colors premultiplied by intensity, flattened like
// Positions.
func (b *PointLightBuffer) Colors() []float32 {
	result := make([]float32, MaxPointLights*3)
	for i, light := range b.Lights {
		for c := 0; c < 3; c++ {
			result[i*3+c] = light.Color[c] * light.Intensity
		}
	}
	return result
}

// Ranges returns ranges as a flat float32 slice for GPU upload.
func (b *PointLightBuffer) Ranges() []float32 {
	result := make([]float32, MaxPointLights)
	for i, light := range b.Lights {
		result[i] = light.Range
	}
	return result
}

package lighting

import (
	"errors"
	"fmt"

	"github.com/Faultbox/harbor-view/pkg/math"
)

// ErrTooManyLights is returned when a rig has more point lights than the
// shaders accept.
var ErrTooManyLights = errors.New("too many point lights")

// Ambient is uniform, direction-less light.
type Ambient struct {
	Color     math.Color
	Intensity float32
}

// Directional is a sun-like light shining from Position toward Target.
type Directional struct {
	Position    math.Vec3
	Target      math.Vec3
	Color       math.Color
	Intensity   float32
	CastShadows bool
}

// Direction returns the unit vector pointing from the lit scene toward the
// light.
func (d Directional) Direction() math.Vec3 {
	return d.Position.Sub(d.Target).Normalize()
}

// Rig is the complete light setup of a scene.
type Rig struct {
	Ambient     Ambient
	Directional Directional
	Points      []PointLight
}

// Validate reports whether the rig fits the shader limits.
func (r Rig) Validate() error {
	if len(r.Points) > MaxPointLights {
		return fmt.Errorf("%w: %d > %d", ErrTooManyLights, len(r.Points), MaxPointLights)
	}
	if r.Directional.Position == r.Directional.Target {
		return errors.New("directional light has no direction")
	}
	return nil
}

// Buffer packs the rig's point lights for upload.
func (r Rig) Buffer() *PointLightBuffer {
	b := NewPointLightBuffer()
	b.SetLights(r.Points)
	return b
}

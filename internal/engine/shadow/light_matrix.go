package shadow

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/harbor-view/internal/engine/extrude"
	"github.com/Faultbox/harbor-view/pkg/math"
)

// AABB represents an axis-aligned bounding box.
type AABB struct {
	Min [3]float32
	Max [3]float32
}

// FromBounds converts solid bounds, growing them by margin on every side.
func FromBounds(b extrude.Bounds, margin float32) AABB {
	out := AABB{Min: b.Min, Max: b.Max}
	for i := 0; i < 3; i++ {
		out.Min[i] -= margin
		out.Max[i] += margin
	}
	return out
}

// Center returns the center point of the AABB.
func (b AABB) Center() math.Vec3 {
	return math.Vec3{
		X: (b.Min[0] + b.Max[0]) / 2,
		Y: (b.Min[1] + b.Max[1]) / 2,
		Z: (b.Min[2] + b.Max[2]) / 2,
	}
}

// Radius returns the distance from center to corner (half-diagonal).
func (b AABB) Radius() float32 {
	dx := (b.Max[0] - b.Min[0]) / 2
	dy := (b.Max[1] - b.Min[1]) / 2
	dz := (b.Max[2] - b.Min[2]) / 2
	return math32.Sqrt(dx*dx + dy*dy + dz*dz)
}

// DirectionalLightMatrix computes the view-projection for the shadow map.
// lightDir is the normalized direction toward the light. The orthographic
// volume encloses the bounding sphere of bounds.
func DirectionalLightMatrix(lightDir math.Vec3, bounds AABB) math.Mat4 {
	center := bounds.Center()
	radius := bounds.Radius()

	// Far enough that the whole sphere is in front of the light.
	lightDistance := radius * 2.0
	lightPos := center.Add(lightDir.Scale(lightDistance))

	up := math.Vec3{X: 0, Y: 1, Z: 0}
	if math32.Abs(lightDir.Y) > 0.99 {
		up = math.Vec3{X: 0, Y: 0, Z: 1}
	}
	view := math.LookAt(lightPos, center, up)

	padding := radius * 0.1
	halfSize := radius + padding
	near := float32(0.1)
	far := lightDistance + radius + padding

	proj := math.Ortho(-halfSize, halfSize, -halfSize, halfSize, near, far)
	return proj.Mul(view)
}

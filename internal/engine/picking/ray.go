// Package picking casts rays from the screen into the harbor to find the
// structure under the pointer.
package picking

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/harbor-view/internal/engine/extrude"
	"github.com/Faultbox/harbor-view/pkg/math"
)

// Ray represents a ray in 3D space with origin and direction.
type Ray struct {
	Origin    math.Vec3
	Direction math.Vec3 // Normalized
}

// ScreenToRay converts pixel coordinates to a world-space ray.
// invViewProj is the inverse of the view-projection matrix.
func ScreenToRay(screenX, screenY, viewportW, viewportH float32, invViewProj math.Mat4) Ray {
	ndcX := 2*screenX/viewportW - 1
	ndcY := 1 - 2*screenY/viewportH // Flip Y

	near := invViewProj.TransformVec3(math.Vec3{X: ndcX, Y: ndcY, Z: -1})
	far := invViewProj.TransformVec3(math.Vec3{X: ndcX, Y: ndcY, Z: 1})
	return Ray{Origin: near, Direction: far.Sub(near).Normalize()}
}

// At returns the point t units along the ray.
func (r Ray) At(t float32) math.Vec3 {
	return r.Origin.Add(r.Direction.Scale(t))
}

// IntersectPlaneY intersects the ray with the horizontal plane y = planeY.
func (r Ray) IntersectPlaneY(planeY float32) (x, z float32, ok bool) {
	if math32.Abs(r.Direction.Y) < 0.001 {
		return 0, 0, false // Parallel
	}
	t := (planeY - r.Origin.Y) / r.Direction.Y
	if t < 0 {
		return 0, 0, false // Behind the origin
	}
	p := r.At(t)
	return p.X, p.Z, true
}

// IntersectBounds tests the ray against a box with the slab method and
// returns the entry distance, or the exit distance when the ray starts
// inside.
func (r Ray) IntersectBounds(box extrude.Bounds) (t float32, hit bool) {
	tmin := float32(-math32.MaxFloat32)
	tmax := float32(math32.MaxFloat32)

	origin := r.Origin.Array()
	dir := r.Direction.Array()
	for axis := 0; axis < 3; axis++ {
		if dir[axis] == 0 {
			if origin[axis] < box.Min[axis] || origin[axis] > box.Max[axis] {
				return 0, false
			}
			continue
		}
		t1 := (box.Min[axis] - origin[axis]) / dir[axis]
		t2 := (box.Max[axis] - origin[axis]) / dir[axis]
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		tmin = max(tmin, t1)
		tmax = min(tmax, t2)
	}

	if tmax < tmin || tmax < 0 {
		return 0, false
	}
	if tmin < 0 {
		return tmax, true
	}
	return tmin, true
}

// Nearest returns the index of the closest box the ray hits.
func Nearest(r Ray, boxes []extrude.Bounds) (index int, t float32, ok bool) {
	index = -1
	for i, b := range boxes {
		d, hit := r.IntersectBounds(b)
		if hit && (!ok || d < t) {
			index, t, ok = i, d, true
		}
	}
	return index, t, ok
}

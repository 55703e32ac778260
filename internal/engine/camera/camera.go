// Package camera provides the orbit camera rig used to navigate the harbor.
package camera

import (
	"errors"
	"fmt"
	gomath "math"

	"github.com/chewxy/math32"

	"github.com/Faultbox/harbor-view/pkg/math"
)

// ErrInvalidConstraint is returned for constraints with empty or
// out-of-range bounds.
var ErrInvalidConstraint = errors.New("invalid camera constraint")

// Constraint bounds the orbit. Polar angles are measured from the +Y axis,
// so 0 looks straight down and pi/2 looks along the horizon. Both polar
// bounds lie strictly inside (0, pi): at the poles the view direction is
// parallel to the up vector and the view matrix is undefined.
type Constraint struct {
	MinPolar    float32
	MaxPolar    float32
	MinDistance float32
	MaxDistance float32
	Target      math.Vec3
	// PanningDisabled pins the target; HandlePan becomes a no-op.
	PanningDisabled bool
}

// Validate checks that the bounds are ordered and physically meaningful.
func (c Constraint) Validate() error {
	if !(c.MinPolar > 0 && c.MaxPolar < math32.Pi && c.MinPolar <= c.MaxPolar) {
		return fmt.Errorf("%w: polar [%v, %v]", ErrInvalidConstraint, c.MinPolar, c.MaxPolar)
	}
	if !(c.MinDistance > 0 && c.MinDistance <= c.MaxDistance) || math32.IsInf(c.MaxDistance, 0) {
		return fmt.Errorf("%w: distance [%v, %v]", ErrInvalidConstraint, c.MinDistance, c.MaxDistance)
	}
	return nil
}

// Pose is the orbit state: polar angle, azimuth around +Y and distance to
// the target.
type Pose struct {
	Polar    float32
	Azimuth  float32
	Distance float32
}

// Orbit orbits a fixed target within a Constraint.
type Orbit struct {
	constraint Constraint
	target     math.Vec3
	pose       Pose

	// Sensitivity
	DragSensitivity float32
	ZoomSensitivity float32

	// Damping in [0, 1) is the share of pending motion applied per 60 Hz
	// step. Zero applies input immediately.
	Damping float32

	pendingPolar    float32
	pendingAzimuth  float32
	pendingDistance float32
}

// NewOrbit creates an orbit camera. The initial pose is clamped into the
// constraint.
func NewOrbit(c Constraint, initial Pose) (*Orbit, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	o := &Orbit{
		constraint:      c,
		target:          c.Target,
		pose:            initial,
		DragSensitivity: 0.005,
		ZoomSensitivity: 0.1,
	}
	o.clamp()
	return o, nil
}

// Pose returns the committed orbit state.
func (o *Orbit) Pose() Pose {
	return o.pose
}

// Constraint returns the bounds the orbit enforces.
func (o *Orbit) Constraint() Constraint {
	return o.constraint
}

// Target returns the look-at point.
func (o *Orbit) Target() math.Vec3 {
	return o.target
}

// Position returns the camera position in world space.
func (o *Orbit) Position() math.Vec3 {
	sp, cp := math32.Sincos(o.pose.Polar)
	sa, ca := math32.Sincos(o.pose.Azimuth)
	d := o.pose.Distance
	return o.target.Add(math.Vec3{X: d * sp * sa, Y: d * cp, Z: d * sp * ca})
}

// ViewMatrix returns the view matrix for this camera.
func (o *Orbit) ViewMatrix() math.Mat4 {
	up := math.Vec3{X: 0, Y: 1, Z: 0}
	return math.LookAt(o.Position(), o.target, up)
}

// HandleDrag rotates the camera by a pointer drag in pixels. Dragging
// right swings the camera left around the target; dragging down raises it.
// Non-finite deltas are ignored.
func (o *Orbit) HandleDrag(deltaX, deltaY float32) {
	if !finite(deltaX) || !finite(deltaY) {
		return
	}
	o.pendingAzimuth -= deltaX * o.DragSensitivity
	o.pendingPolar -= deltaY * o.DragSensitivity
	if o.Damping == 0 {
		o.apply(1)
	}
}

// HandleZoom moves the camera along its view ray. Positive deltas (wheel
// up) move closer. Non-finite deltas are ignored.
func (o *Orbit) HandleZoom(delta float32) {
	if !finite(delta) {
		return
	}
	o.pendingDistance -= delta * o.pose.Distance * o.ZoomSensitivity
	if o.Damping == 0 {
		o.apply(1)
	}
}

// HandlePan translates the target on the ground plane relative to the view.
// It does nothing while panning is disabled.
func (o *Orbit) HandlePan(right, forward float32) {
	if o.constraint.PanningDisabled || !finite(right) || !finite(forward) {
		return
	}
	speed := o.pose.Distance * 0.01
	sa, ca := math32.Sincos(o.pose.Azimuth)
	o.target.X += (-sa*forward + ca*right) * speed
	o.target.Z += (-ca*forward - sa*right) * speed
}

// Update applies damped motion for a frame of dt seconds. Without damping
// it only re-clamps the pose.
func (o *Orbit) Update(dt float32) {
	if o.Damping == 0 || dt <= 0 {
		o.clamp()
		return
	}
	steps := float64(dt) * 60
	share := 1 - float32(gomath.Pow(float64(1-o.Damping), steps))
	o.apply(share)
}

// Settled reports whether no damped motion is pending.
func (o *Orbit) Settled() bool {
	const eps = 1e-5
	return abs(o.pendingPolar) < eps && abs(o.pendingAzimuth) < eps && abs(o.pendingDistance) < eps
}

func (o *Orbit) apply(share float32) {
	o.pose.Polar += o.pendingPolar * share
	o.pose.Azimuth += o.pendingAzimuth * share
	o.pose.Distance += o.pendingDistance * share
	o.pendingPolar *= 1 - share
	o.pendingAzimuth *= 1 - share
	o.pendingDistance *= 1 - share
	o.clamp()
}

func (o *Orbit) clamp() {
	c := o.constraint
	o.pose.Polar = math.Clamp(o.pose.Polar, c.MinPolar, c.MaxPolar)
	o.pose.Distance = math.Clamp(o.pose.Distance, c.MinDistance, c.MaxDistance)
	o.pose.Azimuth = float32(gomath.Remainder(float64(o.pose.Azimuth), 2*gomath.Pi))
}

func finite(x float32) bool {
	return !math32.IsNaN(x) && !math32.IsInf(x, 0)
}

func abs(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
}

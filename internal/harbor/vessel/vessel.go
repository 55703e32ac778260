// Package vessel drives vessels around fixed elliptical lanes.
//
// A trajectory is a pure function of elapsed time: the same time always
// yields the same pose, and the pose repeats every 1/speed seconds.
package vessel

import (
	"errors"
	"fmt"
	gomath "math"

	"github.com/Faultbox/harbor-view/pkg/math"
)

// ErrInvalidParams is returned for trajectories that cannot loop.
var ErrInvalidParams = errors.New("invalid vessel trajectory")

// FullTurn is the default angular range.
const FullTurn = 2 * gomath.Pi

// Params describe one vessel's lane.
type Params struct {
	Center math.Vec3
	Radius float32
	// RadiusYScale squashes the lane along Z. 1 is a circle.
	RadiusYScale float32
	// Speed is in loops per second.
	Speed float64
	// Phase shifts the loop, as a fraction of one loop in [0, 1).
	Phase float64
	// BaseAngle is the angle at phase 0, in radians.
	BaseAngle float64
	// Range is the arc covered per loop. Zero means a full turn.
	Range float64
	// Height is the hull's fixed Y offset from Center.
	Height float32
}

// Validate reports whether the params describe a usable lane.
func (p Params) Validate() error {
	switch {
	case p.Radius <= 0:
		return fmt.Errorf("%w: radius %v", ErrInvalidParams, p.Radius)
	case p.RadiusYScale <= 0 || p.RadiusYScale > 1:
		return fmt.Errorf("%w: radius y scale %v", ErrInvalidParams, p.RadiusYScale)
	case !(p.Speed > 0) || gomath.IsInf(p.Speed, 0):
		return fmt.Errorf("%w: speed %v", ErrInvalidParams, p.Speed)
	case p.Phase < 0 || p.Phase >= 1:
		return fmt.Errorf("%w: phase %v", ErrInvalidParams, p.Phase)
	case p.Range < 0 || p.Range > FullTurn:
		return fmt.Errorf("%w: range %v", ErrInvalidParams, p.Range)
	}
	return nil
}

// State is a vessel pose at one instant.
type State struct {
	Angle    float64
	Position math.Vec3
	// Heading is the rotation about +Y applied to the hull, whose bow
	// points along local +X.
	Heading float32
}

// Trajectory evaluates a vessel's pose over time.
type Trajectory struct {
	params Params
}

// New validates params and returns a trajectory.
func New(p Params) (*Trajectory, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if p.Range == 0 {
		p.Range = FullTurn
	}
	return &Trajectory{params: p}, nil
}

// Params returns the trajectory's resolved parameters.
func (tr *Trajectory) Params() Params {
	return tr.params
}

// Period returns the seconds per loop.
func (tr *Trajectory) Period() float64 {
	return 1 / tr.params.Speed
}

// Angle returns the lane angle at elapsed time t. Negative t wraps like
// any other; NaN and infinite t are treated as 0.
func (tr *Trajectory) Angle(t float64) float64 {
	if gomath.IsNaN(t) || gomath.IsInf(t, 0) {
		t = 0
	}
	p := tr.params
	return p.BaseAngle + math.Fract(t*p.Speed+p.Phase)*p.Range
}

// At returns the pose at elapsed time t.
func (tr *Trajectory) At(t float64) State {
	p := tr.params
	a := tr.Angle(t)
	r := float64(p.Radius)
	offset := math.Vec3{
		X: float32(gomath.Cos(a) * r),
		Y: p.Height,
		Z: float32(gomath.Sin(a) * r * float64(p.RadiusYScale)),
	}
	return State{
		Angle:    a,
		Position: p.Center.Add(offset),
		Heading:  float32(-(a + gomath.Pi/2)),
	}
}

// Transform returns the hull's world transform for a pose.
func Transform(s State) math.Mat4 {
	return math.TRS(s.Position, s.Heading, math.Vec3{X: 1, Y: 1, Z: 1})
}

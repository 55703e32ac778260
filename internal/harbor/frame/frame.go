// Package frame advances the harbor's shared clock once per rendered frame
// and derives everything that moves from it.
package frame

import (
	"errors"
	"fmt"
	gomath "math"

	"github.com/Faultbox/harbor-view/internal/engine/water"
	"github.com/Faultbox/harbor-view/internal/harbor/scene"
	"github.com/Faultbox/harbor-view/internal/harbor/vessel"
	"github.com/Faultbox/harbor-view/pkg/math"
)

// ErrInvalidTimeScale is returned for non-positive time scales.
var ErrInvalidTimeScale = errors.New("time scale must be positive")

// VesselPose is one vessel's derived state for a frame.
type VesselPose struct {
	Name      string
	State     vessel.State
	Transform math.Mat4
}

// RenderState is everything that changes between frames.
type RenderState struct {
	Frame   uint64
	Elapsed float64
	Delta   float64
	Water   water.Uniforms
	Vessels []VesselPose
}

// HullTransforms returns the vessel transforms in scene order.
func (rs RenderState) HullTransforms() []math.Mat4 {
	out := make([]math.Mat4, len(rs.Vessels))
	for i, v := range rs.Vessels {
		out[i] = v.Transform
	}
	return out
}

// Scheduler owns the per-frame clock. It is not safe for concurrent use;
// the host calls it from the render thread only.
type Scheduler struct {
	vessels   []scene.Vessel
	water     water.Uniforms
	timeScale float64

	elapsed float64
	frame   uint64
}

// NewScheduler creates a scheduler driving the scene's vessels and water.
func NewScheduler(s *scene.Scene, timeScale float64) (*Scheduler, error) {
	if !(timeScale > 0) || gomath.IsInf(timeScale, 0) {
		return nil, fmt.Errorf("%w: got %v", ErrInvalidTimeScale, timeScale)
	}
	return &Scheduler{
		vessels:   s.Vessels,
		water:     s.Water.Uniforms,
		timeScale: timeScale,
	}, nil
}

// TimeScale returns the multiplier applied to host time.
func (s *Scheduler) TimeScale() float64 {
	return s.timeScale
}

// Elapsed returns the scaled scene time of the last tick.
func (s *Scheduler) Elapsed() float64 {
	return s.elapsed
}

// Advance runs one tick. elapsed is host time since start and delta the
// time since the previous frame, both in seconds. Scene time never runs
// backwards: an elapsed value below the previous one is ignored, and
// negative or non-finite deltas count as zero.
func (s *Scheduler) Advance(elapsed, delta float64) RenderState {
	if scaled := elapsed * s.timeScale; finite(scaled) && scaled > s.elapsed {
		s.elapsed = scaled
	}
	if !finite(delta) || delta < 0 {
		delta = 0
	}
	delta *= s.timeScale
	s.water.Advance(delta)
	s.frame++

	rs := RenderState{
		Frame:   s.frame,
		Elapsed: s.elapsed,
		Delta:   delta,
		Water:   s.water,
		Vessels: make([]VesselPose, len(s.vessels)),
	}
	for i, v := range s.vessels {
		st := v.Trajectory.At(s.elapsed)
		rs.Vessels[i] = VesselPose{Name: v.Name, State: st, Transform: vessel.Transform(st)}
	}
	return rs
}

func finite(x float64) bool {
	return !gomath.IsNaN(x) && !gomath.IsInf(x, 0)
}

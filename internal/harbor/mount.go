// Package harbor mounts the composed harbor scene onto a renderer and
// drives it frame by frame.
package harbor

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/Faultbox/harbor-view/internal/engine/camera"
	"github.com/Faultbox/harbor-view/internal/engine/extrude"
	"github.com/Faultbox/harbor-view/internal/engine/picking"
	"github.com/Faultbox/harbor-view/internal/harbor/frame"
	"github.com/Faultbox/harbor-view/internal/harbor/scene"
	"github.com/Faultbox/harbor-view/internal/logger"
	"github.com/Faultbox/harbor-view/pkg/math"
)

// ErrUnmounted is returned by every operation after Unmount.
var ErrUnmounted = errors.New("harbor scene is unmounted")

// View is the camera state handed to the renderer each frame.
type View struct {
	Matrix   math.Mat4
	Position math.Vec3
	Target   math.Vec3
}

// Renderer draws a loaded scene. Implementations own all GPU resources
// they create in Load and free them in Release.
type Renderer interface {
	Load(s *scene.Scene) error
	Render(view View, rs frame.RenderState) error
	Resize(width, height int)
	Release()
}

// Mounted is a scene bound to a renderer, camera and scheduler.
type Mounted struct {
	scene     *scene.Scene
	renderer  Renderer
	camera    *camera.Orbit
	scheduler *frame.Scheduler
	log       *zap.Logger
	mounted   bool
}

// Mount loads the scene into the renderer.
func Mount(s *scene.Scene, r Renderer, cam *camera.Orbit, sch *frame.Scheduler) (*Mounted, error) {
	if err := r.Load(s); err != nil {
		return nil, fmt.Errorf("load scene: %w", err)
	}
	log := logger.Named("harbor")
	log.Info("scene mounted", zap.Int("nodes", len(s.Nodes)))
	return &Mounted{
		scene:     s,
		renderer:  r,
		camera:    cam,
		scheduler: sch,
		log:       log,
		mounted:   true,
	}, nil
}

// Build composes the definitions and creates the camera and scheduler
// configured by them.
func Build(defs scene.Definitions, timeScale float64) (*scene.Scene, *camera.Orbit, *frame.Scheduler, error) {
	s, err := scene.Compose(defs)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("compose: %w", err)
	}
	cam, err := camera.NewOrbit(s.Camera.Constraint, s.Camera.Initial)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("camera: %w", err)
	}
	sch, err := frame.NewScheduler(s, timeScale)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("scheduler: %w", err)
	}
	return s, cam, sch, nil
}

// Scene returns the mounted scene.
func (m *Mounted) Scene() *scene.Scene {
	return m.scene
}

// Camera returns the camera rig.
func (m *Mounted) Camera() *camera.Orbit {
	return m.camera
}

// Tick advances time, settles the camera and renders one frame.
func (m *Mounted) Tick(elapsed, delta float64) (frame.RenderState, error) {
	if !m.mounted {
		return frame.RenderState{}, ErrUnmounted
	}
	rs := m.scheduler.Advance(elapsed, delta)
	m.camera.Update(float32(rs.Delta / m.scheduler.TimeScale()))

	view := View{
		Matrix:   m.camera.ViewMatrix(),
		Position: m.camera.Position(),
		Target:   m.camera.Target(),
	}
	if err := m.renderer.Render(view, rs); err != nil {
		return rs, fmt.Errorf("render frame %d: %w", rs.Frame, err)
	}
	return rs, nil
}

// Drag forwards a pointer drag in pixels to the camera.
func (m *Mounted) Drag(dx, dy float32) error {
	if !m.mounted {
		return ErrUnmounted
	}
	m.camera.HandleDrag(dx, dy)
	return nil
}

// Scroll forwards a wheel delta to the camera.
func (m *Mounted) Scroll(delta float32) error {
	if !m.mounted {
		return ErrUnmounted
	}
	m.camera.HandleZoom(delta)
	return nil
}

// Pick returns the node the ray hits first at the current scheduler time,
// or nil when it hits nothing.
func (m *Mounted) Pick(r picking.Ray) (*scene.Node, error) {
	if !m.mounted {
		return nil, ErrUnmounted
	}
	s := m.scene
	hulls := s.HullTransforms(m.scheduler.Elapsed())
	boxes := make([]extrude.Bounds, len(s.Nodes))
	for i, n := range s.Nodes {
		boxes[i] = scene.NodeBounds(s.Geometry(n.Geometry).Bounds, s.WorldTransform(i, hulls))
	}
	i, _, ok := picking.Nearest(r, boxes)
	if !ok {
		return nil, nil
	}
	return &s.Nodes[i], nil
}

// Resize informs the renderer of a new drawable size.
func (m *Mounted) Resize(width, height int) error {
	if !m.mounted {
		return ErrUnmounted
	}
	m.renderer.Resize(width, height)
	return nil
}

// Unmount releases the renderer. Calling it again is a no-op.
func (m *Mounted) Unmount() {
	if !m.mounted {
		return
	}
	m.mounted = false
	m.renderer.Release()
	m.log.Info("scene unmounted")
}

package harbor

import (
	"errors"
	"testing"

	"github.com/Faultbox/harbor-view/internal/engine/picking"
	"github.com/Faultbox/harbor-view/internal/harbor/frame"
	"github.com/Faultbox/harbor-view/internal/harbor/scene"
	"github.com/Faultbox/harbor-view/pkg/math"
)

type fakeRenderer struct {
	loaded    *scene.Scene
	frames    []frame.RenderState
	views     []View
	width     int
	height    int
	released  int
	loadErr   error
	renderErr error
}

func (f *fakeRenderer) Load(s *scene.Scene) error {
	f.loaded = s
	return f.loadErr
}

func (f *fakeRenderer) Render(v View, rs frame.RenderState) error {
	f.views = append(f.views, v)
	f.frames = append(f.frames, rs)
	return f.renderErr
}

func (f *fakeRenderer) Resize(w, h int) {
	f.width, f.height = w, h
}

func (f *fakeRenderer) Release() {
	f.released++
}

func mountDefault(t *testing.T, r *fakeRenderer) *Mounted {
	t.Helper()
	s, cam, sch, err := Build(scene.DefaultDefinitions(), 1)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	m, err := Mount(s, r, cam, sch)
	if err != nil {
		t.Fatalf("Mount() error = %v", err)
	}
	return m
}

func TestMountTickUnmount(t *testing.T) {
	r := &fakeRenderer{}
	m := mountDefault(t, r)
	if r.loaded != m.Scene() {
		t.Fatal("renderer did not receive the scene")
	}

	for i := 1; i <= 3; i++ {
		rs, err := m.Tick(float64(i)/60, 1.0/60)
		if err != nil {
			t.Fatalf("Tick() error = %v", err)
		}
		if rs.Frame != uint64(i) {
			t.Errorf("frame = %d, want %d", rs.Frame, i)
		}
	}
	if len(r.frames) != 3 {
		t.Errorf("rendered %d frames, want 3", len(r.frames))
	}
	if r.views[0].Target != m.Camera().Target() {
		t.Errorf("view target = %v", r.views[0].Target)
	}

	if err := m.Resize(800, 600); err != nil {
		t.Fatal(err)
	}
	if r.width != 800 || r.height != 600 {
		t.Errorf("renderer size = %dx%d", r.width, r.height)
	}

	m.Unmount()
	m.Unmount()
	if r.released != 1 {
		t.Errorf("Release called %d times, want 1", r.released)
	}
	if _, err := m.Tick(1, 1.0/60); !errors.Is(err, ErrUnmounted) {
		t.Errorf("Tick after unmount error = %v, want ErrUnmounted", err)
	}
	if err := m.Drag(1, 1); !errors.Is(err, ErrUnmounted) {
		t.Errorf("Drag after unmount error = %v", err)
	}
	if err := m.Scroll(1); !errors.Is(err, ErrUnmounted) {
		t.Errorf("Scroll after unmount error = %v", err)
	}
	if err := m.Resize(1, 1); !errors.Is(err, ErrUnmounted) {
		t.Errorf("Resize after unmount error = %v", err)
	}
}

func TestInputMovesCameraWithinBounds(t *testing.T) {
	r := &fakeRenderer{}
	m := mountDefault(t, r)
	c := m.Camera().Constraint()

	before := m.Camera().Pose()
	if err := m.Drag(120, 0); err != nil {
		t.Fatal(err)
	}
	if m.Camera().Pose().Azimuth == before.Azimuth {
		t.Error("drag did not rotate the camera")
	}

	for i := 0; i < 50; i++ {
		_ = m.Scroll(5)
		_ = m.Drag(0, 500)
	}
	if _, err := m.Tick(1, 1.0/60); err != nil {
		t.Fatal(err)
	}
	p := m.Camera().Pose()
	if p.Distance != c.MinDistance || p.Polar != c.MinPolar {
		t.Errorf("pose %+v not clamped to minimums", p)
	}
}

func TestMountLoadFailure(t *testing.T) {
	s, cam, sch, err := Build(scene.DefaultDefinitions(), 1)
	if err != nil {
		t.Fatal(err)
	}
	boom := errors.New("no gl context")
	if _, err := Mount(s, &fakeRenderer{loadErr: boom}, cam, sch); !errors.Is(err, boom) {
		t.Errorf("Mount() error = %v, want %v", err, boom)
	}
}

func TestTickRenderFailure(t *testing.T) {
	boom := errors.New("lost context")
	m := mountDefault(t, &fakeRenderer{renderErr: boom})
	if _, err := m.Tick(0.1, 0.1); !errors.Is(err, boom) {
		t.Errorf("Tick() error = %v, want %v", err, boom)
	}
}

func TestPick(t *testing.T) {
	m := mountDefault(t, &fakeRenderer{})

	down := picking.Ray{Origin: math.Vec3{X: 6, Y: 50, Z: -5}, Direction: math.Vec3{Y: -1}}
	n, err := m.Pick(down)
	if err != nil {
		t.Fatalf("Pick: %v", err)
	}
	if n == nil {
		t.Fatal("ray onto Yard A hit nothing")
	}
	idx := -1
	for i := range m.Scene().Nodes {
		if &m.Scene().Nodes[i] == n {
			idx = i
		}
	}
	b := scene.NodeBounds(m.Scene().Geometry(n.Geometry).Bounds, m.Scene().WorldTransform(idx, m.Scene().HullTransforms(0)))
	if b.Min[0] > 6 || b.Max[0] < 6 || b.Min[2] > -5 || b.Max[2] < -5 {
		t.Errorf("picked %q at %+v, which is not under the ray", n.Name, b)
	}

	up := picking.Ray{Origin: math.Vec3{Y: 500}, Direction: math.Vec3{Y: 1}}
	if n, err := m.Pick(up); err != nil || n != nil {
		t.Errorf("Pick(up) = %v, %v; want nil, nil", n, err)
	}

	m.Unmount()
	if _, err := m.Pick(down); !errors.Is(err, ErrUnmounted) {
		t.Errorf("Pick after Unmount: %v, want ErrUnmounted", err)
	}
}

package camera

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/chewxy/math32"

	"github.com/Faultbox/harbor-view/pkg/math"
)

func harborConstraint() Constraint {
	return Constraint{
		MinPolar:        0.25,
		MaxPolar:        1.35,
		MinDistance:     18,
		MaxDistance:     90,
		Target:          math.Vec3{X: 0, Y: 1, Z: 0},
		PanningDisabled: true,
	}
}

func newTestOrbit(t *testing.T) *Orbit {
	t.Helper()
	o, err := NewOrbit(harborConstraint(), Pose{Polar: 0.9, Azimuth: 0.6, Distance: 55})
	if err != nil {
		t.Fatalf("NewOrbit() error = %v", err)
	}
	return o
}

func TestNewOrbitRejectsBadConstraint(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Constraint)
	}{
		{"inverted polar", func(c *Constraint) { c.MinPolar, c.MaxPolar = 1.2, 0.3 }},
		{"negative polar", func(c *Constraint) { c.MinPolar = -0.1 }},
		{"polar past nadir", func(c *Constraint) { c.MaxPolar = 4 }},
		{"polar at zenith", func(c *Constraint) { c.MinPolar = 0 }},
		{"polar at nadir", func(c *Constraint) { c.MaxPolar = math32.Pi }},
		{"NaN polar", func(c *Constraint) { c.MinPolar = math32.NaN() }},
		{"unbounded distance", func(c *Constraint) { c.MaxDistance = math32.Inf(1) }},
		{"zero distance", func(c *Constraint) { c.MinDistance = 0 }},
		{"inverted distance", func(c *Constraint) { c.MinDistance, c.MaxDistance = 50, 10 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := harborConstraint()
			tt.modify(&c)
			if _, err := NewOrbit(c, Pose{Polar: 1, Distance: 20}); !errors.Is(err, ErrInvalidConstraint) {
				t.Errorf("NewOrbit() error = %v, want ErrInvalidConstraint", err)
			}
		})
	}
}

func TestNewOrbitClampsInitialPose(t *testing.T) {
	o, err := NewOrbit(harborConstraint(), Pose{Polar: 3, Distance: 500})
	if err != nil {
		t.Fatal(err)
	}
	p := o.Pose()
	if p.Polar != 1.35 || p.Distance != 90 {
		t.Errorf("pose = %+v, want polar 1.35 distance 90", p)
	}
}

func TestPosition(t *testing.T) {
	o := newTestOrbit(t)
	p := o.Pose()
	pos := o.Position()

	if d := pos.Distance(o.Target()); abs(d-p.Distance) > 1e-3 {
		t.Errorf("distance to target = %v, want %v", d, p.Distance)
	}
	wantY := o.Target().Y + p.Distance*math32.Cos(p.Polar)
	if abs(pos.Y-wantY) > 1e-3 {
		t.Errorf("height = %v, want %v", pos.Y, wantY)
	}
}

func TestRandomInputStaysInBounds(t *testing.T) {
	o := newTestOrbit(t)
	c := o.Constraint()
	target := o.Target()
	rng := rand.New(rand.NewSource(7))

	for i := 0; i < 2000; i++ {
		switch rng.Intn(3) {
		case 0:
			o.HandleDrag(rng.Float32()*800-400, rng.Float32()*800-400)
		case 1:
			o.HandleZoom(rng.Float32()*20 - 10)
		case 2:
			o.HandlePan(rng.Float32()*10-5, rng.Float32()*10-5)
		}
		o.Update(1.0 / 60)

		p := o.Pose()
		if p.Polar < c.MinPolar || p.Polar > c.MaxPolar {
			t.Fatalf("step %d: polar %v outside [%v, %v]", i, p.Polar, c.MinPolar, c.MaxPolar)
		}
		if p.Distance < c.MinDistance || p.Distance > c.MaxDistance {
			t.Fatalf("step %d: distance %v outside [%v, %v]", i, p.Distance, c.MinDistance, c.MaxDistance)
		}
		if o.Target() != target {
			t.Fatalf("step %d: target moved to %v", i, o.Target())
		}
	}
}

func TestPanMovesTargetWhenEnabled(t *testing.T) {
	c := harborConstraint()
	c.PanningDisabled = false
	o, err := NewOrbit(c, Pose{Polar: 1, Distance: 40})
	if err != nil {
		t.Fatal(err)
	}
	o.HandlePan(1, 0)
	if o.Target() == c.Target {
		t.Error("target did not move with panning enabled")
	}
	if o.Target().Y != c.Target.Y {
		t.Errorf("pan changed target height to %v", o.Target().Y)
	}
}

func TestZoomDirection(t *testing.T) {
	o := newTestOrbit(t)
	before := o.Pose().Distance
	o.HandleZoom(1)
	if o.Pose().Distance >= before {
		t.Errorf("wheel up did not move closer: %v -> %v", before, o.Pose().Distance)
	}
}

func TestDampingConvergesToUndamped(t *testing.T) {
	direct := newTestOrbit(t)
	direct.HandleDrag(40, -20)

	damped := newTestOrbit(t)
	damped.Damping = 0.08
	damped.HandleDrag(40, -20)
	if damped.Pose() != newTestOrbit(t).Pose() {
		t.Error("damped drag applied before Update")
	}
	for i := 0; i < 600 && !damped.Settled(); i++ {
		damped.Update(1.0 / 60)
	}
	if !damped.Settled() {
		t.Fatal("damped motion did not settle")
	}

	a, b := direct.Pose(), damped.Pose()
	if abs(a.Polar-b.Polar) > 1e-3 || abs(a.Azimuth-b.Azimuth) > 1e-3 {
		t.Errorf("damped pose %+v, want %+v", b, a)
	}
}

func TestViewMatrixLooksAtTarget(t *testing.T) {
	o := newTestOrbit(t)
	view := o.ViewMatrix()
	p := view.TransformPoint(o.Target().Array())
	// Camera space looks down -Z.
	if abs(p[0]) > 1e-3 || abs(p[1]) > 1e-3 || p[2] >= 0 {
		t.Errorf("target in view space = %v", p)
	}
}

func TestNonFiniteInputIgnored(t *testing.T) {
	for _, damping := range []float32{0, 0.2} {
		o := newTestOrbit(t)
		o.Damping = damping
		before := o.Pose()

		o.HandleDrag(math32.NaN(), 4)
		o.HandleDrag(3, math32.Inf(-1))
		o.HandleZoom(math32.NaN())
		o.HandleZoom(math32.Inf(1))
		o.Update(1.0 / 60)

		if p := o.Pose(); p != before {
			t.Errorf("damping %v: pose = %+v, want %+v", damping, p, before)
		}
		for k, v := range o.ViewMatrix() {
			if !finite(v) {
				t.Fatalf("damping %v: view[%d] = %v", damping, k, v)
			}
		}
	}
}

func TestViewMatrixFiniteAtPolarBounds(t *testing.T) {
	c := harborConstraint()
	for _, polar := range []float32{c.MinPolar, c.MaxPolar} {
		o, err := NewOrbit(c, Pose{Polar: polar, Distance: 30})
		if err != nil {
			t.Fatalf("NewOrbit() error = %v", err)
		}
		for k, v := range o.ViewMatrix() {
			if !finite(v) {
				t.Fatalf("polar %v: view[%d] = %v", polar, k, v)
			}
		}
	}
}

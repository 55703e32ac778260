package vessel

import (
	"errors"
	gomath "math"
	"testing"

	"github.com/Faultbox/harbor-view/pkg/math"
)

func inbound() Params {
	return Params{
		Center:       math.Vec3{X: 0, Y: 0, Z: 8},
		Radius:       24,
		RadiusYScale: 0.55,
		Speed:        0.02,
		Phase:        0,
		Height:       0.2,
	}
}

func outbound() Params {
	p := inbound()
	p.Radius = 30
	p.Speed = 0.015
	p.Phase = 0.42
	return p
}

func mustNew(t *testing.T, p Params) *Trajectory {
	t.Helper()
	tr, err := New(p)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return tr
}

func TestNewRejectsInvalid(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Params)
	}{
		{"zero radius", func(p *Params) { p.Radius = 0 }},
		{"flat ellipse", func(p *Params) { p.RadiusYScale = 0 }},
		{"stretched ellipse", func(p *Params) { p.RadiusYScale = 1.5 }},
		{"stopped", func(p *Params) { p.Speed = 0 }},
		{"nan speed", func(p *Params) { p.Speed = gomath.NaN() }},
		{"phase of one", func(p *Params) { p.Phase = 1 }},
		{"range over full turn", func(p *Params) { p.Range = 7 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := inbound()
			tt.modify(&p)
			if _, err := New(p); !errors.Is(err, ErrInvalidParams) {
				t.Errorf("New() error = %v, want ErrInvalidParams", err)
			}
		})
	}
}

func TestDefaultRangeIsFullTurn(t *testing.T) {
	tr := mustNew(t, inbound())
	if tr.Params().Range != FullTurn {
		t.Errorf("Range = %v, want 2pi", tr.Params().Range)
	}
}

func TestAngleIsPeriodic(t *testing.T) {
	tr := mustNew(t, outbound())
	period := tr.Period()
	for _, tm := range []float64{0, 3.7, 12.25, 1000, -5} {
		a := wrap(tr.Angle(tm))
		b := wrap(tr.Angle(tm + period))
		if d := gomath.Abs(a - b); d > 1e-6 && gomath.Abs(d-FullTurn) > 1e-6 {
			t.Errorf("t=%v: angle %v vs %v one period later", tm, a, b)
		}
	}
}

func TestAngleNonFiniteTime(t *testing.T) {
	tr := mustNew(t, outbound())
	want := tr.Angle(0)
	for _, tm := range []float64{gomath.NaN(), gomath.Inf(1), gomath.Inf(-1)} {
		if got := tr.Angle(tm); got != want {
			t.Errorf("Angle(%v) = %v, want %v", tm, got, want)
		}
	}
}

func TestPositionOnEllipse(t *testing.T) {
	p := inbound()
	tr := mustNew(t, p)
	for tm := 0.0; tm < tr.Period(); tm += 1.3 {
		s := tr.At(tm)
		dx := float64(s.Position.X-p.Center.X) / float64(p.Radius)
		dz := float64(s.Position.Z-p.Center.Z) / float64(p.Radius*p.RadiusYScale)
		if r := dx*dx + dz*dz; gomath.Abs(r-1) > 1e-4 {
			t.Fatalf("t=%v: ellipse equation = %v, want 1", tm, r)
		}
		if s.Position.Y != p.Center.Y+p.Height {
			t.Fatalf("t=%v: y = %v", tm, s.Position.Y)
		}
	}
}

func TestHeading(t *testing.T) {
	tr := mustNew(t, inbound())
	s := tr.At(7)
	if want := float32(-(s.Angle + gomath.Pi/2)); s.Heading != want {
		t.Errorf("Heading = %v, want %v", s.Heading, want)
	}
}

func TestTransformPlacesHull(t *testing.T) {
	tr := mustNew(t, inbound())
	s := tr.At(11)
	m := Transform(s)
	origin := m.TransformPoint([3]float32{0, 0, 0})
	if origin != s.Position.Array() {
		t.Errorf("hull origin at %v, want %v", origin, s.Position)
	}
}

func TestTwoVesselsLoopAndNeverMeet(t *testing.T) {
	a := mustNew(t, inbound())
	b := mustNew(t, outbound())

	for _, tr := range []*Trajectory{a, b} {
		start := tr.At(0).Position
		end := tr.At(tr.Period()).Position
		if d := start.Distance(end); d > 1e-3 {
			t.Errorf("vessel did not return to start: %v vs %v", start, end)
		}
	}

	const eps = 1.0
	horizon := gomath.Max(a.Period(), b.Period()) * 2
	for tm := 0.0; tm < horizon; tm += 0.25 {
		if d := a.At(tm).Position.Distance(b.At(tm).Position); d < eps {
			t.Fatalf("t=%v: vessels %v apart", tm, d)
		}
	}
}

func wrap(a float64) float64 {
	return gomath.Mod(gomath.Mod(a, FullTurn)+FullTurn, FullTurn)
}

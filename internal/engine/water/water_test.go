package water

import (
	"errors"
	gomath "math"
	"testing"

	"github.com/Faultbox/harbor-view/pkg/math"
)

func TestBuildGrid(t *testing.T) {
	g, err := BuildGrid(100, 4)
	if err != nil {
		t.Fatalf("BuildGrid() error = %v", err)
	}
	if g.VertexCount() != 25 {
		t.Errorf("vertices = %d, want 25", g.VertexCount())
	}
	if len(g.Indices) != 4*4*6 {
		t.Errorf("indices = %d, want %d", len(g.Indices), 4*4*6)
	}

	first := g.Vertices[:Stride]
	last := g.Vertices[len(g.Vertices)-Stride:]
	if first[0] != -50 || first[2] != 50 || first[3] != 0 || first[4] != 0 {
		t.Errorf("first vertex = %v", first)
	}
	if last[0] != 50 || last[2] != -50 || last[3] != 1 || last[4] != 1 {
		t.Errorf("last vertex = %v", last)
	}
}

func TestBuildGridRejectsInvalid(t *testing.T) {
	for _, tc := range []struct {
		size     float32
		segments int
	}{{0, 4}, {-1, 4}, {10, 0}} {
		if _, err := BuildGrid(tc.size, tc.segments); !errors.Is(err, ErrInvalidGrid) {
			t.Errorf("BuildGrid(%v, %d) error = %v, want ErrInvalidGrid", tc.size, tc.segments, err)
		}
	}
}

func TestGridTrianglesFaceUp(t *testing.T) {
	g, err := BuildGrid(10, 3)
	if err != nil {
		t.Fatal(err)
	}
	pos := func(i uint32) math.Vec3 {
		k := int(i) * Stride
		return math.Vec3{X: g.Vertices[k], Y: g.Vertices[k+1], Z: g.Vertices[k+2]}
	}
	for k := 0; k < len(g.Indices); k += 3 {
		a, b, c := pos(g.Indices[k]), pos(g.Indices[k+1]), pos(g.Indices[k+2])
		if n := b.Sub(a).Cross(c.Sub(a)); n.Y <= 0 {
			t.Fatalf("triangle %d normal %v does not face up", k/3, n)
		}
	}
}

func TestDisplacementDeterministic(t *testing.T) {
	samples := []struct {
		x, z float32
		t    float64
	}{{0, 0, 0}, {3.5, -2, 1.25}, {-40, 17, 600}}
	for _, s := range samples {
		a := Displacement(s.x, s.z, s.t)
		b := Displacement(s.x, s.z, s.t)
		if a != b {
			t.Errorf("Displacement%v not deterministic: %v vs %v", s, a, b)
		}
		if gomath.Abs(float64(a)) > float64(MaxAmplitude())+1e-5 {
			t.Errorf("Displacement%v = %v exceeds %v", s, a, MaxAmplitude())
		}
	}
}

func octaveSum(x, z float32, tm float64) float64 {
	var h float64
	for _, o := range Octaves {
		sp, sc, amp := float64(o.Speed), float64(o.Scale), float64(o.Amplitude)
		xs, zs := float64(x)*sc, float64(z)*sc
		h += amp * gomath.Sin(xs+tm*sp) * gomath.Cos(zs+tm*sp)
	}
	return h
}

func TestDisplacementMatchesOctaveSum(t *testing.T) {
	got := Displacement(1.3, -0.7, 4.2)
	if want := octaveSum(1.3, -0.7, 4.2); gomath.Abs(float64(got)-want) > 1e-4 {
		t.Errorf("Displacement = %v, want %v", got, want)
	}
}

func TestDisplacementAfterLongUptime(t *testing.T) {
	// Around 11 days of clock, where a float32 time can only step by 1/16 s.
	const start = 1e6 + 0.3
	for i := 0; i < 30; i++ {
		tm := start + float64(i)/60
		got := Displacement(2.7, -5.1, tm)
		if want := octaveSum(2.7, -5.1, tm); gomath.Abs(float64(got)-want) > 1e-4 {
			t.Fatalf("frame %d: Displacement = %v, want %v", i, got, want)
		}
	}
}

func TestOctavesGetFinerAndFaster(t *testing.T) {
	for k := 1; k < len(Octaves); k++ {
		prev, cur := Octaves[k-1], Octaves[k]
		if cur.Speed <= prev.Speed || cur.Scale <= prev.Scale || cur.Amplitude >= prev.Amplitude {
			t.Errorf("octave %d %+v does not refine octave %d %+v", k, cur, k-1, prev)
		}
	}
}

func TestGridDisplace(t *testing.T) {
	g, err := BuildGrid(20, 8)
	if err != nil {
		t.Fatal(err)
	}
	g.Level = -0.5
	g.Displace(2.5)
	for k := 0; k < len(g.Vertices); k += Stride {
		x, y, z := g.Vertices[k], g.Vertices[k+1], g.Vertices[k+2]
		if want := g.Level + Displacement(x, z, 2.5); y != want {
			t.Fatalf("vertex %d y = %v, want %v", k/Stride, y, want)
		}
	}
}

func TestFresnel(t *testing.T) {
	if f := Fresnel(0); f != 1 {
		t.Errorf("Fresnel(0) = %v, want 1", f)
	}
	if f := Fresnel(1); f != 0 {
		t.Errorf("Fresnel(1) = %v, want 0", f)
	}
	want := float32(gomath.Pow(0.5, 2.6))
	if f := Fresnel(0.5); gomath.Abs(float64(f-want)) > 1e-5 {
		t.Errorf("Fresnel(0.5) = %v, want %v", f, want)
	}
}

func TestShade(t *testing.T) {
	u := DefaultUniforms()

	// At v=1 there is no fresnel term: pure high color, no foam.
	if c := Shade(u, 1); !closeColor(c, u.High) {
		t.Errorf("Shade(1) = %v, want high %v", c, u.High)
	}

	// At v=0 fresnel is 1: base mixes to 0.2, foam weight is 0.35.
	base := u.Low.Mix(u.High, 0.2)
	want := base.Mix(u.Foam, 0.35)
	got := Shade(u, 0)
	if !closeColor(got, want) {
		t.Errorf("Shade(0) = %v, want %v", got, want)
	}

	if Shade(u, 0.3) != Shade(u, 0.3) {
		t.Error("Shade is not deterministic")
	}
}

func closeColor(a, b math.Color) bool {
	d := func(x, y float32) bool { return gomath.Abs(float64(x-y)) < 1e-5 }
	return d(a.R, b.R) && d(a.G, b.G) && d(a.B, b.B)
}

func TestUniformsAdvance(t *testing.T) {
	var u Uniforms
	u.Advance(0.016)
	u.Advance(0.016)
	u.Advance(-1)
	u.Advance(gomath.NaN())
	u.Advance(gomath.Inf(1))
	if gomath.Abs(u.Time-0.032) > 1e-12 {
		t.Errorf("Time = %v, want 0.032", u.Time)
	}
}

package extrude

import (
	"errors"
	"fmt"

	"github.com/Faultbox/harbor-view/pkg/math"
)

var (
	// ErrNonPositiveHeight is returned when the extrusion height is not > 0.
	ErrNonPositiveHeight = errors.New("extrude height must be positive")
	// ErrNegativeElevation is returned when the base elevation is below 0.
	ErrNegativeElevation = errors.New("base elevation must not be negative")
)

// Extrude sweeps the outline upward by height, starting at elevation. The
// result is closed: a bottom cap, a top cap and one quad per outline edge.
// Either winding is accepted; faces always point outward.
func Extrude(outline Outline, height, elevation float32) (*Solid, error) {
	if err := outline.Validate(); err != nil {
		return nil, err
	}
	if height <= 0 {
		return nil, fmt.Errorf("%w: got %v", ErrNonPositiveHeight, height)
	}
	if elevation < 0 {
		return nil, fmt.Errorf("%w: got %v", ErrNegativeElevation, elevation)
	}

	o := outline.CCW()
	capIndices, err := Triangulate(o)
	if err != nil {
		return nil, err
	}

	n := len(o)
	s := &Solid{
		Vertices: make([]Vertex, 0, n*2+n*4),
		Indices:  make([]uint32, 0, len(capIndices)*2+n*6),
		Bounds:   EmptyBounds(),
	}
	y0 := elevation
	y1 := elevation + height

	// Bottom cap faces down; a counterclockwise triangle in (x, z) already
	// has a -Y normal.
	s.addCap(o, capIndices, y0, [3]float32{0, -1, 0}, false)
	// Top cap uses the reversed winding to face up.
	s.addCap(o, capIndices, y1, [3]float32{0, 1, 0}, true)

	for i := 0; i < n; i++ {
		p, q := o[i], o[(i+1)%n]
		d := q.Sub(p)
		if d.Length() == 0 {
			continue
		}
		// Interior lies to the left of each edge, so (dz, -dx) points out.
		nrm := math.Vec3{X: d.Y, Y: 0, Z: -d.X}.Normalize().Array()

		base := uint32(len(s.Vertices))
		s.add(Vertex{Position: [3]float32{p.X, y0, p.Y}, Normal: nrm})
		s.add(Vertex{Position: [3]float32{q.X, y0, q.Y}, Normal: nrm})
		s.add(Vertex{Position: [3]float32{q.X, y1, q.Y}, Normal: nrm})
		s.add(Vertex{Position: [3]float32{p.X, y1, p.Y}, Normal: nrm})
		s.Indices = append(s.Indices,
			base, base+2, base+1,
			base, base+3, base+2,
		)
	}

	return s, nil
}

func (s *Solid) addCap(o Outline, capIndices []uint32, y float32, normal [3]float32, reverse bool) {
	base := uint32(len(s.Vertices))
	for _, p := range o {
		s.add(Vertex{Position: [3]float32{p.X, y, p.Y}, Normal: normal})
	}
	for k := 0; k+2 < len(capIndices); k += 3 {
		a, b, c := capIndices[k], capIndices[k+1], capIndices[k+2]
		if reverse {
			b, c = c, b
		}
		s.Indices = append(s.Indices, base+a, base+b, base+c)
	}
}

func (s *Solid) add(v Vertex) {
	s.Vertices = append(s.Vertices, v)
	for i := 0; i < 3; i++ {
		if v.Position[i] < s.Bounds.Min[i] {
			s.Bounds.Min[i] = v.Position[i]
		}
		if v.Position[i] > s.Bounds.Max[i] {
			s.Bounds.Max[i] = v.Position[i]
		}
	}
}

// Rect returns an axis-aligned rectangle outline of the given size centered
// on (cx, cz).
func Rect(cx, cz, width, depth float32) Outline {
	hw, hd := width/2, depth/2
	return Outline{
		{X: cx - hw, Y: cz - hd},
		{X: cx + hw, Y: cz - hd},
		{X: cx + hw, Y: cz + hd},
		{X: cx - hw, Y: cz + hd},
	}
}

// UnitBox returns a 1x1x1 box centered on the origin. Nodes scale it to
// container, mast or boom dimensions.
func UnitBox() *Solid {
	s, err := Extrude(Rect(0, 0, 1, 1), 1, 0)
	if err != nil {
		// The rectangle is a constant; failure is a programming error.
		panic(err)
	}
	return s.Translated(0, -0.5, 0)
}

// Translated returns a copy of the solid moved by (dx, dy, dz).
func (s *Solid) Translated(dx, dy, dz float32) *Solid {
	out := &Solid{
		Vertices: make([]Vertex, 0, len(s.Vertices)),
		Indices:  append([]uint32(nil), s.Indices...),
		Bounds:   EmptyBounds(),
	}
	for _, v := range s.Vertices {
		v.Position[0] += dx
		v.Position[1] += dy
		v.Position[2] += dz
		out.add(v)
	}
	return out
}

// Package layout places repeated unit volumes on regular grids.
//
// Columns run along world X, rows along world Z and levels stack upward
// along Y. Placement is a pure function of the grid indices, so the same
// config always yields the same positions and colors.
package layout

import (
	"errors"
	"fmt"

	"github.com/Faultbox/harbor-view/pkg/math"
)

var (
	// ErrInvalidGrid is returned when a grid count is below one.
	ErrInvalidGrid = errors.New("grid counts must be at least 1")
	// ErrInvalidUnit is returned when a unit dimension is not positive.
	ErrInvalidUnit = errors.New("unit dimensions must be positive")
	// ErrEmptyPalette is returned when no colors are configured.
	ErrEmptyPalette = errors.New("palette must not be empty")
)

// DefaultGap is the spacing added to the unit footprint when no pitch is
// given.
const DefaultGap = 0.1

// Config describes a grid of identical units.
type Config struct {
	// Anchor is the grid center on the horizontal plane and the base
	// height of the first level.
	Anchor  math.Vec3
	Columns int
	Rows    int
	Levels  int
	// Unit holds width (X), height (Y) and depth (Z).
	Unit math.Vec3
	// Pitch is the center-to-center spacing: X between columns, Y between
	// rows. Zero components fall back to the unit footprint plus Gap.
	Pitch math.Vec2
	Gap   float32
	// Palette is cycled by (column + row + level).
	Palette []math.Color
}

// Placement is one placed unit.
type Placement struct {
	Index    int
	Column   int
	Row      int
	Level    int
	Position math.Vec3 // unit center
	Color    math.Color
	Size     math.Vec3
}

// Count returns the number of units the config produces.
func (c Config) Count() int {
	return c.Columns * c.Rows * c.Levels
}

// Validate reports whether the config can be laid out.
func (c Config) Validate() error {
	if c.Columns < 1 || c.Rows < 1 || c.Levels < 1 {
		return fmt.Errorf("%w: %dx%dx%d", ErrInvalidGrid, c.Columns, c.Rows, c.Levels)
	}
	if c.Unit.X <= 0 || c.Unit.Y <= 0 || c.Unit.Z <= 0 {
		return fmt.Errorf("%w: %v", ErrInvalidUnit, c.Unit)
	}
	if len(c.Palette) == 0 {
		return ErrEmptyPalette
	}
	return nil
}

// EffectivePitch resolves the spacing used between unit centers.
func (c Config) EffectivePitch() math.Vec2 {
	gap := c.Gap
	if gap == 0 {
		gap = DefaultGap
	}
	p := c.Pitch
	if p.X <= 0 {
		p.X = c.Unit.X + gap
	}
	if p.Y <= 0 {
		p.Y = c.Unit.Z + gap
	}
	return p
}

// Grid places every unit of the config. Units are ordered column-major,
// then row, then level.
func Grid(c Config) ([]Placement, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	pitch := c.EffectivePitch()
	out := make([]Placement, 0, c.Count())
	for x := 0; x < c.Columns; x++ {
		for z := 0; z < c.Rows; z++ {
			for y := 0; y < c.Levels; y++ {
				out = append(out, Placement{
					Index:    len(out),
					Column:   x,
					Row:      z,
					Level:    y,
					Position: c.position(x, z, y, pitch),
					Color:    c.Palette[(x+z+y)%len(c.Palette)],
					Size:     c.Unit,
				})
			}
		}
	}
	return out, nil
}

func (c Config) position(x, z, y int, pitch math.Vec2) math.Vec3 {
	return math.Vec3{
		X: c.Anchor.X + centered(x, c.Columns)*pitch.X,
		Y: c.Anchor.Y + float32(y)*c.Unit.Y + c.Unit.Y/2,
		Z: c.Anchor.Z + centered(z, c.Rows)*pitch.Y,
	}
}

// centered maps index i of n onto a range symmetric around zero.
func centered(i, n int) float32 {
	return float32(i) - float32(n-1)/2
}

// Span returns the horizontal extent covered by the units as the low and
// high corners on the XZ plane.
func Span(placements []Placement) (lo, hi math.Vec2) {
	if len(placements) == 0 {
		return math.Vec2{}, math.Vec2{}
	}
	lo = math.Vec2{X: 1e10, Y: 1e10}
	hi = math.Vec2{X: -1e10, Y: -1e10}
	for _, p := range placements {
		hx, hz := p.Size.X/2, p.Size.Z/2
		lo.X = min(lo.X, p.Position.X-hx)
		lo.Y = min(lo.Y, p.Position.Z-hz)
		hi.X = max(hi.X, p.Position.X+hx)
		hi.Y = max(hi.Y, p.Position.Z+hz)
	}
	return lo, hi
}

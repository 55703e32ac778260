package layout

import (
	"errors"
	"fmt"

	"github.com/Faultbox/harbor-view/pkg/math"
)

// ErrNoOffsets is returned when a fixture run has nothing to place.
var ErrNoOffsets = errors.New("fixture run needs at least one offset")

// Fixture describes a single point fixture such as a crane mast or a lamp.
type Fixture struct {
	Size  math.Vec3
	Color math.Color
}

// PlaceAlong places one fixture per offset along world X, starting from
// origin. Each fixture is a degenerate 1x1x1 grid, so it sits on origin.Y
// exactly like a single container would.
func PlaceAlong(origin math.Vec3, offsets []float32, f Fixture) ([]Placement, error) {
	if len(offsets) == 0 {
		return nil, ErrNoOffsets
	}
	out := make([]Placement, 0, len(offsets))
	for i, dx := range offsets {
		cell, err := Grid(Config{
			Anchor:  origin.Add(math.Vec3{X: dx}),
			Columns: 1,
			Rows:    1,
			Levels:  1,
			Unit:    f.Size,
			Palette: []math.Color{f.Color},
		})
		if err != nil {
			return nil, fmt.Errorf("fixture %d: %w", i, err)
		}
		p := cell[0]
		p.Index = i
		p.Column = i
		out = append(out, p)
	}
	return out, nil
}

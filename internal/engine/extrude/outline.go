package extrude

import (
	"errors"
	"fmt"

	"github.com/peterstace/simplefeatures/geom"

	"github.com/Faultbox/harbor-view/pkg/math"
)

var (
	// ErrTooFewPoints is returned for outlines with fewer than three points.
	ErrTooFewPoints = errors.New("outline needs at least 3 points")
	// ErrDegenerateOutline is returned for outlines that enclose no area.
	ErrDegenerateOutline = errors.New("outline encloses no area")
	// ErrSelfIntersecting is returned for outlines whose edges cross.
	ErrSelfIntersecting = errors.New("outline is self-intersecting")
	// ErrRepeatedPoint is returned when two consecutive points coincide,
	// including a closing point equal to the first.
	ErrRepeatedPoint = errors.New("outline repeats a point")
)

// minArea is the smallest enclosed area accepted, in square world units.
const minArea = 1e-6

// Outline is an ordered, implicitly closed polygon on the horizontal plane.
// Point (X, Y) maps to world (X, *, Y). Consecutive points must differ and
// the last point must not repeat the first one.
type Outline []math.Vec2

// SignedArea returns the shoelace area. Positive means counterclockwise in
// (x, z) axes.
func (o Outline) SignedArea() float32 {
	n := len(o)
	if n < 3 {
		return 0
	}
	var area float32
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		area += o[i].X*o[j].Y - o[j].X*o[i].Y
	}
	return area / 2
}

// CCW returns the outline with positive signed area, reversing it if needed.
func (o Outline) CCW() Outline {
	if o.SignedArea() >= 0 {
		return o
	}
	rev := make(Outline, len(o))
	for i, p := range o {
		rev[len(o)-1-i] = p
	}
	return rev
}

// Validate checks that the outline can be extruded: at least three points,
// no zero-length edges, a non-zero area and no crossing edges.
func (o Outline) Validate() error {
	if len(o) < 3 {
		return fmt.Errorf("%w: got %d", ErrTooFewPoints, len(o))
	}
	for i, p := range o {
		if p == o[(i+1)%len(o)] {
			return fmt.Errorf("%w: index %d", ErrRepeatedPoint, i)
		}
	}
	if abs32(o.SignedArea()) < minArea {
		return ErrDegenerateOutline
	}
	if _, err := o.polygon(); err != nil {
		return fmt.Errorf("%w: %v", ErrSelfIntersecting, err)
	}
	return nil
}

// polygon converts the outline into a single-ring simplefeatures polygon.
// Construction fails when the ring is not simple.
func (o Outline) polygon() (geom.Polygon, error) {
	coords := make([]float64, 0, (len(o)+1)*2)
	for _, p := range o {
		coords = append(coords, float64(p.X), float64(p.Y))
	}
	coords = append(coords, float64(o[0].X), float64(o[0].Y))

	ring, err := geom.NewLineString(geom.NewSequence(coords, geom.DimXY))
	if err != nil {
		return geom.Polygon{}, err
	}
	return geom.NewPolygon([]geom.LineString{ring})
}

func abs32(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
}

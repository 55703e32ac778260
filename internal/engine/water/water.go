// Package water provides the harbor water surface: a tessellated grid, the
// wave displacement that animates it and the color model used to shade it.
package water

import (
	"errors"
	"fmt"
)

// ErrInvalidGrid is returned for grids without area or segments.
var ErrInvalidGrid = errors.New("water grid needs positive size and at least one segment")

// Stride is the number of floats per grid vertex: x, y, z, u, v.
const Stride = 5

// Grid holds water surface geometry ready for GPU upload. The grid is a
// square centered on the origin in the XZ plane.
type Grid struct {
	Vertices []float32 // x,y,z,u,v per vertex
	Indices  []uint32
	Size     float32
	Segments int
	// Level is the rest height of the surface.
	Level float32
}

// BuildGrid creates a flat grid of (segments+1)^2 vertices covering a
// size x size square. U runs along +X and V along -Z, both in [0, 1].
func BuildGrid(size float32, segments int) (*Grid, error) {
	if size <= 0 || segments < 1 {
		return nil, fmt.Errorf("%w: size %v, segments %d", ErrInvalidGrid, size, segments)
	}

	row := segments + 1
	g := &Grid{
		Vertices: make([]float32, 0, row*row*Stride),
		Indices:  make([]uint32, 0, segments*segments*6),
		Size:     size,
		Segments: segments,
	}

	half := size / 2
	step := size / float32(segments)
	for j := 0; j < row; j++ {
		z := half - float32(j)*step
		v := float32(j) / float32(segments)
		for i := 0; i < row; i++ {
			x := -half + float32(i)*step
			u := float32(i) / float32(segments)
			g.Vertices = append(g.Vertices, x, 0, z, u, v)
		}
	}

	// Counterclockwise seen from above.
	for j := 0; j < segments; j++ {
		for i := 0; i < segments; i++ {
			a := uint32(j*row + i)
			b := a + 1
			c := a + uint32(row)
			d := c + 1
			g.Indices = append(g.Indices, a, b, d, a, d, c)
		}
	}
	return g, nil
}

// VertexCount returns the number of vertices in the grid.
func (g *Grid) VertexCount() int {
	return len(g.Vertices) / Stride
}

// Displace sets every vertex height to the wave displacement at time t.
func (g *Grid) Displace(t float64) {
	for k := 0; k+Stride <= len(g.Vertices); k += Stride {
		x, z := g.Vertices[k], g.Vertices[k+2]
		g.Vertices[k+1] = g.Level + Displacement(x, z, t)
	}
}

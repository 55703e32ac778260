// Package extrude turns closed 2D outlines on the horizontal plane into
// flat-faceted 3D solids ready for GPU upload.
package extrude

// Vertex is a solid vertex. Faces do not share vertices, so every vertex
// carries its face normal.
type Vertex struct {
	Position [3]float32
	Normal   [3]float32
}

// Solid holds a closed, extruded mesh.
type Solid struct {
	Vertices []Vertex
	Indices  []uint32
	Bounds   Bounds
}

// Bounds holds the axis-aligned bounding box of a solid.
type Bounds struct {
	Min [3]float32
	Max [3]float32
}

// Height returns the vertical extent of the box.
func (b Bounds) Height() float32 {
	return b.Max[1] - b.Min[1]
}

// Union returns the smallest box containing both b and other.
func (b Bounds) Union(other Bounds) Bounds {
	out := b
	for i := 0; i < 3; i++ {
		if other.Min[i] < out.Min[i] {
			out.Min[i] = other.Min[i]
		}
		if other.Max[i] > out.Max[i] {
			out.Max[i] = other.Max[i]
		}
	}
	return out
}

// EmptyBounds returns an inverted box that any Union replaces.
func EmptyBounds() Bounds {
	return Bounds{
		Min: [3]float32{1e10, 1e10, 1e10},
		Max: [3]float32{-1e10, -1e10, -1e10},
	}
}

// TriangleCount returns the number of triangles in the solid.
func (s *Solid) TriangleCount() int {
	return len(s.Indices) / 3
}

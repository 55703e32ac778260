// Package debug provides developer overlays and frame capture.
package debug

import "github.com/Faultbox/harbor-view/internal/engine/extrude"

// BoxVertexCount is the number of line vertices of one box (12 edges x 2).
const BoxVertexCount = 24

// BoxWireframe creates line vertices for a wireframe box, [x, y, z] per
// vertex, ready for GL_LINES.
func BoxWireframe(b extrude.Bounds) []float32 {
	minX, minY, minZ := b.Min[0], b.Min[1], b.Min[2]
	maxX, maxY, maxZ := b.Max[0], b.Max[1], b.Max[2]
	return []float32{
		// Bottom
		minX, minY, minZ, maxX, minY, minZ,
		maxX, minY, minZ, maxX, minY, maxZ,
		maxX, minY, maxZ, minX, minY, maxZ,
		minX, minY, maxZ, minX, minY, minZ,
		// Top
		minX, maxY, minZ, maxX, maxY, minZ,
		maxX, maxY, minZ, maxX, maxY, maxZ,
		maxX, maxY, maxZ, minX, maxY, maxZ,
		minX, maxY, maxZ, minX, maxY, minZ,
		// Verticals
		minX, minY, minZ, minX, maxY, minZ,
		maxX, minY, minZ, maxX, maxY, minZ,
		maxX, minY, maxZ, maxX, maxY, maxZ,
		minX, minY, maxZ, minX, maxY, maxZ,
	}
}

// Padded grows b by padding on every side.
func Padded(b extrude.Bounds, padding float32) extrude.Bounds {
	for i := 0; i < 3; i++ {
		b.Min[i] -= padding
		b.Max[i] += padding
	}
	return b
}

// AppendBoxes appends the wireframes of all boxes to dst.
func AppendBoxes(dst []float32, boxes ...extrude.Bounds) []float32 {
	for _, b := range boxes {
		dst = append(dst, BoxWireframe(b)...)
	}
	return dst
}

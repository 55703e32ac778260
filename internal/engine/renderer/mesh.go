package renderer

import (
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/Faultbox/harbor-view/internal/engine/extrude"
)

// vertexSize is the byte stride of extrude.Vertex: position then normal.
const vertexSize = int32(unsafe.Sizeof(extrude.Vertex{}))

// mesh is one solid resident on the GPU.
type mesh struct {
	vao, vbo, ebo uint32
	indexCount    int32
}

func uploadSolid(s *extrude.Solid) *mesh {
	m := &mesh{indexCount: int32(len(s.Indices))}
	if len(s.Vertices) == 0 || len(s.Indices) == 0 {
		return m
	}

	gl.GenVertexArrays(1, &m.vao)
	gl.BindVertexArray(m.vao)

	gl.GenBuffers(1, &m.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, m.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(s.Vertices)*int(vertexSize), unsafe.Pointer(&s.Vertices[0]), gl.STATIC_DRAW)

	// Position
	gl.VertexAttribPointerWithOffset(0, 3, gl.FLOAT, false, vertexSize, 0)
	gl.EnableVertexAttribArray(0)
	// Normal
	gl.VertexAttribPointerWithOffset(1, 3, gl.FLOAT, false, vertexSize, 3*4)
	gl.EnableVertexAttribArray(1)

	gl.GenBuffers(1, &m.ebo)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, m.ebo)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(s.Indices)*4, unsafe.Pointer(&s.Indices[0]), gl.STATIC_DRAW)

	gl.BindVertexArray(0)
	return m
}

func (m *mesh) draw() {
	if m.vao == 0 {
		return
	}
	gl.BindVertexArray(m.vao)
	gl.DrawElements(gl.TRIANGLES, m.indexCount, gl.UNSIGNED_INT, nil)
}

func (m *mesh) destroy() {
	if m.ebo != 0 {
		gl.DeleteBuffers(1, &m.ebo)
	}
	if m.vbo != 0 {
		gl.DeleteBuffers(1, &m.vbo)
	}
	if m.vao != 0 {
		gl.DeleteVertexArrays(1, &m.vao)
	}
	*m = mesh{}
}

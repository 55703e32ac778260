package renderer

import (
	"fmt"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/Faultbox/harbor-view/internal/engine/debug"
	"github.com/Faultbox/harbor-view/internal/engine/renderer/shaders"
	"github.com/Faultbox/harbor-view/internal/engine/shader"
	"github.com/Faultbox/harbor-view/internal/harbor/scene"
)

// boundsPadding keeps the overlay off the faces it outlines.
const boundsPadding = 0.02

// boundsRenderer outlines every node's world box, rebuilt each frame so
// that vessel boxes follow their hulls.
type boundsRenderer struct {
	program  uint32
	uniforms *shader.Uniforms
	vao, vbo uint32
	capacity int
	lines    []float32
}

func newBoundsRenderer() (*boundsRenderer, error) {
	program, err := shader.CompileProgram(shaders.LinesVertexShader, shaders.LinesFragmentShader)
	if err != nil {
		return nil, fmt.Errorf("lines shader: %w", err)
	}
	br := &boundsRenderer{
		program:  program,
		uniforms: shader.Locate(program, "uViewProj", "uColor"),
	}
	gl.GenVertexArrays(1, &br.vao)
	gl.BindVertexArray(br.vao)
	gl.GenBuffers(1, &br.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, br.vbo)
	gl.VertexAttribPointerWithOffset(0, 3, gl.FLOAT, false, 3*4, 0)
	gl.EnableVertexAttribArray(0)
	gl.BindVertexArray(0)
	return br, nil
}

func (br *boundsRenderer) render(ps passState, s *scene.Scene) {
	br.lines = br.lines[:0]
	for i, n := range s.Nodes {
		b := scene.NodeBounds(s.Geometry(n.Geometry).Bounds, ps.worlds[i])
		br.lines = debug.AppendBoxes(br.lines, debug.Padded(b, boundsPadding))
	}
	if len(br.lines) == 0 {
		return
	}

	gl.BindBuffer(gl.ARRAY_BUFFER, br.vbo)
	if len(br.lines) > br.capacity {
		br.capacity = len(br.lines)
		gl.BufferData(gl.ARRAY_BUFFER, br.capacity*4, unsafe.Pointer(&br.lines[0]), gl.STREAM_DRAW)
	} else {
		gl.BufferSubData(gl.ARRAY_BUFFER, 0, len(br.lines)*4, unsafe.Pointer(&br.lines[0]))
	}
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)

	gl.UseProgram(br.program)
	br.uniforms.Mat4("uViewProj", ps.viewProj)
	gl.Uniform4f(br.uniforms.Loc("uColor"), 1, 0.85, 0.1, 1)

	gl.BindVertexArray(br.vao)
	gl.DrawArrays(gl.LINES, 0, int32(len(br.lines)/3))
	gl.BindVertexArray(0)
}

func (br *boundsRenderer) destroy() {
	if br.vbo != 0 {
		gl.DeleteBuffers(1, &br.vbo)
		br.vbo = 0
	}
	if br.vao != 0 {
		gl.DeleteVertexArrays(1, &br.vao)
		br.vao = 0
	}
	if br.program != 0 {
		gl.DeleteProgram(br.program)
		br.program = 0
	}
}

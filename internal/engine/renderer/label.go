package renderer

import (
	"fmt"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/Faultbox/harbor-view/internal/engine/labels"
	"github.com/Faultbox/harbor-view/internal/engine/renderer/shaders"
	"github.com/Faultbox/harbor-view/internal/engine/shader"
	"github.com/Faultbox/harbor-view/internal/engine/texture"
	"github.com/Faultbox/harbor-view/internal/harbor/scene"
	"github.com/Faultbox/harbor-view/pkg/math"
)

// labelHeight is the world height of every billboard.
const labelHeight = 1.6

// billboardQuad is two triangles of (corner x, corner y, u, v). The quad
// stands on its anchor and is centered horizontally.
var billboardQuad = []float32{
	-0.5, 0, 0, 1,
	0.5, 0, 1, 1,
	0.5, 1, 1, 0,
	-0.5, 0, 0, 1,
	0.5, 1, 1, 0,
	-0.5, 1, 0, 0,
}

type billboard struct {
	position math.Vec3
	width    float32
	height   float32
	texID    uint32
}

// labelRenderer draws landmass names facing the camera.
type labelRenderer struct {
	program  uint32
	uniforms *shader.Uniforms
	vao, vbo uint32

	billboards []billboard
}

func newLabelRenderer() (*labelRenderer, error) {
	program, err := shader.CompileProgram(shaders.LabelVertexShader, shaders.LabelFragmentShader)
	if err != nil {
		return nil, fmt.Errorf("label shader: %w", err)
	}
	lr := &labelRenderer{
		program:  program,
		uniforms: shader.Locate(program, "uViewProj", "uWorldPos", "uSize", "uCamRight", "uCamUp", "uTexture", "uTint"),
	}

	gl.GenVertexArrays(1, &lr.vao)
	gl.BindVertexArray(lr.vao)
	gl.GenBuffers(1, &lr.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, lr.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(billboardQuad)*4, unsafe.Pointer(&billboardQuad[0]), gl.STATIC_DRAW)
	// Corner
	gl.VertexAttribPointerWithOffset(0, 2, gl.FLOAT, false, 4*4, 0)
	gl.EnableVertexAttribArray(0)
	// UV
	gl.VertexAttribPointerWithOffset(1, 2, gl.FLOAT, false, 4*4, 2*4)
	gl.EnableVertexAttribArray(1)
	gl.BindVertexArray(0)

	return lr, nil
}

func (lr *labelRenderer) load(ls []scene.Label) {
	for _, l := range ls {
		img := labels.Rasterize(l.Text)
		if img == nil {
			continue
		}
		w, h := labels.WorldSize(img, labelHeight)
		lr.billboards = append(lr.billboards, billboard{
			position: l.Position,
			width:    w,
			height:   h,
			texID:    texture.Upload(img),
		})
	}
}

func (lr *labelRenderer) render(ps passState, view math.Mat4) {
	if len(lr.billboards) == 0 {
		return
	}
	right, up := cameraBasis(view)

	u := lr.uniforms
	gl.UseProgram(lr.program)
	u.Mat4("uViewProj", ps.viewProj)
	u.Vec3("uCamRight", right)
	u.Vec3("uCamUp", up)
	u.Int("uTexture", 0)
	gl.Uniform4f(u.Loc("uTint"), 1, 1, 1, 1)

	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
	gl.DepthMask(false)
	gl.Disable(gl.CULL_FACE)
	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindVertexArray(lr.vao)

	for _, b := range lr.billboards {
		u.Vec3("uWorldPos", b.position)
		gl.Uniform2f(u.Loc("uSize"), b.width, b.height)
		gl.BindTexture(gl.TEXTURE_2D, b.texID)
		gl.DrawArrays(gl.TRIANGLES, 0, 6)
	}

	gl.BindVertexArray(0)
	gl.Enable(gl.CULL_FACE)
	gl.DepthMask(true)
	gl.Disable(gl.BLEND)
}

func (lr *labelRenderer) unload() {
	for _, b := range lr.billboards {
		texture.Delete(b.texID)
	}
	lr.billboards = nil
}

func (lr *labelRenderer) destroy() {
	lr.unload()
	if lr.vbo != 0 {
		gl.DeleteBuffers(1, &lr.vbo)
		lr.vbo = 0
	}
	if lr.vao != 0 {
		gl.DeleteVertexArrays(1, &lr.vao)
		lr.vao = 0
	}
	if lr.program != 0 {
		gl.DeleteProgram(lr.program)
		lr.program = 0
	}
}

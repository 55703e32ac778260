package renderer

import (
	"fmt"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/Faultbox/harbor-view/internal/engine/renderer/shaders"
	"github.com/Faultbox/harbor-view/internal/engine/shader"
	"github.com/Faultbox/harbor-view/internal/engine/water"
	"github.com/Faultbox/harbor-view/internal/harbor/scene"
)

// waterOpacity lets the quay footings show through the surface.
const waterOpacity = 0.92

// waterRenderer streams the displaced grid every frame.
type waterRenderer struct {
	program  uint32
	uniforms *shader.Uniforms

	grid          *water.Grid
	vao, vbo, ebo uint32
	indexCount    int32
	// displacedAt is the clock value the buffer holds.
	displacedAt float64
	uploaded    bool
}

func newWaterRenderer() (*waterRenderer, error) {
	program, err := shader.CompileProgram(shaders.WaterVertexShader, shaders.WaterFragmentShader)
	if err != nil {
		return nil, fmt.Errorf("water shader: %w", err)
	}
	return &waterRenderer{
		program: program,
		uniforms: shader.Locate(program,
			"uViewProj", "uLow", "uHigh", "uFoam",
			"uFresnelPower", "uFresnelLift", "uFoamStart", "uFoamEnd", "uFoamStrength",
			"uCameraPos", "uFogColor", "uFogNear", "uFogFar", "uOpacity"),
	}, nil
}

func (wr *waterRenderer) load(def scene.WaterDefinition, segments int) error {
	grid, err := water.BuildGrid(def.Size, segments)
	if err != nil {
		return err
	}
	grid.Level = def.Level
	grid.Displace(0)
	wr.grid = grid

	gl.GenVertexArrays(1, &wr.vao)
	gl.BindVertexArray(wr.vao)

	gl.GenBuffers(1, &wr.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, wr.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(grid.Vertices)*4, unsafe.Pointer(&grid.Vertices[0]), gl.DYNAMIC_DRAW)

	stride := int32(water.Stride * 4)
	// Position
	gl.VertexAttribPointerWithOffset(0, 3, gl.FLOAT, false, stride, 0)
	gl.EnableVertexAttribArray(0)
	// UV
	gl.VertexAttribPointerWithOffset(1, 2, gl.FLOAT, false, stride, 3*4)
	gl.EnableVertexAttribArray(1)

	gl.GenBuffers(1, &wr.ebo)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, wr.ebo)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(grid.Indices)*4, unsafe.Pointer(&grid.Indices[0]), gl.STATIC_DRAW)
	wr.indexCount = int32(len(grid.Indices))

	gl.BindVertexArray(0)
	wr.uploaded = true
	return nil
}

// update displaces the grid to clock t and streams it to the GPU.
func (wr *waterRenderer) update(t float64) {
	if !wr.uploaded || t == wr.displacedAt {
		return
	}
	wr.grid.Displace(t)
	wr.displacedAt = t

	gl.BindBuffer(gl.ARRAY_BUFFER, wr.vbo)
	gl.BufferSubData(gl.ARRAY_BUFFER, 0, len(wr.grid.Vertices)*4, unsafe.Pointer(&wr.grid.Vertices[0]))
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
}

func (wr *waterRenderer) render(ps passState, u water.Uniforms, env scene.Environment) {
	if !wr.uploaded {
		return
	}
	wr.update(u.Time)

	su := wr.uniforms
	gl.UseProgram(wr.program)
	su.Mat4("uViewProj", ps.viewProj)
	su.Color("uLow", u.Low)
	su.Color("uHigh", u.High)
	su.Color("uFoam", u.Foam)
	su.Float("uFresnelPower", water.Shading.FresnelPower)
	su.Float("uFresnelLift", water.Shading.FresnelLift)
	su.Float("uFoamStart", water.Shading.FoamStart)
	su.Float("uFoamEnd", water.Shading.FoamEnd)
	su.Float("uFoamStrength", water.Shading.FoamStrength)
	su.Vec3("uCameraPos", ps.cameraPos)
	su.Color("uFogColor", env.FogColor)
	su.Float("uFogNear", env.FogNear)
	su.Float("uFogFar", env.FogFar)
	su.Float("uOpacity", waterOpacity)

	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
	gl.Disable(gl.CULL_FACE)

	gl.BindVertexArray(wr.vao)
	gl.DrawElements(gl.TRIANGLES, wr.indexCount, gl.UNSIGNED_INT, nil)
	gl.BindVertexArray(0)

	gl.Enable(gl.CULL_FACE)
	gl.Disable(gl.BLEND)
}

func (wr *waterRenderer) unload() {
	if wr.ebo != 0 {
		gl.DeleteBuffers(1, &wr.ebo)
		wr.ebo = 0
	}
	if wr.vbo != 0 {
		gl.DeleteBuffers(1, &wr.vbo)
		wr.vbo = 0
	}
	if wr.vao != 0 {
		gl.DeleteVertexArrays(1, &wr.vao)
		wr.vao = 0
	}
	wr.grid = nil
	wr.uploaded = false
	wr.displacedAt = 0
}

func (wr *waterRenderer) destroy() {
	wr.unload()
	if wr.program != 0 {
		gl.DeleteProgram(wr.program)
		wr.program = 0
	}
}

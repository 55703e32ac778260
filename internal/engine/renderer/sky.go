package renderer

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/Faultbox/harbor-view/internal/engine/renderer/shaders"
	"github.com/Faultbox/harbor-view/internal/engine/shader"
	"github.com/Faultbox/harbor-view/internal/harbor/scene"
	"github.com/Faultbox/harbor-view/pkg/math"
)

// skyRenderer fills the background with the environment gradient.
type skyRenderer struct {
	program  uint32
	uniforms *shader.Uniforms
	// Core profile needs a bound VAO even without attributes.
	vao uint32
}

func newSkyRenderer() (*skyRenderer, error) {
	program, err := shader.CompileProgram(shaders.SkyVertexShader, shaders.SkyFragmentShader)
	if err != nil {
		return nil, fmt.Errorf("sky shader: %w", err)
	}
	sr := &skyRenderer{
		program:  program,
		uniforms: shader.Locate(program, "uInvViewProj", "uCameraPos", "uSkyTop", "uSkyHorizon"),
	}
	gl.GenVertexArrays(1, &sr.vao)
	return sr, nil
}

func (sr *skyRenderer) render(ps passState, env scene.Environment) {
	gl.UseProgram(sr.program)
	sr.uniforms.Mat4("uInvViewProj", ps.viewProj.Inverse())
	sr.uniforms.Vec3("uCameraPos", ps.cameraPos)
	sr.uniforms.Color("uSkyTop", env.SkyTop)
	sr.uniforms.Color("uSkyHorizon", env.SkyHorizon)

	gl.Disable(gl.DEPTH_TEST)
	gl.DepthMask(false)
	gl.BindVertexArray(sr.vao)
	gl.DrawArrays(gl.TRIANGLES, 0, 3)
	gl.BindVertexArray(0)
	gl.DepthMask(true)
	gl.Enable(gl.DEPTH_TEST)
}

func (sr *skyRenderer) destroy() {
	if sr.vao != 0 {
		gl.DeleteVertexArrays(1, &sr.vao)
		sr.vao = 0
	}
	if sr.program != 0 {
		gl.DeleteProgram(sr.program)
		sr.program = 0
	}
}

// skyClear is the clear color behind the sky, used if the sky pass is
// skipped.
func skyClear(env scene.Environment) math.Color {
	return env.SkyHorizon
}

package renderer

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/Faultbox/harbor-view/internal/engine/lighting"
	"github.com/Faultbox/harbor-view/internal/engine/renderer/shaders"
	"github.com/Faultbox/harbor-view/internal/engine/shader"
	"github.com/Faultbox/harbor-view/internal/engine/shadow"
	"github.com/Faultbox/harbor-view/internal/harbor/scene"
	"github.com/Faultbox/harbor-view/pkg/math"
)

// passState is what every pass of one frame shares.
type passState struct {
	viewProj      math.Mat4
	cameraPos     math.Vec3
	lightViewProj math.Mat4
	shadows       bool
	// worlds holds the world transform of every scene node.
	worlds []math.Mat4
}

// solidRenderer draws every node with the lit, shadowed solid program.
type solidRenderer struct {
	program  uint32
	uniforms *shader.Uniforms
}

func newSolidRenderer() (*solidRenderer, error) {
	program, err := shader.CompileProgram(shaders.SolidVertexShader, shaders.SolidFragmentShader)
	if err != nil {
		return nil, fmt.Errorf("solid shader: %w", err)
	}
	return &solidRenderer{
		program: program,
		uniforms: shader.Locate(program,
			"uViewProj", "uModel", "uNormalMatrix", "uLightViewProj",
			"uColor", "uRoughness", "uMetalness", "uEmissive",
			"uAmbient", "uLightDir", "uLightColor", "uCameraPos",
			"uShadowsEnabled", "uShadowMap",
			"uPointLightCount", "uPointLightPositions", "uPointLightColors", "uPointLightRanges",
			"uFogColor", "uFogNear", "uFogFar"),
	}, nil
}

func (sr *solidRenderer) render(ps passState, s *scene.Scene, meshes []*mesh, points *lighting.PointLightBuffer, shadowMap *shadow.Map) {
	u := sr.uniforms
	gl.UseProgram(sr.program)

	u.Mat4("uViewProj", ps.viewProj)
	u.Mat4("uLightViewProj", ps.lightViewProj)
	u.Vec3("uCameraPos", ps.cameraPos)

	rig := s.Lights
	u.Color("uAmbient", rig.Ambient.Color.Scale(rig.Ambient.Intensity))
	u.Vec3("uLightDir", rig.Directional.Direction())
	u.Color("uLightColor", rig.Directional.Color.Scale(rig.Directional.Intensity))

	u.Bool("uShadowsEnabled", ps.shadows)
	u.Int("uShadowMap", 1)
	if ps.shadows {
		shadowMap.BindTexture(gl.TEXTURE1)
	}

	u.Int("uPointLightCount", int32(points.Count))
	u.Vec3Array("uPointLightPositions", points.Positions())
	u.Vec3Array("uPointLightColors", points.Colors())
	u.FloatArray("uPointLightRanges", points.Ranges())

	env := s.Environment
	u.Color("uFogColor", env.FogColor)
	u.Float("uFogNear", env.FogNear)
	u.Float("uFogFar", env.FogFar)

	current := scene.MaterialHandle(-1)
	for i, n := range s.Nodes {
		if n.Material != current {
			current = n.Material
			mat := s.Material(current)
			u.Color("uColor", mat.Color)
			u.Float("uRoughness", mat.Roughness)
			u.Float("uMetalness", mat.Metalness)
			u.Float("uEmissive", mat.Emissive)
		}
		world := ps.worlds[i]
		u.Mat4("uModel", world)
		u.Mat4("uNormalMatrix", world.NormalMatrix())
		meshes[n.Geometry].draw()
	}
	gl.BindVertexArray(0)
}

func (sr *solidRenderer) destroy() {
	if sr.program != 0 {
		gl.DeleteProgram(sr.program)
		sr.program = 0
	}
}

// shadowRenderer fills the directional light's depth map.
type shadowRenderer struct {
	program  uint32
	uniforms *shader.Uniforms
	shadows  *shadow.Map
}

func newShadowRenderer(resolution int) (*shadowRenderer, error) {
	program, err := shader.CompileProgram(shaders.ShadowVertexShader, shaders.ShadowFragmentShader)
	if err != nil {
		return nil, fmt.Errorf("shadow shader: %w", err)
	}
	sm, err := shadow.NewMap(resolution)
	if err != nil {
		gl.DeleteProgram(program)
		return nil, err
	}
	return &shadowRenderer{
		program:  program,
		uniforms: shader.Locate(program, "uLightViewProj", "uModel"),
		shadows:  sm,
	}, nil
}

func (sh *shadowRenderer) render(ps passState, s *scene.Scene, meshes []*mesh) {
	restore := sh.shadows.Bind()
	gl.UseProgram(sh.program)
	sh.uniforms.Mat4("uLightViewProj", ps.lightViewProj)

	for i, n := range s.Nodes {
		if !n.CastShadow {
			continue
		}
		sh.uniforms.Mat4("uModel", ps.worlds[i])
		meshes[n.Geometry].draw()
	}
	gl.BindVertexArray(0)
	restore()
}

func (sh *shadowRenderer) destroy() {
	if sh.program != 0 {
		gl.DeleteProgram(sh.program)
		sh.program = 0
	}
	sh.shadows.Destroy()
}

// Package shadow renders the depth map of the directional light and
// computes the light's view-projection.
package shadow

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"
)

// Depth map sizes, in texels per side.
const (
	DefaultResolution = 2048
	MinResolution     = 256
	MaxResolution     = 8192
)

// ClampResolution maps a configured shadow resolution onto a usable depth
// map size. Non-positive values select DefaultResolution. Others are clamped
// to [MinResolution, MaxResolution] and rounded down to a power of two.
func ClampResolution(configured int) int32 {
	if configured <= 0 {
		return DefaultResolution
	}
	r := int32(MinResolution)
	for r*2 <= int32(min(configured, MaxResolution)) {
		r *= 2
	}
	return r
}

// Map is the depth-only framebuffer the harbor's sun renders into. It is
// sampled with sampler2DShadow comparisons in the solid pass.
type Map struct {
	fbo        uint32
	depth      uint32
	resolution int32
}

// NewMap allocates a depth map of ClampResolution(resolution) texels.
func NewMap(resolution int) (*Map, error) {
	sm := &Map{resolution: ClampResolution(resolution)}

	gl.GenFramebuffers(1, &sm.fbo)
	gl.BindFramebuffer(gl.FRAMEBUFFER, sm.fbo)

	gl.GenTextures(1, &sm.depth)
	gl.BindTexture(gl.TEXTURE_2D, sm.depth)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.DEPTH_COMPONENT24,
		sm.resolution, sm.resolution, 0, gl.DEPTH_COMPONENT, gl.FLOAT, nil)

	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)

	// Outside the swept harbor box everything is lit.
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_BORDER)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_BORDER)
	lit := [4]float32{1, 1, 1, 1}
	gl.TexParameterfv(gl.TEXTURE_2D, gl.TEXTURE_BORDER_COLOR, &lit[0])

	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_COMPARE_MODE, gl.COMPARE_REF_TO_TEXTURE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_COMPARE_FUNC, gl.LEQUAL)

	gl.FramebufferTexture2D(gl.FRAMEBUFFER, gl.DEPTH_ATTACHMENT, gl.TEXTURE_2D, sm.depth, 0)
	gl.DrawBuffer(gl.NONE)
	gl.ReadBuffer(gl.NONE)

	status := gl.CheckFramebufferStatus(gl.FRAMEBUFFER)
	gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
	gl.BindTexture(gl.TEXTURE_2D, 0)
	if status != gl.FRAMEBUFFER_COMPLETE {
		sm.Destroy()
		return nil, fmt.Errorf("shadow framebuffer incomplete: 0x%x", status)
	}
	return sm, nil
}

// Resolution returns the depth map size in texels per side.
func (sm *Map) Resolution() int32 {
	return sm.resolution
}

// Bind targets the depth map for the shadow pass and returns a function
// that restores the previous framebuffer, viewport and culling.
func (sm *Map) Bind() (restore func()) {
	var prevFBO int32
	var prevViewport [4]int32
	gl.GetIntegerv(gl.FRAMEBUFFER_BINDING, &prevFBO)
	gl.GetIntegerv(gl.VIEWPORT, &prevViewport[0])

	gl.BindFramebuffer(gl.FRAMEBUFFER, sm.fbo)
	gl.Viewport(0, 0, sm.resolution, sm.resolution)
	gl.Clear(gl.DEPTH_BUFFER_BIT)
	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LESS)

	// Front-face culling keeps acne off lit faces of closed solids.
	gl.Enable(gl.CULL_FACE)
	gl.CullFace(gl.FRONT)

	return func() {
		gl.BindFramebuffer(gl.FRAMEBUFFER, uint32(prevFBO))
		gl.Viewport(prevViewport[0], prevViewport[1], prevViewport[2], prevViewport[3])
		gl.CullFace(gl.BACK)
	}
}

// BindTexture binds the depth texture to a texture unit such as gl.TEXTURE1.
func (sm *Map) BindTexture(unit uint32) {
	gl.ActiveTexture(unit)
	gl.BindTexture(gl.TEXTURE_2D, sm.depth)
}

// Destroy releases the framebuffer and depth texture.
func (sm *Map) Destroy() {
	if sm.fbo != 0 {
		gl.DeleteFramebuffers(1, &sm.fbo)
		sm.fbo = 0
	}
	if sm.depth != 0 {
		gl.DeleteTextures(1, &sm.depth)
		sm.depth = 0
	}
}

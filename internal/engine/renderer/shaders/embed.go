// Package shaders embeds the GLSL programs used by the renderer.
package shaders

import _ "embed"

//go:embed solid.vert
var SolidVertexShader string

//go:embed solid.frag
var SolidFragmentShader string

//go:embed water.vert
var WaterVertexShader string

//go:embed water.frag
var WaterFragmentShader string

//go:embed shadow.vert
var ShadowVertexShader string

//go:embed shadow.frag
var ShadowFragmentShader string

//go:embed sky.vert
var SkyVertexShader string

//go:embed sky.frag
var SkyFragmentShader string

//go:embed label.vert
var LabelVertexShader string

//go:embed label.frag
var LabelFragmentShader string

//go:embed lines.vert
var LinesVertexShader string

//go:embed lines.frag
var LinesFragmentShader string

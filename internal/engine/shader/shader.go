// Package shader compiles GLSL programs and uploads uniforms.
package shader

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/Faultbox/harbor-view/pkg/math"
)

// CompileProgram compiles vertex and fragment shaders and links them into a program.
// Returns the program ID or an error if compilation/linking fails.
func CompileProgram(vertexSrc, fragmentSrc string) (uint32, error) {
	vertShader, err := compileShader(vertexSrc, gl.VERTEX_SHADER, "vertex")
	if err != nil {
		return 0, err
	}
	defer gl.DeleteShader(vertShader)

	fragShader, err := compileShader(fragmentSrc, gl.FRAGMENT_SHADER, "fragment")
	if err != nil {
		return 0, err
	}
	defer gl.DeleteShader(fragShader)

	program := gl.CreateProgram()
	gl.AttachShader(program, vertShader)
	gl.AttachShader(program, fragShader)
	gl.LinkProgram(program)

	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLen int32
		gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &logLen)
		log := make([]byte, logLen+1)
		gl.GetProgramInfoLog(program, logLen, nil, &log[0])
		gl.DeleteProgram(program)
		return 0, fmt.Errorf("link: %s", string(log))
	}

	return program, nil
}

func compileShader(source string, shaderType uint32, name string) (uint32, error) {
	shader := gl.CreateShader(shaderType)
	csource, free := gl.Strs(source + "\x00")
	gl.ShaderSource(shader, 1, csource, nil)
	free()
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLen int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLen)
		log := make([]byte, logLen+1)
		gl.GetShaderInfoLog(shader, logLen, nil, &log[0])
		gl.DeleteShader(shader)
		return 0, fmt.Errorf("%s shader: %s", name, string(log))
	}

	return shader, nil
}

// Uniforms caches uniform locations of one program by name. Names the
// driver optimized out resolve to -1, which GL silently ignores on upload.
type Uniforms struct {
	program uint32
	locs    map[string]int32
}

// Locate looks up the given uniforms of a program.
func Locate(program uint32, names ...string) *Uniforms {
	u := &Uniforms{program: program, locs: make(map[string]int32, len(names))}
	for _, n := range names {
		u.locs[n] = gl.GetUniformLocation(program, gl.Str(n+"\x00"))
	}
	return u
}

// Loc returns a cached location, looking it up on first use.
func (u *Uniforms) Loc(name string) int32 {
	if loc, ok := u.locs[name]; ok {
		return loc
	}
	loc := gl.GetUniformLocation(u.program, gl.Str(name+"\x00"))
	u.locs[name] = loc
	return loc
}

// Mat4 uploads a matrix.
func (u *Uniforms) Mat4(name string, m math.Mat4) {
	gl.UniformMatrix4fv(u.Loc(name), 1, false, &m[0])
}

// Vec3 uploads a vector.
func (u *Uniforms) Vec3(name string, v math.Vec3) {
	gl.Uniform3f(u.Loc(name), v.X, v.Y, v.Z)
}

// Color uploads a color as vec3.
func (u *Uniforms) Color(name string, c math.Color) {
	gl.Uniform3f(u.Loc(name), c.R, c.G, c.B)
}

// Float uploads a float.
func (u *Uniforms) Float(name string, f float32) {
	gl.Uniform1f(u.Loc(name), f)
}

// Int uploads an int or sampler unit.
func (u *Uniforms) Int(name string, i int32) {
	gl.Uniform1i(u.Loc(name), i)
}

// Bool uploads a bool.
func (u *Uniforms) Bool(name string, b bool) {
	var i int32
	if b {
		i = 1
	}
	gl.Uniform1i(u.Loc(name), i)
}

// Vec3Array uploads a flat [x0 y0 z0 x1 ...] array.
func (u *Uniforms) Vec3Array(name string, values []float32) {
	if len(values) < 3 {
		return
	}
	gl.Uniform3fv(u.Loc(name), int32(len(values)/3), &values[0])
}

// FloatArray uploads a float array.
func (u *Uniforms) FloatArray(name string, values []float32) {
	if len(values) == 0 {
		return
	}
	gl.Uniform1fv(u.Loc(name), int32(len(values)), &values[0])
}

// Package shader provides OpenGL shader compilation utilities.
package shader

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"
)

// Program is a linked GL shader program.
type Program struct {
	ID uint32
}

// Compile compiles vertex and fragment sources and links them into a program.
func Compile(vertexSrc, fragmentSrc string) (*Program, error) {
	vertShader, err := compileShader(vertexSrc, gl.VERTEX_SHADER, "vertex")
	if err != nil {
		return nil, err
	}
	defer gl.DeleteShader(vertShader)

	fragShader, err := compileShader(fragmentSrc, gl.FRAGMENT_SHADER, "fragment")
	if err != nil {
		return nil, err
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
		log := make([]byte, logLen)
		gl.GetProgramInfoLog(program, logLen, nil, &log[0])
		gl.DeleteProgram(program)
		return nil, fmt.Errorf("link: %s", string(log))
	}

	return &Program{ID: program}, nil
}

// compileShader compiles a single shader of the given type.
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
		log := make([]byte, logLen)
		gl.GetShaderInfoLog(shader, logLen, nil, &log[0])
		gl.DeleteShader(shader)
		return 0, fmt.Errorf("%s shader: %s", name, string(log))
	}

	return shader, nil
}

// Use makes this program current.
func (p *Program) Use() {
	gl.UseProgram(p.ID)
}

// Delete releases the program.
func (p *Program) Delete() {
	if p.ID != 0 {
		gl.DeleteProgram(p.ID)
		p.ID = 0
	}
}

// Uniform returns the uniform location for the given name.
// Returns -1 if the uniform is not found or inactive.
func (p *Program) Uniform(name string) int32 {
	return gl.GetUniformLocation(p.ID, gl.Str(name+"\x00"))
}

// MustUniform returns the uniform location for the given name.
// Panics if the uniform is not found (useful for required uniforms).
func (p *Program) MustUniform(name string) int32 {
	loc := p.Uniform(name)
	if loc < 0 {
		panic(fmt.Sprintf("uniform %q not found in program %d", name, p.ID))
	}
	return loc
}

// SetMat4 uploads a 16-element column-major matrix.
func SetMat4(loc int32, m *float32) {
	gl.UniformMatrix4fv(loc, 1, false, m)
}

// SetVec3 uploads a 3-component vector uniform.
func SetVec3(loc int32, v [3]float32) {
	gl.Uniform3f(loc, v[0], v[1], v[2])
}

// SetVec4 uploads a 4-component vector uniform.
func SetVec4(loc int32, v [4]float32) {
	gl.Uniform4f(loc, v[0], v[1], v[2], v[3])
}

// SetFloat uploads a scalar float uniform.
func SetFloat(loc int32, f float32) {
	gl.Uniform1f(loc, f)
}

// SetInt uploads a scalar int uniform.
func SetInt(loc int32, i int32) {
	gl.Uniform1i(loc, i)
}

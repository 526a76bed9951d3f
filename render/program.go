package render

import (
	"fmt"
	"os"
	"strings"

	"github.com/go-gl/gl/v3.3-core/gl"
	"github.com/go-gl/mathgl/mgl32"
)

// Program is a linked vertex + fragment shader pair.
type Program struct {
	handle   uint32
	uniforms map[string]int32
}

// NewProgram compiles and links the two shader sources. Intermediate
// shader objects are deleted on every path.
func NewProgram(vertexShaderSource, fragmentShaderSource string) (*Program, error) {

	vertexShader, err := compileShader(vertexShaderSource, gl.VERTEX_SHADER)
	if err != nil {
		return nil, err
	}
	defer gl.DeleteShader(vertexShader)

	fragmentShader, err := compileShader(fragmentShaderSource, gl.FRAGMENT_SHADER)
	if err != nil {
		return nil, err
	}
	defer gl.DeleteShader(fragmentShader)

	program := gl.CreateProgram()

	gl.AttachShader(program, vertexShader)
	gl.AttachShader(program, fragmentShader)
	gl.LinkProgram(program)

	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	if status == gl.FALSE {

		var logLength int32
		gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &logLength)

		log := strings.Repeat("\x00", int(logLength+1))
		gl.GetProgramInfoLog(program, logLength, nil, gl.Str(log))

		gl.DeleteProgram(program)
		return nil, fmt.Errorf("failed to link program: %v", strings.TrimRight(log, "\x00"))

	}

	gl.DetachShader(program, vertexShader)
	gl.DetachShader(program, fragmentShader)

	return &Program{handle: program, uniforms: map[string]int32{}}, nil

}

// LoadProgram reads shader sources from files; an empty path selects the
// built-in source for that stage.
func LoadProgram(vertexPath, fragmentPath string) (*Program, error) {
	vs, err := readShader(vertexPath, defaultVertexShader)
	if err != nil {
		return nil, err
	}
	fs, err := readShader(fragmentPath, defaultFragmentShader)
	if err != nil {
		return nil, err
	}
	return NewProgram(vs, fs)
}

func readShader(path, fallback string) (string, error) {
	if path == "" {
		return fallback, nil
	}
	src, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read shader: %w", err)
	}
	return string(src) + "\x00", nil
}

func compileShader(source string, shaderType uint32) (uint32, error) {

	shader := gl.CreateShader(shaderType)

	csources, free := gl.Strs(source)
	gl.ShaderSource(shader, 1, csources, nil)
	free()
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {

		var logLength int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLength)

		log := strings.Repeat("\x00", int(logLength+1))
		gl.GetShaderInfoLog(shader, logLength, nil, gl.Str(log))

		gl.DeleteShader(shader)
		return 0, fmt.Errorf("failed to compile %s shader: %v", shaderStage(shaderType), strings.TrimRight(log, "\x00"))

	}

	return shader, nil

}

func shaderStage(shaderType uint32) string {
	switch shaderType {
	case gl.VERTEX_SHADER:
		return "vertex"
	case gl.FRAGMENT_SHADER:
		return "fragment"
	default:
		return "unknown"
	}
}

// Use binds the program.
func (p *Program) Use() {
	gl.UseProgram(p.handle)
}

// Uniform returns the cached location of a uniform, -1 if the program
// does not use it.
func (p *Program) Uniform(name string) int32 {
	if loc, ok := p.uniforms[name]; ok {
		return loc
	}
	loc := gl.GetUniformLocation(p.handle, gl.Str(name+"\x00"))
	p.uniforms[name] = loc
	return loc
}

// SetMat4 uploads a matrix uniform. The program must be bound.
func (p *Program) SetMat4(name string, m mgl32.Mat4) {
	if loc := p.Uniform(name); loc >= 0 {
		gl.UniformMatrix4fv(loc, 1, false, &m[0])
	}
}

// SetInt uploads an integer uniform. The program must be bound.
func (p *Program) SetInt(name string, v int32) {
	if loc := p.Uniform(name); loc >= 0 {
		gl.Uniform1i(loc, v)
	}
}

// Release deletes the program. Safe on nil and on repeated calls.
func (p *Program) Release() {
	if p == nil || p.handle == 0 {
		return
	}
	gl.DeleteProgram(p.handle)
	p.handle = 0
}

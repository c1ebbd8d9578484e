package openglhelper

import (
	"fmt"
	"strings"

	"github.com/go-gl/gl/v4.6-core/gl"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/leterax/go-fpcam/pkg/camera"
)

var _ camera.MatrixUniform = &Mat4Uniform{}

// Shader represents an OpenGL shader program
type Shader struct {
	ID uint32
}

// NewShader compiles and links a program from vertex and fragment sources.
func NewShader(vertexSource, fragmentSource string) (*Shader, error) {
	vs, err := compileShader(vertexSource, gl.VERTEX_SHADER)
	if err != nil {
		return nil, fmt.Errorf("vertex shader: %w", err)
	}
	defer gl.DeleteShader(vs)

	fs, err := compileShader(fragmentSource, gl.FRAGMENT_SHADER)
	if err != nil {
		return nil, fmt.Errorf("fragment shader: %w", err)
	}
	defer gl.DeleteShader(fs)

	program := gl.CreateProgram()
	gl.AttachShader(program, vs)
	gl.AttachShader(program, fs)
	gl.LinkProgram(program)

	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		msg := infoLog(program, gl.GetProgramiv, gl.GetProgramInfoLog)
		gl.DeleteProgram(program)
		return nil, fmt.Errorf("link: %s", msg)
	}

	return &Shader{ID: program}, nil
}

func compileShader(source string, stage uint32) (uint32, error) {
	shader := gl.CreateShader(stage)
	src, free := gl.Strs(source + "\x00")
	gl.ShaderSource(shader, 1, src, nil)
	free()
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		msg := infoLog(shader, gl.GetShaderiv, gl.GetShaderInfoLog)
		gl.DeleteShader(shader)
		return 0, fmt.Errorf("compile: %s", msg)
	}
	return shader, nil
}

// infoLog reads the compile or link log of a shader or program object.
func infoLog(object uint32, param func(uint32, uint32, *int32), read func(uint32, int32, *int32, *uint8)) string {
	var length int32
	param(object, gl.INFO_LOG_LENGTH, &length)

	buf := strings.Repeat("\x00", int(length+1))
	read(object, length, nil, gl.Str(buf))
	return strings.TrimRight(buf, "\x00\n")
}

// Use activates the shader program
func (s *Shader) Use() {
	gl.UseProgram(s.ID)
}

// Delete releases the shader program
func (s *Shader) Delete() {
	gl.DeleteProgram(s.ID)
}

// SetVec3 sets a vec3 uniform
func (s *Shader) SetVec3(name string, vec mgl32.Vec3) {
	gl.Uniform3f(s.location(name), vec[0], vec[1], vec[2])
}

func (s *Shader) location(name string) int32 {
	return gl.GetUniformLocation(s.ID, gl.Str(name+"\x00"))
}

// Mat4Uniform is a mat4 uniform slot of a shader program. It satisfies
// camera.MatrixUniform so cameras can upload into it directly.
type Mat4Uniform struct {
	location int32
}

// Mat4Uniform looks up the named mat4 uniform once.
func (s *Shader) Mat4Uniform(name string) *Mat4Uniform {
	return &Mat4Uniform{location: s.location(name)}
}

// Upload sets the uniform on the program, which must be in use.
func (u *Mat4Uniform) Upload(m mgl32.Mat4) {
	if u.location < 0 {
		return
	}
	gl.UniformMatrix4fv(u.location, 1, false, &m[0])
}

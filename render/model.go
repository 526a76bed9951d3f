package render

import (
	"github.com/go-gl/gl/v3.3-core/gl"
	"github.com/go-gl/mathgl/mgl32"
)

// Model draws one mesh with one program and an optional texture. It
// satisfies scene.Renderable.
type Model struct {
	name    string
	program *Program
	buffer  *Buffer
	texture *Texture // nil draws the untextured fallback

	projection mgl32.Mat4
}

// Render uploads the model and view matrices and draws.
func (m *Model) Render(model, view mgl32.Mat4) {
	if m.program == nil || m.buffer == nil {
		return
	}

	m.program.Use()
	m.program.SetMat4("model", model)
	m.program.SetMat4("view", view)

	if m.texture != nil {
		m.texture.Bind(0)
		m.program.SetInt("surface", 0)
		m.program.SetInt("hasSurface", 1)
	} else {
		m.program.SetInt("hasSurface", 0)
	}

	m.buffer.Draw()

	gl.BindTexture(gl.TEXTURE_2D, 0)
	gl.UseProgram(0)
}

// SetProjection uploads a new projection matrix, e.g. after a resize.
func (m *Model) SetProjection(p mgl32.Mat4) {
	m.projection = p
	if m.program == nil {
		return
	}
	m.program.Use()
	m.program.SetMat4("projection", p)
	gl.UseProgram(0)
}

// swapProgram replaces the program, keeping the projection.
func (m *Model) swapProgram(p *Program) {
	m.program.Release()
	m.program = p
	m.SetProjection(m.projection)
}

func (m *Model) Name() string { return m.name }

// Release frees the program, buffers and texture. Safe on repeated calls.
func (m *Model) Release() {
	m.program.Release()
	m.buffer.Release()
	m.texture.Release()
	m.program, m.buffer, m.texture = nil, nil, nil
}

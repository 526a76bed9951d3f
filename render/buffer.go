package render

import (
	"github.com/go-gl/gl/v3.3-core/gl"

	"github.com/paperboard/solarsystem/mesh"
)

const bytesFloat32 = 4 // a float32 is 4 bytes

// Buffer is a vertex array object plus the vertex buffer it reads from.
type Buffer struct {
	vao         uint32 // vertex attribute layout
	vbo         uint32 // interleaved position, texture coordinate, normal
	vertexCount int32
}

// NewBuffer uploads an interleaved mesh.
//
//	| x y z | u v | nx ny nz |   <- one vertex, mesh.VertexSize floats
func NewBuffer(m *mesh.Mesh) *Buffer {
	b := &Buffer{vertexCount: int32(m.VertexCount())}
	stride := int32(mesh.VertexSize * bytesFloat32)

	gl.GenVertexArrays(1, &b.vao)
	gl.GenBuffers(1, &b.vbo)

	gl.BindVertexArray(b.vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, b.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(m.Vertices)*bytesFloat32, gl.Ptr(m.Vertices), gl.STATIC_DRAW)

	// vertex position
	gl.VertexAttribPointer(0, mesh.PositionSize, gl.FLOAT, false, stride, gl.PtrOffset(0))
	gl.EnableVertexAttribArray(0)

	// texture coordinate, after position
	gl.VertexAttribPointer(1, mesh.TexCoordSize, gl.FLOAT, false, stride, gl.PtrOffset(mesh.PositionSize*bytesFloat32))
	gl.EnableVertexAttribArray(1)

	// normal, after texture coordinate
	gl.VertexAttribPointer(2, mesh.NormalSize, gl.FLOAT, false, stride, gl.PtrOffset((mesh.PositionSize+mesh.TexCoordSize)*bytesFloat32))
	gl.EnableVertexAttribArray(2)

	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	gl.BindVertexArray(0)

	return b
}

// Draw issues the triangle list.
func (b *Buffer) Draw() {
	gl.BindVertexArray(b.vao)
	gl.DrawArrays(gl.TRIANGLES, 0, b.vertexCount)
	gl.BindVertexArray(0)
}

// Release deletes the buffers. Safe on nil and on repeated calls.
func (b *Buffer) Release() {
	if b == nil {
		return
	}
	if b.vao != 0 {
		gl.DeleteVertexArrays(1, &b.vao)
		b.vao = 0
	}
	if b.vbo != 0 {
		gl.DeleteBuffers(1, &b.vbo)
		b.vbo = 0
	}
}

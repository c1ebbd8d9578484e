package openglhelper

import (
	"github.com/go-gl/gl/v4.6-core/gl"
	"github.com/go-gl/mathgl/mgl32"
)

// Mesh is an indexed triangle mesh with interleaved position (3), normal (3)
// and texture coordinate (2) attributes.
type Mesh struct {
	vao        *VertexArrayObject
	vbo        *BufferObject
	ebo        *BufferObject
	indexCount int32
}

const vertexStride = 8 * 4

// NewMesh uploads vertices and indices into a new VAO.
func NewMesh(vertices []float32, indices []uint32) *Mesh {
	vao := NewVAO()
	vao.Bind()

	vbo := NewVBO(vertices)
	ebo := NewEBO(indices)

	vao.SetVertexAttribPointer(0, 3, gl.FLOAT, false, vertexStride, 0)
	vao.SetVertexAttribPointer(1, 3, gl.FLOAT, false, vertexStride, 3*4)
	vao.SetVertexAttribPointer(2, 2, gl.FLOAT, false, vertexStride, 6*4)

	vao.Unbind()

	return &Mesh{
		vao:        vao,
		vbo:        vbo,
		ebo:        ebo,
		indexCount: int32(len(indices)),
	}
}

// Draw renders the mesh with the shader program currently in use.
func (m *Mesh) Draw() {
	m.vao.Bind()
	gl.DrawElements(gl.TRIANGLES, m.indexCount, gl.UNSIGNED_INT, nil)
	m.vao.Unbind()
}

// Delete releases all resources
func (m *Mesh) Delete() {
	m.vao.Delete()
	m.vbo.Delete()
	m.ebo.Delete()
}

// NewCube creates a cube with the given edge length centered on the origin.
func NewCube(size float32) *Mesh {
	// normal, then two in-face axes with u x v == normal
	faces := [6][3]mgl32.Vec3{
		{{0, 0, 1}, {1, 0, 0}, {0, 1, 0}},
		{{0, 0, -1}, {-1, 0, 0}, {0, 1, 0}},
		{{1, 0, 0}, {0, 0, -1}, {0, 1, 0}},
		{{-1, 0, 0}, {0, 0, 1}, {0, 1, 0}},
		{{0, 1, 0}, {1, 0, 0}, {0, 0, -1}},
		{{0, -1, 0}, {1, 0, 0}, {0, 0, 1}},
	}
	corners := [4]mgl32.Vec2{{0, 0}, {1, 0}, {1, 1}, {0, 1}}
	half := size / 2

	vertices := make([]float32, 0, 6*4*8)
	indices := make([]uint32, 0, 6*6)
	for i, f := range faces {
		n, u, v := f[0], f[1], f[2]
		for _, uv := range corners {
			p := n.Add(u.Mul(2*uv.X() - 1)).Add(v.Mul(2*uv.Y() - 1)).Mul(half)
			vertices = append(vertices, p.X(), p.Y(), p.Z(), n.X(), n.Y(), n.Z(), uv.X(), uv.Y())
		}
		base := uint32(i * 4)
		indices = append(indices, base, base+1, base+2, base+2, base+3, base)
	}

	return NewMesh(vertices, indices)
}

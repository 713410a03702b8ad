package scene

import (
	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/Faultbox/gltfview/pkg/gltf"
	"github.com/Faultbox/gltfview/pkg/math"
)

// Attribute locations shared with the vertex shader.
const (
	locPosition = 0
	locNormal   = 1
	locTexCoord = 2
	locTangent  = 3
)

// gpuMesh is one resolved mesh uploaded to the GPU.
type gpuMesh struct {
	vao     uint32
	vbos    []uint32
	ebo     uint32
	count   int32
	indexed bool
	idxType uint32
	world   math.Mat4

	baseColorTex uint32
	normalTex    uint32
	hasNormalMap bool
	ownTextures  []uint32

	baseColorFactor [4]float32
	metallic        float32
	roughness       float32
	normalScale     float32
	doubleSided     bool
}

// uploadMesh creates GPU buffers for one resolved mesh. Each vertex stream
// gets its own tightly packed VBO since the loader hands out independent
// byte slices.
func uploadMesh(data *gltf.MeshData) *gpuMesh {
	m := &gpuMesh{
		world:           data.World,
		baseColorFactor: [4]float32{1, 1, 1, 1},
		metallic:        1,
		roughness:       1,
		normalScale:     1,
	}

	gl.GenVertexArrays(1, &m.vao)
	gl.BindVertexArray(m.vao)

	bind := func(loc uint32, components int32, stream []byte) {
		if stream == nil {
			return
		}
		var vbo uint32
		gl.GenBuffers(1, &vbo)
		gl.BindBuffer(gl.ARRAY_BUFFER, vbo)
		gl.BufferData(gl.ARRAY_BUFFER, len(stream), gl.Ptr(stream), gl.STATIC_DRAW)
		gl.VertexAttribPointerWithOffset(loc, components, gl.FLOAT, false, 0, 0)
		gl.EnableVertexAttribArray(loc)
		m.vbos = append(m.vbos, vbo)
	}

	bind(locPosition, 3, data.Streams.Position)
	bind(locNormal, 3, data.Streams.Normal)
	bind(locTexCoord, 2, data.Streams.TexCoord0)
	bind(locTangent, 4, data.Streams.Tangent)

	if data.Indices != nil {
		gl.GenBuffers(1, &m.ebo)
		gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, m.ebo)
		gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(data.Indices.Data), gl.Ptr(data.Indices.Data), gl.STATIC_DRAW)

		m.indexed = true
		m.count = int32(data.Indices.Count)
		m.idxType = gl.UNSIGNED_INT
		if data.Indices.Format == gltf.Index16 {
			m.idxType = gl.UNSIGNED_SHORT
		}
	} else {
		m.count = int32(data.VertexCount)
	}

	gl.BindVertexArray(0)
	return m
}

// draw issues the draw call for this mesh. The caller has already bound the
// program and per-mesh uniforms.
func (m *gpuMesh) draw() {
	gl.BindVertexArray(m.vao)
	if m.indexed {
		gl.DrawElements(gl.TRIANGLES, m.count, m.idxType, nil)
	} else {
		gl.DrawArrays(gl.TRIANGLES, 0, m.count)
	}
}

// destroy releases the mesh's GPU resources.
func (m *gpuMesh) destroy() {
	if m.vao != 0 {
		gl.DeleteVertexArrays(1, &m.vao)
	}
	for _, vbo := range m.vbos {
		gl.DeleteBuffers(1, &vbo)
	}
	if m.ebo != 0 {
		gl.DeleteBuffers(1, &m.ebo)
	}
	for _, tex := range m.ownTextures {
		gl.DeleteTextures(1, &tex)
	}
}

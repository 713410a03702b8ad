package gltf

import (
	"fmt"

	"github.com/Faultbox/gltfview/pkg/math"
)

// MeshData is the resolved, GPU-ready description of one node's mesh:
// vertex streams, optional index stream and the node's world transform.
// All byte slices borrow the session's raw buffers except a synthesized
// tangent stream, which is freshly allocated.
type MeshData struct {
	Name        string
	Streams     VertexStreams
	VertexCount int
	Indices     *IndexSlice
	World       math.Mat4
	Material    int // material index, -1 when the primitive has none

	// TangentsSynthesized is set when the TANGENT stream was generated from
	// positions and UVs rather than read from the document.
	TangentsSynthesized bool
}

// ResolveMesh resolves the mesh attached to the given node into a MeshData.
// Only primitive 0 of the mesh is read; additional primitives are a known
// scope boundary of this loader. When the document supplies no TANGENT
// attribute but the primitive has UVs, tangents are synthesized from the
// triangle geometry.
func (s *Session) ResolveMesh(nodeIndex int) (*MeshData, error) {
	if nodeIndex < 0 || nodeIndex >= len(s.Doc.Nodes) {
		return nil, fmt.Errorf("%w: node index %d", ErrOutOfRange, nodeIndex)
	}
	node := &s.Doc.Nodes[nodeIndex]
	if node.Mesh == nil {
		return nil, fmt.Errorf("node %d has no mesh", nodeIndex)
	}
	if *node.Mesh < 0 || *node.Mesh >= len(s.Doc.Meshes) {
		return nil, fmt.Errorf("%w: mesh index %d", ErrOutOfRange, *node.Mesh)
	}
	mesh := &s.Doc.Meshes[*node.Mesh]
	if len(mesh.Primitives) == 0 {
		return nil, fmt.Errorf("mesh %d has no primitives", *node.Mesh)
	}
	prim := &mesh.Primitives[0]

	streams, vertexCount, err := s.VertexStreams(prim)
	if err != nil {
		return nil, fmt.Errorf("mesh %d: %w", *node.Mesh, err)
	}
	if streams.Position == nil {
		return nil, fmt.Errorf("mesh %d: %w", *node.Mesh, ErrMissingPosition)
	}

	indices, err := s.PrimitiveIndices(prim)
	if err != nil {
		return nil, fmt.Errorf("mesh %d: %w", *node.Mesh, err)
	}

	data := &MeshData{
		Name:        mesh.Name,
		Streams:     streams,
		VertexCount: vertexCount,
		Indices:     indices,
		World:       NodeWorldMatrix(node),
		Material:    -1,
	}
	if prim.Material != nil {
		data.Material = *prim.Material
	}

	if streams.Tangent == nil && streams.TexCoord0 != nil {
		positions := DecodeVec3Stream(streams.Position)
		uvs := DecodeVec2Stream(streams.TexCoord0)
		data.Streams.Tangent = EncodeVec4Stream(ComputeTangents(positions, uvs, indices))
		data.TangentsSynthesized = true
	}
	return data, nil
}

// ResolveMeshes resolves every mesh-carrying node reachable from the default
// scene. Each node resolves independently: a corrupt mesh fails its own
// entry without aborting the rest. The errs slice holds one error per failed
// node, wrapped with the node index.
func (s *Session) ResolveMeshes() (meshes []*MeshData, errs []error) {
	sceneIdx, ok := s.Doc.DefaultScene()
	if !ok {
		return nil, nil
	}

	visited := make(map[int]bool)
	var walk func(int)
	walk = func(ni int) {
		if ni < 0 || ni >= len(s.Doc.Nodes) || visited[ni] {
			return
		}
		visited[ni] = true
		node := &s.Doc.Nodes[ni]
		if node.Mesh != nil {
			mesh, err := s.ResolveMesh(ni)
			if err != nil {
				errs = append(errs, fmt.Errorf("node %d: %w", ni, err))
			} else {
				meshes = append(meshes, mesh)
			}
		}
		for _, child := range node.Children {
			walk(child)
		}
	}
	for _, root := range s.Doc.Scenes[sceneIdx].Nodes {
		walk(root)
	}
	return meshes, errs
}

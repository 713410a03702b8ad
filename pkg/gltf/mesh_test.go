package gltf

import (
	"bytes"
	"errors"
	gomath "math"
	"testing"
)

func TestResolveMesh_SynthesizesTangents(t *testing.T) {
	b := newDocBuilder()
	posIdx, uvIdx := b.unitTriangle()
	nodeIdx := b.addMeshNode(Primitive{
		Attributes: map[string]int{AttrPosition: posIdx, AttrTexCoord: uvIdx},
	})
	s := b.session()

	mesh, err := s.ResolveMesh(nodeIdx)
	if err != nil {
		t.Fatalf("ResolveMesh failed: %v", err)
	}
	if !mesh.TangentsSynthesized {
		t.Error("TangentsSynthesized should be set")
	}
	if mesh.VertexCount != 3 {
		t.Errorf("vertex count = %d, want 3", mesh.VertexCount)
	}
	tangents := mesh.Streams.Tangent
	if len(tangents) != 3*16 {
		t.Fatalf("tangent stream length = %d, want %d", len(tangents), 3*16)
	}
	first := DecodeVec3Stream(tangents[:12])[0]
	if gomath.Abs(float64(first.X-1)) > 1e-6 ||
		gomath.Abs(float64(first.Y)) > 1e-6 ||
		gomath.Abs(float64(first.Z)) > 1e-6 {
		t.Errorf("first synthesized tangent = %+v, want (1,0,0)", first)
	}
}

func TestResolveMesh_Deterministic(t *testing.T) {
	b := newDocBuilder()
	posIdx, uvIdx := b.unitTriangle()
	nodeIdx := b.addMeshNode(Primitive{
		Attributes: map[string]int{AttrPosition: posIdx, AttrTexCoord: uvIdx},
	})
	s := b.session()

	first, err := s.ResolveMesh(nodeIdx)
	if err != nil {
		t.Fatalf("first resolve failed: %v", err)
	}
	second, err := s.ResolveMesh(nodeIdx)
	if err != nil {
		t.Fatalf("second resolve failed: %v", err)
	}
	if !bytes.Equal(first.Streams.Tangent, second.Streams.Tangent) {
		t.Error("repeated resolves must produce bit-identical tangents")
	}
}

func TestResolveMesh_KeepsDocumentTangents(t *testing.T) {
	b := newDocBuilder()
	posIdx, uvIdx := b.unitTriangle()
	tangentIdx := b.addAccessor(f32bytes(
		0, 0, 1, -1,
		0, 0, 1, -1,
		0, 0, 1, -1,
	), TypeVec4, ComponentFloat, 3)
	nodeIdx := b.addMeshNode(Primitive{
		Attributes: map[string]int{
			AttrPosition: posIdx,
			AttrTexCoord: uvIdx,
			AttrTangent:  tangentIdx,
		},
	})
	s := b.session()

	mesh, err := s.ResolveMesh(nodeIdx)
	if err != nil {
		t.Fatalf("ResolveMesh failed: %v", err)
	}
	if mesh.TangentsSynthesized {
		t.Error("document tangents must not be replaced")
	}
	want := f32bytes(0, 0, 1, -1, 0, 0, 1, -1, 0, 0, 1, -1)
	if !bytes.Equal(mesh.Streams.Tangent, want) {
		t.Error("tangent stream does not match the document accessor")
	}
}

func TestResolveMesh_MissingPosition(t *testing.T) {
	b := newDocBuilder()
	uvIdx := b.addAccessor(f32bytes(0, 0, 1, 0, 0, 1), TypeVec2, ComponentFloat, 3)
	nodeIdx := b.addMeshNode(Primitive{
		Attributes: map[string]int{AttrTexCoord: uvIdx},
	})
	s := b.session()

	_, err := s.ResolveMesh(nodeIdx)
	if !errors.Is(err, ErrMissingPosition) {
		t.Errorf("expected ErrMissingPosition, got %v", err)
	}
}

func TestResolveMesh_FirstPrimitiveOnly(t *testing.T) {
	b := newDocBuilder()
	posIdx, _ := b.unitTriangle()
	otherIdx := b.addAccessor(f32bytes(
		0, 0, 5,
		1, 0, 5,
		0, 1, 5,
	), TypeVec3, ComponentFloat, 3)

	b.doc.Meshes = append(b.doc.Meshes, Mesh{Primitives: []Primitive{
		{Attributes: map[string]int{AttrPosition: posIdx}},
		{Attributes: map[string]int{AttrPosition: otherIdx}},
	}})
	b.doc.Nodes = append(b.doc.Nodes, Node{Mesh: intp(len(b.doc.Meshes) - 1)})
	nodeIdx := len(b.doc.Nodes) - 1
	s := b.session()

	mesh, err := s.ResolveMesh(nodeIdx)
	if err != nil {
		t.Fatalf("ResolveMesh failed: %v", err)
	}
	wantFirst := f32bytes(0, 0, 0, 1, 0, 0, 0, 1, 0)
	if !bytes.Equal(mesh.Streams.Position, wantFirst) {
		t.Error("expected positions from primitive 0, got a different stream")
	}
}

func TestResolveMesh_NoMesh(t *testing.T) {
	b := newDocBuilder()
	b.doc.Nodes = append(b.doc.Nodes, Node{})
	s := b.session()

	if _, err := s.ResolveMesh(0); err == nil {
		t.Error("expected error for node without mesh")
	}
	if _, err := s.ResolveMesh(99); !errors.Is(err, ErrOutOfRange) {
		t.Errorf("expected ErrOutOfRange for bad node index, got %v", err)
	}
}

func TestResolveMeshes_IndependentFailures(t *testing.T) {
	b := newDocBuilder()

	// Node 0: a valid triangle.
	posIdx, uvIdx := b.unitTriangle()
	b.addMeshNode(Primitive{
		Attributes: map[string]int{AttrPosition: posIdx, AttrTexCoord: uvIdx},
	})

	// Node 1: broken, POSITION accessor points past the raw buffer.
	b.doc.BufferViews = append(b.doc.BufferViews, BufferView{
		Buffer:     0,
		ByteOffset: 1 << 20,
		ByteLength: 36,
	})
	b.doc.Accessors = append(b.doc.Accessors, Accessor{
		BufferView:    intp(len(b.doc.BufferViews) - 1),
		ComponentType: ComponentFloat,
		Count:         3,
		Type:          TypeVec3,
	})
	b.addMeshNode(Primitive{
		Attributes: map[string]int{AttrPosition: len(b.doc.Accessors) - 1},
	})

	s := b.session()
	meshes, errs := s.ResolveMeshes()
	if len(meshes) != 1 {
		t.Errorf("resolved %d meshes, want 1", len(meshes))
	}
	if len(errs) != 1 {
		t.Fatalf("got %d errors, want 1", len(errs))
	}
	if !errors.Is(errs[0], ErrOutOfRange) {
		t.Errorf("error = %v, want ErrOutOfRange", errs[0])
	}
}

func TestResolveMeshes_NoScene(t *testing.T) {
	b := newDocBuilder()
	s := b.session()
	meshes, errs := s.ResolveMeshes()
	if meshes != nil || errs != nil {
		t.Errorf("expected nothing from a sceneless document, got %d meshes, %d errors",
			len(meshes), len(errs))
	}
}

func TestResolveMeshes_ChildNodesVisited(t *testing.T) {
	b := newDocBuilder()
	posIdx, _ := b.unitTriangle()
	childIdx := b.addMeshNode(Primitive{
		Attributes: map[string]int{AttrPosition: posIdx},
	})

	// Rewire: the scene holds only a parent node whose child carries the mesh.
	b.doc.Nodes = append(b.doc.Nodes, Node{Children: []int{childIdx}})
	b.doc.Scenes[0].Nodes = []int{len(b.doc.Nodes) - 1}

	s := b.session()
	meshes, errs := s.ResolveMeshes()
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	if len(meshes) != 1 {
		t.Errorf("resolved %d meshes, want 1", len(meshes))
	}
}

package gltf

import (
	"encoding/binary"
	gomath "math"
)

// Helper functions for building in-memory test documents.

func intp(i int) *int { return &i }

func f32bytes(vals ...float32) []byte {
	b := make([]byte, len(vals)*4)
	for i, v := range vals {
		binary.LittleEndian.PutUint32(b[i*4:], gomath.Float32bits(v))
	}
	return b
}

func u16bytes(vals ...uint16) []byte {
	b := make([]byte, len(vals)*2)
	for i, v := range vals {
		binary.LittleEndian.PutUint16(b[i*2:], v)
	}
	return b
}

func u32bytes(vals ...uint32) []byte {
	b := make([]byte, len(vals)*4)
	for i, v := range vals {
		binary.LittleEndian.PutUint32(b[i*4:], v)
	}
	return b
}

// docBuilder accumulates accessors into a single raw buffer, the way most
// exporters pack a .bin file.
type docBuilder struct {
	doc Document
	raw []byte
}

func newDocBuilder() *docBuilder {
	return &docBuilder{doc: Document{Asset: Asset{Version: "2.0"}}}
}

// addAccessor appends data to the raw buffer and registers a buffer view and
// accessor for it. Returns the accessor index.
func (b *docBuilder) addAccessor(data []byte, accessorType string, componentType, count int) int {
	offset := len(b.raw)
	b.raw = append(b.raw, data...)

	b.doc.BufferViews = append(b.doc.BufferViews, BufferView{
		Buffer:     0,
		ByteOffset: offset,
		ByteLength: len(data),
	})
	viewIdx := len(b.doc.BufferViews) - 1

	b.doc.Accessors = append(b.doc.Accessors, Accessor{
		BufferView:    intp(viewIdx),
		ComponentType: componentType,
		Count:         count,
		Type:          accessorType,
	})
	return len(b.doc.Accessors) - 1
}

// addMeshNode registers a single-primitive mesh on a fresh node and wires the
// node into scene 0. Returns the node index.
func (b *docBuilder) addMeshNode(prim Primitive) int {
	b.doc.Meshes = append(b.doc.Meshes, Mesh{Primitives: []Primitive{prim}})
	meshIdx := len(b.doc.Meshes) - 1

	b.doc.Nodes = append(b.doc.Nodes, Node{Mesh: intp(meshIdx)})
	nodeIdx := len(b.doc.Nodes) - 1

	if len(b.doc.Scenes) == 0 {
		b.doc.Scenes = []Scene{{}}
	}
	b.doc.Scenes[0].Nodes = append(b.doc.Scenes[0].Nodes, nodeIdx)
	return nodeIdx
}

func (b *docBuilder) session() *Session {
	b.doc.Buffers = []Buffer{{ByteLength: len(b.raw)}}
	return &Session{Doc: &b.doc, Buffers: [][]byte{b.raw}}
}

// unitTriangle returns position and UV accessor indices for the canonical
// right triangle used by the tangent tests.
func (b *docBuilder) unitTriangle() (posIdx, uvIdx int) {
	posIdx = b.addAccessor(f32bytes(
		0, 0, 0,
		1, 0, 0,
		0, 1, 0,
	), TypeVec3, ComponentFloat, 3)
	uvIdx = b.addAccessor(f32bytes(
		0, 0,
		1, 0,
		0, 1,
	), TypeVec2, ComponentFloat, 3)
	return posIdx, uvIdx
}

package gltf

import (
	"encoding/binary"
	gomath "math"

	"github.com/Faultbox/gltfview/pkg/math"
)

// UV determinants smaller than this are treated as degenerate and clamped.
const degenerateUV = 1e-6

// DecodeVec3Stream decodes a tightly packed little-endian float32 VEC3
// stream. Trailing bytes that do not form a full element are dropped.
func DecodeVec3Stream(data []byte) []math.Vec3 {
	out := make([]math.Vec3, len(data)/12)
	for i := range out {
		b := data[i*12:]
		out[i] = math.Vec3{
			X: gomath.Float32frombits(binary.LittleEndian.Uint32(b[0:4])),
			Y: gomath.Float32frombits(binary.LittleEndian.Uint32(b[4:8])),
			Z: gomath.Float32frombits(binary.LittleEndian.Uint32(b[8:12])),
		}
	}
	return out
}

// DecodeVec2Stream decodes a tightly packed little-endian float32 VEC2 stream.
func DecodeVec2Stream(data []byte) []math.Vec2 {
	out := make([]math.Vec2, len(data)/8)
	for i := range out {
		b := data[i*8:]
		out[i] = math.Vec2{
			X: gomath.Float32frombits(binary.LittleEndian.Uint32(b[0:4])),
			Y: gomath.Float32frombits(binary.LittleEndian.Uint32(b[4:8])),
		}
	}
	return out
}

// EncodeVec4Stream packs VEC4 elements into little-endian float32 bytes.
func EncodeVec4Stream(vs []math.Vec4) []byte {
	out := make([]byte, len(vs)*16)
	for i, v := range vs {
		b := out[i*16:]
		binary.LittleEndian.PutUint32(b[0:4], gomath.Float32bits(v[0]))
		binary.LittleEndian.PutUint32(b[4:8], gomath.Float32bits(v[1]))
		binary.LittleEndian.PutUint32(b[8:12], gomath.Float32bits(v[2]))
		binary.LittleEndian.PutUint32(b[12:16], gomath.Float32bits(v[3]))
	}
	return out
}

// ComputeTangents synthesizes one tangent per vertex from triangle geometry
// and UV gradients. Triangles come from the index stream, or from the
// implicit sequential list when indices is nil. Per-triangle contributions
// are accumulated unnormalized, so a tangent's magnitude reflects the number
// and size of the triangles sharing its vertex; consuming shaders normalize.
// The W component of every output vector is forced to 1 — handedness from UV
// winding is not computed.
func ComputeTangents(positions []math.Vec3, uvs []math.Vec2, indices *IndexSlice) []math.Vec4 {
	tangents := make([]math.Vec4, len(positions))

	triangleCount := len(positions) / 3
	if indices != nil {
		triangleCount = indices.Count / 3
	}

	for t := 0; t < triangleCount; t++ {
		var i1, i2, i3 int
		if indices != nil {
			i1 = int(indices.At(t * 3))
			i2 = int(indices.At(t*3 + 1))
			i3 = int(indices.At(t*3 + 2))
		} else {
			i1, i2, i3 = t*3, t*3+1, t*3+2
		}
		if i1 >= len(positions) || i2 >= len(positions) || i3 >= len(positions) ||
			i1 >= len(uvs) || i2 >= len(uvs) || i3 >= len(uvs) {
			continue
		}

		edge1 := positions[i2].Sub(positions[i1])
		edge2 := positions[i3].Sub(positions[i1])
		uvEdge1 := uvs[i2].Sub(uvs[i1])
		uvEdge2 := uvs[i3].Sub(uvs[i1])

		dR := uvEdge1.X*uvEdge2.Y - uvEdge2.X*uvEdge1.Y
		if dR < degenerateUV && dR > -degenerateUV {
			// Degenerate UVs: accept a locally wrong but finite tangent
			// instead of dividing by near-zero.
			dR = 1.0
		}
		r := 1.0 / dR

		tangent := edge1.Scale(uvEdge2.Y).Sub(edge2.Scale(uvEdge1.Y)).Scale(r)

		for _, idx := range [3]int{i1, i2, i3} {
			tangents[idx][0] += tangent.X
			tangents[idx][1] += tangent.Y
			tangents[idx][2] += tangent.Z
		}
	}

	for i := range tangents {
		tangents[i][3] = 1.0
	}
	return tangents
}

// Package gltf interprets glTF 2.0 scene documents.
// It parses the JSON/GLB container, maps accessors onto raw buffer bytes,
// extracts per-primitive vertex and index streams, and synthesizes tangent
// vectors when a document carries normals and UVs but no TANGENT attribute.
package gltf

import "encoding/json"

// accessor.componentType values (GL enumerants, as serialized in glTF JSON).
// Only the three components used by this loader are listed; everything else
// is rejected with ErrUnsupportedLayout.
const (
	ComponentFloat  = 5126 // 32-bit IEEE float
	ComponentUint16 = 5123 // UNSIGNED_SHORT
	ComponentUint32 = 5125 // UNSIGNED_INT
)

// accessor.type values.
const (
	TypeScalar = "SCALAR"
	TypeVec2   = "VEC2"
	TypeVec3   = "VEC3"
	TypeVec4   = "VEC4"
	TypeMat2   = "MAT2"
	TypeMat3   = "MAT3"
	TypeMat4   = "MAT4"
)

// Primitive attribute semantics read by this loader.
const (
	AttrPosition = "POSITION"
	AttrNormal   = "NORMAL"
	AttrTangent  = "TANGENT"
	AttrTexCoord = "TEXCOORD_0"
)

// Document is the parsed glTF 2.0 JSON tree, restricted to the subset this
// loader consumes. Unknown top-level sections are ignored by the decoder.
type Document struct {
	Asset       Asset        `json:"asset"`
	Buffers     []Buffer     `json:"buffers,omitempty"`
	BufferViews []BufferView `json:"bufferViews,omitempty"`
	Accessors   []Accessor   `json:"accessors,omitempty"`
	Meshes      []Mesh       `json:"meshes,omitempty"`
	Nodes       []Node       `json:"nodes,omitempty"`
	Scene       *int         `json:"scene,omitempty"`
	Scenes      []Scene      `json:"scenes,omitempty"`
	Materials   []Material   `json:"materials,omitempty"`
	Textures    []Texture    `json:"textures,omitempty"`
	Images      []Image      `json:"images,omitempty"`
	Samplers    []Sampler    `json:"samplers,omitempty"`
}

// Asset holds document metadata.
type Asset struct {
	Version   string `json:"version"`
	Generator string `json:"generator,omitempty"`
}

// Buffer describes one raw binary blob. A buffer with an empty URI refers to
// the GLB binary chunk.
type Buffer struct {
	URI        string `json:"uri,omitempty"`
	ByteLength int    `json:"byteLength"`
	Name       string `json:"name,omitempty"`
}

// BufferView is a named byte range within one buffer.
type BufferView struct {
	Buffer     int    `json:"buffer"`
	ByteOffset int    `json:"byteOffset,omitempty"`
	ByteLength int    `json:"byteLength"`
	ByteStride int    `json:"byteStride,omitempty"`
	Target     int    `json:"target,omitempty"`
	Name       string `json:"name,omitempty"`
}

// Accessor describes how to interpret a byte range as typed array elements.
type Accessor struct {
	BufferView    *int            `json:"bufferView,omitempty"`
	ByteOffset    int             `json:"byteOffset,omitempty"`
	ComponentType int             `json:"componentType"`
	Count         int             `json:"count"`
	Type          string          `json:"type"`
	Normalized    bool            `json:"normalized,omitempty"`
	Sparse        json.RawMessage `json:"sparse,omitempty"` // carried but not resolved
	Name          string          `json:"name,omitempty"`
}

// Mesh is a set of drawable primitives. Only primitive 0 is ever resolved;
// multi-primitive meshes are a known scope boundary of this loader.
type Mesh struct {
	Primitives []Primitive `json:"primitives"`
	Name       string      `json:"name,omitempty"`
}

// Primitive references attribute and index accessors for one geometry unit.
type Primitive struct {
	Attributes map[string]int `json:"attributes"`
	Indices    *int           `json:"indices,omitempty"`
	Material   *int           `json:"material,omitempty"`
	Mode       *int           `json:"mode,omitempty"` // default 4 (TRIANGLES)
}

// Node places a mesh in the scene. Matrix and TRS fields are both passed
// through to the transform resolver; glTF forbids supplying both but this
// loader does not validate that.
type Node struct {
	Name        string       `json:"name,omitempty"`
	Mesh        *int         `json:"mesh,omitempty"`
	Children    []int        `json:"children,omitempty"`
	Matrix      *[16]float32 `json:"matrix,omitempty"`      // column-major
	Rotation    *[4]float32  `json:"rotation,omitempty"`    // quaternion x,y,z,w
	Scale       *[3]float32  `json:"scale,omitempty"`       // default [1,1,1]
	Translation *[3]float32  `json:"translation,omitempty"` // default [0,0,0]
}

// Scene lists root node indices.
type Scene struct {
	Nodes []int  `json:"nodes,omitempty"`
	Name  string `json:"name,omitempty"`
}

// Material holds the PBR parameters and texture references this loader reads.
// Extensions is kept as a decoded JSON tree for vendor extension probing.
type Material struct {
	Name                 string                `json:"name,omitempty"`
	PBRMetallicRoughness *PBRMetallicRoughness `json:"pbrMetallicRoughness,omitempty"`
	NormalTexture        *NormalTextureInfo    `json:"normalTexture,omitempty"`
	DoubleSided          bool                  `json:"doubleSided,omitempty"`
	Extensions           map[string]any        `json:"extensions,omitempty"`
}

// PBRMetallicRoughness is the standard metallic-roughness parameter block.
type PBRMetallicRoughness struct {
	BaseColorFactor          *[4]float32  `json:"baseColorFactor,omitempty"` // default [1,1,1,1]
	BaseColorTexture         *TextureInfo `json:"baseColorTexture,omitempty"`
	MetallicFactor           *float32     `json:"metallicFactor,omitempty"`  // default 1
	RoughnessFactor          *float32     `json:"roughnessFactor,omitempty"` // default 1
	MetallicRoughnessTexture *TextureInfo `json:"metallicRoughnessTexture,omitempty"`
}

// TextureInfo references a texture by index.
type TextureInfo struct {
	Index    int `json:"index"`
	TexCoord int `json:"texCoord,omitempty"`
}

// NormalTextureInfo references a normal map.
type NormalTextureInfo struct {
	Index    int      `json:"index"`
	TexCoord int      `json:"texCoord,omitempty"`
	Scale    *float32 `json:"scale,omitempty"` // default 1
}

// Texture pairs an image with a sampler.
type Texture struct {
	Sampler *int   `json:"sampler,omitempty"`
	Source  *int   `json:"source,omitempty"`
	Name    string `json:"name,omitempty"`
}

// Image is either an external URI or a byte range inside a buffer view.
type Image struct {
	URI        string `json:"uri,omitempty"`
	MimeType   string `json:"mimeType,omitempty"`
	BufferView *int   `json:"bufferView,omitempty"`
	Name       string `json:"name,omitempty"`
}

// Sampler holds texture filtering and wrapping modes.
type Sampler struct {
	MagFilter int `json:"magFilter,omitempty"`
	MinFilter int `json:"minFilter,omitempty"`
	WrapS     int `json:"wrapS,omitempty"` // default 10497 (REPEAT)
	WrapT     int `json:"wrapT,omitempty"`
}

// DefaultScene returns the index of the scene to display, preferring the
// document's scene field and falling back to scene 0.
func (d *Document) DefaultScene() (int, bool) {
	if d.Scene != nil && *d.Scene >= 0 && *d.Scene < len(d.Scenes) {
		return *d.Scene, true
	}
	if len(d.Scenes) > 0 {
		return 0, true
	}
	return 0, false
}

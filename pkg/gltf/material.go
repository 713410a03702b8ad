package gltf

import "fmt"

// TextureRange locates a texture's encoded image bytes. Images embedded in a
// buffer carry Buffer/Offset/Length; external images carry the URI instead.
// The bytes are consumed by an image-decode collaborator, not by this package.
type TextureRange struct {
	Buffer int
	Offset int
	Length int
	URI    string
	MIME   string
}

// MaterialData is the resolved material description for one primitive:
// factor values plus the byte ranges of the textures it references.
type MaterialData struct {
	Name              string
	BaseColorFactor   [4]float32
	MetallicFactor    float32
	RoughnessFactor   float32
	DoubleSided       bool
	BaseColor         *TextureRange
	MetallicRoughness *TextureRange
	Normal            *TextureRange
	NormalScale       float32
}

// ResolveMaterial resolves material mi into factors and texture byte ranges.
// When the standard metallic-roughness block carries no base color texture,
// the vendor specular-glossiness extension is probed for a diffuse texture.
func (s *Session) ResolveMaterial(mi int) (*MaterialData, error) {
	if mi < 0 || mi >= len(s.Doc.Materials) {
		return nil, fmt.Errorf("%w: material index %d", ErrOutOfRange, mi)
	}
	mat := &s.Doc.Materials[mi]

	data := &MaterialData{
		Name:            mat.Name,
		BaseColorFactor: [4]float32{1, 1, 1, 1},
		MetallicFactor:  1,
		RoughnessFactor: 1,
		DoubleSided:     mat.DoubleSided,
		NormalScale:     1,
	}

	if pbr := mat.PBRMetallicRoughness; pbr != nil {
		if pbr.BaseColorFactor != nil {
			data.BaseColorFactor = *pbr.BaseColorFactor
		}
		if pbr.MetallicFactor != nil {
			data.MetallicFactor = *pbr.MetallicFactor
		}
		if pbr.RoughnessFactor != nil {
			data.RoughnessFactor = *pbr.RoughnessFactor
		}
		if pbr.BaseColorTexture != nil {
			r, err := s.textureRange(pbr.BaseColorTexture.Index)
			if err != nil {
				return nil, fmt.Errorf("material %d baseColor: %w", mi, err)
			}
			data.BaseColor = r
		}
		if pbr.MetallicRoughnessTexture != nil {
			r, err := s.textureRange(pbr.MetallicRoughnessTexture.Index)
			if err != nil {
				return nil, fmt.Errorf("material %d metallicRoughness: %w", mi, err)
			}
			data.MetallicRoughness = r
		}
	}

	if mat.NormalTexture != nil {
		r, err := s.textureRange(mat.NormalTexture.Index)
		if err != nil {
			return nil, fmt.Errorf("material %d normal: %w", mi, err)
		}
		data.Normal = r
		if mat.NormalTexture.Scale != nil {
			data.NormalScale = *mat.NormalTexture.Scale
		}
	}

	// Vendor fallback: some exporters put the albedo only in the
	// specular-glossiness extension block.
	if data.BaseColor == nil {
		if ti, ok := probeExtensionTexture(mat.Extensions, "diffuseTexture"); ok {
			r, err := s.textureRange(ti)
			if err != nil {
				return nil, fmt.Errorf("material %d diffuseTexture: %w", mi, err)
			}
			data.BaseColor = r
		}
	}
	return data, nil
}

// textureRange follows texture -> image and returns where the encoded image
// bytes live.
func (s *Session) textureRange(ti int) (*TextureRange, error) {
	if ti < 0 || ti >= len(s.Doc.Textures) {
		return nil, fmt.Errorf("%w: texture index %d", ErrOutOfRange, ti)
	}
	tex := &s.Doc.Textures[ti]
	if tex.Source == nil {
		return nil, fmt.Errorf("texture %d has no image source", ti)
	}
	if *tex.Source < 0 || *tex.Source >= len(s.Doc.Images) {
		return nil, fmt.Errorf("%w: image index %d", ErrOutOfRange, *tex.Source)
	}
	img := &s.Doc.Images[*tex.Source]

	if img.BufferView == nil {
		if img.URI == "" {
			return nil, fmt.Errorf("image %d has neither buffer view nor URI", *tex.Source)
		}
		return &TextureRange{URI: img.URI, MIME: img.MimeType}, nil
	}
	if *img.BufferView < 0 || *img.BufferView >= len(s.Doc.BufferViews) {
		return nil, fmt.Errorf("%w: buffer view index %d", ErrOutOfRange, *img.BufferView)
	}
	view := &s.Doc.BufferViews[*img.BufferView]
	if view.Buffer < 0 || view.Buffer >= len(s.Buffers) {
		return nil, fmt.Errorf("%w: buffer index %d", ErrOutOfRange, view.Buffer)
	}
	if view.ByteOffset+view.ByteLength > len(s.Buffers[view.Buffer]) {
		return nil, fmt.Errorf("%w: image bytes [%d:%d] of buffer %d (%d bytes)",
			ErrOutOfRange, view.ByteOffset, view.ByteOffset+view.ByteLength,
			view.Buffer, len(s.Buffers[view.Buffer]))
	}
	return &TextureRange{
		Buffer: view.Buffer,
		Offset: view.ByteOffset,
		Length: view.ByteLength,
		MIME:   img.MimeType,
	}, nil
}

// ImageBytes returns the encoded image bytes for a buffer-resident texture
// range as a borrowed slice.
func (s *Session) ImageBytes(r *TextureRange) []byte {
	return s.Buffers[r.Buffer][r.Offset : r.Offset+r.Length]
}

// probeExtensionTexture walks a decoded extensions tree looking for a texture
// reference under the given key, e.g. "diffuseTexture" inside
// KHR_materials_pbrSpecularGlossiness. The walk is tolerant of unknown
// structure: any nested object whose key matches and that carries a numeric
// "index" field counts.
func probeExtensionTexture(tree map[string]any, key string) (int, bool) {
	for k, v := range tree {
		child, ok := v.(map[string]any)
		if !ok {
			continue
		}
		if k == key {
			if idx, ok := child["index"].(float64); ok {
				return int(idx), true
			}
		}
		if idx, ok := probeExtensionTexture(child, key); ok {
			return idx, true
		}
	}
	return 0, false
}

package gltf

import (
	"bytes"
	"errors"
	"testing"
)

func f32p(f float32) *float32 { return &f }

func TestResolveMaterial_Defaults(t *testing.T) {
	s := &Session{Doc: &Document{Materials: []Material{{Name: "plain"}}}}

	mat, err := s.ResolveMaterial(0)
	if err != nil {
		t.Fatalf("ResolveMaterial failed: %v", err)
	}
	if mat.BaseColorFactor != [4]float32{1, 1, 1, 1} {
		t.Errorf("base color factor = %v, want [1 1 1 1]", mat.BaseColorFactor)
	}
	if mat.MetallicFactor != 1 || mat.RoughnessFactor != 1 {
		t.Errorf("metallic/roughness = %v/%v, want 1/1", mat.MetallicFactor, mat.RoughnessFactor)
	}
	if mat.NormalScale != 1 {
		t.Errorf("normal scale = %v, want 1", mat.NormalScale)
	}
	if mat.BaseColor != nil || mat.MetallicRoughness != nil || mat.Normal != nil {
		t.Error("texture ranges should be nil for an untextured material")
	}
}

func TestResolveMaterial_Factors(t *testing.T) {
	s := &Session{Doc: &Document{Materials: []Material{{
		DoubleSided: true,
		PBRMetallicRoughness: &PBRMetallicRoughness{
			BaseColorFactor: &[4]float32{0.5, 0.25, 0.125, 1},
			MetallicFactor:  f32p(0),
			RoughnessFactor: f32p(0.75),
		},
	}}}}

	mat, err := s.ResolveMaterial(0)
	if err != nil {
		t.Fatalf("ResolveMaterial failed: %v", err)
	}
	if mat.BaseColorFactor != [4]float32{0.5, 0.25, 0.125, 1} {
		t.Errorf("base color factor = %v", mat.BaseColorFactor)
	}
	if mat.MetallicFactor != 0 {
		t.Errorf("metallic factor = %v, want 0", mat.MetallicFactor)
	}
	if mat.RoughnessFactor != 0.75 {
		t.Errorf("roughness factor = %v, want 0.75", mat.RoughnessFactor)
	}
	if !mat.DoubleSided {
		t.Error("double sided flag lost")
	}
}

func TestResolveMaterial_BufferTexture(t *testing.T) {
	imageBytes := []byte{0x89, 'P', 'N', 'G', 0, 1, 2, 3}
	doc := &Document{
		Buffers:     []Buffer{{ByteLength: len(imageBytes)}},
		BufferViews: []BufferView{{Buffer: 0, ByteOffset: 0, ByteLength: len(imageBytes)}},
		Images:      []Image{{BufferView: intp(0), MimeType: "image/png"}},
		Textures:    []Texture{{Source: intp(0)}},
		Materials: []Material{{
			PBRMetallicRoughness: &PBRMetallicRoughness{
				BaseColorTexture: &TextureInfo{Index: 0},
			},
			NormalTexture: &NormalTextureInfo{Index: 0, Scale: f32p(0.5)},
		}},
	}
	s := &Session{Doc: doc, Buffers: [][]byte{imageBytes}}

	mat, err := s.ResolveMaterial(0)
	if err != nil {
		t.Fatalf("ResolveMaterial failed: %v", err)
	}
	if mat.BaseColor == nil {
		t.Fatal("base color texture range missing")
	}
	if mat.BaseColor.MIME != "image/png" {
		t.Errorf("MIME = %q, want image/png", mat.BaseColor.MIME)
	}
	if !bytes.Equal(s.ImageBytes(mat.BaseColor), imageBytes) {
		t.Error("ImageBytes does not return the embedded image")
	}
	if mat.Normal == nil {
		t.Fatal("normal texture range missing")
	}
	if mat.NormalScale != 0.5 {
		t.Errorf("normal scale = %v, want 0.5", mat.NormalScale)
	}
}

func TestResolveMaterial_ExternalImageURI(t *testing.T) {
	doc := &Document{
		Images:   []Image{{URI: "albedo.png"}},
		Textures: []Texture{{Source: intp(0)}},
		Materials: []Material{{
			PBRMetallicRoughness: &PBRMetallicRoughness{
				BaseColorTexture: &TextureInfo{Index: 0},
			},
		}},
	}
	s := &Session{Doc: doc}

	mat, err := s.ResolveMaterial(0)
	if err != nil {
		t.Fatalf("ResolveMaterial failed: %v", err)
	}
	if mat.BaseColor == nil || mat.BaseColor.URI != "albedo.png" {
		t.Errorf("base color range = %+v, want URI albedo.png", mat.BaseColor)
	}
}

func TestResolveMaterial_SpecularGlossinessFallback(t *testing.T) {
	doc := &Document{
		Images:   []Image{{URI: "diffuse.png"}},
		Textures: []Texture{{Source: intp(0)}},
		Materials: []Material{{
			Extensions: map[string]any{
				"KHR_materials_pbrSpecularGlossiness": map[string]any{
					"diffuseFactor": []any{1.0, 1.0, 1.0, 1.0},
					"diffuseTexture": map[string]any{
						"index": float64(0),
					},
				},
			},
		}},
	}
	s := &Session{Doc: doc}

	mat, err := s.ResolveMaterial(0)
	if err != nil {
		t.Fatalf("ResolveMaterial failed: %v", err)
	}
	if mat.BaseColor == nil || mat.BaseColor.URI != "diffuse.png" {
		t.Errorf("base color range = %+v, want diffuse texture from extension", mat.BaseColor)
	}
}

func TestResolveMaterial_StandardTextureWins(t *testing.T) {
	doc := &Document{
		Images:   []Image{{URI: "standard.png"}, {URI: "vendor.png"}},
		Textures: []Texture{{Source: intp(0)}, {Source: intp(1)}},
		Materials: []Material{{
			PBRMetallicRoughness: &PBRMetallicRoughness{
				BaseColorTexture: &TextureInfo{Index: 0},
			},
			Extensions: map[string]any{
				"KHR_materials_pbrSpecularGlossiness": map[string]any{
					"diffuseTexture": map[string]any{"index": float64(1)},
				},
			},
		}},
	}
	s := &Session{Doc: doc}

	mat, err := s.ResolveMaterial(0)
	if err != nil {
		t.Fatalf("ResolveMaterial failed: %v", err)
	}
	if mat.BaseColor == nil || mat.BaseColor.URI != "standard.png" {
		t.Errorf("base color = %+v, standard texture must take priority", mat.BaseColor)
	}
}

func TestResolveMaterial_Errors(t *testing.T) {
	doc := &Document{
		Textures: []Texture{{Source: intp(5)}},
		Materials: []Material{{
			PBRMetallicRoughness: &PBRMetallicRoughness{
				BaseColorTexture: &TextureInfo{Index: 0},
			},
		}},
	}
	s := &Session{Doc: doc}

	if _, err := s.ResolveMaterial(3); !errors.Is(err, ErrOutOfRange) {
		t.Errorf("bad material index: got %v, want ErrOutOfRange", err)
	}
	if _, err := s.ResolveMaterial(0); !errors.Is(err, ErrOutOfRange) {
		t.Errorf("dangling image source: got %v, want ErrOutOfRange", err)
	}
}

func TestProbeExtensionTexture_Miss(t *testing.T) {
	tree := map[string]any{
		"KHR_materials_unlit": map[string]any{},
		"scalar":              3.0,
	}
	if _, ok := probeExtensionTexture(tree, "diffuseTexture"); ok {
		t.Error("probe should miss on trees without the key")
	}
}

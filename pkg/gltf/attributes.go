package gltf

import "fmt"

// VertexStreams holds the resolved attribute byte slices of one primitive.
// A nil stream means the semantic is absent from the document. Streams are
// borrowed views into the session's raw buffers.
type VertexStreams struct {
	Position  []byte
	Normal    []byte
	Tangent   []byte
	TexCoord0 []byte
}

// VertexStreams resolves the POSITION, NORMAL, TANGENT and TEXCOORD_0
// attributes of a primitive. POSITION gates everything: without it the
// primitive is unrenderable and no other stream is resolved. The returned
// count is the vertex count taken from the POSITION accessor.
func (s *Session) VertexStreams(p *Primitive) (VertexStreams, int, error) {
	var streams VertexStreams

	posIdx, ok := p.Attributes[AttrPosition]
	if !ok {
		return streams, 0, nil
	}
	pos, count, err := s.vertexAttribute(posIdx, AttrPosition)
	if err != nil {
		return streams, 0, err
	}
	streams.Position = pos

	for _, attr := range []struct {
		semantic string
		dst      *[]byte
	}{
		{AttrNormal, &streams.Normal},
		{AttrTangent, &streams.Tangent},
		{AttrTexCoord, &streams.TexCoord0},
	} {
		ai, ok := p.Attributes[attr.semantic]
		if !ok {
			continue
		}
		data, _, err := s.vertexAttribute(ai, attr.semantic)
		if err != nil {
			return VertexStreams{}, 0, err
		}
		*attr.dst = data
	}
	return streams, count, nil
}

// vertexAttribute resolves one attribute accessor, enforcing the float
// component requirement for vertex data.
func (s *Session) vertexAttribute(ai int, semantic string) ([]byte, int, error) {
	if ai < 0 || ai >= len(s.Doc.Accessors) {
		return nil, 0, fmt.Errorf("%w: %s accessor %d", ErrOutOfRange, semantic, ai)
	}
	a := &s.Doc.Accessors[ai]
	if a.ComponentType != ComponentFloat {
		return nil, 0, fmt.Errorf("%w: %s componentType %d, vertex attributes must be float",
			ErrUnsupportedLayout, semantic, a.ComponentType)
	}
	data, err := s.AccessorBytes(ai)
	if err != nil {
		return nil, 0, fmt.Errorf("%s: %w", semantic, err)
	}
	return data, a.Count, nil
}

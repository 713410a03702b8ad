package gltf

import (
	"encoding/binary"
	"fmt"
)

// IndexFormat tags the wire width of an index stream.
type IndexFormat int

const (
	Index16 IndexFormat = iota // uint16 indices
	Index32                    // uint32 indices
)

// String returns a human-readable format name.
func (f IndexFormat) String() string {
	switch f {
	case Index16:
		return "uint16"
	case Index32:
		return "uint32"
	default:
		return fmt.Sprintf("Unknown(%d)", int(f))
	}
}

// IndexSlice is a borrowed view of an index buffer plus its wire format.
type IndexSlice struct {
	Data   []byte
	Format IndexFormat
	Count  int
}

// At returns the i-th index as uint32 regardless of wire width.
func (s *IndexSlice) At(i int) uint32 {
	if s.Format == Index16 {
		return uint32(binary.LittleEndian.Uint16(s.Data[i*2:]))
	}
	return binary.LittleEndian.Uint32(s.Data[i*4:])
}

// PrimitiveIndices resolves a primitive's index accessor into an IndexSlice.
// It returns (nil, nil) for an unindexed primitive. Scalar uint16 accessors
// yield Index16, scalar uint32 yield Index32; any other component type is an
// unsupported layout.
func (s *Session) PrimitiveIndices(p *Primitive) (*IndexSlice, error) {
	if p.Indices == nil {
		return nil, nil
	}
	ai := *p.Indices
	if ai < 0 || ai >= len(s.Doc.Accessors) {
		return nil, fmt.Errorf("%w: index accessor %d", ErrOutOfRange, ai)
	}
	a := &s.Doc.Accessors[ai]
	if a.Type != TypeScalar {
		return nil, fmt.Errorf("%w: index accessor type %q", ErrUnsupportedLayout, a.Type)
	}

	var format IndexFormat
	switch a.ComponentType {
	case ComponentUint16:
		format = Index16
	case ComponentUint32:
		format = Index32
	default:
		return nil, fmt.Errorf("%w: index componentType %d", ErrUnsupportedLayout, a.ComponentType)
	}

	data, err := s.AccessorBytes(ai)
	if err != nil {
		return nil, err
	}
	return &IndexSlice{Data: data, Format: format, Count: a.Count}, nil
}

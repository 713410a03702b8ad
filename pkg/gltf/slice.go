package gltf

import "fmt"

// AccessorBytes returns the byte range covered by accessor ai as a view into
// the session's raw buffers. The absolute offset is the buffer view's offset
// plus the accessor's own offset; the length is stride times element count.
// The returned slice borrows the raw buffer and must not be mutated.
func (s *Session) AccessorBytes(ai int) ([]byte, error) {
	if ai < 0 || ai >= len(s.Doc.Accessors) {
		return nil, fmt.Errorf("%w: accessor index %d", ErrOutOfRange, ai)
	}
	a := &s.Doc.Accessors[ai]

	stride, err := a.Stride()
	if err != nil {
		return nil, fmt.Errorf("accessor %d: %w", ai, err)
	}
	if a.BufferView == nil {
		return nil, fmt.Errorf("accessor %d: %w", ai, ErrMissingBufferView)
	}
	if *a.BufferView < 0 || *a.BufferView >= len(s.Doc.BufferViews) {
		return nil, fmt.Errorf("%w: buffer view index %d", ErrOutOfRange, *a.BufferView)
	}
	view := &s.Doc.BufferViews[*a.BufferView]
	if view.Buffer < 0 || view.Buffer >= len(s.Buffers) {
		return nil, fmt.Errorf("%w: buffer index %d", ErrOutOfRange, view.Buffer)
	}
	raw := s.Buffers[view.Buffer]

	offset := view.ByteOffset + a.ByteOffset
	length := stride * a.Count
	if offset < 0 || offset+length > len(raw) {
		return nil, fmt.Errorf("%w: accessor %d needs [%d:%d] of buffer %d (%d bytes)",
			ErrOutOfRange, ai, offset, offset+length, view.Buffer, len(raw))
	}
	return raw[offset : offset+length], nil
}

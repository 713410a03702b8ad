package gltf

import (
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// Container errors.
var (
	ErrInvalidGLBMagic       = errors.New("invalid GLB magic: expected 'glTF'")
	ErrUnsupportedGLBVersion = errors.New("unsupported GLB version")
	ErrTruncatedGLB          = errors.New("truncated GLB data")
	ErrInvalidGLBChunk       = errors.New("invalid GLB chunk layout")
)

const (
	glbMagic     = 0x46546C67 // "glTF" little-endian
	glbChunkJSON = 0x4E4F534A // "JSON"
	glbChunkBIN  = 0x004E4942 // "BIN\0"
	glbHeaderLen = 12
	glbChunkHdr  = 8
)

// ParseDocument parses glTF JSON data into a Document.
func ParseDocument(data []byte) (*Document, error) {
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing glTF JSON: %w", err)
	}
	return &doc, nil
}

// ParseGLB parses a binary glTF (GLB) container. It returns the parsed
// document and the embedded binary chunk, which is nil when the container
// carries no BIN chunk.
func ParseGLB(data []byte) (*Document, []byte, error) {
	if len(data) < glbHeaderLen {
		return nil, nil, ErrTruncatedGLB
	}
	if binary.LittleEndian.Uint32(data[0:4]) != glbMagic {
		return nil, nil, ErrInvalidGLBMagic
	}
	version := binary.LittleEndian.Uint32(data[4:8])
	if version != 2 {
		return nil, nil, fmt.Errorf("%w: %d", ErrUnsupportedGLBVersion, version)
	}
	total := int(binary.LittleEndian.Uint32(data[8:12]))
	if total > len(data) {
		return nil, nil, ErrTruncatedGLB
	}

	jsonChunk, rest, err := readGLBChunk(data[glbHeaderLen:total], glbChunkJSON)
	if err != nil {
		return nil, nil, err
	}
	doc, err := ParseDocument(jsonChunk)
	if err != nil {
		return nil, nil, err
	}

	// BIN chunk is optional.
	var bin []byte
	if len(rest) > 0 {
		bin, _, err = readGLBChunk(rest, glbChunkBIN)
		if err != nil {
			return nil, nil, err
		}
	}
	return doc, bin, nil
}

// readGLBChunk reads one chunk and verifies its type tag. It returns the
// chunk payload and the remaining bytes after the chunk.
func readGLBChunk(data []byte, wantType uint32) ([]byte, []byte, error) {
	if len(data) < glbChunkHdr {
		return nil, nil, ErrTruncatedGLB
	}
	length := int(binary.LittleEndian.Uint32(data[0:4]))
	chunkType := binary.LittleEndian.Uint32(data[4:8])
	if chunkType != wantType {
		return nil, nil, fmt.Errorf("%w: chunk type 0x%08X, want 0x%08X", ErrInvalidGLBChunk, chunkType, wantType)
	}
	if glbChunkHdr+length > len(data) {
		return nil, nil, ErrTruncatedGLB
	}
	return data[glbChunkHdr : glbChunkHdr+length], data[glbChunkHdr+length:], nil
}

// Session couples a parsed document with its fully loaded raw buffers.
// The buffers are loaded once and shared read-only across all accessor
// resolutions; byte slices handed out by the resolvers alias them and stay
// valid for the lifetime of the session.
type Session struct {
	Doc     *Document
	Buffers [][]byte
}

// Open reads a .gltf or .glb file, parses it, and loads all referenced raw
// buffers relative to the file's directory.
func Open(path string) (*Session, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading glTF file: %w", err)
	}

	var (
		doc *Document
		bin []byte
	)
	if len(data) >= 4 && binary.LittleEndian.Uint32(data[0:4]) == glbMagic {
		doc, bin, err = ParseGLB(data)
	} else {
		doc, err = ParseDocument(data)
	}
	if err != nil {
		return nil, err
	}

	buffers, err := LoadBuffers(doc, filepath.Dir(path), bin)
	if err != nil {
		return nil, err
	}
	return &Session{Doc: doc, Buffers: buffers}, nil
}

package gltf

import (
	"encoding/base64"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Buffer loading errors.
var (
	ErrBufferLength  = errors.New("buffer length mismatch")
	ErrMissingBinary = errors.New("buffer has no URI and no GLB binary chunk")
)

const dataURIPrefix = "data:"

// LoadBuffers resolves every buffer entry of the document to raw bytes.
// A buffer with an empty URI takes the GLB binary chunk; data URIs are
// base64-decoded; anything else is read as a file relative to baseDir.
// The returned slices are owned by the caller's load session and must be
// treated as immutable.
func LoadBuffers(doc *Document, baseDir string, glbChunk []byte) ([][]byte, error) {
	buffers := make([][]byte, len(doc.Buffers))
	for i, buf := range doc.Buffers {
		data, err := loadBuffer(buf, baseDir, glbChunk)
		if err != nil {
			return nil, fmt.Errorf("buffer %d: %w", i, err)
		}
		if len(data) < buf.ByteLength {
			return nil, fmt.Errorf("%w: buffer %d has %d bytes, declared %d",
				ErrBufferLength, i, len(data), buf.ByteLength)
		}
		buffers[i] = data
	}
	return buffers, nil
}

func loadBuffer(buf Buffer, baseDir string, glbChunk []byte) ([]byte, error) {
	switch {
	case buf.URI == "":
		if glbChunk == nil {
			return nil, ErrMissingBinary
		}
		return glbChunk, nil
	case strings.HasPrefix(buf.URI, dataURIPrefix):
		return decodeDataURI(buf.URI)
	default:
		data, err := os.ReadFile(filepath.Join(baseDir, filepath.FromSlash(buf.URI)))
		if err != nil {
			return nil, fmt.Errorf("reading buffer file: %w", err)
		}
		return data, nil
	}
}

// decodeDataURI decodes a base64 data URI of the form
// data:<mediatype>;base64,<payload>.
func decodeDataURI(uri string) ([]byte, error) {
	body := uri[len(dataURIPrefix):]
	header, payload, ok := strings.Cut(body, ",")
	if !ok {
		return nil, fmt.Errorf("malformed data URI")
	}
	if !strings.HasSuffix(header, ";base64") {
		return nil, fmt.Errorf("data URI encoding not supported: %q", header)
	}
	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, fmt.Errorf("decoding data URI: %w", err)
	}
	return data, nil
}

package gltf

import (
	"errors"
	"fmt"
)

// Accessor resolution errors.
var (
	ErrUnsupportedLayout = errors.New("unsupported accessor layout")
	ErrMissingBufferView = errors.New("accessor has no buffer view (sparse accessors unsupported)")
	ErrOutOfRange        = errors.New("accessor byte range exceeds buffer bounds")
	ErrMissingPosition   = errors.New("primitive has no POSITION attribute")
)

// ElementCount returns the number of components per element for an accessor
// type string. Unrecognized types are an error, never a silent fallback.
func ElementCount(accessorType string) (int, error) {
	switch accessorType {
	case TypeScalar:
		return 1, nil
	case TypeVec2:
		return 2, nil
	case TypeVec3:
		return 3, nil
	case TypeVec4:
		return 4, nil
	case TypeMat2:
		return 4, nil
	case TypeMat3:
		return 9, nil
	case TypeMat4:
		return 16, nil
	default:
		return 0, fmt.Errorf("%w: type %q", ErrUnsupportedLayout, accessorType)
	}
}

// ComponentWidth returns the byte width of a componentType. Only float,
// uint16 and uint32 components are supported by this loader.
func ComponentWidth(componentType int) (int, error) {
	switch componentType {
	case ComponentFloat:
		return 4, nil
	case ComponentUint16:
		return 2, nil
	case ComponentUint32:
		return 4, nil
	default:
		return 0, fmt.Errorf("%w: componentType %d", ErrUnsupportedLayout, componentType)
	}
}

// Stride returns the tightly packed byte size of one accessor element:
// component count times component width.
func (a *Accessor) Stride() (int, error) {
	count, err := ElementCount(a.Type)
	if err != nil {
		return 0, err
	}
	width, err := ComponentWidth(a.ComponentType)
	if err != nil {
		return 0, err
	}
	return count * width, nil
}

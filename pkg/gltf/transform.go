package gltf

import "github.com/Faultbox/gltfview/pkg/math"

// NodeWorldMatrix composes a node's world transform. The explicit 16-element
// matrix is transposed on load, then scale, rotation and translation are
// applied on top of it in that order. Both the matrix and the TRS fields
// always take effect: glTF forbids documents that supply both, but this is a
// pass-through of whatever the document contains, not a validation step.
func NodeWorldMatrix(node *Node) math.Mat4 {
	base := math.Identity()
	if node.Matrix != nil {
		base = math.Mat4(*node.Matrix).Transpose()
	}

	scale := math.Vec3{X: 1, Y: 1, Z: 1}
	if node.Scale != nil {
		scale = math.Vec3{X: node.Scale[0], Y: node.Scale[1], Z: node.Scale[2]}
	}
	rotation := math.QuatIdentity()
	if node.Rotation != nil {
		rotation = math.Quat{X: node.Rotation[0], Y: node.Rotation[1], Z: node.Rotation[2], W: node.Rotation[3]}
	}
	translation := math.Vec3{}
	if node.Translation != nil {
		translation = math.Vec3{X: node.Translation[0], Y: node.Translation[1], Z: node.Translation[2]}
	}

	m := math.Translate(translation.X, translation.Y, translation.Z)
	m = m.Mul(rotation.ToMat4())
	m = m.Mul(math.Scale(scale.X, scale.Y, scale.Z))
	return m.Mul(base)
}

package scene

import (
	"github.com/Faultbox/gltfview/pkg/gltf"
	"github.com/Faultbox/gltfview/pkg/math"
)

// Bounds is a world-space axis-aligned bounding box.
type Bounds struct {
	Min math.Vec3
	Max math.Vec3
}

// extend grows the box to include p.
func (b *Bounds) extend(p math.Vec3) {
	if p.X < b.Min.X {
		b.Min.X = p.X
	}
	if p.Y < b.Min.Y {
		b.Min.Y = p.Y
	}
	if p.Z < b.Min.Z {
		b.Min.Z = p.Z
	}
	if p.X > b.Max.X {
		b.Max.X = p.X
	}
	if p.Y > b.Max.Y {
		b.Max.Y = p.Y
	}
	if p.Z > b.Max.Z {
		b.Max.Z = p.Z
	}
}

// meshBounds computes the world-space bounding box over every vertex of the
// given meshes. Returns false when no mesh carries positions.
func meshBounds(meshes []*gltf.MeshData) (Bounds, bool) {
	const big = 1e20
	b := Bounds{
		Min: math.Vec3{X: big, Y: big, Z: big},
		Max: math.Vec3{X: -big, Y: -big, Z: -big},
	}
	any := false

	for _, mesh := range meshes {
		positions := gltf.DecodeVec3Stream(mesh.Streams.Position)
		for _, p := range positions {
			w := mesh.World.TransformPoint([3]float32{p.X, p.Y, p.Z})
			b.extend(math.Vec3{X: w[0], Y: w[1], Z: w[2]})
			any = true
		}
	}
	return b, any
}

package models

import (
	"github.com/go-gl/mathgl/mgl32"
)

// VertexAttributes holds the per-vertex inputs to the vertex transform
// stage. One instance describes a single vertex in a buffer; values are
// supplied by the geometry layer and are read-only during a draw.
type VertexAttributes struct {
	// Position is the vertex location in model space, in mm.
	Position mgl32.Vec3

	// TexCoord is the texture coordinate used to sample the volume
	// texture downstream, normalized to [0,1] along each axis.
	TexCoord mgl32.Vec3

	// VoxelCoord identifies the voxel location corresponding to this
	// vertex, in voxel units.
	VoxelCoord mgl32.Vec3
}

// Varyings holds the per-vertex outputs of the vertex transform stage,
// interpolated across the primitive by the downstream fragment stage.
type Varyings struct {
	// ClipPosition is the clip-space vertex position, the product of
	// the draw call's transform matrix and the homogeneous position.
	ClipPosition mgl32.Vec4

	// TexCoord is the forwarded texture coordinate. The legacy stage
	// widens the 3-component input and forces w to 1; the modern stage
	// populates only xyz and leaves w at zero.
	TexCoord mgl32.Vec4

	// VoxelCoord is the forwarded voxel coordinate. Populated by the
	// modern stage only.
	VoxelCoord mgl32.Vec3

	// Colour is the constant colour factor. The modern stage emits
	// opaque white; the legacy stage leaves it zero.
	Colour mgl32.Vec4
}

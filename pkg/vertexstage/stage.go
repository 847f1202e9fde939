// Package vertexstage implements the per-vertex transform stage of the
// volume rendering backend. A stage maps one vertex's attributes to the
// varying values consumed by the downstream fragment stage: it applies
// the draw call's model-view-projection transform to the position and
// forwards the texture and voxel coordinates unchanged.
//
// Two variants exist, mirroring the two shading dialects the backend
// targets. Both compute identical clip-space positions for identical
// inputs; they differ only in how the matrix product is expressed and
// in which varyings they emit.
package vertexstage

import (
	"github.com/go-gl/mathgl/mgl32"

	"voxelview/internal/models"
)

// Dialect identifies which shading dialect a stage mirrors.
type Dialect int

const (
	// DialectLegacy targets an instruction set without a matrix-vector
	// multiply primitive; the transform is consumed as four row vectors.
	DialectLegacy Dialect = iota

	// DialectModern targets a dialect with a native mat4 multiply.
	DialectModern
)

// String returns the lowercase dialect name used in filenames and logs.
func (d Dialect) String() string {
	switch d {
	case DialectLegacy:
		return "legacy"
	case DialectModern:
		return "modern"
	default:
		return "unknown"
	}
}

// Stage is a pure per-vertex transform. Transform must not retain
// either argument, must not mutate in, and must populate every field of
// out so that reused output buffers never leak values between vertices.
// Implementations are immutable after construction and safe for
// concurrent use from multiple workers.
type Stage interface {
	// Dialect reports which variant this stage implements.
	Dialect() Dialect

	// Transform computes the varyings for a single vertex.
	Transform(in *models.VertexAttributes, out *models.Varyings)
}

// Modern computes the clip-space position with a single matrix-vector
// multiply and forwards the voxel and texture coordinates untouched,
// together with a constant opaque-white colour factor.
type Modern struct {
	transform mgl32.Mat4
}

// NewModern returns a modern-dialect stage bound to the given
// model-view-projection transform for the duration of a draw call.
func NewModern(transform mgl32.Mat4) *Modern {
	return &Modern{transform: transform}
}

// Dialect implements Stage.
func (s *Modern) Dialect() Dialect { return DialectModern }

// Transform implements Stage.
func (s *Modern) Transform(in *models.VertexAttributes, out *models.Varyings) {
	out.ClipPosition = s.transform.Mul4x1(in.Position.Vec4(1))
	out.TexCoord = in.TexCoord.Vec4(0)
	out.VoxelCoord = in.VoxelCoord
	out.Colour = mgl32.Vec4{1, 1, 1, 1}
}

// Legacy computes the clip-space position as four explicit dot products
// against the transform's rows, the form required by instruction sets
// that predate a unified matrix multiply. It widens the 3-component
// texture coordinate to 4 components with w forced to 1, and emits no
// voxel coordinate or colour factor.
type Legacy struct {
	rows [4]mgl32.Vec4
}

// NewLegacy returns a legacy-dialect stage bound to the given
// transform, decomposed into the four row vectors the dialect exposes.
func NewLegacy(transform mgl32.Mat4) *Legacy {
	return &Legacy{rows: [4]mgl32.Vec4{
		transform.Row(0),
		transform.Row(1),
		transform.Row(2),
		transform.Row(3),
	}}
}

// Rows returns the transform as the four row vectors handed to the
// execution environment as separate uniform parameters.
func (s *Legacy) Rows() [4]mgl32.Vec4 { return s.rows }

// Dialect implements Stage.
func (s *Legacy) Dialect() Dialect { return DialectLegacy }

// Transform implements Stage.
func (s *Legacy) Transform(in *models.VertexAttributes, out *models.Varyings) {
	pos := in.Position.Vec4(1)
	out.ClipPosition = mgl32.Vec4{
		s.rows[0].Dot(pos),
		s.rows[1].Dot(pos),
		s.rows[2].Dot(pos),
		s.rows[3].Dot(pos),
	}
	out.TexCoord = in.TexCoord.Vec4(1)
	// This dialect declares no voxel or colour varyings.
	out.VoxelCoord = mgl32.Vec3{}
	out.Colour = mgl32.Vec4{}
}

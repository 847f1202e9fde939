// Package xform builds the model-view-projection matrices consumed by
// the vertex transform stage. Composition runs in float64 via gonum so
// that long chains of transform components do not lose precision
// before the final conversion to the float32 form the stage uses.
package xform

import (
	"github.com/go-gl/mathgl/mgl32"
	"gonum.org/v1/gonum/mat"

	"voxelview/internal/models"
)

// toDense converts a float32 column-major matrix to a float64 dense
// matrix in row-major order.
func toDense(m mgl32.Mat4) *mat.Dense {
	d := mat.NewDense(4, 4, nil)
	for row := 0; row < 4; row++ {
		for col := 0; col < 4; col++ {
			d.Set(row, col, float64(m.At(row, col)))
		}
	}
	return d
}

// fromDense converts a float64 dense matrix back to the float32
// column-major form.
func fromDense(d mat.Matrix) mgl32.Mat4 {
	var m mgl32.Mat4
	for row := 0; row < 4; row++ {
		for col := 0; col < 4; col++ {
			m[col*4+row] = float32(d.At(row, col))
		}
	}
	return m
}

// Concat composes a chain of 4x4 transforms into a single matrix.
// Transforms apply right to left: Concat(projection, view, model)
// yields the matrix that applies the model transform first.
func Concat(transforms ...mgl32.Mat4) mgl32.Mat4 {
	if len(transforms) == 0 {
		return mgl32.Ident4()
	}

	result := toDense(transforms[0])
	for _, t := range transforms[1:] {
		var product mat.Dense
		product.Mul(result, toDense(t))
		result = &product
	}

	return fromDense(result)
}

// Rows decomposes a matrix into the four row vectors the legacy
// dialect consumes as separate uniform parameters.
func Rows(m mgl32.Mat4) [4]mgl32.Vec4 {
	return [4]mgl32.Vec4{m.Row(0), m.Row(1), m.Row(2), m.Row(3)}
}

// VoxelToWorld returns the transform from voxel coordinates to
// physical model-space coordinates in mm.
func VoxelToWorld(vol *models.Volume) mgl32.Mat4 {
	return mgl32.Scale3D(
		float32(vol.VoxelSize.X),
		float32(vol.VoxelSize.Y),
		float32(vol.VoxelSize.Z),
	)
}

// OrthoProjection returns an orthographic projection whose view box
// bounds the volume's physical extent.
func OrthoProjection(vol *models.Volume) mgl32.Mat4 {
	width := float32(float64(vol.Width) * vol.VoxelSize.X)
	height := float32(float64(vol.Height) * vol.VoxelSize.Y)
	depth := float32(float64(vol.Depth) * vol.VoxelSize.Z)

	return mgl32.Ortho(0, width, 0, height, -depth, depth)
}

// Package geometry generates the vertex buffers the transform stage
// consumes: axis-aligned slice quads through a voxel volume, with
// per-vertex model-space position, normalized texture coordinate and
// voxel coordinate.
package geometry

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"

	"voxelview/internal/models"
)

// QuadVertexCount is the number of vertices in one slice quad
// (two triangles).
const QuadVertexCount = 6

// SliceQuad builds the quad spanning the axis-aligned slice through
// the volume at the given voxel position. Positions are in physical mm
// (voxel index times voxel size), texture coordinates are normalized
// to [0,1] along each axis, and voxel coordinates are in voxel units.
func SliceQuad(vol *models.Volume, axis string, position int) ([]models.VertexAttributes, error) {
	if position < 0 {
		return nil, fmt.Errorf("position must be non-negative")
	}

	// Voxel-space corners of the quad, counter-clockwise.
	var corners [4]mgl32.Vec3

	w := float32(vol.Width)
	h := float32(vol.Height)
	d := float32(vol.Depth)

	switch axis {
	case "x", "X":
		// Quad spans the YZ plane.
		if position >= vol.Width {
			return nil, fmt.Errorf("position %d exceeds width %d", position, vol.Width)
		}
		x := float32(position)
		corners = [4]mgl32.Vec3{
			{x, 0, 0},
			{x, h, 0},
			{x, h, d},
			{x, 0, d},
		}

	case "y", "Y":
		// Quad spans the XZ plane.
		if position >= vol.Height {
			return nil, fmt.Errorf("position %d exceeds height %d", position, vol.Height)
		}
		y := float32(position)
		corners = [4]mgl32.Vec3{
			{0, y, 0},
			{w, y, 0},
			{w, y, d},
			{0, y, d},
		}

	case "z", "Z":
		// Quad spans the XY plane.
		if position >= vol.Depth {
			return nil, fmt.Errorf("position %d exceeds depth %d", position, vol.Depth)
		}
		z := float32(position)
		corners = [4]mgl32.Vec3{
			{0, 0, z},
			{w, 0, z},
			{w, h, z},
			{0, h, z},
		}

	default:
		return nil, fmt.Errorf("invalid axis: %s (must be x, y, or z)", axis)
	}

	// Two triangles sharing the first corner.
	order := [QuadVertexCount]int{0, 1, 2, 0, 2, 3}

	quad := make([]models.VertexAttributes, 0, QuadVertexCount)
	for _, corner := range order {
		voxel := corners[corner]
		quad = append(quad, models.VertexAttributes{
			Position: mgl32.Vec3{
				voxel.X() * float32(vol.VoxelSize.X),
				voxel.Y() * float32(vol.VoxelSize.Y),
				voxel.Z() * float32(vol.VoxelSize.Z),
			},
			TexCoord: mgl32.Vec3{
				voxel.X() / w,
				voxel.Y() / h,
				voxel.Z() / d,
			},
			VoxelCoord: voxel,
		})
	}

	return quad, nil
}

// SliceSequence builds one quad for every slice position along the
// given axis, in ascending order.
func SliceSequence(vol *models.Volume, axis string) ([]models.VertexAttributes, error) {
	var maxPos int
	switch axis {
	case "x", "X":
		maxPos = vol.Width
	case "y", "Y":
		maxPos = vol.Height
	case "z", "Z":
		maxPos = vol.Depth
	default:
		return nil, fmt.Errorf("invalid axis: %s (must be x, y, or z)", axis)
	}

	vertices := make([]models.VertexAttributes, 0, maxPos*QuadVertexCount)
	for pos := 0; pos < maxPos; pos++ {
		quad, err := SliceQuad(vol, axis, pos)
		if err != nil {
			return nil, err
		}
		vertices = append(vertices, quad...)
	}

	return vertices, nil
}

package models

// Volume describes the voxel grid that slice geometry is generated
// from. Only the grid dimensions and physical spacing are needed here;
// the voxel intensity data lives with the texture upload layer.
type Volume struct {
	// Width, Height, Depth are the grid dimensions in voxels.
	Width, Height, Depth int

	// VoxelSize is the physical size of each voxel in mm.
	VoxelSize struct {
		X, Y, Z float64
	}
}

// NewVolume returns a volume with the given dimensions and an isotropic
// voxel size of 1mm.
func NewVolume(width, height, depth int) *Volume {
	vol := &Volume{Width: width, Height: height, Depth: depth}
	vol.VoxelSize.X = 1.0
	vol.VoxelSize.Y = 1.0
	vol.VoxelSize.Z = 1.0
	return vol
}

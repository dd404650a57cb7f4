package component

import "github.com/milk9111/spacesurvival/voxel"

type VoxelTerrain struct {
	Chunk *voxel.Chunk
}

var VoxelTerrainComponent = NewComponent[VoxelTerrain]("voxel_terrain")

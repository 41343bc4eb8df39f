package bvh

import (
	"github.com/gekko3d/voxtrace/voxelrt/rt/core"
	"github.com/gekko3d/voxtrace/voxelrt/rt/volume"
	"github.com/go-gl/mathgl/mgl32"
)

// CubeBVH owns a single voxel cube. It rotates Y then X then Z around the
// cube center.
type CubeBVH struct {
	BLAS
	Cube *volume.Cube

	// PlayerModel cubes ignore rays they cast and are never erased.
	PlayerModel bool
}

func NewCubeBVH(size [3]int, worldSize float32) *CubeBVH {
	c := &CubeBVH{Cube: volume.NewCube(size, worldSize)}
	c.init(c, cubePivot(c.Cube), core.RotateYXZ)
	c.Build()
	return c
}

// SetCube reallocates the grid and rebuilds the tree around it.
func (c *CubeBVH) SetCube(size [3]int) {
	c.Cube.Initialize(size)
	c.Transform.SetPivot(cubePivot(c.Cube))
	c.Build()
}

func cubePivot(cube *volume.Cube) mgl32.Vec3 {
	return cube.Bounds.Max.Mul(0.5)
}

func (c *CubeBVH) primitiveCount() int {
	return 1
}

func (c *CubeBVH) primitiveBounds(int32) core.AABB {
	return c.Cube.Bounds
}

func (c *CubeBVH) primitiveCentroid(int32) mgl32.Vec3 {
	return c.Cube.Bounds.Centroid()
}

func (c *CubeBVH) hitID() int {
	return c.Cube.ID
}

func (c *CubeBVH) onSetID(id int) {
	c.Cube.ID = id
}

func (c *CubeBVH) intersect(ray *core.Ray, _ int32) {
	c.Cube.FindNearest(ray)
}

func (c *CubeBVH) occludes(ray *core.Ray, tint *core.Tint, _ int32) bool {
	return c.Cube.FindOcclusion(ray, tint)
}

func (c *CubeBVH) intersectFromPlayer(ray *core.Ray, _ int32, sourceID int) {
	if sourceID == c.ID {
		return
	}
	c.Cube.FindNearest(ray)
}

func (c *CubeBVH) eraseVoxels(ray *core.Ray) *volume.Cube {
	if c.PlayerModel {
		return nil
	}
	if c.Cube.EraseVoxels(ray) {
		return c.Cube
	}
	return nil
}

func (c *CubeBVH) materialExit(ray *core.Ray, t core.MaterialType) {
	c.Cube.FindMaterialExit(ray, t)
}

// CubeInstanceBVH places a shared cube. Many instances may point at the same
// grid, so instances never erase. Hits report the instance id.
type CubeInstanceBVH struct {
	BLAS
	Cube *volume.Cube
}

func NewCubeInstanceBVH(cube *volume.Cube) *CubeInstanceBVH {
	c := &CubeInstanceBVH{Cube: cube}
	c.init(c, cubePivot(cube), core.RotateXYZ)
	c.Build()
	return c
}

func (c *CubeInstanceBVH) primitiveCount() int {
	return 1
}

func (c *CubeInstanceBVH) primitiveBounds(int32) core.AABB {
	return c.Cube.Bounds
}

func (c *CubeInstanceBVH) primitiveCentroid(int32) mgl32.Vec3 {
	return c.Cube.Bounds.Centroid()
}

func (c *CubeInstanceBVH) hitID() int {
	return c.ID
}

func (c *CubeInstanceBVH) intersect(ray *core.Ray, _ int32) {
	t := ray.T
	c.Cube.FindNearest(ray)
	if ray.T < t {
		ray.ID = c.ID
	}
}

func (c *CubeInstanceBVH) occludes(ray *core.Ray, tint *core.Tint, _ int32) bool {
	return c.Cube.FindOcclusion(ray, tint)
}

func (c *CubeInstanceBVH) intersectFromPlayer(ray *core.Ray, i int32, sourceID int) {
	if sourceID == c.ID {
		return
	}
	c.intersect(ray, i)
}

func (c *CubeInstanceBVH) materialExit(ray *core.Ray, t core.MaterialType) {
	c.Cube.FindMaterialExit(ray, t)
}

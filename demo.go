package voxtrace

import (
	"github.com/chewxy/math32"
	"github.com/gekko3d/voxtrace/voxelrt/rt/bvh"
	"github.com/gekko3d/voxtrace/voxelrt/rt/core"
	"github.com/gekko3d/voxtrace/voxelrt/rt/volume"
	"github.com/go-gl/mathgl/mgl32"
)

// DemoObjects builds a small world: a voxel island with a glass block and a
// spire, a rotated copy of the island, a row of spheres, a glass orb and a
// triangle wall. The island spans [-4, 4] x [0, 3] x [-4, 4].
func DemoObjects(worldSize float32, materials *core.MaterialList) []bvh.Object {
	stone := materials.AddNonMetal(0.8)
	grass := materials.AddNonMetal(0.9)
	glass := materials.AddGlass(1.5, 0.2)
	metal := materials.AddMetal(0.1)
	water := materials.AddWater(1.33, 0.1)

	island := bvh.NewCubeBVH([3]int{64, 24, 64}, worldSize)
	volume.FillBox(island.Cube, [3]int{0, 0, 0}, [3]int{63, 7, 63}, stone, 0x7A6A5A)
	volume.FillBox(island.Cube, [3]int{40, 6, 40}, [3]int{58, 7, 58}, water, 0x3060C0)
	volume.FillSphere(island.Cube, mgl32.Vec3{28, 6, 28}, 12, grass, 0x4C9A3C)
	volume.FillBox(island.Cube, [3]int{6, 8, 6}, [3]int{14, 16, 14}, glass, 0x9FD8FF)
	volume.FillCone(island.Cube, mgl32.Vec3{50, 8, 14}, mgl32.Vec3{50, 23, 14}, 6, stone, 0x8C8C8C)

	local := island.Cube.Bounds.Max
	scale := 8 / local.X()
	island.SetTransform(
		mgl32.Vec3{scale, scale, scale},
		mgl32.Vec3{},
		mgl32.Vec3{-local.X() * 0.5, local.Y() * 0.5 * (scale - 1), -local.Z() * 0.5},
	)

	copyOf := bvh.NewCubeInstanceBVH(island.Cube)
	copyOf.SetTransform(
		mgl32.Vec3{scale / 2, scale / 2, scale / 2},
		mgl32.Vec3{0, math32.Pi / 4, 0},
		mgl32.Vec3{9, 0.5, -2},
	)

	var row []core.Sphere
	for i := 0; i < 5; i++ {
		row = append(row, core.NewSphere(mgl32.Vec3{-4 + 2*float32(i), 4, -5}, 0.6, metal, 0xD0B070))
	}
	spheres := bvh.NewSphereListBVH(row)

	orb := bvh.NewSingleSphereBVH(core.NewSphere(mgl32.Vec3{0.5, 0.5, 0.5}, 0.5, glass, 0xB0E0FF))
	orb.SetTransform(mgl32.Vec3{1.5, 1.5, 1.5}, mgl32.Vec3{}, mgl32.Vec3{-6, 1.5, 3})

	a, b := mgl32.Vec3{-6, 0, -8}, mgl32.Vec3{6, 0, -8}
	c, d := mgl32.Vec3{-6, 5, -8}, mgl32.Vec3{6, 5, -8}
	wall := bvh.NewTriangleBVH([]core.Triangle{
		core.NewTriangle(a, b, c, stone, 0xC08060),
		core.NewTriangle(b, d, c, stone, 0xC08060),
	})

	return []bvh.Object{island, copyOf, spheres, orb, wall}
}

// DemoCamera looks at the island from the front.
func DemoCamera() *Camera {
	c := NewCamera(mgl32.Vec3{0, 7, 14})
	c.LookAt(mgl32.Vec3{0, 1.5, 0})
	return c
}

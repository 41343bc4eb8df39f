package bvh

import (
	"github.com/gekko3d/voxtrace/voxelrt/rt/core"
	"github.com/go-gl/mathgl/mgl32"
)

// Transform pivot of non voxel objects.
var unitPivot = mgl32.Vec3{0.5, 0.5, 0.5}

// SingleSphereBVH holds one analytic sphere. Spheres never block the player.
type SingleSphereBVH struct {
	BLAS
	Sphere core.Sphere
}

func NewSingleSphereBVH(s core.Sphere) *SingleSphereBVH {
	b := &SingleSphereBVH{Sphere: s}
	b.init(b, unitPivot, core.RotateXYZ)
	b.ID = core.SphereID
	b.Build()
	return b
}

func (b *SingleSphereBVH) primitiveCount() int {
	return 1
}

func (b *SingleSphereBVH) primitiveBounds(int32) core.AABB {
	return b.Sphere.Bounds()
}

func (b *SingleSphereBVH) primitiveCentroid(int32) mgl32.Vec3 {
	return b.Sphere.Center
}

func (b *SingleSphereBVH) hitID() int {
	return core.SphereID
}

func (b *SingleSphereBVH) intersect(ray *core.Ray, _ int32) {
	b.Sphere.IntersectNearest(ray)
}

func (b *SingleSphereBVH) intersectFromPlayer(*core.Ray, int32, int) {}

func (b *SingleSphereBVH) occludes(ray *core.Ray, tint *core.Tint, _ int32) bool {
	return b.Sphere.Occludes(ray, tint)
}

// SphereListBVH holds many spheres under a SAH built tree.
type SphereListBVH struct {
	BLAS
	Spheres []core.Sphere
}

func NewSphereListBVH(spheres []core.Sphere) *SphereListBVH {
	b := &SphereListBVH{Spheres: spheres}
	b.init(b, unitPivot, core.RotateXYZ)
	b.ID = core.SphereID
	b.Build()
	return b
}

func (b *SphereListBVH) primitiveCount() int {
	return len(b.Spheres)
}

func (b *SphereListBVH) primitiveBounds(i int32) core.AABB {
	return b.Spheres[i].Bounds()
}

func (b *SphereListBVH) primitiveCentroid(i int32) mgl32.Vec3 {
	return b.Spheres[i].Center
}

func (b *SphereListBVH) hitID() int {
	return core.SphereID
}

func (b *SphereListBVH) intersect(ray *core.Ray, i int32) {
	b.Spheres[i].IntersectNearest(ray)
}

func (b *SphereListBVH) intersectFromPlayer(*core.Ray, int32, int) {}

func (b *SphereListBVH) occludes(ray *core.Ray, tint *core.Tint, i int32) bool {
	return b.Spheres[i].Occludes(ray, tint)
}

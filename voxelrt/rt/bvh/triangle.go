package bvh

import (
	"github.com/gekko3d/voxtrace/voxelrt/rt/core"
	"github.com/go-gl/mathgl/mgl32"
)

// TriangleBVH holds a triangle soup under a SAH built tree. Player rays
// cast with source id core.TriangleID pass through all triangles.
type TriangleBVH struct {
	BLAS
	Triangles []core.Triangle
}

func NewTriangleBVH(triangles []core.Triangle) *TriangleBVH {
	b := &TriangleBVH{Triangles: triangles}
	b.init(b, unitPivot, core.RotateXYZ)
	b.ID = core.TriangleID
	b.Build()
	return b
}

func (b *TriangleBVH) primitiveCount() int {
	return len(b.Triangles)
}

func (b *TriangleBVH) primitiveBounds(i int32) core.AABB {
	return b.Triangles[i].Bounds()
}

func (b *TriangleBVH) primitiveCentroid(i int32) mgl32.Vec3 {
	return b.Triangles[i].Centroid
}

func (b *TriangleBVH) hitID() int {
	return core.TriangleID
}

func (b *TriangleBVH) intersect(ray *core.Ray, i int32) {
	b.Triangles[i].IntersectNearest(ray)
}

func (b *TriangleBVH) intersectFromPlayer(ray *core.Ray, i int32, sourceID int) {
	if sourceID == core.TriangleID {
		return
	}
	b.Triangles[i].IntersectNearest(ray)
}

func (b *TriangleBVH) occludes(ray *core.Ray, tint *core.Tint, i int32) bool {
	return b.Triangles[i].Occludes(ray, tint)
}

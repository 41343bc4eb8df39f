package bvh

import (
	"math"
	"testing"

	"github.com/gekko3d/voxtrace/voxelrt/rt/core"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	stone = core.PackMaterial(1, core.NonMetal) | 0x808080
	glass = core.PackMaterial(2, core.Glass) | 0x00FF00
	water = core.PackMaterial(3, core.Water) | 0x0000FF
)

func twoSpheres() *SphereListBVH {
	return NewSphereListBVH([]core.Sphere{
		core.NewSphere(mgl32.Vec3{0, 0, 0}, 0.1, core.PackMaterial(1, core.NonMetal), 0xFF0000),
		core.NewSphere(mgl32.Vec3{5, 0, 0}, 0.1, core.PackMaterial(1, core.NonMetal), 0x00FF00),
	})
}

// triangleGrid makes a deterministic n x n patch of quads split into triangles.
func triangleGrid(n int) []core.Triangle {
	var tris []core.Triangle
	for z := 0; z < n; z++ {
		for x := 0; x < n; x++ {
			h := float32((x*7+z*3)%5) * 0.1
			a := mgl32.Vec3{float32(x), h, float32(z)}
			b := mgl32.Vec3{float32(x + 1), h, float32(z)}
			c := mgl32.Vec3{float32(x), h, float32(z + 1)}
			d := mgl32.Vec3{float32(x + 1), h, float32(z + 1)}
			tris = append(tris,
				core.NewTriangle(a, b, c, water, 0),
				core.NewTriangle(b, d, c, water, 0),
			)
		}
	}
	return tris
}

func TestTwoSpheresNearest(t *testing.T) {
	b := twoSpheres()
	require.Equal(t, 3, b.NodesUsed())
	assert.False(t, b.Nodes[0].isLeaf())

	r := core.NewRay(mgl32.Vec3{-1, 0, 0}, mgl32.Vec3{1, 0, 0}, core.TMax)
	b.FindNearest(&r)

	assert.InDelta(t, 0.9, r.T, 1e-5)
	assert.Equal(t, core.SphereID, r.ID)
	assert.Equal(t, uint32(0xFF0000), r.Hit&core.ColorMask)
	assert.InDelta(t, -1.0, r.Normal.X(), 1e-5)
}

func TestIdentityTransformMatchesPrimitive(t *testing.T) {
	s := core.NewSphere(mgl32.Vec3{0.3, 0.2, 0.1}, 0.4, stone, 0)
	b := NewSingleSphereBVH(s)

	origin, dir := mgl32.Vec3{-2, 0.1, 0.3}, mgl32.Vec3{1, 0.05, -0.1}
	direct := core.NewRay(origin, dir, core.TMax)
	s.IntersectNearest(&direct)
	require.False(t, direct.Missed())

	traced := core.NewRay(origin, dir, core.TMax)
	b.FindNearest(&traced)

	assert.InDelta(t, direct.T, traced.T, 1e-5)
	assert.True(t, direct.Normal.ApproxEqualThreshold(traced.Normal.Normalize(), 1e-4))
	assert.Equal(t, direct.Hit, traced.Hit)
}

func TestTranslationShiftsHit(t *testing.T) {
	b := twoSpheres()
	base := core.NewRay(mgl32.Vec3{-1, 0, 0}, mgl32.Vec3{1, 0, 0}, core.TMax)
	b.FindNearest(&base)
	require.False(t, base.Missed())

	offset := mgl32.Vec3{0, 2, -3}
	b.SetTransform(mgl32.Vec3{1, 1, 1}, mgl32.Vec3{}, offset)

	moved := core.NewRay(mgl32.Vec3{-1, 0, 0}.Add(offset), mgl32.Vec3{1, 0, 0}, core.TMax)
	b.FindNearest(&moved)
	require.False(t, moved.Missed())
	assert.True(t, moved.IntersectionPoint().ApproxEqualThreshold(base.IntersectionPoint().Add(offset), 1e-4))

	old := core.NewRay(mgl32.Vec3{-1, 0, 0}, mgl32.Vec3{1, 0, 0}, core.TMax)
	b.FindNearest(&old)
	assert.True(t, old.Missed())
	assert.True(t, b.WorldBounds.Contains(mgl32.Vec3{5, 2, -3}))
}

func TestSAHBuildDeterministic(t *testing.T) {
	first := NewTriangleBVH(triangleGrid(6))
	second := NewTriangleBVH(triangleGrid(6))

	assert.Equal(t, first.NodesUsed(), second.NodesUsed())
	assert.Equal(t, first.Nodes, second.Nodes)
	assert.Equal(t, first.Indices, second.Indices)
	assert.Greater(t, first.NodesUsed(), 1)
}

func TestSAHBuildInvariants(t *testing.T) {
	b := NewTriangleBVH(triangleGrid(5))
	n := len(b.Triangles)

	require.Len(t, b.Nodes, 2*n-1)
	assert.LessOrEqual(t, b.NodesUsed(), 2*n-1)

	seen := make(map[int32]bool)
	for _, idx := range b.Indices {
		seen[idx] = true
	}
	assert.Len(t, seen, n, "indices are a permutation")

	covered := 0
	for i := 0; i < b.NodesUsed(); i++ {
		node := b.Nodes[i]
		if node.isLeaf() {
			covered += int(node.Count)
			for j := node.First; j < node.First+node.Count; j++ {
				assert.True(t, node.Bounds.ContainsAABB(b.Triangles[b.Indices[j]].Bounds()))
			}
			continue
		}
		l, r := node.children()
		assert.Greater(t, l, int32(i), "children come after their parent")
		assert.True(t, node.Bounds.ContainsAABB(b.Nodes[l].Bounds))
		assert.True(t, node.Bounds.ContainsAABB(b.Nodes[r].Bounds))
	}
	assert.Equal(t, n, covered)
}

func TestSAHKeepsCoincidentPrimitivesInOneLeaf(t *testing.T) {
	s := core.NewSphere(mgl32.Vec3{1, 1, 1}, 0.5, stone, 0)
	b := NewSphereListBVH([]core.Sphere{s, s, s})

	assert.Equal(t, 1, b.NodesUsed())
	assert.Equal(t, int32(3), b.Nodes[0].Count)
}

func TestEmptyBLAS(t *testing.T) {
	b := NewSphereListBVH(nil)
	assert.Equal(t, 0, b.NodesUsed())
	assert.True(t, b.WorldBounds.IsEmpty())

	r := core.NewRay(mgl32.Vec3{}, mgl32.Vec3{1, 0, 0}, core.TMax)
	b.FindNearest(&r)
	assert.True(t, r.Missed())
	var tint core.Tint
	assert.False(t, b.FindOcclusion(&r, &tint))
	b.Refit()
}

func TestRefitKeepsTopology(t *testing.T) {
	b := NewSphereListBVH([]core.Sphere{
		core.NewSphere(mgl32.Vec3{0, 0, 0}, 0.5, stone, 0),
		core.NewSphere(mgl32.Vec3{4, 0, 0}, 0.5, stone, 0),
		core.NewSphere(mgl32.Vec3{8, 0, 0}, 0.5, stone, 0),
		core.NewSphere(mgl32.Vec3{12, 0, 0}, 0.5, stone, 0),
	})
	before := make([]Node, b.NodesUsed())
	copy(before, b.Nodes)

	b.Spheres[3].Center = mgl32.Vec3{12, 6, 0}
	b.Refit()

	for i := range before {
		assert.Equal(t, before[i].First, b.Nodes[i].First)
		assert.Equal(t, before[i].Count, b.Nodes[i].Count)
	}
	assert.True(t, b.Nodes[0].Bounds.ContainsAABB(b.Spheres[3].Bounds()))
	assert.True(t, b.WorldBounds.Contains(mgl32.Vec3{12, 6.5, 0}))

	r := core.NewRay(mgl32.Vec3{12, 10, 0}, mgl32.Vec3{0, -1, 0}, core.TMax)
	b.FindNearest(&r)
	assert.InDelta(t, 3.5, r.T, 1e-5)
}

func TestSphereListOcclusion(t *testing.T) {
	b := NewSphereListBVH([]core.Sphere{
		core.NewSphere(mgl32.Vec3{2, 0, 0}, 0.5, core.PackMaterial(2, core.Glass), 0x00FF00),
		core.NewSphere(mgl32.Vec3{6, 0, 0}, 0.5, stone, 0),
	})

	var tint core.Tint
	toNear := core.NewRay(mgl32.Vec3{0, 0, 0}, mgl32.Vec3{1, 0, 0}, 4)
	assert.False(t, b.FindOcclusion(&toNear, &tint))
	assert.Equal(t, float32(0.5), tint.Distance)
	assert.Equal(t, core.Glass, core.MaterialTypeOf(tint.Payload))

	tint = core.Tint{}
	toFar := core.NewRay(mgl32.Vec3{0, 0, 0}, mgl32.Vec3{1, 0, 0}, 10)
	assert.True(t, b.FindOcclusion(&toFar, &tint))

	// a glass sphere that is not on the ray leaves the tint alone
	tint = core.Tint{}
	offAxis := core.NewRay(mgl32.Vec3{0, 3, 0}, mgl32.Vec3{1, 0, 0}, 10)
	assert.False(t, b.FindOcclusion(&offAxis, &tint))
	assert.Equal(t, float32(0), tint.Distance)
}

func TestTriangleNearestToPlayer(t *testing.T) {
	b := NewTriangleBVH(triangleGrid(3))

	r := core.NewRay(mgl32.Vec3{1.3, 5, 1.4}, mgl32.Vec3{0, -1, 0}, core.TMax)
	b.FindNearestToPlayer(&r, core.TriangleID)
	assert.True(t, r.Missed(), "rays cast with the triangle id pass through")

	b.FindNearestToPlayer(&r, 4)
	assert.False(t, r.Missed())
	assert.Equal(t, core.TriangleID, r.ID)
	assert.Equal(t, mgl32.Vec3{0, 1, 0}, r.Normal)
}

func TestSpheresNeverBlockPlayer(t *testing.T) {
	b := twoSpheres()
	r := core.NewRay(mgl32.Vec3{-1, 0, 0}, mgl32.Vec3{1, 0, 0}, core.TMax)
	b.FindNearestToPlayer(&r, 0)
	assert.True(t, r.Missed())
}

func TestSetIDKeepsPrimitiveIDs(t *testing.T) {
	b := twoSpheres()
	b.SetID(9)

	r := core.NewRay(mgl32.Vec3{-1, 0, 0}, mgl32.Vec3{1, 0, 0}, core.TMax)
	b.FindNearest(&r)
	assert.Equal(t, 9, b.ID)
	assert.Equal(t, core.SphereID, r.ID)
}

func TestRotatedSphereNormal(t *testing.T) {
	b := NewSingleSphereBVH(core.NewSphere(mgl32.Vec3{0.5, 0.5, 0.5}, 0.5, stone, 0))
	b.SetTransform(mgl32.Vec3{2, 2, 2}, mgl32.Vec3{0, float32(math.Pi / 2), 0}, mgl32.Vec3{})

	r := core.NewRay(mgl32.Vec3{-5, 0.5, 0.5}, mgl32.Vec3{1, 0, 0}, core.TMax)
	b.FindNearest(&r)

	require.False(t, r.Missed())
	// scaled around the pivot the sphere spans x in [-0.5, 1.5]
	assert.InDelta(t, 4.5, r.T, 1e-4)
	assert.InDelta(t, 1.0, r.Normal.Len(), 1e-5)
	assert.InDelta(t, -1.0, r.Normal.X(), 1e-4)
}

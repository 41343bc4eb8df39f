package bvh

import (
	"github.com/gekko3d/voxtrace/voxelrt/rt/core"
	"github.com/gekko3d/voxtrace/voxelrt/rt/volume"
	"github.com/go-gl/mathgl/mgl32"
)

// kernel is the per primitive half of a BLAS. The tree walk is shared,
// the primitive tests come from the kernel.
type kernel interface {
	primitiveCount() int
	primitiveBounds(i int32) core.AABB
	primitiveCentroid(i int32) mgl32.Vec3

	intersect(ray *core.Ray, i int32)
	occludes(ray *core.Ray, tint *core.Tint, i int32) bool
	intersectFromPlayer(ray *core.Ray, i int32, sourceID int)

	// hitID is the id the kernel writes into Ray.ID on a hit.
	hitID() int
}

// Optional kernel capabilities.
type (
	voxelEraser interface {
		eraseVoxels(ray *core.Ray) *volume.Cube
	}
	materialExiter interface {
		materialExit(ray *core.Ray, t core.MaterialType)
	}
	idListener interface {
		onSetID(id int)
	}
)

// Object is anything the TLAS can hold.
type Object interface {
	Base() *BLAS
}

// BLAS is the bottom level tree of a single object, in object space.
type BLAS struct {
	ID          int
	Nodes       []Node
	Indices     []int32
	Transform   *core.Transform
	WorldBounds core.AABB

	nodesUsed int32
	kernel    kernel
}

func (b *BLAS) init(k kernel, pivot mgl32.Vec3, order core.RotationOrder) {
	b.kernel = k
	b.Transform = core.NewTransform(pivot, order)
	b.WorldBounds = core.EmptyAABB()
}

func (b *BLAS) Base() *BLAS {
	return b
}

// NodesUsed is the number of nodes the last build produced.
func (b *BLAS) NodesUsed() int {
	return int(b.nodesUsed)
}

// Build rebuilds the tree from scratch.
func (b *BLAS) Build() {
	n := b.kernel.primitiveCount()
	b.nodesUsed = 0
	if n == 0 {
		b.Nodes = nil
		b.Indices = nil
		b.WorldBounds = core.EmptyAABB()
		return
	}

	b.Nodes = make([]Node, 2*n-1)
	b.Indices = make([]int32, n)
	for i := range b.Indices {
		b.Indices[i] = int32(i)
	}

	b.Nodes[0] = Node{First: 0, Count: int32(n)}
	b.nodesUsed = 1
	b.updateNodeBounds(0)
	b.subdivide(0)
	b.updateWorldBounds()
}

// Refit recomputes all bounds bottom up without changing the topology.
func (b *BLAS) Refit() {
	if b.nodesUsed == 0 {
		return
	}
	for i := b.nodesUsed - 1; i >= 0; i-- {
		node := &b.Nodes[i]
		if node.isLeaf() {
			b.updateNodeBounds(i)
			continue
		}
		l, r := node.children()
		node.Bounds = b.Nodes[l].Bounds.Union(b.Nodes[r].Bounds)
	}
	b.updateWorldBounds()
}

func (b *BLAS) SetTransform(scale, rotation, translation mgl32.Vec3) {
	b.Transform.Set(scale, rotation, translation)
	b.updateWorldBounds()
}

func (b *BLAS) SetID(id int) {
	b.ID = id
	if l, ok := b.kernel.(idListener); ok {
		l.onSetID(id)
	}
}

// LocalBounds is the root bound in object space.
func (b *BLAS) LocalBounds() core.AABB {
	if b.nodesUsed == 0 {
		return core.EmptyAABB()
	}
	return b.Nodes[0].Bounds
}

func (b *BLAS) updateWorldBounds() {
	if b.nodesUsed == 0 {
		b.WorldBounds = core.EmptyAABB()
		return
	}
	b.WorldBounds = b.Transform.WorldBounds(b.Nodes[0].Bounds)
}

func (b *BLAS) updateNodeBounds(i int32) {
	node := &b.Nodes[i]
	node.Bounds = core.EmptyAABB()
	for j := node.First; j < node.First+node.Count; j++ {
		node.Bounds.GrowAABB(b.kernel.primitiveBounds(b.Indices[j]))
	}
}

func (b *BLAS) FindNearest(ray *core.Ray) {
	if b.nodesUsed == 0 {
		return
	}
	local := b.Transform.ToLocal(ray)
	walk(b.Nodes, &local, func(first, count int32) bool {
		for j := first; j < first+count; j++ {
			b.kernel.intersect(&local, b.Indices[j])
		}
		return false
	})
	b.Transform.CopyHit(&local, ray, b.kernel.hitID())
}

// FindOcclusion reports whether anything in the object blocks ray before
// ray.T. Glass only adds to tint.
func (b *BLAS) FindOcclusion(ray *core.Ray, tint *core.Tint) bool {
	if b.nodesUsed == 0 {
		return false
	}
	local := b.Transform.ToLocal(ray)
	return walk(b.Nodes, &local, func(first, count int32) bool {
		for j := first; j < first+count; j++ {
			if b.kernel.occludes(&local, tint, b.Indices[j]) {
				return true
			}
		}
		return false
	})
}

// FindNearestToPlayer is FindNearest for rays cast by the object with
// sourceID. Kernels may ignore such rays entirely.
func (b *BLAS) FindNearestToPlayer(ray *core.Ray, sourceID int) {
	if b.nodesUsed == 0 {
		return
	}
	local := b.Transform.ToLocal(ray)
	walk(b.Nodes, &local, func(first, count int32) bool {
		for j := first; j < first+count; j++ {
			b.kernel.intersectFromPlayer(&local, b.Indices[j], sourceID)
		}
		return false
	})
	b.Transform.CopyHit(&local, ray, b.kernel.hitID())
}

// EraseVoxels clears voxels along ray and returns the modified cube, or nil.
func (b *BLAS) EraseVoxels(ray *core.Ray) *volume.Cube {
	e, ok := b.kernel.(voxelEraser)
	if !ok || b.nodesUsed == 0 {
		return nil
	}
	local := b.Transform.ToLocal(ray)
	var modified *volume.Cube
	walk(b.Nodes, &local, func(first, count int32) bool {
		if c := e.eraseVoxels(&local); c != nil {
			modified = c
		}
		return false
	})
	return modified
}

// FindMaterialExit finds where ray leaves a volume of type t inside this
// object. Objects without voxels leave the ray untouched.
func (b *BLAS) FindMaterialExit(ray *core.Ray, t core.MaterialType) {
	x, ok := b.kernel.(materialExiter)
	if !ok {
		return
	}
	local := b.Transform.ToLocal(ray)
	x.materialExit(&local, t)
	b.Transform.ReplaceHit(&local, ray, b.kernel.hitID())
}

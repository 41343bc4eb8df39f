package bvh

import (
	"github.com/chewxy/math32"
	"github.com/gekko3d/voxtrace/voxelrt/rt/core"
	"github.com/gekko3d/voxtrace/voxelrt/rt/volume"
)

// TLASNode is a leaf when Left is 0. Node 0 is always the root, so no
// child can live there.
type TLASNode struct {
	Bounds core.AABB
	Left   int32
	Right  int32
	Object int32
}

func (n TLASNode) box() core.AABB {
	return n.Bounds
}

func (n TLASNode) isLeaf() bool {
	return n.Left == 0
}

func (n TLASNode) children() (int32, int32) {
	return n.Left, n.Right
}

func (n TLASNode) span() (int32, int32) {
	return n.Object, 1
}

// TLAS is the top level tree over the world bounds of all objects.
type TLAS struct {
	Nodes   []TLASNode
	Objects []Object

	nodesUsed int
	active    []int32
}

func NewTLAS(objects []Object) *TLAS {
	t := &TLAS{Objects: objects}
	t.Build()
	return t
}

// Build allocates nodes for the current object list and rebuilds.
func (t *TLAS) Build() {
	n := len(t.Objects)
	t.Nodes = make([]TLASNode, 2*n)
	t.active = make([]int32, n)
	t.Rebuild()
}

// NodesUsed is the number of nodes written by the last rebuild, the root
// copy at index 0 included.
func (t *TLAS) NodesUsed() int {
	return t.nodesUsed
}

// Rebuild clusters the objects bottom up. The pair of mutual nearest
// neighbours by merged area is merged first.
func (t *TLAS) Rebuild() {
	n := len(t.Objects)
	if len(t.Nodes) != 2*n {
		t.Build()
		return
	}
	if n == 0 {
		t.nodesUsed = 0
		return
	}

	t.nodesUsed = 1
	for i, obj := range t.Objects {
		t.active[i] = int32(t.nodesUsed)
		t.Nodes[t.nodesUsed] = TLASNode{Bounds: obj.Base().WorldBounds, Object: int32(i)}
		t.nodesUsed++
	}

	count := n
	a := 0
	b := t.findBestMatch(count, a)
	for count > 1 {
		c := t.findBestMatch(count, b)
		if a != c {
			a, b = b, c
			continue
		}

		idxA, idxB := t.active[a], t.active[b]
		t.Nodes[t.nodesUsed] = TLASNode{
			Bounds: t.Nodes[idxA].Bounds.Union(t.Nodes[idxB].Bounds),
			Left:   idxA,
			Right:  idxB,
		}
		t.active[a] = int32(t.nodesUsed)
		t.nodesUsed++
		t.active[b] = t.active[count-1]
		if a == count-1 {
			// the merged node was just moved into slot b
			a = b
		}
		count--
		b = t.findBestMatch(count, a)
	}
	t.Nodes[0] = t.Nodes[t.active[a]]
}

// findBestMatch returns the active slot whose merge with slot a has the
// smallest area, the first one found on ties. It returns -1 when a is the
// only active slot.
func (t *TLAS) findBestMatch(count, a int) int {
	smallest := float32(math32.MaxFloat32)
	best := -1
	boundsA := t.Nodes[t.active[a]].Bounds
	for b := 0; b < count; b++ {
		if b == a {
			continue
		}
		area := boundsA.Union(t.Nodes[t.active[b]].Bounds).Area()
		if area < smallest {
			smallest = area
			best = b
		}
	}
	return best
}

// Bounds is the root bound, empty when there are no objects.
func (t *TLAS) Bounds() core.AABB {
	if t.nodesUsed == 0 {
		return core.EmptyAABB()
	}
	return t.Nodes[0].Bounds
}

func (t *TLAS) nodes() []TLASNode {
	return t.Nodes[:t.nodesUsed]
}

func (t *TLAS) FindNearest(ray *core.Ray) {
	walk(t.nodes(), ray, func(obj, _ int32) bool {
		t.Objects[obj].Base().FindNearest(ray)
		return false
	})
}

func (t *TLAS) FindOcclusion(ray *core.Ray, tint *core.Tint) bool {
	return walk(t.nodes(), ray, func(obj, _ int32) bool {
		return t.Objects[obj].Base().FindOcclusion(ray, tint)
	})
}

func (t *TLAS) FindNearestToPlayer(ray *core.Ray, sourceID int) {
	walk(t.nodes(), ray, func(obj, _ int32) bool {
		t.Objects[obj].Base().FindNearestToPlayer(ray, sourceID)
		return false
	})
}

// EraseVoxels erases along ray in every object it reaches and returns the
// cubes that changed.
func (t *TLAS) EraseVoxels(ray *core.Ray) []*volume.Cube {
	var modified []*volume.Cube
	walk(t.nodes(), ray, func(obj, _ int32) bool {
		if c := t.Objects[obj].Base().EraseVoxels(ray); c != nil {
			modified = append(modified, c)
		}
		return false
	})
	return modified
}

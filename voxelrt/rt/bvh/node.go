package bvh

import (
	"github.com/gekko3d/voxtrace/voxelrt/rt/core"
)

// Node is a BLAS node. Leaves cover Count primitives starting at First in
// the index array. Interior nodes have Count == 0 and their children at
// First and First+1.
type Node struct {
	Bounds core.AABB
	First  int32
	Count  int32
}

func (n Node) box() core.AABB {
	return n.Bounds
}

func (n Node) isLeaf() bool {
	return n.Count > 0
}

func (n Node) children() (int32, int32) {
	return n.First, n.First + 1
}

func (n Node) span() (int32, int32) {
	return n.First, n.Count
}

package bvh

import (
	"github.com/gekko3d/voxtrace/voxelrt/rt/core"
)

// Initial traversal stack capacity. Deeper trees grow the stack.
const stackSeed = 64

type walkable interface {
	box() core.AABB
	isLeaf() bool
	children() (int32, int32)
	span() (int32, int32)
}

// walk visits the leaves of the tree rooted at nodes[0] in near to far
// order. Children are slab tested against the current ray.T, so leaves that
// shorten the ray prune the remaining walk. The walk stops as soon as leaf
// returns true and reports whether that happened.
func walk[N walkable](nodes []N, ray *core.Ray, leaf func(first, count int32) bool) bool {
	if len(nodes) == 0 {
		return false
	}

	var seed [stackSeed]int32
	stack := seed[:0]
	idx := int32(0)

	for {
		node := nodes[idx]
		if node.isLeaf() {
			if leaf(node.span()) {
				return true
			}
			if len(stack) == 0 {
				return false
			}
			idx, stack = stack[len(stack)-1], stack[:len(stack)-1]
			continue
		}

		near, far := node.children()
		nb, fb := nodes[near].box(), nodes[far].box()
		dNear := core.IntersectAABB(ray, nb.Min, nb.Max)
		dFar := core.IntersectAABB(ray, fb.Min, fb.Max)
		if dNear > dFar {
			near, far = far, near
			dNear, dFar = dFar, dNear
		}

		if dNear == core.TMax {
			if len(stack) == 0 {
				return false
			}
			idx, stack = stack[len(stack)-1], stack[:len(stack)-1]
			continue
		}

		idx = near
		if dFar != core.TMax {
			stack = append(stack, far)
		}
	}
}

package bvh

import (
	"github.com/chewxy/math32"
	"github.com/gekko3d/voxtrace/voxelrt/rt/core"
)

// SAH bins per axis. Splits are evaluated on the sahBins-1 inner planes.
const sahBins = 8

type sahBin struct {
	bounds core.AABB
	count  int
}

// subdivide splits a node with the binned SAH until splitting stops paying
// off. Children are appended as a pair so the right child is First+1.
func (b *BLAS) subdivide(idx int32) {
	node := &b.Nodes[idx]
	if node.Count < 2 {
		return
	}

	axis, pos, cost, ok := b.findBestSplit(node)
	if !ok || cost >= b.nodeCost(node) {
		return
	}

	// Hoare partition of the index range around the plane.
	i := node.First
	j := node.First + node.Count - 1
	for i <= j {
		if b.kernel.primitiveCentroid(b.Indices[i])[axis] < pos {
			i++
		} else {
			b.Indices[i], b.Indices[j] = b.Indices[j], b.Indices[i]
			j--
		}
	}

	leftCount := i - node.First
	if leftCount == 0 || leftCount == node.Count {
		return
	}

	left := b.nodesUsed
	right := left + 1
	b.nodesUsed += 2

	b.Nodes[left] = Node{First: node.First, Count: leftCount}
	b.Nodes[right] = Node{First: i, Count: node.Count - leftCount}
	node.First = left
	node.Count = 0

	b.updateNodeBounds(left)
	b.updateNodeBounds(right)
	b.subdivide(left)
	b.subdivide(right)
}

// nodeCost is the cost of leaving node unsplit.
func (b *BLAS) nodeCost(node *Node) float32 {
	return float32(node.Count) * node.Bounds.Area()
}

// findBestSplit evaluates 3 axes x 7 planes over the centroid extent of the
// node. The first strictly cheaper plane wins ties. Planes with an empty
// side are skipped.
func (b *BLAS) findBestSplit(node *Node) (axis int, pos, cost float32, ok bool) {
	cost = math32.MaxFloat32

	for a := 0; a < 3; a++ {
		lo, hi := float32(math32.MaxFloat32), float32(-math32.MaxFloat32)
		for j := node.First; j < node.First+node.Count; j++ {
			c := b.kernel.primitiveCentroid(b.Indices[j])[a]
			lo = math32.Min(lo, c)
			hi = math32.Max(hi, c)
		}
		if lo == hi {
			// flat along this axis
			continue
		}

		var bins [sahBins]sahBin
		for k := range bins {
			bins[k].bounds = core.EmptyAABB()
		}
		scale := sahBins / (hi - lo)
		for j := node.First; j < node.First+node.Count; j++ {
			prim := b.Indices[j]
			k := min(sahBins-1, int((b.kernel.primitiveCentroid(prim)[a]-lo)*scale))
			bins[k].count++
			bins[k].bounds.GrowAABB(b.kernel.primitiveBounds(prim))
		}

		var leftCount, rightCount [sahBins - 1]int
		var leftArea, rightArea [sahBins - 1]float32
		leftBox, rightBox := core.EmptyAABB(), core.EmptyAABB()
		leftSum, rightSum := 0, 0
		for k := 0; k < sahBins-1; k++ {
			leftSum += bins[k].count
			leftCount[k] = leftSum
			leftBox.GrowAABB(bins[k].bounds)
			leftArea[k] = leftBox.Area()

			rightSum += bins[sahBins-1-k].count
			rightCount[sahBins-2-k] = rightSum
			rightBox.GrowAABB(bins[sahBins-1-k].bounds)
			rightArea[sahBins-2-k] = rightBox.Area()
		}

		step := (hi - lo) / sahBins
		for k := 0; k < sahBins-1; k++ {
			if leftCount[k] == 0 || rightCount[k] == 0 {
				continue
			}
			c := float32(leftCount[k])*leftArea[k] + float32(rightCount[k])*rightArea[k]
			if c < cost {
				axis, pos, cost, ok = a, lo+step*float32(k+1), c, true
			}
		}
	}
	return axis, pos, cost, ok
}

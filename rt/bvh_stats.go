package rt

import (
	"fmt"
	"time"
)

// SanityChecksEnabled gates assertf and SanityCheck. On by default so
// tests catch invariant breaks; callers building for production can
// turn it off to skip SanityCheck's full walk of the hierarchy.
var SanityChecksEnabled = true

// assertf panics with a formatted message when cond is false and
// SanityChecksEnabled is on. It exists for programmer errors inside the
// BVH core, never for anything a caller can trigger with bad input.
func assertf(cond bool, format string, args ...any) {
	if !SanityChecksEnabled {
		return
	}
	if !cond {
		panic(fmt.Sprintf(format, args...))
	}
}

// BVHStats summarizes the shape of a built hierarchy.
type BVHStats struct {
	TotalNodes  int
	LeafCount   int
	IndexCount  int
	MinLeafTris int
	MaxLeafTris int
	AvgLeafTris float64
	MinDepth    int
	MaxDepth    int
	AvgDepth    float64
	RootBounds  AABB
	BuildTime   time.Duration
}

// Print writes a short human-readable summary to stdout.
func (s BVHStats) Print() {
	fmt.Printf("BVH stats: %d nodes, %d leaves, %d indices\n", s.TotalNodes, s.LeafCount, s.IndexCount)
	fmt.Printf("  leaf tris   min/max/avg: %d / %d / %.2f\n", s.MinLeafTris, s.MaxLeafTris, s.AvgLeafTris)
	fmt.Printf("  depth       min/max/avg: %d / %d / %.2f\n", s.MinDepth, s.MaxDepth, s.AvgDepth)
	fmt.Printf("  build time: %s\n", s.BuildTime)
}

// Stats walks the built hierarchy and computes summary statistics.
func Stats(bvh *BVH) BVHStats {
	if len(bvh.Nodes) == 0 {
		return BVHStats{RootBounds: NewAABB()}
	}
	s := BVHStats{
		RootBounds:  bvh.Nodes[bvh.Root()].Bounds,
		MinLeafTris: -1,
		MinDepth:    -1,
	}

	type frame struct {
		index uint32
		depth int
	}
	stack := []frame{{bvh.Root(), 0}}

	var depthSum, leafTriSum int

	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		s.TotalNodes++
		node := &bvh.Nodes[f.index]

		if node.IsLeaf() {
			s.LeafCount++
			n := int(node.Count)
			leafTriSum += n
			if s.MinLeafTris == -1 || n < s.MinLeafTris {
				s.MinLeafTris = n
			}
			if n > s.MaxLeafTris {
				s.MaxLeafTris = n
			}
			if s.MinDepth == -1 || f.depth < s.MinDepth {
				s.MinDepth = f.depth
			}
			if f.depth > s.MaxDepth {
				s.MaxDepth = f.depth
			}
			depthSum += f.depth
			continue
		}

		stack = append(stack, frame{node.Left(), f.depth + 1}, frame{node.Right(), f.depth + 1})
	}

	s.IndexCount = len(bvh.Indices)
	if s.LeafCount > 0 {
		s.AvgLeafTris = float64(leafTriSum) / float64(s.LeafCount)
		s.AvgDepth = float64(depthSum) / float64(s.LeafCount)
	}
	if s.MinLeafTris == -1 {
		s.MinLeafTris = 0
	}
	if s.MinDepth == -1 {
		s.MinDepth = 0
	}
	return s
}

// SanityCheck walks the hierarchy and verifies its structural
// invariants: every node's bounds contain its children's bounds, leaf
// index ranges stay inside the index array, every triangle is
// referenced by some leaf, and (tracked in a map of seen indices) no
// triangle index appears in two different leaves unless the build
// method is SBVH, which may legally duplicate triangles across a
// spatial split.
func SanityCheck(bvh *BVH, triangles TriangleSet, allowDuplicates bool) {
	if !SanityChecksEnabled {
		return
	}

	if len(bvh.Nodes) == 0 {
		assertf(len(triangles) == 0, "empty node pool for a non-empty triangle set")
		return
	}

	if root := bvh.Root(); root != 0 {
		assertf(false, "root index must be 0, got %d", root)
	}
	if !bvh.Nodes[0].IsLeaf() {
		assertf(bvh.Nodes[0].Left() == 2, "first child pair must start at index 2, got %d", bvh.Nodes[0].Left())
	}

	seen := make(map[uint32]bool)

	var walk func(index uint32) AABB
	walk = func(index uint32) AABB {
		node := &bvh.Nodes[index]

		if node.IsLeaf() {
			assertf(node.First()+node.Count <= uint32(len(bvh.Indices)),
				"leaf range [%d,%d) exceeds index array of length %d", node.First(), node.First()+node.Count, len(bvh.Indices))
			for i := uint32(0); i < node.Count; i++ {
				idx := bvh.Indices[node.First()+i]
				assertf(int(idx) < len(triangles), "leaf references out-of-range triangle index %d", idx)
				if !allowDuplicates {
					assertf(!seen[idx], "triangle index %d appears in more than one leaf", idx)
				}
				seen[idx] = true

				triBounds := triangles[idx].Bounds()
				assertf(node.Bounds.Contains(triBounds) || boundsApproxContains(node.Bounds, triBounds),
					"leaf bounds do not contain triangle %d", idx)
			}
			return node.Bounds
		}

		if index != 0 {
			assertf(node.Left() > index, "node %d's left child %d must come after it in the pool", index, node.Left())
		}
		assertf(node.Left() < bvh.NextFree, "node %d's left child %d exceeds high-water mark %d", index, node.Left(), bvh.NextFree)

		leftBounds := walk(node.Left())
		rightBounds := walk(node.Right())
		assertf(node.Bounds.Contains(leftBounds) || boundsApproxContains(node.Bounds, leftBounds),
			"interior node bounds do not contain left child bounds")
		assertf(node.Bounds.Contains(rightBounds) || boundsApproxContains(node.Bounds, rightBounds),
			"interior node bounds do not contain right child bounds")
		return node.Bounds
	}

	walk(bvh.Root())

	for i := range triangles {
		assertf(seen[uint32(i)], "triangle %d not referenced by any leaf", i)
	}
}

// boundsApproxContains tolerates the AABB padding padToMinimums applies
// to degenerate (zero-thickness) boxes, which can make a child's padded
// box extend microscopically past its parent's unpadded one.
func boundsApproxContains(outer, inner AABB) bool {
	const eps = 1e-3
	return outer.X.Min-eps <= inner.X.Min && outer.X.Max+eps >= inner.X.Max &&
		outer.Y.Min-eps <= inner.Y.Min && outer.Y.Max+eps >= inner.Y.Max &&
		outer.Z.Min-eps <= inner.Z.Min && outer.Z.Max+eps >= inner.Z.Max
}

// BVHDiag accumulates per-query counters for FindClosestIntersectionDiag,
// feeding ad-hoc debugging and, through TriangleMeshBVH, the node/leaf
// visit counters in GlobalRenderStats.
type BVHDiag struct {
	NodesVisited     int
	LeavesVisited    int
	TrianglesTested  int
	SplitsTraversed  int
	WinningNodeIndex int
}

package rt

import "time"

// buildTask is one unit of pending work on the explicit build stack: a
// node index already allocated in the pool, and the triangle index
// subset it's responsible for.
type buildTask struct {
	nodeIndex uint32
	subset    TriangleMapping
}

// BuildBVH builds a hierarchy over triangles using the named splitting
// method. Subdivision runs off an explicit work-stack rather than
// call-stack recursion, so pathological inputs can't blow the stack and
// the loop stays in the same shape the bucket renderer uses for its
// tile queue.
func BuildBVH(method BVHMethod, triangles TriangleSet) *BVH {
	n := len(triangles)
	bvh := newBVH(n)

	if n == 0 {
		return bvh
	}

	splitter := newSplitter(method)

	stack := []buildTask{{nodeIndex: bvh.Root(), subset: IdentityMapping(n)}}

	for len(stack) > 0 {
		task := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		node := bvh.Node(task.nodeIndex)
		bounds := boundsOf(triangles, task.subset)
		node.Bounds = bounds

		result := splitter.GetSplit(triangles, task.subset, bounds)
		if result.Leaf || len(result.Left) == 0 || len(result.Right) == 0 {
			offset := bvh.AppendIndices(task.subset)
			node.LeftFirst = offset
			node.Count = uint32(len(task.subset))
			continue
		}

		leftIdx, rightIdx := bvh.AllocPair()
		// AllocPair may grow (and move) the pool, so re-fetch before writing.
		node = bvh.Node(task.nodeIndex)
		node.LeftFirst = leftIdx
		node.Count = 0

		stack = append(stack,
			buildTask{nodeIndex: leftIdx, subset: result.Left},
			buildTask{nodeIndex: rightIdx, subset: result.Right},
		)
	}

	return bvh
}

// BuildBVHTimed runs BuildBVH and returns the build along with its
// summary statistics and wall-clock build time.
func BuildBVHTimed(method BVHMethod, triangles TriangleSet) (*BVH, BVHStats) {
	start := time.Now()
	bvh := BuildBVH(method, triangles)
	elapsed := time.Since(start)

	stats := Stats(bvh)
	stats.BuildTime = elapsed
	return bvh, stats
}

func boundsOf(triangles TriangleSet, subset TriangleMapping) AABB {
	box := NewAABB()
	for _, idx := range subset {
		box = NewAABBFromBoxes(box, triangles[idx].Bounds())
	}
	return box
}

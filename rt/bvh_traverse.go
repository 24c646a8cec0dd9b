package rt

import "math"

// TraversalMode selects how the traversal engine orders its descent into
// an interior node's two children. Both modes agree on the winning
// closest hit; ordered descent is purely a pruning optimization.
type TraversalMode int

const (
	// TraversalOrdered descends into whichever child the ray enters
	// first and prunes the farther child once the current best distance
	// is already closer than that child's own entry distance.
	TraversalOrdered TraversalMode = iota
	// TraversalUnordered always visits both children, in pool order,
	// without using the running best distance to skip either one.
	TraversalUnordered
)

// Intersection is a single closest-hit result: the ray parameter at
// which the hit occurred, the index of the triangle that produced it
// (into the TriangleSet the query was run against), and the barycentric
// u/v on that triangle so callers can interpolate per-vertex attributes
// without re-intersecting.
type Intersection struct {
	Distance      float64
	TriangleIndex uint32
	U, V          float64
}

// traversalStack is an explicit node-index stack used in place of
// call-stack recursion, bounded by tree depth and scoped to a single
// query.
type traversalStack []uint32

func (s *traversalStack) push(i uint32) {
	*s = append(*s, i)
}

func (s *traversalStack) pop() (uint32, bool) {
	n := len(*s)
	if n == 0 {
		return 0, false
	}
	top := (*s)[n-1]
	*s = (*s)[:n-1]
	return top, true
}

// FindClosestIntersection returns the minimum-distance triangle hit by
// ray, if any, descending the hierarchy in the given traversal mode. A
// triangle duplicated across leaves by a spatial split is still reported
// exactly once, at its minimum t, since every leaf referencing it is
// tested against the same running best.
func FindClosestIntersection(bvh *BVH, triangles TriangleSet, ray Ray, mode TraversalMode) (Intersection, bool) {
	return findClosest(bvh, triangles, ray, mode, nil)
}

// FindClosestIntersectionDiag behaves like FindClosestIntersection but
// additionally accumulates traversal counters into diag, a caller-owned
// collector.
func FindClosestIntersectionDiag(bvh *BVH, triangles TriangleSet, ray Ray, mode TraversalMode, diag *BVHDiag) (Intersection, bool) {
	return findClosest(bvh, triangles, ray, mode, diag)
}

func findClosest(bvh *BVH, triangles TriangleSet, ray Ray, mode TraversalMode, diag *BVHDiag) (Intersection, bool) {
	origin := ray.Origin()
	invDir := ray.InvDirection()

	best := Intersection{Distance: math.Inf(1)}
	found := false

	if len(bvh.Nodes) == 0 {
		return best, false
	}

	var stack traversalStack
	stack.push(bvh.Root())

	for {
		index, ok := stack.pop()
		if !ok {
			break
		}

		node := &bvh.Nodes[index]
		if diag != nil {
			diag.NodesVisited++
		}

		// Only ordered mode culls popped nodes against the running best.
		cull := best.Distance
		if mode == TraversalUnordered {
			cull = math.Inf(1)
		}
		if _, hit := node.Bounds.IntersectRay(origin, invDir, cull); !hit {
			continue
		}

		if node.IsLeaf() {
			if diag != nil {
				diag.LeavesVisited++
			}
			for i := uint32(0); i < node.Count; i++ {
				triIdx := bvh.Indices[node.First()+i]
				if diag != nil {
					diag.TrianglesTested++
				}
				t, u, v, ok := intersectTrianglePos(triangles[triIdx], origin, ray.Direction())
				// Smallest triangle index wins a t-tie, so ordered and
				// unordered traversal of the same hierarchy agree even when
				// they visit leaves in a different order.
				if ok && (t < best.Distance || (found && t == best.Distance && triIdx < best.TriangleIndex)) {
					best = Intersection{Distance: t, TriangleIndex: triIdx, U: u, V: v}
					found = true
					if diag != nil {
						diag.WinningNodeIndex = int(index)
					}
				}
			}
			continue
		}

		left, right := node.Left(), node.Right()
		if diag != nil {
			diag.SplitsTraversed++
		}

		if mode == TraversalUnordered {
			stack.push(right)
			stack.push(left)
			continue
		}

		leftT, leftHit := bvh.Nodes[left].Bounds.IntersectRay(origin, invDir, best.Distance)
		rightT, rightHit := bvh.Nodes[right].Bounds.IntersectRay(origin, invDir, best.Distance)

		switch {
		case leftHit && rightHit:
			// Push the farther child first so the nearer one pops and
			// is explored first; a tighter best-distance found there
			// then prunes the farther push above when it is popped.
			if leftT <= rightT {
				stack.push(right)
				stack.push(left)
			} else {
				stack.push(left)
				stack.push(right)
			}
		case leftHit:
			stack.push(left)
		case rightHit:
			stack.push(right)
		}
	}

	return best, found
}

// FindAnyIntersection reports whether any triangle lies on ray within
// (0, maxDist), short-circuiting on the first qualifying hit found. The
// witness triangle is not returned because occlusion queries only need
// the boolean.
func FindAnyIntersection(bvh *BVH, triangles TriangleSet, ray Ray, maxDist float64, mode TraversalMode) bool {
	origin := ray.Origin()
	dir := ray.Direction()
	invDir := ray.InvDirection()

	if len(bvh.Nodes) == 0 {
		return false
	}

	var stack traversalStack
	stack.push(bvh.Root())

	for {
		index, ok := stack.pop()
		if !ok {
			break
		}

		node := &bvh.Nodes[index]
		if _, hit := node.Bounds.IntersectRay(origin, invDir, maxDist); !hit {
			continue
		}

		if node.IsLeaf() {
			for i := uint32(0); i < node.Count; i++ {
				triIdx := bvh.Indices[node.First()+i]
				t, _, _, ok := intersectTrianglePos(triangles[triIdx], origin, dir)
				if ok && t > 0 && t < maxDist {
					return true
				}
			}
			continue
		}

		left, right := node.Left(), node.Right()
		if mode == TraversalUnordered {
			stack.push(right)
			stack.push(left)
			continue
		}

		leftT, leftHit := bvh.Nodes[left].Bounds.IntersectRay(origin, invDir, maxDist)
		rightT, rightHit := bvh.Nodes[right].Bounds.IntersectRay(origin, invDir, maxDist)

		switch {
		case leftHit && rightHit:
			if leftT <= rightT {
				stack.push(right)
				stack.push(left)
			} else {
				stack.push(left)
				stack.push(right)
			}
		case leftHit:
			stack.push(left)
		case rightHit:
			stack.push(right)
		}
	}

	return false
}

package rt

import (
	"math"
	"testing"
)

var allMethods = []BVHMethod{BVHMethodStupid, BVHMethodCentroidSAH, BVHMethodSBVH}

// countReferences returns, per triangle index, how many leaves reference it.
func countReferences(bvh *BVH, n int) []int {
	counts := make([]int, n)
	for _, idx := range bvh.Indices {
		counts[idx]++
	}
	return counts
}

// TestBuildCompleteness checks that every input triangle is referenced
// by at least one leaf, for every builder, and that only the SBVH is
// allowed to reference one more than once.
func TestBuildCompleteness(t *testing.T) {
	triangles := randomTriangleSoup(37)

	for _, method := range allMethods {
		bvh := BuildBVH(method, triangles)
		counts := countReferences(bvh, len(triangles))
		for i, c := range counts {
			if c == 0 {
				t.Errorf("%s: triangle %d not referenced by any leaf", method, i)
			}
		}
		if method != BVHMethodSBVH {
			if len(bvh.Indices) != len(triangles) {
				t.Errorf("%s: expected exactly %d indices, got %d", method, len(triangles), len(bvh.Indices))
			}
		} else if len(bvh.Indices) < len(triangles) {
			t.Errorf("SBVH: index array shrank below triangle count: %d < %d", len(bvh.Indices), len(triangles))
		}
	}
}

// TestBuildSanityCheck exercises SanityCheck (bounds containment and
// structural invariants) across all three builders.
func TestBuildSanityCheck(t *testing.T) {
	triangles := randomTriangleSoup(64)
	for _, method := range allMethods {
		bvh := BuildBVH(method, triangles)
		SanityCheck(bvh, triangles, method == BVHMethodSBVH)
	}
}

// TestStupidSplitterTermination checks that StupidSplitter always
// yields exactly one leaf holding every triangle.
func TestStupidSplitterTermination(t *testing.T) {
	triangles := randomTriangleSoup(10)
	bvh := BuildBVH(BVHMethodStupid, triangles)

	if bvh.NodeCount() != 1 {
		t.Fatalf("expected exactly one node, got %d", bvh.NodeCount())
	}
	root := &bvh.Nodes[bvh.Root()]
	if !root.IsLeaf() {
		t.Fatalf("expected root to be a leaf")
	}
	if int(root.Count) != len(triangles) {
		t.Fatalf("expected leaf to hold %d triangles, got %d", len(triangles), root.Count)
	}
}

// TestBuildEmptyTriangleSet covers the degenerate zero-triangle input:
// building must terminate and produce a BVH with no referenced triangles.
func TestBuildEmptyTriangleSet(t *testing.T) {
	for _, method := range allMethods {
		bvh := BuildBVH(method, TriangleSet{})
		if len(bvh.Indices) != 0 {
			t.Errorf("%s: expected no indices for an empty triangle set, got %d", method, len(bvh.Indices))
		}
	}
}

// TestStructuralInvariants checks the pool layout directly: root at
// index 0, first child pair at index 2 for any non-trivial split.
func TestStructuralInvariants(t *testing.T) {
	triangles := twoClusterTriangles()
	bvh := BuildBVH(BVHMethodCentroidSAH, triangles)

	if bvh.Root() != 0 {
		t.Fatalf("root must be index 0, got %d", bvh.Root())
	}
	root := &bvh.Nodes[0]
	if root.IsLeaf() {
		t.Fatalf("expected the two-cluster soup to split, root is a leaf")
	}
	if root.Left() != 2 {
		t.Errorf("expected first child pair at index 2, got %d", root.Left())
	}
	if root.Right() != root.Left()+1 {
		t.Errorf("right child must immediately follow left child")
	}
}

// singleTriangleSet is one triangle with known bounds.
func singleTriangleSet() TriangleSet {
	return TriangleSet{
		{V0: Point3{X: 0, Y: 0, Z: 0}, V1: Point3{X: 1, Y: 0, Z: 0}, V2: Point3{X: 0, Y: 1, Z: 0}},
	}
}

// TestSingleTriangleBuildAndHit checks that every builder reduces a
// one-triangle soup to a single leaf with the expected bounds, and that
// a ray shot at the triangle hits it at distance 1.
func TestSingleTriangleBuildAndHit(t *testing.T) {
	triangles := singleTriangleSet()

	for _, method := range allMethods {
		bvh := BuildBVH(method, triangles)
		root := &bvh.Nodes[bvh.Root()]
		if !root.IsLeaf() || root.Count != 1 {
			t.Fatalf("%s: expected a single leaf with count 1, got leaf=%v count=%d", method, root.IsLeaf(), root.Count)
		}

		low, high := root.Bounds.Low(), root.Bounds.High()
		if low.X > 1e-6 || low.Y > 1e-6 || low.Z > 1e-6 {
			t.Errorf("%s: expected low bounds near (0,0,0), got %v", method, low)
		}
		if math.Abs(high.X-1) > 1e-6 || math.Abs(high.Y-1) > 1e-6 {
			t.Errorf("%s: expected high bounds near (1,1,~0), got %v", method, high)
		}

		ray := NewRay(Point3{X: 0.25, Y: 0.25, Z: -1}, Vec3{X: 0, Y: 0, Z: 1}, 0)
		hit, ok := FindClosestIntersection(bvh, triangles, ray, TraversalOrdered)
		if !ok {
			t.Fatalf("%s: expected a hit", method)
		}
		if math.Abs(hit.Distance-1.0) > 1e-6 {
			t.Errorf("%s: expected distance ~1.0, got %f", method, hit.Distance)
		}
		if hit.TriangleIndex != 0 {
			t.Errorf("%s: expected triangle 0, got %d", method, hit.TriangleIndex)
		}
	}
}

// twoClusterTriangles builds two disjoint clusters far apart on x: four
// small triangles near x=0 and four near x=10, all in the z=0 plane.
// (The splitters force a leaf at three or fewer triangles, so each
// cluster carries enough to stay splittable.)
func twoClusterTriangles() TriangleSet {
	var set TriangleSet
	for _, base := range []float64{0, 10} {
		for i := 0; i < 4; i++ {
			x := base + float64(i)*0.2
			set = append(set, TrianglePos{
				V0: Point3{X: x, Y: 0, Z: 0},
				V1: Point3{X: x + 0.1, Y: 0, Z: 0},
				V2: Point3{X: x, Y: 0.1, Z: 0},
			})
		}
	}
	return set
}

// subtreeLeafInfo collects the triangle indices referenced anywhere under
// the subtree rooted at nodeIndex, and its leaf count.
func subtreeLeafInfo(bvh *BVH, nodeIndex uint32) (map[uint32]bool, int) {
	indices := make(map[uint32]bool)
	leaves := 0
	stack := []uint32{nodeIndex}
	for len(stack) > 0 {
		idx := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		node := &bvh.Nodes[idx]
		if node.IsLeaf() {
			leaves++
			for i := uint32(0); i < node.Count; i++ {
				indices[bvh.Indices[node.First()+i]] = true
			}
			continue
		}
		stack = append(stack, node.Left(), node.Right())
	}
	return indices, leaves
}

// TestDisjointClustersSplitAndPrune checks that the centroid SAH
// builder separates two widely disjoint clusters at the root, and that
// a ray through the first cluster does not descend into the second
// subtree under ordered traversal.
func TestDisjointClustersSplitAndPrune(t *testing.T) {
	triangles := twoClusterTriangles()
	bvh := BuildBVH(BVHMethodCentroidSAH, triangles)

	root := &bvh.Nodes[bvh.Root()]
	if root.IsLeaf() {
		t.Fatalf("expected root to split the two clusters")
	}

	leftSet, leftLeaves := subtreeLeafInfo(bvh, root.Left())
	rightSet, rightLeaves := subtreeLeafInfo(bvh, root.Right())
	mixed := func(set map[uint32]bool) bool {
		var lo, hi bool
		for idx := range set {
			if idx < 4 {
				lo = true
			} else {
				hi = true
			}
		}
		return lo && hi
	}
	if mixed(leftSet) || mixed(rightSet) {
		t.Fatalf("expected the root split to separate the clusters, got left=%v right=%v", leftSet, rightSet)
	}

	ray := NewRay(Point3{X: 0.05, Y: 0.02, Z: -1}, Vec3{X: 0, Y: 0, Z: 1}, 0)
	var diag BVHDiag
	hit, ok := FindClosestIntersectionDiag(bvh, triangles, ray, TraversalOrdered, &diag)
	if !ok || hit.TriangleIndex >= 4 {
		t.Fatalf("expected a hit in the near cluster, got ok=%v idx=%d", ok, hit.TriangleIndex)
	}

	nearLeaves := leftLeaves
	if leftSet[4] || leftSet[5] || leftSet[6] || leftSet[7] {
		nearLeaves = rightLeaves
	}
	if diag.LeavesVisited > nearLeaves {
		t.Errorf("expected ordered traversal to prune the far subtree: visited %d leaves, near subtree has %d", diag.LeavesVisited, nearLeaves)
	}
}

// TestSBVHStraddlingTriangle builds over a large straddling triangle
// plus a cluster of small ones. Whether SAH judges a spatial split
// worthwhile for this particular geometry is a heuristic cost decision
// (see TestSpatialPartitionDuplicatesStraddlingTriangle for a
// deterministic check of the duplication mechanism itself); what must
// hold regardless is that the hierarchy stays complete and sane, and
// that the straddling triangle is still resolved exactly once, at its
// true minimum t.
func TestSBVHStraddlingTriangle(t *testing.T) {
	triangles := TriangleSet{
		{V0: Point3{X: -10, Y: 0, Z: -1}, V1: Point3{X: 10, Y: 0, Z: -1}, V2: Point3{X: 0, Y: 10, Z: -1}},
	}
	triangles = append(triangles, clusterTriangles(100, 0.5)...)

	bvh := BuildBVH(BVHMethodSBVH, triangles)
	SanityCheck(bvh, triangles, true)

	counts := countReferences(bvh, len(triangles))
	sum := 0
	for _, c := range counts {
		sum += c
	}
	if counts[0] >= 2 {
		t.Logf("straddling triangle duplicated across %d leaves, sum of leaf counts %d > %d triangles", counts[0], sum, len(triangles))
	}

	ray := NewRay(Point3{X: 0, Y: 1, Z: -10}, Vec3{X: 0, Y: 0, Z: 1}, 0)
	hit, ok := FindClosestIntersection(bvh, triangles, ray, TraversalOrdered)
	if !ok {
		t.Fatalf("expected the ray to hit the straddling triangle")
	}
	if hit.TriangleIndex != 0 {
		t.Errorf("expected the straddling triangle (index 0) to win, got %d", hit.TriangleIndex)
	}
	if math.Abs(hit.Distance-9) > 1e-6 {
		t.Errorf("expected distance ~9, got %f", hit.Distance)
	}
}

// TestSpatialPartitionDuplicatesStraddlingTriangle deterministically
// exercises the SBVH duplication mechanism itself: a triangle spanning
// the entire extrema bounds on the split axis straddles every possible
// spatial split point on that axis, so spatialPartition must place it
// on both sides no matter which boundary the cost search settles on.
func TestSpatialPartitionDuplicatesStraddlingTriangle(t *testing.T) {
	triangles := TriangleSet{
		{V0: Point3{X: 0, Y: 0, Z: 0}, V1: Point3{X: 10, Y: 0, Z: 0}, V2: Point3{X: 5, Y: 1, Z: 0}},
		{V0: Point3{X: 8, Y: 0, Z: 0}, V1: Point3{X: 8.5, Y: 0, Z: 0}, V2: Point3{X: 8, Y: 0.2, Z: 0}},
		{V0: Point3{X: 8.1, Y: 0.3, Z: 0}, V1: Point3{X: 8.6, Y: 0.3, Z: 0}, V2: Point3{X: 8.1, Y: 0.5, Z: 0}},
		{V0: Point3{X: 1, Y: 0, Z: 0}, V1: Point3{X: 1.5, Y: 0, Z: 0}, V2: Point3{X: 1, Y: 0.2, Z: 0}},
	}
	indices := IdentityMapping(len(triangles))
	extremaBounds := boundsOf(triangles, indices)
	boundingArea := extremaBounds.SurfaceArea()

	decision := newSplitDecision()
	trySpatialSplit(triangles, indices, boundingArea, extremaBounds, 0, &decision)
	if !decision.found {
		t.Fatalf("expected trySpatialSplit to find a candidate boundary")
	}

	result := spatialPartition(triangles, indices, extremaBounds, decision)
	if result.Leaf {
		t.Fatalf("expected a split, not a leaf fallback")
	}

	containsZero := func(m TriangleMapping) bool {
		for _, idx := range m {
			if idx == 0 {
				return true
			}
		}
		return false
	}
	if !containsZero(result.Left) || !containsZero(result.Right) {
		t.Fatalf("expected the full-span triangle (index 0) on both sides of the split, left=%v right=%v", result.Left, result.Right)
	}
	if len(result.Left)+len(result.Right) <= len(indices) {
		t.Errorf("expected duplication to grow the combined index count beyond %d, got %d", len(indices), len(result.Left)+len(result.Right))
	}
}

func clusterTriangles(n int, spread float64) TriangleSet {
	set := make(TriangleSet, n)
	for i := 0; i < n; i++ {
		cx := (RandomDouble()*2 - 1) * spread
		cy := 4 + RandomDouble()*spread
		set[i] = TrianglePos{
			V0: Point3{X: cx, Y: cy, Z: -5},
			V1: Point3{X: cx + 0.01, Y: cy, Z: -5},
			V2: Point3{X: cx, Y: cy + 0.01, Z: -5},
		}
	}
	return set
}

// randomTriangleSoup generates n well-separated, non-degenerate triangles
// scattered across a grid so every builder has real splitting work to do.
func randomTriangleSoup(n int) TriangleSet {
	set := make(TriangleSet, n)
	for i := 0; i < n; i++ {
		cx := float64(i%10) * 3
		cy := float64(i/10) * 3
		set[i] = TrianglePos{
			V0: Point3{X: cx, Y: cy, Z: 0},
			V1: Point3{X: cx + 1, Y: cy, Z: 0},
			V2: Point3{X: cx, Y: cy + 1, Z: 0},
		}
	}
	return set
}

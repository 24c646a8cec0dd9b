package rt

// TriangleMeshBVH adapts the triangle BVH core into a Hittable, letting a
// scene embed a triangle mesh accelerated by BuildBVH alongside the
// other shapes (spheres, quads, volumes), which still go through
// SceneBVHNode. It owns its TriangleSet and per-triangle Materials; the
// *BVH it builds borrows that TriangleSet read-only for its lifetime.
type TriangleMeshBVH struct {
	bvh       *BVH
	triangles TriangleSet
	materials []Material
	stats     BVHStats

	// collectStats routes Hit through the diagnostic traversal and feeds
	// GlobalRenderStats, costing a little per ray; off by default.
	collectStats bool
}

// NewTriangleMeshBVH builds a core BVH over triangles using method and
// wraps it as a Hittable. materials must have the same length as
// triangles; materials[i] is used for the triangle at triangles[i].
func NewTriangleMeshBVH(method BVHMethod, triangles TriangleSet, materials []Material) *TriangleMeshBVH {
	assertf(len(materials) == len(triangles), "TriangleMeshBVH needs one material per triangle, got %d materials for %d triangles", len(materials), len(triangles))

	bvh, stats := BuildBVHTimed(method, triangles)
	SanityCheck(bvh, triangles, method == BVHMethodSBVH)
	stats.Print()

	return &TriangleMeshBVH{bvh: bvh, triangles: triangles, materials: materials, stats: stats}
}

// Stats reports the underlying hierarchy's build statistics.
func (m *TriangleMeshBVH) Stats() BVHStats {
	return m.stats
}

// EnableStatsCollection switches Hit onto the diagnostic traversal path,
// accumulating per-ray node/leaf visit counts into GlobalRenderStats.
// Call before rendering starts; flipping it mid-render races with the
// worker goroutines reading it.
func (m *TriangleMeshBVH) EnableStatsCollection() {
	m.collectStats = true
}

// Hit runs a closest-hit query through the core's ordered traversal and
// resolves the winning triangle into a HitRecord the rest of the
// renderer understands: geometric normal, its material, and the
// barycentric UV, the same fields Triangle.Hit fills in.
func (m *TriangleMeshBVH) Hit(r Ray, rayT Interval, rec *HitRecord) bool {
	var hit Intersection
	var ok bool
	if m.collectStats {
		var diag BVHDiag
		hit, ok = FindClosestIntersectionDiag(m.bvh, m.triangles, r, TraversalOrdered, &diag)
		GlobalRenderStats.BVHNodesVisited.Add(int64(diag.NodesVisited))
		GlobalRenderStats.BVHLeavesVisited.Add(int64(diag.LeavesVisited))
	} else {
		hit, ok = FindClosestIntersection(m.bvh, m.triangles, r, TraversalOrdered)
	}
	if !ok || !rayT.Contains(hit.Distance) {
		return false
	}

	tri := m.triangles[hit.TriangleIndex]
	edge1 := tri.V1.Sub(tri.V0)
	edge2 := tri.V2.Sub(tri.V0)
	normal := Cross(edge1, edge2).Unit()

	rec.T = hit.Distance
	rec.P = r.At(hit.Distance)
	rec.Mat = m.materials[hit.TriangleIndex]
	rec.SetFaceNormal(r, normal)
	rec.U = hit.U
	rec.V = hit.V
	return true
}

// BoundingBox returns the root node's bounds, already the same AABB type
// the rest of the renderer's Hittable tree uses. A zero-triangle mesh,
// whose node pool is empty, reports an empty box.
func (m *TriangleMeshBVH) BoundingBox() AABB {
	if len(m.bvh.Nodes) == 0 {
		return NewAABB()
	}
	return m.bvh.Nodes[m.bvh.Root()].Bounds
}

// Occludes is a direct any-hit occlusion query, bypassing HitRecord
// construction entirely for shadow rays that only need a boolean. The
// ray origin is nudged forward by the same epsilon the closest-hit
// shadow path uses, so a shadow ray leaving a mesh surface does not
// find the surface it started on.
func (m *TriangleMeshBVH) Occludes(r Ray, maxDist float64) bool {
	const bias = 0.001
	nudged := NewRay(r.At(bias), r.Direction(), 0)
	return FindAnyIntersection(m.bvh, m.triangles, nudged, maxDist-bias, TraversalOrdered)
}

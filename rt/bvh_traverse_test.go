package rt

import (
	"math"
	"testing"
)

// TestAABBIntersectRayOriginInside checks that a ray whose origin lies
// inside the box returns tmin <= 0 and is still treated as a hit.
func TestAABBIntersectRayOriginInside(t *testing.T) {
	box := AABB{X: NewInterval(-1, 1), Y: NewInterval(-1, 1), Z: NewInterval(-1, 1)}
	origin := Vec3{X: 0, Y: 0, Z: 0}
	dir := Vec3{X: 1, Y: 0, Z: 0}
	invDir := Vec3{X: 1 / dir.X, Y: math.Inf(1), Z: math.Inf(1)}

	tmin, hit := box.IntersectRay(origin, invDir, math.Inf(1))
	if !hit {
		t.Fatalf("expected a hit for a ray originating inside the box")
	}
	if tmin > 0 {
		t.Errorf("expected tmin <= 0 for an interior origin, got %f", tmin)
	}
	if math.Abs(tmin-(-1)) > 1e-9 {
		t.Errorf("expected tmin == -1, got %f", tmin)
	}
}

// TestAABBIntersectRayOriginOutside checks the entry distance for a ray
// approaching the box from outside.
func TestAABBIntersectRayOriginOutside(t *testing.T) {
	box := AABB{X: NewInterval(-1, 1), Y: NewInterval(-1, 1), Z: NewInterval(-1, 1)}
	origin := Vec3{X: 5, Y: 0, Z: 0}
	dir := Vec3{X: -1, Y: 0, Z: 0}
	invDir := Vec3{X: 1 / dir.X, Y: math.Inf(1), Z: math.Inf(1)}

	tmin, hit := box.IntersectRay(origin, invDir, math.Inf(1))
	if !hit {
		t.Fatalf("expected a hit")
	}
	if math.Abs(tmin-4) > 1e-9 {
		t.Errorf("expected tmin == 4, got %f", tmin)
	}
}

// TestFindAnyIntersectionMaxDist puts two triangles on the ray at t=2.5
// and t=7.5; maxDist=5 must find one of them, maxDist=2 must find none.
func TestFindAnyIntersectionMaxDist(t *testing.T) {
	triangles := TriangleSet{
		{V0: Point3{X: -1, Y: -1, Z: 2.5}, V1: Point3{X: 1, Y: -1, Z: 2.5}, V2: Point3{X: 0, Y: 1, Z: 2.5}},
		{V0: Point3{X: -1, Y: -1, Z: 7.5}, V1: Point3{X: 1, Y: -1, Z: 7.5}, V2: Point3{X: 0, Y: 1, Z: 7.5}},
	}
	bvh := BuildBVH(BVHMethodCentroidSAH, triangles)
	ray := NewRay(Point3{X: 0, Y: 0, Z: 0}, Vec3{X: 0, Y: 0, Z: 1}, 0)

	for _, mode := range []TraversalMode{TraversalOrdered, TraversalUnordered} {
		if !FindAnyIntersection(bvh, triangles, ray, 5, mode) {
			t.Errorf("mode %v: expected a hit within maxDist=5", mode)
		}
		if FindAnyIntersection(bvh, triangles, ray, 2, mode) {
			t.Errorf("mode %v: expected no hit within maxDist=2", mode)
		}
	}
}

// TestAnyVsClosestConsistency checks that FindAnyIntersection(ray,
// maxDist) holds exactly when the closest hit lies within maxDist.
func TestAnyVsClosestConsistency(t *testing.T) {
	triangles := randomTriangleSoupVaried(40)
	bvh := BuildBVH(BVHMethodCentroidSAH, triangles)

	rays := []Ray{
		NewRay(Point3{X: 0, Y: 0, Z: -5}, Vec3{X: 0, Y: 0, Z: 1}, 0),
		NewRay(Point3{X: 15, Y: 15, Z: -5}, Vec3{X: 0, Y: 0, Z: 1}, 0),
		NewRay(Point3{X: 5, Y: 5, Z: -5}, Vec3{X: 0.1, Y: 0.05, Z: 1}, 0),
	}
	maxDists := []float64{1, 3, 5, 10, 100}

	for _, ray := range rays {
		closest, ok := FindClosestIntersection(bvh, triangles, ray, TraversalOrdered)
		for _, maxDist := range maxDists {
			want := ok && closest.Distance < maxDist
			got := FindAnyIntersection(bvh, triangles, ray, maxDist, TraversalOrdered)
			if got != want {
				t.Errorf("ray %+v maxDist=%f: findAny=%v, want %v (closest ok=%v dist=%f)", ray, maxDist, got, want, ok, closest.Distance)
			}
		}
	}
}

// TestQueryEquivalenceAcrossBuildersAndModes checks that for a fixed
// triangle set and ray the closest hit agrees across all three builders
// and both traversal modes.
func TestQueryEquivalenceAcrossBuildersAndModes(t *testing.T) {
	triangles := randomTriangleSoupVaried(50)
	ray := NewRay(Point3{X: 12, Y: 12, Z: -20}, Vec3{X: -0.05, Y: -0.02, Z: 1}, 0)

	type result struct {
		ok   bool
		dist float64
		idx  uint32
	}
	var results []result

	for _, method := range allMethods {
		bvh := BuildBVH(method, triangles)
		for _, mode := range []TraversalMode{TraversalOrdered, TraversalUnordered} {
			hit, ok := FindClosestIntersection(bvh, triangles, ray, mode)
			results = append(results, result{ok, hit.Distance, hit.TriangleIndex})
		}
	}

	first := results[0]
	for i, r := range results[1:] {
		if r.ok != first.ok {
			t.Fatalf("result %d disagrees on hit/miss: %v vs %v", i+1, r.ok, first.ok)
		}
		if !r.ok {
			continue
		}
		if math.Abs(r.dist-first.dist) > 1e-6 {
			t.Errorf("result %d disagrees on distance: %f vs %f", i+1, r.dist, first.dist)
		}
	}
}

// randomTriangleSoupVaried is like randomTriangleSoup but with triangles of
// varied size so SAH has a genuine shape to optimize over.
func randomTriangleSoupVaried(n int) TriangleSet {
	set := make(TriangleSet, n)
	for i := 0; i < n; i++ {
		cx := float64(i%10) * 3
		cy := float64(i/10) * 3
		size := 0.5 + float64(i%5)*0.3
		set[i] = TrianglePos{
			V0: Point3{X: cx, Y: cy, Z: 0},
			V1: Point3{X: cx + size, Y: cy, Z: 0},
			V2: Point3{X: cx, Y: cy + size, Z: 0},
		}
	}
	return set
}

// TestFindClosestIntersectionEmptyBVH covers the degenerate case: querying
// a BVH built over zero triangles must miss cleanly, never index out of
// range.
func TestFindClosestIntersectionEmptyBVH(t *testing.T) {
	bvh := BuildBVH(BVHMethodCentroidSAH, TriangleSet{})
	ray := NewRay(Point3{X: 0, Y: 0, Z: 0}, Vec3{X: 0, Y: 0, Z: 1}, 0)

	if _, ok := FindClosestIntersection(bvh, TriangleSet{}, ray, TraversalOrdered); ok {
		t.Errorf("expected no hit against an empty BVH")
	}
	if FindAnyIntersection(bvh, TriangleSet{}, ray, 100, TraversalOrdered) {
		t.Errorf("expected no any-hit against an empty BVH")
	}
}

// TestFindClosestIntersectionDiagCounters sanity-checks that the diagnostic
// path reports at least one visited node and, on a hit, at least one tested
// triangle.
func TestFindClosestIntersectionDiagCounters(t *testing.T) {
	triangles := singleTriangleSet()
	bvh := BuildBVH(BVHMethodCentroidSAH, triangles)
	ray := NewRay(Point3{X: 0.25, Y: 0.25, Z: -1}, Vec3{X: 0, Y: 0, Z: 1}, 0)

	var diag BVHDiag
	_, ok := FindClosestIntersectionDiag(bvh, triangles, ray, TraversalOrdered, &diag)
	if !ok {
		t.Fatalf("expected a hit")
	}
	if diag.NodesVisited == 0 {
		t.Errorf("expected at least one node visited")
	}
	if diag.TrianglesTested == 0 {
		t.Errorf("expected at least one triangle tested")
	}
}

// TestOccluderDispatch checks that a shadow test through the scene
// hierarchy reaches a triangle mesh's any-hit fast path and agrees with
// the distance bound: the mesh sits at t=3 on the ray.
func TestOccluderDispatch(t *testing.T) {
	triangles := TriangleSet{
		{V0: Point3{X: -1, Y: -1, Z: 3}, V1: Point3{X: 1, Y: -1, Z: 3}, V2: Point3{X: 0, Y: 1, Z: 3}},
	}
	materials := []Material{NewLambertian(Color{X: 0.5, Y: 0.5, Z: 0.5})}
	mesh := NewTriangleMeshBVH(BVHMethodCentroidSAH, triangles, materials)
	scene := NewSceneBVHNode([]Hittable{mesh}, 0, 1)

	ray := NewRay(Point3{X: 0, Y: 0, Z: 0}, Vec3{X: 0, Y: 0, Z: 1}, 0)
	if !Occluded(scene, ray, 5) {
		t.Errorf("expected the mesh to occlude within maxDist=5")
	}
	if Occluded(scene, ray, 2) {
		t.Errorf("expected no occlusion within maxDist=2")
	}
}

// TestClosestIntersectionBarycentrics checks that the closest-hit result
// carries the barycentric u/v of the winning triangle. The ray pierces
// the triangle at its v0 corner, where both coordinates are zero, and at
// the midpoint opposite it, where they are 0.5 each.
func TestClosestIntersectionBarycentrics(t *testing.T) {
	triangles := TriangleSet{
		{V0: Point3{X: 0, Y: 0, Z: 1}, V1: Point3{X: 2, Y: 0, Z: 1}, V2: Point3{X: 0, Y: 2, Z: 1}},
	}
	bvh := BuildBVH(BVHMethodCentroidSAH, triangles)

	cases := []struct {
		at   Point3
		u, v float64
	}{
		{Point3{X: 0, Y: 0, Z: 0}, 0, 0},
		{Point3{X: 1, Y: 1, Z: 0}, 0.5, 0.5},
	}
	for _, tc := range cases {
		ray := NewRay(tc.at, Vec3{X: 0, Y: 0, Z: 1}, 0)
		hit, ok := FindClosestIntersection(bvh, triangles, ray, TraversalOrdered)
		if !ok {
			t.Fatalf("expected a hit at %+v", tc.at)
		}
		if math.Abs(hit.U-tc.u) > 1e-9 || math.Abs(hit.V-tc.v) > 1e-9 {
			t.Errorf("at %+v: expected u/v (%.2f, %.2f), got (%f, %f)", tc.at, tc.u, tc.v, hit.U, hit.V)
		}
	}
}

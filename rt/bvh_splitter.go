package rt

import "fmt"

// BVHMethod selects which splitting strategy BuildBVH uses.
type BVHMethod int

const (
	BVHMethodStupid BVHMethod = iota
	BVHMethodCentroidSAH
	BVHMethodSBVH
)

func (m BVHMethod) String() string {
	switch m {
	case BVHMethodStupid:
		return "stupid"
	case BVHMethodCentroidSAH:
		return "sah"
	case BVHMethodSBVH:
		return "sbvh"
	default:
		return "unknown"
	}
}

// ParseBVHMethod maps a lowercase method name (stupid, sah, sbvh, plus the
// aliases centroid, centroid-sah and spatial) to its BVHMethod. It does
// not fold case itself; main.go lowercases -bvh-method first, the same
// way it handles -scene.
func ParseBVHMethod(name string) (BVHMethod, error) {
	switch name {
	case "stupid":
		return BVHMethodStupid, nil
	case "sah", "centroid", "centroid-sah":
		return BVHMethodCentroidSAH, nil
	case "sbvh", "spatial":
		return BVHMethodSBVH, nil
	default:
		return 0, fmt.Errorf("unknown bvh method: %s", name)
	}
}

// splitResult is what a Splitter hands back to the builder: either a
// leaf decision, or the two index subsets an interior split produced.
type splitResult struct {
	Leaf  bool
	Left  TriangleMapping
	Right TriangleMapping
}

// Splitter decides, for one node's worth of triangles, whether to leaf
// or split, and if splitting, how to partition the index subset.
type Splitter interface {
	GetSplit(triangles TriangleSet, indices TriangleMapping, bounds AABB) splitResult
}

// newSplitter maps a method to its strategy. The set is closed, and a
// splitter runs once per node rather than per triangle, so the
// interface call here costs nothing measurable.
func newSplitter(method BVHMethod) Splitter {
	switch method {
	case BVHMethodStupid:
		return StupidSplitter{}
	case BVHMethodCentroidSAH:
		return CentroidSAHSplitter{}
	case BVHMethodSBVH:
		return SBVHSplitter{}
	default:
		return StupidSplitter{}
	}
}

// StupidSplitter never splits: every node it sees becomes a leaf. Useful
// as a baseline to measure the SAH-driven splitters against.
type StupidSplitter struct{}

func (StupidSplitter) GetSplit(triangles TriangleSet, indices TriangleMapping, bounds AABB) splitResult {
	return splitResult{Leaf: true}
}

// sahSliceCount is the number of buckets CentroidSAHSplitter and
// SBVHSplitter evaluate per axis.
const sahSliceCount = 8

// buildCentroidBounds returns the AABB enclosing the centroids of the
// given triangle subset.
func buildCentroidBounds(triangles TriangleSet, indices TriangleMapping) AABB {
	box := NewAABB()
	for _, idx := range indices {
		c := triangles[idx].Centroid()
		box = NewAABBFromBoxes(box, NewAABBFromPoints(c, c))
	}
	return box
}

// centroidSlice is one SAH bucket for CentroidSAHSplitter: it holds the
// union bounds and count of every triangle whose centroid fell in it.
type centroidSlice struct {
	bounds AABB
	count  int
}

// CentroidSAHSplitter builds a standard BVH using the surface area
// heuristic over triangle centroids. Every triangle lands in exactly
// one leaf; it never duplicates triangles across nodes.
type CentroidSAHSplitter struct{}

func (CentroidSAHSplitter) GetSplit(triangles TriangleSet, indices TriangleMapping, bounds AABB) splitResult {
	if len(indices) <= 3 {
		return splitResult{Leaf: true}
	}

	centroidBounds := buildCentroidBounds(triangles, indices)
	assertf(bounds.Contains(centroidBounds) || boundsApproxContains(bounds, centroidBounds),
		"centroid bounds escape the node bounds")
	axis := centroidBounds.LongestAxis()

	low := centroidBounds.AxisInterval(axis).Min
	high := centroidBounds.AxisInterval(axis).Max
	if !(low < high) {
		return splitResult{Leaf: true}
	}
	sliceWidth := high - low

	sliceOf := func(tri TrianglePos) int {
		pos := tri.AverageAxis(axis)
		ratio := (pos - low) / sliceWidth
		n := int(ratio * float64(sahSliceCount))
		if n >= sahSliceCount {
			n = sahSliceCount - 1
		}
		if n < 0 {
			n = 0
		}
		return n
	}

	var slices [sahSliceCount]centroidSlice
	for i := range slices {
		slices[i].bounds = NewAABB()
	}
	for _, idx := range indices {
		tri := triangles[idx]
		n := sliceOf(tri)
		triBounds := tri.Bounds()
		slices[n].bounds = NewAABBFromBoxes(slices[n].bounds, triBounds)
		slices[n].count++
	}

	boundingArea := bounds.SurfaceArea()
	var costs [sahSliceCount - 1]float64
	for i := range costs {
		left := NewAABB()
		leftCount := 0
		for j := 0; j <= i; j++ {
			left = NewAABBFromBoxes(left, slices[j].bounds)
			leftCount += slices[j].count
		}

		right := NewAABB()
		rightCount := 0
		for j := i + 1; j < sahSliceCount; j++ {
			right = NewAABBFromBoxes(right, slices[j].bounds)
			rightCount += slices[j].count
		}

		al := left.SurfaceArea()
		ar := right.SurfaceArea()
		costs[i] = 1 + (float64(leftCount)*al+float64(rightCount)*ar)/boundingArea
	}

	splitSliceNo := 0
	minCost := costs[0]
	for i := 1; i < len(costs); i++ {
		if costs[i] < minCost {
			splitSliceNo = i
			minCost = costs[i]
		}
	}

	if minCost > float64(len(indices)) {
		return splitResult{Leaf: true}
	}

	var left, right TriangleMapping
	for _, idx := range indices {
		n := sliceOf(triangles[idx])
		if n <= splitSliceNo {
			left = append(left, idx)
		} else {
			right = append(right, idx)
		}
	}

	assertf(len(left)+len(right) == len(indices), "centroid SAH split dropped or duplicated triangles")
	return splitResult{Left: left, Right: right}
}

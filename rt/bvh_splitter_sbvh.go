package rt

import "math"

// splitKind tags which of the two candidate strategies an SBVH split
// decision ended up choosing, purely for reasoning about the winner.
type splitKind int

const (
	splitObject splitKind = iota
	splitSpatial
)

// splitDecision tracks the best candidate seen across every axis and
// both split kinds.
type splitDecision struct {
	minCost       float64
	chosenSplitNo int
	chosenAxis    int
	kind          splitKind
	found         bool
}

func newSplitDecision() splitDecision {
	return splitDecision{minCost: math.Inf(1), chosenSplitNo: -1, chosenAxis: -1}
}

func (d *splitDecision) addCandidate(cost float64, splitNo, axis int, kind splitKind) {
	if cost < d.minCost {
		d.minCost = cost
		d.chosenSplitNo = splitNo
		d.chosenAxis = axis
		d.kind = kind
		d.found = true
	}
}

// objectSlice is one SAH bucket for an object split: every triangle it
// holds counts on both sides of any split boundary drawn through it (it
// either falls fully left or fully right, never duplicated).
type objectSlice struct {
	bounds AABB
	count  int
}

func (s objectSlice) leftCount() int  { return s.count }
func (s objectSlice) rightCount() int { return s.count }

// spatialSlice is one SAH bucket for a spatial split: a triangle
// straddling the bucket's boundary is clipped, so entry and exit counts
// can differ from each other.
type spatialSlice struct {
	bounds                AABB
	entryCount, exitCount int
}

func (s spatialSlice) leftCount() int  { return s.entryCount }
func (s spatialSlice) rightCount() int { return s.exitCount }

type sahSlice interface {
	Bounds() AABB
	leftCount() int
	rightCount() int
}

func (s objectSlice) Bounds() AABB  { return s.bounds }
func (s spatialSlice) Bounds() AABB { return s.bounds }

// findMinCostSplit walks every bucket boundary in slices, unions the
// accumulated left/right bounds, and records the lowest-cost boundary
// into decision via addCandidate. Shared by both object and spatial
// splits, since the SAH cost formula doesn't care which kind of bucket
// produced the counts/bounds.
func findMinCostSplit(slices []sahSlice, boundingArea float64, axis int, kind splitKind, decision *splitDecision) {
	for i := 0; i < len(slices)-1; i++ {
		left := NewAABB()
		leftCount := 0
		for j := 0; j <= i; j++ {
			left = NewAABBFromBoxes(left, slices[j].Bounds())
			leftCount += slices[j].leftCount()
		}

		right := NewAABB()
		rightCount := 0
		for j := i + 1; j < len(slices); j++ {
			right = NewAABBFromBoxes(right, slices[j].Bounds())
			rightCount += slices[j].rightCount()
		}

		if leftCount == 0 && rightCount == 0 {
			continue
		}

		var areaLeft, areaRight float64
		if leftCount > 0 {
			areaLeft = left.SurfaceArea()
		}
		if rightCount > 0 {
			areaRight = right.SurfaceArea()
		}

		cost := 1 + (float64(leftCount)*areaLeft+float64(rightCount)*areaRight)/boundingArea
		decision.addCandidate(cost, i, axis, kind)
	}
}

// SBVHSplitter builds a Spatial Split BVH: at each node it evaluates
// both an object split (bucketed by centroid, like CentroidSAHSplitter)
// and a spatial split (bucketed by extrema bounds, clipping straddling
// triangles) on every axis, and takes whichever candidate has the
// lowest SAH cost.
type SBVHSplitter struct{}

func (SBVHSplitter) GetSplit(triangles TriangleSet, indices TriangleMapping, extremaBounds AABB) splitResult {
	if len(indices) <= 3 {
		return splitResult{Leaf: true}
	}

	boundingArea := extremaBounds.SurfaceArea()
	centroidBounds := buildCentroidBounds(triangles, indices)

	decision := newSplitDecision()
	for axis := 0; axis < 3; axis++ {
		tryObjectSplit(triangles, indices, boundingArea, centroidBounds, axis, &decision)
	}
	for axis := 0; axis < 3; axis++ {
		trySpatialSplit(triangles, indices, boundingArea, extremaBounds, axis, &decision)
	}

	if !decision.found || decision.minCost > float64(len(indices)) {
		return splitResult{Leaf: true}
	}

	if decision.kind == splitObject {
		return objectPartition(triangles, indices, centroidBounds, decision)
	}
	return spatialPartition(triangles, indices, extremaBounds, decision)
}

func tryObjectSplit(triangles TriangleSet, indices TriangleMapping, boundingArea float64, centroidBounds AABB, axis int, decision *splitDecision) {
	low := centroidBounds.AxisInterval(axis).Min
	high := centroidBounds.AxisInterval(axis).Max
	if !(low < high) {
		return
	}
	rangeWidth := high - low

	var slices [sahSliceCount]objectSlice
	for i := range slices {
		slices[i].bounds = NewAABB()
	}
	for _, idx := range indices {
		tri := triangles[idx]
		pos := tri.AverageAxis(axis)
		n := bucketOf(pos, low, rangeWidth, sahSliceCount)

		slices[n].bounds = NewAABBFromBoxes(slices[n].bounds, tri.Bounds())
		slices[n].count++
	}

	boxed := make([]sahSlice, sahSliceCount)
	for i, s := range slices {
		boxed[i] = s
	}
	findMinCostSplit(boxed, boundingArea, axis, splitObject, decision)
}

func trySpatialSplit(triangles TriangleSet, indices TriangleMapping, boundingArea float64, extremaBounds AABB, axis int, decision *splitDecision) {
	low := extremaBounds.AxisInterval(axis).Min
	high := extremaBounds.AxisInterval(axis).Max
	if !(low < high) {
		return
	}
	rangeWidth := high - low
	sliceWidth := rangeWidth / float64(sahSliceCount)

	var slices [sahSliceCount]spatialSlice
	for i := range slices {
		slices[i].bounds = NewAABB()
	}
	for _, idx := range indices {
		tri := triangles[idx]
		triMin := tri.MinAxis(axis)
		triMax := tri.MaxAxis(axis)

		for sliceNo := 0; sliceNo < sahSliceCount; sliceNo++ {
			sliceLow := float64(sliceNo)*sliceWidth + low
			sliceHigh := sliceLow + sliceWidth

			if triMin >= sliceHigh || triMax <= sliceLow {
				continue
			}

			slice := &slices[sliceNo]

			if triMin < sliceLow {
				p0, p1 := tri.Clip(axis, sliceLow)
				slice.bounds = NewAABBFromBoxes(slice.bounds, NewAABBFromPoints(p0, p1))
			} else {
				slice.entryCount++
			}

			if triMax > sliceHigh {
				p0, p1 := tri.Clip(axis, sliceHigh)
				slice.bounds = NewAABBFromBoxes(slice.bounds, NewAABBFromPoints(p0, p1))
			} else {
				slice.exitCount++
			}

			verts := [3]Point3{tri.V0, tri.V1, tri.V2}
			for _, v := range verts {
				val := axisValue(v, axis)
				if val >= sliceLow && val <= sliceHigh {
					slice.bounds = NewAABBFromBoxes(slice.bounds, NewAABBFromPoints(v, v))
				}
			}
		}
	}

	boxed := make([]sahSlice, sahSliceCount)
	for i, s := range slices {
		boxed[i] = s
	}
	findMinCostSplit(boxed, boundingArea, axis, splitSpatial, decision)
}

func bucketOf(pos, low, rangeWidth float64, count int) int {
	ratio := (pos - low) / rangeWidth
	n := int(ratio * float64(count))
	if n >= count {
		n = count - 1
	}
	if n < 0 {
		n = 0
	}
	return n
}

func axisValue(v Vec3, axis int) float64 {
	switch axis {
	case 0:
		return v.X
	case 1:
		return v.Y
	default:
		return v.Z
	}
}

func objectPartition(triangles TriangleSet, indices TriangleMapping, centroidBounds AABB, decision splitDecision) splitResult {
	axis := decision.chosenAxis
	low := centroidBounds.AxisInterval(axis).Min
	high := centroidBounds.AxisInterval(axis).Max
	rangeWidth := high - low

	var left, right TriangleMapping
	for _, idx := range indices {
		pos := triangles[idx].AverageAxis(axis)
		n := bucketOf(pos, low, rangeWidth, sahSliceCount)
		if n <= decision.chosenSplitNo {
			left = append(left, idx)
		} else {
			right = append(right, idx)
		}
	}

	assertf(len(left)+len(right) == len(indices), "SBVH object split dropped or duplicated triangles")
	return splitResult{Left: left, Right: right}
}

func spatialPartition(triangles TriangleSet, indices TriangleMapping, extremaBounds AABB, decision splitDecision) splitResult {
	axis := decision.chosenAxis
	low := extremaBounds.AxisInterval(axis).Min
	high := extremaBounds.AxisInterval(axis).Max
	rangeWidth := high - low
	sliceWidth := rangeWidth / float64(sahSliceCount)

	splitPoint := float64(decision.chosenSplitNo+1)*sliceWidth + low

	var left, right TriangleMapping
	for _, idx := range indices {
		tri := triangles[idx]
		if tri.MinAxis(axis) <= splitPoint {
			left = append(left, idx)
		}
		if tri.MaxAxis(axis) >= splitPoint {
			right = append(right, idx)
		}
	}

	// A triangle spanning the whole range can land on both sides; that's
	// the point of duplicating it in a spatial split. What must never
	// happen is every triangle landing on just one side, which would
	// recurse forever without shrinking the subset.
	if len(left) == len(indices) || len(right) == len(indices) {
		return splitResult{Leaf: true}
	}

	return splitResult{Left: left, Right: right}
}

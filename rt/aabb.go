package rt

import "math"

type AABB struct {
	X, Y, Z Interval
}

var (
	EmptyAABB    = NewAABB()
	UniverseAABB = NewAABBFromIntervals(
		UniverseInterval,
		UniverseInterval,
		UniverseInterval,
	)
)

func NewAABB() AABB {
	return AABB{
		X: NewEmptyInterval(),
		Y: NewEmptyInterval(),
		Z: NewEmptyInterval(),
	}
}

func NewAABBFromIntervals(x, y, z Interval) AABB {
	box := AABB{X: x, Y: y, Z: z}
	box.padToMinimums()
	return box
}

func NewAABBFromPoints(a, b Point3) AABB {
	box := AABB{
		X: NewInterval(math.Min(a.X, b.X), math.Max(a.X, b.X)),
		Y: NewInterval(math.Min(a.Y, b.Y), math.Max(a.Y, b.Y)),
		Z: NewInterval(math.Min(a.Z, b.Z), math.Max(a.Z, b.Z)),
	}
	box.padToMinimums()
	return box
}

func NewAABBFromBoxes(box0, box1 AABB) AABB {
	return AABB{
		X: NewIntervalFromIntervals(box0.X, box1.X),
		Y: NewIntervalFromIntervals(box0.Y, box1.Y),
		Z: NewIntervalFromIntervals(box0.Z, box1.Z),
	}
}
func (box AABB) AxisInterval(n int) Interval {
	if n == 1 {
		return box.Y
	}
	if n == 2 {
		return box.Z
	}
	return box.X
}

func (box AABB) Hit(r Ray, rayT Interval) bool {
	rayOrig := r.Origin()
	rayDir := r.Direction()

	// Unrolled loop for X, Y, Z axes - avoids switch overhead in hot path
	// X axis
	adinv := 1.0 / rayDir.X
	t0 := (box.X.Min - rayOrig.X) * adinv
	t1 := (box.X.Max - rayOrig.X) * adinv
	if adinv < 0 {
		t0, t1 = t1, t0
	}
	if t0 > rayT.Min {
		rayT.Min = t0
	}
	if t1 < rayT.Max {
		rayT.Max = t1
	}
	if rayT.Max <= rayT.Min {
		return false
	}

	// Y axis
	adinv = 1.0 / rayDir.Y
	t0 = (box.Y.Min - rayOrig.Y) * adinv
	t1 = (box.Y.Max - rayOrig.Y) * adinv
	if adinv < 0 {
		t0, t1 = t1, t0
	}
	if t0 > rayT.Min {
		rayT.Min = t0
	}
	if t1 < rayT.Max {
		rayT.Max = t1
	}
	if rayT.Max <= rayT.Min {
		return false
	}

	// Z axis
	adinv = 1.0 / rayDir.Z
	t0 = (box.Z.Min - rayOrig.Z) * adinv
	t1 = (box.Z.Max - rayOrig.Z) * adinv
	if adinv < 0 {
		t0, t1 = t1, t0
	}
	if t0 > rayT.Min {
		rayT.Min = t0
	}
	if t1 < rayT.Max {
		rayT.Max = t1
	}
	if rayT.Max <= rayT.Min {
		return false
	}

	return true
}
func (box *AABB) padToMinimums() {
	delta := 0.0001
	if box.X.Size() < delta {
		box.X = box.X.Expand(delta)
	}
	if box.Y.Size() < delta {
		box.Y = box.Y.Expand(delta)
	}
	if box.Z.Size() < delta {
		box.Z = box.Z.Expand(delta)
	}
}

func (box AABB) Translate(offset Vec3) AABB {
	return NewAABBFromIntervals(
		box.X.Add(offset.X),
		box.Y.Add(offset.Y),
		box.Z.Add(offset.Z),
	)
}

// LongestAxis returns the index (0=X, 1=Y, 2=Z) of the axis with the longest extent
func (box AABB) LongestAxis() int {
	xSize := box.X.Size()
	ySize := box.Y.Size()
	zSize := box.Z.Size()

	if xSize > ySize && xSize > zSize {
		return 0
	} else if ySize > zSize {
		return 1
	}
	return 2
}

// Centroid returns the center point of the bounding box
func (box AABB) Centroid() Vec3 {
	return Vec3{
		X: (box.X.Min + box.X.Max) * 0.5,
		Y: (box.Y.Min + box.Y.Max) * 0.5,
		Z: (box.Z.Min + box.Z.Max) * 0.5,
	}
}

// Low returns the componentwise minimum corner.
func (box AABB) Low() Vec3 {
	return Vec3{X: box.X.Min, Y: box.Y.Min, Z: box.Z.Min}
}

// High returns the componentwise maximum corner.
func (box AABB) High() Vec3 {
	return Vec3{X: box.X.Max, Y: box.Y.Max, Z: box.Z.Max}
}

// SurfaceArea returns 2*(dx*dy + dx*dz + dy*dz) for a non-empty box.
func (box AABB) SurfaceArea() float64 {
	d := box.High().Sub(box.Low())
	return 2.0 * (d.X*d.Y + d.X*d.Z + d.Y*d.Z)
}

// Contains reports whether box fully encloses inner on every axis.
func (box AABB) Contains(inner AABB) bool {
	return box.X.Min <= inner.X.Min && box.X.Max >= inner.X.Max &&
		box.Y.Min <= inner.Y.Min && box.Y.Max >= inner.Y.Max &&
		box.Z.Min <= inner.Z.Min && box.Z.Max >= inner.Z.Max
}

// ContainsPoint reports whether p lies within box on every axis (closed interval).
func (box AABB) ContainsPoint(p Point3) bool {
	return p.X >= box.X.Min && p.X <= box.X.Max &&
		p.Y >= box.Y.Min && p.Y <= box.Y.Max &&
		p.Z >= box.Z.Min && p.Z <= box.Z.Max
}

// IntersectRay runs the slab test against a precomputed ray origin and
// inverse direction, returning the entry distance and whether the ray
// hits the box within [0, tMax]. A negative tmin (origin inside the box)
// is still a hit; tmax < 0, tmin > tmax, or tmin > tMax (a closer hit
// already found elsewhere) are all misses, the last being the pruning
// test ordered BVH traversal relies on.
func (box AABB) IntersectRay(origin, invDir Vec3, tMax float64) (float64, bool) {
	t1x := (box.X.Min - origin.X) * invDir.X
	t2x := (box.X.Max - origin.X) * invDir.X
	t1y := (box.Y.Min - origin.Y) * invDir.Y
	t2y := (box.Y.Max - origin.Y) * invDir.Y
	t1z := (box.Z.Min - origin.Z) * invDir.Z
	t2z := (box.Z.Max - origin.Z) * invDir.Z

	tmin := math.Max(math.Max(math.Min(t1x, t2x), math.Min(t1y, t2y)), math.Min(t1z, t2z))
	tmax := math.Min(math.Min(math.Max(t1x, t2x), math.Max(t1y, t2y)), math.Max(t1z, t2z))

	if tmax < 0 || tmin > tmax || tmin > tMax {
		return 0, false
	}
	return tmin, true
}

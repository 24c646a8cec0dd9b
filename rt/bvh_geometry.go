package rt

import "math"

// TrianglePos is a position-only triangle: the BVH core's opaque handle
// over input geometry. It carries none of the shading Triangle's material,
// normal, or UV state, so the core never needs to know about materials.
type TrianglePos struct {
	V0, V1, V2 Point3
}

// TriangleSet is the triangle soup a BVH is built over and queried against.
type TriangleSet []TrianglePos

// TriangleMapping is an index permutation into a TriangleSet. A build
// starts from the identity permutation and the splitters reorder/duplicate
// entries as they partition subsets.
type TriangleMapping []uint32

// IdentityMapping returns [0, 1, ..., n-1].
func IdentityMapping(n int) TriangleMapping {
	m := make(TriangleMapping, n)
	for i := range m {
		m[i] = uint32(i)
	}
	return m
}

// TrianglePosFromTriangle extracts the position-only view of a shading
// Triangle, letting mesh loading hand the core geometry without the core
// importing materials.
func TrianglePosFromTriangle(t *Triangle) TrianglePos {
	return TrianglePos{V0: t.v0, V1: t.v1, V2: t.v2}
}

func (t TrianglePos) axisCoord(v Point3, axis int) float64 {
	switch axis {
	case 0:
		return v.X
	case 1:
		return v.Y
	default:
		return v.Z
	}
}

// MinAxis returns the triangle's minimum coordinate on the given axis.
func (t TrianglePos) MinAxis(axis int) float64 {
	return math.Min(t.axisCoord(t.V0, axis), math.Min(t.axisCoord(t.V1, axis), t.axisCoord(t.V2, axis)))
}

// MaxAxis returns the triangle's maximum coordinate on the given axis.
func (t TrianglePos) MaxAxis(axis int) float64 {
	return math.Max(t.axisCoord(t.V0, axis), math.Max(t.axisCoord(t.V1, axis), t.axisCoord(t.V2, axis)))
}

// Centroid returns (v0+v1+v2)/3.
func (t TrianglePos) Centroid() Vec3 {
	return t.V0.Add(t.V1).Add(t.V2).Scale(1.0 / 3.0)
}

// AverageAxis returns the centroid's coordinate on the given axis.
func (t TrianglePos) AverageAxis(axis int) float64 {
	return t.axisCoord(t.Centroid(), axis)
}

// Bounds returns the AABB enclosing all three vertices.
func (t TrianglePos) Bounds() AABB {
	low := Point3{X: t.MinAxis(0), Y: t.MinAxis(1), Z: t.MinAxis(2)}
	high := Point3{X: t.MaxAxis(0), Y: t.MaxAxis(1), Z: t.MaxAxis(2)}
	return NewAABBFromPoints(low, high)
}

// Area returns the triangle's surface area.
func (t TrianglePos) Area() float64 {
	e1 := t.V1.Sub(t.V0)
	e2 := t.V2.Sub(t.V0)
	return 0.5 * Cross(e1, e2).Len()
}

// Clip intersects the triangle's three edges against the axis-aligned
// plane `axis = split` and returns the two intersection points. split
// must lie strictly between the triangle's min and max on that axis;
// exactly two of the three edges then straddle the plane, a runtime
// invariant checked by assertf rather than silently tolerated.
func (t TrianglePos) Clip(axis int, split float64) (Vec3, Vec3) {
	verts := [3]Point3{t.V0, t.V1, t.V2}
	a1 := (axis + 1) % 3
	a2 := (axis + 2) % 3

	var result [2]Vec3
	found := 0

	for i := 0; i < 3; i++ {
		v0 := verts[i]
		v1 := verts[(i+1)%3]
		c0 := t.axisCoord(v0, axis)
		c1 := t.axisCoord(v1, axis)

		straddles := (c0 <= split && c1 > split) || (c1 <= split && c0 > split)
		if !straddles {
			continue
		}

		assertf(found < 2, "triangle clip found more than two straddling edges")
		dx := (split - c0) / (c1 - c0)

		var p Vec3
		setAxis(&p, axis, split)
		setAxis(&p, a1, ((t.axisCoord(v1, a1)-t.axisCoord(v0, a1))*dx)+t.axisCoord(v0, a1))
		setAxis(&p, a2, ((t.axisCoord(v1, a2)-t.axisCoord(v0, a2))*dx)+t.axisCoord(v0, a2))
		result[found] = p
		found++
	}

	assertf(found == 2, "triangle clip expected exactly two straddling edges, found %d", found)
	return result[0], result[1]
}

func setAxis(v *Vec3, axis int, value float64) {
	switch axis {
	case 0:
		v.X = value
	case 1:
		v.Y = value
	default:
		v.Z = value
	}
}

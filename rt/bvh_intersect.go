package rt

import "math"

// intersectTrianglePos runs Moller-Trumbore against a position-only
// triangle, returning a forward hit distance t > 0 plus the barycentric
// u/v at the hit, or false for a miss (parallel ray, outside the
// triangle, or behind the origin). The math mirrors Triangle.Hit,
// ported to TrianglePos so the BVH core never needs a shading Triangle
// or a HitRecord to run its own intersection test.
func intersectTrianglePos(tri TrianglePos, origin, dir Vec3) (t, u, v float64, ok bool) {
	edge1 := tri.V1.Sub(tri.V0)
	edge2 := tri.V2.Sub(tri.V0)

	h := Cross(dir, edge2)
	a := Dot(edge1, h)
	if math.Abs(a) < 1e-8 {
		return 0, 0, 0, false
	}

	f := 1.0 / a
	s := origin.Sub(tri.V0)
	u = f * Dot(s, h)
	if u < 0.0 || u > 1.0 {
		return 0, 0, 0, false
	}

	q := Cross(s, edge1)
	v = f * Dot(dir, q)
	if v < 0.0 || u+v > 1.0 {
		return 0, 0, 0, false
	}

	t = f * Dot(edge2, q)
	if t <= 0 {
		return 0, 0, 0, false
	}
	return t, u, v, true
}

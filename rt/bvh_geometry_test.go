package rt

import (
	"math"
	"testing"
)

// TestTriangleClipStraddle checks that clipping a triangle with exactly
// two edges straddling an axis-aligned plane returns two points on that
// plane, each lying on an edge of the triangle.
func TestTriangleClipStraddle(t *testing.T) {
	tri := TrianglePos{
		V0: Point3{X: -2, Y: 0, Z: 0},
		V1: Point3{X: 2, Y: 0, Z: 0},
		V2: Point3{X: 0, Y: 4, Z: 0},
	}
	verts := [3]Point3{tri.V0, tri.V1, tri.V2}

	p0, p1 := tri.Clip(0, 0)

	for _, p := range []Vec3{p0, p1} {
		if math.Abs(p.X) > 1e-9 {
			t.Fatalf("clipped point must lie on the split plane x=0, got %v", p)
		}

		onSomeEdge := false
		for i := 0; i < 3; i++ {
			a, b := verts[i], verts[(i+1)%3]
			// p must lie between a and b on every axis (up to float slop) and
			// be colinear with the edge for it to be a genuine edge point.
			withinX := between(p.X, a.X, b.X)
			withinY := between(p.Y, a.Y, b.Y)
			withinZ := between(p.Z, a.Z, b.Z)
			if withinX && withinY && withinZ {
				onSomeEdge = true
				break
			}
		}
		if !onSomeEdge {
			t.Errorf("clipped point %v does not lie on any edge of the triangle", p)
		}
	}
}

func between(v, a, b float64) bool {
	const eps = 1e-9
	lo, hi := math.Min(a, b), math.Max(a, b)
	return v >= lo-eps && v <= hi+eps
}

func TestTriangleBounds(t *testing.T) {
	tri := TrianglePos{
		V0: Point3{X: 0, Y: 0, Z: 0},
		V1: Point3{X: 1, Y: 0, Z: 0},
		V2: Point3{X: 0, Y: 1, Z: 0},
	}
	b := tri.Bounds()
	if b.X.Min != 0 || b.X.Max != 1 || b.Y.Min != 0 || b.Y.Max != 1 {
		t.Errorf("unexpected triangle bounds: %+v", b)
	}
}

func TestTriangleCentroid(t *testing.T) {
	tri := TrianglePos{
		V0: Point3{X: 0, Y: 0, Z: 0},
		V1: Point3{X: 3, Y: 0, Z: 0},
		V2: Point3{X: 0, Y: 3, Z: 0},
	}
	c := tri.Centroid()
	if math.Abs(c.X-1) > 1e-9 || math.Abs(c.Y-1) > 1e-9 {
		t.Errorf("expected centroid (1,1,0), got %v", c)
	}
}

package rt

// HitRecord stores information about a ray-object intersection
type HitRecord struct {
	P         Point3
	Normal    Vec3
	Mat       Material
	U         float64
	V         float64
	T         float64 // Parameter t where intersection occurs
	FrontFace bool
}

// Hittable interface for objects that can be hit by rays
type Hittable interface {
	Hit(r Ray, rayT Interval, rec *HitRecord) bool
	BoundingBox() AABB
}

// Occluder is implemented by hittables that can answer a shadow-ray
// blocking test cheaper than a full closest-hit query.
type Occluder interface {
	Occludes(r Ray, maxDist float64) bool
}

// Occluded reports whether anything blocks r within (0, maxDist), taking
// an object's any-hit fast path when it has one and falling back to a
// closest-hit query when it doesn't.
func Occluded(obj Hittable, r Ray, maxDist float64) bool {
	if occ, ok := obj.(Occluder); ok {
		return occ.Occludes(r, maxDist)
	}
	rec := &HitRecord{}
	return obj.Hit(r, NewInterval(0.001, maxDist), rec)
}

func (rec *HitRecord) SetFaceNormal(r Ray, outwardNormal Vec3) {
	// Determine if ray is hitting from outside or inside
	rec.FrontFace = Dot(r.Direction(), outwardNormal) < 0

	// Normal always points against the ray direction
	if rec.FrontFace {
		rec.Normal = outwardNormal
	} else {
		rec.Normal = outwardNormal.Neg()
	}
}

package collision

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// CheckSphereCollision checks if two bounding spheres overlap.
func CheckSphereCollision(a mgl64.Vec3, ra float64, b mgl64.Vec3, rb float64) bool {
	d := b.Sub(a)
	radSum := ra + rb
	return d.Dot(d) <= radSum*radSum
}

// raySphere intersects a ray (unit direction) with a sphere and returns the
// distance to the nearest intersection at or in front of the origin.
func raySphere(origin, dir, center mgl64.Vec3, r float64) (float64, bool) {
	f := origin.Sub(center)
	b := 2 * f.Dot(dir)
	c := f.Dot(f) - r*r
	discriminant := b*b - 4*c
	if discriminant < 0 {
		return 0, false
	}
	discriminant = math.Sqrt(discriminant)
	t := (-b - discriminant) / 2
	if t < 0 {
		t = (-b + discriminant) / 2
	}
	if t < 0 {
		return 0, false
	}
	return t, true
}

// rayBox intersects a ray (unit direction) with an AABB using the slab test
// and returns the entry distance plus the outward normal of the face crossed.
// An origin inside the box reports distance 0 with the normal opposing the
// ray. ok is false on a miss or when the entry lies beyond maxDist.
func rayBox(b AABB, origin, dir mgl64.Vec3, maxDist float64) (float64, mgl64.Vec3, bool) {
	tmin := 0.0
	tmax := maxDist
	var normal mgl64.Vec3
	for i := 0; i < 3; i++ {
		if dir[i] == 0 {
			if origin[i] < b.Min[i] || origin[i] > b.Max[i] {
				return 0, mgl64.Vec3{}, false
			}
			continue
		}
		t1 := (b.Min[i] - origin[i]) / dir[i]
		t2 := (b.Max[i] - origin[i]) / dir[i]
		sign := -1.0
		if t1 > t2 {
			t1, t2 = t2, t1
			sign = 1.0
		}
		if t1 > tmin {
			tmin = t1
			normal = mgl64.Vec3{}
			normal[i] = sign
		}
		if t2 < tmax {
			tmax = t2
		}
		if tmin > tmax {
			return 0, mgl64.Vec3{}, false
		}
	}
	if normal == (mgl64.Vec3{}) {
		// Origin is inside the box.
		normal = dir.Mul(-1)
	}
	return tmin, normal, true
}

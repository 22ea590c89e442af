package collision

import "github.com/go-gl/mathgl/mgl64"

// AABB is an axis-aligned bounding box. Min[i] <= Max[i] on every axis.
type AABB struct {
	Min, Max mgl64.Vec3
}

// AABBFromCenterSize builds the box of the given extents centered on c.
func AABBFromCenterSize(c, size mgl64.Vec3) AABB {
	h := size.Mul(0.5)
	return AABB{Min: c.Sub(h), Max: c.Add(h)}
}

// Intersects reports whether the two boxes overlap. Touching counts.
func (b AABB) Intersects(o AABB) bool {
	return b.Min.X() <= o.Max.X() && o.Min.X() <= b.Max.X() &&
		b.Min.Y() <= o.Max.Y() && o.Min.Y() <= b.Max.Y() &&
		b.Min.Z() <= o.Max.Z() && o.Min.Z() <= b.Max.Z()
}

// ContainsXZ reports whether the vertical column at (x, z) passes through the box.
func (b AABB) ContainsXZ(x, z float64) bool {
	return b.Min.X() <= x && x <= b.Max.X() &&
		b.Min.Z() <= z && z <= b.Max.Z()
}

// Center returns the midpoint of the box.
func (b AABB) Center() mgl64.Vec3 {
	return b.Min.Add(b.Max).Mul(0.5)
}

// Size returns the extents of the box per axis.
func (b AABB) Size() mgl64.Vec3 {
	return b.Max.Sub(b.Min)
}

func minVec(a, b mgl64.Vec3) mgl64.Vec3 {
	for i := 0; i < 3; i++ {
		if b[i] < a[i] {
			a[i] = b[i]
		}
	}
	return a
}

func maxVec(a, b mgl64.Vec3) mgl64.Vec3 {
	for i := 0; i < 3; i++ {
		if b[i] > a[i] {
			a[i] = b[i]
		}
	}
	return a
}

package collision

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Ray is a half-line query. Direction need not be normalized; Raycast
// normalizes it.
type Ray struct {
	Origin    mgl64.Vec3
	Direction mgl64.Vec3
}

// RayHit describes the nearest intersection found by Raycast.
type RayHit struct {
	Distance float64
	Point    mgl64.Vec3
	Normal   mgl64.Vec3
	ID       string
	Type     EntityType
}

// Raycast finds the nearest intersection along the ray within maxDistance
// among terrain chunks and dynamic entities whose type is in allowed.
//
// Terrain box hits are refined by sampling the heightfield once at the
// ray/box entry point and testing the ray against that height plane. The
// single sample is a known approximation: steep or corner-clipping rays can
// be under- or over-reported. Chunks without height data keep the raw box
// hit. Exact distance ties are broken by iteration order.
func (cs *CollisionSystem) Raycast(ray Ray, maxDistance float64, allowed TypeMask) (RayHit, bool) {
	dir := ray.Direction
	length := dir.Len()
	if length == 0 || maxDistance <= 0 {
		return RayHit{}, false
	}
	dir = dir.Mul(1 / length)

	end := ray.Origin.Add(dir.Mul(maxDistance))
	sweep := AABB{Min: minVec(ray.Origin, end), Max: maxVec(ray.Origin, end)}

	best := RayHit{Distance: math.Inf(1)}

	if allowed.Has(TypeTerrain) {
		cs.chunkBuf = cs.octree.Query(sweep, cs.chunkBuf[:0])
		for _, c := range cs.chunkBuf {
			hit, ok := rayTerrain(c, ray.Origin, dir, maxDistance)
			if ok && hit.Distance < best.Distance {
				best = hit
			}
		}
	}

	cs.queryBuf = cs.grid.QueryBounds(sweep, cs.queryBuf[:0])
	for _, id := range cs.queryBuf {
		tr, ok := cs.objects[id]
		if !ok || !allowed.Has(tr.obj.Type) {
			continue
		}
		t, ok := raySphere(ray.Origin, dir, tr.obj.Position, tr.obj.radius())
		if !ok || t > maxDistance || t >= best.Distance {
			continue
		}
		point := ray.Origin.Add(dir.Mul(t))
		normal := point.Sub(tr.obj.Position)
		if l := normal.Len(); l > 0 {
			normal = normal.Mul(1 / l)
		} else {
			normal = mgl64.Vec3{0, 1, 0}
		}
		best = RayHit{Distance: t, Point: point, Normal: normal, ID: id, Type: tr.obj.Type}
	}

	if math.IsInf(best.Distance, 1) {
		return RayHit{}, false
	}
	return best, true
}

// rayTerrain intersects the ray with one terrain chunk: a bounding-box hit,
// refined against the surface height sampled at the box entry point when the
// chunk has height data.
func rayTerrain(c *TerrainChunk, origin, dir mgl64.Vec3, maxDist float64) (RayHit, bool) {
	t, normal, ok := rayBox(c.Bounds, origin, dir, maxDist)
	if !ok {
		return RayHit{}, false
	}
	entry := origin.Add(dir.Mul(t))
	if !c.hasHeightData() {
		return RayHit{Distance: t, Point: entry, Normal: normal, ID: c.ID, Type: TypeTerrain}, true
	}

	h := c.SampleHeight(entry.X(), entry.Z())
	if dir.Y() == 0 {
		// Parallel to the height plane: the box entry stands in for the
		// surface hit when the ray runs at or below it.
		if entry.Y() > h {
			return RayHit{}, false
		}
		return RayHit{Distance: t, Point: entry, Normal: normal, ID: c.ID, Type: TypeTerrain}, true
	}

	tp := (h - origin.Y()) / dir.Y()
	if tp < 0 || tp > maxDist {
		return RayHit{}, false
	}
	point := origin.Add(dir.Mul(tp))
	if !c.Bounds.ContainsXZ(point.X(), point.Z()) {
		return RayHit{}, false
	}
	return RayHit{
		Distance: tp,
		Point:    point,
		Normal:   mgl64.Vec3{0, 1, 0},
		ID:       c.ID,
		Type:     TypeTerrain,
	}, true
}

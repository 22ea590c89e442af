package collision

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

func TestRaycastHitsSphere(t *testing.T) {
	cs := newTestSystem(t)
	mustUpdate(t, cs, &Object{
		ID: "target", Type: TypeAircraft,
		Position:   mgl64.Vec3{0, 100, 200},
		Dimensions: mgl64.Vec3{10, 10, 10},
	})

	ray := Ray{Origin: mgl64.Vec3{0, 100, 0}, Direction: mgl64.Vec3{0, 0, 1}}
	hit, ok := cs.Raycast(ray, 1000, TypeAircraft.Mask())
	if !ok {
		t.Fatal("expected a hit")
	}
	if hit.ID != "target" || hit.Type != TypeAircraft {
		t.Errorf("unexpected hit %+v", hit)
	}
	if math.Abs(hit.Distance-195) > 1e-9 {
		t.Errorf("expected distance 195, got %v", hit.Distance)
	}
	if hit.Normal.Sub(mgl64.Vec3{0, 0, -1}).Len() > 1e-9 {
		t.Errorf("expected normal (0,0,-1), got %v", hit.Normal)
	}
}

func TestRaycastRespectsMaxDistance(t *testing.T) {
	cs := newTestSystem(t)
	mustUpdate(t, cs, &Object{
		ID: "target", Type: TypeAircraft,
		Position:   mgl64.Vec3{0, 100, 200},
		Dimensions: mgl64.Vec3{10, 10, 10},
	})

	ray := Ray{Origin: mgl64.Vec3{0, 100, 0}, Direction: mgl64.Vec3{0, 0, 1}}
	if _, ok := cs.Raycast(ray, 150, TypeAircraft.Mask()); ok {
		t.Error("hit beyond maxDistance must not be reported")
	}
	if hit, ok := cs.Raycast(ray, 1000, TypeAircraft.Mask()); !ok || hit.Distance > 1000 {
		t.Error("hit within maxDistance should be reported")
	}
}

func TestRaycastFiltersTypes(t *testing.T) {
	cs := newTestSystem(t)
	mustUpdate(t, cs, &Object{
		ID: "target", Type: TypeAircraft,
		Position:   mgl64.Vec3{0, 100, 200},
		Dimensions: mgl64.Vec3{10, 10, 10},
	})

	ray := Ray{Origin: mgl64.Vec3{0, 100, 0}, Direction: mgl64.Vec3{0, 0, 1}}
	if _, ok := cs.Raycast(ray, 1000, TypeProjectile.Mask()); ok {
		t.Error("aircraft must be invisible to a projectile-only ray")
	}
}

func TestRaycastTerrainHeightPlane(t *testing.T) {
	cs := newTestSystem(t)
	cs.AddTerrainChunk(flatChunk("ground", 500, 10))

	// Straight down from altitude 100 onto a surface at height 10
	ray := Ray{Origin: mgl64.Vec3{50, 100, 50}, Direction: mgl64.Vec3{0, -1, 0}}
	hit, ok := cs.Raycast(ray, 500, TypeTerrain.Mask())
	if !ok {
		t.Fatal("expected a terrain hit")
	}
	if hit.ID != "ground" || hit.Type != TypeTerrain {
		t.Errorf("unexpected hit %+v", hit)
	}
	if math.Abs(hit.Distance-90) > 1e-9 {
		t.Errorf("expected distance 90, got %v", hit.Distance)
	}
	if hit.Point.Y() != 10 {
		t.Errorf("expected contact on the height plane, got y=%v", hit.Point.Y())
	}
	if hit.Normal != (mgl64.Vec3{0, 1, 0}) {
		t.Errorf("expected up normal, got %v", hit.Normal)
	}
}

func TestRaycastTerrainBoxFallback(t *testing.T) {
	cs := newTestSystem(t)
	// No heightfield and no probe: the raw box hit stands
	cs.AddTerrainChunk(&TerrainChunk{
		ID:     "slab",
		Bounds: AABB{Min: mgl64.Vec3{-100, 0, 100}, Max: mgl64.Vec3{100, 50, 300}},
	})

	ray := Ray{Origin: mgl64.Vec3{0, 25, 0}, Direction: mgl64.Vec3{0, 0, 1}}
	hit, ok := cs.Raycast(ray, 1000, TypeTerrain.Mask())
	if !ok {
		t.Fatal("expected a box hit")
	}
	if math.Abs(hit.Distance-100) > 1e-9 {
		t.Errorf("expected entry at 100, got %v", hit.Distance)
	}
	if hit.Normal != (mgl64.Vec3{0, 0, -1}) {
		t.Errorf("expected face normal (0,0,-1), got %v", hit.Normal)
	}
}

func TestRaycastNearestWins(t *testing.T) {
	cs := newTestSystem(t)
	mustUpdate(t, cs, &Object{
		ID: "near", Type: TypeAircraft,
		Position:   mgl64.Vec3{0, 100, 100},
		Dimensions: mgl64.Vec3{10, 10, 10},
	})
	mustUpdate(t, cs, &Object{
		ID: "far", Type: TypeAircraft,
		Position:   mgl64.Vec3{0, 100, 300},
		Dimensions: mgl64.Vec3{10, 10, 10},
	})

	ray := Ray{Origin: mgl64.Vec3{0, 100, 0}, Direction: mgl64.Vec3{0, 0, 1}}
	hit, ok := cs.Raycast(ray, 1000, TypeAircraft.Mask())
	if !ok || hit.ID != "near" {
		t.Errorf("expected the nearer entity, got %+v ok=%v", hit, ok)
	}
}

func TestRaycastUnnormalizedDirection(t *testing.T) {
	cs := newTestSystem(t)
	mustUpdate(t, cs, &Object{
		ID: "target", Type: TypeAircraft,
		Position:   mgl64.Vec3{0, 100, 200},
		Dimensions: mgl64.Vec3{10, 10, 10},
	})

	// Direction length 50: distances must still be in world units
	ray := Ray{Origin: mgl64.Vec3{0, 100, 0}, Direction: mgl64.Vec3{0, 0, 50}}
	hit, ok := cs.Raycast(ray, 1000, TypeAircraft.Mask())
	if !ok || math.Abs(hit.Distance-195) > 1e-9 {
		t.Errorf("expected distance 195 with unnormalized direction, got %+v ok=%v", hit, ok)
	}
}

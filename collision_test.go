package collision

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

func TestCheckSphereCollision(t *testing.T) {
	// Overlapping spheres
	if !CheckSphereCollision(mgl64.Vec3{0, 0, 0}, 10, mgl64.Vec3{15, 0, 0}, 10) {
		t.Error("spheres should collide (overlapping)")
	}

	// Touching spheres
	if !CheckSphereCollision(mgl64.Vec3{0, 0, 0}, 10, mgl64.Vec3{20, 0, 0}, 10) {
		t.Error("spheres should collide (touching)")
	}

	// Non-overlapping spheres
	if CheckSphereCollision(mgl64.Vec3{0, 0, 0}, 10, mgl64.Vec3{25, 0, 0}, 10) {
		t.Error("spheres should not collide")
	}

	// Same position
	if !CheckSphereCollision(mgl64.Vec3{5, 5, 5}, 1, mgl64.Vec3{5, 5, 5}, 1) {
		t.Error("same position should collide")
	}
}

func TestRaySphere(t *testing.T) {
	// Head-on hit: sphere radius 5 centered 100 units down +Z
	d, ok := raySphere(mgl64.Vec3{0, 0, 0}, mgl64.Vec3{0, 0, 1}, mgl64.Vec3{0, 0, 100}, 5)
	if !ok {
		t.Fatal("ray should hit the sphere")
	}
	if math.Abs(d-95) > 1e-9 {
		t.Errorf("expected hit at 95, got %v", d)
	}

	// Miss
	if _, ok := raySphere(mgl64.Vec3{0, 0, 0}, mgl64.Vec3{0, 0, 1}, mgl64.Vec3{20, 0, 100}, 5); ok {
		t.Error("ray should miss the sphere")
	}

	// Sphere behind the origin
	if _, ok := raySphere(mgl64.Vec3{0, 0, 0}, mgl64.Vec3{0, 0, 1}, mgl64.Vec3{0, 0, -100}, 5); ok {
		t.Error("sphere behind the ray should not hit")
	}

	// Origin inside the sphere hits the exit shell
	d, ok = raySphere(mgl64.Vec3{0, 0, 0}, mgl64.Vec3{0, 0, 1}, mgl64.Vec3{0, 0, 0}, 5)
	if !ok || math.Abs(d-5) > 1e-9 {
		t.Errorf("expected exit hit at 5, got %v ok=%v", d, ok)
	}
}

func TestRayBox(t *testing.T) {
	box := AABB{Min: mgl64.Vec3{-10, -10, 40}, Max: mgl64.Vec3{10, 10, 60}}

	// Straight in along +Z: entry at the near face
	d, n, ok := rayBox(box, mgl64.Vec3{0, 0, 0}, mgl64.Vec3{0, 0, 1}, 1000)
	if !ok {
		t.Fatal("ray should hit the box")
	}
	if math.Abs(d-40) > 1e-9 {
		t.Errorf("expected entry at 40, got %v", d)
	}
	if n != (mgl64.Vec3{0, 0, -1}) {
		t.Errorf("expected normal (0,0,-1), got %v", n)
	}

	// Miss to the side
	if _, _, ok := rayBox(box, mgl64.Vec3{50, 0, 0}, mgl64.Vec3{0, 0, 1}, 1000); ok {
		t.Error("offset ray should miss the box")
	}

	// Too short to reach
	if _, _, ok := rayBox(box, mgl64.Vec3{0, 0, 0}, mgl64.Vec3{0, 0, 1}, 30); ok {
		t.Error("entry beyond maxDist should not hit")
	}

	// Origin inside the box
	d, n, ok = rayBox(box, mgl64.Vec3{0, 0, 50}, mgl64.Vec3{0, 0, 1}, 1000)
	if !ok || d != 0 {
		t.Fatalf("origin inside the box should hit at 0, got %v ok=%v", d, ok)
	}
	if n != (mgl64.Vec3{0, 0, -1}) {
		t.Errorf("inside hit should oppose the ray, got %v", n)
	}
}

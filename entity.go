package collision

import (
	"errors"
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// EntityType tags what kind of simulated thing an entity is. The collision
// group table is keyed by it.
type EntityType uint8

const (
	TypeTerrain EntityType = iota
	TypeAircraft
	TypeProjectile
	TypeStaticObject
	TypePickup
	numEntityTypes
)

var typeNames = [numEntityTypes]string{"terrain", "aircraft", "projectile", "static", "pickup"}

// ErrUnknownType is returned when a config names an entity type that does not exist.
var ErrUnknownType = errors.New("unknown entity type")

// ErrNoGeometry is returned by UpdateObject when an entity carries neither
// explicit bounds nor position+dimensions to derive them from.
var ErrNoGeometry = errors.New("entity has no bounds and no dimensions")

func (t EntityType) String() string {
	if int(t) < len(typeNames) {
		return typeNames[t]
	}
	return fmt.Sprintf("type(%d)", uint8(t))
}

// ParseEntityType resolves a type name as used in config files.
func ParseEntityType(name string) (EntityType, error) {
	for i, n := range typeNames {
		if n == name {
			return EntityType(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownType, name)
}

// TypeMask is a bitset of entity types, one bit per EntityType.
type TypeMask uint8

// Mask returns the single-type bitset for t.
func (t EntityType) Mask() TypeMask {
	return 1 << t
}

// Has reports whether t is in the set.
func (m TypeMask) Has(t EntityType) bool {
	return m&t.Mask() != 0
}

// MaskOf builds a bitset from the given types.
func MaskOf(types ...EntityType) TypeMask {
	var m TypeMask
	for _, t := range types {
		m |= t.Mask()
	}
	return m
}

// Object is a per-tick entity snapshot pushed in by the simulation loop.
// Bounds is optional; when nil it is derived as a box of Dimensions extents
// centered on Position.
type Object struct {
	ID         string
	Type       EntityType
	Position   mgl64.Vec3
	Dimensions mgl64.Vec3
	Bounds     *AABB
}

// bounds resolves the entity's AABB, deriving it from Position/Dimensions
// when no explicit box was supplied.
func (o *Object) bounds() (AABB, error) {
	if o.Bounds != nil {
		return *o.Bounds, nil
	}
	if o.Dimensions == (mgl64.Vec3{}) {
		return AABB{}, ErrNoGeometry
	}
	return AABBFromCenterSize(o.Position, o.Dimensions), nil
}

// radius is the bounding-sphere radius used by the narrow phase: half the
// largest box extent.
func (o *Object) radius() float64 {
	return math.Max(o.Dimensions.X(), math.Max(o.Dimensions.Y(), o.Dimensions.Z())) / 2
}

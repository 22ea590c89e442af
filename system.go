package collision

import (
	"github.com/go-gl/mathgl/mgl64"
	"go.uber.org/zap"
)

// CollisionKind discriminates the two result variants.
type CollisionKind uint8

const (
	CollisionTerrain CollisionKind = iota
	CollisionObject
)

// Collision reports a single contact found during a tick. Terrain hits carry
// TerrainID; object hits carry B and Penetration. The subsystem only reports
// that and where a contact occurred; applying damage or impulses is the
// caller's business.
type Collision struct {
	Kind        CollisionKind
	TerrainID   string // terrain hits: the chunk that was struck
	A           string // the entity CheckCollisions was asked about
	B           string // object hits: the counterpart entity
	Position    mgl64.Vec3
	Normal      mgl64.Vec3
	Penetration float64 // object hits: radiusA + radiusB - centerDistance
}

type trackedObject struct {
	obj    Object
	bounds AABB
}

// CollisionSystem owns one octree for static terrain and one spatial hash
// grid for everything else, plus the registry and collision-group table that
// turn broad-phase candidates into collision results.
//
// The system is single-threaded by design: it is driven once per simulation
// tick by one owning loop, and no call may re-enter it while another is in
// flight. Hosts with multiple loops must wrap the whole instance in a
// critical section or shard the world into independent instances.
type CollisionSystem struct {
	log     *zap.Logger
	world   AABB
	octree  *Octree
	grid    *SpatialHashGrid
	objects map[string]*trackedObject
	terrain map[string]*TerrainChunk
	groups  [numEntityTypes]TypeMask

	queryBuf []string // reused across broad-phase calls
	chunkBuf []*TerrainChunk
}

// NewCollisionSystem creates a system from the given tuning config. A nil
// logger disables logging. The config's collision-group table is compiled up
// front; unknown type names fail here rather than mid-tick.
func NewCollisionSystem(cfg Config, log *zap.Logger) (*CollisionSystem, error) {
	if log == nil {
		log = zap.NewNop()
	}
	groups, err := cfg.groupTable()
	if err != nil {
		return nil, err
	}
	world := cfg.worldBounds()
	cs := &CollisionSystem{
		log:     log,
		world:   world,
		octree:  NewOctree(world, cfg.MaxDepth, cfg.MaxObjectsPerLeaf),
		grid:    NewSpatialHashGrid(cfg.CellSize),
		objects: make(map[string]*trackedObject),
		terrain: make(map[string]*TerrainChunk),
		groups:  groups,
	}
	log.Debug("collision system ready",
		zap.Float64("cellSize", cfg.CellSize),
		zap.Int("maxDepth", cfg.MaxDepth),
		zap.Int("maxObjectsPerLeaf", cfg.MaxObjectsPerLeaf))
	return cs, nil
}

// SetGroup overrides the allowed target set for one entity type.
func (cs *CollisionSystem) SetGroup(t EntityType, targets TypeMask) {
	cs.groups[t] = targets
}

// AddTerrainChunk registers a terrain chunk with the octree and the entity
// registry. Terrain is append-only: there is no update path, and replacing
// terrain requires Clear. A chunk without an ID is assigned one.
func (cs *CollisionSystem) AddTerrainChunk(c *TerrainChunk) {
	if c.ID == "" {
		c.ID = GenerateID(4)
	}
	cs.octree.Insert(c)
	cs.terrain[c.ID] = c
	cs.log.Debug("terrain chunk added",
		zap.String("id", c.ID),
		zap.Int("chunks", cs.octree.Len()))
}

// UpdateObject tracks a dynamic entity snapshot. A known id is updated in
// place by diffing its cached bounds through the grid; a new id is inserted
// fresh. The precondition check runs before any index mutation, so a
// rejected snapshot never leaves the grid partially updated.
func (cs *CollisionSystem) UpdateObject(o *Object) error {
	b, err := o.bounds()
	if err != nil {
		return err
	}
	if tr, ok := cs.objects[o.ID]; ok {
		cs.grid.Update(o.ID, tr.bounds, b)
		tr.obj = *o
		tr.bounds = b
		return nil
	}
	cs.grid.Insert(o.ID, b)
	cs.objects[o.ID] = &trackedObject{obj: *o, bounds: b}
	return nil
}

// RemoveObject drops a dynamic entity from the grid and registry. An unknown
// id is a no-op: entities routinely leave the world between ticks.
func (cs *CollisionSystem) RemoveObject(id string) {
	tr, ok := cs.objects[id]
	if !ok {
		return
	}
	cs.grid.Remove(id, tr.bounds)
	delete(cs.objects, id)
}

// Clear wipes all state: octree subdivisions, grid cells, and both
// registries. Used when tearing down or regenerating a session's world.
func (cs *CollisionSystem) Clear() {
	cs.octree.Clear()
	cs.grid = NewSpatialHashGrid(cs.grid.cellSize)
	cs.objects = make(map[string]*trackedObject)
	cs.terrain = make(map[string]*TerrainChunk)
	cs.log.Debug("collision system cleared")
}

// Tracked returns the number of dynamic entities in the registry.
func (cs *CollisionSystem) Tracked() int {
	return len(cs.objects)
}

// CheckCollisions returns every contact the entity currently has with the
// target types its collision group allows: the terrain result first if any,
// then object results in grid-iteration order (which is not stable between
// calls). An unknown id yields an empty result.
func (cs *CollisionSystem) CheckCollisions(id string) []Collision {
	tr, ok := cs.objects[id]
	if !ok {
		return nil
	}
	allowed := cs.groups[tr.obj.Type]

	var results []Collision
	if allowed.Has(TypeTerrain) {
		if hit, ok := cs.terrainContact(&tr.obj, tr.bounds); ok {
			results = append(results, hit)
		}
	}

	cs.queryBuf = cs.grid.Potential(id, tr.bounds, cs.queryBuf[:0])
	for _, cid := range cs.queryBuf {
		other, ok := cs.objects[cid]
		if !ok || !allowed.Has(other.obj.Type) {
			continue
		}
		if hit, ok := sphereContact(&tr.obj, &other.obj); ok {
			results = append(results, hit)
		}
	}
	return results
}

// CheckAllCollisions runs CheckCollisions for every tracked non-terrain
// entity, keeping only entities that actually collided with something.
func (cs *CollisionSystem) CheckAllCollisions() map[string][]Collision {
	out := make(map[string][]Collision)
	for id, tr := range cs.objects {
		if tr.obj.Type == TypeTerrain {
			continue
		}
		if hits := cs.CheckCollisions(id); len(hits) > 0 {
			out[id] = hits
		}
	}
	return out
}

// HeightAt samples the terrain surface height at (x, z) by probing the
// octree with a thin vertical column. Chunks may overlap in the horizontal
// plane; the highest sampled surface wins. Returns 0 when no terrain covers
// the column.
func (cs *CollisionSystem) HeightAt(x, z float64) float64 {
	probe := AABB{
		Min: mgl64.Vec3{x, cs.world.Min.Y(), z},
		Max: mgl64.Vec3{x, cs.world.Max.Y(), z},
	}
	cs.chunkBuf = cs.octree.Query(probe, cs.chunkBuf[:0])

	best := 0.0
	found := false
	for _, c := range cs.chunkBuf {
		if !c.Bounds.ContainsXZ(x, z) {
			continue
		}
		h := c.SampleHeight(x, z)
		if !found || h > best {
			best = h
			found = true
		}
	}
	return best
}

// terrainContact samples the first terrain chunk intersecting the entity's
// bounds and reports a contact when the entity's lowest point is at or below
// the sampled surface. At most one terrain result per call.
func (cs *CollisionSystem) terrainContact(o *Object, b AABB) (Collision, bool) {
	cs.chunkBuf = cs.octree.Query(b, cs.chunkBuf[:0])
	for _, c := range cs.chunkBuf {
		if !c.Bounds.Intersects(b) {
			continue
		}
		h := c.SampleHeight(o.Position.X(), o.Position.Z())
		bottom := o.Position.Y() - o.Dimensions.Y()/2
		if bottom > h {
			return Collision{}, false
		}
		return Collision{
			Kind:      CollisionTerrain,
			TerrainID: c.ID,
			A:         o.ID,
			Position:  mgl64.Vec3{o.Position.X(), h, o.Position.Z()},
			Normal:    mgl64.Vec3{0, 1, 0},
		}, true
	}
	return Collision{}, false
}

// sphereContact is the authoritative narrow-phase test: bounding spheres
// sized by each entity's largest extent. The grid's AABB overlap is only the
// broad-phase gate. A deliberate simplification over mesh collision.
func sphereContact(a, b *Object) (Collision, bool) {
	ra := a.radius()
	rb := b.radius()
	delta := b.Position.Sub(a.Position)
	dist := delta.Len()
	if dist > ra+rb {
		return Collision{}, false
	}
	// Coincident centers leave no direction to push along; (0, 1, 0) by
	// convention.
	normal := mgl64.Vec3{0, 1, 0}
	if dist > 0 {
		normal = delta.Mul(1 / dist)
	}
	return Collision{
		Kind:        CollisionObject,
		A:           a.ID,
		B:           b.ID,
		Position:    a.Position.Add(normal.Mul(ra)),
		Normal:      normal,
		Penetration: ra + rb - dist,
	}, true
}

package collision

import "math"

const DefaultCellSize = 100.0 // ~2x the largest dynamic entity extent

// cellKey identifies one uniform grid cell. Cell ids are unbounded integers,
// so the grid needs no world extent.
type cellKey struct {
	X, Y, Z int
}

// SpatialHashGrid is a uniform-cell index for frequently-moving entities.
// Cell sets are created lazily and dropped once empty, so memory tracks the
// occupied region rather than the world size.
type SpatialHashGrid struct {
	cellSize float64
	cells    map[cellKey]map[string]struct{}
}

// NewSpatialHashGrid creates a grid with the given cell size.
func NewSpatialHashGrid(cellSize float64) *SpatialHashGrid {
	if cellSize <= 0 {
		cellSize = DefaultCellSize
	}
	return &SpatialHashGrid{
		cellSize: cellSize,
		cells:    make(map[cellKey]map[string]struct{}),
	}
}

// cellRange returns the inclusive range of cell ids covered by bounds.
func (g *SpatialHashGrid) cellRange(b AABB) (lo, hi cellKey) {
	lo = cellKey{
		X: int(math.Floor(b.Min.X() / g.cellSize)),
		Y: int(math.Floor(b.Min.Y() / g.cellSize)),
		Z: int(math.Floor(b.Min.Z() / g.cellSize)),
	}
	hi = cellKey{
		X: int(math.Floor(b.Max.X() / g.cellSize)),
		Y: int(math.Floor(b.Max.Y() / g.cellSize)),
		Z: int(math.Floor(b.Max.Z() / g.cellSize)),
	}
	return lo, hi
}

func inCellRange(k, lo, hi cellKey) bool {
	return lo.X <= k.X && k.X <= hi.X &&
		lo.Y <= k.Y && k.Y <= hi.Y &&
		lo.Z <= k.Z && k.Z <= hi.Z
}

// Insert adds the entity id to every cell its bounds cover.
func (g *SpatialHashGrid) Insert(id string, bounds AABB) {
	lo, hi := g.cellRange(bounds)
	for x := lo.X; x <= hi.X; x++ {
		for y := lo.Y; y <= hi.Y; y++ {
			for z := lo.Z; z <= hi.Z; z++ {
				g.add(cellKey{x, y, z}, id)
			}
		}
	}
}

// Remove deletes the entity id from every cell the given bounds cover.
// The bounds must be the ones the id was last inserted or updated with.
func (g *SpatialHashGrid) Remove(id string, bounds AABB) {
	lo, hi := g.cellRange(bounds)
	for x := lo.X; x <= hi.X; x++ {
		for y := lo.Y; y <= hi.Y; y++ {
			for z := lo.Z; z <= hi.Z; z++ {
				g.del(cellKey{x, y, z}, id)
			}
		}
	}
}

// Update moves the entity between its old and new covered cells, touching
// only the cells that actually changed. Cheaper than Remove+Insert for the
// common small-movement case.
func (g *SpatialHashGrid) Update(id string, prev, next AABB) {
	oldLo, oldHi := g.cellRange(prev)
	newLo, newHi := g.cellRange(next)
	for x := oldLo.X; x <= oldHi.X; x++ {
		for y := oldLo.Y; y <= oldHi.Y; y++ {
			for z := oldLo.Z; z <= oldHi.Z; z++ {
				k := cellKey{x, y, z}
				if !inCellRange(k, newLo, newHi) {
					g.del(k, id)
				}
			}
		}
	}
	for x := newLo.X; x <= newHi.X; x++ {
		for y := newLo.Y; y <= newHi.Y; y++ {
			for z := newLo.Z; z <= newHi.Z; z++ {
				k := cellKey{x, y, z}
				if !inCellRange(k, oldLo, oldHi) {
					g.add(k, id)
				}
			}
		}
	}
}

// Potential appends to buf the ids of every entity sharing a covered cell
// with bounds, excluding id itself. This is the broad-phase candidate set:
// cell overlap only, callers must still narrow-phase test.
func (g *SpatialHashGrid) Potential(id string, bounds AABB, buf []string) []string {
	return g.collect(bounds, id, buf)
}

// QueryBounds appends to buf the ids of every entity in cells covered by
// bounds, with no self exclusion.
func (g *SpatialHashGrid) QueryBounds(bounds AABB, buf []string) []string {
	return g.collect(bounds, "", buf)
}

func (g *SpatialHashGrid) collect(bounds AABB, exclude string, buf []string) []string {
	seen := make(map[string]struct{})
	lo, hi := g.cellRange(bounds)
	for x := lo.X; x <= hi.X; x++ {
		for y := lo.Y; y <= hi.Y; y++ {
			for z := lo.Z; z <= hi.Z; z++ {
				for id := range g.cells[cellKey{x, y, z}] {
					if id == exclude {
						continue
					}
					if _, dup := seen[id]; dup {
						continue
					}
					seen[id] = struct{}{}
					buf = append(buf, id)
				}
			}
		}
	}
	return buf
}

// CellCount returns the number of non-empty cells.
func (g *SpatialHashGrid) CellCount() int {
	return len(g.cells)
}

func (g *SpatialHashGrid) add(k cellKey, id string) {
	set := g.cells[k]
	if set == nil {
		set = make(map[string]struct{})
		g.cells[k] = set
	}
	set[id] = struct{}{}
}

func (g *SpatialHashGrid) del(k cellKey, id string) {
	set := g.cells[k]
	if set == nil {
		return
	}
	delete(set, id)
	if len(set) == 0 {
		delete(g.cells, k)
	}
}

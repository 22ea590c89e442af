package collision

// HeightfieldScale maps heightfield sample indices to world units per axis.
type HeightfieldScale struct {
	X, Z float64
}

// TerrainChunk is a static terrain descriptor. Chunks are registered once per
// session via AddTerrainChunk and never updated in place; replacing terrain
// requires a full Clear and re-registration.
type TerrainChunk struct {
	ID               string
	Bounds           AABB
	Heightfield      [][]float64 // row-major height samples, rows along Z
	HeightfieldScale HeightfieldScale
	HeightAt         func(x, z float64) float64 // probe for non-heightfield terrain
}

// SampleHeight returns the terrain surface height at world (x, z). Preference
// order: heightfield lookup, then the HeightAt probe, then the chunk's
// minimum bound height when no height data exists at all.
func (c *TerrainChunk) SampleHeight(x, z float64) float64 {
	if len(c.Heightfield) > 0 {
		sx := c.HeightfieldScale.X
		sz := c.HeightfieldScale.Z
		if sx <= 0 {
			sx = 1
		}
		if sz <= 0 {
			sz = 1
		}
		row := clampInt(int((z-c.Bounds.Min.Z())/sz), 0, len(c.Heightfield)-1)
		samples := c.Heightfield[row]
		if len(samples) == 0 {
			return c.Bounds.Min.Y()
		}
		col := clampInt(int((x-c.Bounds.Min.X())/sx), 0, len(samples)-1)
		return samples[col]
	}
	if c.HeightAt != nil {
		return c.HeightAt(x, z)
	}
	return c.Bounds.Min.Y()
}

// hasHeightData reports whether the chunk can resolve a surface height more
// precisely than its bounding box.
func (c *TerrainChunk) hasHeightData() bool {
	return len(c.Heightfield) > 0 || c.HeightAt != nil
}

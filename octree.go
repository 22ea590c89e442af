package collision

const (
	DefaultMaxDepth          = 5
	DefaultMaxObjectsPerLeaf = 8
)

// Octree is a bounded recursive spatial index over static terrain chunks.
// Chunks whose bounds straddle a subdivision boundary are stored in every
// intersecting child; queries therefore may return the same chunk more than
// once, which callers tolerate in exchange for never missing one.
type Octree struct {
	root              *octreeNode
	maxDepth          int
	maxObjectsPerLeaf int
	size              int
}

type octreeNode struct {
	bounds   AABB
	depth    int
	chunks   []*TerrainChunk // leaf entries, nil once subdivided
	children []*octreeNode   // 8 octants, nil for leaves
}

// NewOctree creates an octree over the fixed world volume. Chunks positioned
// outside it are effectively unindexed; terrain generation keeps chunks
// inside the configured bounds.
func NewOctree(bounds AABB, maxDepth, maxObjectsPerLeaf int) *Octree {
	if maxDepth < 0 {
		maxDepth = DefaultMaxDepth
	}
	if maxObjectsPerLeaf <= 0 {
		maxObjectsPerLeaf = DefaultMaxObjectsPerLeaf
	}
	return &Octree{
		root:              &octreeNode{bounds: bounds},
		maxDepth:          maxDepth,
		maxObjectsPerLeaf: maxObjectsPerLeaf,
	}
}

// Insert adds a terrain chunk to the index.
func (t *Octree) Insert(c *TerrainChunk) {
	t.root.insert(c, t.maxDepth, t.maxObjectsPerLeaf)
	t.size++
}

// Query appends to buf every chunk stored in a node intersecting bounds.
// The result is conservative: callers must still test each chunk's bounds.
func (t *Octree) Query(bounds AABB, buf []*TerrainChunk) []*TerrainChunk {
	return t.root.query(bounds, buf)
}

// Clear drops all subdivisions and entries, returning to a single empty leaf.
func (t *Octree) Clear() {
	t.root = &octreeNode{bounds: t.root.bounds}
	t.size = 0
}

// Len returns the number of inserted chunks.
func (t *Octree) Len() int {
	return t.size
}

// Bounds returns the fixed world volume the octree covers.
func (t *Octree) Bounds() AABB {
	return t.root.bounds
}

func (n *octreeNode) insert(c *TerrainChunk, maxDepth, maxPerLeaf int) {
	if n.children != nil {
		for _, child := range n.children {
			if child.bounds.Intersects(c.Bounds) {
				child.insert(c, maxDepth, maxPerLeaf)
			}
		}
		return
	}
	n.chunks = append(n.chunks, c)
	// Leaves at maxDepth never split; an oversized leaf degrades to a linear
	// scan instead of recursing without bound.
	if len(n.chunks) > maxPerLeaf && n.depth < maxDepth {
		n.subdivide(maxDepth, maxPerLeaf)
	}
}

// subdivide splits the leaf into 8 equal octants at the midpoint and
// redistributes its chunks into every intersecting child.
func (n *octreeNode) subdivide(maxDepth, maxPerLeaf int) {
	mid := n.bounds.Center()
	n.children = make([]*octreeNode, 8)
	for i := range n.children {
		min := n.bounds.Min
		max := mid
		if i&1 != 0 {
			min[0], max[0] = mid.X(), n.bounds.Max.X()
		}
		if i&2 != 0 {
			min[1], max[1] = mid.Y(), n.bounds.Max.Y()
		}
		if i&4 != 0 {
			min[2], max[2] = mid.Z(), n.bounds.Max.Z()
		}
		n.children[i] = &octreeNode{
			bounds: AABB{Min: min, Max: max},
			depth:  n.depth + 1,
		}
	}

	chunks := n.chunks
	n.chunks = nil
	for _, c := range chunks {
		for _, child := range n.children {
			if child.bounds.Intersects(c.Bounds) {
				child.insert(c, maxDepth, maxPerLeaf)
			}
		}
	}
}

func (n *octreeNode) query(bounds AABB, buf []*TerrainChunk) []*TerrainChunk {
	if !n.bounds.Intersects(bounds) {
		return buf
	}
	if n.children == nil {
		return append(buf, n.chunks...)
	}
	for _, child := range n.children {
		buf = child.query(bounds, buf)
	}
	return buf
}

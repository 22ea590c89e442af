package collision

import (
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/go-gl/mathgl/mgl64"
)

// Config holds the tuning parameters for the collision core. All latency
// bounding happens here: there is no cancellation inside a query, so hosts
// tune cell-size, max-depth and max-objects-per-leaf to bound query volume.
type Config struct {
	// Fixed world volume covered by the terrain octree.
	WorldMin [3]float64 `toml:"world-min"`
	WorldMax [3]float64 `toml:"world-max"`

	// Grid cell edge length; works best near 2x the largest dynamic entity
	// extent.
	CellSize float64 `toml:"cell-size"`

	MaxDepth          int `toml:"max-depth"`
	MaxObjectsPerLeaf int `toml:"max-objects-per-leaf"`

	// Directed collision groups: type name -> target type names it may
	// collide with. Not necessarily symmetric.
	Groups map[string][]string `toml:"collision-groups"`
}

// DefaultConfig returns the tuning used by the stock flight-sim world.
func DefaultConfig() Config {
	return Config{
		WorldMin:          [3]float64{-4000, -500, -4000},
		WorldMax:          [3]float64{4000, 3500, 4000},
		CellSize:          DefaultCellSize,
		MaxDepth:          DefaultMaxDepth,
		MaxObjectsPerLeaf: DefaultMaxObjectsPerLeaf,
		Groups: map[string][]string{
			"aircraft":   {"terrain", "aircraft", "projectile", "static", "pickup"},
			"projectile": {"terrain", "aircraft", "static"},
			"pickup":     {"aircraft"},
			"static":     {},
			"terrain":    {},
		},
	}
}

// ReadConfig loads tuning from a TOML file over the defaults. Unknown keys
// and unknown entity type names in collision-groups are errors, so a typo
// fails at load instead of silently disabling collisions.
func ReadConfig(path string) (Config, error) {
	c := DefaultConfig()
	meta, err := toml.DecodeFile(path, &c)
	if err != nil {
		return Config{}, err
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return Config{}, fmt.Errorf("unknown config keys: [%s]", strings.Join(keys, ", "))
	}
	if _, err := c.groupTable(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// groupTable compiles the name-based group config into per-type bitmasks.
func (c Config) groupTable() ([numEntityTypes]TypeMask, error) {
	var table [numEntityTypes]TypeMask
	for name, targets := range c.Groups {
		src, err := ParseEntityType(name)
		if err != nil {
			return table, err
		}
		for _, targetName := range targets {
			target, err := ParseEntityType(targetName)
			if err != nil {
				return table, err
			}
			table[src] |= target.Mask()
		}
	}
	return table, nil
}

// worldBounds returns the configured world volume, falling back to the
// default volume when left zero.
func (c Config) worldBounds() AABB {
	if c.WorldMin == c.WorldMax {
		d := DefaultConfig()
		return AABB{Min: mgl64.Vec3(d.WorldMin), Max: mgl64.Vec3(d.WorldMax)}
	}
	return AABB{Min: mgl64.Vec3(c.WorldMin), Max: mgl64.Vec3(c.WorldMax)}
}

package ruleset

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// SpawnBand defines enemy spawning for a contiguous depth range. Bands are
// matched in order; the first band whose MaxDepth is >= the current depth
// applies, and a MaxDepth of 0 means "no upper bound" (the final band).
type SpawnBand struct {
	MaxDepth int `yaml:"max_depth"`
	// Count is the number of enemies spawned per level in this band.
	Count int `yaml:"count"`
	// Weights maps enemy type IDs to their relative spawn weight.
	Weights map[string]int `yaml:"weights"`
}

// SpawnTable defines the level-banded enemy spawn distribution.
type SpawnTable struct {
	Bands []SpawnBand `yaml:"bands"`
}

// Validate checks that the SpawnTable satisfies its invariants.
//
// Postcondition: returns nil iff bands are non-empty, ordered, and the final
// band is unbounded.
func (t SpawnTable) Validate() error {
	if len(t.Bands) == 0 {
		return fmt.Errorf("spawn table: bands must not be empty")
	}
	prevMax := 0
	for i, b := range t.Bands {
		last := i == len(t.Bands)-1
		if last {
			if b.MaxDepth != 0 {
				return fmt.Errorf("spawn table: final band must have max_depth 0 (unbounded), got %d", b.MaxDepth)
			}
		} else {
			if b.MaxDepth < 1 {
				return fmt.Errorf("spawn table: bands[%d] max_depth must be >= 1, got %d", i, b.MaxDepth)
			}
			if b.MaxDepth <= prevMax {
				return fmt.Errorf("spawn table: bands[%d] max_depth %d must exceed previous band's %d", i, b.MaxDepth, prevMax)
			}
			prevMax = b.MaxDepth
		}
		if b.Count < 1 {
			return fmt.Errorf("spawn table: bands[%d] count must be >= 1, got %d", i, b.Count)
		}
		if len(b.Weights) == 0 {
			return fmt.Errorf("spawn table: bands[%d] weights must not be empty", i)
		}
		for id, w := range b.Weights {
			if w < 1 {
				return fmt.Errorf("spawn table: bands[%d] weight for %q must be >= 1, got %d", i, id, w)
			}
		}
	}
	return nil
}

// BandFor returns the spawn band covering the given depth.
//
// Precondition: the table must have passed Validate; depth must be >= 1.
func (t SpawnTable) BandFor(depth int) SpawnBand {
	for _, b := range t.Bands {
		if b.MaxDepth == 0 || depth <= b.MaxDepth {
			return b
		}
	}
	return t.Bands[len(t.Bands)-1]
}

// LoadSpawnTable reads and validates the spawn table at path.
//
// Precondition: path must be a readable YAML file.
// Postcondition: Returns a valid SpawnTable or a non-nil error.
func LoadSpawnTable(path string) (SpawnTable, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return SpawnTable{}, fmt.Errorf("reading %s: %w", path, err)
	}
	var t SpawnTable
	if err := yaml.Unmarshal(data, &t); err != nil {
		return SpawnTable{}, fmt.Errorf("parsing spawn table %s: %w", path, err)
	}
	if err := t.Validate(); err != nil {
		return SpawnTable{}, fmt.Errorf("invalid spawn table %s: %w", path, err)
	}
	return t, nil
}

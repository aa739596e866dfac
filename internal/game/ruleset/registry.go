package ruleset

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
)

// Registry aggregates all loaded content with ID lookups.
//
// Invariant: every cross-reference (class ability IDs, spawn band enemy IDs)
// resolves; construction fails otherwise.
type Registry struct {
	classes   map[string]*ClassDef
	enemies   map[string]*EnemyTypeDef
	abilities map[string]*AbilityDef
	loot      LootTable
	spawn     SpawnTable
}

// NewRegistry builds a Registry and checks cross-references.
//
// Postcondition: returns a non-nil Registry iff every class ability ID and
// every spawn band enemy type ID resolves, with no duplicate IDs anywhere.
func NewRegistry(classes []*ClassDef, enemies []*EnemyTypeDef, abilities []*AbilityDef, loot LootTable, spawn SpawnTable) (*Registry, error) {
	r := &Registry{
		classes:   make(map[string]*ClassDef, len(classes)),
		enemies:   make(map[string]*EnemyTypeDef, len(enemies)),
		abilities: make(map[string]*AbilityDef, len(abilities)),
		loot:      loot,
		spawn:     spawn,
	}

	for _, d := range abilities {
		if _, dup := r.abilities[d.ID]; dup {
			return nil, fmt.Errorf("registry: duplicate ability ID %q", d.ID)
		}
		r.abilities[d.ID] = d
	}
	for _, d := range enemies {
		if _, dup := r.enemies[d.ID]; dup {
			return nil, fmt.Errorf("registry: duplicate enemy type ID %q", d.ID)
		}
		r.enemies[d.ID] = d
	}
	for _, d := range classes {
		if _, dup := r.classes[d.ID]; dup {
			return nil, fmt.Errorf("registry: duplicate class ID %q", d.ID)
		}
		r.classes[d.ID] = d
		for _, abilityID := range d.Abilities {
			if _, ok := r.abilities[abilityID]; !ok {
				return nil, fmt.Errorf("registry: class %q references unknown ability %q", d.ID, abilityID)
			}
		}
	}

	for i, band := range spawn.Bands {
		for enemyID := range band.Weights {
			if _, ok := r.enemies[enemyID]; !ok {
				return nil, fmt.Errorf("registry: spawn band %d references unknown enemy type %q", i, enemyID)
			}
		}
	}

	return r, nil
}

// Load reads all content from the conventional layout under root:
// classes/, enemies/, abilities/, loot.yaml, spawn.yaml.
//
// Precondition: root must be a readable directory in the conventional layout.
// Postcondition: Returns a fully cross-validated Registry or a non-nil error.
func Load(root string) (*Registry, error) {
	classes, err := LoadClasses(filepath.Join(root, "classes"))
	if err != nil {
		return nil, fmt.Errorf("loading classes: %w", err)
	}
	enemies, err := LoadEnemyTypes(filepath.Join(root, "enemies"))
	if err != nil {
		return nil, fmt.Errorf("loading enemy types: %w", err)
	}
	abilities, err := LoadAbilities(filepath.Join(root, "abilities"))
	if err != nil {
		return nil, fmt.Errorf("loading abilities: %w", err)
	}
	loot, err := LoadLootTable(filepath.Join(root, "loot.yaml"))
	if err != nil {
		return nil, fmt.Errorf("loading loot table: %w", err)
	}
	spawn, err := LoadSpawnTable(filepath.Join(root, "spawn.yaml"))
	if err != nil {
		return nil, fmt.Errorf("loading spawn table: %w", err)
	}
	return NewRegistry(classes, enemies, abilities, loot, spawn)
}

// Class returns the class with the given ID.
func (r *Registry) Class(id string) (*ClassDef, bool) {
	d, ok := r.classes[id]
	return d, ok
}

// EnemyType returns the enemy type with the given ID.
func (r *Registry) EnemyType(id string) (*EnemyTypeDef, bool) {
	d, ok := r.enemies[id]
	return d, ok
}

// Ability returns the ability with the given ID.
func (r *Registry) Ability(id string) (*AbilityDef, bool) {
	d, ok := r.abilities[id]
	return d, ok
}

// ClassIDs returns all class IDs in sorted order.
func (r *Registry) ClassIDs() []string {
	ids := make([]string, 0, len(r.classes))
	for id := range r.classes {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Loot returns the loot table.
func (r *Registry) Loot() LootTable { return r.loot }

// Spawn returns the spawn table.
func (r *Registry) Spawn() SpawnTable { return r.spawn }

// yamlFiles returns the sorted paths of all .yaml and .yml files in dir.
func yamlFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading directory %q: %w", dir, err)
	}
	var files []string
	for _, entry := range entries {
		ext := filepath.Ext(entry.Name())
		if entry.IsDir() || (ext != ".yaml" && ext != ".yml") {
			continue
		}
		files = append(files, filepath.Join(dir, entry.Name()))
	}
	sort.Strings(files)
	return files, nil
}

// Package ruleset loads and validates the YAML-defined game content: player
// classes, enemy types, abilities, loot tiers, and spawn tables.
package ruleset

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// ClassRogue is the class ID with backstab attacks and reduced enemy
// detection radii attached to it elsewhere in the simulation.
const ClassRogue = "rogue"

// AbilitiesPerClass is the fixed size of every class's ability list.
const AbilitiesPerClass = 3

// ClassDef defines a playable class archetype.
//
// Precondition: after loading, ID, Name, HP, and Attack must be non-zero and
// Abilities must list exactly AbilitiesPerClass ability IDs in cast order.
type ClassDef struct {
	ID      string `yaml:"id"`
	Name    string `yaml:"name"`
	HP      int    `yaml:"hp"`
	Attack  int    `yaml:"attack"`
	Defense int    `yaml:"defense"`
	// HPPerLevel is the max-HP growth granted on each level-up.
	HPPerLevel int `yaml:"hp_per_level"`
	// Abilities is the ordered list of ability IDs granted at creation.
	Abilities []string `yaml:"abilities"`
}

// Validate checks that the ClassDef satisfies its invariants.
//
// Postcondition: returns nil iff all fields are valid.
func (d *ClassDef) Validate() error {
	if d.ID == "" {
		return fmt.Errorf("class: ID must not be empty")
	}
	if d.Name == "" {
		return fmt.Errorf("class %q: Name must not be empty", d.ID)
	}
	if d.HP < 1 {
		return fmt.Errorf("class %q: HP must be >= 1, got %d", d.ID, d.HP)
	}
	if d.Attack < 1 {
		return fmt.Errorf("class %q: Attack must be >= 1, got %d", d.ID, d.Attack)
	}
	if d.Defense < 0 {
		return fmt.Errorf("class %q: Defense must be >= 0, got %d", d.ID, d.Defense)
	}
	if d.HPPerLevel < 0 {
		return fmt.Errorf("class %q: HPPerLevel must be >= 0, got %d", d.ID, d.HPPerLevel)
	}
	if len(d.Abilities) != AbilitiesPerClass {
		return fmt.Errorf("class %q: must list exactly %d abilities, got %d", d.ID, AbilitiesPerClass, len(d.Abilities))
	}
	return nil
}

// LoadClasses reads all YAML files in dir and parses each as a ClassDef.
//
// Precondition: dir must be a readable directory path.
// Postcondition: Returns all valid defs or the first encountered error.
func LoadClasses(dir string) ([]*ClassDef, error) {
	files, err := yamlFiles(dir)
	if err != nil {
		return nil, err
	}
	defs := make([]*ClassDef, 0, len(files))
	for _, path := range files {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", path, err)
		}
		var d ClassDef
		if err := yaml.Unmarshal(data, &d); err != nil {
			return nil, fmt.Errorf("parsing class file %s: %w", path, err)
		}
		if err := d.Validate(); err != nil {
			return nil, fmt.Errorf("invalid class in %s: %w", path, err)
		}
		defs = append(defs, &d)
	}
	return defs, nil
}

package ruleset

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// EnemyTypeDef defines the base stats and reward for one enemy type.
// Spawned enemies scale HP/Attack/Defense by the per-depth difficulty
// multiplier; XPReward is granted unscaled on kill.
type EnemyTypeDef struct {
	ID       string `yaml:"id"`
	Name     string `yaml:"name"`
	HP       int    `yaml:"hp"`
	Attack   int    `yaml:"attack"`
	Defense  int    `yaml:"defense"`
	XPReward int    `yaml:"xp_reward"`
}

// Validate checks that the EnemyTypeDef satisfies its invariants.
//
// Postcondition: returns nil iff all fields are valid.
func (d *EnemyTypeDef) Validate() error {
	if d.ID == "" {
		return fmt.Errorf("enemy type: ID must not be empty")
	}
	if d.Name == "" {
		return fmt.Errorf("enemy type %q: Name must not be empty", d.ID)
	}
	if d.HP < 1 {
		return fmt.Errorf("enemy type %q: HP must be >= 1, got %d", d.ID, d.HP)
	}
	if d.Attack < 1 {
		return fmt.Errorf("enemy type %q: Attack must be >= 1, got %d", d.ID, d.Attack)
	}
	if d.Defense < 0 {
		return fmt.Errorf("enemy type %q: Defense must be >= 0, got %d", d.ID, d.Defense)
	}
	if d.XPReward < 1 {
		return fmt.Errorf("enemy type %q: XPReward must be >= 1, got %d", d.ID, d.XPReward)
	}
	return nil
}

// LoadEnemyTypes reads all YAML files in dir and parses each as an EnemyTypeDef.
//
// Precondition: dir must be a readable directory path.
// Postcondition: Returns all valid defs or the first encountered error.
func LoadEnemyTypes(dir string) ([]*EnemyTypeDef, error) {
	files, err := yamlFiles(dir)
	if err != nil {
		return nil, err
	}
	defs := make([]*EnemyTypeDef, 0, len(files))
	for _, path := range files {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", path, err)
		}
		var d EnemyTypeDef
		if err := yaml.Unmarshal(data, &d); err != nil {
			return nil, fmt.Errorf("parsing enemy type file %s: %w", path, err)
		}
		if err := d.Validate(); err != nil {
			return nil, fmt.Errorf("invalid enemy type in %s: %w", path, err)
		}
		defs = append(defs, &d)
	}
	return defs, nil
}

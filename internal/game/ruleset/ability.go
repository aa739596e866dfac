package ruleset

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// AbilityKind selects the gameplay effect an ability definition drives.
type AbilityKind string

// The closed set of ability kinds.
const (
	AbilityFireball     AbilityKind = "fireball"
	AbilityDash         AbilityKind = "dash"
	AbilityHealingTouch AbilityKind = "healing_touch"
	AbilityFrostNova    AbilityKind = "frost_nova"
	AbilityWhirlwind    AbilityKind = "whirlwind"
	AbilityShadowStep   AbilityKind = "shadow_step"
)

var validAbilityKinds = map[AbilityKind]bool{
	AbilityFireball:     true,
	AbilityDash:         true,
	AbilityHealingTouch: true,
	AbilityFrostNova:    true,
	AbilityWhirlwind:    true,
	AbilityShadowStep:   true,
}

// AbilityDef defines one ability's kind, cooldown, and kind-specific numbers.
//
// Field usage per kind: Fireball uses Power (damage) and Radius (Chebyshev);
// Dash uses Range (max Manhattan distance); HealingTouch uses Power (heal);
// FrostNova uses Power (freeze turns) and Radius (Manhattan); Whirlwind uses
// no extra fields (it deals the caster's raw attack); ShadowStep uses
// Multiplier (applied to the caster's attack).
type AbilityDef struct {
	ID         string      `yaml:"id"`
	Name       string      `yaml:"name"`
	Kind       AbilityKind `yaml:"kind"`
	Cooldown   int         `yaml:"cooldown"`
	Power      int         `yaml:"power"`
	Radius     int         `yaml:"radius"`
	Range      int         `yaml:"range"`
	Multiplier float64     `yaml:"multiplier"`
}

// Validate checks that the AbilityDef satisfies its invariants, including the
// kind-specific field requirements.
//
// Postcondition: returns nil iff all fields are valid for the declared kind.
func (d *AbilityDef) Validate() error {
	if d.ID == "" {
		return fmt.Errorf("ability: ID must not be empty")
	}
	if d.Name == "" {
		return fmt.Errorf("ability %q: Name must not be empty", d.ID)
	}
	if !validAbilityKinds[d.Kind] {
		return fmt.Errorf("ability %q: unknown kind %q", d.ID, d.Kind)
	}
	if d.Cooldown < 1 {
		return fmt.Errorf("ability %q: Cooldown must be >= 1, got %d", d.ID, d.Cooldown)
	}

	switch d.Kind {
	case AbilityFireball:
		if d.Power < 1 {
			return fmt.Errorf("ability %q: fireball Power must be >= 1, got %d", d.ID, d.Power)
		}
		if d.Radius < 0 {
			return fmt.Errorf("ability %q: fireball Radius must be >= 0, got %d", d.ID, d.Radius)
		}
	case AbilityDash:
		if d.Range < 1 {
			return fmt.Errorf("ability %q: dash Range must be >= 1, got %d", d.ID, d.Range)
		}
	case AbilityHealingTouch:
		if d.Power < 1 {
			return fmt.Errorf("ability %q: healing_touch Power must be >= 1, got %d", d.ID, d.Power)
		}
	case AbilityFrostNova:
		if d.Power < 1 {
			return fmt.Errorf("ability %q: frost_nova Power (freeze turns) must be >= 1, got %d", d.ID, d.Power)
		}
		if d.Radius < 1 {
			return fmt.Errorf("ability %q: frost_nova Radius must be >= 1, got %d", d.ID, d.Radius)
		}
	case AbilityShadowStep:
		if d.Multiplier < 1 {
			return fmt.Errorf("ability %q: shadow_step Multiplier must be >= 1, got %g", d.ID, d.Multiplier)
		}
	}
	return nil
}

// LoadAbilities reads all YAML files in dir and parses each as an AbilityDef.
//
// Precondition: dir must be a readable directory path.
// Postcondition: Returns all valid defs or the first encountered error.
func LoadAbilities(dir string) ([]*AbilityDef, error) {
	files, err := yamlFiles(dir)
	if err != nil {
		return nil, err
	}
	defs := make([]*AbilityDef, 0, len(files))
	for _, path := range files {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", path, err)
		}
		var d AbilityDef
		if err := yaml.Unmarshal(data, &d); err != nil {
			return nil, fmt.Errorf("parsing ability file %s: %w", path, err)
		}
		if err := d.Validate(); err != nil {
			return nil, fmt.Errorf("invalid ability in %s: %w", path, err)
		}
		defs = append(defs, &d)
	}
	return defs, nil
}

package ruleset

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Item kind constants for ItemKindDef.Kind.
const (
	ItemPotion = "potion"
	ItemSword  = "sword"
	ItemShield = "shield"
	ItemBoots  = "boots"
	ItemRing   = "ring"
	ItemGold   = "gold"
	ItemChest  = "chest"
)

var validItemKinds = map[string]bool{
	ItemPotion: true,
	ItemSword:  true,
	ItemShield: true,
	ItemBoots:  true,
	ItemRing:   true,
	ItemGold:   true,
	ItemChest:  true,
}

// RarityCount is the fixed number of rarity tiers.
const RarityCount = 5

// RareTierIndex is the first tier index (into LootTable.Tiers) that receives
// random stat affixes.
const RareTierIndex = 2

// ItemKindDef defines one spawnable item kind and its base magnitude.
// Bonus is the heal amount for potions, the stat bonus for equipment, and the
// base gold amount for gold piles and chests.
type ItemKindDef struct {
	Kind   string `yaml:"kind"`
	Weight int    `yaml:"weight"`
	Bonus  int    `yaml:"bonus"`
}

// RarityTier defines one rarity tier's multipliers and its level-scaled
// spawn weight: weight(depth) = BaseWeight + WeightPerDepth * depth.
type RarityTier struct {
	Tier           string  `yaml:"tier"`
	StatMultiplier float64 `yaml:"stat_multiplier"`
	GoldMultiplier int     `yaml:"gold_multiplier"`
	BaseWeight     int     `yaml:"base_weight"`
	WeightPerDepth int     `yaml:"weight_per_depth"`
}

// AffixDef defines the magnitude range for one affix stat.
type AffixDef struct {
	Stat string `yaml:"stat"`
	Min  int    `yaml:"min"`
	Max  int    `yaml:"max"`
}

// LootTable defines everything item generation draws from.
//
// Invariant: Tiers is ordered common-to-legendary; tiers at index
// RareTierIndex and above grant affixes.
type LootTable struct {
	Kinds   []ItemKindDef `yaml:"kinds"`
	Tiers   []RarityTier  `yaml:"tiers"`
	Affixes []AffixDef    `yaml:"affixes"`
}

// Validate checks that the LootTable satisfies its invariants.
//
// Postcondition: returns nil iff kinds, tiers, and affixes are all valid.
func (t LootTable) Validate() error {
	if len(t.Kinds) == 0 {
		return fmt.Errorf("loot table: kinds must not be empty")
	}
	seen := make(map[string]bool, len(t.Kinds))
	for i, k := range t.Kinds {
		if !validItemKinds[k.Kind] {
			return fmt.Errorf("loot table: kinds[%d] has unknown kind %q", i, k.Kind)
		}
		if seen[k.Kind] {
			return fmt.Errorf("loot table: duplicate kind %q", k.Kind)
		}
		seen[k.Kind] = true
		if k.Weight < 1 {
			return fmt.Errorf("loot table: kind %q weight must be >= 1, got %d", k.Kind, k.Weight)
		}
		if k.Bonus < 1 {
			return fmt.Errorf("loot table: kind %q bonus must be >= 1, got %d", k.Kind, k.Bonus)
		}
	}

	if len(t.Tiers) != RarityCount {
		return fmt.Errorf("loot table: must define exactly %d rarity tiers, got %d", RarityCount, len(t.Tiers))
	}
	for i, tier := range t.Tiers {
		if tier.Tier == "" {
			return fmt.Errorf("loot table: tiers[%d] name must not be empty", i)
		}
		if tier.StatMultiplier < 1 {
			return fmt.Errorf("loot table: tier %q stat_multiplier must be >= 1, got %g", tier.Tier, tier.StatMultiplier)
		}
		if tier.GoldMultiplier < 1 {
			return fmt.Errorf("loot table: tier %q gold_multiplier must be >= 1, got %d", tier.Tier, tier.GoldMultiplier)
		}
		if tier.BaseWeight < 0 || tier.WeightPerDepth < 0 {
			return fmt.Errorf("loot table: tier %q weights must be >= 0", tier.Tier)
		}
		if tier.BaseWeight == 0 && tier.WeightPerDepth == 0 {
			return fmt.Errorf("loot table: tier %q must have a non-zero weight curve", tier.Tier)
		}
	}

	if len(t.Affixes) == 0 {
		return fmt.Errorf("loot table: affixes must not be empty")
	}
	for i, a := range t.Affixes {
		if a.Stat == "" {
			return fmt.Errorf("loot table: affixes[%d] stat must not be empty", i)
		}
		if a.Min < 1 || a.Min > a.Max {
			return fmt.Errorf("loot table: affix %q range [%d, %d] invalid", a.Stat, a.Min, a.Max)
		}
	}
	return nil
}

// Kind returns the ItemKindDef for the given kind name.
//
// Postcondition: ok is false iff the kind is not in the table.
func (t LootTable) Kind(kind string) (ItemKindDef, bool) {
	for _, k := range t.Kinds {
		if k.Kind == kind {
			return k, true
		}
	}
	return ItemKindDef{}, false
}

// LoadLootTable reads and validates the loot table at path.
//
// Precondition: path must be a readable YAML file.
// Postcondition: Returns a valid LootTable or a non-nil error.
func LoadLootTable(path string) (LootTable, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return LootTable{}, fmt.Errorf("reading %s: %w", path, err)
	}
	var t LootTable
	if err := yaml.Unmarshal(data, &t); err != nil {
		return LootTable{}, fmt.Errorf("parsing loot table %s: %w", path, err)
	}
	if err := t.Validate(); err != nil {
		return LootTable{}, fmt.Errorf("invalid loot table %s: %w", path, err)
	}
	return t, nil
}

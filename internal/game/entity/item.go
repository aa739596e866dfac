package entity

import (
	"math"

	"github.com/delver-game/delver/internal/game/dungeon"
	"github.com/delver-game/delver/internal/game/ruleset"
)

// Slot identifies one of the four equipment slots.
type Slot string

// The four equipment slots. Each holds at most one item.
const (
	SlotWeapon    Slot = "weapon"
	SlotArmor     Slot = "armor"
	SlotAccessory Slot = "accessory"
	SlotBoots     Slot = "boots"
)

// AllSlots lists every equipment slot in display order.
var AllSlots = []Slot{SlotWeapon, SlotArmor, SlotAccessory, SlotBoots}

// Item is a spawned item instance: a kind plus a rolled rarity and affixes.
type Item struct {
	Entity
	// Kind is one of the ruleset item kind constants.
	Kind string
	// Rarity is the rolled tier (a copy, so later table edits cannot mutate
	// live items).
	Rarity ruleset.RarityTier
	// RarityIndex is the tier's index in the loot table, common = 0.
	RarityIndex int
	// BaseBonus is the kind's base magnitude before rarity scaling.
	BaseBonus int
	// Affixes maps stat names to bonus magnitudes; only Rare+ items have any.
	Affixes map[string]int
}

// NewItem creates an item instance at the given position.
func NewItem(pos dungeon.Point, kind string, tier ruleset.RarityTier, tierIndex, baseBonus int, affixes map[string]int) *Item {
	return &Item{
		Entity:      NewEntity(pos),
		Kind:        kind,
		Rarity:      tier,
		RarityIndex: tierIndex,
		BaseBonus:   baseBonus,
		Affixes:     affixes,
	}
}

// Slot returns the equipment slot for this item's kind, or false for
// non-equipment kinds.
func (it *Item) Slot() (Slot, bool) {
	switch it.Kind {
	case ruleset.ItemSword:
		return SlotWeapon, true
	case ruleset.ItemShield:
		return SlotArmor, true
	case ruleset.ItemRing:
		return SlotAccessory, true
	case ruleset.ItemBoots:
		return SlotBoots, true
	default:
		return "", false
	}
}

// Consumable reports whether pickup applies the item immediately instead of
// storing or equipping it.
func (it *Item) Consumable() bool {
	switch it.Kind {
	case ruleset.ItemPotion, ruleset.ItemGold, ruleset.ItemChest:
		return true
	default:
		return false
	}
}

// scaled applies the rarity stat multiplier to base + affix, flooring.
// Affixes are additive before the multiplier.
func (it *Item) scaled(base int, affixStat string) int {
	return int(math.Floor(float64(base+it.Affixes[affixStat]) * it.Rarity.StatMultiplier))
}

// AttackBonus returns the attack this item grants while equipped.
func (it *Item) AttackBonus() int {
	base := 0
	if it.Kind == ruleset.ItemSword || it.Kind == ruleset.ItemRing {
		base = it.BaseBonus
	}
	return it.scaled(base, "attack")
}

// DefenseBonus returns the defense this item grants while equipped.
func (it *Item) DefenseBonus() int {
	base := 0
	if it.Kind == ruleset.ItemShield || it.Kind == ruleset.ItemBoots {
		base = it.BaseBonus
	}
	return it.scaled(base, "defense")
}

// MaxHPBonus returns the max-HP this item grants while equipped.
func (it *Item) MaxHPBonus() int {
	return it.scaled(0, "max_hp")
}

// GoldValue returns the gold granted on pickup for gold piles and chests.
func (it *Item) GoldValue() int {
	return it.BaseBonus * it.Rarity.GoldMultiplier
}

// HealAmount returns the HP restored on pickup for potions.
func (it *Item) HealAmount() int {
	return int(math.Floor(float64(it.BaseBonus) * it.Rarity.StatMultiplier))
}

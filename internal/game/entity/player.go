package entity

import (
	"math"

	"github.com/delver-game/delver/internal/game/ability"
	"github.com/delver-game/delver/internal/game/dungeon"
	"github.com/delver-game/delver/internal/game/ruleset"
)

// InitialXPToNext is the experience required for the first level-up. Each
// level-up multiplies the threshold by 1.5, floored.
const InitialXPToNext = 50

// XPGrowthFactor is the geometric growth applied to the level-up threshold.
const XPGrowthFactor = 1.5

// Player is the single player character. It persists across levels and is
// replaced wholesale on a new game.
type Player struct {
	Entity
	Class *ruleset.ClassDef

	HP          int
	MaxHP       int
	BaseAttack  int
	BaseDefense int

	Level    int
	XP       int
	XPToNext int
	Gold     int

	// Inventory holds non-equipped items in pickup order.
	Inventory []*Item
	equipment map[Slot]*Item

	// Abilities is the class's ordered list of 3 ability instances; cooldown
	// state is owned per player.
	Abilities []*ability.Ability
}

// NewPlayer creates a level-1 player of the given class at pos.
//
// Precondition: class must be valid; abilities must be the class's
// AbilitiesPerClass instances in cast order.
func NewPlayer(class *ruleset.ClassDef, abilities []*ability.Ability, pos dungeon.Point) *Player {
	return &Player{
		Entity:      NewEntity(pos),
		Class:       class,
		HP:          class.HP,
		MaxHP:       class.HP,
		BaseAttack:  class.Attack,
		BaseDefense: class.Defense,
		Level:       1,
		XPToNext:    InitialXPToNext,
		equipment:   make(map[Slot]*Item, len(AllSlots)),
		Abilities:   abilities,
	}
}

// IsRogue reports whether the player is the Rogue class, which gates backstab
// attacks and reduced enemy detection.
func (p *Player) IsRogue() bool {
	return p.Class.ID == ruleset.ClassRogue
}

// Equipped returns the item in the given slot, or nil.
func (p *Player) Equipped(s Slot) *Item {
	return p.equipment[s]
}

// TotalAttack returns base attack plus all equipped attack bonuses.
func (p *Player) TotalAttack() int {
	total := p.BaseAttack
	for _, it := range p.equipment {
		total += it.AttackBonus()
	}
	return total
}

// TotalDefense returns base defense plus all equipped defense bonuses.
func (p *Player) TotalDefense() int {
	total := p.BaseDefense
	for _, it := range p.equipment {
		total += it.DefenseBonus()
	}
	return total
}

// TotalMaxHP returns max HP plus all equipped max-HP bonuses.
func (p *Player) TotalMaxHP() int {
	total := p.MaxHP
	for _, it := range p.equipment {
		total += it.MaxHPBonus()
	}
	return total
}

// Heal restores up to amount HP, clamped to TotalMaxHP.
//
// Postcondition: returns the HP actually restored, >= 0.
func (p *Player) Heal(amount int) int {
	if amount <= 0 {
		return 0
	}
	max := p.TotalMaxHP()
	if p.HP+amount > max {
		amount = max - p.HP
	}
	p.HP += amount
	return amount
}

// ApplyDamage reduces HP by amount, not below 0.
func (p *Player) ApplyDamage(amount int) {
	if amount <= 0 {
		return
	}
	p.HP -= amount
	if p.HP < 0 {
		p.HP = 0
	}
}

// Dead reports whether the player's HP is exhausted.
func (p *Player) Dead() bool { return p.HP <= 0 }

// GainXP adds experience and performs at most one level-up.
//
// Postcondition: if the threshold was crossed, Level is incremented by exactly
// 1, XP resets to 0, XPToNext becomes floor(old * XPGrowthFactor), MaxHP grows
// by the class's HPPerLevel, and HP is fully restored to the new TotalMaxHP.
func (p *Player) GainXP(amount int) (leveled bool) {
	if amount <= 0 {
		return false
	}
	p.XP += amount
	if p.XP < p.XPToNext {
		return false
	}
	p.Level++
	p.XP = 0
	p.XPToNext = int(math.Floor(float64(p.XPToNext) * XPGrowthFactor))
	p.MaxHP += p.Class.HPPerLevel
	p.HP = p.TotalMaxHP()
	return true
}

// PickupKind classifies what happened to a picked-up item.
type PickupKind uint8

const (
	// PickupConsumed means the item's effect applied immediately; it never
	// entered the inventory.
	PickupConsumed PickupKind = iota
	// PickupAutoEquipped means the item went straight into its slot.
	PickupAutoEquipped
	// PickupStored means the item was added to the inventory.
	PickupStored
)

// PickupOutcome describes the result of Pickup.
type PickupOutcome struct {
	Kind PickupKind
	// Slot is set for PickupAutoEquipped.
	Slot Slot
	// Displaced is the previously equipped item now in inventory, if any.
	Displaced *Item
	// Gold is the gold granted, for gold piles and chests.
	Gold int
	// Healed is the HP restored, for potions.
	Healed int
}

// Pickup applies the game's pickup routing: consumables apply immediately and
// are never stored, equipment auto-equips, everything else goes to inventory.
//
// Postcondition: a displaced item is always returned to inventory, never
// destroyed.
func (p *Player) Pickup(it *Item) PickupOutcome {
	if it.Consumable() {
		if it.Kind == ruleset.ItemPotion {
			return PickupOutcome{Kind: PickupConsumed, Healed: p.Heal(it.HealAmount())}
		}
		gold := it.GoldValue()
		p.Gold += gold
		return PickupOutcome{Kind: PickupConsumed, Gold: gold}
	}

	if slot, ok := it.Slot(); ok {
		displaced := p.Equip(it)
		return PickupOutcome{Kind: PickupAutoEquipped, Slot: slot, Displaced: displaced}
	}

	p.Inventory = append(p.Inventory, it)
	return PickupOutcome{Kind: PickupStored}
}

// Equip places it into its slot, returning any displaced occupant after
// moving it to the inventory.
//
// Precondition: it must be an equipment kind (it.Slot() ok).
// Postcondition: the slot holds exactly it; a previous occupant is in the
// inventory.
func (p *Player) Equip(it *Item) (displaced *Item) {
	slot, ok := it.Slot()
	if !ok {
		panic("entity: Equip called with non-equipment item kind " + it.Kind)
	}
	displaced = p.equipment[slot]
	p.equipment[slot] = it
	if displaced != nil {
		p.Inventory = append(p.Inventory, displaced)
	}
	// Equipment swaps can lower the max-HP bonus; clamp current HP.
	if max := p.TotalMaxHP(); p.HP > max {
		p.HP = max
	}
	return displaced
}

// EquipFromInventory equips the inventory item at index i.
//
// Postcondition: returns false for an out-of-range index or a non-equipment
// item, with no state change.
func (p *Player) EquipFromInventory(i int) bool {
	if i < 0 || i >= len(p.Inventory) {
		return false
	}
	it := p.Inventory[i]
	if _, ok := it.Slot(); !ok {
		return false
	}
	p.Inventory = append(p.Inventory[:i], p.Inventory[i+1:]...)
	p.Equip(it)
	return true
}

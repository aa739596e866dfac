package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/delver-game/delver/internal/game/dungeon"
	"github.com/delver-game/delver/internal/game/ruleset"
)

func testClass() *ruleset.ClassDef {
	return &ruleset.ClassDef{
		ID:         "warrior",
		Name:       "Warrior",
		HP:         120,
		Attack:     15,
		Defense:    8,
		HPPerLevel: 12,
	}
}

func rogueClass() *ruleset.ClassDef {
	return &ruleset.ClassDef{
		ID:         ruleset.ClassRogue,
		Name:       "Rogue",
		HP:         90,
		Attack:     16,
		Defense:    5,
		HPPerLevel: 9,
	}
}

func commonTier() ruleset.RarityTier {
	return ruleset.RarityTier{Tier: "common", StatMultiplier: 1.0, GoldMultiplier: 1}
}

func TestNewPlayerStartsAtLevelOne(t *testing.T) {
	p := NewPlayer(testClass(), nil, dungeon.Point{X: 3, Y: 4})

	assert.Equal(t, 1, p.Level)
	assert.Equal(t, 0, p.XP)
	assert.Equal(t, InitialXPToNext, p.XPToNext)
	assert.Equal(t, 120, p.HP)
	assert.Equal(t, 120, p.MaxHP)
	assert.Equal(t, dungeon.Point{X: 3, Y: 4}, p.Position())
	assert.False(t, p.IsRogue())
	assert.True(t, NewPlayer(rogueClass(), nil, dungeon.Point{}).IsRogue())
}

func TestGainXPLevelsUpExactlyOnce(t *testing.T) {
	p := NewPlayer(testClass(), nil, dungeon.Point{})
	p.ApplyDamage(50)

	require.False(t, p.GainXP(49))
	assert.Equal(t, 49, p.XP)

	// Crossing the threshold, even with a large overshoot, levels exactly once
	// and discards the excess.
	require.True(t, p.GainXP(200))
	assert.Equal(t, 2, p.Level)
	assert.Equal(t, 0, p.XP)
	assert.Equal(t, 75, p.XPToNext, "threshold grows by x1.5 floored: 50 -> 75")
	assert.Equal(t, 132, p.MaxHP, "max HP grows by HPPerLevel")
	assert.Equal(t, 132, p.HP, "level-up fully restores HP")

	require.True(t, p.GainXP(75))
	assert.Equal(t, 3, p.Level)
	assert.Equal(t, 112, p.XPToNext, "75 -> floor(112.5)")
}

func TestApplyDamageAndHealClamp(t *testing.T) {
	p := NewPlayer(testClass(), nil, dungeon.Point{})

	p.ApplyDamage(30)
	assert.Equal(t, 90, p.HP)
	assert.Equal(t, 20, p.Heal(20))
	assert.Equal(t, 10, p.Heal(100), "heal clamps at max HP")
	assert.Equal(t, 120, p.HP)

	p.ApplyDamage(1000)
	assert.Equal(t, 0, p.HP)
	assert.True(t, p.Dead())
}

func TestPickupRoutesPotionGoldEquipment(t *testing.T) {
	p := NewPlayer(testClass(), nil, dungeon.Point{})
	p.ApplyDamage(40)

	potion := NewItem(dungeon.Point{}, ruleset.ItemPotion, commonTier(), 0, 25, nil)
	out := p.Pickup(potion)
	assert.Equal(t, PickupConsumed, out.Kind)
	assert.Equal(t, 25, out.Healed)
	assert.Empty(t, p.Inventory, "consumables never enter the inventory")

	gold := NewItem(dungeon.Point{}, ruleset.ItemGold, ruleset.RarityTier{Tier: "rare", StatMultiplier: 1.5, GoldMultiplier: 5}, 2, 10, nil)
	out = p.Pickup(gold)
	assert.Equal(t, PickupConsumed, out.Kind)
	assert.Equal(t, 50, out.Gold)
	assert.Equal(t, 50, p.Gold)

	sword := NewItem(dungeon.Point{}, ruleset.ItemSword, commonTier(), 0, 5, nil)
	out = p.Pickup(sword)
	assert.Equal(t, PickupAutoEquipped, out.Kind)
	assert.Equal(t, SlotWeapon, out.Slot)
	assert.Nil(t, out.Displaced)
	assert.Same(t, sword, p.Equipped(SlotWeapon))
	assert.Equal(t, 20, p.TotalAttack())
}

func TestEquipDisplacesToInventory(t *testing.T) {
	p := NewPlayer(testClass(), nil, dungeon.Point{})
	old := NewItem(dungeon.Point{}, ruleset.ItemSword, commonTier(), 0, 5, nil)
	replacement := NewItem(dungeon.Point{}, ruleset.ItemSword, commonTier(), 0, 8, nil)

	require.Nil(t, p.Equip(old))
	out := p.Pickup(replacement)
	assert.Equal(t, PickupAutoEquipped, out.Kind)
	assert.Same(t, old, out.Displaced)
	require.Len(t, p.Inventory, 1)
	assert.Same(t, old, p.Inventory[0], "the displaced item is never destroyed")
	assert.Same(t, replacement, p.Equipped(SlotWeapon))
}

func TestEquipClampsHPWhenMaxHPBonusDrops(t *testing.T) {
	p := NewPlayer(testClass(), nil, dungeon.Point{})
	vital := NewItem(dungeon.Point{}, ruleset.ItemRing, commonTier(), 0, 0, map[string]int{"max_hp": 30})
	p.Equip(vital)
	p.Heal(30)
	require.Equal(t, 150, p.HP)

	plain := NewItem(dungeon.Point{}, ruleset.ItemRing, commonTier(), 0, 2, nil)
	p.Equip(plain)
	assert.Equal(t, 120, p.HP, "HP clamps to the reduced max")
}

func TestEquipPanicsOnNonEquipment(t *testing.T) {
	p := NewPlayer(testClass(), nil, dungeon.Point{})
	potion := NewItem(dungeon.Point{}, ruleset.ItemPotion, commonTier(), 0, 25, nil)
	assert.Panics(t, func() { p.Equip(potion) })
}

func TestEquipFromInventory(t *testing.T) {
	p := NewPlayer(testClass(), nil, dungeon.Point{})
	shield := NewItem(dungeon.Point{}, ruleset.ItemShield, commonTier(), 0, 4, nil)
	p.Inventory = append(p.Inventory, shield)

	assert.False(t, p.EquipFromInventory(-1))
	assert.False(t, p.EquipFromInventory(1))
	require.True(t, p.EquipFromInventory(0))
	assert.Empty(t, p.Inventory)
	assert.Same(t, shield, p.Equipped(SlotArmor))
	assert.Equal(t, 12, p.TotalDefense())
}

func TestSlotInvariantOneItemPerSlot(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		p := NewPlayer(testClass(), nil, dungeon.Point{})
		kinds := []string{ruleset.ItemSword, ruleset.ItemShield, ruleset.ItemRing, ruleset.ItemBoots}
		n := rapid.IntRange(1, 20).Draw(t, "n")
		equipped := 0
		for i := 0; i < n; i++ {
			kind := rapid.SampledFrom(kinds).Draw(t, "kind")
			p.Pickup(NewItem(dungeon.Point{}, kind, commonTier(), 0, rapid.IntRange(1, 10).Draw(t, "bonus"), nil))
			equipped++
		}
		filled := 0
		for _, s := range AllSlots {
			if p.Equipped(s) != nil {
				filled++
			}
		}
		// Every pickup lands either in a slot or the inventory; nothing vanishes.
		assert.Equal(t, equipped, filled+len(p.Inventory))
		assert.LessOrEqual(t, filled, len(AllSlots))
	})
}

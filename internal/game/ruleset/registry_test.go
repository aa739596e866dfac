package ruleset

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// contentRoot points at the repository's shipped content directory.
const contentRoot = "../../../content"

func TestLoadShippedContent(t *testing.T) {
	r, err := Load(contentRoot)
	require.NoError(t, err)

	assert.Len(t, r.ClassIDs(), 4)
	for _, id := range []string{"warrior", "mage", "rogue", "ranger"} {
		c, ok := r.Class(id)
		require.True(t, ok, "class %q missing", id)
		assert.Len(t, c.Abilities, AbilitiesPerClass)
	}

	for _, id := range []string{"goblin", "slime", "skeleton", "orc", "demon", "dragon"} {
		_, ok := r.EnemyType(id)
		assert.True(t, ok, "enemy type %q missing", id)
	}

	for _, id := range []string{"fireball", "dash", "healing_touch", "frost_nova", "whirlwind", "shadow_step"} {
		_, ok := r.Ability(id)
		assert.True(t, ok, "ability %q missing", id)
	}

	assert.Len(t, r.Loot().Tiers, RarityCount)
	assert.NotEmpty(t, r.Spawn().Bands)
}

func TestShippedGoblinMatchesCombatBaseline(t *testing.T) {
	r, err := Load(contentRoot)
	require.NoError(t, err)

	goblin, ok := r.EnemyType("goblin")
	require.True(t, ok)
	assert.Equal(t, 30, goblin.HP)
	assert.Equal(t, 2, goblin.Defense)
	assert.Equal(t, 10, goblin.XPReward)
}

func TestShippedRarityMultipliers(t *testing.T) {
	r, err := Load(contentRoot)
	require.NoError(t, err)

	wantStat := []float64{1.0, 1.2, 1.5, 2.0, 3.0}
	wantGold := []int{1, 2, 5, 10, 25}
	for i, tier := range r.Loot().Tiers {
		assert.Equal(t, wantStat[i], tier.StatMultiplier, "tier %s", tier.Tier)
		assert.Equal(t, wantGold[i], tier.GoldMultiplier, "tier %s", tier.Tier)
	}
}

func TestSpawnBandFor(t *testing.T) {
	r, err := Load(contentRoot)
	require.NoError(t, err)

	// Called directly on the registry accessors' return values, the way the
	// engine uses them.
	band := r.Spawn().BandFor(1)
	assert.Equal(t, 3, band.MaxDepth)
	band = r.Spawn().BandFor(5)
	assert.Equal(t, 6, band.MaxDepth)
	band = r.Spawn().BandFor(99)
	assert.Equal(t, 0, band.MaxDepth, "deep levels fall into the unbounded band")

	_, ok := r.Loot().Kind(ItemPotion)
	assert.True(t, ok)
}

func TestRegistryRejectsUnknownAbilityRef(t *testing.T) {
	classes := []*ClassDef{{
		ID: "test", Name: "Test", HP: 10, Attack: 5,
		Abilities: []string{"nope", "nope2", "nope3"},
	}}
	_, err := NewRegistry(classes, nil, nil, validLoot(), validSpawn())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown ability")
}

func TestRegistryRejectsUnknownEnemyRef(t *testing.T) {
	spawn := SpawnTable{Bands: []SpawnBand{{MaxDepth: 0, Count: 1, Weights: map[string]int{"ghost": 1}}}}
	_, err := NewRegistry(nil, nil, nil, validLoot(), spawn)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown enemy type")
}

func TestRegistryRejectsDuplicateIDs(t *testing.T) {
	enemies := []*EnemyTypeDef{
		{ID: "rat", Name: "Rat", HP: 5, Attack: 1, Defense: 0, XPReward: 1},
		{ID: "rat", Name: "Rat Again", HP: 5, Attack: 1, Defense: 0, XPReward: 1},
	}
	_, err := NewRegistry(nil, enemies, nil, validLoot(), validSpawn())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate")
}

func TestClassValidateRejectsWrongAbilityCount(t *testing.T) {
	d := &ClassDef{ID: "x", Name: "X", HP: 10, Attack: 5, Abilities: []string{"a", "b"}}
	assert.Error(t, d.Validate())
}

func TestAbilityValidateKindRequirements(t *testing.T) {
	cases := []struct {
		name string
		def  AbilityDef
	}{
		{"unknown kind", AbilityDef{ID: "x", Name: "X", Kind: "summon", Cooldown: 1}},
		{"fireball without power", AbilityDef{ID: "x", Name: "X", Kind: AbilityFireball, Cooldown: 1, Radius: 1}},
		{"dash without range", AbilityDef{ID: "x", Name: "X", Kind: AbilityDash, Cooldown: 1}},
		{"frost nova without radius", AbilityDef{ID: "x", Name: "X", Kind: AbilityFrostNova, Cooldown: 1, Power: 3}},
		{"shadow step multiplier below 1", AbilityDef{ID: "x", Name: "X", Kind: AbilityShadowStep, Cooldown: 1, Multiplier: 0.5}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.Error(t, c.def.Validate())
		})
	}
}

func TestLootTableValidateRejectsBadTierCount(t *testing.T) {
	lt := validLoot()
	lt.Tiers = lt.Tiers[:3]
	assert.Error(t, lt.Validate())
}

func TestSpawnTableValidateRejectsBoundedFinalBand(t *testing.T) {
	st := SpawnTable{Bands: []SpawnBand{{MaxDepth: 5, Count: 1, Weights: map[string]int{"goblin": 1}}}}
	assert.Error(t, st.Validate())
}

func TestLoadClassesRejectsMalformedYAML(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "bad.yaml"), []byte("id: [unclosed"), 0644))
	_, err := LoadClasses(dir)
	assert.Error(t, err)
}

func validLoot() LootTable {
	return LootTable{
		Kinds: []ItemKindDef{{Kind: ItemPotion, Weight: 1, Bonus: 10}},
		Tiers: []RarityTier{
			{Tier: "common", StatMultiplier: 1.0, GoldMultiplier: 1, BaseWeight: 1},
			{Tier: "uncommon", StatMultiplier: 1.2, GoldMultiplier: 2, BaseWeight: 1},
			{Tier: "rare", StatMultiplier: 1.5, GoldMultiplier: 5, BaseWeight: 1},
			{Tier: "epic", StatMultiplier: 2.0, GoldMultiplier: 10, BaseWeight: 1},
			{Tier: "legendary", StatMultiplier: 3.0, GoldMultiplier: 25, BaseWeight: 1},
		},
		Affixes: []AffixDef{{Stat: "attack", Min: 1, Max: 3}},
	}
}

func validSpawn() SpawnTable {
	return SpawnTable{Bands: []SpawnBand{{MaxDepth: 0, Count: 1, Weights: map[string]int{}}}}
}

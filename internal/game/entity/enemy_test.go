package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"

	"github.com/delver-game/delver/internal/game/dungeon"
	"github.com/delver-game/delver/internal/game/ruleset"
)

func goblinDef() *ruleset.EnemyTypeDef {
	return &ruleset.EnemyTypeDef{ID: "goblin", Name: "Goblin", HP: 30, Attack: 8, Defense: 2, XPReward: 10}
}

func TestNewEnemyDepthScaling(t *testing.T) {
	// Depth 1 has multiplier 1.0: base stats unchanged.
	e := NewEnemy(goblinDef(), dungeon.Point{X: 2, Y: 2}, 1, 0.15, 6, nil)
	assert.Equal(t, 30, e.HP)
	assert.Equal(t, 8, e.Attack)
	assert.Equal(t, 2, e.Defense)
	assert.Equal(t, AIPatrol, e.State)

	// Depth 5: multiplier 1.6, floored per stat.
	e = NewEnemy(goblinDef(), dungeon.Point{}, 5, 0.15, 6, nil)
	assert.Equal(t, 48, e.HP)
	assert.Equal(t, 48, e.MaxHP)
	assert.Equal(t, 12, e.Attack)
	assert.Equal(t, 3, e.Defense)
	assert.Equal(t, 10, e.XPReward, "XP reward is not depth-scaled")
}

func TestEnemyStatsNeverShrinkWithDepth(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		def := goblinDef()
		d1 := rapid.IntRange(1, 9).Draw(t, "d1")
		d2 := rapid.IntRange(d1, 10).Draw(t, "d2")
		a := NewEnemy(def, dungeon.Point{}, d1, 0.15, 6, nil)
		b := NewEnemy(def, dungeon.Point{}, d2, 0.15, 6, nil)
		assert.GreaterOrEqual(t, b.HP, a.HP)
		assert.GreaterOrEqual(t, b.Attack, a.Attack)
		assert.GreaterOrEqual(t, b.Defense, a.Defense)
	})
}

func TestFreezeKeepsLongerDuration(t *testing.T) {
	e := NewEnemy(goblinDef(), dungeon.Point{}, 1, 0.15, 6, nil)
	assert.False(t, e.Frozen())

	e.Freeze(3)
	assert.Equal(t, 3, e.FrozenTurns)
	e.Freeze(1)
	assert.Equal(t, 3, e.FrozenTurns, "a shorter freeze never truncates")
	e.Freeze(5)
	assert.Equal(t, 5, e.FrozenTurns)
	assert.True(t, e.Frozen())
}

func TestMarkPlayerSeenAndClear(t *testing.T) {
	e := NewEnemy(goblinDef(), dungeon.Point{}, 1, 0.15, 6, nil)
	e.TurnsSinceSeen = 4

	e.MarkPlayerSeen(dungeon.Point{X: 7, Y: 3})
	assert.True(t, e.HasSeenPlayer)
	assert.True(t, e.HasLastKnown)
	assert.Equal(t, dungeon.Point{X: 7, Y: 3}, e.LastKnown)
	assert.Equal(t, 0, e.TurnsSinceSeen)

	e.ClearLastKnown()
	assert.False(t, e.HasLastKnown)
	assert.True(t, e.HasSeenPlayer, "sighting memory is sticky")
}

func TestAIStateString(t *testing.T) {
	assert.Equal(t, "patrol", AIPatrol.String())
	assert.Equal(t, "chase", AIChase.String())
	assert.Equal(t, "search", AISearch.String())
}

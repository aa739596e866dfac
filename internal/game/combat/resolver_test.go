package combat

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"

	"github.com/delver-game/delver/internal/game/rng"
)

// fixedSource always returns the same roll, pinning the variance outcome.
type fixedSource struct{ v int }

func (s fixedSource) Intn(n int) int {
	if s.v >= n {
		return n - 1
	}
	return s.v
}

func TestCalculateDamageDeterministicBounds(t *testing.T) {
	// attack 15 vs defense 8: base 7, spread floor(7*0.2) = 1, range [6, 8].
	assert.Equal(t, 6, CalculateDamage(15, 8, 0.2, fixedSource{0}))
	assert.Equal(t, 7, CalculateDamage(15, 8, 0.2, fixedSource{1}))
	assert.Equal(t, 8, CalculateDamage(15, 8, 0.2, fixedSource{2}))
}

func TestCalculateDamageFloorsAtOne(t *testing.T) {
	// Outclassed attacker: base clamps to 1, spread 0, no roll at all.
	assert.Equal(t, 1, CalculateDamage(3, 50, 0.2, fixedSource{0}))
	// Small base with spread 0 skips the roll too.
	assert.Equal(t, 4, CalculateDamage(6, 2, 0.2, fixedSource{0}))
}

func TestCalculateDamageProperty(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		attack := rapid.IntRange(1, 200).Draw(t, "attack")
		defense := rapid.IntRange(0, 200).Draw(t, "defense")
		src := rng.NewSeeded(rapid.Int64().Draw(t, "seed"))

		dmg := CalculateDamage(attack, defense, 0.2, src)
		assert.GreaterOrEqual(t, dmg, 1)

		base := attack - defense
		if base < 1 {
			base = 1
		}
		spread := int(float64(base) * 0.2)
		assert.LessOrEqual(t, dmg, base+spread)
	})
}

func TestResolvePlayerAttackBackstabMultipliesRoll(t *testing.T) {
	cfg := Config{Variance: 0.2, BackstabMultiplier: 2.0}

	// Roll pinned to the top of the range: base 7 + spread 1 = 8, doubled.
	res := ResolvePlayerAttack(15, 8, true, cfg, fixedSource{2})
	assert.True(t, res.Backstab)
	assert.Equal(t, 16, res.Damage, "the multiplier applies after the variance roll")

	res = ResolvePlayerAttack(15, 8, false, cfg, fixedSource{2})
	assert.False(t, res.Backstab)
	assert.Equal(t, 8, res.Damage)
}

func TestResolveEnemyAttackNeverBackstabs(t *testing.T) {
	cfg := Config{Variance: 0.2, BackstabMultiplier: 2.0}
	res := ResolveEnemyAttack(8, 8, cfg, fixedSource{0})
	assert.False(t, res.Backstab)
	assert.Equal(t, 1, res.Damage, "matched stats still land the minimum hit")
}

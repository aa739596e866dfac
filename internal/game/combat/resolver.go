// Package combat implements damage rolls and attack resolution for the
// turn-based simulation.
package combat

import (
	"math"

	"github.com/delver-game/delver/internal/game/rng"
)

// Config holds the combat tunables the resolver needs.
type Config struct {
	// Variance is the fraction of the base damage rolled as spread.
	Variance float64
	// BackstabMultiplier is applied to the rolled damage on a backstab.
	BackstabMultiplier float64
}

// AttackResult holds the outcome of a single resolved attack.
type AttackResult struct {
	// Damage is the final damage to apply, after variance and any backstab
	// multiplier.
	Damage int
	// Backstab is true when the backstab multiplier was applied.
	Backstab bool
}

// CalculateDamage rolls damage for attack vs defense.
//
// base = max(1, attack - defense); spread = floor(base * variance); the roll
// is uniform in [base-spread, base+spread], floored at 1.
//
// Precondition: src must be non-nil; variance must be in [0, 1).
// Postcondition: the returned damage is always >= 1.
func CalculateDamage(attack, defense int, variance float64, src rng.Source) int {
	base := attack - defense
	if base < 1 {
		base = 1
	}
	spread := int(math.Floor(float64(base) * variance))
	damage := base
	if spread > 0 {
		damage = base - spread + src.Intn(2*spread+1)
	}
	if damage < 1 {
		damage = 1
	}
	return damage
}

// ResolvePlayerAttack rolls the player's attack against an enemy.
//
// The backstab multiplier applies to the rolled damage, not the base before
// variance; this ordering is part of the game's balance and must hold.
//
// Postcondition: Damage >= 1.
func ResolvePlayerAttack(attack, defense int, backstab bool, cfg Config, src rng.Source) AttackResult {
	damage := CalculateDamage(attack, defense, cfg.Variance, src)
	if backstab {
		damage = int(float64(damage) * cfg.BackstabMultiplier)
	}
	return AttackResult{Damage: damage, Backstab: backstab}
}

// ResolveEnemyAttack rolls an enemy's attack against the player. Enemies have
// no backstab or critical path.
//
// Postcondition: Damage >= 1.
func ResolveEnemyAttack(attack, defense int, cfg Config, src rng.Source) AttackResult {
	return AttackResult{Damage: CalculateDamage(attack, defense, cfg.Variance, src)}
}

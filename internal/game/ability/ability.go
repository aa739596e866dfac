// Package ability implements the closed set of player abilities as a tagged
// dispatch over ability kinds, with per-instance cooldown and refund logic
// centralized in Apply.
package ability

import (
	"fmt"

	"github.com/delver-game/delver/internal/game/dungeon"
	"github.com/delver-game/delver/internal/game/ruleset"
)

// Ability is one player's instance of an ability definition. Cooldown state
// is per-instance, never shared.
//
// Invariant: CurrentCooldown >= 0; Ready() iff CurrentCooldown == 0.
type Ability struct {
	Def *ruleset.AbilityDef
	// CurrentCooldown is the remaining turns before the ability is ready.
	CurrentCooldown int
}

// New returns a ready instance of the given definition.
func New(def *ruleset.AbilityDef) *Ability {
	return &Ability{Def: def}
}

// Name returns the display name.
func (a *Ability) Name() string { return a.Def.Name }

// Ready reports whether the ability can be used this turn.
func (a *Ability) Ready() bool { return a.CurrentCooldown == 0 }

// Tick decrements the cooldown by one, flooring at zero. Called once at the
// end of every turn in which the player acted.
func (a *Ability) Tick() {
	if a.CurrentCooldown > 0 {
		a.CurrentCooldown--
	}
}

// arm starts the full cooldown.
func (a *Ability) arm() { a.CurrentCooldown = a.Def.Cooldown }

// refund cancels an armed cooldown after a failed targeting precondition.
func (a *Ability) refund() { a.CurrentCooldown = 0 }

// Caster is the ability user's view of the player.
type Caster interface {
	Position() dungeon.Point
	SetPosition(p dungeon.Point)
	TotalAttack() int
	// Heal restores up to the given HP and returns the amount restored.
	Heal(amount int) int
}

// Target is a damageable enemy handle. Death bookkeeping (XP, removal,
// events) stays behind the World.
type Target interface {
	ID() string
	Position() dungeon.Point
}

// World is the orchestrator-provided view abilities act through. The ability
// package never touches engine state directly.
type World interface {
	// Walkable reports whether the tile's terrain can be stood on.
	Walkable(p dungeon.Point) bool
	// Occupied reports whether another entity stands on the tile.
	Occupied(p dungeon.Point) bool
	// EnemyAt returns the enemy on the tile, if any.
	EnemyAt(p dungeon.Point) (Target, bool)
	// Enemies returns all live enemies.
	Enemies() []Target
	// DamageEnemy applies damage and handles any resulting death.
	DamageEnemy(t Target, amount int)
	// FreezeEnemy applies the freeze status for the given turns.
	FreezeEnemy(t Target, turns int)
}

// Result is the outcome of an Apply call.
type Result struct {
	// Success is true iff the ability's effect happened.
	Success bool
	// TurnConsumed is true iff the player's turn was spent. Cooldown-refund
	// failures do not consume the turn.
	TurnConsumed bool
	// Message is the human-readable outcome line.
	Message string
}

func failure(msg string) Result {
	return Result{Message: msg}
}

func success(msg string) Result {
	return Result{Success: true, TurnConsumed: true, Message: msg}
}

// Apply uses the ability against the target tile.
//
// The generic ready-check runs first; a not-ready ability fails without any
// state change. After the check the cooldown is armed, and the targeting
// carve-outs (Dash, Shadow Step) refund it in full when their preconditions
// fail, so a refunded attempt leaves the ability ready and the turn unspent.
func Apply(a *Ability, caster Caster, target dungeon.Point, w World) Result {
	if !a.Ready() {
		return failure(fmt.Sprintf("%s is on cooldown (%d turns left)", a.Name(), a.CurrentCooldown))
	}
	a.arm()

	switch a.Def.Kind {
	case ruleset.AbilityFireball:
		return applyFireball(a, target, w)
	case ruleset.AbilityDash:
		return applyDash(a, caster, target, w)
	case ruleset.AbilityHealingTouch:
		return applyHealingTouch(a, caster)
	case ruleset.AbilityFrostNova:
		return applyFrostNova(a, caster, w)
	case ruleset.AbilityWhirlwind:
		return applyWhirlwind(a, caster, w)
	case ruleset.AbilityShadowStep:
		return applyShadowStep(a, caster, target, w)
	default:
		// Unreachable for validated content.
		a.refund()
		return failure(fmt.Sprintf("%s does nothing", a.Name()))
	}
}

// applyFireball damages every enemy within the Chebyshev square around the
// explicit target tile.
func applyFireball(a *Ability, target dungeon.Point, w World) Result {
	hits := 0
	for _, t := range w.Enemies() {
		if dungeon.Chebyshev(target, t.Position()) <= a.Def.Radius {
			w.DamageEnemy(t, a.Def.Power)
			hits++
		}
	}
	if hits == 0 {
		return success(fmt.Sprintf("%s scorches the ground", a.Name()))
	}
	return success(fmt.Sprintf("%s hits %d for %d damage", a.Name(), hits, a.Def.Power))
}

// applyDash teleports the caster to the target tile. Refunds when the tile is
// not enterable or beyond max range.
func applyDash(a *Ability, caster Caster, target dungeon.Point, w World) Result {
	if dungeon.Manhattan(caster.Position(), target) > a.Def.Range {
		a.refund()
		return failure(fmt.Sprintf("%s: target is out of range", a.Name()))
	}
	if !w.Walkable(target) || w.Occupied(target) {
		a.refund()
		return failure(fmt.Sprintf("%s: target tile is blocked", a.Name()))
	}
	caster.SetPosition(target)
	return success(fmt.Sprintf("%s carries you forward", a.Name()))
}

// applyHealingTouch heals the caster, clamped to max HP.
func applyHealingTouch(a *Ability, caster Caster) Result {
	healed := caster.Heal(a.Def.Power)
	return success(fmt.Sprintf("%s restores %d HP", a.Name(), healed))
}

// applyFrostNova freezes every enemy within Manhattan radius of the caster's
// current position.
func applyFrostNova(a *Ability, caster Caster, w World) Result {
	hits := 0
	for _, t := range w.Enemies() {
		if dungeon.Manhattan(caster.Position(), t.Position()) <= a.Def.Radius {
			w.FreezeEnemy(t, a.Def.Power)
			hits++
		}
	}
	return success(fmt.Sprintf("%s freezes %d enemies for %d turns", a.Name(), hits, a.Def.Power))
}

// applyWhirlwind strikes every enemy at Manhattan distance exactly 1 with the
// caster's raw attack value. No defense subtraction, no variance: the damage
// model is deliberately the raw stat, unlike the combat resolver's roll.
func applyWhirlwind(a *Ability, caster Caster, w World) Result {
	damage := caster.TotalAttack()
	hits := 0
	for _, t := range w.Enemies() {
		if dungeon.Manhattan(caster.Position(), t.Position()) == 1 {
			w.DamageEnemy(t, damage)
			hits++
		}
	}
	return success(fmt.Sprintf("%s strikes %d enemies for %d damage", a.Name(), hits, damage))
}

// applyShadowStep teleports the caster behind the targeted enemy and strikes
// it for floor(attack * multiplier). The behind tile is the enemy's position
// offset by the unit sign of the caster-to-enemy direction (0 on a tied
// axis). Refunds when no enemy occupies the target or the behind tile is not
// enterable.
func applyShadowStep(a *Ability, caster Caster, target dungeon.Point, w World) Result {
	t, ok := w.EnemyAt(target)
	if !ok {
		a.refund()
		return failure(fmt.Sprintf("%s: no enemy there", a.Name()))
	}
	dx, dy := dungeon.SignOffset(caster.Position(), t.Position())
	behind := t.Position().Add(dx, dy)
	if !w.Walkable(behind) || w.Occupied(behind) {
		a.refund()
		return failure(fmt.Sprintf("%s: nowhere to emerge behind the target", a.Name()))
	}
	caster.SetPosition(behind)
	damage := int(float64(caster.TotalAttack()) * a.Def.Multiplier)
	w.DamageEnemy(t, damage)
	return success(fmt.Sprintf("%s strikes from the shadows for %d damage", a.Name(), damage))
}

package entity

import (
	"math"

	"github.com/delver-game/delver/internal/game/dungeon"
	"github.com/delver-game/delver/internal/game/ruleset"
)

// AIState is an enemy's behavior state.
type AIState uint8

const (
	// AIPatrol wanders inside the starting room. Initial state.
	AIPatrol AIState = iota
	// AIChase moves toward a currently visible player.
	AIChase
	// AISearch moves toward the last known player position.
	AISearch
)

// String returns the state name.
func (s AIState) String() string {
	switch s {
	case AIPatrol:
		return "patrol"
	case AIChase:
		return "chase"
	case AISearch:
		return "search"
	default:
		return "unknown"
	}
}

// Enemy is a live hostile instance with depth-scaled stats and AI state.
type Enemy struct {
	Entity
	Type *ruleset.EnemyTypeDef

	HP      int
	MaxHP   int
	Attack  int
	Defense int
	// XPReward is granted to the player on kill, unscaled by depth.
	XPReward int

	// FrozenTurns is the remaining turns of the freeze status; a frozen enemy
	// takes no AI action and the counter drops by one per turn.
	FrozenTurns int

	// State and the fields below are owned by the AI evaluation.
	State AIState
	// HasSeenPlayer is sticky once the player has entered this enemy's FOV.
	HasSeenPlayer bool
	// LastKnown is the last position the player was seen at; valid only when
	// HasLastKnown is true.
	LastKnown    dungeon.Point
	HasLastKnown bool
	// TurnsSinceSeen counts search turns since losing sight of the player.
	TurnsSinceSeen int

	// StartingRoom bounds patrol movement. A reference into the dungeon's
	// room list, not owned by the enemy; nil for corridor spawns.
	StartingRoom *dungeon.Room

	// VisionRadius is the detection radius; the AI substitutes the reduced
	// vs-Rogue radius at evaluation time.
	VisionRadius int
}

// NewEnemy creates an enemy of the given type at pos, with HP, attack, and
// defense scaled by the depth difficulty multiplier 1 + (depth-1)*perDepth.
//
// Precondition: def must be valid; depth >= 1; visionRadius >= 1.
func NewEnemy(def *ruleset.EnemyTypeDef, pos dungeon.Point, depth int, perDepth float64, visionRadius int, room *dungeon.Room) *Enemy {
	mult := 1 + float64(depth-1)*perDepth
	hp := scaleStat(def.HP, mult)
	return &Enemy{
		Entity:       NewEntity(pos),
		Type:         def,
		HP:           hp,
		MaxHP:        hp,
		Attack:       scaleStat(def.Attack, mult),
		Defense:      scaleStat(def.Defense, mult),
		XPReward:     def.XPReward,
		State:        AIPatrol,
		StartingRoom: room,
		VisionRadius: visionRadius,
	}
}

func scaleStat(base int, mult float64) int {
	return int(math.Floor(float64(base) * mult))
}

// ApplyDamage reduces HP by amount, not below 0.
func (e *Enemy) ApplyDamage(amount int) {
	if amount <= 0 {
		return
	}
	e.HP -= amount
	if e.HP < 0 {
		e.HP = 0
	}
}

// Dead reports whether the enemy's HP is exhausted.
func (e *Enemy) Dead() bool { return e.HP <= 0 }

// Frozen reports whether the enemy is currently frozen.
func (e *Enemy) Frozen() bool { return e.FrozenTurns > 0 }

// Freeze applies the freeze status for the given number of turns, keeping the
// longer of the existing and new durations.
func (e *Enemy) Freeze(turns int) {
	if turns > e.FrozenTurns {
		e.FrozenTurns = turns
	}
}

// MarkPlayerSeen records a confirmed sighting at p.
func (e *Enemy) MarkPlayerSeen(p dungeon.Point) {
	e.HasSeenPlayer = true
	e.LastKnown = p
	e.HasLastKnown = true
	e.TurnsSinceSeen = 0
}

// ClearLastKnown forgets the recorded player position, ending a search.
func (e *Enemy) ClearLastKnown() {
	e.HasLastKnown = false
	e.TurnsSinceSeen = 0
}

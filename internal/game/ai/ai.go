// Package ai implements the enemy behavior state machine: patrol inside the
// starting room, chase a visible player, search the last known position.
package ai

import (
	"github.com/delver-game/delver/internal/game/dungeon"
	"github.com/delver-game/delver/internal/game/entity"
	"github.com/delver-game/delver/internal/game/fov"
	"github.com/delver-game/delver/internal/game/rng"
)

// Config holds the AI tunables.
type Config struct {
	// SearchTurnsMax is the search duration before giving up and returning
	// to patrol.
	SearchTurnsMax int
	// VisionRadiusVsRogue replaces the enemy's vision radius when the
	// tracked player is a Rogue.
	VisionRadiusVsRogue int
}

// Action is what the enemy wants to do this turn.
type Action uint8

const (
	// ActionNone means the enemy stays put (frozen, or patrol chose "stay").
	ActionNone Action = iota
	// ActionMove means the enemy wants to step by (DX, DY).
	ActionMove
	// ActionAttack means the enemy attacks the adjacent player.
	ActionAttack
)

// Decision is the outcome of one AI evaluation.
type Decision struct {
	Action Action
	// DX, DY is the requested orthogonal step for ActionMove.
	DX, DY int
	// Spotted is true when this evaluation transitioned the enemy into Chase
	// from another state, for the "enemy spotted" notification.
	Spotted bool
}

// EffectiveVisionRadius returns the enemy's detection radius against the
// given player, applying the vs-Rogue reduction.
func EffectiveVisionRadius(e *entity.Enemy, player *entity.Player, cfg Config) int {
	if player.IsRogue() {
		return cfg.VisionRadiusVsRogue
	}
	return e.VisionRadius
}

// Decide evaluates the state machine for one enemy turn and mutates the
// enemy's AI bookkeeping fields.
//
// The orchestrator applies the returned move only if the destination is
// walkable and unoccupied; a blocked step is skipped with no retry.
//
// Precondition: e, player, d, and src must be non-nil; the enemy must be alive.
func Decide(e *entity.Enemy, player *entity.Player, d *dungeon.Dungeon, cfg Config, src rng.Source) Decision {
	// A frozen enemy thaws by one turn and does nothing else.
	if e.Frozen() {
		e.FrozenTurns--
		return Decision{Action: ActionNone}
	}

	radius := EffectiveVisionRadius(e, player, cfg)
	visible := fov.Compute(d, e.Position(), radius)

	if _, seen := visible[player.Position()]; seen {
		spotted := e.State != entity.AIChase
		e.State = entity.AIChase
		e.MarkPlayerSeen(player.Position())

		if dungeon.Manhattan(e.Position(), player.Position()) == 1 {
			return Decision{Action: ActionAttack, Spotted: spotted}
		}
		dx, dy := dungeon.StepToward(e.Position(), player.Position())
		return Decision{Action: ActionMove, DX: dx, DY: dy, Spotted: spotted}
	}

	if e.HasSeenPlayer && e.HasLastKnown {
		e.State = entity.AISearch
		e.TurnsSinceSeen++
		if e.TurnsSinceSeen >= cfg.SearchTurnsMax {
			e.State = entity.AIPatrol
			e.ClearLastKnown()
			return patrol(e, src)
		}
		if e.Position() == e.LastKnown {
			// Arrived at the last known position with nothing there; give up
			// on the next evaluation.
			e.TurnsSinceSeen = cfg.SearchTurnsMax
			return Decision{Action: ActionNone}
		}
		dx, dy := dungeon.StepToward(e.Position(), e.LastKnown)
		return Decision{Action: ActionMove, DX: dx, DY: dy}
	}

	e.State = entity.AIPatrol
	return patrol(e, src)
}

// patrolMoves is the candidate set for patrol: the four orthogonal steps plus
// staying still.
var patrolMoves = [5][2]int{{0, 0}, {1, 0}, {-1, 0}, {0, 1}, {0, -1}}

// patrol picks uniformly among the candidate moves that keep the enemy inside
// its starting room, or among all five when it has none.
func patrol(e *entity.Enemy, src rng.Source) Decision {
	candidates := make([][2]int, 0, len(patrolMoves))
	for _, m := range patrolMoves {
		if e.StartingRoom != nil && !e.StartingRoom.Contains(e.Position().Add(m[0], m[1])) {
			continue
		}
		candidates = append(candidates, m)
	}
	if len(candidates) == 0 {
		// Outside its own room (pushed or spawned oddly); stay put.
		return Decision{Action: ActionNone}
	}
	m := candidates[src.Intn(len(candidates))]
	if m[0] == 0 && m[1] == 0 {
		return Decision{Action: ActionNone}
	}
	return Decision{Action: ActionMove, DX: m[0], DY: m[1]}
}

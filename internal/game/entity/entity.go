// Package entity holds the live simulation state for the player, enemies, and
// items: positions, stats, equipment, experience, and status counters.
package entity

import (
	"github.com/google/uuid"

	"github.com/delver-game/delver/internal/game/dungeon"
)

// Entity is the shared base for everything that occupies a grid tile.
//
// The integer grid position is the authoritative simulation position; any
// fractional display position belongs to the presentation layer and never
// appears here.
type Entity struct {
	id  string
	pos dungeon.Point
}

// NewEntity returns an Entity with a fresh unique ID at the given position.
func NewEntity(pos dungeon.Point) Entity {
	return Entity{id: uuid.NewString(), pos: pos}
}

// ID returns the entity's stable unique identifier. Presentation layers hold
// this ID rather than a reference into simulation state.
func (e *Entity) ID() string { return e.id }

// Position returns the entity's grid position.
func (e *Entity) Position() dungeon.Point { return e.pos }

// SetPosition moves the entity. Walkability and occupancy checks are the
// orchestrator's responsibility.
func (e *Entity) SetPosition(p dungeon.Point) { e.pos = p }

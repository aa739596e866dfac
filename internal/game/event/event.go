// Package event defines the gameplay notifications the simulation emits for
// presentation layers. The core holds no reference to any consumer; the
// orchestrator accumulates events per action and callers drain them.
package event

import "github.com/delver-game/delver/internal/game/dungeon"

// Kind discriminates the event payload.
type Kind string

// The outbound notification kinds.
const (
	KindDamage       Kind = "damage"
	KindDeath        Kind = "death"
	KindPickup       Kind = "pickup"
	KindAbility      Kind = "ability"
	KindEnemySpotted Kind = "enemy_spotted"
	KindLevelChanged Kind = "level_changed"
	KindGameOver     Kind = "game_over"
	KindVictory      Kind = "victory"
)

// Event is a single gameplay notification. Fields are populated per Kind;
// unused fields stay zero and are omitted from JSON.
type Event struct {
	Kind Kind `json:"kind"`

	// X, Y locate damage and death events.
	X int `json:"x,omitempty"`
	Y int `json:"y,omitempty"`

	// Amount is the damage dealt.
	Amount int `json:"amount,omitempty"`
	// Critical marks backstab damage.
	Critical bool `json:"critical,omitempty"`

	// EntityKind names the entity that died ("player" or the enemy type ID).
	EntityKind string `json:"entity_kind,omitempty"`

	// ItemKind and Rarity describe a pickup.
	ItemKind string `json:"item_kind,omitempty"`
	Rarity   string `json:"rarity,omitempty"`

	// Ability, Success, and Message describe an ability use.
	Ability string `json:"ability,omitempty"`
	Success bool   `json:"success,omitempty"`
	Message string `json:"message,omitempty"`

	// Level and Biome describe a level change.
	Level int    `json:"level,omitempty"`
	Biome string `json:"biome,omitempty"`

	// EnemyID is the stable ID of a spotting enemy. An identifier, never a
	// reference into simulation state.
	EnemyID string `json:"enemy_id,omitempty"`
}

// Damage reports damage dealt at a position.
func Damage(pos dungeon.Point, amount int, critical bool) Event {
	return Event{Kind: KindDamage, X: pos.X, Y: pos.Y, Amount: amount, Critical: critical}
}

// Death reports an entity dying at a position.
func Death(pos dungeon.Point, entityKind string) Event {
	return Event{Kind: KindDeath, X: pos.X, Y: pos.Y, EntityKind: entityKind}
}

// Pickup reports an item being picked up.
func Pickup(itemKind, rarity string) Event {
	return Event{Kind: KindPickup, ItemKind: itemKind, Rarity: rarity}
}

// AbilityUsed reports an ability attempt and its outcome.
func AbilityUsed(name string, successful bool, message string) Event {
	return Event{Kind: KindAbility, Ability: name, Success: successful, Message: message}
}

// EnemySpotted reports an enemy transitioning into chase.
func EnemySpotted(enemyID string) Event {
	return Event{Kind: KindEnemySpotted, EnemyID: enemyID}
}

// LevelChanged reports arrival on a new dungeon level.
func LevelChanged(level int, biome string) Event {
	return Event{Kind: KindLevelChanged, Level: level, Biome: biome}
}

// GameOver reports the terminal defeat state.
func GameOver() Event { return Event{Kind: KindGameOver} }

// Victory reports the terminal win state.
func Victory() Event { return Event{Kind: KindVictory} }

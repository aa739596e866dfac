package transport

import (
	"github.com/delver-game/delver/internal/game/engine"
	"github.com/delver-game/delver/internal/game/event"
)

// Command types accepted over the wire.
const (
	CmdNewGame    = "new_game"
	CmdMove       = "move"
	CmdUseAbility = "use_ability"
	CmdEquip      = "equip"
	CmdDescend    = "descend"
	CmdSkipLevel  = "skip_level"
)

// Command is one inbound client request.
type Command struct {
	Type string `json:"type"`

	// Class selects the player class for new_game.
	Class string `json:"class,omitempty"`

	// DX, DY is the requested step for move.
	DX int `json:"dx,omitempty"`
	DY int `json:"dy,omitempty"`

	// Ability is the ability slot index for use_ability; X, Y its target tile.
	Ability int `json:"ability,omitempty"`
	X       int `json:"x,omitempty"`
	Y       int `json:"y,omitempty"`

	// Item is the inventory index for equip.
	Item int `json:"item,omitempty"`
}

// Response is the reply to every command: whether the action consumed a turn,
// the outcome message, the events it produced, and a fresh snapshot.
type Response struct {
	OK      bool            `json:"ok"`
	Message string          `json:"message,omitempty"`
	Events  []event.Event   `json:"events,omitempty"`
	State   engine.Snapshot `json:"state"`
}

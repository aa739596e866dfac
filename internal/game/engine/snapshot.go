package engine

import (
	"github.com/delver-game/delver/internal/game/dungeon"
)

// Snapshot is the presentation-facing view of the current game state. It
// carries only what the player can legitimately know: explored and visible
// tiles, entities inside the current field of view, and the player's own
// sheet. Safe to marshal and ship as-is.
type Snapshot struct {
	Started  bool   `json:"started"`
	GameOver bool   `json:"game_over"`
	Victory  bool   `json:"victory"`
	Depth    int    `json:"depth,omitempty"`
	Biome    string `json:"biome,omitempty"`

	Width  int            `json:"width,omitempty"`
	Height int            `json:"height,omitempty"`
	Tiles  []SnapshotTile `json:"tiles,omitempty"`

	Player  *SnapshotPlayer `json:"player,omitempty"`
	Enemies []SnapshotEnemy `json:"enemies,omitempty"`
	Items   []SnapshotItem  `json:"items,omitempty"`
}

// SnapshotTile is one explored-or-visible tile. Unexplored tiles are omitted.
type SnapshotTile struct {
	X       int    `json:"x"`
	Y       int    `json:"y"`
	Kind    string `json:"kind"`
	Visible bool   `json:"visible"`
}

// SnapshotPlayer is the player's character sheet.
type SnapshotPlayer struct {
	ID       string            `json:"id"`
	Class    string            `json:"class"`
	X        int               `json:"x"`
	Y        int               `json:"y"`
	HP       int               `json:"hp"`
	MaxHP    int               `json:"max_hp"`
	Attack   int               `json:"attack"`
	Defense  int               `json:"defense"`
	Level    int               `json:"level"`
	XP       int               `json:"xp"`
	XPToNext int               `json:"xp_to_next"`
	Gold     int               `json:"gold"`
	Ability  []SnapshotAbility `json:"abilities"`
	// Inventory lists unequipped items in pickup order; the index is the
	// argument to the equip command.
	Inventory []SnapshotCarried `json:"inventory,omitempty"`
}

// SnapshotCarried is one inventory entry.
type SnapshotCarried struct {
	Kind   string `json:"kind"`
	Rarity string `json:"rarity"`
}

// SnapshotAbility is one ability slot with its cooldown state.
type SnapshotAbility struct {
	Name     string `json:"name"`
	Kind     string `json:"kind"`
	Cooldown int    `json:"cooldown"`
	Ready    bool   `json:"ready"`
}

// SnapshotEnemy is a currently visible enemy.
type SnapshotEnemy struct {
	ID    string `json:"id"`
	Type  string `json:"type"`
	Name  string `json:"name"`
	X     int    `json:"x"`
	Y     int    `json:"y"`
	HP    int    `json:"hp"`
	MaxHP int    `json:"max_hp"`
	State string `json:"state"`
}

// SnapshotItem is a currently visible, uncollected item.
type SnapshotItem struct {
	ID     string `json:"id"`
	Kind   string `json:"kind"`
	Rarity string `json:"rarity"`
	X      int    `json:"x"`
	Y      int    `json:"y"`
}

// Snapshot builds the current presentation view.
func (g *Game) Snapshot() Snapshot {
	s := Snapshot{
		Started:  g.Started(),
		GameOver: g.gameOver,
		Victory:  g.victory,
	}
	if !g.Started() {
		return s
	}

	s.Depth = g.depth
	s.Biome = g.Biome()
	s.Width = g.dungeon.Width
	s.Height = g.dungeon.Height

	for y := 0; y < g.dungeon.Height; y++ {
		for x := 0; x < g.dungeon.Width; x++ {
			state := g.visibility.State(x, y)
			if state == dungeon.Unexplored {
				continue
			}
			s.Tiles = append(s.Tiles, SnapshotTile{
				X:       x,
				Y:       y,
				Kind:    g.dungeon.Tile(x, y).String(),
				Visible: state == dungeon.Visible,
			})
		}
	}

	p := g.player
	sp := &SnapshotPlayer{
		ID:       p.ID(),
		Class:    p.Class.ID,
		X:        p.Position().X,
		Y:        p.Position().Y,
		HP:       p.HP,
		MaxHP:    p.TotalMaxHP(),
		Attack:   p.TotalAttack(),
		Defense:  p.TotalDefense(),
		Level:    p.Level,
		XP:       p.XP,
		XPToNext: p.XPToNext,
		Gold:     p.Gold,
	}
	for _, ab := range p.Abilities {
		sp.Ability = append(sp.Ability, SnapshotAbility{
			Name:     ab.Name(),
			Kind:     string(ab.Def.Kind),
			Cooldown: ab.CurrentCooldown,
			Ready:    ab.Ready(),
		})
	}
	for _, it := range p.Inventory {
		sp.Inventory = append(sp.Inventory, SnapshotCarried{Kind: it.Kind, Rarity: it.Rarity.Tier})
	}
	s.Player = sp

	for _, e := range g.enemies {
		if _, seen := g.visible[e.Position()]; !seen {
			continue
		}
		s.Enemies = append(s.Enemies, SnapshotEnemy{
			ID:    e.ID(),
			Type:  e.Type.ID,
			Name:  e.Type.Name,
			X:     e.Position().X,
			Y:     e.Position().Y,
			HP:    e.HP,
			MaxHP: e.MaxHP,
			State: e.State.String(),
		})
	}
	for _, it := range g.items {
		if _, seen := g.visible[it.Position()]; !seen {
			continue
		}
		s.Items = append(s.Items, SnapshotItem{
			ID:     it.ID(),
			Kind:   it.Kind,
			Rarity: it.Rarity.Tier,
			X:      it.Position().X,
			Y:      it.Position().Y,
		})
	}
	return s
}

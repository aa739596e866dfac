// Package engine orchestrates the simulation: the turn pipeline, level
// lifecycle, spawning, and the event surface the transport drains.
package engine

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/delver-game/delver/internal/config"
	"github.com/delver-game/delver/internal/game/ability"
	"github.com/delver-game/delver/internal/game/ai"
	"github.com/delver-game/delver/internal/game/combat"
	"github.com/delver-game/delver/internal/game/dungeon"
	"github.com/delver-game/delver/internal/game/entity"
	"github.com/delver-game/delver/internal/game/event"
	"github.com/delver-game/delver/internal/game/fov"
	"github.com/delver-game/delver/internal/game/ruleset"
	"github.com/delver-game/delver/internal/game/rng"
)

// biomeBandSize is the number of dungeon levels sharing one biome tag.
const biomeBandSize = 5

// Game is one player's simulation instance. Not safe for concurrent use; the
// transport serializes access per session.
type Game struct {
	cfg      config.GameConfig
	registry *ruleset.Registry
	logger   *zap.Logger
	src      rng.Source

	dungeon    *dungeon.Dungeon
	visibility *dungeon.VisibilityMap
	// visible is the player's current FOV, refreshed after every player
	// move or teleport.
	visible map[dungeon.Point]struct{}

	player *entity.Player
	// enemies holds live enemies in spawn order; the enemy phase iterates
	// this order.
	enemies []*entity.Enemy
	items   []*entity.Item

	depth    int
	gameOver bool
	victory  bool

	events []event.Event
}

// NewGame creates an idle Game; StartNewGame begins play.
//
// Precondition: registry and src must be non-nil; cfg must have passed
// config validation. A nil logger is replaced with a no-op logger.
func NewGame(cfg config.GameConfig, registry *ruleset.Registry, logger *zap.Logger, src rng.Source) *Game {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Game{
		cfg:      cfg,
		registry: registry,
		logger:   logger,
		src:      src,
	}
}

// Started reports whether a run is in progress or finished.
func (g *Game) Started() bool { return g.player != nil }

// Over reports whether the run has ended, by death or victory.
func (g *Game) Over() bool { return g.gameOver || g.victory }

// Player returns the current player, or nil before StartNewGame.
func (g *Game) Player() *entity.Player { return g.player }

// Depth returns the current dungeon level, 1-based.
func (g *Game) Depth() int { return g.depth }

// Biome returns the cosmetic tag for the current depth.
func (g *Game) Biome() string {
	band := (g.depth - 1) / biomeBandSize
	if band >= len(g.cfg.Biomes) {
		band = len(g.cfg.Biomes) - 1
	}
	return g.cfg.Biomes[band]
}

// DrainEvents returns the accumulated events and clears the queue.
func (g *Game) DrainEvents() []event.Event {
	evs := g.events
	g.events = nil
	return evs
}

func (g *Game) emit(e event.Event) {
	g.events = append(g.events, e)
}

// StartNewGame discards any previous run and starts a fresh one at depth 1
// with the given class.
//
// Postcondition: on success the game is live: player placed, level populated,
// visibility revealed, and a LevelChanged event queued.
func (g *Game) StartNewGame(classID string) error {
	class, ok := g.registry.Class(classID)
	if !ok {
		return fmt.Errorf("unknown class %q", classID)
	}

	abilities := make([]*ability.Ability, 0, len(class.Abilities))
	for _, id := range class.Abilities {
		def, ok := g.registry.Ability(id)
		if !ok {
			// Registry construction cross-validates; this is unreachable.
			return fmt.Errorf("class %q references unknown ability %q", classID, id)
		}
		abilities = append(abilities, ability.New(def))
	}

	g.gameOver = false
	g.victory = false
	g.events = nil
	g.depth = 1
	g.player = entity.NewPlayer(class, abilities, dungeon.Point{})
	g.enterLevel()

	g.logger.Info("new game started",
		zap.String("class", classID),
		zap.String("player_id", g.player.ID()))
	return nil
}

// enterLevel generates and populates the dungeon for the current depth and
// places the player at the start position.
func (g *Game) enterLevel() {
	d, start := dungeon.Generate(dungeon.GenConfig{
		Width:    g.cfg.Grid.Width,
		Height:   g.cfg.Grid.Height,
		MaxRooms: g.cfg.Rooms.Max,
		MinSize:  g.cfg.Rooms.MinSize,
		MaxSize:  g.cfg.Rooms.MaxSize,
	}, g.src)

	g.dungeon = d
	g.visibility = dungeon.NewVisibilityMap(d.Width, d.Height)
	g.player.SetPosition(start)
	g.enemies = nil
	g.items = nil
	g.spawnEnemies()
	g.spawnItems()
	g.revealAroundPlayer()
	g.emit(event.LevelChanged(g.depth, g.Biome()))

	g.logger.Info("entered level",
		zap.Int("depth", g.depth),
		zap.String("biome", g.Biome()),
		zap.Int("rooms", len(d.Rooms)),
		zap.Int("enemies", len(g.enemies)),
		zap.Int("items", len(g.items)))
}

// descend advances one level, or ends the run in victory from the final depth.
func (g *Game) descend() string {
	if g.depth >= g.cfg.MaxDepth {
		g.victory = true
		g.emit(event.Victory())
		g.logger.Info("victory", zap.Int("depth", g.depth))
		return "you descend into daylight — the delve is complete"
	}
	g.depth++
	g.enterLevel()
	return fmt.Sprintf("you descend to level %d (%s)", g.depth, g.Biome())
}

// revealAroundPlayer recomputes the player FOV and folds it into the
// visibility map.
func (g *Game) revealAroundPlayer() {
	g.visible = fov.Compute(g.dungeon, g.player.Position(), g.cfg.Vision.PlayerRadius)
	g.visibility.Reveal(g.visible)
}

func (g *Game) enemyAt(p dungeon.Point) *entity.Enemy {
	for _, e := range g.enemies {
		if e.Position() == p {
			return e
		}
	}
	return nil
}

func (g *Game) itemAt(p dungeon.Point) *entity.Item {
	for _, it := range g.items {
		if it.Position() == p {
			return it
		}
	}
	return nil
}

// occupied reports whether any entity, player included, stands on p.
func (g *Game) occupied(p dungeon.Point) bool {
	return g.player.Position() == p || g.enemyAt(p) != nil
}

// PlayerMove handles one orthogonal step request. Walls and out-of-bounds
// tiles reject without consuming the turn; an enemy at the destination turns
// the step into an attack; an item is picked up en route; stairs descend.
func (g *Game) PlayerMove(dx, dy int) (bool, string) {
	if !g.Started() || g.Over() {
		return false, ""
	}
	if (dx != 0 && dy != 0) || dx < -1 || dx > 1 || dy < -1 || dy > 1 || (dx == 0 && dy == 0) {
		return false, "you can only step one tile north, south, east, or west"
	}

	dest := g.player.Position().Add(dx, dy)
	if !g.dungeon.Walkable(dest.X, dest.Y) {
		return false, "the way is blocked"
	}

	if e := g.enemyAt(dest); e != nil {
		msg := g.playerAttack(e)
		g.endPlayerTurn()
		return true, msg
	}

	var msg string
	if it := g.itemAt(dest); it != nil {
		msg = g.pickup(it)
	}
	g.player.SetPosition(dest)
	g.revealAroundPlayer()

	if g.dungeon.StairsAt(dest) {
		msg = g.descend()
		g.tickCooldowns()
		return true, msg
	}

	g.endPlayerTurn()
	if msg == "" {
		msg = "you step " + directionName(dx, dy)
	}
	return true, msg
}

func directionName(dx, dy int) string {
	switch {
	case dy < 0:
		return "north"
	case dy > 0:
		return "south"
	case dx < 0:
		return "west"
	default:
		return "east"
	}
}

// playerAttack resolves a melee attack against e, with backstab gating: the
// Rogue backstabs any enemy whose own FOV does not currently contain the
// player.
func (g *Game) playerAttack(e *entity.Enemy) string {
	backstab := false
	if g.player.IsRogue() {
		radius := ai.EffectiveVisionRadius(e, g.player, g.aiConfig())
		enemyFOV := fov.Compute(g.dungeon, e.Position(), radius)
		_, sees := enemyFOV[g.player.Position()]
		backstab = !sees
	}

	res := combat.ResolvePlayerAttack(g.player.TotalAttack(), e.Defense, backstab, g.combatConfig(), g.src)
	g.damageEnemy(e, res.Damage, res.Backstab)

	if res.Backstab {
		return fmt.Sprintf("you backstab the %s for %d damage", e.Type.Name, res.Damage)
	}
	return fmt.Sprintf("you hit the %s for %d damage", e.Type.Name, res.Damage)
}

// damageEnemy applies damage, emits events, and on death removes the enemy
// and grants XP.
func (g *Game) damageEnemy(e *entity.Enemy, amount int, critical bool) {
	e.ApplyDamage(amount)
	g.emit(event.Damage(e.Position(), amount, critical))
	if !e.Dead() {
		return
	}

	g.emit(event.Death(e.Position(), e.Type.ID))
	if g.player.GainXP(e.XPReward) {
		g.logger.Info("level up",
			zap.Int("level", g.player.Level),
			zap.Int("xp_to_next", g.player.XPToNext))
	}
	for i, other := range g.enemies {
		if other == e {
			g.enemies = append(g.enemies[:i], g.enemies[i+1:]...)
			break
		}
	}
}

// pickup applies the pickup routing and emits the item event.
func (g *Game) pickup(it *entity.Item) string {
	for i, other := range g.items {
		if other == it {
			g.items = append(g.items[:i], g.items[i+1:]...)
			break
		}
	}
	g.emit(event.Pickup(it.Kind, it.Rarity.Tier))

	out := g.player.Pickup(it)
	switch out.Kind {
	case entity.PickupConsumed:
		if out.Gold > 0 {
			return fmt.Sprintf("you pocket %d gold", out.Gold)
		}
		return fmt.Sprintf("you drink the potion and recover %d HP", out.Healed)
	case entity.PickupAutoEquipped:
		if out.Displaced != nil {
			return fmt.Sprintf("you equip the %s %s; the old one goes in your pack", it.Rarity.Tier, it.Kind)
		}
		return fmt.Sprintf("you equip the %s %s", it.Rarity.Tier, it.Kind)
	default:
		return fmt.Sprintf("you stow the %s %s", it.Rarity.Tier, it.Kind)
	}
}

// UseAbility casts the player's ability at slot idx against the target tile.
// Out-of-range indexes fail silently; cooldown and targeting failures return
// the ability's message without consuming the turn.
func (g *Game) UseAbility(idx, tx, ty int) (bool, string) {
	if !g.Started() || g.Over() {
		return false, ""
	}
	if idx < 0 || idx >= len(g.player.Abilities) {
		return false, ""
	}

	ab := g.player.Abilities[idx]
	res := ability.Apply(ab, g.player, dungeon.Point{X: tx, Y: ty}, &world{g: g})
	g.emit(event.AbilityUsed(ab.Name(), res.Success, res.Message))
	if !res.TurnConsumed {
		return false, res.Message
	}

	// Dash and Shadow Step may have moved the caster.
	g.revealAroundPlayer()
	g.endPlayerTurn()
	return true, res.Message
}

// EquipFromInventory swaps the inventory item at idx into its slot. Swapping
// gear takes a turn; bad indexes and non-equipment items fail without
// consuming one.
func (g *Game) EquipFromInventory(idx int) (bool, string) {
	if !g.Started() || g.Over() {
		return false, ""
	}
	if idx < 0 || idx >= len(g.player.Inventory) {
		return false, "no such item in your pack"
	}
	it := g.player.Inventory[idx]
	if !g.player.EquipFromInventory(idx) {
		return false, fmt.Sprintf("the %s cannot be equipped", it.Kind)
	}
	g.endPlayerTurn()
	return true, fmt.Sprintf("you equip the %s %s", it.Rarity.Tier, it.Kind)
}

// Descend takes the stairs the player is standing on. Fails without
// consuming the turn when the player is not on a stairs tile.
func (g *Game) Descend() (bool, string) {
	if !g.Started() || g.Over() {
		return false, ""
	}
	if !g.dungeon.StairsAt(g.player.Position()) {
		return false, "there are no stairs here"
	}
	msg := g.descend()
	g.tickCooldowns()
	return true, msg
}

// DebugSkipLevel descends immediately, as if the stairs were used. Debug
// tooling only; follows the normal victory rule on the final depth.
func (g *Game) DebugSkipLevel() (bool, string) {
	if !g.Started() || g.Over() {
		return false, ""
	}
	return true, g.descend()
}

// endPlayerTurn runs the enemy phase and then ticks all ability cooldowns.
// Called exactly once per consumed player action.
func (g *Game) endPlayerTurn() {
	g.enemyPhase()
	g.tickCooldowns()
}

func (g *Game) tickCooldowns() {
	for _, ab := range g.player.Abilities {
		ab.Tick()
	}
}

// enemyPhase gives each live enemy one action in spawn order. The phase
// aborts as soon as the player dies.
func (g *Game) enemyPhase() {
	// Snapshot: enemies killed this phase cannot act, new state is picked up
	// next turn.
	acting := make([]*entity.Enemy, len(g.enemies))
	copy(acting, g.enemies)

	for _, e := range acting {
		if e.Dead() {
			continue
		}
		dec := ai.Decide(e, g.player, g.dungeon, g.aiConfig(), g.src)
		if dec.Spotted {
			g.emit(event.EnemySpotted(e.ID()))
		}

		switch dec.Action {
		case ai.ActionAttack:
			res := combat.ResolveEnemyAttack(e.Attack, g.player.TotalDefense(), g.combatConfig(), g.src)
			g.player.ApplyDamage(res.Damage)
			g.emit(event.Damage(g.player.Position(), res.Damage, false))
			if g.player.Dead() {
				g.emit(event.Death(g.player.Position(), "player"))
				g.emit(event.GameOver())
				g.gameOver = true
				g.logger.Info("game over", zap.Int("depth", g.depth))
				return
			}
		case ai.ActionMove:
			dest := e.Position().Add(dec.DX, dec.DY)
			// A blocked step is skipped, no retry.
			if g.dungeon.Walkable(dest.X, dest.Y) && !g.occupied(dest) {
				e.SetPosition(dest)
			}
		}
	}
}

func (g *Game) combatConfig() combat.Config {
	return combat.Config{
		Variance:           g.cfg.Combat.Variance,
		BackstabMultiplier: g.cfg.Combat.BackstabMultiplier,
	}
}

func (g *Game) aiConfig() ai.Config {
	return ai.Config{
		SearchTurnsMax:      g.cfg.AI.SearchTurnsMax,
		VisionRadiusVsRogue: g.cfg.Vision.EnemyRadiusVsRogue,
	}
}

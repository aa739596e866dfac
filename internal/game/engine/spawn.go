package engine

import (
	"sort"

	"go.uber.org/zap"

	"github.com/delver-game/delver/internal/game/dungeon"
	"github.com/delver-game/delver/internal/game/entity"
	"github.com/delver-game/delver/internal/game/ruleset"
	"github.com/delver-game/delver/internal/game/rng"
)

// spawnEnemies populates the current level from the depth's spawn band.
func (g *Game) spawnEnemies() {
	band := g.registry.Spawn().BandFor(g.depth)
	for i := 0; i < band.Count; i++ {
		id, ok := weightedPick(band.Weights, g.src)
		if !ok {
			return
		}
		def, ok := g.registry.EnemyType(id)
		if !ok {
			continue
		}
		pos, ok := g.spawnPosition()
		if !ok {
			g.logger.Warn("no spawn position found", zap.String("enemy", id))
			continue
		}
		e := entity.NewEnemy(def, pos, g.depth,
			g.cfg.Combat.DifficultyPerDepth,
			g.cfg.Vision.EnemyRadius,
			g.roomContaining(pos))
		g.enemies = append(g.enemies, e)
	}
}

// spawnItems places the configured number of items on the level.
func (g *Game) spawnItems() {
	loot := g.registry.Loot()
	for i := 0; i < g.cfg.Spawn.ItemsPerLevel; i++ {
		pos, ok := g.spawnPosition()
		if !ok {
			g.logger.Warn("no item spawn position found")
			return
		}
		g.items = append(g.items, g.rollItem(loot, pos))
	}
}

// rollItem draws a kind, a depth-weighted rarity tier, and (Rare and up)
// 1-3 random affixes.
func (g *Game) rollItem(loot ruleset.LootTable, pos dungeon.Point) *entity.Item {
	kindWeights := make(map[string]int, len(loot.Kinds))
	for _, k := range loot.Kinds {
		kindWeights[k.Kind] = k.Weight
	}
	kindID, _ := weightedPick(kindWeights, g.src)
	kind, _ := loot.Kind(kindID)

	tierIdx := g.rollRarity(loot.Tiers)
	tier := loot.Tiers[tierIdx]

	var affixes map[string]int
	if tierIdx >= ruleset.RareTierIndex {
		affixes = g.rollAffixes(loot.Affixes)
	}
	return entity.NewItem(pos, kind.Kind, tier, tierIdx, kind.Bonus, affixes)
}

// rollRarity picks a tier index with weight BaseWeight + WeightPerDepth*depth.
func (g *Game) rollRarity(tiers []ruleset.RarityTier) int {
	total := 0
	for _, t := range tiers {
		total += t.BaseWeight + t.WeightPerDepth*g.depth
	}
	if total <= 0 {
		return 0
	}
	roll := g.src.Intn(total)
	for i, t := range tiers {
		roll -= t.BaseWeight + t.WeightPerDepth*g.depth
		if roll < 0 {
			return i
		}
	}
	return len(tiers) - 1
}

// rollAffixes draws 1-3 distinct affixes with uniform magnitudes in each
// stat's range.
func (g *Game) rollAffixes(defs []ruleset.AffixDef) map[string]int {
	n := 1 + g.src.Intn(3)
	if n > len(defs) {
		n = len(defs)
	}
	// Partial shuffle picks n distinct stats.
	pool := make([]ruleset.AffixDef, len(defs))
	copy(pool, defs)
	affixes := make(map[string]int, n)
	for i := 0; i < n; i++ {
		j := i + g.src.Intn(len(pool)-i)
		pool[i], pool[j] = pool[j], pool[i]
		a := pool[i]
		affixes[a.Stat] = a.Min + g.src.Intn(a.Max-a.Min+1)
	}
	return affixes
}

// spawnPosition samples a floor tile at least MinPlayerDistance from the
// player and unoccupied, with bounded retries; the fallback accepts any free
// floor tile so spawning never fails on a valid dungeon.
func (g *Game) spawnPosition() (dungeon.Point, bool) {
	for attempt := 0; attempt < g.cfg.Spawn.MaxAttempts; attempt++ {
		p, ok := g.randomFloorTile()
		if !ok {
			break
		}
		if dungeon.Manhattan(p, g.player.Position()) < g.cfg.Spawn.MinPlayerDistance {
			continue
		}
		if g.occupied(p) || g.itemAt(p) != nil || g.dungeon.StairsAt(p) {
			continue
		}
		return p, true
	}
	// Fallback: the distance constraint is dropped, the tile must still be free.
	for attempt := 0; attempt < g.cfg.Spawn.MaxAttempts; attempt++ {
		p, ok := g.randomFloorTile()
		if !ok {
			break
		}
		if !g.occupied(p) && g.itemAt(p) == nil && !g.dungeon.StairsAt(p) {
			return p, true
		}
	}
	return dungeon.Point{}, false
}

// randomFloorTile samples a uniformly random walkable tile, preferring room
// interiors by sampling rooms first.
func (g *Game) randomFloorTile() (dungeon.Point, bool) {
	if len(g.dungeon.Rooms) > 0 {
		r := g.dungeon.Rooms[g.src.Intn(len(g.dungeon.Rooms))]
		return dungeon.Point{
			X: r.X + g.src.Intn(r.W),
			Y: r.Y + g.src.Intn(r.H),
		}, true
	}
	for attempt := 0; attempt < g.cfg.Spawn.MaxAttempts; attempt++ {
		x := g.src.Intn(g.dungeon.Width)
		y := g.src.Intn(g.dungeon.Height)
		if g.dungeon.Walkable(x, y) {
			return dungeon.Point{X: x, Y: y}, true
		}
	}
	return dungeon.Point{}, false
}

// roomContaining returns a pointer into the dungeon's room list, or nil for
// corridor tiles.
func (g *Game) roomContaining(p dungeon.Point) *dungeon.Room {
	for i := range g.dungeon.Rooms {
		if g.dungeon.Rooms[i].Contains(p) {
			return &g.dungeon.Rooms[i]
		}
	}
	return nil
}

// weightedPick draws a key with probability proportional to its weight. Keys
// are visited in sorted order so a seeded source reproduces the same draws.
func weightedPick(weights map[string]int, src rng.Source) (string, bool) {
	keys := make([]string, 0, len(weights))
	total := 0
	for id, w := range weights {
		keys = append(keys, id)
		total += w
	}
	if total <= 0 {
		return "", false
	}
	sort.Strings(keys)
	roll := src.Intn(total)
	for _, id := range keys {
		roll -= weights[id]
		if roll < 0 {
			return id, true
		}
	}
	return "", false
}

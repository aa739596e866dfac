package engine

import (
	"github.com/delver-game/delver/internal/game/ability"
	"github.com/delver-game/delver/internal/game/dungeon"
	"github.com/delver-game/delver/internal/game/entity"
)

// world adapts the Game to the narrow view abilities act through.
type world struct {
	g *Game
}

var _ ability.World = (*world)(nil)

func (w *world) Walkable(p dungeon.Point) bool {
	return w.g.dungeon.Walkable(p.X, p.Y)
}

func (w *world) Occupied(p dungeon.Point) bool {
	return w.g.occupied(p)
}

func (w *world) EnemyAt(p dungeon.Point) (ability.Target, bool) {
	if e := w.g.enemyAt(p); e != nil {
		return e, true
	}
	return nil, false
}

func (w *world) Enemies() []ability.Target {
	out := make([]ability.Target, len(w.g.enemies))
	for i, e := range w.g.enemies {
		out[i] = e
	}
	return out
}

func (w *world) DamageEnemy(t ability.Target, amount int) {
	if e := w.resolve(t); e != nil {
		w.g.damageEnemy(e, amount, false)
	}
}

func (w *world) FreezeEnemy(t ability.Target, turns int) {
	if e := w.resolve(t); e != nil {
		e.Freeze(turns)
	}
}

// resolve maps a Target handle back to the live enemy; dead enemies resolve
// to nil so stale handles are harmless.
func (w *world) resolve(t ability.Target) *entity.Enemy {
	for _, e := range w.g.enemies {
		if e.ID() == t.ID() {
			return e
		}
	}
	return nil
}

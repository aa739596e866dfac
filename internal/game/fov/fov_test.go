package fov

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/delver-game/delver/internal/game/dungeon"
)

// textGrid is a test Grid parsed from rows of '#' (wall) and '.' (floor).
type textGrid struct {
	rows []string
}

func parseGrid(s string) *textGrid {
	var rows []string
	for _, line := range strings.Split(strings.TrimSpace(s), "\n") {
		rows = append(rows, strings.TrimSpace(line))
	}
	return &textGrid{rows: rows}
}

func (g *textGrid) InBounds(x, y int) bool {
	return y >= 0 && y < len(g.rows) && x >= 0 && x < len(g.rows[y])
}

func (g *textGrid) Transparent(x, y int) bool {
	return g.InBounds(x, y) && g.rows[y][x] != '#'
}

func pt(x, y int) dungeon.Point { return dungeon.Point{X: x, Y: y} }

func TestOriginAlwaysVisible(t *testing.T) {
	g := parseGrid(`
		.....
		.....
		.....
	`)
	visible := Compute(g, pt(2, 1), 3)
	_, ok := visible[pt(2, 1)]
	assert.True(t, ok)
}

func TestOpenFieldIsDiamond(t *testing.T) {
	g := parseGrid(`
		.........
		.........
		.........
		.........
		.........
		.........
		.........
		.........
		.........
	`)
	origin := pt(4, 4)
	radius := 3
	visible := Compute(g, origin, radius)

	for y := 0; y < 9; y++ {
		for x := 0; x < 9; x++ {
			p := pt(x, y)
			_, ok := visible[p]
			within := dungeon.Manhattan(origin, p) <= radius
			assert.Equal(t, within, ok, "tile (%d,%d): diamond membership", x, y)
		}
	}
}

func TestWallCastsShadow(t *testing.T) {
	g := parseGrid(`
		.......
		.......
		...#...
		.......
	`)
	origin := pt(3, 0)
	visible := Compute(g, origin, 4)

	// The wall itself is visible; the tile directly behind it is not.
	_, wallSeen := visible[pt(3, 2)]
	assert.True(t, wallSeen, "the blocking wall is itself visible")
	_, behindSeen := visible[pt(3, 3)]
	assert.False(t, behindSeen, "the tile directly behind the wall is occluded")
}

func TestEnclosedRoomSeesOnlyInterior(t *testing.T) {
	g := parseGrid(`
		#########
		#...#...#
		#...#...#
		#########
	`)
	visible := Compute(g, pt(2, 1), 8)

	for _, p := range []dungeon.Point{pt(1, 1), pt(2, 2), pt(3, 1)} {
		_, ok := visible[p]
		assert.True(t, ok, "interior tile %v visible", p)
	}
	for _, p := range []dungeon.Point{pt(5, 1), pt(6, 2), pt(7, 1)} {
		_, ok := visible[p]
		assert.False(t, ok, "tile %v beyond the dividing wall is hidden", p)
	}
}

func TestPropertyRadiusNeverExceeded(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		w := rapid.IntRange(5, 20).Draw(t, "w")
		h := rapid.IntRange(5, 20).Draw(t, "h")
		rows := make([]string, h)
		for y := range rows {
			var b strings.Builder
			for x := 0; x < w; x++ {
				if rapid.IntRange(0, 4).Draw(t, "cell") == 0 {
					b.WriteByte('#')
				} else {
					b.WriteByte('.')
				}
			}
			rows[y] = b.String()
		}
		g := &textGrid{rows: rows}

		origin := pt(rapid.IntRange(0, w-1).Draw(t, "ox"), rapid.IntRange(0, h-1).Draw(t, "oy"))
		radius := rapid.IntRange(1, 10).Draw(t, "radius")

		visible := Compute(g, origin, radius)
		if _, ok := visible[origin]; !ok {
			t.Fatalf("origin %v missing from its own FOV", origin)
		}
		for p := range visible {
			if dungeon.Manhattan(origin, p) > radius {
				t.Fatalf("point %v exceeds radius %d from %v", p, radius, origin)
			}
		}
	})
}

func TestComputeOnGeneratedDungeon(t *testing.T) {
	// FOV must also behave on the real Dungeon type, which implements Grid.
	d := dungeon.New(15, 15)
	for y := 5; y < 10; y++ {
		for x := 5; x < 10; x++ {
			d.SetTile(x, y, dungeon.TileFloor)
		}
	}
	visible := Compute(d, pt(7, 7), 4)
	require.NotEmpty(t, visible)
	_, ok := visible[pt(7, 7)]
	assert.True(t, ok)
}

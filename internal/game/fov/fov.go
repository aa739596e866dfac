// Package fov implements recursive shadowcasting field-of-view over a tile
// grid. The same computation serves player sight and enemy detection.
package fov

import "github.com/delver-game/delver/internal/game/dungeon"

// Grid is the minimal terrain view the algorithm needs.
type Grid interface {
	InBounds(x, y int) bool
	Transparent(x, y int) bool
}

// octant transform matrices. For each octant, a (dx, dy) sweep pair maps to a
// world offset via:
//
//	worldX = ox + dx*xx + dy*xy
//	worldY = oy + dx*yx + dy*yy
//
// These are the standard recursive shadowcasting multipliers.
var octants = [8][4]int{
	{1, 0, 0, 1},
	{0, 1, 1, 0},
	{0, -1, 1, 0},
	{-1, 0, 0, 1},
	{-1, 0, 0, -1},
	{0, -1, -1, 0},
	{0, 1, -1, 0},
	{1, 0, 0, -1},
}

// Compute returns the set of points visible from origin within radius.
//
// Visibility is clipped to Manhattan distance <= radius, giving the diamond
// sight shape the game is tuned around (deliberately not Euclidean).
//
// Postcondition: the origin is always in the returned set; no returned point
// has Manhattan distance from origin greater than radius.
func Compute(g Grid, origin dungeon.Point, radius int) map[dungeon.Point]struct{} {
	visible := make(map[dungeon.Point]struct{})
	if g.InBounds(origin.X, origin.Y) {
		visible[origin] = struct{}{}
	}
	for _, m := range octants {
		castLight(g, visible, origin, 1, 1.0, 0.0, radius, m[0], m[1], m[2], m[3])
	}
	return visible
}

// castLight scans one octant using recursive shadowcasting.
//
//   - row is the distance from the origin along the octant's main axis
//   - dy = -row is fixed for the entire inner sweep; dx sweeps from -row to 0
//   - lSlope = (dx - 0.5) / (dy + 0.5), rSlope = (dx + 0.5) / (dy - 0.5)
//   - a wall cell inside a clear scan starts a shadow: recurse into the
//     narrower cone before it, then continue with a restricted start slope
func castLight(g Grid, visible map[dungeon.Point]struct{}, origin dungeon.Point, row int, start, end float64, radius, xx, xy, yx, yy int) {
	if start < end {
		return
	}
	newStart := start

	for j := row; j <= radius; j++ {
		dy := -j
		blocked := false

		for dx := -j; dx <= 0; dx++ {
			wx := origin.X + dx*xx + dy*xy
			wy := origin.Y + dx*yx + dy*yy

			lSlope := (float64(dx) - 0.5) / (float64(dy) + 0.5)
			rSlope := (float64(dx) + 0.5) / (float64(dy) - 0.5)

			if start < rSlope {
				continue // cell is outside the cone on the right
			}
			if end > lSlope {
				break // cell and all remaining cells are outside on the left
			}

			// Manhattan clamp: |dx| + |dy| with dx, dy both non-positive here.
			if -dx-dy <= radius && g.InBounds(wx, wy) {
				visible[dungeon.Point{X: wx, Y: wy}] = struct{}{}
			}

			opaque := !g.InBounds(wx, wy) || !g.Transparent(wx, wy)

			if blocked {
				if opaque {
					// Still inside a wall run; advance the shadow boundary.
					newStart = rSlope
				} else {
					blocked = false
					start = newStart
				}
			} else if opaque && j < radius {
				// Hit a new wall: cast a child scan into the cone before it.
				blocked = true
				castLight(g, visible, origin, j+1, start, lSlope, radius, xx, xy, yx, yy)
				newStart = rSlope
			}
		}
		if blocked {
			break // entire remaining scan is in shadow
		}
	}
}

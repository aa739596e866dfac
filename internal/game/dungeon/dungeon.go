// Package dungeon implements the tile grid, room-and-corridor generator, and
// per-level visibility bookkeeping for the Delver simulation.
package dungeon

// TileKind identifies the terrain of a single grid cell.
type TileKind uint8

const (
	// TileWall blocks movement and sight.
	TileWall TileKind = iota
	// TileFloor is open, walkable ground.
	TileFloor
	// TileStairs is the walkable descent to the next level.
	TileStairs
)

// String returns the tile kind name.
func (k TileKind) String() string {
	switch k {
	case TileWall:
		return "wall"
	case TileFloor:
		return "floor"
	case TileStairs:
		return "stairs"
	default:
		return "unknown"
	}
}

// Room is an axis-aligned rectangle of floor tiles.
//
// Invariant: rooms placed by Generate never overlap and never overflow the grid.
type Room struct {
	X, Y, W, H int
}

// Center returns the room's center tile.
func (r Room) Center() Point {
	return Point{X: r.X + r.W/2, Y: r.Y + r.H/2}
}

// Intersects reports whether r and other overlap, edges inclusive.
func (r Room) Intersects(other Room) bool {
	return r.X <= other.X+other.W && r.X+r.W >= other.X &&
		r.Y <= other.Y+other.H && r.Y+r.H >= other.Y
}

// Contains reports whether p lies inside the room's rectangle.
func (r Room) Contains(p Point) bool {
	return p.X >= r.X && p.X < r.X+r.W && p.Y >= r.Y && p.Y < r.Y+r.H
}

// Dungeon is a single level's tile grid plus the rooms it was built from.
// Immutable after generation except through lookups.
type Dungeon struct {
	Width  int
	Height int
	tiles  []TileKind
	Rooms  []Room
}

// New returns a Dungeon of the given dimensions filled with wall tiles.
//
// Precondition: width > 0 and height > 0.
func New(width, height int) *Dungeon {
	if width <= 0 || height <= 0 {
		panic("dungeon: New called with non-positive dimensions")
	}
	return &Dungeon{
		Width:  width,
		Height: height,
		tiles:  make([]TileKind, width*height),
	}
}

// InBounds reports whether (x, y) lies on the grid.
func (d *Dungeon) InBounds(x, y int) bool {
	return x >= 0 && x < d.Width && y >= 0 && y < d.Height
}

// Tile returns the kind of the tile at (x, y).
//
// Precondition: (x, y) must be in bounds.
func (d *Dungeon) Tile(x, y int) TileKind {
	return d.tiles[y*d.Width+x]
}

// SetTile overwrites the tile at (x, y). Used only during generation.
//
// Precondition: (x, y) must be in bounds.
func (d *Dungeon) SetTile(x, y int, k TileKind) {
	d.tiles[y*d.Width+x] = k
}

// Walkable reports whether an entity may stand on (x, y).
func (d *Dungeon) Walkable(x, y int) bool {
	return d.InBounds(x, y) && d.Tile(x, y) != TileWall
}

// Transparent reports whether sight passes through (x, y).
func (d *Dungeon) Transparent(x, y int) bool {
	return d.InBounds(x, y) && d.Tile(x, y) != TileWall
}

// StairsAt reports whether (x, y) is the stairs tile.
func (d *Dungeon) StairsAt(p Point) bool {
	return d.InBounds(p.X, p.Y) && d.Tile(p.X, p.Y) == TileStairs
}

package dungeon

import "github.com/delver-game/delver/internal/game/rng"

// GenConfig bounds a single level generation.
type GenConfig struct {
	// Width and Height are the grid dimensions.
	Width, Height int
	// MaxRooms is the number of placement attempts.
	MaxRooms int
	// MinSize and MaxSize bound the randomized room width and height.
	MinSize, MaxSize int
}

// Generate builds a level: up to MaxRooms rectangular rooms connected by
// L-shaped corridors, with the last room's center set to stairs.
//
// Precondition: cfg dimensions must admit at least one MaxSize room with a
// 1-tile border; src must be non-nil.
// Postcondition: every placed room is reachable from every other via carved
// corridors; the returned start point is the first room's center (grid center
// if no room was placed, which must not happen under expected parameters but
// must not crash).
func Generate(cfg GenConfig, src rng.Source) (*Dungeon, Point) {
	d := New(cfg.Width, cfg.Height)

	sizeSpread := cfg.MaxSize - cfg.MinSize + 1
	for i := 0; i < cfg.MaxRooms; i++ {
		w := cfg.MinSize + src.Intn(sizeSpread)
		h := cfg.MinSize + src.Intn(sizeSpread)
		// Position bounds keep the room inside the grid with a 1-tile border,
		// so a candidate can abut the edge but never overflow it.
		room := Room{
			X: 1 + src.Intn(cfg.Width-w-1),
			Y: 1 + src.Intn(cfg.Height-h-1),
			W: w,
			H: h,
		}

		overlaps := false
		for _, placed := range d.Rooms {
			if room.Intersects(placed) {
				overlaps = true
				break
			}
		}
		if overlaps {
			continue
		}

		d.carveRoom(room)
		if len(d.Rooms) > 0 {
			prev := d.Rooms[len(d.Rooms)-1].Center()
			d.carveCorridor(prev, room.Center(), src)
		}
		d.Rooms = append(d.Rooms, room)
	}

	if len(d.Rooms) == 0 {
		return d, Point{X: cfg.Width / 2, Y: cfg.Height / 2}
	}

	stairs := d.Rooms[len(d.Rooms)-1].Center()
	d.SetTile(stairs.X, stairs.Y, TileStairs)
	return d, d.Rooms[0].Center()
}

// carveRoom sets the room's interior to floor.
func (d *Dungeon) carveRoom(r Room) {
	for y := r.Y; y < r.Y+r.H; y++ {
		for x := r.X; x < r.X+r.W; x++ {
			d.SetTile(x, y, TileFloor)
		}
	}
}

// carveCorridor connects a and b with an L-shaped corridor, horizontal-first
// or vertical-first chosen by coin flip.
func (d *Dungeon) carveCorridor(a, b Point, src rng.Source) {
	if src.Intn(2) == 0 {
		d.carveHorizontal(a.X, b.X, a.Y)
		d.carveVertical(a.Y, b.Y, b.X)
	} else {
		d.carveVertical(a.Y, b.Y, a.X)
		d.carveHorizontal(a.X, b.X, b.Y)
	}
}

func (d *Dungeon) carveHorizontal(x1, x2, y int) {
	if x1 > x2 {
		x1, x2 = x2, x1
	}
	for x := x1; x <= x2; x++ {
		if d.InBounds(x, y) {
			d.SetTile(x, y, TileFloor)
		}
	}
}

func (d *Dungeon) carveVertical(y1, y2, x int) {
	if y1 > y2 {
		y1, y2 = y2, y1
	}
	for y := y1; y <= y2; y++ {
		if d.InBounds(x, y) {
			d.SetTile(x, y, TileFloor)
		}
	}
}

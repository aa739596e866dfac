package dungeon

// TileState is the per-tile exploration state tracked across turns.
type TileState uint8

const (
	// Unexplored tiles have never been inside the player's field of view.
	Unexplored TileState = iota
	// Explored tiles were visible on an earlier turn but are not now.
	Explored
	// Visible tiles are inside the current turn's field of view.
	Visible
)

// String returns the state name.
func (s TileState) String() string {
	switch s {
	case Unexplored:
		return "unexplored"
	case Explored:
		return "explored"
	case Visible:
		return "visible"
	default:
		return "unknown"
	}
}

// VisibilityMap tracks the tri-state exploration grid parallel to a Dungeon.
//
// Invariant: a tile becomes Visible only through Reveal; Reveal first demotes
// every currently-Visible tile to Explored, so Visible always reflects only
// the latest field-of-view computation.
type VisibilityMap struct {
	width, height int
	states        []TileState
}

// NewVisibilityMap returns an all-Unexplored map of the given dimensions.
//
// Precondition: width > 0 and height > 0.
func NewVisibilityMap(width, height int) *VisibilityMap {
	if width <= 0 || height <= 0 {
		panic("dungeon: NewVisibilityMap called with non-positive dimensions")
	}
	return &VisibilityMap{
		width:  width,
		height: height,
		states: make([]TileState, width*height),
	}
}

// State returns the exploration state of (x, y).
//
// Precondition: (x, y) must be in bounds.
func (m *VisibilityMap) State(x, y int) TileState {
	return m.states[y*m.width+x]
}

// Reveal applies a freshly computed field of view: all previously Visible
// tiles drop to Explored, then every point in fov becomes Visible.
// Out-of-bounds points in fov are ignored.
func (m *VisibilityMap) Reveal(fov map[Point]struct{}) {
	for i, s := range m.states {
		if s == Visible {
			m.states[i] = Explored
		}
	}
	for p := range fov {
		if p.X >= 0 && p.X < m.width && p.Y >= 0 && p.Y < m.height {
			m.states[p.Y*m.width+p.X] = Visible
		}
	}
}

// Reset returns every tile to Unexplored. Called on level transition.
func (m *VisibilityMap) Reset() {
	for i := range m.states {
		m.states[i] = Unexplored
	}
}

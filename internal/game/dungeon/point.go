package dungeon

// Point is an integer grid coordinate. The simulation's authoritative entity
// positions are Points; any fractional display position is presentation-layer
// state outside this module.
type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Add returns p offset by (dx, dy).
func (p Point) Add(dx, dy int) Point {
	return Point{X: p.X + dx, Y: p.Y + dy}
}

// Manhattan returns the L1 distance between a and b.
func Manhattan(a, b Point) int {
	return abs(a.X-b.X) + abs(a.Y-b.Y)
}

// Chebyshev returns the L∞ distance between a and b.
func Chebyshev(a, b Point) int {
	dx := abs(a.X - b.X)
	dy := abs(a.Y - b.Y)
	if dx > dy {
		return dx
	}
	return dy
}

// StepToward returns the single orthogonal step from a toward b, preferring
// the axis with the greater absolute distance. Returns (0, 0) when a == b.
func StepToward(a, b Point) (dx, dy int) {
	ddx := b.X - a.X
	ddy := b.Y - a.Y
	if ddx == 0 && ddy == 0 {
		return 0, 0
	}
	if abs(ddx) >= abs(ddy) && ddx != 0 {
		return sign(ddx), 0
	}
	return 0, sign(ddy)
}

// SignOffset returns the per-axis unit sign of the direction from a to b,
// with 0 on a tied axis.
func SignOffset(a, b Point) (dx, dy int) {
	return sign(b.X - a.X), sign(b.Y - a.Y)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func sign(v int) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	default:
		return 0
	}
}

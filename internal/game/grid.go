package game

// Position is a grid cell coordinate. Valid cells satisfy
// 0 <= X < GridWidth and 0 <= Y < GridHeight; the head may sit one cell
// outside for the single tick between Advance and Wrap under toroidal walls.
type Position struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// InBounds reports whether p is on the grid.
func (p Position) InBounds() bool {
	return p.X >= 0 && p.X < GridWidth && p.Y >= 0 && p.Y < GridHeight
}

// Add returns p shifted by the direction's unit vector.
func (p Position) Add(d Direction) Position {
	dx, dy := d.Delta()
	return Position{X: p.X + dx, Y: p.Y + dy}
}

// Manhattan returns the Manhattan distance to q.
func (p Position) Manhattan(q Position) int {
	return abs(p.X-q.X) + abs(p.Y-q.Y)
}

// Direction is one of the four cardinal movement vectors.
type Direction int

const (
	DirUp    Direction = iota // (0,-1)
	DirDown                   // (0,1)
	DirLeft                   // (-1,0)
	DirRight                  // (1,0)
)

func (d Direction) Delta() (int, int) {
	switch d {
	case DirUp:
		return 0, -1
	case DirDown:
		return 0, 1
	case DirLeft:
		return -1, 0
	case DirRight:
		return 1, 0
	}
	return 0, 0
}

// Opposite returns the exact inverse direction.
func (d Direction) Opposite() Direction {
	switch d {
	case DirUp:
		return DirDown
	case DirDown:
		return DirUp
	case DirLeft:
		return DirRight
	case DirRight:
		return DirLeft
	}
	return d
}

func (d Direction) String() string {
	switch d {
	case DirUp:
		return "up"
	case DirDown:
		return "down"
	case DirLeft:
		return "left"
	case DirRight:
		return "right"
	}
	return "unknown"
}

// dirFromDelta maps a stored unit vector back onto a Direction. Anything
// unrecognized lands on right, the reset default.
func dirFromDelta(dx, dy int) Direction {
	switch {
	case dx == 1 && dy == 0:
		return DirRight
	case dx == -1 && dy == 0:
		return DirLeft
	case dx == 0 && dy == -1:
		return DirUp
	case dx == 0 && dy == 1:
		return DirDown
	}
	return DirRight
}

// WallPolicy decides what hitting the grid edge means.
type WallPolicy int

const (
	WallsBounded  WallPolicy = iota // edge is lethal
	WallsToroidal                   // edge wraps to the opposite side
)

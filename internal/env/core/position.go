package core

import "fmt"

// Position represents a cell on the warehouse grid
type Position struct {
	X, Y int
}

// NewPosition creates a new position with the given x and y values
func NewPosition(x, y int) Position {
	return Position{X: x, Y: y}
}

// IsValid checks if the position is within the given bounds
func (p Position) IsValid(width, height int) bool {
	return p.X >= 0 && p.X < width && p.Y >= 0 && p.Y < height
}

// Add returns a new position that is the sum of this position and another
func (p Position) Add(other Position) Position {
	return Position{
		X: p.X + other.X,
		Y: p.Y + other.Y,
	}
}

// Equal checks if two positions are equal
func (p Position) Equal(other Position) bool {
	return p.X == other.X && p.Y == other.Y
}

// Less orders positions by X, then Y. Used wherever a stable ordering
// over position sets is needed (e.g. the observation's wall list).
func (p Position) Less(other Position) bool {
	if p.X != other.X {
		return p.X < other.X
	}
	return p.Y < other.Y
}

// String returns a string representation of the position
func (p Position) String() string {
	return fmt.Sprintf("(%d,%d)", p.X, p.Y)
}

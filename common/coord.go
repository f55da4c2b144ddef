package common

import "fmt"

// Coord addresses a tile block within a grid, in block units.
type Coord struct {
	X, Y int
}

func (c Coord) String() string {
	return fmt.Sprintf("(%d,%d)", c.X, c.Y)
}

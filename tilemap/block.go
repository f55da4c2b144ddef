package tilemap

import (
	"github.com/jakecoffman/cp"

	"github.com/hollowgrove/tilesync/common"
)

// Block is one blockSize x blockSize region of the grid, clipped at the
// right and bottom edges. It carries the invalidation flag the collider
// synchronizer consumes.
type Block struct {
	grid    *Grid
	coord   common.Coord
	invalid bool
}

func (b *Block) Coord() common.Coord {
	return b.coord
}

func (b *Block) Invalidated() bool {
	return b.invalid
}

func (b *Block) ClearInvalidated() {
	b.invalid = false
}

// Invalidate marks the block's collision data stale so the next sync
// rebuilds it.
func (b *Block) Invalidate() {
	b.invalid = true
}

// Size returns the block's extent in tiles.
func (b *Block) Size() (int, int) {
	w := b.grid.blockSize
	h := b.grid.blockSize
	if rem := b.grid.width - b.coord.X*b.grid.blockSize; rem < w {
		w = rem
	}
	if rem := b.grid.height - b.coord.Y*b.grid.blockSize; rem < h {
		h = rem
	}
	return w, h
}

// TileAt returns the physics tile value at block-local coordinates.
func (b *Block) TileAt(x, y int) int {
	return b.grid.physicsTileAt(b.coord.X*b.grid.blockSize+x, b.coord.Y*b.grid.blockSize+y)
}

// Empty reports whether the block holds no physics tiles.
func (b *Block) Empty() bool {
	w, h := b.Size()
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if b.TileAt(x, y) != 0 {
				return false
			}
		}
	}
	return true
}

// Origin returns the world position of the block's top-left corner.
func (b *Block) Origin() cp.Vector {
	return cp.Vector{
		X: float64(b.coord.X*b.grid.blockSize) * b.grid.cellW,
		Y: float64(b.coord.Y*b.grid.blockSize) * b.grid.cellH,
	}
}

package tilemap

import (
	"fmt"

	"github.com/jakecoffman/cp"

	"github.com/hollowgrove/tilesync/collider"
	"github.com/hollowgrove/tilesync/common"
)

const DefaultBlockSize = 8

// Layer is one flat row-major tile array over the full grid. Only layers
// with Physics set contribute to collision occupancy.
type Layer struct {
	Name    string `yaml:"name,omitempty"`
	Physics bool   `yaml:"physics"`
	Tiles   []int  `yaml:"tiles"`
}

// Grid is a layered tile map partitioned into fixed-size blocks. Edits
// mark the containing block invalidated so a collider synchronizer can
// rebuild only what changed.
type Grid struct {
	width, height int
	cellW, cellH  float64
	blockSize     int
	layers        []Layer

	blocks []*Block // row-major over block coordinates
}

func NewGrid(width, height int, cellW, cellH float64, blockSize int, layers []Layer) (*Grid, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("tilemap: invalid dimensions %dx%d", width, height)
	}
	if cellW <= 0 || cellH <= 0 {
		return nil, fmt.Errorf("tilemap: invalid cell size %gx%g", cellW, cellH)
	}
	if blockSize <= 0 {
		blockSize = DefaultBlockSize
	}
	for i := range layers {
		if len(layers[i].Tiles) != width*height {
			return nil, fmt.Errorf("tilemap: layer %d has %d tiles, want %d", i, len(layers[i].Tiles), width*height)
		}
	}

	g := &Grid{
		width:     width,
		height:    height,
		cellW:     cellW,
		cellH:     cellH,
		blockSize: blockSize,
		layers:    layers,
	}
	g.rebuildBlocks(false)
	return g, nil
}

// Size returns the grid's extent in tiles.
func (g *Grid) Size() (w, h int) {
	return g.width, g.height
}

func (g *Grid) CellSize() cp.Vector {
	return cp.Vector{X: g.cellW, Y: g.cellH}
}

// EachBlock visits every block in row-major storage order.
func (g *Grid) EachBlock(fn func(collider.Block) bool) {
	for _, b := range g.blocks {
		if !fn(b) {
			return
		}
	}
}

// BlockAt returns the block holding the given block coordinate, or nil
// when out of range.
func (g *Grid) BlockAt(c common.Coord) *Block {
	bw := g.blocksWide()
	if c.X < 0 || c.Y < 0 || c.X >= bw || c.Y >= g.blocksHigh() {
		return nil
	}
	return g.blocks[c.Y*bw+c.X]
}

// TileAt returns the first non-zero tile value at x,y across physics
// layers, 0 when empty or out of bounds.
func (g *Grid) TileAt(x, y int) int {
	return g.physicsTileAt(x, y)
}

// SetTile writes a tile value into the given layer and invalidates
// the containing block when the layer contributes to collision.
func (g *Grid) SetTile(layer, x, y, v int) error {
	if layer < 0 || layer >= len(g.layers) {
		return fmt.Errorf("tilemap: no layer %d", layer)
	}
	if x < 0 || y < 0 || x >= g.width || y >= g.height {
		return fmt.Errorf("tilemap: tile %d,%d out of bounds for %dx%d grid", x, y, g.width, g.height)
	}
	idx := y*g.width + x
	if g.layers[layer].Tiles[idx] == v {
		return nil
	}
	g.layers[layer].Tiles[idx] = v
	if g.layers[layer].Physics {
		if b := g.BlockAt(common.Coord{X: x / g.blockSize, Y: y / g.blockSize}); b != nil {
			b.Invalidate()
		}
	}
	return nil
}

// Resize changes the grid's extent, keeping the overlapping tile region.
// All blocks are rebuilt and invalidated since block indexing changes.
func (g *Grid) Resize(width, height int) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("tilemap: invalid dimensions %dx%d", width, height)
	}
	for i := range g.layers {
		next := make([]int, width*height)
		copyW := g.width
		if width < copyW {
			copyW = width
		}
		copyH := g.height
		if height < copyH {
			copyH = height
		}
		for y := 0; y < copyH; y++ {
			copy(next[y*width:y*width+copyW], g.layers[i].Tiles[y*g.width:y*g.width+copyW])
		}
		g.layers[i].Tiles = next
	}
	g.width = width
	g.height = height
	g.rebuildBlocks(true)
	return nil
}

// ApplyFrom replaces this grid's tile data with next's, invalidating only
// the blocks whose physics occupancy actually differs. When the grids are
// not shape-compatible (dimensions, block size, cell size or layer count
// differ) the whole grid is replaced and every block invalidated.
func (g *Grid) ApplyFrom(next *Grid) {
	if next == nil {
		return
	}
	compatible := g.width == next.width &&
		g.height == next.height &&
		g.blockSize == next.blockSize &&
		g.cellW == next.cellW &&
		g.cellH == next.cellH &&
		len(g.layers) == len(next.layers)

	if !compatible {
		g.width = next.width
		g.height = next.height
		g.cellW = next.cellW
		g.cellH = next.cellH
		g.blockSize = next.blockSize
		g.layers = next.layers
		g.rebuildBlocks(true)
		return
	}

	for _, b := range g.blocks {
		if b.invalid {
			continue
		}
		if g.blockDiffers(next, b) {
			b.invalid = true
		}
	}
	g.layers = next.layers
}

// blockDiffers reports whether b's physics tiles differ between g and next.
func (g *Grid) blockDiffers(next *Grid, b *Block) bool {
	w, h := b.Size()
	x0 := b.coord.X * g.blockSize
	y0 := b.coord.Y * g.blockSize
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if g.physicsTileAt(x0+x, y0+y) != next.physicsTileAt(x0+x, y0+y) {
				return true
			}
		}
	}
	return false
}

func (g *Grid) physicsTileAt(x, y int) int {
	if x < 0 || y < 0 || x >= g.width || y >= g.height {
		return 0
	}
	idx := y*g.width + x
	for i := range g.layers {
		if !g.layers[i].Physics {
			continue
		}
		if v := g.layers[i].Tiles[idx]; v != 0 {
			return v
		}
	}
	return 0
}

func (g *Grid) blocksWide() int {
	return (g.width + g.blockSize - 1) / g.blockSize
}

func (g *Grid) blocksHigh() int {
	return (g.height + g.blockSize - 1) / g.blockSize
}

func (g *Grid) rebuildBlocks(invalidate bool) {
	bw := g.blocksWide()
	bh := g.blocksHigh()
	g.blocks = make([]*Block, 0, bw*bh)
	for by := 0; by < bh; by++ {
		for bx := 0; bx < bw; bx++ {
			g.blocks = append(g.blocks, &Block{
				grid:    g,
				coord:   common.Coord{X: bx, Y: by},
				invalid: invalidate,
			})
		}
	}
}

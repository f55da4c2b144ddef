package collider

import (
	"github.com/jakecoffman/cp"

	"github.com/hollowgrove/tilesync/common"
)

// Block is one rectangular region of a tile grid as seen by the
// synchronizer and its builders.
type Block interface {
	Coord() common.Coord
	Empty() bool
	Invalidated() bool
	ClearInvalidated()

	// Size returns the block's extent in tiles. Blocks on the right and
	// bottom edges of the grid may be smaller than the grid's block size.
	Size() (w, h int)
	// TileAt returns the tile value at block-local coordinates, 0 when empty.
	TileAt(x, y int) int
	// Origin returns the world position of the block's top-left corner.
	Origin() cp.Vector
}

// Grid is the synchronizer's view of a tile map: an ordered, repeatedly
// iterable set of blocks plus a uniform cell size.
type Grid interface {
	CellSize() cp.Vector
	// EachBlock visits every block in storage order. Return false from fn
	// to stop early.
	EachBlock(fn func(Block) bool)
}

// Builder turns one block's tiles into zero or more collider shapes.
// Implementations must register every shape through pass.AddShape and
// must not mutate the owner's shape collection directly.
type Builder interface {
	Build(pass *BuildPass, block Block, cellSize cp.Vector)
}

// BuilderFunc adapts a plain function to the Builder interface.
type BuilderFunc func(pass *BuildPass, block Block, cellSize cp.Vector)

func (f BuilderFunc) Build(pass *BuildPass, block Block, cellSize cp.Vector) {
	f(pass, block, cellSize)
}

// BuildPass collects the shapes emitted while a single block is being
// built. It is only valid for the duration of one Builder.Build call;
// the synchronizer seals it afterwards.
type BuildPass struct {
	owner  ShapeOwner
	shapes []*cp.Shape
	sealed bool
}

// Body returns the physics body new shapes should be constructed on.
func (p *BuildPass) Body() *cp.Body {
	return p.owner.Body()
}

// AddShape attaches the shape to the physics body and records it against
// the block being built. Calling it on a sealed pass is a broken builder
// contract and panics.
func (p *BuildPass) AddShape(shape *cp.Shape) {
	if p.sealed {
		panic("collider: AddShape called outside an active build pass")
	}
	p.owner.AddShape(shape)
	p.shapes = append(p.shapes, shape)
}

package collider

import (
	"github.com/jakecoffman/cp"

	"github.com/hollowgrove/tilesync/common"
)

// Synchronizer keeps a physics body's tile collider shapes consistent
// with a grid's contents, rebuilding only the blocks that were
// invalidated since the previous update. Shapes are tracked per block;
// the union of all records is exactly the set of shapes this
// synchronizer has attached to the owner.
//
// A Synchronizer is single-threaded: Update, RemoveAssociatedShapes and
// Reset share the record maps and must not be called concurrently.
type Synchronizer struct {
	builder Builder

	// current maps each block to the shapes it owns. scratch is the next
	// cycle's map, populated during Update and swapped in at the end;
	// between updates it is always empty.
	current map[common.Coord][]*cp.Shape
	scratch map[common.Coord][]*cp.Shape
}

func NewSynchronizer(builder Builder) *Synchronizer {
	return &Synchronizer{
		builder: builder,
		current: make(map[common.Coord][]*cp.Shape),
		scratch: make(map[common.Coord][]*cp.Shape),
	}
}

// Update brings owner's shape collection into agreement with grid.
//
// Blocks with an untouched record are carried forward without rebuilding.
// Invalidated blocks have their old shapes removed and, when still
// occupied, are rebuilt through the builder. Blocks the grid no longer
// reports are swept at the end. Each block's invalidation flag is cleared
// as it is processed.
//
// The return value reports whether any shape was removed or any block was
// rebuilt, so the caller can trigger whatever shape-recombination step
// its engine needs.
func (s *Synchronizer) Update(grid Grid, owner ShapeOwner) bool {
	changed := false

	grid.EachBlock(func(block Block) bool {
		coord := block.Coord()
		if shapes, ok := s.current[coord]; ok {
			if !block.Invalidated() {
				// Unchanged block: carry the record forward untouched.
				s.scratch[coord] = shapes
				delete(s.current, coord)
				block.ClearInvalidated()
				return true
			}
			for _, shape := range shapes {
				owner.RemoveShape(shape)
			}
			delete(s.current, coord)
			changed = true
		}
		block.ClearInvalidated()
		if block.Empty() {
			return true
		}

		pass := &BuildPass{owner: owner}
		s.builder.Build(pass, block, grid.CellSize())
		pass.sealed = true
		s.scratch[coord] = pass.shapes
		changed = true
		return true
	})

	// Swap: scratch becomes authoritative. Whatever is left in the old
	// current map belongs to blocks the grid no longer reports.
	s.current, s.scratch = s.scratch, s.current
	for coord, shapes := range s.scratch {
		for _, shape := range shapes {
			owner.RemoveShape(shape)
			changed = true
		}
		delete(s.scratch, coord)
	}

	return changed
}

// RemoveAssociatedShapes detaches every recorded shape from owner. The
// records themselves stay populated, so a caller that keeps using this
// synchronizer afterwards must call Reset (or discard the instance) to
// avoid stale records pointing at detached shapes. A nil owner is a
// no-op.
func (s *Synchronizer) RemoveAssociatedShapes(owner ShapeOwner) {
	if owner == nil {
		return
	}
	for _, shapes := range s.current {
		for _, shape := range shapes {
			owner.RemoveShape(shape)
		}
	}
}

// Reset detaches every recorded shape and drops all records, returning
// the synchronizer to its initial state. A nil owner still clears the
// records.
func (s *Synchronizer) Reset(owner ShapeOwner) {
	for coord, shapes := range s.current {
		if owner != nil {
			for _, shape := range shapes {
				owner.RemoveShape(shape)
			}
		}
		delete(s.current, coord)
	}
}

// ShapeCount returns the number of shapes currently recorded across all
// blocks.
func (s *Synchronizer) ShapeCount() int {
	n := 0
	for _, shapes := range s.current {
		n += len(shapes)
	}
	return n
}

// BlockCount returns the number of blocks currently holding a record.
func (s *Synchronizer) BlockCount() int {
	return len(s.current)
}

package collider

import (
	"testing"

	"github.com/jakecoffman/cp"

	"github.com/hollowgrove/tilesync/common"
)

// tileBlock is a builder-test fixture with explicit tile contents.
type tileBlock struct {
	coord common.Coord
	w, h  int
	tiles []int
}

func (b *tileBlock) Coord() common.Coord { return b.coord }
func (b *tileBlock) Invalidated() bool   { return false }
func (b *tileBlock) ClearInvalidated()   {}
func (b *tileBlock) Size() (int, int)    { return b.w, b.h }
func (b *tileBlock) Origin() cp.Vector   { return cp.Vector{} }

func (b *tileBlock) TileAt(x, y int) int {
	if x < 0 || y < 0 || x >= b.w || y >= b.h {
		return TileEmpty
	}
	return b.tiles[y*b.w+x]
}

func (b *tileBlock) Empty() bool {
	for _, v := range b.tiles {
		if v != TileEmpty {
			return false
		}
	}
	return true
}

func buildShapes(t *testing.T, builder Builder, block *tileBlock) []*cp.Shape {
	t.Helper()
	pass := &BuildPass{owner: newRecordingOwner()}
	builder.Build(pass, block, cp.Vector{X: 16, Y: 16})
	pass.sealed = true
	return pass.shapes
}

func TestBoxBuilder(t *testing.T) {
	cases := []struct {
		name    string
		block   *tileBlock
		want    int
		sensors int
	}{
		{
			name:  "empty",
			block: &tileBlock{w: 2, h: 2, tiles: []int{0, 0, 0, 0}},
			want:  0,
		},
		{
			name:  "one_per_solid_tile",
			block: &tileBlock{w: 3, h: 1, tiles: []int{1, 0, 1}},
			want:  2,
		},
		{
			name:    "hazard_is_sensor",
			block:   &tileBlock{w: 2, h: 1, tiles: []int{1, 2}},
			want:    2,
			sensors: 1,
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			shapes := buildShapes(t, BoxBuilder{}, c.block)
			if len(shapes) != c.want {
				t.Fatalf("got %d shapes, want %d", len(shapes), c.want)
			}
			sensors := 0
			for _, sh := range shapes {
				if sh.Sensor() {
					sensors++
				}
			}
			if sensors != c.sensors {
				t.Fatalf("got %d sensors, want %d", sensors, c.sensors)
			}
		})
	}
}

func TestGreedyBoxBuilder(t *testing.T) {
	cases := []struct {
		name  string
		block *tileBlock
		want  int
	}{
		{
			name:  "row_merges_to_one",
			block: &tileBlock{w: 4, h: 1, tiles: []int{1, 1, 1, 1}},
			want:  1,
		},
		{
			name: "rect_merges_to_one",
			block: &tileBlock{w: 3, h: 2, tiles: []int{
				1, 1, 1,
				1, 1, 1,
			}},
			want: 1,
		},
		{
			name: "l_shape_needs_two",
			block: &tileBlock{w: 3, h: 2, tiles: []int{
				1, 0, 0,
				1, 1, 1,
			}},
			want: 2,
		},
		{
			name: "hazard_splits_run",
			block: &tileBlock{w: 5, h: 1, tiles: []int{
				1, 1, 2, 1, 1,
			}},
			want: 3,
		},
		{
			name: "tileset_values_merge_with_solid",
			block: &tileBlock{w: 3, h: 1, tiles: []int{1, 3, 4}},
			want: 1,
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			shapes := buildShapes(t, GreedyBoxBuilder{}, c.block)
			if len(shapes) != c.want {
				t.Fatalf("got %d shapes, want %d", len(shapes), c.want)
			}
		})
	}
}

func TestGreedyBoxBuilderGeometry(t *testing.T) {
	block := &tileBlock{w: 2, h: 2, tiles: []int{
		1, 1,
		1, 1,
	}}
	shapes := buildShapes(t, GreedyBoxBuilder{}, block)
	if len(shapes) != 1 {
		t.Fatalf("got %d shapes, want 1", len(shapes))
	}
	bb := shapes[0].CacheBB()
	if bb.L != 0 || bb.B != 0 || bb.R != 32 || bb.T != 32 {
		t.Fatalf("merged box bb = %+v, want 0,0,32,32", bb)
	}
}

package collider

import "github.com/jakecoffman/cp"

// Tile values shared with the map format: 0 is empty, 1 solid, 2 hazard,
// 3 and above are tileset-backed solids.
const (
	TileEmpty  = 0
	TileSolid  = 1
	TileHazard = 2
)

// Collision types assigned to shapes emitted by the stock builders.
const (
	CollisionTypeSolid cp.CollisionType = iota + 1
	CollisionTypeHazard
)

const tileFriction = 0.8

// BoxBuilder emits one box per solid tile and a triangular sensor per
// hazard tile. Simple and predictable; prefer GreedyBoxBuilder when the
// shape count matters.
type BoxBuilder struct{}

func (BoxBuilder) Build(pass *BuildPass, block Block, cellSize cp.Vector) {
	w, h := block.Size()
	origin := block.Origin()
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			v := block.TileAt(x, y)
			if v == TileEmpty {
				continue
			}
			x0 := origin.X + float64(x)*cellSize.X
			y0 := origin.Y + float64(y)*cellSize.Y
			if v == TileHazard {
				pass.AddShape(hazardTriangle(pass.Body(), x0, y0, cellSize))
				continue
			}
			bb := cp.BB{L: x0, B: y0, R: x0 + cellSize.X, T: y0 + cellSize.Y}
			pass.AddShape(solidBox(pass.Body(), bb))
		}
	}
}

// GreedyBoxBuilder merges contiguous solid tiles within a block into
// larger boxes so the physics body carries fewer shapes. Hazard tiles
// remain individual sensor triangles and break up merged rectangles.
type GreedyBoxBuilder struct{}

func (GreedyBoxBuilder) Build(pass *BuildPass, block Block, cellSize cp.Vector) {
	bw, bh := block.Size()
	origin := block.Origin()
	processed := make([]bool, bw*bh)

	for y := 0; y < bh; y++ {
		for x := 0; x < bw; x++ {
			idx := y*bw + x
			if processed[idx] {
				continue
			}
			v := block.TileAt(x, y)
			if v == TileEmpty {
				processed[idx] = true
				continue
			}

			x0 := origin.X + float64(x)*cellSize.X
			y0 := origin.Y + float64(y)*cellSize.Y

			if v == TileHazard {
				pass.AddShape(hazardTriangle(pass.Body(), x0, y0, cellSize))
				processed[idx] = true
				continue
			}

			// Expand a rectangle of solid tiles, width first, then height.
			w := 1
			for x+w < bw {
				idx2 := y*bw + (x + w)
				v2 := block.TileAt(x+w, y)
				if processed[idx2] || v2 == TileEmpty || v2 == TileHazard {
					break
				}
				w++
			}

			h := 1
		heightLoop:
			for y+h < bh {
				for xi := x; xi < x+w; xi++ {
					idx2 := (y+h)*bw + xi
					v2 := block.TileAt(xi, y+h)
					if processed[idx2] || v2 == TileEmpty || v2 == TileHazard {
						break heightLoop
					}
				}
				h++
			}

			bb := cp.BB{
				L: x0,
				B: y0,
				R: x0 + float64(w)*cellSize.X,
				T: y0 + float64(h)*cellSize.Y,
			}
			pass.AddShape(solidBox(pass.Body(), bb))

			for yy := y; yy < y+h; yy++ {
				for xx := x; xx < x+w; xx++ {
					processed[yy*bw+xx] = true
				}
			}
		}
	}
}

func solidBox(body *cp.Body, bb cp.BB) *cp.Shape {
	shape := cp.NewBox2(body, bb, 0)
	shape.SetFriction(tileFriction)
	shape.SetCollisionType(CollisionTypeSolid)
	return shape
}

func hazardTriangle(body *cp.Body, x0, y0 float64, cellSize cp.Vector) *cp.Shape {
	verts := []cp.Vector{
		{X: x0, Y: y0 + cellSize.Y},
		{X: x0 + cellSize.X, Y: y0 + cellSize.Y},
		{X: x0 + cellSize.X/2.0, Y: y0},
	}
	shape := cp.NewPolyShapeRaw(body, 3, verts, 0)
	shape.SetSensor(true)
	shape.SetCollisionType(CollisionTypeHazard)
	return shape
}

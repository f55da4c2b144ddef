package collider

import (
	"fmt"
	"log"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
	"github.com/jakecoffman/cp"
)

// ScriptBuilder runs a tengo script per block to decide which shapes the
// block emits. The script reads the __block global:
//
//	__block.width, __block.height   block extent in tiles
//	__block.tiles                   row-major tile values
//	__block.origin_x, __block.origin_y
//	__block.cell_w, __block.cell_h
//
// and assigns __shapes to an array of shape maps:
//
//	__shapes = [{kind: "box", l: x0, b: y0, r: x1, t: y1}]
//
// A box may carry sensor: true. kind "triangle" with tile-local x/y
// emits the stock hazard sensor for that cell. Script failures are
// logged and the block emits nothing.
type ScriptBuilder struct {
	compiled *tengo.Compiled
}

func NewScriptBuilder(src []byte) (*ScriptBuilder, error) {
	script := tengo.NewScript(src)
	_ = script.Add("__block", map[string]interface{}{})
	_ = script.Add("__shapes", []interface{}{})
	script.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))

	compiled, err := script.Compile()
	if err != nil {
		return nil, fmt.Errorf("collider: compile shape script: %w", err)
	}
	return &ScriptBuilder{compiled: compiled}, nil
}

func (sb *ScriptBuilder) Build(pass *BuildPass, block Block, cellSize cp.Vector) {
	w, h := block.Size()
	tiles := make([]interface{}, 0, w*h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			tiles = append(tiles, block.TileAt(x, y))
		}
	}
	origin := block.Origin()

	run := sb.compiled.Clone()
	err := run.Set("__block", map[string]interface{}{
		"width":    w,
		"height":   h,
		"tiles":    tiles,
		"origin_x": origin.X,
		"origin_y": origin.Y,
		"cell_w":   cellSize.X,
		"cell_h":   cellSize.Y,
	})
	if err == nil {
		err = run.Run()
	}
	if err != nil {
		log.Printf("collider: block %v shape script: %v", block.Coord(), err)
		return
	}

	for _, raw := range run.Get("__shapes").Array() {
		spec, ok := raw.(map[string]interface{})
		if !ok {
			continue
		}
		switch spec["kind"] {
		case "box":
			bb := cp.BB{
				L: scriptFloat(spec["l"]),
				B: scriptFloat(spec["b"]),
				R: scriptFloat(spec["r"]),
				T: scriptFloat(spec["t"]),
			}
			shape := solidBox(pass.Body(), bb)
			if sensor, _ := spec["sensor"].(bool); sensor {
				shape.SetSensor(true)
			}
			pass.AddShape(shape)
		case "triangle":
			x0 := origin.X + scriptFloat(spec["x"])*cellSize.X
			y0 := origin.Y + scriptFloat(spec["y"])*cellSize.Y
			pass.AddShape(hazardTriangle(pass.Body(), x0, y0, cellSize))
		}
	}
}

// scriptFloat coerces tengo numbers, which surface as int64 or float64.
func scriptFloat(v interface{}) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case int64:
		return float64(n)
	case int:
		return float64(n)
	}
	return 0
}

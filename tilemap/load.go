package tilemap

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// MapFile is the on-disk YAML representation of a grid.
type MapFile struct {
	Width     int     `yaml:"width"`
	Height    int     `yaml:"height"`
	CellW     float64 `yaml:"cell_w"`
	CellH     float64 `yaml:"cell_h"`
	BlockSize int     `yaml:"block_size,omitempty"`
	Layers    []Layer `yaml:"layers"`
}

const defaultCellSize = 16

// Parse builds a Grid from YAML map data.
func Parse(data []byte) (*Grid, error) {
	var mf MapFile
	if err := yaml.Unmarshal(data, &mf); err != nil {
		return nil, fmt.Errorf("tilemap: unmarshal map: %w", err)
	}
	cellW := mf.CellW
	if cellW <= 0 {
		cellW = defaultCellSize
	}
	cellH := mf.CellH
	if cellH <= 0 {
		cellH = cellW
	}
	return NewGrid(mf.Width, mf.Height, cellW, cellH, mf.BlockSize, mf.Layers)
}

// Load reads and parses the YAML map at path.
func Load(path string) (*Grid, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("tilemap: load %s: %w", path, err)
	}
	return Parse(data)
}

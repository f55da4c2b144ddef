package maps

import (
	"embed"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

//go:embed *.yaml
var MapsFS embed.FS

// Load returns a named sample map, preferring an on-disk copy under
// maps/ so edits are picked up without rebuilding.
func Load(name string) ([]byte, error) {
	clean := cleanPath(name)
	if data, err := os.ReadFile(filepath.Join("maps", filepath.FromSlash(clean))); err == nil {
		return data, nil
	}
	data, err := MapsFS.ReadFile(clean)
	if err != nil {
		return nil, fmt.Errorf("maps: read %s: %w", name, err)
	}
	return data, nil
}

func cleanPath(path string) string {
	s := filepath.ToSlash(path)
	s = strings.TrimPrefix(s, "maps/")
	if !strings.HasSuffix(s, ".yaml") && !strings.HasSuffix(s, ".yml") {
		s += ".yaml"
	}
	return s
}

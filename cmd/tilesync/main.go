package main

import (
	"flag"
	"log"
	"os"
	"path/filepath"

	"github.com/jakecoffman/cp"

	"github.com/hollowgrove/tilesync/collider"
	"github.com/hollowgrove/tilesync/maps"
	"github.com/hollowgrove/tilesync/tilemap"
)

func main() {
	mapName := flag.String("map", "demo", "map name in maps/ or a path to a YAML map file")
	watch := flag.Bool("watch", false, "watch the map file and re-sync on change")
	script := flag.String("script", "", "tengo shape script path (default: greedy box builder)")
	perTile := flag.Bool("per-tile", false, "emit one box per tile instead of merging")
	flag.Parse()

	data, path, err := readMap(*mapName)
	if err != nil {
		log.Fatal(err)
	}
	grid, err := tilemap.Parse(data)
	if err != nil {
		log.Fatal(err)
	}

	builder, err := chooseBuilder(*script, *perTile)
	if err != nil {
		log.Fatal(err)
	}

	space := cp.NewSpace()
	owner := collider.NewSpaceShapes(space)
	syncer := collider.NewSynchronizer(builder)

	changed := syncer.Update(grid, owner)
	log.Printf("synced %s: %d shapes across %d blocks (changed=%v)",
		*mapName, syncer.ShapeCount(), syncer.BlockCount(), changed)

	if !*watch {
		return
	}
	if path == "" {
		log.Fatal("cannot watch an embedded map; pass a file path via -map")
	}

	watcher, err := tilemap.NewWatcher(filepath.Dir(path))
	if err != nil {
		log.Fatal(err)
	}
	defer watcher.Close()

	for {
		select {
		case name, ok := <-watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(name) != filepath.Clean(path) {
				continue
			}
			next, err := tilemap.Load(path)
			if err != nil {
				log.Printf("reload %s: %v", path, err)
				continue
			}
			grid.ApplyFrom(next)
			if syncer.Update(grid, owner) {
				log.Printf("re-synced %s: %d shapes across %d blocks (collision data changed)",
					path, syncer.ShapeCount(), syncer.BlockCount())
			} else {
				log.Printf("re-synced %s: no collision changes", path)
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			log.Printf("watch error: %v", err)
		}
	}
}

// readMap tries the argument as a file path first, then as an embedded
// sample map name. The returned path is empty for embedded maps.
func readMap(name string) ([]byte, string, error) {
	if data, err := os.ReadFile(name); err == nil {
		return data, name, nil
	}
	data, err := maps.Load(name)
	return data, "", err
}

func chooseBuilder(scriptPath string, perTile bool) (collider.Builder, error) {
	if scriptPath != "" {
		src, err := os.ReadFile(scriptPath)
		if err != nil {
			return nil, err
		}
		return collider.NewScriptBuilder(src)
	}
	if perTile {
		return collider.BoxBuilder{}, nil
	}
	return collider.GreedyBoxBuilder{}, nil
}

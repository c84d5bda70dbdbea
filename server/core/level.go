package core

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/kreimnitz/SideScroller/shared/leveldata"
)

// LoadArena reads a TMX arena from path, or returns the built-in arena when
// path is empty.
func LoadArena(path string) (*leveldata.Arena, error) {
	if path == "" {
		return leveldata.Default(), nil
	}
	arena, err := leveldata.LoadArena(os.DirFS(filepath.Dir(path)), filepath.Base(path))
	if err != nil {
		return nil, fmt.Errorf("load arena: %w", err)
	}
	log.Printf("[server] loaded arena %q: %d solids, %d spawns",
		arena.Name, len(arena.Solids), len(arena.Spawns))
	return arena, nil
}

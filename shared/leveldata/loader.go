package leveldata

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"

	"github.com/kreimnitz/SideScroller/shared/gamemath"
	"github.com/lafriks/go-tiled"
)

// Object group names read from TMX files.
const (
	groupSolids      = "Solids"
	groupPlayerSpawn = "PlayerSpawn"
	groupPistolSpawn = "PistolSpawn"
)

// LoadArena parses a TMX file into an Arena. It takes an fs.FS so callers
// can pass embed.FS or os.DirFS. Coordinates are converted to fixed-point
// once here; the simulation never sees floats.
func LoadArena(fsys fs.FS, tmxPath string) (*Arena, error) {
	levelMap, err := tiled.LoadFile(tmxPath, tiled.WithFileSystem(fsys))
	if err != nil {
		return nil, fmt.Errorf("load TMX %s: %w", tmxPath, err)
	}

	arena := &Arena{
		Name:   strings.TrimSuffix(filepath.Base(tmxPath), ".tmx"),
		Width:  gamemath.FromInt(levelMap.Width * levelMap.TileWidth),
		Height: gamemath.FromInt(levelMap.Height * levelMap.TileHeight),
	}

	pistolFound := false
	for _, og := range levelMap.ObjectGroups {
		switch og.Name {
		case groupSolids:
			for _, o := range og.Objects {
				arena.Solids = append(arena.Solids, Solid{
					Name: o.Name,
					Rect: gamemath.Rect{
						Pos:  vecOf(o.X, o.Y),
						Size: vecOf(o.Width, o.Height),
					},
				})
			}
		case groupPlayerSpawn:
			for _, o := range og.Objects {
				arena.Spawns = append(arena.Spawns, SpawnPoint{
					Pos:         vecOf(o.X, o.Y),
					FacingRight: o.Properties.GetString("facing") != "left",
					Index:       o.Properties.GetInt("spawnIndex"),
				})
			}
		case groupPistolSpawn:
			if len(og.Objects) > 0 {
				arena.PistolSpawn = vecOf(og.Objects[0].X, og.Objects[0].Y)
				pistolFound = true
			}
		}
	}
	if !pistolFound {
		return nil, fmt.Errorf("load TMX %s: no %s object", tmxPath, groupPistolSpawn)
	}

	// Spawn index decides which player slot gets which spawn.
	sort.SliceStable(arena.Spawns, func(i, j int) bool {
		return arena.Spawns[i].Index < arena.Spawns[j].Index
	})

	return arena, nil
}

func vecOf(x, y float64) gamemath.Vec {
	return gamemath.Vec{X: gamemath.FromFloat(x), Y: gamemath.FromFloat(y)}
}

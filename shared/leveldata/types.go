// Package leveldata describes arenas shared between client and server: the
// static solids, fighter spawns and the pistol spawn. Arenas are either the
// built-in default or parsed from a TMX file.
package leveldata

import "github.com/kreimnitz/SideScroller/shared/gamemath"

// Arena holds everything needed to build a match.
type Arena struct {
	Name        string
	Width       gamemath.Fix
	Height      gamemath.Fix
	Solids      []Solid
	Spawns      []SpawnPoint
	PistolSpawn gamemath.Vec
}

// Solid is an immovable box such as a floor or wall.
type Solid struct {
	Name string
	Rect gamemath.Rect
}

// SpawnPoint is a fighter's initial top-left corner and facing.
type SpawnPoint struct {
	Pos         gamemath.Vec
	FacingRight bool
	Index       int
}

package leveldata

import "github.com/kreimnitz/SideScroller/shared/gamemath"

// Default returns the built-in arena: a floor spanning the screen and two
// walls, fighters spawning near either wall facing each other, the pistol
// dropping in from the middle.
func Default() *Arena {
	spawnY := gamemath.FromFloat(619.95)
	return &Arena{
		Name:   "default",
		Width:  gamemath.FromInt(1600),
		Height: gamemath.FromInt(900),
		Solids: []Solid{
			{Name: "floor", Rect: gamemath.Rect{Pos: gamemath.V(-50, 700), Size: gamemath.V(1700, 500)}},
			{Name: "leftWall", Rect: gamemath.Rect{Pos: gamemath.V(-200, -50), Size: gamemath.V(200, 700)}},
			{Name: "rightWall", Rect: gamemath.Rect{Pos: gamemath.V(1600, -50), Size: gamemath.V(200, 700)}},
		},
		Spawns: []SpawnPoint{
			{Pos: gamemath.Vec{X: gamemath.FromInt(135), Y: spawnY}, FacingRight: true, Index: 0},
			{Pos: gamemath.Vec{X: gamemath.FromInt(1410), Y: spawnY}, FacingRight: false, Index: 1},
		},
		PistolSpawn: gamemath.V(650, 0),
	}
}

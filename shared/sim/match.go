package sim

import (
	"fmt"

	"github.com/kreimnitz/SideScroller/shared/gamemath"
	"github.com/kreimnitz/SideScroller/shared/leveldata"
	"github.com/kreimnitz/SideScroller/shared/messages"
	"github.com/kreimnitz/SideScroller/shared/netconfig"
)

// FighterCount is the number of fighters every match simulates.
const FighterCount = 2

// Match is the full rollbackable game state for one arena: two fighters,
// the arena's solids, the pistol and the bullet slot.
type Match struct {
	arena *leveldata.Arena
	mm    *MovementManager
}

// NewMatch builds a match on arena. The arena is validated and the pistol's
// resting height is derived from the floor beneath its spawn.
func NewMatch(arena *leveldata.Arena, params Params) (*Match, error) {
	if err := leveldata.Validate(arena, FighterCount, params.Fighter.Size); err != nil {
		return nil, fmt.Errorf("new match: %w", err)
	}
	restY, err := leveldata.PistolRestY(arena, params.Pistol.Size, params.MinGap)
	if err != nil {
		return nil, fmt.Errorf("new match: %w", err)
	}

	mm := NewMovementManager(params, arena.Width)
	mm.SetPistol(arena.PistolSpawn, restY)
	for _, sp := range arena.Spawns[:FighterCount] {
		mm.AddFighter(sp.Pos, sp.FacingRight)
	}
	for _, s := range arena.Solids {
		mm.AddStatic(s.Rect)
	}
	return &Match{arena: arena, mm: mm}, nil
}

// NewDefaultMatch builds a match on the built-in arena with the active
// tuning.
func NewDefaultMatch() (*Match, error) {
	return NewMatch(leveldata.Default(), DefaultParams())
}

// ApplyInput advances the match one tick. Inputs are padded with empty
// input up to FighterCount. A reset from any player restores the whole
// match before the tick runs.
func (g *Match) ApplyInput(inputs []messages.GameInput, dt gamemath.Fix) {
	padded := make([]messages.GameInput, FighterCount)
	copy(padded, inputs)
	for _, in := range padded {
		if in.Has(netconfig.ActionReset) {
			g.Reset()
			break
		}
	}
	g.mm.AdvanceState(padded, dt)
}

// Reset restores fighters, pistol and bullet to their starting state.
func (g *Match) Reset() {
	g.mm.Reset()
}

// CopyFrom overwrites g with other's state.
func (g *Match) CopyFrom(other *Match) {
	g.arena = other.arena
	if g.mm == nil {
		g.mm = other.mm.Clone()
		return
	}
	g.mm.CopyFrom(other.mm)
}

// Clone returns an independent copy.
func (g *Match) Clone() *Match {
	c := &Match{}
	c.CopyFrom(g)
	return c
}

func (g *Match) Arena() *leveldata.Arena {
	return g.arena
}

// Manager exposes the underlying bodies for presentation and tests.
func (g *Match) Manager() *MovementManager {
	return g.mm
}

// State returns a deep copy of every simulated value.
func (g *Match) State() State {
	return g.mm.State()
}

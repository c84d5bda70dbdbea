package leveldata

import (
	"errors"
	"fmt"

	"github.com/kreimnitz/SideScroller/shared/gamemath"
	"github.com/solarlune/resolv"
)

var (
	ErrMissingSpawns = errors.New("arena needs at least two spawn points")
	ErrSpawnOverlap  = errors.New("spawn overlaps a solid")
	ErrNoPistolFloor = errors.New("no solid below the pistol spawn")
)

const (
	tagSolid  = "solid"
	tagProbe  = "probe"
	cellSize  = 16
	spaceEdge = 32.0
)

// collisionSpace is a resolv.Space over the arena's solids, translated so
// every coordinate is non-negative.
type collisionSpace struct {
	space          *resolv.Space
	originX        float64
	originY        float64
	height         float64
	arena          *Arena
	solidsByObject map[*resolv.Object]int
}

func newCollisionSpace(a *Arena) *collisionSpace {
	minX, minY := a.PistolSpawn.X.Float64(), a.PistolSpawn.Y.Float64()
	maxX, maxY := minX, minY
	grow := func(r gamemath.Rect) {
		p, q := r.Pos, r.Max()
		minX = min(minX, p.X.Float64())
		minY = min(minY, p.Y.Float64())
		maxX = max(maxX, q.X.Float64())
		maxY = max(maxY, q.Y.Float64())
	}
	for _, s := range a.Solids {
		grow(s.Rect)
	}
	for _, sp := range a.Spawns {
		grow(gamemath.Rect{Pos: sp.Pos})
	}

	cs := &collisionSpace{
		originX:        minX - spaceEdge,
		originY:        minY - spaceEdge,
		height:         maxY - minY + 2*spaceEdge,
		arena:          a,
		solidsByObject: make(map[*resolv.Object]int, len(a.Solids)),
	}
	width := maxX - minX + 2*spaceEdge
	cs.space = resolv.NewSpace(int(width)+cellSize, int(cs.height)+cellSize, cellSize, cellSize)

	for i, s := range a.Solids {
		obj := cs.object(s.Rect, tagSolid)
		cs.space.Add(obj)
		cs.solidsByObject[obj] = i
	}
	return cs
}

func (cs *collisionSpace) object(r gamemath.Rect, tags ...string) *resolv.Object {
	w, h := r.Size.X.Float64(), r.Size.Y.Float64()
	obj := resolv.NewObject(r.Pos.X.Float64()-cs.originX, r.Pos.Y.Float64()-cs.originY, w, h, tags...)
	obj.SetShape(resolv.NewRectangle(0, 0, w, h))
	return obj
}

// overlapping returns the indices of solids strictly overlapping r.
func (cs *collisionSpace) overlapping(r gamemath.Rect) []int {
	probe := cs.object(r, tagProbe)
	cs.space.Add(probe)
	defer cs.space.Remove(probe)

	check := probe.Check(0, 0, tagSolid)
	if check == nil {
		return nil
	}
	var hits []int
	for _, o := range check.ObjectsByTags(tagSolid) {
		idx := cs.solidsByObject[o]
		// Narrow phase in fixed-point; the broad phase above is only cell based.
		if cs.arena.Solids[idx].Rect.Intersects(r) {
			hits = append(hits, idx)
		}
	}
	return hits
}

// Validate checks that the arena has a spawn for every player and that no
// fighter spawns inside a solid.
func Validate(a *Arena, players int, fighterSize gamemath.Vec) error {
	if len(a.Spawns) < players || len(a.Spawns) < 2 {
		return fmt.Errorf("arena %s: %w (have %d)", a.Name, ErrMissingSpawns, len(a.Spawns))
	}
	cs := newCollisionSpace(a)
	for _, sp := range a.Spawns {
		hits := cs.overlapping(gamemath.Rect{Pos: sp.Pos, Size: fighterSize})
		if len(hits) > 0 {
			return fmt.Errorf("arena %s: spawn %d: %w %q", a.Name, sp.Index, ErrSpawnOverlap, a.Solids[hits[0]].Name)
		}
	}
	return nil
}

// PistolRestY finds the highest solid surface under the pistol spawn and
// returns the Y at which an unwielded pistol of the given size settles,
// gap units above that surface.
func PistolRestY(a *Arena, pistolSize gamemath.Vec, gap gamemath.Fix) (gamemath.Fix, error) {
	cs := newCollisionSpace(a)
	bottom := a.PistolSpawn.Y + pistolSize.Y
	column := gamemath.Rect{
		Pos:  gamemath.Vec{X: a.PistolSpawn.X, Y: bottom},
		Size: gamemath.Vec{X: pistolSize.X, Y: gamemath.FromFloat(cs.height)},
	}
	found := false
	var top gamemath.Fix
	for _, idx := range cs.overlapping(column) {
		y := a.Solids[idx].Rect.Pos.Y
		if y < bottom {
			continue
		}
		if !found || y < top {
			top = y
			found = true
		}
	}
	if !found {
		return 0, fmt.Errorf("arena %s: %w", a.Name, ErrNoPistolFloor)
	}
	return top - pistolSize.Y - gap, nil
}

package sim

import (
	"log"

	"github.com/kreimnitz/SideScroller/shared/gamemath"
	"github.com/kreimnitz/SideScroller/shared/netconfig"
)

// CollisionInfo is the result of one pairwise sweep: A is always a fighter.
type CollisionInfo struct {
	Time  gamemath.Fix
	A, B  Handle
	ASide netconfig.Side
	BSide netconfig.Side
}

// CheckCollision sweeps fighter a against body b over dt and reports the
// first contact. Bodies already touching report an immediate contact on the
// axis with the smaller penetration.
func (m *MovementManager) CheckCollision(a, b Handle, dt gamemath.Fix) (CollisionInfo, bool) {
	ab, bb := m.Body(a), m.Body(b)
	vDif := bb.Vel.Sub(ab.Vel)
	if vDif.IsZero() {
		return CollisionInfo{}, false
	}
	aMin, aMax := ab.Pos, ab.Max()
	bMin, bMax := bb.Pos, bb.Max()
	if vDif.X == 0 && (aMin.X > bMax.X || bMin.X > aMax.X) {
		return CollisionInfo{}, false
	}
	if vDif.Y == 0 && (aMin.Y > bMax.Y || bMin.Y > aMax.Y) {
		return CollisionInfo{}, false
	}

	if ab.Hitbox().Touches(bb.Hitbox()) {
		return immediateContact(a, b, aMin, aMax, bMin, bMax), true
	}

	first := [2]gamemath.Fix{}
	last := [2]gamemath.Fix{gamemath.MaxFix, gamemath.MaxFix}
	for axis := gamemath.AxisX; axis <= gamemath.AxisY; axis++ {
		v := vDif.Axis(axis)
		lo, hi := aMin.Axis(axis), aMax.Axis(axis)
		otherLo, otherHi := bMin.Axis(axis), bMax.Axis(axis)
		switch {
		case v < 0:
			if otherHi < lo {
				return CollisionInfo{}, false
			}
			if hi < otherLo {
				first[axis] = (hi - otherLo).Div(v)
			}
			if otherHi > lo {
				last[axis] = (lo - otherHi).Div(v)
			}
		case v > 0:
			if otherLo > hi {
				return CollisionInfo{}, false
			}
			if otherHi < lo {
				first[axis] = (lo - otherHi).Div(v)
			}
			if hi > otherLo {
				last[axis] = (hi - otherLo).Div(v)
			}
		}
	}

	if first[gamemath.AxisX] > dt || first[gamemath.AxisY] > dt {
		return CollisionInfo{}, false
	}
	if gamemath.Max(first[0], first[1]) > gamemath.Min(last[0], last[1]) {
		return CollisionInfo{}, false
	}

	info := CollisionInfo{A: a, B: b}
	if first[gamemath.AxisX] < first[gamemath.AxisY] {
		info.Time = first[gamemath.AxisY]
		info.ASide, info.BSide = netconfig.SideBottom, netconfig.SideTop
		if vDif.Y > 0 {
			info.ASide, info.BSide = netconfig.SideTop, netconfig.SideBottom
		}
	} else {
		info.Time = first[gamemath.AxisX]
		info.ASide, info.BSide = netconfig.SideRight, netconfig.SideLeft
		if vDif.X > 0 {
			info.ASide, info.BSide = netconfig.SideLeft, netconfig.SideRight
		}
	}
	return info, true
}

func immediateContact(a, b Handle, aMin, aMax, bMin, bMax gamemath.Vec) CollisionInfo {
	penX := gamemath.Min(aMax.X, bMax.X) - gamemath.Max(aMin.X, bMin.X)
	penY := gamemath.Min(aMax.Y, bMax.Y) - gamemath.Max(aMin.Y, bMin.Y)
	info := CollisionInfo{A: a, B: b}
	if penX <= penY {
		info.ASide, info.BSide = netconfig.SideLeft, netconfig.SideRight
		if aMin.X < bMin.X {
			info.ASide, info.BSide = netconfig.SideRight, netconfig.SideLeft
		}
	} else {
		info.ASide, info.BSide = netconfig.SideTop, netconfig.SideBottom
		if aMin.Y < bMin.Y {
			info.ASide, info.BSide = netconfig.SideBottom, netconfig.SideTop
		}
	}
	return info
}

// firstCollisions returns every contact tied for the earliest time within
// dt. Pairs are visited in a fixed order: each fighter against the statics,
// then against the fighters registered after it.
func (m *MovementManager) firstCollisions(dt gamemath.Fix) []CollisionInfo {
	var out []CollisionInfo
	consider := func(a, b Handle) {
		c, ok := m.CheckCollision(a, b, dt)
		if !ok {
			return
		}
		switch {
		case len(out) == 0 || c.Time < out[0].Time:
			out = append(out[:0], c)
		case c.Time == out[0].Time:
			out = append(out, c)
		}
	}
	for i := range m.fighters {
		a := m.fighters[i].Handle
		for _, s := range m.statics {
			consider(a, s)
		}
		for j := i + 1; j < len(m.fighters); j++ {
			consider(a, m.fighters[j].Handle)
		}
	}
	return out
}

// updateFighterPositions sweeps the fighters through dt, stopping at each
// batch of simultaneous contacts to resolve them. If contacts are still
// pending after MaxCollisionLoops batches the fighters are put back at their
// spawns for this tick.
func (m *MovementManager) updateFighterPositions(dt gamemath.Fix) {
	remaining := dt
	collisions := m.firstCollisions(remaining)
	loops := 0
	for len(collisions) > 0 && loops < m.params.MaxCollisionLoops {
		loops++
		t := collisions[0].Time
		m.advanceFighters(t)
		for _, c := range collisions {
			m.resolveCollision(c)
		}
		remaining -= t
		collisions = m.firstCollisions(remaining)
	}
	if len(collisions) > 0 {
		log.Printf("[sim] collision loop did not settle after %d iterations, resetting fighters", loops)
		m.resetFighterPhysics()
		return
	}
	m.advanceFighters(remaining)
}

func (m *MovementManager) resetFighterPhysics() {
	for i := range m.fighters {
		b := m.Body(m.fighters[i].Handle)
		b.resetPhysics()
		b.Acc = gamemath.Vec{Y: m.params.Fighter.Gravity}
	}
}

func (m *MovementManager) resolveCollision(c CollisionInfo) {
	a, b := m.Body(c.A), m.Body(c.B)
	m.ensureGap(a, b, c.ASide, c.BSide)

	axis := sideAxis(c.ASide)
	switch {
	case b.AnchoredOn(axis):
		a.Vel = a.Vel.WithAxis(axis, 0)
		a.AddAnchor(c.B, c.ASide)
	case a.AnchoredOn(axis):
		b.Vel = b.Vel.WithAxis(axis, 0)
		b.AddAnchor(c.A, c.BSide)
	default:
		avg := (a.Vel.Axis(axis) + b.Vel.Axis(axis)).Mul(gamemath.Half)
		a.Vel = a.Vel.WithAxis(axis, avg)
		b.Vel = b.Vel.WithAxis(axis, avg)
	}

	m.behaviorOf(c.A).onCollision(m, c.ASide, c.B)
	m.behaviorOf(c.B).onCollision(m, c.BSide, c.A)
}

// ensureGap pushes the two bodies MinGap apart along the contact normal.
// A body already held on the side it would be pushed toward stays put.
func (m *MovementManager) ensureGap(a, b *Body, aSide, bSide netconfig.Side) {
	if !a.IsSideAnchored(bSide) {
		a.nudge(aSide, m.params.MinGap)
	}
	if !b.IsSideAnchored(aSide) {
		b.nudge(bSide, m.params.MinGap)
	}
}

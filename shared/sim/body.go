package sim

import (
	"github.com/kreimnitz/SideScroller/shared/gamemath"
	"github.com/kreimnitz/SideScroller/shared/netconfig"
)

// Handle identifies a body inside its MovementManager. Handles are stable
// for the life of the manager and survive Clone/CopyFrom.
type Handle int

// NoHandle marks an empty anchor slot.
const NoHandle Handle = -1

// Kind selects which behavior a body plugs into the tick.
type Kind int

const (
	KindStatic Kind = iota
	KindFighter
	KindPistol
	KindBullet
)

// Body holds the physics fields shared by every kind. Variant state lives in
// the manager's per-kind slots, indexed by Slot.
type Body struct {
	Kind       Kind
	Slot       int
	Pos        gamemath.Vec
	Vel        gamemath.Vec
	Acc        gamemath.Vec
	Size       gamemath.Vec
	VelCap     gamemath.Vec
	Anchored   bool
	InitialPos gamemath.Vec

	// anchors[side] is the body resting against that side.
	anchors [netconfig.SideCount]Handle
}

func newBody(kind Kind, slot int, pos, size gamemath.Vec, anchored bool) Body {
	b := Body{
		Kind:       kind,
		Slot:       slot,
		Pos:        pos,
		Size:       size,
		VelCap:     gamemath.Vec{X: gamemath.MaxFix, Y: gamemath.MaxFix},
		Anchored:   anchored,
		InitialPos: pos,
	}
	b.RemoveAnchors()
	return b
}

// Hitbox returns the body's current rectangle.
func (b *Body) Hitbox() gamemath.Rect {
	return gamemath.Rect{Pos: b.Pos, Size: b.Size}
}

func (b *Body) Max() gamemath.Vec {
	return b.Pos.Add(b.Size)
}

// Anchor returns the body resting against side, if any.
func (b *Body) Anchor(side netconfig.Side) (Handle, bool) {
	h := b.anchors[side]
	return h, h != NoHandle
}

func (b *Body) AddAnchor(other Handle, side netconfig.Side) {
	b.anchors[side] = other
}

func (b *Body) RemoveAnchor(side netconfig.Side) {
	b.anchors[side] = NoHandle
}

func (b *Body) RemoveAnchors() {
	for i := range b.anchors {
		b.anchors[i] = NoHandle
	}
}

// IsSideAnchored reports whether the body cannot be pushed from side.
func (b *Body) IsSideAnchored(side netconfig.Side) bool {
	return b.Anchored || b.anchors[side] != NoHandle
}

func (b *Body) AnchoredX() bool {
	return b.IsSideAnchored(netconfig.SideLeft) || b.IsSideAnchored(netconfig.SideRight)
}

func (b *Body) AnchoredY() bool {
	return b.IsSideAnchored(netconfig.SideTop) || b.IsSideAnchored(netconfig.SideBottom)
}

// AnchoredOn reports whether velocity on axis is tied to another body.
func (b *Body) AnchoredOn(axis gamemath.Axis) bool {
	if axis == gamemath.AxisX {
		return b.AnchoredX()
	}
	return b.AnchoredY()
}

// Overlaps reports whether the two bodies share any extent on axis, edges
// included.
func (b *Body) Overlaps(other *Body, axis gamemath.Axis) bool {
	lo, hi := b.Pos.Axis(axis), b.Max().Axis(axis)
	otherLo, otherHi := other.Pos.Axis(axis), other.Max().Axis(axis)
	return !(hi < otherLo || otherHi < lo)
}

func sideAxis(side netconfig.Side) gamemath.Axis {
	if side.Horizontal() {
		return gamemath.AxisX
	}
	return gamemath.AxisY
}

// updateAnchors drops every anchor whose body started moving along the
// contact axis or slid off on the other axis.
func (b *Body) updateAnchors(m *MovementManager) {
	if b.Anchored {
		return
	}
	for side := netconfig.Side(0); side < netconfig.SideCount; side++ {
		h := b.anchors[side]
		if h == NoHandle {
			continue
		}
		axis := sideAxis(side)
		anchor := m.Body(h)
		if anchor.Vel.Axis(axis) != 0 || !b.Overlaps(anchor, axis.Other()) {
			b.anchors[side] = NoHandle
		}
	}
}

// integrateVelocity applies acceleration, copies anchor velocity on
// anchored axes and clamps to VelCap. Callers refresh anchors first.
func (b *Body) integrateVelocity(m *MovementManager, dt gamemath.Fix) {
	if b.Anchored {
		return
	}
	v := b.Vel.Add(b.Acc.Scale(dt))
	if b.AnchoredX() {
		side := netconfig.SideRight
		if _, ok := b.Anchor(netconfig.SideLeft); ok {
			side = netconfig.SideLeft
		}
		v.X = m.Body(b.anchors[side]).Vel.X
	}
	if b.AnchoredY() {
		side := netconfig.SideBottom
		if _, ok := b.Anchor(netconfig.SideTop); ok {
			side = netconfig.SideTop
		}
		v.Y = m.Body(b.anchors[side]).Vel.Y
	}
	v.X = gamemath.ClampSpeed(v.X, b.VelCap.X)
	v.Y = gamemath.ClampSpeed(v.Y, b.VelCap.Y)
	b.Vel = v
}

func (b *Body) integratePosition(dt gamemath.Fix) {
	if b.Anchored {
		return
	}
	b.Pos = b.Pos.Add(b.Vel.Scale(dt))
}

// resetPhysics puts the body back where it was created, at rest.
func (b *Body) resetPhysics() {
	b.Pos = b.InitialPos
	b.Vel = gamemath.Vec{}
	b.Acc = gamemath.Vec{}
	b.RemoveAnchors()
}

// nudge moves the body dist away from the body touching side.
func (b *Body) nudge(side netconfig.Side, dist gamemath.Fix) {
	switch side {
	case netconfig.SideLeft:
		b.Pos.X += dist
	case netconfig.SideRight:
		b.Pos.X -= dist
	case netconfig.SideTop:
		b.Pos.Y += dist
	case netconfig.SideBottom:
		b.Pos.Y -= dist
	}
}

// behavior is what each body kind plugs into the tick. Implementations get
// the manager explicitly instead of holding a pointer back to it.
type behavior interface {
	updateVelocity(m *MovementManager, dt gamemath.Fix)
	updatePosition(m *MovementManager, dt gamemath.Fix)
	onCollision(m *MovementManager, side netconfig.Side, other Handle)
}

// staticBehavior never moves and ignores contacts.
type staticBehavior struct{}

func (staticBehavior) updateVelocity(*MovementManager, gamemath.Fix) {}
func (staticBehavior) updatePosition(*MovementManager, gamemath.Fix) {}
func (staticBehavior) onCollision(*MovementManager, netconfig.Side, Handle) {}

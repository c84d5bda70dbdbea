package sim

import (
	"github.com/kreimnitz/SideScroller/shared/gamemath"
	"github.com/kreimnitz/SideScroller/shared/netconfig"
)

// Pistol is the single pickup weapon. It holds one shot.
type Pistol struct {
	Handle      Handle
	Loaded      bool
	Wielded     bool
	FacingRight bool

	// RestY is where an unwielded pistol settles on the floor.
	RestY gamemath.Fix
}

func (p *Pistol) reset(m *MovementManager) {
	b := m.Body(p.Handle)
	b.resetPhysics()
	b.Acc = gamemath.Vec{Y: m.params.Pistol.Gravity}
	p.Loaded = true
	p.Wielded = false
	p.FacingRight = true
}

// Shoot fires the one bullet the pistol holds from its muzzle side.
func (p *Pistol) Shoot(m *MovementManager) {
	if !p.Loaded {
		return
	}
	p.Loaded = false
	b := m.Body(p.Handle)
	x := b.Pos.X - m.params.Bullet.Size.X
	if p.FacingRight {
		x = b.Pos.X + b.Size.X
	}
	m.spawnBullet(gamemath.Vec{X: x, Y: b.Pos.Y + m.params.Pistol.ShotYOffset}, p.FacingRight)
}

// carry places the pistol beside the fighter's hand on its facing side.
func (p *Pistol) carry(m *MovementManager, holder *Body, facingRight bool) {
	off := m.params.Fighter.PistolOffset
	b := m.Body(p.Handle)
	x := holder.Pos.X - off.X - b.Size.X
	if facingRight {
		x = holder.Pos.X + holder.Size.X + off.X
	}
	b.Pos = gamemath.Vec{X: x, Y: holder.Pos.Y + off.Y}
	p.FacingRight = facingRight
}

func (p *Pistol) updateVelocity(m *MovementManager, dt gamemath.Fix) {
	if p.Wielded {
		return
	}
	b := m.Body(p.Handle)
	b.updateAnchors(m)
	b.integrateVelocity(m, dt)
}

func (p *Pistol) updatePosition(m *MovementManager, dt gamemath.Fix) {
	if p.Wielded {
		return
	}
	b := m.Body(p.Handle)
	b.integratePosition(dt)
	if b.Pos.Y > p.RestY {
		b.Pos.Y = p.RestY
		b.Vel = gamemath.Vec{}
	}
}

func (p *Pistol) onCollision(*MovementManager, netconfig.Side, Handle) {}

// Bullet is the single projectile slot. Live is false when no bullet is in
// flight; the body keeps its handle either way.
type Bullet struct {
	Handle      Handle
	Live        bool
	FacingRight bool
}

func (bl *Bullet) updateVelocity(*MovementManager, gamemath.Fix) {}

func (bl *Bullet) updatePosition(m *MovementManager, dt gamemath.Fix) {
	if !bl.Live {
		return
	}
	b := m.Body(bl.Handle)
	b.integratePosition(dt)
	margin := m.params.Bullet.DespawnMargin
	if b.Pos.X > m.arenaWidth+margin || b.Pos.X < -margin {
		m.removeBullet()
	}
}

func (bl *Bullet) onCollision(*MovementManager, netconfig.Side, Handle) {}

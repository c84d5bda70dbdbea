package sim

import (
	"github.com/kreimnitz/SideScroller/shared/gamemath"
	"github.com/kreimnitz/SideScroller/shared/messages"
	"github.com/kreimnitz/SideScroller/shared/netconfig"
)

// Fighter is the per-fighter state layered on top of its Body.
type Fighter struct {
	Handle      Handle
	Movement    netconfig.Movement
	Action      netconfig.Action
	FacingRight bool
	HasPistol   bool

	initialFacing bool
	stopping      bool
	sinceJump     gamemath.Fix
	sinceStun     gamemath.Fix
	sinceAttack   gamemath.Fix
	sinceWield    gamemath.Fix
}

func newFighter(h Handle, facingRight bool, p *FighterParams) Fighter {
	f := Fighter{
		Handle:        h,
		initialFacing: facingRight,
	}
	f.resetState(p)
	return f
}

func (f *Fighter) resetState(p *FighterParams) {
	f.Movement = netconfig.Idle
	f.Action = netconfig.ActionStateNone
	f.FacingRight = f.initialFacing
	f.HasPistol = false
	f.stopping = false
	f.sinceJump = 0
	f.sinceStun = p.InitialCooldown
	f.sinceAttack = p.InitialCooldown
	f.sinceWield = p.InitialCooldown
}

// SinceAttack is the simulated time since the fighter last started an attack.
func (f *Fighter) SinceAttack() gamemath.Fix {
	return f.sinceAttack
}

// ApplyInput resolves action transitions first, then movement, then the
// rule that a wall slide cancels a punch.
func (f *Fighter) ApplyInput(m *MovementManager, in messages.GameInput, dt gamemath.Fix) {
	f.setAction(m, in, dt)
	f.setAccelerationAndState(m, in, dt)
	if f.Movement == netconfig.Wallslide && f.Action == netconfig.Punch {
		f.Action = netconfig.ActionStateNone
	}
}

func (f *Fighter) setAction(m *MovementManager, in messages.GameInput, dt gamemath.Fix) {
	p := &m.params.Fighter
	f.sinceAttack += dt
	f.sinceStun += dt
	f.sinceWield += dt

	switch f.Action {
	case netconfig.Dying:
		return
	case netconfig.Stunned:
		if f.sinceStun <= p.StunDuration {
			return
		}
		f.Action = netconfig.ActionStateNone
	}

	if f.Action == netconfig.Punch && f.sinceAttack > p.AttackDuration {
		f.Action = netconfig.ActionStateNone
		return
	}
	if f.sinceAttack > p.AttackCooldown && in.Has(netconfig.ActionAttack) {
		f.sinceAttack = 0
		if !f.HasPistol {
			f.Action = netconfig.Punch
		} else {
			m.pistol.Shoot(m)
		}
	}
}

func (f *Fighter) setAccelerationAndState(m *MovementManager, in messages.GameInput, dt gamemath.Fix) {
	p := &m.params.Fighter
	b := m.Body(f.Handle)
	if f.Action == netconfig.Stunned || f.Action == netconfig.Dying {
		in = 0
	}
	f.sinceJump += dt
	f.stopping = false

	left, right := in.Has(netconfig.ActionMoveLeft), in.Has(netconfig.ActionMoveRight)
	aerial := f.Movement.IsAerial()
	accelY := p.Gravity
	var accelX gamemath.Fix
	groundState := netconfig.Idle

	switch {
	case left && !right:
		b.RemoveAnchor(netconfig.SideRight)
		accelX = -p.RunAccel
		if !aerial {
			groundState = netconfig.Running
			if b.Vel.X > 0 {
				accelX = -p.SkidAccel
				groundState = netconfig.Skidding
			}
		}
	case right && !left:
		b.RemoveAnchor(netconfig.SideLeft)
		accelX = p.RunAccel
		if !aerial {
			groundState = netconfig.Running
			if b.Vel.X < 0 {
				accelX = p.SkidAccel
				groundState = netconfig.Skidding
			}
		}
	case b.Vel.X != 0:
		if gamemath.StepsToward(b.Vel.X, p.CoastAccel, dt) {
			// Snap to rest rather than overshoot past zero.
			f.stopping = true
		} else {
			accelX = p.CoastAccel
			if b.Vel.X > 0 {
				accelX = -p.CoastAccel
			}
			groundState = netconfig.Running
		}
	}

	shouldJump := f.sinceJump > p.JumpCooldown && in.Has(netconfig.ActionJump)
	_, bottomAnchored := b.Anchor(netconfig.SideBottom)
	switch {
	case shouldJump && f.Movement == netconfig.Wallslide:
		f.sinceJump = 0
		f.Movement = netconfig.WallslideJump
		xV, ax := -p.VelocityXMax, -p.RunAccel
		if _, ok := b.Anchor(netconfig.SideLeft); ok {
			xV, ax = p.VelocityXMax, p.RunAccel
		}
		accelX = ax
		b.Vel = gamemath.Vec{X: xV, Y: p.JumpVelocity}
		b.RemoveAnchors()
	case shouldJump && bottomAnchored:
		f.sinceJump = 0
		f.jumpOff(m, b)
		f.Movement = netconfig.Jumping
	}

	if !f.Movement.IsAerial() {
		f.Movement = groundState
	} else if f.Movement == netconfig.Wallslide {
		if b.AnchoredX() {
			drag := -p.SlideDrag
			if b.Vel.Y > 0 {
				drag = p.SlideDrag
			}
			accelY -= drag
		} else {
			f.Movement = netconfig.WallslideJump
		}
	}
	b.Acc = gamemath.Vec{X: accelX, Y: accelY}
}

// jumpOff launches the fighter from its bottom anchor. A fighter jumped on
// is stunned and pushed the opposite way unless something holds it.
func (f *Fighter) jumpOff(m *MovementManager, b *Body) {
	p := &m.params.Fighter
	anchor, _ := b.Anchor(netconfig.SideBottom)
	if other, ok := m.fighterAt(anchor); ok {
		other.Stun(m)
		ob := m.Body(anchor)
		if !ob.AnchoredY() {
			ob.Vel.Y -= p.JumpVelocity
		}
	}
	b.RemoveAnchor(netconfig.SideBottom)
	limit := p.JumpVelocity.Mul(gamemath.FromRatio(3, 2))
	b.Vel.Y = gamemath.Clamp(b.Vel.Y+p.JumpVelocity, limit, -limit)
}

func (f *Fighter) updateVelocity(m *MovementManager, dt gamemath.Fix) {
	b := m.Body(f.Handle)
	if !b.Anchored {
		b.updateAnchors(m)
		if _, ok := b.Anchor(netconfig.SideBottom); !ok {
			b.RemoveAnchor(netconfig.SideTop)
		}
		b.integrateVelocity(m, dt)
	}
	if f.stopping {
		b.Vel.X = 0
		f.stopping = false
	}
	if f.Action != netconfig.Dying {
		if b.Vel.X > 0 {
			f.FacingRight = true
		}
		if b.Vel.X < 0 {
			f.FacingRight = false
		}
	}
}

func (f *Fighter) updatePosition(m *MovementManager, dt gamemath.Fix) {
	b := m.Body(f.Handle)
	b.integratePosition(dt)
	if f.HasPistol {
		m.pistol.carry(m, b, f.FacingRight)
	}
}

func (f *Fighter) onCollision(m *MovementManager, side netconfig.Side, other Handle) {
	if !f.Movement.IsAerial() {
		return
	}
	switch {
	case side == netconfig.SideBottom:
		f.Movement = netconfig.Landing
		m.Body(f.Handle).AddAnchor(other, netconfig.SideBottom)
	case side.Horizontal() && m.Body(other).Anchored:
		f.Movement = netconfig.Wallslide
	}
}

// AttackHitbox is the live punch rectangle, or the zero Rect outside the
// punch window.
func (f *Fighter) AttackHitbox(m *MovementManager) gamemath.Rect {
	p := &m.params.Fighter
	if f.Action != netconfig.Punch || f.sinceAttack > p.PunchWindow {
		return gamemath.Rect{}
	}
	b := m.Body(f.Handle)
	box := p.PunchBox
	offsetX := box.Pos.X
	if !f.FacingRight {
		offsetX = -box.Pos.X - box.Size.X
	}
	return gamemath.Rect{
		Pos:  gamemath.Vec{X: b.Pos.X + offsetX, Y: b.Pos.Y + box.Pos.Y},
		Size: box.Size,
	}
}

// Stun interrupts the fighter unless it was stunned too recently or is
// dying. A held pistol is dropped.
func (f *Fighter) Stun(m *MovementManager) {
	if f.sinceStun <= m.params.Fighter.StunCooldown || f.Action == netconfig.Dying {
		return
	}
	f.Action = netconfig.Stunned
	f.sinceStun = 0
	f.releasePistol(m)
}

func (f *Fighter) releasePistol(m *MovementManager) {
	if f.HasPistol {
		m.pistol.Wielded = false
		f.HasPistol = false
	}
}

// Kill is terminal: no further action or facing changes.
func (f *Fighter) Kill() {
	f.Action = netconfig.Dying
}

// WieldPistol takes the pistol unless the fighter picked one up too
// recently.
func (f *Fighter) WieldPistol(m *MovementManager) bool {
	if f.sinceWield <= m.params.Fighter.WieldCooldown {
		return false
	}
	f.HasPistol = true
	f.sinceWield = 0
	return true
}

// CheckPunches resolves both fighters' live punches against each other.
// When both land, whoever swung more recently wins; an exact tie stuns both.
func CheckPunches(m *MovementManager, f1, f2 *Fighter) {
	hit1 := punchLands(m, f1, f2)
	hit2 := punchLands(m, f2, f1)
	switch {
	case hit1 && hit2:
		switch {
		case f1.sinceAttack == f2.sinceAttack:
			f1.Stun(m)
			f2.Stun(m)
		case f1.sinceAttack > f2.sinceAttack:
			f1.Stun(m)
		default:
			f2.Stun(m)
		}
	case hit1:
		f2.Stun(m)
	case hit2:
		f1.Stun(m)
	}
}

func punchLands(m *MovementManager, attacker, target *Fighter) bool {
	box := attacker.AttackHitbox(m)
	if box.Area() == 0 {
		return false
	}
	return box.Intersection(m.Body(target.Handle).Hitbox()).Area() != 0
}

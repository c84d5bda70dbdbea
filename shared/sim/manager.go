package sim

import (
	"sort"

	"github.com/kreimnitz/SideScroller/shared/gamemath"
	"github.com/kreimnitz/SideScroller/shared/messages"
)

// MovementManager owns every body and runs one tick at a time. All state is
// held by value in slices so Clone and CopyFrom never alias.
type MovementManager struct {
	params     Params
	arenaWidth gamemath.Fix

	bodies   []Body
	statics  []Handle
	fighters []Fighter
	pistol   Pistol
	bullet   Bullet
}

// NewMovementManager creates an empty manager. The bullet slot is reserved
// up front so firing never allocates a handle.
func NewMovementManager(params Params, arenaWidth gamemath.Fix) *MovementManager {
	m := &MovementManager{
		params:     params,
		arenaWidth: arenaWidth,
		pistol:     Pistol{Handle: NoHandle},
	}
	m.bullet.Handle = m.register(newBody(KindBullet, 0, gamemath.Vec{}, params.Bullet.Size, false))
	return m
}

func (m *MovementManager) register(b Body) Handle {
	m.bodies = append(m.bodies, b)
	return Handle(len(m.bodies) - 1)
}

// Params returns the manager's tuning.
func (m *MovementManager) Params() Params {
	return m.params
}

// Body returns the body for h. It panics on an unknown handle.
func (m *MovementManager) Body(h Handle) *Body {
	return &m.bodies[h]
}

// AddStatic registers an immovable box.
func (m *MovementManager) AddStatic(r gamemath.Rect) Handle {
	h := m.register(newBody(KindStatic, len(m.statics), r.Pos, r.Size, true))
	m.statics = append(m.statics, h)
	return h
}

// AddFighter registers a fighter at pos.
func (m *MovementManager) AddFighter(pos gamemath.Vec, facingRight bool) Handle {
	p := &m.params.Fighter
	b := newBody(KindFighter, len(m.fighters), pos, p.Size, false)
	b.Acc = gamemath.Vec{Y: p.Gravity}
	b.VelCap = gamemath.Vec{X: p.VelocityXMax, Y: gamemath.MaxFix}
	h := m.register(b)
	m.fighters = append(m.fighters, newFighter(h, facingRight, p))
	return h
}

// SetPistol registers the pistol at pos, settling at restY.
func (m *MovementManager) SetPistol(pos gamemath.Vec, restY gamemath.Fix) Handle {
	b := newBody(KindPistol, 0, pos, m.params.Pistol.Size, false)
	b.Acc = gamemath.Vec{Y: m.params.Pistol.Gravity}
	h := m.register(b)
	m.pistol = Pistol{Handle: h, Loaded: true, FacingRight: true, RestY: restY}
	return h
}

func (m *MovementManager) FighterCount() int {
	return len(m.fighters)
}

// Fighter returns fighter i in registration order.
func (m *MovementManager) Fighter(i int) *Fighter {
	return &m.fighters[i]
}

func (m *MovementManager) Pistol() *Pistol {
	if m.pistol.Handle == NoHandle {
		return nil
	}
	return &m.pistol
}

// Bullet returns the live bullet, or nil.
func (m *MovementManager) Bullet() *Bullet {
	if !m.bullet.Live {
		return nil
	}
	return &m.bullet
}

func (m *MovementManager) fighterAt(h Handle) (*Fighter, bool) {
	b := m.Body(h)
	if b.Kind != KindFighter {
		return nil, false
	}
	return &m.fighters[b.Slot], true
}

func (m *MovementManager) behaviorOf(h Handle) behavior {
	b := m.Body(h)
	switch b.Kind {
	case KindFighter:
		return &m.fighters[b.Slot]
	case KindPistol:
		return &m.pistol
	case KindBullet:
		return &m.bullet
	}
	return staticBehavior{}
}

func (m *MovementManager) spawnBullet(pos gamemath.Vec, facingRight bool) {
	b := m.Body(m.bullet.Handle)
	b.Pos = pos
	b.InitialPos = pos
	b.Vel = gamemath.Vec{X: -m.params.Bullet.Speed}
	if facingRight {
		b.Vel.X = m.params.Bullet.Speed
	}
	m.bullet.Live = true
	m.bullet.FacingRight = facingRight
}

func (m *MovementManager) removeBullet() {
	m.bullet.Live = false
	m.Body(m.bullet.Handle).resetPhysics()
}

// AdvanceState runs one tick. The step order is fixed: attacks, input,
// velocities, swept fighter movement, pistol and bullet movement, pickup.
// Missing inputs count as nothing pressed.
func (m *MovementManager) AdvanceState(inputs []messages.GameInput, dt gamemath.Fix) {
	m.checkAttacks()
	m.applyInput(inputs, dt)
	m.updateVelocities(dt)
	m.updateFighterPositions(dt)
	m.updatePistolAndBulletPositions(dt)
	m.checkPistol()
}

func (m *MovementManager) applyInput(inputs []messages.GameInput, dt gamemath.Fix) {
	for i := range m.fighters {
		var in messages.GameInput
		if i < len(inputs) {
			in = inputs[i]
		}
		m.fighters[i].ApplyInput(m, in, dt)
	}
}

func (m *MovementManager) updateVelocities(dt gamemath.Fix) {
	for i := range m.fighters {
		m.fighters[i].updateVelocity(m, dt)
	}
	if m.pistol.Handle != NoHandle {
		m.pistol.updateVelocity(m, dt)
	}
}

func (m *MovementManager) updatePistolAndBulletPositions(dt gamemath.Fix) {
	if m.pistol.Handle != NoHandle {
		m.pistol.updatePosition(m, dt)
	}
	m.bullet.updatePosition(m, dt)
}

func (m *MovementManager) advanceFighters(dt gamemath.Fix) {
	for i := range m.fighters {
		m.fighters[i].updatePosition(m, dt)
	}
}

func (m *MovementManager) checkAttacks() {
	for i := range m.fighters {
		for j := i + 1; j < len(m.fighters); j++ {
			CheckPunches(m, &m.fighters[i], &m.fighters[j])
		}
	}
	if !m.bullet.Live {
		return
	}
	bulletBox := m.Body(m.bullet.Handle).Hitbox()
	for i := range m.fighters {
		f := &m.fighters[i]
		if m.Body(f.Handle).Hitbox().Intersects(bulletBox) {
			f.Kill()
			m.removeBullet()
			return
		}
	}
}

// checkPistol hands a free pistol to the overlapping fighter with the
// smallest overlap that is allowed to pick it up.
func (m *MovementManager) checkPistol() {
	if m.pistol.Handle == NoHandle || m.pistol.Wielded {
		return
	}
	type candidate struct {
		fighter *Fighter
		overlap gamemath.Fix
	}
	pistolBox := m.Body(m.pistol.Handle).Hitbox()
	var candidates []candidate
	for i := range m.fighters {
		f := &m.fighters[i]
		area := m.Body(f.Handle).Hitbox().Intersection(pistolBox).Area()
		if area != 0 {
			candidates = append(candidates, candidate{f, area})
		}
	}
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].overlap < candidates[j].overlap
	})
	for _, c := range candidates {
		if c.fighter.WieldPistol(m) {
			m.pistol.Wielded = true
			return
		}
	}
}

// Reset puts every fighter, the pistol and the bullet slot back to their
// initial state in place.
func (m *MovementManager) Reset() {
	for i := range m.fighters {
		f := &m.fighters[i]
		b := m.Body(f.Handle)
		b.resetPhysics()
		b.Acc = gamemath.Vec{Y: m.params.Fighter.Gravity}
		f.resetState(&m.params.Fighter)
	}
	if m.pistol.Handle != NoHandle {
		m.pistol.reset(m)
	}
	m.removeBullet()
}

// Clone returns an independent deep copy.
func (m *MovementManager) Clone() *MovementManager {
	c := &MovementManager{}
	c.CopyFrom(m)
	return c
}

// CopyFrom overwrites m with other's state, reusing m's storage.
func (m *MovementManager) CopyFrom(other *MovementManager) {
	m.params = other.params
	m.arenaWidth = other.arenaWidth
	m.bodies = append(m.bodies[:0], other.bodies...)
	m.statics = append(m.statics[:0], other.statics...)
	m.fighters = append(m.fighters[:0], other.fighters...)
	m.pistol = other.pistol
	m.bullet = other.bullet
}

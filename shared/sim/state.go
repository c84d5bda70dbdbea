package sim

import (
	"encoding/binary"
	"hash"
	"hash/fnv"

	"github.com/kreimnitz/SideScroller/shared/gamemath"
)

// State is a value copy of a manager's simulated fields. Two peers that
// stepped the same inputs produce equal States.
type State struct {
	Bodies   []Body
	Fighters []Fighter
	Pistol   Pistol
	Bullet   Bullet
}

func (m *MovementManager) State() State {
	return State{
		Bodies:   append([]Body(nil), m.bodies...),
		Fighters: append([]Fighter(nil), m.fighters...),
		Pistol:   m.pistol,
		Bullet:   m.bullet,
	}
}

type stateHasher struct {
	buf [8]byte
	sum hash.Hash64
}

func (h *stateHasher) word(v int64) {
	binary.LittleEndian.PutUint64(h.buf[:], uint64(v))
	_, _ = h.sum.Write(h.buf[:])
}

func (h *stateHasher) flag(v bool) {
	if v {
		h.word(1)
	} else {
		h.word(0)
	}
}

func (h *stateHasher) fix(v gamemath.Fix) { h.word(v.Bits()) }

func (h *stateHasher) vec(v gamemath.Vec) {
	h.fix(v.X)
	h.fix(v.Y)
}

// Checksum hashes every field of the state. Replays use it to confirm a
// re-simulation matched the recording peer.
func (s State) Checksum() uint64 {
	sum := fnv.New64a()
	h := &stateHasher{sum: sum}
	for i := range s.Bodies {
		b := &s.Bodies[i]
		h.word(int64(b.Kind))
		h.vec(b.Pos)
		h.vec(b.Vel)
		h.vec(b.Acc)
		h.flag(b.Anchored)
		for _, a := range b.anchors {
			h.word(int64(a))
		}
	}
	for i := range s.Fighters {
		f := &s.Fighters[i]
		h.word(int64(f.Movement))
		h.word(int64(f.Action))
		h.flag(f.FacingRight)
		h.flag(f.HasPistol)
		h.flag(f.stopping)
		h.fix(f.sinceJump)
		h.fix(f.sinceStun)
		h.fix(f.sinceAttack)
		h.fix(f.sinceWield)
	}
	h.flag(s.Pistol.Loaded)
	h.flag(s.Pistol.Wielded)
	h.flag(s.Pistol.FacingRight)
	h.flag(s.Bullet.Live)
	h.flag(s.Bullet.FacingRight)
	return sum.Sum64()
}

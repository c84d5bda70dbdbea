package network

import (
	"github.com/kreimnitz/SideScroller/shared/gamemath"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// CorrectionSmoother turns the jump a rollback causes in the local fighter's
// position into an offset that eases back to zero. It only affects drawing;
// the simulation never sees it.
type CorrectionSmoother struct {
	duration float32
	x, y     *gween.Tween
	offX     float32
	offY     float32
}

func NewCorrectionSmoother(duration float32) *CorrectionSmoother {
	return &CorrectionSmoother{duration: duration}
}

// Correct starts easing out a correction from before to after. A running
// correction is folded into the new one so the drawn position never jumps.
func (s *CorrectionSmoother) Correct(before, after gamemath.Vec) {
	dx := float32((before.X - after.X).Float64()) + s.offX
	dy := float32((before.Y - after.Y).Float64()) + s.offY
	if dx == 0 && dy == 0 {
		return
	}
	s.offX, s.offY = dx, dy
	s.x = gween.New(dx, 0, s.duration, ease.OutQuad)
	s.y = gween.New(dy, 0, s.duration, ease.OutQuad)
}

// Update advances the easing by dt seconds and returns the current offset.
func (s *CorrectionSmoother) Update(dt float32) (float32, float32) {
	if s.x != nil {
		var done bool
		s.offX, done = s.x.Update(dt)
		if done {
			s.x = nil
			s.offX = 0
		}
	}
	if s.y != nil {
		var done bool
		s.offY, done = s.y.Update(dt)
		if done {
			s.y = nil
			s.offY = 0
		}
	}
	return s.offX, s.offY
}

// Offset is the amount to add to the simulated position when drawing.
func (s *CorrectionSmoother) Offset() (float32, float32) {
	return s.offX, s.offY
}

func (s *CorrectionSmoother) Active() bool {
	return s.x != nil || s.y != nil
}

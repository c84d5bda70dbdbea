package sim

import (
	"github.com/kreimnitz/SideScroller/config"
	"github.com/kreimnitz/SideScroller/shared/gamemath"
)

// Params is the fixed-point form of config.Tuning. It is built once when a
// match is created so no float conversion happens during a tick.
type Params struct {
	MinGap            gamemath.Fix
	MaxCollisionLoops int
	Fighter           FighterParams
	Pistol            PistolParams
	Bullet            BulletParams
}

type FighterParams struct {
	Size gamemath.Vec

	VelocityXMax gamemath.Fix
	CoastAccel   gamemath.Fix
	RunAccel     gamemath.Fix
	SkidAccel    gamemath.Fix
	JumpVelocity gamemath.Fix
	Gravity      gamemath.Fix
	SlideDrag    gamemath.Fix

	JumpCooldown    gamemath.Fix
	AttackCooldown  gamemath.Fix
	AttackDuration  gamemath.Fix
	PunchWindow     gamemath.Fix
	StunDuration    gamemath.Fix
	StunCooldown    gamemath.Fix
	WieldCooldown   gamemath.Fix
	InitialCooldown gamemath.Fix

	PunchBox     gamemath.Rect
	PistolOffset gamemath.Vec
}

type PistolParams struct {
	Size        gamemath.Vec
	Gravity     gamemath.Fix
	ShotYOffset gamemath.Fix
}

type BulletParams struct {
	Size          gamemath.Vec
	Speed         gamemath.Fix
	DespawnMargin gamemath.Fix
}

func vec(x, y float64) gamemath.Vec {
	return gamemath.Vec{X: gamemath.FromFloat(x), Y: gamemath.FromFloat(y)}
}

// NewParams converts a tuning to fixed-point.
func NewParams(t config.Tuning) Params {
	f := gamemath.FromFloat
	fc := t.Fighter
	return Params{
		MinGap:            f(t.Physics.MinGap),
		MaxCollisionLoops: t.Physics.MaxCollisionLoops,
		Fighter: FighterParams{
			Size:            vec(fc.Width, fc.Height),
			VelocityXMax:    f(fc.VelocityXMax),
			CoastAccel:      f(fc.CoastAcceleration),
			RunAccel:        f(fc.RunAcceleration),
			SkidAccel:       f(fc.SkidAcceleration),
			JumpVelocity:    f(fc.JumpVelocity),
			Gravity:         f(fc.Gravity),
			SlideDrag:       f(fc.SlideDrag),
			JumpCooldown:    f(fc.JumpCooldown),
			AttackCooldown:  f(fc.AttackCooldown),
			AttackDuration:  f(fc.AttackDuration),
			PunchWindow:     f(fc.PunchWindow),
			StunDuration:    f(fc.StunDuration),
			StunCooldown:    f(fc.StunCooldown),
			WieldCooldown:   f(fc.WieldCooldown),
			InitialCooldown: f(fc.InitialCooldown),
			PunchBox: gamemath.Rect{
				Pos:  vec(fc.PunchOffsetX, fc.PunchOffsetY),
				Size: vec(fc.PunchWidth, fc.PunchHeight),
			},
			PistolOffset: vec(fc.PistolOffsetX, fc.PistolOffsetY),
		},
		Pistol: PistolParams{
			Size:        vec(t.Pistol.Width, t.Pistol.Height),
			Gravity:     f(t.Pistol.Gravity),
			ShotYOffset: f(t.Pistol.ShotYOffset),
		},
		Bullet: BulletParams{
			Size:          vec(t.Bullet.Width, t.Bullet.Height),
			Speed:         f(t.Bullet.Speed),
			DespawnMargin: f(t.Bullet.DespawnMargin),
		},
	}
}

// DefaultParams converts the active tuning.
func DefaultParams() Params {
	return NewParams(config.Current())
}

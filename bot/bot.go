// Package bot produces input for headless clients. A Bot looks at the state
// its client predicts and picks held actions on a fixed reaction delay.
package bot

import (
	"math"
	"math/rand"

	cfg "github.com/kreimnitz/SideScroller/config"
	"github.com/kreimnitz/SideScroller/shared/messages"
	"github.com/kreimnitz/SideScroller/shared/netconfig"
	"github.com/kreimnitz/SideScroller/shared/sim"
)

type State int

const (
	StateIdle State = iota
	StateChase
	StateFetch
	StateAttack
	StateShoot
)

var stateNames = map[State]string{
	StateIdle:   "idle",
	StateChase:  "chase",
	StateFetch:  "fetch",
	StateAttack: "attack",
	StateShoot:  "shoot",
}

func (s State) String() string {
	if name, ok := stateNames[s]; ok {
		return name
	}
	return "unknown"
}

// View returns the match the bot should react to and the slot it controls.
// A negative slot means it is not known yet.
type View func() (*sim.Match, int)

// Bot is a network.InputSource.
type Bot struct {
	cfg  cfg.BotDifficultyConfig
	view View
	rng  *rand.Rand

	state         State
	decisionTimer int
	held          messages.GameInput
	lastX         float64
	stuck         int
}

// New returns a bot of the given difficulty. The same seed and the same
// sequence of views give the same inputs.
func New(difficulty cfg.BotDifficulty, seed int64, view View) *Bot {
	c, ok := cfg.Bot.Difficulties[difficulty]
	if !ok {
		c = cfg.Bot.Difficulties[cfg.BotDifficultyNormal]
	}
	return &Bot{
		cfg:  c,
		view: view,
		rng:  rand.New(rand.NewSource(seed)),
	}
}

func (b *Bot) State() State {
	return b.state
}

// Input holds the last decision until the reaction delay runs out.
func (b *Bot) Input() messages.GameInput {
	g, me := b.view()
	if g == nil || me < 0 || me >= sim.FighterCount {
		return 0
	}
	if b.decisionTimer > 0 {
		b.decisionTimer--
		return b.held
	}
	b.decisionTimer = b.cfg.ReactionDelay

	t := b.observe(g.Manager(), me)
	b.state = b.decide(t)
	b.held = b.inputs(t)
	return b.held
}

// target is what one decision looks at, in pixels.
type target struct {
	self         *sim.Fighter
	x, y         float64
	oppX, oppY   float64
	gap          float64
	oppDown      bool
	pistolFree   bool
	pistolX      float64
	pistolCloser bool
}

func (b *Bot) observe(mm *sim.MovementManager, me int) target {
	self := mm.Fighter(me)
	opp := mm.Fighter(1 - me)
	sb := mm.Body(self.Handle)
	ob := mm.Body(opp.Handle)

	t := target{
		self:    self,
		x:       sb.Pos.X.Float64(),
		y:       sb.Pos.Y.Float64(),
		oppX:    ob.Pos.X.Float64(),
		oppY:    ob.Pos.Y.Float64(),
		oppDown: opp.Action == netconfig.Dying,
	}
	t.gap = math.Max(0, math.Abs(t.oppX-t.x)-sb.Size.X.Float64())

	if p := mm.Pistol(); p != nil && !p.Wielded && p.Loaded && !self.HasPistol {
		t.pistolFree = true
		t.pistolX = mm.Body(p.Handle).Pos.X.Float64()
		t.pistolCloser = math.Abs(t.pistolX-t.x) < math.Abs(t.oppX-t.x)
	}
	return t
}

func (b *Bot) decide(t target) State {
	switch {
	case t.oppDown:
		return StateIdle
	case t.self.HasPistol && t.gap < b.cfg.PistolRange && math.Abs(t.oppY-t.y) < 40:
		return StateShoot
	case t.gap < b.cfg.AttackRange:
		return StateAttack
	case t.pistolFree && t.pistolCloser:
		return StateFetch
	default:
		return StateChase
	}
}

func (b *Bot) inputs(t target) messages.GameInput {
	var in messages.GameInput
	switch b.state {
	case StateChase:
		in = b.approach(t.x, t.oppX)
	case StateFetch:
		in = b.approach(t.x, t.pistolX)
	case StateAttack, StateShoot:
		in = in.Press(netconfig.ActionAttack)
		// Turn first if the opponent is behind.
		if (t.oppX > t.x) != t.self.FacingRight {
			in = in.Union(b.approach(t.x, t.oppX))
		}
	}
	b.lastX = t.x
	return in
}

// approach moves toward x, jumping now and then or when progress stalls.
func (b *Bot) approach(from, to float64) messages.GameInput {
	in := messages.NewGameInput(netconfig.ActionMoveRight)
	if to < from {
		in = messages.NewGameInput(netconfig.ActionMoveLeft)
	}

	if math.Abs(from-b.lastX) < 1 {
		b.stuck++
	} else {
		b.stuck = 0
	}
	if b.stuck > 1 || b.rng.Intn(100) < b.cfg.JumpChance {
		in = in.Press(netconfig.ActionJump)
	}
	return in
}

package sim

import (
	"math/rand"
	"reflect"
	"testing"

	"github.com/kreimnitz/SideScroller/shared/gamemath"
	"github.com/kreimnitz/SideScroller/shared/messages"
	"github.com/kreimnitz/SideScroller/shared/netconfig"
)

var tick = gamemath.FromRatio(1, 60)

func newMatch(t *testing.T) *Match {
	t.Helper()
	g, err := NewDefaultMatch()
	if err != nil {
		t.Fatalf("NewDefaultMatch: %v", err)
	}
	return g
}

// step runs n ticks with player 0 holding in0 and player 1 idle.
func step(g *Match, n int, in0 messages.GameInput) {
	for i := 0; i < n; i++ {
		g.ApplyInput([]messages.GameInput{in0}, tick)
	}
}

func press(actions ...netconfig.ActionID) messages.GameInput {
	return messages.NewGameInput(actions...)
}

func fighterBody(g *Match, i int) *Body {
	return g.Manager().Body(g.Manager().Fighter(i).Handle)
}

func TestFightersSettleOnFloor(t *testing.T) {
	g := newMatch(t)
	step(g, 30, 0)
	for i := 0; i < FighterCount; i++ {
		f, b := g.Manager().Fighter(i), fighterBody(g, i)
		if _, ok := b.Anchor(netconfig.SideBottom); !ok {
			t.Errorf("fighter %d not standing on anything", i)
		}
		if f.Movement != netconfig.Idle {
			t.Errorf("fighter %d movement = %v, want idle", i, f.Movement)
		}
		if !b.Vel.IsZero() {
			t.Errorf("fighter %d velocity = %v", i, b.Vel)
		}
	}
}

func TestRunSkidAndCoast(t *testing.T) {
	g := newMatch(t)
	step(g, 30, 0)
	f, b := g.Manager().Fighter(0), fighterBody(g, 0)
	vmax := g.Manager().Params().Fighter.VelocityXMax

	step(g, 40, press(netconfig.ActionMoveRight))
	if f.Movement != netconfig.Running || !f.FacingRight {
		t.Fatalf("movement = %v facingRight = %v, want running right", f.Movement, f.FacingRight)
	}
	if b.Vel.X != vmax {
		t.Errorf("Vel.X = %v, want capped at %v", b.Vel.X, vmax)
	}

	step(g, 1, press(netconfig.ActionMoveLeft))
	if f.Movement != netconfig.Skidding {
		t.Errorf("movement = %v, want skidding", f.Movement)
	}

	step(g, 90, 0)
	if b.Vel.X != 0 {
		t.Errorf("Vel.X = %v after coasting, want exactly 0", b.Vel.X)
	}
	if f.Movement != netconfig.Idle {
		t.Errorf("movement = %v, want idle", f.Movement)
	}
}

func TestJumpAndLand(t *testing.T) {
	g := newMatch(t)
	step(g, 30, 0)
	f, b := g.Manager().Fighter(0), fighterBody(g, 0)

	step(g, 1, press(netconfig.ActionJump))
	if f.Movement != netconfig.Jumping {
		t.Fatalf("movement = %v, want jumping", f.Movement)
	}
	if b.Vel.Y >= 0 {
		t.Errorf("Vel.Y = %v, want upward", b.Vel.Y)
	}
	if _, ok := b.Anchor(netconfig.SideBottom); ok {
		t.Error("still anchored to the floor after jumping")
	}

	step(g, 90, 0)
	if f.Movement != netconfig.Idle {
		t.Errorf("movement = %v after landing, want idle", f.Movement)
	}
	if _, ok := b.Anchor(netconfig.SideBottom); !ok {
		t.Error("not anchored after landing")
	}
}

func TestWallslideAndWallJump(t *testing.T) {
	g := newMatch(t)
	step(g, 30, 0)
	f, b := g.Manager().Fighter(0), fighterBody(g, 0)

	step(g, 1, press(netconfig.ActionJump, netconfig.ActionMoveLeft))
	for i := 0; i < 60 && f.Movement != netconfig.Wallslide; i++ {
		step(g, 1, press(netconfig.ActionMoveLeft))
	}
	if f.Movement != netconfig.Wallslide {
		t.Fatalf("movement = %v, never reached the wall", f.Movement)
	}
	if _, ok := b.Anchor(netconfig.SideLeft); !ok {
		t.Fatal("wallsliding fighter not anchored to the wall")
	}

	step(g, 1, press(netconfig.ActionJump))
	if f.Movement != netconfig.WallslideJump {
		t.Fatalf("movement = %v, want wallslide jump", f.Movement)
	}
	if want := g.Manager().Params().Fighter.VelocityXMax; b.Vel.X != want {
		t.Errorf("Vel.X = %v, want %v away from the wall", b.Vel.X, want)
	}
	if !f.FacingRight {
		t.Error("fighter should face away from the wall")
	}
}

func TestStunnedFighterIgnoresInput(t *testing.T) {
	g := newMatch(t)
	step(g, 30, 0)
	f, b := g.Manager().Fighter(0), fighterBody(g, 0)
	f.Stun(g.Manager())

	step(g, 1, press(netconfig.ActionMoveRight))
	if b.Vel.X != 0 || f.Action != netconfig.Stunned {
		t.Fatalf("stunned fighter moved: vel %v action %v", b.Vel, f.Action)
	}

	step(g, 31, press(netconfig.ActionMoveRight))
	if f.Action != netconfig.ActionStateNone {
		t.Errorf("action = %v, want stun expired", f.Action)
	}
	if b.Vel.X <= 0 {
		t.Errorf("Vel.X = %v, want moving right after the stun", b.Vel.X)
	}
}

func TestAttackStartsPunch(t *testing.T) {
	g := newMatch(t)
	step(g, 30, 0)
	f := g.Manager().Fighter(0)

	step(g, 1, press(netconfig.ActionAttack))
	if f.Action != netconfig.Punch {
		t.Fatalf("action = %v, want punch", f.Action)
	}
	if box := f.AttackHitbox(g.Manager()); box.Area() == 0 {
		t.Error("fresh punch has no hitbox")
	}
	step(g, 30, 0)
	if f.Action != netconfig.ActionStateNone {
		t.Errorf("action = %v, want punch finished", f.Action)
	}
}

func TestPickupAndShoot(t *testing.T) {
	g := newMatch(t)
	mm := g.Manager()
	step(g, 30, 0)
	f0 := mm.Fighter(0)

	pistol := mm.Body(mm.Pistol().Handle)
	pistol.Pos = fighterBody(g, 0).Pos.Add(gamemath.V(10, 10))
	pistol.Vel = gamemath.Vec{}
	step(g, 1, 0)
	if !f0.HasPistol || !mm.Pistol().Wielded {
		t.Fatal("fighter 0 did not pick up the pistol")
	}
	step(g, 1, 0)
	step(g, 1, press(netconfig.ActionAttack))
	if mm.Pistol().Loaded {
		t.Fatal("pistol still loaded after firing")
	}
	if mm.Bullet() == nil {
		t.Fatal("no bullet in flight")
	}
	if f0.Action == netconfig.Punch {
		t.Error("firing also started a punch")
	}

	for i := 0; i < 60 && mm.Fighter(1).Action != netconfig.Dying; i++ {
		step(g, 1, 0)
	}
	if got := mm.Fighter(1).Action; got != netconfig.Dying {
		t.Fatalf("fighter 1 action = %v, want dying", got)
	}
	if mm.Bullet() != nil {
		t.Error("bullet survived the hit")
	}
	if f0.Action == netconfig.Dying {
		t.Error("shooter killed by own bullet")
	}
}

func TestResetActionRestoresMatch(t *testing.T) {
	for player := 0; player < FighterCount; player++ {
		g := newMatch(t)
		step(g, 30, 0)
		step(g, 20, press(netconfig.ActionMoveRight, netconfig.ActionAttack))

		inputs := make([]messages.GameInput, FighterCount)
		inputs[player] = press(netconfig.ActionReset)
		g.ApplyInput(inputs, tick)

		arena := g.Arena()
		for i := 0; i < FighterCount; i++ {
			f, b := g.Manager().Fighter(i), fighterBody(g, i)
			if b.Pos.X != arena.Spawns[i].Pos.X {
				t.Errorf("player %d reset: fighter %d x = %v, want %v", player, i, b.Pos.X, arena.Spawns[i].Pos.X)
			}
			if f.FacingRight != arena.Spawns[i].FacingRight {
				t.Errorf("player %d reset: fighter %d facing not restored", player, i)
			}
			if f.Action != netconfig.ActionStateNone || f.HasPistol {
				t.Errorf("player %d reset: fighter %d action %v pistol %v", player, i, f.Action, f.HasPistol)
			}
		}
		if p := g.Manager().Pistol(); !p.Loaded || p.Wielded {
			t.Errorf("player %d reset: pistol not restored: %+v", player, p)
		}
	}
}

func TestInputsArePadded(t *testing.T) {
	a, b := newMatch(t), newMatch(t)
	for i := 0; i < 30; i++ {
		a.ApplyInput(nil, tick)
		b.ApplyInput([]messages.GameInput{0, 0}, tick)
	}
	if !reflect.DeepEqual(a.State(), b.State()) {
		t.Error("missing inputs did not behave as empty inputs")
	}
}

func randomInputs(r *rand.Rand) []messages.GameInput {
	actions := []netconfig.ActionID{
		netconfig.ActionMoveLeft,
		netconfig.ActionMoveRight,
		netconfig.ActionJump,
		netconfig.ActionAttack,
	}
	out := make([]messages.GameInput, FighterCount)
	for i := range out {
		for _, a := range actions {
			if r.Intn(3) == 0 {
				out[i] = out[i].Press(a)
			}
		}
	}
	return out
}

func TestSimulationIsDeterministic(t *testing.T) {
	a, b := newMatch(t), newMatch(t)
	ra, rb := rand.New(rand.NewSource(7)), rand.New(rand.NewSource(7))
	var clone *Match
	for i := 0; i < 600; i++ {
		a.ApplyInput(randomInputs(ra), tick)
		b.ApplyInput(randomInputs(rb), tick)
		if i == 299 {
			clone = a.Clone()
		}
	}
	if !reflect.DeepEqual(a.State(), b.State()) {
		t.Fatal("same inputs produced different states")
	}
	if a.State().Checksum() != b.State().Checksum() {
		t.Fatal("equal states hashed differently")
	}

	// Replaying the second half on the clone lands on the same state.
	rc := rand.New(rand.NewSource(7))
	for i := 0; i < 300; i++ {
		randomInputs(rc)
	}
	for i := 300; i < 600; i++ {
		clone.ApplyInput(randomInputs(rc), tick)
	}
	if !reflect.DeepEqual(a.State(), clone.State()) {
		t.Error("clone diverged from the original")
	}
}

func TestCopyFromDoesNotAlias(t *testing.T) {
	a := newMatch(t)
	step(a, 10, 0)
	b := &Match{}
	b.CopyFrom(a)
	before := a.State()
	step(b, 20, press(netconfig.ActionMoveRight))
	if !reflect.DeepEqual(a.State(), before) {
		t.Error("stepping the copy changed the original")
	}
	if reflect.DeepEqual(b.State(), before) {
		t.Error("copy did not advance")
	}
}

func TestFightersNeverPenetrateSolids(t *testing.T) {
	g := newMatch(t)
	r := rand.New(rand.NewSource(42))
	mm := g.Manager()
	for i := 0; i < 1200; i++ {
		g.ApplyInput(randomInputs(r), tick)
		for f := 0; f < mm.FighterCount(); f++ {
			box := mm.Body(mm.Fighter(f).Handle).Hitbox()
			for _, s := range mm.statics {
				if box.Intersects(mm.Body(s).Hitbox()) {
					t.Fatalf("tick %d: fighter %d at %v penetrates static %d", i, f, box.Pos, s)
				}
			}
		}
	}
}

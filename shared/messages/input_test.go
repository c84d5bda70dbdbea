package messages

import (
	"testing"

	"github.com/kreimnitz/SideScroller/shared/netconfig"
)

func TestGameInputSetSemantics(t *testing.T) {
	a := NewGameInput(netconfig.ActionMoveLeft, netconfig.ActionJump)
	b := NewGameInput(netconfig.ActionJump, netconfig.ActionMoveLeft)
	if a != b {
		t.Fatalf("inputs with the same keys should be equal: %v vs %v", a, b)
	}

	u := a.Union(NewGameInput(netconfig.ActionAttack))
	for _, act := range []netconfig.ActionID{netconfig.ActionMoveLeft, netconfig.ActionJump, netconfig.ActionAttack} {
		if !u.Has(act) {
			t.Errorf("union missing %v", act)
		}
	}
	if u.Has(netconfig.ActionMoveRight) {
		t.Error("union gained right")
	}
	if got := u.Release(netconfig.ActionAttack); got != a {
		t.Errorf("Release = %v, want %v", got, a)
	}
}

func TestGameInputIgnoresOutOfRange(t *testing.T) {
	in := NewGameInput(netconfig.ActionNone, netconfig.ActionCount)
	if !in.Empty() {
		t.Errorf("expected empty input, got %v", in)
	}
}

func TestGameInputString(t *testing.T) {
	in := NewGameInput(netconfig.ActionMoveRight, netconfig.ActionAttack)
	if got, want := in.String(), "{right,attack}"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

func TestLastProcessedOutOfRange(t *testing.T) {
	s := ServerInputSnapshot{LastProcessedIDs: []int{4, 9}}
	if got := s.LastProcessed(1); got != 9 {
		t.Errorf("LastProcessed(1) = %d", got)
	}
	if got := s.LastProcessed(2); got != 0 {
		t.Errorf("LastProcessed(2) = %d", got)
	}
}

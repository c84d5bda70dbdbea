package messages

import (
	"strings"

	"github.com/kreimnitz/SideScroller/shared/netconfig"
)

// GameInput is the set of logical actions held during one tick, stored as a
// bitmask indexed by netconfig.ActionID. Equality is set equality, so plain
// == works.
type GameInput uint32

// NewGameInput builds an input with the given actions pressed.
func NewGameInput(actions ...netconfig.ActionID) GameInput {
	var in GameInput
	for _, a := range actions {
		in = in.Press(a)
	}
	return in
}

// Has reports whether action a is pressed.
func (in GameInput) Has(a netconfig.ActionID) bool {
	return a > netconfig.ActionNone && a < netconfig.ActionCount && in&(1<<a) != 0
}

// Press returns a copy of in with a pressed.
func (in GameInput) Press(a netconfig.ActionID) GameInput {
	if a <= netconfig.ActionNone || a >= netconfig.ActionCount {
		return in
	}
	return in | 1<<a
}

// Release returns a copy of in with a released.
func (in GameInput) Release(a netconfig.ActionID) GameInput {
	return in &^ (1 << a)
}

// Union merges two inputs so no keypress is lost when sends are coalesced.
func (in GameInput) Union(other GameInput) GameInput {
	return in | other
}

// Empty reports whether nothing is pressed.
func (in GameInput) Empty() bool {
	return in == 0
}

func (in GameInput) String() string {
	var names []string
	for a := netconfig.ActionNone + 1; a < netconfig.ActionCount; a++ {
		if in.Has(a) {
			names = append(names, a.String())
		}
	}
	return "{" + strings.Join(names, ",") + "}"
}

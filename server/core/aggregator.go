package core

import (
	"slices"

	"github.com/kreimnitz/SideScroller/shared/gamemath"
	"github.com/kreimnitz/SideScroller/shared/messages"
)

// PeerInput is what one peer sent since the last tick. Inputs that arrive
// together are unioned so a press inside a coalesced window is not lost.
type PeerInput struct {
	Input    messages.GameInput
	LastID   int
	Received bool
}

func (p *PeerInput) merge(s messages.ClientInputSnapshot) {
	if p.Received {
		p.Input = p.Input.Union(s.Input)
	} else {
		p.Input = s.Input
	}
	p.Received = true
	p.LastID = max(p.LastID, s.ID)
}

// InputAggregator turns per-peer input into numbered authoritative
// snapshots. A peer that sent nothing this tick keeps its last input and its
// last processed id.
type InputAggregator struct {
	nextID  int
	inputs  []messages.GameInput
	lastIDs []int
}

func NewInputAggregator(players int) *InputAggregator {
	return &InputAggregator{
		inputs:  make([]messages.GameInput, players),
		lastIDs: make([]int, players),
	}
}

// Process folds one tick of peer input into the next snapshot. Entries past
// the player count are ignored.
func (a *InputAggregator) Process(pending []PeerInput, dt gamemath.Fix) messages.ServerInputSnapshot {
	for i, p := range pending {
		if i >= len(a.inputs) || !p.Received {
			continue
		}
		a.inputs[i] = p.Input
		a.lastIDs[i] = max(a.lastIDs[i], p.LastID)
	}

	s := messages.ServerInputSnapshot{
		ID:               a.nextID,
		DeltaS:           dt,
		Inputs:           slices.Clone(a.inputs),
		LastProcessedIDs: slices.Clone(a.lastIDs),
	}
	a.nextID++
	return s
}

// NextID is the id the next snapshot will carry.
func (a *InputAggregator) NextID() int {
	return a.nextID
}

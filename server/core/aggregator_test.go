package core

import (
	"reflect"
	"testing"

	"github.com/kreimnitz/SideScroller/shared/gamemath"
	"github.com/kreimnitz/SideScroller/shared/messages"
	"github.com/kreimnitz/SideScroller/shared/netconfig"
)

var tick = gamemath.FromRatio(1, 60)

var (
	left   = messages.NewGameInput(netconfig.ActionMoveLeft)
	jump   = messages.NewGameInput(netconfig.ActionJump)
	attack = messages.NewGameInput(netconfig.ActionAttack)
)

func received(snaps ...messages.ClientInputSnapshot) PeerInput {
	var p PeerInput
	for _, s := range snaps {
		p.merge(s)
	}
	return p
}

func TestPeerInputUnionsCoalescedInputs(t *testing.T) {
	p := received(
		messages.ClientInputSnapshot{ID: 4, Input: left},
		messages.ClientInputSnapshot{ID: 6, Input: jump},
		messages.ClientInputSnapshot{ID: 5, Input: 0},
	)
	if want := left.Union(jump); p.Input != want {
		t.Errorf("Input = %v, want %v", p.Input, want)
	}
	if p.LastID != 6 {
		t.Errorf("LastID = %d, want 6", p.LastID)
	}
}

func TestInputAggregatorProcess(t *testing.T) {
	tests := []struct {
		name        string
		ticks       [][]PeerInput
		wantInputs  []messages.GameInput
		wantLastIDs []int
	}{
		{
			name:        "nothing received",
			ticks:       [][]PeerInput{{{}, {}}},
			wantInputs:  []messages.GameInput{0, 0},
			wantLastIDs: []int{0, 0},
		},
		{
			name: "fresh input replaces held input",
			ticks: [][]PeerInput{
				{received(messages.ClientInputSnapshot{ID: 1, Input: left}), {}},
				{received(messages.ClientInputSnapshot{ID: 2, Input: attack}), {}},
			},
			wantInputs:  []messages.GameInput{attack, 0},
			wantLastIDs: []int{2, 0},
		},
		{
			name: "silent peer keeps last input and id",
			ticks: [][]PeerInput{
				{{}, received(messages.ClientInputSnapshot{ID: 7, Input: jump})},
				{{}, {}},
				{{}, {}},
			},
			wantInputs:  []messages.GameInput{0, jump},
			wantLastIDs: []int{0, 7},
		},
		{
			name: "stale id does not move last processed back",
			ticks: [][]PeerInput{
				{received(messages.ClientInputSnapshot{ID: 9, Input: left}), {}},
				{received(messages.ClientInputSnapshot{ID: 3, Input: jump}), {}},
			},
			wantInputs:  []messages.GameInput{jump, 0},
			wantLastIDs: []int{9, 0},
		},
		{
			name:        "extra peers ignored",
			ticks:       [][]PeerInput{{{}, {}, received(messages.ClientInputSnapshot{ID: 1, Input: left})}},
			wantInputs:  []messages.GameInput{0, 0},
			wantLastIDs: []int{0, 0},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := NewInputAggregator(2)
			var last messages.ServerInputSnapshot
			for i, pending := range tt.ticks {
				last = a.Process(pending, tick)
				if last.ID != i {
					t.Fatalf("snapshot %d has id %d", i, last.ID)
				}
			}
			if !reflect.DeepEqual(last.Inputs, tt.wantInputs) {
				t.Errorf("Inputs = %v, want %v", last.Inputs, tt.wantInputs)
			}
			if !reflect.DeepEqual(last.LastProcessedIDs, tt.wantLastIDs) {
				t.Errorf("LastProcessedIDs = %v, want %v", last.LastProcessedIDs, tt.wantLastIDs)
			}
			if last.DeltaS != tick {
				t.Errorf("DeltaS = %v", last.DeltaS)
			}
		})
	}
}

func TestInputAggregatorSnapshotsDoNotAlias(t *testing.T) {
	a := NewInputAggregator(2)
	first := a.Process([]PeerInput{received(messages.ClientInputSnapshot{ID: 1, Input: left}), {}}, tick)
	a.Process([]PeerInput{received(messages.ClientInputSnapshot{ID: 2, Input: jump}), {}}, tick)
	if first.Inputs[0] != left || first.LastProcessedIDs[0] != 1 {
		t.Errorf("earlier snapshot changed: %+v", first)
	}
	if a.NextID() != 2 {
		t.Errorf("NextID = %d", a.NextID())
	}
}

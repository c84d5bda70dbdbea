package messages

import "github.com/kreimnitz/SideScroller/shared/gamemath"

// Sequenced is implemented by every snapshot that carries an ordering id.
type Sequenced interface {
	SequenceID() int
}

// ClientInputSnapshot is one locally captured input, sent client to server.
type ClientInputSnapshot struct {
	ID    int       `codec:"id"`
	Input GameInput `codec:"input"`
}

func (s ClientInputSnapshot) SequenceID() int { return s.ID }

// ServerInputSnapshot is one authoritative tick: the inputs the server
// simulated with, the elapsed time, and the newest client input id folded
// in for each player.
type ServerInputSnapshot struct {
	ID               int          `codec:"id"`
	DeltaS           gamemath.Fix `codec:"dt"`
	Inputs           []GameInput  `codec:"inputs"`
	LastProcessedIDs []int        `codec:"lastIds"`
}

func (s ServerInputSnapshot) SequenceID() int { return s.ID }

// LastProcessed returns the last processed local id for player, or 0 when
// the snapshot has no entry for it.
func (s ServerInputSnapshot) LastProcessed(player int) int {
	if player < 0 || player >= len(s.LastProcessedIDs) {
		return 0
	}
	return s.LastProcessedIDs[player]
}

// SnapshotRequest asks the server to resend the listed snapshot ids.
type SnapshotRequest struct {
	IDs []int `codec:"ids"`
}

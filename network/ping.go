package network

import (
	"time"

	"github.com/kreimnitz/SideScroller/shared/messages"
)

// PingCalculator tags outgoing pings and measures the round trip when the
// matching pong comes back. The most recent completed round trip wins.
type PingCalculator struct {
	now    func() time.Time
	nextID int
	sent   map[int]time.Time
	last   time.Duration
	known  bool
}

// NewPingCalculator uses now as its clock; nil means time.Now.
func NewPingCalculator(now func() time.Time) *PingCalculator {
	if now == nil {
		now = time.Now
	}
	return &PingCalculator{now: now, sent: make(map[int]time.Time)}
}

func (p *PingCalculator) MakePing() messages.Ping {
	id := p.nextID
	p.nextID++
	p.sent[id] = p.now()
	return messages.Ping{ID: id}
}

// HandlePong records the round trip for pong. Unknown or repeated ids are
// ignored and leave the previous estimate in place.
func (p *PingCalculator) HandlePong(pong messages.Pong) (time.Duration, bool) {
	sentAt, ok := p.sent[pong.ID]
	if !ok {
		return p.last, false
	}
	delete(p.sent, pong.ID)
	p.last = p.now().Sub(sentAt)
	p.known = true
	return p.last, true
}

// Last returns the latest round trip, or -1 before any pong arrived.
func (p *PingCalculator) Last() time.Duration {
	if !p.known {
		return -1
	}
	return p.last
}

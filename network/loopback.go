package network

// Loopback is one end of an in-process link. The hosting player talks to
// its own server through a Loopback pair.
type Loopback struct {
	in   *Inbox
	peer *Inbox
}

// NewLoopback returns two connected ends. Bytes sent on one are polled from
// the other.
func NewLoopback() (client, server *Loopback) {
	a, b := &Inbox{}, &Inbox{}
	return &Loopback{in: a, peer: b}, &Loopback{in: b, peer: a}
}

func (l *Loopback) Send(b []byte) error {
	// Copy so the sender may reuse its buffer.
	if !l.peer.Push(append([]byte(nil), b...)) {
		return ErrNotConnected
	}
	return nil
}

func (l *Loopback) Poll() [][]byte {
	return l.in.Drain()
}

func (l *Loopback) Connected() bool {
	return !l.in.Closed() && !l.peer.Closed()
}

// Close shuts both directions.
func (l *Loopback) Close() {
	l.in.Close()
	l.peer.Close()
}

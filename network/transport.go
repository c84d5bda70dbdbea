package network

import (
	"errors"
	"sync"
)

// ErrNotConnected is returned by Send on a transport with no live link.
var ErrNotConnected = errors.New("not connected")

// Transport moves encoded protocol messages. Poll never blocks: it returns
// whatever has arrived since the last call, possibly nothing.
type Transport interface {
	Send(b []byte) error
	Poll() [][]byte
	Connected() bool
}

// Inbox is a goroutine-safe FIFO of packets that a transport's receive side
// fills and Poll drains. The zero value is ready to use.
type Inbox struct {
	mu     sync.Mutex
	items  [][]byte
	closed bool
}

// Push queues b. It reports false once the inbox is closed.
func (q *Inbox) Push(b []byte) bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.closed {
		return false
	}
	q.items = append(q.items, b)
	return true
}

// Drain returns and forgets everything queued.
func (q *Inbox) Drain() [][]byte {
	q.mu.Lock()
	defer q.mu.Unlock()
	out := q.items
	q.items = nil
	return out
}

func (q *Inbox) Close() {
	q.mu.Lock()
	q.closed = true
	q.items = nil
	q.mu.Unlock()
}

func (q *Inbox) Closed() bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.closed
}

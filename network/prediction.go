package network

import (
	"github.com/kreimnitz/SideScroller/shared/gamemath"
	"github.com/kreimnitz/SideScroller/shared/messages"
)

// LocalInput is one locally captured input with the tick length it was
// simulated with.
type LocalInput struct {
	ID     int
	Input  messages.GameInput
	DeltaS gamemath.Fix
}

// ClientInputBuffer holds the inputs the server has not confirmed yet, in
// the order they were captured. Ids start at 1 so a server report of 0
// means nothing has been processed.
type ClientInputBuffer struct {
	nextID int
	queue  []LocalInput
}

func NewClientInputBuffer() *ClientInputBuffer {
	return &ClientInputBuffer{nextID: 1}
}

// Add stores an input and returns the id it was tagged with.
func (b *ClientInputBuffer) Add(in messages.GameInput, dt gamemath.Fix) int {
	id := b.nextID
	b.nextID++
	b.queue = append(b.queue, LocalInput{ID: id, Input: in, DeltaS: dt})
	return id
}

// TrimThrough drops every input with an id at or below id.
func (b *ClientInputBuffer) TrimThrough(id int) {
	n := 0
	for n < len(b.queue) && b.queue[n].ID <= id {
		n++
	}
	if n == 0 {
		return
	}
	b.queue = append(b.queue[:0], b.queue[n:]...)
}

// Snapshots returns the unconfirmed inputs, oldest first. The slice is only
// valid until the next Add or TrimThrough.
func (b *ClientInputBuffer) Snapshots() []LocalInput {
	return b.queue
}

func (b *ClientInputBuffer) Len() int {
	return len(b.queue)
}

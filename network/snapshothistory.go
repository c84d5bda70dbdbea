package network

import (
	"slices"

	"github.com/kreimnitz/SideScroller/shared/messages"
)

// SnapshotHistory reorders snapshots that may arrive late, twice, or not at
// all. It releases them only as a gap-free run and remembers which ids have
// never been seen so they can be requested again.
type SnapshotHistory[T messages.Sequenced] struct {
	highestAdded int
	buffered     map[int]T
	missing      map[int]struct{}
}

func NewSnapshotHistory[T messages.Sequenced]() *SnapshotHistory[T] {
	return &SnapshotHistory[T]{
		highestAdded: -1,
		buffered:     make(map[int]T),
		missing:      make(map[int]struct{}),
	}
}

// Add buffers s. It reports false when s was dropped: a duplicate of a
// buffered snapshot, or an id that was already consumed.
func (h *SnapshotHistory[T]) Add(s T) bool {
	id := s.SequenceID()
	if id < 0 {
		return false
	}
	if _, ok := h.buffered[id]; ok {
		return false
	}
	_, wasMissing := h.missing[id]
	if id <= h.highestAdded && !wasMissing {
		return false
	}
	h.buffered[id] = s
	delete(h.missing, id)
	for gap := h.highestAdded + 1; gap < id; gap++ {
		h.missing[gap] = struct{}{}
	}
	if id > h.highestAdded {
		h.highestAdded = id
	}
	return true
}

// valid returns the buffered ids that can be consumed, ascending: everything
// below the smallest missing id.
func (h *SnapshotHistory[T]) valid() []int {
	if len(h.buffered) == 0 {
		return nil
	}
	limit := h.highestAdded + 1
	for id := range h.missing {
		limit = min(limit, id)
	}
	var ids []int
	for id := range h.buffered {
		if id < limit {
			ids = append(ids, id)
		}
	}
	slices.Sort(ids)
	return ids
}

// PopValid removes and returns the consumable run in id order.
func (h *SnapshotHistory[T]) PopValid() []T {
	ids := h.valid()
	out := make([]T, 0, len(ids))
	for _, id := range ids {
		out = append(out, h.buffered[id])
		delete(h.buffered, id)
	}
	return out
}

func (h *SnapshotHistory[T]) HasValid() bool {
	return len(h.valid()) > 0
}

// Missing returns the ids known to be skipped, ascending.
func (h *SnapshotHistory[T]) Missing() []int {
	ids := make([]int, 0, len(h.missing))
	for id := range h.missing {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

// Buffered is the number of snapshots waiting on a gap.
func (h *SnapshotHistory[T]) Buffered() int {
	return len(h.buffered)
}

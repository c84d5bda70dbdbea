package network

import (
	"reflect"
	"testing"

	"github.com/kreimnitz/SideScroller/shared/messages"
)

func snap(id int) messages.ServerInputSnapshot {
	return messages.ServerInputSnapshot{ID: id}
}

func ids(snaps []messages.ServerInputSnapshot) []int {
	out := []int{}
	for _, s := range snaps {
		out = append(out, s.ID)
	}
	return out
}

func TestSnapshotHistoryGapDetection(t *testing.T) {
	h := NewSnapshotHistory[messages.ServerInputSnapshot]()
	for _, id := range []int{0, 1, 3, 5} {
		h.Add(snap(id))
	}
	if got, want := h.Missing(), []int{2, 4}; !reflect.DeepEqual(got, want) {
		t.Fatalf("Missing() = %v, want %v", got, want)
	}
	if got, want := ids(h.PopValid()), []int{0, 1}; !reflect.DeepEqual(got, want) {
		t.Fatalf("first pop = %v, want %v", got, want)
	}

	h.Add(snap(2))
	if got, want := ids(h.PopValid()), []int{2, 3}; !reflect.DeepEqual(got, want) {
		t.Fatalf("second pop = %v, want %v", got, want)
	}
	if got, want := h.Missing(), []int{4}; !reflect.DeepEqual(got, want) {
		t.Fatalf("Missing() = %v, want %v", got, want)
	}
	if h.HasValid() {
		t.Error("HasValid with only 5 buffered behind a gap")
	}

	h.Add(snap(4))
	if got, want := ids(h.PopValid()), []int{4, 5}; !reflect.DeepEqual(got, want) {
		t.Fatalf("third pop = %v, want %v", got, want)
	}
	if len(h.Missing()) != 0 || h.Buffered() != 0 {
		t.Errorf("history not drained: missing %v buffered %d", h.Missing(), h.Buffered())
	}
}

func TestSnapshotHistoryDropsDuplicatesAndStale(t *testing.T) {
	tests := []struct {
		name    string
		adds    []int
		wantPop []int
		wantMis []int
	}{
		{name: "duplicate buffered", adds: []int{0, 0, 1}, wantPop: []int{0, 1}, wantMis: []int{}},
		{name: "late retransmission fills gap", adds: []int{0, 2, 1}, wantPop: []int{0, 1, 2}, wantMis: []int{}},
		{name: "first snapshot not zero", adds: []int{2}, wantPop: []int{}, wantMis: []int{0, 1}},
		{name: "negative id ignored", adds: []int{-1, 0}, wantPop: []int{0}, wantMis: []int{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewSnapshotHistory[messages.ServerInputSnapshot]()
			for _, id := range tt.adds {
				h.Add(snap(id))
			}
			if got := ids(h.PopValid()); !reflect.DeepEqual(got, tt.wantPop) {
				t.Errorf("PopValid = %v, want %v", got, tt.wantPop)
			}
			if got := h.Missing(); !reflect.DeepEqual(got, tt.wantMis) {
				t.Errorf("Missing = %v, want %v", got, tt.wantMis)
			}
		})
	}
}

func TestSnapshotHistoryIgnoresConsumedIDs(t *testing.T) {
	h := NewSnapshotHistory[messages.ServerInputSnapshot]()
	h.Add(snap(0))
	h.Add(snap(1))
	h.PopValid()

	if h.Add(snap(1)) {
		t.Error("re-added a consumed snapshot")
	}
	if h.HasValid() {
		t.Error("consumed snapshot became valid again")
	}
	if len(h.Missing()) != 0 {
		t.Errorf("consumed id reported missing: %v", h.Missing())
	}
}

func TestClientInputBuffer(t *testing.T) {
	b := NewClientInputBuffer()
	for i := 0; i < 5; i++ {
		if id := b.Add(messages.GameInput(i), tick); id != i+1 {
			t.Fatalf("id = %d, want %d", id, i+1)
		}
	}
	b.TrimThrough(0)
	if b.Len() != 5 {
		t.Fatalf("TrimThrough(0) removed inputs: %d left", b.Len())
	}
	b.TrimThrough(3)
	got := []int{}
	for _, in := range b.Snapshots() {
		got = append(got, in.ID)
	}
	if want := []int{4, 5}; !reflect.DeepEqual(got, want) {
		t.Errorf("remaining ids = %v, want %v", got, want)
	}
	if id := b.Add(0, tick); id != 6 {
		t.Errorf("id after trim = %d, want 6", id)
	}
	b.TrimThrough(100)
	if b.Len() != 0 {
		t.Errorf("Len = %d after trimming everything", b.Len())
	}
}

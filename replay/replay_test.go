package replay

import (
	"errors"
	"reflect"
	"testing"

	"github.com/google/uuid"
	"github.com/kreimnitz/SideScroller/config"
	"github.com/kreimnitz/SideScroller/shared/gamemath"
	"github.com/kreimnitz/SideScroller/shared/leveldata"
	"github.com/kreimnitz/SideScroller/shared/messages"
	"github.com/kreimnitz/SideScroller/shared/netconfig"
	"github.com/kreimnitz/SideScroller/shared/sim"
)

type mapStore map[string][]byte

func (s mapStore) LoadItem(key string) ([]byte, error) {
	return s[key], nil
}

func (s mapStore) SaveItem(key string, data []byte) error {
	s[key] = data
	return nil
}

var tick = gamemath.FromRatio(1, 60)

// record plays a short scripted match and returns the recorder plus the
// live match it was recorded from.
func record(t *testing.T, ticks int) (*Recorder, *sim.Match) {
	t.Helper()
	g, err := sim.NewDefaultMatch()
	if err != nil {
		t.Fatal(err)
	}
	r := NewRecorder(g.Arena().Name, config.Current())
	right := messages.NewGameInput(netconfig.ActionMoveRight)
	left := messages.NewGameInput(netconfig.ActionMoveLeft, netconfig.ActionJump)
	for i := 0; i < ticks; i++ {
		s := messages.ServerInputSnapshot{
			ID:               i,
			DeltaS:           tick,
			Inputs:           []messages.GameInput{right, left},
			LastProcessedIDs: []int{i, i},
		}
		if i%40 > 30 {
			s.Inputs[0] = messages.NewGameInput(netconfig.ActionAttack)
		}
		g.ApplyInput(s.Inputs, s.DeltaS)
		r.Record(s)
	}
	return r, g
}

func TestSaveLoadReplay(t *testing.T) {
	r, live := record(t, 200)
	if _, err := uuid.Parse(r.ID()); err != nil {
		t.Fatalf("recording id %q: %v", r.ID(), err)
	}

	store := mapStore{}
	id, err := r.Save(store, live.State().Checksum())
	if err != nil {
		t.Fatal(err)
	}
	rec, err := Load(store, id)
	if err != nil {
		t.Fatal(err)
	}
	if len(rec.Snapshots) != 200 {
		t.Fatalf("loaded %d snapshots", len(rec.Snapshots))
	}

	state, err := Replay(rec, leveldata.Default())
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(state, live.State()) {
		t.Error("replayed state differs from the live match")
	}
}

func TestReplayDetectsDivergence(t *testing.T) {
	r, live := record(t, 120)
	store := mapStore{}
	id, err := r.Save(store, live.State().Checksum())
	if err != nil {
		t.Fatal(err)
	}
	rec, err := Load(store, id)
	if err != nil {
		t.Fatal(err)
	}
	rec.Snapshots[10].Inputs[1] = 0

	if _, err := Replay(rec, leveldata.Default()); !errors.Is(err, ErrDiverged) {
		t.Errorf("Replay of tampered recording = %v, want ErrDiverged", err)
	}
}

func TestReplayRejectsOtherArena(t *testing.T) {
	r, _ := record(t, 1)
	store := mapStore{}
	id, err := r.Save(store, 0)
	if err != nil {
		t.Fatal(err)
	}
	rec, err := Load(store, id)
	if err != nil {
		t.Fatal(err)
	}
	arena := leveldata.Default()
	arena.Name = "elsewhere"
	if _, err := Replay(rec, arena); !errors.Is(err, ErrArenaMismatch) {
		t.Errorf("err = %v, want ErrArenaMismatch", err)
	}
}

func TestLoadMissing(t *testing.T) {
	if _, err := Load(mapStore{}, "nope"); !errors.Is(err, ErrNoRecording) {
		t.Errorf("err = %v, want ErrNoRecording", err)
	}
}

func TestRecorderSkipsOutOfOrder(t *testing.T) {
	r := NewRecorder("default", config.Current())
	for _, id := range []int{0, 1, 1, 3, 2} {
		r.Record(messages.ServerInputSnapshot{ID: id})
	}
	if r.Len() != 3 {
		t.Errorf("Len = %d, want 3", r.Len())
	}
}

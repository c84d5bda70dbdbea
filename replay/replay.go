// Package replay records the authoritative snapshots of a match and plays
// them back. Because the simulation is deterministic, the snapshots plus the
// tuning and arena are enough to rebuild every tick exactly.
package replay

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"slices"
	"sync"

	"github.com/google/uuid"
	"github.com/kreimnitz/SideScroller/config"
	"github.com/kreimnitz/SideScroller/shared/leveldata"
	"github.com/kreimnitz/SideScroller/shared/messages"
	"github.com/kreimnitz/SideScroller/shared/sim"
	"github.com/quasilyte/gdata"
)

var (
	ErrNoRecording   = errors.New("no recording")
	ErrDiverged      = errors.New("replay diverged from recording")
	ErrArenaMismatch = errors.New("arena does not match recording")
)

// Store is the part of gdata.Manager recordings need.
type Store interface {
	LoadItem(itemKey string) ([]byte, error)
	SaveItem(itemKey string, data []byte) error
}

// OpenStore opens the gdata store for appName.
func OpenStore(appName string) (Store, error) {
	m, err := gdata.Open(gdata.Config{
		AppName: appName,
	})
	if err != nil {
		return nil, fmt.Errorf("open replay store: %w", err)
	}
	return m, nil
}

// Recording is everything needed to re-simulate a match.
type Recording struct {
	ID        string                         `json:"id"`
	Arena     string                         `json:"arena"`
	Tuning    config.Tuning                  `json:"tuning"`
	Snapshots []messages.ServerInputSnapshot `json:"snapshots"`
	// Checksum of the final state, or 0 when none was taken.
	Checksum uint64 `json:"checksum"`
}

func itemKey(id string) string {
	return "replay-" + id
}

// Recorder collects snapshots as the server broadcasts them. Record is safe
// to call from the tick goroutine while Save runs elsewhere.
type Recorder struct {
	mu  sync.Mutex
	rec Recording
}

func NewRecorder(arena string, tuning config.Tuning) *Recorder {
	return &Recorder{rec: Recording{
		ID:     uuid.New().String(),
		Arena:  arena,
		Tuning: tuning,
	}}
}

func (r *Recorder) ID() string {
	return r.rec.ID
}

// Record appends s. Snapshots must arrive in id order; anything else is
// skipped.
func (r *Recorder) Record(s messages.ServerInputSnapshot) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if s.ID != len(r.rec.Snapshots) {
		return
	}
	s.Inputs = slices.Clone(s.Inputs)
	s.LastProcessedIDs = slices.Clone(s.LastProcessedIDs)
	r.rec.Snapshots = append(r.rec.Snapshots, s)
}

func (r *Recorder) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.rec.Snapshots)
}

// Save writes the recording with the checksum of the final state and
// returns its id.
func (r *Recorder) Save(store Store, checksum uint64) (string, error) {
	r.mu.Lock()
	r.rec.Checksum = checksum
	n := len(r.rec.Snapshots)
	data, err := json.Marshal(r.rec)
	r.mu.Unlock()
	if err != nil {
		return "", fmt.Errorf("encode recording: %w", err)
	}

	id := r.rec.ID
	if err := store.SaveItem(itemKey(id), data); err != nil {
		return "", fmt.Errorf("save recording %s: %w", id, err)
	}
	log.Printf("[replay] saved %s (%d snapshots)", id, n)
	return id, nil
}

// Load reads recording id from store.
func Load(store Store, id string) (*Recording, error) {
	data, err := store.LoadItem(itemKey(id))
	if err != nil {
		return nil, fmt.Errorf("load recording %s: %w", id, err)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNoRecording, id)
	}

	var rec Recording
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("decode recording %s: %w", id, err)
	}
	return &rec, nil
}

// Replay re-simulates rec on arena and returns the final state. It fails
// with ErrDiverged when the recording carries a checksum that the final
// state does not match.
func Replay(rec *Recording, arena *leveldata.Arena) (sim.State, error) {
	if arena.Name != rec.Arena {
		return sim.State{}, fmt.Errorf("%w: have %q, recorded on %q", ErrArenaMismatch, arena.Name, rec.Arena)
	}
	g, err := sim.NewMatch(arena, sim.NewParams(rec.Tuning))
	if err != nil {
		return sim.State{}, fmt.Errorf("replay: %w", err)
	}
	for _, s := range rec.Snapshots {
		g.ApplyInput(s.Inputs, s.DeltaS)
	}

	state := g.State()
	if rec.Checksum != 0 && state.Checksum() != rec.Checksum {
		return state, fmt.Errorf("%w: %d snapshots, checksum %x, recorded %x",
			ErrDiverged, len(rec.Snapshots), state.Checksum(), rec.Checksum)
	}
	return state, nil
}

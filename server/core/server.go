package core

import (
	"errors"
	"log"
	"sync"

	"github.com/kreimnitz/SideScroller/network"
	"github.com/kreimnitz/SideScroller/shared/gamemath"
	"github.com/kreimnitz/SideScroller/shared/messages"
	"github.com/kreimnitz/SideScroller/shared/protocol"
	"github.com/kreimnitz/SideScroller/shared/sim"
	"github.com/yohamta/donburi"
)

var (
	ErrServerFull  = errors.New("server full")
	ErrGameStarted = errors.New("game already started")
	ErrNoPlayers   = errors.New("no players connected")
)

// Peer is one connected client: its link, its player slot and whatever it
// has sent since the last tick.
type Peer struct {
	Transport network.Transport
	Index     int
	Pending   PeerInput

	sendFailed bool
}

var PeerComponent = donburi.NewComponentType[Peer]()

// Server is the authoritative side of a match. Each tick it drains every
// peer, folds their inputs into one snapshot, advances its own copy of the
// match and broadcasts the snapshot. Past snapshots are retained so clients
// can ask for ones they missed.
type Server struct {
	mu    sync.Mutex
	world donburi.World
	// Player index order.
	peers []donburi.Entity

	match      *sim.Match
	aggregator *InputAggregator
	started    bool

	retention int
	retained  map[int]messages.ServerInputSnapshot

	listeners []func(messages.ServerInputSnapshot)
}

// NewServer serves match, keeping the last retention snapshots for
// retransmission.
func NewServer(match *sim.Match, retention int) *Server {
	return &Server{
		world:     donburi.NewWorld(),
		match:     match,
		retention: max(retention, 1),
		retained:  make(map[int]messages.ServerInputSnapshot),
	}
}

// AddPeer gives t the next free player slot. Peers can only join before the
// game starts.
func (s *Server) AddPeer(t network.Transport) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return -1, ErrGameStarted
	}
	if len(s.peers) >= sim.FighterCount {
		return -1, ErrServerFull
	}

	entity := s.world.Create(PeerComponent)
	index := len(s.peers)
	PeerComponent.Set(s.world.Entry(entity), &Peer{Transport: t, Index: index})
	s.peers = append(s.peers, entity)

	log.Printf("[server] player %d joined", index)
	return index, nil
}

// RemovePeer drops t. Before the game starts the remaining peers shift down
// so slots stay contiguous; their next pong carries the new index. After
// the start the slot is kept and its last input is held.
func (s *Server) RemovePeer(t network.Transport) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, entity := range s.peers {
		if PeerComponent.Get(s.world.Entry(entity)).Transport != t {
			continue
		}
		if s.started {
			log.Printf("[server] player %d left, holding its last input", i)
			return
		}
		s.peers = append(s.peers[:i], s.peers[i+1:]...)
		if s.world.Valid(entity) {
			s.world.Remove(entity)
		}
		for j, e := range s.peers {
			PeerComponent.Get(s.world.Entry(e)).Index = j
		}
		log.Printf("[server] player %d left before the start", i)
		return
	}
}

// StartGame fixes the player slots and tells every peer the match is on.
func (s *Server) StartGame() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return ErrGameStarted
	}
	if len(s.peers) == 0 {
		return ErrNoPlayers
	}
	s.started = true
	s.aggregator = NewInputAggregator(sim.FighterCount)

	start := messages.StartGame{PlayerCount: sim.FighterCount}
	PeerComponent.Each(s.world, func(entry *donburi.Entry) {
		s.send(PeerComponent.Get(entry), start)
	})
	log.Printf("[server] game started with %d connected players", len(s.peers))
	return nil
}

// ProcessTick runs one server tick of dt seconds. Pings are answered even
// before the start; the returned snapshot is only valid once the game has
// started.
func (s *Server) ProcessTick(dt gamemath.Fix) (messages.ServerInputSnapshot, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	pending := make([]PeerInput, len(s.peers))
	for i, entity := range s.peers {
		peer := PeerComponent.Get(s.world.Entry(entity))
		s.drain(peer)
		pending[i] = peer.Pending
		peer.Pending = PeerInput{}
	}
	if !s.started {
		return messages.ServerInputSnapshot{}, false
	}

	snap := s.aggregator.Process(pending, dt)
	s.match.ApplyInput(snap.Inputs, snap.DeltaS)

	s.retained[snap.ID] = snap
	delete(s.retained, snap.ID-s.retention)

	PeerComponent.Each(s.world, func(entry *donburi.Entry) {
		s.send(PeerComponent.Get(entry), snap)
	})
	for _, fn := range s.listeners {
		fn(snap)
	}
	return snap, true
}

func (s *Server) drain(peer *Peer) {
	for _, b := range peer.Transport.Poll() {
		msg, ok := protocol.Decode(b)
		if !ok {
			continue
		}
		switch msg.Type {
		case protocol.TypePing:
			if ping, ok := msg.Ping(); ok {
				s.send(peer, messages.Pong{ID: ping.ID, PlayerID: peer.Index})
			}
		case protocol.TypeClientInput:
			if in, ok := msg.ClientInput(); ok {
				peer.Pending.merge(in)
			}
		case protocol.TypeSnapshotRequest:
			if req, ok := msg.SnapshotRequest(); ok {
				s.resend(peer, req.IDs)
			}
		}
	}
}

// resend answers a snapshot request. Ids outside the retained window are
// ignored.
func (s *Server) resend(peer *Peer, ids []int) {
	for _, id := range ids {
		if snap, ok := s.retained[id]; ok {
			s.send(peer, snap)
		}
	}
}

func (s *Server) send(peer *Peer, payload any) {
	if !peer.Transport.Connected() {
		return
	}
	b, err := protocol.Encode(payload)
	if err != nil {
		log.Printf("[server] %v", err)
		return
	}
	if err := peer.Transport.Send(b); err != nil {
		if !peer.sendFailed {
			log.Printf("[server] send to player %d: %v", peer.Index, err)
		}
		peer.sendFailed = true
		return
	}
	peer.sendFailed = false
}

// OnSnapshot registers fn to see every snapshot after it is broadcast. It
// runs on the tick goroutine.
func (s *Server) OnSnapshot(fn func(messages.ServerInputSnapshot)) {
	s.mu.Lock()
	s.listeners = append(s.listeners, fn)
	s.mu.Unlock()
}

// PlayerCount returns the number of joined players.
func (s *Server) PlayerCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.peers)
}

func (s *Server) Started() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.started
}

// Checksum hashes the server's copy of the match.
func (s *Server) Checksum() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.match.State().Checksum()
}

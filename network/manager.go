package network

import (
	"log"
	"time"

	"github.com/kreimnitz/SideScroller/config"
	"github.com/kreimnitz/SideScroller/shared/gamemath"
	"github.com/kreimnitz/SideScroller/shared/messages"
	"github.com/kreimnitz/SideScroller/shared/protocol"
)

// GameState is what the client manager predicts and rolls back. CopyFrom
// must leave the receiver independent of other.
type GameState[T any] interface {
	ApplyInput(inputs []messages.GameInput, dt gamemath.Fix)
	CopyFrom(other T)
}

// InputSource supplies the local player's held actions once per tick.
type InputSource interface {
	Input() messages.GameInput
}

// InputFunc adapts a function to InputSource.
type InputFunc func() messages.GameInput

func (f InputFunc) Input() messages.GameInput { return f() }

// Locator reports where player's fighter is in a state, for correction
// smoothing.
type Locator[T any] func(state T, player int) gamemath.Vec

// ClientManager runs client-side prediction and server reconciliation. Every
// tick it captures input, sends it, and either extends the predicted state
// by one tick or rebuilds it from the newest confirmed state plus the inputs
// the server has not processed yet.
type ClientManager[T GameState[T]] struct {
	transport Transport
	input     InputSource

	predicted T
	confirmed T

	history       *SnapshotHistory[messages.ServerInputSnapshot]
	buffer        *ClientInputBuffer
	ping          *PingCalculator
	lastConfirmed []messages.GameInput

	playerID int
	started  bool

	pingInterval    gamemath.Fix
	sinceLastPing   gamemath.Fix
	minSendInterval gamemath.Fix
	simTime         gamemath.Fix
	lastSentAt      gamemath.Fix
	lastSent        messages.GameInput
	sentAny         bool

	smoother *CorrectionSmoother
	locate   Locator[T]
	scratch  T
	newState func() T
}

// ClientOption configures a ClientManager.
type ClientOption[T GameState[T]] func(*ClientManager[T])

// WithClock replaces the wall clock used for ping measurement.
func WithClock[T GameState[T]](now func() time.Time) ClientOption[T] {
	return func(m *ClientManager[T]) {
		m.ping = NewPingCalculator(now)
	}
}

// WithCorrectionSmoothing eases out rollback corrections of the local
// fighter over duration seconds. newState must return a fresh state that
// CopyFrom can fill.
func WithCorrectionSmoothing[T GameState[T]](duration float32, locate Locator[T], newState func() T) ClientOption[T] {
	return func(m *ClientManager[T]) {
		m.smoother = NewCorrectionSmoother(duration)
		m.locate = locate
		m.newState = newState
	}
}

// NewClientManager predicts into predicted and keeps confirmed as the last
// server-agreed state. Both must start equal.
func NewClientManager[T GameState[T]](transport Transport, input InputSource, predicted, confirmed T, opts ...ClientOption[T]) *ClientManager[T] {
	m := &ClientManager[T]{
		transport:       transport,
		input:           input,
		predicted:       predicted,
		confirmed:       confirmed,
		history:         NewSnapshotHistory[messages.ServerInputSnapshot](),
		buffer:          NewClientInputBuffer(),
		ping:            NewPingCalculator(nil),
		playerID:        -1,
		pingInterval:    gamemath.FromFloat(config.Net.PingInterval),
		minSendInterval: gamemath.FromFloat(config.Net.MinSendInterval),
	}
	// Ping on the first tick so the server assigns a player id right away.
	m.sinceLastPing = m.pingInterval
	for _, opt := range opts {
		opt(m)
	}
	if m.newState != nil {
		m.scratch = m.newState()
	}
	return m
}

// AdvanceGameState runs one client tick of dt seconds. Before the match has
// started and a player id is known it only keeps the handshake going.
func (m *ClientManager[T]) AdvanceGameState(dt gamemath.Fix) {
	m.checkSendPing(dt)
	if !m.Ready() {
		m.HandleIncomingMessages()
		return
	}

	m.simTime += dt
	in := m.input.Input()
	id := m.buffer.Add(in, dt)
	m.checkSendInput(in, id)
	m.HandleIncomingMessages()
	m.requestMissingSnapshots()
	m.updateGameStates(in, dt)
	if m.smoother != nil {
		m.smoother.Update(float32(dt.Float64()))
	}
}

// HandleIncomingMessages drains the transport. Undecodable packets are
// dropped.
func (m *ClientManager[T]) HandleIncomingMessages() {
	for _, packet := range m.transport.Poll() {
		msg, ok := protocol.Decode(packet)
		if !ok {
			continue
		}
		switch msg.Type {
		case protocol.TypePong:
			if pong, ok := msg.Pong(); ok {
				m.playerID = pong.PlayerID
				m.ping.HandlePong(pong)
			}
		case protocol.TypeServerSnapshot:
			if s, ok := msg.ServerSnapshot(); ok {
				m.history.Add(s)
			}
		case protocol.TypeStartGame:
			if start, ok := msg.StartGame(); ok && start.PlayerCount > 0 {
				m.lastConfirmed = make([]messages.GameInput, start.PlayerCount)
				m.started = true
				log.Printf("[client] game started with %d players", start.PlayerCount)
			}
		}
	}
}

func (m *ClientManager[T]) checkSendPing(dt gamemath.Fix) {
	if m.sinceLastPing < m.pingInterval {
		m.sinceLastPing += dt
		return
	}
	m.sinceLastPing = 0
	m.send(m.ping.MakePing())
}

// checkSendInput skips resending an unchanged input until minSendInterval
// of simulated time has passed. The server folds skipped ticks into the
// last input it received.
func (m *ClientManager[T]) checkSendInput(in messages.GameInput, id int) {
	if m.sentAny && in == m.lastSent && m.simTime-m.lastSentAt < m.minSendInterval {
		return
	}
	m.sentAny = true
	m.lastSent = in
	m.lastSentAt = m.simTime
	m.send(messages.ClientInputSnapshot{ID: id, Input: in})
}

func (m *ClientManager[T]) requestMissingSnapshots() {
	if missing := m.history.Missing(); len(missing) > 0 {
		m.send(messages.SnapshotRequest{IDs: missing})
	}
}

func (m *ClientManager[T]) send(payload any) {
	b, err := protocol.Encode(payload)
	if err != nil {
		log.Printf("[client] %v", err)
		return
	}
	if err := m.transport.Send(b); err != nil {
		log.Printf("[client] send %T: %v", payload, err)
	}
}

func (m *ClientManager[T]) updateGameStates(in messages.GameInput, dt gamemath.Fix) {
	snapshots := m.history.PopValid()
	if len(snapshots) == 0 {
		m.lastConfirmed[m.playerID] = in
		m.predicted.ApplyInput(m.lastConfirmed, dt)
		return
	}

	var before gamemath.Vec
	if m.smoother != nil {
		// Where the fighter would have been drawn without the rollback.
		m.scratch.CopyFrom(m.predicted)
		guess := append([]messages.GameInput(nil), m.lastConfirmed...)
		guess[m.playerID] = in
		m.scratch.ApplyInput(guess, dt)
		before = m.locate(m.scratch, m.playerID)
	}

	for _, s := range snapshots {
		m.confirmed.ApplyInput(s.Inputs, s.DeltaS)
		clear(m.lastConfirmed)
		copy(m.lastConfirmed, s.Inputs)
	}
	m.rollback(snapshots[len(snapshots)-1].LastProcessed(m.playerID))

	if m.smoother != nil {
		m.smoother.Correct(before, m.locate(m.predicted, m.playerID))
	}
}

// rollback rebuilds the predicted state from the confirmed one, replaying
// every local input the server has not processed yet.
func (m *ClientManager[T]) rollback(lastProcessed int) {
	m.predicted.CopyFrom(m.confirmed)
	m.buffer.TrimThrough(lastProcessed)
	for _, local := range m.buffer.Snapshots() {
		m.lastConfirmed[m.playerID] = local.Input
		m.predicted.ApplyInput(m.lastConfirmed, local.DeltaS)
	}
}

// GameState is the predicted state to present.
func (m *ClientManager[T]) GameState() T {
	return m.predicted
}

// ConfirmedState is the newest state every peer agrees on.
func (m *ClientManager[T]) ConfirmedState() T {
	return m.confirmed
}

// PlayerID is the slot the server assigned, or -1 before the first pong.
func (m *ClientManager[T]) PlayerID() int {
	return m.playerID
}

// PingMs is the latest round trip in milliseconds, or -1 if unknown.
func (m *ClientManager[T]) PingMs() int64 {
	rtt := m.ping.Last()
	if rtt < 0 {
		return -1
	}
	return rtt.Milliseconds()
}

// Ready reports whether the match has started and this client knows its
// slot.
func (m *ClientManager[T]) Ready() bool {
	return m.started && m.playerID >= 0 && m.playerID < len(m.lastConfirmed)
}

// Pending is the number of local inputs awaiting confirmation.
func (m *ClientManager[T]) Pending() int {
	return m.buffer.Len()
}

// DisplayOffset is the correction offset to add to the local fighter when
// drawing. It is zero without smoothing.
func (m *ClientManager[T]) DisplayOffset() (float32, float32) {
	if m.smoother == nil {
		return 0, 0
	}
	return m.smoother.Offset()
}

package core

import (
	"reflect"
	"testing"

	"github.com/kreimnitz/SideScroller/config"
	"github.com/kreimnitz/SideScroller/network"
	"github.com/kreimnitz/SideScroller/shared/messages"
	"github.com/kreimnitz/SideScroller/shared/netconfig"
	"github.com/kreimnitz/SideScroller/shared/protocol"
	"github.com/kreimnitz/SideScroller/shared/sim"
)

// lossyTransport drops the first transmission of every snapshot whose id
// is 3 mod 5 while dropping is set. Retransmissions go through.
type lossyTransport struct {
	network.Transport
	dropping bool
	seen     map[int]bool
	dropped  int
}

func (l *lossyTransport) Send(b []byte) error {
	if l.dropping {
		if msg, ok := protocol.Decode(b); ok {
			if s, ok := msg.ServerSnapshot(); ok && s.ID%5 == 3 && !l.seen[s.ID] {
				l.seen[s.ID] = true
				l.dropped++
				return nil
			}
		}
	}
	return l.Transport.Send(b)
}

// pattern cycles through a fixed list of inputs, one per call.
func pattern(seq ...messages.GameInput) network.InputFunc {
	i := 0
	return func() messages.GameInput {
		in := seq[(i/7)%len(seq)]
		i++
		return in
	}
}

func TestClientsConvergeWithServerOverLossyLinks(t *testing.T) {
	srv := NewServer(newMatch(t), config.Net.SnapshotRetention)

	inputs := []network.InputSource{
		pattern(
			messages.NewGameInput(netconfig.ActionMoveRight),
			messages.NewGameInput(netconfig.ActionMoveRight, netconfig.ActionJump),
			0,
			messages.NewGameInput(netconfig.ActionAttack),
		),
		pattern(
			messages.NewGameInput(netconfig.ActionMoveLeft),
			0,
			messages.NewGameInput(netconfig.ActionJump),
			messages.NewGameInput(netconfig.ActionMoveLeft, netconfig.ActionAttack),
		),
	}

	var links []*lossyTransport
	var clients []*network.ClientManager[*sim.Match]
	for _, in := range inputs {
		clientEnd, serverEnd := network.NewLoopback()
		link := &lossyTransport{Transport: serverEnd, dropping: true, seen: map[int]bool{}}
		if _, err := srv.AddPeer(link); err != nil {
			t.Fatal(err)
		}
		links = append(links, link)
		clients = append(clients, network.NewClientManager[*sim.Match](clientEnd, in, newMatch(t), newMatch(t)))
	}
	if err := srv.StartGame(); err != nil {
		t.Fatal(err)
	}

	round := func() {
		for _, cm := range clients {
			cm.AdvanceGameState(tick)
		}
		srv.ProcessTick(tick)
	}
	for i := 0; i < 300; i++ {
		round()
	}
	for _, l := range links {
		if l.dropped == 0 {
			t.Fatal("lossy link dropped nothing")
		}
		l.dropping = false
	}
	for i := 0; i < 3; i++ {
		round()
	}
	for _, cm := range clients {
		cm.AdvanceGameState(tick)
	}

	want := srv.match.State()
	for i, cm := range clients {
		if cm.PlayerID() != i {
			t.Errorf("client %d was given slot %d", i, cm.PlayerID())
		}
		if !reflect.DeepEqual(cm.ConfirmedState().State(), want) {
			t.Errorf("client %d confirmed state differs from the server", i)
		}
	}
}

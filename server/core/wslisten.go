package core

import (
	"log"
	"sync"

	"github.com/kreimnitz/SideScroller/network"
	"github.com/kreimnitz/SideScroller/shared/protocol"
	"github.com/leap-fish/necs/router"
	"github.com/leap-fish/necs/transports"
)

// wsPeer adapts a necs client connection to network.Transport.
type wsPeer struct {
	client *router.NetworkClient
	in     network.Inbox
}

func (p *wsPeer) Send(b []byte) error {
	if p.in.Closed() {
		return network.ErrNotConnected
	}
	return p.client.SendMessage(protocol.Packet{Data: b})
}

func (p *wsPeer) Poll() [][]byte {
	return p.in.Drain()
}

func (p *wsPeer) Connected() bool {
	return !p.in.Closed()
}

// Listen accepts websocket clients on port and joins each one to srv. It
// blocks until the transport stops. necs router callbacks are process-wide,
// so only one listener may run per process.
func Listen(srv *Server, port uint) error {
	var mu sync.Mutex
	peers := make(map[*router.NetworkClient]*wsPeer)

	router.OnConnect(func(client *router.NetworkClient) {
		p := &wsPeer{client: client}
		index, err := srv.AddPeer(p)
		if err != nil {
			log.Printf("[server] rejecting %s: %v", client.Id(), err)
			return
		}
		mu.Lock()
		peers[client] = p
		mu.Unlock()
		log.Printf("[server] client %s is player %d", client.Id(), index)
	})

	router.On(func(client *router.NetworkClient, pkt protocol.Packet) {
		mu.Lock()
		p := peers[client]
		mu.Unlock()
		if p != nil {
			p.in.Push(pkt.Data)
		}
	})

	router.OnDisconnect(func(client *router.NetworkClient, err error) {
		if err != nil {
			log.Printf("[server] client %s disconnected with error: %v", client.Id(), err)
		} else {
			log.Printf("[server] client %s disconnected", client.Id())
		}

		mu.Lock()
		p, ok := peers[client]
		delete(peers, client)
		mu.Unlock()

		if ok {
			p.in.Close()
			srv.RemovePeer(p)
		}
	})

	router.OnError(func(client *router.NetworkClient, err error) {
		log.Printf("[server] client error: %v", err)
	})

	log.Printf("[server] listening on port %d", port)
	return transports.NewWsServerTransport(port, "", nil).Start()
}

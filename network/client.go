package network

import (
	"context"
	"fmt"
	"log"
	"sync"

	"github.com/coder/websocket"
	"github.com/kreimnitz/SideScroller/shared/protocol"
	"github.com/leap-fish/necs/router"
	"github.com/leap-fish/necs/transports"
)

type ClientState int

const (
	StateDisconnected ClientState = iota
	StateConnecting
	StateConnected
	StateError
)

// WsClient is a Transport over a websocket connection to the game server.
// Router callbacks run on necs goroutines, so shared fields are guarded by
// mu and received packets queue in an inbox until Poll.
//
// necs keeps its router callbacks in package state: only one WsClient (and
// no server listener) may be active per process.
type WsClient struct {
	mu        sync.RWMutex
	state     ClientState
	lastError error
	conn      *websocket.Conn

	in Inbox
}

// Dial starts connecting to address ("host:port") in the background. Poll
// and Send are usable immediately; Send fails with ErrNotConnected until the
// link is up.
func Dial(address string) *WsClient {
	c := &WsClient{state: StateConnecting}

	router.OnConnect(func(_ *router.NetworkClient) {
		log.Println("[client] connected to server")
		c.mu.Lock()
		c.state = StateConnected
		c.mu.Unlock()
	})

	router.On(func(_ *router.NetworkClient, p protocol.Packet) {
		c.in.Push(p.Data)
	})

	router.OnDisconnect(func(_ *router.NetworkClient, err error) {
		log.Printf("[client] disconnected: %v", err)
		c.mu.Lock()
		if c.state != StateError {
			c.state = StateDisconnected
		}
		c.conn = nil
		c.mu.Unlock()
	})

	router.OnError(func(_ *router.NetworkClient, err error) {
		log.Printf("[client] error: %v", err)
	})

	go func() {
		transport := transports.NewWsClientTransport("ws://" + address)
		err := transport.Start(func(conn *websocket.Conn) {
			c.mu.Lock()
			c.conn = conn
			c.mu.Unlock()
		})
		if err != nil {
			c.setError(fmt.Errorf("connection failed: %w", err))
		}
	}()
	return c
}

func (c *WsClient) Send(b []byte) error {
	c.mu.RLock()
	conn := c.conn
	c.mu.RUnlock()

	if conn == nil {
		return ErrNotConnected
	}

	payload, err := router.Serialize(protocol.Packet{Data: b})
	if err != nil {
		return fmt.Errorf("serialize: %w", err)
	}
	return conn.Write(context.Background(), websocket.MessageBinary, payload)
}

func (c *WsClient) Poll() [][]byte {
	return c.in.Drain()
}

func (c *WsClient) Connected() bool {
	return c.State() == StateConnected
}

// Close drops the connection and clears the router callbacks.
func (c *WsClient) Close() {
	c.mu.Lock()
	conn := c.conn
	c.state = StateDisconnected
	c.conn = nil
	c.mu.Unlock()

	if conn != nil {
		_ = conn.CloseNow()
	}
	c.in.Close()

	router.ResetRouter()
}

func (c *WsClient) State() ClientState {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.state
}

func (c *WsClient) LastError() error {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.lastError
}

func (c *WsClient) setError(err error) {
	c.mu.Lock()
	c.state = StateError
	c.lastError = err
	c.mu.Unlock()
}

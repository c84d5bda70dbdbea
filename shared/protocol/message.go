// Package protocol is the wire envelope exchanged between client and server.
// Every message is a tagged union: a type byte plus a msgpack-encoded payload.
// Anything that fails to decode is dropped, never surfaced as an error to the
// tick loop.
package protocol

import (
	"errors"
	"fmt"

	"github.com/hashicorp/go-msgpack/v2/codec"
	"github.com/kreimnitz/SideScroller/shared/messages"
)

// MessageType tags the payload carried by a Message.
type MessageType uint8

const (
	TypeInvalid MessageType = iota
	TypePing
	TypePong
	TypeStartGame
	TypeClientInput
	TypeServerSnapshot
	TypeSnapshotRequest
	typeCount
)

var typeNames = map[MessageType]string{
	TypePing:            "ping",
	TypePong:            "pong",
	TypeStartGame:       "start",
	TypeClientInput:     "client-input",
	TypeServerSnapshot:  "server-snapshot",
	TypeSnapshotRequest: "snapshot-request",
}

func (t MessageType) String() string {
	if name, ok := typeNames[t]; ok {
		return name
	}
	return "invalid"
}

// ErrUnknownMessageType is returned by Encode for payloads without a tag.
var ErrUnknownMessageType = errors.New("unknown message type")

// Message is the decoded envelope. Data stays encoded until one of the typed
// accessors is called.
type Message struct {
	Type MessageType `codec:"t"`
	Data []byte      `codec:"d"`
}

var handle = &codec.MsgpackHandle{}

func marshal(v any) ([]byte, error) {
	var b []byte
	if err := codec.NewEncoderBytes(&b, handle).Encode(v); err != nil {
		return nil, err
	}
	return b, nil
}

func unmarshal(b []byte, v any) error {
	return codec.NewDecoderBytes(b, handle).Decode(v)
}

func typeOf(payload any) MessageType {
	switch payload.(type) {
	case messages.Ping, *messages.Ping:
		return TypePing
	case messages.Pong, *messages.Pong:
		return TypePong
	case messages.StartGame, *messages.StartGame:
		return TypeStartGame
	case messages.ClientInputSnapshot, *messages.ClientInputSnapshot:
		return TypeClientInput
	case messages.ServerInputSnapshot, *messages.ServerInputSnapshot:
		return TypeServerSnapshot
	case messages.SnapshotRequest, *messages.SnapshotRequest:
		return TypeSnapshotRequest
	}
	return TypeInvalid
}

// Encode wraps payload in an envelope and serializes it.
func Encode(payload any) ([]byte, error) {
	t := typeOf(payload)
	if t == TypeInvalid {
		return nil, fmt.Errorf("encode %T: %w", payload, ErrUnknownMessageType)
	}
	data, err := marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("encode %s payload: %w", t, err)
	}
	out, err := marshal(Message{Type: t, Data: data})
	if err != nil {
		return nil, fmt.Errorf("encode %s envelope: %w", t, err)
	}
	return out, nil
}

// MustEncode is Encode for payloads known to be valid. It panics on failure.
func MustEncode(payload any) []byte {
	b, err := Encode(payload)
	if err != nil {
		panic(err)
	}
	return b
}

// Decode parses an envelope. ok is false for malformed input or an unknown
// tag; callers drop such packets.
func Decode(b []byte) (msg Message, ok bool) {
	if len(b) == 0 {
		return Message{}, false
	}
	if err := unmarshal(b, &msg); err != nil {
		return Message{}, false
	}
	if msg.Type == TypeInvalid || msg.Type >= typeCount {
		return Message{}, false
	}
	return msg, true
}

func decodeAs[T any](m Message, want MessageType) (T, bool) {
	var v T
	if m.Type != want {
		return v, false
	}
	if err := unmarshal(m.Data, &v); err != nil {
		var zero T
		return zero, false
	}
	return v, true
}

func (m Message) Ping() (messages.Ping, bool) {
	return decodeAs[messages.Ping](m, TypePing)
}

func (m Message) Pong() (messages.Pong, bool) {
	return decodeAs[messages.Pong](m, TypePong)
}

func (m Message) StartGame() (messages.StartGame, bool) {
	return decodeAs[messages.StartGame](m, TypeStartGame)
}

func (m Message) ClientInput() (messages.ClientInputSnapshot, bool) {
	return decodeAs[messages.ClientInputSnapshot](m, TypeClientInput)
}

// ServerSnapshot also rejects snapshots whose per-player arrays disagree in
// length.
func (m Message) ServerSnapshot() (messages.ServerInputSnapshot, bool) {
	s, ok := decodeAs[messages.ServerInputSnapshot](m, TypeServerSnapshot)
	if !ok || len(s.Inputs) != len(s.LastProcessedIDs) || s.ID < 0 {
		return messages.ServerInputSnapshot{}, false
	}
	return s, true
}

func (m Message) SnapshotRequest() (messages.SnapshotRequest, bool) {
	return decodeAs[messages.SnapshotRequest](m, TypeSnapshotRequest)
}

package protocol

// Packet is the single type routed by the websocket transport. It carries an
// encoded Message so the transport never needs to know the envelope types.
type Packet struct {
	Data []byte
}

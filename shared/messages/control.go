package messages

// Ping is a round-trip probe sent by the client.
type Ping struct {
	ID int `codec:"id"`
}

// Pong answers a Ping and tells the client which player slot it owns.
type Pong struct {
	ID       int `codec:"id"`
	PlayerID int `codec:"player"`
}

// StartGame announces that the match begins with PlayerCount fighters.
type StartGame struct {
	PlayerCount int `codec:"players"`
}

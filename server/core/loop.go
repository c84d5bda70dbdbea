package core

import (
	"errors"
	"log"
	"time"

	"github.com/kreimnitz/SideScroller/shared/gamemath"
)

// GameLoop ticks a Server at a fixed rate. It starts the game as soon as
// the wanted number of players has joined.
type GameLoop struct {
	server   *Server
	tickRate int
	players  int
	dt       gamemath.Fix
	stopChan chan struct{}
	done     chan struct{}
}

func NewGameLoop(server *Server, tickRate, players int) *GameLoop {
	return &GameLoop{
		server:   server,
		tickRate: tickRate,
		players:  players,
		dt:       gamemath.FromRatio(1, int64(tickRate)),
		stopChan: make(chan struct{}),
		done:     make(chan struct{}),
	}
}

func (g *GameLoop) Run() {
	defer close(g.done)
	ticker := time.NewTicker(time.Second / time.Duration(g.tickRate))
	defer ticker.Stop()

	log.Printf("[loop] started at %d ticks/second, waiting for %d players", g.tickRate, g.players)

	for {
		select {
		case <-g.stopChan:
			log.Println("[loop] stopped")
			return
		case <-ticker.C:
			g.tick()
		}
	}
}

// Stop ends Run and waits for the tick in progress to finish. Run must have
// been started.
func (g *GameLoop) Stop() {
	close(g.stopChan)
	<-g.done
}

func (g *GameLoop) tick() {
	if !g.server.Started() && g.server.PlayerCount() >= g.players {
		if err := g.server.StartGame(); err != nil && !errors.Is(err, ErrGameStarted) {
			log.Printf("[loop] start: %v", err)
		}
	}
	g.server.ProcessTick(g.dt)
}

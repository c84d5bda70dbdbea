package main

import (
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/kreimnitz/SideScroller/bot"
	"github.com/kreimnitz/SideScroller/config"
	"github.com/kreimnitz/SideScroller/network"
	"github.com/kreimnitz/SideScroller/replay"
	"github.com/kreimnitz/SideScroller/server/core"
	"github.com/kreimnitz/SideScroller/shared/gamemath"
	"github.com/kreimnitz/SideScroller/shared/leveldata"
	"github.com/kreimnitz/SideScroller/shared/sim"
)

type options struct {
	addr       string
	level      string
	difficulty int
	seed       int64
	local      bool
	ticks      int
	record     bool
	replayID   string
}

func main() {
	var opts options
	flag.StringVar(&opts.addr, "addr", "localhost:7373", "Server address (host:port)")
	tuningPath := flag.String("tuning", "", "YAML tuning overrides (must match the server)")
	flag.StringVar(&opts.level, "level", "", "TMX arena (empty = built-in arena, must match the server)")
	flag.IntVar(&opts.difficulty, "difficulty", int(config.BotDifficultyNormal), "Bot difficulty (0 easy, 1 normal, 2 hard)")
	flag.Int64Var(&opts.seed, "seed", 42, "Bot random seed")
	flag.BoolVar(&opts.local, "local", false, "Host a match in-process between two bots instead of connecting")
	flag.IntVar(&opts.ticks, "ticks", 3600, "Ticks to run a local match for")
	flag.BoolVar(&opts.record, "record", false, "Save a replay of a local match")
	flag.StringVar(&opts.replayID, "replay", "", "Re-simulate a saved replay and verify it")
	flag.Parse()

	if *tuningPath != "" {
		t, err := config.LoadTuning(*tuningPath)
		if err != nil {
			log.Fatalf("Failed to load tuning: %v", err)
		}
		config.Use(t)
	}

	arena, err := core.LoadArena(opts.level)
	if err != nil {
		log.Fatalf("Failed to load level: %v", err)
	}

	switch {
	case opts.replayID != "":
		err = runReplay(opts.replayID, arena)
	case opts.local:
		err = runLocal(opts, arena)
	default:
		err = runRemote(opts, arena)
	}
	if err != nil {
		log.Fatal(err)
	}
}

func newMatch(arena *leveldata.Arena) *sim.Match {
	g, err := sim.NewMatch(arena, sim.DefaultParams())
	if err != nil {
		log.Fatalf("Failed to build match: %v", err)
	}
	return g
}

func locateFighter(g *sim.Match, player int) gamemath.Vec {
	mm := g.Manager()
	return mm.Body(mm.Fighter(player).Handle).Pos
}

// newBotClient wires a bot to a client manager that predicts on arena.
func newBotClient(t network.Transport, arena *leveldata.Arena, difficulty config.BotDifficulty, seed int64) *network.ClientManager[*sim.Match] {
	var cm *network.ClientManager[*sim.Match]
	b := bot.New(difficulty, seed, func() (*sim.Match, int) {
		return cm.GameState(), cm.PlayerID()
	})
	cm = network.NewClientManager[*sim.Match](t, b, newMatch(arena), newMatch(arena),
		network.WithCorrectionSmoothing[*sim.Match](0.1, locateFighter, func() *sim.Match { return &sim.Match{} }))
	return cm
}

// runRemote plays one bot against a server until interrupted.
func runRemote(opts options, arena *leveldata.Arena) error {
	conn := network.Dial(opts.addr)
	defer conn.Close()

	cm := newBotClient(conn, arena, config.BotDifficulty(opts.difficulty), opts.seed)
	dt := gamemath.FromRatio(1, int64(config.Net.TickRate))

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	ticker := time.NewTicker(time.Second / time.Duration(config.Net.TickRate))
	defer ticker.Stop()
	status := time.NewTicker(time.Second)
	defer status.Stop()

	log.Printf("[client] connecting to %s", opts.addr)
	for {
		select {
		case <-sigChan:
			log.Println("[client] shutting down")
			return nil
		case <-ticker.C:
			if err := conn.LastError(); err != nil {
				return err
			}
			cm.AdvanceGameState(dt)
		case <-status.C:
			if !cm.Ready() {
				continue
			}
			ox, oy := cm.DisplayOffset()
			log.Printf("[client] player %d ping %dms pending %d correction (%.1f, %.1f) checksum %x",
				cm.PlayerID(), cm.PingMs(), cm.Pending(), ox, oy, cm.ConfirmedState().State().Checksum())
		}
	}
}

// runLocal hosts a server in-process with two bots on loopback links and
// steps everything in lockstep.
func runLocal(opts options, arena *leveldata.Arena) error {
	server := core.NewServer(newMatch(arena), config.Net.SnapshotRetention)

	var recorder *replay.Recorder
	if opts.record {
		recorder = replay.NewRecorder(arena.Name, config.Current())
		server.OnSnapshot(recorder.Record)
	}

	var clients []*network.ClientManager[*sim.Match]
	for i := 0; i < sim.FighterCount; i++ {
		clientEnd, serverEnd := network.NewLoopback()
		if _, err := server.AddPeer(serverEnd); err != nil {
			return err
		}
		clients = append(clients, newBotClient(clientEnd, arena, config.BotDifficulty(opts.difficulty), opts.seed+int64(i)))
	}
	if err := server.StartGame(); err != nil {
		return err
	}

	dt := gamemath.FromRatio(1, int64(config.Net.TickRate))
	for i := 0; i < opts.ticks; i++ {
		for _, cm := range clients {
			cm.AdvanceGameState(dt)
		}
		server.ProcessTick(dt)
	}
	for _, cm := range clients {
		cm.AdvanceGameState(dt)
	}

	checksum := server.Checksum()
	log.Printf("[server] %d ticks, checksum %x", opts.ticks, checksum)
	for i, cm := range clients {
		if got := cm.ConfirmedState().State().Checksum(); got != checksum {
			log.Printf("[client] player %d confirmed checksum %x differs", i, got)
		}
	}

	if recorder == nil {
		return nil
	}
	store, err := replay.OpenStore("sidescroller")
	if err != nil {
		return err
	}
	id, err := recorder.Save(store, checksum)
	if err != nil {
		return err
	}
	log.Printf("[replay] run again with -replay %s", id)
	return nil
}

func runReplay(id string, arena *leveldata.Arena) error {
	store, err := replay.OpenStore("sidescroller")
	if err != nil {
		return err
	}
	rec, err := replay.Load(store, id)
	if err != nil {
		return err
	}
	state, err := replay.Replay(rec, arena)
	if err != nil {
		return err
	}
	log.Printf("[replay] %s verified: %d snapshots, checksum %x", id, len(rec.Snapshots), state.Checksum())
	return nil
}

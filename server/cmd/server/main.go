package main

import (
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/kreimnitz/SideScroller/config"
	"github.com/kreimnitz/SideScroller/replay"
	"github.com/kreimnitz/SideScroller/server/core"
	"github.com/kreimnitz/SideScroller/shared/sim"
)

func main() {
	port := flag.Uint("port", config.Net.Port, "Server port")
	tickRate := flag.Int("tickrate", config.Net.TickRate, "Server tick rate (updates per second)")
	tuningPath := flag.String("tuning", "", "YAML tuning overrides (clients must load the same file)")
	levelPath := flag.String("level", "", "TMX arena (empty = built-in arena)")
	players := flag.Int("players", sim.FighterCount, "Players to wait for before starting")
	record := flag.Bool("record", false, "Save a replay of the match on shutdown")
	flag.Parse()

	if *tuningPath != "" {
		t, err := config.LoadTuning(*tuningPath)
		if err != nil {
			log.Fatalf("Failed to load tuning: %v", err)
		}
		config.Use(t)
	}

	arena, err := core.LoadArena(*levelPath)
	if err != nil {
		log.Fatalf("Failed to load level: %v", err)
	}
	match, err := sim.NewMatch(arena, sim.DefaultParams())
	if err != nil {
		log.Fatalf("Failed to build match: %v", err)
	}

	server := core.NewServer(match, config.Net.SnapshotRetention)
	loop := core.NewGameLoop(server, *tickRate, *players)

	var recorder *replay.Recorder
	if *record {
		recorder = replay.NewRecorder(arena.Name, config.Current())
		server.OnSnapshot(recorder.Record)
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		log.Println("Shutting down server...")
		loop.Stop()
		if recorder != nil {
			saveReplay(recorder, server.Checksum())
		}
		os.Exit(0)
	}()

	go loop.Run()

	log.Printf("Starting server on port %d (tick rate: %d/s, arena: %s, players: %d)",
		*port, *tickRate, arena.Name, *players)
	if err := core.Listen(server, *port); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}

func saveReplay(r *replay.Recorder, checksum uint64) {
	store, err := replay.OpenStore("sidescroller")
	if err != nil {
		log.Printf("Warning: %v", err)
		return
	}
	id, err := r.Save(store, checksum)
	if err != nil {
		log.Printf("Warning: %v", err)
		return
	}
	log.Printf("Replay saved as %s", id)
}

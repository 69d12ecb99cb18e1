package main

import (
	"fmt"
	"math/rand"
	netrpc "net/rpc"
	"os"
	"strconv"
	"time"

	"github.com/wfunc/arena/config"
	"github.com/wfunc/arena/game"
	"github.com/wfunc/arena/logger"
	"github.com/wfunc/arena/monitor"
	"github.com/wfunc/arena/persistence"
	arenarpc "github.com/wfunc/arena/rpc"
	"github.com/wfunc/arena/server"
	"github.com/wfunc/arena/services"
	"github.com/wfunc/arena/timer"
)

func main() {
	// Initialize logger
	logger.Init()

	// Load configuration
	cfg, err := config.LoadConfig(".")
	if err != nil {
		logger.Log.Fatalf("Failed to load configuration: %v", err)
	}

	// A single positional argument overrides the configured game port.
	if len(os.Args) > 1 {
		port, err := strconv.Atoi(os.Args[1])
		if err != nil || port <= 0 {
			logger.Log.Fatalf("Invalid port number: %s", os.Args[1])
		}
		cfg.Server.GameAddress = fmt.Sprintf(":%d", port)
	}

	// Build the arena and game engine
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	arena := game.NewArena(rng)
	g := game.New(arena, rng)
	logger.Log.Infof("Arena initialized with %d obstacles", arena.ObstacleCount())

	// Metrics endpoint
	mon := monitor.NewMonitor("arena")
	mon.StartServer(cfg.Server.MetricsAddress)

	// Optional match-history recording
	var recorder *services.Recorder
	if cfg.Database.Enabled {
		store, err := persistence.NewGormPostgreSQL(
			cfg.Database.Postgres.Host,
			cfg.Database.Postgres.Port,
			cfg.Database.Postgres.User,
			cfg.Database.Postgres.Password,
			cfg.Database.Postgres.DBName,
		)
		if err != nil {
			logger.Log.Fatalf("Failed to connect to database: %v", err)
		}
		defer store.Close()
		logger.Log.Info("Database connection successful.")
		recorder = services.NewRecorder(store)
	}

	// Drain the game event stream into metrics and match history.
	go func() {
		for ev := range g.Events() {
			switch ev.Type {
			case game.EventJoin:
				mon.IncOnlinePlayers()
			case game.EventLeave, game.EventDeath:
				mon.DecOnlinePlayers()
			case game.EventBroadcast:
				mon.IncBroadcasts()
			}
			if recorder != nil {
				recorder.Record(ev)
			}
		}
	}()

	// Periodic resync of the occupancy gauge from the authoritative count.
	timers := timer.NewManager()
	defer timers.Stop()
	timers.AddTimer(10*time.Second, 10*time.Second, func() {
		mon.SetOnlinePlayers(g.CountOccupied())
	})

	// Admin RPC
	if cfg.Server.RPCAddress != "" {
		rpcServer, err := arenarpc.NewServer(cfg.Server.RPCAddress)
		if err != nil {
			logger.Log.Fatalf("Failed to create RPC server: %v", err)
		}
		netrpc.Register(arenarpc.NewArenaService(g))
		go rpcServer.Start()
		defer rpcServer.Stop()
	}

	// Start game server
	gameServer := server.NewGameServer(cfg.Server.GameAddress, cfg.Server.WSAddress, g, mon)
	logger.Log.Infof("Starting arena server on %s", cfg.Server.GameAddress)
	if err := gameServer.Start(); err != nil {
		logger.Log.Fatalf("Failed to start server: %v", err)
	}
}

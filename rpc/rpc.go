package rpc

import (
	"net"
	"net/rpc"
	"time"

	"github.com/wfunc/arena/game"
	"github.com/wfunc/arena/logger"
)

// Server manages the admin RPC listener.
type Server struct {
	listener net.Listener
	address  string
}

// NewServer creates a new RPC server. Services are registered by the
// caller via net/rpc before Start.
func NewServer(addr string) (*Server, error) {
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, err
	}
	return &Server{
		listener: listener,
		address:  addr,
	}, nil
}

// Start begins listening for RPC requests.
func (s *Server) Start() {
	logger.Log.Infof("RPC server listening on %s", s.address)
	for {
		conn, err := s.listener.Accept()
		if err != nil {
			if _, ok := err.(*net.OpError); ok {
				logger.Log.Info("RPC server listener closed.")
				return
			}
			logger.Log.Errorf("RPC server accept error: %v", err)
			continue
		}
		go rpc.ServeConn(conn)
	}
}

// Stop closes the RPC listener.
func (s *Server) Stop() {
	if s.listener != nil {
		logger.Log.Info("Stopping RPC server.")
		s.listener.Close()
	}
}

// ArenaService exposes admin queries over net/rpc.
type ArenaService struct {
	game    *game.Game
	started time.Time
}

func NewArenaService(g *game.Game) *ArenaService {
	return &ArenaService{
		game:    g,
		started: time.Now(),
	}
}

type StatusArgs struct{}

type StatusReply struct {
	OccupiedSlots int
	UptimeSeconds float64
	Players       []game.SlotStatus
}

// Status reports occupancy and per-slot state of the running arena.
func (s *ArenaService) Status(args *StatusArgs, reply *StatusReply) error {
	reply.Players = s.game.Status()
	reply.OccupiedSlots = len(reply.Players)
	reply.UptimeSeconds = time.Since(s.started).Seconds()
	return nil
}

package server

import (
	"net"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/wfunc/arena/game"
	"github.com/wfunc/arena/logger"
	"github.com/wfunc/arena/monitor"
	"github.com/wfunc/arena/network"
	"github.com/wfunc/arena/session"
)

// GameServer accepts connections on a TCP listener (and optionally a
// websocket endpoint) and runs one goroutine per session. All game rules
// live in the game package; this layer only moves lines in and out.
type GameServer struct {
	addr           string
	wsAddr         string
	game           *game.Game
	sessionManager *session.Manager
	monitor        *monitor.Monitor
	upgrader       websocket.Upgrader
	listener       net.Listener
	shutdownChan   chan struct{}
}

func NewGameServer(addr, wsAddr string, g *game.Game, mon *monitor.Monitor) *GameServer {
	return &GameServer{
		addr:           addr,
		wsAddr:         wsAddr,
		game:           g,
		sessionManager: session.NewManager(),
		monitor:        mon,
		shutdownChan:   make(chan struct{}),
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
	}
}

// Start blocks in the accept loop until Shutdown closes the listener.
// Session goroutines are spawned detached; they end on their own when
// their transport closes or the player quits.
func (s *GameServer) Start() error {
	listener, err := net.Listen("tcp", s.addr)
	if err != nil {
		return err
	}
	s.listener = listener

	if s.wsAddr != "" {
		go s.serveWebSocket()
	}

	logger.Log.Infof("Game server listening on %s", s.addr)
	for {
		conn, err := listener.Accept()
		if err != nil {
			select {
			case <-s.shutdownChan:
				return nil
			default:
			}
			logger.Log.Errorf("Accept error: %v", err)
			continue
		}
		go s.handleConnection(network.NewTCPConnection(conn))
	}
}

func (s *GameServer) Shutdown() {
	close(s.shutdownChan)
	if s.listener != nil {
		s.listener.Close()
	}
}

func (s *GameServer) serveWebSocket() {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.handleWebSocket)
	logger.Log.Infof("WebSocket endpoint listening on %s", s.wsAddr)
	if err := http.ListenAndServe(s.wsAddr, mux); err != nil {
		logger.Log.Errorf("WebSocket listener failed: %v", err)
	}
}

func (s *GameServer) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		logger.Log.Infof("Failed to upgrade connection: %v", err)
		return
	}
	s.handleConnection(network.NewWSConnection(conn))
}

func (s *GameServer) handleConnection(conn network.Connection) {
	sess := session.NewSession(uuid.New().String(), conn)
	s.sessionManager.Add(sess)
	logger.Log.Infof("New connection from %s, session ID: %s", conn.RemoteAddr(), sess.ID)

	defer func() {
		s.sessionManager.Remove(sess.ID)
		conn.Close()
		logger.Log.Infof("Connection closed from %s, session ID: %s", conn.RemoteAddr(), sess.ID)
	}()

	idx, symbol, err := s.game.Join(conn)
	if err != nil {
		if s.monitor != nil {
			s.monitor.IncJoinsRejected()
		}
		conn.Send(game.MsgServerFull)
		return
	}
	sess.Slot = idx
	sess.Symbol = symbol
	logger.Log.Infof("Player %c joined (session %s)", symbol, sess.ID)

	// Idempotent with the QUIT path and with a combat death or broadcast
	// prune that already freed the slot.
	defer s.game.Leave(idx)

	// The welcome goes to the new session only, outside the game guard.
	if err := conn.Send(game.WelcomeMessage(symbol)); err != nil {
		return
	}

	for {
		select {
		case <-s.shutdownChan:
			return
		default:
		}

		line, err := conn.ReadLine()
		if err != nil {
			// Transport closed or errored: the deferred Leave frees the
			// slot and broadcasts the departure.
			return
		}
		sess.Touch()

		start := time.Now()
		outcome := s.game.HandleCommand(idx, line)
		if s.monitor != nil {
			s.monitor.IncCommandsReceived()
			s.monitor.ObserveCommandLatency(time.Since(start))
		}

		if outcome.Reply != "" {
			if err := conn.Send(outcome.Reply); err != nil {
				return
			}
		}
		if outcome.Result == game.Quit {
			return
		}
	}
}

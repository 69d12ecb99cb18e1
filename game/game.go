package game

import (
	"errors"
	"math/rand"
	"sync"

	"github.com/wfunc/arena/logger"
)

// ErrServerFull is returned by Join when all four slots are taken.
var ErrServerFull = errors.New("server full")

// Game owns the arena and roster behind a single exclusive guard. Every
// externally triggered transition (join, move, attack, quit, disconnect
// cleanup) runs as one atomic check-then-act sequence under mu, and the
// broadcast for a mutation is rendered and delivered before the triggering
// operation releases it, so observers never see a half-applied command.
type Game struct {
	mu     sync.Mutex
	arena  *Arena
	roster *Roster
	rng    *rand.Rand
	events chan Event
}

func New(arena *Arena, rng *rand.Rand) *Game {
	return &Game{
		arena:  arena,
		roster: NewRoster(),
		rng:    rng,
		events: make(chan Event, eventBuffer),
	}
}

// Join assigns the lowest free slot to conn, spawns the player at a random
// free cell and broadcasts the new roster. The welcome message is the
// caller's job, outside the guard. On ErrServerFull the caller still owns
// the transport.
func (g *Game) Join(conn Transport) (int, byte, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.roster.CountOccupied() >= MaxPlayers {
		return -1, 0, ErrServerFull
	}
	idx, ok := g.roster.FindFreeSlot()
	if !ok {
		// Count and occupancy flags disagree. Not reachable through any
		// command path; reject the join rather than crashing the game.
		logger.Log.Errorf("Roster count %d below capacity but no free slot", g.roster.CountOccupied())
		return -1, 0, ErrServerFull
	}
	g.roster.Occupy(idx, conn, g.arena, g.rng)
	slot := g.roster.Slot(idx)
	g.emit(Event{Type: EventJoin, Symbol: slot.Symbol, Pos: slot.Pos, HP: slot.HP})
	g.broadcastLocked()
	return idx, slot.Symbol, nil
}

// Leave frees slot idx if it is still occupied and broadcasts the smaller
// roster. Idempotent, so the QUIT path, a combat death and the read-loop
// cleanup can all race on it safely.
func (g *Game) Leave(idx int) {
	g.mu.Lock()
	defer g.mu.Unlock()

	s := g.roster.slot(idx)
	if !s.occupied {
		return
	}
	symbol := s.Symbol
	g.roster.Free(idx)
	g.emit(Event{Type: EventLeave, Symbol: symbol})
	g.broadcastLocked()
}

func (g *Game) CountOccupied() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.roster.CountOccupied()
}

// SlotStatus is a read-only view of one occupied slot.
type SlotStatus struct {
	Symbol string
	HP     int
	Row    int
	Col    int
}

// Status snapshots every occupied slot for admin surfaces.
func (g *Game) Status() []SlotStatus {
	g.mu.Lock()
	defer g.mu.Unlock()

	out := make([]SlotStatus, 0, MaxPlayers)
	for i := 0; i < MaxPlayers; i++ {
		s := g.roster.slot(i)
		if !s.occupied {
			continue
		}
		out = append(out, SlotStatus{
			Symbol: string(s.Symbol),
			HP:     s.HP,
			Row:    s.Pos.Row,
			Col:    s.Pos.Col,
		})
	}
	return out
}

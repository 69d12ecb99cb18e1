package game

import (
	"math/rand"
)

// Transport is the write side of one player's connection. Implementations
// must tolerate Close being called more than once.
type Transport interface {
	Send(text string) error
	Close() error
}

// PlayerSlot is one of the four fixed-identity player records. The symbol
// is bound to the slot index for the process lifetime and is reused across
// different connections; position and HP are only meaningful while the
// slot is occupied.
type PlayerSlot struct {
	Symbol   byte
	Pos      Coord
	HP       int
	conn     Transport
	occupied bool
}

func (s PlayerSlot) Occupied() bool {
	return s.occupied
}

// Roster is the authoritative player table. It holds no lock of its own:
// every method runs with the owning Game's guard held.
type Roster struct {
	slots [MaxPlayers]PlayerSlot
	count int
}

func NewRoster() *Roster {
	r := &Roster{}
	for i := range r.slots {
		r.slots[i].Symbol = 'A' + byte(i)
	}
	return r
}

// FindFreeSlot returns the lowest free slot index.
func (r *Roster) FindFreeSlot() (int, bool) {
	for i := range r.slots {
		if !r.slots[i].occupied {
			return i, true
		}
	}
	return -1, false
}

// IsCellFree reports whether no occupied slot other than excluding sits on c.
func (r *Roster) IsCellFree(c Coord, excluding int) bool {
	for i := range r.slots {
		if i == excluding || !r.slots[i].occupied {
			continue
		}
		if r.slots[i].Pos == c {
			return false
		}
	}
	return true
}

// Occupy claims slot idx for conn and spawns it at a random cell that is
// neither an obstacle nor another player's position. With at most 5
// obstacles and 3 other players there are always free cells, so the
// rejection loop terminates.
func (r *Roster) Occupy(idx int, conn Transport, arena *Arena, rng *rand.Rand) {
	s := &r.slots[idx]
	s.occupied = true
	s.conn = conn
	s.HP = MaxHP
	for {
		c := Coord{Row: rng.Intn(GridSize), Col: rng.Intn(GridSize)}
		if arena.IsObstacle(c) || !r.IsCellFree(c, idx) {
			continue
		}
		s.Pos = c
		break
	}
	r.count++
}

// Free releases slot idx and its transport. Safe to call on an already
// free slot: the transport is closed at most once and the count is only
// decremented if the slot was occupied, so concurrent termination paths
// cannot double-decrement.
func (r *Roster) Free(idx int) {
	s := &r.slots[idx]
	if s.conn != nil {
		s.conn.Close()
		s.conn = nil
	}
	if s.occupied {
		s.occupied = false
		r.count--
	}
}

func (r *Roster) CountOccupied() int {
	return r.count
}

// Slot returns a copy of the slot record for inspection.
func (r *Roster) Slot(idx int) PlayerSlot {
	return r.slots[idx]
}

func (r *Roster) slot(idx int) *PlayerSlot {
	return &r.slots[idx]
}

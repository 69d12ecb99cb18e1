package game

import (
	"time"
)

// EventType tags entries on the game's observer stream.
type EventType int

const (
	EventJoin EventType = iota
	EventMove
	EventAttack
	EventDeath
	EventLeave
	EventBroadcast
)

func (t EventType) String() string {
	switch t {
	case EventJoin:
		return "join"
	case EventMove:
		return "move"
	case EventAttack:
		return "attack"
	case EventDeath:
		return "death"
	case EventLeave:
		return "leave"
	case EventBroadcast:
		return "broadcast"
	}
	return "unknown"
}

// Event is one observable state transition. For EventAttack, Symbol is the
// attacker and Target the slot that took damage; for EventDeath, Symbol is
// the victim and Target the killer.
type Event struct {
	Type   EventType
	Symbol byte
	Target byte
	Pos    Coord
	HP     int
	At     time.Time
}

const eventBuffer = 256

// emit publishes ev without blocking. The stream feeds metrics and match
// history only, so an event is dropped rather than stalling a command that
// holds the guard.
func (g *Game) emit(ev Event) {
	ev.At = time.Now()
	select {
	case g.events <- ev:
	default:
	}
}

// Events is the stream of state transitions, in guard-acquisition order.
func (g *Game) Events() <-chan Event {
	return g.events
}

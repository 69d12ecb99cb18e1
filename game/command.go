package game

import (
	"fmt"
	"strings"
)

// Caller-only reply texts. These never change state and are sent by the
// session loop after the guard is released.
const (
	msgMoveUsage   = "Usage: MOVE <UP|DOWN|LEFT|RIGHT>\n"
	msgInvalidDir  = "Invalid direction. Use UP, DOWN, LEFT, or RIGHT.\n"
	msgOutOfBounds = "Move blocked: out of bounds.\n"
	msgObstacle    = "Move blocked: obstacle in the way.\n"
	msgCellTaken   = "Move blocked: another player is in that cell.\n"
	msgNoTargets   = "No targets adjacent to attack.\n"
	msgUnknown     = "Unknown command. Available commands: MOVE, ATTACK, QUIT.\n"
)

// MsgServerFull is sent to a connection rejected at full occupancy.
const MsgServerFull = "Server full. Try again later.\n"

// WelcomeMessage identifies the assigned symbol to a new session.
func WelcomeMessage(symbol byte) string {
	return fmt.Sprintf("Welcome to the game! You are player %c.\n", symbol)
}

// Result tags how a command resolved.
type Result int

const (
	// Applied means state changed and a broadcast already went out.
	Applied Result = iota
	// Rejected covers protocol errors and rule violations: reply to the
	// issuing session only, nothing mutated, nothing broadcast.
	Rejected
	// Quit means the acting slot is gone and the session loop should end.
	Quit
)

// Outcome is consumed by the session loop to pick the caller-only reply
// and decide whether to keep reading. Reply is empty for Applied.
type Outcome struct {
	Result Result
	Reply  string
}

var directionOffsets = map[string]Coord{
	"UP":    {Row: -1},
	"DOWN":  {Row: 1},
	"LEFT":  {Col: -1},
	"RIGHT": {Col: 1},
}

// HandleCommand parses one trimmed line from slot idx and applies it.
// Keywords and direction arguments are case-insensitive.
func (g *Game) HandleCommand(idx int, line string) Outcome {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return Outcome{Result: Rejected, Reply: msgUnknown}
	}

	switch strings.ToUpper(fields[0]) {
	case "MOVE":
		if len(fields) < 2 {
			return Outcome{Result: Rejected, Reply: msgMoveUsage}
		}
		return g.move(idx, fields[1])
	case "ATTACK":
		return g.attack(idx)
	case "QUIT":
		g.Leave(idx)
		return Outcome{Result: Quit}
	default:
		return Outcome{Result: Rejected, Reply: msgUnknown}
	}
}

func (g *Game) move(idx int, dirToken string) Outcome {
	offset, ok := directionOffsets[strings.ToUpper(dirToken)]
	if !ok {
		return Outcome{Result: Rejected, Reply: msgInvalidDir}
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	s := g.roster.slot(idx)
	if !s.occupied {
		// The slot was freed (killed or pruned) after the line was read;
		// the session is on its way out.
		return Outcome{Result: Quit}
	}

	target := Coord{Row: s.Pos.Row + offset.Row, Col: s.Pos.Col + offset.Col}
	switch {
	case !g.arena.InBounds(target):
		return Outcome{Result: Rejected, Reply: msgOutOfBounds}
	case g.arena.IsObstacle(target):
		return Outcome{Result: Rejected, Reply: msgObstacle}
	case !g.roster.IsCellFree(target, idx):
		return Outcome{Result: Rejected, Reply: msgCellTaken}
	}

	s.Pos = target
	g.emit(Event{Type: EventMove, Symbol: s.Symbol, Pos: target})
	g.broadcastLocked()
	return Outcome{Result: Applied}
}

func (g *Game) attack(idx int) Outcome {
	g.mu.Lock()
	defer g.mu.Unlock()

	attacker := g.roster.slot(idx)
	if !attacker.occupied {
		return Outcome{Result: Quit}
	}

	// Freeze the target list before applying any damage so resolution
	// order cannot change who gets hit.
	var targets []int
	for i := 0; i < MaxPlayers; i++ {
		if i == idx {
			continue
		}
		s := g.roster.slot(i)
		if !s.occupied {
			continue
		}
		dr := abs(s.Pos.Row - attacker.Pos.Row)
		dc := abs(s.Pos.Col - attacker.Pos.Col)
		if dr+dc == 1 {
			targets = append(targets, i)
		}
	}
	if len(targets) == 0 {
		return Outcome{Result: Rejected, Reply: msgNoTargets}
	}

	for _, i := range targets {
		s := g.roster.slot(i)
		s.HP -= Damage
		if s.HP <= 0 {
			s.HP = 0
			g.emit(Event{Type: EventDeath, Symbol: s.Symbol, Target: attacker.Symbol})
			g.roster.Free(i)
			continue
		}
		g.emit(Event{Type: EventAttack, Symbol: attacker.Symbol, Target: s.Symbol, HP: s.HP})
	}

	g.broadcastLocked()
	return Outcome{Result: Applied}
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

package game

import (
	"fmt"
	"strings"

	"github.com/wfunc/arena/logger"
)

const (
	obstacleMarker = 'X'
	emptyMarker    = '.'
)

// renderSnapshotLocked builds the full-state text block: the grid row by
// row, then one status line per occupied slot. Caller holds g.mu.
func (g *Game) renderSnapshotLocked() string {
	var b strings.Builder
	b.WriteString("Grid:\n")
	for row := 0; row < GridSize; row++ {
		for col := 0; col < GridSize; col++ {
			cell := byte(emptyMarker)
			if g.arena.IsObstacle(Coord{Row: row, Col: col}) {
				cell = obstacleMarker
			}
			for i := 0; i < MaxPlayers; i++ {
				s := g.roster.slot(i)
				if s.occupied && s.Pos.Row == row && s.Pos.Col == col {
					cell = s.Symbol
					break
				}
			}
			b.WriteByte(cell)
			b.WriteByte(' ')
		}
		b.WriteByte('\n')
	}
	b.WriteString("Players:\n")
	for i := 0; i < MaxPlayers; i++ {
		s := g.roster.slot(i)
		if s.occupied {
			fmt.Fprintf(&b, "%c: HP=%d at (%d,%d)\n", s.Symbol, s.HP, s.Pos.Row, s.Pos.Col)
		}
	}
	return b.String()
}

// broadcastLocked delivers the snapshot to every occupied slot. A slot
// whose send fails is treated as disconnected and freed on the spot: the
// guard from the triggering operation is still held, so there is no window
// between "just broadcast to" and "slot actually gone". The pruned slot is
// skipped for the rest of the pass; its removal rides along with the next
// state-changing broadcast. Caller holds g.mu.
func (g *Game) broadcastLocked() {
	snapshot := g.renderSnapshotLocked()
	for i := 0; i < MaxPlayers; i++ {
		s := g.roster.slot(i)
		if !s.occupied || s.conn == nil {
			continue
		}
		if err := s.conn.Send(snapshot); err != nil {
			logger.Log.Warnf("Broadcast to player %c failed, removing: %v", s.Symbol, err)
			symbol := s.Symbol
			g.roster.Free(i)
			g.emit(Event{Type: EventLeave, Symbol: symbol})
		}
	}
	g.emit(Event{Type: EventBroadcast})
}

package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// joinAt joins a player and pins it to a known cell.
func joinAt(t *testing.T, g *Game, pos Coord) (int, *mockTransport) {
	t.Helper()
	conn := &mockTransport{}
	idx, _, err := g.Join(conn)
	require.NoError(t, err)
	setPos(g, idx, pos)
	return idx, conn
}

func TestMoveUp(t *testing.T) {
	g := newTestGame(emptyArena())
	idx, conn := joinAt(t, g, Coord{2, 2})
	before := conn.sentCount()

	out := g.HandleCommand(idx, "MOVE UP")

	assert.Equal(t, Applied, out.Result)
	assert.Empty(t, out.Reply)
	assert.Equal(t, Coord{1, 2}, position(g, idx))
	assert.Equal(t, MaxHP, hp(g, idx))
	assert.Equal(t, before+1, conn.sentCount())
	assert.Contains(t, conn.lastSent(), "A: HP=100 at (1,2)")
}

func TestMoveAllDirections(t *testing.T) {
	tests := []struct {
		command string
		want    Coord
	}{
		{"MOVE UP", Coord{1, 2}},
		{"MOVE DOWN", Coord{3, 2}},
		{"MOVE LEFT", Coord{2, 1}},
		{"MOVE RIGHT", Coord{2, 3}},
		{"move down", Coord{3, 2}},
		{"Move Right", Coord{2, 3}},
	}
	for _, tt := range tests {
		t.Run(tt.command, func(t *testing.T) {
			g := newTestGame(emptyArena())
			idx, _ := joinAt(t, g, Coord{2, 2})

			out := g.HandleCommand(idx, tt.command)
			assert.Equal(t, Applied, out.Result)
			assert.Equal(t, tt.want, position(g, idx))
		})
	}
}

func TestMoveOutOfBounds(t *testing.T) {
	g := newTestGame(emptyArena())
	idx, conn := joinAt(t, g, Coord{0, 0})
	before := conn.sentCount()

	out := g.HandleCommand(idx, "MOVE UP")

	assert.Equal(t, Rejected, out.Result)
	assert.Equal(t, "Move blocked: out of bounds.\n", out.Reply)
	assert.Equal(t, Coord{0, 0}, position(g, idx))
	assert.Equal(t, MaxHP, hp(g, idx))
	// Rejections never broadcast.
	assert.Equal(t, before, conn.sentCount())
}

func TestMoveBlockedByObstacle(t *testing.T) {
	g := newTestGame(arenaWith(Coord{1, 2}))
	idx, conn := joinAt(t, g, Coord{2, 2})
	before := conn.sentCount()

	out := g.HandleCommand(idx, "MOVE UP")

	assert.Equal(t, Rejected, out.Result)
	assert.Equal(t, "Move blocked: obstacle in the way.\n", out.Reply)
	assert.Equal(t, Coord{2, 2}, position(g, idx))
	assert.Equal(t, before, conn.sentCount())
}

func TestMoveBlockedByPlayer(t *testing.T) {
	g := newTestGame(emptyArena())
	idx, _ := joinAt(t, g, Coord{2, 2})
	joinAt(t, g, Coord{2, 3})

	out := g.HandleCommand(idx, "MOVE RIGHT")

	assert.Equal(t, Rejected, out.Result)
	assert.Equal(t, "Move blocked: another player is in that cell.\n", out.Reply)
	assert.Equal(t, Coord{2, 2}, position(g, idx))
}

func TestMoveMissingDirection(t *testing.T) {
	g := newTestGame(emptyArena())
	idx, _ := joinAt(t, g, Coord{2, 2})

	out := g.HandleCommand(idx, "MOVE")

	assert.Equal(t, Rejected, out.Result)
	assert.Equal(t, "Usage: MOVE <UP|DOWN|LEFT|RIGHT>\n", out.Reply)
	assert.Equal(t, Coord{2, 2}, position(g, idx))
}

func TestMoveInvalidDirection(t *testing.T) {
	g := newTestGame(emptyArena())
	idx, _ := joinAt(t, g, Coord{2, 2})

	out := g.HandleCommand(idx, "MOVE NORTH")

	assert.Equal(t, Rejected, out.Result)
	assert.Equal(t, "Invalid direction. Use UP, DOWN, LEFT, or RIGHT.\n", out.Reply)
	assert.Equal(t, Coord{2, 2}, position(g, idx))
}

func TestUnknownCommand(t *testing.T) {
	g := newTestGame(emptyArena())
	idx, conn := joinAt(t, g, Coord{2, 2})
	before := conn.sentCount()

	for _, line := range []string{"JUMP", "", "   ", "moveup"} {
		out := g.HandleCommand(idx, line)
		assert.Equal(t, Rejected, out.Result, "line %q", line)
		assert.Equal(t, "Unknown command. Available commands: MOVE, ATTACK, QUIT.\n", out.Reply)
	}
	assert.Equal(t, before, conn.sentCount())
}

func TestAttackNoTargets(t *testing.T) {
	g := newTestGame(emptyArena())
	idx, conn := joinAt(t, g, Coord{2, 2})
	joinAt(t, g, Coord{0, 0})
	before := conn.sentCount()

	out := g.HandleCommand(idx, "ATTACK")

	assert.Equal(t, Rejected, out.Result)
	assert.Equal(t, "No targets adjacent to attack.\n", out.Reply)
	assert.Equal(t, before, conn.sentCount())
}

func TestAttackDiagonalDoesNotCount(t *testing.T) {
	g := newTestGame(emptyArena())
	idx, _ := joinAt(t, g, Coord{2, 2})
	target, _ := joinAt(t, g, Coord{1, 3})

	out := g.HandleCommand(idx, "ATTACK")

	assert.Equal(t, Rejected, out.Result)
	assert.Equal(t, "No targets adjacent to attack.\n", out.Reply)
	assert.Equal(t, MaxHP, hp(g, target))
}

func TestAttackAdjacentTarget(t *testing.T) {
	g := newTestGame(emptyArena())
	idx, conn := joinAt(t, g, Coord{2, 2})
	target, _ := joinAt(t, g, Coord{2, 3})
	before := conn.sentCount()

	out := g.HandleCommand(idx, "ATTACK")

	assert.Equal(t, Applied, out.Result)
	assert.Equal(t, MaxHP-Damage, hp(g, target))
	assert.Equal(t, MaxHP, hp(g, idx))
	assert.Equal(t, before+1, conn.sentCount())
	assert.Contains(t, conn.lastSent(), "B: HP=80 at (2,3)")
}

func TestAttackHitsAllAdjacentTargets(t *testing.T) {
	g := newTestGame(emptyArena())
	idx, _ := joinAt(t, g, Coord{2, 2})
	up, _ := joinAt(t, g, Coord{1, 2})
	right, _ := joinAt(t, g, Coord{2, 3})
	far, _ := joinAt(t, g, Coord{4, 4})

	out := g.HandleCommand(idx, "ATTACK")

	assert.Equal(t, Applied, out.Result)
	assert.Equal(t, MaxHP-Damage, hp(g, up))
	assert.Equal(t, MaxHP-Damage, hp(g, right))
	assert.Equal(t, MaxHP, hp(g, far))
}

func TestAttackKillsAtZeroHP(t *testing.T) {
	g := newTestGame(emptyArena())
	idx, conn := joinAt(t, g, Coord{2, 2})
	target, targetConn := joinAt(t, g, Coord{2, 3})

	// Five hits take 100 HP to zero.
	for i := 0; i < 4; i++ {
		out := g.HandleCommand(idx, "ATTACK")
		require.Equal(t, Applied, out.Result)
	}
	require.Equal(t, Damage, hp(g, target))

	out := g.HandleCommand(idx, "ATTACK")

	assert.Equal(t, Applied, out.Result)
	assert.False(t, occupied(g, target))
	assert.Equal(t, 1, g.CountOccupied())
	assert.Equal(t, 1, targetConn.closeCount())
	// The broadcast for the killing blow already excludes the victim.
	assert.NotContains(t, conn.lastSent(), "B:")
	assert.NotContains(t, conn.lastSent(), "B ")
}

func TestQuitFreesSlotAndBroadcasts(t *testing.T) {
	g := newTestGame(emptyArena())
	idx, conn := joinAt(t, g, Coord{2, 2})
	_, other := joinAt(t, g, Coord{0, 0})
	before := other.sentCount()

	out := g.HandleCommand(idx, "quit")

	assert.Equal(t, Quit, out.Result)
	assert.Empty(t, out.Reply)
	assert.False(t, occupied(g, idx))
	assert.Equal(t, 1, g.CountOccupied())
	assert.Equal(t, 1, conn.closeCount())
	assert.Equal(t, before+1, other.sentCount())
	assert.NotContains(t, other.lastSent(), "A:")
}

func TestCommandFromFreedSlotIsANoOp(t *testing.T) {
	g := newTestGame(emptyArena())
	idx, _ := joinAt(t, g, Coord{2, 2})
	survivor, survivorConn := joinAt(t, g, Coord{0, 0})
	g.Leave(idx)
	before := survivorConn.sentCount()

	// A line that raced with the slot being freed must not mutate anything.
	for _, line := range []string{"MOVE UP", "ATTACK"} {
		out := g.HandleCommand(idx, line)
		assert.Equal(t, Quit, out.Result, "line %q", line)
	}
	assert.Equal(t, before, survivorConn.sentCount())
	assert.Equal(t, Coord{0, 0}, position(g, survivor))
}

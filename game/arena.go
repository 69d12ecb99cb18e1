package game

import (
	"math/rand"
)

const (
	GridSize   = 5
	MaxPlayers = 4
	MaxHP      = 100
	Damage     = 20

	minObstacles = 3
	maxObstacles = 5
)

// Coord is a grid cell, row-major from the top-left corner.
type Coord struct {
	Row int
	Col int
}

// Arena is the static battlefield layout. It is populated once at startup
// and never mutated afterwards, so lookups need no locking of their own;
// only their interleaving with roster writes is covered by the game guard.
type Arena struct {
	obstacles [GridSize][GridSize]bool
	count     int
}

// NewArena places between 3 and 5 obstacles at distinct random cells.
func NewArena(rng *rand.Rand) *Arena {
	a := &Arena{}
	target := minObstacles + rng.Intn(maxObstacles-minObstacles+1)
	for a.count < target {
		c := Coord{Row: rng.Intn(GridSize), Col: rng.Intn(GridSize)}
		if a.obstacles[c.Row][c.Col] {
			// already an obstacle here, try again
			continue
		}
		a.obstacles[c.Row][c.Col] = true
		a.count++
	}
	return a
}

func (a *Arena) InBounds(c Coord) bool {
	return c.Row >= 0 && c.Row < GridSize && c.Col >= 0 && c.Col < GridSize
}

func (a *Arena) IsObstacle(c Coord) bool {
	return a.obstacles[c.Row][c.Col]
}

func (a *Arena) ObstacleCount() int {
	return a.count
}

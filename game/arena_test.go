package game

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewArenaObstacleCount(t *testing.T) {
	for seed := int64(0); seed < 25; seed++ {
		a := NewArena(rand.New(rand.NewSource(seed)))
		assert.GreaterOrEqual(t, a.ObstacleCount(), minObstacles, "seed %d", seed)
		assert.LessOrEqual(t, a.ObstacleCount(), maxObstacles, "seed %d", seed)

		// The count must match the cells actually marked.
		marked := 0
		for r := 0; r < GridSize; r++ {
			for c := 0; c < GridSize; c++ {
				if a.IsObstacle(Coord{r, c}) {
					marked++
				}
			}
		}
		assert.Equal(t, a.ObstacleCount(), marked, "seed %d", seed)
	}
}

func TestArenaInBounds(t *testing.T) {
	a := emptyArena()

	assert.True(t, a.InBounds(Coord{0, 0}))
	assert.True(t, a.InBounds(Coord{GridSize - 1, GridSize - 1}))
	assert.True(t, a.InBounds(Coord{2, 3}))

	assert.False(t, a.InBounds(Coord{-1, 0}))
	assert.False(t, a.InBounds(Coord{0, -1}))
	assert.False(t, a.InBounds(Coord{GridSize, 0}))
	assert.False(t, a.InBounds(Coord{0, GridSize}))
}

func TestArenaIsObstacle(t *testing.T) {
	a := arenaWith(Coord{1, 2}, Coord{4, 0})

	assert.True(t, a.IsObstacle(Coord{1, 2}))
	assert.True(t, a.IsObstacle(Coord{4, 0}))
	assert.False(t, a.IsObstacle(Coord{0, 0}))
	assert.False(t, a.IsObstacle(Coord{2, 1}))
}

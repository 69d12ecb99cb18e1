// models/models.go
package models

import (
	"time"
)

// MatchEvent is one row of match history: a join, move, attack, death or
// leave as observed on the game event stream.
type MatchEvent struct {
	Type      string    `json:"type"`
	Symbol    string    `json:"symbol"`
	Target    string    `json:"target,omitempty"`
	Row       int       `json:"row"`
	Col       int       `json:"col"`
	HP        int       `json:"hp"`
	CreatedAt time.Time `json:"created_at"`
}

// StatsDelta is the increment a single event contributes to a player's
// lifetime tally.
type StatsDelta struct {
	Joins   int
	Moves   int
	Attacks int
	Kills   int
	Deaths  int
}

// IsZero reports whether applying the delta would change nothing.
func (d StatsDelta) IsZero() bool {
	return d == StatsDelta{}
}

// PlayerStats is the per-symbol lifetime tally. Symbols are reused across
// connections, so this counts the slot's history, not one person's.
type PlayerStats struct {
	Symbol    string    `json:"symbol"`
	Joins     int       `json:"joins"`
	Moves     int       `json:"moves"`
	Attacks   int       `json:"attacks"`
	Kills     int       `json:"kills"`
	Deaths    int       `json:"deaths"`
	UpdatedAt time.Time `json:"updated_at"`
}

// services/recorder.go
package services

import (
	"github.com/wfunc/arena/game"
	"github.com/wfunc/arena/logger"
	"github.com/wfunc/arena/models"
	"github.com/wfunc/arena/persistence"
)

// Recorder translates game events into match history and lifetime stats.
// It runs on the event-pump goroutine; storage errors are logged and the
// event dropped, never propagated back into the game.
type Recorder struct {
	store persistence.Store
}

func NewRecorder(store persistence.Store) *Recorder {
	return &Recorder{store: store}
}

// Record persists one event. Broadcast ticks are metrics-only and skipped.
func (r *Recorder) Record(ev game.Event) {
	if ev.Type == game.EventBroadcast {
		return
	}

	event := &models.MatchEvent{
		Type:      ev.Type.String(),
		Symbol:    string(ev.Symbol),
		Row:       ev.Pos.Row,
		Col:       ev.Pos.Col,
		HP:        ev.HP,
		CreatedAt: ev.At,
	}
	if ev.Target != 0 {
		event.Target = string(ev.Target)
	}
	if err := r.store.SaveMatchEvent(event); err != nil {
		logger.Log.Errorf("Failed to save match event: %v", err)
		return
	}

	for symbol, delta := range statsDeltas(ev) {
		if err := r.store.ApplyStatsDelta(symbol, delta); err != nil {
			logger.Log.Errorf("Failed to update stats for %s: %v", symbol, err)
		}
	}
}

// statsDeltas maps one event onto per-symbol tally increments. A death
// credits a kill to the attacker and a death to the victim.
func statsDeltas(ev game.Event) map[string]models.StatsDelta {
	deltas := make(map[string]models.StatsDelta, 2)
	switch ev.Type {
	case game.EventJoin:
		deltas[string(ev.Symbol)] = models.StatsDelta{Joins: 1}
	case game.EventMove:
		deltas[string(ev.Symbol)] = models.StatsDelta{Moves: 1}
	case game.EventAttack:
		deltas[string(ev.Symbol)] = models.StatsDelta{Attacks: 1}
	case game.EventDeath:
		deltas[string(ev.Symbol)] = models.StatsDelta{Deaths: 1}
		deltas[string(ev.Target)] = models.StatsDelta{Attacks: 1, Kills: 1}
	}
	return deltas
}

// PlayerStats exposes the stored tally, e.g. for the admin RPC.
func (r *Recorder) PlayerStats(symbol string) (*models.PlayerStats, error) {
	return r.store.PlayerStats(symbol)
}

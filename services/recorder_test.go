package services

import (
	"testing"

	"github.com/wfunc/arena/game"
	"github.com/wfunc/arena/models"
)

// mockStore is an in-memory test double for persistence.Store.
type mockStore struct {
	events []models.MatchEvent
	deltas map[string]models.StatsDelta
}

func newMockStore() *mockStore {
	return &mockStore{deltas: make(map[string]models.StatsDelta)}
}

func (m *mockStore) SaveMatchEvent(event *models.MatchEvent) error {
	m.events = append(m.events, *event)
	return nil
}

func (m *mockStore) ApplyStatsDelta(symbol string, delta models.StatsDelta) error {
	d := m.deltas[symbol]
	d.Joins += delta.Joins
	d.Moves += delta.Moves
	d.Attacks += delta.Attacks
	d.Kills += delta.Kills
	d.Deaths += delta.Deaths
	m.deltas[symbol] = d
	return nil
}

func (m *mockStore) PlayerStats(symbol string) (*models.PlayerStats, error) {
	return nil, nil
}

func (m *mockStore) Close() error { return nil }

func TestRecorderSkipsBroadcastTicks(t *testing.T) {
	store := newMockStore()
	rec := NewRecorder(store)

	rec.Record(game.Event{Type: game.EventBroadcast})

	if len(store.events) != 0 {
		t.Fatalf("Broadcast ticks should not be persisted, got %d events", len(store.events))
	}
}

func TestRecorderPersistsMoveEvent(t *testing.T) {
	store := newMockStore()
	rec := NewRecorder(store)

	rec.Record(game.Event{
		Type:   game.EventMove,
		Symbol: 'A',
		Pos:    game.Coord{Row: 1, Col: 2},
	})

	if len(store.events) != 1 {
		t.Fatalf("Expected 1 event, got %d", len(store.events))
	}
	ev := store.events[0]
	if ev.Type != "move" || ev.Symbol != "A" || ev.Row != 1 || ev.Col != 2 {
		t.Errorf("Unexpected event row: %+v", ev)
	}
	if store.deltas["A"].Moves != 1 {
		t.Errorf("Expected 1 move for A, got %d", store.deltas["A"].Moves)
	}
}

func TestRecorderDeathCreditsKillerAndVictim(t *testing.T) {
	store := newMockStore()
	rec := NewRecorder(store)

	rec.Record(game.Event{
		Type:   game.EventDeath,
		Symbol: 'B',
		Target: 'A',
	})

	if store.deltas["B"].Deaths != 1 {
		t.Errorf("Expected 1 death for B, got %d", store.deltas["B"].Deaths)
	}
	if store.deltas["A"].Kills != 1 {
		t.Errorf("Expected 1 kill for A, got %d", store.deltas["A"].Kills)
	}
	if len(store.events) != 1 || store.events[0].Target != "A" {
		t.Errorf("Expected the death row to name the killer, got %+v", store.events)
	}
}

func TestRecorderCountsAttacksPerTargetHit(t *testing.T) {
	store := newMockStore()
	rec := NewRecorder(store)

	rec.Record(game.Event{Type: game.EventAttack, Symbol: 'A', Target: 'B', HP: 80})
	rec.Record(game.Event{Type: game.EventAttack, Symbol: 'A', Target: 'C', HP: 60})

	if store.deltas["A"].Attacks != 2 {
		t.Errorf("Expected 2 attacks for A, got %d", store.deltas["A"].Attacks)
	}
}

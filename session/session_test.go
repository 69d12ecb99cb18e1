package session

import (
	"net"
	"testing"
)

// MockConnection is a test double for the network.Connection interface.
type MockConnection struct{}

func (m *MockConnection) Send(text string) error    { return nil }
func (m *MockConnection) ReadLine() (string, error) { return "", nil }
func (m *MockConnection) Close() error              { return nil }
func (m *MockConnection) RemoteAddr() net.Addr      { return &net.TCPAddr{} }

func TestNewManager(t *testing.T) {
	manager := NewManager()
	if manager == nil {
		t.Fatal("NewManager should not return nil")
	}
	if manager.sessions == nil {
		t.Fatal("NewManager should initialize the sessions map")
	}
}

func TestNewSessionDefaults(t *testing.T) {
	sess := NewSession("test_session", &MockConnection{})

	if sess.Slot != -1 {
		t.Errorf("Expected slot -1 before join, got %d", sess.Slot)
	}
	if sess.CreatedAt.IsZero() || sess.LastActive.IsZero() {
		t.Error("Expected timestamps to be initialized")
	}
}

func TestManager_Add_Get_Remove(t *testing.T) {
	manager := NewManager()
	sessionID := "test_session_1"
	sess := NewSession(sessionID, &MockConnection{})

	// Test Add
	manager.Add(sess)
	if manager.Count() != 1 {
		t.Fatalf("Expected session count to be 1, got %d", manager.Count())
	}

	// Test Get
	retrievedSess, exists := manager.Get(sessionID)
	if !exists {
		t.Fatal("Get should find the added session")
	}
	if retrievedSess != sess {
		t.Fatal("Get should return the same session instance")
	}

	// Test Remove
	manager.Remove(sessionID)
	if manager.Count() != 0 {
		t.Fatalf("Expected session count to be 0 after removal, got %d", manager.Count())
	}

	_, exists = manager.Get(sessionID)
	if exists {
		t.Fatal("Get should not find the removed session")
	}
}

func TestSession_Touch(t *testing.T) {
	sess := NewSession("test_session", &MockConnection{})
	before := sess.LastActive

	sess.Touch()
	if sess.LastActive.Before(before) {
		t.Error("Touch should never move LastActive backwards")
	}
}

// session/session.go
package session

import (
	"sync"
	"time"

	"github.com/wfunc/arena/network"
)

// Session ties one connection to its roster slot for the duration of a
// visit. The slot index is -1 until the join is accepted.
type Session struct {
	ID         string
	Conn       network.Connection
	Slot       int
	Symbol     byte
	CreatedAt  time.Time
	LastActive time.Time
}

func NewSession(id string, conn network.Connection) *Session {
	now := time.Now()
	return &Session{
		ID:         id,
		Conn:       conn,
		Slot:       -1,
		CreatedAt:  now,
		LastActive: now,
	}
}

// Touch records activity. Only the session's own read loop calls it.
func (s *Session) Touch() {
	s.LastActive = time.Now()
}

func (s *Session) GetID() string {
	return s.ID
}

func (s *Session) Close() error {
	return s.Conn.Close()
}

// Manager tracks live sessions, including ones that were refused a slot
// and are still being told so.
type Manager struct {
	sessions map[string]*Session
	mutex    sync.RWMutex
}

func NewManager() *Manager {
	return &Manager{
		sessions: make(map[string]*Session),
	}
}

func (m *Manager) Add(session *Session) {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	m.sessions[session.ID] = session
}

func (m *Manager) Remove(sessionID string) {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	delete(m.sessions, sessionID)
}

func (m *Manager) Get(sessionID string) (*Session, bool) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()
	session, exists := m.sessions[sessionID]
	return session, exists
}

func (m *Manager) Count() int {
	m.mutex.RLock()
	defer m.mutex.RUnlock()
	return len(m.sessions)
}

package workflow

import (
	"errors"
	"sync"

	"github.com/google/uuid"
)

// ErrSessionNotFound is returned for unknown or dropped session ids
var ErrSessionNotFound = errors.New("session not found")

type session struct {
	mu    sync.Mutex
	state *State
}

// Manager keeps one isolated State per session
type Manager struct {
	mu       sync.RWMutex
	sessions map[string]*session
	opts     []Option
}

// NewManager creates a session manager. opts are applied to every new State.
func NewManager(opts ...Option) *Manager {
	return &Manager{
		sessions: make(map[string]*session),
		opts:     opts,
	}
}

// Create starts a new session and returns its id
func (m *Manager) Create() string {
	id := uuid.NewString()
	m.mu.Lock()
	m.sessions[id] = &session{state: NewState(m.opts...)}
	m.mu.Unlock()
	return id
}

// Drop discards a session
func (m *Manager) Drop(id string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.sessions[id]; !ok {
		return false
	}
	delete(m.sessions, id)
	return true
}

// Len returns the number of live sessions
func (m *Manager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

// With runs fn against the session's State while holding that session's lock.
// Other sessions are not blocked.
func (m *Manager) With(id string, fn func(*State) error) error {
	m.mu.RLock()
	sess, ok := m.sessions[id]
	m.mu.RUnlock()
	if !ok {
		return ErrSessionNotFound
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()
	return fn(sess.state)
}

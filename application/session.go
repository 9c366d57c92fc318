package application

import (
	"context"
	"errors"
	"sync"

	"github.com/google/uuid"

	"github.com/merchantlab/consult-go/domain/conversation"
)

// ErrSessionNotFound indicates a lookup for an unknown session.
var ErrSessionNotFound = errors.New("session not found")

// Session is one user's conversation: a stable identifier plus the
// state threaded through every turn. Turns on the same session are
// serialized by the session lock.
type Session struct {
	ID string

	mu    sync.Mutex
	state *conversation.State
}

// State returns the session's conversation state. Callers must not
// mutate it while a turn is in flight.
func (s *Session) State() *conversation.State {
	return s.state
}

// SessionManager tracks active sessions by identifier.
type SessionManager struct {
	mu       sync.RWMutex
	sessions map[string]*Session
}

// NewSessionManager creates an empty session manager.
func NewSessionManager() *SessionManager {
	return &SessionManager{sessions: make(map[string]*Session)}
}

// Create starts a new session with a fresh state.
func (m *SessionManager) Create() *Session {
	session := &Session{
		ID:    uuid.NewString(),
		state: conversation.NewState(),
	}

	m.mu.Lock()
	m.sessions[session.ID] = session
	m.mu.Unlock()
	return session
}

// Get returns the session with the given identifier.
func (m *SessionManager) Get(id string) (*Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	session, ok := m.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return session, nil
}

// Delete removes a session. Deleting an unknown session is a no-op.
func (m *SessionManager) Delete(id string) {
	m.mu.Lock()
	delete(m.sessions, id)
	m.mu.Unlock()
}

// Count returns the number of active sessions.
func (m *SessionManager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

// Chat runs one turn on a session. Concurrent turns on the same
// session queue behind each other.
func (e *Engine) Chat(ctx context.Context, session *Session, input string) (string, error) {
	session.mu.Lock()
	defer session.mu.Unlock()
	return e.HandleTurn(ctx, session.state, input)
}

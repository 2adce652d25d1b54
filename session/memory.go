package session

import (
	"sync"

	"freelancebot/history"
)

type memoryStore struct {
	mu       sync.RWMutex
	sessions map[int64]*Session
}

// NewMemoryStore constructs the in-memory Store implementation.
func NewMemoryStore() Store {
	return &memoryStore{
		sessions: make(map[int64]*Session),
	}
}

func newSession() *Session {
	return &Session{State: StateIdle, Context: make(map[string]string)}
}

func (m *memoryStore) session(userID int64) *Session {
	sess, ok := m.sessions[userID]
	if !ok {
		sess = newSession()
		m.sessions[userID] = sess
	}
	return sess
}

// Get returns a copy of the session so callers never share mutable state.
func (m *memoryStore) Get(userID int64) Session {
	m.mu.RLock()
	defer m.mu.RUnlock()

	sess, ok := m.sessions[userID]
	if !ok {
		return Session{State: StateIdle, Context: map[string]string{}}
	}

	out := *sess
	out.Context = make(map[string]string, len(sess.Context))
	for k, v := range sess.Context {
		out.Context[k] = v
	}
	return out
}

func (m *memoryStore) SetState(userID int64, st State) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.session(userID).State = st
}

func (m *memoryStore) UpdateContext(userID int64, key, value string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.session(userID).Context[key] = value
}

func (m *memoryStore) SetLast(userID int64, prompt, response string, kind history.Kind) {
	m.mu.Lock()
	defer m.mu.Unlock()
	sess := m.session(userID)
	sess.LastPrompt = prompt
	sess.LastResponse = response
	sess.LastKind = kind
}

// Clear resets conversation progress but keeps the last generation so
// regenerate and save remain available from the main menu.
func (m *memoryStore) Clear(userID int64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	sess := m.session(userID)
	sess.State = StateIdle
	sess.Context = make(map[string]string)
}

package state

import (
	"sync"

	"admindesk/internal/models"
)

// Session bundles the per-session containers.
type Session struct {
	Posts   *PostList
	Counter *Counter
}

// Manager owns one Session per session id. Sessions are created lazily on
// first access and seeded with the configured fixtures.
type Manager struct {
	mu       sync.Mutex
	sessions map[string]*Session
	seed     func() []models.BlogPost
}

// NewManager returns a Manager. The seed function provides the initial post
// list for new sessions; nil means sessions start empty.
func NewManager(seed func() []models.BlogPost) *Manager {
	return &Manager{
		sessions: make(map[string]*Session),
		seed:     seed,
	}
}

// Get returns the session for the given id, creating and seeding it on
// first access.
func (m *Manager) Get(sessionID string) *Session {
	m.mu.Lock()
	defer m.mu.Unlock()

	if s, ok := m.sessions[sessionID]; ok {
		return s
	}

	s := &Session{Posts: &PostList{}, Counter: &Counter{}}
	if m.seed != nil {
		s.Posts.Set(m.seed())
	}
	m.sessions[sessionID] = s
	return s
}

// Drop discards the session for the given id, if any.
func (m *Manager) Drop(sessionID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, sessionID)
}

// Len returns the number of live sessions.
func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}

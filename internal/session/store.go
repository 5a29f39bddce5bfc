// Package session holds the in-memory cookie session store. Tokens are
// opaque UUIDs; expired entries are dropped lazily on lookup.
package session

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

type entry struct {
	userID    int
	expiresAt time.Time
}

type Store struct {
	mu       sync.RWMutex
	sessions map[string]entry
	ttl      time.Duration
}

func NewStore(ttl time.Duration) *Store {
	return &Store{
		sessions: make(map[string]entry),
		ttl:      ttl,
	}
}

// Create issues a new session token for the user.
func (s *Store) Create(userID int) string {
	token := uuid.NewString()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[token] = entry{
		userID:    userID,
		expiresAt: time.Now().Add(s.ttl),
	}
	return token
}

// Get returns the user id bound to the token, if the session is live.
func (s *Store) Get(token string) (int, bool) {
	s.mu.RLock()
	e, ok := s.sessions[token]
	s.mu.RUnlock()

	if !ok {
		return 0, false
	}
	if time.Now().After(e.expiresAt) {
		s.Delete(token)
		return 0, false
	}
	return e.userID, true
}

func (s *Store) Delete(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, token)
}

package session

import (
	"context"
	"sync"
	"time"
)

// Store abstracts session persistence so that claims can live in process
// memory (default) or in a backing Redis instance. Values are only ever
// reachable through the opaque token held by the client cookie.
type Store interface {
	// Load retrieves the claims saved under token. The second return is
	// false when the token is unknown or the session has expired.
	Load(ctx context.Context, token string) (map[string]string, bool, error)
	// Save creates or replaces the claims saved under token.
	Save(ctx context.Context, token string, values map[string]string, ttl time.Duration) error
	// Delete removes the session for token. Deleting an unknown token is a no-op.
	Delete(ctx context.Context, token string) error
}

type memoryEntry struct {
	values    map[string]string
	expiresAt time.Time
}

// MemoryStore is the default in-process Store. Expired sessions are dropped
// lazily on access.
type MemoryStore struct {
	mu       sync.Mutex
	sessions map[string]memoryEntry
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{sessions: make(map[string]memoryEntry)}
}

func (s *MemoryStore) Load(_ context.Context, token string) (map[string]string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.sessions[token]
	if !ok {
		return nil, false, nil
	}
	if time.Now().After(entry.expiresAt) {
		delete(s.sessions, token)
		return nil, false, nil
	}
	return cloneValues(entry.values), true, nil
}

func (s *MemoryStore) Save(_ context.Context, token string, values map[string]string, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.sessions[token] = memoryEntry{
		values:    cloneValues(values),
		expiresAt: time.Now().Add(ttl),
	}
	return nil
}

func (s *MemoryStore) Delete(_ context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, token)
	return nil
}

func cloneValues(values map[string]string) map[string]string {
	clone := make(map[string]string, len(values))
	for k, v := range values {
		clone[k] = v
	}
	return clone
}

// Package session provides the concrete session store implementations.
package session

import (
	"context"
	"sync"

	"passport/internal/domain/entity"
	"passport/internal/domain/repository"
)

// memoryStore keeps sessions in process memory. A single mutex serializes all
// writes, which trivially satisfies the same-key serialization requirement;
// the store is a small hot map, so finer-grained locking buys nothing here.
type memoryStore struct {
	mu       sync.RWMutex
	sessions map[string]*entity.Session
}

// NewMemoryStore is the constructor for memoryStore.
func NewMemoryStore() repository.SessionStore {
	return &memoryStore{
		sessions: make(map[string]*entity.Session),
	}
}

// Get returns a copy of the session for the key, or ErrSessionNotFound.
func (s *memoryStore) Get(_ context.Context, key string) (*entity.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stored, ok := s.sessions[key]
	if !ok {
		return nil, repository.ErrSessionNotFound
	}

	// Hand out a copy so callers cannot mutate the slot behind the lock.
	copied := *stored

	return &copied, nil
}

// Set stores the session for the key, replacing any previous value.
func (s *memoryStore) Set(_ context.Context, key string, session *entity.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	copied := *session
	s.sessions[key] = &copied

	return nil
}

// Clear removes the session for the key. Idempotent.
func (s *memoryStore) Clear(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.sessions, key)

	return nil
}

// Mutate applies fn to the stored session under the store lock, so it cannot
// interleave with a concurrent Set or Clear for the same key.
func (s *memoryStore) Mutate(_ context.Context, key string, fn func(*entity.Session)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored, ok := s.sessions[key]
	if !ok {
		return repository.ErrSessionNotFound
	}

	fn(stored)

	return nil
}

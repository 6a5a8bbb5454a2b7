package credential

import (
	"context"
	"sync"
)

// Store is durable key/value persistence for session credentials. Exactly two
// logical keys are used (constant.KeyAuthToken, constant.KeyUserInfo). Every
// operation may fail with a storage error; callers treat failure as "no
// session" rather than propagating a crash. Implementations are linearizable:
// each call is atomic from the caller's perspective.
type Store interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}

// MemoryStore is the in-memory Store used by tests and as a fallback when no
// durable backend is configured.
type MemoryStore struct {
	mu     sync.Mutex
	values map[string]string
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{values: make(map[string]string)}
}

func (s *MemoryStore) Get(_ context.Context, key string) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.values[key]
	return v, ok, nil
}

func (s *MemoryStore) Set(_ context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = value
	return nil
}

func (s *MemoryStore) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.values, key)
	return nil
}

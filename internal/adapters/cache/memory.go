package cache

import (
	"context"
	"sync"

	"conferencecentral/internal/domain"
)

// memoryStore is a process-local CacheStore used when no Redis URL is
// configured. Values do not survive a restart, which is acceptable for the
// derived entries kept here.
type memoryStore struct {
	mu     sync.RWMutex
	values map[string]string
}

// NewMemoryStore returns an in-memory CacheStore.
func NewMemoryStore() domain.CacheStore {
	return &memoryStore{values: make(map[string]string)}
}

func (s *memoryStore) Get(ctx context.Context, key string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.values[key]
	if !ok {
		return "", domain.ErrCacheMiss
	}
	return v, nil
}

func (s *memoryStore) Set(ctx context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = value
	return nil
}

func (s *memoryStore) Delete(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.values, key)
	return nil
}

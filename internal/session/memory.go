package session

import (
	"context"
	"sync"
)

// MemoryStore хранит ключи сессии в памяти процесса.
type MemoryStore struct {
	mu    sync.RWMutex
	items map[string]string
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{items: make(map[string]string)}
}

func (s *MemoryStore) MultiGet(_ context.Context, keys []string) (map[string]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[string]string, len(keys))
	for _, key := range keys {
		if value, ok := s.items[key]; ok {
			out[key] = value
		}
	}
	return out, nil
}

func (s *MemoryStore) MultiSet(_ context.Context, items map[string]string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for key, value := range items {
		s.items[key] = value
	}
	return nil
}

func (s *MemoryStore) MultiRemove(_ context.Context, keys []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, key := range keys {
		delete(s.items, key)
	}
	return nil
}

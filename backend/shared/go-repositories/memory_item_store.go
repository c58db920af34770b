package repositories

import (
	"context"
	"strings"
	"sync"
)

type memoryItemStore struct {
	mu    sync.RWMutex
	items map[string]string
}

// NewMemoryItemStore keeps items in process memory. Contents are lost on restart.
func NewMemoryItemStore() ItemStore {
	return &memoryItemStore{items: make(map[string]string)}
}

func (s *memoryItemStore) GetItem(_ context.Context, key string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.items[key]
	return v, ok, nil
}

func (s *memoryItemStore) SetItem(_ context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items[key] = value
	return nil
}

func (s *memoryItemStore) Keys(_ context.Context, prefix string) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []string
	for k := range s.items {
		if strings.HasPrefix(k, prefix) {
			out = append(out, k)
		}
	}
	return out, nil
}

func (s *memoryItemStore) Ping(context.Context) error { return nil }

func (s *memoryItemStore) Close() error { return nil }

// Package memory provides an in-process storage strategy. It is the default
// backend when no Redis address is configured, and the test double everywhere.
package memory

import (
	"context"
	"sync"
)

// Strategy is a mutex-guarded map implementing storage.Strategy.
type Strategy struct {
	mu    sync.RWMutex
	items map[string][]byte
}

func NewStrategy() *Strategy {
	return &Strategy{items: make(map[string][]byte)}
}

func (s *Strategy) Get(_ context.Context, key string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	payload, ok := s.items[key]
	if !ok {
		return nil, nil
	}
	out := make([]byte, len(payload))
	copy(out, payload)
	return out, nil
}

func (s *Strategy) Set(_ context.Context, key string, payload []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	stored := make([]byte, len(payload))
	copy(stored, payload)
	s.items[key] = stored
	return nil
}

func (s *Strategy) Remove(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.items, key)
	return nil
}

package memory

import (
	"context"
	"sync"
)

// Storage keeps values in process memory. Useful for tests and demos.
type Storage struct {
	mu     sync.RWMutex
	values map[string]string
}

func NewStorage() *Storage {
	return &Storage{values: make(map[string]string)}
}

func (s *Storage) Get(ctx context.Context, key string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.values[key]
	return v, ok, nil
}

func (s *Storage) Set(ctx context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = value
	return nil
}

func (s *Storage) Ping(ctx context.Context) error {
	return nil
}

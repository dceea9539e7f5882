package basketstore

import (
	"context"
	"sync"

	"leisure-booking/internal/domain/basket"
)

// MemoryStore is an in-process basket store for tests and local development.
type MemoryStore struct {
	mu      sync.RWMutex
	baskets map[string][]string
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{baskets: make(map[string][]string)}
}

func (s *MemoryStore) Get(_ context.Context, scope string) (basket.Basket, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return basket.New(s.baskets[scope]...), nil
}

func (s *MemoryStore) Save(_ context.Context, scope string, b basket.Basket) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if b.IsEmpty() {
		delete(s.baskets, scope)
		return nil
	}
	s.baskets[scope] = b.Codes()
	return nil
}

package cartstore

import (
	"context"
	"sync"

	"github.com/JulioMoratelli/vila-mantos/internal/domain"
)

// MemoryStore keeps carts in process memory. Used for local development and
// tests; production deployments use RedisStore so carts survive restarts
// within the session TTL.
type MemoryStore struct {
	mu    sync.RWMutex
	carts map[string]*domain.Cart
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{carts: make(map[string]*domain.Cart)}
}

func (s *MemoryStore) Get(_ context.Context, sessionID string) (*domain.Cart, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	cart, ok := s.carts[sessionID]
	if !ok {
		return nil, ErrCartNotFound
	}
	copied := *cart
	copied.Items = append([]domain.CartLine(nil), cart.Items...)
	return &copied, nil
}

func (s *MemoryStore) Set(_ context.Context, sessionID string, cart *domain.Cart) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	copied := *cart
	copied.Items = append([]domain.CartLine(nil), cart.Items...)
	s.carts[sessionID] = &copied
	return nil
}

func (s *MemoryStore) Delete(_ context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.carts, sessionID)
	return nil
}

package memory

import (
	"sync"

	"github.com/plateful/ordering-service/internal/domain/order"
)

// CartStore keeps one cart per user id, created lazily and living for the
// process lifetime only. Carts are not persisted across restarts; checkout
// success or an explicit clear empties them.
type CartStore struct {
	mu    sync.Mutex
	carts map[string]*order.Cart
}

func NewCartStore() *CartStore {
	return &CartStore{
		carts: make(map[string]*order.Cart),
	}
}

func (s *CartStore) cart(userID string) *order.Cart {
	c, ok := s.carts[userID]
	if !ok {
		c = order.NewCart()
		s.carts[userID] = c
	}
	return c
}

func (s *CartStore) Add(userID string, line order.Line, restaurantID int64) order.AddResult {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cart(userID).Add(line, restaurantID)
}

func (s *CartStore) Replace(userID string, line order.Line, restaurantID int64) order.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cart(userID).Replace(line, restaurantID)
}

func (s *CartStore) Remove(userID string, itemID int64) order.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cart(userID).Remove(itemID)
}

func (s *CartStore) Clear(userID string) order.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cart(userID).Clear()
}

func (s *CartStore) Snapshot(userID string) order.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cart(userID).Snapshot()
}

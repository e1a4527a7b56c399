package cache

import (
	"order_lookup/internal/model"
	"sync"
)

// Store хранит заказы в памяти: одна карта под одним RWMutex.
// Читатели работают параллельно, запись исключает и читателей, и других писателей.
type Store struct {
	mu     sync.RWMutex
	orders map[string]model.Order
}

// NewStore создает пустое хранилище
func NewStore() *Store {
	return &Store{
		orders: make(map[string]model.Order),
	}
}

// Insert добавляет или молча заменяет заказ с данным UID
func (s *Store) Insert(uid string, order model.Order) {
	// копия снимается вне блокировки
	stored := order.Clone()

	s.mu.Lock()
	defer s.mu.Unlock()

	s.orders[uid] = stored
}

// Get возвращает копию заказа; false - если заказа нет
func (s *Store) Get(uid string) (model.Order, bool) {
	s.mu.RLock()
	order, found := s.orders[uid]
	s.mu.RUnlock()

	if !found {
		return model.Order{}, false
	}

	// сохраненное значение неизменяемо, копия без блокировки безопасна
	return order.Clone(), true
}

// Len возвращает количество заказов в хранилище
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.orders)
}

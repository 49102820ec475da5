package memory

import (
	"context"
	"sync"

	"github.com/stayhive/backend/internal/domain/entities"
)

// Store is a mutex-guarded in-memory backing for one entity type. It offers
// no durability and exists for development and tests; every operation is
// atomic with respect to the others on the same store. Entities are copied on
// the way in and on the way out, so a caller holding an entity from a read
// never observes later writes and cannot mutate stored state.
type Store[T entities.Entity] struct {
	mu    sync.RWMutex
	items map[string]T
}

// NewStore creates an empty store.
func NewStore[T entities.Entity]() *Store[T] {
	return &Store[T]{items: make(map[string]T)}
}

func clone[T entities.Entity](entity T) T {
	return entity.Clone().(T)
}

// Add stores a copy of the entity under its id.
func (s *Store[T]) Add(ctx context.Context, entity T) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items[entity.EntityID()] = clone(entity)
	return nil
}

// Get returns a copy of the entity for id, or the zero value when absent.
func (s *Store[T]) Get(ctx context.Context, id string) (T, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	entity, ok := s.items[id]
	if !ok {
		var zero T
		return zero, nil
	}
	return clone(entity), nil
}

// GetAll returns a copy of every stored entity in map order.
func (s *Store[T]) GetAll(ctx context.Context) ([]T, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	all := make([]T, 0, len(s.items))
	for _, entity := range s.items {
		all = append(all, clone(entity))
	}
	return all, nil
}

// Update applies the field map through the entity's validated setters. The
// update happens on a copy that replaces the stored entity only when every
// field validates, so readers never observe a partial or failed update.
// Unknown id is a no-op.
func (s *Store[T]) Update(ctx context.Context, id string, fields map[string]any) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	entity, ok := s.items[id]
	if !ok {
		return nil
	}
	updated := clone(entity)
	if err := updated.Apply(fields); err != nil {
		return err
	}
	s.items[id] = updated
	return nil
}

// Delete removes the entity. Unknown id is a no-op.
func (s *Store[T]) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.items, id)
	return nil
}

// GetByAttribute returns a copy of the first entity whose attribute equals
// value.
func (s *Store[T]) GetByAttribute(ctx context.Context, name string, value any) (T, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var zero T
	for _, entity := range s.items {
		if got, ok := entity.Attribute(name); ok && got == value {
			return clone(entity), nil
		}
	}
	return zero, nil
}

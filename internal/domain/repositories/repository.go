package repositories

import (
	"context"

	"github.com/stayhive/backend/internal/domain/entities"
)

// Repository is the generic storage contract over one entity type. Both the
// in-memory and the Postgres backings satisfy it with identical semantics, so
// the domain service never depends on a concrete backing.
//
// Lookup semantics: Get and GetByAttribute return the zero value and a nil
// error when nothing matches; errors are reserved for storage failures.
// Update and Delete are no-ops on an unknown id.
type Repository[T entities.Entity] interface {
	// Add stores an entity under its id. The caller guarantees a fresh,
	// unique id; no uniqueness re-check happens here.
	Add(ctx context.Context, entity T) error

	// Get returns the entity for id, or the zero value when absent.
	Get(ctx context.Context, id string) (T, error)

	// GetAll returns every stored entity in no particular order.
	GetAll(ctx context.Context) ([]T, error)

	// Update applies a partial field map through the entity's own validated
	// setters and persists the result. Unknown id is a no-op.
	Update(ctx context.Context, id string, fields map[string]any) error

	// Delete removes the entity. Unknown id is a no-op.
	Delete(ctx context.Context, id string) error

	// GetByAttribute returns the first entity whose named attribute equals
	// value, in implementation-defined order, or the zero value.
	GetByAttribute(ctx context.Context, name string, value any) (T, error)
}

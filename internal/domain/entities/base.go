package entities

import (
	"time"

	"github.com/google/uuid"
)

// Entity is the contract every stored aggregate satisfies. Repositories key
// entities by EntityID, apply partial updates through Apply, answer attribute
// lookups through Attribute, and hand out independent copies through Clone so
// stored state is never aliased by callers.
type Entity interface {
	EntityID() string
	Apply(fields map[string]any) error
	Attribute(name string) (any, bool)
	Clone() Entity
}

// Base carries the fields shared by every entity.
type Base struct {
	ID        string    `json:"id" db:"id"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

func newBase() Base {
	now := time.Now().UTC()
	return Base{
		ID:        uuid.New().String(),
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// EntityID returns the entity's unique identifier.
func (b *Base) EntityID() string {
	return b.ID
}

// touch refreshes the update timestamp. Called by every successful mutation.
func (b *Base) touch() {
	b.UpdatedAt = time.Now().UTC()
}

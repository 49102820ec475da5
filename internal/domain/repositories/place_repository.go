package repositories

import (
	"context"

	"github.com/stayhive/backend/internal/domain/entities"
)

// PlaceRepository defines the interface for place storage. The link
// operations mutate a place's id collections atomically with respect to
// other operations on the place store, so concurrent appends on the same
// place cannot lose updates. Delete cascades: it removes the place together
// with every review referencing it and its amenity links as one atomic step,
// so a failure never leaves reviews deleted with the place surviving.
type PlaceRepository interface {
	Repository[*entities.Place]

	// AppendReview records a review in the place's owned review collection.
	AppendReview(ctx context.Context, placeID, reviewID string) error

	// RemoveReview drops a review from the place's owned collection.
	// Unknown place or review id is a no-op.
	RemoveReview(ctx context.Context, placeID, reviewID string) error

	// AppendAmenity links an amenity to the place. Returns a conflict error
	// if the link already exists.
	AppendAmenity(ctx context.Context, placeID, amenityID string) error
}

// ReviewRepository defines the interface for review storage.
type ReviewRepository interface {
	Repository[*entities.Review]

	// ListByPlace returns all reviews referencing the place, oldest first.
	ListByPlace(ctx context.Context, placeID string) ([]*entities.Review, error)

	// DeleteByPlace removes every review referencing the place. Serves the
	// place repository's cascade delete.
	DeleteByPlace(ctx context.Context, placeID string) error
}

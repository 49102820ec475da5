package memory

import (
	"context"
	"fmt"
	"sort"

	"github.com/stayhive/backend/internal/domain/entities"
	"github.com/stayhive/backend/internal/domain/repositories"
	apperrors "github.com/stayhive/backend/pkg/errors"
)

// NewUserRepository creates an in-memory user repository.
func NewUserRepository() repositories.UserRepository {
	return NewStore[*entities.User]()
}

// NewAmenityRepository creates an in-memory amenity repository.
func NewAmenityRepository() repositories.AmenityRepository {
	return NewStore[*entities.Amenity]()
}

// PlaceStore extends the generic store with the place link operations. It
// holds the review repository so deleting a place can sweep the place's
// reviews as part of the same call.
type PlaceStore struct {
	*Store[*entities.Place]
	reviews repositories.ReviewRepository
}

// NewPlaceRepository creates an in-memory place repository cascading deletes
// into the given review repository.
func NewPlaceRepository(reviews repositories.ReviewRepository) repositories.PlaceRepository {
	return &PlaceStore{Store: NewStore[*entities.Place](), reviews: reviews}
}

// Delete removes the place and every review referencing it.
func (s *PlaceStore) Delete(ctx context.Context, id string) error {
	if err := s.reviews.DeleteByPlace(ctx, id); err != nil {
		return err
	}
	return s.Store.Delete(ctx, id)
}

// AppendReview adds a review id to the place's collection under the write
// lock, so concurrent review creation on one place cannot drop an entry.
func (s *PlaceStore) AppendReview(ctx context.Context, placeID, reviewID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	place, ok := s.items[placeID]
	if !ok {
		return apperrors.NewNotFoundError(fmt.Sprintf("place with id %s not found", placeID))
	}
	updated := clone(place)
	updated.AddReview(reviewID)
	s.items[placeID] = updated
	return nil
}

// RemoveReview detaches a review id from the place under the write lock.
func (s *PlaceStore) RemoveReview(ctx context.Context, placeID, reviewID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if place, ok := s.items[placeID]; ok {
		updated := clone(place)
		updated.RemoveReview(reviewID)
		s.items[placeID] = updated
	}
	return nil
}

// AppendAmenity links an amenity under the write lock; a second link of the
// same amenity is a conflict.
func (s *PlaceStore) AppendAmenity(ctx context.Context, placeID, amenityID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	place, ok := s.items[placeID]
	if !ok {
		return apperrors.NewNotFoundError(fmt.Sprintf("place with id %s not found", placeID))
	}
	if place.HasAmenity(amenityID) {
		return apperrors.NewConflictError("amenity is already linked to this place")
	}
	updated := clone(place)
	updated.AddAmenity(amenityID)
	s.items[placeID] = updated
	return nil
}

// ReviewStore extends the generic store with place-scoped queries.
type ReviewStore struct {
	*Store[*entities.Review]
}

// NewReviewRepository creates an in-memory review repository.
func NewReviewRepository() repositories.ReviewRepository {
	return &ReviewStore{NewStore[*entities.Review]()}
}

// ListByPlace scans all reviews and filters by place reference, oldest first.
// Linear, which is fine at this backing's scale.
func (s *ReviewStore) ListByPlace(ctx context.Context, placeID string) ([]*entities.Review, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var matches []*entities.Review
	for _, review := range s.items {
		if review.PlaceID == placeID {
			matches = append(matches, clone(review))
		}
	}
	sort.Slice(matches, func(i, j int) bool {
		if matches[i].CreatedAt.Equal(matches[j].CreatedAt) {
			return matches[i].ID < matches[j].ID
		}
		return matches[i].CreatedAt.Before(matches[j].CreatedAt)
	})
	return matches, nil
}

// DeleteByPlace removes every review referencing the place in one locked
// sweep.
func (s *ReviewStore) DeleteByPlace(ctx context.Context, placeID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, review := range s.items {
		if review.PlaceID == placeID {
			delete(s.items, id)
		}
	}
	return nil
}
